package edma

import (
	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Channel Controller", func() {
	var (
		mockCtrl *gomock.Controller
		hw       *MockHardware
		c        *Comp
	)

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())

		hw = NewMockHardware(mockCtrl)
		hw.EXPECT().ConnectCompletionIRQ(gomock.Any())

		var err error
		c, err = MakeBuilder().
			WithHardware(hw).
			WithAttrs(Attrs{
				RegionID:     1,
				QueueNum:     0,
				NumChannels:  64,
				NumParamSets: 128,
				NumRegions:   8,
				NumQueues:    2,
				Partitions: []PartitionEntry{
					{Type: ResourceDMAChannel, Start: 0, End: 47},
					{Type: ResourceParamSet, Start: 0, End: 63},
				},
			}).
			Build("EDMA")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	Describe("Configure", func() {
		It("should claim resources and program the descriptor", func() {
			hw.EXPECT().AllocDMAChannel(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocTCC(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocParamSet(c.own, AllocAny).Return(uint32(7), nil)
			hw.EXPECT().ConfigureChannelRegion(
				uint32(1), uint32(3), uint32(3), uint32(7), uint32(0))

			var written ParamSet
			hw.EXPECT().
				WriteParamSet(uint32(7), gomock.Any()).
				Do(func(_ uint32, p ParamSet) { written = p })

			err := c.Configure(3, TransferRequest{
				Direction:   DirMemToMem,
				SrcDataSize: 4,
				DstDataSize: 4,
				Blocks:      []Block{{SrcAddr: 0x1000, DstAddr: 0x2000, Size: 4096}},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(c.ChannelAllocated(3)).To(BeTrue())
			Expect(c.ChannelDirection(3)).To(Equal(DirMemToMem))
			Expect(written.ACnt).To(Equal(uint16(4)))
			Expect(written.BCnt).To(Equal(uint16(1024)))
			Expect(written.CCnt).To(Equal(uint16(1)))
			Expect(written.TCC()).To(Equal(uint32(3)))
			Expect(written.LinkAddr).To(Equal(LinkEnd))
		})

		It("should arm the completion path when a callback is given", func() {
			hw.EXPECT().AllocDMAChannel(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocTCC(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocParamSet(c.own, AllocAny).Return(uint32(7), nil)
			hw.EXPECT().ConfigureChannelRegion(
				uint32(1), uint32(3), uint32(3), uint32(7), uint32(0))
			hw.EXPECT().WriteParamSet(uint32(7), gomock.Any())

			gomock.InOrder(
				hw.EXPECT().DisableCompletionIRQ(),
				hw.EXPECT().EnableEventInterruptRegion(uint32(1), uint32(3)),
				hw.EXPECT().EnableCompletionIRQ(),
			)

			cb := func(*Comp, any, uint32, TransferStatus) {}
			err := c.Configure(3, TransferRequest{
				Direction:      DirPeriphToMem,
				SrcDataSize:    2,
				DstDataSize:    2,
				SrcBurstLength: 8,
				DstBurstLength: 8,
				Blocks:         []Block{{SrcAddr: 0x4000, DstAddr: 0x2000, Size: 64}},
				Callback:       cb,
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(c.channels[3].callback).ToNot(BeNil())
		})

		It("should reject a channel outside the instance", func() {
			err := c.Configure(64, TransferRequest{Direction: DirMemToMem})

			Expect(err).To(MatchError(ErrInvalidArg))
		})

		It("should roll back claimed resources when a later step fails", func() {
			hw.EXPECT().AllocDMAChannel(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocTCC(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().
				AllocParamSet(c.own, AllocAny).
				Return(uint32(0), ErrNoResource)
			hw.EXPECT().FreeTCC(c.own, uint32(3)).Return(nil)
			hw.EXPECT().FreeDMAChannel(c.own, uint32(3)).Return(nil)

			err := c.Configure(3, TransferRequest{
				Direction:   DirMemToMem,
				SrcDataSize: 4,
				DstDataSize: 4,
				Blocks:      []Block{{Size: 4096}},
			})

			Expect(err).To(MatchError(ErrNotSupported))
			Expect(c.ChannelAllocated(3)).To(BeFalse())
		})

		It("should roll back when the descriptor cannot be composed", func() {
			hw.EXPECT().AllocDMAChannel(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocTCC(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocParamSet(c.own, AllocAny).Return(uint32(7), nil)
			hw.EXPECT().ConfigureChannelRegion(
				uint32(1), uint32(3), uint32(3), uint32(7), uint32(0))
			hw.EXPECT().FreeChannelRegion(
				uint32(1), uint32(3), TriggerManual, uint32(3), uint32(0))
			hw.EXPECT().FreeParamSet(c.own, uint32(7)).Return(nil)
			hw.EXPECT().FreeTCC(c.own, uint32(3)).Return(nil)
			hw.EXPECT().FreeDMAChannel(c.own, uint32(3)).Return(nil)

			err := c.Configure(3, TransferRequest{
				Direction:   DirMemToMem,
				SrcDataSize: 4,
				DstDataSize: 8,
				Blocks:      []Block{{Size: 4096}},
			})

			Expect(err).To(MatchError(ErrNotSupported))
			Expect(c.ChannelAllocated(3)).To(BeFalse())
		})

		It("should release a configured channel before reconfiguring it", func() {
			c.allocated.TestAndSet(3)
			c.channels[3].dir = DirMemToMem

			gomock.InOrder(
				hw.EXPECT().DisableTransferRegion(
					uint32(1), uint32(3), TriggerManual),
				hw.EXPECT().ClearEventRegion(uint32(1), uint32(3)),
				hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3)),
				hw.EXPECT().MappedParamSet(uint32(3)).Return(uint32(9), nil),
				hw.EXPECT().FreeChannelRegion(
					uint32(1), uint32(3), TriggerManual, uint32(3), uint32(0)),
				hw.EXPECT().FreeDMAChannel(c.own, uint32(3)).Return(nil),
				hw.EXPECT().FreeTCC(c.own, uint32(3)).Return(nil),
				hw.EXPECT().FreeParamSet(c.own, uint32(9)).Return(nil),
				hw.EXPECT().AllocDMAChannel(c.own, uint32(3)).Return(uint32(3), nil),
			)
			hw.EXPECT().AllocTCC(c.own, uint32(3)).Return(uint32(3), nil)
			hw.EXPECT().AllocParamSet(c.own, AllocAny).Return(uint32(7), nil)
			hw.EXPECT().ConfigureChannelRegion(
				uint32(1), uint32(3), uint32(3), uint32(7), uint32(0))
			hw.EXPECT().WriteParamSet(uint32(7), gomock.Any())

			err := c.Configure(3, TransferRequest{
				Direction:   DirMemToMem,
				SrcDataSize: 4,
				DstDataSize: 4,
				Blocks:      []Block{{Size: 64}},
			})

			Expect(err).ToNot(HaveOccurred())
			Expect(c.ChannelAllocated(3)).To(BeTrue())
		})
	})

	Describe("Start", func() {
		BeforeEach(func() {
			c.allocated.TestAndSet(3)
		})

		It("should fire a manual trigger for memory-to-memory", func() {
			c.channels[3].dir = DirMemToMem

			hw.EXPECT().ClearEventRegion(uint32(1), uint32(3))
			hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3))
			hw.EXPECT().EnableTransferRegion(uint32(1), uint32(3), TriggerManual)

			Expect(c.Start(3)).To(Succeed())
		})

		It("should arm event triggering for peripheral-to-memory", func() {
			c.channels[3].dir = DirPeriphToMem

			hw.EXPECT().ClearEventRegion(uint32(1), uint32(3))
			hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3))
			hw.EXPECT().EnableTransferRegion(uint32(1), uint32(3), TriggerEvent)

			Expect(c.Start(3)).To(Succeed())
		})

		It("should kick the first burst for memory-to-peripheral", func() {
			c.channels[3].dir = DirMemToPeriph

			hw.EXPECT().ClearEventRegion(uint32(1), uint32(3))
			hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3))
			gomock.InOrder(
				hw.EXPECT().EnableTransferRegion(
					uint32(1), uint32(3), TriggerEvent),
				hw.EXPECT().EnableTransferRegion(
					uint32(1), uint32(3), TriggerManual),
			)

			Expect(c.Start(3)).To(Succeed())
		})

		It("should reject an unconfigured direction", func() {
			hw.EXPECT().ClearEventRegion(uint32(1), uint32(3))
			hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3))

			Expect(c.Start(3)).To(MatchError(ErrNotSupported))
		})

		It("should reject an unallocated channel", func() {
			Expect(c.Start(5)).To(MatchError(ErrInvalidArg))
		})
	})

	Describe("Stop", func() {
		BeforeEach(func() {
			c.allocated.TestAndSet(3)
		})

		It("should disarm the trigger and clear pending state", func() {
			c.channels[3].dir = DirMemToPeriph

			gomock.InOrder(
				hw.EXPECT().DisableTransferRegion(
					uint32(1), uint32(3), TriggerEvent),
				hw.EXPECT().ClearEventRegion(uint32(1), uint32(3)),
				hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3)),
			)

			Expect(c.Stop(3)).To(Succeed())
		})

		It("should not touch hardware for an unallocated channel", func() {
			Expect(c.Stop(5)).To(MatchError(ErrInvalidArg))
		})
	})

	Describe("ChanRelease", func() {
		It("should return every resource and reset the record", func() {
			c.allocated.TestAndSet(3)
			c.channels[3].dir = DirMemToMem
			c.channels[3].callback = func(*Comp, any, uint32, TransferStatus) {}

			hw.EXPECT().DisableTransferRegion(uint32(1), uint32(3), TriggerManual)
			hw.EXPECT().ClearEventRegion(uint32(1), uint32(3))
			hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3))
			hw.EXPECT().MappedParamSet(uint32(3)).Return(uint32(7), nil)
			hw.EXPECT().FreeChannelRegion(
				uint32(1), uint32(3), TriggerManual, uint32(3), uint32(0))
			hw.EXPECT().FreeDMAChannel(c.own, uint32(3)).Return(nil)
			hw.EXPECT().FreeTCC(c.own, uint32(3)).Return(nil)
			hw.EXPECT().FreeParamSet(c.own, uint32(7)).Return(nil)

			Expect(c.ChanRelease(3)).To(Succeed())
			Expect(c.ChannelAllocated(3)).To(BeFalse())
			Expect(c.ChannelDirection(3)).To(Equal(DirNone))
			Expect(c.channels[3].callback).To(BeNil())
		})

		It("should fail when no descriptor is mapped", func() {
			c.allocated.TestAndSet(3)
			c.channels[3].dir = DirMemToMem

			hw.EXPECT().DisableTransferRegion(uint32(1), uint32(3), TriggerManual)
			hw.EXPECT().ClearEventRegion(uint32(1), uint32(3))
			hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(3))
			hw.EXPECT().
				MappedParamSet(uint32(3)).
				Return(uint32(0), ErrNoResource)

			Expect(c.ChanRelease(3)).To(MatchError(ErrCanceled))
		})
	})

	Describe("GetStatus", func() {
		It("should report a memory-to-memory channel busy until its "+
			"interrupt is raised", func() {
			c.allocated.TestAndSet(3)
			c.channels[3].dir = DirMemToMem

			hw.EXPECT().InterruptStatusLow(uint32(1)).Return(uint32(0))
			hw.EXPECT().EventPending(uint32(3)).Return(false)
			hw.EXPECT().MappedParamSet(uint32(3)).Return(uint32(7), nil)
			hw.EXPECT().
				ReadParamSet(uint32(7)).
				Return(ParamSet{ACnt: 4, BCnt: 1024, CCnt: 1})

			st, err := c.GetStatus(3)

			Expect(err).ToNot(HaveOccurred())
			Expect(st.Direction).To(Equal(DirMemToMem))
			Expect(st.Busy).To(BeTrue())
			Expect(st.PendingLength).To(Equal(uint32(4096)))
		})

		It("should report completion from the interrupt-pending bit", func() {
			c.allocated.TestAndSet(3)
			c.channels[3].dir = DirMemToMem

			hw.EXPECT().InterruptStatusLow(uint32(1)).Return(uint32(1 << 3))
			hw.EXPECT().EventPending(uint32(3)).Return(false)
			hw.EXPECT().MappedParamSet(uint32(3)).Return(uint32(7), nil)
			hw.EXPECT().ReadParamSet(uint32(7)).Return(ParamSet{ACnt: 4})

			st, err := c.GetStatus(3)

			Expect(err).ToNot(HaveOccurred())
			Expect(st.Busy).To(BeFalse())
			Expect(st.PendingLength).To(Equal(uint32(0)))
		})

		It("should consider a peripheral-paced channel idle with no "+
			"events pending", func() {
			c.allocated.TestAndSet(3)
			c.channels[3].dir = DirPeriphToMem

			hw.EXPECT().InterruptStatusLow(uint32(1)).Return(uint32(0))
			hw.EXPECT().EventPending(uint32(3)).Return(false)
			hw.EXPECT().MappedParamSet(uint32(3)).Return(uint32(7), nil)
			hw.EXPECT().
				ReadParamSet(uint32(7)).
				Return(ParamSet{ACnt: 2, BCnt: 4, CCnt: 6})

			st, err := c.GetStatus(3)

			Expect(err).ToNot(HaveOccurred())
			Expect(st.Busy).To(BeFalse())
			Expect(st.PendingLength).To(Equal(uint32(48)))
		})

		It("should consider a peripheral-paced channel busy while "+
			"events are pending", func() {
			c.allocated.TestAndSet(3)
			c.channels[3].dir = DirMemToPeriph

			hw.EXPECT().InterruptStatusLow(uint32(1)).Return(uint32(0))
			hw.EXPECT().EventPending(uint32(3)).Return(true)
			hw.EXPECT().MappedParamSet(uint32(3)).Return(uint32(7), nil)
			hw.EXPECT().
				ReadParamSet(uint32(7)).
				Return(ParamSet{ACnt: 2, BCnt: 4, CCnt: 6})

			st, err := c.GetStatus(3)

			Expect(err).ToNot(HaveOccurred())
			Expect(st.Busy).To(BeTrue())
		})

		It("should read the high pending register for channels 32 and up", func() {
			c.allocated.TestAndSet(40)
			c.channels[40].dir = DirMemToMem

			hw.EXPECT().InterruptStatusHigh(uint32(1)).Return(uint32(1 << 8))
			hw.EXPECT().EventPending(uint32(40)).Return(false)
			hw.EXPECT().MappedParamSet(uint32(40)).Return(uint32(12), nil)
			hw.EXPECT().ReadParamSet(uint32(12)).Return(ParamSet{})

			st, err := c.GetStatus(40)

			Expect(err).ToNot(HaveOccurred())
			Expect(st.Busy).To(BeFalse())
		})
	})
})
