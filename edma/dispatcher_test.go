package edma

import (
	"go.uber.org/mock/gomock"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Completion Dispatcher", func() {
	type completion struct {
		channel uint32
		status  TransferStatus
		user    any
	}

	var (
		mockCtrl *gomock.Controller
		hw       *MockHardware
		c        *Comp
		seen     []completion
	)

	record := func(_ *Comp, user any, channel uint32, status TransferStatus) {
		seen = append(seen, completion{channel, status, user})
	}

	BeforeEach(func() {
		mockCtrl = gomock.NewController(GinkgoT())
		seen = nil

		hw = NewMockHardware(mockCtrl)
		hw.EXPECT().ConnectCompletionIRQ(gomock.Any())

		var err error
		c, err = MakeBuilder().
			WithHardware(hw).
			WithAttrs(Attrs{
				RegionID:     1,
				NumChannels:  64,
				NumParamSets: 128,
				NumRegions:   8,
				NumQueues:    2,
			}).
			Build("EDMA")
		Expect(err).ToNot(HaveOccurred())
	})

	AfterEach(func() {
		mockCtrl.Finish()
	})

	It("should demultiplex codes from both pending registers", func() {
		c.channels[5].callback = record
		c.channels[5].userData = "low"
		c.channels[40].callback = record
		c.channels[40].userData = "high"

		hw.EXPECT().InterruptStatusLow(uint32(1)).Return(uint32(1 << 5))
		hw.EXPECT().InterruptStatusHigh(uint32(1)).Return(uint32(1 << 8))

		hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(5))
		hw.EXPECT().MappedParamSet(uint32(5)).Return(uint32(7), nil)
		hw.EXPECT().ReadParamSet(uint32(7)).Return(ParamSet{})

		hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(40))
		hw.EXPECT().MappedParamSet(uint32(40)).Return(uint32(12), nil)
		hw.EXPECT().
			ReadParamSet(uint32(12)).
			Return(ParamSet{ACnt: 2, BCnt: 4, CCnt: 3})

		hw.EXPECT().ClearAggregateStatus()
		hw.EXPECT().EvaluateInterrupt(uint32(1))

		c.ServiceCompletionInterrupt()

		Expect(seen).To(Equal([]completion{
			{channel: 5, status: StatusComplete, user: "low"},
			{channel: 40, status: StatusBlock, user: "high"},
		}))
	})

	It("should acknowledge codes that carry no callback", func() {
		hw.EXPECT().InterruptStatusLow(uint32(1)).Return(uint32(1 << 6))
		hw.EXPECT().InterruptStatusHigh(uint32(1)).Return(uint32(0))
		hw.EXPECT().ClearInterruptRegion(uint32(1), uint32(6))
		hw.EXPECT().ClearAggregateStatus()
		hw.EXPECT().EvaluateInterrupt(uint32(1))

		c.ServiceCompletionInterrupt()

		Expect(seen).To(BeEmpty())
	})

	It("should re-evaluate the line even when nothing is pending", func() {
		hw.EXPECT().InterruptStatusLow(uint32(1)).Return(uint32(0))
		hw.EXPECT().InterruptStatusHigh(uint32(1)).Return(uint32(0))
		hw.EXPECT().ClearAggregateStatus()
		hw.EXPECT().EvaluateInterrupt(uint32(1))

		c.ServiceCompletionInterrupt()

		Expect(seen).To(BeEmpty())
	})
})
