package monitoring

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/soclab/edma/edma"
	"github.com/soclab/edma/edma/hwsim"
)

var _ = Describe("Monitor", func() {
	var (
		monitor *Monitor
		server  *httptest.Server
		c       *edma.Comp
	)

	BeforeEach(func() {
		hw := hwsim.MakeBuilder().Build("CC0")

		var err error
		c, err = edma.MakeBuilder().
			WithHardware(hw).
			WithAttrs(edma.Attrs{
				NumChannels:  64,
				NumParamSets: 128,
				NumRegions:   8,
				NumQueues:    2,
				Partitions: []edma.PartitionEntry{
					{Type: edma.ResourceDMAChannel, Start: 0, End: 15},
					{Type: edma.ResourceParamSet, Start: 0, End: 31},
				},
			}).
			Build("EDMA0")
		Expect(err).ToNot(HaveOccurred())

		Expect(c.Configure(2, edma.TransferRequest{
			Direction:   edma.DirMemToMem,
			SrcDataSize: 4,
			DstDataSize: 4,
			Blocks: []edma.Block{
				{SrcAddr: 0x8000_0000, DstAddr: 0x8800_0000, Size: 64},
			},
		})).To(Succeed())

		monitor = NewMonitor()
		monitor.RegisterInstance(c)

		server = httptest.NewServer(monitor.router())
	})

	AfterEach(func() {
		server.Close()
	})

	getJSON := func(path string, out any) *http.Response {
		rsp, err := http.Get(server.URL + path)
		Expect(err).ToNot(HaveOccurred())

		if out != nil {
			body, err := io.ReadAll(rsp.Body)
			Expect(err).ToNot(HaveOccurred())
			Expect(json.Unmarshal(body, out)).To(Succeed())
		}
		rsp.Body.Close()

		return rsp
	}

	It("should list registered instances", func() {
		var names []string
		getJSON("/api/list_instances", &names)

		Expect(names).To(Equal([]string{"EDMA0"}))
	})

	It("should report channel state", func() {
		var channels []channelRsp
		getJSON("/api/instance/EDMA0/channels", &channels)

		Expect(channels).To(HaveLen(64))
		Expect(channels[2].Allocated).To(BeTrue())
		Expect(channels[2].Direction).To(Equal("MemToMem"))
		Expect(channels[2].Busy).To(BeTrue())
		Expect(channels[2].Pending).To(Equal(uint32(64)))
		Expect(channels[3].Allocated).To(BeFalse())
		Expect(channels[3].Direction).To(Equal("None"))
	})

	It("should report the ownership bitmaps", func() {
		var resources resourcesRsp
		getJSON("/api/instance/EDMA0/resources", &resources)

		Expect(resources.Channels).To(Equal([]string{"0x0000ffff", "0x00000000"}))
		Expect(resources.TCCs).To(Equal([]string{"0x0000ffff", "0x00000000"}))
		Expect(resources.ParamSets).To(Equal(
			[]string{"0xffffffff", "0x00000000", "0x00000000", "0x00000000"}))
	})

	It("should 404 on unknown instances", func() {
		rsp := getJSON("/api/instance/EDMA9/channels", nil)

		Expect(rsp.StatusCode).To(Equal(http.StatusNotFound))
	})
})
