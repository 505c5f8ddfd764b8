package main

import (
	"bytes"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/soclab/edma/clockcontrol"
	"github.com/soclab/edma/edma"
	"github.com/soclab/edma/edma/hwsim"
	"github.com/soclab/edma/mbox"
	"github.com/soclab/edma/monitoring"
	"github.com/soclab/edma/recording"
	"github.com/soclab/edma/tisci"
	"github.com/soclab/edma/tisci/dmscemu"
	"github.com/soclab/edma/transferlog"
)

// Identifiers of the demo board description.
const (
	demoDevice   = uint32(0x0030)
	demoClock    = uint8(0)
	demoHost     = uint8(12)
	demoSrcAddr  = uint32(0x8000_0000)
	demoDstAddr  = uint32(0x8800_0000)
	demoPeriReg  = uint32(0x4890_0000)
	demoClockHz  = uint64(200_000_000)
	demoM2MBytes = 4096
)

var (
	demoPort    int
	demoDB      string
	demoBrowser bool
	demoServe   bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run demo transfers on the simulated channel controller.",
	RunE: func(_ *cobra.Command, _ []string) error {
		return runDemo()
	},
}

func init() {
	demoCmd.Flags().IntVar(&demoPort, "port", 0,
		"port of the monitoring server, 0 for a random port")
	demoCmd.Flags().StringVar(&demoDB, "db", "",
		"path of the transfer-log database, empty for a unique name")
	demoCmd.Flags().BoolVar(&demoBrowser, "open-browser", false,
		"open the monitoring dashboard in a browser")
	demoCmd.Flags().BoolVar(&demoServe, "serve", false,
		"keep the monitoring server running after the transfers finish")

	rootCmd.AddCommand(demoCmd)
}

func runDemo() error {
	client := bootFirmware()

	clocks := clockcontrol.New(client, demoDevice)
	if err := clocks.On(demoClock); err != nil {
		return err
	}
	rate, err := clocks.GetRate(demoClock)
	if err != nil {
		return err
	}
	log.Printf("eDMA functional clock running at %d Hz", rate)

	hw := hwsim.MakeBuilder().Build("CC0")
	c, err := edma.MakeBuilder().
		WithHardware(hw).
		WithAttrs(edma.Attrs{
			RegionID:     1,
			NumChannels:  64,
			NumParamSets: 128,
			NumRegions:   8,
			NumQueues:    2,
			Partitions: []edma.PartitionEntry{
				{Type: edma.ResourceDMAChannel, Start: 0, End: 31},
				{Type: edma.ResourceParamSet, Start: 0, End: 63},
			},
		}).
		Build("EDMA0")
	if err != nil {
		return err
	}

	logger := transferlog.NewLogger(recording.New(demoDB))
	c.AcceptHook(logger)

	monitor := monitoring.NewMonitor().WithPortNumber(demoPort)
	if demoBrowser {
		monitor = monitor.WithBrowserLaunch()
	}
	monitor.RegisterInstance(c)
	monitor.StartServer()

	if err := runMemToMem(hw, c); err != nil {
		return err
	}
	if err := runPeriphToMem(hw, c); err != nil {
		return err
	}

	logger.Flush()

	if demoServe {
		log.Printf("transfers done; serving monitoring data, Ctrl-C to quit")
		select {}
	}

	return nil
}

// bootFirmware brings up the emulated system controller and powers the
// eDMA device, the way board init would against the real firmware.
func bootFirmware() *tisci.Client {
	hostEnd, fwEnd := mbox.Pipe()
	emu := dmscemu.New(fwEnd)
	emu.AddDevice(demoDevice)
	emu.AddClock(demoDevice, demoClock, demoClockHz, demoClockHz/2, demoClockHz*2)

	client := tisci.NewClient(hostEnd, demoHost)

	if v, err := client.GetVersion(); err == nil {
		log.Printf("firmware %s rev 0x%04x ABI %d.%d",
			v.Description, v.Version, v.ABIMajor, v.ABIMinor)
	}
	if err := client.GetDevice(demoDevice); err != nil {
		log.Printf("cannot power eDMA device: %v", err)
	}

	return client
}

func runMemToMem(hw *hwsim.Controller, c *edma.Comp) error {
	src := make([]byte, demoM2MBytes)
	for i := range src {
		src[i] = byte(i * 13)
	}
	hw.WriteMemory(demoSrcAddr, src)

	done := false
	err := c.Configure(2, edma.TransferRequest{
		Direction:   edma.DirMemToMem,
		SrcDataSize: 4,
		DstDataSize: 4,
		Blocks: []edma.Block{
			{SrcAddr: demoSrcAddr, DstAddr: demoDstAddr, Size: demoM2MBytes},
		},
		Callback: func(_ *edma.Comp, _ any, ch uint32, st edma.TransferStatus) {
			log.Printf("channel %d: %s", ch, st)
			done = st == edma.StatusComplete
		},
	})
	if err != nil {
		return err
	}

	if err := c.Start(2); err != nil {
		return err
	}

	if !done || !bytes.Equal(src, hw.ReadMemory(demoDstAddr, demoM2MBytes)) {
		return fmt.Errorf("memory-to-memory transfer corrupted the block")
	}
	log.Printf("memory-to-memory: %d bytes verified", demoM2MBytes)

	return c.ChanRelease(2)
}

func runPeriphToMem(hw *hwsim.Controller, c *edma.Comp) error {
	err := c.Configure(5, edma.TransferRequest{
		Direction:      edma.DirPeriphToMem,
		SrcDataSize:    2,
		DstDataSize:    2,
		SrcBurstLength: 8,
		DstBurstLength: 8,
		Blocks: []edma.Block{
			{SrcAddr: demoPeriReg, DstAddr: demoDstAddr, Size: 64},
		},
		Callback: func(_ *edma.Comp, _ any, ch uint32, st edma.TransferStatus) {
			log.Printf("channel %d: %s", ch, st)
		},
	})
	if err != nil {
		return err
	}

	if err := c.Start(5); err != nil {
		return err
	}

	// Pace the transfer like a peripheral draining its FIFO.
	for ev := 0; ev < 8; ev++ {
		hw.WriteMemory(demoPeriReg, []byte{byte(ev), byte(0x80 + ev)})
		hw.Event(5)
	}

	st, err := c.GetStatus(5)
	if err != nil {
		return err
	}
	if st.PendingLength != 0 {
		return fmt.Errorf("peripheral transfer left %d bytes pending",
			st.PendingLength)
	}
	log.Printf("peripheral-to-memory: 64 bytes in 8 bursts")

	return c.ChanRelease(5)
}
