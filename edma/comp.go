package edma

import (
	"fmt"
	"log"
)

// Attrs is the static per-instance configuration, normally derived from the
// board description. It is validated once at Build and immutable afterward.
type Attrs struct {
	// BaseAddr is the channel controller's register base. The simulated
	// hardware ignores it; it is kept for parity with board data and shown
	// by the monitor.
	BaseAddr uint32

	// CompletionIRQ and IRQPriority describe the aggregated completion
	// interrupt line.
	CompletionIRQ uint32
	IRQPriority   uint32

	RegionID uint32
	QueueNum uint32

	NumChannels  uint32
	NumParamSets uint32
	NumRegions   uint32
	NumQueues    uint32

	// Partitions lists the resource ranges this instance owns.
	Partitions []PartitionEntry
}

func (a Attrs) validate() error {
	if a.NumChannels == 0 || a.NumParamSets == 0 ||
		a.NumRegions == 0 || a.NumQueues == 0 {
		return fmt.Errorf("%w: resource counts must be positive", ErrInvalidArg)
	}
	if a.NumChannels > 64 {
		return fmt.Errorf("%w: %d channels exceed the 64 completion codes",
			ErrInvalidArg, a.NumChannels)
	}
	if a.RegionID >= a.NumRegions {
		return fmt.Errorf("%w: region id %d of %d regions",
			ErrInvalidArg, a.RegionID, a.NumRegions)
	}
	if a.QueueNum >= a.NumQueues {
		return fmt.Errorf("%w: queue number %d of %d queues",
			ErrInvalidArg, a.QueueNum, a.NumQueues)
	}
	return nil
}

// A Comp manages the channels, completion codes and PaRAM descriptors of
// one eDMA controller instance. It implements the generic DMA driver
// contract: Configure, Start, Stop, ChanRelease, GetStatus.
//
// All instance state hangs off the Comp; there is no process-wide registry.
// Lifecycle calls for a given channel must be serialized by the caller; the
// allocation bitmap is the only state shared with the interrupt dispatcher.
type Comp struct {
	HookableBase

	name  string
	hw    Hardware
	attrs Attrs

	own       *OwnedResources
	allocated AtomicBitmap
	channels  []channelState
}

// Name returns the name of the controller instance.
func (c *Comp) Name() string {
	return c.name
}

// Attrs returns the validated instance configuration.
func (c *Comp) Attrs() Attrs {
	return c.attrs
}

// Owned returns the instance's resource-ownership bitmaps.
func (c *Comp) Owned() *OwnedResources {
	return c.own
}

// ChannelAllocated reports whether a channel currently holds resources.
func (c *Comp) ChannelAllocated(channel uint32) bool {
	return channel < c.attrs.NumChannels && c.allocated.Test(channel)
}

// ChannelDirection returns the configured direction of a channel.
func (c *Comp) ChannelDirection(channel uint32) Direction {
	if channel >= c.attrs.NumChannels {
		return DirNone
	}
	return c.channels[channel].dir
}

// configTxn tracks the resources a Configure call has claimed so far, so a
// failure on any later step can put every one of them back before the call
// returns. A failed Configure leaves the channel fully released.
type configTxn struct {
	c       *Comp
	channel uint32
	tcc     uint32
	param   uint32
	haveCh  bool
	haveTCC bool
	haveP   bool
	bound   bool
}

func (t *configTxn) abort() {
	c := t.c
	if t.bound {
		c.hw.FreeChannelRegion(c.attrs.RegionID, t.channel, TriggerManual,
			t.tcc, c.attrs.QueueNum)
	}
	if t.haveP {
		if err := c.hw.FreeParamSet(c.own, t.param); err != nil {
			log.Printf("%s: rollback of PaRAM %d failed: %v", c.name, t.param, err)
		}
	}
	if t.haveTCC {
		if err := c.hw.FreeTCC(c.own, t.tcc); err != nil {
			log.Printf("%s: rollback of TCC %d failed: %v", c.name, t.tcc, err)
		}
	}
	if t.haveCh {
		if err := c.hw.FreeDMAChannel(c.own, t.channel); err != nil {
			log.Printf("%s: rollback of channel %d failed: %v", c.name, t.channel, err)
		}
	}
	c.allocated.Clear(t.channel)
}

// Configure claims a channel, a completion code and a PaRAM slot, composes
// the transfer descriptor and programs it. A channel that is already
// configured is fully released first, so Configure always starts from a
// clean slate. On any failure every resource claimed by this call is freed
// before returning.
func (c *Comp) Configure(channel uint32, req TransferRequest) error {
	if channel >= c.attrs.NumChannels {
		return fmt.Errorf("%w: channel %d of %d",
			ErrInvalidArg, channel, c.attrs.NumChannels)
	}

	if c.allocated.Test(channel) {
		if err := c.ChanRelease(channel); err != nil {
			return fmt.Errorf("reconfigure of channel %d: %w", channel, err)
		}
	}

	region := c.attrs.RegionID
	txn := configTxn{c: c, channel: channel, tcc: channel}

	ch, err := c.hw.AllocDMAChannel(c.own, channel)
	if err != nil {
		return fmt.Errorf("%w: DMA channel %d: %v", ErrNotSupported, channel, err)
	}
	c.allocated.TestAndSet(channel)
	txn.haveCh = true

	tcc, err := c.hw.AllocTCC(c.own, channel)
	if err != nil {
		txn.abort()
		return fmt.Errorf("%w: TCC %d: %v", ErrNotSupported, channel, err)
	}
	txn.tcc = tcc
	txn.haveTCC = true

	param, err := c.hw.AllocParamSet(c.own, AllocAny)
	if err != nil {
		txn.abort()
		return fmt.Errorf("%w: PaRAM set: %v", ErrNotSupported, err)
	}
	txn.param = param
	txn.haveP = true

	c.hw.ConfigureChannelRegion(region, ch, tcc, param, c.attrs.QueueNum)
	txn.bound = true

	block, err := headBlock(req)
	if err != nil {
		txn.abort()
		return err
	}

	ps, err := composeParamSet(req, block, tcc)
	if err != nil {
		txn.abort()
		return err
	}
	c.hw.WriteParamSet(param, ps)

	c.channels[channel].dir = req.Direction

	if req.Callback != nil {
		// Quiesce the completion line while the dispatcher-visible record
		// changes.
		c.hw.DisableCompletionIRQ()
		c.channels[channel].callback = req.Callback
		c.channels[channel].userData = req.UserData
		c.hw.EnableEventInterruptRegion(region, channel)
		c.hw.EnableCompletionIRQ()
	}

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosConfigure,
		Item:   channel,
		Detail: req.Direction,
	})

	return nil
}

// Start arms a configured channel. Memory-to-memory transfers fire a single
// manual trigger; peripheral-paced transfers arm event triggering, and
// memory-to-peripheral additionally kicks the first burst manually since
// the peripheral side is passive. Stale events and interrupts are cleared
// before arming.
func (c *Comp) Start(channel uint32) error {
	if err := c.channelMustBeAllocated(channel); err != nil {
		return err
	}

	region := c.attrs.RegionID
	c.hw.ClearEventRegion(region, channel)
	c.hw.ClearInterruptRegion(region, channel)

	switch c.channels[channel].dir {
	case DirMemToMem:
		c.hw.EnableTransferRegion(region, channel, TriggerManual)
	case DirPeriphToMem:
		c.hw.EnableTransferRegion(region, channel, TriggerEvent)
	case DirMemToPeriph:
		c.hw.EnableTransferRegion(region, channel, TriggerEvent)
		c.hw.EnableTransferRegion(region, channel, TriggerManual)
	default:
		return fmt.Errorf("%w: channel %d has no configured direction",
			ErrNotSupported, channel)
	}

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosStart, Item: channel})

	return nil
}

// Stop disarms a channel's trigger mode and clears pending events and
// interrupts. It does not release the channel's resources and does not
// unwind a hardware transaction that is already latched.
func (c *Comp) Stop(channel uint32) error {
	if err := c.channelMustBeAllocated(channel); err != nil {
		return err
	}

	region := c.attrs.RegionID

	switch c.channels[channel].dir {
	case DirMemToMem:
		c.hw.DisableTransferRegion(region, channel, TriggerManual)
	case DirPeriphToMem, DirMemToPeriph:
		c.hw.DisableTransferRegion(region, channel, TriggerEvent)
	default:
		return fmt.Errorf("%w: channel %d has no configured direction",
			ErrNotSupported, channel)
	}

	c.hw.ClearEventRegion(region, channel)
	c.hw.ClearInterruptRegion(region, channel)

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosStop, Item: channel})

	return nil
}

// ChanRelease tears a channel down: stop triggers, unbind the region
// mapping, free PaRAM, channel and completion code, reset the channel
// record, clear the allocation bit. Only ChanRelease returns resources;
// Stop does not.
func (c *Comp) ChanRelease(channel uint32) error {
	if err := c.channelMustBeAllocated(channel); err != nil {
		return err
	}

	// A configured-but-never-started channel reports its direction; a stop
	// failure is not a reason to keep holding resources.
	if err := c.Stop(channel); err != nil {
		log.Printf("%s: stop before release of channel %d: %v", c.name, channel, err)
	}

	region := c.attrs.RegionID

	param, err := c.hw.MappedParamSet(channel)
	if err != nil {
		return fmt.Errorf("%w: no PaRAM mapped to channel %d", ErrCanceled, channel)
	}

	c.hw.FreeChannelRegion(region, channel, TriggerManual, channel, c.attrs.QueueNum)

	if err := c.hw.FreeDMAChannel(c.own, channel); err != nil {
		return fmt.Errorf("%w: freeing DMA channel %d: %v", ErrCanceled, channel, err)
	}
	if err := c.hw.FreeTCC(c.own, channel); err != nil {
		return fmt.Errorf("%w: freeing TCC %d: %v", ErrCanceled, channel, err)
	}
	if err := c.hw.FreeParamSet(c.own, param); err != nil {
		return fmt.Errorf("%w: freeing PaRAM %d: %v", ErrCanceled, param, err)
	}

	c.channels[channel].reset()
	c.allocated.Clear(channel)

	c.InvokeHook(HookCtx{Domain: c, Pos: HookPosRelease, Item: channel})

	return nil
}

// GetStatus assembles a live snapshot of a channel from the hardware
// interrupt and event state. A memory-to-memory channel is busy until its
// completion interrupt is observed; a peripheral-paced channel is busy only
// while events are still pending, since it can sit mid-flight with no
// interrupt raised.
func (c *Comp) GetStatus(channel uint32) (Status, error) {
	if err := c.channelMustBeAllocated(channel); err != nil {
		return Status{}, err
	}

	region := c.attrs.RegionID

	var intrStatus uint32
	if channel < 32 {
		intrStatus = c.hw.InterruptStatusLow(region)
	} else {
		intrStatus = c.hw.InterruptStatusHigh(region)
	}
	complete := intrStatus&(1<<(channel%32)) != 0
	eventsPending := c.hw.EventPending(channel)

	st := Status{Direction: c.channels[channel].dir}

	switch st.Direction {
	case DirMemToMem:
		st.Busy = !complete
	case DirMemToPeriph, DirPeriphToMem:
		st.Busy = !complete && eventsPending
	default:
		return Status{}, fmt.Errorf("%w: channel %d has no configured direction",
			ErrNotSupported, channel)
	}

	st.PendingLength = c.pendingLength(channel)

	return st, nil
}

// pendingLength multiplies the live A/B/C counts of the channel's bound
// descriptor back into a byte count.
func (c *Comp) pendingLength(channel uint32) uint32 {
	param, err := c.hw.MappedParamSet(channel)
	if err != nil {
		log.Printf("%s: no PaRAM mapped to channel %d", c.name, channel)
		return 0
	}
	return c.hw.ReadParamSet(param).PendingBytes()
}

func (c *Comp) channelMustBeAllocated(channel uint32) error {
	if channel >= c.attrs.NumChannels {
		return fmt.Errorf("%w: channel %d of %d",
			ErrInvalidArg, channel, c.attrs.NumChannels)
	}
	if !c.allocated.Test(channel) {
		return fmt.Errorf("%w: channel %d is not allocated", ErrInvalidArg, channel)
	}
	return nil
}
