// Package hwsim models the eDMA channel controller as a register file with
// an attached flat byte memory. It implements the edma.Hardware contract
// closely enough that the channel driver cannot tell it from a vendor HAL:
// triggers move real bytes, descriptor counts decrement in place, and
// completion codes latch into pending registers that drive a simulated
// interrupt line.
package hwsim

import (
	"fmt"
	"log"
	"sync"

	"github.com/soclab/edma/edma"
)

const unmapped = ^uint32(0)

// regionRegs is the register view one shadow region has of the controller.
type regionRegs struct {
	ipr     uint64 // interrupt pending, one bit per completion code
	ier     uint64 // interrupt enable
	eventEn uint64 // event-trigger enable
}

// binding records the region/TCC/PaRAM/queue mapping of one channel.
type binding struct {
	region uint32
	tcc    uint32
	param  uint32
	queue  uint32
	bound  bool
}

// A Controller is one simulated eDMA channel controller. All register and
// memory state is guarded by one mutex; the registered interrupt service
// function is always invoked with the mutex released, since it re-enters the
// controller through the edma.Hardware methods.
type Controller struct {
	name string

	numChannels  uint32
	numParamSets uint32
	numRegions   uint32

	mu sync.Mutex

	params   []edma.ParamSet
	bindings []binding
	regions  []regionRegs

	busyChannels map[uint32]bool
	busyTCCs     map[uint32]bool
	busyParams   map[uint32]bool

	events     uint64 // latched peripheral events, one bit per channel
	aggregate  bool
	irqEnabled bool
	service    func()

	pages map[uint32][]byte
}

// Name returns the name of the simulated controller.
func (c *Controller) Name() string {
	return c.name
}

func (c *Controller) alloc(
	owned edma.Bitmap,
	busy map[uint32]bool,
	id, limit uint32,
	kind string,
) (uint32, error) {
	if id == edma.AllocAny {
		for i := uint32(0); i < limit; i++ {
			if owned.Test(i) && !busy[i] {
				busy[i] = true
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: no free %s", edma.ErrNoResource, kind)
	}

	if id >= limit || !owned.Test(id) {
		return 0, fmt.Errorf("%w: %s %d is not owned", edma.ErrNoResource, kind, id)
	}
	if busy[id] {
		return 0, fmt.Errorf("%w: %s %d is in use", edma.ErrNoResource, kind, id)
	}
	busy[id] = true

	return id, nil
}

func (c *Controller) free(busy map[uint32]bool, id uint32, kind string) error {
	if !busy[id] {
		return fmt.Errorf("%w: %s %d is not allocated", edma.ErrNoResource, kind, id)
	}
	delete(busy, id)
	return nil
}

// AllocDMAChannel claims a channel from the instance's owned pool.
func (c *Controller) AllocDMAChannel(
	own *edma.OwnedResources, id uint32,
) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alloc(own.Channels, c.busyChannels, id, c.numChannels, "DMA channel")
}

// AllocTCC claims a transfer-completion code from the owned pool.
func (c *Controller) AllocTCC(
	own *edma.OwnedResources, id uint32,
) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alloc(own.TCCs, c.busyTCCs, id, c.numChannels, "TCC")
}

// AllocParamSet claims a PaRAM slot from the owned pool.
func (c *Controller) AllocParamSet(
	own *edma.OwnedResources, id uint32,
) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.alloc(own.ParamSets, c.busyParams, id, c.numParamSets, "PaRAM set")
}

// FreeDMAChannel returns a channel to the pool.
func (c *Controller) FreeDMAChannel(_ *edma.OwnedResources, id uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.free(c.busyChannels, id, "DMA channel")
}

// FreeTCC returns a completion code to the pool.
func (c *Controller) FreeTCC(_ *edma.OwnedResources, id uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.free(c.busyTCCs, id, "TCC")
}

// FreeParamSet returns a PaRAM slot to the pool.
func (c *Controller) FreeParamSet(_ *edma.OwnedResources, id uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.free(c.busyParams, id, "PaRAM set")
}

// ConfigureChannelRegion binds a channel to its completion code, PaRAM slot
// and event queue inside a shadow region.
func (c *Controller) ConfigureChannelRegion(
	region, channel, tcc, param, queue uint32,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if channel >= c.numChannels || region >= c.numRegions {
		log.Printf("%s: binding channel %d region %d out of range",
			c.name, channel, region)
		return
	}
	c.bindings[channel] = binding{
		region: region, tcc: tcc, param: param, queue: queue, bound: true,
	}
}

// FreeChannelRegion unbinds a channel from its shadow region and disarms its
// event trigger.
func (c *Controller) FreeChannelRegion(
	region, channel uint32, _ edma.TriggerMode, _, _ uint32,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if channel >= c.numChannels || region >= c.numRegions {
		return
	}
	c.regions[region].eventEn &^= 1 << channel
	c.bindings[channel] = binding{param: unmapped}
}

// MappedParamSet returns the PaRAM slot bound to a channel.
func (c *Controller) MappedParamSet(channel uint32) (uint32, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if channel >= c.numChannels || !c.bindings[channel].bound {
		return 0, fmt.Errorf("%w: channel %d has no PaRAM mapping",
			edma.ErrNoResource, channel)
	}
	return c.bindings[channel].param, nil
}

// ReadParamSet returns the live contents of a PaRAM slot.
func (c *Controller) ReadParamSet(param uint32) edma.ParamSet {
	c.mu.Lock()
	defer c.mu.Unlock()

	if param >= c.numParamSets {
		log.Printf("%s: PaRAM read %d out of range", c.name, param)
		return edma.ParamSet{}
	}
	return c.params[param]
}

// WriteParamSet programs a PaRAM slot.
func (c *Controller) WriteParamSet(param uint32, p edma.ParamSet) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if param >= c.numParamSets {
		log.Printf("%s: PaRAM write %d out of range", c.name, param)
		return
	}
	c.params[param] = p
}

// EnableTransferRegion arms a trigger mode. A manual trigger executes one
// AB-synchronized frame immediately; arming event triggering consumes a
// latched peripheral event if one is already pending.
func (c *Controller) EnableTransferRegion(
	region, channel uint32, mode edma.TriggerMode,
) {
	c.mu.Lock()

	fire := false
	switch mode {
	case edma.TriggerManual:
		fire = c.runFrame(channel)
	case edma.TriggerEvent:
		if region < c.numRegions {
			c.regions[region].eventEn |= 1 << channel
			if c.events&(1<<channel) != 0 {
				c.events &^= 1 << channel
				fire = c.runFrame(channel)
			}
		}
	}

	c.mu.Unlock()
	c.fire(fire)
}

// DisableTransferRegion disarms a trigger mode. A manual trigger is
// edge-like and has nothing to disarm.
func (c *Controller) DisableTransferRegion(
	region, channel uint32, mode edma.TriggerMode,
) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if mode == edma.TriggerEvent && region < c.numRegions {
		c.regions[region].eventEn &^= 1 << channel
	}
}

// ClearEventRegion drops a latched peripheral event.
func (c *Controller) ClearEventRegion(_, channel uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events &^= 1 << channel
}

// ClearInterruptRegion acknowledges one pending completion code.
func (c *Controller) ClearInterruptRegion(region, tcc uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if region < c.numRegions {
		c.regions[region].ipr &^= 1 << tcc
	}
}

// EnableEventInterruptRegion unmasks the completion interrupt of a channel's
// completion code.
func (c *Controller) EnableEventInterruptRegion(region, channel uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if region < c.numRegions {
		c.regions[region].ier |= 1 << channel
	}
}

// DisableEventInterruptRegion masks the completion interrupt of a channel's
// completion code.
func (c *Controller) DisableEventInterruptRegion(region, channel uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if region < c.numRegions {
		c.regions[region].ier &^= 1 << channel
	}
}

// InterruptStatusLow reads pending completion codes 0 through 31.
func (c *Controller) InterruptStatusLow(region uint32) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if region >= c.numRegions {
		return 0
	}
	return uint32(c.regions[region].ipr)
}

// InterruptStatusHigh reads pending completion codes 32 through 63.
func (c *Controller) InterruptStatusHigh(region uint32) uint32 {
	c.mu.Lock()
	defer c.mu.Unlock()

	if region >= c.numRegions {
		return 0
	}
	return uint32(c.regions[region].ipr >> 32)
}

// EventPending reports whether a peripheral event is latched for a channel.
func (c *Controller) EventPending(channel uint32) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.events&(1<<channel) != 0
}

// ClearAggregateStatus acknowledges the aggregated completion line.
func (c *Controller) ClearAggregateStatus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aggregate = false
}

// EvaluateInterrupt re-fires the completion line when unmasked codes are
// still pending, so codes raised during a dispatch scan are not lost.
func (c *Controller) EvaluateInterrupt(region uint32) {
	c.mu.Lock()

	fire := false
	if region < c.numRegions {
		r := &c.regions[region]
		if r.ipr&r.ier != 0 {
			c.aggregate = true
			fire = c.irqEnabled
		}
	}

	c.mu.Unlock()
	c.fire(fire)
}

// ConnectCompletionIRQ registers the interrupt service function.
func (c *Controller) ConnectCompletionIRQ(service func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.service = service
}

// EnableCompletionIRQ unmasks the completion line. The line is level
// sensitive: enabling it with unmasked codes already pending fires the
// service function immediately.
func (c *Controller) EnableCompletionIRQ() {
	c.mu.Lock()

	c.irqEnabled = true
	fire := false
	for i := range c.regions {
		if c.regions[i].ipr&c.regions[i].ier != 0 {
			c.aggregate = true
			fire = true
		}
	}

	c.mu.Unlock()
	c.fire(fire)
}

// DisableCompletionIRQ masks the completion line.
func (c *Controller) DisableCompletionIRQ() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.irqEnabled = false
}

// Event delivers one peripheral pacing event to a channel. With event
// triggering armed the event executes a frame; otherwise it latches in the
// event-pending register until armed or cleared.
func (c *Controller) Event(channel uint32) {
	c.mu.Lock()

	fire := false
	armed := false
	if channel < c.numChannels {
		b := c.bindings[channel]
		if b.bound && c.regions[b.region].eventEn&(1<<channel) != 0 {
			armed = true
		}
	}
	if armed {
		fire = c.runFrame(channel)
	} else {
		c.events |= 1 << channel
	}

	c.mu.Unlock()
	c.fire(fire)
}

// runFrame executes one AB-synchronized frame of a channel's transfer: BCnt
// arrays of ACnt bytes, source and destination walking their B-index
// strides, then a C-index hop and a CCnt decrement written back to the live
// descriptor. Draining CCnt to zero latches the descriptor's completion
// code. Returns whether the completion line should fire; the caller invokes
// the service function after releasing the mutex.
func (c *Controller) runFrame(channel uint32) bool {
	if channel >= c.numChannels || !c.bindings[channel].bound {
		log.Printf("%s: trigger on unbound channel %d", c.name, channel)
		return false
	}

	b := c.bindings[channel]
	p := &c.params[b.param]
	if p.CCnt == 0 {
		return false
	}

	srcBIdx := strideOf(p.SrcBIdx, p.SrcBIdxExt)
	dstBIdx := strideOf(p.DstBIdx, p.DstBIdxExt)
	for i := int64(0); i < int64(p.BCnt); i++ {
		src := uint32(int64(p.SrcAddr) + i*srcBIdx)
		dst := uint32(int64(p.DstAddr) + i*dstBIdx)
		c.copyBytes(dst, src, uint32(p.ACnt))
	}

	p.SrcAddr = uint32(int64(p.SrcAddr) + int64(p.SrcCIdx))
	p.DstAddr = uint32(int64(p.DstAddr) + int64(p.DstCIdx))
	p.CCnt--

	if p.CCnt != 0 || p.Opt&edma.OptTCIntEnable == 0 {
		return false
	}

	r := &c.regions[b.region]
	r.ipr |= 1 << p.TCC()
	c.aggregate = true

	return c.irqEnabled && r.ipr&r.ier != 0
}

// fire invokes the registered service function with the mutex released. The
// function pointer is re-read under the lock so a concurrent
// ConnectCompletionIRQ is observed safely.
func (c *Controller) fire(need bool) {
	if !need {
		return
	}

	c.mu.Lock()
	service := c.service
	c.mu.Unlock()

	if service != nil {
		service()
	}
}

// strideOf rejoins the split 15-bit B-index field and its extension byte
// into the full byte stride.
func strideOf(bidx int16, ext int8) int64 {
	return int64(ext)<<15 | int64(bidx)&0x7FFF
}
