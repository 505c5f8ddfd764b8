package edma

// TriggerMode selects how a channel's transfers are initiated.
type TriggerMode int

const (
	// TriggerManual starts a transfer from a software trigger write.
	TriggerManual TriggerMode = iota
	// TriggerEvent starts a transfer from a peripheral pacing event.
	TriggerEvent
)

func (m TriggerMode) String() string {
	if m == TriggerManual {
		return "Manual"
	}
	return "Event"
}

// AllocAny asks an allocator for any free resource instead of a specific id.
const AllocAny = ^uint32(0)

// Hardware is the capability interface of the vendor channel-controller
// layer. One implementation exists per hardware family; tests substitute a
// mock and the hwsim package provides a register-file model.
//
// Allocators take the instance's ownership bitmaps by reference: the
// controller owns allocation state, the hardware layer only consults it.
// Passing AllocAny picks the first free owned resource; the concrete id is
// returned, or ErrNoResource.
type Hardware interface {
	AllocDMAChannel(own *OwnedResources, id uint32) (uint32, error)
	AllocTCC(own *OwnedResources, id uint32) (uint32, error)
	AllocParamSet(own *OwnedResources, id uint32) (uint32, error)
	FreeDMAChannel(own *OwnedResources, id uint32) error
	FreeTCC(own *OwnedResources, id uint32) error
	FreeParamSet(own *OwnedResources, id uint32) error

	// ConfigureChannelRegion binds channel -> PaRAM -> TCC in the given
	// region and assigns the event queue. FreeChannelRegion undoes the
	// binding and disables the channel's triggers.
	ConfigureChannelRegion(region, channel, tcc, param, queue uint32)
	FreeChannelRegion(region, channel uint32, mode TriggerMode, tcc, queue uint32)

	// MappedParamSet returns the PaRAM slot currently bound to a channel.
	MappedParamSet(channel uint32) (uint32, error)

	ReadParamSet(param uint32) ParamSet
	WriteParamSet(param uint32, p ParamSet)

	EnableTransferRegion(region, channel uint32, mode TriggerMode)
	DisableTransferRegion(region, channel uint32, mode TriggerMode)
	ClearEventRegion(region, channel uint32)
	ClearInterruptRegion(region, tcc uint32)
	EnableEventInterruptRegion(region, channel uint32)
	DisableEventInterruptRegion(region, channel uint32)

	// InterruptStatusLow/High read the two halves of the 64-bit
	// completion-interrupt pending register for a region.
	InterruptStatusLow(region uint32) uint32
	InterruptStatusHigh(region uint32) uint32

	// EventPending reports whether a pacing event is latched for a channel.
	EventPending(channel uint32) bool

	// ClearAggregateStatus acknowledges the aggregator-level interrupt;
	// EvaluateInterrupt re-arms the line so still-pending completion bits
	// raise it again.
	ClearAggregateStatus()
	EvaluateInterrupt(region uint32)

	// ConnectCompletionIRQ registers the service routine driven when the
	// completion line fires. Enable/Disable gate the line while the
	// controller mutates ISR state.
	ConnectCompletionIRQ(service func())
	EnableCompletionIRQ()
	DisableCompletionIRQ()
}
