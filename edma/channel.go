package edma

// TransferStatus classifies a completion event delivered to a callback.
type TransferStatus int

const (
	// StatusBlock reports a partial completion: the descriptor still
	// carries a nonzero remaining count.
	StatusBlock TransferStatus = iota
	// StatusComplete reports that the descriptor drained to zero.
	StatusComplete
)

func (s TransferStatus) String() string {
	if s == StatusComplete {
		return "Complete"
	}
	return "Block"
}

// Callback is invoked from interrupt-dispatch context when a configured
// channel completes a block or the whole transfer. It must be fast,
// non-blocking, and must not call back into the lifecycle entry points of
// the same channel.
type Callback func(c *Comp, userData any, channel uint32, status TransferStatus)

// channelState is the per-channel runtime record. It is written only by
// Configure and ChanRelease; the dispatcher reads it. Callers serialize
// lifecycle calls per channel; the allocation bit in Comp.allocated is the
// only field with cross-context atomicity.
type channelState struct {
	dir      Direction
	callback Callback
	userData any
}

func (s *channelState) reset() {
	s.dir = DirNone
	s.callback = nil
	s.userData = nil
}

// Status is a point-in-time snapshot of a channel, assembled from live
// hardware state. PendingLength re-reads the descriptor counts and is not a
// monotonic counter.
type Status struct {
	Direction     Direction
	Busy          bool
	PendingLength uint32
}
