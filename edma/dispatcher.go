package edma

// ServiceCompletionInterrupt is the service routine for the aggregated
// completion line, registered with the hardware at Build. It runs in
// interrupt-dispatch context: both halves of the 64-bit pending register
// are read, every raised completion code is acknowledged and demultiplexed
// to its channel, and the aggregator is cleared and re-evaluated so codes
// raised during the scan fire the line again.
//
// There is no queuing. A callback that blocks stalls the whole scan.
func (c *Comp) ServiceCompletionInterrupt() {
	region := c.attrs.RegionID

	intrLow := c.hw.InterruptStatusLow(region)
	intrHigh := c.hw.InterruptStatusHigh(region)

	for tcc := uint32(0); tcc < 32; tcc++ {
		if intrLow&(1<<tcc) != 0 {
			c.hw.ClearInterruptRegion(region, tcc)
			c.dispatchCompletion(tcc)
		}
	}
	for tcc := uint32(32); tcc < 64; tcc++ {
		if intrHigh&(1<<(tcc-32)) != 0 {
			c.hw.ClearInterruptRegion(region, tcc)
			c.dispatchCompletion(tcc)
		}
	}

	c.hw.ClearAggregateStatus()
	c.hw.EvaluateInterrupt(region)
}

// dispatchCompletion classifies one completion event and invokes the
// channel's callback. The engine tags channel N with completion code N, so
// the code is the channel index. A partial completion still carries a
// nonzero residual in the descriptor counts.
func (c *Comp) dispatchCompletion(tcc uint32) {
	if tcc >= c.attrs.NumChannels {
		return
	}

	state := &c.channels[tcc]
	if state.callback == nil {
		return
	}

	status := StatusComplete
	if c.pendingLength(tcc) != 0 {
		status = StatusBlock
	}

	c.InvokeHook(HookCtx{
		Domain: c,
		Pos:    HookPosCompletion,
		Item:   tcc,
		Detail: status,
	})

	state.callback(c, state.userData, tcc, status)
}
