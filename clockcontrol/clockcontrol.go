// Package clockcontrol gates and scales the functional clocks of a device
// through the system-controller firmware. It is the thin driver layer the
// eDMA bring-up uses to turn its module clock on before touching registers.
package clockcontrol

import (
	"fmt"

	"github.com/soclab/edma/tisci"
)

// Status reports the gating state of one clock.
type Status int

const (
	StatusUnknown Status = iota
	StatusOff
	StatusOn
)

func (s Status) String() string {
	switch s {
	case StatusOff:
		return "Off"
	case StatusOn:
		return "On"
	default:
		return "Unknown"
	}
}

// A Controller manages the clocks of one device.
type Controller struct {
	client *tisci.Client
	device uint32
}

// New creates a clock controller for device, speaking through client.
func New(client *tisci.Client, device uint32) *Controller {
	return &Controller{client: client, device: device}
}

// On requests a clock to run.
func (c *Controller) On(clock uint8) error {
	if err := c.client.SetClockState(
		c.device, clock, tisci.ClockSwStateReq,
	); err != nil {
		return fmt.Errorf("clock %d on: %w", clock, err)
	}
	return nil
}

// Off releases a clock, letting the firmware gate it.
func (c *Controller) Off(clock uint8) error {
	if err := c.client.SetClockState(
		c.device, clock, tisci.ClockSwStateUnreq,
	); err != nil {
		return fmt.Errorf("clock %d off: %w", clock, err)
	}
	return nil
}

// GetRate reads a clock frequency in Hz.
func (c *Controller) GetRate(clock uint8) (uint64, error) {
	return c.client.ClkGetFreq(c.device, clock)
}

// SetRate programs an exact clock frequency. The firmware is given no slack
// range; it either hits the rate or rejects it.
func (c *Controller) SetRate(clock uint8, rateHz uint64) error {
	return c.client.ClkSetFreq(c.device, clock, rateHz, rateHz, rateHz)
}

// GetStatus queries whether a clock is running.
func (c *Controller) GetStatus(clock uint8) (Status, error) {
	on, err := c.client.ClkIsOn(c.device, clock)
	if err != nil {
		return StatusUnknown, err
	}
	if on {
		return StatusOn, nil
	}

	off, err := c.client.ClkIsOff(c.device, clock)
	if err != nil {
		return StatusUnknown, err
	}
	if off {
		return StatusOff, nil
	}

	return StatusUnknown, nil
}
