package edma

import "fmt"

// Builder can be used to build an eDMA controller instance.
type Builder struct {
	hw    Hardware
	attrs Attrs
}

// MakeBuilder creates a new builder with the default instance attributes.
func MakeBuilder() Builder {
	return Builder{
		attrs: Attrs{
			NumChannels:  64,
			NumParamSets: 128,
			NumRegions:   8,
			NumQueues:    2,
		},
	}
}

// WithHardware sets the hardware layer the controller drives.
func (b Builder) WithHardware(hw Hardware) Builder {
	b.hw = hw
	return b
}

// WithAttrs sets the per-instance configuration from board data.
func (b Builder) WithAttrs(a Attrs) Builder {
	b.attrs = a
	return b
}

// Build validates the configuration, applies the resource partition table
// to fresh ownership bitmaps, and connects the completion-interrupt service
// routine. Malformed board data is rejected here, before the controller
// can touch hardware.
func (b Builder) Build(name string) (*Comp, error) {
	if b.hw == nil {
		return nil, fmt.Errorf("%w: no hardware layer", ErrInvalidArg)
	}
	if err := b.attrs.validate(); err != nil {
		return nil, err
	}

	own := newOwnedResources(b.attrs.NumChannels, b.attrs.NumParamSets)
	for _, e := range b.attrs.Partitions {
		if err := own.apply(e, b.attrs.NumChannels, b.attrs.NumParamSets); err != nil {
			return nil, err
		}
	}

	c := &Comp{
		name:      name,
		hw:        b.hw,
		attrs:     b.attrs,
		own:       own,
		allocated: NewAtomicBitmap(b.attrs.NumChannels),
		channels:  make([]channelState, b.attrs.NumChannels),
	}
	for i := range c.channels {
		c.channels[i].dir = DirNone
	}

	b.hw.ConnectCompletionIRQ(c.ServiceCompletionInterrupt)

	return c, nil
}
