package hwsim

import "github.com/soclab/edma/edma"

// Builder can be used to build a simulated channel controller.
type Builder struct {
	numChannels  uint32
	numParamSets uint32
	numRegions   uint32
}

// MakeBuilder creates a builder with the geometry of a common eDMA instance.
func MakeBuilder() Builder {
	return Builder{
		numChannels:  64,
		numParamSets: 128,
		numRegions:   8,
	}
}

// WithNumChannels sets the number of DMA channels and completion codes.
func (b Builder) WithNumChannels(n uint32) Builder {
	b.numChannels = n
	return b
}

// WithNumParamSets sets the number of PaRAM descriptor slots.
func (b Builder) WithNumParamSets(n uint32) Builder {
	b.numParamSets = n
	return b
}

// WithNumRegions sets the number of shadow regions.
func (b Builder) WithNumRegions(n uint32) Builder {
	b.numRegions = n
	return b
}

// Build creates the simulated controller with all registers clear.
func (b Builder) Build(name string) *Controller {
	c := &Controller{
		name:         name,
		numChannels:  b.numChannels,
		numParamSets: b.numParamSets,
		numRegions:   b.numRegions,
		params:       make([]edma.ParamSet, b.numParamSets),
		bindings:     make([]binding, b.numChannels),
		regions:      make([]regionRegs, b.numRegions),
		busyChannels: make(map[uint32]bool),
		busyTCCs:     make(map[uint32]bool),
		busyParams:   make(map[uint32]bool),
		pages:        make(map[uint32][]byte),
	}
	for i := range c.bindings {
		c.bindings[i].param = unmapped
	}
	return c
}
