package edma

import "fmt"

// ResourceType identifies one of the finite hardware resource pools that a
// controller instance partitions among regions.
type ResourceType int

const (
	// ResourceDMAChannel partitions DMA channels. Reserving a channel range
	// also reserves the matching transfer-completion codes, since the engine
	// tags channel N with TCC N.
	ResourceDMAChannel ResourceType = iota

	// ResourceParamSet partitions PaRAM descriptor slots.
	ResourceParamSet
)

func (t ResourceType) String() string {
	switch t {
	case ResourceDMAChannel:
		return "DMAChannel"
	case ResourceParamSet:
		return "ParamSet"
	default:
		return fmt.Sprintf("ResourceType(%d)", int(t))
	}
}

// A PartitionEntry reserves the inclusive index range [Start, End] of one
// resource type for this controller instance. Entries come from static
// board configuration and are immutable after Build.
type PartitionEntry struct {
	Type       ResourceType
	Start, End uint32
}

// OwnedResources holds the ownership bitmaps for one controller instance:
// which channels, completion codes and PaRAM slots this instance may hand
// out. The instance owns the memory; hardware-facing calls receive it by
// reference and never copy or retain it.
type OwnedResources struct {
	Channels  Bitmap
	TCCs      Bitmap
	ParamSets Bitmap
}

func newOwnedResources(numChannels, numParamSets uint32) *OwnedResources {
	return &OwnedResources{
		Channels:  NewBitmap(numChannels),
		TCCs:      NewBitmap(numChannels),
		ParamSets: NewBitmap(numParamSets),
	}
}

// apply validates one partition entry against the declared pool sizes and
// marks the ownership bitmaps. Malformed entries are rejected before any
// bit is set.
func (r *OwnedResources) apply(
	e PartitionEntry,
	numChannels, numParamSets uint32,
) error {
	switch e.Type {
	case ResourceDMAChannel:
		if e.Start > e.End || e.End >= numChannels {
			return fmt.Errorf("%w: channel partition [%d, %d] of %d channels",
				ErrInvalidArg, e.Start, e.End, numChannels)
		}
		r.Channels.MarkRange(e.Start, e.End)
		r.TCCs.MarkRange(e.Start, e.End)
	case ResourceParamSet:
		if e.Start > e.End || e.End >= numParamSets {
			return fmt.Errorf("%w: PaRAM partition [%d, %d] of %d sets",
				ErrInvalidArg, e.Start, e.End, numParamSets)
		}
		r.ParamSets.MarkRange(e.Start, e.End)
	default:
		return fmt.Errorf("%w: resource type %d", ErrInvalidArg, int(e.Type))
	}
	return nil
}
