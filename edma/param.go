package edma

import (
	"fmt"
	"log"
)

// Direction is the configured transfer direction of a channel.
type Direction int

const (
	// DirNone marks a channel that has not been configured.
	DirNone Direction = iota
	DirMemToMem
	DirMemToPeriph
	DirPeriphToMem
)

func (d Direction) String() string {
	switch d {
	case DirNone:
		return "None"
	case DirMemToMem:
		return "MemToMem"
	case DirMemToPeriph:
		return "MemToPeriph"
	case DirPeriphToMem:
		return "PeriphToMem"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// OPT field bits of a PaRAM entry.
const (
	// OptTCIntEnable raises the completion interrupt for the entry's TCC
	// when the final transfer completes.
	OptTCIntEnable uint32 = 1 << 20

	// OptSyncAB selects AB-synchronized transfers: one trigger moves one
	// frame (ACnt x BCnt bytes) and decrements CCnt.
	OptSyncAB uint32 = 1 << 2

	optTCCShift = 12
	optTCCMask  = uint32(0x3F) << optTCCShift
)

// LinkEnd in LinkAddr terminates a PaRAM chain.
const LinkEnd uint16 = 0xFFFF

// maxCount is the widest value the 16-bit ACnt/BCnt/CCnt descriptor fields
// can carry. Computations that exceed it are rejected, never truncated.
const maxCount = 0xFFFF

// A ParamSet is the hardware-resident transfer descriptor: addresses, the
// three-level A/B/C count decomposition, address index strides between
// arrays and frames, linking, and the OPT control word.
type ParamSet struct {
	Opt        uint32
	SrcAddr    uint32
	DstAddr    uint32
	ACnt       uint16
	BCnt       uint16
	SrcBIdx    int16
	DstBIdx    int16
	SrcBIdxExt int8
	DstBIdxExt int8
	LinkAddr   uint16
	BCntReload uint16
	SrcCIdx    int16
	DstCIdx    int16
	CCnt       uint16
}

// TCC extracts the transfer-completion code tagged into the OPT word.
func (p ParamSet) TCC() uint32 {
	return (p.Opt & optTCCMask) >> optTCCShift
}

// PendingBytes is the byte count still described by the live counts. The
// engine zeroes CCnt when the final frame retires, so a finished descriptor
// reads back as zero.
func (p ParamSet) PendingBytes() uint32 {
	return uint32(p.ACnt) * uint32(p.BCnt) * uint32(p.CCnt)
}

// withTCC merges a completion code into the OPT word.
func withTCC(opt, tcc uint32) uint32 {
	return opt | ((tcc << optTCCShift) & optTCCMask)
}

// paramBIdx splits a byte stride into the signed 16-bit B-index field and
// its extension byte, for strides wider than 15 bits.
func paramBIdx(stride uint32) (int16, int8) {
	return int16(stride & 0x7FFF), int8(stride >> 15)
}

// A Block describes one contiguous transfer block. Only the head block of a
// request is honored; the engine does not chain scatter-gather lists.
type Block struct {
	SrcAddr uint32
	DstAddr uint32
	// Size is the total byte count of the block.
	Size uint32
}

// A TransferRequest is the abstract transfer description handed to
// Configure. Burst lengths apply to peripheral-paced directions only.
type TransferRequest struct {
	Direction Direction

	SrcDataSize uint32
	DstDataSize uint32

	SrcBurstLength uint32
	DstBurstLength uint32

	Blocks []Block

	// Callback, when set, is invoked from interrupt-dispatch context on
	// block and final completion. It must not block.
	Callback Callback
	UserData any
}

// composeParamSet translates a transfer request into a PaRAM descriptor
// tagged with tcc. Every direction is validated strictly: a mismatch is an
// error, never a best-effort coercion, and no count is written truncated.
func composeParamSet(req TransferRequest, block Block, tcc uint32) (ParamSet, error) {
	if req.SrcDataSize == 0 || req.DstDataSize == 0 {
		return ParamSet{}, fmt.Errorf("%w: zero data element size", ErrInvalidArg)
	}
	if req.SrcDataSize > maxCount || req.DstDataSize > maxCount {
		return ParamSet{}, fmt.Errorf(
			"%w: data element size exceeds 16-bit descriptor field",
			ErrNotSupported)
	}

	p := ParamSet{
		SrcAddr:  block.SrcAddr,
		DstAddr:  block.DstAddr,
		LinkAddr: LinkEnd,
	}

	switch req.Direction {
	case DirMemToMem:
		// A = element size, B = block/element, C = 1: the whole block moves
		// as a single AB-synchronized frame on one manual trigger.
		if req.SrcDataSize != req.DstDataSize {
			return ParamSet{}, fmt.Errorf(
				"%w: source data size %d != destination data size %d",
				ErrNotSupported, req.SrcDataSize, req.DstDataSize)
		}
		if block.Size%req.SrcDataSize != 0 {
			return ParamSet{}, fmt.Errorf(
				"%w: block size %d not a multiple of data size %d",
				ErrNotSupported, block.Size, req.SrcDataSize)
		}
		frames := block.Size / req.SrcDataSize
		if frames > maxCount {
			return ParamSet{}, fmt.Errorf(
				"%w: frame count %d exceeds 16-bit descriptor field",
				ErrNotSupported, frames)
		}

		aCnt := req.SrcDataSize
		p.ACnt = uint16(aCnt)
		p.BCnt = uint16(frames)
		p.CCnt = 1
		p.BCntReload = p.BCnt

		p.SrcBIdx, p.SrcBIdxExt = paramBIdx(aCnt)
		p.DstBIdx, p.DstBIdxExt = paramBIdx(aCnt)
		p.SrcCIdx = int16(aCnt)
		p.DstCIdx = int16(aCnt)

	case DirMemToPeriph, DirPeriphToMem:
		if req.SrcDataSize != req.DstDataSize {
			return ParamSet{}, fmt.Errorf(
				"%w: source data size %d != destination data size %d",
				ErrNotSupported, req.SrcDataSize, req.DstDataSize)
		}
		if req.SrcBurstLength != req.DstBurstLength {
			return ParamSet{}, fmt.Errorf(
				"%w: source burst length %d != destination burst length %d",
				ErrNotSupported, req.SrcBurstLength, req.DstBurstLength)
		}
		if req.SrcBurstLength == 0 ||
			req.SrcBurstLength%req.SrcDataSize != 0 {
			return ParamSet{}, fmt.Errorf(
				"%w: burst length %d not a multiple of data size %d",
				ErrNotSupported, req.SrcBurstLength, req.SrcDataSize)
		}
		if block.Size%req.SrcBurstLength != 0 {
			return ParamSet{}, fmt.Errorf(
				"%w: block size %d not a multiple of burst length %d",
				ErrNotSupported, block.Size, req.SrcBurstLength)
		}
		blocks := block.Size / req.SrcBurstLength
		if blocks > maxCount {
			return ParamSet{}, fmt.Errorf(
				"%w: block count %d exceeds 16-bit descriptor field",
				ErrNotSupported, blocks)
		}
		frames := req.SrcBurstLength / req.SrcDataSize
		if frames > maxCount {
			return ParamSet{}, fmt.Errorf(
				"%w: frame count %d exceeds 16-bit descriptor field",
				ErrNotSupported, frames)
		}

		aCnt := req.SrcDataSize
		p.ACnt = uint16(aCnt)
		p.BCnt = uint16(frames)
		p.CCnt = uint16(blocks)
		p.BCntReload = p.BCnt

		// The memory side walks the buffer; the peripheral side stays on
		// its data register (stride 0).
		if req.Direction == DirMemToPeriph {
			p.SrcBIdx, p.SrcBIdxExt = paramBIdx(aCnt)
			p.SrcCIdx = int16(req.SrcBurstLength)
		} else {
			p.DstBIdx, p.DstBIdxExt = paramBIdx(aCnt)
			p.DstCIdx = int16(req.SrcBurstLength)
		}

	default:
		return ParamSet{}, fmt.Errorf("%w: direction %s",
			ErrNotSupported, req.Direction)
	}

	p.Opt = withTCC(OptTCIntEnable|OptSyncAB, tcc)

	return p, nil
}

// headBlock returns the block the descriptor is built from, warning when a
// scatter-gather list is handed in.
func headBlock(req TransferRequest) (Block, error) {
	if len(req.Blocks) == 0 {
		return Block{}, fmt.Errorf("%w: request carries no block", ErrInvalidArg)
	}
	if len(req.Blocks) > 1 {
		log.Printf("edma: only the head block of %d is configured", len(req.Blocks))
	}
	return req.Blocks[0], nil
}
