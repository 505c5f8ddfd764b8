package edma

import (
	"log"
	"sync/atomic"
)

// WordBits is the width of one bitmap storage word.
const WordBits = 32

// A Bitmap is a word-packed bit vector tracking a finite integer-indexed
// resource pool. Bit i set means resource i is owned/allocated. The vector
// never grows after construction.
type Bitmap struct {
	words []uint32
}

// NewBitmap creates a bitmap able to hold nBits bits, all clear.
func NewBitmap(nBits uint32) Bitmap {
	return Bitmap{words: make([]uint32, (nBits+WordBits-1)/WordBits)}
}

// Words exposes the backing storage. Hardware-facing code reads the raw
// words when programming ownership registers.
func (b Bitmap) Words() []uint32 {
	return b.words
}

// Test reports whether bit i is set. Out-of-range indices read as clear.
func (b Bitmap) Test(i uint32) bool {
	w := i / WordBits
	if int(w) >= len(b.words) {
		return false
	}
	return b.words[w]&(1<<(i%WordBits)) != 0
}

// MarkRange sets bits [start, end] inclusive. A request against a
// zero-storage bitmap, with start > end, or with end beyond the vector is
// logged and ignored: partition data is static and trusted, but checked.
//
// The range is split three ways so that marking hundreds of resources never
// loops per bit: a masked OR when both ends share a word, otherwise a
// partial head word, full interior words, and a partial tail word.
func (b Bitmap) MarkRange(start, end uint32) {
	if b.words == nil || start > end || end >= uint32(len(b.words))*WordBits {
		log.Printf("edma: ignoring invalid resource range: words=%d start=%d end=%d",
			len(b.words), start, end)
		return
	}

	startWord := start / WordBits
	endWord := end / WordBits
	startBit := start % WordBits
	endBit := end % WordBits

	if startWord == endWord {
		mask := uint32((uint64(1)<<(endBit-startBit+1))-1) << startBit
		b.words[startWord] |= mask
		return
	}

	b.words[startWord] |= ^uint32(0) << startBit
	for w := startWord + 1; w < endWord; w++ {
		b.words[w] = ^uint32(0)
	}
	b.words[endWord] |= uint32(uint64(1)<<(endBit+1) - 1)
}

// An AtomicBitmap is a word-packed bit vector whose single-bit operations
// are safe against concurrent mutation from thread and interrupt-service
// contexts. It is the only synchronization primitive guarding dynamic
// allocate/free of channels.
type AtomicBitmap struct {
	words []uint32
}

// NewAtomicBitmap creates an atomic bitmap able to hold nBits bits.
func NewAtomicBitmap(nBits uint32) AtomicBitmap {
	return AtomicBitmap{words: make([]uint32, (nBits+WordBits-1)/WordBits)}
}

// Test reports whether bit i is set.
func (b AtomicBitmap) Test(i uint32) bool {
	return atomic.LoadUint32(&b.words[i/WordBits])&(1<<(i%WordBits)) != 0
}

// TestAndSet sets bit i and returns its previous value.
func (b AtomicBitmap) TestAndSet(i uint32) bool {
	w := &b.words[i/WordBits]
	mask := uint32(1) << (i % WordBits)
	for {
		old := atomic.LoadUint32(w)
		if old&mask != 0 {
			return true
		}
		if atomic.CompareAndSwapUint32(w, old, old|mask) {
			return false
		}
	}
}

// Clear clears bit i.
func (b AtomicBitmap) Clear(i uint32) {
	w := &b.words[i/WordBits]
	mask := uint32(1) << (i % WordBits)
	for {
		old := atomic.LoadUint32(w)
		if atomic.CompareAndSwapUint32(w, old, old&^mask) {
			return
		}
	}
}
