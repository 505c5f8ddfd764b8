package hwsim

const pageShift = 12
const pageSize = 1 << pageShift

// The transfer memory is sparse: pages materialize on first touch, so
// board-realistic addresses like 0x8000_0000 cost nothing.
func (c *Controller) page(addr uint32) []byte {
	base := addr >> pageShift
	p, ok := c.pages[base]
	if !ok {
		p = make([]byte, pageSize)
		c.pages[base] = p
	}
	return p
}

func (c *Controller) copyBytes(dst, src, n uint32) {
	for i := uint32(0); i < n; i++ {
		s := src + i
		d := dst + i
		c.page(d)[d%pageSize] = c.page(s)[s%pageSize]
	}
}

// WriteMemory stores bytes into the simulated transfer memory.
func (c *Controller) WriteMemory(addr uint32, data []byte) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, v := range data {
		a := addr + uint32(i)
		c.page(a)[a%pageSize] = v
	}
}

// ReadMemory copies bytes out of the simulated transfer memory.
func (c *Controller) ReadMemory(addr uint32, n uint32) []byte {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]byte, n)
	for i := range out {
		a := addr + uint32(i)
		out[i] = c.page(a)[a%pageSize]
	}
	return out
}
