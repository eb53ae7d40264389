package mem

import "fmt"

// PagedCore provides the page bookkeeping common to any paged memory model.
type PagedCore struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Limit, when non-zero, is the number of addressable cells; any load or
	// store at or past it results in a LimitError.
	Limit uint

	bases  []uint
	sizes  []uint
	extent uint
}

// AddressError indicates that a memory operation was given a negative address.
type AddressError struct {
	Addr int
	Op   string
}

func (ae AddressError) Error() string {
	return fmt.Sprintf("negative address %v in %v", ae.Addr, ae.Op)
}

// LimitError indicates that a memory operation, like load or store, exceeded a limit.
type LimitError struct {
	Addr uint
	Op   string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit exceeded by %v @%v", lim.Op, lim.Addr)
}

// Extent returns one past the highest address ever stored, or 0 for an
// untouched memory. Every address below Extent reads back as a cell of the
// dense memory image; everything at or past it reads as 0.
func (m *PagedCore) Extent() int { return int(m.extent) }

// check validates a span of n cells starting at addr, returning the unsigned
// start address.
func (m *PagedCore) check(addr, n int, op string) (uint, error) {
	if addr < 0 {
		return 0, AddressError{addr, op}
	}
	start := uint(addr)
	last := start
	if n > 1 {
		last += uint(n - 1)
	}
	if lim := m.Limit; lim != 0 && last >= lim {
		return 0, LimitError{last, op}
	}
	return start, nil
}

func (m *PagedCore) findPage(addr uint) int {
	i, j := 0, len(m.bases)
	for i < j {
		h := int(uint(i+j)>>1) + 1
		if h < len(m.bases) && m.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

func (m *PagedCore) allocPage(pageID int, addr uint) (base, size uint, isNew bool) {
	if pageID == len(m.bases) {
		base = addr / m.PageSize * m.PageSize
		size = m.PageSize
		if i := len(m.bases) - 1; i >= 0 {
			lastEnd := m.bases[i] + m.sizes[i]
			if base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		m.bases = append(m.bases, base)
		m.sizes = append(m.sizes, size)
		return base, size, true
	}

	base = m.bases[pageID]
	if addr < base {
		size = m.PageSize
		nextBase := base
		base = addr / m.PageSize * m.PageSize
		if pageID > 0 {
			if prevEnd := m.bases[pageID-1] + m.sizes[pageID-1]; base < prevEnd {
				base = prevEnd
			}
		}
		if gapSize := nextBase - base; size > gapSize {
			size = gapSize
		}
		m.bases = append(m.bases, 0)
		m.sizes = append(m.sizes, 0)
		copy(m.bases[pageID+1:], m.bases[pageID:])
		copy(m.sizes[pageID+1:], m.sizes[pageID:])
		m.bases[pageID] = base
		m.sizes[pageID] = size
		return base, size, true
	}

	return base, m.sizes[pageID], false
}

func (m *PagedCore) reset() {
	m.bases = m.bases[:0]
	m.sizes = m.sizes[:0]
	m.extent = 0
}
