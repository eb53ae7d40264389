package mem

// DefaultIntsPageSize provides a default for Ints.PageSize.
const DefaultIntsPageSize = 256

// Ints implements an integer-oriented paged memory.
// Pages may not necessarily be the same size, but usually are in practice.
// Addresses are never negative; unallocated cells read as 0.
type Ints struct {
	PagedCore
	pages [][]int
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Ints) Size() int {
	if i := len(m.bases) - 1; i >= 0 {
		return int(m.bases[i] + uint(len(m.pages[i])))
	}
	return 0
}

// Load returns a single value from the given address.
// Unallocated pages are left unallocated, resulting in implicit 0 values.
// Returns an error if addr is negative or exceeds any Limit.
func (m *Ints) Load(addr int) (int, error) {
	at, err := m.check(addr, 1, "load")
	if err != nil {
		return 0, err
	}

	if len(m.pages) == 0 {
		return 0, nil
	}

	pageID := m.findPage(at)
	base := m.bases[pageID]
	page := m.pages[pageID]
	if i := int(at) - int(base); 0 <= i && i < len(page) {
		return page[i], nil
	}

	return 0, nil
}

// LoadInto reads len(buf) integers from memory starting at addr.
// Skips any unallocated pages, zeroing the result buffer where encountered.
// Returns an error if Limit would be exceeded; no partial load is done.
func (m *Ints) LoadInto(addr int, buf []int) error {
	if len(buf) == 0 {
		return nil
	}

	at, err := m.check(addr, len(buf), "load")
	if err != nil {
		return err
	}
	end := at + uint(len(buf))

	for pageID := m.findPage(at); at < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base > end {
			break
		}

		if skip := int(base) - int(at); skip > 0 {
			if skip >= len(buf) {
				break
			}
			at += uint(skip)
			for i := range buf[:skip] {
				buf[i] = 0
			}
			buf = buf[skip:]
		}

		page := m.pages[pageID]
		if skip := int(at) - int(base); skip > 0 {
			if skip >= len(page) {
				continue
			}
			page = page[skip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		at += uint(n)
	}

	for i := range buf {
		buf[i] = 0
	}

	return nil
}

// Stor stores any values at addr, allocating zero-filled pages if necessary
// and extending Extent to cover them.
// Returns an error if addr is negative or Limit would be exceeded; no partial
// store is done.
func (m *Ints) Stor(addr int, values ...int) error {
	if len(values) == 0 {
		return nil
	}

	at, err := m.check(addr, len(values), "stor")
	if err != nil {
		return err
	}
	end := at + uint(len(values))
	if end > m.extent {
		m.extent = end
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultIntsPageSize
	}

	for pageID := m.findPage(at); at < end; pageID++ {
		base, size, page := m.allocPage(pageID, at)
		if skip := int(at) - int(base); skip > 0 {
			if uint(skip) >= size {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		at += uint(n)
	}

	return nil
}

// Snapshot returns a dense copy of every cell below Extent.
func (m *Ints) Snapshot() []int {
	buf := make([]int, m.extent)
	if err := m.LoadInto(0, buf); err != nil {
		// the extent never passes the limit, since Stor checks it first
		panic(err)
	}
	return buf
}

// Reset releases all pages, returning the memory to its untouched state.
// PageSize and Limit are retained.
func (m *Ints) Reset() {
	m.PagedCore.reset()
	for i := range m.pages {
		m.pages[i] = nil
	}
	m.pages = m.pages[:0]
}

func (m *Ints) allocPage(pageID int, addr uint) (base, size uint, page []int) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if isNew {
		page = make([]int, size)
		if pageID == len(m.pages) {
			m.pages = append(m.pages, page)
		} else {
			m.pages = append(m.pages, nil)
			copy(m.pages[pageID+1:], m.pages[pageID:])
			m.pages[pageID] = page
		}
	} else {
		page = m.pages[pageID]
	}
	return base, size, page
}
