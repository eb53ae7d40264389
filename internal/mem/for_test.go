package mem

// IntsDump provides page layout data for testing.
type IntsDump struct {
	Bases []uint
	Sizes []uint
	Pages [][]int
}

// Dump page layout data for testing.
func (m *Ints) Dump() (d IntsDump) {
	d.Bases = m.bases
	d.Sizes = m.sizes
	d.Pages = m.pages
	return d
}
