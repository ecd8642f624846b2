package wfc

import "math/bits"

// domains stores one fixed-width bitset per cell in a single backing slice.
type domains struct {
	words int
	bits  []uint64
	count []int
}

func newDomains(cells, variants int) *domains {
	words := (variants + 63) / 64
	d := &domains{
		words: words,
		bits:  make([]uint64, cells*words),
		count: make([]int, cells),
	}
	for c := 0; c < cells; c++ {
		fillBits(d.cell(c), variants)
		d.count[c] = variants
	}
	return d
}

func (d *domains) cell(c int) []uint64 {
	return d.bits[c*d.words : (c+1)*d.words]
}

func (d *domains) fix(c, variant int) {
	w := d.cell(c)
	clear(w)
	w[variant/64] |= 1 << (variant % 64)
	d.count[c] = 1
}

// restrict intersects cell c with mask and reports the number of removed
// candidates.
func (d *domains) restrict(c int, mask []uint64) int {
	w := d.cell(c)
	n := 0
	for i := range w {
		w[i] &= mask[i]
		n += bits.OnesCount64(w[i])
	}
	removed := d.count[c] - n
	d.count[c] = n
	return removed
}

// nth returns the index of the k-th set candidate of cell c.
func (d *domains) nth(c, k int) int {
	for i, word := range d.cell(c) {
		ones := bits.OnesCount64(word)
		if k >= ones {
			k -= ones
			continue
		}
		for ; k > 0; k-- {
			word &= word - 1
		}
		return i*64 + bits.TrailingZeros64(word)
	}
	return -1
}

func (d *domains) first(c int) int {
	return d.nth(c, 0)
}

func fillBits(w []uint64, n int) {
	for i := range w {
		switch {
		case n >= 64:
			w[i] = ^uint64(0)
			n -= 64
		case n > 0:
			w[i] = 1<<n - 1
			n = 0
		default:
			w[i] = 0
		}
	}
}
