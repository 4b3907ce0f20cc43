/* Copyright (C) 2019 Philipp Benner
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <http://www.gnu.org/licenses/>.
 */

package kmerspan

/* -------------------------------------------------------------------------- */

// Comparator is a strict weak ordering over BigInts, pluggable on
// MinimizerModel construction. The default is unsigned less-than; any
// replacement must still rank the disallowed-mmer sentinel above every
// allowed m-mer, or the rescan below breaks.
type Comparator func(a, b BigInt) bool

func defaultComparator(a, b BigInt) bool { return a.Less(b) }

// maxEagerLUTM bounds how large an m-mer lookup table this package will
// build eagerly (4^10 entries, 8MB of uint64). Per §5, larger m are
// expected to exist (m=10 => ~1M table entries is already sizeable); above
// the bound is_allowed and revcomp are applied inline on every lookup
// instead of being cached.
const maxEagerLUTM = 10

/* -------------------------------------------------------------------------- */

// isAllowedMmer rejects m-mers containing an interior "AA" dinucleotide,
// i.e. two consecutive zero-valued 2-bit digits that are not the very first
// pair. This is the one predicate the source keeps active; the commented
// alternatives (reject TTT/TGT suffix, reject AAA/ACA prefix) are not
// ported because no caller selects them and carrying dead branches here
// would just be noise — see DESIGN.md.
func isAllowedMmer(x uint64, m int) bool {
	if m < 2 {
		return true
	}
	y := ^(x | (x >> 2))
	mmaskM1 := (uint64(1) << uint(2*(m-2))) - 1
	mask0101 := uint64(0x5555555555555555)
	a := (y >> 1) & y & (mask0101 & mmaskM1)
	return a == 0
}

/* -------------------------------------------------------------------------- */

// MinimizerModel wraps an outer model of width k (Direct or Canonical,
// selected by B) and tracks the smallest allowed m-mer currently inside the
// k-mer window. The m-mer lookup table, when built, is owned exclusively by
// this struct and freed with it.
type MinimizerModel[B Kmer] struct {
	k, m, w int
	mask    BigInt
	mmMask  BigInt
	mmMaskU uint64
	shift   uint
	cmp     Comparator
	lut     []uint64
	base    ops[B]
}

func newMinimizerModel[B Kmer](base ops[B], k, m int, cmp Comparator) (*MinimizerModel[B], error) {
	if k <= m {
		return nil, ErrBadSizes
	}
	if cmp == nil {
		cmp = defaultComparator
	}
	w := k - m + 1
	mmMaskU := (uint64(1) << uint(2*m)) - 1
	return &MinimizerModel[B]{
		k: k, m: m, w: w,
		mask:    kmerMask(k),
		mmMask:  bigIntFromU64(mmMaskU),
		mmMaskU: mmMaskU,
		shift:   uint(2 * (w - 1)),
		cmp:     cmp,
		lut:     buildMmerLUT(m),
		base:    base,
	}, nil
}

// NewMinimizerModel builds a MinimizerModel over a DirectModel base.
func NewMinimizerModel(k, m int, cmp Comparator) (*MinimizerModel[Direct], error) {
	base, err := NewDirectModel(k)
	if err != nil {
		return nil, err
	}
	return newMinimizerModel[Direct](base, k, m, cmp)
}

// NewCanonicalMinimizerModel builds a MinimizerModel over a CanonicalModel
// base, i.e. Base records fold onto the strand-independent representative
// while Minimizer is still chosen by the m-mer rules in §4.6.
func NewCanonicalMinimizerModel(k, m int, cmp Comparator) (*MinimizerModel[Canonical], error) {
	base, err := NewCanonicalModel(k)
	if err != nil {
		return nil, err
	}
	return newMinimizerModel[Canonical](base, k, m, cmp)
}

func buildMmerLUT(m int) []uint64 {
	if m > maxEagerLUTM {
		return nil
	}
	size := uint64(1) << uint(2*m)
	sentinel := size - 1
	lut := make([]uint64, size)
	for i := uint64(0); i < size; i++ {
		r := revcompU64(i, m)
		canon := i
		if r < canon {
			canon = r
		}
		if isAllowedMmer(canon, m) {
			lut[i] = canon
		} else {
			lut[i] = sentinel
		}
	}
	return lut
}

func (mm *MinimizerModel[B]) lookupMmer(raw uint64) uint64 {
	if mm.lut != nil {
		return mm.lut[raw]
	}
	r := revcompU64(raw, mm.m)
	canon := raw
	if r < canon {
		canon = r
	}
	if isAllowedMmer(canon, mm.m) {
		return canon
	}
	return mm.mmMaskU
}

func (mm *MinimizerModel[B]) less(a, b uint64) bool {
	return mm.cmp(bigIntFromU64(a), bigIntFromU64(b))
}

/* -------------------------------------------------------------------------- */

func (mm *MinimizerModel[B]) KmerSize() int    { return mm.k }
func (mm *MinimizerModel[B]) KmerMask() BigInt { return mm.mask }

func (mm *MinimizerModel[B]) kmerSize() int { return mm.k }

// forwardOf returns the forward strand of a base k-mer, whose low digits
// hold the newest m-mer: a Canonical carries it in Forward, while a Direct
// value is already the forward strand.
func forwardOf[B Kmer](base B) BigInt {
	if c, ok := any(base).(Canonical); ok {
		return c.Forward
	}
	return base.KmerValue()
}

// rescan traverses all W m-mers of base's window, leftmost first, keeping
// the strict minimum. Because ties only overwrite on a strictly smaller
// value and the scan runs leftmost-to-rightmost, the leftmost occurrence of
// the minimum wins, matching §4.6's tie-break rule. idx is a shift count
// (w-1 at the leftmost m-mer, 0 at the rightmost/newest), while Position
// is reported 0-based from the left, so it is recorded as w-1-idx — the
// newest m-mer is position w-1, matching the literal w-1 assigned to it
// in Next below.
func (mm *MinimizerModel[B]) rescan(base B, changed bool) WithMinimizer[B] {
	forward := forwardOf(base)
	best := mm.mmMaskU
	bestPos := int16(-1)
	for idx := mm.w - 1; idx >= 0; idx-- {
		raw := forward.Shr(uint(2*idx)).And(mm.mmMask).Value()
		v := mm.lookupMmer(raw)
		if mm.less(v, best) {
			best = v
			bestPos = int16(mm.w - 1 - idx)
		}
	}
	return WithMinimizer[B]{
		Base:      base,
		Minimizer: mm.base.wrap(bigIntFromU64(best)),
		Position:  bestPos,
		Changed:   changed,
	}
}

func (mm *MinimizerModel[B]) First(buf []byte, enc Encoding) (WithMinimizer[B], int, error) {
	base, badIdx, err := mm.base.first(buf, enc)
	if err != nil {
		return WithMinimizer[B]{}, 0, err
	}
	return mm.rescan(base, true), badIdx, nil
}

func (mm *MinimizerModel[B]) first(buf []byte, enc Encoding) (WithMinimizer[B], int, error) {
	return mm.First(buf, enc)
}

func (mm *MinimizerModel[B]) Next(prev WithMinimizer[B], code byte, valid bool) WithMinimizer[B] {
	base := mm.base.next(prev.Base, code, valid)
	raw := forwardOf(base).And(mm.mmMask).Value()
	mmValue := mm.lookupMmer(raw)

	position := prev.Position - 1
	current := prev.Minimizer.KmerValue().Value()

	if mm.less(mmValue, current) {
		return WithMinimizer[B]{
			Base:      base,
			Minimizer: mm.base.wrap(bigIntFromU64(mmValue)),
			Position:  int16(mm.w - 1),
			Changed:   true,
		}
	}
	if position < 0 {
		return mm.rescan(base, true)
	}
	return WithMinimizer[B]{
		Base:      base,
		Minimizer: prev.Minimizer,
		Position:  position,
		Changed:   false,
	}
}

func (mm *MinimizerModel[B]) next(prev WithMinimizer[B], code byte, valid bool) WithMinimizer[B] {
	return mm.Next(prev, code, valid)
}

func (mm *MinimizerModel[B]) wrap(value BigInt) WithMinimizer[B] {
	return mm.rescan(mm.base.wrap(value), true)
}

/* -------------------------------------------------------------------------- */

// MinimizerOf computes the minimizer of an already-assembled k-mer value
// without iterating a buffer, e.g. to classify a k-mer pulled out of a
// Bloom filter or graph edge by its minimizer bucket. Ported from GATB's
// ModelMinimizer::getMinimizerValue, dropped from the distilled spec but
// not excluded by any non-goal.
func (mm *MinimizerModel[B]) MinimizerOf(value BigInt) B {
	return mm.wrap(value).Minimizer
}

/* -------------------------------------------------------------------------- */

func (mm *MinimizerModel[B]) Iterate(buf []byte, enc Encoding, cb func(WithMinimizer[B], int) error) error {
	return iterate[WithMinimizer[B]](mm, buf, enc, cb)
}

func (mm *MinimizerModel[B]) Build(buf []byte, enc Encoding) ([]WithMinimizer[B], error) {
	return build[WithMinimizer[B]](mm, buf, enc)
}
