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

// NeighborMask selects a subset of the eight de Bruijn neighbors of a
// k-mer: bits 0-3 are the four outgoing neighbors (one per appended base),
// bits 4-7 the four incoming ones.
type NeighborMask uint8

const AllNeighbors NeighborMask = 0xFF

func outgoingBit(c byte) NeighborMask { return NeighborMask(1 << c) }
func incomingBit(c byte) NeighborMask { return NeighborMask(1 << (4 + c)) }

/* -------------------------------------------------------------------------- */

type maskedModel interface {
	KmerSize() int
	KmerMask() BigInt
}

// IterateNeighbors enumerates the canonical de Bruijn neighbors of source
// selected by mask. outgoing[c] appends base c on the right; incoming[c]
// prepends base c on the left (computed by appending c^2 to the reverse
// complement, then taking its own reverse complement back).
func IterateNeighbors(m maskedModel, source BigInt, mask NeighborMask, cb func(neighbor BigInt, outgoing bool, code byte) error) error {
	k := m.KmerSize()
	kmask := m.KmerMask()

	for c := byte(0); c < 4; c++ {
		if mask&outgoingBit(c) == 0 {
			continue
		}
		n := source.Shl(2).AddSmall(uint32(c)).And(kmask)
		if err := cb(canonicalOf(n, k), true, c); err != nil {
			return err
		}
	}

	rev := RevComp(source, k)
	for c := byte(0); c < 4; c++ {
		if mask&incomingBit(c) == 0 {
			continue
		}
		n := rev.Shl(2).AddSmall(uint32(ComplementTable[c])).And(kmask)
		if err := cb(canonicalOf(n, k), false, c); err != nil {
			return err
		}
	}
	return nil
}

func canonicalOf(x BigInt, k int) BigInt {
	r := RevComp(x, k)
	if r.Less(x) {
		return r
	}
	return x
}

/* -------------------------------------------------------------------------- */

func (m *DirectModel) IterateNeighbors(source BigInt, mask NeighborMask, cb func(BigInt, bool, byte) error) error {
	return IterateNeighbors(m, source, mask, cb)
}

func (m *CanonicalModel) IterateNeighbors(source BigInt, mask NeighborMask, cb func(BigInt, bool, byte) error) error {
	return IterateNeighbors(m, source, mask, cb)
}

func (mm *MinimizerModel[B]) IterateNeighbors(source BigInt, mask NeighborMask, cb func(BigInt, bool, byte) error) error {
	return IterateNeighbors(mm, source, mask, cb)
}
