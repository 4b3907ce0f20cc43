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

// RevComp reverses the order of the k two-bit digits of x and complements
// each one. It is used once per call site that needs a reverse-complement
// from scratch (building the initial state of a CanonicalModel, decoding a
// SuperKmer, enumerating de Bruijn neighbors); the sliding inner loops use
// the O(1) recurrence in CanonicalModel.Next instead.
func RevComp(x BigInt, k int) BigInt {
	cur := x
	var r BigInt
	for i := 0; i < k; i++ {
		c := cur.low2()
		cur = cur.Shr(2)
		r = r.Shl(2).AddSmall(uint32(ComplementTable[c]))
	}
	return r
}

// revcompU64 is the same reversal restricted to values that fit in 64 bits,
// used by the minimizer model's m-mer lookup table (m is always small
// enough that an m-mer fits comfortably in a uint64).
func revcompU64(x uint64, m int) uint64 {
	var r uint64
	for i := 0; i < m; i++ {
		c := x & 3
		x >>= 2
		r = (r << 2) | uint64(ComplementTable[c])
	}
	return r
}
