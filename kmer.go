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

// Kmer is satisfied by every value type a model emits: Direct, Canonical,
// and WithMinimizer[B] wrapping either of those. It is the record type
// constraint of the ops capability set (model.go) that lets iterate/build
// stay generic over model kind instead of depending on a model-kind
// hierarchy.
type Kmer interface {
	KmerValue() BigInt
	IsValid() bool
}

/* Direct k-mer
 * -------------------------------------------------------------------------- */

// Direct is the forward-only k-mer record. Value is the numeric polynomial
// P(x) = sum c_i * 4^(k-1-i) over the k bases, c_A=0, c_C=1, c_T=2, c_G=3.
// Valid is false iff any base used to build it was unrecognized.
type Direct struct {
	Value BigInt
	Valid bool
}

func (d Direct) KmerValue() BigInt { return d.Value }
func (d Direct) IsValid() bool     { return d.Valid }

/* Canonical k-mer
 * -------------------------------------------------------------------------- */

// Canonical carries both strands of a k-mer and the choice between them.
// Choice is 0 iff Forward <= Revcomp; the value consumers see is whichever
// of the two that choice selects.
type Canonical struct {
	Forward BigInt
	Revcomp BigInt
	Choice  uint8
	Valid   bool
}

func (c Canonical) KmerValue() BigInt {
	if c.Choice == 0 {
		return c.Forward
	}
	return c.Revcomp
}

func (c Canonical) IsValid() bool { return c.Valid }

/* Minimizer-enriched k-mer
 * -------------------------------------------------------------------------- */

// WithMinimizer wraps a Direct or Canonical base k-mer with the smallest
// allowed m-mer currently inside its window. Position is in [-1, k-m], -1
// meaning "no valid minimizer in the current window". Changed is true on
// the first emission, on an emission whose new m-mer is smaller than the
// previous Minimizer, and on every emission that rescans the window after
// the previous Minimizer left it, even when the rescan picks the same value.
type WithMinimizer[B Kmer] struct {
	Base      B
	Minimizer B
	Position  int16
	Changed   bool
}

func (w WithMinimizer[B]) KmerValue() BigInt { return w.Base.KmerValue() }
func (w WithMinimizer[B]) IsValid() bool     { return w.Base.IsValid() }
