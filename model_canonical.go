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

// CanonicalModel slides the forward and reverse-complement strands of a
// k-mer together, choosing the lexicographically smaller as the emitted
// value. revcompTable[c] = complement(c) shifted into the k-th digit's
// slot; it is the one table this model precomputes and then shares
// read-only for the life of the model.
type CanonicalModel struct {
	k            int
	mask         BigInt
	revcompTable [4]BigInt
}

func NewCanonicalModel(k int) (*CanonicalModel, error) {
	if err := checkPrecision(k); err != nil {
		return nil, err
	}
	var table [4]BigInt
	for c := 0; c < 4; c++ {
		table[c] = bigIntFromU64(uint64(ComplementTable[c])).Shl(uint(2 * (k - 1)))
	}
	return &CanonicalModel{k: k, mask: kmerMask(k), revcompTable: table}, nil
}

func (m *CanonicalModel) KmerSize() int    { return m.k }
func (m *CanonicalModel) KmerMask() BigInt { return m.mask }

func (m *CanonicalModel) kmerSize() int { return m.k }

/* -------------------------------------------------------------------------- */

func (m *CanonicalModel) First(buf []byte, enc Encoding) (Canonical, int, error) {
	decode, err := decoderFor(enc)
	if err != nil {
		return Canonical{}, 0, err
	}
	var forward BigInt
	badIdx := -1
	for i := 0; i < m.k; i++ {
		code, invalid := decode(buf, i)
		if invalid {
			badIdx = i
		}
		forward = forward.Shl(2).AddSmall(uint32(code)).And(m.mask)
	}
	revcomp := RevComp(forward, m.k)
	return Canonical{
		Forward: forward,
		Revcomp: revcomp,
		Choice:  choiceOf(forward, revcomp),
		Valid:   badIdx < 0,
	}, badIdx, nil
}

func (m *CanonicalModel) first(buf []byte, enc Encoding) (Canonical, int, error) {
	return m.First(buf, enc)
}

// Next applies the joint recurrence:
//
//	forward' = ((forward<<2)|c)                    & kmask
//	revcomp'  = ((revcomp>>2)|(revcompTable[c]))     & kmask
//	choice'   = (forward' <= revcomp') ? 0 : 1
func (m *CanonicalModel) Next(prev Canonical, code byte, valid bool) Canonical {
	forward := prev.Forward.Shl(2).AddSmall(uint32(code)).And(m.mask)
	revcomp := prev.Revcomp.Shr(2).Or(m.revcompTable[code]).And(m.mask)
	return Canonical{
		Forward: forward,
		Revcomp: revcomp,
		Choice:  choiceOf(forward, revcomp),
		Valid:   valid,
	}
}

func (m *CanonicalModel) next(prev Canonical, code byte, valid bool) Canonical {
	return m.Next(prev, code, valid)
}

// wrap treats value as an already-canonical minimum: both strand fields
// point at it, so KmerValue() returns it regardless of Choice.
func (m *CanonicalModel) wrap(value BigInt) Canonical {
	return Canonical{Forward: value, Revcomp: value, Choice: 0, Valid: true}
}

func choiceOf(forward, revcomp BigInt) uint8 {
	if revcomp.Less(forward) {
		return 1
	}
	return 0
}

/* -------------------------------------------------------------------------- */

func (m *CanonicalModel) Iterate(buf []byte, enc Encoding, cb func(Canonical, int) error) error {
	return iterate[Canonical](m, buf, enc, cb)
}

func (m *CanonicalModel) Build(buf []byte, enc Encoding) ([]Canonical, error) {
	return build[Canonical](m, buf, enc)
}
