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

import "fmt"

/* -------------------------------------------------------------------------- */

// SuperKmer is a maximal run of L consecutive canonical k-mers sharing a
// minimizer, packed into two BigInts of the k-mer's own width: SeedForward
// carries the forward strand of the run's first k-mer, CompactedTail packs
// the trailing base of every subsequent k-mer plus the run length L in its
// top 8 bits. L is bounded to 255 by that length field.
type SuperKmer struct {
	SeedForward   BigInt
	CompactedTail BigInt
	Length        int
	K             int
}

// Sink is an append-only destination for persisting the two BigInts of an
// encoded SuperKmer, e.g. internal/superkmerdb.MySQLSink.
type Sink interface {
	Insert(value BigInt) error
}

/* -------------------------------------------------------------------------- */

// superKmerLengthShift is the bit offset of the high 8-bit length field
// within CompactedTail: the top byte of the k-mer's own limbWidth(k)*32
// bits, not of the full 128-bit BigInt representation.
func superKmerLengthShift(k int) uint {
	return uint(32*limbWidth(k) - 8)
}

/* -------------------------------------------------------------------------- */

// EncodeSuperKmer packs a run of canonical k-mers sharing a minimizer.
func EncodeSuperKmer(run []Canonical, k int) (SuperKmer, error) {
	l := len(run)
	if l < 1 {
		return SuperKmer{}, fmt.Errorf("kmerspan: cannot encode an empty super-kmer run")
	}
	if l > 255 {
		return SuperKmer{}, ErrSuperKmerTooLong
	}
	// The tail bases and the length byte both live inside the same
	// k-mer-width BigInt (§4.9), so a run that needs more than
	// limbWidth(k)*32-8 tail bits cannot be packed even though the 8-bit
	// length field would otherwise allow it up to 255 — see DESIGN.md.
	if shift := superKmerLengthShift(k); uint(2*(l-1)) > shift {
		return SuperKmer{}, ErrSuperKmerTooLong
	}

	var tail BigInt
	for i := 1; i < l; i++ {
		lastBase := run[i].Forward.And(bigIntFromU64(3)).Value()
		tail = tail.Shl(2).AddSmall(uint32(lastBase))
	}
	tail = tail.Or(bigIntFromU64(uint64(l)).Shl(superKmerLengthShift(k)))

	return SuperKmer{
		SeedForward:   run[0].Forward,
		CompactedTail: tail,
		Length:        l,
		K:             k,
	}, nil
}

// DecodeSuperKmer reconstructs the run of canonical k-mers packed into sk.
func DecodeSuperKmer(sk SuperKmer) ([]Canonical, error) {
	shift := superKmerLengthShift(sk.K)
	l := int(sk.CompactedTail.Shr(shift).And(bigIntFromU64(0xFF)).Value())
	if l < 1 || l > 255 {
		return nil, ErrSuperKmerTooLong
	}

	mask := kmerMask(sk.K)
	var revcompTable [4]BigInt
	for c := 0; c < 4; c++ {
		revcompTable[c] = bigIntFromU64(uint64(ComplementTable[c])).Shl(uint(2 * (sk.K - 1)))
	}

	forward := sk.SeedForward
	revcomp := RevComp(forward, sk.K)
	out := make([]Canonical, 0, l)
	out = append(out, Canonical{Forward: forward, Revcomp: revcomp, Choice: choiceOf(forward, revcomp), Valid: true})

	for i := 1; i < l; i++ {
		bitPos := uint(2 * (l - 1 - i))
		nibble := uint32(sk.CompactedTail.Shr(bitPos).And(bigIntFromU64(3)).Value())
		forward = forward.Shl(2).AddSmall(nibble).And(mask)
		revcomp = revcomp.Shr(2).Or(revcompTable[nibble]).And(mask)
		out = append(out, Canonical{Forward: forward, Revcomp: revcomp, Choice: choiceOf(forward, revcomp), Valid: true})
	}
	return out, nil
}

/* -------------------------------------------------------------------------- */

// Save persists the two BigInts of an encoded SuperKmer to sink, in the
// order (compactedTail, seedForward) the original implementation used.
func (sk SuperKmer) Save(sink Sink) error {
	if err := sink.Insert(sk.CompactedTail); err != nil {
		return err
	}
	return sink.Insert(sk.SeedForward)
}
