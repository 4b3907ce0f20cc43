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

import "testing"

/* -------------------------------------------------------------------------- */

func repeatingSeq(n int) []byte {
	pattern := "ACTGATCGGTA"
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = pattern[i%len(pattern)]
	}
	return buf
}

func TestSuperKmerRoundTrip(t *testing.T) {
	// k=60 gives limbWidth(k)=4, the widest container this build
	// supports, and with it the longest run a SuperKmer can actually
	// pack: floor((32*4-8)/2)+1 = 61 kmers (see EncodeSuperKmer).
	const k = 60
	model, err := NewCanonicalModel(k)
	if err != nil {
		t.Fatal(err)
	}

	for _, l := range []int{1, 2, 3, 10, 61} {
		seq := repeatingSeq(l + k - 1)
		run, err := model.Build(seq, ASCII)
		if err != nil {
			t.Fatal(err)
		}
		if len(run) != l {
			t.Fatalf("l=%d: expected %d kmers, got %d", l, l, len(run))
		}

		sk, err := EncodeSuperKmer(run, k)
		if err != nil {
			t.Fatalf("l=%d: encode: %v", l, err)
		}
		if sk.Length != l {
			t.Errorf("l=%d: expected encoded length %d, got %d", l, l, sk.Length)
		}

		decoded, err := DecodeSuperKmer(sk)
		if err != nil {
			t.Fatalf("l=%d: decode: %v", l, err)
		}
		if len(decoded) != l {
			t.Fatalf("l=%d: expected %d decoded kmers, got %d", l, l, len(decoded))
		}
		for i := range run {
			if !decoded[i].Forward.Equal(run[i].Forward) {
				t.Errorf("l=%d, i=%d: forward mismatch: %d != %d", l, i, decoded[i].Forward.Value(), run[i].Forward.Value())
			}
			if decoded[i].KmerValue().Value() != run[i].KmerValue().Value() {
				t.Errorf("l=%d, i=%d: canonical value mismatch: %d != %d", l, i, decoded[i].KmerValue().Value(), run[i].KmerValue().Value())
			}
		}
	}
}

func TestSuperKmerTooLong(t *testing.T) {
	// Exceeds the 8-bit length field outright, regardless of k.
	const k = 60
	model, err := NewCanonicalModel(k)
	if err != nil {
		t.Fatal(err)
	}
	seq := repeatingSeq(256 + k - 1)
	run, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EncodeSuperKmer(run, k); err == nil {
		t.Errorf("expected ErrSuperKmerTooLong for a 256-kmer run")
	}
}

func TestSuperKmerExceedsContainerCapacity(t *testing.T) {
	// Fits the 8-bit length field (62 <= 255) but not the tail bits
	// available inside a k=60 BigInt's own width (capacity is 61).
	const k = 60
	model, err := NewCanonicalModel(k)
	if err != nil {
		t.Fatal(err)
	}
	seq := repeatingSeq(62 + k - 1)
	run, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EncodeSuperKmer(run, k); err == nil {
		t.Errorf("expected ErrSuperKmerTooLong when the tail does not fit the container")
	}
}
