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

func TestDirectModel1(t *testing.T) {
	seq := []byte("CATTGATAGTGG")
	expected := []uint64{18, 10, 43, 44, 50, 8, 35, 14, 59, 47}

	model, err := NewDirectModel(3)
	if err != nil {
		t.Fatal(err)
	}
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	if len(kmers) != len(expected) {
		t.Fatalf("expected %d kmers, got %d", len(expected), len(kmers))
	}
	for i, k := range kmers {
		if k.KmerValue().Value() != expected[i] {
			t.Errorf("kmer %d: expected %d, got %d", i, expected[i], k.KmerValue().Value())
		}
		if !k.IsValid() {
			t.Errorf("kmer %d: expected valid", i)
		}
	}
}

func TestRevComp1(t *testing.T) {
	seq := []byte("CATTGATAGTGG")
	expected := []uint64{11, 2, 16, 36, 9, 34, 24, 6, 17, 20}

	model, err := NewDirectModel(3)
	if err != nil {
		t.Fatal(err)
	}
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	for i, k := range kmers {
		rc := RevComp(k.KmerValue(), 3)
		if rc.Value() != expected[i] {
			t.Errorf("revcomp %d: expected %d, got %d", i, expected[i], rc.Value())
		}
	}
	// round-trip: revcomp is its own inverse
	for _, k := range kmers {
		if !RevComp(RevComp(k.KmerValue(), 3), 3).Equal(k.KmerValue()) {
			t.Errorf("revcomp(revcomp(x)) != x for %d", k.KmerValue().Value())
		}
	}
}

func TestCanonicalModel1(t *testing.T) {
	seq := []byte("CATTGATAGTGG")
	expected := []uint64{11, 2, 16, 36, 9, 8, 24, 6, 17, 20}

	model, err := NewCanonicalModel(3)
	if err != nil {
		t.Fatal(err)
	}
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	if len(kmers) != len(expected) {
		t.Fatalf("expected %d kmers, got %d", len(expected), len(kmers))
	}
	for i, k := range kmers {
		if k.KmerValue().Value() != expected[i] {
			t.Errorf("kmer %d: expected %d, got %d", i, expected[i], k.KmerValue().Value())
		}
		want := k.Forward
		if k.Revcomp.Less(want) {
			want = k.Revcomp
		}
		if !k.KmerValue().Equal(want) {
			t.Errorf("kmer %d: value() does not equal min(forward,revcomp)", i)
		}
	}
}

/* -------------------------------------------------------------------------- */

func TestDirectModelInvalidBase(t *testing.T) {
	seq := []byte("CATTNATAGTGG")

	model, err := NewDirectModel(3)
	if err != nil {
		t.Fatal(err)
	}
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	invalidIdx := map[int]bool{2: true, 3: true, 4: true}
	for i, k := range kmers {
		if invalidIdx[i] && k.IsValid() {
			t.Errorf("kmer %d: expected invalid", i)
		}
		if !invalidIdx[i] && !k.IsValid() {
			t.Errorf("kmer %d: expected valid", i)
		}
	}
}

/* -------------------------------------------------------------------------- */

func TestDirectModelLength(t *testing.T) {
	seq := []byte("CATTGATAGTGG")
	model, err := NewDirectModel(3)
	if err != nil {
		t.Fatal(err)
	}
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	if len(kmers) != len(seq)-3+1 {
		t.Errorf("expected %d kmers, got %d", len(seq)-3+1, len(kmers))
	}

	short := []byte("CA")
	kmers, err = model.Build(short, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	if len(kmers) != 0 {
		t.Errorf("expected 0 kmers for a buffer shorter than k, got %d", len(kmers))
	}
}

/* -------------------------------------------------------------------------- */

func TestPrecisionTooLow(t *testing.T) {
	if _, err := NewDirectModel(65); err == nil {
		t.Errorf("expected ErrPrecisionTooLow for k=65")
	}
	if _, err := NewDirectModel(64); err != nil {
		t.Errorf("did not expect an error for k=64: %v", err)
	}
}

func TestBadSizes(t *testing.T) {
	if _, err := NewMinimizerModel(5, 5, nil); err == nil {
		t.Errorf("expected ErrBadSizes for k=m")
	}
	if _, err := NewMinimizerModel(5, 6, nil); err == nil {
		t.Errorf("expected ErrBadSizes for k<m")
	}
}

/* -------------------------------------------------------------------------- */

func TestMinimizerModelAllDisallowed(t *testing.T) {
	seq := []byte("AAAAAAAAAAAAAAA")
	model, err := NewMinimizerModel(11, 5, nil)
	if err != nil {
		t.Fatal(err)
	}
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	if len(kmers) == 0 {
		t.Fatal("expected at least one kmer")
	}
	for i, k := range kmers {
		if k.Position != -1 {
			t.Errorf("kmer %d: expected position -1, got %d", i, k.Position)
		}
		if k.Minimizer.KmerValue().Value() != (uint64(1)<<10)-1 {
			t.Errorf("kmer %d: expected minimizerDefault, got %d", i, k.Minimizer.KmerValue().Value())
		}
	}
}

func TestMinimizerModelPositionMonotone(t *testing.T) {
	seq := []byte("ACGTACGTA")
	model, err := NewMinimizerModel(5, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	w := 5 - 3 + 1
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	for i := 1; i < len(kmers); i++ {
		prev, cur := kmers[i-1], kmers[i]
		if cur.Changed {
			if cur.Position != int16(w-1) {
				t.Errorf("kmer %d: expected position %d on change, got %d", i, w-1, cur.Position)
			}
			continue
		}
		if cur.Position != prev.Position-1 {
			t.Errorf("kmer %d: expected position %d, got %d", i, prev.Position-1, cur.Position)
		}
	}
}

/* -------------------------------------------------------------------------- */

func TestMinimizerOf(t *testing.T) {
	seq := []byte("CATTGATAGTGG")
	model, err := NewMinimizerModel(5, 3, nil)
	if err != nil {
		t.Fatal(err)
	}
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}
	for i, k := range kmers {
		got := model.MinimizerOf(k.Base.KmerValue())
		if got.KmerValue().Value() != k.Minimizer.KmerValue().Value() {
			t.Errorf("kmer %d: MinimizerOf disagrees with sliding minimizer: %d != %d",
				i, got.KmerValue().Value(), k.Minimizer.KmerValue().Value())
		}
	}
}
