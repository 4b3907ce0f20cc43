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

// TestNeighborClosure checks the de Bruijn closure property from §8: for
// any canonical k-mer x, applying all 4 outgoing neighbors then all 4
// incoming neighbors of each must produce a multiset that contains x.
func TestNeighborClosure(t *testing.T) {
	const k = 4
	model, err := NewCanonicalModel(k)
	if err != nil {
		t.Fatal(err)
	}
	seq := []byte("CATTGATAGTGGACGT")
	kmers, err := model.Build(seq, ASCII)
	if err != nil {
		t.Fatal(err)
	}

	for _, km := range kmers {
		x := km.KmerValue()
		found := false

		var outgoing []BigInt
		err := model.IterateNeighbors(x, AllNeighbors, func(n BigInt, isOutgoing bool, _ byte) error {
			if isOutgoing {
				outgoing = append(outgoing, n)
			}
			return nil
		})
		if err != nil {
			t.Fatal(err)
		}

		for _, o := range outgoing {
			err := model.IterateNeighbors(o, AllNeighbors, func(n BigInt, isOutgoing bool, _ byte) error {
				if !isOutgoing && n.Equal(x) {
					found = true
				}
				return nil
			})
			if err != nil {
				t.Fatal(err)
			}
		}
		if !found {
			t.Errorf("kmer %d: x not found among incoming neighbors of its own outgoing neighbors", x.Value())
		}
	}
}

func TestIterateNeighborsMaskFiltering(t *testing.T) {
	const k = 4
	model, err := NewDirectModel(k)
	if err != nil {
		t.Fatal(err)
	}
	x := bigIntFromU64(0)

	var calls int
	err = model.IterateNeighbors(x, outgoingBit(0), func(BigInt, bool, byte) error {
		calls++
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if calls != 1 {
		t.Errorf("expected exactly one callback for a single-bit mask, got %d", calls)
	}
}
