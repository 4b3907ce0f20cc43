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

func TestBigIntShl(t *testing.T) {
	testCases := []struct {
		v    uint64
		n    uint
		want uint64
	}{
		{1, 0, 1},
		{1, 4, 16},
		{1, 31, 1 << 31},
		{1, 32, 1 << 32},
		{1, 63, 1 << 63},
	}
	for _, c := range testCases {
		got := bigIntFromU64(c.v).Shl(c.n).Value()
		if got != c.want {
			t.Errorf("Shl(%d, %d): expected %d, got %d", c.v, c.n, c.want, got)
		}
	}
}

func TestBigIntShr(t *testing.T) {
	v := bigIntFromU64(1).Shl(100)
	if got := v.Shr(100).Value(); got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
	if got := v.Shr(101).Value(); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
}

func TestBigIntAddSmallCarry(t *testing.T) {
	v := bigIntFromU64(0xFFFFFFFF).AddSmall(1)
	if got := v.Value(); got != 1<<32 {
		t.Errorf("expected carry into the second limb, got %d", got)
	}
}

func TestBigIntLess(t *testing.T) {
	if !bigIntFromU64(2).Less(bigIntFromU64(3)) {
		t.Errorf("expected 2 < 3")
	}
	if bigIntFromU64(3).Less(bigIntFromU64(2)) {
		t.Errorf("did not expect 3 < 2")
	}
	a := bigIntFromU64(1).Shl(70)
	b := bigIntFromU64(1).Shl(71)
	if !a.Less(b) {
		t.Errorf("expected a < b across limb boundaries")
	}
}

func TestBigIntToStringBase4(t *testing.T) {
	// "CAT" under A=0,C=1,T=2,G=3 is c0=C(1),c1=A(0),c2=T(2) -> value = 1*16+0*4+2 = 18
	v := bigIntFromU64(18)
	if got := v.ToStringBase4(3); got != "CAT" {
		t.Errorf("expected CAT, got %s", got)
	}
}
