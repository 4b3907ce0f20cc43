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

import "fmt"

/* -------------------------------------------------------------------------- */

// BigInt is a fixed 128-bit unsigned integer: four 32-bit limbs, limb[0]
// least significant. It is the concrete stand-in for the spec's BigInt<W>
// family (W in {1,2,3,4} 32-bit limbs); Go has no way to parametrize an
// array's length by a generic integer the way a C++ template can, so a
// single 4-limb representation is used for every width. Masking to k bases
// uses kmerMask; the logical width (see limbWidth) governs the
// PrecisionTooLow check at model construction and the position of a
// SuperKmer's length field. Values are immutable: every operation returns a
// new BigInt.
type BigInt struct {
	limb [4]uint32
}

/* -------------------------------------------------------------------------- */

// NewBigIntFromUint64 builds a BigInt from its low 64 bits.
func NewBigIntFromUint64(v uint64) BigInt {
	return bigIntFromU64(v)
}

func bigIntFromU64(v uint64) BigInt {
	return BigInt{limb: [4]uint32{uint32(v), uint32(v >> 32), 0, 0}}
}

/* -------------------------------------------------------------------------- */

// Value returns the low 64 bits of the integer.
func (b BigInt) Value() uint64 {
	return uint64(b.limb[0]) | uint64(b.limb[1])<<32
}

func (b BigInt) low2() uint32 {
	return b.limb[0] & 3
}

// Limbs returns the four 32-bit limbs, least significant first, for
// callers that need to serialize a BigInt (e.g. internal/superkmerdb).
func (b BigInt) Limbs() (uint32, uint32, uint32, uint32) {
	return b.limb[0], b.limb[1], b.limb[2], b.limb[3]
}

/* -------------------------------------------------------------------------- */

func (b BigInt) Equal(o BigInt) bool {
	return b.limb == o.limb
}

// Less is a strict, total ordering over the 128-bit value.
func (b BigInt) Less(o BigInt) bool {
	for i := 3; i >= 0; i-- {
		if b.limb[i] != o.limb[i] {
			return b.limb[i] < o.limb[i]
		}
	}
	return false
}

/* -------------------------------------------------------------------------- */

func (b BigInt) And(o BigInt) BigInt {
	var out BigInt
	for i := range b.limb {
		out.limb[i] = b.limb[i] & o.limb[i]
	}
	return out
}

func (b BigInt) Or(o BigInt) BigInt {
	var out BigInt
	for i := range b.limb {
		out.limb[i] = b.limb[i] | o.limb[i]
	}
	return out
}

/* -------------------------------------------------------------------------- */

// Shl shifts left by n bits, n in [0,128). Bits shifted out at the top are
// discarded; callers that need k-mask truncation apply And afterwards.
func (b BigInt) Shl(n uint) BigInt {
	if n == 0 {
		return b
	}
	if n >= 128 {
		return BigInt{}
	}
	limbShift := int(n / 32)
	bitShift := n % 32
	var out BigInt
	for i := 3; i >= 0; i-- {
		srcIdx := i - limbShift
		if srcIdx < 0 {
			continue
		}
		v := b.limb[srcIdx] << bitShift
		if bitShift > 0 && srcIdx-1 >= 0 {
			v |= b.limb[srcIdx-1] >> (32 - bitShift)
		}
		out.limb[i] = v
	}
	return out
}

// Shr shifts right by n bits, n in [0,128).
func (b BigInt) Shr(n uint) BigInt {
	if n == 0 {
		return b
	}
	if n >= 128 {
		return BigInt{}
	}
	limbShift := int(n / 32)
	bitShift := n % 32
	var out BigInt
	for i := 0; i < 4; i++ {
		srcIdx := i + limbShift
		if srcIdx > 3 {
			continue
		}
		v := b.limb[srcIdx] >> bitShift
		if bitShift > 0 && srcIdx+1 <= 3 {
			v |= b.limb[srcIdx+1] << (32 - bitShift)
		}
		out.limb[i] = v
	}
	return out
}

/* -------------------------------------------------------------------------- */

// AddSmall adds a nucleotide code (0..3) with carry propagation across limbs.
func (b BigInt) AddSmall(c uint32) BigInt {
	out := b
	carry := uint64(c)
	for i := 0; i < 4 && carry > 0; i++ {
		sum := uint64(out.limb[i]) + carry
		out.limb[i] = uint32(sum)
		carry = sum >> 32
	}
	return out
}

/* -------------------------------------------------------------------------- */

// base4Digits renders a 2-bit code as A/C/T/G, in the A=0,C=1,T=2,G=3 order
// that makes a single-base complement just `code XOR 2`.
const base4Digits = "ACTG"

// ToStringBase4 renders the low k base-4 digits of the integer, most
// significant digit first.
func (b BigInt) ToStringBase4(k int) string {
	buf := make([]byte, k)
	cur := b
	for i := k - 1; i >= 0; i-- {
		buf[i] = base4Digits[cur.low2()]
		cur = cur.Shr(2)
	}
	return string(buf)
}

/* -------------------------------------------------------------------------- */

// limbWidth returns the number of 32-bit limbs needed to hold a k-base,
// 2-bit-per-base encoded value: W = ceil(2k/32). Only W in {1,2,3,4} is
// supported; checkPrecision turns a larger W into ErrPrecisionTooLow.
func limbWidth(k int) int {
	return (2*k + 31) / 32
}

func checkPrecision(k int) error {
	if k < 1 {
		return fmt.Errorf("kmerspan: k must be positive, got %d: %w", k, ErrPrecisionTooLow)
	}
	if limbWidth(k) > 4 {
		return fmt.Errorf("kmerspan: k=%d needs %d 32-bit limbs, only 4 are supported: %w", k, limbWidth(k), ErrPrecisionTooLow)
	}
	return nil
}

// onesBigInt returns a BigInt with the low n bits set, n in [0,128].
func onesBigInt(n uint) BigInt {
	var b BigInt
	full := int(n / 32)
	rem := n % 32
	for i := 0; i < full && i < 4; i++ {
		b.limb[i] = 0xFFFFFFFF
	}
	if full < 4 && rem > 0 {
		b.limb[full] = (uint32(1) << rem) - 1
	}
	return b
}

// kmerMask is the k-mask (1<<2k)-1 used to truncate a sliding k-mer value.
func kmerMask(k int) BigInt {
	return onesBigInt(uint(2 * k))
}
