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

// Encoding names the layout of a caller-owned nucleotide buffer.
type Encoding int

const (
	ASCII Encoding = iota
	INTEGER
	PackedTwoBit
)

func (e Encoding) String() string {
	switch e {
	case ASCII:
		return "ASCII"
	case INTEGER:
		return "INTEGER"
	case PackedTwoBit:
		return "PACKED_2BIT"
	default:
		return "UNKNOWN"
	}
}

/* -------------------------------------------------------------------------- */

// ComplementTable maps a 2-bit nucleotide code to its complement. With the
// A=0,C=1,T=2,G=3 ordering this is just `code XOR 2`, but the table is kept
// explicit because it is the one piece of the model callers may legitimately
// want to inspect (e.g. when rendering a custom alphabet order).
var ComplementTable = [4]byte{2, 3, 0, 1}

/* -------------------------------------------------------------------------- */

type decoderFunc func(buf []byte, i int) (byte, bool)

// decoderFor dispatches on the encoding tag once per Iterate call, so the
// hot loop runs against a monomorphic decoder rather than branching on the
// tag for every nucleotide.
func decoderFor(enc Encoding) (decoderFunc, error) {
	switch enc {
	case ASCII:
		return decodeASCII, nil
	case INTEGER:
		return decodeInteger, nil
	case PackedTwoBit:
		return decodePacked2Bit, nil
	default:
		return nil, ErrBadEncoding
	}
}

// decodeASCII exploits that 'A','C','T','G' all have bit 3 clear while 'N'
// (and any other non-base byte worth rejecting) has bit 3 set.
func decodeASCII(buf []byte, i int) (byte, bool) {
	b := buf[i]
	code := (b >> 1) & 3
	invalid := (b>>3)&1 == 1
	return code, invalid
}

// decodeInteger assumes the caller already mapped bytes to codes in [0,3].
func decodeInteger(buf []byte, i int) (byte, bool) {
	return buf[i], false
}

// decodePacked2Bit reads a code out of a buffer holding four bases per byte.
func decodePacked2Bit(buf []byte, i int) (byte, bool) {
	b := buf[i>>2]
	shift := uint((3 - (i & 3)) * 2)
	return (b >> shift) & 3, false
}
