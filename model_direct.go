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

// DirectModel slides a single forward k-mer over a buffer. It holds no
// mutable state beyond its own k and k-mask, so one instance may be shared
// read-only across any number of concurrent iterations.
type DirectModel struct {
	k    int
	mask BigInt
}

func NewDirectModel(k int) (*DirectModel, error) {
	if err := checkPrecision(k); err != nil {
		return nil, err
	}
	return &DirectModel{k: k, mask: kmerMask(k)}, nil
}

func (m *DirectModel) KmerSize() int    { return m.k }
func (m *DirectModel) KmerMask() BigInt { return m.mask }

func (m *DirectModel) kmerSize() int { return m.k }

/* -------------------------------------------------------------------------- */

func (m *DirectModel) First(buf []byte, enc Encoding) (Direct, int, error) {
	decode, err := decoderFor(enc)
	if err != nil {
		return Direct{}, 0, err
	}
	var value BigInt
	badIdx := -1
	for i := 0; i < m.k; i++ {
		code, invalid := decode(buf, i)
		if invalid {
			badIdx = i
		}
		value = value.Shl(2).AddSmall(uint32(code)).And(m.mask)
	}
	return Direct{Value: value, Valid: badIdx < 0}, badIdx, nil
}

func (m *DirectModel) first(buf []byte, enc Encoding) (Direct, int, error) {
	return m.First(buf, enc)
}

// Next applies value' = ((value<<2)|nextCode) & kmask. valid is supplied by
// the iteration driver, which tracks the k-1 sliding invalidity countdown
// described in §4.7; DirectModel itself carries no counter between calls.
func (m *DirectModel) Next(prev Direct, code byte, valid bool) Direct {
	value := prev.Value.Shl(2).AddSmall(uint32(code)).And(m.mask)
	return Direct{Value: value, Valid: valid}
}

func (m *DirectModel) next(prev Direct, code byte, valid bool) Direct {
	return m.Next(prev, code, valid)
}

func (m *DirectModel) wrap(value BigInt) Direct {
	return Direct{Value: value, Valid: true}
}

/* -------------------------------------------------------------------------- */

func (m *DirectModel) Iterate(buf []byte, enc Encoding, cb func(Direct, int) error) error {
	return iterate[Direct](m, buf, enc, cb)
}

func (m *DirectModel) Build(buf []byte, enc Encoding) ([]Direct, error) {
	return build[Direct](m, buf, enc)
}
