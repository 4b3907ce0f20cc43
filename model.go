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

// Model is the public shape shared by DirectModel, CanonicalModel, and
// MinimizerModel[B]: construct once from a k, then iterate many buffers
// against it. A constructed model is immutable and safe to share read-only
// across goroutines; see the MinimizerModel doc comment in model_minimizer.go
// for the one table a minimizer model owns and releases with it.
type Model[K Kmer] interface {
	KmerSize() int
	KmerMask() BigInt
	First(buf []byte, enc Encoding) (K, int, error)
	Next(prev K, code byte, valid bool) K
	Iterate(buf []byte, enc Encoding, cb func(K, int) error) error
	Build(buf []byte, enc Encoding) ([]K, error)
}

// ops is the unexported "operations capability set" the driver below is
// generic over, matching the design note that model-kind polymorphism
// should be a shared free function over {first, next, kmerSize} rather
// than a deep inheritance hierarchy. wrap lets the minimizer model turn a
// bare BigInt back into a B without re-running First over a buffer.
type ops[K Kmer] interface {
	kmerSize() int
	first(buf []byte, enc Encoding) (K, int, error)
	next(prev K, code byte, valid bool) K
	wrap(value BigInt) K
}

/* -------------------------------------------------------------------------- */

// iterate drives (buffer, len, encoding, callback) -> exactly
// max(0, len-k+1) emissions. It is the one copy of the §4.7 loop; every
// model kind (direct, canonical, minimizer-wrapped) runs through it.
func iterate[K Kmer](m ops[K], buf []byte, enc Encoding, cb func(K, int) error) error {
	k := m.kmerSize()
	if len(buf)-k+1 <= 0 {
		return nil
	}
	decode, err := decoderFor(enc)
	if err != nil {
		return err
	}
	rec, badIdx, err := m.first(buf, enc)
	if err != nil {
		return err
	}
	if err := cb(rec, 0); err != nil {
		return err
	}
	idx := 0
	for i := k; i < len(buf); i++ {
		code, invalid := decode(buf, i)
		if invalid {
			badIdx = k - 1
		} else {
			badIdx--
		}
		rec = m.next(rec, code, badIdx < 0)
		idx++
		if err := cb(rec, idx); err != nil {
			return err
		}
	}
	return nil
}

// build is iterate with a collecting callback, pre-sized to N = len-k+1.
func build[K Kmer](m ops[K], buf []byte, enc Encoding) ([]K, error) {
	k := m.kmerSize()
	n := len(buf) - k + 1
	if n <= 0 {
		return nil, nil
	}
	out := make([]K, 0, n)
	err := iterate[K](m, buf, enc, func(rec K, _ int) error {
		out = append(out, rec)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
