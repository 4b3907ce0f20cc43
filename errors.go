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

import "errors"

/* -------------------------------------------------------------------------- */

// Sentinel errors returned by model constructors and iteration. Construction
// errors are reported once and never retried; invalid nucleotides are not
// errors, they only clear a kmer's Valid flag (see Direct, Canonical).
var (
	ErrPrecisionTooLow  = errors.New("kmerspan: k exceeds the maximum big-integer width this build supports")
	ErrBadSizes         = errors.New("kmerspan: minimizer size m must be smaller than the outer kmer size k")
	ErrBadEncoding      = errors.New("kmerspan: unrecognized nucleotide encoding")
	ErrSuperKmerTooLong = errors.New("kmerspan: super-kmer run exceeds the 8-bit length field (255 kmers) or the tail capacity of its k-mer-width container")
)
