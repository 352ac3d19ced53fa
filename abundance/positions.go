// refabund: a tool for summarizing per-reference abundance from
// tabular sequence alignments.
// Copyright (c) 2019-2021 the refabund authors.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/refabund/refabund/blob/master/LICENSE.txt>.

package abundance

import (
	"github.com/willf/bitset"

	"github.com/refabund/refabund/intervals"
)

// A PositionSet is the exact set of reference positions covered by at
// least one alignment.
type PositionSet interface {
	// Add inserts the half-open coordinate range [start, end).
	Add(start, end int64)
	// Cardinality returns the exact number of distinct positions in
	// the set.
	Cardinality() uint64
}

// NewPositionSet returns an empty position set for a reference of the
// given length. The dense representation is a bit per reference
// position; the default sparse representation is a union of disjoint
// intervals, whose memory scales with the fragmentation of the
// covered regions rather than with the reference length.
func NewPositionSet(refLen int64, dense bool) PositionSet {
	if dense {
		return &densePositionSet{bits: bitset.New(uint(refLen))}
	}
	return &sparsePositionSet{}
}

const (
	compactThreshold       = 0x10000
	parallelCompactMinimum = 0x8000
)

// sparsePositionSet accumulates covered ranges as intervals and
// compacts them into a sorted disjoint union when they pile up, so
// memory stays proportional to the number of distinct covered regions.
type sparsePositionSet struct {
	ivals       []intervals.Interval
	flat        bool
	nextCompact int
}

func (s *sparsePositionSet) Add(start, end int64) {
	s.ivals = append(s.ivals, intervals.Interval{Start: start, End: end})
	s.flat = false
	if s.nextCompact == 0 {
		s.nextCompact = compactThreshold
	}
	if len(s.ivals) >= s.nextCompact {
		s.compact()
	}
}

func (s *sparsePositionSet) compact() {
	if !s.flat {
		if len(s.ivals) < parallelCompactMinimum {
			intervals.SortByStart(s.ivals)
			s.ivals = intervals.Flatten(s.ivals)
		} else {
			intervals.ParallelSortByStart(s.ivals)
			s.ivals = intervals.ParallelFlatten(s.ivals)
		}
		s.flat = true
	}
	if next := 2 * len(s.ivals); next > compactThreshold {
		s.nextCompact = next
	} else {
		s.nextCompact = compactThreshold
	}
}

func (s *sparsePositionSet) Cardinality() uint64 {
	s.compact()
	return intervals.Cardinality(s.ivals)
}

// densePositionSet stores one bit per reference position.
type densePositionSet struct {
	bits *bitset.BitSet
}

func (s *densePositionSet) Add(start, end int64) {
	for i := start; i < end; i++ {
		s.bits.Set(uint(i))
	}
}

func (s *densePositionSet) Cardinality() uint64 {
	return uint64(s.bits.Count())
}
