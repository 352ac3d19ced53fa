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

// Package abundance folds query-grouped alignment records into
// per-reference abundance statistics: read and base counts, covered
// positions, depth, breadth of coverage, and RPKM.
package abundance

import (
	"github.com/refabund/refabund/blast"
)

// DefaultProgressInterval is the number of alignment records between
// two progress reports.
const DefaultProgressInterval = 100000

// Options configure a summarization run.
type Options struct {
	// Nucleotide indicates that the subject coordinates are in
	// nucleotide space. By default they are treated as amino-acid
	// space, where one position spans three nucleotides, and RPKM
	// carries a factor of 3 on the reference length.
	Nucleotide bool

	// Dense selects the dense position-set representation (one bit
	// per reference position). The default sparse representation is
	// better for long references with localized alignments.
	Dense bool

	// Progress, when non-nil, is called after every ProgressInterval
	// alignment records, and once more at end of stream with the
	// final record count.
	Progress func(records uint64)

	// ProgressInterval defaults to DefaultProgressInterval.
	ProgressInterval uint64
}

// RefStats holds the running totals for one reference sequence. The
// counters only grow; the unique tallies count only reads whose query
// produced exactly one alignment record in the whole input.
type RefStats struct {
	Length                          int64
	TotalReads, UniqueReads         uint64
	TotalBases, UniqueBases         uint64
	TotalPositions, UniquePositions PositionSet
}

// An Accumulator owns the per-reference statistics for one
// summarization run. Accumulators must not be reused across runs;
// create a fresh one per input stream.
type Accumulator struct {
	opts         Options
	refs         map[string]*RefStats
	order        []string
	alignedReads uint64
}

// NewAccumulator returns an empty Accumulator.
func NewAccumulator(opts Options) *Accumulator {
	if opts.ProgressInterval == 0 {
		opts.ProgressInterval = DefaultProgressInterval
	}
	return &Accumulator{
		opts: opts,
		refs: make(map[string]*RefStats),
	}
}

// Fold adds one query batch to the per-reference totals. A batch with
// exactly one record marks its query as unique: such reads count
// towards the unique tallies of the one reference they align to. Reads
// aligning to two or more loci count only towards the totals, for
// every reference they touch. The run-wide aligned-read counter grows
// by one per batch, regardless of the batch size.
func (acc *Accumulator) Fold(batch blast.Batch) {
	if len(batch) == 0 {
		return
	}
	unique := len(batch) == 1
	for _, rec := range batch {
		stats := acc.refs[rec.SubjectID]
		if stats == nil {
			// The first record seen for a reference sets its length.
			stats = &RefStats{
				Length:          rec.SubjectLen,
				TotalPositions:  NewPositionSet(rec.SubjectLen, acc.opts.Dense),
				UniquePositions: NewPositionSet(rec.SubjectLen, acc.opts.Dense),
			}
			acc.refs[rec.SubjectID] = stats
			acc.order = append(acc.order, rec.SubjectID)
		}
		alen := uint64(rec.End - rec.Start)
		stats.TotalReads++
		stats.TotalBases += alen
		stats.TotalPositions.Add(rec.Start, rec.End)
		if unique {
			stats.UniqueReads++
			stats.UniqueBases += alen
			stats.UniquePositions.Add(rec.Start, rec.End)
		}
	}
	acc.alignedReads++
}

// AlignedReads returns the number of query batches folded so far.
func (acc *Accumulator) AlignedReads() uint64 {
	return acc.alignedReads
}

// Ref returns the running totals for the given reference, or nil if no
// alignment against it has been seen.
func (acc *Accumulator) Ref(id string) *RefStats {
	return acc.refs[id]
}
