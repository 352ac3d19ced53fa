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
	"math"

	"github.com/exascience/pargo/parallel"
)

// ReferenceSummary is the final record for one reference sequence.
// Depth and coverage are rounded to 4 decimals, RPKM to 6.
type ReferenceSummary struct {
	ID             string  `json:"id"`
	Length         int64   `json:"length"`
	TotalDepth     float64 `json:"total_depth"`
	UniqueDepth    float64 `json:"unique_depth"`
	TotalCoverage  float64 `json:"total_coverage"`
	UniqueCoverage float64 `json:"unique_coverage"`
	TotalRPKM      float64 `json:"total_rpkm"`
	UniqueRPKM     float64 `json:"unique_rpkm"`
	TotalReads     uint64  `json:"total_reads"`
	UniqueReads    uint64  `json:"unique_reads"`
}

// Summary is the result of one summarization run.
type Summary struct {
	AlignedReads uint64             `json:"total_aligned_reads"`
	References   []ReferenceSummary `json:"references"`
}

func round(x, factor float64) float64 {
	return math.Round(x*factor) / factor
}

// RPKM returns reads per kilobase of reference per million aligned
// reads. In amino-acid coordinate space one reference position spans
// three nucleotides, so the reference length carries a factor of 3.
func RPKM(reads uint64, refLen int64, alignedReads uint64, nucleotide bool) float64 {
	factor := 3.0
	if nucleotide {
		factor = 1.0
	}
	return float64(reads) / ((factor * float64(refLen) / 1000.0) * (float64(alignedReads) / 1000000.0))
}

func (acc *Accumulator) summarizeRef(id string, stats *RefStats) ReferenceSummary {
	length := float64(stats.Length)
	return ReferenceSummary{
		ID:             id,
		Length:         stats.Length,
		TotalDepth:     round(float64(stats.TotalBases)/length, 1e4),
		UniqueDepth:    round(float64(stats.UniqueBases)/length, 1e4),
		TotalCoverage:  round(float64(stats.TotalPositions.Cardinality())/length, 1e4),
		UniqueCoverage: round(float64(stats.UniquePositions.Cardinality())/length, 1e4),
		TotalRPKM:      round(RPKM(stats.TotalReads, stats.Length, acc.alignedReads, acc.opts.Nucleotide), 1e6),
		UniqueRPKM:     round(RPKM(stats.UniqueReads, stats.Length, acc.alignedReads, acc.opts.Nucleotide), 1e6),
		TotalReads:     stats.TotalReads,
		UniqueReads:    stats.UniqueReads,
	}
}

// Summarize converts the accumulated per-reference state into the
// final summary, in the order the references were first seen. Every
// reference in the mapping has at least one total alignment, because
// references only enter the mapping when a record for them is folded.
// The accumulators stay untouched, so Summarize is idempotent.
func (acc *Accumulator) Summarize() *Summary {
	summary := &Summary{
		AlignedReads: acc.alignedReads,
		References:   make([]ReferenceSummary, len(acc.order)),
	}
	if len(acc.order) == 0 {
		return summary
	}
	parallel.Range(0, len(acc.order), 0, func(low, high int) {
		for i := low; i < high; i++ {
			id := acc.order[i]
			summary.References[i] = acc.summarizeRef(id, acc.refs[id])
		}
	})
	return summary
}
