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
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/refabund/refabund/blast"
)

func summarizeString(t *testing.T, input string, opts Options) *Summary {
	t.Helper()
	acc := NewAccumulator(opts)
	if err := Run(strings.NewReader(input), blast.NewParser(blast.DefaultFields), acc); err != nil {
		t.Fatal("Run failed: ", err)
	}
	return acc.Summarize()
}

func TestRunSingleAlignment(t *testing.T) {
	summary := summarizeString(t, "q1\trefA\t100\t1\t50\n", Options{})
	if summary.AlignedReads != 1 {
		t.Error("single alignment aligned count failed")
	}
	ref := summary.References[0]
	if ref.ID != "refA" || ref.Length != 100 {
		t.Error("single alignment reference failed:", ref)
	}
	if ref.TotalReads != 1 || ref.UniqueReads != 1 {
		t.Error("single alignment reads failed:", ref)
	}
	if ref.TotalCoverage != 0.5 || ref.UniqueCoverage != 0.5 {
		t.Error("single alignment coverage failed:", ref)
	}
}

func TestRunAmbiguousQuery(t *testing.T) {
	summary := summarizeString(t,
		"q1\trefA\t100\t1\t50\n"+
			"q1\trefB\t200\t1\t50\n", Options{})
	if summary.AlignedReads != 1 {
		t.Error("ambiguous query aligned count failed")
	}
	if len(summary.References) != 2 {
		t.Fatal("ambiguous query reference count failed")
	}
	for _, ref := range summary.References {
		if ref.TotalReads != 1 || ref.UniqueReads != 0 {
			t.Error("ambiguous query tallies failed:", ref)
		}
	}
}

func TestRunEmptyInput(t *testing.T) {
	for _, input := range []string{"", "@comment line\n@another\n", "q1\t*\t0\t0\t0\n"} {
		summary := summarizeString(t, input, Options{})
		if summary.AlignedReads != 0 || len(summary.References) != 0 {
			t.Errorf("empty input summary failed for %q", input)
		}
	}
}

func TestRunMalformedInput(t *testing.T) {
	acc := NewAccumulator(Options{})
	err := Run(strings.NewReader(
		"q1\trefA\t100\t1\t50\n"+
			"q2\trefA\t100\txx\t50\n"),
		blast.NewParser(blast.DefaultFields), acc)
	var malformed *blast.MalformedRecord
	if !errors.As(err, &malformed) {
		t.Fatal("malformed input error failed: ", err)
	}
	if malformed.LineNumber != 2 {
		t.Error("malformed input line number failed:", malformed.LineNumber)
	}
}

func TestRunCountsBatchesNotLines(t *testing.T) {
	// Five alignment lines, three contiguous query groups.
	summary := summarizeString(t,
		"q1\trefA\t100\t1\t50\n"+
			"q1\trefB\t200\t1\t50\n"+
			"q2\trefA\t100\t1\t30\n"+
			"q3\trefB\t200\t51\t100\n"+
			"q3\trefC\t300\t1\t50\n", Options{})
	if summary.AlignedReads != 3 {
		t.Error("batch count failed:", summary.AlignedReads)
	}
}

// A query split across non-contiguous lines yields separate reads.
// This is the documented precondition on the input ordering.
func TestRunNonContiguousQuery(t *testing.T) {
	summary := summarizeString(t,
		"q1\trefA\t100\t1\t50\n"+
			"q2\trefA\t100\t1\t50\n"+
			"q1\trefB\t200\t1\t50\n", Options{})
	if summary.AlignedReads != 3 {
		t.Error("non-contiguous aligned count failed:", summary.AlignedReads)
	}
}

func TestRunOverlapUnion(t *testing.T) {
	summary := summarizeString(t,
		"q1\trefA\t100\t1\t60\n"+
			"q2\trefA\t100\t41\t100\n", Options{})
	ref := summary.References[0]
	if ref.TotalCoverage != 1.0 {
		t.Error("overlap union coverage failed:", ref.TotalCoverage)
	}
	if ref.TotalDepth != 1.2 {
		t.Error("overlap union depth failed:", ref.TotalDepth)
	}
}

func TestRunProgress(t *testing.T) {
	var reports []uint64
	opts := Options{
		ProgressInterval: 2,
		Progress: func(records uint64) {
			reports = append(reports, records)
		},
	}
	summarizeString(t,
		"q1\trefA\t100\t1\t50\n"+
			"@comment\n"+
			"q2\trefA\t100\t1\t50\n"+
			"q3\trefA\t100\t1\t50\n", opts)
	// Reported after the second record, and once more at end of
	// stream with the final count.
	if !reflect.DeepEqual(reports, []uint64{2, 3}) {
		t.Error("progress reports failed:", reports)
	}
}

func TestRunIdempotent(t *testing.T) {
	input := "q1\trefA\t100\t1\t60\n" +
		"q2\trefA\t100\t41\t100\n" +
		"q3\trefB\t250\t30\t1\n"
	first := summarizeString(t, input, Options{})
	second := summarizeString(t, input, Options{})
	if !reflect.DeepEqual(first, second) {
		t.Error("run idempotence failed")
	}
}
