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

// Package blast implements parsing and query-level grouping of tabular
// alignment output (BLAST/DIAMOND outfmt 6 style files).
package blast

import "fmt"

// Record is one alignment of a query against a region of a subject
// (reference) sequence. Start is 0-based inclusive, End is exclusive,
// and Start <= End always holds, regardless of the strand reported in
// the input.
type Record struct {
	QueryID    string
	SubjectID  string
	SubjectLen int64
	Start, End int64
}

// Batch is an ordered sequence of alignment records that all share the
// same QueryID.
type Batch []Record

// Fields maps the columns of a tabular alignment file to the record
// fields, as 0-based column indices.
type Fields struct {
	QueryID      int
	SubjectID    int
	SubjectLen   int
	SubjectStart int
	SubjectEnd   int
}

// DefaultFields is the column layout produced by
// diamond --outfmt 6 qseqid sseqid slen sstart send.
var DefaultFields = Fields{
	QueryID:      0,
	SubjectID:    1,
	SubjectLen:   2,
	SubjectStart: 3,
	SubjectEnd:   4,
}

// MaxFields returns the number of columns that need to be split off a
// line to reach all configured fields. Splitting stops there, so long
// lines with extra trailing columns are not fully scanned.
func (f Fields) MaxFields() int {
	max := f.QueryID
	if f.SubjectID > max {
		max = f.SubjectID
	}
	if f.SubjectLen > max {
		max = f.SubjectLen
	}
	if f.SubjectStart > max {
		max = f.SubjectStart
	}
	if f.SubjectEnd > max {
		max = f.SubjectEnd
	}
	return max + 1
}

// MalformedRecord reports a line that cannot be parsed into an
// alignment record. It aborts the whole summarization: a format
// mismatch this early would silently corrupt all downstream totals.
type MalformedRecord struct {
	LineNumber int
	Column     string
	Reason     string
}

func (e *MalformedRecord) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("malformed alignment record at line %v, column %v: %v", e.LineNumber, e.Column, e.Reason)
	}
	return fmt.Sprintf("malformed alignment record at line %v: %v", e.LineNumber, e.Reason)
}
