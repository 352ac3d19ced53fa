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

package blast

import (
	"errors"
	"testing"
)

func TestParseLine(t *testing.T) {
	p := NewParser(DefaultFields)
	rec, ok, err := p.ParseLine("q1\trefA\t100\t1\t50", 1)
	if err != nil || !ok {
		t.Fatal("ParseLine failed")
	}
	if rec != (Record{QueryID: "q1", SubjectID: "refA", SubjectLen: 100, Start: 0, End: 50}) {
		t.Error("ParseLine record failed:", rec)
	}
}

func TestParseLineReverseOrientation(t *testing.T) {
	p := NewParser(DefaultFields)
	rec, ok, err := p.ParseLine("q1\trefA\t100\t50\t1", 1)
	if err != nil || !ok {
		t.Fatal("ParseLine reverse failed")
	}
	if rec.Start != 0 || rec.End != 50 {
		t.Error("ParseLine reverse coordinates failed:", rec)
	}
}

func TestParseLineUnaligned(t *testing.T) {
	p := NewParser(DefaultFields)
	if _, ok, err := p.ParseLine("q1\t*\t100\t1\t50", 1); ok || err != nil {
		t.Error("ParseLine unaligned failed")
	}
}

func TestParseLineComment(t *testing.T) {
	p := NewParser(DefaultFields)
	if _, ok, err := p.ParseLine("@HD\tVN:1.6", 1); ok || err != nil {
		t.Error("ParseLine comment failed")
	}
}

func TestParseLineTrailingColumns(t *testing.T) {
	p := NewParser(DefaultFields)
	rec, ok, err := p.ParseLine("q1\trefA\t100\t1\t50\tMKV\textra\tcolumns", 1)
	if err != nil || !ok {
		t.Fatal("ParseLine trailing columns failed")
	}
	if rec.End != 50 {
		t.Error("ParseLine trailing columns record failed:", rec)
	}
}

func TestParseLineTooFewColumns(t *testing.T) {
	p := NewParser(DefaultFields)
	_, _, err := p.ParseLine("q1\trefA\t100", 7)
	var malformed *MalformedRecord
	if !errors.As(err, &malformed) {
		t.Fatal("ParseLine too few columns failed")
	}
	if malformed.LineNumber != 7 {
		t.Error("ParseLine too few columns line number failed:", malformed.LineNumber)
	}
}

func TestParseLineBadInteger(t *testing.T) {
	p := NewParser(DefaultFields)
	_, _, err := p.ParseLine("q1\trefA\t100\txx\t50", 3)
	var malformed *MalformedRecord
	if !errors.As(err, &malformed) {
		t.Fatal("ParseLine bad integer failed")
	}
	if malformed.Column != "subject start" || malformed.LineNumber != 3 {
		t.Error("ParseLine bad integer location failed:", malformed)
	}
}

func TestParseLineCustomLayout(t *testing.T) {
	p := NewParser(Fields{
		QueryID:      1,
		SubjectID:    0,
		SubjectLen:   4,
		SubjectStart: 2,
		SubjectEnd:   3,
	})
	p.Delimiter = ','
	p.Comment = '#'
	rec, ok, err := p.ParseLine("refA,q1,11,20,100", 1)
	if err != nil || !ok {
		t.Fatal("ParseLine custom layout failed")
	}
	if rec != (Record{QueryID: "q1", SubjectID: "refA", SubjectLen: 100, Start: 10, End: 20}) {
		t.Error("ParseLine custom layout record failed:", rec)
	}
	if _, ok, _ := p.ParseLine("# a comment", 2); ok {
		t.Error("ParseLine custom comment failed")
	}
}

func TestMaxFields(t *testing.T) {
	if DefaultFields.MaxFields() != 5 {
		t.Error("MaxFields default failed")
	}
	f := Fields{QueryID: 0, SubjectID: 12, SubjectLen: 3, SubjectStart: 8, SubjectEnd: 9}
	if f.MaxFields() != 13 {
		t.Error("MaxFields custom failed")
	}
}
