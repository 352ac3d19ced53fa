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
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultComment prefixes lines that are skipped before field
	// parsing, as in SAM-style headers.
	DefaultComment = '@'

	// DefaultDelimiter separates the columns of a tabular alignment
	// file.
	DefaultDelimiter = '\t'

	// Unaligned is the subject id reported for a query without an
	// alignment.
	Unaligned = "*"
)

// A Parser decodes tabular alignment lines into alignment records.
type Parser struct {
	Fields    Fields
	Comment   byte
	Delimiter byte
}

// NewParser returns a Parser for the given column layout with the
// default comment character and field delimiter.
func NewParser(fields Fields) *Parser {
	return &Parser{
		Fields:    fields,
		Comment:   DefaultComment,
		Delimiter: DefaultDelimiter,
	}
}

func (p *Parser) parseCoordinate(field, column string, lineno int) (int64, error) {
	value, err := strconv.ParseInt(field, 10, 64)
	if err != nil {
		return 0, &MalformedRecord{
			LineNumber: lineno,
			Column:     column,
			Reason:     fmt.Sprintf("cannot parse %q as an integer", field),
		}
	}
	return value, nil
}

// ParseLine decodes one line into an alignment record. ok is false for
// lines that carry no alignment: comment lines, and lines whose subject
// id is "*" (an unaligned query). A non-nil error indicates a malformed
// line, identified by its 1-based line number.
//
// Input coordinates are 1-based and inclusive on both ends; the
// returned record uses 0-based, half-open [Start, End), with the two
// coordinates swapped first when the input reports them in reverse
// orientation.
func (p *Parser) ParseLine(line string, lineno int) (rec Record, ok bool, err error) {
	if len(line) > 0 && line[0] == p.Comment {
		return rec, false, nil
	}
	maxFields := p.Fields.MaxFields()
	fields := strings.SplitN(line, string(p.Delimiter), maxFields+1)
	if len(fields) < maxFields {
		return rec, false, &MalformedRecord{
			LineNumber: lineno,
			Reason:     fmt.Sprintf("%v fields present, %v needed", len(fields), maxFields),
		}
	}
	sid := fields[p.Fields.SubjectID]
	if sid == Unaligned {
		return rec, false, nil
	}
	start, err := p.parseCoordinate(fields[p.Fields.SubjectStart], "subject start", lineno)
	if err != nil {
		return rec, false, err
	}
	end, err := p.parseCoordinate(fields[p.Fields.SubjectEnd], "subject end", lineno)
	if err != nil {
		return rec, false, err
	}
	if end < start {
		start, end = end, start
	}
	slen, err := p.parseCoordinate(fields[p.Fields.SubjectLen], "subject length", lineno)
	if err != nil {
		return rec, false, err
	}
	rec = Record{
		QueryID:    fields[p.Fields.QueryID],
		SubjectID:  sid,
		SubjectLen: slen,
		Start:      start - 1,
		End:        end,
	}
	return rec, true, nil
}
