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
	"io"
	"log"

	"github.com/exascience/pargo/pipeline"

	"github.com/refabund/refabund/blast"
)

// Run reads a tabular alignment stream front to back and folds it into
// the accumulator. The stream is consumed in a single pass: reading
// ahead happens in the pipeline source, while parsing, grouping, and
// accumulation run sequentially in input order, which the grouping
// step depends on.
//
// A malformed line aborts the run with a non-nil error and no summary
// should be produced from the accumulator in that case. An input
// without any alignment is not an error; it leaves the accumulator
// empty and logs a warning.
func Run(input io.Reader, parser *blast.Parser, acc *Accumulator) error {
	grouper := blast.NewGrouper(acc.Fold)
	var records uint64
	lineno := 0
	var p pipeline.Pipeline
	p.Source(pipeline.NewScanner(input))
	p.Add(pipeline.Ord(pipeline.Receive(func(_ int, data interface{}) interface{} {
		lines := data.([]string)
		for _, line := range lines {
			lineno++
			rec, ok, err := parser.ParseLine(line, lineno)
			if err != nil {
				p.SetErr(err)
				return data
			}
			if !ok {
				continue
			}
			records++
			if acc.opts.Progress != nil && records%acc.opts.ProgressInterval == 0 {
				acc.opts.Progress(records)
			}
			grouper.Push(rec)
		}
		return data
	})))
	p.Run()
	if err := p.Err(); err != nil {
		return err
	}
	grouper.Flush()
	if acc.opts.Progress != nil {
		acc.opts.Progress(records)
	}
	if acc.alignedReads == 0 {
		log.Println("Warning: no reads were aligned.")
	}
	return nil
}
