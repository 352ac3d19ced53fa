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

// A Grouper collects consecutive alignment records that share a query
// id into batches, and hands each completed batch to an emit callback.
// The input stream must be grouped so that all records for a query are
// contiguous; if a query id reappears non-contiguously, its records
// are emitted as separate batches. This precondition is not detected.
//
// The batch slice is reused between emit calls; the callback must not
// retain it.
type Grouper struct {
	emit  func(Batch)
	qid   string
	batch Batch
}

// NewGrouper returns a Grouper that calls emit for every completed
// batch. emit is never called with an empty batch.
func NewGrouper(emit func(Batch)) *Grouper {
	return &Grouper{emit: emit}
}

// Push adds a record to the in-progress batch, first emitting that
// batch if the record starts a new query.
func (g *Grouper) Push(rec Record) {
	if len(g.batch) > 0 && rec.QueryID != g.qid {
		g.emit(g.batch)
		g.batch = g.batch[:0]
	}
	g.qid = rec.QueryID
	g.batch = append(g.batch, rec)
}

// Flush emits the final in-progress batch, if any. It must be called
// once, at end of input.
func (g *Grouper) Flush() {
	if len(g.batch) > 0 {
		g.emit(g.batch)
		g.batch = g.batch[:0]
	}
}
