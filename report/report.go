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

// Package report packages a summarization result as a JSON document
// for downstream consumers.
package report

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/refabund/refabund/abundance"
	"github.com/refabund/refabund/utils"
)

// Envelope wraps one summarization result with enough metadata to
// trace it back to its input after upload.
type Envelope struct {
	RunID   string             `json:"run_id"`
	Program string             `json:"program"`
	Version string             `json:"version"`
	Input   string             `json:"input"`
	Results *abundance.Summary `json:"results"`
}

// New returns an Envelope for the given input name and summary, with a
// fresh run identifier.
func New(input string, summary *abundance.Summary) *Envelope {
	return &Envelope{
		RunID:   uuid.New().String(),
		Program: utils.ProgramName,
		Version: utils.ProgramVersion,
		Input:   input,
		Results: summary,
	}
}

// Format writes the envelope to the given writer as JSON.
func (e *Envelope) Format(w io.Writer) error {
	return json.NewEncoder(w).Encode(e)
}

// WriteFile writes the envelope to the named file as JSON. Files with
// a .gz extension are gzip-compressed.
func (e *Envelope) WriteFile(name string) (err error) {
	file, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		nerr := file.Close()
		if err == nil {
			err = nerr
		}
	}()
	if filepath.Ext(name) == ".gz" {
		gz := gzip.NewWriter(file)
		if err = e.Format(gz); err != nil {
			_ = gz.Close()
			return err
		}
		return gz.Close()
	}
	return e.Format(file)
}
