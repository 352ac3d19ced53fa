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

package report

import (
	"compress/gzip"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/refabund/refabund/abundance"
	"github.com/refabund/refabund/blast"
)

func sampleSummary() *abundance.Summary {
	acc := abundance.NewAccumulator(abundance.Options{})
	acc.Fold(blast.Batch{{QueryID: "q1", SubjectID: "refA", SubjectLen: 100, Start: 0, End: 50}})
	return acc.Summarize()
}

func TestWriteFile(t *testing.T) {
	envelope := New("sample.blast", sampleSummary())
	if envelope.RunID == "" {
		t.Error("envelope run id failed")
	}
	name := filepath.Join(t.TempDir(), "summary.json")
	if err := envelope.WriteFile(name); err != nil {
		t.Fatal("WriteFile failed: ", err)
	}
	file, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	var decoded Envelope
	if err := json.NewDecoder(file).Decode(&decoded); err != nil {
		t.Fatal("decode failed: ", err)
	}
	if decoded.Input != "sample.blast" || decoded.RunID != envelope.RunID {
		t.Error("envelope metadata failed")
	}
	if decoded.Results.AlignedReads != 1 || len(decoded.Results.References) != 1 {
		t.Error("envelope results failed")
	}
	if decoded.Results.References[0].TotalCoverage != 0.5 {
		t.Error("envelope coverage failed")
	}
}

func TestWriteFileGzip(t *testing.T) {
	envelope := New("sample.blast", sampleSummary())
	name := filepath.Join(t.TempDir(), "summary.json.gz")
	if err := envelope.WriteFile(name); err != nil {
		t.Fatal("WriteFile gzip failed: ", err)
	}
	file, err := os.Open(name)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	gz, err := gzip.NewReader(file)
	if err != nil {
		t.Fatal("gzip header failed: ", err)
	}
	var decoded Envelope
	if err := json.NewDecoder(gz).Decode(&decoded); err != nil {
		t.Fatal("gzip decode failed: ", err)
	}
	if decoded.Results.AlignedReads != 1 {
		t.Error("gzip envelope results failed")
	}
}
