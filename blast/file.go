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
	"bufio"
	"compress/gzip"
	"os"
)

// InputFile represents a tabular alignment file for input, with
// transparent decompression of gzip-compressed files.
type InputFile struct {
	rc *os.File
	gz *gzip.Reader
	*bufio.Reader
}

// Open opens a tabular alignment file for input. The file contents are
// checked for the gzip magic header; compressed files are decompressed
// on the fly.
func Open(name string) (*InputFile, error) {
	if name == "/dev/stdin" {
		return &InputFile{os.Stdin, nil, bufio.NewReader(os.Stdin)}, nil
	}
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	reader := bufio.NewReader(file)
	if magic, err := reader.Peek(2); err == nil && magic[0] == 0x1f && magic[1] == 0x8b {
		gz, err := gzip.NewReader(reader)
		if err != nil {
			_ = file.Close()
			return nil, err
		}
		return &InputFile{file, gz, bufio.NewReader(gz)}, nil
	}
	return &InputFile{file, nil, reader}, nil
}

// Close closes the alignment input file.
func (f *InputFile) Close() error {
	if f.gz != nil {
		if err := f.gz.Close(); err != nil {
			return err
		}
	}
	if f.rc != os.Stdin {
		return f.rc.Close()
	}
	return nil
}
