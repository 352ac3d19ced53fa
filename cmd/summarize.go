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

package cmd

import (
	"bytes"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/refabund/refabund/abundance"
	"github.com/refabund/refabund/blast"
	"github.com/refabund/refabund/report"
)

// SummarizeHelp is the help string for this command.
const SummarizeHelp = "Summarize parameters:\n" +
	"refabund summarize alignment-file summary-file\n" +
	"[--qseqid n]\n" +
	"[--sseqid n]\n" +
	"[--slen n]\n" +
	"[--sstart n]\n" +
	"[--send n]\n" +
	"[--comment-char char]\n" +
	"[--delimiter char]\n" +
	"[--nucleotide]\n" +
	"[--dense]\n" +
	"[--progress nr]\n" +
	"[--log-path path]\n" +
	"[--timed]\n" +
	"[--profile prefix]\n"

// Summarize implements the refabund summarize command.
func Summarize() (err error) {
	var (
		qseqid, sseqid, slen, sstart, send int
		commentChar, delimiter             string
		nucleotide, dense, timed           bool
		progress                           uint64
		logPath, profile                   string
	)

	var flags flag.FlagSet

	flags.IntVar(&qseqid, "qseqid", 0, "column index of the query id")
	flags.IntVar(&sseqid, "sseqid", 1, "column index of the subject id")
	flags.IntVar(&slen, "slen", 2, "column index of the subject length")
	flags.IntVar(&sstart, "sstart", 3, "column index of the subject alignment start")
	flags.IntVar(&send, "send", 4, "column index of the subject alignment end")
	flags.StringVar(&commentChar, "comment-char", "@", "character that starts comment lines")
	flags.StringVar(&delimiter, "delimiter", "\t", "character that separates columns")
	flags.BoolVar(&nucleotide, "nucleotide", false, "subject coordinates are in nucleotide space")
	flags.BoolVar(&dense, "dense", false, "use dense per-position coverage tracking")
	flags.Uint64Var(&progress, "progress", abundance.DefaultProgressInterval, "log progress every nr alignments (0 disables)")
	flags.StringVar(&logPath, "log-path", "", "write log files to the specified directory")
	flags.BoolVar(&timed, "timed", false, "measure the runtime")
	flags.StringVar(&profile, "profile", "", "write a runtime profile to the specified file(s)")

	if len(os.Args) < 4 {
		fmt.Fprintln(os.Stderr, "Incorrect number of parameters.")
		fmt.Fprint(os.Stderr, SummarizeHelp)
		os.Exit(1)
	}

	input := getFilename(os.Args[2], SummarizeHelp)
	output := getFilename(os.Args[3], SummarizeHelp)

	if err := flags.Parse(os.Args[4:]); err != nil {
		x := 0
		if err != flag.ErrHelp {
			fmt.Fprintln(os.Stderr, err)
			x = 1
		}
		fmt.Fprint(os.Stderr, SummarizeHelp)
		os.Exit(x)
	}

	setLogOutput(logPath)

	// sanity checks

	var sanityChecksFailed bool

	if !checkExist("", input) {
		sanityChecksFailed = true
	}
	if !checkCreate("", output) {
		sanityChecksFailed = true
	}
	for _, index := range []int{qseqid, sseqid, slen, sstart, send} {
		if index < 0 {
			log.Println("Error: Invalid column index: ", index)
			sanityChecksFailed = true
		}
	}
	if len(commentChar) != 1 {
		log.Printf("Error: Invalid comment-char %q, must be a single character.\n", commentChar)
		sanityChecksFailed = true
	}
	if len(delimiter) != 1 {
		log.Printf("Error: Invalid delimiter %q, must be a single character.\n", delimiter)
		sanityChecksFailed = true
	}

	if sanityChecksFailed {
		fmt.Fprint(os.Stderr, SummarizeHelp)
		os.Exit(1)
	}

	// building output command line

	var command bytes.Buffer
	fmt.Fprint(&command, os.Args[0], " summarize ", input, " ", output)
	fmt.Fprint(&command, " --qseqid ", qseqid)
	fmt.Fprint(&command, " --sseqid ", sseqid)
	fmt.Fprint(&command, " --slen ", slen)
	fmt.Fprint(&command, " --sstart ", sstart)
	fmt.Fprint(&command, " --send ", send)
	fmt.Fprint(&command, " --comment-char ", commentChar)
	if delimiter != "\t" {
		fmt.Fprint(&command, " --delimiter ", delimiter)
	}
	if nucleotide {
		fmt.Fprint(&command, " --nucleotide")
	}
	if dense {
		fmt.Fprint(&command, " --dense")
	}
	fmt.Fprint(&command, " --progress ", progress)
	if logPath != "" {
		fmt.Fprint(&command, " --log-path ", logPath)
	}
	log.Println("Executing command:\n", command.String())

	// executing command

	parser := blast.NewParser(blast.Fields{
		QueryID:      qseqid,
		SubjectID:    sseqid,
		SubjectLen:   slen,
		SubjectStart: sstart,
		SubjectEnd:   send,
	})
	parser.Comment = commentChar[0]
	parser.Delimiter = delimiter[0]

	opts := abundance.Options{
		Nucleotide:       nucleotide,
		Dense:            dense,
		ProgressInterval: progress,
	}
	if progress > 0 {
		opts.Progress = func(records uint64) {
			log.Printf("Processed %v alignments.\n", records)
		}
	}
	acc := abundance.NewAccumulator(opts)

	in, oerr := blast.Open(input)
	if oerr != nil {
		return oerr
	}
	defer func() {
		if nerr := in.Close(); err == nil {
			err = nerr
		}
	}()

	phase := int64(1)
	timedRun(timed, profile, "Summarizing alignments.", phase, func() {
		err = abundance.Run(in, parser, acc)
	})
	if err != nil {
		return err
	}

	envelope := report.New(input, acc.Summarize())

	phase++
	timedRun(timed, profile, "Writing summary.", phase, func() {
		err = envelope.WriteFile(output)
	})
	return err
}
