// Copyright ©2026 The bíogo Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// psltails reports the reference hairpin and untemplated 3′ addition of
// each small RNA read from BLAT PSLx alignments.
//
// Reads must be named "<seqNo>-<readCount>" and, unless -load-reads is
// given, appear in the read file in ascending seqNo order.
package main

import (
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/grailbio/base/log"
	"github.com/spf13/cobra"

	"github.com/biogo/tails/fai"
	"github.com/biogo/tails/fasta"
	"github.com/biogo/tails/internal/xopen"
	"github.com/biogo/tails/psl"
	"github.com/biogo/tails/tail"
)

type options struct {
	reads      string
	reference  string
	alignments string
	output     string
	selected   string

	rescue    bool
	loadReads bool
	verbose   bool
}

func main() {
	err := newCommand().Execute()
	if err != nil {
		if xopen.IsBrokenPipe(err) {
			return
		}
		log.Error.Printf("psltails: %v", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "psltails",
		Short: "Parse BLAT alignments to produce a simplified table with untemplated additions",
		Args:  cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.verbose {
				log.SetLevel(log.Debug)
			}
			return run(opts)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.reads, "read", "", "sequence read file in (optionally gzipped) FASTA format")
	f.StringVar(&opts.reference, "reference", "", "reference hairpin sequence file in FASTA format")
	f.StringVar(&opts.alignments, "alignments", "", "sequence alignments in (optionally gzipped) PSLx format")
	f.StringVar(&opts.output, "output", xopen.Std, "output file for resulting table (- for stdout)")
	f.StringVar(&opts.selected, "selected", "", "optional output file for the selected alignments in PSLx format")
	f.BoolVar(&opts.rescue, "rescue", false, "move mismatched trailing A/T bases of alignments into the added sequence")
	f.BoolVar(&opts.loadReads, "load-reads", false, "load all reads into memory instead of scanning them in order")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log progress details")
	for _, name := range []string{"read", "reference", "alignments"} {
		err := cmd.MarkFlagRequired(name)
		if err != nil {
			panic(err)
		}
	}
	return cmd
}

func run(opts options) error {
	refs, err := fai.Open(opts.reference)
	if err != nil {
		return err
	}
	defer refs.Close()

	af, err := xopen.Open(opts.alignments)
	if err != nil {
		return err
	}
	defer af.Close()
	alns, err := psl.NewReader(af)
	if err != nil {
		return err
	}

	rf, err := xopen.Open(opts.reads)
	if err != nil {
		return err
	}
	defer rf.Close()
	var reads tail.SequenceResolver
	if opts.loadReads {
		m, err := fasta.ReadMap(rf)
		if err != nil {
			return err
		}
		log.Debug.Printf("loaded %s reads", humanize.Comma(int64(len(m))))
		reads = m
	} else {
		reads = fasta.NewCursor(rf)
	}

	res, err := tail.Run(alns, reads, refs, tail.Config{Rescue: opts.rescue})
	if err != nil {
		return err
	}
	log.Debug.Printf("read %s alignments, %s on the forward strand",
		humanize.Comma(int64(res.Records)), humanize.Comma(int64(res.Forward)))
	if opts.rescue {
		log.Debug.Printf("rescued trailing bases of %s reads", humanize.Comma(int64(res.Rescued)))
	}

	err = writeOutput(opts.output, func(w io.Writer) error {
		return tail.WriteTable(w, res, opts.rescue)
	})
	if err != nil {
		return err
	}
	if opts.selected != "" {
		err = writeOutput(opts.selected, func(w io.Writer) error {
			pw := psl.NewWriter(w)
			for _, a := range res.Alignments {
				err := pw.Write(a.Record)
				if err != nil {
					return err
				}
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	log.Printf("wrote %s reads", humanize.Comma(int64(len(res.Alignments))))
	return nil
}

// writeOutput creates path and calls fn to fill it, closing the output
// whether or not fn succeeds.
func writeOutput(path string, fn func(w io.Writer) error) error {
	w, err := xopen.Create(path)
	if err != nil {
		return err
	}
	err = fn(w)
	cerr := w.Close()
	if err != nil {
		return err
	}
	return cerr
}
