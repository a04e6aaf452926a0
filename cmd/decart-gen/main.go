package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"time"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), `%[1]s: generate a csv trace file of synthetic data sets
Usage:

 %[1]s > file

OR

 %[1]s -interval 50ms | decart -trace -

Available series are sin, cos, square and walk.

`, os.Args[0])
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	series := flag.String("series", "sin,cos,walk", "Comma separated list of series to generate")
	interval := flag.Duration("interval", 0, "Interval between rows; zero writes as fast as possible")
	count := flag.Int("count", 200, "Number of x values to write; zero writes until interrupted")
	step := flag.Float64("step", 0.1, "Distance between consecutive x values")
	seed := flag.Int64("seed", 1, "Seed for the random walk")
	outputName := flag.String("output", "-", "Output file for CSV trace data")
	flag.Parse()

	s, err := newSampler(*series, *step, *seed)
	if err != nil {
		log.Fatal(err)
	}
	var output io.WriteCloser
	if *outputName == "-" {
		output = os.Stdout
	} else {
		f, err := os.Create(*outputName)
		if err != nil {
			log.Fatalf("failed opening output file %q: %v", *outputName, err)
		}
		output = f
	}
	buf := bufio.NewWriter(output)
	if err := writeHeader(buf); err != nil {
		log.Fatalf("failed writing header: %v", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt)
	var tick <-chan time.Time
	if *interval > 0 {
		ticker := time.NewTicker(*interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	finish := func() {
		if err := buf.Flush(); err != nil {
			log.Printf("failed flushing output: %v", err)
		}
		if err := output.Close(); err != nil {
			log.Printf("failed closing output: %v", err)
		}
	}
	for written := 0; *count == 0 || written < *count; written++ {
		if tick != nil {
			select {
			case <-sigChan:
				// We've gotten an interrupt; shut down.
				finish()
				return
			case <-tick:
			}
		}
		if err := s.writeRows(buf); err != nil {
			log.Fatalf("failed writing rows: %v", err)
		}
		if tick != nil {
			// Readers follow the file row by row.
			if err := buf.Flush(); err != nil {
				log.Fatalf("failed flushing output: %v", err)
			}
		}
	}
	finish()
}
