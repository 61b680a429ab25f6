/*
 * bfbeaver - Single-shot program analyzer
 *
 * Copyright 2026, The bfbeaver contributors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Command bfanalyze runs the non-halting detectors over a single
// program and prints the verdict. It is a thin demonstration of the
// driver/program/config API, not the enumeration-and-search system that
// would drive it across many candidate programs.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	getopt "github.com/pborman/getopt/v2"

	"github.com/beaverlab/bfbeaver/config"
	"github.com/beaverlab/bfbeaver/driver"
	"github.com/beaverlab/bfbeaver/program"
	"github.com/beaverlab/bfbeaver/telemetry"
)

func main() {
	optBudget := getopt.StringLong("budget", 'b', "", "Step budget (unset = use config/default)")
	optConfig := getopt.StringLong("config", 'c', "", "Configuration file")
	optVerbose := getopt.BoolLong("verbose", 'v', "Enable step tracing")
	optHelp := getopt.BoolLong("help", 'h', "Help")
	getopt.Parse()

	if *optHelp {
		getopt.Usage()
		os.Exit(0)
	}

	level := slog.LevelInfo
	if *optVerbose {
		level = slog.LevelDebug
	}
	logger := telemetry.NewLogger(os.Stderr, level, *optVerbose)
	slog.SetDefault(logger)

	opts := config.Default()
	if *optConfig != "" {
		f, err := os.Open(*optConfig)
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
		opts, err = config.Parse(f)
		f.Close()
		if err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}
	if *optBudget != "" {
		n, err := strconv.ParseUint(*optBudget, 10, 64)
		if err != nil {
			logger.Error("invalid --budget value: " + err.Error())
			os.Exit(1)
		}
		opts.StepBudget = n
	}
	opts.Trace = *optVerbose

	args := getopt.Args()
	var src []byte
	var err error
	if len(args) > 0 {
		src, err = os.ReadFile(args[0])
	} else {
		src, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	prog, err := program.Parse(src)
	if err != nil {
		logger.Error(err.Error())
		os.Exit(1)
	}

	v := driver.Analyze(context.Background(), prog, opts)
	fmt.Printf("%s after %d steps (budget %d)\n", v.Kind, v.Steps, v.Budget)
	if v.Kind == driver.NonHaltingFSCD || v.Kind == driver.NonHaltingLSD || v.Kind == driver.Halted {
		os.Exit(0)
	}
	os.Exit(2)
}
