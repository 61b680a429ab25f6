/*
 * bfbeaver - Configuration file parser
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

// Package config holds the options a driver.Analyze run is parameterized
// by, and a line-oriented text format to read them from:
//
//	# comment
//	step_budget = 5000000
//	fscd_enabled = true
//	lsd_enabled = true
//	per_loop_history_cap = 4096
//
// One "key = value" per line; blank lines and lines starting with '#'
// (after leading whitespace) are skipped. There is exactly one kind of
// line, since this module has exactly one device to configure: the
// interpreter.
package config

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrInvalidOption is returned by Parse for an unrecognized key, a
// malformed value, or an out-of-range value.
var ErrInvalidOption = errors.New("config: invalid option")

// Options parameterizes one driver.Analyze run.
type Options struct {
	StepBudget        uint64
	FSCDEnabled       bool
	LSDEnabled        bool
	PerLoopHistoryCap int
	Trace             bool
}

// Default returns the options a bare invocation should use: a generous
// but finite step budget, both detectors on, and an unbounded per-loop
// history.
func Default() Options {
	return Options{
		StepBudget:        5_000_000,
		FSCDEnabled:       true,
		LSDEnabled:        true,
		PerLoopHistoryCap: 0,
		Trace:             false,
	}
}

// Parse reads the line-oriented option format from r, starting from
// Default() and overriding whatever keys are present.
func Parse(r io.Reader) (Options, error) {
	opts := Default()
	scanner := bufio.NewScanner(r)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return Options{}, fmt.Errorf("config: line %d: missing '=': %w", lineNumber, ErrInvalidOption)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		if err := opts.set(key, value); err != nil {
			return Options{}, fmt.Errorf("config: line %d: %w", lineNumber, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

func (o *Options) set(key, value string) error {
	switch key {
	case "step_budget":
		n, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return fmt.Errorf("step_budget: %w", ErrInvalidOption)
		}
		o.StepBudget = n
	case "fscd_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("fscd_enabled: %w", ErrInvalidOption)
		}
		o.FSCDEnabled = b
	case "lsd_enabled":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("lsd_enabled: %w", ErrInvalidOption)
		}
		o.LSDEnabled = b
	case "per_loop_history_cap":
		if value == "inf" {
			o.PerLoopHistoryCap = 0
			return nil
		}
		n, err := strconv.Atoi(value)
		if err != nil || n < 0 {
			return fmt.Errorf("per_loop_history_cap: %w", ErrInvalidOption)
		}
		o.PerLoopHistoryCap = n
	case "trace":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("trace: %w", ErrInvalidOption)
		}
		o.Trace = b
	default:
		return fmt.Errorf("unknown key %q: %w", key, ErrInvalidOption)
	}
	return nil
}
