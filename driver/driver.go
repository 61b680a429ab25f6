/*
 * bfbeaver - Driver: wires the interpreter and both detectors together
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

// Package driver runs one Analyze call: step the interpreter until it
// halts, the step budget runs out, or one of the two non-termination
// detectors proves it never will. Each call is self-contained — a fresh
// interpreter, a fresh FSCD, a fresh LSD — so concurrent Analyze calls
// over different programs never share state and need no locking.
package driver

import (
	"context"
	"log/slog"

	"github.com/beaverlab/bfbeaver/config"
	"github.com/beaverlab/bfbeaver/detect/fscd"
	"github.com/beaverlab/bfbeaver/detect/lsd"
	"github.com/beaverlab/bfbeaver/interp"
	"github.com/beaverlab/bfbeaver/program"
)

// VerdictKind classifies the outcome of one Analyze call.
type VerdictKind int

const (
	Halted VerdictKind = iota
	NonHaltingFSCD
	NonHaltingLSD
	BudgetExhausted
	Canceled
)

func (k VerdictKind) String() string {
	switch k {
	case Halted:
		return "Halted"
	case NonHaltingFSCD:
		return "NonHaltingFSCD"
	case NonHaltingLSD:
		return "NonHaltingLSD"
	case BudgetExhausted:
		return "BudgetExhausted"
	case Canceled:
		return "Canceled"
	default:
		return "Unknown"
	}
}

// Verdict is the outcome of one Analyze call: a classification plus the
// step count it was reached at and the budget it ran under.
type Verdict struct {
	Kind   VerdictKind
	Steps  uint64
	Budget uint64
}

// traceInterval is how often a step-traced run logs its progress.
const traceInterval = 10_000

// Analyze runs prog to completion, to a proven non-halting verdict, or
// to budget exhaustion, whichever comes first. It is pure with respect
// to its return value: it allocates all of its own state and never
// touches any package-level variable. ctx is consulted between steps
// only, for cooperative cancellation of long runs; it does not affect
// the verdict a completed run reaches.
func Analyze(ctx context.Context, prog *program.Program, opts config.Options) Verdict {
	in := interp.New(prog)

	var fscdDetector *fscd.FSCD
	if opts.FSCDEnabled {
		fscdDetector = fscd.New(opts.PerLoopHistoryCap)
	}
	var lsdDetector *lsd.LSD
	if opts.LSDEnabled {
		lsdDetector = lsd.New(opts.PerLoopHistoryCap)
	}

	for {
		if in.Halted() {
			return Verdict{Kind: Halted, Steps: in.Steps(), Budget: opts.StepBudget}
		}
		if opts.StepBudget > 0 && in.Steps() >= opts.StepBudget {
			return Verdict{Kind: BudgetExhausted, Steps: in.Steps(), Budget: opts.StepBudget}
		}
		select {
		case <-ctx.Done():
			return Verdict{Kind: Canceled, Steps: in.Steps(), Budget: opts.StepBudget}
		default:
		}

		before := in.MemoryPointer()
		ev, halted := in.Step()
		after := in.MemoryPointer()

		if opts.Trace && in.Steps()%traceInterval == 0 {
			slog.Debug("bfbeaver: step trace", "steps", in.Steps(), "pp", in.ProgramPointer(), "mp", after)
		}

		if fscdDetector != nil && fscdDetector.Observe(ev, in.Tape(), after) {
			return Verdict{Kind: NonHaltingFSCD, Steps: in.Steps(), Budget: opts.StepBudget}
		}
		if lsdDetector != nil && lsdDetector.Step(ev, in.Tape(), before, after) {
			return Verdict{Kind: NonHaltingLSD, Steps: in.Steps(), Budget: opts.StepBudget}
		}
		if halted {
			return Verdict{Kind: Halted, Steps: in.Steps(), Budget: opts.StepBudget}
		}
	}
}
