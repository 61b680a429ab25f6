/*
 * bfbeaver - Interpreter core
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

// Package interp is the Brainfuck interpreter core: program pointer,
// memory pointer, tape, and step counter, advancing one instruction per
// Step call and emitting at most one loop-lifecycle event per step. The
// interpreter knows nothing about the non-termination detectors that
// consume those events; see package driver for the wiring.
package interp

import (
	"github.com/beaverlab/bfbeaver/program"
	"github.com/beaverlab/bfbeaver/tape"
)

// Interpreter is one independent machine: its own program pointer,
// memory pointer, tape, and step counter. Two Interpreters never share
// state, so independent analyses can run on separate goroutines with no
// locking, per the single-Driver-per-Program concurrency model.
type Interpreter struct {
	prog  *program.Program
	tp    *tape.Tape
	pp    int
	mp    int
	steps uint64
}

// New returns an Interpreter positioned at the start of prog with a
// fresh, all-zero tape.
func New(prog *program.Program) *Interpreter {
	return &Interpreter{prog: prog, tp: tape.New()}
}

// Halted reports whether the program pointer has run off the end of the
// instruction vector.
func (in *Interpreter) Halted() bool {
	return in.pp == in.prog.Len()
}

// ProgramPointer returns the current program pointer.
func (in *Interpreter) ProgramPointer() int {
	return in.pp
}

// MemoryPointer returns the current memory pointer.
func (in *Interpreter) MemoryPointer() int {
	return in.mp
}

// Steps returns the number of instructions executed so far.
func (in *Interpreter) Steps() uint64 {
	return in.steps
}

// Tape exposes read access to the interpreter's own tape, for detectors
// and callers that need to snapshot memory. It does not allow the caller
// to replace the tape.
func (in *Interpreter) Tape() *tape.Tape {
	return in.tp
}

// Step executes exactly one instruction and returns the event it
// produced (NoEvent if none) along with whether the machine is now
// halted. Step must not be called once Halted() is already true.
func (in *Interpreter) Step() (Event, bool) {
	inst := in.prog.Inst[in.pp]
	ev := Event{}

	switch inst.Op {
	case program.Plus:
		in.tp.Write(in.mp, in.tp.Read(in.mp)+1)
		in.pp++
	case program.Minus:
		in.tp.Write(in.mp, in.tp.Read(in.mp)-1)
		in.pp++
	case program.Right:
		in.mp++
		in.pp++
	case program.Left:
		if in.mp > 0 {
			in.mp--
		}
		in.pp++
	case program.StartLoop:
		loopID := in.pp
		if in.tp.Read(in.mp) == 0 {
			in.pp = inst.Match + 1
			ev = Event{Kind: LoopSkipped, LoopID: loopID}
		} else {
			in.pp++
			ev = Event{Kind: LoopEntered, LoopID: loopID}
		}
	case program.EndLoop:
		loopID := inst.Match
		if in.tp.Read(in.mp) != 0 {
			in.pp = inst.Match + 1
			ev = Event{Kind: LoopBackEdge, LoopID: loopID}
		} else {
			in.pp++
			ev = Event{Kind: LoopBroken, LoopID: loopID}
		}
	}

	in.steps++
	return ev, in.Halted()
}
