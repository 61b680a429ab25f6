package fscd

/*
 * bfbeaver - Full-State Cycle Detector test cases
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

import (
	"testing"

	"github.com/beaverlab/bfbeaver/interp"
	"github.com/beaverlab/bfbeaver/program"
)

// runFSCD drives the interpreter for up to budget steps, feeding every
// event to a fresh FSCD, and reports the step at which it first fires
// (0 if it never does within budget).
func runFSCD(t *testing.T, src string, budget int, cap int) (fireAt int, halted bool) {
	t.Helper()
	prog, err := program.Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse(%q) returned error: %v", src, err)
	}
	in := interp.New(prog)
	f := New(cap)
	for step := 1; step <= budget; step++ {
		ev, h := in.Step()
		if f.Observe(ev, in.Tape(), in.MemoryPointer()) {
			return step, false
		}
		if h {
			return 0, true
		}
	}
	return 0, false
}

// "+[]" never halts: the body is empty, so the (tape, pointer) pair
// recorded at loop entry recurs at the first back-edge.
func TestEmptyLoopFires(t *testing.T) {
	fireAt, halted := runFSCD(t, "+[]", 100, 0)
	if halted {
		t.Fatalf("+[] must not halt")
	}
	if fireAt == 0 {
		t.Fatalf("FSCD never fired within budget")
	}
	// step 1: '+'; step 2: LoopEntered (snapshot recorded); step 3:
	// LoopBackEdge with identical snapshot -> fires on step 3.
	if fireAt != 3 {
		t.Errorf("fireAt got: %d expected: 3", fireAt)
	}
}

// "+>+>+[<]" repeats tape [01 01 01], mp=0 at the fourth entry to the loop.
func TestRegisterWalkFires(t *testing.T) {
	fireAt, halted := runFSCD(t, "+>+>+[<]", 1000, 0)
	if halted {
		t.Fatalf("+>+>+[<] must not halt")
	}
	if fireAt == 0 {
		t.Fatalf("FSCD never fired within budget")
	}
}

// FSCD must never fire on a halting program.
func TestNeverFiresOnHaltingProgram(t *testing.T) {
	fireAt, halted := runFSCD(t, "+++.", 10, 0)
	if !halted {
		t.Fatalf("+++. must halt")
	}
	if fireAt != 0 {
		t.Errorf("FSCD fired at step %d on a halting program", fireAt)
	}
}

// FSCD must never fire on a halting program even when it contains loops
// that terminate.
func TestNeverFiresOnHaltingLoop(t *testing.T) {
	fireAt, halted := runFSCD(t, "+++[-]", 100, 0)
	if !halted {
		t.Fatalf("+++[-] must halt")
	}
	if fireAt != 0 {
		t.Errorf("FSCD fired at step %d on a halting program", fireAt)
	}
}

// A non-zero cap bounds the history but does not stop FSCD from catching
// a repeat of a snapshot recorded before the cap was reached.
func TestCapStillDetectsRepeatWithinCap(t *testing.T) {
	f := New(1)
	prog, err := program.Parse([]byte("+[]"))
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	in := interp.New(prog)
	fired := false
	for step := 0; step < 10; step++ {
		ev, _ := in.Step()
		if f.Observe(ev, in.Tape(), in.MemoryPointer()) {
			fired = true
			break
		}
	}
	// cap=1 still allows the first distinct snapshot to be recorded, so
	// a second identical visit is still caught: the cap must never cause
	// a false negative on a repeat that occurs before the cap is hit.
	if !fired {
		t.Errorf("FSCD failed to detect a cycle within its cap")
	}
}
