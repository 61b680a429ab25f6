/*
 * bfbeaver - Full-State Cycle Detector
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

// Package fscd implements the Full-State Cycle Detector: per loop, a
// history of complete (tape, memory-pointer) snapshots seen at loop entry
// or back-edge. A repeated snapshot within the same loop id proves the
// machine has entered an unbounded repetition, since execution is
// deterministic and the snapshot captures the entire reachable state at
// that program point.
package fscd

import (
	"github.com/beaverlab/bfbeaver/interp"
	"github.com/beaverlab/bfbeaver/tape"
)

// Cap, when non-zero, bounds how many snapshots are kept per loop id. A
// history that hits its cap stops recording new snapshots for that loop
// without forgetting the ones already seen, so a prior cycle is still
// caught; the only effect of the cap is that a cycle occurring entirely
// after the cap was reached goes undetected and the driver instead runs
// to BudgetExhausted.
type FSCD struct {
	history map[int]map[string]struct{}
	cap     int
}

// New returns an FSCD with no history. cap <= 0 means unbounded.
func New(cap int) *FSCD {
	return &FSCD{history: make(map[int]map[string]struct{}), cap: cap}
}

// key canonicalizes a (tape snapshot, memory pointer) pair into a single
// comparable string. The snapshot itself is already the zero-truncated
// canonical form (tape.Tape.Snapshot); the pointer is appended as a
// fixed-width-free separator so that, e.g., snapshot [1 0] with pointer 0
// never collides with snapshot [1] with pointer 0 (an 0x00 byte cannot
// appear in the pointer's decimal rendering, so it is an unambiguous
// delimiter from the raw snapshot bytes).
func key(snapshot []byte, pointer int) string {
	buf := make([]byte, 0, len(snapshot)+8)
	buf = append(buf, snapshot...)
	buf = append(buf, 0)
	buf = appendInt(buf, pointer)
	return string(buf)
}

func appendInt(buf []byte, v int) []byte {
	if v == 0 {
		return append(buf, '0')
	}
	var tmp [20]byte
	i := len(tmp)
	n := v
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}
	return append(buf, tmp[i:]...)
}

// Observe records the current (tape, pointer) state for the named event
// and reports whether it proves non-halting. Only LoopEntered and
// LoopBackEdge are relevant per spec; any other event is a no-op.
func (f *FSCD) Observe(ev interp.Event, tp *tape.Tape, pointer int) bool {
	switch ev.Kind {
	case interp.LoopEntered, interp.LoopBackEdge:
	default:
		return false
	}

	set, ok := f.history[ev.LoopID]
	if !ok {
		set = make(map[string]struct{})
		f.history[ev.LoopID] = set
	}

	k := key(tp.Snapshot(pointer), pointer)
	if _, seen := set[k]; seen {
		return true
	}
	if f.cap > 0 && len(set) >= f.cap {
		return false
	}
	set[k] = struct{}{}
	return false
}
