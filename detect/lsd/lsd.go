/*
 * bfbeaver - Loop Span Detector
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

// Package lsd implements the Loop Span Detector: per loop, the sequence
// of "loop spans" produced by successive executions of its body. A span
// captures the shape of one body execution — the cells it touched, how
// far the memory pointer moved, and what lies beyond the touched region
// on the side it moved toward — independent of where on the tape that
// happened. A repeated span within an unbroken run of iterations proves
// the deterministic body will repeat it forever.
package lsd

import (
	"github.com/beaverlab/bfbeaver/interp"
	"github.com/beaverlab/bfbeaver/tape"
)

// Side identifies which direction, if any, a loop body's execution
// displaced the memory pointer.
type Side byte

const (
	None Side = iota
	Left
	Right
)

// recorder is the active bookkeeping for one in-progress execution of a
// loop body, pushed at LoopEntered and consumed at LoopBackEdge or
// LoopBroken.
type recorder struct {
	entrySnapshot []byte
	entryPointer  int
	minPtr        int
	maxPtr        int
}

// LSD tracks, per loop id, a stack of active recorders (a loop body can
// in principle be re-entered before its prior instance is consumed) and
// the subhistory of spans seen across an unbroken run of back-edges.
type LSD struct {
	active     map[int][]*recorder
	subhistory map[int]map[string]struct{}
	cap        int
}

// New returns an LSD with empty state. cap <= 0 means unbounded
// per-loop subhistory.
func New(cap int) *LSD {
	return &LSD{
		active:     make(map[int][]*recorder),
		subhistory: make(map[int]map[string]struct{}),
		cap:        cap,
	}
}

func (l *LSD) push(id int, r *recorder) {
	l.active[id] = append(l.active[id], r)
}

func (l *LSD) pop(id int) *recorder {
	stack := l.active[id]
	if len(stack) == 0 {
		return nil
	}
	r := stack[len(stack)-1]
	l.active[id] = stack[:len(stack)-1]
	return r
}

// updateActive widens every currently active recorder's observed pointer
// range to cover both the pointer value before and after the instruction
// just executed, regardless of which loop the instruction lexically
// belongs to: an outer loop's touched region includes everything its
// nested loops touch.
func (l *LSD) updateActive(before, after int) {
	for _, stack := range l.active {
		for _, r := range stack {
			if before < r.minPtr {
				r.minPtr = before
			}
			if before > r.maxPtr {
				r.maxPtr = before
			}
			if after < r.minPtr {
				r.minPtr = after
			}
			if after > r.maxPtr {
				r.maxPtr = after
			}
		}
	}
}

// Step feeds one instruction's before/after memory pointer and the event
// (if any) it produced to the detector, updating every active recorder
// and acting on loop lifecycle transitions. It reports whether a
// repeated span was found, proving non-halting.
func (l *LSD) Step(ev interp.Event, tp *tape.Tape, before, after int) bool {
	l.updateActive(before, after)

	switch ev.Kind {
	case interp.LoopEntered:
		l.push(ev.LoopID, &recorder{
			entrySnapshot: tp.Snapshot(after),
			entryPointer:  after,
			minPtr:        after,
			maxPtr:        after,
		})

	case interp.LoopBackEdge:
		r := l.pop(ev.LoopID)
		if r == nil {
			break
		}
		span := finalize(r, after)
		if l.record(ev.LoopID, span) {
			return true
		}
		l.push(ev.LoopID, &recorder{
			entrySnapshot: tp.Snapshot(after),
			entryPointer:  after,
			minPtr:        after,
			maxPtr:        after,
		})

	case interp.LoopBroken:
		l.pop(ev.LoopID)
		delete(l.subhistory, ev.LoopID)
	}

	return false
}

// record checks span key k against loop id's subhistory, reporting
// whether it was already present (proving non-halting). Otherwise it
// inserts k, subject to the cap, and reports false.
func (l *LSD) record(id int, k string) bool {
	set, ok := l.subhistory[id]
	if !ok {
		set = make(map[string]struct{})
		l.subhistory[id] = set
	}
	if _, seen := set[k]; seen {
		return true
	}
	if l.cap > 0 && len(set) >= l.cap {
		return false
	}
	set[k] = struct{}{}
	return false
}

// finalize computes the canonical encoding of the loop span produced by
// one body execution, given the recorder accumulated across it and the
// memory pointer p1 observed at the back-edge.
func finalize(r *recorder, p1 int) string {
	displacement := p1 - r.entryPointer
	touched := tape.Slice(r.entrySnapshot, r.minPtr, r.maxPtr)

	var side Side
	var extension []byte
	switch {
	case displacement > 0:
		side = Right
		extension = trimTrailingZeros(tape.Slice(r.entrySnapshot, r.maxPtr+1, len(r.entrySnapshot)-1))
	case displacement < 0:
		side = Left
		if r.minPtr > 0 {
			extension = tape.Slice(r.entrySnapshot, 0, r.minPtr-1)
		}
	default:
		side = None
	}

	return spanKey(touched, displacement, side, extension)
}

func trimTrailingZeros(b []byte) []byte {
	end := len(b)
	for end > 0 && b[end-1] == 0 {
		end--
	}
	return b[:end]
}

// spanKey canonicalizes a loop span into a single comparable string.
// Each variable-length field (touched, extension) is netstring-encoded
// as "<decimal length>:<raw bytes>" so that raw byte values, including
// 0x00, never create an ambiguous boundary between fields.
func spanKey(touched []byte, displacement int, side Side, extension []byte) string {
	buf := make([]byte, 0, len(touched)+len(extension)+24)
	buf = appendSegment(buf, touched)
	buf = appendSignedInt(buf, displacement)
	buf = append(buf, ',')
	buf = append(buf, byte(side))
	buf = append(buf, ',')
	buf = appendSegment(buf, extension)
	return string(buf)
}

func appendSegment(buf []byte, data []byte) []byte {
	buf = appendInt(buf, len(data))
	buf = append(buf, ':')
	buf = append(buf, data...)
	return buf
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

func appendSignedInt(buf []byte, v int) []byte {
	if v < 0 {
		buf = append(buf, '-')
		v = -v
	}
	return appendInt(buf, v)
}
