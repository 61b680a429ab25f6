/*
 * bfbeaver - Tape: right-extensible byte-cell memory
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

// Package tape implements the Brainfuck interpreter's memory: a
// conceptually infinite, right-extending array of 8-bit cells, left
// bounded at index 0, whose unallocated suffix reads as zero.
package tape

// Tape holds the allocated prefix of an infinite zero-filled cell array.
// Cells past the allocated length are implicitly zero; Read and Write
// both grow the allocation on demand. Index 0 always exists once a Tape
// is constructed, and indices never go negative.
type Tape struct {
	cells []byte
}

// New returns an empty Tape with cell 0 already allocated.
func New() *Tape {
	return &Tape{cells: make([]byte, 1)}
}

// Len reports the current allocated length. It is not part of the
// machine's observable state (spec equality ignores allocation size) and
// exists only for diagnostics.
func (t *Tape) Len() int {
	return len(t.cells)
}

// grow extends the allocation with zeros so index i is valid.
func (t *Tape) grow(i int) {
	if i < len(t.cells) {
		return
	}
	next := make([]byte, i+1)
	copy(next, t.cells)
	t.cells = next
}

// Read returns the value at index i, auto-extending the tape if i is
// past the current high-water mark.
func (t *Tape) Read(i int) byte {
	t.grow(i)
	return t.cells[i]
}

// Write stores v at index i, auto-extending the tape if necessary.
func (t *Tape) Write(i int, v byte) {
	t.grow(i)
	t.cells[i] = v
}

// Snapshot returns the canonical prefix of the tape: the shorter of
// "through the last non-zero cell" and "through the current memory
// pointer" is never correct on its own, so Snapshot takes whichever
// extends further, per spec. Two tapes that are identical once extended
// to infinity with zeros produce byte-identical snapshots regardless of
// how far either has actually been allocated.
func (t *Tape) Snapshot(pointer int) []byte {
	last := -1
	for i, v := range t.cells {
		if v != 0 {
			last = i
		}
	}
	end := last
	if pointer > end {
		end = pointer
	}
	if end < 0 {
		return nil
	}
	if end >= len(t.cells) {
		// pointer reaches past the allocated prefix; the extra cells
		// are implicitly zero, so the canonical form still only needs
		// to cover what's allocated plus explicit zero padding to end.
		out := make([]byte, end+1)
		copy(out, t.cells)
		return out
	}
	out := make([]byte, end+1)
	copy(out, t.cells[:end+1])
	return out
}

// Slice returns the inclusive cell range [lo, hi], reading zero for any
// index past the allocated prefix. Used by the Loop Span Detector to
// pull the entry-time touched region and extension values out of a
// tape snapshot without mutating it.
func Slice(snapshot []byte, lo, hi int) []byte {
	if hi < lo {
		return nil
	}
	out := make([]byte, hi-lo+1)
	for i := lo; i <= hi; i++ {
		if i >= 0 && i < len(snapshot) {
			out[i-lo] = snapshot[i]
		}
	}
	return out
}
