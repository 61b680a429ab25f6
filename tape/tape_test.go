package tape

/*
 * bfbeaver - Tape test cases
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
	"bytes"
	"testing"
)

// Check that reads past the high-water mark return zero and grow the tape.
func TestReadAutoExtends(t *testing.T) {
	tp := New()
	if v := tp.Read(10); v != 0 {
		t.Errorf("Read(10) on fresh tape got: %d expected: 0", v)
	}
	if tp.Len() < 11 {
		t.Errorf("Len() after Read(10) got: %d expected: >= 11", tp.Len())
	}
}

// Check write then read round-trips.
func TestWriteThenRead(t *testing.T) {
	tp := New()
	tp.Write(5, 0x2a)
	if v := tp.Read(5); v != 0x2a {
		t.Errorf("Read(5) got: %#x expected: %#x", v, 0x2a)
	}
	if v := tp.Read(0); v != 0 {
		t.Errorf("Read(0) got: %#x expected: 0", v)
	}
}

// Check that the canonical snapshot extends to the pointer even when every
// cell up to the pointer is zero.
func TestSnapshotExtendsToPointer(t *testing.T) {
	tp := New()
	tp.Write(0, 3)
	snap := tp.Snapshot(4)
	want := []byte{3, 0, 0, 0, 0}
	if !bytes.Equal(snap, want) {
		t.Errorf("Snapshot(4) got: %v expected: %v", snap, want)
	}
}

// Check that the canonical snapshot extends to the last non-zero cell even
// when the pointer sits to its left.
func TestSnapshotExtendsToLastNonZero(t *testing.T) {
	tp := New()
	tp.Write(6, 9)
	snap := tp.Snapshot(0)
	if len(snap) != 7 {
		t.Errorf("Snapshot(0) length got: %d expected: 7", len(snap))
	}
	if snap[6] != 9 {
		t.Errorf("Snapshot(0)[6] got: %d expected: 9", snap[6])
	}
}

// Check that snapshots are insensitive to physical allocation: a tape
// allocated far past its last write still snapshots identically to one
// allocated exactly to the last write.
func TestSnapshotIgnoresAllocation(t *testing.T) {
	small := New()
	small.Write(2, 7)

	big := New()
	big.Write(2, 7)
	big.Read(100) // force a much larger allocation, all zero past index 2

	if !bytes.Equal(small.Snapshot(2), big.Snapshot(2)) {
		t.Errorf("Snapshot differs by allocation size: %v vs %v", small.Snapshot(2), big.Snapshot(2))
	}
}

// Check an all-zero tape with pointer 0 produces the one-cell snapshot [0],
// not an empty one: the pointer forces the snapshot to cover index 0.
func TestSnapshotAllZero(t *testing.T) {
	tp := New()
	snap := tp.Snapshot(0)
	if len(snap) != 1 || snap[0] != 0 {
		t.Errorf("Snapshot(0) on fresh tape got: %v expected: [0]", snap)
	}
}

// Check Slice reads zero past the end of a short snapshot.
func TestSliceZeroPads(t *testing.T) {
	snap := []byte{1, 2}
	got := Slice(snap, 0, 4)
	want := []byte{1, 2, 0, 0, 0}
	if !bytes.Equal(got, want) {
		t.Errorf("Slice got: %v expected: %v", got, want)
	}
}
