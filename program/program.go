/*
 * bfbeaver - Parser / bracket matcher
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

// Package program parses the restricted Brainfuck dialect into a compact
// instruction vector with precomputed bracket jump targets.
package program

import (
	"errors"
	"strings"
)

// ErrUnbalancedBrackets is returned by Parse when the source contains a
// '[' with no matching ']', a ']' with no matching '[', or either ends
// with pending brackets left open.
var ErrUnbalancedBrackets = errors.New("program: unbalanced brackets")

// Op identifies one of the six significant Brainfuck instructions.
type Op byte

const (
	Plus Op = iota
	Minus
	Right
	Left
	StartLoop
	EndLoop
)

// Inst is one instruction in a parsed Program. Match is only meaningful
// for StartLoop and EndLoop: it holds the program index of the partner
// bracket.
type Inst struct {
	Op    Op
	Match int
}

// Program is an ordered, validated instruction vector. The index of a
// StartLoop instruction is its loop id.
type Program struct {
	Inst []Inst
}

// Len reports the number of instructions.
func (p *Program) Len() int {
	return len(p.Inst)
}

var byteToOp = map[byte]Op{
	'+': Plus,
	'-': Minus,
	'>': Right,
	'<': Left,
	'[': StartLoop,
	']': EndLoop,
}

var opToByte = map[Op]byte{
	Plus:      '+',
	Minus:     '-',
	Right:     '>',
	Left:      '<',
	StartLoop: '[',
	EndLoop:   ']',
}

// Parse filters src down to the six significant characters and builds a
// Program, resolving every bracket's matching partner. Any other byte is
// silently elided, matching the dialect's comment convention. Parse fails
// with ErrUnbalancedBrackets if the brackets do not nest perfectly.
func Parse(src []byte) (*Program, error) {
	prog := &Program{}
	var pending []int // stack of indices of unmatched StartLoop instructions

	for _, b := range src {
		op, ok := byteToOp[b]
		if !ok {
			continue
		}
		idx := len(prog.Inst)
		switch op {
		case StartLoop:
			pending = append(pending, idx)
			prog.Inst = append(prog.Inst, Inst{Op: StartLoop})
		case EndLoop:
			if len(pending) == 0 {
				return nil, ErrUnbalancedBrackets
			}
			open := pending[len(pending)-1]
			pending = pending[:len(pending)-1]
			prog.Inst = append(prog.Inst, Inst{Op: EndLoop, Match: open})
			prog.Inst[open].Match = idx
		default:
			prog.Inst = append(prog.Inst, Inst{Op: op})
		}
	}

	if len(pending) != 0 {
		return nil, ErrUnbalancedBrackets
	}
	return prog, nil
}

// String renders the Program back to its six-character source form, for
// debug logging and REPL echo.
func (p *Program) String() string {
	var b strings.Builder
	for _, in := range p.Inst {
		b.WriteByte(opToByte[in.Op])
	}
	return b.String()
}
