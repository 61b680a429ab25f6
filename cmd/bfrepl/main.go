/*
 * bfbeaver - Interactive console
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

// Command bfrepl is an interactive console for trying out programs
// against the detectors one at a time: type a program, see its verdict,
// repeat. It is a thin consumer of the driver/program/config API.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/beaverlab/bfbeaver/config"
	"github.com/beaverlab/bfbeaver/driver"
	"github.com/beaverlab/bfbeaver/program"
	"github.com/beaverlab/bfbeaver/telemetry"
)

const instructionChars = "+-><[]"

// session holds the console's working configuration, mutable by the
// "!budget" directive between program evaluations.
type session struct {
	opts config.Options
}

func main() {
	logger := telemetry.NewLogger(os.Stderr, slog.LevelInfo, false)
	slog.SetDefault(logger)

	s := &session{opts: config.Default()}

	line := liner.NewLiner()
	defer line.Close()

	line.SetCtrlCAborts(true)
	line.SetCompleter(func(input string) []string {
		return completeCmd(input)
	})

	fmt.Println("bfbeaver console. Type a program, !budget <n>, or !quit.")
	for {
		input, err := line.Prompt("bfbeaver> ")
		if err != nil {
			if errors.Is(err, liner.ErrPromptAborted) {
				return
			}
			slog.Error("error reading line: " + err.Error())
			return
		}
		line.AppendHistory(input)

		quit, err := s.process(input)
		if err != nil {
			fmt.Println("Error: " + err.Error())
		}
		if quit {
			return
		}
	}
}

// process dispatches one line of console input: a "!"-prefixed command
// or a bare program to analyze. It reports whether the console should
// exit.
func (s *session) process(input string) (bool, error) {
	trimmed := strings.TrimSpace(input)
	switch {
	case trimmed == "":
		return false, nil
	case trimmed == "!quit":
		return true, nil
	case strings.HasPrefix(trimmed, "!budget "):
		n, err := strconv.ParseUint(strings.TrimSpace(strings.TrimPrefix(trimmed, "!budget ")), 10, 64)
		if err != nil {
			return false, fmt.Errorf("!budget: %w", err)
		}
		s.opts.StepBudget = n
		fmt.Printf("step budget set to %d\n", n)
		return false, nil
	default:
		prog, err := program.Parse([]byte(trimmed))
		if err != nil {
			return false, err
		}
		v := driver.Analyze(context.Background(), prog, s.opts)
		fmt.Printf("%s after %d steps (budget %d)\n", v.Kind, v.Steps, v.Budget)
		return false, nil
	}
}

// completeCmd offers tab completion for the console's "!" directives and
// echoes back any of the six instruction characters already typed.
func completeCmd(input string) []string {
	commands := []string{"!budget ", "!quit"}
	var out []string
	for _, c := range commands {
		if strings.HasPrefix(c, input) {
			out = append(out, c)
		}
	}
	if out == nil && input != "" && strings.Trim(input, instructionChars) == "" {
		out = append(out, input)
	}
	return out
}
