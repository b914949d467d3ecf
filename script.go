// Copyright 2025 Naren Yellavula
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/cybrota/avlplay/avl"
	"github.com/mattn/go-shellwords"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("bad arguments")
	ErrCheckFailed    = errors.New("check failed")
)

// ScriptError reports the failing command and its position in the script.
type ScriptError struct {
	Line int
	Text string
	Err  error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("line %d: %q: %v", e.Line, e.Text, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// ScriptRunner executes tree commands, one per line or separated by ';':
//
//	insert [--eager|--deferred|--keyed] k...
//	rotate k left|right
//	balance
//	recompute
//	contains k
//	layout
//	print
//	check
//
// Everything after '#' is a comment.
type ScriptRunner struct {
	tree      *avl.Tree[int]
	out       io.Writer
	parser    *shellwords.Parser
	Width     int
	KeepGoing bool
}

func NewScriptRunner(tree *avl.Tree[int], out io.Writer) *ScriptRunner {
	return &ScriptRunner{
		tree:   tree,
		out:    out,
		parser: shellwords.NewParser(),
		Width:  80,
	}
}

func (r *ScriptRunner) Tree() *avl.Tree[int] { return r.tree }

// RunFile runs the script at path.
func RunFile(r *ScriptRunner, path string) error {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("script file %s not found", path)
		}
		return err
	}
	defer file.Close()

	return r.Run(file)
}

// Run executes every command in src. It stops at the first failure unless
// KeepGoing is set, in which case all failures are joined.
func (r *ScriptRunner) Run(src io.Reader) error {
	scanner := bufio.NewScanner(src)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	var errs []error
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if i := strings.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, stmt := range strings.Split(line, ";") {
			stmt = strings.TrimSpace(stmt)
			if stmt == "" {
				continue
			}
			if err := r.Exec(stmt); err != nil {
				serr := &ScriptError{Line: lineNo, Text: stmt, Err: err}
				if !r.KeepGoing {
					return serr
				}
				errs = append(errs, serr)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// Exec runs a single command.
func (r *ScriptRunner) Exec(stmt string) error {
	args, err := r.parser.Parse(stmt)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	if len(args) == 0 {
		return nil
	}

	name, args := strings.ToLower(args[0]), args[1:]
	switch name {
	case "insert", "add":
		return r.insert(args)
	case "rotate":
		return r.rotate(args)
	case "balance":
		r.tree.RebalanceAll()
	case "recompute":
		r.tree.Recompute()
	case "contains":
		if len(args) != 1 {
			return fmt.Errorf("%w: contains takes one key", ErrUsage)
		}
		key, err := parseKey(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(r.out, r.tree.Contains(key))
	case "layout":
		for _, p := range r.tree.Layout().Placements {
			fmt.Fprintf(r.out, "%d pos=%d depth=%d bf=%d\n", p.Key, p.Position, p.Depth, p.BalanceFactor)
		}
	case "print":
		fmt.Fprintln(r.out, RenderPlain(r.tree, RenderOptions{Width: r.Width}))
	case "check":
		return r.check()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return nil
}

func (r *ScriptRunner) insert(args []string) error {
	mode := avl.Eager
	var keys []int
	for _, arg := range args {
		if strings.HasPrefix(arg, "--") {
			m, err := avl.ParseMode(strings.TrimPrefix(arg, "--"))
			if err != nil {
				return fmt.Errorf("%w: %v", ErrUsage, err)
			}
			mode = m
			continue
		}
		key, err := parseKey(arg)
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}
	if len(keys) == 0 {
		return fmt.Errorf("%w: insert needs at least one key", ErrUsage)
	}
	for _, key := range keys {
		r.tree.Insert(key, mode)
	}
	return nil
}

func (r *ScriptRunner) rotate(args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: rotate takes a key and a direction", ErrUsage)
	}
	key, err := parseKey(args[0])
	if err != nil {
		return err
	}
	dir, err := avl.ParseDirection(args[1])
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return r.tree.Rotate(key, dir)
}

// check fails unless the tree is a valid AVL tree with fresh caches.
func (r *ScriptRunner) check() error {
	if err := r.tree.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrCheckFailed, err)
	}
	if unbalanced := r.tree.Unbalanced(); len(unbalanced) > 0 {
		return fmt.Errorf("%w: unbalanced keys %v", ErrCheckFailed, unbalanced)
	}
	fmt.Fprintf(r.out, "ok: %d node(s), height %d\n", r.tree.Len(), r.tree.Height())
	return nil
}

func parseKey(s string) (int, error) {
	key, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: key %q is not an integer", ErrUsage, s)
	}
	return key, nil
}
