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
	"fmt"
	"io"
	"math"

	"github.com/cybrota/avlplay/avl"
	"github.com/schollz/progressbar/v3"
)

// TreeStats summarises a tree for CLI output.
type TreeStats struct {
	Nodes      int
	Height     int
	MinHeight  int // height of a perfectly balanced tree with the same size
	Unbalanced []int
	ValidErr   error
}

func collectStats(tree *avl.Tree[int]) TreeStats {
	n := tree.Len()
	return TreeStats{
		Nodes:      n,
		Height:     tree.Height(),
		MinHeight:  int(math.Ceil(math.Log2(float64(n + 1)))),
		Unbalanced: tree.Unbalanced(),
		ValidErr:   tree.Validate(),
	}
}

func (s TreeStats) Print(w io.Writer) {
	fmt.Fprintf(w, "nodes:      %d\n", s.Nodes)
	fmt.Fprintf(w, "height:     %d (minimum %d)\n", s.Height, s.MinHeight)
	if len(s.Unbalanced) == 0 {
		fmt.Fprintf(w, "balanced:   %syes%s\n", Green, Reset)
	} else {
		fmt.Fprintf(w, "balanced:   %sno%s, %d node(s) out of balance\n", Warning, Reset, len(s.Unbalanced))
	}
	if s.ValidErr != nil {
		fmt.Fprintf(w, "caches:     %s%v%s\n", Error, s.ValidErr, Reset)
	} else {
		fmt.Fprintf(w, "caches:     %sconsistent%s\n", Green, Reset)
	}
}

func newFillBar(total int, out io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(out),
		progressbar.OptionSetDescription("Inserting keys..."),
		progressbar.OptionSetWidth(50),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(0),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(out)
		}),
	)
}

// fillTree inserts n fresh keys drawn from keys. A nil bar disables
// progress output.
func fillTree(tree *avl.Tree[int], keys *KeyGenerator, n int, mode avl.Mode, bar *progressbar.ProgressBar) error {
	lo, hi := keys.Range()
	if free := keys.Size() - tree.Len(); n > free {
		return fmt.Errorf("%w: %d keys requested, %d free in [%d, %d]", ErrKeySpaceExhausted, n, free, lo, hi)
	}

	for i := 0; i < n; i++ {
		key, err := keys.Next(tree)
		if err != nil {
			return err
		}
		tree.Insert(key, mode)
		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return nil
}
