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
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/avlplay/avl"
)

const emptyTreeText = "(empty tree)"

type cellClass int

const (
	cellBlank cellClass = iota
	cellEdge
	cellNode
	cellUnbalanced
	cellCritical
	cellSelected
)

type cell struct {
	r     rune
	class cellClass
}

type RenderOptions struct {
	Width         int
	NegateBalance bool
	ShowHeights   bool
	Selected      int
	HasSelection  bool
}

// TreeRenderer draws a tree layout as terminal text. A renderer without
// styles produces plain text.
type TreeRenderer struct {
	styles map[cellClass]lipgloss.Style
}

func NewTreeRenderer(scheme *ColorScheme) *TreeRenderer {
	return &TreeRenderer{
		styles: map[cellClass]lipgloss.Style{
			cellEdge:       lipgloss.NewStyle().Foreground(scheme.Edge),
			cellNode:       lipgloss.NewStyle().Foreground(scheme.Text).Bold(true),
			cellUnbalanced: lipgloss.NewStyle().Foreground(scheme.Warning).Bold(true),
			cellCritical:   lipgloss.NewStyle().Foreground(scheme.Error).Bold(true),
			cellSelected: lipgloss.NewStyle().
				Foreground(scheme.OnSelected).
				Background(scheme.Selected).
				Bold(true),
		},
	}
}

// RenderPlain draws the tree without colours, for CLI output and the clipboard.
func RenderPlain(tree *avl.Tree[int], opts RenderOptions) string {
	return (&TreeRenderer{}).Render(tree, opts)
}

// nodeColumn spreads the 2^depth slots of a level evenly across width.
func nodeColumn(position, depth, width int) int {
	spacing := float64(width) / (math.Exp2(float64(depth)) + 1)
	return int(spacing * float64(position+1))
}

func (r *TreeRenderer) label(tree *avl.Tree[int], p avl.Placement[int], opts RenderOptions) string {
	balance := p.BalanceFactor
	if opts.NegateBalance {
		balance = -balance
	}
	label := fmt.Sprintf("%d(%+d)", p.Key, balance)
	if balance == 0 {
		label = fmt.Sprintf("%d(0)", p.Key)
	}
	if opts.ShowHeights {
		if n := tree.Find(p.Key); n != nil {
			label += fmt.Sprintf("h%d", n.Height())
		}
	}
	return label
}

// Render draws every node whose layout position is known; nodes below
// avl.MaxPositionDepth are left out.
func (r *TreeRenderer) Render(tree *avl.Tree[int], opts RenderOptions) string {
	layout := tree.Layout()
	if len(layout.Placements) == 0 {
		return emptyTreeText
	}

	width := max(opts.Width, 8)
	rows := 2*layout.MaxDepth + 1
	grid := make([][]cell, rows)
	for i := range grid {
		grid[i] = make([]cell, width)
		for j := range grid[i] {
			grid[i][j] = cell{r: ' '}
		}
	}

	put := func(row, col int, ch rune, class cellClass) {
		if col >= 0 && col < width {
			grid[row][col] = cell{r: ch, class: class}
		}
	}

	type slot struct{ position, depth int }
	columns := make(map[slot]int, len(layout.Placements))
	for _, p := range layout.Placements {
		if p.Position < 0 {
			continue
		}
		col := nodeColumn(p.Position, p.Depth, width)
		columns[slot{p.Position, p.Depth}] = col

		class := cellNode
		switch classifyBalance(p.BalanceFactor) {
		case StatusUnbalanced:
			class = cellUnbalanced
		case StatusCritical:
			class = cellCritical
		}
		if opts.HasSelection && p.Key == opts.Selected {
			class = cellSelected
		}

		label := []rune(r.label(tree, p, opts))
		start := min(max(col-len(label)/2, 0), max(width-len(label), 0))
		for i, ch := range label {
			put(2*p.Depth, start+i, ch, class)
		}
	}

	// The parent of slot (p, d) is (p/2, d-1).
	for _, p := range layout.Placements {
		if p.Depth == 0 || p.Position < 0 {
			continue
		}
		parentCol := columns[slot{p.Position / 2, p.Depth - 1}]
		childCol := columns[slot{p.Position, p.Depth}]
		ch := '\\'
		if p.Position%2 == 0 {
			ch = '/'
		}
		put(2*p.Depth-1, (parentCol+childCol)/2, ch, cellEdge)
	}

	lines := make([]string, rows)
	for i, row := range grid {
		lines[i] = strings.TrimRight(r.renderRow(row), " ")
	}
	return strings.Join(lines, "\n")
}

func (r *TreeRenderer) renderRow(row []cell) string {
	var b strings.Builder
	start := 0
	for i := 1; i <= len(row); i++ {
		if i < len(row) && row[i].class == row[start].class {
			continue
		}
		var run strings.Builder
		for _, c := range row[start:i] {
			run.WriteRune(c.r)
		}
		if style, ok := r.styles[row[start].class]; ok {
			b.WriteString(style.Render(run.String()))
		} else {
			b.WriteString(run.String())
		}
		start = i
	}
	return b.String()
}
