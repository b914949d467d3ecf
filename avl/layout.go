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

package avl

import (
	"cmp"
	"math/bits"
)

// MaxPositionDepth is the deepest level whose positions fit in an int.
// Placements below it have Position -1.
const MaxPositionDepth = bits.UintSize - 1

// Placement is where a renderer should draw one node. Position is the
// node's index within its level: a left child of (p, d) sits at (2p, d+1)
// and a right child at (2p+1, d+1). Level d has 2^d slots, so Position is
// -1 for nodes deeper than MaxPositionDepth, which only degenerate trees
// such as long Deferred chains reach.
type Placement[K cmp.Ordered] struct {
	Key           K
	Position      int
	Depth         int
	BalanceFactor int // height(left) - height(right)
}

// Layout is a breadth-first snapshot of the tree shape.
type Layout[K cmp.Ordered] struct {
	Placements []Placement[K]
	MaxDepth   int
}

// Layout walks the tree level by level. It does not modify the tree.
//
// BalanceFactor is derived from the children's heights rather than read
// from the node's cached field, so trees built with Deferred inserts still
// report their real imbalance.
func (t *Tree[K]) Layout() Layout[K] {
	var out Layout[K]
	if t.root == nil {
		return out
	}

	type item struct {
		node     *Node[K]
		pos, dep int
	}
	out.Placements = make([]Placement[K], 0, t.size)
	queue := []item{{node: t.root}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		out.Placements = append(out.Placements, Placement[K]{
			Key:           cur.node.key,
			Position:      cur.pos,
			Depth:         cur.dep,
			BalanceFactor: balanceOf(cur.node),
		})
		out.MaxDepth = max(out.MaxDepth, cur.dep)

		left, right := childPositions(cur.pos, cur.dep+1)
		if cur.node.left != nil {
			queue = append(queue, item{cur.node.left, left, cur.dep + 1})
		}
		if cur.node.right != nil {
			queue = append(queue, item{cur.node.right, right, cur.dep + 1})
		}
	}
	return out
}

func childPositions(pos, depth int) (int, int) {
	if pos < 0 || depth > MaxPositionDepth {
		return -1, -1
	}
	return pos * 2, pos*2 + 1
}

// Find returns the placement of key.
func (l Layout[K]) Find(key K) (Placement[K], bool) {
	for _, p := range l.Placements {
		if p.Key == key {
			return p, true
		}
	}
	return Placement[K]{}, false
}

// Keys returns the keys in breadth-first order.
func (l Layout[K]) Keys() []K {
	keys := make([]K, len(l.Placements))
	for i, p := range l.Placements {
		keys[i] = p.Key
	}
	return keys
}

// Levels groups placements by depth; within a level they are ordered by
// position.
func (l Layout[K]) Levels() [][]Placement[K] {
	if len(l.Placements) == 0 {
		return nil
	}
	levels := make([][]Placement[K], l.MaxDepth+1)
	for _, p := range l.Placements {
		levels[p.Depth] = append(levels[p.Depth], p)
	}
	return levels
}
