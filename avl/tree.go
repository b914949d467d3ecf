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

// Package avl implements an AVL tree whose balancing can be applied eagerly
// on every insertion or deferred to an explicit full-tree pass, together
// with a breadth-first layout for renderers and a manual rotation editor.
//
// A Tree is not safe for concurrent use. Callers serialise mutations.
package avl

import (
	"cmp"
	"fmt"
	"strings"
)

// Mode selects how Insert restores balance.
type Mode int

const (
	// Eager rebalances every ancestor of the new key, choosing the rotation
	// case from the heavy child's balance sign.
	Eager Mode = iota
	// Deferred only maintains heights. No rotations happen and the cached
	// balance factors on the insertion path go stale until RebalanceAll or
	// Recompute runs.
	Deferred
	// KeyGuided rebalances every ancestor, choosing the rotation case by
	// comparing the inserted key with the heavy child's key.
	KeyGuided
)

func (m Mode) String() string {
	switch m {
	case Eager:
		return "eager"
	case Deferred:
		return "deferred"
	case KeyGuided:
		return "keyed"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts the names printed by Mode.String.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "eager", "":
		return Eager, nil
	case "deferred", "lazy":
		return Deferred, nil
	case "keyed", "key-guided":
		return KeyGuided, nil
	}
	return Eager, fmt.Errorf("unknown insert mode %q", s)
}

type Tree[K cmp.Ordered] struct {
	root *Node[K]
	size int
}

func New[K cmp.Ordered]() *Tree[K] {
	return &Tree[K]{}
}

func (t *Tree[K]) Root() *Node[K] { return t.root }

// Len returns the number of keys in the tree.
func (t *Tree[K]) Len() int { return t.size }

// Height returns the cached height of the root, 0 for an empty tree.
func (t *Tree[K]) Height() int { return height(t.root) }

// Insert adds key to the tree. Inserting a key that is already present
// does nothing.
func (t *Tree[K]) Insert(key K, mode Mode) {
	root, inserted := insert(t.root, key, mode)
	if !inserted {
		return
	}
	t.root = root
	t.size++
}

func insert[K cmp.Ordered](node *Node[K], key K, mode Mode) (*Node[K], bool) {
	if node == nil {
		return newNode(key), true
	}

	var inserted bool
	switch {
	case key < node.key:
		node.left, inserted = insert(node.left, key, mode)
	case key > node.key:
		node.right, inserted = insert(node.right, key, mode)
	default:
		return node, false
	}
	if !inserted {
		return node, false
	}

	switch mode {
	case Deferred:
		node.updateHeight()
		return node, true
	case KeyGuided:
		node.update()
		return fixupByKey(node, key), true
	default:
		node.update()
		return fixup(node), true
	}
}

// fixup performs at most one single or double rotation at n, picking the
// case from the heavy child's balance.
func fixup[K cmp.Ordered](n *Node[K]) *Node[K] {
	switch b := balanceOf(n); {
	case b > 1:
		if balanceOf(n.left) < 0 {
			// Left-Right case
			n.left = n.left.RotateLeft()
		}
		return n.RotateRight()
	case b < -1:
		if balanceOf(n.right) > 0 {
			// Right-Left case
			n.right = n.right.RotateRight()
		}
		return n.RotateLeft()
	}
	return n
}

// fixupByKey picks the rotation case by comparing the inserted key with the
// heavy child's key. When the tree was already out of balance before the
// insertion the chosen double rotation may lack its grandchild, in which
// case the balance-sign rule decides instead.
func fixupByKey[K cmp.Ordered](n *Node[K], key K) *Node[K] {
	switch b := balanceOf(n); {
	case b > 1:
		if key < n.left.key {
			return n.RotateRight()
		}
		if n.left.right != nil {
			n.left = n.left.RotateLeft()
			return n.RotateRight()
		}
		return fixup(n)
	case b < -1:
		if key > n.right.key {
			return n.RotateLeft()
		}
		if n.right.left != nil {
			n.right = n.right.RotateRight()
			return n.RotateLeft()
		}
		return fixup(n)
	}
	return n
}

// RebalanceAll turns the whole tree into AVL form in a single post-order
// pass. Running it on a balanced tree changes nothing.
func (t *Tree[K]) RebalanceAll() {
	t.root = rebalance(t.root)
}

func rebalance[K cmp.Ordered](n *Node[K]) *Node[K] {
	if n == nil {
		return nil
	}
	n.left = rebalance(n.left)
	n.right = rebalance(n.right)
	return settle(n)
}

// settle balances the subtree at n, whose children must already be AVL.
// A rotation can leave the demoted node out of balance when the input was
// badly skewed, so demoted nodes are settled again and the new top is
// re-checked. Every repeat strictly lowers the subtree height.
func settle[K cmp.Ordered](n *Node[K]) *Node[K] {
	if n == nil {
		return nil
	}
	n.update()

	var top *Node[K]
	switch {
	case n.balance > 1:
		if n.left.balance < 0 {
			n.left = n.left.RotateLeft()
		}
		top = n.RotateRight()
	case n.balance < -1:
		if n.right.balance > 0 {
			n.right = n.right.RotateRight()
		}
		top = n.RotateLeft()
	default:
		return n
	}

	top.left = settle(top.left)
	top.right = settle(top.right)
	return settle(top)
}

// Recompute refreshes every cached height and balance factor from the
// structure without rotating anything.
func (t *Tree[K]) Recompute() {
	recompute(t.root)
}

func recompute[K cmp.Ordered](n *Node[K]) int {
	if n == nil {
		return 0
	}
	hl := recompute(n.left)
	hr := recompute(n.right)
	n.height = max(hl, hr) + 1
	n.balance = hl - hr
	return n.height
}

// Find returns the node holding key, or nil.
func (t *Tree[K]) Find(key K) *Node[K] {
	cur := t.root
	for cur != nil {
		switch {
		case key < cur.key:
			cur = cur.left
		case key > cur.key:
			cur = cur.right
		default:
			return cur
		}
	}
	return nil
}

func (t *Tree[K]) Contains(key K) bool {
	return t.Find(key) != nil
}

// Keys returns all keys in ascending order.
func (t *Tree[K]) Keys() []K {
	keys := make([]K, 0, t.size)
	var walk func(n *Node[K])
	walk = func(n *Node[K]) {
		if n == nil {
			return
		}
		walk(n.left)
		keys = append(keys, n.key)
		walk(n.right)
	}
	walk(t.root)
	return keys
}

// Unbalanced lists, in breadth-first order, the keys whose subtrees differ
// in height by more than one.
func (t *Tree[K]) Unbalanced() []K {
	var keys []K
	for _, p := range t.Layout().Placements {
		if p.BalanceFactor > 1 || p.BalanceFactor < -1 {
			keys = append(keys, p.Key)
		}
	}
	return keys
}

// Balanced reports whether every node satisfies the AVL condition.
func (t *Tree[K]) Balanced() bool {
	return len(t.Unbalanced()) == 0
}
