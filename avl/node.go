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

import "cmp"

// Node is a single key of the tree. Children are owned exclusively by
// their parent; there are no parent pointers.
type Node[K cmp.Ordered] struct {
	key     K
	left    *Node[K]
	right   *Node[K]
	height  int
	balance int // cached height(left) - height(right)
}

func newNode[K cmp.Ordered](key K) *Node[K] {
	return &Node[K]{key: key, height: 1}
}

func (n *Node[K]) Key() K             { return n.key }
func (n *Node[K]) Left() *Node[K]     { return n.left }
func (n *Node[K]) Right() *Node[K]    { return n.right }
func (n *Node[K]) Height() int        { return n.height }
func (n *Node[K]) BalanceFactor() int { return n.balance }

func height[K cmp.Ordered](n *Node[K]) int {
	if n == nil {
		return 0
	}
	return n.height
}

// balanceOf derives the balance from the children's cached heights,
// ignoring the node's own cached balance field.
func balanceOf[K cmp.Ordered](n *Node[K]) int {
	if n == nil {
		return 0
	}
	return height(n.left) - height(n.right)
}

func (n *Node[K]) updateHeight() {
	n.height = max(height(n.left), height(n.right)) + 1
}

func (n *Node[K]) update() {
	n.updateHeight()
	n.balance = balanceOf(n)
}

// RotateLeft promotes the right child and returns it as the new subtree root.
//
//	  n              p
//	 / \            / \
//	a   p    ->    n   c
//	   / \        / \
//	  b   c      a   b
//
// It panics if n has no right child.
func (n *Node[K]) RotateLeft() *Node[K] {
	if n.right == nil {
		panic("avl: RotateLeft without right child")
	}

	pivot := n.right
	n.right = pivot.left
	pivot.left = n

	n.update()
	pivot.update()
	return pivot
}

// RotateRight promotes the left child and returns it as the new subtree root.
//
//	    n          p
//	   / \        / \
//	  p   c  ->  a   n
//	 / \            / \
//	a   b          b   c
//
// It panics if n has no left child.
func (n *Node[K]) RotateRight() *Node[K] {
	if n.left == nil {
		panic("avl: RotateRight without left child")
	}

	pivot := n.left
	n.left = pivot.right
	pivot.right = n

	n.update()
	pivot.update()
	return pivot
}
