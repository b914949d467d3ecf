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
	"fmt"
	"strings"
)

// Direction of a manual rotation.
type Direction int

const (
	Left Direction = iota
	Right
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Right:
		return "right"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "left", "l":
		return Left, nil
	case "right", "r":
		return Right, nil
	}
	return Left, fmt.Errorf("unknown rotation direction %q", s)
}

// Rotate performs a single rotation at the node holding key and links the
// result back into the tree. Heights and balance factors of the whole tree
// are recomputed afterwards, but no rebalancing happens: the result may
// violate the AVL condition.
//
// The tree is left untouched when Rotate returns an error.
func (t *Tree[K]) Rotate(key K, dir Direction) error {
	node := t.Find(key)
	if node == nil {
		return fmt.Errorf("%w: %v", ErrNotFound, key)
	}

	switch dir {
	case Left:
		if node.right == nil {
			return fmt.Errorf("%w: %v has no right child to rotate left", ErrInvalidRotation, key)
		}
	case Right:
		if node.left == nil {
			return fmt.Errorf("%w: %v has no left child to rotate right", ErrInvalidRotation, key)
		}
	default:
		return fmt.Errorf("%w: %v", ErrInvalidRotation, dir)
	}

	var sub *Node[K]
	if dir == Left {
		sub = node.RotateLeft()
	} else {
		sub = node.RotateRight()
	}

	if node == t.root {
		t.root = sub
	} else {
		// The parent's link still points at node, so a descent by key finds it.
		parent := t.parentOf(key)
		if parent.left == node {
			parent.left = sub
		} else {
			parent.right = sub
		}
	}

	t.Recompute()
	return nil
}

// parentOf descends from the root and stops one level above key.
// It costs O(depth) since nodes carry no parent pointers.
func (t *Tree[K]) parentOf(key K) *Node[K] {
	cur := t.root
	for cur != nil {
		if (cur.left != nil && cur.left.key == key) || (cur.right != nil && cur.right.key == key) {
			return cur
		}
		if key < cur.key {
			cur = cur.left
		} else {
			cur = cur.right
		}
	}
	return nil
}
