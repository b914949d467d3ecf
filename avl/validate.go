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
	"fmt"
)

// Validate checks key ordering, the node count and that every cached height
// and balance factor matches the structure. Trees that received Deferred
// inserts fail the balance check until RebalanceAll or Recompute runs.
func (t *Tree[K]) Validate() error {
	count := 0
	if _, err := validate(t.root, nil, nil, &count); err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: counted %d nodes, tree reports %d", ErrCorrupt, count, t.size)
	}
	return nil
}

// validate returns the real height of the subtree at n. lo and hi are the
// exclusive key bounds inherited from the ancestors.
func validate[K cmp.Ordered](n *Node[K], lo, hi *K, count *int) (int, error) {
	if n == nil {
		return 0, nil
	}
	*count++

	if lo != nil && n.key <= *lo {
		return 0, fmt.Errorf("%w: key %v not greater than ancestor %v", ErrCorrupt, n.key, *lo)
	}
	if hi != nil && n.key >= *hi {
		return 0, fmt.Errorf("%w: key %v not less than ancestor %v", ErrCorrupt, n.key, *hi)
	}

	hl, err := validate(n.left, lo, &n.key, count)
	if err != nil {
		return 0, err
	}
	hr, err := validate(n.right, &n.key, hi, count)
	if err != nil {
		return 0, err
	}

	h := max(hl, hr) + 1
	if n.height != h {
		return 0, fmt.Errorf("%w: node %v caches height %d, want %d", ErrCorrupt, n.key, n.height, h)
	}
	if n.balance != hl-hr {
		return 0, fmt.Errorf("%w: node %v caches balance %d, want %d", ErrCorrupt, n.key, n.balance, hl-hr)
	}
	return h, nil
}
