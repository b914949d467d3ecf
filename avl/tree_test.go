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
	"errors"
	"math/rand"
	"reflect"
	"slices"
	"testing"
)

func buildTree(mode Mode, keys ...int) *Tree[int] {
	tree := New[int]()
	for _, k := range keys {
		tree.Insert(k, mode)
	}
	return tree
}

func TestInsertRotationCases(t *testing.T) {
	testCases := []struct {
		Name string
		Keys []int
	}{
		{Name: "Right-Right", Keys: []int{10, 20, 30}},
		{Name: "Left-Left", Keys: []int{30, 20, 10}},
		{Name: "Right-Left", Keys: []int{10, 30, 20}},
		{Name: "Left-Right", Keys: []int{30, 10, 20}},
	}

	for _, mode := range []Mode{Eager, KeyGuided} {
		for _, tc := range testCases {
			t.Run(mode.String()+"/"+tc.Name, func(t *testing.T) {
				tree := buildTree(mode, tc.Keys...)
				root := tree.Root()

				if root.Key() != 20 {
					t.Fatalf("root = %d, want 20", root.Key())
				}
				if root.Left() == nil || root.Left().Key() != 10 {
					t.Fatalf("left child of root is not 10")
				}
				if root.Right() == nil || root.Right().Key() != 30 {
					t.Fatalf("right child of root is not 30")
				}
				if got := []int{root.Height(), root.Left().Height(), root.Right().Height()}; !slices.Equal(got, []int{2, 1, 1}) {
					t.Errorf("heights = %v, want [2 1 1]", got)
				}
				if root.BalanceFactor() != 0 {
					t.Errorf("root balance = %d, want 0", root.BalanceFactor())
				}
			})
		}
	}
}

func TestInsertKeepsOrder(t *testing.T) {
	testCases := []struct {
		Name          string
		Keys          []int
		ExpectedOrder []int
	}{
		{
			Name:          "Ascending",
			Keys:          []int{1, 2, 3, 4, 5, 6, 7, 8},
			ExpectedOrder: []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			Name:          "Descending",
			Keys:          []int{8, 7, 6, 5, 4, 3, 2, 1},
			ExpectedOrder: []int{1, 2, 3, 4, 5, 6, 7, 8},
		},
		{
			Name:          "Zig-zag with duplicates",
			Keys:          []int{50, 10, 90, 30, 70, 30, 20, 80, 10},
			ExpectedOrder: []int{10, 20, 30, 50, 70, 80, 90},
		},
		{
			Name:          "Negative keys",
			Keys:          []int{-3, 7, -12, 0, 5},
			ExpectedOrder: []int{-12, -3, 0, 5, 7},
		},
	}

	for _, mode := range []Mode{Eager, Deferred, KeyGuided} {
		for _, tc := range testCases {
			t.Run(mode.String()+"/"+tc.Name, func(t *testing.T) {
				tree := buildTree(mode, tc.Keys...)
				if got := tree.Keys(); !slices.Equal(got, tc.ExpectedOrder) {
					t.Errorf("in-order keys = %v, want %v", got, tc.ExpectedOrder)
				}
				if tree.Len() != len(tc.ExpectedOrder) {
					t.Errorf("Len() = %d, want %d", tree.Len(), len(tc.ExpectedOrder))
				}
			})
		}
	}
}

func TestInsertDuplicateIsNoop(t *testing.T) {
	for _, mode := range []Mode{Eager, Deferred, KeyGuided} {
		tree := buildTree(mode, 5, 3, 8)
		before := tree.Layout()

		tree.Insert(3, mode)
		tree.Insert(5, mode)

		if tree.Len() != 3 {
			t.Errorf("%s: Len() = %d after duplicate inserts, want 3", mode, tree.Len())
		}
		if !reflect.DeepEqual(before, tree.Layout()) {
			t.Errorf("%s: duplicate insert changed the tree shape", mode)
		}
	}
}

func TestEagerInsertStaysBalanced(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for round := 0; round < 20; round++ {
		keys := rng.Perm(300)
		for _, mode := range []Mode{Eager, KeyGuided} {
			tree := New[int]()
			for i, k := range keys {
				tree.Insert(k, mode)
				if i%25 == 0 && !tree.Balanced() {
					t.Fatalf("%s round %d: tree unbalanced after %d inserts", mode, round, i+1)
				}
			}
			if err := tree.Validate(); err != nil {
				t.Fatalf("%s round %d: %v", mode, round, err)
			}
			if !tree.Balanced() {
				t.Fatalf("%s round %d: tree unbalanced: %v", mode, round, tree.Unbalanced())
			}
		}
	}
}

func TestKeyGuidedMatchesEagerOnBalancedTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		keys := rng.Perm(64)
		eager := buildTree(Eager, keys...)
		keyed := buildTree(KeyGuided, keys...)
		if !reflect.DeepEqual(eager.Layout(), keyed.Layout()) {
			t.Fatalf("round %d: eager and key-guided trees differ for %v", round, keys)
		}
	}
}

func TestKeyGuidedOnSkewedTree(t *testing.T) {
	// A deferred chain followed by a key-guided insert must not panic even
	// though the key-selected double rotation has no grandchild to promote.
	tree := buildTree(Deferred, 1, 2, 3, 4)
	tree.Insert(0, KeyGuided)

	if got := tree.Keys(); !slices.Equal(got, []int{0, 1, 2, 3, 4}) {
		t.Errorf("keys = %v", got)
	}
}

func TestDeferredInsertAndRebalance(t *testing.T) {
	tree := buildTree(Deferred, 1, 2, 3, 4, 5, 6, 7)

	if tree.Height() != 7 {
		t.Fatalf("deferred chain height = %d, want 7", tree.Height())
	}
	if tree.Balanced() {
		t.Fatalf("deferred chain reported as balanced")
	}
	if err := tree.Validate(); !errors.Is(err, ErrCorrupt) {
		t.Fatalf("Validate() = %v, want stale balance error", err)
	}
	if tree.Root().BalanceFactor() != 0 {
		t.Errorf("deferred insert refreshed the root's cached balance")
	}

	tree.RebalanceAll()

	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate() after RebalanceAll: %v", err)
	}
	if !tree.Balanced() {
		t.Fatalf("unbalanced after RebalanceAll: %v", tree.Unbalanced())
	}
	if got := tree.Layout().Keys(); !slices.Equal(got, []int{4, 2, 6, 1, 3, 5, 7}) {
		t.Errorf("breadth-first keys = %v, want [4 2 6 1 3 5 7]", got)
	}
	if got := tree.Keys(); !slices.Equal(got, []int{1, 2, 3, 4, 5, 6, 7}) {
		t.Errorf("keys changed: %v", got)
	}
}

func TestRebalanceAllRandomTrees(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for round := 0; round < 100; round++ {
		n := rng.Intn(200)
		keys := rng.Perm(n)
		tree := buildTree(Deferred, keys...)
		want := tree.Keys()

		tree.RebalanceAll()

		if err := tree.Validate(); err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if !tree.Balanced() {
			t.Fatalf("round %d: unbalanced keys %v", round, tree.Unbalanced())
		}
		if got := tree.Keys(); !slices.Equal(got, want) {
			t.Fatalf("round %d: key set changed", round)
		}
	}
}

func TestRebalanceAllIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for round := 0; round < 50; round++ {
		tree := buildTree(Deferred, rng.Perm(40)...)

		tree.RebalanceAll()
		once := tree.Layout()
		tree.RebalanceAll()

		if !reflect.DeepEqual(once, tree.Layout()) {
			t.Fatalf("round %d: second RebalanceAll changed the tree", round)
		}
	}
}

func TestEmptyTree(t *testing.T) {
	tree := New[int]()
	tree.RebalanceAll()
	tree.Recompute()

	if tree.Contains(1) {
		t.Errorf("empty tree contains 1")
	}
	if tree.Len() != 0 || tree.Height() != 0 {
		t.Errorf("Len/Height = %d/%d, want 0/0", tree.Len(), tree.Height())
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() = %v", err)
	}
	if !tree.Balanced() {
		t.Errorf("empty tree is not balanced")
	}
}

func TestRecomputeRefreshesCaches(t *testing.T) {
	tree := buildTree(Deferred, 9, 8, 7, 6)
	tree.Recompute()

	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate() after Recompute: %v", err)
	}
	if tree.Root().BalanceFactor() != 3 {
		t.Errorf("root balance = %d, want 3", tree.Root().BalanceFactor())
	}
	if tree.Balanced() {
		t.Errorf("Recompute must not rotate")
	}
}

func TestContains(t *testing.T) {
	tree := buildTree(Eager, 15, 4, 23, 42, 8, 16)
	for _, k := range []int{4, 8, 15, 16, 23, 42} {
		if !tree.Contains(k) {
			t.Errorf("Contains(%d) = false", k)
		}
	}
	for _, k := range []int{0, 5, 17, 100} {
		if tree.Contains(k) {
			t.Errorf("Contains(%d) = true", k)
		}
	}
}

func TestStringKeys(t *testing.T) {
	tree := New[string]()
	for _, k := range []string{"cherry", "banana", "apple", "date"} {
		tree.Insert(k, Eager)
	}
	if got := tree.Keys(); !slices.Equal(got, []string{"apple", "banana", "cherry", "date"}) {
		t.Errorf("keys = %v", got)
	}
	if tree.Root().Key() != "banana" {
		t.Errorf("root = %q, want banana", tree.Root().Key())
	}
}

func TestParseMode(t *testing.T) {
	testCases := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"eager", Eager, false},
		{"Deferred", Deferred, false},
		{" keyed ", KeyGuided, false},
		{"", Eager, false},
		{"sideways", Eager, true},
	}
	for _, tc := range testCases {
		got, err := ParseMode(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
