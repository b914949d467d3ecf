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
	"reflect"
	"slices"
	"testing"
)

func TestRotateErrors(t *testing.T) {
	testCases := []struct {
		Name    string
		Key     int
		Dir     Direction
		WantErr error
	}{
		{Name: "missing key", Key: 99, Dir: Left, WantErr: ErrNotFound},
		{Name: "leaf rotate left", Key: 10, Dir: Left, WantErr: ErrInvalidRotation},
		{Name: "leaf rotate right", Key: 30, Dir: Right, WantErr: ErrInvalidRotation},
		{Name: "unknown direction", Key: 20, Dir: Direction(9), WantErr: ErrInvalidRotation},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			tree := buildTree(Eager, 10, 20, 30)
			before := tree.Layout()

			err := tree.Rotate(tc.Key, tc.Dir)
			if !errors.Is(err, tc.WantErr) {
				t.Fatalf("Rotate(%d, %s) = %v, want %v", tc.Key, tc.Dir, err, tc.WantErr)
			}
			if !reflect.DeepEqual(before, tree.Layout()) {
				t.Errorf("failed rotation modified the tree")
			}
			if tree.Len() != 3 {
				t.Errorf("Len() = %d, want 3", tree.Len())
			}
		})
	}
}

func TestRotateRootRoundTrip(t *testing.T) {
	tree := buildTree(Eager, 10, 20, 30)
	original := tree.Layout()

	if err := tree.Rotate(20, Right); err != nil {
		t.Fatalf("Rotate(20, right): %v", err)
	}
	if tree.Root().Key() != 10 {
		t.Fatalf("root after right rotation = %d, want 10", tree.Root().Key())
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if tree.Root().BalanceFactor() != -2 {
		t.Errorf("root balance = %d, want -2", tree.Root().BalanceFactor())
	}

	if err := tree.Rotate(10, Left); err != nil {
		t.Fatalf("Rotate(10, left): %v", err)
	}
	if !reflect.DeepEqual(original, tree.Layout()) {
		t.Errorf("right then left rotation did not restore the tree")
	}
}

func TestRotateRelinksParent(t *testing.T) {
	tree := buildTree(Eager, 1, 2, 3, 4, 5, 6, 7)

	if err := tree.Rotate(2, Right); err != nil {
		t.Fatalf("Rotate(2, right): %v", err)
	}

	root := tree.Root()
	if root.Key() != 4 {
		t.Fatalf("root = %d, want 4", root.Key())
	}
	if root.Left().Key() != 1 {
		t.Fatalf("root.Left() = %d, want 1", root.Left().Key())
	}
	if err := tree.Validate(); err != nil {
		t.Fatalf("Validate(): %v", err)
	}
	if tree.Height() != 4 {
		t.Errorf("Height() = %d, want 4", tree.Height())
	}
	if got := tree.Unbalanced(); !slices.Equal(got, []int{1}) {
		t.Errorf("Unbalanced() = %v, want [1]", got)
	}

	tree.RebalanceAll()
	if !tree.Balanced() {
		t.Errorf("RebalanceAll did not repair manual edit")
	}
	if got := tree.Keys(); !slices.Equal(got, []int{1, 2, 3, 4, 5, 6, 7}) {
		t.Errorf("keys = %v", got)
	}
}

func TestRotateRightChildLink(t *testing.T) {
	tree := buildTree(Eager, 1, 2, 3, 4, 5, 6, 7)

	if err := tree.Rotate(6, Left); err != nil {
		t.Fatalf("Rotate(6, left): %v", err)
	}
	if got := tree.Root().Right().Key(); got != 7 {
		t.Errorf("root.Right() = %d, want 7", got)
	}
	if got := tree.Root().Right().Left().Key(); got != 6 {
		t.Errorf("7.Left() = %d, want 6", got)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate(): %v", err)
	}
}

func TestRotateRefreshesDeferredCaches(t *testing.T) {
	tree := buildTree(Deferred, 1, 2, 3, 4)
	if err := tree.Rotate(3, Left); err != nil {
		t.Fatalf("Rotate(3, left): %v", err)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() after rotate: %v", err)
	}
}

func TestRotatePrimitivesPanic(t *testing.T) {
	leaf := newNode(1)
	for name, rotate := range map[string]func() *Node[int]{
		"RotateLeft":  leaf.RotateLeft,
		"RotateRight": leaf.RotateRight,
	} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("%s on a leaf did not panic", name)
				}
			}()
			rotate()
		}()
	}
}

func TestParseDirection(t *testing.T) {
	for in, want := range map[string]Direction{"left": Left, "L": Left, "right": Right, " r": Right} {
		got, err := ParseDirection(in)
		if err != nil || got != want {
			t.Errorf("ParseDirection(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseDirection("up"); err == nil {
		t.Errorf("ParseDirection(\"up\") succeeded")
	}
}
