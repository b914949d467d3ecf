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
	"errors"
	"math"
	"testing"

	"github.com/cybrota/avlplay/avl"
)

func TestKeyGeneratorInvalidRange(t *testing.T) {
	if _, err := NewKeyGenerator(10, 1, 0); err == nil {
		t.Errorf("NewKeyGenerator(10, 1) succeeded, want error")
	}
}

func TestKeyGeneratorWideRanges(t *testing.T) {
	testCases := []struct {
		Name    string
		Lo, Hi  int
		WantErr bool
	}{
		{Name: "span overflows to zero", Lo: 0, Hi: math.MaxInt, WantErr: true},
		{Name: "span overflows negative", Lo: math.MinInt, Hi: math.MaxInt, WantErr: true},
		{Name: "negative half", Lo: math.MinInt, Hi: 0, WantErr: true},
		{Name: "largest span", Lo: 1, Hi: math.MaxInt},
		{Name: "top of range", Lo: math.MaxInt - 2, Hi: math.MaxInt},
	}

	for _, tc := range testCases {
		t.Run(tc.Name, func(t *testing.T) {
			g, err := NewKeyGenerator(tc.Lo, tc.Hi, 3)
			if tc.WantErr {
				if err == nil {
					t.Fatalf("NewKeyGenerator(%d, %d) succeeded, want error", tc.Lo, tc.Hi)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewKeyGenerator(%d, %d) error = %v", tc.Lo, tc.Hi, err)
			}

			tree := avl.New[int]()
			for i := 0; i < 3; i++ {
				key, err := g.Next(tree)
				if err != nil {
					t.Fatalf("Next() error = %v", err)
				}
				if key < tc.Lo || key > tc.Hi {
					t.Fatalf("Next() = %d, outside [%d, %d]", key, tc.Lo, tc.Hi)
				}
				tree.Insert(key, avl.Eager)
			}
			if tc.Hi-tc.Lo == 2 {
				if _, err := g.Next(tree); !errors.Is(err, ErrKeySpaceExhausted) {
					t.Errorf("Next() on a full range = %v, want ErrKeySpaceExhausted", err)
				}
			}
		})
	}
}

func TestKeyGeneratorFillsRange(t *testing.T) {
	g, err := NewKeyGenerator(1, 20, 99)
	if err != nil {
		t.Fatalf("NewKeyGenerator() error = %v", err)
	}
	tree := avl.New[int]()

	for i := 0; i < 20; i++ {
		key, err := g.Next(tree)
		if err != nil {
			t.Fatalf("Next() after %d keys: %v", i, err)
		}
		if key < 1 || key > 20 {
			t.Fatalf("Next() = %d, outside [1, 20]", key)
		}
		if tree.Contains(key) {
			t.Fatalf("Next() returned %d which is already in the tree", key)
		}
		tree.Insert(key, avl.Eager)
	}

	if _, err := g.Next(tree); !errors.Is(err, ErrKeySpaceExhausted) {
		t.Errorf("Next() on a full range = %v, want ErrKeySpaceExhausted", err)
	}
}

func TestKeyGeneratorRespectsObservedKeys(t *testing.T) {
	g, err := NewKeyGenerator(1, 3, 1)
	if err != nil {
		t.Fatalf("NewKeyGenerator() error = %v", err)
	}
	tree := avl.New[int]()
	for _, k := range []int{1, 3} {
		tree.Insert(k, avl.Deferred)
		g.Observe(k)
	}

	for i := 0; i < 10; i++ {
		key, err := g.Next(tree)
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		if key != 2 {
			t.Fatalf("Next() = %d, want the only free key 2", key)
		}
	}
}

func TestKeyGeneratorReset(t *testing.T) {
	g, err := NewKeyGenerator(5, 5, 1)
	if err != nil {
		t.Fatalf("NewKeyGenerator() error = %v", err)
	}
	tree := avl.New[int]()
	key, err := g.Next(tree)
	if err != nil || key != 5 {
		t.Fatalf("Next() = %d, %v; want 5", key, err)
	}

	g.Reset()
	if g.seen.TestString("5") {
		t.Errorf("Reset() kept observed keys")
	}
	if lo, hi := g.Range(); lo != 5 || hi != 5 {
		t.Errorf("Range() = %d, %d", lo, hi)
	}
}
