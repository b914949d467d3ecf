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
	"fmt"
	"math"
	"math/rand"
	"strconv"

	"github.com/cybrota/avlplay/avl"
	"github.com/willf/bloom"
)

const (
	maxKeyAttempts         = 64 // random draws before scanning the range for free keys
	maxBloomEstimate       = 1 << 16
	bloomFalsePositiveRate = 0.01
)

var ErrKeySpaceExhausted = errors.New("no unused key left in range")

// keySpan returns the number of keys in [lo, hi]. Ranges whose size does
// not fit in an int are rejected.
func keySpan(lo, hi int) (int, error) {
	if lo > hi {
		return 0, fmt.Errorf("invalid key range [%d, %d]", lo, hi)
	}
	if d := hi - lo; d < 0 || d == math.MaxInt {
		return 0, fmt.Errorf("key range [%d, %d] is too wide", lo, hi)
	}
	return hi - lo + 1, nil
}

// KeyGenerator draws keys in [min, max] that are not yet in a tree.
//
// Every key that enters the tree must be reported through Observe (Next
// does this for the keys it returns). A candidate the bloom filter has
// never seen is then known to be absent without descending the tree; any
// other candidate is checked with Contains and redrawn if present.
type KeyGenerator struct {
	min, max int
	span     int
	rng      *rand.Rand
	seen     *bloom.BloomFilter
}

func NewKeyGenerator(lo, hi int, seed int64) (*KeyGenerator, error) {
	span, err := keySpan(lo, hi)
	if err != nil {
		return nil, err
	}
	estimate := uint(min(span, maxBloomEstimate))

	return &KeyGenerator{
		min:  lo,
		max:  hi,
		span: span,
		rng:  rand.New(rand.NewSource(seed)),
		seen: bloom.NewWithEstimates(estimate, bloomFalsePositiveRate),
	}, nil
}

// Observe records a key inserted into the tree.
func (g *KeyGenerator) Observe(key int) {
	g.seen.AddString(strconv.Itoa(key))
}

// Reset forgets every observed key.
func (g *KeyGenerator) Reset() {
	g.seen.ClearAll()
}

func (g *KeyGenerator) Range() (int, int) { return g.min, g.max }

// Size is the number of keys in the range.
func (g *KeyGenerator) Size() int { return g.span }

// Next returns a key from the range that tree does not contain.
func (g *KeyGenerator) Next(tree *avl.Tree[int]) (int, error) {
	for attempt := 0; attempt < maxKeyAttempts; attempt++ {
		key := g.min + g.rng.Intn(g.span)
		if g.seen.TestString(strconv.Itoa(key)) && tree.Contains(key) {
			continue
		}
		g.Observe(key)
		return key, nil
	}

	// The range is nearly full; pick among the keys that are left.
	var free []int
	for i := 0; i < g.span; i++ {
		if key := g.min + i; !tree.Contains(key) {
			free = append(free, key)
		}
	}
	if len(free) == 0 {
		return 0, fmt.Errorf("%w: [%d, %d]", ErrKeySpaceExhausted, g.min, g.max)
	}
	key := free[g.rng.Intn(len(free))]
	g.Observe(key)
	return key, nil
}
