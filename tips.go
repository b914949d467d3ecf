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
	"math/rand"
)

var tips = []string{
	"A node with balance +2 whose left child leans left needs one right rotation",
	"A node with balance -2 whose right child leans right needs one left rotation",
	"Left-right case: rotate the left child left, then the node right",
	"Right-left case: rotate the right child right, then the node left",
	"Fix the deepest unbalanced node first; its ancestors often heal with it",
	"A rotation never changes the in-order sequence of keys",
	"Sorted input is the worst case for an unbalanced binary search tree",
	"An AVL tree with n nodes is never taller than about 1.44 log2(n)",
	"Rotating a node moves it one level down and its child one level up",
	"Heights only change along the path from the new leaf to the root",
	"Press b to let the tree balance itself in one pass",
	"Balance factor = height(left) - height(right)",
}

// pickRandomString returns a random string from the provided slice.
// If the slice is empty, it returns an empty string.
func pickRandomString(list []string, rng *rand.Rand) string {
	if len(list) == 0 {
		return ""
	}
	return list[rng.Intn(len(list))]
}

func GetRandomTip(rng *rand.Rand) string {
	return pickRandomString(tips, rng)
}
