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
	"slices"
	"testing"
)

func TestPickRandomString(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	if got := pickRandomString(nil, rng); got != "" {
		t.Errorf("pickRandomString(nil) = %q, want empty", got)
	}
	for i := 0; i < 20; i++ {
		if tip := GetRandomTip(rng); !slices.Contains(tips, tip) {
			t.Fatalf("GetRandomTip() = %q, not a known tip", tip)
		}
	}
}
