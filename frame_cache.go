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
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

const (
	// Frames of old revisions are never asked for again, so they can go quickly.
	frameCacheExpiration = 2 * time.Minute
	frameCacheCleanup    = 30 * time.Second
)

// NewFrameCache creates a cache for rendered tree frames.
func NewFrameCache() *cache.Cache {
	return cache.New(frameCacheExpiration, frameCacheCleanup)
}

func frameKey(revision uint64, opts RenderOptions) string {
	return fmt.Sprintf("%d|%d|%t|%t|%t|%d",
		revision, opts.Width, opts.NegateBalance, opts.ShowHeights, opts.HasSelection, opts.Selected)
}

func CacheFrame(c *cache.Cache, key string, frame string) {
	c.Set(key, frame, frameCacheExpiration)
}

func GetFrame(c *cache.Cache, key string) (string, bool) {
	val, ok := c.Get(key)
	if !ok {
		return "", false
	}
	return val.(string), true
}

// RenderSession returns the frame for the session's current revision,
// rendering it only on a cache miss.
func RenderSession(c *cache.Cache, r *TreeRenderer, s *Session, opts RenderOptions) string {
	opts.Selected, opts.HasSelection = s.Selected()
	key := frameKey(s.Revision(), opts)
	if frame, ok := GetFrame(c, key); ok {
		return frame
	}

	frame := r.Render(s.Tree(), opts)
	CacheFrame(c, key, frame)
	return frame
}
