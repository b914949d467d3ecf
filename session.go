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
	"slices"

	"github.com/cybrota/avlplay/avl"
)

var ErrNoSelection = errors.New("no node selected")

// NodeStatus classifies a node by how far it is out of balance.
type NodeStatus int

const (
	StatusNormal NodeStatus = iota
	StatusUnbalanced
	StatusCritical
)

func classifyBalance(balance int) NodeStatus {
	if balance < 0 {
		balance = -balance
	}
	switch {
	case balance > 2:
		return StatusCritical
	case balance > 1:
		return StatusUnbalanced
	default:
		return StatusNormal
	}
}

// Session is the state of one playground round: the tree, the key source,
// the highlighted node and the automatic-adding loop. The tree itself knows
// nothing about selection or pausing.
type Session struct {
	tree *avl.Tree[int]
	keys *KeyGenerator

	selected     int
	hasSelection bool

	autoBalance bool
	userPaused  bool
	blocked     bool // an unbalanced node stops automatic adding
	added       int
	maxNodes    int

	revision uint64
}

func NewSession(cfg GameConfig, seed int64) (*Session, error) {
	keys, err := NewKeyGenerator(cfg.MinValue, cfg.MaxValue, seed)
	if err != nil {
		return nil, err
	}
	return &Session{
		tree:        avl.New[int](),
		keys:        keys,
		autoBalance: cfg.AutoBalance,
		maxNodes:    cfg.MaxNodes,
	}, nil
}

func (s *Session) Tree() *avl.Tree[int] { return s.tree }

// Revision changes whenever the tree or the selection changes.
func (s *Session) Revision() uint64 { return s.revision }

func (s *Session) AutoBalance() bool { return s.autoBalance }

func (s *Session) insertMode() avl.Mode {
	if s.autoBalance {
		return avl.Eager
	}
	return avl.Deferred
}

func (s *Session) changed() {
	s.revision++
	s.CheckBalance()
}

// Add inserts key and reports whether it was new.
func (s *Session) Add(key int) bool {
	if s.tree.Contains(key) {
		return false
	}
	s.tree.Insert(key, s.insertMode())
	s.keys.Observe(key)
	s.changed()
	return true
}

// AddRandom inserts a fresh key from the configured range.
func (s *Session) AddRandom() (int, error) {
	key, err := s.keys.Next(s.tree)
	if err != nil {
		return 0, err
	}
	s.tree.Insert(key, s.insertMode())
	s.added++
	s.changed()
	return key, nil
}

// Adding reports whether the next Step will insert a node.
func (s *Session) Adding() bool {
	return !s.userPaused && !s.blocked && !s.Done()
}

// Done reports whether the round's node budget is used up.
func (s *Session) Done() bool {
	return s.added >= s.maxNodes
}

// Step is one tick of the automatic-adding loop.
func (s *Session) Step() (int, bool, error) {
	if !s.Adding() {
		return 0, false, nil
	}
	key, err := s.AddRandom()
	if err != nil {
		s.userPaused = true
		return 0, false, err
	}
	return key, true, nil
}

// Balance rebalances the whole tree.
func (s *Session) Balance() {
	s.tree.RebalanceAll()
	s.changed()
}

// RotateSelected rotates the highlighted node. The selection stays on the
// same key, which has moved one level down.
func (s *Session) RotateSelected(dir avl.Direction) error {
	if !s.hasSelection {
		return ErrNoSelection
	}
	if err := s.tree.Rotate(s.selected, dir); err != nil {
		return err
	}
	s.changed()
	return nil
}

func (s *Session) Select(key int) error {
	if !s.tree.Contains(key) {
		return fmt.Errorf("cannot select %d: %w", key, avl.ErrNotFound)
	}
	s.selected, s.hasSelection = key, true
	s.revision++
	return nil
}

func (s *Session) Selected() (int, bool) {
	return s.selected, s.hasSelection
}

func (s *Session) ClearSelection() {
	if s.hasSelection {
		s.hasSelection = false
		s.revision++
	}
}

// SelectNext moves the selection forward in breadth-first order, wrapping
// around at the end. With nothing selected it picks the root.
func (s *Session) SelectNext() {
	s.moveSelection(1)
}

func (s *Session) SelectPrev() {
	s.moveSelection(-1)
}

func (s *Session) moveSelection(step int) {
	order := s.tree.Layout().Keys()
	if len(order) == 0 {
		return
	}
	next := 0
	if s.hasSelection {
		if i := slices.Index(order, s.selected); i >= 0 {
			next = (i + step + len(order)) % len(order)
		}
	}
	s.selected, s.hasSelection = order[next], true
	s.revision++
}

// CheckBalance returns the keys that violate the AVL condition and blocks
// automatic adding while there are any.
func (s *Session) CheckBalance() []int {
	unbalanced := s.tree.Unbalanced()
	s.blocked = len(unbalanced) > 0
	return unbalanced
}

// Statuses maps every out-of-balance key to its severity.
func (s *Session) Statuses() map[int]NodeStatus {
	statuses := make(map[int]NodeStatus)
	for _, p := range s.tree.Layout().Placements {
		if st := classifyBalance(p.BalanceFactor); st != StatusNormal {
			statuses[p.Key] = st
		}
	}
	return statuses
}

func (s *Session) ToggleAutoBalance() bool {
	s.autoBalance = !s.autoBalance
	return s.autoBalance
}

// TogglePause pauses or resumes automatic adding and returns whether it is
// now paused by the user.
func (s *Session) TogglePause() bool {
	s.userPaused = !s.userPaused
	return s.userPaused
}

// Reset starts a new round with an empty tree.
func (s *Session) Reset() {
	s.tree = avl.New[int]()
	s.keys.Reset()
	s.hasSelection = false
	s.added = 0
	s.blocked = false
	s.revision++
}

func (s *Session) Status() string {
	switch {
	case s.blocked:
		n := len(s.tree.Unbalanced())
		return fmt.Sprintf("Unbalanced: %d node(s), press b to balance or rotate by hand", n)
	case s.Done():
		return fmt.Sprintf("All nodes added (%d/%d)", s.added, s.maxNodes)
	case s.userPaused:
		return fmt.Sprintf("Paused (%d/%d)", s.added, s.maxNodes)
	default:
		return fmt.Sprintf("Adding nodes (%d/%d)", s.added, s.maxNodes)
	}
}
