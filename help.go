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
	"runtime"

	markdown "github.com/MichaelMure/go-term-markdown"
	"github.com/charmbracelet/glamour"
)

func usageMarkdown() string {
	return fmt.Sprintf(`

 **avlplay %s**

A terminal playground for AVL trees. Watch random keys arrive, spot the nodes
that fall out of balance and fix them with single rotations, or let the tree
balance itself.

Built with Go %s

# 1. Commands
* **avlplay run** opens the interactive playground
* **avlplay exec FILE** or **avlplay exec -e 'insert 3 1 2; print'** runs a tree script
* **avlplay fill N** inserts N random keys and prints tree statistics
* **avlplay check FILE** runs a script and validates the resulting tree
* **avlplay settings** shows the configuration in ~/.avlplay.yaml

# 2. Script commands
* insert [--eager|--deferred|--keyed] KEY...
* rotate KEY left|right
* balance, recompute
* contains KEY, layout, print, check

# 3. Balance factors
The number next to each key is height(left) - height(right). A node whose
factor is outside -1..1 breaks the AVL condition and is highlighted.

# Please be aware
* Copy to clipboard on Linux or Unix requires 'xclip' or 'xsel' to be installed

# License
Licensed under the Apache License, Version 2.0
Copyright © 2025 Naren Yellavula

`, version, runtime.Version())
}

func getHelpMessage() string {
	return string(markdown.Render(usageMarkdown(), 80, 3))
}

const keysMarkdown = `# Keys

| Key | Action |
| --- | --- |
| n | add a random key |
| i | type a key, enter inserts it |
| tab / shift+tab | select next / previous node |
| ← or h | rotate the selected node left |
| → or l | rotate the selected node right |
| b | rebalance the whole tree |
| a | toggle automatic balancing |
| space | pause or resume adding |
| r | start a new round |
| y | copy the tree to the clipboard |
| ? | toggle this help |
| q / esc | quit |

Automatic adding stops while any node is out of balance.
`

// renderKeysHelp renders the in-app help overlay. It falls back to the raw
// markdown when glamour cannot build a renderer.
func renderKeysHelp(width int) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(max(width-4, 20)),
	)
	if err != nil {
		return keysMarkdown
	}
	out, err := r.Render(keysMarkdown)
	if err != nil {
		return keysMarkdown
	}
	return out
}
