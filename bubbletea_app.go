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
	"io"
	"log"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/cybrota/avlplay/avl"
	"github.com/patrickmn/go-cache"
)

type tickMsg time.Time

type copiedMsg struct {
	err error
}

type keyMap struct {
	Add         key.Binding
	Input       key.Binding
	Next        key.Binding
	Prev        key.Binding
	RotateLeft  key.Binding
	RotateRight key.Binding
	Balance     key.Binding
	AutoBalance key.Binding
	Pause       key.Binding
	Reset       key.Binding
	Copy        key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Add:         key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "add random")),
		Input:       key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "insert key")),
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "select")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "select prev")),
		RotateLeft:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "rotate left")),
		RotateRight: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "rotate right")),
		Balance:     key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "balance")),
		AutoBalance: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "auto-balance")),
		Pause:       key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "pause")),
		Reset:       key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "new round")),
		Copy:        key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		Help:        key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:        key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Input, k.Next, k.RotateLeft, k.RotateRight, k.Balance, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Add, k.Input, k.Reset},
		{k.Next, k.Prev, k.RotateLeft, k.RotateRight},
		{k.Balance, k.AutoBalance, k.Pause},
		{k.Copy, k.Help, k.Quit},
	}
}

// Styles holds all the styling for the application
type Styles struct {
	BorderFocused  lipgloss.Style
	BorderBlurred  lipgloss.Style
	Title          lipgloss.Style
	InputPrompt    lipgloss.Style
	Status         lipgloss.Style
	Blocked        lipgloss.Style
	SuccessMessage lipgloss.Style
	ErrorMessage   lipgloss.Style
}

func NewStyles(scheme *ColorScheme) *Styles {
	return &Styles{
		BorderFocused: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.BorderFocus),
		BorderBlurred: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(scheme.Border),
		Title: lipgloss.NewStyle().
			Foreground(scheme.Primary).
			Padding(0, 1).
			Bold(true),
		InputPrompt: lipgloss.NewStyle().
			Foreground(scheme.Accent).
			Bold(true),
		Status: lipgloss.NewStyle().
			Foreground(scheme.TextMuted).
			Padding(0, 1),
		Blocked: lipgloss.NewStyle().
			Foreground(scheme.Warning).
			Padding(0, 1).
			Bold(true),
		SuccessMessage: lipgloss.NewStyle().
			Foreground(scheme.Success).
			Padding(0, 1),
		ErrorMessage: lipgloss.NewStyle().
			Foreground(scheme.Error).
			Padding(0, 1).
			Bold(true),
	}
}

// Model represents the Bubble Tea application state
type Model struct {
	session  *Session
	config   *Config
	frames   *cache.Cache
	renderer *TreeRenderer

	input    textinput.Model
	treeView viewport.Model
	helpView viewport.Model
	help     help.Model
	keys     keyMap
	styles   *Styles

	inputActive bool
	showHelp    bool
	message     string
	messageErr  bool
	tip         string
	rng         *rand.Rand

	ready  bool
	width  int
	height int
}

func InitialModel(session *Session, config *Config) Model {
	scheme := GetColorScheme()

	ti := textinput.New()
	ti.Placeholder = "key to insert"
	ti.Prompt = "> "
	ti.CharLimit = 12
	ti.Width = 20
	ti.Validate = func(s string) error {
		if s == "" || s == "-" {
			return nil
		}
		_, err := strconv.Atoi(s)
		return err
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	return Model{
		tip:      GetRandomTip(rng),
		rng:      rng,
		session:  session,
		config:   config,
		frames:   NewFrameCache(),
		renderer: NewTreeRenderer(scheme),
		input:    ti,
		treeView: viewport.New(0, 0),
		helpView: viewport.New(0, 0),
		help:     help.New(),
		keys:     newKeyMap(),
		styles:   NewStyles(scheme),
	}
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.config.Game.AddInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init is called when the program starts
func (m Model) Init() tea.Cmd {
	return m.tick()
}

// Update handles all the I/O
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateLayout()
		m.ready = true
		return m, nil

	case tickMsg:
		if _, _, err := m.session.Step(); err != nil {
			log.Printf("automatic adding stopped: %v", err)
			m.setError(err)
		}
		m.refreshTree()
		return m, m.tick()

	case copiedMsg:
		if msg.err != nil {
			m.setError(fmt.Errorf("copy failed: %w", msg.err))
		} else {
			m.setMessage("Tree copied to clipboard")
		}
		return m, nil

	case tea.KeyMsg:
		if m.inputActive {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.inputActive = false
		m.input.Blur()
		m.input.SetValue("")
		return m, nil
	case "enter":
		text := strings.TrimSpace(m.input.Value())
		m.input.SetValue("")
		if text == "" {
			return m, nil
		}
		value, err := strconv.Atoi(text)
		if err != nil {
			m.setError(fmt.Errorf("%q is not an integer", text))
			return m, nil
		}
		if m.session.Add(value) {
			m.setMessage(fmt.Sprintf("Inserted %d", value))
		} else {
			m.setError(fmt.Errorf("%d is already in the tree", value))
		}
		m.refreshTree()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Help), msg.String() == "esc":
			m.showHelp = false
			return m, nil
		case msg.String() == "q", msg.String() == "ctrl+c":
			return m, tea.Quit
		}
		var cmd tea.Cmd
		m.helpView, cmd = m.helpView.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
		m.helpView.SetContent(renderKeysHelp(m.helpView.Width))
		m.helpView.GotoTop()
		return m, nil
	case key.Matches(msg, m.keys.Add):
		if value, err := m.session.AddRandom(); err != nil {
			m.setError(err)
		} else {
			m.setMessage(fmt.Sprintf("Inserted %d", value))
		}
	case key.Matches(msg, m.keys.Input):
		m.inputActive = true
		cmd := m.input.Focus()
		return m, cmd
	case key.Matches(msg, m.keys.Next):
		m.session.SelectNext()
	case key.Matches(msg, m.keys.Prev):
		m.session.SelectPrev()
	case key.Matches(msg, m.keys.RotateLeft):
		m.rotate(avl.Left)
	case key.Matches(msg, m.keys.RotateRight):
		m.rotate(avl.Right)
	case key.Matches(msg, m.keys.Balance):
		m.session.Balance()
		m.setMessage("Tree rebalanced")
	case key.Matches(msg, m.keys.AutoBalance):
		if m.session.ToggleAutoBalance() {
			m.setMessage("Auto-balance on")
		} else {
			m.setMessage("Auto-balance off")
		}
	case key.Matches(msg, m.keys.Pause):
		m.session.TogglePause()
		m.message = ""
	case key.Matches(msg, m.keys.Reset):
		m.session.Reset()
		m.tip = GetRandomTip(m.rng)
		m.setMessage("New round")
	case key.Matches(msg, m.keys.Copy):
		frame := RenderPlain(m.session.Tree(), m.renderOptions())
		return m, func() tea.Msg {
			return copiedMsg{err: clipboard.WriteAll(frame)}
		}
	default:
		var cmd tea.Cmd
		m.treeView, cmd = m.treeView.Update(msg)
		return m, cmd
	}

	m.refreshTree()
	return m, nil
}

func (m *Model) rotate(dir avl.Direction) {
	selected, _ := m.session.Selected()
	if err := m.session.RotateSelected(dir); err != nil {
		m.setError(err)
		return
	}
	m.setMessage(fmt.Sprintf("Rotated %d %s", selected, dir))
}

func (m *Model) setMessage(text string) {
	m.message, m.messageErr = text, false
}

func (m *Model) setError(err error) {
	m.message, m.messageErr = err.Error(), true
}

func (m Model) renderOptions() RenderOptions {
	return RenderOptions{
		Width:         m.treeView.Width,
		NegateBalance: m.config.Display.NegateBalance,
		ShowHeights:   m.config.Display.ShowHeights,
	}
}

func (m *Model) refreshTree() {
	m.treeView.SetContent(RenderSession(m.frames, m.renderer, m.session, m.renderOptions()))
}

// updateLayout sizes the viewports: title, tip, tree box, input box,
// status and footer from top to bottom.
func (m *Model) updateLayout() {
	const chrome = 11
	innerWidth := max(m.width-4, 8)
	innerHeight := max(m.height-chrome, 3)

	m.treeView.Width = innerWidth
	m.treeView.Height = innerHeight
	m.helpView.Width = innerWidth
	m.helpView.Height = innerHeight
	m.input.Width = max(innerWidth-4, 10)
	m.help.Width = m.width
	m.refreshTree()
	if m.showHelp {
		m.helpView.SetContent(renderKeysHelp(innerWidth))
	}
}

func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	if m.width < 20 || m.height < 10 {
		return "Terminal too small. Please resize your terminal."
	}

	mode := "manual"
	if m.session.AutoBalance() {
		mode = "auto-balance"
	}
	title := m.styles.Title.Render(fmt.Sprintf("🌳 AVL Playground (%s)", mode))
	tip := m.styles.Status.Render("💡 " + m.tip)

	var body string
	if m.showHelp {
		body = m.styles.BorderFocused.Width(m.width - 2).Render(m.helpView.View())
	} else {
		body = m.styles.BorderBlurred.Width(m.width - 2).Render(m.treeView.View())
	}

	inputStyle := m.styles.BorderBlurred
	if m.inputActive {
		inputStyle = m.styles.BorderFocused
	}
	inputBox := inputStyle.Width(m.width - 2).Render(m.input.View())

	statusStyle := m.styles.Status
	if len(m.session.Statuses()) > 0 {
		statusStyle = m.styles.Blocked
	}
	status := statusStyle.Render(m.session.Status())

	message := ""
	if m.message != "" {
		if m.messageErr {
			message = m.styles.ErrorMessage.Render(m.message)
		} else {
			message = m.styles.SuccessMessage.Render(m.message)
		}
	}

	footer := lipgloss.NewStyle().Padding(0, 0, 0, 1).Render(m.help.View(m.keys))

	return lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		tip,
		body,
		inputBox,
		status,
		message,
		footer,
	)
}

// runBubbleTeaApp starts the Bubble Tea application
func runBubbleTeaApp(config *Config, seed int64) error {
	InitializeColors()

	if os.Getenv("AVLPLAY_DEBUG") != "" {
		f, err := tea.LogToFile("avlplay-debug.log", "debug")
		if err != nil {
			return err
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	session, err := NewSession(config.Game, seed)
	if err != nil {
		return err
	}
	log.Printf("starting round: %d nodes from [%d, %d], auto-balance %t",
		config.Game.MaxNodes, config.Game.MinValue, config.Game.MaxValue, config.Game.AutoBalance)

	program := tea.NewProgram(
		InitialModel(session, config),
		tea.WithAltScreen(),
	)

	_, err = program.Run()
	return err
}
