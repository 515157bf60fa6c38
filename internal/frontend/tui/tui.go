// Package tui is the single-player terminal client: a scrolling game log,
// a status panel and a command line with history recall.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
	"go.uber.org/zap"

	"github.com/cory-johannsen/adventure/internal/game/action"
	"github.com/cory-johannsen/adventure/internal/game/output"
	"github.com/cory-johannsen/adventure/internal/game/session"
)

const (
	// logShare is the fraction of the width given to the game log.
	logShare = 0.7
	// chrome is the rows taken by the input line and its padding.
	chrome = 3
)

var (
	entryStyles = map[output.Type]lipgloss.Style{
		output.Flavor:     lipgloss.NewStyle(),
		output.Command:    lipgloss.NewStyle().Foreground(lipgloss.Color("39")),
		output.Error:      lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		output.Prompt:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
		output.Notes:      lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		output.Underlined: lipgloss.NewStyle().Bold(true).Underline(true),
	}

	statusStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, false, true).
			BorderForeground(lipgloss.Color("#3C3C3C")).
			PaddingLeft(2).
			Foreground(lipgloss.Color("#AAAAAA"))

	headingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500")).
			Bold(true).
			Underline(true)
)

// Model is the bubbletea model for one local session.
type Model struct {
	ctx      context.Context
	sess     *session.Session
	buf      *output.Buffer
	logger   *zap.Logger
	lines    []output.Entry
	seen     int
	input    textinput.Model
	viewport viewport.Model
	width    int
	height   int
	ready    bool
	busy     bool
}

type submittedMsg struct {
	result action.Result
}

// New starts a session for owner on game and returns the model showing it.
// The session ends the program on a confirmed quit.
//
// Precondition: game and logger must be non-nil.
// Postcondition: The session has been started and its opening text buffered.
func New(ctx context.Context, game *session.Game, owner string, logger *zap.Logger, opts ...session.Option) Model {
	buf := output.NewBuffer()
	sess := session.New(game, owner, buf, logger, append(opts, session.WithEndOnQuit())...)
	sess.Start(ctx)

	ti := textinput.New()
	ti.Placeholder = "What do you do?"
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()

	return Model{ctx: ctx, sess: sess, buf: buf, logger: logger, input: ti}
}

// Session returns the session the model drives.
func (m Model) Session() *session.Session { return m.sess }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			line := m.input.Value()
			m.input.Reset()
			if strings.TrimSpace(line) == "" || m.busy {
				return m, nil
			}
			m.busy = true
			return m, m.submit(line)
		case tea.KeyUp, tea.KeyDown:
			if recalled, moved := m.sess.Recall(msg.Type == tea.KeyUp); moved {
				m.input.SetValue(recalled)
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		logWidth := int(float64(msg.Width) * logShare)
		if !m.ready {
			m.viewport = viewport.New(logWidth, max(msg.Height-chrome, 1))
			m.ready = true
		} else {
			m.viewport.Width = logWidth
			m.viewport.Height = max(msg.Height-chrome, 1)
		}
		m.input.Width = max(logWidth-4, 10)
		m.refresh()
		return m, nil

	case submittedMsg:
		m.busy = false
		m.refresh()
		if msg.result.Effect == action.EffectQuit {
			m.logger.Info("player quit", zap.String("owner", m.sess.Owner))
			return m, tea.Quit
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit runs the command off the UI goroutine; hint providers may block.
func (m Model) submit(line string) tea.Cmd {
	return func() tea.Msg {
		return submittedMsg{result: m.sess.Submit(m.ctx, line)}
	}
}

// refresh pulls new entries from the buffer and redraws the log.
func (m *Model) refresh() {
	fresh := m.buf.Since(m.seen)
	m.seen += len(fresh)
	m.lines = append(m.lines, fresh...)
	if !m.ready {
		return
	}
	m.viewport.SetContent(renderLog(m.lines, m.viewport.Width))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Loading...\n"
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.viewport.View(), m.renderStatus())
	return lipgloss.JoinVertical(lipgloss.Left, body, "", m.input.View())
}

func (m Model) renderStatus() string {
	st := m.sess.Status()
	var b strings.Builder
	b.WriteString(headingStyle.Render(strings.ToUpper(st.Title)) + "\n\n")
	b.WriteString(headingStyle.Render("LOCATION") + "\n" + st.RoomName + "\n")
	if len(st.Exits) > 0 {
		b.WriteString("Exits: " + strings.Join(st.Exits, ", ") + "\n")
	}
	b.WriteString("\n")
	if st.Total > 0 {
		b.WriteString(headingStyle.Render("FOUND") + "\n")
		fmt.Fprintf(&b, "%d of %d\n\n", st.Found, st.Total)
	}
	b.WriteString(headingStyle.Render("INVENTORY") + "\n")
	if len(st.Inventory) == 0 {
		b.WriteString("(empty)\n")
	}
	for _, item := range st.Inventory {
		b.WriteString("- " + item + "\n")
	}
	b.WriteString("\n" + headingStyle.Render("COMMANDS") + "\n")
	b.WriteString(strings.Join(m.sess.Commands(), " ") + "\n")

	width := max(m.width-m.viewport.Width-4, 10)
	return statusStyle.Width(width).Height(m.viewport.Height).Render(b.String())
}

// renderLog styles and wraps every entry to width columns.
func renderLog(entries []output.Entry, width int) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteByte('\n')
		}
		text := e.Text
		if width > 0 {
			text = wordwrap.String(text, width)
		}
		style := entryStyles[e.Type]
		for j, line := range strings.Split(text, "\n") {
			if j > 0 {
				b.WriteByte('\n')
			}
			// Styled one line at a time so lipgloss does not pad to a block.
			if line != "" {
				line = style.Render(line)
			}
			b.WriteString(line)
		}
	}
	return b.String()
}

// Run drives the model until the player quits.
func Run(m Model) error {
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
