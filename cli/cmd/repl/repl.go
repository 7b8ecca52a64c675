package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/ledgerscript/lang"
	"github.com/ardnew/ledgerscript/log"
)

const prompt = "➜ "

func helpMessage() string {
	return `
Each line entered is appended to a scratch document, which is compiled
together with the files the REPL was started with. The compiled line is
printed. Lines that fail to compile are not kept.

Commands:

  :list         List definitions and their values
  :show [NAME]  Print the compiled scratch document, or one definition
  :clear        Empty the scratch document
  :help         Print this message
  :quit         Exit REPL

Press Tab / Shift-Tab to complete definition names
Use Up/Down arrows for history navigation
Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

// formatCommand formats the echo line with prompt and input styled.
func formatCommand(input string) string {
	return promptStyle.Render(prompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	input        textinput.Model
	session      *session
	logger       log.Logger
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of current word start
	wordEnd      int           // byte offset of current word end
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
}

// Run starts the REPL over sources, keeping input history in historyPath.
// Sources may be empty.
func Run(
	ctx context.Context,
	sources []lang.Source,
	historyPath string,
	logger log.Logger,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	logger.TraceContext(ctx, "repl start",
		slog.String("history", historyPath),
		slog.Int("source_count", len(sources)),
	)

	// Scratch documents change on every line, so caching them only grows
	// the cache.
	compiler := lang.New(lang.WithLogger(logger), lang.WithCache(false))

	sess, err := newSession(ctx, compiler, sources)
	if err != nil {
		return err
	}

	history := NewHistory(historyPath)
	if err := history.Load(); err != nil {
		logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, sess, history, logger), tea.WithContext(ctx))
	_, err = p.Run()

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	sess *session,
	history *History,
	logger log.Logger,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(prompt)
	ti.Focus()
	ti.CharLimit = 1024
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		input:      ti,
		session:    sess,
		logger:     logger,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(prompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")

	switch {
	case m.historyIdx < m.history.Len():
		hint := fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len())
		b.WriteString(hintStyle.Render(hint))

	case strings.TrimSpace(m.input.Value()) == "":
		b.WriteString(hintStyle.Render(
			"Type a line with @=name[expr] or @< @> markers, or :help",
		))

	case len(m.matches) > 0:
		b.WriteString(renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width))
	}

	b.WriteString("\n")

	return b.String()
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		refreshMatches(&m)

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if m.tabActive && len(m.matches) > 0 {
			// Lock in the current candidate without executing.
			m.tabActive = false
			refreshMatches(&m)

			return m, nil
		}

		return m.executeInput()

	case tea.KeyTab:
		return m.cycle(1), nil

	case tea.KeyShiftTab:
		return m.cycle(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1), nil

	case tea.KeyDown:
		return m.historyMove(1), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			refreshMatches(&m)
		}

		return m, nil
	}

	var cmd tea.Cmd

	m.tabActive = false
	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	refreshMatches(&m)

	return m, cmd
}

// cycle completes the word at the cursor with the next (dir > 0) or
// previous candidate.
func (m model) cycle(dir int) model {
	if len(m.matches) == 0 {
		return m
	}

	// Single candidate: complete and confirm immediately.
	if len(m.matches) == 1 {
		replaceCurrentWord(&m, m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	switch {
	case m.tabActive:
		m.suggIdx = (m.suggIdx + dir + len(m.matches)) % len(m.matches)
	case dir > 0:
		m.suggIdx = 0
	default:
		m.suggIdx = len(m.matches) - 1
	}

	if !m.tabActive {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()
	}

	replaceCurrentWord(&m, m.matches[m.suggIdx].Str)

	return m
}

// historyMove moves through history by delta entries. Moving past the newest
// entry clears the input.
func (m model) historyMove(delta int) model {
	idx := m.historyIdx + delta
	if idx < 0 {
		return m
	}

	m.tabActive = false

	if idx >= m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		refreshMatches(&m)

		return m
	}

	if entry, err := m.history.Entry(idx); err == nil {
		m.historyIdx = idx
		m.input.SetValue(entry)
		m.input.SetCursor(len(entry))
		refreshMatches(&m)
	}

	return m
}

func (m model) executeInput() (model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	if input == "" {
		return m, nil
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input); err != nil {
		m.logger.WarnContext(m.ctxFunc(), "could not save history",
			slog.Any("error", err),
		)
	}

	m.historyIdx = m.history.Len()

	echo := tea.Println(formatCommand(input))

	if cmd, ok := strings.CutPrefix(input, ":"); ok {
		return m.executeCommand(echo, cmd)
	}

	m.logger.TraceContext(m.ctxFunc(), "repl eval", slog.String("input", input))

	out, err := m.session.eval(m.ctxFunc(), input)
	if err != nil {
		return m, tea.Sequence(echo, printError(err))
	}

	return m, tea.Sequence(echo, tea.Println(resultStyle.Render(out)))
}

func (m model) executeCommand(echo tea.Cmd, input string) (model, tea.Cmd) {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return m, echo
	}

	name, args := parts[0], parts[1:]

	m.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", name),
		slog.Any("args", args),
	)

	switch name {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(hintStyle.Render(helpMessage())))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.list()))

	case "s", "show":
		out, err := m.show(args)
		if err != nil {
			return m, tea.Sequence(echo, printError(err))
		}

		return m, tea.Sequence(echo, tea.Println(out))

	case "c", "clear":
		if err := m.session.clear(m.ctxFunc()); err != nil {
			return m, tea.Sequence(echo, printError(err))
		}

		refreshMatches(&m)

		return m, tea.Sequence(echo, tea.ClearScreen)

	default:
		return m, tea.Sequence(echo, printError(
			fmt.Errorf("%w: %s (try :help)", ErrUnknownCommand, name),
		))
	}
}

// list renders every definition with its value.
func (m model) list() string {
	var b strings.Builder

	for _, name := range m.session.names() {
		def, value, _ := m.session.definition(name)
		fmt.Fprintf(&b, "  %s = %s %s\n",
			name,
			resultStyle.Render(lang.FormatValue(value)),
			hintStyle.Render("["+def.Body.String()+"] "+def.Location()),
		)
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// show renders the compiled scratch document, or the definition named by
// args[0].
func (m model) show(args []string) (string, error) {
	if len(args) == 0 {
		return m.session.scratch(), nil
	}

	def, value, ok := m.session.definition(args[0])
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownName, args[0])
	}

	return fmt.Sprintf("%s = %s\n  expression: %s\n  depends on: %s\n  defined at: %s",
		def.Name,
		resultStyle.Render(lang.FormatValue(value)),
		def.Body.String(),
		strings.Join(def.Dependencies(), ", "),
		def.Location(),
	), nil
}

func printError(err error) tea.Cmd {
	return tea.Println(errorStyle.Render("error: " + err.Error()))
}
