package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/aalvaropc/quadra/internal/domain"
	"github.com/aalvaropc/quadra/internal/report"
	"github.com/aalvaropc/quadra/internal/usecase/search"
)

const (
	fieldFunction = iota
	fieldLower
	fieldUpper
	fieldAmount
	fieldCount
)

type model struct {
	theme Theme
	deps  Deps

	mode   domain.Mode
	inputs []textinput.Model
	focus  int
	// stash holds the amount field of the mode that is not shown.
	stash string

	spin     spinner.Model
	running  bool
	cancel   context.CancelFunc
	events   chan tea.Msg
	progress search.Step

	result string
	toast  string

	workspaceFound bool
	workspaceRoot  string
	cwd            string

	width int
}

func Run(deps Deps) error {
	m := newModel(deps)
	p := tea.NewProgram(wrapSafe(m, deps.Logger), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func newModel(deps Deps) model {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 256
		inputs[i] = ti
	}
	inputs[fieldFunction].Prompt = "f(x)  "
	inputs[fieldFunction].Placeholder = "x^2 + sin(x)"
	inputs[fieldLower].Prompt = "a     "
	inputs[fieldLower].Placeholder = "lower bound"
	inputs[fieldUpper].Prompt = "b     "
	inputs[fieldUpper].Placeholder = "upper bound"
	inputs[fieldFunction].Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		theme:  DefaultTheme(),
		deps:   deps,
		mode:   domain.ModeFixed,
		inputs: inputs,
		spin:   sp,
	}
	m.applyMode()
	return m
}

// applyMode relabels the amount field for the current mode.
func (m *model) applyMode() {
	in := &m.inputs[fieldAmount]
	if m.mode == domain.ModeTolerance {
		in.Prompt = "tol   "
		in.Placeholder = "tolerance, e.g. 0.001"
		return
	}
	in.Prompt = "n     "
	in.Placeholder = "subintervals"
}

// input collects the visible fields as raw text.
func (m model) input() domain.CalcInput {
	in := domain.CalcInput{
		Mode:       m.mode,
		Expression: m.inputs[fieldFunction].Value(),
		Lower:      m.inputs[fieldLower].Value(),
		Upper:      m.inputs[fieldUpper].Value(),
	}
	if m.mode == domain.ModeTolerance {
		in.Tolerance = m.inputs[fieldAmount].Value()
	} else {
		in.Subintervals = m.inputs[fieldAmount].Value()
	}
	return in
}

// showReset reports whether the reset action is offered: any input is non-empty.
func showReset(in domain.CalcInput) bool {
	return !in.IsEmpty()
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, cmdRefreshWorkspace(m.deps))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		for i := range m.inputs {
			m.inputs[i].Width = max(msg.Width-16, 10)
		}
		return m, nil

	case workspaceRefreshedMsg:
		m.cwd = msg.cwd
		m.workspaceFound = msg.found
		m.workspaceRoot = msg.root
		return m, nil

	case initWorkspaceDoneMsg:
		if msg.err != nil {
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.toast = "Workspace created at " + msg.root
		return m, cmdRefreshWorkspace(m.deps)

	case progressMsg:
		if !m.running {
			return m, nil
		}
		m.progress = msg.step
		return m, listenCalc(m.events)

	case calcDoneMsg:
		m.stop()
		if msg.err != nil {
			m.result = report.Failure(msg.err)
			m.toast = userMessage(msg.err)
			return m, nil
		}
		m.result = report.Calculation(msg.calc)
		m.toast = ""
		return m, nil

	case spinner.TickMsg:
		if !m.running {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			if m.cancel != nil {
				m.cancel()
			}
			return m, tea.Quit

		case "esc":
			if m.running && m.cancel != nil {
				m.cancel()
				m.toast = "Canceling..."
			}
			return m, nil

		case "ctrl+t":
			if m.running {
				return m, nil
			}
			m.toggleMode()
			return m, nil

		case "ctrl+r":
			if m.running || !showReset(m.input()) {
				return m, nil
			}
			m.reset()
			return m, nil

		case "ctrl+w":
			if m.workspaceFound || m.running || m.cwd == "" {
				return m, nil
			}
			return m, cmdInitWorkspaceHere(m.deps, m.cwd)

		case "tab", "down":
			m.setFocus((m.focus + 1) % fieldCount)
			return m, nil

		case "shift+tab", "up":
			m.setFocus((m.focus + fieldCount - 1) % fieldCount)
			return m, nil

		case "enter":
			if m.running {
				return m, nil
			}
			return m.start()
		}
	}

	if m.running {
		return m, nil
	}
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m *model) setFocus(i int) {
	m.inputs[m.focus].Blur()
	m.focus = i
	m.inputs[m.focus].Focus()
}

func (m *model) toggleMode() {
	cur := m.inputs[fieldAmount].Value()
	m.inputs[fieldAmount].SetValue(m.stash)
	m.stash = cur

	if m.mode == domain.ModeFixed {
		m.mode = domain.ModeTolerance
	} else {
		m.mode = domain.ModeFixed
	}
	m.applyMode()
	m.result = ""
	m.toast = ""
}

func (m *model) reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
	m.stash = ""
	m.result = ""
	m.toast = ""
	m.setFocus(fieldFunction)
}

func (m model) start() (tea.Model, tea.Cmd) {
	if m.deps.Calculator == nil {
		m.toast = "No calculator configured"
		return m, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	ch, listen := startCalcAsync(ctx, m.deps.Calculator, m.input(), m.deps.Logger)

	m.running = true
	m.cancel = cancel
	m.events = ch
	m.progress = search.Step{}
	m.result = ""
	m.toast = ""
	return m, tea.Batch(listen, m.spin.Tick)
}

func (m *model) stop() {
	if m.cancel != nil {
		m.cancel()
	}
	m.running = false
	m.cancel = nil
	m.events = nil
}

func (m model) View() string {
	wrap := lipgloss.NewStyle().Padding(1, 2)
	header := m.theme.Title.Render("quadra") + "\n" +
		m.theme.Subtitle.Render("Midpoint vs trapezoid rule") + "\n"

	var banner string
	if m.workspaceFound {
		banner = m.theme.Help.Render("Workspace: " + clampString(m.workspaceRoot, max(m.width-16, 24)))
	} else {
		banner = m.theme.Help.Render("No workspace (defaults in use) • ctrl+w init here")
	}

	var form strings.Builder
	form.WriteString(m.theme.Mode.Render(modeLabel(m.mode)))
	form.WriteString("\n\n")
	for i := range m.inputs {
		form.WriteString(m.inputs[i].View())
		form.WriteString("\n")
	}

	body := m.theme.Card.Render(strings.TrimRight(form.String(), "\n"))

	if m.running {
		body += "\n" + m.spin.View() + " " + m.theme.Progress.Render(runningLine(m.mode, m.progress))
	}
	if m.result != "" {
		body += "\n" + m.theme.Result(m.result)
	}
	if m.toast != "" {
		body += "\n" + m.theme.Toast.Render(m.toast)
	}

	return wrap.Render(header + "\n" + banner + "\n\n" + body + "\n" + m.theme.Help.Render(helpLine(m)))
}
