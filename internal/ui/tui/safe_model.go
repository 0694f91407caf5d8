package tui

import (
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
)

const panicMessage = "Unexpected error (see logs)"

// safeModel keeps a panic in the model from taking the terminal down with it.
type safeModel struct {
	m   model
	log *slog.Logger
}

func wrapSafe(m model, log *slog.Logger) safeModel {
	if log == nil {
		log = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	return safeModel{m: m, log: log.With("component", "tui")}
}

func (s safeModel) Init() tea.Cmd {
	return s.m.Init()
}

func (s safeModel) Update(msg tea.Msg) (tm tea.Model, cmd tea.Cmd) {
	defer func() {
		if r := recover(); r != nil {
			s.recovered("tui.update", r,
				"msg", fmt.Sprintf("%T", msg),
				"running", s.m.running,
			)

			// Cancel any calculation still in flight.
			s.m.stop()
			s.m.result = ""
			s.m.toast = panicMessage
			tm = s
			cmd = nil
		}
	}()

	inner, c := s.m.Update(msg)

	if mm, ok := inner.(model); ok {
		s.m = mm
	} else if sm, ok := inner.(safeModel); ok {
		s = sm
	}

	return s, c
}

func (s safeModel) View() (out string) {
	defer func() {
		if r := recover(); r != nil {
			s.recovered("tui.view", r)
			out = panicMessage
		}
	}()
	return s.m.View()
}

func (s safeModel) recovered(where string, r any, attrs ...any) {
	attrs = append([]any{
		"where", where,
		"mode", string(s.m.mode),
		"focus", s.m.focus,
		"panic", fmt.Sprint(r),
		"stack", string(debug.Stack()),
	}, attrs...)
	s.log.Error("panic.recovered", attrs...)
}

var _ tea.Model = (*safeModel)(nil)
