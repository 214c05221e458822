package update

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/commands"
	"github.com/sandeepkv93/trackd/internal/model"
)

func (m Model) handlePaletteKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.closePalette()
		m.Status = StatusBar{Text: "command palette closed"}
	case "enter":
		m.Palette.Input = m.commandInput.Value()
		m = m.executePaletteCommand()
	default:
		if msg.Type == tea.KeyRunes {
			m.commandInput.SetValue(m.commandInput.Value() + string(msg.Runes))
			m.Palette.Input = m.commandInput.Value()
			return m
		}
		m.commandInput, _ = m.commandInput.Update(msg)
		m.Palette.Input = m.commandInput.Value()
	}
	return m
}

func (m *Model) closePalette() {
	m.Palette = CommandPaletteState{}
	m.commandInput.SetValue("")
	m.commandInput.Blur()
}

func (m Model) executePaletteCommand() Model {
	raw := strings.TrimSpace(m.Palette.Input)
	m.closePalette()

	cmd, err := commands.Parse(raw)
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		return m
	}

	res, err := commands.Execute(cmd, commands.Handlers{
		Add: func(a commands.AddArgs) (commands.Result, error) {
			m.addTask(a.Name)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Check: func(c commands.CheckArgs) (commands.Result, error) {
			tv, err := m.store.FindTask(m.ctx, c.Task)
			if err != nil {
				return commands.Result{}, err
			}
			day, err := commands.ParseDay(c.Day, model.DayKeyOf(m.store.Now()))
			if err != nil {
				return commands.Result{}, err
			}
			m.toggleDay(tv.Task.ID, day)
			return commands.Result{Message: m.Status.Text}, nil
		},
		Claim: func() (commands.Result, error) {
			m.claim()
			return commands.Result{Message: m.Status.Text}, nil
		},
		Delete: func(d commands.DeleteArgs) (commands.Result, error) {
			tv, err := m.store.FindTask(m.ctx, d.Task)
			if err != nil {
				return commands.Result{}, err
			}
			m.Confirm = ConfirmState{
				Active: true,
				Prompt: fmt.Sprintf("delete %q?", tv.Task.Name),
				TaskID: tv.Task.ID,
			}
			return commands.Result{Message: "confirm delete", NeedsConfirm: true}, nil
		},
		Theme: func(t commands.ThemeArgs) (commands.Result, error) {
			if t.Theme == "" {
				m.cycleTheme()
				return commands.Result{Message: m.Status.Text}, nil
			}
			if err := m.store.SetTheme(m.ctx, t.Theme); err != nil {
				return commands.Result{}, err
			}
			m.Theme = t.Theme
			m.syncBubbleData()
			return commands.Result{Message: "theme: " + t.Theme.Label()}, nil
		},
		Reset: func() (commands.Result, error) {
			m.Confirm = ConfirmState{Active: true, Prompt: "reset all tasks and coins?", Reset: true}
			return commands.Result{Message: "confirm reset", NeedsConfirm: true}, nil
		},
	})
	if err != nil {
		m.Status = StatusBar{Text: err.Error(), IsError: true}
		m.notify("Command Failed", err.Error(), "error")
		return m
	}
	if !m.Status.IsError {
		m.Status = StatusBar{Text: res.Message}
	}
	if !res.NeedsConfirm {
		m.notify("Command", res.Message, levelFromError(m.Status.IsError))
	}
	return m
}
