package update

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"

	"github.com/sandeepkv93/trackd/internal/views"
)

// KeyBinding is a key and the action it triggers in the current view.
type KeyBinding struct {
	Key    string
	Action string
}

type trackerKeyMap struct {
	global []key.Binding
	view   []key.Binding
}

func (k trackerKeyMap) ShortHelp() []key.Binding { return k.global }
func (k trackerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.global, k.view}
}

func (m Model) renderHelpIfVisible() string {
	if !m.HelpVisible {
		return ""
	}
	contextual := m.viewBindings()
	lines := make([]string, 0, len(contextual))
	for _, kb := range contextual {
		lines = append(lines, fmt.Sprintf("- %s: %s", kb.Key, kb.Action))
	}
	hm := m.helpModel
	hm.ShowAll = true
	return views.RenderHelpPanel(views.HelpPanelData{
		CurrentView: string(m.CurrentView),
		Bindings:    lines,
		HelpView: hm.View(trackerKeyMap{
			global: toKeyBindings(m.globalBindings()),
			view:   toKeyBindings(contextual),
		}),
	})
}

func (m Model) globalBindings() []KeyBinding {
	return []KeyBinding{
		{Key: m.Keys.Overview, Action: "overview"},
		{Key: m.Keys.Tasks, Action: "tasks"},
		{Key: m.Keys.Insights, Action: "insights"},
		{Key: "tab", Action: "next tab"},
		{Key: m.Keys.Theme, Action: "theme"},
		{Key: "/", Action: "command"},
		{Key: m.Keys.Quit, Action: "quit"},
	}
}

func (m Model) viewBindings() []KeyBinding {
	switch m.CurrentView {
	case ViewTasks:
		return []KeyBinding{
			{Key: "j/k", Action: "move task cursor"},
			{Key: "h/l", Action: "move day cursor"},
			{Key: "space", Action: "toggle selected day"},
			{Key: "a", Action: "add task"},
			{Key: "d", Action: "delete task"},
			{Key: "c", Action: "claim coins"},
		}
	case ViewOverview:
		return []KeyBinding{{Key: "pgup/pgdn", Action: "scroll overview"}}
	case ViewInsights:
		return []KeyBinding{{Key: "-", Action: "pulse updates while this tab is open"}}
	}
	return nil
}

func toKeyBindings(in []KeyBinding) []key.Binding {
	out := make([]key.Binding, 0, len(in))
	for _, kb := range in {
		out = append(out, key.NewBinding(key.WithKeys(kb.Key), key.WithHelp(kb.Key, kb.Action)))
	}
	return out
}
