package update

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/bubbles/table"
	"go.uber.org/zap"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/views"
)

const overviewIntro = `## Build the streak, one day at a time

Check a task off on the **Tasks** tab to earn a coin. Claim coins with ` + "`c`" + `.
Finish every task on the same day to grow the **mega streak**.`

func (m Model) Init() tea.Cmd {
	if m.Scheduler != nil {
		return waitForEventCmd(m.Scheduler.C())
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(typed)
	case SwitchViewMsg:
		if !isKnownView(typed.View) {
			return m, nil
		}
		return m.switchView(typed.View)
	case SetStatusMsg:
		m.Status = StatusBar{Text: typed.Text, IsError: typed.IsError}
		m.notify("Status", typed.Text, levelFromError(typed.IsError))
		return m, nil
	case ClearStatusMsg:
		m.Status = StatusBar{}
		return m, nil
	case AppErrorMsg:
		m.LastError = typed.Err
		if typed.Err != nil {
			m.Status = StatusBar{Text: typed.Err.Error(), IsError: true}
			m.notify("Error", typed.Err.Error(), "error")
		}
		return m, nil
	case PulseTickMsg:
		return m.onPulseTick(typed)
	case SchedulerEventMsg:
		m.onSchedulerEvent(typed.Event)
		if m.Scheduler != nil {
			return m, waitForEventCmd(m.Scheduler.C())
		}
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keyStr := msg.String()
	if keyStr == "ctrl+c" {
		m.Quitting = true
		return m, tea.Quit
	}
	if m.Confirm.Active {
		return m.handleConfirmKey(msg), nil
	}
	if m.Palette.Active {
		if keyStr == m.Keys.Help {
			m.HelpVisible = !m.HelpVisible
			return m, nil
		}
		return m.handlePaletteKey(msg), nil
	}
	if m.Adding {
		return m.handleAddKey(msg), nil
	}

	switch keyStr {
	case "/":
		m.Palette.Active = true
		m.Palette.Input = ""
		m.commandInput.SetValue("")
		m.commandInput.Focus()
		m.Status = StatusBar{Text: "command palette active"}
		return m, nil
	case m.Keys.Overview:
		return m.switchView(ViewOverview)
	case m.Keys.Tasks:
		return m.switchView(ViewTasks)
	case m.Keys.Insights:
		return m.switchView(ViewInsights)
	case "tab":
		return m.switchView(nextView(m.CurrentView))
	case m.Keys.Theme:
		m.cycleTheme()
		return m, nil
	case m.Keys.Help:
		m.HelpVisible = !m.HelpVisible
		if m.HelpVisible {
			m.Status = StatusBar{Text: "help shown"}
		} else {
			m.Status = StatusBar{Text: "help hidden"}
		}
		return m, nil
	case m.Keys.Quit:
		m.Quitting = true
		return m, tea.Quit
	}

	switch m.CurrentView {
	case ViewTasks:
		return m.handleBoardKey(msg), nil
	case ViewOverview:
		var cmd tea.Cmd
		m.overviewPort, cmd = m.overviewPort.Update(msg)
		return m, cmd
	}
	return m, nil
}

// switchView moves to v. Leaving Insights stops the pulse; entering it
// starts a fresh one.
func (m Model) switchView(v View) (Model, tea.Cmd) {
	if m.CurrentView == v {
		return m, nil
	}
	if m.CurrentView == ViewInsights {
		m.stopPulse()
	}
	m.CurrentView = v
	if v == ViewInsights {
		m.refresh()
		return m, m.startPulse()
	}
	return m, nil
}

func (m *Model) cycleTheme() {
	theme, err := m.store.CycleTheme(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Theme = theme
	m.Status = StatusBar{Text: "theme: " + theme.Label()}
	m.syncBubbleData()
}

// refresh reloads every derived figure from the store and replans the
// scheduler. Errors land in the status bar.
func (m *Model) refresh() {
	tasks, err := m.store.ListTasks(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	profile, err := m.store.GetProfile(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	summary, err := m.store.Overview(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	snap, err := m.store.GetAnalyticsSnapshot(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.Tasks = tasks
	m.Profile = profile
	m.Summary = summary
	m.Snapshot = snap
	m.Theme = summary.Theme
	m.clampCursors()
	m.syncBubbleData()
	m.replan()
}

func (m *Model) clampCursors() {
	if m.TaskCursor >= len(m.Tasks) {
		m.TaskCursor = len(m.Tasks) - 1
	}
	if m.TaskCursor < 0 {
		m.TaskCursor = 0
	}
	if m.DayCursor >= model.WindowDays {
		m.DayCursor = model.WindowDays - 1
	}
	if m.DayCursor < 0 {
		m.DayCursor = 0
	}
}

func (m *Model) syncBubbleData() {
	rows := make([]table.Row, 0, len(m.Snapshot.TopTasks))
	for _, tr := range m.Snapshot.TopTasks {
		rows = append(rows, table.Row{tr.Name, fmt.Sprintf("%d", tr.Done), fmt.Sprintf("%d%%", tr.Rate), string(tr.State)})
	}
	m.topTable.SetRows(rows)
	m.overviewPort.SetContent(m.renderOverviewBody())
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.notify("Error", err.Error(), "error")
	m.log.Warn("tui operation failed", zap.Error(err))
}

func (m *Model) notify(title, body, level string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	m.Notifications = append(m.Notifications, Notification{
		Title: title,
		Body:  body,
		Level: level,
		At:    m.store.Now(),
	})
	if len(m.Notifications) > maxNotices {
		m.Notifications = m.Notifications[len(m.Notifications)-maxNotices:]
	}
}

func (m Model) View() string {
	status := ""
	if m.Status.Text != "" {
		if m.Status.IsError {
			status = fmt.Sprintf("status: error: %s", m.Status.Text)
		} else {
			status = fmt.Sprintf("status: %s", m.Status.Text)
		}
	}

	body := ""
	switch m.CurrentView {
	case ViewOverview:
		body = m.overviewPort.View()
	case ViewTasks:
		body = m.renderBoard()
	case ViewInsights:
		body = m.renderInsights()
	}

	side := strings.TrimSpace(strings.Join([]string{
		views.RenderConfirm(m.Confirm.Prompt),
		m.renderCommandPalette(),
		m.renderHelpIfVisible(),
	}, "\n"))

	notice := ""
	if m.LastEvent != nil {
		notice = fmt.Sprintf("last-event: %s @ %s", m.LastEvent.Kind, m.LastEvent.TriggerAt.Format("15:04:05"))
	}
	if n := len(m.Notifications); n > 0 {
		last := m.Notifications[n-1]
		notice = strings.TrimSpace(notice + "\n" + views.RenderNotification(last.Level, last.Body))
	}

	tabs := make([]string, len(tabOrder))
	active := 0
	for i, v := range tabOrder {
		tabs[i] = fmt.Sprintf("%d %s", i+1, v)
		if v == m.CurrentView {
			active = i
		}
	}

	return views.RenderApp(views.AppData{
		Theme:        string(m.Theme),
		Header:       fmt.Sprintf("trackd | view: %s | theme: %s | coins: %d", m.CurrentView, m.Theme.Label(), m.Profile.Profile.Wallet),
		Tabs:         tabs,
		ActiveTab:    active,
		Body:         body,
		SidePane:     side,
		StatusLine:   status,
		StatusError:  m.Status.IsError,
		Notification: notice,
		Footer: fmt.Sprintf("keys: %s overview | %s tasks | %s insights | %s theme | / cmd | %s help | %s quit",
			m.Keys.Overview, m.Keys.Tasks, m.Keys.Insights, m.Keys.Theme, m.Keys.Help, m.Keys.Quit),
	})
}

func (m Model) renderOverviewBody() string {
	s := m.Summary
	return views.RenderOverview(views.OverviewData{
		Theme:        string(m.Theme),
		Intro:        overviewIntro,
		Today:        fmt.Sprintf("%s (%s)", s.Today, model.WeekdayShort(s.Today.Weekday())),
		TotalTasks:   s.TotalTasks,
		DoneToday:    s.DoneToday,
		TotalDone:    s.TotalDone,
		Wallet:       s.Wallet,
		Unclaimed:    s.Unclaimed,
		Active:       s.Active,
		Broken:       s.Broken,
		MegaStreak:   s.MegaStreak,
		DayOfYear:    s.DayOfYear,
		DaysInYear:   s.DaysInYear,
		YearProgress: m.yearBar.ViewAs(s.YearProgress),
	})
}

func (m Model) renderCommandPalette() string {
	return views.RenderCommandPalette(m.Palette.Active, m.commandInput.Value())
}

func nextView(v View) View {
	for i, candidate := range tabOrder {
		if candidate == v {
			return tabOrder[(i+1)%len(tabOrder)]
		}
	}
	return ViewOverview
}

func isKnownView(v View) bool {
	switch v {
	case ViewOverview, ViewTasks, ViewInsights:
		return true
	default:
		return false
	}
}

func levelFromError(isErr bool) string {
	if isErr {
		return "error"
	}
	return "info"
}

func pulseTickCmd(gen int, every time.Duration) tea.Cmd {
	return tea.Tick(every, func(time.Time) tea.Msg { return PulseTickMsg{Gen: gen} })
}
