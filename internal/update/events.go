package update

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/scheduler"
)

func waitForEventCmd(ch <-chan scheduler.Event) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return SchedulerEventMsg{Event: ev}
	}
}

// replan swaps the scheduler queue for the events implied by the current
// tasks and profile.
func (m *Model) replan() {
	if m.Scheduler == nil {
		return
	}
	tasks := make([]model.Task, 0, len(m.Tasks))
	for _, tv := range m.Tasks {
		tasks = append(tasks, tv.Task)
	}
	plan := scheduler.Plan(tasks, m.Profile.Profile, m.store.Now())
	if err := m.Scheduler.Replace(plan); err != nil {
		if !errors.Is(err, scheduler.ErrEngineStopped) {
			m.log.Warn("scheduler replan failed", zap.Error(err))
		}
		return
	}
	m.log.Debug("scheduler replanned",
		zap.Int("pending", m.Scheduler.Pending()),
		zap.Uint64("dropped", m.Scheduler.Dropped()),
	)
}

func (m *Model) onSchedulerEvent(ev scheduler.Event) {
	m.LastEvent = &ev
	name := ev.TaskID
	for _, tv := range m.Tasks {
		if tv.Task.ID == ev.TaskID {
			name = tv.Task.Name
			break
		}
	}
	m.Status = StatusBar{}
	m.refresh()
	if m.Status.IsError {
		return
	}

	text := ""
	switch ev.Kind {
	case scheduler.EventRollover:
		text = fmt.Sprintf("new day: %s", m.Summary.Today)
	case scheduler.EventStreakExpiry:
		text = fmt.Sprintf("streak broken: %s", name)
	case scheduler.EventMegaExpiry:
		text = "mega streak lapsed"
	default:
		text = fmt.Sprintf("event: %s", ev.ID)
	}
	m.Status = StatusBar{Text: text}
	m.notify("Schedule", text, "info")
	m.log.Info("scheduler event", zap.String("kind", string(ev.Kind)), zap.String("task_id", ev.TaskID))
}
