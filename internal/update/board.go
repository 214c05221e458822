package update

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/views"
)

func (m Model) handleBoardKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "j", "down":
		if m.TaskCursor < len(m.Tasks)-1 {
			m.TaskCursor++
		}
	case "k", "up":
		if m.TaskCursor > 0 {
			m.TaskCursor--
		}
	case "l", "right":
		if m.DayCursor < model.WindowDays-1 {
			m.DayCursor++
		}
	case "h", "left":
		if m.DayCursor > 0 {
			m.DayCursor--
		}
	case " ", "enter", "x":
		m.toggleSelected()
	case "a":
		m.Adding = true
		m.addInput.SetValue("")
		m.addInput.Focus()
		m.Status = StatusBar{Text: "type a task name, enter to add, esc to cancel"}
	case "d":
		task, ok := m.selectedTask()
		if !ok {
			m.Status = StatusBar{Text: "no task selected", IsError: true}
			break
		}
		m.Confirm = ConfirmState{
			Active: true,
			Prompt: fmt.Sprintf("delete %q?", task.Name),
			TaskID: task.ID,
		}
	case "c":
		m.claim()
	}
	return m
}

func (m Model) handleAddKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "esc":
		m.Adding = false
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.Status = StatusBar{Text: "add cancelled"}
	case "enter":
		name := m.addInput.Value()
		m.Adding = false
		m.addInput.SetValue("")
		m.addInput.Blur()
		m.addTask(name)
	default:
		if msg.Type == tea.KeyRunes {
			m.addInput.SetValue(m.addInput.Value() + string(msg.Runes))
			return m
		}
		m.addInput, _ = m.addInput.Update(msg)
	}
	return m
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "y", "Y", "enter":
		pending := m.Confirm
		m.Confirm = ConfirmState{}
		switch {
		case pending.Reset:
			m.resetAll()
		case pending.TaskID != "":
			m.deleteTask(pending.TaskID)
		}
	case "n", "N", "esc":
		m.Confirm = ConfirmState{}
		m.Status = StatusBar{Text: "cancelled"}
	}
	return m
}

func (m Model) selectedTask() (model.Task, bool) {
	if m.TaskCursor < 0 || m.TaskCursor >= len(m.Tasks) {
		return model.Task{}, false
	}
	return m.Tasks[m.TaskCursor].Task, true
}

func (m Model) selectedDay() (model.DayKey, bool) {
	task, ok := m.selectedTask()
	if !ok || m.DayCursor >= len(task.Days) {
		return model.DayKey{}, false
	}
	return task.Days[m.DayCursor].Key, true
}

func (m *Model) toggleSelected() {
	task, ok := m.selectedTask()
	if !ok {
		m.Status = StatusBar{Text: "no task selected", IsError: true}
		return
	}
	day, ok := m.selectedDay()
	if !ok {
		return
	}
	m.toggleDay(task.ID, day)
}

func (m *Model) toggleDay(id string, day model.DayKey) {
	view, err := m.store.ToggleDay(m.ctx, id, day)
	if err != nil {
		m.fail(err)
		return
	}
	state := "cleared"
	if view.Task.DoneOn(day) {
		state = "done"
	}
	m.refresh()
	m.Status = StatusBar{Text: fmt.Sprintf("%s: %s %s", view.Task.Name, day, state)}
}

func (m *Model) addTask(name string) {
	view, added, err := m.store.AddTask(m.ctx, name)
	if err != nil {
		m.fail(err)
		return
	}
	if !added {
		m.Status = StatusBar{Text: "empty name, nothing added"}
		return
	}
	m.refresh()
	m.TaskCursor = len(m.Tasks) - 1
	m.Status = StatusBar{Text: "added task: " + view.Task.Name}
	m.notify("Task", "added "+view.Task.Name, "info")
}

func (m *Model) deleteTask(id string) {
	if _, err := m.store.DeleteTask(m.ctx, id, true); err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	m.Status = StatusBar{Text: "task deleted"}
}

func (m *Model) claim() {
	res, err := m.store.ClaimCoins(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.refresh()
	if res.Claimed == 0 {
		m.Status = StatusBar{Text: "nothing to claim"}
		return
	}
	m.Status = StatusBar{Text: fmt.Sprintf("claimed %d coin(s), wallet %d", res.Claimed, res.Profile.Profile.Wallet)}
	m.notify("Coins", m.Status.Text, "info")
}

func (m *Model) resetAll() {
	if err := m.store.Reset(m.ctx); err != nil {
		m.fail(err)
		return
	}
	m.TaskCursor = 0
	m.DayCursor = 0
	m.refresh()
	m.Status = StatusBar{Text: "progress reset"}
}

func (m Model) renderBoard() string {
	now := m.store.Now()
	start, end := model.WindowStart(now), model.WindowEnd(now)
	data := views.BoardData{
		Range: fmt.Sprintf("%s %d - %s %d",
			model.MonthShort(start.Month), start.Day, model.MonthShort(end.Month), end.Day),
		Adding:    m.Adding,
		AddView:   m.addInput.View(),
		Wallet:    m.Profile.Profile.Wallet,
		Unclaimed: m.Profile.Unclaimed,
	}
	for i, tv := range m.Tasks {
		row := views.BoardRow{
			Name:     tv.Task.Name,
			Streak:   tv.Streak.Label(),
			Broken:   tv.Streak.State == model.StreakBroken,
			Selected: i == m.TaskCursor,
		}
		for j, slot := range tv.Task.Days {
			row.Cells = append(row.Cells, views.BoardCell{
				Label:    slot.Key.Label(),
				Done:     slot.Done,
				Selected: row.Selected && j == m.DayCursor,
			})
		}
		data.Rows = append(data.Rows, row)
	}
	if day, ok := m.selectedDay(); ok {
		data.SelectedDay = fmt.Sprintf("%s (%s)", day, model.WeekdayShort(day.Weekday()))
	}
	return views.RenderBoard(data)
}
