package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	// WindowDays is the fixed size of every task's rolling board.
	WindowDays      = 30
	MaxNameLength   = 60
	DefaultTaskName = "Untitled Task"
)

var (
	ErrInvalidWindow = errors.New("model: invalid day window")
	ErrNameTooLong   = errors.New("model: task name too long")
)

type DaySlot struct {
	Key       DayKey
	Done      bool
	CheckedAt *time.Time
}

type Task struct {
	ID            string
	Name          string
	CreatedAt     time.Time
	LastCheckedAt *time.Time
	Days          []DaySlot
}

func NewTaskID() string {
	return "task-" + uuid.NewString()
}

// CleanName trims the input and caps it at MaxNameLength runes.
// It reports false when nothing is left.
func CleanName(raw string) (string, bool) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", false
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		name = strings.TrimSpace(string([]rune(name)[:MaxNameLength]))
	}
	return name, true
}

// NewTask builds a task with a fresh window anchored at now. Empty names are
// rejected with ok=false.
func NewTask(name string, now time.Time) (Task, bool) {
	clean, ok := CleanName(name)
	if !ok {
		return Task{}, false
	}
	return Task{
		ID:        NewTaskID(),
		Name:      clean,
		CreatedAt: now,
		Days:      BuildWindow(DayKeyOf(now)),
	}, true
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return errors.New("model: task name is required")
	}
	if utf8.RuneCountInString(t.Name) > MaxNameLength {
		return fmt.Errorf("%w: %d runes", ErrNameTooLong, utf8.RuneCountInString(t.Name))
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	if len(t.Days) != WindowDays {
		return fmt.Errorf("%w: %d slots", ErrInvalidWindow, len(t.Days))
	}
	for i := 1; i < len(t.Days); i++ {
		if t.Days[i-1].Key.AddDays(1) != t.Days[i].Key {
			return fmt.Errorf("%w: gap between %s and %s", ErrInvalidWindow, t.Days[i-1].Key, t.Days[i].Key)
		}
	}
	for _, d := range t.Days {
		if !d.Done && d.CheckedAt != nil {
			return fmt.Errorf("model: slot %s has checked_at but is not done", d.Key)
		}
	}
	return nil
}

// slotIndex finds key by its offset from the first slot, falling back to a
// scan for windows that are not contiguous yet.
func (t Task) slotIndex(key DayKey) int {
	if len(t.Days) == 0 {
		return -1
	}
	if i := t.Days[0].Key.DaysUntil(key); i >= 0 && i < len(t.Days) && t.Days[i].Key == key {
		return i
	}
	for i := range t.Days {
		if t.Days[i].Key == key {
			return i
		}
	}
	return -1
}

func (t Task) Slot(key DayKey) (DaySlot, bool) {
	i := t.slotIndex(key)
	if i < 0 {
		return DaySlot{}, false
	}
	return t.Days[i], true
}

func (t Task) DoneOn(key DayKey) bool {
	slot, ok := t.Slot(key)
	return ok && slot.Done
}

func (t Task) DoneCount() int {
	n := 0
	for _, d := range t.Days {
		if d.Done {
			n++
		}
	}
	return n
}

// SetDone marks or clears the slot for key and refreshes LastCheckedAt.
// It reports false when key is outside the task's window.
func (t *Task) SetDone(key DayKey, done bool, now time.Time) bool {
	i := t.slotIndex(key)
	if i < 0 {
		return false
	}
	t.Days[i].Done = done
	if done {
		at := now
		t.Days[i].CheckedAt = &at
	} else {
		t.Days[i].CheckedAt = nil
	}
	t.RecomputeLastChecked(now.Location())
	return true
}

// RecomputeLastChecked sets LastCheckedAt to the latest check among done
// slots. A done slot without a timestamp counts as midnight of its day.
func (t *Task) RecomputeLastChecked(loc *time.Location) {
	var latest *time.Time
	for _, d := range t.Days {
		if !d.Done {
			continue
		}
		at := d.Key.Time(loc)
		if d.CheckedAt != nil {
			at = *d.CheckedAt
		}
		if latest == nil || at.After(*latest) {
			v := at
			latest = &v
		}
	}
	t.LastCheckedAt = latest
}

// Clone returns a deep copy so callers can't mutate store-owned slots.
func (t Task) Clone() Task {
	out := t
	if t.LastCheckedAt != nil {
		v := *t.LastCheckedAt
		out.LastCheckedAt = &v
	}
	out.Days = make([]DaySlot, len(t.Days))
	for i, d := range t.Days {
		out.Days[i] = d
		if d.CheckedAt != nil {
			v := *d.CheckedAt
			out.Days[i].CheckedAt = &v
		}
	}
	return out
}

func CloneTasks(tasks []Task) []Task {
	out := make([]Task, len(tasks))
	for i := range tasks {
		out[i] = tasks[i].Clone()
	}
	return out
}
