package model

import (
	"strings"
	"time"
)

// BuildWindow returns WindowDays empty slots starting at anchor.
func BuildWindow(anchor DayKey) []DaySlot {
	out := make([]DaySlot, WindowDays)
	for i := range out {
		out[i] = DaySlot{Key: anchor.AddDays(i)}
	}
	return out
}

// Normalize re-anchors the task's board at the calendar day of now. Slots
// still inside the new range keep their state; the rest fall off the left
// edge. Missing identity fields are filled in. LastCheckedAt is carried over
// untouched so streak break detection survives history falling out of the
// window. Normalizing twice on the same day yields the same task.
func Normalize(in Task, now time.Time) Task {
	out := Task{
		ID:        strings.TrimSpace(in.ID),
		CreatedAt: in.CreatedAt,
	}
	if in.LastCheckedAt != nil {
		v := *in.LastCheckedAt
		out.LastCheckedAt = &v
	}
	if out.ID == "" {
		out.ID = NewTaskID()
	}
	if name, ok := CleanName(in.Name); ok {
		out.Name = name
	} else {
		out.Name = DefaultTaskName
	}
	if out.CreatedAt.IsZero() {
		out.CreatedAt = now
	}

	saved := make(map[DayKey]DaySlot, len(in.Days))
	for _, d := range in.Days {
		if d.Key.IsZero() {
			continue
		}
		saved[d.Key] = d
	}

	out.Days = BuildWindow(DayKeyOf(now))
	for i := range out.Days {
		prev, ok := saved[out.Days[i].Key]
		if !ok || !prev.Done {
			continue
		}
		out.Days[i].Done = true
		if prev.CheckedAt != nil {
			v := *prev.CheckedAt
			out.Days[i].CheckedAt = &v
		}
	}
	return out
}

// NormalizeAll re-anchors every task and drops duplicate ids, keeping the
// first occurrence.
func NormalizeAll(in []Task, now time.Time) []Task {
	out := make([]Task, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, t := range in {
		n := Normalize(t, now)
		if seen[n.ID] {
			continue
		}
		seen[n.ID] = true
		out = append(out, n)
	}
	return out
}

// WindowStart is the first day of the window anchored at now.
func WindowStart(now time.Time) DayKey {
	return DayKeyOf(now)
}

// WindowEnd is the last day of the window anchored at now.
func WindowEnd(now time.Time) DayKey {
	return DayKeyOf(now).AddDays(WindowDays - 1)
}
