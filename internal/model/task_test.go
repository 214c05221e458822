package model

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestNewTaskSeedsFreshWindow(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task, ok := NewTask("  Read  ", now)
	if !ok {
		t.Fatal("expected task to be created")
	}
	if task.Name != "Read" {
		t.Fatalf("expected trimmed name, got %q", task.Name)
	}
	if !strings.HasPrefix(task.ID, "task-") {
		t.Fatalf("unexpected id: %q", task.ID)
	}
	if len(task.Days) != WindowDays {
		t.Fatalf("expected %d days, got %d", WindowDays, len(task.Days))
	}
	for _, d := range task.Days {
		if d.Done || d.CheckedAt != nil {
			t.Fatalf("expected empty slot, got %+v", d)
		}
	}
	if err := task.Validate(); err != nil {
		t.Fatalf("expected valid task, got error: %v", err)
	}
}

func TestNewTaskRejectsEmptyName(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	if _, ok := NewTask("   ", now); ok {
		t.Fatal("expected empty name to be rejected")
	}
}

func TestCleanNameTruncatesToLimit(t *testing.T) {
	long := strings.Repeat("é", MaxNameLength+10)
	name, ok := CleanName(long)
	if !ok {
		t.Fatal("expected name accepted")
	}
	if got := len([]rune(name)); got != MaxNameLength {
		t.Fatalf("expected %d runes, got %d", MaxNameLength, got)
	}
}

func TestTaskValidateRejectsBrokenWindow(t *testing.T) {
	now := time.Date(2026, 2, 9, 12, 0, 0, 0, time.UTC)
	task, _ := NewTask("Gym", now)
	task.Days = task.Days[:10]
	if err := task.Validate(); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	task, _ = NewTask("Gym", now)
	task.Days[5].Key = task.Days[5].Key.AddDays(3)
	if err := task.Validate(); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow for gap, got %v", err)
	}
}

func TestSetDoneTracksLastCheckedAt(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	task, _ := NewTask("Walk", now)
	today := DayKeyOf(now)

	if !task.SetDone(today.AddDays(2), true, now) {
		t.Fatal("expected slot in window")
	}
	later := now.Add(3 * time.Hour)
	task.SetDone(today, true, later)
	if task.LastCheckedAt == nil || !task.LastCheckedAt.Equal(later) {
		t.Fatalf("expected last checked %v, got %v", later, task.LastCheckedAt)
	}

	task.SetDone(today, false, later.Add(time.Minute))
	if task.LastCheckedAt == nil || !task.LastCheckedAt.Equal(now) {
		t.Fatalf("expected last checked to fall back to %v, got %v", now, task.LastCheckedAt)
	}

	task.SetDone(today.AddDays(2), false, later)
	if task.LastCheckedAt != nil {
		t.Fatalf("expected nil last checked, got %v", task.LastCheckedAt)
	}

	if task.SetDone(today.AddDays(-1), true, now) {
		t.Fatal("expected yesterday to be outside the window")
	}
}

func TestRecomputeLastCheckedUsesMidnightWithoutTimestamp(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	task, _ := NewTask("Walk", now)
	task.Days[3].Done = true
	task.RecomputeLastChecked(time.UTC)
	want := task.Days[3].Key.Time(time.UTC)
	if task.LastCheckedAt == nil || !task.LastCheckedAt.Equal(want) {
		t.Fatalf("expected %v, got %v", want, task.LastCheckedAt)
	}
}

func TestCloneIsDeep(t *testing.T) {
	now := time.Date(2026, 2, 9, 8, 0, 0, 0, time.UTC)
	task, _ := NewTask("Walk", now)
	task.SetDone(DayKeyOf(now), true, now)

	cp := task.Clone()
	cp.Days[0].Done = false
	*cp.LastCheckedAt = now.Add(time.Hour)
	if !task.Days[0].Done {
		t.Fatal("clone shares day slots with original")
	}
	if !task.LastCheckedAt.Equal(now) {
		t.Fatal("clone shares last checked pointer with original")
	}
}

func TestSlotLookupHandlesGappedWindows(t *testing.T) {
	anchor := DayKey{Year: 2026, Month: time.October, Day: 16}
	task, _ := NewTask("Walk", anchor.Time(time.UTC))
	last := anchor.AddDays(WindowDays - 1)
	if _, ok := task.Slot(last); !ok {
		t.Fatalf("expected last window day %s to resolve", last)
	}
	if _, ok := task.Slot(anchor.AddDays(WindowDays)); ok {
		t.Fatalf("day past the window must not resolve")
	}
	if _, ok := task.Slot(anchor.AddDays(-1)); ok {
		t.Fatalf("day before the window must not resolve")
	}

	gapped := Task{Days: []DaySlot{
		{Key: anchor},
		{Key: anchor.AddDays(5), Done: true},
	}}
	if !gapped.DoneOn(anchor.AddDays(5)) {
		t.Fatalf("expected scan fallback to find %s", anchor.AddDays(5))
	}
	if gapped.DoneOn(anchor.AddDays(1)) {
		t.Fatalf("unexpected slot for %s", anchor.AddDays(1))
	}
}
