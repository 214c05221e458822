package model

import (
	"testing"
	"time"
)

func TestStreakInfoStates(t *testing.T) {
	now := time.Date(2026, 2, 9, 20, 0, 0, 0, time.UTC)
	task, _ := NewTask("Read", now)

	if got := StreakInfo(task, now); got.State != StreakIdle || got.Count != 0 {
		t.Fatalf("expected idle, got %+v", got)
	}

	task.SetDone(DayKeyOf(now), true, now)
	if got := StreakInfo(task, now.Add(time.Hour)); got.State != StreakActive || got.Count != 1 {
		t.Fatalf("expected active 1, got %+v", got)
	}

	// late check-in grace: just under 24h later on the next calendar day is still active
	if got := StreakInfo(task, now.Add(23*time.Hour+59*time.Minute)); got.State != StreakActive {
		t.Fatalf("expected active inside grace window, got %+v", got)
	}
	if got := StreakInfo(task, now.Add(StreakGrace+time.Second)); got.State != StreakBroken {
		t.Fatalf("expected broken after grace window, got %+v", got)
	}
}

func TestStreakBrokenRegardlessOfDays(t *testing.T) {
	now := time.Date(2026, 2, 9, 20, 0, 0, 0, time.UTC)
	task, _ := NewTask("Read", now)
	for i := range task.Days {
		task.Days[i].Done = true
	}
	stale := now.Add(-25 * time.Hour)
	task.LastCheckedAt = &stale
	if got := StreakInfo(task, now); got.State != StreakBroken {
		t.Fatalf("expected broken, got %+v", got)
	}
}

func TestConsecutiveDaysFromLastCheck(t *testing.T) {
	now := time.Date(2026, 2, 9, 9, 0, 0, 0, time.UTC)
	task, _ := NewTask("Read", now)
	today := DayKeyOf(now)

	cases := []struct {
		name    string
		done    []int
		lastOff int
		want    int
	}{
		{name: "no done slot on last day", done: []int{1, 2}, lastOff: 3, want: 0},
		{name: "single day", done: []int{4}, lastOff: 4, want: 1},
		{name: "three contiguous", done: []int{2, 3, 4}, lastOff: 4, want: 3},
		{name: "gap stops the walk", done: []int{0, 2, 3, 4}, lastOff: 4, want: 3},
		{name: "walk stops at window edge", done: []int{0, 1, 2}, lastOff: 2, want: 3},
	}
	for _, tc := range cases {
		cur := task.Clone()
		for _, off := range tc.done {
			cur.Days[off].Done = true
		}
		last := today.AddDays(tc.lastOff).Time(time.UTC).Add(20 * time.Hour)
		cur.LastCheckedAt = &last
		if got := ConsecutiveDaysFromLastCheck(cur); got != tc.want {
			t.Fatalf("%s: got %d want %d", tc.name, got, tc.want)
		}
	}

	cur := task.Clone()
	if got := ConsecutiveDaysFromLastCheck(cur); got != 0 {
		t.Fatalf("expected 0 without last check, got %d", got)
	}
}

func TestStreakLabel(t *testing.T) {
	if got := (Streak{State: StreakActive, Count: 4}).Label(); got != "\U0001F525 4" {
		t.Fatalf("unexpected active label %q", got)
	}
	if got := (Streak{State: StreakBroken}).Label(); got != "\U0001F525 Broken" {
		t.Fatalf("unexpected broken label %q", got)
	}
	if got := (Streak{State: StreakIdle}).Label(); got != "\U0001F525 0" {
		t.Fatalf("unexpected idle label %q", got)
	}
}
