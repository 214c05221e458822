package rewards

import (
	"testing"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

func TestMegaStreakScenario(t *testing.T) {
	loc := time.UTC
	day1 := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
	tasks := seedTasks(t, day1, "A", "B", "C")
	p := model.Profile{}

	markAll := func(tasks []model.Task, now time.Time) []model.Task {
		out := model.NormalizeAll(tasks, now)
		for i := range out {
			out[i].SetDone(model.DayKeyOf(now), true, now)
		}
		return out
	}

	tasks = markAll(tasks, day1)
	p = UpdateMegaStreak(tasks, p, day1)
	if p.MegaStreak != 1 {
		t.Fatalf("day 1: expected 1, got %d", p.MegaStreak)
	}

	// same day again refreshes the mark only
	later := day1.Add(3 * time.Hour)
	p = UpdateMegaStreak(tasks, p, later)
	if p.MegaStreak != 1 || !p.MegaLastMarkAt.Equal(later) {
		t.Fatalf("same day: unexpected %+v", p)
	}

	day2 := day1.Add(23 * time.Hour)
	tasks = markAll(tasks, day2)
	p = UpdateMegaStreak(tasks, p, day2)
	if p.MegaStreak != 2 {
		t.Fatalf("day 2: expected 2, got %d", p.MegaStreak)
	}

	// day 3: nothing done, more than 24h later
	day3 := day2.Add(25 * time.Hour)
	tasks = model.NormalizeAll(tasks, day3)
	p = UpdateMegaStreak(tasks, p, day3)
	if p.MegaStreak != 0 || p.MegaLastCountedDay != nil {
		t.Fatalf("day 3: expected reset, got %+v", p)
	}

	day4 := day3.Add(24 * time.Hour)
	tasks = markAll(tasks, day4)
	p = UpdateMegaStreak(tasks, p, day4)
	if p.MegaStreak != 1 {
		t.Fatalf("day 4: expected restart at 1, got %d", p.MegaStreak)
	}
}

func TestMegaStreakPartialWithinGrace(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	tasks := seedTasks(t, now, "A", "B")
	mark := now.Add(-2 * time.Hour)
	counted := model.DayKeyOf(now).AddDays(-1)
	p := model.Profile{MegaStreak: 4, MegaLastMarkAt: &mark, MegaLastCountedDay: &counted}

	tasks[0].SetDone(model.DayKeyOf(now), true, now)
	got := UpdateMegaStreak(tasks, p, now)
	if got.MegaStreak != 4 || got.MegaLastCountedDay == nil {
		t.Fatalf("expected unchanged streak, got %+v", got)
	}
}

func TestMegaStreakNoTasks(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	if AllDoneOn(nil, model.DayKeyOf(now)) {
		t.Fatal("empty list must not count as all done")
	}
	got := UpdateMegaStreak(nil, model.Profile{}, now)
	if got.MegaStreak != 0 || got.MegaLastMarkAt != nil {
		t.Fatalf("unexpected profile %+v", got)
	}
}
