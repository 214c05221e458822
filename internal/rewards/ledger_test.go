package rewards

import (
	"testing"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

func seedTasks(t *testing.T, now time.Time, names ...string) []model.Task {
	t.Helper()
	out := make([]model.Task, 0, len(names))
	for _, n := range names {
		task, ok := model.NewTask(n, now)
		if !ok {
			t.Fatalf("new task %q rejected", n)
		}
		out = append(out, task)
	}
	return out
}

func TestClaimMovesPoolIntoWallet(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	tasks := seedTasks(t, now, "Read", "Walk")
	today := model.DayKeyOf(now)
	tasks[0].SetDone(today, true, now)
	tasks[0].SetDone(today.AddDays(1), true, now)
	tasks[1].SetDone(today, true, now)

	p := model.Profile{}
	if got := Unclaimed(tasks, p); got != 3 {
		t.Fatalf("expected 3 unclaimed, got %d", got)
	}

	p, claimed := Claim(tasks, p)
	if claimed != 3 || p.Wallet != 3 || p.ClaimedCheckCount != 3 {
		t.Fatalf("unexpected claim result %d %+v", claimed, p)
	}
	if got := Unclaimed(tasks, p); got != 0 {
		t.Fatalf("expected empty pool after claim, got %d", got)
	}

	again, claimed := Claim(tasks, p)
	if claimed != 0 || again != p {
		t.Fatalf("expected no-op claim, got %d %+v", claimed, again)
	}
}

func TestUncheckAfterClaimKeepsWallet(t *testing.T) {
	now := time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)
	tasks := seedTasks(t, now, "Read")
	today := model.DayKeyOf(now)
	tasks[0].SetDone(today, true, now)
	tasks[0].SetDone(today.AddDays(2), true, now)

	p, _ := Claim(tasks, model.Profile{})
	tasks[0].SetDone(today, false, now)

	if got := Unclaimed(tasks, p); got != 0 {
		t.Fatalf("pool must floor at zero, got %d", got)
	}
	p2, claimed := Claim(tasks, p)
	if claimed != 0 || p2.Wallet != 2 || p2.ClaimedCheckCount != 2 {
		t.Fatalf("wallet or claimed count moved: %+v", p2)
	}

	// re-checking the same day does not pay twice
	tasks[0].SetDone(today, true, now)
	if got := Unclaimed(tasks, p2); got != 0 {
		t.Fatalf("expected 0 after re-check, got %d", got)
	}
	tasks[0].SetDone(today.AddDays(5), true, now)
	if got := Unclaimed(tasks, p2); got != 1 {
		t.Fatalf("expected 1 new coin, got %d", got)
	}
}

func TestTotalDoneEmpty(t *testing.T) {
	if TotalDone(nil) != 0 {
		t.Fatal("expected zero for no tasks")
	}
}
