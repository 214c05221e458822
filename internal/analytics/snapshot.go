// Package analytics summarises a normalized task list into the figures shown
// on the Insights tab.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/sandeepkv93/trackd/internal/model"
)

// DefaultTopTasks is the leaderboard length used when callers pass n <= 0.
const DefaultTopTasks = 6

const seriesDays = 30

var (
	hundred          = decimal.NewFromInt(100)
	completionWeight = decimal.RequireFromString("0.65")
	todayWeight      = decimal.RequireFromString("0.35")
)

type DayPoint struct {
	Key   model.DayKey `json:"key"`
	Label string       `json:"label"`
	Done  int          `json:"done"`
	Rate  int          `json:"rate"`
}

type TaskRate struct {
	ID    string            `json:"id"`
	Name  string            `json:"name"`
	Done  int               `json:"done"`
	Rate  int               `json:"rate"`
	State model.StreakState `json:"state"`
}

type Snapshot struct {
	TotalTasks       int        `json:"totalTasks"`
	DoneChecks       int        `json:"doneChecks"`
	DoneToday        int        `json:"doneToday"`
	CompletionRate   int        `json:"completionRate"`
	TodayRate        int        `json:"todayRate"`
	Active           int        `json:"active"`
	Broken           int        `json:"broken"`
	Idle             int        `json:"idle"`
	DaySeries        []DayPoint `json:"daySeries"`
	WeekdayRates     [7]int     `json:"weekdayRates"`
	TopTasks         []TaskRate `json:"topTasks"`
	ConsistencyScore int        `json:"consistencyScore"`
}

// Build derives the snapshot for tasks as of now. tasks must already be
// normalized to now's day.
func Build(tasks []model.Task, now time.Time, topN int) Snapshot {
	if topN <= 0 {
		topN = DefaultTopTasks
	}
	total := len(tasks)
	today := model.DayKeyOf(now)

	s := Snapshot{TotalTasks: total}
	for _, t := range tasks {
		s.DoneChecks += t.DoneCount()
		if t.DoneOn(today) {
			s.DoneToday++
		}
		switch model.StreakInfo(t, now).State {
		case model.StreakActive:
			s.Active++
		case model.StreakBroken:
			s.Broken++
		}
	}
	s.Idle = max(0, total-s.Active-s.Broken)

	expected := max(1, total*model.WindowDays)
	completion := percent(s.DoneChecks, expected)
	s.CompletionRate = roundInt(completion)
	todayRate := decimal.Zero
	if total > 0 {
		todayRate = percent(s.DoneToday, total)
	}
	s.TodayRate = roundInt(todayRate)
	s.ConsistencyScore = roundInt(
		decimal.NewFromInt(int64(s.CompletionRate)).Mul(completionWeight).
			Add(decimal.NewFromInt(int64(s.TodayRate)).Mul(todayWeight)),
	)

	s.DaySeries, s.WeekdayRates = series(tasks, today, now.Location())
	s.TopTasks = topTasks(tasks, now, topN)
	return s
}

// series covers the seriesDays days ending today. A done slot counts on the
// day it was checked, or on its own day when the check time is unknown.
func series(tasks []model.Task, today model.DayKey, loc *time.Location) ([]DayPoint, [7]int) {
	doneByDay := make(map[model.DayKey]int)
	for _, t := range tasks {
		for _, d := range t.Days {
			if !d.Done {
				continue
			}
			key := d.Key
			if d.CheckedAt != nil {
				key = model.DayKeyOf(d.CheckedAt.In(loc))
			}
			doneByDay[key]++
		}
	}

	var (
		sums   [7]decimal.Decimal
		counts [7]int
	)
	points := make([]DayPoint, 0, seriesDays)
	for i := seriesDays - 1; i >= 0; i-- {
		key := today.AddDays(-i)
		done := doneByDay[key]
		rate := decimal.Zero
		if len(tasks) > 0 {
			rate = percent(done, len(tasks))
		}
		wd := key.Weekday()
		sums[wd] = sums[wd].Add(rate)
		counts[wd]++
		points = append(points, DayPoint{Key: key, Label: key.Label(), Done: done, Rate: roundInt(rate)})
	}

	var weekday [7]int
	for i := range weekday {
		if counts[i] > 0 {
			weekday[i] = roundInt(sums[i].Div(decimal.NewFromInt(int64(counts[i]))))
		}
	}
	return points, weekday
}

func topTasks(tasks []model.Task, now time.Time, n int) []TaskRate {
	rows := make([]TaskRate, 0, len(tasks))
	for _, t := range tasks {
		done := t.DoneCount()
		rows = append(rows, TaskRate{
			ID:    t.ID,
			Name:  t.Name,
			Done:  done,
			Rate:  roundInt(percent(done, model.WindowDays)),
			State: model.StreakInfo(t, now).State,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Rate > rows[j].Rate })
	if len(rows) > n {
		rows = rows[:n]
	}
	return rows
}

func percent(part, whole int) decimal.Decimal {
	return decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(whole)))
}

func roundInt(d decimal.Decimal) int {
	return int(d.Round(0).IntPart())
}
