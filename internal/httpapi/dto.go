package httpapi

import (
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/tracker"
)

type dayDTO struct {
	Key       string     `json:"key"`
	Done      bool       `json:"done"`
	CheckedAt *time.Time `json:"checkedAt"`
}

type streakDTO struct {
	State model.StreakState `json:"state"`
	Count int               `json:"count"`
	Label string            `json:"label"`
}

type taskDTO struct {
	ID            string     `json:"id"`
	Name          string     `json:"name"`
	CreatedAt     time.Time  `json:"createdAt"`
	LastCheckedAt *time.Time `json:"lastCheckedAt"`
	Days          []dayDTO   `json:"days"`
	Streak        streakDTO  `json:"streak"`
}

type profileDTO struct {
	Wallet             int        `json:"wallet"`
	ClaimedCheckCount  int        `json:"claimedCheckCount"`
	MegaStreak         int        `json:"megaStreak"`
	MegaLastMarkAt     *time.Time `json:"megaLastMarkAt"`
	MegaLastCountedDay *string    `json:"megaLastCountedDay"`
	TotalDone          int        `json:"totalDone"`
	Unclaimed          int        `json:"unclaimed"`
}

type overviewDTO struct {
	Today        string      `json:"today"`
	TotalTasks   int         `json:"totalTasks"`
	TotalDone    int         `json:"totalDone"`
	DoneToday    int         `json:"doneToday"`
	Wallet       int         `json:"wallet"`
	Unclaimed    int         `json:"unclaimed"`
	Active       int         `json:"active"`
	Broken       int         `json:"broken"`
	MegaStreak   int         `json:"megaStreak"`
	DayOfYear    int         `json:"dayOfYear"`
	DaysInYear   int         `json:"daysInYear"`
	YearProgress float64     `json:"yearProgress"`
	Theme        model.Theme `json:"theme"`
}

type addTaskRequest struct {
	Name string `json:"name"`
}

type themeRequest struct {
	Theme string `json:"theme" binding:"required"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func toStreakDTO(s model.Streak) streakDTO {
	return streakDTO{State: s.State, Count: s.Count, Label: s.Label()}
}

func toTaskDTO(v tracker.TaskView) taskDTO {
	out := taskDTO{
		ID:            v.Task.ID,
		Name:          v.Task.Name,
		CreatedAt:     v.Task.CreatedAt,
		LastCheckedAt: v.Task.LastCheckedAt,
		Days:          make([]dayDTO, 0, len(v.Task.Days)),
		Streak:        toStreakDTO(v.Streak),
	}
	for _, d := range v.Task.Days {
		out.Days = append(out.Days, dayDTO{Key: d.Key.String(), Done: d.Done, CheckedAt: d.CheckedAt})
	}
	return out
}

func toProfileDTO(v tracker.ProfileView) profileDTO {
	out := profileDTO{
		Wallet:            v.Profile.Wallet,
		ClaimedCheckCount: v.Profile.ClaimedCheckCount,
		MegaStreak:        v.Profile.MegaStreak,
		MegaLastMarkAt:    v.Profile.MegaLastMarkAt,
		TotalDone:         v.TotalDone,
		Unclaimed:         v.Unclaimed,
	}
	if v.Profile.MegaLastCountedDay != nil {
		day := v.Profile.MegaLastCountedDay.String()
		out.MegaLastCountedDay = &day
	}
	return out
}

func toOverviewDTO(o tracker.Overview) overviewDTO {
	return overviewDTO{
		Today:        o.Today.String(),
		TotalTasks:   o.TotalTasks,
		TotalDone:    o.TotalDone,
		DoneToday:    o.DoneToday,
		Wallet:       o.Wallet,
		Unclaimed:    o.Unclaimed,
		Active:       o.Active,
		Broken:       o.Broken,
		MegaStreak:   o.MegaStreak,
		DayOfYear:    o.DayOfYear,
		DaysInYear:   o.DaysInYear,
		YearProgress: o.YearProgress,
		Theme:        o.Theme,
	}
}
