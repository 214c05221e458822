package rewards

import (
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

// MegaGrace bounds the gap between two all-done marks.
const MegaGrace = 24 * time.Hour

// AllDoneOn reports whether every task has its slot for day done. An empty
// task list never counts as all done.
func AllDoneOn(tasks []model.Task, day model.DayKey) bool {
	if len(tasks) == 0 {
		return false
	}
	for _, t := range tasks {
		if !t.DoneOn(day) {
			return false
		}
	}
	return true
}

// UpdateMegaStreak advances or resets the cross-task streak for now.
//
//	all done, today uncounted -> +1 (or 1 after a missed window), mark today
//	all done, today counted   -> refresh the mark time only
//	not all done, window lost -> 0, forget the counted day
//	not all done, in window   -> unchanged
func UpdateMegaStreak(tasks []model.Task, p model.Profile, now time.Time) model.Profile {
	out := p.Clone()
	today := model.DayKeyOf(now)
	missed := out.MegaLastMarkAt != nil && now.Sub(*out.MegaLastMarkAt) > MegaGrace

	if AllDoneOn(tasks, today) {
		if out.MegaLastCountedDay == nil || *out.MegaLastCountedDay != today {
			if out.MegaLastMarkAt == nil || missed {
				out.MegaStreak = 1
			} else {
				out.MegaStreak = max(0, out.MegaStreak) + 1
			}
			out.MegaLastCountedDay = &today
		}
		mark := now
		out.MegaLastMarkAt = &mark
		return out
	}

	if missed {
		out.MegaStreak = 0
		out.MegaLastCountedDay = nil
	}
	return out
}
