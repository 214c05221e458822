package model

import (
	"fmt"
	"time"
)

// StreakGrace is how long a streak survives after the last check. It is an
// elapsed-time threshold, not a calendar-day comparison.
const StreakGrace = 24 * time.Hour

const fireIcon = "\U0001F525"

type StreakState string

const (
	StreakIdle   StreakState = "idle"
	StreakActive StreakState = "active"
	StreakBroken StreakState = "broken"
)

type Streak struct {
	State StreakState
	Count int
}

func (s Streak) Label() string {
	switch s.State {
	case StreakBroken:
		return fireIcon + " Broken"
	case StreakActive:
		return fmt.Sprintf("%s %d", fireIcon, s.Count)
	default:
		return fireIcon + " 0"
	}
}

func StreakInfo(t Task, now time.Time) Streak {
	if t.LastCheckedAt == nil {
		return Streak{State: StreakIdle}
	}
	if now.Sub(*t.LastCheckedAt) > StreakGrace {
		return Streak{State: StreakBroken}
	}
	return Streak{State: StreakActive, Count: ConsecutiveDaysFromLastCheck(t)}
}

// ConsecutiveDaysFromLastCheck walks backward one calendar day at a time from
// the day of LastCheckedAt and stops at the first day without a done slot.
func ConsecutiveDaysFromLastCheck(t Task) int {
	if t.LastCheckedAt == nil {
		return 0
	}
	done := make(map[DayKey]bool, len(t.Days))
	for _, d := range t.Days {
		if d.Done {
			done[d.Key] = true
		}
	}
	count := 0
	for cursor := DayKeyOf(*t.LastCheckedAt); done[cursor]; cursor = cursor.AddDays(-1) {
		count++
	}
	return count
}
