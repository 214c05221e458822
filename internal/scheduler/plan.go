package scheduler

import (
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/rewards"
)

// expirySlack puts expiry events just past the grace boundary, where the
// streak check (strictly greater than 24h) has flipped.
const expirySlack = time.Second

// NextMidnight is the start of the calendar day after now, in now's location.
func NextMidnight(now time.Time) time.Time {
	return model.DayKeyOf(now).AddDays(1).Time(now.Location())
}

// Plan lists the events that change derived state after now: the next day
// rollover, each active streak's expiry and the mega-streak expiry.
func Plan(tasks []model.Task, profile model.Profile, now time.Time) []Event {
	out := []Event{{
		ID:        "rollover",
		Kind:      EventRollover,
		TriggerAt: NextMidnight(now),
	}}
	for _, t := range tasks {
		if t.LastCheckedAt == nil {
			continue
		}
		at := t.LastCheckedAt.Add(model.StreakGrace + expirySlack)
		if !at.After(now) {
			continue
		}
		out = append(out, Event{
			ID:        "expiry:" + t.ID,
			Kind:      EventStreakExpiry,
			TaskID:    t.ID,
			TriggerAt: at,
		})
	}
	if profile.MegaLastMarkAt != nil && profile.MegaStreak > 0 {
		at := profile.MegaLastMarkAt.Add(rewards.MegaGrace + expirySlack)
		if at.After(now) {
			out = append(out, Event{ID: "mega-expiry", Kind: EventMegaExpiry, TriggerAt: at})
		}
	}
	return out
}
