package model

import "time"

// Profile is the process-wide reward and mega-streak ledger.
type Profile struct {
	Wallet             int
	ClaimedCheckCount  int
	MegaStreak         int
	MegaLastMarkAt     *time.Time
	MegaLastCountedDay *DayKey
}

func (p Profile) Clone() Profile {
	out := p
	if p.MegaLastMarkAt != nil {
		v := *p.MegaLastMarkAt
		out.MegaLastMarkAt = &v
	}
	if p.MegaLastCountedDay != nil {
		v := *p.MegaLastCountedDay
		out.MegaLastCountedDay = &v
	}
	return out
}

type Theme string

const (
	ThemeCurrent Theme = "current"
	ThemeLight   Theme = "light"
	ThemeBlack   Theme = "black"
)

var themeCycle = []Theme{ThemeCurrent, ThemeLight, ThemeBlack}

func (t Theme) IsValid() bool {
	switch t {
	case ThemeCurrent, ThemeLight, ThemeBlack:
		return true
	default:
		return false
	}
}

// Next returns the theme after t; unknown themes restart the cycle.
func (t Theme) Next() Theme {
	for i, th := range themeCycle {
		if th == t {
			return themeCycle[(i+1)%len(themeCycle)]
		}
	}
	return ThemeCurrent
}

func (t Theme) Label() string {
	switch t {
	case ThemeLight:
		return "Light"
	case ThemeBlack:
		return "Black"
	default:
		return "Current"
	}
}
