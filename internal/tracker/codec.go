package tracker

import (
	"encoding/json"
	"errors"
	"math"
	"strings"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

const timeLayout = time.RFC3339Nano

var (
	errNotArray  = errors.New("tracker: tasks document is not a list")
	errNotObject = errors.New("tracker: profile document is not an object")
)

// SeedTaskNames are created when no usable tasks document exists.
var SeedTaskNames = []string{"Morning Workout", "Read 20 Pages", "No Sugar Day"}

func seedTasks(now time.Time) []model.Task {
	out := make([]model.Task, 0, len(SeedTaskNames))
	for _, name := range SeedTaskNames {
		if t, ok := model.NewTask(name, now); ok {
			out = append(out, t)
		}
	}
	return out
}

type dayDoc struct {
	Key       string  `json:"key"`
	Done      bool    `json:"done"`
	CheckedAt *string `json:"checkedAt"`
}

type taskDoc struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	CreatedAt     string   `json:"createdAt"`
	LastCheckedAt *string  `json:"lastCheckedAt"`
	Days          []dayDoc `json:"days"`
}

type profileDoc struct {
	Wallet             int     `json:"wallet"`
	ClaimedCheckCount  int     `json:"claimedCheckCount"`
	MegaStreak         int     `json:"megaStreak"`
	MegaLastMarkAt     *string `json:"megaLastMarkAt"`
	MegaLastCountedDay *string `json:"megaLastCountedDay"`
}

func encodeTasks(tasks []model.Task) ([]byte, error) {
	docs := make([]taskDoc, 0, len(tasks))
	for _, t := range tasks {
		d := taskDoc{
			ID:            t.ID,
			Name:          t.Name,
			CreatedAt:     t.CreatedAt.Format(timeLayout),
			LastCheckedAt: formatTime(t.LastCheckedAt),
			Days:          make([]dayDoc, 0, len(t.Days)),
		}
		for _, slot := range t.Days {
			d.Days = append(d.Days, dayDoc{
				Key:       slot.Key.String(),
				Done:      slot.Done,
				CheckedAt: formatTime(slot.CheckedAt),
			})
		}
		docs = append(docs, d)
	}
	return json.Marshal(docs)
}

// decodeTasks reads a tasks document without trusting its shape. Entries that
// are not objects are skipped and bad field values fall back to zero values;
// Normalize fills in the rest. Only a body that is not a JSON list fails.
func decodeTasks(raw []byte, loc *time.Location) ([]model.Task, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(raw, &entries); err != nil {
		return nil, errNotArray
	}
	if entries == nil {
		return nil, errNotArray
	}
	out := make([]model.Task, 0, len(entries))
	for _, entry := range entries {
		var fields map[string]any
		if err := json.Unmarshal(entry, &fields); err != nil || fields == nil {
			continue
		}
		t := model.Task{
			ID:            asString(fields["id"]),
			Name:          asString(fields["name"]),
			LastCheckedAt: asTime(fields["lastCheckedAt"], loc),
		}
		if created := asTime(fields["createdAt"], loc); created != nil {
			t.CreatedAt = *created
		}
		days, _ := fields["days"].([]any)
		for _, item := range days {
			slot, ok := item.(map[string]any)
			if !ok {
				continue
			}
			key, err := model.ParseDayKey(asString(slot["key"]))
			if err != nil {
				continue
			}
			done, _ := slot["done"].(bool)
			d := model.DaySlot{Key: key, Done: done}
			if done {
				d.CheckedAt = asTime(slot["checkedAt"], loc)
			}
			t.Days = append(t.Days, d)
		}
		out = append(out, t)
	}
	return out, nil
}

func encodeProfile(p model.Profile) ([]byte, error) {
	d := profileDoc{
		Wallet:            p.Wallet,
		ClaimedCheckCount: p.ClaimedCheckCount,
		MegaStreak:        p.MegaStreak,
		MegaLastMarkAt:    formatTime(p.MegaLastMarkAt),
	}
	if p.MegaLastCountedDay != nil {
		v := p.MegaLastCountedDay.String()
		d.MegaLastCountedDay = &v
	}
	return json.Marshal(d)
}

func decodeProfile(raw []byte, loc *time.Location) (model.Profile, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil || fields == nil {
		return model.Profile{}, errNotObject
	}
	p := model.Profile{
		Wallet:            asCount(fields["wallet"]),
		ClaimedCheckCount: asCount(fields["claimedCheckCount"]),
		MegaStreak:        asCount(fields["megaStreak"]),
		MegaLastMarkAt:    asTime(fields["megaLastMarkAt"], loc),
	}
	if key, err := model.ParseDayKey(asString(fields["megaLastCountedDay"])); err == nil && !key.IsZero() {
		p.MegaLastCountedDay = &key
	}
	return p, nil
}

func encodeTheme(t model.Theme) ([]byte, error) {
	return json.Marshal(string(t))
}

// decodeTheme accepts a JSON string or a bare word. Unknown values fall back
// to the default theme.
func decodeTheme(raw []byte) model.Theme {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		s = string(raw)
	}
	t := model.Theme(strings.ToLower(strings.TrimSpace(s)))
	if !t.IsValid() {
		return model.ThemeCurrent
	}
	return t
}

func formatTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := t.Format(timeLayout)
	return &v
}

func asString(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}

// maxCount is the largest integer a JSON number carries exactly.
const maxCount = 1 << 53

// asCount keeps finite, non-negative JSON numbers, clamping anything above
// maxCount, and maps everything else to zero.
func asCount(v any) int {
	f, ok := v.(float64)
	if !ok || math.IsNaN(f) || f < 0 {
		return 0
	}
	if f >= maxCount {
		return maxCount
	}
	return int(f)
}

// asTime parses an RFC 3339 string or a millisecond epoch number.
func asTime(v any, loc *time.Location) *time.Time {
	if loc == nil {
		loc = time.Local
	}
	var out time.Time
	switch x := v.(type) {
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return nil
		}
		parsed, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return nil
		}
		out = parsed
	case float64:
		if math.IsNaN(x) || math.IsInf(x, 0) || x <= 0 {
			return nil
		}
		out = time.UnixMilli(int64(x))
	default:
		return nil
	}
	out = out.In(loc)
	return &out
}
