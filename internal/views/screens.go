package views

import (
	"fmt"
	"strings"
)

type OverviewData struct {
	Theme        string
	Intro        string
	Today        string
	TotalTasks   int
	DoneToday    int
	TotalDone    int
	Wallet       int
	Unclaimed    int
	Active       int
	Broken       int
	MegaStreak   int
	DayOfYear    int
	DaysInYear   int
	YearProgress string
}

type BoardCell struct {
	Label    string
	Done     bool
	Selected bool
}

type BoardRow struct {
	Name     string
	Streak   string
	Broken   bool
	Selected bool
	Cells    []BoardCell
}

type BoardData struct {
	Range       string
	Rows        []BoardRow
	SelectedDay string
	AddView     string
	Adding      bool
	Wallet      int
	Unclaimed   int
}

type InsightsData struct {
	Completion   int
	TodayRate    int
	Consistency  int
	Pulse        int
	PulseSeries  []int
	Live         bool
	Indicator    string
	Active       int
	Broken       int
	Idle         int
	Series       []int
	SeriesStart  string
	SeriesEnd    string
	WeekdayRates [7]int
	TopTasksView string
}

type HelpPanelData struct {
	CurrentView string
	Bindings    []string
	HelpView    string
}

var (
	weekdayLabels = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	sparkRunes    = []rune("▁▂▃▄▅▆▇█")
)

func RenderOverview(data OverviewData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("today: %s\n", data.Today))
	b.WriteString(fmt.Sprintf("tasks: %d | done today: %d | total checks: %d\n", data.TotalTasks, data.DoneToday, data.TotalDone))
	b.WriteString(fmt.Sprintf("wallet: %d coins | ready to claim: %d\n", data.Wallet, data.Unclaimed))
	b.WriteString(fmt.Sprintf("streaks: %d active, %d broken\n", data.Active, data.Broken))
	b.WriteString(fmt.Sprintf("mega streak: %d\n", data.MegaStreak))
	b.WriteString(fmt.Sprintf("year: day %d of %d %s", data.DayOfYear, data.DaysInYear, data.YearProgress))
	if intro := RenderMarkdown(data.Intro, data.Theme); intro != "" {
		b.WriteString("\n\n" + intro)
	}
	return strings.TrimSpace(b.String())
}

func RenderBoard(data BoardData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("tasks: %s\n", data.Range))
	b.WriteString("actions: [j/k]task [h/l]day [space]toggle [a]add [d]delete [c]claim\n")
	if data.Adding {
		b.WriteString(data.AddView + "\n")
	}
	if len(data.Rows) == 0 {
		b.WriteString("\n(no tasks yet, press a to add one)\n")
	}
	for _, row := range data.Rows {
		cursor := " "
		if row.Selected {
			cursor = ">"
		}
		b.WriteString(fmt.Sprintf("%s %-22s %-12s %s\n", cursor, truncate(row.Name, 22), row.Streak, renderCells(row.Cells)))
	}
	if data.SelectedDay != "" {
		b.WriteString(fmt.Sprintf("\nday: %s\n", data.SelectedDay))
	}
	b.WriteString(fmt.Sprintf("coins: %d in wallet, %d ready", data.Wallet, data.Unclaimed))
	return strings.TrimSpace(b.String())
}

// renderCells draws one character per day, grouped by week. The selected
// day is wrapped in brackets.
func renderCells(cells []BoardCell) string {
	var b strings.Builder
	for i, c := range cells {
		if i > 0 && i%7 == 0 {
			b.WriteByte(' ')
		}
		mark := "·"
		if c.Done {
			mark = "■"
		}
		if c.Selected {
			mark = "[" + mark + "]"
		}
		b.WriteString(mark)
	}
	return b.String()
}

func RenderInsights(data InsightsData) string {
	var b strings.Builder
	live := ""
	if data.Live {
		live = " " + strings.TrimSpace(data.Indicator+" live")
	}
	b.WriteString(fmt.Sprintf("consistency: %d%%%s | completion: %d%% | today: %d%%\n", data.Pulse, live, data.Completion, data.TodayRate))
	b.WriteString(fmt.Sprintf("streak health: %d active, %d broken, %d idle\n", data.Active, data.Broken, data.Idle))
	b.WriteString(fmt.Sprintf("pulse: %s\n", Sparkline(data.PulseSeries, 100)))
	b.WriteString(fmt.Sprintf("\nlast 30 days (%s - %s):\n%s\n", data.SeriesStart, data.SeriesEnd, Sparkline(data.Series, 100)))
	b.WriteString("\nweekday rates:\n")
	b.WriteString(WeekdayBars(data.WeekdayRates, 20))
	if data.TopTasksView != "" {
		b.WriteString("\ntop tasks:\n" + data.TopTasksView)
	}
	return strings.TrimSpace(b.String())
}

// Sparkline maps each value in [0, max] onto an eight-level bar.
func Sparkline(values []int, max int) string {
	if max <= 0 {
		max = 1
	}
	out := make([]rune, 0, len(values))
	for _, v := range values {
		v = clamp(v, 0, max)
		idx := v * (len(sparkRunes) - 1) / max
		out = append(out, sparkRunes[idx])
	}
	return string(out)
}

func WeekdayBars(rates [7]int, width int) string {
	var b strings.Builder
	for i, rate := range rates {
		filled := clamp(rate, 0, 100) * width / 100
		b.WriteString(fmt.Sprintf("%s %s%s %3d%%\n", weekdayLabels[i], strings.Repeat("█", filled), strings.Repeat("░", width-filled), rate))
	}
	return b.String()
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command: /%s", input)
}

func RenderConfirm(prompt string) string {
	if strings.TrimSpace(prompt) == "" {
		return ""
	}
	return fmt.Sprintf("confirm: %s [y/n]", prompt)
}

func RenderNotification(level string, body string) string {
	if strings.TrimSpace(body) == "" {
		return ""
	}
	return fmt.Sprintf("notification: [%s] %s", strings.ToUpper(level), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	return fmt.Sprintf("help:\n%s view:\n%s\n%s",
		strings.ToLower(data.CurrentView),
		strings.Join(data.Bindings, "\n"),
		data.HelpView,
	)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
