package update

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/sandeepkv93/trackd/internal/views"
)

// startPulse seeds the live pulse from the consistency score and schedules
// the first tick under a new generation.
func (m *Model) startPulse() tea.Cmd {
	m.Pulse.Gen++
	m.Pulse.Running = true
	m.Pulse.Value = clampInt(max(pulseFloor, m.Snapshot.ConsistencyScore), pulseMin, pulseMax)
	m.Pulse.Series = []int{m.Pulse.Value}
	return pulseTickCmd(m.Pulse.Gen, m.pulseInterval)
}

// stopPulse bumps the generation so any tick already in flight is dropped.
func (m *Model) stopPulse() {
	m.Pulse.Gen++
	m.Pulse.Running = false
}

func (m Model) onPulseTick(msg PulseTickMsg) (tea.Model, tea.Cmd) {
	if !m.Pulse.Running || msg.Gen != m.Pulse.Gen || m.CurrentView != ViewInsights {
		return m, nil
	}
	drift := m.rng.Intn(2*pulseDrift+1) - pulseDrift
	m.Pulse.Value = clampInt(m.Pulse.Value+drift, pulseMin, pulseMax)
	m.Pulse.Series = append(m.Pulse.Series, m.Pulse.Value)
	if len(m.Pulse.Series) > pulseHistory {
		m.Pulse.Series = m.Pulse.Series[len(m.Pulse.Series)-pulseHistory:]
	}
	m.pulseSpinner, _ = m.pulseSpinner.Update(m.pulseSpinner.Tick())
	return m, pulseTickCmd(m.Pulse.Gen, m.pulseInterval)
}

func (m Model) renderInsights() string {
	snap := m.Snapshot
	data := views.InsightsData{
		Completion:   snap.CompletionRate,
		TodayRate:    snap.TodayRate,
		Consistency:  snap.ConsistencyScore,
		Pulse:        snap.ConsistencyScore,
		Active:       snap.Active,
		Broken:       snap.Broken,
		Idle:         snap.Idle,
		WeekdayRates: snap.WeekdayRates,
		TopTasksView: m.topTable.View(),
	}
	if m.Pulse.Running {
		data.Live = true
		data.Pulse = m.Pulse.Value
		data.PulseSeries = m.Pulse.Series
		data.Indicator = m.pulseSpinner.View()
	}
	for _, p := range snap.DaySeries {
		data.Series = append(data.Series, p.Rate)
	}
	if n := len(snap.DaySeries); n > 0 {
		data.SeriesStart = snap.DaySeries[0].Label
		data.SeriesEnd = snap.DaySeries[n-1].Label
	}
	return views.RenderInsights(data)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
