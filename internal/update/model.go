package update

import (
	"context"
	"math/rand"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	"go.uber.org/zap"

	"github.com/sandeepkv93/trackd/internal/analytics"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/scheduler"
	"github.com/sandeepkv93/trackd/internal/tracker"
)

type View string

const (
	ViewOverview View = "Overview"
	ViewTasks    View = "Tasks"
	ViewInsights View = "Insights"
)

var tabOrder = []View{ViewOverview, ViewTasks, ViewInsights}

const (
	pulseMin       = 18
	pulseMax       = 100
	pulseFloor     = 35
	pulseDrift     = 4
	pulseHistory   = 24
	maxNotices     = 40
	defaultPulseIv = 2 * time.Second
)

// Tracker is the slice of *tracker.Store the TUI drives.
type Tracker interface {
	Now() time.Time
	ListTasks(ctx context.Context) ([]tracker.TaskView, error)
	FindTask(ctx context.Context, ref string) (tracker.TaskView, error)
	AddTask(ctx context.Context, name string) (tracker.TaskView, bool, error)
	DeleteTask(ctx context.Context, id string, confirm bool) (bool, error)
	ToggleDay(ctx context.Context, id string, day model.DayKey) (tracker.TaskView, error)
	ClaimCoins(ctx context.Context) (tracker.ClaimResult, error)
	GetProfile(ctx context.Context) (tracker.ProfileView, error)
	GetAnalyticsSnapshot(ctx context.Context) (analytics.Snapshot, error)
	Overview(ctx context.Context) (tracker.Overview, error)
	SetTheme(ctx context.Context, theme model.Theme) error
	CycleTheme(ctx context.Context) (model.Theme, error)
	Reset(ctx context.Context) error
}

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	Overview string
	Tasks    string
	Insights string
	Theme    string
	Help     string
	Quit     string
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

// ConfirmState is the pending yes/no prompt. Exactly one of TaskID or Reset
// is set while Active.
type ConfirmState struct {
	Active bool
	Prompt string
	TaskID string
	Reset  bool
}

type PulseState struct {
	Value   int
	Series  []int
	Gen     int
	Running bool
}

type Notification struct {
	Title string
	Body  string
	Level string
	At    time.Time
}

type Options struct {
	Context       context.Context
	Logger        *zap.Logger
	Scheduler     *scheduler.Engine
	PulseInterval time.Duration
	Rand          *rand.Rand
}

type Model struct {
	CurrentView   View
	Tasks         []tracker.TaskView
	Profile       tracker.ProfileView
	Summary       tracker.Overview
	Snapshot      analytics.Snapshot
	Theme         model.Theme
	TaskCursor    int
	DayCursor     int
	Adding        bool
	Confirm       ConfirmState
	Palette       CommandPaletteState
	HelpVisible   bool
	Pulse         PulseState
	Scheduler     *scheduler.Engine
	LastEvent     *scheduler.Event
	Notifications []Notification
	Status        StatusBar
	Keys          GlobalKeyMap
	Quitting      bool
	LastError     error

	store         Tracker
	ctx           context.Context
	log           *zap.Logger
	rng           *rand.Rand
	pulseInterval time.Duration

	addInput     textinput.Model
	commandInput textinput.Model
	helpModel    help.Model
	yearBar      progress.Model
	topTable     table.Model
	overviewPort viewport.Model
	pulseSpinner spinner.Model
}

type SwitchViewMsg struct {
	View View
}

type SetStatusMsg struct {
	Text    string
	IsError bool
}

type ClearStatusMsg struct{}

type AppErrorMsg struct {
	Err error
}

// PulseTickMsg advances the live consistency pulse. Ticks from an older
// generation are ignored.
type PulseTickMsg struct {
	Gen int
}

type SchedulerEventMsg struct {
	Event scheduler.Event
}

func NewModel(store Tracker, opts Options) Model {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.PulseInterval <= 0 {
		opts.PulseInterval = defaultPulseIv
	}
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m := Model{
		CurrentView:   ViewOverview,
		Theme:         model.ThemeCurrent,
		Scheduler:     opts.Scheduler,
		store:         store,
		ctx:           opts.Context,
		log:           opts.Logger,
		rng:           opts.Rand,
		pulseInterval: opts.PulseInterval,
		Keys: GlobalKeyMap{
			Overview: "1",
			Tasks:    "2",
			Insights: "3",
			Theme:    "t",
			Help:     "?",
			Quit:     "q",
		},
	}
	m.initBubbleComponents()
	m.refresh()
	return m
}

func (m *Model) initBubbleComponents() {
	m.addInput = textinput.New()
	m.addInput.Prompt = "add> "
	m.addInput.Placeholder = "task name"
	m.addInput.CharLimit = model.MaxNameLength
	m.addInput.Width = 42

	m.commandInput = textinput.New()
	m.commandInput.Prompt = "/"
	m.commandInput.CharLimit = 256
	m.commandInput.Width = 48

	m.helpModel = help.New()
	m.yearBar = progress.New(progress.WithDefaultGradient(), progress.WithWidth(40))

	cols := []table.Column{
		{Title: "Task", Width: 22},
		{Title: "Done", Width: 5},
		{Title: "Rate", Width: 5},
		{Title: "Streak", Width: 8},
	}
	m.topTable = table.New(table.WithColumns(cols), table.WithRows([]table.Row{}), table.WithHeight(analytics.DefaultTopTasks+1))

	m.overviewPort = viewport.New(76, 16)

	m.pulseSpinner = spinner.New()
	m.pulseSpinner.Spinner = spinner.Dot
}
