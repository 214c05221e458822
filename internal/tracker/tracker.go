// Package tracker owns the canonical task list, profile and theme. Every
// operation re-anchors the windows to the current day, refreshes the
// mega-streak, applies the change and writes the documents back.
package tracker

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sandeepkv93/trackd/internal/analytics"
	"github.com/sandeepkv93/trackd/internal/model"
	"github.com/sandeepkv93/trackd/internal/rewards"
	"github.com/sandeepkv93/trackd/internal/storage"
)

var (
	ErrTaskNotFound   = errors.New("tracker: task not found")
	ErrDayNotInWindow = errors.New("tracker: day is outside the 30-day window")
	ErrInvalidTheme   = errors.New("tracker: invalid theme")
)

type Clock func() time.Time

type Options struct {
	Logger   *zap.Logger
	Clock    Clock
	TopTasks int
}

type TaskView struct {
	Task   model.Task
	Streak model.Streak
}

type ProfileView struct {
	Profile   model.Profile
	TotalDone int
	Unclaimed int
}

type ClaimResult struct {
	Claimed int
	Profile ProfileView
}

type Overview struct {
	Today        model.DayKey
	TotalTasks   int
	TotalDone    int
	DoneToday    int
	Wallet       int
	Unclaimed    int
	Active       int
	Broken       int
	MegaStreak   int
	DayOfYear    int
	DaysInYear   int
	YearProgress float64
	Theme        model.Theme
}

type Store struct {
	mu       sync.Mutex
	repo     storage.Repository
	log      *zap.Logger
	now      Clock
	topTasks int

	loaded  bool
	tasks   []model.Task
	profile model.Profile
	theme   model.Theme

	savedTasks   []byte
	savedProfile []byte
}

func New(repo storage.Repository, opts Options) *Store {
	s := &Store{
		repo:     repo,
		log:      opts.Logger,
		now:      opts.Clock,
		topTasks: opts.TopTasks,
		theme:    model.ThemeCurrent,
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.topTasks <= 0 {
		s.topTasks = analytics.DefaultTopTasks
	}
	return s
}

// Now reads the store's clock.
func (s *Store) Now() time.Time {
	return s.now()
}

// Load reads all documents from the repository, replacing any cached state.
func (s *Store) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = false
	_, err := s.begin(ctx)
	return err
}

func (s *Store) load(ctx context.Context, now time.Time) error {
	loc := now.Location()

	tasks, err := s.readTasks(ctx, now)
	if err != nil {
		return err
	}
	profile, err := s.readProfile(ctx, loc)
	if err != nil {
		return err
	}
	theme := model.ThemeCurrent
	doc, err := s.repo.GetDocument(ctx, storage.KeyTheme)
	switch {
	case err == nil:
		theme = decodeTheme(doc.Body)
	case !errors.Is(err, storage.ErrNotFound):
		return fmt.Errorf("read theme: %w", err)
	}

	s.tasks = tasks
	s.profile = profile
	s.theme = theme
	s.savedTasks = nil
	s.savedProfile = nil
	s.loaded = true
	return nil
}

func (s *Store) readTasks(ctx context.Context, now time.Time) ([]model.Task, error) {
	doc, err := s.repo.GetDocument(ctx, storage.KeyTasks)
	if errors.Is(err, storage.ErrNotFound) {
		s.log.Info("no tasks document, seeding defaults")
		return seedTasks(now), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	tasks, err := decodeTasks(doc.Body, now.Location())
	if err != nil {
		s.log.Warn("tasks document unreadable, seeding defaults", zap.Error(err))
		return seedTasks(now), nil
	}
	return s.validTasks(model.NormalizeAll(tasks, now)), nil
}

// validTasks drops tasks that still fail validation after normalization.
func (s *Store) validTasks(tasks []model.Task) []model.Task {
	out := tasks[:0]
	for _, t := range tasks {
		if err := t.Validate(); err != nil {
			s.log.Warn("dropping invalid task", zap.String("task_id", t.ID), zap.Error(err))
			continue
		}
		out = append(out, t)
	}
	return out
}

func (s *Store) readProfile(ctx context.Context, loc *time.Location) (model.Profile, error) {
	doc, err := s.repo.GetDocument(ctx, storage.KeyProfile)
	if errors.Is(err, storage.ErrNotFound) {
		return model.Profile{}, nil
	}
	if err != nil {
		return model.Profile{}, fmt.Errorf("read profile: %w", err)
	}
	p, err := decodeProfile(doc.Body, loc)
	if err != nil {
		s.log.Warn("profile document unreadable, using zero profile", zap.Error(err))
		return model.Profile{}, nil
	}
	return p, nil
}

// begin loads on first use, then re-anchors every window and refreshes the
// mega-streak for the current instant. Callers hold s.mu.
func (s *Store) begin(ctx context.Context) (time.Time, error) {
	now := s.now()
	if !s.loaded {
		if err := s.load(ctx, now); err != nil {
			return now, err
		}
	}
	s.tasks = model.NormalizeAll(s.tasks, now)
	s.profile = rewards.UpdateMegaStreak(s.tasks, s.profile, now)
	return now, nil
}

// flush writes the tasks and profile documents when they changed since the
// last write or load.
func (s *Store) flush(ctx context.Context, now time.Time) error {
	tasksBody, err := encodeTasks(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if !bytes.Equal(tasksBody, s.savedTasks) {
		if err := s.repo.PutDocument(ctx, storage.Document{Key: storage.KeyTasks, Body: tasksBody, UpdatedAt: now}); err != nil {
			return fmt.Errorf("write tasks: %w", err)
		}
		s.savedTasks = tasksBody
	}

	profileBody, err := encodeProfile(s.profile)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	if !bytes.Equal(profileBody, s.savedProfile) {
		if err := s.repo.PutDocument(ctx, storage.Document{Key: storage.KeyProfile, Body: profileBody, UpdatedAt: now}); err != nil {
			return fmt.Errorf("write profile: %w", err)
		}
		s.savedProfile = profileBody
	}
	return nil
}

// run is the read-modify-write cycle shared by every operation.
func (s *Store) run(ctx context.Context, fn func(now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now, err := s.begin(ctx)
	if err != nil {
		return err
	}
	if fn != nil {
		if err := fn(now); err != nil {
			if flushErr := s.flush(ctx, now); flushErr != nil {
				s.log.Error("flush after failed operation", zap.Error(flushErr))
			}
			return err
		}
	}
	return s.flush(ctx, now)
}

func (s *Store) view(t model.Task, now time.Time) TaskView {
	return TaskView{Task: t.Clone(), Streak: model.StreakInfo(t, now)}
}

func (s *Store) profileView() ProfileView {
	return ProfileView{
		Profile:   s.profile.Clone(),
		TotalDone: rewards.TotalDone(s.tasks),
		Unclaimed: rewards.Unclaimed(s.tasks, s.profile),
	}
}

func (s *Store) indexOf(id string) int {
	id = strings.TrimSpace(id)
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) ListTasks(ctx context.Context) ([]TaskView, error) {
	var out []TaskView
	err := s.run(ctx, func(now time.Time) error {
		out = make([]TaskView, 0, len(s.tasks))
		for _, t := range s.tasks {
			out = append(out, s.view(t, now))
		}
		return nil
	})
	return out, err
}

// FindTask resolves ref as a task id or a 1-based position in ListTasks order.
func (s *Store) FindTask(ctx context.Context, ref string) (TaskView, error) {
	var out TaskView
	err := s.run(ctx, func(now time.Time) error {
		ref = strings.TrimSpace(ref)
		if i := s.indexOf(ref); i >= 0 {
			out = s.view(s.tasks[i], now)
			return nil
		}
		if n, err := strconv.Atoi(ref); err == nil && n >= 1 && n <= len(s.tasks) {
			out = s.view(s.tasks[n-1], now)
			return nil
		}
		return fmt.Errorf("%w: %q", ErrTaskNotFound, ref)
	})
	return out, err
}

// AddTask appends a task named name. An empty name is a no-op reported with
// ok=false.
func (s *Store) AddTask(ctx context.Context, name string) (TaskView, bool, error) {
	var (
		out TaskView
		ok  bool
	)
	err := s.run(ctx, func(now time.Time) error {
		t, created := model.NewTask(name, now)
		if !created {
			return nil
		}
		s.tasks = append(s.tasks, t)
		s.profile = rewards.UpdateMegaStreak(s.tasks, s.profile, now)
		out, ok = s.view(t, now), true
		s.log.Info("task added", zap.String("task_id", t.ID), zap.String("name", t.Name))
		return nil
	})
	return out, ok, err
}

// DeleteTask removes the task with id. Without confirm nothing happens and
// deleted is false.
func (s *Store) DeleteTask(ctx context.Context, id string, confirm bool) (bool, error) {
	var deleted bool
	err := s.run(ctx, func(now time.Time) error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
		}
		if !confirm {
			return nil
		}
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
		s.profile = rewards.UpdateMegaStreak(s.tasks, s.profile, now)
		deleted = true
		s.log.Info("task deleted", zap.String("task_id", id))
		return nil
	})
	return deleted, err
}

// ToggleDay flips the done state of one slot and returns the updated task.
func (s *Store) ToggleDay(ctx context.Context, id string, day model.DayKey) (TaskView, error) {
	var out TaskView
	err := s.run(ctx, func(now time.Time) error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
		}
		t := &s.tasks[i]
		if !t.SetDone(day, !t.DoneOn(day), now) {
			return fmt.Errorf("%w: %s", ErrDayNotInWindow, day)
		}
		s.profile = rewards.UpdateMegaStreak(s.tasks, s.profile, now)
		out = s.view(*t, now)
		s.log.Debug("day toggled",
			zap.String("task_id", t.ID),
			zap.Stringer("day", day),
			zap.Bool("done", t.DoneOn(day)),
		)
		return nil
	})
	return out, err
}

func (s *Store) ClaimCoins(ctx context.Context) (ClaimResult, error) {
	var out ClaimResult
	err := s.run(ctx, func(time.Time) error {
		p, claimed := rewards.Claim(s.tasks, s.profile)
		s.profile = p
		out = ClaimResult{Claimed: claimed, Profile: s.profileView()}
		if claimed > 0 {
			s.log.Info("coins claimed", zap.Int("claimed", claimed), zap.Int("wallet", p.Wallet))
		}
		return nil
	})
	return out, err
}

func (s *Store) GetStreak(ctx context.Context, id string) (model.Streak, error) {
	var out model.Streak
	err := s.run(ctx, func(now time.Time) error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %q", ErrTaskNotFound, id)
		}
		out = model.StreakInfo(s.tasks[i], now)
		return nil
	})
	return out, err
}

func (s *Store) GetAnalyticsSnapshot(ctx context.Context) (analytics.Snapshot, error) {
	var out analytics.Snapshot
	err := s.run(ctx, func(now time.Time) error {
		out = analytics.Build(s.tasks, now, s.topTasks)
		return nil
	})
	return out, err
}

func (s *Store) GetProfile(ctx context.Context) (ProfileView, error) {
	var out ProfileView
	err := s.run(ctx, func(time.Time) error {
		out = s.profileView()
		return nil
	})
	return out, err
}

func (s *Store) Overview(ctx context.Context) (Overview, error) {
	var out Overview
	err := s.run(ctx, func(now time.Time) error {
		today := model.DayKeyOf(now)
		out = Overview{
			Today:        today,
			TotalTasks:   len(s.tasks),
			TotalDone:    rewards.TotalDone(s.tasks),
			Wallet:       s.profile.Wallet,
			Unclaimed:    rewards.Unclaimed(s.tasks, s.profile),
			MegaStreak:   s.profile.MegaStreak,
			DayOfYear:    now.YearDay(),
			DaysInYear:   model.DaysInYear(now.Year()),
			YearProgress: model.YearProgress(now),
			Theme:        s.theme,
		}
		for _, t := range s.tasks {
			if t.DoneOn(today) {
				out.DoneToday++
			}
			switch model.StreakInfo(t, now).State {
			case model.StreakActive:
				out.Active++
			case model.StreakBroken:
				out.Broken++
			}
		}
		return nil
	})
	return out, err
}

func (s *Store) Theme(ctx context.Context) (model.Theme, error) {
	var out model.Theme
	err := s.run(ctx, func(time.Time) error {
		out = s.theme
		return nil
	})
	return out, err
}

func (s *Store) SetTheme(ctx context.Context, theme model.Theme) error {
	if !theme.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidTheme, theme)
	}
	return s.run(ctx, func(now time.Time) error {
		return s.writeTheme(ctx, theme, now)
	})
}

// CycleTheme advances current -> light -> black -> current.
func (s *Store) CycleTheme(ctx context.Context) (model.Theme, error) {
	var out model.Theme
	err := s.run(ctx, func(now time.Time) error {
		out = s.theme.Next()
		return s.writeTheme(ctx, out, now)
	})
	return out, err
}

func (s *Store) writeTheme(ctx context.Context, theme model.Theme, now time.Time) error {
	body, err := encodeTheme(theme)
	if err != nil {
		return fmt.Errorf("encode theme: %w", err)
	}
	if err := s.repo.PutDocument(ctx, storage.Document{Key: storage.KeyTheme, Body: body, UpdatedAt: now}); err != nil {
		return fmt.Errorf("write theme: %w", err)
	}
	s.theme = theme
	return nil
}

// Reset deletes the tasks and profile documents. The theme survives. The
// next operation starts over from the seed tasks and a zero profile.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, key := range []string{storage.KeyTasks, storage.KeyProfile} {
		if err := s.repo.DeleteDocument(ctx, key); err != nil && !errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("delete %s: %w", key, err)
		}
	}
	s.loaded = false
	s.tasks = nil
	s.profile = model.Profile{}
	s.savedTasks = nil
	s.savedProfile = nil
	s.log.Info("tracker state reset")
	return nil
}
