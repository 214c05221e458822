package commands

import (
	"errors"
	"testing"
	"time"

	"github.com/sandeepkv93/trackd/internal/model"
)

func TestParseSupportedCommands(t *testing.T) {
	cases := []struct {
		in       string
		typeWant Type
	}{
		{"/add Read 20 pages", TypeAdd},
		{"check 2 +3", TypeCheck},
		{"toggle task-1", TypeCheck},
		{"claim", TypeClaim},
		{"rm 1", TypeDelete},
		{"/delete task-9", TypeDelete},
		{"theme light", TypeTheme},
		{"theme", TypeTheme},
		{"logout", TypeReset},
	}

	for _, tc := range cases {
		cmd, err := Parse(tc.in)
		if err != nil {
			t.Fatalf("parse %q failed: %v", tc.in, err)
		}
		if cmd.Type != tc.typeWant {
			t.Fatalf("parse %q type = %s, want %s", tc.in, cmd.Type, tc.typeWant)
		}
	}
}

func TestParseArguments(t *testing.T) {
	cmd, _ := Parse("check 2")
	if cmd.Check.Task != "2" || cmd.Check.Day != "today" {
		t.Fatalf("unexpected check args %+v", cmd.Check)
	}
	cmd, _ = Parse("theme next")
	if cmd.Theme.Theme != "" {
		t.Fatalf("expected cycle request, got %+v", cmd.Theme)
	}
	cmd, _ = Parse("add    Walk   the dog  ")
	if cmd.Add.Name != "Walk the dog" {
		t.Fatalf("unexpected name %q", cmd.Add.Name)
	}
}

func TestParseRejectsBadInput(t *testing.T) {
	cases := map[string]ErrorCode{
		"":              ErrCodeEmptyInput,
		"/":             ErrCodeEmptyInput,
		"/unknown do x": ErrCodeUnknownCommand,
		"add":           ErrCodeInvalidArgument,
		"check":         ErrCodeInvalidArgument,
		"rm":            ErrCodeInvalidArgument,
		"theme neon":    ErrCodeInvalidArgument,
	}
	for in, code := range cases {
		_, err := Parse(in)
		var ce *CommandError
		if !errors.As(err, &ce) || ce.Code != code {
			t.Fatalf("parse %q: expected %s, got %v", in, code, err)
		}
	}
}

func TestParseDay(t *testing.T) {
	today := model.DayKey{Year: 2026, Month: time.October, Day: 16}
	cases := map[string]string{
		"today":      "2026-10-16",
		"":           "2026-10-16",
		"tomorrow":   "2026-10-17",
		"+16":        "2026-11-01",
		"2026-10-20": "2026-10-20",
	}
	for in, want := range cases {
		got, err := ParseDay(in, today)
		if err != nil {
			t.Fatalf("ParseDay(%q): %v", in, err)
		}
		if got.String() != want {
			t.Fatalf("ParseDay(%q) = %s, want %s", in, got, want)
		}
	}
	for _, bad := range []string{"+x", "-1", "+-2", "10/20"} {
		if _, err := ParseDay(bad, today); err == nil {
			t.Fatalf("ParseDay(%q) expected error", bad)
		}
	}
}

func TestExecuteDispatch(t *testing.T) {
	cmd, err := Parse("/add write docs")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	called := false
	res, err := Execute(cmd, Handlers{
		Add: func(a AddArgs) (Result, error) {
			called = true
			if a.Name != "write docs" {
				t.Fatalf("unexpected name: %q", a.Name)
			}
			return Result{Message: "ok"}, nil
		},
	})
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !called || res.Message != "ok" {
		t.Fatalf("dispatch failed, called=%v res=%+v", called, res)
	}
}

func TestExecuteMissingHandler(t *testing.T) {
	cmd, err := Parse("claim")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Execute(cmd, Handlers{})
	if err == nil {
		t.Fatal("expected error")
	}
	var ce *CommandError
	if !errors.As(err, &ce) || ce.Code != ErrCodeHandlerMissing {
		t.Fatalf("expected missing handler error, got %v", err)
	}
}
