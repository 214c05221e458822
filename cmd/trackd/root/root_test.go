package root

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
)

func setupEnv(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("TRACKD_BACKEND", "file")
	t.Setenv("TRACKD_DATA_PATH", filepath.Join(dir, "docs"))
	t.Setenv("TRACKD_LOG_FILE", filepath.Join(dir, "trackd.log"))
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(t.Context()); err != nil {
		t.Fatalf("trackd %v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestStatusShowsSeedTasks(t *testing.T) {
	setupEnv(t)
	out := run(t, "status")
	for _, want := range []string{"Morning Workout", "Read 20 Pages", "No Sugar Day", "wallet: 0"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in status output:\n%s", want, out)
		}
	}
}

func TestCheckClaimFlow(t *testing.T) {
	setupEnv(t)
	if out := run(t, "check", "2"); !strings.Contains(out, "Read 20 Pages") || !strings.Contains(out, "done") {
		t.Fatalf("unexpected check output: %s", out)
	}
	if out := run(t, "claim"); !strings.Contains(out, "claimed 1 coin(s), wallet 1") {
		t.Fatalf("unexpected claim output: %s", out)
	}
	if out := run(t, "claim"); !strings.Contains(out, "nothing to claim") {
		t.Fatalf("expected no-op claim, got: %s", out)
	}
	if out := run(t, "status"); !strings.Contains(out, "wallet: 1") || !strings.Contains(out, "[x] Read 20 Pages") {
		t.Fatalf("state not persisted across runs: %s", out)
	}
}

func TestAddAndRemove(t *testing.T) {
	setupEnv(t)
	if out := run(t, "add", "Drink", "Water"); !strings.Contains(out, "added Drink Water") {
		t.Fatalf("unexpected add output: %s", out)
	}
	if out := run(t, "rm", "4"); !strings.Contains(out, "pass --yes") {
		t.Fatalf("expected confirmation hint, got: %s", out)
	}
	if out := run(t, "rm", "4", "--yes"); !strings.Contains(out, "deleted Drink Water") {
		t.Fatalf("unexpected rm output: %s", out)
	}
	if out := run(t, "status"); strings.Contains(out, "Drink Water") {
		t.Fatalf("task still listed: %s", out)
	}
}

func TestCheckRejectsBadDay(t *testing.T) {
	setupEnv(t)
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"check", "1", "yesterday"})
	if err := cmd.ExecuteContext(t.Context()); err == nil {
		t.Fatal("expected error for unknown day")
	}
}

func TestResetNeedsYes(t *testing.T) {
	setupEnv(t)
	run(t, "add", "Extra")
	if out := run(t, "reset"); !strings.Contains(out, "pass --yes") {
		t.Fatalf("expected confirmation hint, got: %s", out)
	}
	run(t, "theme", "black")
	run(t, "reset", "--yes")
	out := run(t, "status")
	if strings.Contains(out, "Extra") || !strings.Contains(out, "Morning Workout") {
		t.Fatalf("expected reseeded tasks after reset: %s", out)
	}
	if out := run(t, "theme", "black"); !strings.Contains(out, "theme: Black") {
		t.Fatalf("unexpected theme output: %s", out)
	}
}

func TestDBInfoListsDocuments(t *testing.T) {
	setupEnv(t)
	run(t, "status")
	out := run(t, "db", "info", "--prefix", "trackio.tasks")
	if !strings.Contains(out, "backend: file") || !strings.Contains(out, "schema: n/a") {
		t.Fatalf("unexpected db info header:\n%s", out)
	}
	if !strings.Contains(out, "trackio.tasks.v2") || strings.Contains(out, "trackio.profile.v1") {
		t.Fatalf("prefix filter not applied:\n%s", out)
	}

	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"db", "rollback", "--yes"})
	if err := cmd.ExecuteContext(t.Context()); err == nil || !strings.Contains(err.Error(), "no schema") {
		t.Fatalf("expected file backend rollback to fail, got %v", err)
	}
}

func TestDBSchemaOnSQLite(t *testing.T) {
	setupEnv(t)
	t.Setenv("TRACKD_BACKEND", "sqlite")
	t.Setenv("TRACKD_DATA_PATH", filepath.Join(t.TempDir(), "trackd.db"))

	run(t, "add", "Stretch")
	out := run(t, "db", "info")
	for _, want := range []string{"backend: sqlite", "schema: 0001_documents", "trackio.tasks.v2", "trackio.profile.v1"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in db info:\n%s", want, out)
		}
	}
	if out := run(t, "db", "info", "--limit", "1", "--offset", "1"); strings.Contains(out, "trackio.profile.v1") {
		t.Fatalf("expected first document skipped:\n%s", out)
	}

	if out := run(t, "db", "rollback"); !strings.Contains(out, "pass --yes") {
		t.Fatalf("expected confirmation hint, got: %s", out)
	}
	if out := run(t, "db", "rollback", "--yes"); !strings.Contains(out, "schema rolled back") {
		t.Fatalf("unexpected rollback output: %s", out)
	}
	if out := run(t, "status"); strings.Contains(out, "Stretch") || !strings.Contains(out, "Morning Workout") {
		t.Fatalf("expected a fresh schema with seed tasks after rollback:\n%s", out)
	}
}
