package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/amterp/cards/internal/config"
	kanerr "github.com/amterp/cards/internal/errors"
	"github.com/amterp/cards/internal/model"
	"github.com/amterp/cards/internal/prompt"
	"github.com/amterp/cards/internal/store"
	"github.com/amterp/cards/testutil"
	"github.com/google/go-cmp/cmp"
)

// scriptedPrompter answers prompts with canned values.
type scriptedPrompter struct {
	input   string
	confirm bool
	asked   []string
}

func (p *scriptedPrompter) Input(title string, defaultValue string) (string, error) {
	p.asked = append(p.asked, title)
	return p.input, nil
}

func (p *scriptedPrompter) Confirm(title string, defaultValue bool) (bool, error) {
	p.asked = append(p.asked, title)
	return p.confirm, nil
}

func newTestApp(t *testing.T, backend config.Backend) (*App, *bytes.Buffer) {
	t.Helper()
	out := &bytes.Buffer{}
	return &App{
		Settings: config.Settings{DBDir: testutil.TempDBDir(t), Backend: backend},
		Config:   store.NewConfigStoreAt(filepath.Join(t.TempDir(), "config.toml")),
		Prompter: &prompt.NoopPrompter{},
		Out:      out,
		ErrOut:   &bytes.Buffer{},
	}, out
}

func storedCards(t *testing.T, app *App) []*model.Card {
	t.Helper()
	cards, err := listCards(app, model.ListFilter{})
	if err != nil {
		t.Fatalf("listCards failed: %v", err)
	}
	return cards
}

func TestRunAdd(t *testing.T) {
	app, out := newTestApp(t, config.BackendJSON)

	if err := runAdd(app, "  do something  ", "brian"); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}
	if !strings.Contains(out.String(), "Added card 1") {
		t.Errorf("unexpected output: %q", out.String())
	}

	want := []*model.Card{{ID: 1, Summary: "do something", Owner: "brian", State: model.StateTodo}}
	if diff := cmp.Diff(want, storedCards(t, app)); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}
}

func TestRunAdd_NormalizesOwner(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)

	// "e" followed by a combining acute accent.
	if err := runAdd(app, "x", "Rene\u0301"); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}

	cards := storedCards(t, app)
	if len(cards) != 1 || cards[0].Owner != "Ren\u00e9" {
		t.Errorf("expected NFC owner, got %+v", cards)
	}
}

func TestRunAdd_PromptsForSummary(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)
	p := &scriptedPrompter{input: "from prompt"}
	app.Prompter = p

	if err := runAdd(app, "", ""); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}
	if len(p.asked) != 1 {
		t.Fatalf("expected one prompt, got %v", p.asked)
	}
	cards := storedCards(t, app)
	if len(cards) != 1 || cards[0].Summary != "from prompt" {
		t.Errorf("expected prompted summary, got %+v", cards)
	}
}

func TestRunAdd_NonInteractiveAllowsEmptySummary(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)

	if err := runAdd(app, "", ""); err != nil {
		t.Fatalf("runAdd failed: %v", err)
	}
	cards := storedCards(t, app)
	if len(cards) != 1 || cards[0].Summary != "" {
		t.Errorf("expected one card with empty summary, got %+v", cards)
	}
}

func TestWorkflow(t *testing.T) {
	for _, backend := range []config.Backend{config.BackendJSON, config.BackendSQLite} {
		t.Run(string(backend), func(t *testing.T) {
			app, out := newTestApp(t, backend)

			mustRun(t, runAdd(app, "first", "alice"))
			mustRun(t, runAdd(app, "second", ""))
			mustRun(t, runStart(app, 1))
			mustRun(t, runFinish(app, 2))
			mustRun(t, runUpdate(app, 2, "bob", "renamed", "", false))

			out.Reset()
			mustRun(t, runCount(app, false))
			if strings.TrimSpace(out.String()) != "2" {
				t.Errorf("count output = %q, want 2", out.String())
			}

			want := []*model.Card{
				{ID: 1, Summary: "first", Owner: "alice", State: model.StateInProg},
				{ID: 2, Summary: "renamed", Owner: "bob", State: model.StateDone},
			}
			if diff := cmp.Diff(want, storedCards(t, app)); diff != "" {
				t.Errorf("cards mismatch (-want +got):\n%s", diff)
			}

			mustRun(t, runDelete(app, 1, false, false))
			out.Reset()
			mustRun(t, runCount(app, false))
			if strings.TrimSpace(out.String()) != "1" {
				t.Errorf("count output = %q, want 1", out.String())
			}
		})
	}
}

func mustRun(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
}

func TestRunUpdate_Unassign(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)
	mustRun(t, runAdd(app, "x", "alice"))

	mustRun(t, runUpdate(app, 1, "", "", "", true))

	cards := storedCards(t, app)
	if cards[0].Owner != "" {
		t.Errorf("expected owner cleared, got %q", cards[0].Owner)
	}
	if cards[0].Summary != "x" {
		t.Errorf("summary should be untouched, got %q", cards[0].Summary)
	}
}

func TestRunUpdate_State(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)
	mustRun(t, runAdd(app, "x", "alice"))
	mustRun(t, runFinish(app, 1))

	mustRun(t, runUpdate(app, 1, "", "", " todo ", false))

	want := []*model.Card{{ID: 1, Summary: "x", Owner: "alice", State: model.StateTodo}}
	if diff := cmp.Diff(want, storedCards(t, app)); diff != "" {
		t.Errorf("cards mismatch (-want +got):\n%s", diff)
	}

	if err := runUpdate(app, 1, "", "", "blocked", false); !kanerr.IsInvalidState(err) {
		t.Errorf("expected InvalidState, got %v", err)
	}
}

func TestRunUpdate_ConflictingFlags(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)
	mustRun(t, runAdd(app, "x", "alice"))

	if err := runUpdate(app, 1, "bob", "", "", true); err == nil {
		t.Fatal("expected error for --owner with --unassign")
	}
}

func TestRunUpdate_NothingGiven(t *testing.T) {
	app, out := newTestApp(t, config.BackendJSON)
	mustRun(t, runAdd(app, "x", "alice"))
	out.Reset()

	mustRun(t, runUpdate(app, 1, "", "", "", false))
	if !strings.Contains(out.String(), "No changes made") {
		t.Errorf("unexpected output: %q", out.String())
	}

	err := runUpdate(app, 42, "", "", "", false)
	if !kanerr.IsInvalidCardId(err) {
		t.Errorf("expected InvalidCardId for unknown id, got %v", err)
	}
}

func TestUnknownIDErrors(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)

	tests := []struct {
		name string
		run  func() error
	}{
		{"show", func() error { return runShow(app, 9, false) }},
		{"update", func() error { return runUpdate(app, 9, "x", "", "", false) }},
		{"start", func() error { return runStart(app, 9) }},
		{"finish", func() error { return runFinish(app, 9) }},
		{"delete", func() error { return runDelete(app, 9, false, false) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.run(); !kanerr.IsInvalidCardId(err) {
				t.Errorf("expected InvalidCardId, got %v", err)
			}
		})
	}
}

func TestRunList_Filters(t *testing.T) {
	app, out := newTestApp(t, config.BackendJSON)
	mustRun(t, runAdd(app, "a", "alice"))
	mustRun(t, runAdd(app, "b", "bob"))
	mustRun(t, runAdd(app, "c", "alice"))
	mustRun(t, runFinish(app, 3))

	tests := []struct {
		name    string
		owner   string
		state   string
		wantIDs []int
	}{
		{"no filter", "", "", []int{1, 2, 3}},
		{"owner", "alice", "", []int{1, 3}},
		{"state", "", "todo", []int{1, 2}},
		{"owner and state", "alice", "done", []int{3}},
		{"no match", "carol", "", []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			if err := runList(app, tt.owner, tt.state, true, false); err != nil {
				t.Fatalf("runList failed: %v", err)
			}

			var got ListOutput
			if err := json.Unmarshal(out.Bytes(), &got); err != nil {
				t.Fatalf("invalid JSON %q: %v", out.String(), err)
			}
			ids := make([]int, 0, len(got.Cards))
			for _, c := range got.Cards {
				ids = append(ids, c.ID)
			}
			if diff := cmp.Diff(tt.wantIDs, ids); diff != "" {
				t.Errorf("ids mismatch (-want +got):\n%s", diff)
			}
			if got.Count != len(tt.wantIDs) {
				t.Errorf("count = %d, want %d", got.Count, len(tt.wantIDs))
			}
		})
	}
}

func TestRunList_InvalidState(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)

	if err := runList(app, "", "blocked", false, false); !kanerr.IsInvalidState(err) {
		t.Errorf("expected InvalidState, got %v", err)
	}
}

func TestRunList_Table(t *testing.T) {
	app, out := newTestApp(t, config.BackendJSON)

	mustRun(t, runList(app, "", "", false, false))
	if !strings.Contains(out.String(), "No cards found") {
		t.Errorf("unexpected empty output: %q", out.String())
	}

	mustRun(t, runAdd(app, "write tests", "okken"))
	out.Reset()
	mustRun(t, runList(app, "", "", false, false))

	for _, want := range []string{"ID", "State", "Owner", "Summary", "write tests", "okken", "todo"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("table missing %q:\n%s", want, out.String())
		}
	}
}

func TestRunCount_JsonIncludesLastID(t *testing.T) {
	app, out := newTestApp(t, config.BackendSQLite)
	mustRun(t, runAdd(app, "a", ""))
	mustRun(t, runAdd(app, "b", ""))
	mustRun(t, runDelete(app, 2, false, false))
	out.Reset()

	mustRun(t, runCount(app, true))

	var got CountOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	if diff := cmp.Diff(CountOutput{Count: 1, LastID: 2}, got); diff != "" {
		t.Errorf("count mismatch (-want +got):\n%s", diff)
	}
}

func TestRunShow_Json(t *testing.T) {
	app, out := newTestApp(t, config.BackendJSON)
	mustRun(t, runAdd(app, "x", ""))
	out.Reset()

	mustRun(t, runShow(app, 1, true))

	var got CardOutput
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out.String(), err)
	}
	want := cardJson{ID: 1, Summary: "x", Owner: "", State: "todo"}
	if diff := cmp.Diff(want, got.Card); diff != "" {
		t.Errorf("card mismatch (-want +got):\n%s", diff)
	}
}

func TestRunDelete_Arguments(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)

	if err := runDelete(app, noCardID, false, false); err == nil {
		t.Error("expected error when neither id nor --all is given")
	}
	if err := runDelete(app, 1, true, false); err == nil {
		t.Error("expected error when both id and --all are given")
	}
}

func TestRunDeleteAll(t *testing.T) {
	t.Run("non-interactive requires force", func(t *testing.T) {
		app, _ := newTestApp(t, config.BackendJSON)
		mustRun(t, runAdd(app, "x", ""))

		err := runDelete(app, noCardID, true, false)
		if err == nil || !strings.Contains(err.Error(), "--force") {
			t.Fatalf("expected --force error, got %v", err)
		}
		if n := len(storedCards(t, app)); n != 1 {
			t.Errorf("card should survive, got %d cards", n)
		}
	})

	t.Run("declined confirmation keeps cards", func(t *testing.T) {
		app, out := newTestApp(t, config.BackendJSON)
		app.Prompter = &scriptedPrompter{confirm: false}
		mustRun(t, runAdd(app, "x", ""))

		mustRun(t, runDelete(app, noCardID, true, false))
		if !strings.Contains(out.String(), "Cancelled") {
			t.Errorf("unexpected output: %q", out.String())
		}
		if n := len(storedCards(t, app)); n != 1 {
			t.Errorf("card should survive, got %d cards", n)
		}
	})

	t.Run("force deletes and keeps counter", func(t *testing.T) {
		app, out := newTestApp(t, config.BackendSQLite)
		mustRun(t, runAdd(app, "x", ""))
		mustRun(t, runAdd(app, "y", ""))

		mustRun(t, runDelete(app, noCardID, true, true))
		if n := len(storedCards(t, app)); n != 0 {
			t.Errorf("expected no cards, got %d", n)
		}

		out.Reset()
		mustRun(t, runAdd(app, "z", ""))
		if !strings.Contains(out.String(), "Added card 3") {
			t.Errorf("ids must not be reused, got %q", out.String())
		}
	})
}

func TestRunConfig_DoesNotCreateStorage(t *testing.T) {
	app, out := newTestApp(t, config.BackendJSON)

	mustRun(t, runConfig(app, "", ""))
	if strings.TrimSpace(out.String()) != app.Settings.DBDir {
		t.Errorf("config output = %q, want %q", out.String(), app.Settings.DBDir)
	}

	if _, err := os.Stat(app.Settings.DBDir); !os.IsNotExist(err) {
		t.Errorf("config should not create %s, stat err = %v", app.Settings.DBDir, err)
	}
}

func TestRunConfig_SavesDefaults(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)
	dir := filepath.Join(t.TempDir(), "elsewhere")

	mustRun(t, runConfig(app, dir, "sqlite"))

	cfg, err := app.Config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDir != dir || cfg.Backend != "sqlite" {
		t.Errorf("unexpected saved config: %+v", cfg)
	}

	// Saved values feed the next resolution.
	settings, err := config.Resolve(config.Overrides{}, config.Env{}, cfg)
	if err != nil {
		t.Fatalf("Resolve failed: %v", err)
	}
	if settings.DBDir != dir || settings.Backend != config.BackendSQLite {
		t.Errorf("unexpected settings: %+v", settings)
	}

	// Setting one value keeps the other.
	mustRun(t, runConfig(app, "", "json"))
	cfg, err = app.Config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DBDir != dir || cfg.Backend != "json" {
		t.Errorf("unexpected saved config: %+v", cfg)
	}
}

func TestRunConfig_RejectsUnknownBackend(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)

	if err := runConfig(app, "", "postgres"); err == nil {
		t.Fatal("expected error for unknown backend")
	}
	cfg, err := app.Config.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "" {
		t.Errorf("nothing should be saved, got %+v", cfg)
	}
}

func TestDispatch_DefaultsToList(t *testing.T) {
	app, out := newTestApp(t, config.BackendJSON)
	mustRun(t, runAdd(app, "visible", ""))
	out.Reset()

	f := false
	ctx := &CommandContext{
		AddUsed: &f, ListUsed: &f, ShowUsed: &f, CountUsed: &f, UpdateUsed: &f,
		StartUsed: &f, FinishUsed: &f, DeleteUsed: &f, ConfigUsed: &f, VersionUsed: &f,
	}
	mustRun(t, dispatch(app, ctx))

	if !strings.Contains(out.String(), "visible") {
		t.Errorf("expected listing, got %q", out.String())
	}
}

func TestOwnerArg(t *testing.T) {
	app, _ := newTestApp(t, config.BackendJSON)
	app.Env = config.Env{User: "me"}

	tests := []struct {
		name    string
		owner   string
		mine    bool
		want    string
		wantErr bool
	}{
		{name: "explicit owner", owner: "bob", want: "bob"},
		{name: "mine", mine: true, want: "me"},
		{name: "neither", want: ""},
		{name: "both", owner: "bob", mine: true, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ownerArg(app, tt.owner, tt.mine)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("ownerArg() = %q, want %q", got, tt.want)
			}
		})
	}
}
