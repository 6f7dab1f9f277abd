package dispatch

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"quimiview/internal/elements"
	"quimiview/internal/state"
)

func testDispatcher(t *testing.T) (*Dispatcher, *state.Holder) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "elements.json")
	content := `{"elements": [
		{"symbol": "Na", "name": "Sodium", "number": 11},
		{"symbol": "Fe", "name": "Iron", "number": 26}
	]}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	db := elements.Load(path, logger)
	holder := state.NewHolder()
	return New(db, holder, logger), holder
}

func TestHandleResolvesElementCaseInsensitively(t *testing.T) {
	d, holder := testDispatcher(t)

	d.Handle(map[string]any{"element": "na"})

	rec, ok := holder.Get()
	if !ok || rec.Name != "Sodium" {
		t.Fatalf("current element = %v, %v; want Sodium", rec, ok)
	}
}

func TestHandleFallsBackToSymbolKey(t *testing.T) {
	d, holder := testDispatcher(t)

	d.Handle(map[string]any{"symbol": "FE"})

	rec, ok := holder.Get()
	if !ok || rec.Name != "Iron" {
		t.Fatalf("current element = %v, %v; want Iron", rec, ok)
	}
}

func TestHandleEmptyElementFallsThrough(t *testing.T) {
	d, holder := testDispatcher(t)

	d.Handle(map[string]any{"element": "", "symbol": "Na"})

	rec, ok := holder.Get()
	if !ok || rec.Name != "Sodium" {
		t.Fatalf("current element = %v, %v; want Sodium via symbol fallback", rec, ok)
	}
}

func TestHandleResolvesByName(t *testing.T) {
	d, holder := testDispatcher(t)

	d.Handle(map[string]any{"element": "sodium"})

	rec, ok := holder.Get()
	if !ok || rec.Symbol != "Na" {
		t.Fatalf("current element = %v, %v; want Na via name lookup", rec, ok)
	}
}

func TestHandleUnknownIdentifierClearsState(t *testing.T) {
	d, holder := testDispatcher(t)

	d.Handle(map[string]any{"element": "Na"})
	d.Handle(map[string]any{"symbol": "Xx"})

	if _, ok := holder.Get(); ok {
		t.Fatal("unknown identifier should clear the current element")
	}
}

func TestHandleMissingIdentifierLeavesState(t *testing.T) {
	d, holder := testDispatcher(t)

	d.Handle(map[string]any{"element": "Na"})
	d.Handle(map[string]any{"mode": "setup"})

	rec, ok := holder.Get()
	if !ok || rec.Name != "Sodium" {
		t.Fatal("instruction without identifier must not change the current element")
	}
}

func TestIdentifierPreference(t *testing.T) {
	inst := ParseInstruction(map[string]any{"element": "Na", "symbol": "Fe"})
	if inst.Identifier() != "Na" {
		t.Fatalf("Identifier() = %q, want element key to win", inst.Identifier())
	}
	inst = ParseInstruction(map[string]any{"symbol": 42})
	if inst.Identifier() != "" {
		t.Fatalf("Identifier() = %q, want empty for non-string key", inst.Identifier())
	}
}
