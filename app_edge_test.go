package main

import (
	"strings"
	"testing"

	"github.com/chazu/contour/pkg/config"
)

func TestE2EEmptySourceExtended(t *testing.T) {
	result := newTestApp(false).Evaluate("")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for empty source, got %d", len(result.Errors))
	}
	if len(result.Warnings) != 0 {
		t.Errorf("expected 0 warnings for empty source, got %d", len(result.Warnings))
	}
	// Slices must be non-nil so JSON serializes them as [] rather than null.
	if result.Meshes == nil {
		t.Error("Meshes should be non-nil empty slice, got nil")
	}
	if result.Errors == nil {
		t.Error("Errors should be non-nil empty slice, got nil")
	}
	if result.Warnings == nil {
		t.Error("Warnings should be non-nil empty slice, got nil")
	}
}

func TestE2ESyntaxErrorWithLineInfo(t *testing.T) {
	source := "(+ 1 2)\n(circle :at (vec2 0 0) :radius 1"
	result := newTestApp(false).Evaluate(source)

	if len(result.Errors) == 0 {
		t.Fatal("expected at least one eval error for unmatched parens")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on syntax error, got %d", len(result.Meshes))
	}
	e := result.Errors[0]
	if e.Message == "" {
		t.Error("syntax error should have a non-empty message")
	}
	t.Logf("syntax error: line=%d, col=%d, message=%q", e.Line, e.Col, e.Message)
}

func TestE2EUndefinedSymbol(t *testing.T) {
	result := newTestApp(false).Evaluate(`(circle :at (vec2 0 0) :radius undefined-radius)`)

	if len(result.Errors) == 0 {
		t.Fatal("expected an eval error for an undefined symbol")
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes on error, got %d", len(result.Meshes))
	}
}

func TestE2ENegativeRadius(t *testing.T) {
	result := newTestApp(false).Evaluate(`(square :at (vec2 0 0) :radius -0.5)`)

	if len(result.Errors) == 0 {
		t.Fatal("expected an eval error for a negative radius")
	}
	if !strings.Contains(result.Errors[0].Message, "negative") {
		t.Errorf("unexpected message: %q", result.Errors[0].Message)
	}
}

func TestE2EEditOutsideMapWarns(t *testing.T) {
	source := `
(circle :at (vec2 0.5 0.5) :radius 0.2)
(circle :at (vec2 9 9) :radius 0.2)
`
	result := newTestApp(false).Evaluate(source)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(result.Warnings))
	}
	if !strings.Contains(result.Warnings[0].Message, "edit 2") {
		t.Errorf("warning should name the second edit, got %q", result.Warnings[0].Message)
	}
	if len(result.Meshes) != 1 {
		t.Errorf("expected 1 mesh, got %d", len(result.Meshes))
	}
}

func TestE2EClearEverything(t *testing.T) {
	source := `
(circle :at (vec2 0 0) :radius 0.8)
(square :clear :at (vec2 0 0) :radius 1)
`
	result := newTestApp(true).Evaluate(source)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes after clearing the map, got %d", len(result.Meshes))
	}
}

func TestE2ERapidEvaluation(t *testing.T) {
	// Sequential calls on one App exercise the generation counter. zygomys
	// keeps global state, so calls are not made concurrently.
	app := newTestApp(false)

	sources := []string{
		`(circle :at (vec2 0 0) :radius 0.3)`,
		`(square :at (vec2 0.2 0.1) :radius 0.2)`,
		`(+ 1 2)`,
		``,
		`(circle :at (vec2 0 0)`,
		`(square :clear :at (vec2 0 0) :radius 0.3)`,
		`(+ 100 200)`,
		``,
		`(circle :fill false :at (vec2 0.5 0.5) :radius 0.1)`,
		`(circle :at (vec2 -0.5 -0.5) :radius 0.4)`,
	}

	for i, source := range sources {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("iteration %d panicked: %v", i, r)
				}
			}()
			_ = app.Evaluate(source)
		}()
	}
}

func TestE2EEvaluationsAreIndependent(t *testing.T) {
	app := newTestApp(false)

	first := app.Evaluate(`(circle :at (vec2 0.5 0.5) :radius 0.2)`)
	second := app.Evaluate(`(circle :at (vec2 -0.5 -0.5) :radius 0.2)`)

	if len(first.Meshes) != 1 || len(second.Meshes) != 1 {
		t.Fatalf("expected one mesh each, got %d and %d", len(first.Meshes), len(second.Meshes))
	}
	if first.Meshes[0].Name == second.Meshes[0].Name {
		t.Errorf("second evaluation should not see the first edit, both produced %q", first.Meshes[0].Name)
	}
}

func TestE2ECommentsOnly(t *testing.T) {
	result := newTestApp(false).Evaluate(";; nothing here\n; still nothing\n")

	if len(result.Errors) != 0 {
		t.Errorf("expected 0 errors for comments only, got %v", result.Errors)
	}
	if len(result.Meshes) != 0 {
		t.Errorf("expected 0 meshes, got %d", len(result.Meshes))
	}
}

func TestE2EArithmeticDefs(t *testing.T) {
	source := `
(def side 0.4)
(def half (/ side 2))
(def offset (- 0 half))
(square :at (vec2 offset offset) :radius (* half 0.5))
`
	result := newTestApp(false).Evaluate(source)

	if len(result.Errors) != 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 1 || result.Meshes[0].Name != "chunk_0_0" {
		t.Fatalf("expected one mesh in chunk_0_0, got %+v", result.Meshes)
	}
}

func TestE2EColorPaletteWrapping(t *testing.T) {
	conf := config.Default()
	conf.ChunkResolution = 3
	conf.Normalize()
	app := NewApp(conf)

	// A square covering the map touches all nine chunks, one more than the
	// palette has colors.
	result := app.Evaluate(`(square :at (vec2 0 0) :radius 0.9)`)
	if len(result.Errors) > 0 {
		t.Fatalf("unexpected errors: %v", result.Errors)
	}
	if len(result.Meshes) != 9 {
		t.Fatalf("expected 9 meshes, got %d", len(result.Meshes))
	}
	if result.Meshes[8].Color != result.Meshes[0].Color {
		t.Errorf("expected palette to wrap: mesh 8 has %s, mesh 0 has %s",
			result.Meshes[8].Color, result.Meshes[0].Color)
	}
	for i := 1; i < 8; i++ {
		if result.Meshes[i].Color == result.Meshes[i-1].Color {
			t.Errorf("meshes %d and %d share color %s", i-1, i, result.Meshes[i].Color)
		}
	}
}
