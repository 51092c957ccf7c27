package service_test

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"mente/internal/modules/catalogue/domain"
	"mente/internal/modules/catalogue/service"
	"mente/internal/platform/random"
)

// expectedResult recomputes the answer from the description text.
func expectedResult(t *testing.T, description string) int {
	t.Helper()
	expr := strings.TrimSuffix(strings.TrimPrefix(description, "¿Cuánto es "), "?")
	var a, b int
	var op string
	if _, err := fmt.Sscanf(expr, "%d %s %d", &a, &op, &b); err != nil {
		t.Fatalf("parse %q: %v", description, err)
	}
	switch op {
	case "+":
		return a + b
	case "-":
		if a < b {
			t.Fatalf("subtraction must not go negative: %q", description)
		}
		return a - b
	}
	t.Fatalf("unknown operator in %q", description)
	return 0
}

func TestGenerateMathStructure(t *testing.T) {
	t.Parallel()
	exercises := service.GenerateMath(random.System{}, 200, 0)
	if len(exercises) != 200 {
		t.Fatalf("expected 200 exercises, got %d", len(exercises))
	}
	for i, ex := range exercises {
		if ex.ID != "calc-gen-"+strconv.Itoa(i) {
			t.Fatalf("unexpected id %s at %d", ex.ID, i)
		}
		if err := ex.Validate(); err != nil {
			t.Fatalf("invalid generated exercise: %v", err)
		}
		if ex.Category != domain.CategoryCalculation {
			t.Fatalf("generated exercise in category %s", ex.Category)
		}
		mc, ok := ex.Content.(domain.MultipleChoice)
		if !ok {
			t.Fatalf("generated exercise without choice content")
		}
		if len(mc.Options) != 4 {
			t.Fatalf("expected 4 options, got %v", mc.Options)
		}
		want := expectedResult(t, ex.Description)
		matches := 0
		for _, opt := range mc.Options {
			n, err := strconv.Atoi(opt)
			if err != nil {
				t.Fatalf("option %q is not numeric", opt)
			}
			if n == want {
				matches++
			}
		}
		if matches != 1 {
			t.Fatalf("%s: expected exactly one option equal to %d, got %v", ex.ID, want, mc.Options)
		}
		if got, _ := strconv.Atoi(mc.Options[mc.CorrectIndex]); got != want {
			t.Fatalf("%s: correct index points at %d, want %d", ex.ID, got, want)
		}
	}
}

func TestGenerateMathIsReproducibleWithSeed(t *testing.T) {
	t.Parallel()
	a := service.GenerateMath(random.Seeded(11), 5, 100)
	b := service.GenerateMath(random.Seeded(11), 5, 100)
	for i := range a {
		if a[i].Description != b[i].Description {
			t.Fatalf("seeded generation differs at %d: %q vs %q", i, a[i].Description, b[i].Description)
		}
	}
	if a[0].ID != "calc-gen-100" {
		t.Fatalf("offset not applied: %s", a[0].ID)
	}
}
