package service_test

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"testing"

	"mente/internal/modules/catalogue/domain"
	"mente/internal/modules/catalogue/service"
	apperrors "mente/internal/platform/errors"
	"mente/internal/platform/random"
)

type fakePacks struct {
	exercises []domain.Exercise
	err       error
}

func (f fakePacks) LoadPacks(context.Context) ([]domain.Exercise, error) {
	return f.exercises, f.err
}

func TestBuildProducesUniqueIDsAndExpectedCounts(t *testing.T) {
	t.Parallel()
	svc := service.NewCatalogueService(random.Seeded(1), nil, 25)
	cat, err := svc.Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	seen := map[string]bool{}
	for _, ex := range cat.All() {
		if seen[ex.ID] {
			t.Fatalf("duplicate id %s", ex.ID)
		}
		seen[ex.ID] = true
	}
	counts := cat.CountByCategory()
	want := map[domain.Category]int{
		domain.CategoryLanguage:    20,
		domain.CategoryMemory:      20,
		domain.CategoryCalculation: 25,
		domain.CategoryAttention:   15,
		domain.CategoryLogic:       15,
		domain.CategoryPerception:  10,
	}
	for c, n := range want {
		if counts[c] != n {
			t.Fatalf("expected %d %s exercises, got %d", n, c, counts[c])
		}
	}
	if cat.Len() != 105 {
		t.Fatalf("expected 105 exercises, got %d", cat.Len())
	}
}

func TestBuildUniqueAcrossRandomSeeds(t *testing.T) {
	t.Parallel()
	for seed := uint64(0); seed < 10; seed++ {
		if _, err := service.NewCatalogueService(random.Seeded(seed), nil, 40).Build(context.Background()); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
}

func TestBuildAppendsPacksAndRejectsCollisions(t *testing.T) {
	t.Parallel()
	extra := domain.Exercise{
		ID: "pack-1", Category: domain.CategoryLogic, Title: "Extra", Description: "¿2 + 2?",
		Type: domain.TypeMathPuzzle, Content: domain.MultipleChoice{Options: []string{"3", "4"}, CorrectIndex: 1},
	}
	cat, err := service.NewCatalogueService(random.Seeded(3), fakePacks{exercises: []domain.Exercise{extra}}, 2).Build(context.Background())
	if err != nil {
		t.Fatalf("build with pack: %v", err)
	}
	all := cat.All()
	if all[len(all)-1].ID != "pack-1" {
		t.Fatalf("pack exercise should be appended last, got %s", all[len(all)-1].ID)
	}

	clash := extra
	clash.ID = "logic-q-0"
	_, err = service.NewCatalogueService(random.Seeded(3), fakePacks{exercises: []domain.Exercise{clash}}, 2).Build(context.Background())
	if !errors.Is(err, apperrors.ErrDuplicateExercise) {
		t.Fatalf("expected duplicate error for colliding pack id, got %v", err)
	}

	if _, err := service.NewCatalogueService(random.Seeded(3), fakePacks{err: errors.New("boom")}, 2).Build(context.Background()); err == nil {
		t.Fatalf("pack store failure should fail the build")
	}
}

func TestMemoryListAnswerIsTheIntruder(t *testing.T) {
	t.Parallel()
	cat, err := service.NewCatalogueService(random.Seeded(9), nil, 0).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	for i := 0; i < 10; i++ {
		ex, ok := cat.Get("mem-list-" + strconv.Itoa(i))
		if !ok {
			t.Fatalf("mem-list-%d missing", i)
		}
		mc := ex.Content.(domain.MultipleChoice)
		if mc.Options[mc.CorrectIndex] != "Elefante" {
			t.Fatalf("%s: correct option is %q", ex.ID, mc.Options[mc.CorrectIndex])
		}
		for _, item := range mc.Preview {
			if item == "Elefante" {
				t.Fatalf("%s: intruder must not be in the preview", ex.ID)
			}
		}
	}
}

func TestAttentionSeriesContainsOneN(t *testing.T) {
	t.Parallel()
	cat, err := service.NewCatalogueService(random.Seeded(5), nil, 0).Build(context.Background())
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	ex, _ := cat.Get("att-find-0")
	series := strings.TrimPrefix(ex.Description, "Busca la letra diferente en esta serie: ")
	if strings.Count(series, "N") != 1 || strings.Count(series, "M") != 13 {
		t.Fatalf("unexpected series %q", series)
	}
}

func TestBuildRejectsNegativeMathCount(t *testing.T) {
	t.Parallel()
	if _, err := service.NewCatalogueService(random.Seeded(1), nil, -1).Build(context.Background()); err == nil {
		t.Fatalf("negative count should fail")
	}
}
