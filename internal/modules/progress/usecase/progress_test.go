package usecase_test

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	progressadapter "mente/internal/modules/progress/adapter/out"
	"mente/internal/modules/progress/domain"
	"mente/internal/modules/progress/dto"
	"mente/internal/modules/progress/service"
	"mente/internal/modules/progress/usecase"
	apperrors "mente/internal/platform/errors"
)

type memoryStore struct {
	mu      sync.Mutex
	values  map[string][]byte
	getErr  error
	putErr  error
	putHits int
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string][]byte{}}
}

func (s *memoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	v, ok := s.values[key]
	if !ok {
		return nil, apperrors.ErrKeyNotFound
	}
	return v, nil
}

func (s *memoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.putHits++
	if s.putErr != nil {
		return s.putErr
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryStore) raw(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return string(s.values[key])
}

func TestLoadDefaultsWhenStorageMissingOrBroken(t *testing.T) {
	t.Parallel()
	cases := map[string]func(*memoryStore){
		"missing":   func(*memoryStore) {},
		"malformed": func(s *memoryStore) { s.values[domain.StorageKey] = []byte("{not json") },
		"failing":   func(s *memoryStore) { s.getErr = errors.New("disk gone") },
	}
	for name, setup := range cases {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			store := newMemoryStore()
			setup(store)
			uc := usecase.NewInteractor(service.NewProgressService(store))
			got := uc.Load(context.Background())
			if len(got.CompletedIDs) != 0 || got.TotalPoints != 0 {
				t.Fatalf("expected empty progress, got %+v", got)
			}
		})
	}
}

func TestLoadRehydratesStoredState(t *testing.T) {
	t.Parallel()
	store := newMemoryStore()
	store.values[domain.StorageKey] = []byte(`{"completedIds":["syn-1","mem-2"],"totalPoints":20}`)
	uc := usecase.NewInteractor(service.NewProgressService(store))
	got := uc.Load(context.Background())
	if got.TotalPoints != 20 || len(got.CompletedIDs) != 2 {
		t.Fatalf("unexpected loaded state %+v", got)
	}
	if !uc.IsCompleted(context.Background(), "mem-2") {
		t.Fatalf("expected mem-2 to be completed")
	}
}

func TestMarkCompleteIsIdempotentAndPersists(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newMemoryStore()
	uc := usecase.NewInteractor(service.NewProgressService(store))
	uc.Load(ctx)

	first, err := uc.MarkComplete(ctx, "syn-1")
	if err != nil {
		t.Fatalf("mark complete: %v", err)
	}
	if !first.Added || first.Progress.TotalPoints != 10 {
		t.Fatalf("unexpected first completion %+v", first)
	}
	if got := store.raw(domain.StorageKey); got != `{"completedIds":["syn-1"],"totalPoints":10}` {
		t.Fatalf("unexpected stored blob %s", got)
	}

	second, err := uc.MarkComplete(ctx, "syn-1")
	if err != nil {
		t.Fatalf("mark complete again: %v", err)
	}
	if second.Added || second.Progress.TotalPoints != 10 || len(second.Progress.CompletedIDs) != 1 {
		t.Fatalf("expected no-op on repeat, got %+v", second)
	}
	if store.putHits != 1 {
		t.Fatalf("expected a single write, got %d", store.putHits)
	}
}

func TestMarkCompleteRejectsEmptyID(t *testing.T) {
	t.Parallel()
	uc := usecase.NewInteractor(service.NewProgressService(newMemoryStore()))
	if _, err := uc.MarkComplete(context.Background(), " "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestWriteFailureKeepsInMemoryState(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newMemoryStore()
	store.putErr = errors.New("quota exceeded")
	uc := usecase.NewInteractor(service.NewProgressService(store))

	out, err := uc.MarkComplete(ctx, "calc-gen-0")
	if err != nil {
		t.Fatalf("write failures must be swallowed, got %v", err)
	}
	if !out.Added || uc.Get(ctx).TotalPoints != 10 {
		t.Fatalf("expected in-memory state updated, got %+v", uc.Get(ctx))
	}
}

func TestResetRequiresConfirmation(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := newMemoryStore()
	uc := usecase.NewInteractor(service.NewProgressService(store))
	for _, id := range []string{"a", "b", "c"} {
		if _, err := uc.MarkComplete(ctx, id); err != nil {
			t.Fatalf("mark %s: %v", id, err)
		}
	}

	declined := uc.Reset(ctx, dto.ResetInput{Confirmed: false})
	if declined.Reset || declined.Progress.TotalPoints != 30 {
		t.Fatalf("declined reset must leave state, got %+v", declined)
	}

	confirmed := uc.Reset(ctx, dto.ResetInput{Confirmed: true})
	if !confirmed.Reset || confirmed.Progress.TotalPoints != 0 || len(confirmed.Progress.CompletedIDs) != 0 {
		t.Fatalf("confirmed reset must empty state, got %+v", confirmed)
	}
	if got := store.raw(domain.StorageKey); got != `{"completedIds":[],"totalPoints":0}` {
		t.Fatalf("unexpected stored blob after reset %s", got)
	}
}

func TestSummaryTiers(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewProgressService(nil))
	for _, id := range []string{"a", "b", "c"} {
		if _, err := uc.MarkComplete(ctx, id); err != nil {
			t.Fatalf("mark %s: %v", id, err)
		}
	}
	cases := []struct {
		total   int
		percent int
		tier    string
	}{
		{total: 100, percent: 3, tier: string(domain.TierStarting)},
		{total: 6, percent: 50, tier: string(domain.TierOnTrack)},
		{total: 3, percent: 100, tier: string(domain.TierExpert)},
	}
	for _, tc := range cases {
		got := uc.Summary(ctx, tc.total)
		if got.Percent != tc.percent || got.Tier != tc.tier || got.Points != 30 {
			t.Fatalf("total %d: unexpected summary %+v", tc.total, got)
		}
	}
}

func TestProgressSurvivesRestartWithFileStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "state")

	first := usecase.NewInteractor(service.NewProgressService(progressadapter.NewFileStateStore(dir)))
	first.Load(ctx)
	if _, err := first.MarkComplete(ctx, "logic-3"); err != nil {
		t.Fatalf("mark complete: %v", err)
	}

	second := usecase.NewInteractor(service.NewProgressService(progressadapter.NewFileStateStore(dir)))
	got := second.Load(ctx)
	if len(got.CompletedIDs) != 1 || got.CompletedIDs[0] != "logic-3" || got.TotalPoints != 10 {
		t.Fatalf("unexpected rehydrated state %+v", got)
	}
}

func TestConcurrentCompletionsKeepInvariant(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	uc := usecase.NewInteractor(service.NewProgressService(newMemoryStore()))
	var wg sync.WaitGroup
	for n := 0; n < 20; n++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			_, _ = uc.MarkComplete(ctx, []string{"x", "y", "z", "w"}[n%4])
		}(n)
	}
	wg.Wait()
	got := uc.Get(ctx)
	if len(got.CompletedIDs) != 4 || got.TotalPoints != 40 {
		t.Fatalf("expected 4 ids and 40 points, got %+v", got)
	}
}
