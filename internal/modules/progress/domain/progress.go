package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

const (
	// StorageKey is the single key the progress blob lives under.
	StorageKey        = "mente_activa_stats"
	PointsPerExercise = 10
)

// Progress is the persisted record of completed exercises. TotalPoints is
// always PointsPerExercise times the number of completed ids.
type Progress struct {
	CompletedIDs []string `json:"completedIds"`
	TotalPoints  int      `json:"totalPoints"`
}

func Empty() Progress {
	return Progress{CompletedIDs: []string{}, TotalPoints: 0}
}

func (p Progress) IsCompleted(id string) bool {
	for _, done := range p.CompletedIDs {
		if done == id {
			return true
		}
	}
	return false
}

// MarkComplete records id once. It reports whether the state changed.
func (p *Progress) MarkComplete(id string) bool {
	if p.IsCompleted(id) {
		return false
	}
	p.CompletedIDs = append(p.CompletedIDs, id)
	p.TotalPoints += PointsPerExercise
	return true
}

func (p Progress) Clone() Progress {
	ids := make([]string, len(p.CompletedIDs))
	copy(ids, p.CompletedIDs)
	return Progress{CompletedIDs: ids, TotalPoints: p.TotalPoints}
}

// Decode parses a stored blob. Duplicate or blank ids are dropped and the
// points are recomputed so the loaded state always holds the invariant.
func Decode(raw []byte) (Progress, error) {
	var stored Progress
	if err := json.Unmarshal(raw, &stored); err != nil {
		return Progress{}, fmt.Errorf("decode progress: %w", err)
	}
	out := Empty()
	for _, id := range stored.CompletedIDs {
		if strings.TrimSpace(id) == "" {
			continue
		}
		out.MarkComplete(id)
	}
	return out, nil
}

func Encode(p Progress) ([]byte, error) {
	if p.CompletedIDs == nil {
		p.CompletedIDs = []string{}
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode progress: %w", err)
	}
	return raw, nil
}

type Tier string

const (
	TierStarting Tier = "starting"
	TierOnTrack  Tier = "on_track"
	TierExpert   Tier = "expert"
)

func (t Tier) Message() string {
	switch t {
	case TierStarting:
		return "¡Buen comienzo! Sigue así."
	case TierOnTrack:
		return "¡Vas por muy buen camino!"
	default:
		return "¡Eres todo un experto!"
	}
}

type Summary struct {
	Completed int
	Total     int
	Points    int
	Percent   int
	Tier      Tier
}

// Summarize computes the completion percentage against a catalogue of total exercises.
func Summarize(p Progress, total int) Summary {
	s := Summary{Completed: len(p.CompletedIDs), Total: total, Points: p.TotalPoints}
	if total > 0 {
		s.Percent = int(math.Round(float64(s.Completed) / float64(total) * 100))
	}
	switch {
	case s.Percent < 30:
		s.Tier = TierStarting
	case s.Percent < 70:
		s.Tier = TierOnTrack
	default:
		s.Tier = TierExpert
	}
	return s
}
