package out

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"mente/internal/modules/catalogue/domain"
	catalogueout "mente/internal/modules/catalogue/port/out"
)

// packFile is the on-disk shape of an exercise pack.
type packFile struct {
	Exercises []packExercise `yaml:"exercises"`
}

type packExercise struct {
	ID           string   `yaml:"id"`
	Category     string   `yaml:"category"`
	Title        string   `yaml:"title"`
	Description  string   `yaml:"description"`
	Type         string   `yaml:"type"`
	Options      []string `yaml:"options"`
	CorrectIndex int      `yaml:"correct_index"`
	Preview      []string `yaml:"preview"`
	Word         string   `yaml:"word"`
	Size         int      `yaml:"size"`
	Count        int      `yaml:"count"`
}

type YAMLPackStore struct {
	dir string
}

func NewYAMLPackStore(dir string) catalogueout.PackStore {
	return &YAMLPackStore{dir: dir}
}

// LoadPacks reads every *.yaml file in the pack directory in name order.
// A missing directory means no packs.
func (s *YAMLPackStore) LoadPacks(_ context.Context) ([]domain.Exercise, error) {
	if s.dir == "" {
		return nil, nil
	}
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob packs: %w", err)
	}
	sort.Strings(matches)

	var out []domain.Exercise
	for _, path := range matches {
		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		var pack packFile
		if err := yaml.Unmarshal(data, &pack); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		for _, raw := range pack.Exercises {
			ex, convErr := raw.toDomain()
			if convErr != nil {
				return nil, fmt.Errorf("decode %s: %w", path, convErr)
			}
			if err := ex.Validate(); err != nil {
				return nil, fmt.Errorf("validate %s: %w", path, err)
			}
			out = append(out, ex)
		}
	}
	return out, nil
}

func (p packExercise) toDomain() (domain.Exercise, error) {
	category, err := domain.ParseCategory(p.Category)
	if err != nil {
		return domain.Exercise{}, err
	}
	exType := domain.Type(p.Type)
	kind, err := exType.ContentKind()
	if err != nil {
		return domain.Exercise{}, err
	}
	ex := domain.Exercise{
		ID:          p.ID,
		Category:    category,
		Title:       p.Title,
		Description: p.Description,
		Type:        exType,
	}
	switch kind {
	case domain.KindChoice:
		ex.Content = domain.MultipleChoice{Options: p.Options, CorrectIndex: p.CorrectIndex, Preview: p.Preview}
	case domain.KindScramble:
		ex.Content = domain.WordScramble{Word: p.Word}
	case domain.KindGrid:
		ex.Content = domain.GridMemory{Size: p.Size, Count: p.Count}
	}
	return ex, nil
}
