package service

import (
	"fmt"
	"strconv"

	"mente/internal/modules/catalogue/domain"
	"mente/internal/platform/random"
)

const (
	maxAddend     = 50
	maxSubtrahend = 30
)

// GenerateMath builds count arithmetic exercises with ids calc-gen-<offset+i>.
// Each has four numeric options: the result and three perturbations of it,
// shuffled, with CorrectIndex pointing at the result.
func GenerateMath(src random.Source, count, offset int) []domain.Exercise {
	out := make([]domain.Exercise, 0, count)
	for i := 0; i < count; i++ {
		a := src.IntN(maxAddend) + 1
		b := src.IntN(maxSubtrahend) + 1
		isSum := src.IntN(2) == 1

		var res int
		var title, expr string
		if isSum {
			res = a + b
			title = "Suma Mental"
			expr = fmt.Sprintf("%d + %d", a, b)
		} else {
			hi, lo := max(a, b), min(a, b)
			res = hi - lo
			title = "Resta Mental"
			expr = fmt.Sprintf("%d - %d", hi, lo)
		}

		values := []int{res, res + 5, abs(res - 3), res + 10}
		src.Shuffle(len(values), func(i, j int) { values[i], values[j] = values[j], values[i] })

		options := make([]string, len(values))
		correct := 0
		for j, v := range values {
			options[j] = strconv.Itoa(v)
			if v == res {
				correct = j
			}
		}

		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("calc-gen-%d", offset+i),
			Category:    domain.CategoryCalculation,
			Title:       title,
			Description: fmt.Sprintf("¿Cuánto es %s?", expr),
			Type:        domain.TypeMultipleChoice,
			Content:     domain.MultipleChoice{Options: options, CorrectIndex: correct},
		})
	}
	return out
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
