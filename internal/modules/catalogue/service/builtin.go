package service

import (
	"fmt"
	"strings"

	"mente/internal/modules/catalogue/domain"
	"mente/internal/platform/random"
)

type synonym struct {
	word    string
	options []string
	correct int
}

var synonyms = []synonym{
	{"Grande", []string{"Enorme", "Pequeño", "Bajo"}, 0},
	{"Rápido", []string{"Veloz", "Lento", "Calma"}, 0},
	{"Hogar", []string{"Calle", "Vivienda", "Puerta"}, 1},
	{"Escuchar", []string{"Ver", "Oír", "Hablar"}, 1},
	{"Fácil", []string{"Difícil", "Simple", "Corto"}, 1},
	{"Gélido", []string{"Caliente", "Frío", "Templado"}, 1},
	{"Sabio", []string{"Listo", "Tonto", "Rudo"}, 0},
	{"Cansado", []string{"Activo", "Fatigado", "Feliz"}, 1},
	{"Empezar", []string{"Finalizar", "Pausar", "Comenzar"}, 2},
	{"Silencio", []string{"Ruido", "Paz", "Gritar"}, 1},
}

var scrambles = []struct{ word, scrambled string }{
	{"PLAYA", "YALAP"}, {"PERRO", "ORREP"}, {"CIELO", "LEOCI"},
	{"LUNA", "NALU"}, {"COCHE", "ECHO C"}, {"JARDIN", "DINJAR"},
	{"LIBRO", "ORBIL"}, {"SOPA", "APOS"}, {"RELOJ", "JOLER"},
	{"MONTAÑA", "ÑA MONTA"},
}

var memoryLists = [][]string{
	{"Manzana", "Pera", "Uva"}, {"Coche", "Moto", "Tren"}, {"Azul", "Rojo", "Verde"},
	{"Madrid", "París", "Roma"}, {"Lunes", "Martes", "Jueves"}, {"Sofá", "Cama", "Silla"},
	{"Perro", "Gato", "León"}, {"Pan", "Leche", "Arroz"}, {"Abril", "Mayo", "Junio"},
	{"Rosa", "Tulipán", "Margarita"},
}

// memoryIntruder is the option that was never in the memorised list.
const memoryIntruder = "Elefante"

var riddles = []struct {
	question string
	options  []string
	correct  int
}{
	{"Si tienes 2 pares de zapatos, ¿cuántos zapatos tienes?", []string{"2", "4", "1", "6"}, 1},
	{"¿Qué pesa más, un kilo de hierro o un kilo de paja?", []string{"Hierro", "Paja", "Lo mismo", "Nada"}, 2},
	{"El padre de Juan tiene 3 hijos: Pepe, Paco y...", []string{"Juan", "José", "Luis", "Pedro"}, 0},
	{"¿Qué viene después del 10, 20, 30...?", []string{"31", "40", "50", "35"}, 1},
	{"Si hoy es miércoles, ¿qué día fue anteayer?", []string{"Lunes", "Martes", "Jueves", "Domingo"}, 0},
	{"¿Cuántos meses tienen 30 días?", []string{"4", "11", "12", "1"}, 1},
	{"¿Qué objeto no pertenece: Tenedor, Cuchillo, Cuchara, Libro?", []string{"Tenedor", "Libro", "Cuchara", "Cuchillo"}, 1},
	{"¿Cuál es la mitad de 100?", []string{"25", "50", "75", "40"}, 1},
	{"Si un reloj marca las 12:15, ¿dónde está el minutero?", []string{"En el 3", "En el 12", "En el 6", "En el 9"}, 0},
	{"¿Qué es rojo y por dentro blanco?", []string{"Manzana", "Plátano", "Uva", "Limón"}, 0},
	{"¿Cuál es el color del cielo en un día despejado?", []string{"Verde", "Azul", "Rojo", "Gris"}, 1},
	{"Si doblas un papel por la mitad dos veces, ¿cuántos rectángulos ves?", []string{"2", "4", "8", "3"}, 1},
	{"¿Cuántas patas tiene una araña?", []string{"6", "8", "4", "10"}, 1},
	{"¿Cómo se llama el médico de los animales?", []string{"Dentista", "Veterinario", "Pediatra", "Oculista"}, 1},
	{"¿Cuál es la estación más fría del año?", []string{"Verano", "Primavera", "Otoño", "Invierno"}, 3},
}

const (
	gridExercises      = 10
	attentionExercises = 15
	clockExercises     = 10
	attentionSeries    = "MMMMMMNMMMMMMM"
)

func languageExercises() []domain.Exercise {
	out := make([]domain.Exercise, 0, len(synonyms)+len(scrambles))
	for i, s := range synonyms {
		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("lang-syn-%d", i),
			Category:    domain.CategoryLanguage,
			Title:       "Busca el Sinónimo",
			Description: fmt.Sprintf("¿Qué palabra significa lo mismo que %q?", s.word),
			Type:        domain.TypeMultipleChoice,
			Content:     domain.MultipleChoice{Options: s.options, CorrectIndex: s.correct},
		})
	}
	for i, s := range scrambles {
		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("lang-scram-%d", i),
			Category:    domain.CategoryLanguage,
			Title:       "Palabras Revueltas",
			Description: "Ordena las letras para formar: " + s.scrambled,
			Type:        domain.TypeWordScramble,
			Content:     domain.WordScramble{Word: s.word},
		})
	}
	return out
}

func memoryExercises(src random.Source) []domain.Exercise {
	out := make([]domain.Exercise, 0, gridExercises+len(memoryLists))
	for i := 0; i < gridExercises; i++ {
		size := 4
		if i < 5 {
			size = 3
		}
		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("mem-grid-%d", i),
			Category:    domain.CategoryMemory,
			Title:       fmt.Sprintf("Patrón Visual %d", i+1),
			Description: "Memoriza los cuadros azules y recuérdalos.",
			Type:        domain.TypeGridMemory,
			Content:     domain.GridMemory{Size: size, Count: 3 + i/2},
		})
	}
	for i, list := range memoryLists {
		options := []string{list[0], memoryIntruder, list[1]}
		src.Shuffle(len(options), func(a, b int) { options[a], options[b] = options[b], options[a] })
		correct := 0
		for j, opt := range options {
			if opt == memoryIntruder {
				correct = j
			}
		}
		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("mem-list-%d", i),
			Category:    domain.CategoryMemory,
			Title:       "Lista de Memoria",
			Description: fmt.Sprintf("Memoriza: %s. ¿Cuál de estos NO estaba?", strings.Join(list, ", ")),
			Type:        domain.TypeMultipleChoice,
			Content:     domain.MultipleChoice{Options: options, CorrectIndex: correct, Preview: list},
		})
	}
	return out
}

func attentionExercisesFrom(src random.Source) []domain.Exercise {
	out := make([]domain.Exercise, 0, attentionExercises)
	for i := 0; i < attentionExercises; i++ {
		letters := strings.Split(attentionSeries, "")
		src.Shuffle(len(letters), func(a, b int) { letters[a], letters[b] = letters[b], letters[a] })
		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("att-find-%d", i),
			Category:    domain.CategoryAttention,
			Title:       "Agudeza Visual",
			Description: "Busca la letra diferente en esta serie: " + strings.Join(letters, " "),
			Type:        domain.TypeMultipleChoice,
			Content:     domain.MultipleChoice{Options: []string{"M", "N", "W", "H"}, CorrectIndex: 1},
		})
	}
	return out
}

func logicExercises() []domain.Exercise {
	out := make([]domain.Exercise, 0, len(riddles))
	for i, r := range riddles {
		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("logic-q-%d", i),
			Category:    domain.CategoryLogic,
			Title:       "Pensamiento Lógico",
			Description: r.question,
			Type:        domain.TypeMultipleChoice,
			Content:     domain.MultipleChoice{Options: r.options, CorrectIndex: r.correct},
		})
	}
	return out
}

func perceptionExercises() []domain.Exercise {
	out := make([]domain.Exercise, 0, clockExercises)
	for i := 0; i < clockExercises; i++ {
		h := i%12 + 1
		out = append(out, domain.Exercise{
			ID:          fmt.Sprintf("perc-clk-%d", i),
			Category:    domain.CategoryPerception,
			Title:       "La Hora",
			Description: fmt.Sprintf("Si la manecilla corta está en el %d y la larga en el 12, ¿qué hora es?", h),
			Type:        domain.TypeClockReading,
			Content: domain.MultipleChoice{
				Options:      []string{fmt.Sprintf("%d:00", h), fmt.Sprintf("%d:30", h), fmt.Sprintf("%d:15", h), "12:00"},
				CorrectIndex: 0,
			},
		})
	}
	return out
}
