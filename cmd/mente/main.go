package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"mente/internal/bootstrap"
	sessiondomain "mente/internal/modules/session/domain"
	sessiondto "mente/internal/modules/session/dto"
	"mente/internal/platform/config"
	apperrors "mente/internal/platform/errors"
	"mente/internal/ui/prompt"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

type rootOptions struct {
	configPath string
	dataDir    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "mente",
		Short:         "Mente Activa: ejercicios de entrenamiento cerebral",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default <data-dir>/config.yaml)")
	root.PersistentFlags().StringVar(&opts.dataDir, "data-dir", "", "data directory (default ~/.mente)")

	root.AddCommand(newTUICmd(opts))
	root.AddCommand(newListCmd(opts))
	root.AddCommand(newShowCmd(opts))
	root.AddCommand(newPlayCmd(opts))
	root.AddCommand(newProgressCmd(opts))
	return root
}

func loadApp(ctx context.Context, opts *rootOptions) (*bootstrap.App, error) {
	cfg, err := config.Load(opts.configPath, opts.dataDir)
	if err != nil {
		return nil, err
	}
	return bootstrap.New(ctx, cfg)
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the terminal UI",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := loadApp(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			return bootstrap.RunTUI(app)
		},
	}
}

func newListCmd(opts *rootOptions) *cobra.Command {
	var category, query string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List exercises, optionally filtered",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			items, err := app.CatalogueCLI.Filter(ctx, category, query)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, ex := range items {
				mark := " "
				if app.ProgressCLI.IsCompleted(ctx, ex.ID) {
					mark = "✓"
				}
				_, _ = fmt.Fprintf(out, "[%s] %-14s %-12s %s\n", mark, ex.ID, ex.CategoryLabel, ex.Title)
			}
			_, _ = fmt.Fprintf(out, "%d exercises\n", len(items))
			return nil
		},
	}
	cmd.Flags().StringVar(&category, "category", "", "category id or label (memory|language|calculation|attention|logic|perception)")
	cmd.Flags().StringVar(&query, "query", "", "case-insensitive search in title and description")
	return cmd
}

func newShowCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one exercise",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			ex, err := app.CatalogueCLI.Get(ctx, args[0])
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "%s (%s)\n%s\n%s\n", ex.Title, ex.ID, ex.CategoryLabel, ex.Description)
			if len(ex.Preview) > 0 {
				_, _ = fmt.Fprintf(out, "lista: %s\n", strings.Join(ex.Preview, ", "))
			}
			for i, opt := range ex.Options {
				_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, opt)
			}
			if ex.GridSize > 0 {
				_, _ = fmt.Fprintf(out, "cuadrícula %dx%d, %d casillas\n", ex.GridSize, ex.GridSize, ex.GridCount)
			}
			status := "pendiente"
			if app.ProgressCLI.IsCompleted(ctx, ex.ID) {
				status = "completado"
			}
			_, _ = fmt.Fprintf(out, "estado: %s\n", status)
			return nil
		},
	}
}

func newPlayCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Play one exercise line by line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()
			p := prompt.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
			return play(ctx, app, p, cmd.OutOrStdout(), args[0])
		},
	}
}

func newProgressCmd(opts *rootOptions) *cobra.Command {
	progress := &cobra.Command{
		Use:   "progress",
		Short: "Show completion progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			total, err := app.CatalogueCLI.Count(ctx)
			if err != nil {
				return err
			}
			s := app.ProgressCLI.Summary(ctx, total)
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "completados: %d/%d (%d%%)\npuntos: %d\n%s\n",
				s.Completed, s.Total, s.Percent, s.Points, s.Message)
			return nil
		},
	}

	var yes bool
	reset := &cobra.Command{
		Use:   "reset",
		Short: "Erase all progress",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			app, err := loadApp(ctx, opts)
			if err != nil {
				return err
			}
			defer func() { _ = app.Close() }()

			confirmed := yes
			if !confirmed {
				p := prompt.NewPrompter(cmd.InOrStdin(), cmd.OutOrStdout())
				confirmed = p.Confirm("¿Seguro que quieres borrar todo tu progreso?")
			}
			out := app.ProgressCLI.Reset(ctx, confirmed)
			if out.Reset {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "progreso reiniciado")
			} else {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "reinicio cancelado")
			}
			return nil
		},
	}
	reset.Flags().BoolVar(&yes, "yes", false, "skip the confirmation prompt")
	progress.AddCommand(reset)
	return progress
}

// timerWait bounds how long play waits for a scheduled transition.
const timerWait = 10 * time.Second

func play(ctx context.Context, app *bootstrap.App, p prompt.Prompter, out io.Writer, id string) error {
	h := app.SessionCLI
	snap, err := h.Open(ctx, id)
	if err != nil {
		return err
	}
	render(out, snap)

	for snap.Active {
		if snap.Pending != nil {
			if snap, err = awaitTimer(ctx, app, *snap.Pending); err != nil {
				return err
			}
			if snap.Active {
				render(out, snap)
			}
			continue
		}

		line, err := p.ReadLine(inputLabel(snap))
		if err != nil {
			if errors.Is(err, io.EOF) {
				return h.Close(ctx)
			}
			return err
		}
		line = strings.TrimSpace(line)
		if line == "q" {
			p.Info("sesión cerrada")
			return h.Close(ctx)
		}

		next, err := respond(ctx, app, snap, line)
		switch {
		case errors.Is(err, apperrors.ErrInvalidInput), errors.Is(err, apperrors.ErrFeedbackPending):
			p.Info("respuesta no válida")
			continue
		case err != nil:
			return err
		}
		snap = next
		renderFeedback(out, snap)
	}

	if app.ProgressCLI.IsCompleted(ctx, id) {
		total := app.ProgressCLI.Get(ctx).TotalPoints
		p.Info(fmt.Sprintf("¡Ejercicio completado! Puntos totales: %d", total))
	}
	return nil
}

func respond(ctx context.Context, app *bootstrap.App, snap sessiondto.SnapshotOutput, line string) (sessiondto.SnapshotOutput, error) {
	h := app.SessionCLI
	switch {
	case len(snap.Options) > 0:
		n, err := strconv.Atoi(line)
		if err != nil {
			return snap, apperrors.ErrInvalidInput
		}
		return h.Choose(ctx, n-1)
	case snap.GridSize > 0:
		return h.Acknowledge(ctx)
	default:
		if line == "" {
			return snap, apperrors.ErrInvalidInput
		}
		return h.Answer(ctx, line)
	}
}

// awaitTimer blocks until the scheduler has delivered timer, then returns the
// resulting state.
func awaitTimer(ctx context.Context, app *bootstrap.App, timer sessiondto.Timer) (sessiondto.SnapshotOutput, error) {
	deadline := time.After(timer.Delay + timerWait)
	for {
		select {
		case fired := <-app.Scheduler.Fired():
			if fired.Token == timer.Token && string(fired.Kind) == timer.Kind {
				return app.SessionCLI.Snapshot(ctx), nil
			}
		case <-deadline:
			return sessiondto.SnapshotOutput{}, fmt.Errorf("wait for %s timer: timed out", timer.Kind)
		case <-ctx.Done():
			return sessiondto.SnapshotOutput{}, ctx.Err()
		}
	}
}

func inputLabel(snap sessiondto.SnapshotOutput) string {
	switch {
	case len(snap.Options) > 0:
		return fmt.Sprintf("elige 1-%d (q para salir): ", len(snap.Options))
	case snap.GridSize > 0:
		return "pulsa enter cuando lo recuerdes (q para salir): "
	default:
		return "tu respuesta (q para salir): "
	}
}

func render(out io.Writer, snap sessiondto.SnapshotOutput) {
	_, _ = fmt.Fprintf(out, "\n%s\n%s\n", snap.Title, snap.Description)
	if len(snap.Preview) > 0 {
		_, _ = fmt.Fprintf(out, "lista: %s\n", strings.Join(snap.Preview, ", "))
	}
	for i, opt := range snap.Options {
		_, _ = fmt.Fprintf(out, "  %d. %s\n", i+1, opt)
	}
	if snap.GridSize > 0 {
		lit := map[int]bool{}
		if snap.Revealing {
			for _, c := range snap.Cells {
				lit[c] = true
			}
		}
		for r := 0; r < snap.GridSize; r++ {
			cells := make([]string, snap.GridSize)
			for c := range cells {
				cells[c] = "·"
				if lit[r*snap.GridSize+c] {
					cells[c] = "■"
				}
			}
			_, _ = fmt.Fprintln(out, "  "+strings.Join(cells, " "))
		}
		if snap.Revealing {
			_, _ = fmt.Fprintf(out, "memoriza el patrón (%.1fs)\n", snap.RevealRemaining.Seconds())
		}
	}
}

func renderFeedback(out io.Writer, snap sessiondto.SnapshotOutput) {
	switch snap.Feedback {
	case string(sessiondomain.FeedbackCorrect):
		_, _ = fmt.Fprintln(out, "¡Correcto! +10 puntos")
	case string(sessiondomain.FeedbackWrong):
		_, _ = fmt.Fprintln(out, "Incorrecto, inténtalo de nuevo")
	}
}
