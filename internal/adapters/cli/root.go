package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Rowdraraz100/RazNotes/internal/adapters/cache"
	"github.com/Rowdraraz100/RazNotes/internal/adapters/repository"
	"github.com/Rowdraraz100/RazNotes/internal/config"
	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
	"github.com/Rowdraraz100/RazNotes/internal/core/services"
)

type App struct {
	ConfigPath string
	StatePath  string

	now services.Clock
}

func NewRootCmd() *cobra.Command {
	return newRootCmd(&App{now: time.Now})
}

func newRootCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "habits",
		Short:        "Daily habit tracker with streaks and a yearly heatmap",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # What is left for today
  habits status

  # Mark a habit as done (run again to undo)
  habits toggle coding

  # Last year at a glance
  habits heatmap
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.ConfigPath, "config", "", "Path to a YAML config file (default: $RAZ_CONFIG)")
	cmd.PersistentFlags().StringVar(&app.StatePath, "state", "", "Path to a JSON state file (overrides the configured store)")

	cmd.AddCommand(newStatusCmd(app))
	cmd.AddCommand(newToggleCmd(app))
	cmd.AddCommand(newHeatmapCmd(app))
	cmd.AddCommand(newStatsCmd(app))
	cmd.AddCommand(newResetCmd(app))
	cmd.AddCommand(newCatalogCmd(app))

	return cmd
}

// openEngine loads the configured store and returns an engine over it. The
// close func must be called once the command is done.
func openEngine(ctx context.Context, app *App) (*services.Engine, func(), error) {
	cfg, err := config.Load(app.ConfigPath)
	if err != nil {
		return nil, nil, err
	}
	if app.StatePath != "" {
		cfg.StoreBackend = config.BackendFile
		cfg.StateFile = app.StatePath
		cfg.UseRedis = false
	}

	var rdb *redis.Client
	if cfg.StoreBackend == config.BackendRedis {
		rdb, err = cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
	}

	store, closeStore, err := repository.Open(ctx, cfg, rdb)
	if err != nil {
		if rdb != nil {
			rdb.Close()
		}
		return nil, nil, err
	}

	cleanup := func() {
		closeStore()
		if rdb != nil {
			rdb.Close()
		}
	}

	engine, err := services.NewEngine(ctx, domain.DefaultCatalog(), store, services.WithClock(app.now))
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return engine, cleanup, nil
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's habits and the current streak",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, done, err := openEngine(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer done()

			snapshot, err := engine.Current(cmd.Context())
			if err != nil {
				return err
			}
			stats, err := services.NewStatsService(engine).GetStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderHabits(snapshot, stats))
			return nil
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <habit-id>",
		Short: "Flip a habit's completion for today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, done, err := openEngine(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer done()

			id := strings.TrimSpace(args[0])
			habit, ok := engine.Catalog().Get(id)
			if !ok {
				return fmt.Errorf("%w: %q (see `habits catalog`)", domain.ErrHabitNotFound, id)
			}

			snapshot, err := engine.Toggle(cmd.Context(), id)
			if err != nil {
				return err
			}
			stats, err := services.NewStatsService(engine).GetStats(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), RenderToggled(habit, snapshot))
			fmt.Fprint(cmd.OutOrStdout(), RenderHabits(snapshot, stats))
			return nil
		},
	}
}

func newHeatmapCmd(app *App) *cobra.Command {
	var end string
	var days int

	cmd := &cobra.Command{
		Use:   "heatmap",
		Short: "Show completions per day for the last year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var endKey domain.DayKey
			if end != "" {
				parsed, err := domain.ParseDayKey(end)
				if err != nil {
					return err
				}
				endKey = parsed
			}

			engine, done, err := openEngine(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer done()

			hm, err := services.NewStatsService(engine).GetHeatmap(cmd.Context(), endKey, days)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderHeatmap(hm))
			return nil
		},
	}

	cmd.Flags().StringVar(&end, "end", "", "Last day shown, YYYY-MM-DD (default: today)")
	cmd.Flags().IntVar(&days, "days", services.HeatmapDays, "Number of days shown")
	return cmd
}

func newStatsCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show streaks and active days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, done, err := openEngine(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer done()

			stats, err := services.NewStatsService(engine).GetStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderStats(stats))
			return nil
		},
	}
}

func newResetCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase all history and streaks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Reset all history and streaks? [y/N] ") {
				fmt.Fprintln(cmd.OutOrStdout(), "Reset cancelled.")
				return nil
			}

			engine, done, err := openEngine(cmd.Context(), app)
			if err != nil {
				return err
			}
			defer done()

			if _, err := engine.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "All history and streaks were reset.")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newCatalogCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the habits that can be toggled",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprint(cmd.OutOrStdout(), RenderCatalog(domain.DefaultCatalog().Defaults()))
			return nil
		},
	}
}

func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
