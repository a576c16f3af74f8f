package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/FrenchMajesty/dynamic-connectivity/internal/app"
	"github.com/FrenchMajesty/dynamic-connectivity/pkg/snapshot"
)

// env carries what every subcommand needs once flags and config are resolved
type env struct {
	v       *viper.Viper
	cfgFile string
	cfg     app.Config
	logger  *slog.Logger

	// stores overrides snapshot.Open when set
	stores func(ctx context.Context) (snapshot.Store, error)
}

func (e *env) openStore(ctx context.Context) (snapshot.Store, error) {
	if e.stores != nil {
		return e.stores(ctx)
	}
	backend, err := snapshot.ParseBackend(e.cfg.Backend)
	if err != nil {
		return nil, err
	}
	return snapshot.Open(ctx, backend, e.cfg.Store, e.logger)
}

// NewRootCommand builds the dynconn command tree
func NewRootCommand() *cobra.Command {
	return newRootCommand(&env{v: viper.New()})
}

func newRootCommand(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:   "dynconn",
		Short: "Dynamic connectivity with union-find",
		Long: `dynconn answers whether two objects are connected as pairs are joined.

It runs an interactive pair session, estimates percolation thresholds and
manages saved union-find snapshots.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Load(e.v, e.cfgFile)
			if err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = app.NewLogger(cmd.ErrOrStderr(), cfg.Verbose)
			e.logger.Debug("configuration loaded",
				"strategy", cfg.Strategy, "backend", cfg.Backend, "store", cfg.Store)
			return nil
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&e.cfgFile, "config", "", "Config file (yaml, json or toml)")
	flags.String("backend", string(snapshot.BackendFile), "Snapshot backend: file, bolt or badger")
	flags.String("store", "", "Snapshot store path (default ./snapshots, ./snapshots.db for bolt, ./snapshots.badger for badger)")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	bindFlags(e.v, flags, "config")

	root.AddCommand(newInteractiveCommand(e))
	root.AddCommand(newPercolationCommand(e))
	root.AddCommand(newSnapshotCommand(e))
	root.AddCommand(newBenchCommand(e))
	return root
}

// Execute runs the root command and exits non-zero on failure
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle(os.Stderr).Render("Error: "+err.Error()))
		stop()
		os.Exit(1)
	}
}

// bindFlags makes every flag in fs, apart from skip, visible to v under its own name
func bindFlags(v *viper.Viper, fs *pflag.FlagSet, skip ...string) {
	fs.VisitAll(func(f *pflag.Flag) {
		for _, name := range skip {
			if f.Name == name {
				return
			}
		}
		_ = v.BindPFlag(f.Name, f)
	})
}

// Styles render plain text when w is not a terminal.
func titleStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF99"))
}

func mutedStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
}

func errorStyle(w io.Writer) lipgloss.Style {
	return lipgloss.NewRenderer(w).NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5555"))
}
