package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
	"github.com/FrenchMajesty/dynamic-connectivity/internal/session"
	"github.com/FrenchMajesty/dynamic-connectivity/pkg/mapped"
	"github.com/FrenchMajesty/dynamic-connectivity/pkg/snapshot"
)

var errSizeConflict = errors.New("size does not match restored snapshot")

type interactiveOptions struct {
	size     int
	snapshot string
	mapped   string
	quiet    bool
}

func newInteractiveCommand(e *env) *cobra.Command {
	var opts interactiveOptions

	cmd := &cobra.Command{
		Use:   "interactive",
		Short: "Join pairs of objects read from stdin",
		Long: `Reads lines of the form p,q and joins p and q unless they are already
connected. Enter x to stop.

Example:
  dynconn interactive --size 10
  dynconn interactive --size 10 --strategy weighted --snapshot demo
  printf '10\n4,3\n3,8\nx\n' | dynconn interactive --quiet`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context(), e, opts, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().IntVarP(&opts.size, "size", "n", 0, "Number of objects N (prompted when omitted)")
	cmd.Flags().String("strategy", string(unionfind.DefaultStrategy), "Strategy: quick-find, quick-union or weighted")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "Restore from and save to this snapshot")
	cmd.Flags().StringVar(&opts.mapped, "mapped", "", "Keep a weighted forest in this memory-mapped file")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "Do not print prompts")
	cmd.MarkFlagsMutuallyExclusive("snapshot", "mapped")
	_ = e.v.BindPFlag("strategy", cmd.Flags().Lookup("strategy"))

	return cmd
}

func runInteractive(ctx context.Context, e *env, opts interactiveOptions, stdin io.Reader, stdout, stderr io.Writer) error {
	in := bufio.NewReader(stdin)
	prompts := stdout
	if opts.quiet {
		prompts = nil
	}

	var store snapshot.Store
	var uf unionfind.UnionFind

	if opts.snapshot != "" {
		if err := snapshot.ValidateName(opts.snapshot); err != nil {
			return err
		}
		s, err := e.openStore(ctx)
		if err != nil {
			return fmt.Errorf("failed to open snapshot store: %w", err)
		}
		defer s.Close()
		store = s

		uf, err = restore(ctx, e, store, opts.snapshot, stderr)
		if err != nil {
			return err
		}
		if uf != nil && opts.size != 0 && opts.size != uf.Len() {
			return fmt.Errorf("%w: --size %d, snapshot %s holds %d objects", errSizeConflict, opts.size, opts.snapshot, uf.Len())
		}
	}

	if uf == nil {
		n := opts.size
		if n == 0 {
			var err error
			if n, err = session.ReadSize(in, prompts); err != nil {
				return err
			}
		}

		if opts.mapped != "" {
			forest, err := mapped.Open(opts.mapped, n)
			if err != nil {
				return err
			}
			defer forest.Close()
			e.logger.Debug("opened mapped forest", "path", forest.Path(), "n", n, "components", forest.Count())
			uf = forest
		} else {
			strategy, err := unionfind.ParseStrategy(e.cfg.Strategy)
			if err != nil {
				return err
			}
			if uf, err = unionfind.New(unionfind.Config{Size: n, Strategy: strategy}); err != nil {
				return err
			}
		}
	}

	sessionOpts := []session.Option{session.WithLogger(e.logger)}
	if opts.quiet {
		sessionOpts = append(sessionOpts, session.WithoutPrompt())
	}
	sum, runErr := session.New(uf, in, stdout, sessionOpts...).Run(ctx)

	m := unionfind.MetricsOf(uf)
	e.logger.Info("session finished",
		"pairs", sum.Pairs, "merged", sum.Merged, "already_connected", sum.AlreadyConnected,
		"rejected", sum.Rejected, "components", m.Components, "largest", m.LargestComponent)

	if store != nil {
		// merged pairs are saved even when the session was cancelled
		if err := save(context.WithoutCancel(ctx), store, opts.snapshot, uf, stderr); err != nil {
			return errors.Join(runErr, err)
		}
	}
	return runErr
}

func restore(ctx context.Context, e *env, store snapshot.Store, name string, stderr io.Writer) (unionfind.UnionFind, error) {
	snap, err := store.Load(ctx, name)
	if errors.Is(err, snapshot.ErrNotFound) {
		e.logger.Debug("no snapshot to restore", "name", name)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}

	uf, err := snap.Restore()
	if err != nil {
		return nil, fmt.Errorf("failed to restore snapshot %s: %w", name, err)
	}
	fmt.Fprintln(stderr, mutedStyle(stderr).Render(fmt.Sprintf(
		"Restored %s: %d objects, %d components (%s)", name, snap.Size, snap.Components, snap.Strategy)))
	return uf, nil
}

func save(ctx context.Context, store snapshot.Store, name string, uf unionfind.UnionFind, stderr io.Writer) error {
	snap, err := snapshot.Capture(name, uf)
	if err != nil {
		return fmt.Errorf("failed to capture snapshot %s: %w", name, err)
	}
	if err := store.Save(ctx, snap); err != nil {
		return fmt.Errorf("failed to save snapshot %s: %w", name, err)
	}
	fmt.Fprintln(stderr, mutedStyle(stderr).Render(fmt.Sprintf(
		"Saved %s: %d objects, %d components", name, snap.Size, snap.Components)))
	return nil
}
