package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	unionfind "github.com/FrenchMajesty/dynamic-connectivity"
)

func newSnapshotCommand(e *env) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Manage saved union-find snapshots",
	}
	cmd.AddCommand(newSnapshotListCommand(e))
	cmd.AddCommand(newSnapshotShowCommand(e))
	cmd.AddCommand(newSnapshotDeleteCommand(e))
	return cmd
}

func newSnapshotListCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List snapshot names",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			names, err := store.List(cmd.Context())
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func newSnapshotShowCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print the components of a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			snap, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			uf, err := snap.Restore()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			m := unionfind.MetricsOf(uf)
			fmt.Fprintln(out, titleStyle(out).Render(snap.Name))
			fmt.Fprintln(out, mutedStyle(out).Render(fmt.Sprintf(
				"id %s, %s, saved %s", snap.ID, snap.Strategy, snap.CreatedAt.Format("2006-01-02 15:04:05"))))
			fmt.Fprintf(out, "objects %d, components %d, largest %d, singletons %d\n",
				m.Elements, m.Components, m.LargestComponent, m.Singletons)
			for _, set := range uf.Components() {
				fmt.Fprintln(out, formatSet(set))
			}
			return nil
		},
	}
}

func newSnapshotDeleteCommand(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <name>",
		Short: "Delete a snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := e.openStore(cmd.Context())
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			e.logger.Debug("deleted snapshot", "name", args[0])
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func formatSet(set []int) string {
	parts := make([]string, len(set))
	for i, x := range set {
		parts[i] = strconv.Itoa(x)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
