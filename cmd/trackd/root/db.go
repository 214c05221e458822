package root

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sandeepkv93/trackd/internal/storage"
)

func newDBCmd(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Inspect or roll back the data store",
	}
	cmd.AddCommand(newDBInfoCmd(flags), newDBRollbackCmd(flags))
	return cmd
}

func newDBInfoCmd(flags *globalFlags) *cobra.Command {
	var filter storage.DocumentListFilter
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show the backend, schema version and stored documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("backend: %s", e.cfg.Backend)))
			fmt.Fprintf(out, "path: %s\n", e.cfg.ResolvedDataPath())
			schema := "n/a"
			if v, ok := e.repo.(storage.Versioned); ok {
				version, err := v.SchemaVersion()
				if err != nil {
					return err
				}
				schema = version
				if schema == "" {
					schema = "none"
				}
			}
			fmt.Fprintf(out, "schema: %s\n", schema)

			docs, err := e.repo.ListDocuments(cmd.Context(), filter)
			if err != nil {
				return fmt.Errorf("list documents: %w", err)
			}
			if len(docs) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("no documents"))
				return nil
			}
			for _, d := range docs {
				fmt.Fprintf(out, "%-22s %6d bytes  %s\n", d.Key, len(d.Body), mutedStyle.Render(d.UpdatedAt.Format("2006-01-02 15:04:05")))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&filter.Prefix, "prefix", "", "only keys with this prefix")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum documents to list (0 lists all)")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "documents to skip")
	return cmd
}

func newDBRollbackCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Revert every schema migration, dropping stored documents",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintln(cmd.OutOrStdout(), "not rolled back: pass --yes to drop the schema and all documents")
				return nil
			}
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			v, ok := e.repo.(storage.Versioned)
			if !ok {
				return fmt.Errorf("%s backend has no schema to roll back", e.cfg.Backend)
			}
			if err := v.Rollback(); err != nil {
				return fmt.Errorf("rollback: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), "schema rolled back")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the rollback")
	return cmd
}
