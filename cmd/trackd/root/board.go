package root

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/trackd/internal/scheduler"
	"github.com/sandeepkv93/trackd/internal/update"
)

func newBoardCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "board",
		Short: "Open the TUI dashboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, flags)
		},
	}
}

func runBoard(cmd *cobra.Command, flags *globalFlags) error {
	ctx := cmd.Context()
	e, cleanup, err := openEnv(flags, openOptions{})
	if err != nil {
		return err
	}
	defer cleanup()

	if err := e.store.Load(ctx); err != nil {
		return err
	}

	engine := scheduler.NewEngine(e.cfg.SchedulerBuffer)
	engine.Start()
	defer engine.Stop()

	m := update.NewModel(e.store, update.Options{
		Context:       ctx,
		Logger:        e.log,
		Scheduler:     engine,
		PulseInterval: e.cfg.PulseInterval(),
	})
	program := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = program.Run()
	return err
}
