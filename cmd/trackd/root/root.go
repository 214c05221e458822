package root

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

const Version = "0.1.0"

var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

type globalFlags struct {
	configFile string
	envFile    string
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	cmd := &cobra.Command{
		Use:           "trackd",
		Short:         "Habit tracker with rolling 30-day boards, streaks and coins",
		Long:          "trackd tracks daily habits on a rolling 30-day board. Checked days earn coins and keep streaks alive.",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBoard(cmd, flags)
		},
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")
	cmd.PersistentFlags().StringVar(&flags.configFile, "config", "", "config file (default ./trackd.{yaml,toml,json})")
	cmd.PersistentFlags().StringVar(&flags.envFile, "env-file", "", "dotenv file (default ./.env)")

	cmd.AddCommand(
		newBoardCmd(flags),
		newServeCmd(flags),
		newStatusCmd(flags),
		newAddCmd(flags),
		newCheckCmd(flags),
		newClaimCmd(flags),
		newRmCmd(flags),
		newThemeCmd(flags),
		newResetCmd(flags),
		newDBCmd(flags),
	)
	return cmd
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}
