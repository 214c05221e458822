package root

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/trackd/internal/commands"
	"github.com/sandeepkv93/trackd/internal/model"
)

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

func newStatusCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show tasks, streaks and coins",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			o, err := e.store.Overview(ctx)
			if err != nil {
				return err
			}
			tasks, err := e.store.ListTasks(ctx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, headingStyle.Render(fmt.Sprintf("trackd %s (%s)", o.Today, model.WeekdayShort(o.Today.Weekday()))))
			fmt.Fprintf(out, "wallet: %d | ready to claim: %d | mega streak: %d\n", o.Wallet, o.Unclaimed, o.MegaStreak)
			fmt.Fprintf(out, "done today: %d/%d | active: %d | broken: %d\n", o.DoneToday, o.TotalTasks, o.Active, o.Broken)
			fmt.Fprintln(out, "")
			if len(tasks) == 0 {
				fmt.Fprintln(out, mutedStyle.Render("no tasks, add one with: trackd add <name>"))
				return nil
			}
			for i, tv := range tasks {
				mark := " "
				if tv.Task.DoneOn(o.Today) {
					mark = "x"
				}
				fmt.Fprintf(out, "%2d. [%s] %-24s %s %s\n", i+1, mark, tv.Task.Name, tv.Streak.Label(), mutedStyle.Render(tv.Task.ID))
			}
			return nil
		},
	}
}

func newAddCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "add <name>",
		Short: "Add a task",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errors.New("name is required")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			view, added, err := e.store.AddTask(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			if !added {
				fmt.Fprintln(cmd.OutOrStdout(), "empty name, nothing added")
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", view.Task.Name, view.Task.ID)
			return nil
		},
	}
}

func newCheckCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "check <task> [day]",
		Short: "Toggle a day for a task (day: today, tomorrow, +N or YYYY-MM-DD)",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			tv, err := e.store.FindTask(ctx, args[0])
			if err != nil {
				return err
			}
			dayRef := "today"
			if len(args) == 2 {
				dayRef = args[1]
			}
			day, err := commands.ParseDay(dayRef, model.DayKeyOf(e.store.Now()))
			if err != nil {
				return err
			}
			updated, err := e.store.ToggleDay(ctx, tv.Task.ID, day)
			if err != nil {
				return err
			}
			state := "cleared"
			if updated.Task.DoneOn(day) {
				state = "done"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s %s | %s\n", updated.Task.Name, day, state, updated.Streak.Label())
			return nil
		},
	}
}

func newClaimCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "claim",
		Short: "Move earned coins into the wallet",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := e.store.ClaimCoins(cmd.Context())
			if err != nil {
				return err
			}
			if res.Claimed == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "nothing to claim (wallet %d)\n", res.Profile.Profile.Wallet)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "claimed %d coin(s), wallet %d\n", res.Claimed, res.Profile.Profile.Wallet)
			return nil
		},
	}
}

func newRmCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "rm <task>",
		Short: "Delete a task (requires --yes)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			tv, err := e.store.FindTask(ctx, args[0])
			if err != nil {
				return err
			}
			deleted, err := e.store.DeleteTask(ctx, tv.Task.ID, yes)
			if err != nil {
				return err
			}
			if !deleted {
				fmt.Fprintf(cmd.OutOrStdout(), "not deleted: pass --yes to delete %s\n", tv.Task.Name)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", tv.Task.Name)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the delete")
	return cmd
}

func newThemeCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "theme [current|light|black]",
		Short: "Show, set or cycle the theme",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			var theme model.Theme
			if len(args) == 0 {
				theme, err = e.store.CycleTheme(ctx)
			} else {
				theme = model.Theme(strings.ToLower(args[0]))
				err = e.store.SetTheme(ctx, theme)
			}
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme: %s\n", theme.Label())
			return nil
		},
	}
}

func newResetCmd(flags *globalFlags) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe tasks, streaks and coins (requires --yes)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				fmt.Fprintln(cmd.OutOrStdout(), "not reset: pass --yes to wipe all progress")
				return nil
			}
			e, cleanup, err := openEnv(flags, openOptions{})
			if err != nil {
				return err
			}
			defer cleanup()

			if err := e.store.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "progress reset")
			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the reset")
	return cmd
}
