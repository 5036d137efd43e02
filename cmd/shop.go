package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/abhisek/owllearn/internal/app"
	"github.com/abhisek/owllearn/internal/shop"
	"github.com/abhisek/owllearn/internal/ui/theme"
	"github.com/spf13/cobra"
)

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Spend gems on refills and boosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return shopListCmd.RunE(cmd, args)
	},
}

var shopListCmd = &cobra.Command{
	Use:   "list",
	Short: "List shop items and active boosts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Gems.Render(fmt.Sprintf("💎 %d gems", a.State().Gems)))
			for _, it := range shop.Catalog() {
				line := fmt.Sprintf("%s %-20s %4d  %s", it.Icon, it.ID, it.Price, it.Description)
				if it.Timed() {
					line += fmt.Sprintf(" (%s)", it.Duration)
				}
				fmt.Fprintln(out, line)
			}

			boosts, err := a.Shop().ActiveBoosts(ctx)
			if err != nil {
				return err
			}
			active := []struct {
				name  string
				until time.Time
			}{
				{"double XP", boosts.DoubleXPUntil},
				{"mistake protection", boosts.MistakeProtectionUntil},
				{"streak freeze", boosts.StreakFreezeUntil},
			}
			for _, b := range active {
				if !b.until.IsZero() {
					fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("active: %s until %s", b.name, b.until.Format(time.Kitchen))))
				}
			}
			return nil
		})
	},
}

var shopBuyCmd = &cobra.Command{
	Use:   "buy <item>",
	Short: "Buy an item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, a *app.App) error {
			r, err := a.Shop().Purchase(ctx, shop.ItemID(args[0]))
			var short *shop.InsufficientFundsError
			if errors.As(err, &short) {
				return fmt.Errorf("%w: you need %d more gems", err, short.Shortfall())
			}
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, theme.Correct.Render(fmt.Sprintf("Bought %s %s", r.Item.Icon, r.Item.Name)))
			if !r.ExpiresAt.IsZero() {
				fmt.Fprintf(out, "Active until %s\n", r.ExpiresAt.Format(time.Kitchen))
			}
			fmt.Fprintf(out, "❤ %d  💎 %d\n", r.State.Hearts, r.State.Gems)
			return nil
		})
	},
}

func init() {
	shopCmd.AddCommand(shopListCmd)
	shopCmd.AddCommand(shopBuyCmd)
}
