package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/khalari/khalari/internal/payment"
	"github.com/khalari/khalari/internal/store"
	"github.com/spf13/cobra"
)

var diamondsCmd = &cobra.Command{
	Use:   "diamonds",
	Short: "Browse and buy diamond packs",
}

var diamondsPacksCmd = &cobra.Command{
	Use:   "packs",
	Short: "List the diamond packs for sale",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-10s  %-14s  %8s  %6s  %s\n", "ID", "Pack", "Diamonds", "Bonus", "Price")
		fmt.Fprintln(out, strings.Repeat("─", 56))
		for _, p := range payment.Packs {
			tag := ""
			if p.Popular {
				tag = "  ★ popular"
			}
			fmt.Fprintf(out, "%-10s  %-14s  %8d  %6d  %s%s\n", p.ID, p.Name, p.Diamonds, p.Bonus, p.Price(), tag)
		}
		return nil
	},
}

var diamondsBuyCmd = &cobra.Command{
	Use:   "buy <pack-id>",
	Short: "Buy a diamond pack",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		pack, ok := payment.Lookup(args[0])
		if !ok {
			return fmt.Errorf("%w: %q (see `khalari diamonds packs`)", payment.ErrUnknownPack, args[0])
		}

		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()
		if err := e.requireOnboarded(); err != nil {
			return err
		}

		ctx := cmd.Context()
		l := e.svc.Learner()
		widget := payment.PromptWidget{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
		credited := false
		err = payment.Checkout(ctx, widget, e.cfg.Payment.KeyID, pack,
			payment.Buyer{Name: l.Name, Phone: l.Phone},
			func(c payment.Confirmation, p payment.Pack) error {
				var err error
				credited, err = e.svc.Purchase(ctx, store.PurchaseData{
					PaymentID:   c.PaymentID,
					PackID:      p.ID,
					Diamonds:    p.Total(),
					AmountPaise: p.PricePaise,
				})
				return err
			})
		switch {
		case errors.Is(err, payment.ErrCancelled):
			fmt.Fprintln(cmd.OutOrStdout(), "Payment cancelled. No diamonds were added.")
			return nil
		case err != nil:
			return fmt.Errorf("checkout: %w", err)
		case !credited:
			fmt.Fprintln(cmd.OutOrStdout(), "This payment was already credited.")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Added %d diamonds! Balance: %d\n", pack.Total(), e.svc.Learner().Balance)
		return nil
	},
}

var diamondsHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "List past purchases",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd, true, false)
		if err != nil {
			return err
		}
		defer e.Close()

		purchases, err := e.store.EventRepo().QueryPurchases(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query purchases: %w", err)
		}
		if len(purchases) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No purchases yet.")
			return nil
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-19s  %-10s  %8s  %8s  %s\n", "Timestamp", "Pack", "Diamonds", "Paid", "Payment")
		fmt.Fprintln(out, strings.Repeat("─", 72))
		for _, p := range purchases {
			paid := payment.Pack{PricePaise: p.AmountPaise}.Price()
			fmt.Fprintf(out, "%-19s  %-10s  %8d  %8s  %s\n",
				p.Timestamp.Local().Format("2006-01-02 15:04:05"), p.PackID, p.Diamonds, paid, p.PaymentID)
		}
		return nil
	},
}

func init() {
	diamondsHistoryCmd.Flags().IntP("limit", "n", 20, "Number of purchases to show")

	diamondsCmd.AddCommand(diamondsPacksCmd)
	diamondsCmd.AddCommand(diamondsBuyCmd)
	diamondsCmd.AddCommand(diamondsHistoryCmd)
}
