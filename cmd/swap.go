package cmd

import (
	"encoding/json"

	"tokenservice/handler/views"

	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var swapCmd = &cobra.Command{
	Use:   "swap <from> <to> <amount>",
	Short: "simulate a swap through the router and print the quote",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx).WithField("cmd", "swap")
		ctx = logger.WithContext(ctx, log)

		slippage, _ := cmd.Flags().GetString("slippage")

		chain := provideChain()
		swaps := provideSwapService(chain, provideAssetRegistry())

		quote, err := swaps.SimulateString(ctx, args[0], args[1], args[2], slippage)
		if err != nil {
			return err
		}

		data, err := json.MarshalIndent(views.QuoteView(quote), "", "    ")
		if err != nil {
			return err
		}

		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(swapCmd)
	swapCmd.Flags().String("slippage", "0.5", "slippage tolerance in percent")
}
