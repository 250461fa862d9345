package cmd

import (
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var priceCmd = &cobra.Command{
	Use:   "price [token]",
	Short: "print the latest oracle price, native asset by default",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx).WithField("cmd", "price")
		ctx = logger.WithContext(ctx, log)

		var token string
		if len(args) > 0 {
			token = args[0]
		}

		chain := provideChain()
		prices := providePriceService(chain, provideAssetRegistry())

		price, err := prices.GetPrice(ctx, token)
		if err != nil {
			return err
		}

		cmd.Println(price.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(priceCmd)
}
