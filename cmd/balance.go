package cmd

import (
	"fmt"

	"tokenservice/core"

	"github.com/ethereum/go-ethereum/common"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var balanceCmd = &cobra.Command{
	Use:   "balance <address> [token]",
	Short: "print the native or token balance of address",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		log := logger.FromContext(ctx).WithField("cmd", "balance")
		ctx = logger.WithContext(ctx, log)

		if !core.IsHexAddress(args[0]) {
			return fmt.Errorf("invalid owner address %q", args[0])
		}

		var token string
		if len(args) > 1 {
			token = args[1]
		}

		chain := provideChain()
		balances := provideBalanceService(chain, provideAssetRegistry())

		balance, err := balances.GetBalance(ctx, common.HexToAddress(args[0]), token)
		if err != nil {
			return err
		}

		cmd.Println(balance.String())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
