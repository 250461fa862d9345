package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"tokenservice/pkg/resthttp"

	"github.com/spf13/cobra"
)

var callCmd = &cobra.Command{
	Use:   "call [tool] [key=value...]",
	Short: "call a tool of a running server, list the tools without arguments",
	Example: `  tokenservice call
  tokenservice call get_balance address=0x000000000000000000000000000000000000dEaD token=USDC
  tokenservice call swap_tokens from_token=ETH to_token=USDC amount_in=0.001 slippage=0.5`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		endpoint, _ := cmd.Flags().GetString("endpoint")
		client := resthttp.New(endpoint)

		var (
			resp json.RawMessage
			err  error
		)

		if len(args) == 0 {
			resp, err = client.ListTools(ctx)
		} else {
			var params map[string]interface{}
			if params, err = parseToolArgs(args[1:]); err != nil {
				return err
			}

			resp, err = client.CallTool(ctx, args[0], params)
		}

		if err != nil {
			return err
		}

		var out bytes.Buffer
		if err := json.Indent(&out, resp, "", "    "); err != nil {
			return err
		}

		cmd.Println(out.String())
		return nil
	},
}

// parseToolArgs key=value pairs into a json object, values are kept as
// strings so amounts and slippage never pass through floats
func parseToolArgs(args []string) (map[string]interface{}, error) {
	params := make(map[string]interface{}, len(args))
	for _, arg := range args {
		idx := strings.Index(arg, "=")
		if idx <= 0 {
			return nil, fmt.Errorf("argument %q is not key=value", arg)
		}

		params[arg[:idx]] = arg[idx+1:]
	}

	return params, nil
}

func init() {
	rootCmd.AddCommand(callCmd)
	callCmd.Flags().String("endpoint", "http://localhost:9000", "server endpoint")
}
