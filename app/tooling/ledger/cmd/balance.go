package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	balanceAccount string
	balanceAll     bool
)

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Print account balances",
	RunE:  balanceRun,
}

func init() {
	rootCmd.AddCommand(balanceCmd)
	balanceCmd.Flags().StringVarP(&balanceAccount, "of", "o", "", "Account to query, defaults to the key's account.")
	balanceCmd.Flags().BoolVar(&balanceAll, "all", false, "Print every account with a balance.")
}

func balanceRun(cmd *cobra.Command, args []string) error {
	path := fmt.Sprintf("%s/v1/balances/list", url)
	if !balanceAll {
		accountID := balanceAccount
		if accountID == "" {
			id, err := loadAccountID()
			if err != nil {
				return err
			}
			accountID = string(id)
		}
		path += "/" + accountID
	}

	resp, err := http.Get(path)
	if err != nil {
		return err
	}

	var bals balances
	if err := decodeResponse(resp, &bals); err != nil {
		return err
	}

	data := pterm.TableData{{"Account", "Name", "Balance"}}
	for _, bal := range bals.Balances {
		data = append(data, []string{bal.Account, bal.Name, strconv.FormatInt(bal.Balance, 10)})
	}

	pterm.Info.Printfln("latest block %s, %d pending", bals.LatestBlock, bals.Uncommitted)
	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
