package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	from   string
	to     string
	amount int64
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Submit a transaction to the pending pool",
	RunE:  sendRun,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&from, "from", "f", "", "Sending account, defaults to the key's account.")
	sendCmd.Flags().StringVarP(&to, "to", "t", "", "Receiving account.")
	sendCmd.Flags().Int64VarP(&amount, "amount", "v", 0, "Value to send.")
	sendCmd.MarkFlagRequired("to")
}

func sendRun(cmd *cobra.Command, args []string) error {
	fromID := database.AccountID(from)
	if fromID == "" {
		var err error
		if fromID, err = loadAccountID(); err != nil {
			return err
		}
	}

	data, err := json.Marshal(database.NewTx(fromID, database.AccountID(to), amount))
	if err != nil {
		return err
	}

	resp, err := http.Post(fmt.Sprintf("%s/v1/tx/submit", url), "application/json", bytes.NewReader(data))
	if err != nil {
		return err
	}

	var status struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}
	if err := decodeResponse(resp, &status); err != nil {
		return err
	}

	pterm.Success.Printfln("%s: pending[%d]", status.Status, status.Pending)
	return nil
}
