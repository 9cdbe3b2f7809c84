package cmd

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var chainCmd = &cobra.Command{
	Use:   "chain",
	Short: "Print the blocks in the chain",
	RunE:  chainRun,
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the chain's hashes, links and proof of work",
	RunE:  validateRun,
}

func init() {
	rootCmd.AddCommand(chainCmd)
	rootCmd.AddCommand(validateCmd)
}

func chainRun(cmd *cobra.Command, args []string) error {
	resp, err := http.Get(fmt.Sprintf("%s/v1/blocks/list", url))
	if err != nil {
		return err
	}

	var blocks []block
	if err := decodeResponse(resp, &blocks); err != nil {
		return err
	}

	data := pterm.TableData{{"Number", "Hash", "Prev Hash", "Nonce", "Txs"}}
	for _, blk := range blocks {
		data = append(data, []string{
			strconv.FormatUint(blk.Number, 10),
			blk.Hash,
			blk.PrevBlockHash,
			strconv.FormatUint(blk.Nonce, 10),
			strconv.Itoa(len(blk.Transactions)),
		})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func validateRun(cmd *cobra.Command, args []string) error {
	resp, err := http.Get(fmt.Sprintf("%s/v1/chain/validate", url))
	if err != nil {
		return err
	}

	var status chainStatus
	if err := decodeResponse(resp, &status); err != nil {
		return err
	}

	printStatus(status)
	return nil
}

// =============================================================================

func printStatus(status chainStatus) {
	switch status.Valid {
	case true:
		pterm.Success.Printfln("chain of %d blocks is valid", status.Blocks)
	default:
		pterm.Error.Printfln("chain is invalid: %s", status.Error)
	}

	switch status.WorkVerified {
	case true:
		pterm.Success.Println("every block satisfies the difficulty")
	default:
		pterm.Warning.Printfln("proof of work audit failed: %s", status.WorkError)
	}
}

func renderTxs(txs []tx) error {
	if len(txs) == 0 {
		pterm.Info.Println("no transactions")
		return nil
	}

	data := pterm.TableData{{"From", "To", "Amount"}}
	for _, tx := range txs {
		from := tx.From
		if from == "" {
			from = "system"
		}
		data = append(data, []string{from, tx.To, strconv.FormatInt(tx.Amount, 10)})
	}

	return pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}
