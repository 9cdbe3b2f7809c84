package cmd

import (
	"fmt"
	"net/http"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	rewardAccount string
	signalOnly    bool
)

var mineCmd = &cobra.Command{
	Use:   "mine",
	Short: "Mine the pending pool into a new block",
	RunE:  mineRun,
}

func init() {
	rootCmd.AddCommand(mineCmd)
	mineCmd.Flags().StringVarP(&rewardAccount, "reward", "r", "", "Account paid the reward, defaults to the node's beneficiary.")
	mineCmd.Flags().BoolVar(&signalOnly, "signal", false, "Signal the node's background worker and return.")
}

func mineRun(cmd *cobra.Command, args []string) error {
	if signalOnly {
		resp, err := http.Get(fmt.Sprintf("%s/v1/mining/signal", url))
		if err != nil {
			return err
		}
		if err := decodeResponse(resp, nil); err != nil {
			return err
		}

		pterm.Success.Println("mining signalled")
		return nil
	}

	path := fmt.Sprintf("%s/v1/mining/mine", url)
	if rewardAccount != "" {
		path += "/" + rewardAccount
	}

	spinner, _ := pterm.DefaultSpinner.Start("Mining the pending pool ...")

	resp, err := http.Post(path, "application/json", nil)
	if err != nil {
		spinner.Fail(err)
		return err
	}

	var blk block
	if err := decodeResponse(resp, &blk); err != nil {
		spinner.Fail(err)
		return err
	}

	spinner.Success(fmt.Sprintf("block[%d] mined: %s nonce[%d]", blk.Number, blk.Hash, blk.Nonce))
	return renderTxs(blk.Transactions)
}
