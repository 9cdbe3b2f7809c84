package cmd

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/genesis"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

var (
	demoDifficulty uint
	demoReward     int64
	demoStrategy   string
	demoVerbose    bool
)

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the ledger in process: submit a transfer and mine two blocks",
	RunE:  demoRun,
}

func init() {
	def := genesis.Default()

	rootCmd.AddCommand(demoCmd)
	demoCmd.Flags().UintVarP(&demoDifficulty, "difficulty", "d", def.Difficulty, "Number of leading zeros a block hash needs.")
	demoCmd.Flags().Int64VarP(&demoReward, "reward", "r", def.MiningReward, "Value paid for mining a block.")
	demoCmd.Flags().StringVarP(&demoStrategy, "strategy", "s", def.HashStrategy, "Digest used for block hashes, sha256 or keccak256.")
	demoCmd.Flags().BoolVar(&demoVerbose, "verbose", false, "Print the ledger's mining events.")
}

func demoRun(cmd *cobra.Command, args []string) error {
	const (
		address1 = database.AccountID("address1")
		address2 = database.AccountID("address2")
		miner    = database.AccountID("miner-address")
	)

	gen := genesis.Default()
	gen.Difficulty = demoDifficulty
	gen.MiningReward = demoReward
	gen.HashStrategy = demoStrategy

	ev := func(v string, args ...any) {
		s := fmt.Sprintf(v, args...)
		if demoVerbose && !strings.HasPrefix(s, "viewer:") {
			pterm.Debug.Println(s)
		}
	}
	if demoVerbose {
		pterm.EnableDebugMessages()
	}

	st, err := state.New(state.Config{
		BeneficiaryID: miner,
		Genesis:       gen,
		EvHandler:     ev,
	})
	if err != nil {
		return err
	}
	defer st.Shutdown()

	st.SubmitTransaction(database.NewTx(address1, address2, 10))
	pterm.Info.Printfln("submitted %s->%s: 10", address1, address2)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	for round := 1; round <= 2; round++ {
		spinner, _ := pterm.DefaultSpinner.Start(fmt.Sprintf("Mining round %d ...", round))

		blk, err := st.MinePendingTransactions(ctx, miner)
		if err != nil {
			spinner.Fail(err)
			return err
		}
		spinner.Success(fmt.Sprintf("block mined: %s nonce[%d]", blk.Hash, blk.Nonce))

		data := pterm.TableData{{"Account", "Balance"}}
		for _, acct := range []database.AccountID{address1, address2, miner} {
			data = append(data, []string{string(acct), strconv.FormatInt(st.BalanceOf(acct), 10)})
		}
		if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
			return err
		}
	}

	status := chainStatus{
		Valid:        true,
		WorkVerified: true,
		Blocks:       len(st.RetrieveBlocks()),
	}
	if err := st.ValidateChain(); err != nil {
		status.Valid = false
		status.Error = err.Error()
	}
	if err := st.VerifyWork(); err != nil {
		status.WorkVerified = false
		status.WorkError = err.Error()
	}
	printStatus(status)

	return nil
}
