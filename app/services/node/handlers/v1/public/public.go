// Package public maintains the group of handlers for public access.
package public

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/ardanlabs/powchain/business/web/errs"
	"github.com/ardanlabs/powchain/foundation/blockchain/database"
	"github.com/ardanlabs/powchain/foundation/blockchain/state"
	"github.com/ardanlabs/powchain/foundation/events"
	"github.com/ardanlabs/powchain/foundation/nameservice"
	"github.com/ardanlabs/powchain/foundation/validate"
	"github.com/ardanlabs/powchain/foundation/web"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// Handlers manages the set of ledger endpoints.
type Handlers struct {
	Log   *zap.SugaredLogger
	State *state.State
	NS    *nameservice.NameService
	WS    websocket.Upgrader
	Evts  *events.Events
}

// Events handles a web socket to provide events to a client.
func (h Handlers) Events(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	// Need this to handle CORS on the websocket.
	h.WS.CheckOrigin = func(r *http.Request) bool { return true }

	// This upgrades the HTTP connection to a websocket connection.
	c, err := h.WS.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	defer c.Close()

	h.Log.Infow("websocket open", "traceid", v.TraceID)

	// This provides a channel for receiving events from the ledger.
	ch := h.Evts.Acquire(v.TraceID)
	defer h.Evts.Release(v.TraceID)

	// Starting a ticker to send a ping message over the websocket.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	// Block waiting for events from the ledger or ticker.
	for {
		select {
		case msg, wd := <-ch:

			// If the channel is closed, release the websocket.
			if !wd {
				return nil
			}

			if err := c.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
				return err
			}

		case <-ticker.C:
			if err := c.WriteMessage(websocket.PingMessage, []byte("ping")); err != nil {
				return nil
			}
		}
	}
}

// SubmitTransaction adds a new transaction to the pending pool.
func (h Handlers) SubmitTransaction(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	v, err := web.GetValues(ctx)
	if err != nil {
		return web.NewShutdownError("web value missing from context")
	}

	var ntx NewTx
	if err := web.Decode(r, &ntx); err != nil {
		if validate.IsFieldErrors(err) {
			return err
		}
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	tx := database.NewTx(ntx.From, ntx.To, ntx.Amount)

	h.Log.Infow("submit tran", "traceid", v.TraceID, "tx", tx)
	h.State.SubmitTransaction(tx)

	resp := struct {
		Status  string `json:"status"`
		Pending int    `json:"pending"`
	}{
		Status:  "transaction added to pending pool",
		Pending: h.State.QueryMempoolLength(),
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// MineBlock mines the pending pool and returns once the block is on the
// chain. The reward goes to the account in the path or the node's
// beneficiary. Closing the request cancels the mining operation.
func (h Handlers) MineBlock(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	rewardID := database.AccountID(web.Param(r, "account"))
	if rewardID == "" {
		rewardID = h.State.RetrieveBeneficiary()
	}

	blk, err := h.State.MinePendingTransactions(ctx, rewardID)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return errs.NewTrusted(err, http.StatusServiceUnavailable)
		}
		return err
	}

	var num uint64
	for i, b := range h.State.RetrieveBlocks() {
		if b.Hash == blk.Hash {
			num = uint64(i)
		}
	}

	return web.Respond(ctx, w, h.toBlock(num, blk), http.StatusOK)
}

// SignalMining signals the background worker to mine the pending pool.
func (h Handlers) SignalMining(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	h.State.SignalMining()

	resp := struct {
		Status string `json:"status"`
	}{
		Status: "mining signalled",
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Genesis returns the genesis information.
func (h Handlers) Genesis(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	gen := h.State.RetrieveGenesis()
	return web.Respond(ctx, w, gen, http.StatusOK)
}

// Mempool returns the set of pending transactions.
func (h Handlers) Mempool(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	trans := h.toTxs(h.State.RetrieveMempool())
	return web.Respond(ctx, w, trans, http.StatusOK)
}

// Balances returns the current balances for all accounts or the one
// specified account.
func (h Handlers) Balances(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID := database.AccountID(web.Param(r, "account"))

	var bals []balance
	switch accountID {
	case "":
		for accountID, bal := range h.State.QueryBalances() {
			bals = append(bals, balance{
				Account: accountID,
				Name:    h.NS.Lookup(accountID),
				Balance: bal,
			})
		}

	default:
		bals = append(bals, balance{
			Account: accountID,
			Name:    h.NS.Lookup(accountID),
			Balance: h.State.BalanceOf(accountID),
		})
	}

	latest, err := h.State.LatestBlock()
	if err != nil {
		return err
	}

	resp := balances{
		LatestBlock: latest.Hash,
		Uncommitted: h.State.QueryMempoolLength(),
		Balances:    bals,
	}

	return web.Respond(ctx, w, resp, http.StatusOK)
}

// Blocks returns the entire chain.
func (h Handlers) Blocks(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	return web.Respond(ctx, w, h.toBlocks(h.State.RetrieveBlocks()), http.StatusOK)
}

// BlocksByNumber returns the blocks between the from and to numbers. Use
// "latest" for either to refer to the last block.
func (h Handlers) BlocksByNumber(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	from, err := parseNumber(web.Param(r, "from"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	to, err := parseNumber(web.Param(r, "to"))
	if err != nil {
		return errs.NewTrusted(err, http.StatusBadRequest)
	}

	latest := uint64(len(h.State.RetrieveBlocks()) - 1)
	if from == state.QueryLatest {
		from = latest
	}
	if to == state.QueryLatest {
		to = latest
	}

	if from > to {
		return errs.NewTrusted(errors.New("from is greater than to"), http.StatusBadRequest)
	}

	blocks, err := h.State.QueryBlocksByNumber(from, to)
	if err != nil {
		if errors.Is(err, database.ErrBlockNotFound) {
			return errs.NewTrusted(err, http.StatusNotFound)
		}
		return err
	}

	out := make([]block, len(blocks))
	for i, blk := range blocks {
		out[i] = h.toBlock(from+uint64(i), blk)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// BlocksByAccount returns the blocks with transactions for the account.
func (h Handlers) BlocksByAccount(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	accountID := database.AccountID(web.Param(r, "account"))

	var out []block
	for num, blk := range h.State.RetrieveBlocks() {
		if blk.HasAccount(accountID) {
			out = append(out, h.toBlock(uint64(num), blk))
		}
	}

	if len(out) == 0 {
		return web.Respond(ctx, w, nil, http.StatusNoContent)
	}

	return web.Respond(ctx, w, out, http.StatusOK)
}

// ValidateChain reports whether the chain passes validation. The proof of
// work audit is reported on its own since chain validation does not
// include it.
func (h Handlers) ValidateChain(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	status := chainStatus{
		Valid:        true,
		WorkVerified: true,
		Blocks:       len(h.State.RetrieveBlocks()),
	}

	if err := h.State.ValidateChain(); err != nil {
		status.Valid = false
		status.Error = err.Error()
	}

	if err := h.State.VerifyWork(); err != nil {
		status.WorkVerified = false
		status.WorkError = err.Error()
	}

	return web.Respond(ctx, w, status, http.StatusOK)
}

// =============================================================================

func (h Handlers) toTxs(trans []database.Tx) []tx {
	out := make([]tx, len(trans))
	for i, tran := range trans {
		out[i] = tx{
			FromAccount: tran.From,
			FromName:    h.NS.Lookup(tran.From),
			To:          tran.To,
			ToName:      h.NS.Lookup(tran.To),
			Amount:      tran.Amount,
		}
	}
	return out
}

func (h Handlers) toBlock(num uint64, blk database.Block) block {
	return block{
		Number:        num,
		TimeStamp:     blk.TimeStamp,
		PrevBlockHash: blk.PrevBlockHash,
		Hash:          blk.Hash,
		Nonce:         blk.Nonce,
		Transactions:  h.toTxs(blk.Trans),
	}
}

func (h Handlers) toBlocks(blocks []database.Block) []block {
	out := make([]block, len(blocks))
	for i, blk := range blocks {
		out[i] = h.toBlock(uint64(i), blk)
	}
	return out
}

func parseNumber(s string) (uint64, error) {
	if s == "latest" {
		return state.QueryLatest, nil
	}
	return strconv.ParseUint(s, 10, 64)
}
