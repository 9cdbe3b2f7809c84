package cmd

type tx struct {
	From     string `json:"from"`
	FromName string `json:"from_name"`
	To       string `json:"to"`
	ToName   string `json:"to_name"`
	Amount   int64  `json:"amount"`
}

type block struct {
	Number        uint64 `json:"number"`
	TimeStamp     uint64 `json:"timestamp"`
	PrevBlockHash string `json:"prev_block_hash"`
	Hash          string `json:"hash"`
	Nonce         uint64 `json:"nonce"`
	Transactions  []tx   `json:"txs"`
}

type balance struct {
	Account string `json:"account"`
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
}

type balances struct {
	LatestBlock string    `json:"latest_block"`
	Uncommitted int       `json:"uncommitted"`
	Balances    []balance `json:"balances"`
}

type chainStatus struct {
	Valid        bool   `json:"valid"`
	Error        string `json:"error"`
	WorkVerified bool   `json:"work_verified"`
	WorkError    string `json:"work_error"`
	Blocks       int    `json:"blocks"`
}
