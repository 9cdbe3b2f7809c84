// This program is a command line client for the ledger node and can run
// the ledger in process for a quick demonstration.
package main

import "github.com/ardanlabs/powchain/app/tooling/ledger/cmd"

func main() {
	cmd.Execute()
}
