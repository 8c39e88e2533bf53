// ledgerctl is the command-line client for the AI Action Ledger.
package main

import "github.com/action-ledger/sdk-go/internal/cli"

func main() {
	cli.Execute()
}
