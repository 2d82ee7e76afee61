package main

import (
	"os"

	"github.com/security-mcp/check-http-exec/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
