// Command mqm queries and serves the MQM affiliate product catalog.
package main

import (
	"os"

	"github.com/mqmweb/catalog/internal/adapters/driving/cli"
	"github.com/mqmweb/catalog/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	err := cli.Execute()
	logger.Sync()
	if err != nil {
		os.Exit(1)
	}
}
