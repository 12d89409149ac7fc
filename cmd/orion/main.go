// Command orion is a relay for the game protocol. It sits between clients
// and a server, decodes every packet and routes it through the event kernel
// so extensions can observe, rewrite or drop it.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "orion",
		Short: "Protocol relay and packet inspector",
		Long: `Orion relays game clients to a server, decoding every packet on the way.

Configuration is read from ORION_* environment variables:

  ORION_LISTEN         address clients connect to (default :7777)
  ORION_UPSTREAM       server to relay to (default 127.0.0.1:7778)
  ORION_LOG_LEVEL      logrus level (default info)
  ORION_LOG_FORMAT     text or json (default text)
  ORION_METRICS_ADDR   serve /metrics and /healthz on this address
  ORION_WRITE_TIMEOUT  per-frame write deadline (default 5s)
  ORION_EXTENSIONS     comma-separated built-in extensions (default chatlog)`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		decodeCmd(),
		relayCmd(),
		versionCmd(),
	)
	return root
}
