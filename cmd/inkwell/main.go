// Command inkwell edits documents in the terminal and serves editor previews
// over HTTP.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell/internal/config"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "inkwell: %s\n", err)
		os.Exit(1)
	}
}

// options holds the flags shared by every command.
type options struct {
	configPath string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:   "inkwell",
		Short: "A terminal code editor and preview server",
		Long: `inkwell edits files in the terminal with completion, folding, search
and linting, and serves the same editor to browsers over a websocket.

Examples:
  inkwell edit main.js
  inkwell edit --theme=dark --read-only notes.txt
  inkwell serve --addr=:9000`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(
		editCmd(opts),
		serveCmd(opts),
		versionCmd(),
	)
	return root
}

// load reads the config file and applies the shared flags.
func (o *options) load() (config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return config.Config{}, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	return cfg, nil
}
