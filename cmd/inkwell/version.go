package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/iw2rmb/inkwell"
)

func versionCmd() *cobra.Command {
	var short bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			if short {
				fmt.Fprintln(out, inkwell.Version())
				return
			}
			b := inkwell.ReadBuild()
			fmt.Fprintf(out, "inkwell %s\n", inkwell.VersionTag())
			fmt.Fprintf(out, "  Commit:     %s\n", b.ShortCommit())
			if b.Time != "" {
				fmt.Fprintf(out, "  Built:      %s\n", b.Time)
			}
			fmt.Fprintf(out, "  Go version: %s\n", runtime.Version())
			fmt.Fprintf(out, "  OS/Arch:    %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
	cmd.Flags().BoolVarP(&short, "short", "s", false, "print only the version number")
	return cmd
}
