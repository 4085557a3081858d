// File: cmd/version.go
package cmd

import "github.com/spf13/cobra"

// Version is the application version, set at build time with
// -ldflags "-X github.com/xkilldash9x/boxflow/cmd.Version=1.2.0".
var Version = "1.0"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Printf("boxflow %s\n", Version)
		},
	}
}
