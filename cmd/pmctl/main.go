// Command pmctl runs the PM insights engine over a work-order export file.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "pmctl",
		Short:        "Preventive-maintenance insights from work-order exports",
		SilenceUsage: true,
	}
	root.AddCommand(newReportCommand())
	return root
}
