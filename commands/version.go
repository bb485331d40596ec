package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// VERSION is the released version in the format v<major>.<minor>.<build>.
const VERSION = "v0.8.2"

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Displays the current version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("%s\n", VERSION)
		},
	}
}
