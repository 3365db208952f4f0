package cmd

import (
	"github.com/hookbridge/hookbridge/internal/constants"
	"github.com/hookbridge/hookbridge/internal/output"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show the version of the CLI",
	Run: func(cmd *cobra.Command, args []string) {
		output.Header(constants.ProjectName)
		output.KeyValue("version", *constants.GetVersion())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
