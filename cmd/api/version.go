package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/resume-matcher/internal/config"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(_ *cobra.Command, _ []string) {
		fmt.Printf("%s version: %s (%s, analysis API %s)\n", app, version, config.BuildMode, config.APIBase(config.BuildMode))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
