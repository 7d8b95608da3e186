package main

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const app = "resume-matcher"

var rootCmd = &cobra.Command{
	Use:          app,
	Short:        "resume-matcher serves the ResumeSync resume and job description matching UI",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return serve(cmd.Context())
	},
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "verbose/debug output")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "json format for logging")

	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json"))
}
