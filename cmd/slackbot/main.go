package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/hauxir/claude-code-slack-bot/internal/config"
	"github.com/hauxir/claude-code-slack-bot/internal/version"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "slackbot",
		Short: "Claude-backed Slack assistant",
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", config.DefaultConfigPath, "path to config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Connect to Slack and serve messages",
		Run: func(cmd *cobra.Command, args []string) {
			runServe()
		},
	})
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version.Version)
		},
	})

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
