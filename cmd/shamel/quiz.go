package main

import (
	"github.com/spf13/cobra"

	"github.com/Nadercr7/Shamel/internal/app"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Open the quiz game",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, app.ViewQuiz)
	},
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Open the AI assistant",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, app.ViewChat)
	},
}

func init() {
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(chatCmd)
}
