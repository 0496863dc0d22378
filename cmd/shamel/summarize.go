package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var readAloud bool

var summarizeCmd = &cobra.Command{
	Use:   "summarize [pdf-file]",
	Short: "Summarize a PDF document",
	Long:  `Extract the text of a PDF document, print an AI summary in the interface language and optionally read it aloud.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		application, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer func() {
			if err := application.Cleanup(); err != nil {
				log.Printf("Error during cleanup: %v", err)
			}
		}()

		summary, err := application.Summarize(cmd.Context(), args[0])
		if err != nil {
			return fmt.Errorf("failed to summarize %s: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), summary)

		if readAloud {
			return application.SpeakAndWait(cmd.Context(), summary)
		}
		return nil
	},
}

func init() {
	summarizeCmd.Flags().BoolVar(&readAloud, "read-aloud", false, "read the summary aloud")
	rootCmd.AddCommand(summarizeCmd)
}
