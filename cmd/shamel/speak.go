package main

import (
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"
)

var saveSpeech bool

var speakCmd = &cobra.Command{
	Use:   "speak [text...]",
	Short: "Read text aloud with the configured voice",
	Args:  cobra.MinimumNArgs(1),
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

		text := strings.Join(args, " ")
		if saveSpeech {
			path, err := application.SaveSpeech(cmd.Context(), text)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), path)
			return nil
		}
		return application.SpeakAndWait(cmd.Context(), text)
	},
}

func init() {
	speakCmd.Flags().BoolVar(&saveSpeech, "save", false, "write the clip to the audio directory instead of playing it")
	rootCmd.AddCommand(speakCmd)
}
