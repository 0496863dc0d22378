package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/Nadercr7/Shamel/internal/app"
	"github.com/Nadercr7/Shamel/internal/config"
	"github.com/Nadercr7/Shamel/internal/models"
)

var (
	langFlag         string
	highContrastFlag bool
	fontSizeFlag     int
)

var rootCmd = &cobra.Command{
	Use:   "shamel",
	Short: "Inclusive AI learning hub for the terminal",
	Long: `Shamel is a bilingual (English/Arabic) learning hub with a PDF summarizer,
a quiz game and a voice enabled AI assistant.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runUI(cmd, app.ViewHome)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&langFlag, "lang", "", "interface language (en or ar)")
	rootCmd.PersistentFlags().BoolVar(&highContrastFlag, "high-contrast", false, "start in high contrast mode")
	rootCmd.PersistentFlags().IntVar(&fontSizeFlag, "font-size", 0, "initial text size (12-24, even)")
}

// loadConfig reads the environment and applies command line overrides
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.DefaultLanguage = models.ParseLanguage(langFlag)
	}
	if flags.Changed("high-contrast") {
		cfg.HighContrast = highContrastFlag
	}
	if flags.Changed("font-size") {
		cfg.FontSize = fontSizeFlag
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// newApp creates the application and cleans it up on SIGINT or SIGTERM
func newApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")
		if err := application.Cleanup(); err != nil {
			log.Printf("Error during cleanup: %v", err)
		}
		os.Exit(0)
	}()

	return application, nil
}

// runUI starts the terminal UI on view
func runUI(cmd *cobra.Command, view app.View) error {
	application, err := newApp(cmd)
	if err != nil {
		return err
	}

	runErr := application.Run(view)

	// Cleanup on normal exit
	if err := application.Cleanup(); err != nil {
		log.Printf("Error during cleanup: %v", err)
	}
	return runErr
}
