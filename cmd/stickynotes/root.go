package main

import (
	"fmt"
	"os"

	"github.com/sandeepkv93/stickynotes/internal/config"
	"github.com/spf13/cobra"
)

var (
	configPath string
	verbose    bool
	cfg        config.Config
)

var rootCmd = &cobra.Command{
	Use:   "stickynotes",
	Short: "Sticky notes with reminders, sorted into five galleries",
	Long: `stickynotes keeps short notes in five galleries (general, fun, office,
important and travel) and fires a reminder when a note's time comes.
Run without a subcommand to open the terminal UI.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if verbose {
			loaded.Log.Verbose = true
		}
		cfg = loaded
		return nil
	},
	RunE: runTUI,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath(), "Path to the YAML config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
