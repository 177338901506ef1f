package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/koshyk-app/backend/config"
)

var (
	cfg       *config.Config
	debugMode bool
)

var rootCmd = &cobra.Command{
	Use:   "koshykctl",
	Short: "Scrape store catalogs and assemble minimum-cost baskets",
	Long: `koshykctl drives the catalog pipeline from the command line:
fetch store catalogs, inspect category trees and assemble priced
baskets from a buy-request file.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded
		if debugMode {
			cfg.Basket.EnableDebugLogging = true
		}
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	log.SetFlags(log.Ldate | log.Ltime)
	log.SetOutput(os.Stderr)

	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "enable debug logging")

	rootCmd.AddCommand(shopsCmd)
	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(assembleCmd)
}
