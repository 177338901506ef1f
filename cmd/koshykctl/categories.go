package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/koshyk-app/backend/internal/domain"
	"github.com/koshyk-app/backend/internal/infrastructure/zakaz"
)

var (
	categoriesShop     string
	categoriesLocation string
	categoriesPopular  bool
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Print the category tree of a shop",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := domain.DefaultShops()
		shop, err := resolveShop(registry, categoriesShop, categoriesLocation)
		if err != nil {
			return err
		}

		client := zakaz.NewClient(cfg.Fetcher.BaseURL, cfg.Fetcher.RatePerSecond, cfg.Fetcher.Burst)
		client.SetDebug(debugMode)

		categories, err := client.Categories(cmd.Context(), shop, categoriesPopular)
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(categories, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	categoriesCmd.Flags().StringVar(&categoriesShop, "shop", "", "shop name (see koshykctl shops)")
	categoriesCmd.Flags().StringVar(&categoriesLocation, "location", "", "store location label")
	categoriesCmd.Flags().BoolVar(&categoriesPopular, "popular", false, "fetch only popular categories")
	categoriesCmd.MarkFlagRequired("shop")
}
