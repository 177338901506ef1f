package main

import (
	"errors"
	"log"

	"github.com/spf13/cobra"

	"github.com/koshyk-app/backend/internal/domain"
	"github.com/koshyk-app/backend/internal/infrastructure/catalogstore"
	"github.com/koshyk-app/backend/internal/infrastructure/webstore"
	"github.com/koshyk-app/backend/internal/infrastructure/zakaz"
	"github.com/koshyk-app/backend/internal/usecase"
)

var (
	fetchShop     string
	fetchLocation string
	fetchAll      bool
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Scrape a shop's catalog and persist the normalized run",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := domain.DefaultShops()

		var names []string
		if fetchAll {
			names = registry.Names()
		} else {
			if fetchShop == "" {
				return errors.New("either --shop or --all is required")
			}
			names = []string{fetchShop}
		}

		store := catalogstore.NewFileStore(cfg.Catalog.DataDir, cfg.Catalog.CacheTTL)
		builder := usecase.NewCatalogBuilder(usecase.NewTitleNormalizer(debugMode))
		fetchConfig := usecase.FetchConfig{
			PageCount:  cfg.Fetcher.PageCount,
			PerPage:    cfg.Fetcher.PerPage,
			BatchSize:  cfg.Fetcher.BatchSize,
			BatchDelay: cfg.Fetcher.BatchDelay,
		}

		apiClient := zakaz.NewClient(cfg.Fetcher.BaseURL, cfg.Fetcher.RatePerSecond, cfg.Fetcher.Burst)
		apiClient.SetDebug(debugMode)

		for _, name := range names {
			shop, err := resolveShop(registry, name, fetchLocation)
			if err != nil {
				return err
			}

			client := storeClientFor(name, apiClient)
			fetcher := usecase.NewFetchService(client, builder, store, fetchConfig)

			log.Printf("[FETCH] starting run for %s (store %d)", name, shop.ID)
			if err := fetcher.FetchShop(cmd.Context(), name, shop); err != nil {
				return err
			}
		}
		return nil
	},
}

// storeClientFor picks the listing source for a shop: the stores API by
// default, or the storefront HTML scraper for shops configured without one.
func storeClientFor(name string, apiClient *zakaz.Client) domain.StoreClient {
	baseURL, ok := cfg.Fetcher.WebstoreBaseURLs[name]
	if !ok {
		return apiClient
	}
	log.Printf("[FETCH] %s: scraping storefront %s", name, baseURL)
	scraper := webstore.NewScraper(baseURL)
	scraper.SetDebug(debugMode)
	return scraper
}

func init() {
	fetchCmd.Flags().StringVar(&fetchShop, "shop", "", "shop name (see koshykctl shops)")
	fetchCmd.Flags().StringVar(&fetchLocation, "location", "", "store location label")
	fetchCmd.Flags().BoolVar(&fetchAll, "all", false, "fetch every registered shop")
}
