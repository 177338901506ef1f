package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/koshyk-app/backend/internal/domain"
	"github.com/koshyk-app/backend/internal/infrastructure/catalogstore"
	"github.com/koshyk-app/backend/internal/usecase"
)

var (
	assembleRequestFile string
	assembleOutputFile  string
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Assemble priced baskets from a buy-request file",
	Long: `Reads a buy-request JSON document and assembles one priced cheque per
shop from the locally saved catalog runs, plus a cross-shop cheque when
the request asks for multi_shop_check.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(assembleRequestFile)
		if err != nil {
			return fmt.Errorf("failed to read request file: %w", err)
		}

		var request domain.UserBuyRequest
		if err := json.Unmarshal(data, &request); err != nil {
			return fmt.Errorf("failed to decode request file: %w", err)
		}

		store := catalogstore.NewFileStore(cfg.Catalog.DataDir, cfg.Catalog.CacheTTL)
		service := usecase.NewBasketService(store, domain.DefaultShops(), usecase.BasketConfig{
			EnableDebugLogging: cfg.Basket.EnableDebugLogging,
		})

		result, err := service.Assemble(cmd.Context(), request)
		if err != nil {
			return err
		}

		encoded, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}

		if assembleOutputFile != "" {
			if err := os.WriteFile(assembleOutputFile, encoded, 0o644); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", assembleOutputFile)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
		return nil
	},
}

func init() {
	assembleCmd.Flags().StringVar(&assembleRequestFile, "request", "", "path to the buy-request JSON file")
	assembleCmd.Flags().StringVar(&assembleOutputFile, "output", "", "write the result to a file instead of stdout")
	assembleCmd.MarkFlagRequired("request")
}
