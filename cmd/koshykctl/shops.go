package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/koshyk-app/backend/internal/domain"
)

var shopsCmd = &cobra.Command{
	Use:   "shops",
	Short: "List the supported shops and their locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		registry := domain.DefaultShops()
		for _, name := range registry.Names() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", name, strings.Join(registry.Locations(name), ", "))
		}
		return nil
	},
}

// resolveShop picks the store location for a shop name, preferring the
// requested location label when one is given.
func resolveShop(registry domain.ShopRegistry, name, location string) (domain.ShopInfo, error) {
	infos, ok := registry.Lookup(name)
	if !ok || len(infos) == 0 {
		return domain.ShopInfo{}, fmt.Errorf("%w: %s", domain.ErrShopNotFound, name)
	}
	if location == "" {
		return infos[0], nil
	}
	for _, info := range infos {
		if strings.EqualFold(info.Location, location) {
			return info, nil
		}
	}
	return domain.ShopInfo{}, fmt.Errorf("%w: %s has no location %q", domain.ErrShopNotFound, name, location)
}
