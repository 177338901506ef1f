package domain

import "sort"

// ShopInfo identifies one physical store location behind a shop name.
type ShopInfo struct {
	ID       int    `json:"id"`
	Location string `json:"location"`
}

// ShopRegistry maps a shop name to its known locations. The registry is an
// explicit value passed into the services that need it; there is no process-wide
// shop table.
type ShopRegistry map[string][]ShopInfo

// Names returns the registered shop names in sorted order, so every iteration
// over shops is deterministic.
func (r ShopRegistry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the locations registered for a shop name.
func (r ShopRegistry) Lookup(name string) ([]ShopInfo, bool) {
	infos, ok := r[name]
	return infos, ok
}

// Locations returns the location labels registered for a shop name.
func (r ShopRegistry) Locations(name string) []string {
	infos := r[name]
	locations := make([]string, 0, len(infos))
	for _, info := range infos {
		locations = append(locations, info.Location)
	}
	return locations
}

// DefaultShops returns the built-in registry of supported stores.
func DefaultShops() ShopRegistry {
	return ShopRegistry{
		"novus": {
			{ID: 482010105, Location: "skymall"},
			{ID: 48201029, Location: "кільцева"},
			{ID: 48201070, Location: "осокор"},
		},
		"metro": {
			{ID: 48215610, Location: "григоренко"},
			{ID: 48215611, Location: "теремки"},
			{ID: 48215637, Location: "львів"},
		},
		"auchan": {
			{ID: 48246401, Location: "петрівка"},
			{ID: 48246403, Location: "кільцева"},
			{ID: 48246415, Location: "либідська"},
		},
		"varus": {
			{ID: 48241001, Location: "панікахи"},
			{ID: 48241094, Location: "вишгородська"},
		},
		"таврія": {
			{ID: 48221130, Location: "харків"},
			{ID: 482211449, Location: "одеса"},
		},
		"megamarket": {
			{ID: 482676003, Location: "подол"},
			{ID: 48267601, Location: "сурикова"},
		},
		"ecomarket": {
			{ID: 482800030, Location: "огієнка"},
			{ID: 48280051, Location: "житомир"},
		},
		"silpo": {
			{ID: 2043, Location: "default"},
		},
	}
}
