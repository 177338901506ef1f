package domain

import "errors"

var (
	// ErrInvalidRequest is returned when a buy request or one of its preferences is malformed
	ErrInvalidRequest = errors.New("invalid buy request")

	// ErrNoOffersFound is returned when a buy preference yields zero candidates in a shop
	ErrNoOffersFound = errors.New("no offers found for buy preference")

	// ErrShopNotFound is returned when a shop filter names a shop absent from the registry or catalog
	ErrShopNotFound = errors.New("shop not found")

	// ErrCatalogMiss is returned when catalog data for a shop or category is not on disk
	ErrCatalogMiss = errors.New("catalog data not found")

	// ErrMalformedRecord is returned when a raw listing cannot be validated into a ProductRecord
	ErrMalformedRecord = errors.New("malformed product record")

	// ErrStoreAPIFailure is returned when a store API request fails
	ErrStoreAPIFailure = errors.New("store API request failed")
)
