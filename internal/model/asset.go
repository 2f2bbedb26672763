package model

import "fmt"

// Asset identifies one side of the pool's trading pair.
type Asset string

const (
	// AssetBase is the native coin side of the pair.
	AssetBase Asset = "base"
	// AssetQuote is the stablecoin side of the pair.
	AssetQuote Asset = "quote"
)

// Valid reports whether the asset names a side of the pair.
func (a Asset) Valid() bool {
	return a == AssetBase || a == AssetQuote
}

// Other returns the opposite side of the pair.
func (a Asset) Other() Asset {
	if a == AssetBase {
		return AssetQuote
	}
	return AssetBase
}

// ParseAsset converts a string into an Asset.
func ParseAsset(input string) (Asset, error) {
	asset := Asset(input)
	if !asset.Valid() {
		return "", fmt.Errorf("unknown asset %q", input)
	}
	return asset, nil
}
