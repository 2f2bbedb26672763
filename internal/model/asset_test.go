package model

import "testing"

func TestParseAsset(t *testing.T) {
	asset, err := ParseAsset("base")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if asset != AssetBase {
		t.Fatalf("expected base, got %s", asset)
	}

	if _, err := ParseAsset("doge"); err == nil {
		t.Fatalf("expected error for unknown asset")
	}
}

func TestAssetOther(t *testing.T) {
	if AssetBase.Other() != AssetQuote {
		t.Fatalf("base.Other() should be quote")
	}
	if AssetQuote.Other() != AssetBase {
		t.Fatalf("quote.Other() should be base")
	}
}
