package handlers

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestNormalizeWatchDocumentLegacyImageField(t *testing.T) {
	raw := bson.M{
		"title": "Speedmaster Professional",
		"brand": "Omega",
		"price": 28500.0,
		"image": "uploads/watches/abc.jpg",
	}

	watch, err := normalizeWatchDocument(raw)
	if err != nil {
		t.Fatalf("normalizeWatchDocument returned error: %v", err)
	}
	if string(watch.ImageURL) != "uploads/watches/abc.jpg" {
		t.Fatalf("expected legacy image field to map to imageUrl, got %q", watch.ImageURL)
	}
}

func TestNormalizeWatchDocumentImagesArrayPicksFirst(t *testing.T) {
	raw := bson.M{
		"title":  "Nautilus",
		"brand":  "Patek Philippe",
		"price":  250000.0,
		"images": bson.A{"uploads/watches/one.jpg", "uploads/watches/two.jpg"},
	}

	watch, err := normalizeWatchDocument(raw)
	if err != nil {
		t.Fatalf("normalizeWatchDocument returned error: %v", err)
	}
	if string(watch.ImageURL) != "uploads/watches/one.jpg" {
		t.Fatalf("expected first image, got %q", watch.ImageURL)
	}
}

func TestNormalizeWatchDocumentLegacySerialField(t *testing.T) {
	raw := bson.M{
		"title":  "Royal Oak",
		"brand":  "Audemars Piguet",
		"price":  95000.0,
		"serial": "AP-1972-0001",
	}

	watch, err := normalizeWatchDocument(raw)
	if err != nil {
		t.Fatalf("normalizeWatchDocument returned error: %v", err)
	}
	if watch.SerialNumber != "AP-1972-0001" {
		t.Fatalf("expected legacy serial to map to serialNumber, got %q", watch.SerialNumber)
	}
}

func TestNormalizeWatchDocumentIsSoldCoercion(t *testing.T) {
	cases := []struct {
		name string
		val  interface{}
		want bool
	}{
		{"string true", "true", true},
		{"string false", "false", false},
		{"bool", true, true},
		{"garbage", 42, false},
		{"missing", nil, false},
	}

	for _, tc := range cases {
		raw := bson.M{"title": "Datejust", "brand": "Rolex", "price": 12000.0}
		if tc.val != nil {
			raw["isSold"] = tc.val
		}

		watch, err := normalizeWatchDocument(raw)
		if err != nil {
			t.Fatalf("%s: normalizeWatchDocument returned error: %v", tc.name, err)
		}
		if watch.IsSold != tc.want {
			t.Fatalf("%s: expected isSold=%v, got %v", tc.name, tc.want, watch.IsSold)
		}
	}
}

func TestNormalizeSerialInput(t *testing.T) {
	if got := normalizeSerialInput("  AP-1972-0001  "); got != "AP-1972-0001" {
		t.Fatalf("expected surrounding whitespace trimmed, got %q", got)
	}
	// case must survive untouched, lookups are case-sensitive
	if got := normalizeSerialInput("ap-1972-0001"); got != "ap-1972-0001" {
		t.Fatalf("expected case preserved, got %q", got)
	}
}
