package handlers

import "testing"

func TestParseCatalogPageDefaults(t *testing.T) {
	page, limit, err := parseCatalogPage("", "")
	if err != nil {
		t.Fatalf("parseCatalogPage returned error: %v", err)
	}
	if page != 1 || limit != defaultCatalogPageSize {
		t.Fatalf("expected page=1 limit=%d, got page=%d limit=%d", defaultCatalogPageSize, page, limit)
	}
}

func TestParseCatalogPageCapsLimit(t *testing.T) {
	_, limit, err := parseCatalogPage("2", "500")
	if err != nil {
		t.Fatalf("parseCatalogPage returned error: %v", err)
	}
	if limit != maxCatalogPageSize {
		t.Fatalf("expected limit capped at %d, got %d", maxCatalogPageSize, limit)
	}
}

func TestParseCatalogPageRejectsBadInput(t *testing.T) {
	cases := [][2]string{
		{"0", "10"},
		{"-1", "10"},
		{"abc", "10"},
		{"1", "0"},
		{"1", "-3"},
		{"1", "ten"},
	}
	for _, tc := range cases {
		if _, _, err := parseCatalogPage(tc[0], tc[1]); err == nil {
			t.Fatalf("expected error for page=%q limit=%q", tc[0], tc[1])
		}
	}
}
