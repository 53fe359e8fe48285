package handlers

import (
	"fmt"
	"strconv"
)

// The storefront renders a 12-watch grid per page. The limit cap keeps
// a crafted query from paging the entire inventory in one request.
const (
	defaultCatalogPageSize = 12
	maxCatalogPageSize     = 60
)

func parseCatalogPage(pageStr, limitStr string) (int64, int64, error) {
	page := int64(1)
	limit := int64(defaultCatalogPageSize)

	if pageStr != "" {
		p, err := strconv.ParseInt(pageStr, 10, 64)
		if err != nil || p < 1 {
			return 0, 0, fmt.Errorf("invalid page %q", pageStr)
		}
		page = p
	}

	if limitStr != "" {
		l, err := strconv.ParseInt(limitStr, 10, 64)
		if err != nil || l < 1 {
			return 0, 0, fmt.Errorf("invalid limit %q", limitStr)
		}
		if l > maxCatalogPageSize {
			l = maxCatalogPageSize
		}
		limit = l
	}

	return page, limit, nil
}
