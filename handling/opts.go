package handling

import (
	"net/http"
	"shop_admin_server/lib"
	"shop_admin_server/services"
	"strconv"
	"strings"
)

// ParseProductListOptions parses HTTP query parameters into ProductListOptions
func ParseProductListOptions(r *http.Request) (*services.ProductListOptions, error) {
	query := r.URL.Query()

	// Early return if no query params
	if len(query) == 0 {
		return &services.ProductListOptions{}, nil
	}

	opts := &services.ProductListOptions{
		SearchTerm:    strings.TrimSpace(query.Get("search")),
		ProductType:   query.Get("product_type"),
		ProductStatus: query.Get("product_status"),
		SortBy:        query.Get("sort_by"),
		SortDirection: strings.ToUpper(query.Get("sort_direction")),
	}

	var err error
	if opts.CategoryID, err = parseOptionalID(query.Get("category_id"), "category_id"); err != nil {
		return nil, err
	}
	if opts.TagID, err = parseOptionalID(query.Get("tag_id"), "tag_id"); err != nil {
		return nil, err
	}
	if raw := query.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			return nil, lib.NewFieldError("limit", "The limit field must be an integer.")
		}
		opts.Limit = &limit
	}
	if raw := query.Get("offset"); raw != "" {
		if opts.Offset, err = strconv.Atoi(raw); err != nil {
			return nil, lib.NewFieldError("offset", "The offset field must be an integer.")
		}
	}

	return opts, nil
}

func parseOptionalID(raw, field string) (*int64, error) {
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return nil, lib.NewFieldError(field, "The "+strings.ReplaceAll(field, "_", " ")+" field must be an integer.")
	}
	return &id, nil
}
