package lib

import (
	"context"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/samber/lo"
)

const skuLength = 8

var skuCharset = []rune("ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789")

// ExistsFunc reports whether a candidate identifier is already taken
type ExistsFunc func(ctx context.Context, candidate string) (bool, error)

// RandomSKU returns 8 random uppercase alphanumerics
func RandomSKU() string {
	return lo.RandomString(skuLength, skuCharset)
}

// Slugify lowercases and hyphenates a display name
func Slugify(name string) string {
	return slug.Make(name)
}

// UniqueSlug probes base, base-1, base-2, ... and returns the first free value
func UniqueSlug(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	return probe(ctx, base, exists)
}

// UniqueSKU probes the requested sku (or a random one) with -1, -2, ...
// suffixes and returns the first free value
func UniqueSKU(ctx context.Context, requested *string, exists ExistsFunc) (string, error) {
	base := RandomSKU()
	if requested != nil && strings.TrimSpace(*requested) != "" {
		base = *requested
	}
	return probe(ctx, base, exists)
}

func probe(ctx context.Context, base string, exists ExistsFunc) (string, error) {
	candidate := base
	for i := 1; ; i++ {
		taken, err := exists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("failed to probe %q: %w", candidate, err)
		}
		if !taken {
			return candidate, nil
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}
		candidate = fmt.Sprintf("%s-%d", base, i)
	}
}
