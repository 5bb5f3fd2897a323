// Package projection derives the public read views from the repository contents.
package projection

import (
	"net/url"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/shreejewels/storefront/internal/domain"
	"github.com/shreejewels/storefront/pkg/common"
)

type SortKey string

const (
	SortName    SortKey = "name"
	SortRating  SortKey = "rating"
	SortReviews SortKey = "reviews"
)

// ParseSort maps a query value to a sort key, defaulting to SortName
func ParseSort(v string) SortKey {
	switch SortKey(strings.ToLower(strings.TrimSpace(v))) {
	case SortRating:
		return SortRating
	case SortReviews:
		return SortReviews
	}
	return SortName
}

// Query narrows a category listing
type Query struct {
	Search string
	Metal  string
	Sort   SortKey
}

// CatalogByCategory returns the products of category, narrowed by q and sorted
func CatalogByCategory(products []domain.Product, category string, q Query) []domain.Product {
	search := strings.TrimSpace(q.Search)
	metal := strings.TrimSpace(q.Metal)
	result := make([]domain.Product, 0)
	for _, p := range products {
		if p.Category != category {
			continue
		}
		if search != "" && !common.ContainsFold(p.Name, search) && !common.ContainsFold(p.Description, search) {
			continue
		}
		if metal != "" && p.Metal != metal {
			continue
		}
		result = append(result, p)
	}

	switch q.Sort {
	case SortRating:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Rating > result[j].Rating })
	case SortReviews:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Reviews > result[j].Reviews })
	default:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	}
	return result
}

// StoryFeed keeps the first product with an image per category, in input order
func StoryFeed(products []domain.Product) []domain.Story {
	caser := cases.Title(language.English)
	seen := make(map[string]bool)
	stories := make([]domain.Story, 0)
	for _, p := range products {
		if p.Image == "" || strings.TrimSpace(p.Category) == "" || seen[p.Category] {
			continue
		}
		seen[p.Category] = true
		stories = append(stories, domain.Story{
			ID:       common.Slugify(p.Category),
			Image:    p.Image,
			Title:    caser.String(p.Category),
			Link:     "/catalog/" + url.PathEscape(p.Category),
			Category: p.Category,
		})
	}
	return stories
}

// RateSnapshot returns rate, or the documented defaults when no rate was ever written
func RateSnapshot(rate *domain.MetalRate, now time.Time) domain.MetalRate {
	if rate == nil {
		return domain.NextRate(nil, domain.DefaultGoldRate, domain.DefaultSilverRate, now)
	}
	return *rate
}
