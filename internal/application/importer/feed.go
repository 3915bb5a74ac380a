package importer

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/retailnet/backend/internal/domain/shared"
	"gopkg.in/yaml.v3"
)

// FeedCategory is a category declaration in a catalog feed
type FeedCategory struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// FeedGood is a single product entry in a catalog feed.
// Parameter values arrive as arbitrary YAML scalars and are normalized to
// strings during decoding.
type FeedGood struct {
	ID         int            `yaml:"id"`
	Name       string         `yaml:"name"`
	Category   int            `yaml:"category"`
	Model      string         `yaml:"model"`
	Price      int64          `yaml:"price"`
	PriceRRC   int64          `yaml:"price_rrc"`
	Quantity   int            `yaml:"quantity"`
	Parameters map[string]any `yaml:"parameters"`
}

// ParameterStrings returns the good's parameters as name/value string pairs
// in deterministic name order
func (g *FeedGood) ParameterStrings() [][2]string {
	names := make([]string, 0, len(g.Parameters))
	for name := range g.Parameters {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([][2]string, 0, len(names))
	for _, name := range names {
		pairs = append(pairs, [2]string{name, scalarString(g.Parameters[name])})
	}
	return pairs
}

// scalarString renders a decoded YAML scalar the way it appeared in the feed
func scalarString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// Feed is the parsed catalog document submitted by a supplier
type Feed struct {
	Shop       string         `yaml:"shop"`
	Categories []FeedCategory `yaml:"categories"`
	Goods      []FeedGood     `yaml:"goods"`
}

// ParseFeed decodes and validates a catalog feed document.
// A document that does not decode under the schema fails with the parser's
// diagnostic attached to the malformed-catalog error; field-level problems
// fail with the matching domain error. No store access happens here.
func ParseFeed(source []byte) (*Feed, error) {
	if len(source) == 0 {
		return nil, shared.NewDomainError(shared.ErrMalformedCatalog.Code, "Catalog feed is empty")
	}

	var feed Feed
	if err := yaml.Unmarshal(source, &feed); err != nil {
		return nil, shared.NewDomainError(shared.ErrMalformedCatalog.Code,
			fmt.Sprintf("Catalog feed could not be parsed: %v", err))
	}

	if err := feed.validate(); err != nil {
		return nil, err
	}

	return &feed, nil
}

// validate checks the decoded feed against the schema rules
func (f *Feed) validate() error {
	if f.Shop == "" {
		return shared.NewDomainError(shared.ErrMalformedCatalog.Code, "Catalog feed is missing the shop name")
	}

	categoryIDs := make(map[int]bool, len(f.Categories))
	for idx, category := range f.Categories {
		if category.ID <= 0 {
			return shared.NewDomainError(shared.ErrInvalidField.Code,
				fmt.Sprintf("Category at index %d has a non-positive id", idx))
		}
		if category.Name == "" {
			return shared.NewDomainError(shared.ErrInvalidField.Code,
				fmt.Sprintf("Category %d has an empty name", category.ID))
		}
		categoryIDs[category.ID] = true
	}

	for idx, good := range f.Goods {
		if good.ID <= 0 {
			return shared.NewDomainError(shared.ErrInvalidField.Code,
				fmt.Sprintf("Good at index %d has a non-positive id", idx))
		}
		if good.Name == "" {
			return shared.NewDomainError(shared.ErrInvalidField.Code,
				fmt.Sprintf("Good %d has an empty name", good.ID))
		}
		if !categoryIDs[good.Category] {
			return shared.NewDomainError(shared.ErrUnresolvedCategory.Code,
				fmt.Sprintf("Good %d references category %d which is not declared in the feed", good.ID, good.Category))
		}
		if good.Price < 0 {
			return shared.NewDomainError(shared.ErrInvalidField.Code,
				fmt.Sprintf("Good %d has a negative price", good.ID))
		}
		if good.PriceRRC < 0 {
			return shared.NewDomainError(shared.ErrInvalidField.Code,
				fmt.Sprintf("Good %d has a negative recommended retail price", good.ID))
		}
		if good.Quantity < 0 {
			return shared.NewDomainError(shared.ErrInvalidField.Code,
				fmt.Sprintf("Good %d has a negative quantity", good.ID))
		}
	}

	return nil
}
