// feedgen generates a demo catalog feed for local development and load
// testing. The output is a YAML document accepted by the partner import
// endpoint.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/retailnet/backend/internal/application/importer"
	"gopkg.in/yaml.v3"
)

var categoryNames = []string{
	"Smartphones", "Laptops", "Tablets", "Televisions", "Headphones",
	"Cameras", "Monitors", "Printers", "Routers", "Accessories",
}

func main() {
	var (
		shopName   string
		goods      int
		categories int
		seed       uint64
		outPath    string
	)

	flag.StringVar(&shopName, "shop", "", "Shop name to emit (default: random company name)")
	flag.IntVar(&goods, "goods", 50, "Number of goods to generate")
	flag.IntVar(&categories, "categories", 5, "Number of categories to generate")
	flag.Uint64Var(&seed, "seed", 0, "Random seed, 0 picks one")
	flag.StringVar(&outPath, "out", "", "Output file (default: stdout)")
	flag.Parse()

	if categories < 1 || categories > len(categoryNames) {
		fmt.Fprintf(os.Stderr, "categories must be between 1 and %d\n", len(categoryNames))
		os.Exit(1)
	}
	if goods < 1 {
		fmt.Fprintln(os.Stderr, "goods must be positive")
		os.Exit(1)
	}

	faker := gofakeit.New(seed)
	if shopName == "" {
		shopName = faker.Company()
	}

	feed := buildFeed(faker, shopName, categories, goods)

	data, err := yaml.Marshal(feed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to marshal feed: %v\n", err)
		os.Exit(1)
	}

	if outPath == "" {
		os.Stdout.Write(data)
		return
	}
	if err := os.WriteFile(outPath, data, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "failed to write %s: %v\n", outPath, err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %d goods for %q to %s\n", goods, shopName, outPath)
}

func buildFeed(faker *gofakeit.Faker, shopName string, categories, goods int) *importer.Feed {
	feed := &importer.Feed{Shop: shopName}

	for i := 0; i < categories; i++ {
		feed.Categories = append(feed.Categories, importer.FeedCategory{
			ID:   10 + i,
			Name: categoryNames[i],
		})
	}

	for i := 0; i < goods; i++ {
		price := int64(faker.Number(1000, 200000))
		feed.Goods = append(feed.Goods, importer.FeedGood{
			ID:       4000000 + i,
			Name:     faker.ProductName(),
			Category: feed.Categories[i%categories].ID,
			Model:    fmt.Sprintf("%s-%d", faker.LetterN(2), faker.Number(100, 999)),
			Price:    price,
			PriceRRC: price + int64(faker.Number(0, 5000)),
			Quantity: faker.Number(0, 30),
			Parameters: map[string]any{
				"Color":  faker.Color(),
				"Weight": fmt.Sprintf("%d g", faker.Number(100, 3000)),
			},
		})
	}

	return feed
}
