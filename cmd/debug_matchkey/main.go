package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"listing-merge/core/config"
	"listing-merge/core/merge"
	"listing-merge/core/tabular"
	"listing-merge/core/utils"
	"listing-merge/feature/listings"
)

// Prints the match and hash keys of every row whose company name contains the
// given text, and which sources share each key.
func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: debug_matchkey <company name fragment>")
	}
	needle := strings.ToLower(os.Args[1])

	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatal(err)
	}

	hasher, err := merge.NewHasher(cfg.Merge.HashAlgorithm)
	if err != nil {
		log.Fatal(err)
	}

	sources := []struct {
		adapter merge.SourceAdapter
		cfg     tabular.Config
	}{
		{listings.SocialAdapter(), cfg.Input.Social},
		{listings.SearchAdapter(), cfg.Input.Search},
		{listings.WebsiteAdapter(), cfg.Input.Website},
	}

	ctx := context.Background()
	seen := make(map[string][]merge.Source)
	for _, src := range sources {
		dialect, err := src.cfg.Dialect()
		if err != nil {
			log.Fatal(err)
		}
		path := src.cfg.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(cfg.Input.ExtractDir, path)
		}

		table, err := listings.FileLoader{Path: path, Dialect: dialect}.Load(ctx)
		if err != nil {
			log.Fatal(err)
		}
		records, err := src.adapter.Adapt(table, hasher)
		if err != nil {
			log.Fatal(err)
		}

		fmt.Printf("=== %s (%s, %d rows) ===\n", src.adapter.Source, path, len(records))
		for _, rec := range records {
			name := utils.Deref(rec.Get(merge.FieldCompanyName))
			if !strings.Contains(strings.ToLower(name), needle) {
				continue
			}
			fmt.Printf("%q\n  match_key: %q\n  hash_key:  %s\n", name, rec.MatchKey, rec.HashKey)
			seen[rec.HashKey] = append(seen[rec.HashKey], src.adapter.Source)
		}
	}

	fmt.Println("\n=== Keys ===")
	for key, srcs := range seen {
		status := "joins"
		if len(uniqueSources(srcs)) < len(merge.Sources) {
			status = "dropped (not in every source)"
		}
		fmt.Printf("%s %v -> %s\n", key, srcs, status)
	}
}

func uniqueSources(srcs []merge.Source) map[merge.Source]struct{} {
	set := make(map[merge.Source]struct{}, len(srcs))
	for _, s := range srcs {
		set[s] = struct{}{}
	}
	return set
}
