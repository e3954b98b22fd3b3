// Package metadata derives securities.csv rows from price file locations.
package metadata

import (
	"context"
	"log"
	"path/filepath"
	"strings"

	"StockDataset/internal/collector"
	"StockDataset/internal/loader"
	"StockDataset/internal/model"
)

// TypeFromDir infers the security type from a parent directory name.
func TypeFromDir(dir string) model.SecurityType {
	d := strings.ToLower(dir)
	switch {
	case strings.Contains(d, "etf"):
		return model.SecurityETF
	case strings.Contains(d, "stock"):
		return model.SecurityStock
	default:
		return model.SecurityUnknown
	}
}

// BuildSecurities describes the first loader.MaxFiles files, one security per
// symbol. When two files map to the same symbol the earlier file wins.
func BuildSecurities(files []string) []model.Security {
	if len(files) > loader.MaxFiles {
		files = files[:loader.MaxFiles]
	}

	all := make([]model.Security, 0, len(files))
	for _, f := range files {
		all = append(all, model.Security{
			Symbol:     loader.SymbolFromFilename(f),
			Type:       TypeFromDir(filepath.Base(filepath.Dir(f))),
			SourceFile: filepath.Base(f),
		})
	}

	seen := make(map[string]bool, len(all))
	out := all[:0]
	for _, s := range all {
		if seen[s.Symbol] {
			continue
		}
		seen[s.Symbol] = true
		out = append(out, s)
	}
	return out
}

// Enrich fills company name, sector and industry from src, one symbol at a
// time. It returns false, leaving securities untouched, when src is not
// available. Per-symbol failures leave that symbol's fields null.
func Enrich(ctx context.Context, src collector.ProfileSource, securities []model.Security) bool {
	if !src.Available() {
		log.Printf("[INFO] enrichment disabled, securities.csv keeps basic fields only")
		return false
	}

	log.Printf("[INFO] fetching company profiles for %d symbols from %s", len(securities), src.Name())
	failed := 0
	for i := range securities {
		if err := ctx.Err(); err != nil {
			log.Printf("[WARN] enrichment interrupted: %v", err)
			break
		}
		p, err := src.FetchProfile(ctx, securities[i].Symbol)
		if err != nil {
			failed++
			log.Printf("[WARN] profile %s: %v", securities[i].Symbol, err)
			continue
		}
		securities[i].CompanyName = p.Name
		securities[i].Sector = p.Sector
		securities[i].Industry = p.Industry
	}
	if failed > 0 {
		log.Printf("[WARN] %d of %d profile lookups failed", failed, len(securities))
	}
	return true
}
