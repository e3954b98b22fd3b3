package loader

import (
	"path/filepath"
	"strings"
)

// SymbolFromFilename derives the ticker from a price file name. The steps run
// in a fixed order: drop everything from the first '.', upper-case, drop
// everything from the first '_', then strip a trailing ".US".
//
//	aapl.us.txt   -> AAPL
//	AAPL_2010.csv -> AAPL
func SymbolFromFilename(name string) string {
	sym := filepath.Base(name)
	if i := strings.Index(sym, "."); i >= 0 {
		sym = sym[:i]
	}
	sym = strings.ToUpper(sym)
	if i := strings.Index(sym, "_"); i >= 0 {
		sym = sym[:i]
	}
	return strings.TrimSuffix(sym, ".US")
}
