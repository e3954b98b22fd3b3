package dataset

// Schema maps the named fields a build cares about onto column positions of a
// concrete column list. Absent fields are -1.
type Schema struct {
	Date          int
	Open          int
	High          int
	Low           int
	Close         int
	Volume        int
	Symbol        int
	AdjustedClose int

	// AdjustedCloseName is the candidate spelling that matched, if any.
	AdjustedCloseName string
}

// Resolve builds the schema for columns. The adjusted close is the first
// entry of AdjustedCloseCandidates present in columns.
func Resolve(columns []string) Schema {
	pos := make(map[string]int, len(columns))
	for i := len(columns) - 1; i >= 0; i-- {
		pos[columns[i]] = i
	}
	lookup := func(name string) int {
		if i, ok := pos[name]; ok {
			return i
		}
		return -1
	}

	s := Schema{
		Date:          lookup(ColDate),
		Open:          lookup(ColOpen),
		High:          lookup(ColHigh),
		Low:           lookup(ColLow),
		Close:         lookup(ColClose),
		Volume:        lookup(ColVolume),
		Symbol:        lookup(ColSymbol),
		AdjustedClose: -1,
	}
	for _, c := range AdjustedCloseCandidates {
		if i, ok := pos[c]; ok {
			s.AdjustedClose = i
			s.AdjustedCloseName = c
			break
		}
	}
	return s
}

// Has reports whether the field index is present.
func Has(i int) bool { return i >= 0 }
