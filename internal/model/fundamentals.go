package model

import "github.com/guregu/null/v6"

// Fundamentals holds the summary statistics derived from one symbol's closes.
type Fundamentals struct {
	Symbol               string
	MeanClose            null.Float
	StdClose             null.Float
	AvgDailyReturn       null.Float
	AnnualizedVolatility null.Float
	MaxDrawdown          null.Float
	AvgVolume            null.Float
}
