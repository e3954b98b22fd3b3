package model

import (
	"github.com/guregu/null/v6"
	"github.com/shopspring/decimal"
)

// PriceRecord is one typed daily bar taken from the combined price table.
// Source rows are not deduplicated, so Symbol+Date may repeat.
type PriceRecord struct {
	Symbol        string
	Date          null.Time // null when the source value could not be parsed
	Open          decimal.NullDecimal
	High          decimal.NullDecimal
	Low           decimal.NullDecimal
	Close         decimal.NullDecimal
	Volume        null.Int
	AdjustedClose decimal.NullDecimal
}
