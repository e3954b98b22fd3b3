package model

import "github.com/guregu/null/v6"

// SecurityType is inferred from the directory a price file was found in.
type SecurityType string

const (
	SecurityETF     SecurityType = "ETF"
	SecurityStock   SecurityType = "Stock"
	SecurityUnknown SecurityType = "Unknown"
)

// Security is one row of securities.csv, keyed by Symbol.
type Security struct {
	Symbol     string
	Type       SecurityType
	SourceFile string

	// Optional enrichment, filled by a company profile lookup.
	CompanyName null.String
	Sector      null.String
	Industry    null.String
}

// CompanyProfile is what an external profile lookup returns for one ticker.
type CompanyProfile struct {
	Name     null.String
	Sector   null.String
	Industry null.String
}
