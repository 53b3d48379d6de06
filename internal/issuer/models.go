// Package issuer implements the four-step release creation flow. Drafts are
// server-session state; nothing is persisted until Publish.
package issuer

import (
	"math"

	"release-gateway/internal/catalog"
)

const (
	// StepDetails through StepDocuments bound draft navigation.
	StepDetails   = 1
	StepEconomics = 2
	StepDates     = 3
	StepDocuments = 4
)

// Draft is an in-progress release application. Field groups mirror the wizard
// steps: details, economics, dates, documents. Validation never blocks edits
// or navigation, only Publish.
type Draft struct {
	ID   string `json:"id"`
	Step int    `json:"step"`

	Title      string                 `json:"title"`
	Issuer     string                 `json:"issuer"`
	AssetType  catalog.AssetType      `json:"assetType"`
	Instrument catalog.InstrumentType `json:"instrument"`
	Status     catalog.ReleaseStatus  `json:"status"`
	Tags       string                 `json:"tags"`

	Amount     int64   `json:"amount"`
	UnitPrice  int64   `json:"price"`
	Yield      float64 `json:"yield"`
	TermMonths int     `json:"termMonths"`
	Risk       string  `json:"risk"`

	Start string `json:"start"`
	End   string `json:"end"`

	OfferDocName string `json:"offerDocName"`
	MemoDocName  string `json:"memoDocName"`
}

// Patch carries a partial draft update. Nil fields are left untouched.
type Patch struct {
	Title      *string                 `json:"title"`
	Issuer     *string                 `json:"issuer"`
	AssetType  *catalog.AssetType      `json:"assetType"`
	Instrument *catalog.InstrumentType `json:"instrument"`
	Status     *catalog.ReleaseStatus  `json:"status"`
	Tags       *string                 `json:"tags"`

	Amount     *int64   `json:"amount"`
	UnitPrice  *int64   `json:"price"`
	Yield      *float64 `json:"yield"`
	TermMonths *int     `json:"termMonths"`
	Risk       *string  `json:"risk"`

	Start *string `json:"start"`
	End   *string `json:"end"`

	OfferDocName *string `json:"offerDocName"`
	MemoDocName  *string `json:"memoDocName"`
}

// UnitCount derives the token count from volume and unit price. It is never
// stored: always recomputed from the current amount and price.
func UnitCount(amount, price int64) int64 {
	if price <= 0 {
		return 0
	}
	return int64(math.Round(float64(amount) / float64(price)))
}

// UnitCount reports the draft's derived token count.
func (d Draft) UnitCount() int64 {
	return UnitCount(d.Amount, d.UnitPrice)
}
