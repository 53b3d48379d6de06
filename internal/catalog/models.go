// Package catalog holds the release catalog: compiled-in samples merged with
// user-published releases from the record store.
package catalog

import (
	derrors "release-gateway/pkg/domain-errors"
)

// AssetType classifies the underlying asset of a release.
type AssetType string

const (
	AssetRealEstate   AssetType = "realEstate"
	AssetDebt         AssetType = "debt"
	AssetRevenueShare AssetType = "revenueShare"
)

var validAssetTypes = map[AssetType]bool{
	AssetRealEstate:   true,
	AssetDebt:         true,
	AssetRevenueShare: true,
}

// ParseAssetType constructs an AssetType from external input.
func ParseAssetType(s string) (AssetType, error) {
	t := AssetType(s)
	if !validAssetTypes[t] {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid asset type")
	}
	return t, nil
}

// InstrumentType classifies the legal wrapper of a release.
type InstrumentType string

const (
	InstrumentSPVEquity       InstrumentType = "spvEquity"
	InstrumentReceivables     InstrumentType = "receivables"
	InstrumentLoanReceivables InstrumentType = "loanReceivables"
)

var validInstrumentTypes = map[InstrumentType]bool{
	InstrumentSPVEquity:       true,
	InstrumentReceivables:     true,
	InstrumentLoanReceivables: true,
}

// ParseInstrumentType constructs an InstrumentType from external input.
func ParseInstrumentType(s string) (InstrumentType, error) {
	t := InstrumentType(s)
	if !validInstrumentTypes[t] {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid instrument type")
	}
	return t, nil
}

// ReleaseStatus is the lifecycle phase of a release.
type ReleaseStatus string

const (
	StatusActive   ReleaseStatus = "active"
	StatusUpcoming ReleaseStatus = "upcoming"
	StatusRedeemed ReleaseStatus = "redeemed"
)

var validReleaseStatuses = map[ReleaseStatus]bool{
	StatusActive:   true,
	StatusUpcoming: true,
	StatusRedeemed: true,
}

// ParseReleaseStatus constructs a ReleaseStatus from external input.
func ParseReleaseStatus(s string) (ReleaseStatus, error) {
	st := ReleaseStatus(s)
	if !validReleaseStatuses[st] {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid release status")
	}
	return st, nil
}

// SortKey selects the catalog ordering.
type SortKey string

const (
	SortDefault  SortKey = "default"
	SortYield    SortKey = "yield"
	SortAmount   SortKey = "amount"
	SortProgress SortKey = "progress"
)

var validSortKeys = map[SortKey]bool{
	SortDefault:  true,
	SortYield:    true,
	SortAmount:   true,
	SortProgress: true,
}

// ParseSortKey constructs a SortKey from external input. Empty input means
// the default ordering.
func ParseSortKey(s string) (SortKey, error) {
	if s == "" {
		return SortDefault, nil
	}
	k := SortKey(s)
	if !validSortKeys[k] {
		return "", derrors.New(derrors.CodeInvalidInput, "invalid sort key")
	}
	return k, nil
}

// Release is one catalog entry. Amounts and unit prices are minor-unit
// integers; Yield is percent per annum.
type Release struct {
	ID            string         `json:"id"`
	Title         string         `json:"title"`
	Issuer        string         `json:"issuer"`
	AssetType     AssetType      `json:"assetType"`
	Instrument    InstrumentType `json:"instrument"`
	Status        ReleaseStatus  `json:"status"`
	Risk          string         `json:"risk"`
	Tags          []string       `json:"tags"`
	Amount        int64          `json:"amount"`
	Raised        int64          `json:"raised"`
	UnitPrice     int64          `json:"price"`
	UnitCount     int64          `json:"units"`
	Yield         float64        `json:"yield"`
	TermMonths    int            `json:"termMonths"`
	Start         string         `json:"start"`
	End           string         `json:"end"`
	CreatedAt     string         `json:"createdAt,omitempty"`
	DocumentNames []string       `json:"documentNames,omitempty"`
}

// Progress is the funded fraction in [0,1]. Zero-amount releases report 0.
func (r Release) Progress() float64 {
	if r.Amount <= 0 {
		return 0
	}
	return float64(r.Raised) / float64(r.Amount)
}

// Query narrows and orders a catalog search. Zero values disable the
// corresponding filter.
type Query struct {
	Text      string
	Status    ReleaseStatus
	AssetType AssetType
	Sort      SortKey
}

// Stats summarizes the merged catalog by lifecycle phase.
type Stats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Upcoming int `json:"upcoming"`
	Redeemed int `json:"redeemed"`
}
