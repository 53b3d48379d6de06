package catalog

// sampleReleases is the fixed demo inventory. Order is part of the contract:
// user-published releases are shown first, then these, in this order.
var sampleReleases = []Release{
	{
		ID:         "TKN-001",
		Title:      "Rental shares: Apartment, Moscow, Taganka",
		Issuer:     "City Assets LLC",
		AssetType:  AssetRealEstate,
		Instrument: InstrumentSPVEquity,
		Status:     StatusActive,
		Risk:       "B+",
		Tags:       []string{"rental", "residential", "moscow"},
		Amount:     35_000_000,
		Raised:     21_300_000,
		UnitPrice:  10_000,
		UnitCount:  3_500,
		Yield:      12.8,
		TermMonths: 24,
		Start:      "2025-05-15",
		End:        "2027-05-14",
	},
	{
		ID:         "TKN-002",
		Title:      "Revenue: Sever coffee chain, 12 locations",
		Issuer:     "Sever Retail LLC",
		AssetType:  AssetRevenueShare,
		Instrument: InstrumentReceivables,
		Status:     StatusActive,
		Risk:       "BB",
		Tags:       []string{"retail", "cafe", "saint-petersburg"},
		Amount:     18_000_000,
		Raised:     8_400_000,
		UnitPrice:  1_000,
		UnitCount:  18_000,
		Yield:      17.5,
		TermMonths: 12,
		Start:      "2025-07-01",
		End:        "2026-06-30",
	},
	{
		ID:         "TKN-003",
		Title:      "Loan: Agro cluster, Tomsk region",
		Issuer:     "SiberiaAgro LLC",
		AssetType:  AssetDebt,
		Instrument: InstrumentLoanReceivables,
		Status:     StatusUpcoming,
		Risk:       "B",
		Tags:       []string{"agro", "infrastructure"},
		Amount:     50_000_000,
		Raised:     0,
		UnitPrice:  5_000,
		UnitCount:  10_000,
		Yield:      15.0,
		TermMonths: 18,
		Start:      "2025-10-10",
		End:        "2027-04-09",
	},
	{
		ID:         "TKN-004",
		Title:      "Prizma coworking, Kazan",
		Issuer:     "TechPark-Invest JSC",
		AssetType:  AssetRealEstate,
		Instrument: InstrumentSPVEquity,
		Status:     StatusRedeemed,
		Risk:       "A-",
		Tags:       []string{"offices", "kazan"},
		Amount:     22_000_000,
		Raised:     22_000_000,
		UnitPrice:  2_000,
		UnitCount:  11_000,
		Yield:      11.2,
		TermMonths: 14,
		Start:      "2024-01-15",
		End:        "2025-03-15",
	},
	{
		ID:         "TKN-005",
		Title:      "Income garages: Novosibirsk",
		Issuer:     "Kuznetsov Sole Trader",
		AssetType:  AssetRealEstate,
		Instrument: InstrumentReceivables,
		Status:     StatusActive,
		Risk:       "B",
		Tags:       []string{"parking", "novosibirsk"},
		Amount:     12_500_000,
		Raised:     7_900_000,
		UnitPrice:  500,
		UnitCount:  25_000,
		Yield:      13.4,
		TermMonths: 20,
		Start:      "2025-04-03",
		End:        "2027-12-03",
	},
	{
		ID:         "TKN-006",
		Title:      "Vektor microloan portfolio",
		Issuer:     "Vektor MFC LLC",
		AssetType:  AssetDebt,
		Instrument: InstrumentReceivables,
		Status:     StatusActive,
		Risk:       "CCC",
		Tags:       []string{"microfinance", "portfolio"},
		Amount:     40_000_000,
		Raised:     31_400_000,
		UnitPrice:  1_000,
		UnitCount:  40_000,
		Yield:      22.0,
		TermMonths: 9,
		Start:      "2025-06-10",
		End:        "2026-03-10",
	},
	{
		ID:         "TKN-007",
		Title:      "Cold storage warehouse, Yekaterinburg",
		Issuer:     "LogistPro LLC",
		AssetType:  AssetRealEstate,
		Instrument: InstrumentSPVEquity,
		Status:     StatusUpcoming,
		Risk:       "BBB",
		Tags:       []string{"warehouses", "yekaterinburg"},
		Amount:     65_000_000,
		Raised:     0,
		UnitPrice:  10_000,
		UnitCount:  6_500,
		Yield:      12.0,
		TermMonths: 36,
		Start:      "2025-11-01",
		End:        "2028-11-01",
	},
	{
		ID:         "TKN-008",
		Title:      "Revenue shares: Online IT courses",
		Issuer:     "EdTech+ LLC",
		AssetType:  AssetRevenueShare,
		Instrument: InstrumentReceivables,
		Status:     StatusActive,
		Risk:       "BB-",
		Tags:       []string{"online-education", "marketing"},
		Amount:     9_000_000,
		Raised:     4_100_000,
		UnitPrice:  1_000,
		UnitCount:  9_000,
		Yield:      18.0,
		TermMonths: 8,
		Start:      "2025-08-05",
		End:        "2026-04-05",
	},
}

// SampleReleases returns a copy of the compiled-in inventory.
func SampleReleases() []Release {
	out := make([]Release, len(sampleReleases))
	copy(out, sampleReleases)
	return out
}
