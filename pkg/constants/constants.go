// Package constants provides shared constants used throughout the censusbot codebase.
// This includes the census vintage, citation text, matching thresholds, template and
// field names, and file permissions that must stay consistent across packages.
package constants

// Census vintage defaults. All of these can be overridden through configuration.
const (
	// DefaultCensusYear is the decennial census whose counts are written into articles
	DefaultCensusYear = 2020

	// DefaultEstimateYear is the vintage of the annual population estimates
	DefaultEstimateYear = 2024

	// DefaultBatch namespaces outcomes in the progress ledger
	DefaultBatch = "1"

	// DefaultBotName is the identity checked against bot-exclusion directives
	DefaultBotName = "Scaledbot"

	// DefaultFuzzyThreshold is the minimum similarity ratio for a fuzzy title match
	DefaultFuzzyThreshold = 0.95
)

// DefaultCensusRef is the citation attached to the decennial count.
const DefaultCensusRef = "<ref>{{Cite web |date=2020-04-01 |title=2020 Census Decennial Demographic and Housing Characteristics: Population by Place (Table P1) |url=https://data.census.gov/table/DECENNIALDHC2020.P1?t=Populations+and+People&g=010XX00US$0600000,$1600000&d=DEC+Demographic+and+Housing+Characteristics |archive-url=https://archive.is/XepMr |archive-date=2025-09-24 |access-date=2025-09-24 |website=Census Bureau Data}}</ref>"

// DefaultEstimateRef is the citation attached to the annual estimate.
const DefaultEstimateRef = "<ref>{{cite web |title=Annual Estimates of the Resident Population |url=https://www.census.gov/data/tables/time-series/demo/popest/2020s-total-cities-and-towns.html |publisher=United States Census Bureau |access-date=2025-09-16}}</ref>"

// DefaultDesignators are the place-type suffixes tried, in order, when a title
// has no direct census match.
var DefaultDesignators = []string{" city", " town", " village", " township", " CDP"}

// Census table layout
const (
	// ColumnName holds the place name in both tables
	ColumnName = "NAME"

	// ColumnGeoID holds the geographic identifier in the decennial table
	ColumnGeoID = "GEO_ID"

	// ColumnPopulation holds the count (decennial table) or estimate (estimate table)
	ColumnPopulation = "P1_001N"

	// EstimateNameSuffix is stripped from estimate-table names before matching
	EstimateNameSuffix = " CBT"
)

// Template names, compared case-insensitively
const (
	// TemplatePopulation is the population-history template
	TemplatePopulation = "US Census population"

	// TemplateInfobox is the settlement infobox template
	TemplateInfobox = "Infobox settlement"

	// TemplateBots is the bot directive that may allow or deny
	TemplateBots = "bots"

	// TemplateNoBots is the exclusion-only bot directive
	TemplateNoBots = "nobots"
)

// Population-history template fields
const (
	FieldEstYear  = "estyear"
	FieldEstimate = "estimate"
	FieldEstRef   = "estref"

	// SourcedSuffix is appended to the census year to form the citation field ("2020n")
	SourcedSuffix = "n"
)

// Settlement infobox fields
const (
	FieldPopulationAsOf     = "population_as_of"
	FieldPopulationTotal    = "population_total"
	FieldPopulationEst      = "population_est"
	FieldPopulationEstAsOf  = "population_est_as_of"
	FieldPopEstAsOf         = "pop_est_as_of"
	FieldPopulationEstNotes = "population_est_footnotes"

	// FIPS lookup pairs, tried in order
	FieldBlankName  = "blank_name"
	FieldBlankInfo  = "blank_info"
	FieldBlank1Name = "blank1_name"
	FieldBlank1Info = "blank1_info"

	// FIPSLabel marks the blank field carrying a FIPS code
	FIPSLabel = "FIPS code"
)

// TargetPhrases indicate an article plausibly describes a United States place.
// Matched case-insensitively against the raw article text.
var TargetPhrases = []string{"us census population", "united states"}

// SummaryLead prefixes every saved edit summary.
const SummaryLead = "Update census info: "

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

