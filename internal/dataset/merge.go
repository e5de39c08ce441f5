package dataset

import (
	"strconv"

	"github.com/biter777/countries"

	"spacedata/launchharvest/helpers"
)

// countryOverrides maps raw location suffixes that are not country names (or
// not the ISO spelling) onto the country the launch site belongs to.
var countryOverrides = map[string]string{
	"Russia":                         "Russian Federation",
	"New Mexico":                     "USA",
	"Yellow Sea":                     "China",
	"Shahrud Missile Test Site":      "Iran",
	"Pacific Missile Range Facility": "USA",
	"Barents Sea":                    "Russian Federation",
	"Gran Canaria":                   "USA",
}

// forcedCountryCodes pins codes the name table does not resolve reliably.
var forcedCountryCodes = map[string]string{
	"Iran":        "IRN",
	"North Korea": "PRK",
}

// Merge appends the normalized incoming records to the existing dataset and
// returns the result as a new Dataset. Existing records pass through
// untouched; the caller guarantees incoming has no overlap with existing
// (the crawl stops before re-scraping persisted dates), so there is no
// dedup pass here.
func Merge(existing *Dataset, incoming []RawRecord) *Dataset {
	merged := &Dataset{
		Records: make([]Record, 0, len(existing.Records)+len(incoming)),
	}
	merged.Records = append(merged.Records, existing.Records...)

	for _, raw := range incoming {
		merged.Records = append(merged.Records, Normalize(raw))
	}

	return merged
}

// Normalize derives the analytical columns for one raw record.
func Normalize(raw RawRecord) Record {
	country := helpers.LastField(raw.Location, ",")
	if override, ok := countryOverrides[country]; ok {
		country = override
	}

	var year *int
	if raw.Date != nil {
		y := raw.Date.Year()
		year = &y
	}

	return Record{
		Organisation:        raw.Organisation,
		Detail:              raw.Detail,
		Location:            raw.Location,
		Date:                raw.Date,
		ImageLink:           raw.ImageLink,
		MissionStatus:       raw.MissionStatus,
		RocketStatus:        raw.RocketStatus,
		Price:               parsePrice(raw.Price),
		Country:             country,
		CountryCode:         countryCode(country),
		MissionStatusBinary: statusBinary(raw.MissionStatus),
		Year:                year,
	}
}

// countryCode resolves a country name to its ISO3 code, "Unknown" on lookup
// failure. Iran and North Korea are force-mapped regardless of the table.
func countryCode(country string) string {
	if code, ok := forcedCountryCodes[country]; ok {
		return code
	}
	c := countries.ByName(country)
	if c == countries.Unknown {
		return "Unknown"
	}
	return c.Alpha3()
}

// statusBinary is "Success" iff the mission status is exactly "Success".
func statusBinary(status *string) string {
	if status != nil && *status == "Success" {
		return "Success"
	}
	return "Failure"
}

// parsePrice converts the scraped price string to a float, nil when absent
// or unparseable (never zero).
func parsePrice(price *string) *float64 {
	if price == nil {
		return nil
	}
	v, err := strconv.ParseFloat(*price, 64)
	if err != nil {
		return nil
	}
	return &v
}
