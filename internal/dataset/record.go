package dataset

import "time"

// RawRecord is one scraped launch before normalization. Nil fields mean the
// source did not expose the value (missing detail page, unparseable date).
type RawRecord struct {
	Organisation  string
	Detail        string
	Location      string
	Date          *time.Time
	ImageLink     *string
	MissionStatus *string
	RocketStatus  *string
	Price         *string
}

// Record is a RawRecord plus the derived analytical columns.
type Record struct {
	Organisation        string
	Detail              string
	Location            string
	Date                *time.Time
	ImageLink           *string
	MissionStatus       *string
	RocketStatus        *string
	Price               *float64
	Country             string
	CountryCode         string
	MissionStatusBinary string
	Year                *int
}

// Dataset is the full persisted collection of normalized launches.
type Dataset struct {
	Records []Record
}

// MostRecentDate returns the maximum date across all records, or nil when no
// record carries a date.
func (d *Dataset) MostRecentDate() *time.Time {
	var most *time.Time
	for i := range d.Records {
		date := d.Records[i].Date
		if date == nil {
			continue
		}
		if most == nil || date.After(*most) {
			most = date
		}
	}
	return most
}
