package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"spacedata/launchharvest/pkg/errors"
)

// dateLayout is the canonical serialization layout for the Date column. It
// is also one of the accepted parse layouts, so a dataset always round-trips.
const dateLayout = "2006-01-02 15:04:05"

// Header is the exact CSV column order of the persisted dataset.
var Header = []string{
	"Organisation", "Detail", "Location", "Date", "Image_Link",
	"Mission_Status", "Rocket_Status", "Price", "Country", "country_code",
	"Mission_Status_Binary", "YEAR_LAUNCH",
}

// EncodeCSV writes the dataset as CSV with a header row. Nil fields become
// empty cells.
func EncodeCSV(w io.Writer, d *Dataset) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}

	for i := range d.Records {
		rec := &d.Records[i]
		row := []string{
			rec.Organisation,
			rec.Detail,
			rec.Location,
			formatDate(rec.Date),
			stringOrEmpty(rec.ImageLink),
			stringOrEmpty(rec.MissionStatus),
			stringOrEmpty(rec.RocketStatus),
			formatPrice(rec.Price),
			rec.Country,
			rec.CountryCode,
			rec.MissionStatusBinary,
			formatYear(rec.Year),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write csv record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// DecodeCSV reads a persisted dataset back. A non-empty Date cell that
// matches none of the accepted layouts is fatal: without reliable dates the
// incremental crawl cannot determine where to stop.
func DecodeCSV(r io.Reader, dateLayouts []string) (*Dataset, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, errors.NewStorage("csv", "read header", err)
	}
	if len(header) != len(Header) {
		return nil, errors.NewStorage("csv",
			fmt.Sprintf("unexpected column count %d, want %d", len(header), len(Header)), nil)
	}

	d := &Dataset{}
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.NewStorage("csv", fmt.Sprintf("read line %d", line), err)
		}

		var date *time.Time
		if row[3] != "" {
			date = ParseDate(row[3], dateLayouts)
			if date == nil {
				return nil, errors.NewStorage("csv",
					fmt.Sprintf("unparseable date %q on line %d", row[3], line), nil)
			}
		}

		d.Records = append(d.Records, Record{
			Organisation:        row[0],
			Detail:              row[1],
			Location:            row[2],
			Date:                date,
			ImageLink:           emptyToNil(row[4]),
			MissionStatus:       emptyToNil(row[5]),
			RocketStatus:        emptyToNil(row[6]),
			Price:               parsePriceCell(row[7]),
			Country:             row[8],
			CountryCode:         row[9],
			MissionStatusBinary: row[10],
			Year:                parseYearCell(row[11]),
		})
	}

	return d, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return strconv.FormatFloat(*p, 'f', -1, 64)
}

func formatYear(y *int) string {
	if y == nil {
		return ""
	}
	return strconv.Itoa(*y)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func emptyToNil(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func parsePriceCell(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func parseYearCell(s string) *int {
	if s == "" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}
	return &v
}
