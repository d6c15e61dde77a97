package price

import (
	"errors"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
)

// DefaultHourLabelOffset is the difference between a feed hour label and the wall clock hour
// it covers. Hour h in the feed is the interval ending at h.
const DefaultHourLabelOffset = 1

var ErrEmptyInput = errors.New("no price records")

type Record struct {
	Date  string  `json:"date"`
	Hour  int     `json:"hour"`
	Price float64 `json:"price"`
}

type Stats struct {
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
}

// Parse reads the semicolon separated feed line by line. The first non-empty line is a header.
// Lines that do not hold a date, an integer hour and a decimal comma price are skipped.
func Parse(raw string) []Record {
	records := make([]Record, 0, 24)
	header := true
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if header {
			header = false
			continue
		}
		rec, err := parseRecord(strings.Split(line, ";"))
		if err != nil {
			logrus.WithField("line", i+1).Debugf("price: skipping line: %s", err)
			continue
		}
		records = append(records, rec)
	}
	return records
}

func parseRecord(fields []string) (Record, error) {
	if len(fields) < 3 {
		return Record{}, errors.New("expected date;hour;price")
	}
	date := strings.TrimSpace(fields[0])
	if date == "" {
		return Record{}, errors.New("empty date")
	}
	hour, err := strconv.Atoi(strings.TrimSpace(fields[1]))
	if err != nil {
		return Record{}, err
	}
	p, err := strconv.ParseFloat(strings.ReplaceAll(strings.TrimSpace(fields[2]), ",", "."), 64)
	if err != nil {
		return Record{}, err
	}
	return Record{Date: date, Hour: hour, Price: p}, nil
}

func Aggregate(records []Record) (Stats, error) {
	if len(records) == 0 {
		return Stats{}, ErrEmptyInput
	}
	stats := Stats{Min: records[0].Price, Max: records[0].Price}
	total := 0.0
	for _, r := range records {
		total += r.Price
		if r.Price < stats.Min {
			stats.Min = r.Price
		}
		if r.Price > stats.Max {
			stats.Max = r.Price
		}
	}
	stats.Average = total / float64(len(records))
	return stats, nil
}

// SelectHour returns the first record labelled hour+labelOffset.
func SelectHour(records []Record, hour, labelOffset int) (Record, bool) {
	for _, r := range records {
		if r.Hour == hour+labelOffset {
			return r, true
		}
	}
	return Record{}, false
}
