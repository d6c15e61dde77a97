package localtime

import (
	"fmt"
	"time"
)

// Clock returns the current UTC wall time.
type Clock interface {
	Now() time.Time
}

type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time {
	return f()
}

var SystemClock = ClockFunc(func() time.Time { return time.Now().UTC() })

type LocalTime struct {
	Year    int
	Month   time.Month
	Day     int
	Hour    int
	Weekday time.Weekday
}

// Date formats the local date as YYYYMMDD.
func (lt LocalTime) Date() string {
	return fmt.Sprintf("%04d%02d%02d", lt.Year, int(lt.Month), lt.Day)
}

// Service resolves local time from a UTC clock with a fixed standard offset and the
// EU daylight saving rule (last Sunday of March to last Sunday of October).
type Service struct {
	clock          Clock
	standardOffset int
	dstOffset      int
}

func New(clock Clock, standardOffsetHours, dstOffsetHours int) *Service {
	return &Service{
		clock:          clock,
		standardOffset: standardOffsetHours,
		dstOffset:      dstOffsetHours,
	}
}

func (s *Service) Now() LocalTime {
	return s.At(s.clock.Now())
}

func (s *Service) At(utc time.Time) LocalTime {
	local := utc.UTC().Add(time.Duration(s.standardOffset) * time.Hour)
	if IsDST(local.Year(), local.Month(), local.Day()) {
		local = local.Add(time.Duration(s.dstOffset) * time.Hour)
	}
	return LocalTime{
		Year:    local.Year(),
		Month:   local.Month(),
		Day:     local.Day(),
		Hour:    local.Hour(),
		Weekday: local.Weekday(),
	}
}

// IsDST reports whether daylight saving applies on the given date. It switches at day
// granularity: the day after the last Sunday of March is the first DST day and the last
// Sunday of October is the last one.
func IsDST(year int, month time.Month, day int) bool {
	if month < time.March || month > time.October {
		return false
	}
	if month > time.March && month < time.October {
		return true
	}
	lastSunday := LastSunday(year, month)
	if month == time.March {
		return day > lastSunday
	}
	return day <= lastSunday
}

// LastSunday returns the day of month of the last Sunday in a 31 day month.
func LastSunday(year int, month time.Month) int {
	days := time.Date(year, month, 31, 0, 0, 0, 0, time.UTC).Unix() / 86400
	// 1970-01-01 was a Thursday
	return 31 - int((days+4)%7)
}
