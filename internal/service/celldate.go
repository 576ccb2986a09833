package service

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

const (
	cellDateLayout = "2006-01-02 15:04:05"

	// Day offset between the 1900 date system epoch and the Unix epoch.
	serialEpochOffsetDays = 25569
	secondsPerDay         = 86400
)

// ParseCellDate converts a raw spreadsheet date cell to a UTC instant.
// Accepted shapes: a textual "YYYY-MM-DD HH:MM:SS" value interpreted as UTC,
// or a numeric serial day count in the 1900 date system. Anything else is a
// parse failure for the caller to recover from.
func ParseCellDate(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, fmt.Errorf("empty date cell")
	}

	if ts, err := time.Parse(cellDateLayout, raw); err == nil {
		return ts.UTC(), nil
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		seconds := (serial - serialEpochOffsetDays) * secondsPerDay
		return time.Unix(int64(math.Round(seconds)), 0).UTC(), nil
	}

	return time.Time{}, fmt.Errorf("unrecognized date value %q", raw)
}
