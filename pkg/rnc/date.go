package rnc

import (
	"database/sql"
	"strings"
	"time"
)

const (
	// SourceDateLayout is the day/month/year format of the source.
	// Day and month may have one or two digits.
	SourceDateLayout = "2/1/2006"

	// StorageDateLayout is the format dates are stored in.
	StorageDateLayout = "2006-01-02"

	// NoDate is the placeholder the source uses for a missing date.
	NoDate = "00/00/0000"
)

// ParseDate reconciles the raw date field of a source row.
// Blank values, the NoDate placeholder and anything that is not a valid
// calendar date in day/month/year form result in NULL.
func ParseDate(s string) sql.NullTime {
	s = strings.TrimSpace(s)
	if s == "" || s == NoDate {
		return sql.NullTime{}
	}

	t, err := time.Parse(SourceDateLayout, s)
	if err != nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t, Valid: true}
}
