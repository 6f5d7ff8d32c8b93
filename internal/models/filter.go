package models

import "strings"

// SentFilter selects rows by their sent flag in admin listings.
type SentFilter string

const (
	SentFilterAll     SentFilter = "all"
	SentFilterSent    SentFilter = "sent"
	SentFilterNotSent SentFilter = "not_sent"
)

// ParseSentFilter maps a query value to a filter. Unknown values select every row.
func ParseSentFilter(raw string) SentFilter {
	switch SentFilter(strings.ToLower(strings.TrimSpace(raw))) {
	case SentFilterSent:
		return SentFilterSent
	case SentFilterNotSent:
		return SentFilterNotSent
	default:
		return SentFilterAll
	}
}
