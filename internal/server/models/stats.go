package models

import "time"

// DailyStat is one appended entry of the daily snapshot: the global tree
// total as of Date (YYYY-MM-DD). Past dates are never rewritten.
type DailyStat struct {
	Date       string
	TotalTrees int64
	UpdatedAt  time.Time
}
