package service

import "time"

// DefaultListLimit is used when a list request carries no usable limit.
const DefaultListLimit = 20

// RecentOrdersLimit is the size of the dashboard's recent orders panel.
const RecentOrdersLimit = 10

// Clock returns a time source reporting the current time in loc.
func Clock(loc *time.Location) func() time.Time {
	if loc == nil {
		loc = time.Local
	}
	return func() time.Time { return time.Now().In(loc) }
}
