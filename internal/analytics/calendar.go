package analytics

import (
	"fmt"
	"time"

	"github.com/GTDGit/gtd_dashboard/internal/models"
)

// MonthKey identifies a calendar month.
type MonthKey struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month a calendar date falls in.
func MonthOf(d models.Date) MonthKey {
	return MonthKey{Year: d.Year(), Month: d.Month()}
}

// MonthOfTime returns the month of t in t's location.
func MonthOfTime(t time.Time) MonthKey {
	y, m, _ := t.Date()
	return MonthKey{Year: y, Month: m}
}

// PreviousMonth returns the month containing the 15th of the month before now.
func PreviousMonth(now time.Time) MonthKey {
	y, m, _ := now.Date()
	return MonthOfTime(time.Date(y, m-1, 15, 0, 0, 0, 0, now.Location()))
}

// Add returns the month n months after k (n may be negative).
func (k MonthKey) Add(n int) MonthKey {
	return MonthOfTime(time.Date(k.Year, k.Month+time.Month(n), 1, 0, 0, 0, 0, time.UTC))
}

// FirstDay returns the 1st of the month.
func (k MonthKey) FirstDay() models.Date {
	return models.NewDate(k.Year, k.Month, 1)
}

// LastDay returns the last day of the month.
func (k MonthKey) LastDay() models.Date {
	return models.NewDate(k.Year, k.Month+1, 0)
}

// Label returns the short English month name, e.g. "Jan".
func (k MonthKey) Label() string {
	return k.Month.String()[:3]
}

func (k MonthKey) String() string {
	return fmt.Sprintf("%04d-%02d", k.Year, int(k.Month))
}

// LastMonths returns the n months ending with now's month, oldest first.
func LastMonths(now time.Time, n int) []MonthKey {
	curr := MonthOfTime(now)
	keys := make([]MonthKey, n)
	for i := 0; i < n; i++ {
		keys[i] = curr.Add(i - (n - 1))
	}
	return keys
}
