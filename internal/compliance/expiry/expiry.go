// Package expiry holds the pure date arithmetic the whole system hangs off:
// remaining whole days until an expiry date and the status bucket derived
// from them.
package expiry

import (
	"math"
	"time"
)

// Status is the validity bucket of a compliance record.
type Status string

const (
	StatusExpired  Status = "expired"
	StatusExpiring Status = "expiring_soon"
	StatusValid    Status = "valid"
)

const (
	// ExpiringSoonDays is the badge threshold: fewer remaining days than
	// this puts a record in the expiring-soon bucket.
	ExpiringSoonDays = 30
	// FeedWindowDays is the wider cutoff used only by the cross-entity
	// expiring feed, surfacing items earlier than the badge does.
	FeedWindowDays = 60
)

// DaysRemaining returns the whole days left until expiry measured from the
// current local date, or nil when there is no expiry date. See
// DaysRemainingAt for the exact arithmetic.
func DaysRemaining(expiry *time.Time) *int {
	return DaysRemainingAt(expiry, time.Now())
}

// DaysRemainingAt computes the ceiling of the whole-day difference between
// expiry and now, both truncated to local midnight. The ceiling matters: an
// expiry tomorrow must report 1, not 0. A nil expiry yields nil, which
// callers treat as "no constraint".
func DaysRemainingAt(expiry *time.Time, now time.Time) *int {
	if expiry == nil || expiry.IsZero() {
		return nil
	}
	from := midnight(now)
	until := midnight(*expiry)
	days := int(math.Ceil(until.Sub(from).Hours() / 24))
	return &days
}

// Bucket maps remaining days onto a Status: negative is expired, below
// ExpiringSoonDays is expiring-soon, anything else (including no expiry
// date at all) is valid.
func Bucket(days *int) Status {
	if days == nil {
		return StatusValid
	}
	switch {
	case *days < 0:
		return StatusExpired
	case *days < ExpiringSoonDays:
		return StatusExpiring
	default:
		return StatusValid
	}
}

// OneYearLater returns issue plus exactly one calendar year, the sole rule
// for deriving a certificate expiry date. A Feb-29 issue date maps to
// Feb-28 of the following year. The zero time maps to itself, the caller's
// "no date" sentinel.
func OneYearLater(issue time.Time) time.Time {
	if issue.IsZero() {
		return time.Time{}
	}
	later := issue.AddDate(1, 0, 0)
	// AddDate normalizes Feb 29 -> Mar 1; pin it back to Feb 28.
	if issue.Month() == time.February && issue.Day() == 29 && later.Month() == time.March {
		later = later.AddDate(0, 0, -1)
	}
	return later
}

// FormatHuman renders a date as dd/mm/yyyy for display, or an empty string
// for the zero time. The formatted value is display-only; computation always
// works on the raw date.
func FormatHuman(date time.Time) string {
	if date.IsZero() {
		return ""
	}
	return date.Format("02/01/2006")
}

// midnight truncates t to 00:00:00 in its own location.
func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
