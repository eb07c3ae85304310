// Package entity defines the profile's read models. The profile itself is the auth User.
package entity

import "time"

// Activity counts what a user has done on the platform.
type Activity struct {
	Orders        int64
	Reviews       int64
	Addresses     int64
	AverageRating float64
}

// Stats is the activity summary shown on the profile page.
type Stats struct {
	Activity
	Years int
}

// MembershipYears is the number of calendar years since joined, never less than one.
func MembershipYears(joined, now time.Time) int {
	years := now.Year() - joined.Year()
	if years < 1 {
		return 1
	}
	return years
}
