package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMembershipYears(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tests := []struct {
		name   string
		joined time.Time
		want   int
	}{
		{"joined this year", time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), 1},
		{"joined last december", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), 1},
		{"three calendar years", time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), 3},
		{"zero time", time.Time{}, 2024},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MembershipYears(tt.joined, now))
		})
	}
}
