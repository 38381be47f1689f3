package voice

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 2026-01-14 is a Wednesday.
var anchor = time.Date(2026, 1, 14, 0, 0, 0, 0, time.UTC)

func TestParseAnchor(t *testing.T) {
	got, err := ParseAnchor("2026-01-14")
	require.NoError(t, err)
	assert.Equal(t, anchor, got)

	_, err = ParseAnchor("01/14/2026")
	assert.Error(t, err)
}

func TestResolveDate(t *testing.T) {
	cases := []struct {
		token string
		want  []string
	}{
		{"today", []string{"2026-01-14"}},
		{"Tomorrow", []string{"2026-01-15"}},
		{"yesterday", []string{"2026-01-13"}},
		{"friday", []string{"2026-01-16"}},
		{"next friday", []string{"2026-01-16"}},
		// Same weekday as the anchor rolls a full week forward.
		{"wednesday", []string{"2026-01-21"}},
		{"monday", []string{"2026-01-19"}},
		{"next week", []string{"2026-01-19", "2026-01-20", "2026-01-21", "2026-01-22", "2026-01-23"}},
		{"this week", []string{"2026-01-14", "2026-01-15", "2026-01-16"}},
		{"2026-03-02", []string{"2026-03-02"}},
	}

	for _, tc := range cases {
		t.Run(tc.token, func(t *testing.T) {
			got, err := ResolveDate(tc.token, anchor)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveDate_SaturdayAnchorThisWeek(t *testing.T) {
	sat := time.Date(2026, 1, 17, 0, 0, 0, 0, time.UTC)
	got, err := ResolveDate("this week", sat)
	require.NoError(t, err)
	// Weekend anchors fall forward to the coming work week.
	assert.Equal(t, []string{"2026-01-19", "2026-01-20", "2026-01-21", "2026-01-22", "2026-01-23"}, got)
}

func TestResolveDate_Unrecognized(t *testing.T) {
	_, err := ResolveDate("someday", anchor)
	assert.Error(t, err)

	_, err = ResolveDate("", anchor)
	assert.Error(t, err)
}

func TestResolveDates_DeduplicatesPreservingOrder(t *testing.T) {
	got, err := ResolveDates([]string{"tomorrow", "2026-01-15", "friday"}, anchor)
	require.NoError(t, err)
	assert.Equal(t, []string{"2026-01-15", "2026-01-16"}, got)
}

func TestResolveDates_FailsOnFirstBadToken(t *testing.T) {
	_, err := ResolveDates([]string{"tomorrow", "whenever"}, anchor)
	assert.Error(t, err)
}
