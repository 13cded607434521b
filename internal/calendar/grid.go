// Package calendar materializes the 52-week focus grid from sparse daily
// activity minutes.
package calendar

import (
	"sort"
	"time"
)

// dateFormat is the day key used throughout the grid.
const dateFormat = "2006-01-02"

// Activity color buckets.
const (
	BucketEmpty  = 0 // no minutes
	BucketLow    = 1 // 1-10 minutes
	BucketMedium = 2 // 11-60 minutes
	BucketHigh   = 3 // over an hour
)

// Day is one cell of the grid.
type Day struct {
	Date     string
	Minutes  int
	Bucket   int
	IsFuture bool
}

// Week is one column of seven days, Monday first.
type Week [7]Day

// Stats summarizes the full history map, independent of the grid window.
type Stats struct {
	TotalMinutes  int
	ActiveDays    int
	LongestStreak int
}

// bucketFor assigns the color bucket for a day's minutes.
func bucketFor(minutes int) int {
	switch {
	case minutes <= 0:
		return BucketEmpty
	case minutes <= 10:
		return BucketLow
	case minutes <= 60:
		return BucketMedium
	default:
		return BucketHigh
	}
}

// localNoon normalizes a moment to noon local time. Anchoring day arithmetic
// at noon keeps AddDate stable across DST boundaries.
func localNoon(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 12, 0, 0, 0, t.Location())
}

// BuildGrid materializes exactly 52 weeks of days ending on the week that
// contains now. Weeks run Monday to Sunday; dates after today are marked
// future regardless of bucket.
func BuildGrid(history map[string]int, now time.Time) []Week {
	today := localNoon(now)

	// Monday on or before today, ISO convention (Sunday ends the week).
	offset := int(today.Weekday()) - 1
	if offset < 0 {
		offset = 6
	}
	monday := today.AddDate(0, 0, -offset)
	start := monday.AddDate(0, 0, -51*7)

	todayKey := today.Format(dateFormat)
	weeks := make([]Week, 52)
	cursor := start
	for w := range weeks {
		for d := 0; d < 7; d++ {
			key := cursor.Format(dateFormat)
			minutes := history[key]
			weeks[w][d] = Day{
				Date:     key,
				Minutes:  minutes,
				Bucket:   bucketFor(minutes),
				IsFuture: key > todayKey,
			}
			cursor = cursor.AddDate(0, 0, 1)
		}
	}
	return weeks
}

// ComputeStats derives totals and the longest run of consecutive active days
// from the history map. A gap of one missing day breaks the streak.
func ComputeStats(history map[string]int) Stats {
	var stats Stats

	dates := make([]string, 0, len(history))
	for date, minutes := range history {
		if minutes <= 0 {
			continue
		}
		stats.TotalMinutes += minutes
		stats.ActiveDays++
		dates = append(dates, date)
	}
	if len(dates) == 0 {
		return stats
	}

	// Streaks need chronological order; map iteration has none.
	sort.Strings(dates)

	run := 1
	stats.LongestStreak = 1
	prev, err := time.Parse(dateFormat, dates[0])
	if err != nil {
		return stats
	}
	for _, date := range dates[1:] {
		curr, err := time.Parse(dateFormat, date)
		if err != nil {
			continue
		}
		if curr.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		if run > stats.LongestStreak {
			stats.LongestStreak = run
		}
		prev = curr
	}
	return stats
}
