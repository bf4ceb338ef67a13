// Package models defines the core data types shared across the pipeline:
// normalized app-store reviews and the analysis results produced from them.
package models

import (
	"math"
	"sort"
	"time"
)

// Platform identifies the app store a review came from.
type Platform string

const (
	PlatformAndroid Platform = "Android"
	PlatformIOS     Platform = "iOS"
)

// Review is one normalized user review from either store.
type Review struct {
	Platform   Platform  `json:"platform"`
	Rating     int       `json:"rating"` // 1..5
	Title      string    `json:"title"`
	Text       string    `json:"text"`
	Date       time.Time `json:"date"`
	ThumbsUp   int       `json:"thumbs_up"`   // Android only; 0 for iOS
	AppVersion string    `json:"app_version"` // may be empty
}

// Collection is the set of reviews for one run, kept date-descending.
type Collection []Review

// SortByDateDesc orders the collection newest-first.
func (c Collection) SortByDateDesc() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Date.After(c[j].Date)
	})
}

// CountByPlatform returns the number of reviews from the given platform.
func (c Collection) CountByPlatform(p Platform) int {
	n := 0
	for _, r := range c {
		if r.Platform == p {
			n++
		}
	}
	return n
}

// FilterSince returns the reviews dated at or after cutoff.
func (c Collection) FilterSince(cutoff time.Time) Collection {
	out := make(Collection, 0, len(c))
	for _, r := range c {
		if !r.Date.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out
}

// AverageRating returns the mean rating rounded to two decimals.
// An empty collection averages to zero.
func (c Collection) AverageRating() float64 {
	if len(c) == 0 {
		return 0
	}
	sum := 0
	for _, r := range c {
		sum += r.Rating
	}
	return Round2(float64(sum) / float64(len(c)))
}

// SentimentBands holds the rating distribution as percentages.
// Positive covers ratings >= 4, Neutral == 3, Negative <= 2; the three
// bands partition the collection.
type SentimentBands struct {
	PositivePct float64 `json:"positive_pct"`
	NeutralPct  float64 `json:"neutral_pct"`
	NegativePct float64 `json:"negative_pct"`
}

// Sentiment computes the rating bands, each rounded to one decimal.
func (c Collection) Sentiment() SentimentBands {
	if len(c) == 0 {
		return SentimentBands{}
	}
	var pos, neu, neg int
	for _, r := range c {
		switch {
		case r.Rating >= 4:
			pos++
		case r.Rating == 3:
			neu++
		default:
			neg++
		}
	}
	total := float64(len(c))
	return SentimentBands{
		PositivePct: Round1(float64(pos) / total * 100),
		NeutralPct:  Round1(float64(neu) / total * 100),
		NegativePct: Round1(float64(neg) / total * 100),
	}
}

// DateRange returns the oldest and newest review dates in the collection.
func (c Collection) DateRange() (start, end time.Time) {
	for i, r := range c {
		if i == 0 {
			start, end = r.Date, r.Date
			continue
		}
		if r.Date.Before(start) {
			start = r.Date
		}
		if r.Date.After(end) {
			end = r.Date
		}
	}
	return start, end
}

// Round2 rounds to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Round1 rounds to one decimal place.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
