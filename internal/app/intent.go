package app

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"stay_booking/internal/domain"
)

// Deterministic local fallbacks for when the text-understanding collaborator
// fails or times out. They are crude on purpose: the workflow must never
// block on a dead upstream.

var hotelKeywords = []string{"hotel", "booking", "book", "stay", "reservation", "room"}

var localityAliases = []struct{ alias, location string }{
	{"san francisco", "San Francisco, CA"},
	{"new york", "New York, NY"},
	{"sf", "San Francisco, CA"},
	{"nyc", "New York, NY"},
	{"miami", "Miami, FL"},
	{"la", "Los Angeles, CA"},
	{"denver", "Denver, CO"},
	{"chicago", "Chicago, IL"},
	{"boston", "Boston, MA"},
}

var budgetRe = regexp.MustCompile(`\$(\d+)`)

func heuristicIntent(query string) domain.Intent {
	q := strings.ToLower(query)

	hasIntent := false
	for _, kw := range hotelKeywords {
		if strings.Contains(q, kw) {
			hasIntent = true
			break
		}
	}
	if !hasIntent {
		return domain.Intent{
			HasHotelIntent: false,
			Response:       "No hotel intent detected in: " + query,
		}
	}

	f := domain.SearchFilters{Location: "San Francisco, CA", MinRating: 3.0}
	for _, la := range localityAliases {
		if strings.Contains(q, la.alias) {
			f.Location = la.location
			break
		}
	}
	if m := budgetRe.FindStringSubmatch(query); m != nil {
		f.MaxPrice, _ = strconv.ParseFloat(m[1], 64)
	}
	switch {
	case containsAny(q, "beach", "ocean", "sea", "water"):
		f.Amenities = []string{"Beach Access"}
	case strings.Contains(q, "spa"):
		f.Amenities = []string{"Spa"}
	case strings.Contains(q, "gym"):
		f.Amenities = []string{"Gym"}
	}

	return domain.Intent{
		HasHotelIntent: true,
		Filters:        f,
		Response:       fmt.Sprintf("Keyword search for %s", f.Location),
	}
}

var yearRe = regexp.MustCompile(`20\d{2}`)

var months = map[string]time.Month{
	"january": time.January, "jan": time.January,
	"february": time.February, "feb": time.February,
	"march": time.March, "mar": time.March,
	"april": time.April, "apr": time.April,
	"may":  time.May,
	"june": time.June, "jun": time.June,
	"july": time.July, "jul": time.July,
	"august": time.August, "aug": time.August,
	"september": time.September, "sep": time.September,
	"october": time.October, "oct": time.October,
	"november": time.November, "nov": time.November,
	"december": time.December, "dec": time.December,
}

// fallbackDates tries a month-plus-day scrape of the query; failing that it
// defaults to a 2-night stay starting 7 days out.
func fallbackDates(query string, today time.Time) domain.DateExtraction {
	q := strings.ToLower(query)

	year := today.Year()
	if m := yearRe.FindString(query); m != "" {
		year, _ = strconv.Atoi(m)
	}
	for name, month := range months {
		if !strings.Contains(q, name) {
			continue
		}
		dayRe := regexp.MustCompile(name + `\s+(\d{1,2})`)
		m := dayRe.FindStringSubmatch(q)
		if m == nil {
			continue
		}
		day, _ := strconv.Atoi(m[1])
		checkIn := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		if checkIn.Day() != day { // rolled over, e.g. feb 31
			continue
		}
		return domain.DateExtraction{
			Stay:       domain.NewStay(checkIn, checkIn.AddDate(0, 0, 2)),
			Confidence: domain.ConfidenceMedium,
			Method:     "regex_fallback",
			Details:    fmt.Sprintf("fallback extraction found %s %d, %d", name, day, year),
		}
	}

	checkIn := today.AddDate(0, 0, 7)
	return domain.DateExtraction{
		Stay:       domain.NewStay(checkIn, checkIn.AddDate(0, 0, 2)),
		Confidence: domain.ConfidenceLow,
		Method:     "default_fallback",
		Details:    "no dates found, using default: next week for 2 nights",
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
