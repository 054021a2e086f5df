package analytics

import (
	"sort"
	"strings"

	"github.com/gww-voice/dashboard/internal/models"
)

var fieldLabels = map[string]string{
	"name":                   "Name",
	"address":                "Address",
	"phone_number":           "Phone Number",
	"secondary_phone_number": "Secondary Phone",
	"dob":                    "Date of Birth",
	"email":                  "Email",
}

// FieldCount is how many times one field name appears across all users'
// fields_updated lists.
type FieldCount struct {
	Field string `json:"field"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// FieldSummary condenses the distribution.
type FieldSummary struct {
	TotalUpdates     int     `json:"total_updates"`
	UsersWithUpdates int     `json:"users_with_updates"`
	AveragePerUser   float64 `json:"average_per_user"`
}

// Label returns the display name of a user field. Unknown fields are
// upper-cased with underscores turned into spaces.
func Label(field string) string {
	if l, ok := fieldLabels[field]; ok {
		return l
	}
	return strings.ToUpper(strings.ReplaceAll(field, "_", " "))
}

// FieldDistribution counts every entry of every user's fields_updated.
// The result is ordered by count, highest first, then by field name.
func FieldDistribution(users []models.User) []FieldCount {
	counts := make(map[string]int)
	for _, u := range users {
		for _, f := range u.FieldsUpdated {
			counts[f]++
		}
	}

	out := make([]FieldCount, 0, len(counts))
	for f, n := range counts {
		out = append(out, FieldCount{Field: f, Label: Label(f), Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Field < out[j].Field
	})
	return out
}

func Summarize(users []models.User) FieldSummary {
	var s FieldSummary
	for _, u := range users {
		if len(u.FieldsUpdated) == 0 {
			continue
		}
		s.UsersWithUpdates++
		s.TotalUpdates += len(u.FieldsUpdated)
	}
	if s.UsersWithUpdates > 0 {
		s.AveragePerUser = float64(s.TotalUpdates) / float64(s.UsersWithUpdates)
	}
	return s
}
