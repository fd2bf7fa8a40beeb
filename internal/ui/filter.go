package ui

import (
	"strings"

	"user-records/internal/model"
)

// Filter keeps users whose "first last" contains query, ignoring case.
// An empty query keeps everyone.
func Filter(users []model.User, query string) []model.User {
	q := strings.ToLower(query)
	out := make([]model.User, 0, len(users))
	for _, u := range users {
		if strings.Contains(strings.ToLower(u.FullName()), q) {
			out = append(out, u)
		}
	}
	return out
}
