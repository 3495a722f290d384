// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package listview implements the shared filter, sort and paginate pipeline
// used by every list endpoint. Derivation is pure: the same inputs always
// produce the same page.
package listview

import (
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gorilla/schema"
)

// PageSize is the fixed number of items per page across all views.
const PageSize = 10

// Params are the common list query parameters.
type Params struct {
	Search string `schema:"search"`
	Status string `schema:"status"`
	Filter string `schema:"filter"`
	Sort   string `schema:"sort"`
	Page   int    `schema:"page"`
}

var queryDecoder = newQueryDecoder()

func newQueryDecoder() *schema.Decoder {
	d := schema.NewDecoder()
	d.IgnoreUnknownKeys(true)
	return d
}

// DecodeQuery decodes list parameters from URL query values.
// A missing or invalid page defaults to 1.
func DecodeQuery(values url.Values) (Params, error) {
	var params Params
	if err := queryDecoder.Decode(&params, values); err != nil {
		return Params{}, err
	}
	if params.Page < 1 {
		params.Page = 1
	}
	return params, nil
}

// ParamsFromRequest decodes list parameters from a fiber request.
func ParamsFromRequest(c *fiber.Ctx) (Params, error) {
	values := url.Values{}
	c.Context().QueryArgs().VisitAll(func(key, value []byte) {
		values.Add(string(key), string(value))
	})
	return DecodeQuery(values)
}

// Page is one visible page of a derived list.
type Page[T any] struct {
	Items      []T `json:"items"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	TotalPages int `json:"totalPages"`
}

// Paginate slices items into the requested 1-indexed page.
// An out-of-range page yields an empty item list with intact totals.
func Paginate[T any](items []T, page int) Page[T] {
	if page < 1 {
		page = 1
	}

	total := len(items)
	totalPages := (total + PageSize - 1) / PageSize

	start := (page - 1) * PageSize
	if start >= total {
		return Page[T]{Items: []T{}, Total: total, Page: page, TotalPages: totalPages}
	}

	end := start + PageSize
	if end > total {
		end = total
	}

	return Page[T]{Items: items[start:end], Total: total, Page: page, TotalPages: totalPages}
}

// MatchesSearch reports whether any field contains term, case-insensitively.
// An empty term matches everything.
func MatchesSearch(term string, fields ...string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// IsAll reports whether the filter value is the "no filtering" sentinel.
func IsAll(filter string) bool {
	return filter == "" || strings.EqualFold(filter, "all")
}

// MatchesStatus reports whether status passes the filter.
// The "All" sentinel (any casing) and the empty filter pass everything.
func MatchesStatus(filter, status string) bool {
	if IsAll(filter) {
		return true
	}
	return strings.EqualFold(filter, status)
}

// ParseTimestamp parses an RFC3339 timestamp field. Unparseable values
// return the zero time so they sort to the far end of any ordering.
func ParseTimestamp(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// CompareTimestamps orders two RFC3339 timestamps chronologically.
func CompareTimestamps(a, b string) int {
	ta, tb := ParseTimestamp(a), ParseTimestamp(b)
	switch {
	case ta.Before(tb):
		return -1
	case ta.After(tb):
		return 1
	default:
		return 0
	}
}

// CompareNames orders names case-insensitively, falling back to a
// case-sensitive comparison for ties.
func CompareNames(a, b string) int {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return strings.Compare(la, lb)
	}
	return strings.Compare(a, b)
}
