// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

// Stats are the dashboard stat cards.
type Stats struct {
	TotalUsers        int `json:"total_users"`
	CompletedSessions int `json:"completed_sessions"`
	PendingPosts      int `json:"pending_posts"`
	PendingRequests   int `json:"pending_requests"`
}

// DayActivity is one weekly-activity chart point.
type DayActivity struct {
	Day   string `json:"day"`
	Count int    `json:"count"`
}

// MonthGrowth is one account-growth chart point.
type MonthGrowth struct {
	Month  string `json:"month"`
	Growth int    `json:"growth"`
}

// Overview is the full dashboard landing payload.
type Overview struct {
	Stats          Stats         `json:"stats"`
	WeeklyActivity []DayActivity `json:"weekly_activity"`
	AccountGrowth  []MonthGrowth `json:"account_growth"`
}
