// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package models

import (
	"github.com/skillswap/admin-api/internal/store"
)

// UncategorizedName is the category fallback for unknown category ids.
const UncategorizedName = "Uncategorized"

// Skill represents one skill with its usage share.
type Skill struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	CategoryID   string  `json:"category_id"`
	CategoryName string  `json:"category_name"`
	Count        int     `json:"count"`
	Percentage   float64 `json:"percentage"`
}

// Category represents one skill category.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// SkillFromDocument builds a Skill from a stored document.
func SkillFromDocument(doc store.Document) Skill {
	var s Skill
	_ = doc.Decode(&s)
	s.ID = doc.Key
	return s
}

// CategoryFromDocument builds a Category from a stored document.
func CategoryFromDocument(doc store.Document) Category {
	var c Category
	_ = doc.Decode(&c)
	c.ID = doc.Key
	return c
}
