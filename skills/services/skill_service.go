// Copyright (c) 2026 SkillSwap
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package services

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/skillswap/admin-api/internal/binder"
	"github.com/skillswap/admin-api/internal/listview"
	"github.com/skillswap/admin-api/internal/store"
	"github.com/skillswap/admin-api/skills/errors"
	"github.com/skillswap/admin-api/skills/models"
)

const (
	skillsPath     = "skills"
	categoriesPath = "categories"
)

// SkillService defines the interface for the skills distribution view
type SkillService interface {
	// Distribution derives the visible skills page with usage percentages
	Distribution(ctx context.Context, params listview.Params) (*listview.Page[models.Skill], error)

	// Add creates a new skill with a zero usage count
	Add(ctx context.Context, name, description, categoryID string) (string, error)
}

// skillService implements the SkillService interface
type skillService struct {
	store store.Store
	views *binder.Set
}

// NewSkillService creates a new instance of the skill service.
// The binder set may be nil, in which case lists read the store directly.
func NewSkillService(st store.Store, views *binder.Set) SkillService {
	return &skillService{store: st, views: views}
}

// Distribution computes each skill's share of total usage, resolves category
// names and applies search, category filter, sort and pagination.
// Percentage is count/totalCount*100 rounded to two decimals.
func (s *skillService) Distribution(ctx context.Context, params listview.Params) (*listview.Page[models.Skill], error) {
	snapshot, err := s.snapshot(ctx, skillsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	categories, err := s.categoryNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}

	skills := make([]models.Skill, 0, len(snapshot))
	totalCount := 0
	for _, doc := range snapshot {
		skill := models.SkillFromDocument(doc)
		if name, ok := categories[skill.CategoryID]; ok {
			skill.CategoryName = name
		} else {
			skill.CategoryName = models.UncategorizedName
		}
		skills = append(skills, skill)
		totalCount += skill.Count
	}

	for i := range skills {
		if totalCount > 0 {
			skills[i].Percentage = math.Round(float64(skills[i].Count)/float64(totalCount)*100*100) / 100
		}
	}

	filtered := make([]models.Skill, 0, len(skills))
	for _, skill := range skills {
		if !matchesCategoryFilter(params.Filter, skill) {
			continue
		}
		if !listview.MatchesSearch(params.Search, skill.Name) {
			continue
		}
		filtered = append(filtered, skill)
	}

	sortSkills(filtered, params.Sort)

	page := listview.Paginate(filtered, params.Page)
	return &page, nil
}

// Add creates a new skill record. Name and category are required; the usage
// count starts at zero.
func (s *skillService) Add(ctx context.Context, name, description, categoryID string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("%w: skill name is required", errors.ErrValidationFailed)
	}
	if strings.TrimSpace(categoryID) == "" {
		return "", fmt.Errorf("%w: category is required", errors.ErrValidationFailed)
	}

	key, err := s.store.Push(ctx, skillsPath, map[string]interface{}{
		"name":        name,
		"description": description,
		"category_id": categoryID,
		"count":       0,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", errors.ErrDatabaseOperation, err)
	}
	return key, nil
}

func (s *skillService) snapshot(ctx context.Context, path string) (store.Snapshot, error) {
	if s.views != nil {
		if b := s.views.Get(path); b != nil {
			return b.Snapshot(), nil
		}
	}
	return s.store.Read(ctx, path)
}

func (s *skillService) categoryNames(ctx context.Context) (map[string]string, error) {
	snapshot, err := s.snapshot(ctx, categoriesPath)
	if err != nil {
		return nil, err
	}

	names := make(map[string]string, len(snapshot))
	for _, doc := range snapshot {
		if name := doc.String("name"); name != "" {
			names[doc.Key] = name
		}
	}
	return names, nil
}

// matchesCategoryFilter accepts the category id or its resolved name.
func matchesCategoryFilter(filter string, skill models.Skill) bool {
	if listview.IsAll(filter) {
		return true
	}
	return strings.EqualFold(filter, skill.CategoryID) || strings.EqualFold(filter, skill.CategoryName)
}

func sortSkills(skills []models.Skill, key string) {
	switch strings.ToLower(key) {
	case "percentage-asc":
		sort.SliceStable(skills, func(i, j int) bool {
			return skills[i].Percentage < skills[j].Percentage
		})
	case "name-asc":
		sort.SliceStable(skills, func(i, j int) bool {
			return listview.CompareNames(skills[i].Name, skills[j].Name) < 0
		})
	case "name-desc":
		sort.SliceStable(skills, func(i, j int) bool {
			return listview.CompareNames(skills[i].Name, skills[j].Name) > 0
		})
	default: // percentage-desc
		sort.SliceStable(skills, func(i, j int) bool {
			return skills[i].Percentage > skills[j].Percentage
		})
	}
}
