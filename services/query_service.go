package services

import (
	"net/url"
	"sort"
	"strings"

	"platewise-backend/models"
)

// CategoryAll is the sentinel meaning "don't filter by category".
const CategoryAll = "all"

// Named filter presets with their fixed thresholds.
const (
	PresetHighProtein = "high-protein"
	PresetLowCalorie  = "low-calorie"

	highProteinMinGrams = 15.0
	lowCalorieMaxKcal   = 300.0
)

// QueryParams narrows and orders a food list. Every field is optional; the
// zero value (or the "all" category sentinel) is a no-op.
type QueryParams struct {
	Text       string
	Category   string
	Preset     string
	ExcludeIDs []models.FlexID
	SortKey    string
	Direction  string // "asc" (default) or "desc"
}

// QueryFoods applies text, category, preset and exclusion filters in that
// order (plain AND semantics), then sorts if a known metric was requested.
// A nil input slice is treated as empty; an unrecognized sort key leaves the
// filtered order untouched. This function never fails.
func QueryFoods(foods []models.NormalizedFood, p QueryParams) []models.NormalizedFood {
	out := make([]models.NormalizedFood, 0, len(foods))

	text := strings.ToLower(strings.TrimSpace(p.Text))
	excluded := make(map[models.FlexID]bool, len(p.ExcludeIDs))
	for _, id := range p.ExcludeIDs {
		excluded[id] = true
	}

	for _, f := range foods {
		if text != "" &&
			!strings.Contains(strings.ToLower(f.Name), text) &&
			!strings.Contains(strings.ToLower(f.Category), text) {
			continue
		}
		if p.Category != "" && p.Category != CategoryAll && f.Category != p.Category {
			continue
		}
		if !matchesPreset(&f, p.Preset) {
			continue
		}
		if excluded[f.ID] {
			continue
		}
		out = append(out, f)
	}

	if p.SortKey != "" {
		desc := strings.EqualFold(p.Direction, "desc")
		sort.SliceStable(out, func(i, j int) bool {
			a, aok := MetricValue(&out[i], p.SortKey)
			b, bok := MetricValue(&out[j], p.SortKey)
			if !aok || !bok {
				return false // unknown metric: keep filtered order
			}
			if desc {
				return a > b
			}
			return a < b
		})
	}

	return out
}

func matchesPreset(f *models.NormalizedFood, preset string) bool {
	switch preset {
	case PresetHighProtein:
		return f.Nutrition.Protein > highProteinMinGrams
	case PresetLowCalorie:
		return f.Nutrition.Calories < lowCalorieMaxKcal
	default:
		return true
	}
}

// MetricValue resolves a named numeric metric on a record. The second return
// is false for unknown names.
func MetricValue(f *models.NormalizedFood, key string) (float64, bool) {
	switch key {
	case "calories":
		return f.Nutrition.Calories, true
	case "protein":
		return f.Nutrition.Protein, true
	case "carbs", "carbohydrates":
		return f.Nutrition.Carbohydrates, true
	case "fat":
		return f.Nutrition.Fat, true
	case "fiber":
		return f.Nutrition.Fiber, true
	case "sugar":
		return f.Nutrition.Sugar, true
	case "sodium":
		return f.Nutrition.Sodium, true
	case "sustainabilityScore":
		return f.SustainabilityScore, true
	case "nutritionScore":
		return f.NutritionScore, true
	default:
		return 0, false
	}
}

// CompareMetrics is the metric set the comparison view highlights.
var CompareMetrics = []string{
	"calories", "protein", "carbs", "fat", "fiber", "sugar", "sodium", "sustainabilityScore",
}

// lowerIsBetter marks the metrics where the smallest value wins.
var lowerIsBetter = map[string]bool{
	"calories": true,
	"fat":      true,
	"sodium":   true,
	"sugar":    true,
}

// BestValues returns, per compared metric, the ids holding the best value.
// Ties are all marked, not just the first. An empty input yields an empty map.
func BestValues(foods []models.NormalizedFood) map[string][]models.FlexID {
	best := make(map[string][]models.FlexID)
	if len(foods) == 0 {
		return best
	}

	for _, metric := range CompareMetrics {
		extreme, ok := MetricValue(&foods[0], metric)
		if !ok {
			continue
		}
		for i := 1; i < len(foods); i++ {
			v, _ := MetricValue(&foods[i], metric)
			if lowerIsBetter[metric] {
				if v < extreme {
					extreme = v
				}
			} else if v > extreme {
				extreme = v
			}
		}
		for i := range foods {
			if v, _ := MetricValue(&foods[i], metric); v == extreme {
				best[metric] = append(best[metric], foods[i].ID)
			}
		}
	}
	return best
}

// SplitVersus detects a combined "<a> vs <b>" search query. The split happens
// at the first case-insensitive " vs " only, so the second term may itself
// contain "vs". Terms come back trimmed and URL-encoded, ready for a
// comparison redirect.
func SplitVersus(query string) (item1, item2 string, ok bool) {
	idx := versusIndex(query)
	if idx < 0 {
		return "", "", false
	}
	first := strings.TrimSpace(query[:idx])
	second := strings.TrimSpace(query[idx+len(" vs "):])
	return url.QueryEscape(first), url.QueryEscape(second), true
}

// versusIndex locates the first " vs " separator, matching v/s in either
// case. The scan is byte-wise against the original string: the separator is
// pure ASCII and UTF-8 continuation bytes never collide with it, so offsets
// stay valid even when lowercasing the input would change its length
// (e.g. U+0130).
func versusIndex(s string) int {
	for i := 0; i+4 <= len(s); i++ {
		if s[i] == ' ' &&
			(s[i+1] == 'v' || s[i+1] == 'V') &&
			(s[i+2] == 's' || s[i+2] == 'S') &&
			s[i+3] == ' ' {
			return i
		}
	}
	return -1
}
