package utils

import (
	"fmt"
	"strings"

	"platewise-backend/models"
)

// WarningSeverity categorizes how serious the flag is.
type WarningSeverity string

const (
	Info    WarningSeverity = "info"
	Caution WarningSeverity = "caution"
	High    WarningSeverity = "high"
)

// Warning is a structured finding shown alongside a food record.
type Warning struct {
	Code     string          `json:"code"`
	Severity WarningSeverity `json:"severity"`
	Message  string          `json:"message"`
	Metric   string          `json:"metric,omitempty"`
	Value    float64         `json:"value,omitempty"`
	Limit    float64         `json:"limit,omitempty"`
}

// Per-serving advisory thresholds. Sodium in mg, sugar in g.
const (
	sodiumCautionMg  = 600.0
	sugarCautionG    = 22.5
	calorieDenseKcal = 800.0
)

// AssessFood flags a normalized record against the viewer's declared
// allergens plus fixed nutrition advisories. An empty allergen list means no
// allergen checks; the nutrition advisories always run.
func AssessFood(food *models.NormalizedFood, userAllergens []string) []Warning {
	if food == nil {
		return nil
	}

	var warnings []Warning

	declared := make(map[string]bool, len(userAllergens))
	for _, a := range userAllergens {
		declared[strings.ToLower(strings.TrimSpace(a))] = true
	}
	for _, a := range food.Allergens {
		if declared[strings.ToLower(a)] {
			warnings = append(warnings, Warning{
				Code:     "allergen_match",
				Severity: High,
				Message:  fmt.Sprintf("%s contains %s, which you listed as an allergen", food.Name, a),
				Metric:   "allergens",
			})
		}
	}

	if v := food.Nutrition.Sodium; v > sodiumCautionMg {
		warnings = append(warnings, Warning{
			Code:     "high_sodium",
			Severity: Caution,
			Message:  fmt.Sprintf("%s is high in sodium (%.0f mg per serving)", food.Name, v),
			Metric:   "sodium",
			Value:    v,
			Limit:    sodiumCautionMg,
		})
	}
	if v := food.Nutrition.Sugar; v > sugarCautionG {
		warnings = append(warnings, Warning{
			Code:     "high_sugar",
			Severity: Caution,
			Message:  fmt.Sprintf("%s is high in sugar (%.1f g per serving)", food.Name, v),
			Metric:   "sugar",
			Value:    v,
			Limit:    sugarCautionG,
		})
	}
	if v := food.Nutrition.Calories; v > calorieDenseKcal {
		warnings = append(warnings, Warning{
			Code:     "calorie_dense",
			Severity: Info,
			Message:  fmt.Sprintf("%s is calorie dense (%.0f kcal per serving)", food.Name, v),
			Metric:   "calories",
			Value:    v,
			Limit:    calorieDenseKcal,
		})
	}

	return warnings
}
