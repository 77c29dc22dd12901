package models

import (
	"bytes"
	"encoding/json"
)

// PlaceholderImage is served when a catalog record carries no image of its own.
const PlaceholderImage = "/assets/images/no_image.png"

// FlexID tolerates both string and numeric ids from the upstream API.
type FlexID string

func (f *FlexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		// ids are opaque; an unusable one degrades to empty rather than
		// failing the whole record
		*f = ""
		return nil
	}
	*f = FlexID(n.String())
	return nil
}

func (f FlexID) String() string { return string(f) }

// RawNutrition is the nested nutrition block as the upstream sends it.
// Pointers so a missing value is distinguishable from a legitimate zero.
type RawNutrition struct {
	Calories      *float64 `json:"calories"`
	Protein       *float64 `json:"protein"`
	Fat           *float64 `json:"fat"`
	Carbohydrates *float64 `json:"carbohydrates"`
	Fiber         *float64 `json:"fiber"`
	Sugar         *float64 `json:"sugar"`
	Sodium        *float64 `json:"sodium"`
}

type RawSustainability struct {
	SustainabilityScore *float64 `json:"sustainability_score"`
	CarbonFootprint     *float64 `json:"carbon_footprint"`
}

// RawFood is a catalog record as returned by the food API. The shape is not
// consistent across endpoints: scores appear at the top level, inside nested
// blocks, or not at all, and allergens arrive either as a name->bool map or as
// a plain name list. Both the upstream snake_case names and our canonical
// camelCase names are accepted so an already-normalized record decodes cleanly.
type RawFood struct {
	ID                     FlexID             `json:"id"`
	Name                   string             `json:"name"`
	Category               string             `json:"category"`
	Image                  string             `json:"image"`
	NutritionScoreRaw      *float64           `json:"nutrition_score"`
	NutritionScore         *float64           `json:"nutritionScore"`
	SustainabilityScoreRaw *float64           `json:"sustainability_score"`
	SustainabilityScore    *float64           `json:"sustainabilityScore"`
	Nutrition              *RawNutrition      `json:"nutrition"`
	Sustainability         *RawSustainability `json:"sustainability"`
	Allergens              json.RawMessage    `json:"allergens"`
}

// Macros mirrors the macronutrient trio under the names the UI charts expect.
type Macros struct {
	Protein float64 `json:"protein"`
	Carbs   float64 `json:"carbs"`
	Fat     float64 `json:"fat"`
}

// Nutrition is the canonical per-record nutrition block. Fiber, sugar and
// sodium are present for some upstream records only; they sort and compare
// like the core four but stay out of the macros mirror.
type Nutrition struct {
	Calories      float64 `json:"calories"`
	Protein       float64 `json:"protein"`
	Fat           float64 `json:"fat"`
	Carbohydrates float64 `json:"carbohydrates"`
	Fiber         float64 `json:"fiber,omitempty"`
	Sugar         float64 `json:"sugar,omitempty"`
	Sodium        float64 `json:"sodium,omitempty"`
	Macros        Macros  `json:"macros"`
}

// NormalizedFood is the canonical shape every consumer of food data operates
// on. Produced only by NormalizeFood.
type NormalizedFood struct {
	ID                  FlexID    `json:"id"`
	Name                string    `json:"name"`
	Category            string    `json:"category"`
	Image               string    `json:"image"`
	NutritionScore      float64   `json:"nutritionScore"`
	SustainabilityScore float64   `json:"sustainabilityScore"`
	Allergens           []string  `json:"allergens"`
	Nutrition           Nutrition `json:"nutrition"`
}

// NormalizeFood maps a raw catalog record into the canonical shape. It is pure
// and idempotent: feeding a normalized record back through yields the same
// values. Missing or malformed nested data never errors; every field degrades
// to its default.
func NormalizeFood(raw *RawFood) *NormalizedFood {
	if raw == nil {
		return nil
	}

	nut := raw.Nutrition
	if nut == nil {
		nut = &RawNutrition{}
	}
	sus := raw.Sustainability
	if sus == nil {
		sus = &RawSustainability{}
	}

	calories := orZero(nut.Calories)
	protein := orZero(nut.Protein)
	fat := orZero(nut.Fat)
	carbs := orZero(nut.Carbohydrates)

	f := &NormalizedFood{
		ID:       raw.ID,
		Name:     raw.Name,
		Category: raw.Category,
		Image:    raw.Image,
		NutritionScore: firstOf(
			raw.NutritionScore,
			raw.NutritionScoreRaw,
			nut.Calories,
		),
		SustainabilityScore: firstOf(
			raw.SustainabilityScore,
			raw.SustainabilityScoreRaw,
			sus.SustainabilityScore,
		),
		Allergens: extractAllergens(raw.Allergens),
		Nutrition: Nutrition{
			Calories:      calories,
			Protein:       protein,
			Fat:           fat,
			Carbohydrates: carbs,
			Fiber:         orZero(nut.Fiber),
			Sugar:         orZero(nut.Sugar),
			Sodium:        orZero(nut.Sodium),
			Macros: Macros{
				Protein: protein,
				Carbs:   carbs,
				Fat:     fat,
			},
		},
	}
	if f.Image == "" {
		f.Image = PlaceholderImage
	}
	return f
}

// NormalizeFoods maps a whole response. A nil slice is treated as empty.
func NormalizeFoods(raws []RawFood) []NormalizedFood {
	out := make([]NormalizedFood, 0, len(raws))
	for i := range raws {
		out = append(out, *NormalizeFood(&raws[i]))
	}
	return out
}

// firstOf returns the first non-nil value in the fallback chain, else 0.
// Only absence triggers the fallback; a stored 0 is a real value.
func firstOf(vals ...*float64) float64 {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

func orZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}

// extractAllergens returns the allergen names whose flag is strictly true,
// preserving the order the upstream document lists them in. The field also
// arrives as a plain name array on some endpoints; that form passes through
// untouched. Anything unparseable yields an empty list.
func extractAllergens(raw json.RawMessage) []string {
	out := []string{}
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return out
	}

	switch trimmed[0] {
	case '[':
		var names []string
		if err := json.Unmarshal(trimmed, &names); err != nil || names == nil {
			return []string{}
		}
		return names
	case '{':
		// Token-stream the object so document key order survives; decoding
		// into a map would randomize it.
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		if _, err := dec.Token(); err != nil {
			return out
		}
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return out
			}
			key, ok := keyTok.(string)
			if !ok {
				return out
			}
			var val json.RawMessage
			if err := dec.Decode(&val); err != nil {
				return out
			}
			if string(bytes.TrimSpace(val)) == "true" {
				out = append(out, key)
			}
		}
		return out
	default:
		return out
	}
}
