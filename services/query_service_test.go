package services

import (
	"testing"

	"platewise-backend/models"

	"github.com/stretchr/testify/assert"
)

func food(id, name, category string, n models.Nutrition, sustain float64) models.NormalizedFood {
	n.Macros = models.Macros{Protein: n.Protein, Carbs: n.Carbohydrates, Fat: n.Fat}
	return models.NormalizedFood{
		ID:                  models.FlexID(id),
		Name:                name,
		Category:            category,
		SustainabilityScore: sustain,
		Allergens:           []string{},
		Nutrition:           n,
	}
}

func sampleFoods() []models.NormalizedFood {
	return []models.NormalizedFood{
		food("1", "Granola Bar", "Snack", models.Nutrition{Calories: 190, Protein: 4}, 60),
		food("2", "Protein Bar", "Snack", models.Nutrition{Calories: 210, Protein: 20}, 55),
		food("3", "Lentil Soup", "Meal", models.Nutrition{Calories: 180, Protein: 12}, 80),
		food("4", "Chocolate Bar", "Snack", models.Nutrition{Calories: 530, Protein: 5}, 30),
		food("5", "Grilled Chicken", "Meal", models.Nutrition{Calories: 280, Protein: 31}, 45),
	}
}

func names(foods []models.NormalizedFood) []string {
	out := make([]string, 0, len(foods))
	for _, f := range foods {
		out = append(out, f.Name)
	}
	return out
}

func TestQueryTextMatchesNameOrCategory(t *testing.T) {
	got := QueryFoods(sampleFoods(), QueryParams{Text: "snack"})
	assert.Equal(t, []string{"Granola Bar", "Protein Bar", "Chocolate Bar"}, names(got))

	got = QueryFoods(sampleFoods(), QueryParams{Text: "LENTIL"})
	assert.Equal(t, []string{"Lentil Soup"}, names(got))
}

func TestQueryFiltersAndTogether(t *testing.T) {
	all := sampleFoods()

	byCategory := QueryFoods(all, QueryParams{Category: "Snack"})
	byText := QueryFoods(all, QueryParams{Text: "bar"})
	both := QueryFoods(all, QueryParams{Category: "Snack", Text: "bar"})

	// the combined result is a subset of each single filter
	for _, f := range both {
		assert.Contains(t, names(byCategory), f.Name)
		assert.Contains(t, names(byText), f.Name)
	}
	assert.Equal(t, []string{"Granola Bar", "Protein Bar", "Chocolate Bar"}, names(both))
}

func TestQueryCategoryAllSentinel(t *testing.T) {
	got := QueryFoods(sampleFoods(), QueryParams{Category: CategoryAll})
	assert.Len(t, got, 5)
}

func TestQueryPresets(t *testing.T) {
	highProtein := QueryFoods(sampleFoods(), QueryParams{Preset: PresetHighProtein})
	assert.Equal(t, []string{"Protein Bar", "Grilled Chicken"}, names(highProtein))

	lowCalorie := QueryFoods(sampleFoods(), QueryParams{Preset: PresetLowCalorie})
	assert.Equal(t, []string{"Granola Bar", "Protein Bar", "Lentil Soup", "Grilled Chicken"}, names(lowCalorie))
}

func TestQueryExcludeIDs(t *testing.T) {
	got := QueryFoods(sampleFoods(), QueryParams{
		Category:   "Snack",
		ExcludeIDs: []models.FlexID{"2", "4"},
	})
	assert.Equal(t, []string{"Granola Bar"}, names(got))
}

func TestQuerySortStability(t *testing.T) {
	foods := []models.NormalizedFood{
		food("a", "First", "Meal", models.Nutrition{Calories: 100}, 0),
		food("b", "Second", "Meal", models.Nutrition{Calories: 100}, 0),
		food("c", "Third", "Meal", models.Nutrition{Calories: 50}, 0),
	}

	got := QueryFoods(foods, QueryParams{SortKey: "calories"})
	// ties keep input order
	assert.Equal(t, []string{"Third", "First", "Second"}, names(got))

	got = QueryFoods(foods, QueryParams{SortKey: "calories", Direction: "desc"})
	assert.Equal(t, []string{"First", "Second", "Third"}, names(got))
}

func TestQueryUnknownSortKeyKeepsOrder(t *testing.T) {
	got := QueryFoods(sampleFoods(), QueryParams{SortKey: "deliciousness"})
	assert.Equal(t, names(sampleFoods()), names(got))
}

func TestQueryNilInput(t *testing.T) {
	got := QueryFoods(nil, QueryParams{Text: "anything"})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBestValuesTiesAllMarked(t *testing.T) {
	foods := []models.NormalizedFood{
		food("a", "A", "Meal", models.Nutrition{Calories: 100}, 0),
		food("b", "B", "Meal", models.Nutrition{Calories: 100}, 0),
		food("c", "C", "Meal", models.Nutrition{Calories: 200}, 0),
	}

	best := BestValues(foods)
	assert.ElementsMatch(t, []models.FlexID{"a", "b"}, best["calories"])
	assert.NotContains(t, best["calories"], models.FlexID("c"))
}

func TestBestValuesDirectionPerMetric(t *testing.T) {
	foods := []models.NormalizedFood{
		food("a", "A", "Meal", models.Nutrition{Calories: 100, Protein: 30, Sugar: 10}, 40),
		food("b", "B", "Meal", models.Nutrition{Calories: 300, Protein: 10, Sugar: 2}, 90),
	}

	best := BestValues(foods)
	assert.Equal(t, []models.FlexID{"a"}, best["calories"]) // lower wins
	assert.Equal(t, []models.FlexID{"b"}, best["sugar"])    // lower wins
	assert.Equal(t, []models.FlexID{"a"}, best["protein"])  // higher wins
	assert.Equal(t, []models.FlexID{"b"}, best["sustainabilityScore"])
}

func TestBestValuesEmptySet(t *testing.T) {
	assert.Empty(t, BestValues(nil))
}

func TestSplitVersus(t *testing.T) {
	item1, item2, ok := SplitVersus("almond milk vs oat milk")
	assert.True(t, ok)
	assert.Equal(t, "almond+milk", item1)
	assert.Equal(t, "oat+milk", item2)
}

func TestSplitVersusOnlyFirstOccurrence(t *testing.T) {
	item1, item2, ok := SplitVersus("a vs b vs c")
	assert.True(t, ok)
	assert.Equal(t, "a", item1)
	assert.Equal(t, "b+vs+c", item2)
}

func TestSplitVersusCaseInsensitive(t *testing.T) {
	item1, item2, ok := SplitVersus("Tofu VS Tempeh")
	assert.True(t, ok)
	assert.Equal(t, "Tofu", item1)
	assert.Equal(t, "Tempeh", item2)
}

func TestSplitVersusMultibyteRunesKeepOffsets(t *testing.T) {
	// "İ" (U+0130) grows from 2 to 3 bytes under ToLower; the split must
	// still land on the real separator
	item1, item2, ok := SplitVersus("İstanbul Simit vs Bagel")
	assert.True(t, ok)
	assert.Equal(t, "%C4%B0stanbul+Simit", item1)
	assert.Equal(t, "Bagel", item2)

	item1, item2, ok = SplitVersus("Crème Brûlée VS Flan")
	assert.True(t, ok)
	assert.Equal(t, "Cr%C3%A8me+Br%C3%BBl%C3%A9e", item1)
	assert.Equal(t, "Flan", item2)
}

func TestSplitVersusAbsent(t *testing.T) {
	_, _, ok := SplitVersus("avocado toast")
	assert.False(t, ok)

	// "vs" without surrounding spaces is part of a name, not a separator
	_, _, ok = SplitVersus("oatvsgranola")
	assert.False(t, ok)
}
