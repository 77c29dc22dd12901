package controllers

import (
	"fmt"
	"net/http"
	"strings"

	"platewise-backend/models"
	"platewise-backend/services"
	"platewise-backend/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type FoodController struct {
	api *services.FoodAPIService
	log *zap.SugaredLogger
}

func NewFoodController(api *services.FoodAPIService, log *zap.SugaredLogger) *FoodController {
	return &FoodController{api: api, log: log}
}

// fetchNormalized pulls the catalog and maps it to the canonical shape. An
// upstream failure is logged and answered with an empty catalog; browsing
// degrades to "no results" rather than an error page.
func (fc *FoodController) fetchNormalized(c *gin.Context) []models.NormalizedFood {
	raws, err := fc.api.FetchFoods(c.Request.Context())
	if err != nil {
		fc.log.Warnw("food catalog fetch failed", "error", err)
		return []models.NormalizedFood{}
	}
	return models.NormalizeFoods(raws)
}

// GET /foods/search?q=&category=&preset=&sort=&direction=&exclude=a,b
//
// A query containing " vs " is a comparison request in disguise: it answers
// with the comparison route to load instead of a result list.
func (fc *FoodController) SearchFoods(c *gin.Context) {
	q := c.Query("q")
	if item1, item2, ok := services.SplitVersus(q); ok {
		c.JSON(http.StatusOK, gin.H{
			"redirect": fmt.Sprintf("/food-comparison-tool?item1=%s&item2=%s", item1, item2),
		})
		return
	}

	params := services.QueryParams{
		Text:      q,
		Category:  c.Query("category"),
		Preset:    c.Query("preset"),
		SortKey:   c.Query("sort"),
		Direction: c.Query("direction"),
	}
	if raw := c.Query("exclude"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				params.ExcludeIDs = append(params.ExcludeIDs, models.FlexID(id))
			}
		}
	}

	results := services.QueryFoods(fc.fetchNormalized(c), params)
	c.JSON(http.StatusOK, gin.H{"results": results, "count": len(results)})
}

// GET /foods/compare?item1=&item2=&allergens=nuts,dairy
//
// Names match case-insensitively, mirroring how the comparison route receives
// them from the search box. Unknown names simply leave a slot empty.
func (fc *FoodController) CompareFoods(c *gin.Context) {
	item1 := c.Query("item1")
	item2 := c.Query("item2")
	if item1 == "" || item2 == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item1 and item2 are required"})
		return
	}

	foods := fc.fetchNormalized(c)
	matched := make([]models.NormalizedFood, 0, 2)
	for _, name := range []string{item1, item2} {
		for _, f := range foods {
			if strings.EqualFold(f.Name, name) {
				matched = append(matched, f)
				break
			}
		}
	}

	var userAllergens []string
	if raw := c.Query("allergens"); raw != "" {
		userAllergens = strings.Split(raw, ",")
	}
	warnings := make(map[string][]utils.Warning, len(matched))
	for i := range matched {
		if w := utils.AssessFood(&matched[i], userAllergens); len(w) > 0 {
			warnings[matched[i].ID.String()] = w
		}
	}

	resp := gin.H{
		"foods":    matched,
		"best":     services.BestValues(matched),
		"warnings": warnings,
	}
	if len(matched) == 2 {
		resp["explanation"] = fc.api.ExplainSwap(c.Request.Context(), matched[0].Name, matched[1].Name)
	}
	c.JSON(http.StatusOK, resp)
}
