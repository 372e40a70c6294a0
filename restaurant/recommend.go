package restaurant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/tablewise/concierge"
)

// Relaxation levels reported in the recommendation result, in the order the
// engine tries them.
const (
	FallbackNone           = "none"
	FallbackMoodRelaxed    = "mood_relaxed"
	FallbackCuisineRelaxed = "cuisine_relaxed"
	FallbackCityOnly       = "city_only"
)

// moodByOccasion maps occasion keywords to the mood they imply. Matching is
// substring containment in declaration order; the first hit wins.
var moodByOccasion = []struct{ keyword, mood string }{
	{"date", "romantic"},
	{"business", "sophisticated"},
	{"family", "casual"},
	{"friends", "casual"},
	{"celebration", "lively"},
}

// maxRecommendations caps the ranked result list sent back to the model.
const maxRecommendations = 5

// maxSuggestedCities caps the candidate list returned when no city was given.
const maxSuggestedCities = 10

// RecommendTool suggests restaurants for a city, occasion, cuisine preference
// and group size. When the fully constrained query is empty it progressively
// relaxes constraints: mood first, then cuisine, and finally falls back to a
// city-only query whose rows only feed the fallback suggestions.
type RecommendTool struct {
	store   Store
	catalog Catalog
}

// NewRecommendTool creates a RecommendTool.
func NewRecommendTool(store Store, catalog Catalog) *RecommendTool {
	return &RecommendTool{store: store, catalog: catalog}
}

// Signature implements concierge.Tool.
func (t *RecommendTool) Signature() concierge.Signature {
	return concierge.Signature{
		Name:        "get_recommendations",
		Description: "Get restaurant recommendations based on city, occasion, cuisine preference, and group size.",
		Params: []concierge.Param{
			{Name: "city", Type: concierge.TypeString},
			{Name: "occasion", Type: concierge.TypeString},
			{Name: "cuisine_preference", Type: concierge.TypeString},
			{Name: "group_size", Type: concierge.TypeInt},
		},
	}
}

// Invoke implements concierge.Tool.
func (t *RecommendTool) Invoke(ctx context.Context, args map[string]any) (*concierge.Result, error) {
	var p struct {
		City      string `mapstructure:"city"`
		Occasion  string `mapstructure:"occasion"`
		Cuisine   string `mapstructure:"cuisine_preference"`
		GroupSize any    `mapstructure:"group_size"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}

	groupSize, _, ok := intValue(p.GroupSize)
	if !ok {
		return concierge.Errorf("Invalid group size: %v. Must be a number.", p.GroupSize), nil
	}

	if p.City == "" {
		cities := t.catalog.Cities()
		if len(cities) > maxSuggestedCities {
			cities = cities[:maxSuggestedCities]
		}
		return &concierge.Result{
			Status:  concierge.StatusInsufficientInfo,
			Message: "Please specify a city for restaurant recommendations",
			Meta:    map[string]any{"available_cities": cities},
		}, nil
	}

	normCity := t.catalog.NormalizeCity(p.City)
	normCuisine := t.catalog.NormalizeCuisine(p.Cuisine)
	mood := DeriveMood(p.Occasion)

	results, fallbackLevel, fallback, err := t.search(ctx, normCity, normCuisine, mood, groupSize)
	if err != nil {
		return nil, err
	}

	rank(results, mood, normCuisine)
	if len(results) > maxRecommendations {
		results = results[:maxRecommendations]
	}

	status := concierge.StatusSuccess
	if len(results) == 0 {
		status = concierge.StatusNoResults
	}
	return &concierge.Result{
		Status: status,
		Data:   results,
		Meta: map[string]any{
			"count": len(results),
			"query_params": map[string]any{
				"city":               p.City,
				"normalized_city":    normCity,
				"occasion":           p.Occasion,
				"derived_mood":       mood,
				"cuisine_preference": p.Cuisine,
				"normalized_cuisine": normCuisine,
				"group_size":         groupSize,
			},
			"normalization_info":   normalizationInfo(p.City, normCity, p.Cuisine, normCuisine),
			"fallback_level":       fallbackLevel,
			"fallback_suggestions": fallback,
		},
	}, nil
}

// search runs the constrained query and relaxes it in the fixed order: drop
// mood, then drop cuisine (and mood), then query by city alone. The city-only
// rows never become results; they only produce the fallback suggestions.
func (t *RecommendTool) search(ctx context.Context, city, cuisine, mood string, groupSize int) ([]Restaurant, string, map[string]any, error) {
	full := Query{City: city, Cuisine: cuisine, Mood: mood, MinCapacity: groupSize}

	results, err := t.store.Search(ctx, full)
	if err != nil {
		return nil, "", nil, fmt.Errorf("recommendations: %w", err)
	}
	level := FallbackNone

	if len(results) == 0 && mood != "" {
		q := full
		q.Mood = ""
		if results, err = t.store.Search(ctx, q); err != nil {
			return nil, "", nil, fmt.Errorf("recommendations: %w", err)
		}
		level = FallbackMoodRelaxed
	}

	if len(results) == 0 && cuisine != "" {
		q := full
		q.Mood = ""
		q.Cuisine = ""
		if results, err = t.store.Search(ctx, q); err != nil {
			return nil, "", nil, fmt.Errorf("recommendations: %w", err)
		}
		level = FallbackCuisineRelaxed
	}

	if len(results) > 0 {
		return results, level, nil, nil
	}

	cityRows, err := t.store.Search(ctx, Query{City: city})
	if err != nil {
		return nil, "", nil, fmt.Errorf("recommendations: %w", err)
	}
	cuisines := map[string]bool{}
	for _, r := range cityRows {
		if r.Cuisine != "" {
			cuisines[strings.ToLower(r.Cuisine)] = true
		}
	}
	fallback := map[string]any{
		"available_cuisines":    sortedKeys(cuisines),
		"city_restaurant_count": len(cityRows),
	}
	return []Restaurant{}, FallbackCityOnly, fallback, nil
}

// DeriveMood maps a free-text occasion to a mood by keyword containment.
// Returns "" when no keyword matches.
func DeriveMood(occasion string) string {
	if occasion == "" {
		return ""
	}
	lower := strings.ToLower(occasion)
	for _, m := range moodByOccasion {
		if strings.Contains(lower, m.keyword) {
			return m.mood
		}
	}
	return ""
}

// rank orders results by three sequential stable sorts: open slot count
// descending, then mood match, then cuisine match. Because each pass is
// stable, the last key dominates: cuisine match beats mood match beats slot
// count. The three-pass composition is the observable contract; do not
// collapse it into a single comparator without checking tie-breaking.
func rank(results []Restaurant, mood, cuisine string) {
	sort.SliceStable(results, func(i, j int) bool {
		return len(results[i].AvailableSlots) > len(results[j].AvailableSlots)
	})
	if mood != "" {
		sort.SliceStable(results, func(i, j int) bool {
			return strings.EqualFold(results[i].Mood, mood) && !strings.EqualFold(results[j].Mood, mood)
		})
	}
	if cuisine != "" {
		sort.SliceStable(results, func(i, j int) bool {
			return strings.EqualFold(results[i].Cuisine, cuisine) && !strings.EqualFold(results[j].Cuisine, cuisine)
		})
	}
}
