package restaurant

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/tablewise/concierge"
)

// Tools returns the full concierge tool set over the given store and catalog,
// in the order they are rendered into the system prompt.
func Tools(store Store, catalog Catalog) []concierge.Tool {
	return []concierge.Tool{
		NewSearchTool(store, catalog),
		NewDetailsTool(store, catalog),
		NewRecommendTool(store, catalog),
		NewInquiryTool(),
		NewValidateBookingTool(),
		NewBookTool(store, catalog),
		NewCheckReservationTool(store),
		NewOptionsTool(catalog),
	}
}

// SearchTool finds restaurants by city, cuisine and mood. An empty result set
// is still a success; no_results is reserved for the recommendation tool.
type SearchTool struct {
	store   Store
	catalog Catalog
}

// NewSearchTool creates a SearchTool.
func NewSearchTool(store Store, catalog Catalog) *SearchTool {
	return &SearchTool{store: store, catalog: catalog}
}

// Signature implements concierge.Tool.
func (t *SearchTool) Signature() concierge.Signature {
	return concierge.Signature{
		Name:        "search_restaurants",
		Description: "Search for restaurants based on city, cuisine type, and/or mood.",
		Params: []concierge.Param{
			{Name: "city", Type: concierge.TypeString},
			{Name: "cuisine", Type: concierge.TypeString},
			{Name: "mood", Type: concierge.TypeString},
		},
	}
}

// Invoke implements concierge.Tool.
func (t *SearchTool) Invoke(ctx context.Context, args map[string]any) (*concierge.Result, error) {
	var p struct {
		City    string `mapstructure:"city"`
		Cuisine string `mapstructure:"cuisine"`
		Mood    string `mapstructure:"mood"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}

	normCity := t.catalog.NormalizeCity(p.City)
	normCuisine := t.catalog.NormalizeCuisine(p.Cuisine)

	rows, err := t.store.Search(ctx, Query{City: normCity, Cuisine: normCuisine, Mood: p.Mood})
	if err != nil {
		return nil, fmt.Errorf("search restaurants: %w", err)
	}
	if rows == nil {
		rows = []Restaurant{}
	}

	return &concierge.Result{
		Status: concierge.StatusSuccess,
		Data:   rows,
		Meta: map[string]any{
			"count": len(rows),
			"query_params": map[string]any{
				"city":               p.City,
				"normalized_city":    normCity,
				"cuisine":            p.Cuisine,
				"normalized_cuisine": normCuisine,
				"mood":               p.Mood,
			},
			"normalization_info": normalizationInfo(p.City, normCity, p.Cuisine, normCuisine),
		},
	}, nil
}

// DetailsTool looks up a single restaurant by (partial) name.
type DetailsTool struct {
	store   Store
	catalog Catalog
}

// NewDetailsTool creates a DetailsTool.
func NewDetailsTool(store Store, catalog Catalog) *DetailsTool {
	return &DetailsTool{store: store, catalog: catalog}
}

// Signature implements concierge.Tool.
func (t *DetailsTool) Signature() concierge.Signature {
	return concierge.Signature{
		Name:        "get_restaurant_details",
		Description: "Get detailed information about a specific restaurant.",
		Params: []concierge.Param{
			{Name: "restaurant_name", Type: concierge.TypeString, Required: true},
			{Name: "city", Type: concierge.TypeString},
		},
	}
}

// Invoke implements concierge.Tool.
func (t *DetailsTool) Invoke(ctx context.Context, args map[string]any) (*concierge.Result, error) {
	var p struct {
		Name string `mapstructure:"restaurant_name"`
		City string `mapstructure:"city"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}

	normCity := t.catalog.NormalizeCity(p.City)
	queryParams := map[string]any{
		"restaurant_name": p.Name,
		"city":            p.City,
		"normalized_city": normCity,
	}

	r, err := t.store.FindByName(ctx, p.Name, normCity)
	if err != nil {
		if isNotFound(err) {
			return &concierge.Result{
				Status:  concierge.StatusNotFound,
				Message: "Restaurant not found",
				Meta:    map[string]any{"query_params": queryParams},
			}, nil
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	return &concierge.Result{
		Status: concierge.StatusSuccess,
		Data:   r,
		Meta:   map[string]any{"query_params": queryParams},
	}, nil
}

// OptionsTool reports the catalog's cities, cuisines and moods so the model
// can suggest valid values instead of guessing.
type OptionsTool struct {
	catalog Catalog
}

// NewOptionsTool creates an OptionsTool.
func NewOptionsTool(catalog Catalog) *OptionsTool {
	return &OptionsTool{catalog: catalog}
}

// Signature implements concierge.Tool.
func (t *OptionsTool) Signature() concierge.Signature {
	return concierge.Signature{
		Name:        "get_available_options",
		Description: "Fetches available cities, cuisines, and moods. Use this to suggest valid options to users.",
	}
}

// Invoke implements concierge.Tool.
func (t *OptionsTool) Invoke(_ context.Context, _ map[string]any) (*concierge.Result, error) {
	return &concierge.Result{
		Status: concierge.StatusSuccess,
		Data: map[string]any{
			"cities":   t.catalog.Cities(),
			"cuisines": t.catalog.Cuisines(),
			"moods":    t.catalog.Moods(),
		},
	}, nil
}

// normalizationInfo reports which inputs the catalog rewrote. Returns nil when
// nothing changed so the field serializes as null, matching the tool contract.
func normalizationInfo(city, normCity, cuisine, normCuisine string) map[string]any {
	info := map[string]any{}
	if city != "" && normCity != "" && !strings.EqualFold(city, normCity) {
		info["city"] = map[string]string{"original": city, "normalized": normCity}
	}
	if cuisine != "" && normCuisine != "" && !strings.EqualFold(cuisine, normCuisine) {
		info["cuisine"] = map[string]string{"original": cuisine, "normalized": normCuisine}
	}
	if len(info) == 0 {
		return nil
	}
	return info
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
