package restaurant

import (
	"sort"
	"strings"
)

// cityVariations maps canonical city names to the spellings users actually
// type. Only variations whose canonical city exists in the store make it into
// the catalog.
var cityVariations = map[string][]string{
	"new york":      {"nyc", "new york city", "manhattan"},
	"los angeles":   {"la", "l.a.", "lax"},
	"san francisco": {"sf", "san fran"},
	"las vegas":     {"vegas"},
	"washington dc": {"washington d.c.", "dc", "d.c."},
}

// Catalog is the immutable inventory of cities, cuisines and moods the tools
// normalize against. Build it once at startup from Store.Metadata and share it
// by value; it is never mutated afterwards.
type Catalog struct {
	cities   map[string]bool
	cuisines map[string]bool
	moods    map[string]bool

	// variation (or canonical lowercase city) -> canonical city
	cityMappings map[string]string
	// sorted mapping keys, for deterministic partial-match scans
	mappingKeys []string

	sortedCities   []string
	sortedCuisines []string
	sortedMoods    []string
}

// NewCatalog builds a Catalog from store metadata. All values are lowercased.
func NewCatalog(meta Metadata) Catalog {
	c := Catalog{
		cities:       make(map[string]bool, len(meta.Cities)),
		cuisines:     make(map[string]bool, len(meta.Cuisines)),
		moods:        make(map[string]bool, len(meta.Moods)),
		cityMappings: make(map[string]string),
	}
	for _, city := range meta.Cities {
		city = strings.ToLower(city)
		c.cities[city] = true
		c.cityMappings[city] = city
	}
	for _, cuisine := range meta.Cuisines {
		c.cuisines[strings.ToLower(cuisine)] = true
	}
	for _, mood := range meta.Moods {
		c.moods[strings.ToLower(mood)] = true
	}
	for city, variations := range cityVariations {
		if !c.cities[city] {
			continue
		}
		for _, v := range variations {
			c.cityMappings[v] = city
		}
	}
	for k := range c.cityMappings {
		c.mappingKeys = append(c.mappingKeys, k)
	}
	sort.Strings(c.mappingKeys)

	c.sortedCities = sortedKeys(c.cities)
	c.sortedCuisines = sortedKeys(c.cuisines)
	c.sortedMoods = sortedKeys(c.moods)
	return c
}

// Cities returns the known cities, sorted.
func (c Catalog) Cities() []string { return c.sortedCities }

// Cuisines returns the known cuisines, sorted.
func (c Catalog) Cuisines() []string { return c.sortedCuisines }

// Moods returns the known moods, sorted.
func (c Catalog) Moods() []string { return c.sortedMoods }

// NormalizeCity maps a user-supplied city to its canonical catalog form:
// direct variation lookup first, then a substring match against known
// variations, otherwise the input is passed through unchanged so downstream
// queries simply find nothing.
func (c Catalog) NormalizeCity(city string) string {
	if city == "" {
		return ""
	}
	lower := strings.ToLower(city)
	if canonical, ok := c.cityMappings[lower]; ok {
		return canonical
	}
	for _, variation := range c.mappingKeys {
		if strings.Contains(lower, variation) || strings.Contains(variation, lower) {
			return c.cityMappings[variation]
		}
	}
	return city
}

// NormalizeCuisine maps a user-supplied cuisine to its catalog form: exact
// match first, then a substring match either way, otherwise passthrough.
func (c Catalog) NormalizeCuisine(cuisine string) string {
	if cuisine == "" {
		return ""
	}
	lower := strings.ToLower(cuisine)
	if c.cuisines[lower] {
		return lower
	}
	for _, known := range c.sortedCuisines {
		if strings.Contains(known, lower) || strings.Contains(lower, known) {
			return known
		}
	}
	return cuisine
}

func sortedKeys(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
