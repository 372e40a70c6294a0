package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tablewise/concierge/restaurant"
)

var sampleRestaurants = []restaurant.Restaurant{
	{Name: "Trattoria Fiorella", City: "new york", Address: "214 Mulberry St", Cuisine: "italian", SeatingCapacity: 60, AvailableCapacity: 42, AvailableSlots: []string{"5:30 PM", "7:00 PM", "8:30 PM"}, Mood: "romantic"},
	{Name: "The Gilded Spoon", City: "new york", Address: "87 W 54th St", Cuisine: "french", SeatingCapacity: 40, AvailableCapacity: 18, AvailableSlots: []string{"6:00 PM", "8:00 PM"}, Mood: "sophisticated"},
	{Name: "Casa Arbol", City: "new york", Address: "510 Amsterdam Ave", Cuisine: "mexican", SeatingCapacity: 80, AvailableCapacity: 64, AvailableSlots: []string{"5:00 PM", "6:30 PM", "7:30 PM", "9:00 PM"}, Mood: "lively"},
	{Name: "Lakeshore Osteria", City: "chicago", Address: "1120 N Clark St", Cuisine: "italian", SeatingCapacity: 55, AvailableCapacity: 30, AvailableSlots: []string{"5:30 PM", "7:00 PM", "9:00 PM"}, Mood: "casual"},
	{Name: "Maison Brindille", City: "chicago", Address: "534 N Wells St", Cuisine: "french", SeatingCapacity: 36, AvailableCapacity: 20, AvailableSlots: []string{"6:00 PM", "7:30 PM"}, Mood: "romantic"},
	{Name: "El Farol Rojo", City: "chicago", Address: "2135 S Halsted St", Cuisine: "mexican", SeatingCapacity: 70, AvailableCapacity: 52, AvailableSlots: []string{"5:00 PM", "6:00 PM", "8:00 PM"}, Mood: "lively"},
	{Name: "Umi Sora", City: "san francisco", Address: "1732 Post St", Cuisine: "japanese", SeatingCapacity: 28, AvailableCapacity: 14, AvailableSlots: []string{"6:00 PM", "7:30 PM", "9:00 PM"}, Mood: "sophisticated"},
	{Name: "Mission Comal", City: "san francisco", Address: "2889 Mission St", Cuisine: "mexican", SeatingCapacity: 64, AvailableCapacity: 48, AvailableSlots: []string{"5:30 PM", "7:00 PM", "8:30 PM"}, Mood: "casual"},
	{Name: "Golden Gate Garden", City: "san francisco", Address: "745 Clement St", Cuisine: "chinese", SeatingCapacity: 90, AvailableCapacity: 66, AvailableSlots: []string{"5:00 PM", "6:30 PM", "8:00 PM"}, Mood: "lively"},
	{Name: "Neon Cactus", City: "las vegas", Address: "3900 Paradise Rd", Cuisine: "mexican", SeatingCapacity: 120, AvailableCapacity: 95, AvailableSlots: []string{"6:00 PM", "8:00 PM", "10:00 PM"}, Mood: "lively"},
	{Name: "Prime & Porter", City: "las vegas", Address: "3570 Las Vegas Blvd", Cuisine: "american", SeatingCapacity: 85, AvailableCapacity: 40, AvailableSlots: []string{"5:30 PM", "7:00 PM", "9:30 PM"}, Mood: "sophisticated"},
	{Name: "Beacon Hill Bistro", City: "boston", Address: "25 Charles St", Cuisine: "french", SeatingCapacity: 44, AvailableCapacity: 26, AvailableSlots: []string{"5:30 PM", "7:00 PM", "8:30 PM"}, Mood: "romantic"},
	{Name: "North End Nonna", City: "boston", Address: "346 Hanover St", Cuisine: "italian", SeatingCapacity: 50, AvailableCapacity: 38, AvailableSlots: []string{"5:00 PM", "6:30 PM", "8:00 PM"}, Mood: "casual"},
}

// Seed inserts the sample dataset if the restaurants table is empty. Calling
// it on a populated database is a no-op.
func (db *DB) Seed(ctx context.Context) error {
	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM restaurants").Scan(&count); err != nil {
		return fmt.Errorf("counting restaurants: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning seed: %w", err)
	}
	defer tx.Rollback()

	for _, r := range sampleRestaurants {
		slots, err := json.Marshal(r.AvailableSlots)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO restaurants (name, city, address, cuisine, seating_capacity, available_capacity, available_slots, mood)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			r.Name, r.City, r.Address, r.Cuisine, r.SeatingCapacity, r.AvailableCapacity, string(slots), r.Mood,
		); err != nil {
			return fmt.Errorf("seeding %q: %w", r.Name, err)
		}
	}
	return tx.Commit()
}
