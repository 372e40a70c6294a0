package sqlite_test

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tablewise/concierge/restaurant"
	"github.com/tablewise/concierge/sqlite"
)

func openDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db, err := sqlite.Open(context.Background(), filepath.Join(t.TempDir(), "concierge.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func insert(t *testing.T, db *sqlite.DB, r restaurant.Restaurant) {
	t.Helper()
	slots, err := json.Marshal(r.AvailableSlots)
	require.NoError(t, err)
	_, err = db.ExecContext(context.Background(),
		`INSERT INTO restaurants (name, city, address, cuisine, seating_capacity, available_capacity, available_slots, mood)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Name, r.City, r.Address, r.Cuisine, r.SeatingCapacity, r.AvailableCapacity, string(slots), r.Mood)
	require.NoError(t, err)
}

func fixtures(t *testing.T, db *sqlite.DB) {
	t.Helper()
	insert(t, db, restaurant.Restaurant{
		Name: "Trattoria Fiorella", City: "New York", Address: "214 Mulberry St",
		Cuisine: "Italian", SeatingCapacity: 60, AvailableCapacity: 42,
		AvailableSlots: []string{"5:30 PM", "7:00 PM", "8:30 PM"}, Mood: "romantic",
	})
	insert(t, db, restaurant.Restaurant{
		Name: "Casa Arbol", City: "new york", Address: "510 Amsterdam Ave",
		Cuisine: "mexican", SeatingCapacity: 80, AvailableCapacity: 4,
		AvailableSlots: []string{"6:30 PM"}, Mood: "lively",
	})
	insert(t, db, restaurant.Restaurant{
		Name: "Lakeshore Osteria", City: "chicago", Address: "1120 N Clark St",
		Cuisine: "italian", SeatingCapacity: 55, AvailableCapacity: 30,
		AvailableSlots: []string{"7:00 PM"}, Mood: "casual",
	})
}

func TestSearch(t *testing.T) {
	t.Parallel()
	db := openDB(t)
	fixtures(t, db)
	ctx := context.Background()

	t.Run("city match is case-insensitive", func(t *testing.T) {
		got, err := db.Search(ctx, restaurant.Query{City: "NEW YORK"})
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Trattoria Fiorella", got[0].Name)
		assert.Equal(t, []string{"5:30 PM", "7:00 PM", "8:30 PM"}, got[0].AvailableSlots)
	})

	t.Run("cuisine and capacity narrow the result", func(t *testing.T) {
		got, err := db.Search(ctx, restaurant.Query{City: "new york", Cuisine: "Italian", MinCapacity: 10})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Trattoria Fiorella", got[0].Name)
	})

	t.Run("capacity filter excludes small remainders", func(t *testing.T) {
		got, err := db.Search(ctx, restaurant.Query{City: "new york", MinCapacity: 5})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Trattoria Fiorella", got[0].Name)
	})

	t.Run("no constraints returns everything", func(t *testing.T) {
		got, err := db.Search(ctx, restaurant.Query{})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("no match returns empty", func(t *testing.T) {
		got, err := db.Search(ctx, restaurant.Query{City: "boston"})
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestFindByName(t *testing.T) {
	t.Parallel()
	db := openDB(t)
	fixtures(t, db)
	ctx := context.Background()

	t.Run("partial case-insensitive match", func(t *testing.T) {
		got, err := db.FindByName(ctx, "fiorella", "")
		require.NoError(t, err)
		assert.Equal(t, "Trattoria Fiorella", got.Name)
	})

	t.Run("city narrows the match", func(t *testing.T) {
		got, err := db.FindByName(ctx, "osteria", "chicago")
		require.NoError(t, err)
		assert.Equal(t, "Lakeshore Osteria", got.Name)

		_, err = db.FindByName(ctx, "osteria", "new york")
		assert.ErrorIs(t, err, restaurant.ErrNotFound)
	})

	t.Run("unknown name", func(t *testing.T) {
		_, err := db.FindByName(ctx, "Chez Nulle Part", "")
		assert.ErrorIs(t, err, restaurant.ErrNotFound)
	})
}

func TestBook(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	req := func(id int) restaurant.BookingRequest {
		return restaurant.BookingRequest{
			RestaurantID:    id,
			CustomerName:    "Ada Lovelace",
			ContactNumber:   "555-0100",
			PartySize:       4,
			ReservationTime: "7:00 PM",
		}
	}

	t.Run("success updates capacity and slots atomically", func(t *testing.T) {
		t.Parallel()
		db := openDB(t)
		fixtures(t, db)

		r, err := db.FindByName(ctx, "Fiorella", "")
		require.NoError(t, err)

		id, err := db.Book(ctx, req(r.ID))
		require.NoError(t, err)
		require.NotZero(t, id)

		after, err := db.FindByName(ctx, "Fiorella", "")
		require.NoError(t, err)
		assert.Equal(t, r.AvailableCapacity-4, after.AvailableCapacity)
		assert.Equal(t, []string{"5:30 PM", "8:30 PM"}, after.AvailableSlots)

		rv, err := db.Reservation(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, "Trattoria Fiorella", rv.RestaurantName)
		assert.Equal(t, "Ada Lovelace", rv.CustomerName)
		assert.Equal(t, 4, rv.PartySize)
		assert.Equal(t, "7:00 PM", rv.ReservationTime)
		assert.False(t, rv.CreatedAt.IsZero())
	})

	t.Run("slot no longer offered", func(t *testing.T) {
		t.Parallel()
		db := openDB(t)
		fixtures(t, db)

		r, err := db.FindByName(ctx, "Casa Arbol", "")
		require.NoError(t, err)

		_, err = db.Book(ctx, req(r.ID))
		assert.ErrorIs(t, err, restaurant.ErrSlotUnavailable)
	})

	t.Run("party exceeds remaining capacity", func(t *testing.T) {
		t.Parallel()
		db := openDB(t)
		fixtures(t, db)

		r, err := db.FindByName(ctx, "Casa Arbol", "")
		require.NoError(t, err)

		booking := req(r.ID)
		booking.ReservationTime = "6:30 PM"
		booking.PartySize = 5
		_, err = db.Book(ctx, booking)
		assert.ErrorIs(t, err, restaurant.ErrInsufficientCapacity)

		// Nothing was mutated by the failed attempt.
		after, err := db.FindByName(ctx, "Casa Arbol", "")
		require.NoError(t, err)
		assert.Equal(t, 4, after.AvailableCapacity)
		assert.Equal(t, []string{"6:30 PM"}, after.AvailableSlots)
	})

	t.Run("unknown restaurant", func(t *testing.T) {
		t.Parallel()
		db := openDB(t)

		_, err := db.Book(ctx, req(999))
		assert.ErrorIs(t, err, restaurant.ErrNotFound)
	})
}

func TestReservation_NotFound(t *testing.T) {
	t.Parallel()
	db := openDB(t)

	_, err := db.Reservation(context.Background(), 123)
	assert.ErrorIs(t, err, restaurant.ErrNotFound)
}

func TestMetadata(t *testing.T) {
	t.Parallel()
	db := openDB(t)
	fixtures(t, db)

	meta, err := db.Metadata(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"chicago", "new york"}, meta.Cities)
	assert.Equal(t, []string{"italian", "mexican"}, meta.Cuisines)
	assert.Equal(t, []string{"casual", "lively", "romantic"}, meta.Moods)
}

func TestSeed_Idempotent(t *testing.T) {
	t.Parallel()
	db := openDB(t)
	ctx := context.Background()

	require.NoError(t, db.Seed(ctx))
	first, err := db.Search(ctx, restaurant.Query{})
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, db.Seed(ctx))
	second, err := db.Search(ctx, restaurant.Query{})
	require.NoError(t, err)
	assert.Len(t, second, len(first))
}
