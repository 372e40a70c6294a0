package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/tablewise/concierge/restaurant"
)

var _ restaurant.Store = (*DB)(nil)

const restaurantColumns = "id, name, city, address, cuisine, seating_capacity, available_capacity, available_slots, mood"

// Search returns restaurants matching every constraint set on q. Matching on
// city, cuisine and mood is case-insensitive; MinCapacity filters on the
// remaining capacity. Results come back in id order.
func (db *DB) Search(ctx context.Context, q restaurant.Query) ([]restaurant.Restaurant, error) {
	var (
		where []string
		args  []any
	)
	if q.City != "" {
		where = append(where, "LOWER(city) = LOWER(?)")
		args = append(args, q.City)
	}
	if q.Cuisine != "" {
		where = append(where, "LOWER(cuisine) = LOWER(?)")
		args = append(args, q.Cuisine)
	}
	if q.Mood != "" {
		where = append(where, "LOWER(mood) = LOWER(?)")
		args = append(args, q.Mood)
	}
	if q.MinCapacity > 0 {
		where = append(where, "available_capacity >= ?")
		args = append(args, q.MinCapacity)
	}

	query := "SELECT " + restaurantColumns + " FROM restaurants"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY id"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("searching restaurants: %w", err)
	}
	defer rows.Close()

	var out []restaurant.Restaurant
	for rows.Next() {
		r, err := scanRestaurant(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// FindByName finds a restaurant by partial, case-insensitive name match,
// optionally narrowed to a city. The lowest-id match wins.
func (db *DB) FindByName(ctx context.Context, name, city string) (*restaurant.Restaurant, error) {
	query := "SELECT " + restaurantColumns + " FROM restaurants WHERE LOWER(name) LIKE LOWER(?)"
	args := []any{"%" + name + "%"}
	if city != "" {
		query += " AND LOWER(city) = LOWER(?)"
		args = append(args, city)
	}
	query += " ORDER BY id LIMIT 1"

	r, err := scanRestaurant(db.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("restaurant %q: %w", name, restaurant.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// Book creates a reservation inside a transaction: it re-checks the slot and
// capacity against the current row, removes one slot occurrence, decrements
// capacity and inserts the reservation. Everything commits or rolls back
// together.
func (db *DB) Book(ctx context.Context, req restaurant.BookingRequest) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning booking: %w", err)
	}
	defer tx.Rollback()

	var (
		capacity int
		rawSlots string
	)
	err = tx.QueryRowContext(ctx,
		"SELECT available_capacity, available_slots FROM restaurants WHERE id = ?",
		req.RestaurantID,
	).Scan(&capacity, &rawSlots)
	if err == sql.ErrNoRows {
		return 0, fmt.Errorf("restaurant %d: %w", req.RestaurantID, restaurant.ErrNotFound)
	}
	if err != nil {
		return 0, err
	}

	var slots []string
	if err := json.Unmarshal([]byte(rawSlots), &slots); err != nil {
		return 0, fmt.Errorf("decoding slots for restaurant %d: %w", req.RestaurantID, err)
	}
	i := slices.Index(slots, req.ReservationTime)
	if i < 0 {
		return 0, fmt.Errorf("slot %q: %w", req.ReservationTime, restaurant.ErrSlotUnavailable)
	}
	if capacity < req.PartySize {
		return 0, fmt.Errorf("capacity %d for party of %d: %w",
			capacity, req.PartySize, restaurant.ErrInsufficientCapacity)
	}

	remaining, err := json.Marshal(slices.Delete(slots, i, i+1))
	if err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE restaurants SET available_capacity = available_capacity - ?, available_slots = ? WHERE id = ?",
		req.PartySize, string(remaining), req.RestaurantID,
	); err != nil {
		return 0, fmt.Errorf("updating restaurant %d: %w", req.RestaurantID, err)
	}

	res, err := tx.ExecContext(ctx,
		`INSERT INTO reservations (restaurant_id, customer_name, contact_number, party_size, reservation_time)
		 VALUES (?, ?, ?, ?, ?)`,
		req.RestaurantID, req.CustomerName, req.ContactNumber, req.PartySize, req.ReservationTime,
	)
	if err != nil {
		return 0, fmt.Errorf("inserting reservation: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing booking: %w", err)
	}
	return int(id), nil
}

// Reservation returns a confirmed booking joined with its restaurant.
func (db *DB) Reservation(ctx context.Context, id int) (*restaurant.Reservation, error) {
	var rv restaurant.Reservation
	err := db.QueryRowContext(ctx,
		`SELECT rs.id, r.name, r.address, r.city, rs.customer_name, rs.contact_number,
		        rs.party_size, rs.reservation_time, rs.created_at
		 FROM reservations rs
		 JOIN restaurants r ON r.id = rs.restaurant_id
		 WHERE rs.id = ?`,
		id,
	).Scan(&rv.ID, &rv.RestaurantName, &rv.Address, &rv.City, &rv.CustomerName,
		&rv.ContactNumber, &rv.PartySize, &rv.ReservationTime, &rv.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("reservation %d: %w", id, restaurant.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &rv, nil
}

// Metadata returns the distinct cities, cuisines and moods present in the
// restaurants table. Empty strings are skipped.
func (db *DB) Metadata(ctx context.Context) (restaurant.Metadata, error) {
	var meta restaurant.Metadata
	for _, col := range []struct {
		name string
		dst  *[]string
	}{
		{"city", &meta.Cities},
		{"cuisine", &meta.Cuisines},
		{"mood", &meta.Moods},
	} {
		values, err := db.distinct(ctx, col.name)
		if err != nil {
			return restaurant.Metadata{}, err
		}
		*col.dst = values
	}
	return meta, nil
}

func (db *DB) distinct(ctx context.Context, column string) ([]string, error) {
	rows, err := db.QueryContext(ctx,
		"SELECT DISTINCT LOWER("+column+") FROM restaurants WHERE "+column+" != '' ORDER BY 1")
	if err != nil {
		return nil, fmt.Errorf("listing %s values: %w", column, err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRestaurant(row scanner) (restaurant.Restaurant, error) {
	var (
		r        restaurant.Restaurant
		rawSlots string
	)
	err := row.Scan(&r.ID, &r.Name, &r.City, &r.Address, &r.Cuisine,
		&r.SeatingCapacity, &r.AvailableCapacity, &rawSlots, &r.Mood)
	if err != nil {
		return restaurant.Restaurant{}, err
	}
	if err := json.Unmarshal([]byte(rawSlots), &r.AvailableSlots); err != nil {
		return restaurant.Restaurant{}, fmt.Errorf("decoding slots for restaurant %d: %w", r.ID, err)
	}
	return r, nil
}
