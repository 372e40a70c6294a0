// Package restaurant implements the concierge's restaurant domain: the
// immutable catalog, the eight concierge tools, and the relaxation-based
// recommendation engine. Persistence is behind the Store interface; the
// sqlite package provides the default implementation.
package restaurant

import (
	"context"
	"errors"
	"time"
)

// Sentinel errors reported by Store implementations.
var (
	// ErrNotFound indicates no restaurant or reservation matched.
	ErrNotFound = errors.New("not found")

	// ErrSlotUnavailable indicates the requested reservation time is no
	// longer in the restaurant's slot list.
	ErrSlotUnavailable = errors.New("reservation time not available")

	// ErrInsufficientCapacity indicates the party does not fit in the
	// restaurant's remaining capacity.
	ErrInsufficientCapacity = errors.New("insufficient capacity")
)

// Restaurant is a bookable venue.
type Restaurant struct {
	ID                int      `json:"id"`
	Name              string   `json:"name"`
	City              string   `json:"city"`
	Address           string   `json:"address"`
	Cuisine           string   `json:"cuisine"`
	SeatingCapacity   int      `json:"seating_capacity"`
	AvailableCapacity int      `json:"available_capacity"`
	AvailableSlots    []string `json:"available_reservations"`
	Mood              string   `json:"mood"`
}

// Reservation is a confirmed booking joined with its restaurant.
type Reservation struct {
	ID              int       `json:"id"`
	RestaurantName  string    `json:"restaurant_name"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	CustomerName    string    `json:"customer_name"`
	ContactNumber   string    `json:"contact_number"`
	PartySize       int       `json:"party_size"`
	ReservationTime string    `json:"reservation_time"`
	CreatedAt       time.Time `json:"created_at"`
}

// Query filters restaurant searches. Zero values mean unconstrained.
type Query struct {
	City        string
	Cuisine     string
	Mood        string
	MinCapacity int
}

// BookingRequest describes a reservation to create.
type BookingRequest struct {
	RestaurantID    int
	CustomerName    string
	ContactNumber   string
	PartySize       int
	ReservationTime string
}

// Metadata is the distinct value inventory used to build a Catalog.
type Metadata struct {
	Cities   []string
	Cuisines []string
	Moods    []string
}

// Store is the persistence collaborator for restaurants and reservations.
// Book must be atomic: the reservation insert, the capacity decrement and the
// removal of one slot occurrence commit or roll back together, so concurrent
// bookings cannot double-book a slot or overdraw capacity.
type Store interface {
	Search(ctx context.Context, q Query) ([]Restaurant, error)
	FindByName(ctx context.Context, name, city string) (*Restaurant, error)
	Book(ctx context.Context, req BookingRequest) (int, error)
	Reservation(ctx context.Context, id int) (*Reservation, error)
	Metadata(ctx context.Context) (Metadata, error)
}
