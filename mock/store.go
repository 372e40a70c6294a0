package mock

import (
	"context"

	"github.com/tablewise/concierge/restaurant"
)

// Interface compliance check.
var _ restaurant.Store = (*Store)(nil)

// Store is a test double for restaurant.Store.
// Set the function fields for the methods you need.
type Store struct {
	SearchFn      func(ctx context.Context, q restaurant.Query) ([]restaurant.Restaurant, error)
	FindByNameFn  func(ctx context.Context, name, city string) (*restaurant.Restaurant, error)
	BookFn        func(ctx context.Context, req restaurant.BookingRequest) (int, error)
	ReservationFn func(ctx context.Context, id int) (*restaurant.Reservation, error)
	MetadataFn    func(ctx context.Context) (restaurant.Metadata, error)
}

// Search delegates to SearchFn.
func (s *Store) Search(ctx context.Context, q restaurant.Query) ([]restaurant.Restaurant, error) {
	return s.SearchFn(ctx, q)
}

// FindByName delegates to FindByNameFn.
func (s *Store) FindByName(ctx context.Context, name, city string) (*restaurant.Restaurant, error) {
	return s.FindByNameFn(ctx, name, city)
}

// Book delegates to BookFn.
func (s *Store) Book(ctx context.Context, req restaurant.BookingRequest) (int, error) {
	return s.BookFn(ctx, req)
}

// Reservation delegates to ReservationFn.
func (s *Store) Reservation(ctx context.Context, id int) (*restaurant.Reservation, error) {
	return s.ReservationFn(ctx, id)
}

// Metadata delegates to MetadataFn.
func (s *Store) Metadata(ctx context.Context) (restaurant.Metadata, error) {
	return s.MetadataFn(ctx)
}
