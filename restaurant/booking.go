package restaurant

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tablewise/concierge"
)

// BookTool creates a reservation. Its parameters are declared optional so
// incomplete calls reach the tool and come back as a structured
// incomplete/missing_fields result the model can turn into a question,
// instead of a validator error.
type BookTool struct {
	store   Store
	catalog Catalog

	// now is injected for tests; defaults to time.Now.
	now func() time.Time
}

// NewBookTool creates a BookTool.
func NewBookTool(store Store, catalog Catalog) *BookTool {
	return &BookTool{store: store, catalog: catalog, now: time.Now}
}

// Signature implements concierge.Tool.
func (t *BookTool) Signature() concierge.Signature {
	return concierge.Signature{
		Name: "book_restaurant",
		Description: "Book a table at a restaurant. Ensure ALL required information is available first; " +
			"use validate_booking_info if unsure whether the information is complete.",
		Params: []concierge.Param{
			{Name: "restaurant_name", Type: concierge.TypeString},
			{Name: "reservation_time", Type: concierge.TypeString},
			{Name: "party_size", Type: concierge.TypeInt},
			{Name: "customer_name", Type: concierge.TypeString},
			{Name: "contact_number", Type: concierge.TypeString},
			{Name: "city", Type: concierge.TypeString},
		},
	}
}

// Invoke implements concierge.Tool.
func (t *BookTool) Invoke(ctx context.Context, args map[string]any) (*concierge.Result, error) {
	var p struct {
		Name          string `mapstructure:"restaurant_name"`
		Time          string `mapstructure:"reservation_time"`
		PartySize     any    `mapstructure:"party_size"`
		CustomerName  string `mapstructure:"customer_name"`
		ContactNumber string `mapstructure:"contact_number"`
		City          string `mapstructure:"city"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}

	var missing []string
	if p.Name == "" {
		missing = append(missing, "restaurant name")
	}
	if p.Time == "" {
		missing = append(missing, "reservation time")
	}
	party, present, ok := intValue(p.PartySize)
	switch {
	case !ok:
		missing = append(missing, "valid party size (must be a number)")
	case !present || party == 0:
		missing = append(missing, "party size")
	}
	if p.CustomerName == "" {
		missing = append(missing, "customer name")
	}
	if p.ContactNumber == "" {
		missing = append(missing, "contact number")
	}
	if len(missing) > 0 {
		return &concierge.Result{
			Status:  concierge.StatusIncomplete,
			Message: "Missing required information",
			Meta:    map[string]any{"missing_fields": missing},
		}, nil
	}

	normCity := t.catalog.NormalizeCity(p.City)
	r, err := t.store.FindByName(ctx, p.Name, normCity)
	if err != nil {
		if isNotFound(err) {
			return &concierge.Result{
				Status:  concierge.StatusNotFound,
				Message: "Restaurant not found",
				Meta: map[string]any{
					"query_params": map[string]any{
						"restaurant_name": p.Name,
						"city":            p.City,
						"normalized_city": normCity,
					},
				},
			}, nil
		}
		return nil, fmt.Errorf("find restaurant: %w", err)
	}

	if !slices.Contains(r.AvailableSlots, p.Time) {
		return &concierge.Result{
			Status:  concierge.StatusUnavailableTime,
			Message: "Requested time is not available",
			Meta:    map[string]any{"available_times": r.AvailableSlots},
		}, nil
	}
	if party > r.AvailableCapacity {
		return &concierge.Result{
			Status:  concierge.StatusInsufficientCapacity,
			Message: "Not enough seats available",
			Meta: map[string]any{
				"available_capacity": r.AvailableCapacity,
				"requested_size":     party,
			},
		}, nil
	}

	confirmation, err := t.store.Book(ctx, BookingRequest{
		RestaurantID:    r.ID,
		CustomerName:    p.CustomerName,
		ContactNumber:   p.ContactNumber,
		PartySize:       party,
		ReservationTime: p.Time,
	})
	if err != nil {
		// The store re-checks inside its transaction; a concurrent booking
		// can invalidate the checks above between read and write.
		switch {
		case errors.Is(err, ErrSlotUnavailable):
			return &concierge.Result{
				Status:  concierge.StatusUnavailableTime,
				Message: "Requested time is not available",
				Meta:    map[string]any{"available_times": r.AvailableSlots},
			}, nil
		case errors.Is(err, ErrInsufficientCapacity):
			return &concierge.Result{
				Status:  concierge.StatusInsufficientCapacity,
				Message: "Not enough seats available",
				Meta: map[string]any{
					"available_capacity": r.AvailableCapacity,
					"requested_size":     party,
				},
			}, nil
		}
		return nil, fmt.Errorf("book restaurant: %w", err)
	}

	return &concierge.Result{
		Status:  concierge.StatusSuccess,
		Message: "Reservation created successfully",
		Data: map[string]any{
			"confirmation_id": confirmation,
			"restaurant": map[string]any{
				"id":      r.ID,
				"name":    r.Name,
				"address": r.Address,
				"city":    r.City,
			},
			"reservation": map[string]any{
				"date":           t.now().Format("2006-01-02"),
				"time":           p.Time,
				"party_size":     party,
				"customer_name":  p.CustomerName,
				"contact_number": p.ContactNumber,
			},
		},
	}, nil
}

// CheckReservationTool looks up an existing reservation by confirmation number.
type CheckReservationTool struct {
	store Store
}

// NewCheckReservationTool creates a CheckReservationTool.
func NewCheckReservationTool(store Store) *CheckReservationTool {
	return &CheckReservationTool{store: store}
}

// Signature implements concierge.Tool.
func (t *CheckReservationTool) Signature() concierge.Signature {
	return concierge.Signature{
		Name:        "check_reservation",
		Description: "Check the details of an existing reservation.",
		Params: []concierge.Param{
			{Name: "confirmation_number", Type: concierge.TypeInt, Required: true},
		},
	}
}

// Invoke implements concierge.Tool.
func (t *CheckReservationTool) Invoke(ctx context.Context, args map[string]any) (*concierge.Result, error) {
	n, _, ok := intValue(args["confirmation_number"])
	if !ok {
		return concierge.Errorf("Invalid confirmation number: %v. Must be a number.", args["confirmation_number"]), nil
	}

	res, err := t.store.Reservation(ctx, n)
	if err != nil {
		if isNotFound(err) {
			return &concierge.Result{
				Status:  concierge.StatusNotFound,
				Message: "Reservation not found",
				Meta:    map[string]any{"confirmation_number": n},
			}, nil
		}
		return nil, fmt.Errorf("check reservation: %w", err)
	}

	return &concierge.Result{Status: concierge.StatusSuccess, Data: res}, nil
}

// bookingFields is the fixed field order validate_booking_info reports in.
var bookingFields = []string{
	"restaurant_name", "reservation_time", "party_size",
	"customer_name", "contact_number", "city",
}

// ValidateBookingTool checks whether all information needed for a booking is
// present. Pure and idempotent: identical input yields identical output.
type ValidateBookingTool struct{}

// NewValidateBookingTool creates a ValidateBookingTool.
func NewValidateBookingTool() *ValidateBookingTool {
	return &ValidateBookingTool{}
}

// Signature implements concierge.Tool.
func (t *ValidateBookingTool) Signature() concierge.Signature {
	params := make([]concierge.Param, len(bookingFields))
	for i, f := range bookingFields {
		typ := concierge.TypeString
		if f == "party_size" {
			typ = concierge.TypeInt
		}
		params[i] = concierge.Param{Name: f, Type: typ}
	}
	return concierge.Signature{
		Name:        "validate_booking_info",
		Description: "Validates if all required booking information is available. Use this before attempting to book a restaurant.",
		Params:      params,
	}
}

// Invoke implements concierge.Tool.
func (t *ValidateBookingTool) Invoke(_ context.Context, args map[string]any) (*concierge.Result, error) {
	missing := []string{}
	provided := map[string]any{}

	for _, field := range bookingFields {
		v := args[field]
		if field == "party_size" {
			n, present, ok := intValue(v)
			switch {
			case !present || (ok && n == 0):
				missing = append(missing, "party_size")
			case !ok:
				missing = append(missing, "valid_party_size")
			default:
				provided["party_size"] = n
			}
			continue
		}
		if s, _ := v.(string); s != "" {
			provided[field] = s
		} else {
			missing = append(missing, field)
		}
	}

	status := concierge.StatusComplete
	if len(missing) > 0 {
		status = concierge.StatusMissingFields
	}
	return &concierge.Result{
		Status: status,
		Meta: map[string]any{
			"missing_fields":  missing,
			"provided_fields": provided,
		},
	}, nil
}

// InquiryTool analyzes a restaurant inquiry and decides which piece of
// information to ask for next. Intent detection is a plain keyword check.
type InquiryTool struct{}

// NewInquiryTool creates an InquiryTool.
func NewInquiryTool() *InquiryTool {
	return &InquiryTool{}
}

// Signature implements concierge.Tool.
func (t *InquiryTool) Signature() concierge.Signature {
	return concierge.Signature{
		Name:        "progressive_restaurant_inquiry",
		Description: "Analyzes a restaurant inquiry and determines what information to ask for next.",
		Params: []concierge.Param{
			{Name: "query", Type: concierge.TypeString, Required: true},
			{Name: "known_info", Type: concierge.TypeObject},
		},
	}
}

// Invoke implements concierge.Tool.
func (t *InquiryTool) Invoke(_ context.Context, args map[string]any) (*concierge.Result, error) {
	var p struct {
		Query     string         `mapstructure:"query"`
		KnownInfo map[string]any `mapstructure:"known_info"`
	}
	if err := decodeArgs(args, &p); err != nil {
		return nil, err
	}
	if p.KnownInfo == nil {
		p.KnownInfo = map[string]any{}
	}

	lower := strings.ToLower(p.Query)
	bookingIntent := strings.Contains(lower, "book") || strings.Contains(lower, "reservation")

	// Field order is fixed: city before party_size before cuisine before time.
	missing := []string{}
	if _, ok := p.KnownInfo["city"]; !ok {
		missing = append(missing, "city")
	}
	if _, ok := p.KnownInfo["party_size"]; !ok && bookingIntent {
		missing = append(missing, "party_size")
	}
	if _, ok := p.KnownInfo["cuisine"]; !ok {
		missing = append(missing, "cuisine")
	}
	if _, ok := p.KnownInfo["time"]; !ok && bookingIntent {
		missing = append(missing, "time")
	}

	var next any
	if len(missing) > 0 {
		next = missing[0]
	}
	_, hasCity := p.KnownInfo["city"]

	return &concierge.Result{
		Status: concierge.StatusSuccess,
		Data: map[string]any{
			"query":             p.Query,
			"known_info":        p.KnownInfo,
			"missing_info":      missing,
			"is_booking_intent": bookingIntent,
			"next_field_to_ask": next,
			"can_recommend":     hasCity,
		},
	}, nil
}
