package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

type RentalStatus string

const (
	RentalStatusReserved RentalStatus = "Reserved"
	RentalStatusActive   RentalStatus = "Active"
	RentalStatusArchived RentalStatus = "Archived"
)

var (
	ErrInvalidDateRange  = errors.New("end date must be after start date")
	ErrInvalidTransition = errors.New("rental status does not allow this transition")
)

// rentalTransitions lists every legal edge of the rental lifecycle.
// Archived is terminal.
var rentalTransitions = map[RentalStatus][]RentalStatus{
	RentalStatusReserved: {RentalStatusActive, RentalStatusArchived},
	RentalStatusActive:   {RentalStatusArchived},
}

func (s RentalStatus) CanTransitionTo(next RentalStatus) bool {
	for _, allowed := range rentalTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s RentalStatus) IsTerminal() bool {
	return len(rentalTransitions[s]) == 0
}

// Rental is a reservation of one vehicle by one client for a date range.
// StatusID is the persisted reference row for Status.
type Rental struct {
	ID         uuid.UUID    `json:"id"`
	StartDate  time.Time    `json:"start_date"`
	EndDate    time.Time    `json:"end_date"`
	ClientID   uuid.UUID    `json:"client_id"`
	RenterID   *uuid.UUID   `json:"renter_id,omitempty"`
	ReceiverID *uuid.UUID   `json:"receiver_id,omitempty"`
	VehicleID  uuid.UUID    `json:"vehicle_id"`
	StatusID   uuid.UUID    `json:"status_id"`
	Status     RentalStatus `json:"status"`
}

// NewReservation builds a Reserved rental after checking the date range.
func NewReservation(clientID, vehicleID, reservedStatusID uuid.UUID, start, end time.Time) (*Rental, error) {
	if !end.After(start) {
		return nil, ErrInvalidDateRange
	}
	return &Rental{
		ID:        uuid.New(),
		StartDate: start,
		EndDate:   end,
		ClientID:  clientID,
		VehicleID: vehicleID,
		StatusID:  reservedStatusID,
		Status:    RentalStatusReserved,
	}, nil
}

// Issue hands the vehicle over. The renter can only be recorded once.
func (r *Rental) Issue(renterID, activeStatusID uuid.UUID) error {
	if !r.Status.CanTransitionTo(RentalStatusActive) || r.RenterID != nil {
		return ErrInvalidTransition
	}
	r.RenterID = &renterID
	r.StatusID = activeStatusID
	r.Status = RentalStatusActive
	return nil
}

// Receive takes the vehicle back and closes the rental at receivedAt.
func (r *Rental) Receive(receiverID, archivedStatusID uuid.UUID, receivedAt time.Time) error {
	if !r.Status.CanTransitionTo(RentalStatusArchived) || r.ReceiverID != nil {
		return ErrInvalidTransition
	}
	r.ReceiverID = &receiverID
	r.EndDate = receivedAt
	r.StatusID = archivedStatusID
	r.Status = RentalStatusArchived
	return nil
}

// Cancel archives a reservation that was never issued.
func (r *Rental) Cancel(archivedStatusID uuid.UUID) error {
	if r.Status != RentalStatusReserved {
		return ErrInvalidTransition
	}
	r.StatusID = archivedStatusID
	r.Status = RentalStatusArchived
	return nil
}

// Overlaps reports whether two half-open date ranges intersect.
func Overlaps(startA, endA, startB, endB time.Time) bool {
	return startA.Before(endB) && startB.Before(endA)
}

// OverlapsRange reports whether the rental blocks the vehicle during [start, end).
// Archived rentals no longer hold the vehicle.
func (r *Rental) OverlapsRange(start, end time.Time) bool {
	if r.Status == RentalStatusArchived {
		return false
	}
	return Overlaps(r.StartDate, r.EndDate, start, end)
}
