package domain_test

import (
	"testing"
	"time"

	"carrotrent-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRentalStatus_CanTransitionTo(t *testing.T) {
	cases := []struct {
		from, to domain.RentalStatus
		allowed  bool
	}{
		{domain.RentalStatusReserved, domain.RentalStatusActive, true},
		{domain.RentalStatusReserved, domain.RentalStatusArchived, true},
		{domain.RentalStatusActive, domain.RentalStatusArchived, true},
		{domain.RentalStatusActive, domain.RentalStatusReserved, false},
		{domain.RentalStatusArchived, domain.RentalStatusReserved, false},
		{domain.RentalStatusArchived, domain.RentalStatusActive, false},
		{domain.RentalStatusReserved, domain.RentalStatusReserved, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransitionTo(tc.to), "%s -> %s", tc.from, tc.to)
	}
	assert.True(t, domain.RentalStatusArchived.IsTerminal())
	assert.False(t, domain.RentalStatusReserved.IsTerminal())
}

func TestNewReservation(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	client, vehicle, reserved := uuid.New(), uuid.New(), uuid.New()

	t.Run("Success", func(t *testing.T) {
		rt, err := domain.NewReservation(client, vehicle, reserved, start, start.Add(72*time.Hour))
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, rt.ID)
		assert.Equal(t, domain.RentalStatusReserved, rt.Status)
		assert.Equal(t, reserved, rt.StatusID)
		assert.Nil(t, rt.RenterID)
		assert.Nil(t, rt.ReceiverID)
	})

	t.Run("End Equal To Start", func(t *testing.T) {
		_, err := domain.NewReservation(client, vehicle, reserved, start, start)
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})

	t.Run("End Before Start", func(t *testing.T) {
		_, err := domain.NewReservation(client, vehicle, reserved, start, start.Add(-time.Hour))
		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
	})
}

func TestRental_Transitions(t *testing.T) {
	start := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	staff := uuid.New()
	active, archived := uuid.New(), uuid.New()

	newRental := func() *domain.Rental {
		rt, err := domain.NewReservation(uuid.New(), uuid.New(), uuid.New(), start, start.Add(48*time.Hour))
		require.NoError(t, err)
		return rt
	}

	t.Run("Issue Sets Renter", func(t *testing.T) {
		rt := newRental()
		require.NoError(t, rt.Issue(staff, active))
		assert.Equal(t, domain.RentalStatusActive, rt.Status)
		assert.Equal(t, active, rt.StatusID)
		require.NotNil(t, rt.RenterID)
		assert.Equal(t, staff, *rt.RenterID)
	})

	t.Run("Issue Twice Fails", func(t *testing.T) {
		rt := newRental()
		require.NoError(t, rt.Issue(staff, active))
		assert.ErrorIs(t, rt.Issue(staff, active), domain.ErrInvalidTransition)
	})

	t.Run("Receive Closes Rental", func(t *testing.T) {
		rt := newRental()
		at := start.Add(96 * time.Hour)
		require.NoError(t, rt.Receive(staff, archived, at))
		assert.Equal(t, domain.RentalStatusArchived, rt.Status)
		assert.Equal(t, at, rt.EndDate)
		require.NotNil(t, rt.ReceiverID)
		assert.Equal(t, staff, *rt.ReceiverID)
		assert.ErrorIs(t, rt.Receive(staff, archived, at), domain.ErrInvalidTransition)
	})

	t.Run("Cancel Only From Reserved", func(t *testing.T) {
		rt := newRental()
		require.NoError(t, rt.Issue(staff, active))
		assert.ErrorIs(t, rt.Cancel(archived), domain.ErrInvalidTransition)

		rt = newRental()
		require.NoError(t, rt.Cancel(archived))
		assert.Equal(t, domain.RentalStatusArchived, rt.Status)
		assert.ErrorIs(t, rt.Cancel(archived), domain.ErrInvalidTransition)
	})
}

func TestOverlaps(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2024, 5, d, 0, 0, 0, 0, time.UTC) }

	assert.True(t, domain.Overlaps(day(1), day(5), day(3), day(7)))
	assert.True(t, domain.Overlaps(day(3), day(7), day(1), day(5)))
	assert.True(t, domain.Overlaps(day(1), day(10), day(3), day(4)))
	assert.False(t, domain.Overlaps(day(1), day(5), day(5), day(7)), "touching ranges do not overlap")
	assert.False(t, domain.Overlaps(day(1), day(3), day(5), day(7)))

	rt := &domain.Rental{StartDate: day(1), EndDate: day(5), Status: domain.RentalStatusReserved}
	assert.True(t, rt.OverlapsRange(day(4), day(6)))
	rt.Status = domain.RentalStatusArchived
	assert.False(t, rt.OverlapsRange(day(4), day(6)))
}
