package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func inventory() *Experience {
	return &Experience{
		ID:    "exp-1",
		Title: "Sunrise Trek",
		TimeSlots: []TimeSlot{
			{Date: "2026-09-10", Time: "07:00 am", TotalSlots: 4, BookedSlots: 0},
			{Date: "2026-09-10", Time: "09:00 am", TotalSlots: 3, BookedSlots: 2},
			{Date: "2026-09-11", Time: "07:00 am", TotalSlots: 2, BookedSlots: 2},
		},
	}
}

func TestSlot_MatchesDateAndTime(t *testing.T) {
	exp := inventory()

	slot := exp.Slot("2026-09-10", "09:00 am")
	require.NotNil(t, slot)
	assert.Equal(t, 3, slot.TotalSlots)
	assert.Equal(t, 2, slot.BookedSlots)

	// Same time on another date is a different slot.
	other := exp.Slot("2026-09-11", "07:00 am")
	require.NotNil(t, other)
	assert.Equal(t, 2, other.TotalSlots)

	assert.Nil(t, exp.Slot("2026-09-12", "07:00 am"))
	assert.Nil(t, exp.Slot("2026-09-10", "11:00 am"))
}

func TestCheckAvailability_EnoughCapacity(t *testing.T) {
	exp := inventory()

	got := exp.CheckAvailability("2026-09-10", "07:00 am", 4)
	assert.True(t, got.Available)
	assert.Equal(t, 4, got.AvailableSlots)
	assert.Equal(t, 4, got.Required)
}

func TestCheckAvailability_PartiallyBooked(t *testing.T) {
	exp := inventory()

	got := exp.CheckAvailability("2026-09-10", "09:00 am", 1)
	assert.True(t, got.Available)
	assert.Equal(t, 1, got.AvailableSlots)

	got = exp.CheckAvailability("2026-09-10", "09:00 am", 2)
	assert.False(t, got.Available)
	assert.Equal(t, 1, got.AvailableSlots)
	assert.Equal(t, 2, got.Required)
}

func TestCheckAvailability_FullSlot(t *testing.T) {
	exp := inventory()

	got := exp.CheckAvailability("2026-09-11", "07:00 am", 1)
	assert.False(t, got.Available)
	assert.Equal(t, 0, got.AvailableSlots)
}

func TestCheckAvailability_UnknownSlot(t *testing.T) {
	exp := inventory()

	got := exp.CheckAvailability("2026-09-10", "11:00 am", 1)
	assert.False(t, got.Available)
	assert.Equal(t, "Slot not found", got.Message)
	assert.Equal(t, 0, got.AvailableSlots)
}
