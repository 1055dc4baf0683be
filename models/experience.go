package models

// TimeSlot represents one bookable (date, time) window of an experience.
type TimeSlot struct {
	Date        string `bson:"date" json:"date"`               // "YYYY-MM-DD"
	Time        string `bson:"time" json:"time"`               // e.g. "10:00"
	TotalSlots  int    `bson:"totalSlots" json:"totalSlots"`   // total capacity for the slot
	BookedSlots int    `bson:"bookedSlots" json:"bookedSlots"` // units already reserved; 0 <= booked <= total
}

// Experience is a bookable listing with its embedded slot inventory.
type Experience struct {
	ID          string     `bson:"id" json:"id"`
	Title       string     `bson:"title" json:"title"`
	Location    string     `bson:"location" json:"location"`
	Price       float64    `bson:"price" json:"price"`
	Image       string     `bson:"image" json:"image"`
	Description string     `bson:"description" json:"description"`
	TimeSlots   []TimeSlot `bson:"timeSlots,omitempty" json:"timeSlots,omitempty"`
	MaxQuantity int        `bson:"maxQuantity" json:"maxQuantity"`
}

// Availability is the result of an availability check against a single slot.
type Availability struct {
	Available      bool   `json:"available"`
	AvailableSlots int    `json:"availableSlots"`
	Required       int    `json:"required,omitempty"`
	Message        string `json:"message,omitempty"`
}

// Slot returns the first slot matching the (date, time) key, or nil.
func (e *Experience) Slot(date, time string) *TimeSlot {
	for i := range e.TimeSlots {
		if e.TimeSlots[i].Date == date && e.TimeSlots[i].Time == time {
			return &e.TimeSlots[i]
		}
	}
	return nil
}

// CheckAvailability reports whether the slot at (date, time) can take quantity
// more units. A missing slot reads as unavailable rather than an error.
func (e *Experience) CheckAvailability(date, time string, quantity int) Availability {
	slot := e.Slot(date, time)
	if slot == nil {
		return Availability{Available: false, Message: "Slot not found"}
	}
	remaining := slot.TotalSlots - slot.BookedSlots
	return Availability{
		Available:      remaining >= quantity,
		AvailableSlots: remaining,
		Required:       quantity,
	}
}
