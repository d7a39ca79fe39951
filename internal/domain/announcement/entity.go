package announcement

import "time"

// DefaultColor is used when HR does not pick one.
const DefaultColor = "#3b82f6"

type Announcement struct {
	ID            string
	Title         string
	Description   *string
	Date          time.Time
	Time          *string
	Color         string
	CreatedBy     string
	CreatedByName string
	CreatedAt     time.Time
}
