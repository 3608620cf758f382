package repogen

import "time"

// Stamper is implemented by entities that track their creation and modification time.
// Stores without a native hook mechanism call it right before persisting.
type Stamper interface {
	StampCreated(now time.Time)
	StampUpdated(now time.Time)
}

func stampCreated(entity any, now time.Time) {
	if s, ok := entity.(Stamper); ok {
		s.StampCreated(now)
	}
}

func stampUpdated(entity any, now time.Time) {
	if s, ok := entity.(Stamper); ok {
		s.StampUpdated(now)
	}
}
