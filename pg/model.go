package pg

import (
	"context"
	"time"

	"github.com/uptrace/bun"
)

// Timestamps provides creation and modification times to be embedded in models.
type Timestamps struct {
	CreatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at" bson:"updated_at"`
}

// Verify that Timestamps implements bun.BeforeAppendModelHook.
var _ bun.BeforeAppendModelHook = (*Timestamps)(nil)

// BeforeAppendModel stamps the timestamps right before bun builds insert and update queries.
func (m *Timestamps) BeforeAppendModel(_ context.Context, query bun.Query) error {
	switch query.(type) {
	case *bun.InsertQuery:
		m.StampCreated(time.Now())
	case *bun.UpdateQuery:
		m.StampUpdated(time.Now())
	}
	return nil
}

// StampCreated sets both timestamps to now.
func (m *Timestamps) StampCreated(now time.Time) {
	m.CreatedAt = now
	m.UpdatedAt = now
}

// StampUpdated moves UpdatedAt to now. A missing CreatedAt is filled in as well.
func (m *Timestamps) StampUpdated(now time.Time) {
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now
}
