package store

import (
	"context"

	"github.com/ArunMS01/ai-sales/internal/model"
)

// LeadFilter specifies criteria for listing leads.
type LeadFilter struct {
	Stage  model.Stage `json:"stage,omitempty"`
	Source string      `json:"source,omitempty"`
	City   string      `json:"city,omitempty"`

	// HasPhone keeps only leads with a phone number.
	HasPhone bool `json:"has_phone,omitempty"`
	// MissingContact keeps only leads lacking a phone or an email.
	MissingContact bool `json:"missing_contact,omitempty"`

	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Store defines the persistence interface for the lead funnel.
// Lookups that find nothing return (nil, nil).
type Store interface {
	// Leads
	Insert(ctx context.Context, lead *model.Lead) error
	Update(ctx context.Context, lead *model.Lead) error
	UpdateStage(ctx context.Context, id string, stage model.Stage) error
	Get(ctx context.Context, id string) (*model.Lead, error)
	FindByKey(ctx context.Context, key string) (*model.Lead, error)
	FindByPhone(ctx context.Context, phone string) (*model.Lead, error)
	List(ctx context.Context, filter LeadFilter) ([]model.Lead, error)

	// Funnel views
	CountByStage(ctx context.Context) (map[model.Stage]int, error)
	DedupKeys(ctx context.Context) (map[string]string, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Clear(ctx context.Context) error
	Close() error
}
