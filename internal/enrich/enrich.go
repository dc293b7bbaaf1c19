// Package enrich fills missing contact details on stored leads by running a
// cascade of providers, cheapest first. The cascade stops as soon as the lead
// has both a phone number and an email address.
package enrich

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/normalize"
)

// Field names a contact attribute a provider can supply.
type Field string

const (
	FieldPhone   Field = "phone"
	FieldEmail   Field = "email"
	FieldWebsite Field = "website"
)

// Patch carries the values a provider found. Empty fields mean "nothing".
type Patch struct {
	Phone   string
	Email   string
	Website string
}

// Provider looks up missing contact details for one lead.
type Provider interface {
	Name() string
	// Fields lists what this provider can supply. A provider is skipped
	// when the lead already has values for all of its fields.
	Fields() []Field
	Lookup(ctx context.Context, lead *model.Lead) (Patch, error)
}

// Cascade runs providers in order against a single lead.
type Cascade struct {
	providers []Provider
	timeout   time.Duration
}

// NewCascade creates a Cascade with a per-provider timeout.
func NewCascade(timeout time.Duration, providers ...Provider) *Cascade {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Cascade{providers: providers, timeout: timeout}
}

// Enrich mutates the lead in place. Providers whose fields are already
// filled are skipped; a failing provider is logged and the cascade moves on.
// Reports whether any field changed.
func (c *Cascade) Enrich(ctx context.Context, lead *model.Lead) bool {
	changed := false

	for _, p := range c.providers {
		if satisfied(lead) {
			break
		}
		if !needs(lead, p.Fields()) {
			continue
		}

		pctx, cancel := context.WithTimeout(ctx, c.timeout)
		patch, err := p.Lookup(pctx, lead)
		cancel()
		if err != nil {
			zap.L().Warn("enrichment provider failed",
				zap.String("provider", p.Name()),
				zap.String("company", lead.Company),
				zap.Error(err),
			)
			continue
		}

		if apply(lead, patch) {
			changed = true
			zap.L().Debug("provider filled fields",
				zap.String("provider", p.Name()),
				zap.String("company", lead.Company),
			)
		}
	}

	if deriveWhatsApp(lead) {
		changed = true
	}
	return changed
}

// satisfied reports whether the cascade's goal is met.
func satisfied(l *model.Lead) bool {
	return l.Phone != "" && l.Email != ""
}

// needs reports whether the lead is missing any of the provider's fields.
func needs(l *model.Lead, fields []Field) bool {
	for _, f := range fields {
		switch f {
		case FieldPhone:
			if l.Phone == "" {
				return true
			}
		case FieldEmail:
			if l.Email == "" {
				return true
			}
		case FieldWebsite:
			if l.Website == "" {
				return true
			}
		}
	}
	return false
}

// apply fills empty lead fields from the patch. Phone values are re-validated
// so a provider can never write a malformed number.
func apply(l *model.Lead, p Patch) bool {
	changed := false
	if l.Phone == "" && p.Phone != "" {
		if phone := normalize.Phone(p.Phone); phone != "" {
			l.Phone = phone
			changed = true
		}
	}
	if l.Email == "" && p.Email != "" {
		l.Email = p.Email
		changed = true
	}
	if l.Website == "" && p.Website != "" {
		l.Website = p.Website
		changed = true
	}
	return changed
}

// deriveWhatsApp synthesizes the wa.me link from a known phone number.
func deriveWhatsApp(l *model.Lead) bool {
	if l.Phone == "" || l.WhatsAppURL != "" {
		return false
	}
	l.WhatsAppURL = "https://wa.me/91" + l.Phone
	return true
}
