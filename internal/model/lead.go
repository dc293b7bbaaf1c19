// Package model defines the Lead record and its funnel stage machine.
package model

import (
	"strings"
	"time"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Lead is a candidate business contact tracked through the sales funnel.
type Lead struct {
	ID          string   `json:"id"`
	Company     string   `json:"company"`
	Name        string   `json:"name"`
	Website     string   `json:"website,omitempty"`
	Phone       string   `json:"phone,omitempty"` // 10-digit subscriber number when set
	Email       string   `json:"email,omitempty"`
	City        string   `json:"city,omitempty"`
	Source      string   `json:"source"`
	Category    string   `json:"category,omitempty"`
	JobTitle    string   `json:"job_title,omitempty"`
	LinkedInURL string   `json:"linkedin_url,omitempty"`
	WhatsAppURL string   `json:"whatsapp_url,omitempty"` // derived from Phone, never scraped
	SEOScore    *int     `json:"seo_score,omitempty"`
	SpeedScore  *int     `json:"pagespeed_score,omitempty"`
	PainPoints  []string `json:"pain_points"`
	Followers   int      `json:"followers,omitempty"`
	Stage       Stage    `json:"stage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DedupKey returns the canonical identity key used to merge duplicate
// candidates: the NFKC-normalized, lower-cased, whitespace-collapsed company
// name, falling back to the contact name when company is empty.
func (l *Lead) DedupKey() string {
	base := l.Company
	if strings.TrimSpace(base) == "" {
		base = l.Name
	}
	return NormalizeKey(base)
}

// NormalizeKey canonicalizes a company/name string for deduplication.
func NormalizeKey(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ToLower(s)
	fields := strings.FieldsFunc(s, unicode.IsSpace)
	return strings.Join(fields, " ")
}

// HasContact reports whether the lead is reachable on any channel.
func (l *Lead) HasContact() bool {
	return l.Phone != "" || l.Email != ""
}

// Hotness is the combined pain score used to prioritize outreach.
// Missing scores count as 100 (no known pain); lower is hotter.
func (l *Lead) Hotness() int {
	score := func(p *int) int {
		if p == nil {
			return 100
		}
		return *p
	}
	return score(l.SEOScore) + score(l.SpeedScore)
}
