// Package normalize converts raw source candidates into the canonical Lead
// shape: field length caps, phone normalization, pain-point cleanup.
package normalize

import (
	"regexp"
	"strings"
	"time"

	"github.com/nyaruka/phonenumbers"

	"github.com/ArunMS01/ai-sales/internal/model"
)

// Field length caps protect downstream storage from oversized scraped values.
const (
	MaxNameLen     = 200
	MaxCompanyLen  = 200
	MaxWebsiteLen  = 500
	MaxLinkedInLen = 500
	MaxRawPhoneLen = 50
	MaxEmailLen    = 200
	MaxCityLen     = 100
	MaxCategoryLen = 100
	MaxJobTitleLen = 200
	MaxPainPoints  = 3
)

// subscriberPattern matches a 10-digit Indian mobile subscriber number.
var subscriberPattern = regexp.MustCompile(`^[6-9]\d{9}$`)

var nonDigit = regexp.MustCompile(`\D`)

// Lead canonicalizes a candidate in place. Oversized string fields are
// truncated, the phone is reduced to a bare 10-digit subscriber number (or
// dropped if invalid), pain points are cleaned and capped, and timestamps
// and stage are defaulted. The record itself is never rejected; offending
// fields are dropped per the validation-error policy.
func Lead(l *model.Lead) {
	l.Name = truncate(strings.TrimSpace(l.Name), MaxNameLen)
	l.Company = truncate(strings.TrimSpace(l.Company), MaxCompanyLen)
	l.Website = truncate(strings.TrimSpace(l.Website), MaxWebsiteLen)
	l.LinkedInURL = truncate(strings.TrimSpace(l.LinkedInURL), MaxLinkedInLen)
	l.Email = truncate(strings.ToLower(strings.TrimSpace(l.Email)), MaxEmailLen)
	l.City = truncate(strings.TrimSpace(l.City), MaxCityLen)
	l.Category = truncate(strings.TrimSpace(l.Category), MaxCategoryLen)
	l.JobTitle = truncate(strings.TrimSpace(l.JobTitle), MaxJobTitleLen)

	l.Phone = Phone(truncate(l.Phone, MaxRawPhoneLen))

	l.PainPoints = CleanPainPoints(l.PainPoints)

	if l.Name == "" {
		l.Name = l.Company
	}
	if !model.ValidStage(l.Stage) {
		l.Stage = model.StageNew
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = time.Now().UTC()
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = l.CreatedAt
	}
	clampScore(&l.SEOScore)
	clampScore(&l.SpeedScore)
}

// Phone normalizes a raw phone string to a 10-digit Indian subscriber
// number. Formatting characters, the +91 country code and a leading zero
// are stripped. Returns "" when no valid subscriber number remains.
// Normalizing an already-normalized number is a no-op.
func Phone(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	digits := ""
	if parsed, err := phonenumbers.Parse(raw, "IN"); err == nil {
		digits = phonenumbers.GetNationalSignificantNumber(parsed)
	} else {
		digits = nonDigit.ReplaceAllString(raw, "")
		if len(digits) > 10 {
			digits = digits[len(digits)-10:]
		}
	}

	if !subscriberPattern.MatchString(digits) {
		return ""
	}
	return digits
}

// ValidPhone reports whether p is a normalized 10-digit subscriber number.
func ValidPhone(p string) bool {
	return subscriberPattern.MatchString(p)
}

// CleanPainPoints drops empty entries, trims the rest, and caps the list.
// The result is never nil.
func CleanPainPoints(points []string) []string {
	out := make([]string, 0, len(points))
	for _, p := range points {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
		if len(out) >= MaxPainPoints {
			break
		}
	}
	return out
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Scores outside 0-100 come from malformed provider payloads; drop them.
func clampScore(p **int) {
	if *p == nil {
		return
	}
	if v := **p; v < 0 || v > 100 {
		*p = nil
	}
}
