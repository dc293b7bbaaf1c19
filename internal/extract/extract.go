// Package extract pulls contact details and business signals out of raw
// HTML and search-result snippets.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	emailPattern = regexp.MustCompile(`[\w.+-]+@[\w-]+\.[a-zA-Z]{2,}`)
	phonePattern = regexp.MustCompile(`(?:\+91|0)?([6-9]\d{9})`)
	titlePattern = regexp.MustCompile(`(?is)<title[^>]*>([^<]+)</title>`)
	tagPattern   = regexp.MustCompile(`<[^>]+>`)
	linkPattern  = regexp.MustCompile(`href=["']?(https?://[^\s"'<>]+)["']?`)

	// Dashes only split with surrounding space so hyphenated names survive.
	titleSuffix = regexp.MustCompile(`(?:\s*\|.*|\s+[–—-]\s.*)$`)

	analyticsPattern = regexp.MustCompile(`google-analytics|gtag|ga\.js`)
	pixelPattern     = regexp.MustCompile(`fbq|facebook.*pixel`)

	followerPattern = regexp.MustCompile(`(?i)([\d,]+(?:\.\d+)?)\s*([km]?)\s+followers`)
)

// knownCities is the detection list for Indian metro areas, checked in order.
var knownCities = []string{
	"Mumbai", "Delhi", "Bangalore", "Bengaluru", "Hyderabad", "Chennai",
	"Kolkata", "Pune", "Ahmedabad", "Surat", "Jaipur", "Lucknow",
	"Noida", "Gurugram", "Gurgaon", "Indore", "Bhopal",
}

// Emails returns all email-shaped strings in the text, in order.
func Emails(text string) []string {
	return emailPattern.FindAllString(text, -1)
}

// FirstEmail returns the first email in text that passes the deny filter
// and is short enough to be a real address, or "".
func FirstEmail(text string, deny []string) string {
	for _, e := range Emails(text) {
		if len(e) >= 60 {
			continue
		}
		if Denied(e, deny) {
			continue
		}
		return strings.ToLower(e)
	}
	return ""
}

// FirstPhone returns the first 10-digit Indian subscriber number in text,
// stripped of any +91/0 prefix, or "".
func FirstPhone(text string) string {
	m := phonePattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// Followers parses an audience count like "12K Followers" or "1,234
// followers" out of a profile snippet. Returns 0 when none is present.
func Followers(text string) int {
	m := followerPattern.FindStringSubmatch(text)
	if m == nil {
		return 0
	}
	n, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
	if err != nil {
		return 0
	}
	switch strings.ToLower(m[2]) {
	case "k":
		n *= 1_000
	case "m":
		n *= 1_000_000
	}
	return int(n)
}

// Denied reports whether the value contains any deny-list entry
// (case-insensitive substring match).
func Denied(value string, deny []string) bool {
	v := strings.ToLower(value)
	for _, d := range deny {
		if d == "" {
			continue
		}
		if strings.Contains(v, strings.ToLower(d)) {
			return true
		}
	}
	return false
}

// Title extracts the page title with any "| Brand" style suffix removed.
func Title(html string) string {
	m := titlePattern.FindStringSubmatch(html)
	if m == nil {
		return ""
	}
	return CleanTitle(m[1])
}

// CleanTitle strips the "| Site" or "- City" style suffix search engines and
// directories append to business names.
func CleanTitle(title string) string {
	title = strings.TrimSpace(title)
	return strings.TrimSpace(titleSuffix.ReplaceAllString(title, ""))
}

// City returns the first known Indian city mentioned in the text, or "".
func City(text string) string {
	lower := strings.ToLower(text)
	for _, c := range knownCities {
		if strings.Contains(lower, strings.ToLower(c)) {
			return c
		}
	}
	return ""
}

// Links returns all absolute http(s) hrefs in the HTML.
func Links(html string) []string {
	var out []string
	for _, m := range linkPattern.FindAllStringSubmatch(html, -1) {
		out = append(out, m[1])
	}
	return out
}

// StripTags replaces HTML tags with spaces so regex extraction does not
// glue adjacent text nodes together.
func StripTags(html string) string {
	return tagPattern.ReplaceAllString(html, " ")
}

// PainSignals inspects a page body for weaknesses worth pitching against.
// At most normalize.MaxPainPoints entries are kept by the caller.
func PainSignals(html string) []string {
	lower := strings.ToLower(html)
	var pain []string

	if strings.Contains(lower, "myshopify") || strings.Contains(lower, "shopify") {
		pain = append(pain, "Shopify store needs SEO optimization")
	}
	if strings.Contains(lower, "woocommerce") {
		pain = append(pain, "WooCommerce store needs SEO optimization")
	}
	if !analyticsPattern.MatchString(lower) {
		pain = append(pain, "no Google Analytics on site")
	}
	if !pixelPattern.MatchString(lower) {
		pain = append(pain, "no Facebook Pixel, missing retargeting")
	}
	if !strings.Contains(lower, "schema.org") && !strings.Contains(lower, "application/ld+json") {
		pain = append(pain, "no schema markup, poor SEO structure")
	}
	return pain
}
