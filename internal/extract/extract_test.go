package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirstEmail(t *testing.T) {
	deny := []string{"noreply", "example", "justdial"}

	text := "Contact noreply@acme.co or sales@acme.co for quotes"
	assert.Equal(t, "sales@acme.co", FirstEmail(text, deny))

	assert.Empty(t, FirstEmail("reach us at noreply@acme.co", deny))
	assert.Empty(t, FirstEmail("no contact details here", deny))
}

func TestFirstEmail_Lowercases(t *testing.T) {
	assert.Equal(t, "info@acme.co", FirstEmail("mail Info@Acme.Co today", nil))
}

func TestFirstPhone(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"call +919876543210 today", "9876543210"},
		{"call 09876543210 today", "9876543210"},
		{"mobile: 9876543210", "9876543210"},
		{"landline 2212345678 only", ""},
		{"no numbers", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FirstPhone(tt.text), tt.text)
	}
}

func TestTitle(t *testing.T) {
	html := `<html><head><title>Acme Fashions | Best Sarees in Surat</title></head></html>`
	assert.Equal(t, "Acme Fashions", Title(html))

	assert.Empty(t, Title("<html><body>no title</body></html>"))
}

func TestCleanTitle(t *testing.T) {
	assert.Equal(t, "Acme Fashions", CleanTitle("Acme Fashions - Justdial"))
	assert.Equal(t, "Acme Fashions", CleanTitle("Acme Fashions | Surat"))
	assert.Equal(t, "Jay-Bee Traders", CleanTitle("Jay-Bee Traders"))
}

func TestCity(t *testing.T) {
	assert.Equal(t, "Surat", City("textile supplier in surat, gujarat"))
	assert.Empty(t, City("somewhere else entirely"))
}

func TestFollowers(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"12K Followers, 340 Following, 89 Posts", 12000},
		{"1,234 followers on Instagram", 1234},
		{"10.5k followers", 10500},
		{"1.2M Followers", 1200000},
		{"our followers love us", 0},
		{"no audience mentioned", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Followers(tt.text), tt.text)
	}
}

func TestDenied(t *testing.T) {
	deny := []string{"indiamart", "noreply"}
	assert.True(t, Denied("seller@INDIAMART.com", deny))
	assert.False(t, Denied("owner@acme.in", deny))
	assert.False(t, Denied("owner@acme.in", nil))
}

func TestStripTags(t *testing.T) {
	assert.Equal(t, " hello  world ", StripTags("<b>hello</b> <i>world</i>"))
}

func TestPainSignals(t *testing.T) {
	html := `<html><body>Powered by Shopify. <script src="gtag.js"></script></body></html>`
	pain := PainSignals(html)

	assert.Contains(t, pain, "Shopify store needs SEO optimization")
	assert.NotContains(t, pain, "no Google Analytics on site")
	assert.Contains(t, pain, "no Facebook Pixel, missing retargeting")
}
