package outreach

import (
	"fmt"
	"strings"

	"github.com/ArunMS01/ai-sales/internal/model"
)

// Composer builds the intro and follow-up copy for one lead.
type Composer struct {
	agency string
}

// NewComposer creates a Composer signing messages as the given agency.
func NewComposer(agency string) *Composer {
	if agency == "" {
		agency = "our digital growth team"
	}
	return &Composer{agency: agency}
}

// Intro builds the first-touch message, leading with the lead's most
// pitchable pain point when one is known.
func (c *Composer) Intro(lead *model.Lead) Message {
	greeting := lead.Name
	if greeting == "" {
		greeting = lead.Company
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Hi %s! ", greeting)
	if len(lead.PainPoints) > 0 {
		fmt.Fprintf(&b, "I had a look at %s online and noticed your %s. ", lead.Company, lead.PainPoints[0])
	} else {
		fmt.Fprintf(&b, "I came across %s while researching businesses in %s. ", lead.Company, orElse(lead.City, "your area"))
	}
	fmt.Fprintf(&b, "We're %s and we help businesses like yours get more customers online. ", c.agency)
	b.WriteString("Would you be open to a quick chat this week?")

	return Message{
		Subject: fmt.Sprintf("Quick idea for %s", lead.Company),
		Body:    b.String(),
	}
}

var followupBodies = []string{
	"Hi again! Just floating my earlier message back up. Would love to show you what we could do for %s. Any time this week work?",
	"Hi! I know things get busy. We recently helped a business similar to %s grow their online enquiries noticeably. Happy to share how, no strings attached.",
	"Last note from me! If growing %s online is ever a priority, just reply here and we'll pick it up. All the best either way.",
}

// FollowUp builds the message for the given follow-up round (1-based).
// Rounds past the configured copy reuse the final message.
func (c *Composer) FollowUp(lead *model.Lead, round int) Message {
	if round < 1 {
		round = 1
	}
	if round > len(followupBodies) {
		round = len(followupBodies)
	}
	return Message{
		Subject: fmt.Sprintf("Following up: %s", lead.Company),
		Body:    fmt.Sprintf(followupBodies[round-1], lead.Company),
	}
}

func orElse(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
