package outreach

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/ArunMS01/ai-sales/internal/model"
	"github.com/ArunMS01/ai-sales/internal/normalize"
	"github.com/ArunMS01/ai-sales/internal/store"
)

// Intent is the classified meaning of an inbound reply.
type Intent string

const (
	IntentInterested    Intent = "interested"
	IntentNotInterested Intent = "not_interested"
	IntentQuestion      Intent = "question"
	IntentUnknown       Intent = "unknown"
)

// Classifier derives the intent of an inbound reply.
type Classifier interface {
	Classify(ctx context.Context, text string) (Intent, error)
}

// KeywordClassifier is the default rule-based classifier. Negations are
// checked first so "not interested" never reads as interest.
type KeywordClassifier struct{}

var (
	negativeMarkers = []string{
		"not interested", "no thanks", "no thank", "stop", "unsubscribe",
		"don't contact", "do not contact", "remove me", "leave me",
	}
	positiveMarkers = []string{
		"interested", "yes", "sure", "tell me more", "sounds good",
		"call me", "let's talk", "share details", "send details",
	}
	questionMarkers = []string{
		"how much", "price", "cost", "what do you", "charges", "?",
	}
)

func (KeywordClassifier) Classify(_ context.Context, text string) (Intent, error) {
	lower := strings.ToLower(text)
	for _, m := range negativeMarkers {
		if strings.Contains(lower, m) {
			return IntentNotInterested, nil
		}
	}
	for _, m := range positiveMarkers {
		if strings.Contains(lower, m) {
			return IntentInterested, nil
		}
	}
	for _, m := range questionMarkers {
		if strings.Contains(lower, m) {
			return IntentQuestion, nil
		}
	}
	return IntentUnknown, nil
}

// Inbound routes replies back into the funnel.
type Inbound struct {
	store      store.Store
	classifier Classifier
}

// NewInbound creates an Inbound handler. A nil classifier falls back to the
// keyword rules.
func NewInbound(st store.Store, classifier Classifier) *Inbound {
	if classifier == nil {
		classifier = KeywordClassifier{}
	}
	return &Inbound{store: st, classifier: classifier}
}

// HandleReply matches the sender to a lead by phone and advances the stage
// when the intent justifies it: interest moves the lead to pitched, refusal
// closes it. Stage transitions that would move backwards are ignored.
func (h *Inbound) HandleReply(ctx context.Context, fromPhone, text string) (*model.Lead, Intent, error) {
	phone := normalize.Phone(fromPhone)
	if phone == "" {
		return nil, IntentUnknown, eris.Errorf("unusable sender number %q", fromPhone)
	}

	lead, err := h.store.FindByPhone(ctx, phone)
	if err != nil {
		return nil, IntentUnknown, eris.Wrap(err, "inbound: find lead")
	}
	if lead == nil {
		return nil, IntentUnknown, nil
	}

	intent, err := h.classifier.Classify(ctx, text)
	if err != nil {
		return lead, IntentUnknown, eris.Wrap(err, "inbound: classify")
	}

	var target model.Stage
	switch intent {
	case IntentInterested, IntentQuestion:
		target = model.StagePitched
	case IntentNotInterested:
		target = model.StageClosed
	default:
		return lead, intent, nil
	}

	if !model.CanTransition(lead.Stage, target) {
		zap.L().Debug("reply ignored, stage cannot advance",
			zap.String("company", lead.Company),
			zap.String("from", string(lead.Stage)),
			zap.String("to", string(target)),
		)
		return lead, intent, nil
	}
	if err := h.store.UpdateStage(ctx, lead.ID, target); err != nil {
		return lead, intent, eris.Wrap(err, "inbound: update stage")
	}
	lead.Stage = target

	zap.L().Info("reply advanced lead",
		zap.String("company", lead.Company),
		zap.String("intent", string(intent)),
		zap.String("stage", string(target)),
	)
	return lead, intent, nil
}
