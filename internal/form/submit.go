package form

import (
	"context"
	"errors"
	"github.com/asaskevich/EventBus"
	"github.com/maxaizer/offer-board/internal/clients/offers"
	"github.com/maxaizer/offer-board/internal/domain/events"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/logger"
	"github.com/maxaizer/offer-board/internal/metrics"
	log "github.com/sirupsen/logrus"
)

type offerCreator interface {
	CreateOffer(ctx context.Context, draft models.OfferDraft) (int64, error)
}

// Submit sends the draft as it is. The draft itself never changes here:
// a failure only sets Error, a success only sets LastOfferID and clears Error.
func (s State) Submit(ctx context.Context, creator offerCreator) (State, error) {
	id, err := creator.CreateOffer(ctx, s.Draft)
	if err != nil {
		s.Error = submitErrorMessage(err)
		return s, err
	}

	s.LastOfferID = &id
	s.Error = ""
	return s, nil
}

func submitErrorMessage(err error) string {
	var statusErr *offers.StatusError
	if errors.As(err, &statusErr) {
		return "HTTP error, response not ok: " + statusErr.Body
	}
	return err.Error()
}

// Submitter submits drafts and announces accepted offers on the bus.
type Submitter struct {
	creator offerCreator
	bus     EventBus.Bus
}

func NewSubmitter(creator offerCreator, bus EventBus.Bus) (*Submitter, error) {
	if creator == nil {
		return nil, errors.New("offer creator is nil")
	}
	if bus == nil {
		return nil, errors.New("bus is nil")
	}
	return &Submitter{creator: creator, bus: bus}, nil
}

func (s *Submitter) Submit(ctx context.Context, state State) State {

	if err := state.Draft.Validate(); err != nil {
		log.Warnf("submitting draft outside its documented domain: %v", err)
	}

	next, err := state.Submit(ctx, s.creator)
	if err != nil {
		metrics.FailedSubmitsCounter.Inc()
		log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
			Errorf("an error occurred while submitting offer: %v", err)
		return next
	}

	metrics.SubmittedOffersCounter.Inc()
	log.Infof("offer %d submitted", *next.LastOfferID)
	s.bus.Publish(events.OfferSubmittedTopic, events.OfferSubmitted{OfferID: *next.LastOfferID, Draft: next.Draft})
	return next
}
