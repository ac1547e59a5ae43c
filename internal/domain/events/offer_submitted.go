package events

import "github.com/maxaizer/offer-board/internal/domain/models"

var OfferSubmittedTopic = "OfferSubmittedEvent"

type OfferSubmitted struct {
	OfferID int64
	Draft   models.OfferDraft
}
