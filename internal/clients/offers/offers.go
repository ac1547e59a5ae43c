package offers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/pkg/errors"
	"net/http"
)

var ErrMissingOfferID = errors.New("backend response has no newOfferId")

type createOfferResponse struct {
	NewOfferID *int64 `json:"newOfferId"`
}

func (c *Client) GetOffers(ctx context.Context) ([]models.Offer, error) {
	var offers []models.Offer
	if err := c.getJSON(ctx, "offers", "/api/offers", &offers); err != nil {
		return nil, err
	}
	return offers, nil
}

// CreateOffer sends the draft as-is and returns the identifier assigned by the backend.
func (c *Client) CreateOffer(ctx context.Context, draft models.OfferDraft) (int64, error) {
	body, err := c.sendRequest(ctx, "create_offer", http.MethodPost, "/api/offers/", draft)
	if err != nil {
		return 0, err
	}

	var response createOfferResponse
	if err := json.NewDecoder(bytes.NewReader(body)).Decode(&response); err != nil {
		return 0, fmt.Errorf("error decoding JSON response: %w", err)
	}
	if response.NewOfferID == nil {
		return 0, ErrMissingOfferID
	}

	return *response.NewOfferID, nil
}
