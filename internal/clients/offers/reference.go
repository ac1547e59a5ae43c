package offers

import (
	"context"
	"github.com/maxaizer/offer-board/internal/domain/models"
)

// GetReferenceItems fetches a reference list such as /api/office-locations/.
func (c *Client) GetReferenceItems(ctx context.Context, path string) ([]models.ReferenceItem, error) {
	var items []models.ReferenceItem
	if err := c.getJSON(ctx, "reference:"+path, path, &items); err != nil {
		return nil, err
	}
	return items, nil
}
