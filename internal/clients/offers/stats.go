package offers

import (
	"context"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/pkg/errors"
	"net/url"
	"strconv"
)

var ErrNoAverage = errors.New("backend returned no average")

type averageSalaryResponse struct {
	Average *float64 `json:"average"`
}

type salaryGroupsResponse struct {
	SalariesByGroup []models.SalaryGroup `json:"salariesByGroup"`
}

// GetAverageSalary returns the average salary, limited to salaries up to max when it is set.
func (c *Client) GetAverageSalary(ctx context.Context, max *int) (float64, error) {
	path := "/api/offers/salaries/average"
	if max != nil {
		params := url.Values{}
		params.Add("max", strconv.Itoa(*max))
		path += "?" + params.Encode()
	}

	var response averageSalaryResponse
	if err := c.getJSON(ctx, "average_salary", path, &response); err != nil {
		return 0, err
	}
	if response.Average == nil {
		return 0, ErrNoAverage
	}
	return *response.Average, nil
}

func (c *Client) GetSalaryGroups(ctx context.Context) ([]models.SalaryGroup, error) {
	var response salaryGroupsResponse
	if err := c.getJSON(ctx, "salary_groups", "/api/offers/salaries/groups", &response); err != nil {
		return nil, err
	}
	return response.SalariesByGroup, nil
}
