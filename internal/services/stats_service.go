package services

import (
	"context"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/logger"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"math"
)

type statsSource interface {
	GetOffers(ctx context.Context) ([]models.Offer, error)
	GetAverageSalary(ctx context.Context, max *int) (float64, error)
	GetSalaryGroups(ctx context.Context) ([]models.SalaryGroup, error)
}

// Dashboard is what the "View Data" page shows, already formatted.
type Dashboard struct {
	TotalOffers           string
	AverageSalary         string
	NonFaangAverageSalary string
	SalaryGroups          []SalaryBar
}

type SalaryBar struct {
	Range string
	Count string
	// Percent is the bar length relative to the largest group.
	Percent int
}

type StatsService struct {
	source            statsSource
	nonFaangSalaryCap int
}

func NewStatsService(source statsSource, nonFaangSalaryCap int) (*StatsService, error) {
	if source == nil {
		return nil, errors.New("stats source is nil")
	}
	if nonFaangSalaryCap <= 0 {
		return nil, errors.New("non FAANG salary cap must be greater than zero")
	}
	return &StatsService{source: source, nonFaangSalaryCap: nonFaangSalaryCap}, nil
}

// Dashboard collects the dashboard figures. An unavailable average is shown as N/A,
// any other failure is returned.
func (s *StatsService) Dashboard(ctx context.Context) (*Dashboard, error) {

	offers, err := s.source.GetOffers(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't get offers: %w", err)
	}

	groups, err := s.source.GetSalaryGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("couldn't get salary groups: %w", err)
	}

	salaryCap := s.nonFaangSalaryCap
	return &Dashboard{
		TotalOffers:           humanize.Comma(int64(len(offers))),
		AverageSalary:         s.average(ctx, nil),
		NonFaangAverageSalary: s.average(ctx, &salaryCap),
		SalaryGroups:          salaryBars(groups),
	}, nil
}

func (s *StatsService) average(ctx context.Context, max *int) string {
	average, err := s.source.GetAverageSalary(ctx, max)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.WithField(logger.ErrorTypeField, logger.ErrorTypeBackendApi).
				Errorf("couldn't get average salary: %v", err)
		}
		return models.NotApplicable
	}
	return FormatUSD(average)
}

// FormatUSD renders an amount as whole US dollars, e.g. $123,457.
func FormatUSD(amount float64) string {
	rounded := int64(math.Round(amount))
	if rounded < 0 {
		return "-$" + humanize.Comma(-rounded)
	}
	return "$" + humanize.Comma(rounded)
}

func salaryBars(groups []models.SalaryGroup) []SalaryBar {
	largest := 0
	for _, group := range groups {
		largest = max(largest, group.Count)
	}

	bars := make([]SalaryBar, 0, len(groups))
	for _, group := range groups {
		percent := 0
		if largest > 0 {
			percent = group.Count * 100 / largest
		}
		bars = append(bars, SalaryBar{
			Range:   group.SalaryRange,
			Count:   humanize.Comma(int64(group.Count)),
			Percent: percent,
		})
	}
	return bars
}
