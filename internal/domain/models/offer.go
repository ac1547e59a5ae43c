package models

import (
	"encoding/json"
	"github.com/go-playground/validator/v10"
	"time"
)

const DateLayout = "2006-01-02"

var draftValidator = validator.New()

// OfferDraft is a not yet submitted full-time offer. Nil pointers are sent as JSON null.
type OfferDraft struct {
	UserName          string   `json:"userName" validate:"required"`
	OfferDate         string   `json:"offerDate" validate:"required,datetime=2006-01-02"`
	PersonalProject   int      `json:"personalProject" validate:"oneof=0 1"`
	Returnship        int      `json:"returnship" validate:"oneof=0 1"`
	TimeInProgram     *float64 `json:"timeInProgram" validate:"omitempty,gte=0,lte=1"`
	Salary            *int     `json:"salary" validate:"omitempty,gte=0"`
	GPA               *float64 `json:"gpa" validate:"omitempty,gte=0,lte=4"`
	SWEPosition       int      `json:"swePosition" validate:"oneof=0 1"`
	BigTechOffer      int      `json:"bigTechOffer" validate:"oneof=0 1"`
	AgeOfCandidate    *int     `json:"ageOfCandidate" validate:"omitempty,gte=0"`
	IDOfferSource     *int64   `json:"idOfferSource"`
	IDOfficeLocation  *int64   `json:"idOfficeLocation"`
	IDWorkArrangement *int64   `json:"idWorkArrangement"`
	IDPriorExperience *int64   `json:"idPriorExperience"`
	IDPreviousDegree  *int64   `json:"idPreviousDegree"`
}

func NewOfferDraft(today time.Time) OfferDraft {
	timeInProgram := 1.0
	return OfferDraft{
		OfferDate:     FormatDate(today),
		TimeInProgram: &timeInProgram,
		SWEPosition:   1,
	}
}

// Validate reports draft values outside their documented domain.
func (d OfferDraft) Validate() error {
	return draftValidator.Struct(d)
}

// FormatDate uses the UTC calendar date so a local offset never shifts the day.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// Offer is a stored offer as returned by the backend. Only the count is used by the views.
type Offer = json.RawMessage
