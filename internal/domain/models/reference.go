package models

import (
	"fmt"
	"strconv"
)

// NotApplicable is the selector value meaning "no reference selected".
const NotApplicable = "N/A"

// ReferenceItem is an externally owned lookup record. Only the display and id fields are interpreted.
type ReferenceItem map[string]any

// Field returns the named field as text. Numbers are printed without a fraction when integral.
func (r ReferenceItem) Field(name string) (string, bool) {
	value, ok := r[name]
	if !ok || value == nil {
		return "", false
	}

	switch v := value.(type) {
	case string:
		return v, true
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(v), true
	default:
		return fmt.Sprint(v), true
	}
}

type ReferenceKind string

const (
	OfficeLocations  ReferenceKind = "office-locations"
	OfferSources     ReferenceKind = "offer-sources"
	WorkArrangements ReferenceKind = "work-arrangements"
	PriorExperience  ReferenceKind = "previous-experiences"
	PreviousDegrees  ReferenceKind = "previous-degrees"
)

// ReferenceSource describes where a reference list lives and how its items are labeled.
type ReferenceSource struct {
	Kind         ReferenceKind
	Label        string
	DisplayField string
	IDField      string
}

func (s ReferenceSource) Path() string {
	return "/api/" + string(s.Kind) + "/"
}

var ReferenceSources = []ReferenceSource{
	{Kind: OfficeLocations, Label: "Office Location", DisplayField: "fullName", IDField: "idOfficeLocation"},
	{Kind: OfferSources, Label: "Offer Source", DisplayField: "type", IDField: "idOfferSource"},
	{Kind: WorkArrangements, Label: "Work Arrangement", DisplayField: "arrangement", IDField: "idWorkArrangement"},
	{Kind: PriorExperience, Label: "Prior Experience", DisplayField: "experienceType", IDField: "idPriorExperience"},
	{Kind: PreviousDegrees, Label: "Previous Degree", DisplayField: "degreeType", IDField: "idPreviousDegree"},
}
