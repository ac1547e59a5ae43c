package form

import (
	"fmt"
	"github.com/maxaizer/offer-board/internal/domain/models"
)

// Field names match the JSON names of models.OfferDraft.
type Field string

const (
	UserName          Field = "userName"
	OfferDate         Field = "offerDate"
	PersonalProject   Field = "personalProject"
	Returnship        Field = "returnship"
	SWEPosition       Field = "swePosition"
	BigTechOffer      Field = "bigTechOffer"
	TimeInProgram     Field = "timeInProgram"
	GPA               Field = "gpa"
	Salary            Field = "salary"
	AgeOfCandidate    Field = "ageOfCandidate"
	IDOfferSource     Field = "idOfferSource"
	IDOfficeLocation  Field = "idOfficeLocation"
	IDWorkArrangement Field = "idWorkArrangement"
	IDPriorExperience Field = "idPriorExperience"
	IDPreviousDegree  Field = "idPreviousDegree"
)

var (
	TextFields      = []Field{UserName, OfferDate}
	FlagFields      = []Field{PersonalProject, Returnship, SWEPosition, BigTechOffer}
	IntegerFields   = []Field{Salary, AgeOfCandidate}
	ReferenceFields = []Field{IDOfficeLocation, IDOfferSource, IDWorkArrangement, IDPriorExperience, IDPreviousDegree}
)

// DecimalBounds holds the clamp range of a decimal field.
type DecimalBounds struct {
	Min float64
	Max float64
}

var DecimalFields = map[Field]DecimalBounds{
	GPA:           {Min: 0, Max: 4},
	TimeInProgram: {Min: 0, Max: 1},
}

// ReferenceField maps a reference source to the draft field it fills.
func ReferenceField(source models.ReferenceSource) Field {
	return Field(source.IDField)
}

func textField(d *models.OfferDraft, field Field) (*string, error) {
	switch field {
	case UserName:
		return &d.UserName, nil
	case OfferDate:
		return &d.OfferDate, nil
	}
	return nil, unknownField(field, "text")
}

func flagField(d *models.OfferDraft, field Field) (*int, error) {
	switch field {
	case PersonalProject:
		return &d.PersonalProject, nil
	case Returnship:
		return &d.Returnship, nil
	case SWEPosition:
		return &d.SWEPosition, nil
	case BigTechOffer:
		return &d.BigTechOffer, nil
	}
	return nil, unknownField(field, "flag")
}

func integerField(d *models.OfferDraft, field Field) (**int, error) {
	switch field {
	case Salary:
		return &d.Salary, nil
	case AgeOfCandidate:
		return &d.AgeOfCandidate, nil
	}
	return nil, unknownField(field, "integer")
}

func decimalField(d *models.OfferDraft, field Field) (**float64, error) {
	switch field {
	case GPA:
		return &d.GPA, nil
	case TimeInProgram:
		return &d.TimeInProgram, nil
	}
	return nil, unknownField(field, "decimal")
}

func referenceField(d *models.OfferDraft, field Field) (**int64, error) {
	switch field {
	case IDOfferSource:
		return &d.IDOfferSource, nil
	case IDOfficeLocation:
		return &d.IDOfficeLocation, nil
	case IDWorkArrangement:
		return &d.IDWorkArrangement, nil
	case IDPriorExperience:
		return &d.IDPriorExperience, nil
	case IDPreviousDegree:
		return &d.IDPreviousDegree, nil
	}
	return nil, unknownField(field, "reference")
}

func unknownField(field Field, kind string) error {
	return fmt.Errorf("%s is not a %s field", field, kind)
}
