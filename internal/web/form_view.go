package web

import (
	"errors"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"github.com/maxaizer/offer-board/internal/form"
	"github.com/maxaizer/offer-board/internal/selector"
	"net/url"
	"time"
)

type flagInput struct {
	Field form.Field
	ID    string
	Label string
	Hint  string
	Value int
}

type referenceInput struct {
	Field    form.Field
	ID       string
	Label    string
	Options  []string
	Selected string
	Loading  bool
}

type formPage struct {
	page
	Draft             models.OfferDraft
	Salary            string
	AgeOfCandidate    string
	GPAText           string
	TimeInProgramText string
	Flags             []flagInput
	References        []referenceInput
	Errors            map[form.Field]string
	SubmitError       string
	LastOfferID       *int64
}

var flagInputs = []flagInput{
	{Field: form.PersonalProject, ID: "projects", Label: "Projects", Hint: "Did they reference any personal projects in the interview?"},
	{Field: form.Returnship, ID: "returnship", Label: "Returnship", Hint: "Did they receive the offer as a result of a return offer from an internship?"},
	{Field: form.SWEPosition, ID: "swe-position", Label: "SWE Position", Hint: "Was the offer for a software development position?"},
	{Field: form.BigTechOffer, ID: "big-tech-offer", Label: "Big Tech", Hint: "Was the offer from a big tech company (FAANG)?"},
}

func newFormPage(path string, state form.State, selectors selector.Set, fieldErrors map[form.Field]string) formPage {
	draft := state.Draft

	flags := make([]flagInput, 0, len(flagInputs))
	for _, input := range flagInputs {
		input.Value = flagValue(draft, input.Field)
		flags = append(flags, input)
	}

	references := make([]referenceInput, 0, len(models.ReferenceSources))
	for _, source := range models.ReferenceSources {
		field := form.ReferenceField(source)
		s := selectors[source.IDField]
		references = append(references, referenceInput{
			Field:    field,
			ID:       string(source.Kind),
			Label:    source.Label,
			Options:  s.Options(),
			Selected: s.LabelFor(form.DisplayReference(referenceValue(draft, field))),
			Loading:  s.Loading(),
		})
	}

	return formPage{
		page:              page{Title: "Add Offer", Path: path},
		Draft:             draft,
		Salary:            form.DisplayInteger(draft.Salary),
		AgeOfCandidate:    form.DisplayInteger(draft.AgeOfCandidate),
		GPAText:           state.GPAText,
		TimeInProgramText: state.TimeInProgramText,
		Flags:             flags,
		References:        references,
		Errors:            fieldErrors,
		SubmitError:       state.Error,
		LastOfferID:       state.LastOfferID,
	}
}

// applyForm runs every posted field through its reducer. Fields that fail to
// parse keep their previous value and are reported by field name. Reference
// choices are skipped when their list did not load.
func applyForm(state form.State, values url.Values, selectors selector.Set) (form.State, map[form.Field]string) {
	fieldErrors := make(map[form.Field]string)
	apply := func(field form.Field, update func(raw string) (form.State, error)) {
		if _, posted := values[string(field)]; !posted {
			return
		}
		next, err := update(values.Get(string(field)))
		if err != nil {
			fieldErrors[field] = fieldErrorMessage(err)
			return
		}
		state = next
	}

	apply(form.UserName, func(raw string) (form.State, error) { return state.SetText(form.UserName, raw) })

	apply(form.OfferDate, func(raw string) (form.State, error) {
		if raw == "" {
			return state.SetDate(nil), nil
		}
		date, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return state, errors.New("expected a date like 2024-05-31")
		}
		return state.SetDate(&date), nil
	})

	for _, field := range form.FlagFields {
		apply(field, func(raw string) (form.State, error) { return state.SetFlag(field, raw) })
	}

	for _, field := range form.IntegerFields {
		apply(field, func(raw string) (form.State, error) { return state.SetOptionalInteger(field, raw) })
	}

	for field := range form.DecimalFields {
		apply(field, func(raw string) (form.State, error) {
			typed, err := state.SetDisplayText(field, raw)
			if err != nil {
				return state, err
			}
			committed, err := typed.CommitDecimal(field, raw)
			if err != nil {
				// the typed text stays visible so it can be corrected
				state = typed
			}
			return committed, err
		})
	}

	for _, source := range models.ReferenceSources {
		field := form.ReferenceField(source)
		s := selectors[source.IDField]
		if !s.Ready() {
			// labels can't be resolved without the list, the stored id stays
			continue
		}
		apply(field, func(label string) (form.State, error) { return state.SetReference(field, s.Select(label)) })
	}

	return state, fieldErrors
}

func fieldErrorMessage(err error) string {
	var parseErr *form.ParseError
	if errors.As(err, &parseErr) {
		return parseErr.Reason
	}
	return err.Error()
}

func flagValue(draft models.OfferDraft, field form.Field) int {
	switch field {
	case form.PersonalProject:
		return draft.PersonalProject
	case form.Returnship:
		return draft.Returnship
	case form.SWEPosition:
		return draft.SWEPosition
	case form.BigTechOffer:
		return draft.BigTechOffer
	}
	return 0
}

func referenceValue(draft models.OfferDraft, field form.Field) *int64 {
	switch field {
	case form.IDOfferSource:
		return draft.IDOfferSource
	case form.IDOfficeLocation:
		return draft.IDOfficeLocation
	case form.IDWorkArrangement:
		return draft.IDWorkArrangement
	case form.IDPriorExperience:
		return draft.IDPriorExperience
	case form.IDPreviousDegree:
		return draft.IDPreviousDegree
	}
	return nil
}
