// Package form shapes raw form input into an offer draft.
//
// State is a value: every setter works on a copy and returns the new state,
// so a caller only observes a change once it replaces its own state.
package form

import (
	"errors"
	"github.com/maxaizer/offer-board/internal/domain/models"
	"math"
	"strconv"
	"strings"
	"time"
)

const defaultTimeInProgramText = "1.00"

var clock = time.Now

type State struct {
	Draft models.OfferDraft
	// GPAText and TimeInProgramText hold what the decimal inputs display.
	// They follow keystrokes and are normalized when the input is committed.
	GPAText           string
	TimeInProgramText string
	Error             string
	LastOfferID       *int64
}

func New() State {
	return State{
		Draft:             models.NewOfferDraft(clock()),
		TimeInProgramText: defaultTimeInProgramText,
	}
}

// Reset restores the defaults and clears the submit outcome.
func (s State) Reset() State {
	return New()
}

// SetText stores the value verbatim, an empty string stays empty.
func (s State) SetText(field Field, value string) (State, error) {
	target, err := textField(&s.Draft, field)
	if err != nil {
		return s, err
	}
	*target = value
	return s, nil
}

func (s State) SetFlag(field Field, raw string) (State, error) {
	target, err := flagField(&s.Draft, field)
	if err != nil {
		return s, err
	}

	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || (value != 0 && value != 1) {
		return s, newParseError(field, raw, "expected 0 or 1")
	}

	*target = value
	return s, nil
}

// SetOptionalInteger clears the field for empty input and otherwise stores a non-negative integer.
func (s State) SetOptionalInteger(field Field, raw string) (State, error) {
	target, err := integerField(&s.Draft, field)
	if err != nil {
		return s, err
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		*target = nil
		return s, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return s, newParseError(field, raw, "not an integer")
	}
	if value < 0 {
		return s, newParseError(field, raw, "must not be negative")
	}

	*target = &value
	return s, nil
}

// SetDisplayText updates the visible text of a decimal input without touching the draft.
func (s State) SetDisplayText(field Field, raw string) (State, error) {
	switch field {
	case GPA:
		s.GPAText = raw
	case TimeInProgram:
		s.TimeInProgramText = raw
	default:
		return s, unknownField(field, "decimal")
	}
	return s, nil
}

// SetOptionalDecimal commits a decimal input: the value is clamped into [min, max],
// rounded to two places and mirrored into the display text.
func (s State) SetOptionalDecimal(field Field, raw string, min, max float64) (State, error) {
	target, err := decimalField(&s.Draft, field)
	if err != nil {
		return s, err
	}

	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		*target = nil
		return s.SetDisplayText(field, "")
	}

	value, err := strconv.ParseFloat(trimmed, 64)
	if errors.Is(err, strconv.ErrRange) && math.IsInf(value, 0) {
		// out of float64 range, the clamp below still applies
		err = nil
	}
	if err != nil || math.IsNaN(value) {
		return s, newParseError(field, raw, "not a number")
	}

	text := strconv.FormatFloat(math.Max(min, math.Min(value, max)), 'f', 2, 64)
	rounded, _ := strconv.ParseFloat(text, 64)

	*target = &rounded
	return s.SetDisplayText(field, text)
}

// CommitDecimal is SetOptionalDecimal with the field's own bounds.
func (s State) CommitDecimal(field Field, raw string) (State, error) {
	bounds, ok := DecimalFields[field]
	if !ok {
		return s, unknownField(field, "decimal")
	}
	return s.SetOptionalDecimal(field, raw, bounds.Min, bounds.Max)
}

// SetDate stores the UTC calendar date, a cleared date falls back to today.
func (s State) SetDate(date *time.Time) State {
	if date == nil {
		s.Draft.OfferDate = models.FormatDate(clock())
		return s
	}
	s.Draft.OfferDate = models.FormatDate(*date)
	return s
}

// SetReference stores a reference id. The N/A sentinel and empty input clear it.
func (s State) SetReference(field Field, idOrSentinel string) (State, error) {
	target, err := referenceField(&s.Draft, field)
	if err != nil {
		return s, err
	}

	raw := strings.TrimSpace(idOrSentinel)
	if raw == models.NotApplicable || raw == "" {
		*target = nil
		return s, nil
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return s, newParseError(field, idOrSentinel, "not a reference id")
	}

	*target = &id
	return s, nil
}

// DisplayInteger renders an optional integer field for its text input.
func DisplayInteger(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

// DisplayReference renders an optional reference id the way a selector reports it.
func DisplayReference(value *int64) string {
	if value == nil {
		return models.NotApplicable
	}
	return strconv.FormatInt(*value, 10)
}
