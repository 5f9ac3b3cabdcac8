package onboarding

import (
	"unicode/utf8"

	"github.com/okian/artistly/internal/domain/vocab"
)

const (
	MinNameLength = 2
	MinBioLength  = 50
	MaxBioLength  = 500

	// SelectionWarning is shown when step 2 is missing a category or a language.
	SelectionWarning = "Please select at least one category and one language"
)

// Field names used in FieldError and Set.
const (
	FieldName       = "name"
	FieldBio        = "bio"
	FieldCategories = "categories"
	FieldLanguages  = "languages"
	FieldFeeRange   = "feeRange"
	FieldLocation   = "location"
	FieldImage      = "image"
)

// validateStep checks the fields owned by step. Step 4 owns none.
func (f *Form) validateStep(step Step) *ValidationError {
	var fields []FieldError
	add := func(field, msg string) { fields = append(fields, FieldError{Field: field, Message: msg}) }
	warning := ""

	switch step {
	case StepPersonal:
		if utf8.RuneCountInString(f.name) < MinNameLength {
			add(FieldName, "Name must be at least 2 characters")
		}
		switch n := utf8.RuneCountInString(f.bio); {
		case n < MinBioLength:
			add(FieldBio, "Bio must be at least 50 characters")
		case n > MaxBioLength:
			add(FieldBio, "Bio must be at most 500 characters")
		}
	case StepSkills:
		if len(f.categories) == 0 {
			add(FieldCategories, "Please select at least one category")
		}
		if len(f.languages) == 0 {
			add(FieldLanguages, "Please select at least one language")
		}
		if len(fields) > 0 {
			warning = SelectionWarning
		}
	case StepPricing:
		f.checkChoice(vocab.FacetFeeRange, f.feeRange, FieldFeeRange, "fee range", add)
		f.checkChoice(vocab.FacetLocation, f.location, FieldLocation, "location", add)
	}

	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Step: step, Fields: fields, Warning: warning}
}

func (f *Form) checkChoice(facet vocab.Facet, value, field, label string, add func(string, string)) {
	switch {
	case value == "":
		add(field, "Please select a "+label)
	case f.vocab != nil && !f.vocab.Has(facet, value):
		add(field, "Please select a valid "+label)
	}
}
