package config

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

var (
	typeKeyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
	colourPattern  = regexp.MustCompile(`^#([0-9A-Fa-f]{3}|[0-9A-Fa-f]{6})$`)
)

// TypeDefinition is one article type declared in a model file.
type TypeDefinition struct {
	Key          string
	Name         string
	Description  string
	Abbreviation string
	Colour       string
	Links        []LinkDefinition
}

// LinkDefinition is one link type declared under an article type.
type LinkDefinition struct {
	Key               string
	OriginName        string
	OriginDescription string
	TargetName        string
	TargetDescription string
	TargetShow        bool
}

// Validate checks a type definition and its links.
func (t TypeDefinition) Validate() error {
	return validation.ValidateStruct(&t,
		validation.Field(&t.Key, validation.Required, validation.Match(typeKeyPattern)),
		validation.Field(&t.Name, validation.Required),
		validation.Field(&t.Colour, validation.Required, validation.Match(colourPattern)),
		validation.Field(&t.Links),
	)
}

// Validate checks a link definition.
func (l LinkDefinition) Validate() error {
	return validation.ValidateStruct(&l,
		validation.Field(&l.Key, validation.Required, validation.Match(typeKeyPattern)),
		validation.Field(&l.OriginName, validation.Required),
		validation.Field(&l.TargetName, validation.Required),
	)
}
