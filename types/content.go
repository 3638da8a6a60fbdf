/*
# Module: types/content.go
Normalized content input union consumed by the content generator and cache.

## Linked Modules
- [types/location](./location.go) - Location value type
- [types/poi](./poi.go) - POI categories

## Tags
data-types, content, validation

## Exports
ContentInput, StructuredPOI, ContentStyle, NewDescriptionInput, NewStructuredInput, ParseContentInput, StyleForCategory, ErrInvalidContentInput

<!-- LinkedDoc RDF -->
@prefix code: <https://schema.codedoc.org/> .
<this> a code:Module ;
    code:name "types/content.go" ;
    code:description "Normalized content input union consumed by the content generator and cache" ;
    code:linksTo [
        code:name "types/location" ;
        code:path "./location.go" ;
        code:relationship "Location value type"
    ], [
        code:name "types/poi" ;
        code:path "./poi.go" ;
        code:relationship "POI categories"
    ] ;
    code:exports :ContentInput, :StructuredPOI, :ContentStyle, :NewDescriptionInput, :NewStructuredInput, :ParseContentInput, :StyleForCategory, :ErrInvalidContentInput ;
    code:tags "data-types", "content", "validation" .
<!-- End LinkedDoc RDF -->
*/
package types

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidContentInput is returned for empty or ambiguous content payloads
var ErrInvalidContentInput = errors.New("invalid content input")

// ContentStyle selects the narrative voice of a story
type ContentStyle string

const (
	StyleHistorical    ContentStyle = "historical"
	StyleCultural      ContentStyle = "cultural"
	StyleNature        ContentStyle = "nature"
	StyleArchitectural ContentStyle = "architectural"
	StyleGeographical  ContentStyle = "geographical"
	StyleMixed         ContentStyle = "mixed"
)

// Valid reports whether s is a known style
func (s ContentStyle) Valid() bool {
	switch s {
	case StyleHistorical, StyleCultural, StyleNature, StyleArchitectural, StyleGeographical, StyleMixed:
		return true
	}
	return false
}

// StyleForCategory picks the narrative style that suits a POI category
func StyleForCategory(c POICategory) ContentStyle {
	switch c {
	case CategoryHistorical, CategoryReligious:
		return StyleHistorical
	case CategoryCultural, CategoryEntertainment:
		return StyleCultural
	case CategoryNatural:
		return StyleNature
	case CategoryArchitectural:
		return StyleArchitectural
	case CategoryGeographical:
		return StyleGeographical
	default:
		return StyleMixed
	}
}

// StructuredPOI is the POI-shaped variant of ContentInput
type StructuredPOI struct {
	Name         string      `json:"name"`
	Category     POICategory `json:"category"`
	Location     Location    `json:"location"`
	Description  string      `json:"description,omitempty"`
	Context      string      `json:"context,omitempty"`
	Significance float64     `json:"significance"`
}

// ContentInput holds exactly one of a free-text description or a structured POI.
// Fields are unexported so the invariant can only be established by the constructors.
type ContentInput struct {
	description string
	poi         *StructuredPOI
}

// NewDescriptionInput builds the free-text variant
func NewDescriptionInput(text string) (ContentInput, error) {
	if strings.TrimSpace(text) == "" {
		return ContentInput{}, fmt.Errorf("%w: description is empty", ErrInvalidContentInput)
	}
	return ContentInput{description: text}, nil
}

// NewStructuredInput builds the structured POI variant
func NewStructuredInput(poi StructuredPOI) (ContentInput, error) {
	if strings.TrimSpace(poi.Name) == "" {
		return ContentInput{}, fmt.Errorf("%w: structured POI has no name", ErrInvalidContentInput)
	}
	if poi.Category == "" {
		poi.Category = CategoryOther
	}
	if !poi.Category.Valid() {
		return ContentInput{}, fmt.Errorf("%w: unknown category %q", ErrInvalidContentInput, poi.Category)
	}
	if err := poi.Location.Validate(); err != nil {
		return ContentInput{}, fmt.Errorf("%w: %v", ErrInvalidContentInput, err)
	}
	return ContentInput{poi: &poi}, nil
}

// InputFromPOI converts a discovered POI into the structured variant
func InputFromPOI(p PointOfInterest) (ContentInput, error) {
	return NewStructuredInput(StructuredPOI{
		Name:         p.Name,
		Category:     p.Category,
		Location:     p.Location,
		Description:  p.Description,
		Context:      strings.Join(p.Metadata.SignificanceTags, ", "),
		Significance: p.Metadata.Significance,
	})
}

// IsDescription reports whether the free-text variant is populated
func (c ContentInput) IsDescription() bool {
	return c.poi == nil && c.description != ""
}

// IsZero reports whether neither variant is populated
func (c ContentInput) IsZero() bool {
	return c.poi == nil && c.description == ""
}

// Description returns the free-text variant, or "" for structured inputs
func (c ContentInput) Description() string {
	return c.description
}

// POI returns a copy of the structured variant
func (c ContentInput) POI() (StructuredPOI, bool) {
	if c.poi == nil {
		return StructuredPOI{}, false
	}
	return *c.poi, true
}

// Location returns the input's location when it has one
func (c ContentInput) Location() (Location, bool) {
	if c.poi == nil {
		return Location{}, false
	}
	return c.poi.Location, true
}

const labelRunes = 40

// Label is a short human-readable name for logs
func (c ContentInput) Label() string {
	if c.poi != nil {
		return c.poi.Name
	}
	if r := []rune(c.description); len(r) > labelRunes {
		return string(r[:labelRunes]) + "..."
	}
	return c.description
}

type contentInputJSON struct {
	Description *string        `json:"description,omitempty"`
	POI         *StructuredPOI `json:"poi,omitempty"`
}

// ParseContentInput decodes a raw JSON payload, rejecting empty and ambiguous ones
func ParseContentInput(data []byte) (ContentInput, error) {
	var raw contentInputJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return ContentInput{}, fmt.Errorf("%w: %v", ErrInvalidContentInput, err)
	}
	switch {
	case raw.Description != nil && raw.POI != nil:
		return ContentInput{}, fmt.Errorf("%w: both description and poi set", ErrInvalidContentInput)
	case raw.Description != nil:
		return NewDescriptionInput(*raw.Description)
	case raw.POI != nil:
		return NewStructuredInput(*raw.POI)
	default:
		return ContentInput{}, fmt.Errorf("%w: neither description nor poi set", ErrInvalidContentInput)
	}
}

// MarshalJSON writes whichever variant is populated
func (c ContentInput) MarshalJSON() ([]byte, error) {
	var raw contentInputJSON
	if c.poi != nil {
		raw.POI = c.poi
	} else if c.description != "" {
		raw.Description = &c.description
	}
	return json.Marshal(raw)
}

// UnmarshalJSON applies the same rules as ParseContentInput
func (c *ContentInput) UnmarshalJSON(data []byte) error {
	parsed, err := ParseContentInput(data)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
