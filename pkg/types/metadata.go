// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the shared domain model for biblioscope: canonical
// bibliographic metadata, query contexts, and configuration structs.
package types

// RecordType classifies a bibliographic record by its issuance.
type RecordType string

const (
	TypeBook     RecordType = "book"
	TypeVolume   RecordType = "volume"
	TypeDocument RecordType = "document"
)

// Person is one personal-name entry of a record. Family and Given may each
// be empty. ExternalID holds a GND number when the source carried a
// well-formed "(DE-588)" name identifier; empty means absent.
type Person struct {
	Family     string `json:"family" yaml:"family"`
	Given      string `json:"given" yaml:"given"`
	ExternalID string `json:"external_id,omitempty" yaml:"external_id,omitempty"`
}

// DisplayName returns the "Family, Given" form used for free-text person
// searches and authority cache entries.
func (p Person) DisplayName() string {
	return p.Family + ", " + p.Given
}

// Tags are the user-editable annotations on a stored record. FromAuthority
// marks records that were found through an identifier-based author search
// rather than a free-text one.
type Tags struct {
	IsFavorite    bool `json:"is_favorite" yaml:"is_favorite"`
	IsDeadEnd     bool `json:"is_dead_end" yaml:"is_dead_end"`
	FromAuthority bool `json:"from_authority" yaml:"from_authority"`
}

// Metadata is the canonical form of one catalog record.
type Metadata struct {
	// ID is the catalog identifier (PPN). Mandatory and stable across fetches.
	ID string `json:"id" yaml:"id"`

	// Type is derived from the record's issuance vocabulary; defaults to document.
	Type RecordType `json:"type" yaml:"type"`

	Title    string `json:"title" yaml:"title"`
	SubTitle string `json:"subtitle,omitempty" yaml:"subtitle,omitempty"`
	Year     string `json:"year,omitempty" yaml:"year,omitempty"`
	Edition  string `json:"edition,omitempty" yaml:"edition,omitempty"`

	// CoverURL and TOCURL hold the first matching labeled location link.
	CoverURL string `json:"cover_url,omitempty" yaml:"cover_url,omitempty"`
	TOCURL   string `json:"toc_url,omitempty" yaml:"toc_url,omitempty"`

	// Authors lists personal names in source order. Never empty: a record
	// without personal-name nodes carries a single zero-value Person.
	Authors []Person `json:"authors" yaml:"authors"`

	// Classifications and Subjects map authority codes to labels in
	// first-seen order. Stored codes are never remapped here; the traversal
	// remap applies only when issuing secondary queries.
	Classifications LabelMap `json:"classifications" yaml:"classifications"`
	Subjects        LabelMap `json:"subjects" yaml:"subjects"`

	Tags Tags `json:"tags" yaml:"tags"`
}
