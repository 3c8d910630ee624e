// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// QueryKind classifies a catalog search by strategy.
type QueryKind string

const (
	// KindIdentifier is a lookup by catalog identifier (PPN).
	KindIdentifier QueryKind = "identifier"

	// KindAuthority is an author search keyed by an external authority
	// identifier (GND number).
	KindAuthority QueryKind = "authority"

	// KindPerson is a free-text author search on "Family, Given". Prone to
	// name collisions; consumers should flag these batches as ambiguous.
	KindPerson QueryKind = "person"

	// KindClassification is a search on a classification field code.
	KindClassification QueryKind = "classification"

	// KindSubject is a search on the fixed subject heading field.
	KindSubject QueryKind = "subject"
)

// PICA search field codes understood by the catalog service.
const (
	FieldIdentifier = "ppn"
	FieldAuthority  = "nid"
	FieldPerson     = "per"
	FieldSubject    = "slw"
)

// KindOfField maps a PICA field code to its query kind. Codes outside the
// fixed set are classification search fields.
func KindOfField(code string) QueryKind {
	switch code {
	case FieldIdentifier:
		return KindIdentifier
	case FieldAuthority:
		return KindAuthority
	case FieldPerson:
		return KindPerson
	case FieldSubject:
		return KindSubject
	default:
		return KindClassification
	}
}

// QueryContext describes the search that produced a result document.
type QueryContext struct {
	// Kind is the search strategy.
	Kind QueryKind `json:"kind" yaml:"kind"`

	// FieldCode is the raw PICA field the query ran against.
	FieldCode string `json:"field_code" yaml:"field_code"`

	// Value is the raw query value.
	Value string `json:"value" yaml:"value"`

	// ResolvedTitle is a human-readable label for the query: the authority
	// cache's display name for authority searches, otherwise Value itself.
	ResolvedTitle string `json:"resolved_title" yaml:"resolved_title"`
}
