// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mods normalizes raw SRU result documents (MODS record schema) into
// canonical Metadata records. Extraction also bootstraps the authority cache
// and persists new records into the document store.
package mods

import (
	"encoding/xml"
	"errors"
	"log/slog"
	"regexp"
	"strings"

	"github.com/pdiddy/biblioscope/internal/authority"
	"github.com/pdiddy/biblioscope/internal/store"
	"github.com/pdiddy/biblioscope/pkg/types"
)

// ErrParseFailure marks a response document in which the query-echo node
// could not be located. Distinct from a well-formed zero-hits result.
var ErrParseFailure = errors.New("response document has no query echo")

// recordIDSource is the source attribute of the authoritative record identifier.
const recordIDSource = "DE-627"

// Display labels marking cover and table-of-contents location links.
const (
	coverLabel = "Cover"
	tocLabel   = "Inhaltsverzeichnis"
)

// gndPrefix marks name identifiers issued by the GND authority file.
const gndPrefix = "(DE-588)"

// gndPattern extracts the identifier following the GND prefix.
var gndPattern = regexp.MustCompile(`\(DE-588\)(\S+)`)

// issuanceTypes maps the MODS issuance vocabulary to record types. Anything
// absent from the table is a plain document.
var issuanceTypes = map[string]types.RecordType{
	"monographic":          types.TypeBook,
	"single unit":          types.TypeBook,
	"multipart monograph":  types.TypeBook,
	"continuing":           types.TypeVolume,
	"serial":               types.TypeVolume,
	"integrating resource": types.TypeVolume,
}

// Extractor turns raw result documents into Metadata records. Cache and
// Store are updated as a side effect of every extraction; either may be nil
// to skip that side effect.
type Extractor struct {
	Cache  *authority.Cache
	Store  store.Store
	Logger *slog.Logger
}

func (e *Extractor) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

// Extract parses one raw SRU response into the query context and the
// canonical records, in document order. Records without an identifier are
// dropped with a warning; every other field is optional and extracted
// independently. Returns ErrParseFailure when the document cannot be decoded
// or lacks the query echo.
func (e *Extractor) Extract(raw []byte) (types.QueryContext, []types.Metadata, error) {
	var doc searchRetrieveResponse
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return types.QueryContext{}, nil, ErrParseFailure
	}
	if strings.TrimSpace(doc.EchoedQuery) == "" {
		return types.QueryContext{}, nil, ErrParseFailure
	}

	field, value := parseEchoedQuery(doc.EchoedQuery)
	qc := e.Context(field, value)

	records := make([]types.Metadata, 0, len(doc.Records))
	for _, r := range doc.Records {
		rec, ok := e.extractRecord(&r.Mods, qc)
		if !ok {
			continue
		}
		e.registerAuthors(rec.Authors)
		e.persist(rec)
		records = append(records, rec)
	}
	return qc, records, nil
}

// Context builds the query context for a field/value pair, resolving
// authority identifiers to display names through the cache.
func (e *Extractor) Context(fieldCode, value string) types.QueryContext {
	qc := types.QueryContext{
		Kind:          types.KindOfField(fieldCode),
		FieldCode:     fieldCode,
		Value:         value,
		ResolvedTitle: value,
	}
	if qc.Kind == types.KindAuthority && e.Cache != nil {
		if name, ok := e.Cache.Resolve(value); ok {
			qc.ResolvedTitle = name
		}
	}
	return qc
}

// parseEchoedQuery splits an echoed query of the form pica.ppn="858793210"
// into its field code and value.
func parseEchoedQuery(q string) (field, value string) {
	parts := strings.SplitN(strings.TrimSpace(q), "=", 2)
	field = strings.TrimPrefix(parts[0], "pica.")
	if len(parts) == 2 {
		value = strings.Trim(parts[1], `"`)
	}
	return field, value
}

// extractRecord normalizes one MODS record node. Returns ok=false when the
// mandatory identifier is missing.
func (e *Extractor) extractRecord(rec *modsRecord, qc types.QueryContext) (types.Metadata, bool) {
	id := recordIdentifier(rec)
	if id == "" {
		e.logger().Warn("record node lacks identifier, dropped",
			"query_field", qc.FieldCode, "query_value", qc.Value)
		return types.Metadata{}, false
	}

	out := types.Metadata{
		ID:   id,
		Type: types.TypeDocument,
		Tags: types.Tags{FromAuthority: qc.Kind == types.KindAuthority},
	}

	for _, oi := range rec.OriginInfos {
		if t, ok := issuanceTypes[oi.Issuance]; ok {
			out.Type = t
			break
		}
	}

	for _, ti := range rec.TitleInfos {
		if out.Title == "" && ti.Title != "" {
			out.Title = ti.Title
		}
		if out.SubTitle == "" && ti.SubTitle != "" {
			out.SubTitle = ti.SubTitle
		}
	}

	for _, oi := range rec.OriginInfos {
		if out.Year == "" && len(oi.DatesIssued) > 0 {
			out.Year = strings.TrimSpace(oi.DatesIssued[0])
		}
		if out.Edition == "" && oi.Edition != "" {
			out.Edition = oi.Edition
		}
	}

	// First match in document order wins for both link kinds.
	for _, loc := range rec.Locations {
		for _, u := range loc.URLs {
			switch u.DisplayLabel {
			case coverLabel:
				if out.CoverURL == "" {
					out.CoverURL = strings.TrimSpace(u.Value)
				}
			case tocLabel:
				if out.TOCURL == "" {
					out.TOCURL = strings.TrimSpace(u.Value)
				}
			}
		}
	}

	out.Authors = e.extractAuthors(rec, id)

	for _, c := range rec.Classifications {
		if label := strings.TrimSpace(c.Value); label != "" {
			out.Classifications.Add(c.Authority, label)
		}
	}
	for _, s := range rec.Subjects {
		for _, topic := range s.Topics {
			if label := strings.TrimSpace(topic); label != "" {
				out.Subjects.Add(s.Authority, label)
			}
		}
	}

	return out, true
}

// recordIdentifier returns the record identifier carrying the authoritative
// source attribute, or "".
func recordIdentifier(rec *modsRecord) string {
	for _, id := range rec.RecordInfo.Identifiers {
		if id.Source == recordIDSource {
			return strings.TrimSpace(id.Value)
		}
	}
	return ""
}

// extractAuthors collects personal-name entries in document order. A record
// without any yields the single placeholder author, keeping Authors non-empty.
func (e *Extractor) extractAuthors(rec *modsRecord, recordID string) []types.Person {
	var authors []types.Person
	for _, n := range rec.Names {
		if n.Type != "personal" {
			continue
		}
		var p types.Person
		for _, part := range n.Parts {
			switch part.Type {
			case "given":
				if p.Given == "" {
					p.Given = part.Value
				}
			case "family":
				if p.Family == "" {
					p.Family = part.Value
				}
			}
		}
		p.ExternalID = e.nameIdentifier(n.Identifiers, recordID)
		authors = append(authors, p)
	}
	if len(authors) == 0 {
		authors = []types.Person{{}}
	}
	return authors
}

// nameIdentifier returns the GND number from the first identifier carrying
// the GND prefix. A value that carries the prefix but no usable suffix is
// treated as absent, so the author falls back to free-text search.
func (e *Extractor) nameIdentifier(ids []string, recordID string) string {
	for _, raw := range ids {
		v := strings.TrimSpace(raw)
		if !strings.HasPrefix(v, gndPrefix) {
			continue
		}
		groups := gndPattern.FindStringSubmatch(v)
		if groups == nil {
			e.logger().Debug("malformed authority identifier, using free-text fallback",
				"record", recordID, "identifier", v)
			return ""
		}
		return groups[1]
	}
	return ""
}

// registerAuthors seeds the authority cache. Register is write-once, so
// identities resolved on an earlier record stick.
func (e *Extractor) registerAuthors(authors []types.Person) {
	if e.Cache == nil {
		return
	}
	for _, p := range authors {
		if p.ExternalID != "" {
			e.Cache.Register(p.ExternalID, p.DisplayName())
		}
	}
}

// persist inserts the record when its identifier is new. Existing entries,
// and the tags on them, stay untouched. Store failures degrade to a warning:
// extraction output does not depend on persistence.
func (e *Extractor) persist(rec types.Metadata) {
	if e.Store == nil {
		return
	}
	if _, err := e.Store.PutIfAbsent(rec); err != nil {
		e.logger().Warn("could not persist record", "record", rec.ID, "error", err)
	}
}
