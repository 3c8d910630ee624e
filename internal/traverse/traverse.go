// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package traverse drives the three-phase discovery expansion from a seed
// record: related by author, by classification code, and by subject heading.
package traverse

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pdiddy/biblioscope/internal/mods"
	"github.com/pdiddy/biblioscope/pkg/types"
)

// ErrEmptySeed is returned when the seed identifier matches no records.
var ErrEmptySeed = errors.New("seed identifier matched no records")

// Client fetches one raw result document per field/value query.
type Client interface {
	Fetch(ctx context.Context, fieldCode, value string) ([]byte, error)
}

// Phase names one stage of a traversal.
type Phase string

const (
	PhaseSeed           Phase = "seed"
	PhaseAuthor         Phase = "author"
	PhaseClassification Phase = "classification"
	PhaseSubject        Phase = "subject"
)

// Batch is the result of one query branch. A failed branch carries its
// error in Err and no records; the traversal still continues.
type Batch struct {
	Phase   Phase
	Context types.QueryContext
	Records []types.Metadata
	Err     error
}

// classificationFields remaps a record's stored classification authority
// code to the search field code the catalog expects. Unlisted codes pass
// through unchanged. Subjects are not remapped: every subject label is
// queried under the fixed subject field regardless of its own authority.
var classificationFields = map[string]string{
	"ddc":  "sgd",
	"ssgn": "ssg",
	"sdnb": "sgr",
}

// Orchestrator walks the expansion phases for one seed, fetching each branch
// through Client and normalizing it through Extractor.
type Orchestrator struct {
	Client    Client
	Extractor *mods.Extractor
	Logger    *slog.Logger
}

func (o *Orchestrator) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Traverse fetches the seed record and expands it phase by phase, invoking
// emit once per batch in a fixed order: the seed batch, one batch per author,
// one per classification label, one per subject label. Branch failures are
// reported inside their batch and never stop the walk; a non-nil error from
// emit aborts the traversal.
func (o *Orchestrator) Traverse(ctx context.Context, seedID string, emit func(Batch) error) error {
	raw, err := o.Client.Fetch(ctx, types.FieldIdentifier, seedID)
	if err != nil {
		return fmt.Errorf("fetching seed %s: %w", seedID, err)
	}
	qc, records, err := o.Extractor.Extract(raw)
	if err != nil {
		return fmt.Errorf("extracting seed %s: %w", seedID, err)
	}
	if len(records) == 0 {
		return ErrEmptySeed
	}

	if err := emit(Batch{Phase: PhaseSeed, Context: qc, Records: records}); err != nil {
		return err
	}
	seed := records[0]

	// Identical field/value targets across the expansion run once.
	issued := make(map[[2]string]bool)

	for _, author := range seed.Authors {
		field, value := types.FieldPerson, author.DisplayName()
		if author.ExternalID != "" {
			field, value = types.FieldAuthority, author.ExternalID
		}
		if err := o.branch(ctx, PhaseAuthor, field, value, issued, emit); err != nil {
			return err
		}
	}

	for _, code := range seed.Classifications.Codes() {
		field := code
		if mapped, ok := classificationFields[code]; ok {
			field = mapped
		}
		for _, label := range seed.Classifications.Labels(code) {
			if err := o.branch(ctx, PhaseClassification, field, label, issued, emit); err != nil {
				return err
			}
		}
	}

	for _, code := range seed.Subjects.Codes() {
		for _, label := range seed.Subjects.Labels(code) {
			if err := o.branch(ctx, PhaseSubject, types.FieldSubject, label, issued, emit); err != nil {
				return err
			}
		}
	}

	return nil
}

// branch runs one expansion query. Fetch and parse failures become the
// batch's Err so the caller sees a partial-result marker for exactly this
// query context; only context cancellation and emit errors propagate.
func (o *Orchestrator) branch(ctx context.Context, phase Phase, field, value string, issued map[[2]string]bool, emit func(Batch) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key := [2]string{field, value}
	if issued[key] {
		return nil
	}
	issued[key] = true

	raw, err := o.Client.Fetch(ctx, field, value)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		o.logger().Warn("expansion branch failed",
			"phase", phase, "field", field, "value", value, "error", err)
		return emit(Batch{Phase: phase, Context: o.Extractor.Context(field, value), Err: err})
	}

	qc, records, err := o.Extractor.Extract(raw)
	if err != nil {
		o.logger().Warn("expansion branch unparseable",
			"phase", phase, "field", field, "value", value, "error", err)
		return emit(Batch{Phase: phase, Context: o.Extractor.Context(field, value), Err: err})
	}

	return emit(Batch{Phase: phase, Context: qc, Records: records})
}
