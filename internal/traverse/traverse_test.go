// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package traverse

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/pdiddy/biblioscope/internal/authority"
	"github.com/pdiddy/biblioscope/internal/mods"
	"github.com/pdiddy/biblioscope/internal/store"
	"github.com/pdiddy/biblioscope/pkg/types"
)

// --- fake catalog ---

type fakeClient struct {
	responses map[string][]byte
	errs      map[string]error
	calls     []string
}

func queryKey(field, value string) string { return field + "=" + value }

// Fetch serves canned responses. Unknown queries yield a well-formed
// zero-hit document so expansion branches succeed with no records.
func (f *fakeClient) Fetch(_ context.Context, field, value string) ([]byte, error) {
	key := queryKey(field, value)
	f.calls = append(f.calls, key)
	if err, ok := f.errs[key]; ok {
		return nil, err
	}
	if resp, ok := f.responses[key]; ok {
		return resp, nil
	}
	return sruResponse(fmt.Sprintf("pica.%s=%q", field, value)), nil
}

func sruResponse(query string, records ...string) []byte {
	body := ""
	for _, r := range records {
		body += "<zs:record><zs:recordData>" + r + "</zs:recordData></zs:record>"
	}
	return []byte(fmt.Sprintf(
		`<zs:searchRetrieveResponse xmlns:zs="http://www.loc.gov/zing/srw/">
  <zs:numberOfRecords>%d</zs:numberOfRecords>
  <zs:records>%s</zs:records>
  <zs:echoedSearchRetrieveRequest><zs:query>%s</zs:query></zs:echoedSearchRetrieveRequest>
</zs:searchRetrieveResponse>`, len(records), body, query))
}

// seedRecord is a book with one authority-identified author, one free-text
// author, two classifications, and two subject headings.
const seedRecord = `<mods xmlns="http://www.loc.gov/mods/v3">
  <recordInfo><recordIdentifier source="DE-627">858793210</recordIdentifier></recordInfo>
  <titleInfo><title>Vita activa</title></titleInfo>
  <originInfo><issuance>monographic</issuance></originInfo>
  <name type="personal">
    <namePart type="family">Arendt</namePart>
    <namePart type="given">Hannah</namePart>
    <nameIdentifier>(DE-588)118503634</nameIdentifier>
  </name>
  <name type="personal">
    <namePart type="family">Ludz</namePart>
    <namePart type="given">Ursula</namePart>
  </name>
  <classification authority="ddc">004</classification>
  <classification authority="rvk">ST 300</classification>
  <subject authority="gnd"><topic>Handeln</topic></subject>
  <subject authority="gnd"><topic>Arbeit</topic></subject>
</mods>`

const minimalRecord = `<mods xmlns="http://www.loc.gov/mods/v3">
  <recordInfo><recordIdentifier source="DE-627">165313821</recordIdentifier></recordInfo>
  <titleInfo><title>Related work</title></titleInfo>
</mods>`

func newOrchestrator(client Client) *Orchestrator {
	return &Orchestrator{
		Client: client,
		Extractor: &mods.Extractor{
			Cache: authority.NewCache(),
			Store: store.NewMemory(),
		},
	}
}

func collect(t *testing.T, o *Orchestrator, seedID string) []Batch {
	t.Helper()
	var batches []Batch
	err := o.Traverse(context.Background(), seedID, func(b Batch) error {
		batches = append(batches, b)
		return nil
	})
	if err != nil {
		t.Fatalf("Traverse: %v", err)
	}
	return batches
}

// --- phase ordering ---

func TestTraversePhaseAndBranchOrder(t *testing.T) {
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=858793210": sruResponse(`pica.ppn="858793210"`, seedRecord),
		},
	}
	batches := collect(t, newOrchestrator(client), "858793210")

	wantCalls := []string{
		"ppn=858793210",
		"nid=118503634",      // authority-identified author first
		"per=Ludz, Ursula",   // free-text fallback second
		"sgd=004",            // ddc remapped to sgd
		"rvk=ST 300",         // unlisted code passes through
		"slw=Handeln",        // all subjects under the fixed field
		"slw=Arbeit",
	}
	if len(client.calls) != len(wantCalls) {
		t.Fatalf("calls = %v, want %v", client.calls, wantCalls)
	}
	for i, want := range wantCalls {
		if client.calls[i] != want {
			t.Errorf("call[%d] = %q, want %q", i, client.calls[i], want)
		}
	}

	wantPhases := []Phase{
		PhaseSeed,
		PhaseAuthor, PhaseAuthor,
		PhaseClassification, PhaseClassification,
		PhaseSubject, PhaseSubject,
	}
	if len(batches) != len(wantPhases) {
		t.Fatalf("got %d batches, want %d", len(batches), len(wantPhases))
	}
	for i, want := range wantPhases {
		if batches[i].Phase != want {
			t.Errorf("batch[%d].Phase = %s, want %s", i, batches[i].Phase, want)
		}
	}
}

func TestClassificationRemap(t *testing.T) {
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=858793210": sruResponse(`pica.ppn="858793210"`, seedRecord),
		},
	}
	batches := collect(t, newOrchestrator(client), "858793210")

	var classBatch *Batch
	for i := range batches {
		if batches[i].Phase == PhaseClassification {
			classBatch = &batches[i]
			break
		}
	}
	if classBatch == nil {
		t.Fatal("no classification batch emitted")
	}
	if classBatch.Context.FieldCode != "sgd" || classBatch.Context.Value != "004" {
		t.Errorf("classification query = %s=%s, want sgd=004",
			classBatch.Context.FieldCode, classBatch.Context.Value)
	}
}

func TestAuthorStrategySelection(t *testing.T) {
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=858793210":    sruResponse(`pica.ppn="858793210"`, seedRecord),
			"nid=118503634":    sruResponse(`pica.nid="118503634"`, minimalRecord),
			"per=Ludz, Ursula": sruResponse(`pica.per="Ludz, Ursula"`, minimalRecord),
		},
	}
	batches := collect(t, newOrchestrator(client), "858793210")

	if batches[1].Context.Kind != types.KindAuthority {
		t.Errorf("first author batch kind = %s, want authority", batches[1].Context.Kind)
	}
	// The seed extraction cached the identity, so the batch is titled with
	// the display name rather than the bare GND number.
	if batches[1].Context.ResolvedTitle != "Arendt, Hannah" {
		t.Errorf("ResolvedTitle = %q, want cached name", batches[1].Context.ResolvedTitle)
	}
	if batches[2].Context.Kind != types.KindPerson {
		t.Errorf("second author batch kind = %s, want person", batches[2].Context.Kind)
	}
	if len(batches[1].Records) != 1 || len(batches[2].Records) != 1 {
		t.Error("author batches should carry the fetched records")
	}
}

// --- failure isolation ---

func TestBranchFailureDoesNotAbortTraversal(t *testing.T) {
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=858793210": sruResponse(`pica.ppn="858793210"`, seedRecord),
		},
		errs: map[string]error{
			"nid=118503634": errors.New("upstream timeout"),
		},
	}
	batches := collect(t, newOrchestrator(client), "858793210")

	if len(batches) != 7 {
		t.Fatalf("got %d batches, want all 7 despite branch failure", len(batches))
	}
	if batches[1].Err == nil {
		t.Error("failed branch should carry its error")
	}
	if batches[1].Records != nil {
		t.Error("failed branch should carry no records")
	}
	// Sibling author and later phases still ran.
	if batches[2].Err != nil || batches[2].Context.Kind != types.KindPerson {
		t.Errorf("sibling author batch = %+v", batches[2])
	}
	if batches[3].Phase != PhaseClassification {
		t.Errorf("phase after failed author = %s, want classification", batches[3].Phase)
	}
}

func TestUnparseableBranchFlagged(t *testing.T) {
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=858793210": sruResponse(`pica.ppn="858793210"`, seedRecord),
			"nid=118503634": []byte("<broken"),
		},
	}
	batches := collect(t, newOrchestrator(client), "858793210")

	if !errors.Is(batches[1].Err, mods.ErrParseFailure) {
		t.Errorf("batch err = %v, want ErrParseFailure", batches[1].Err)
	}
}

func TestEmptySeed(t *testing.T) {
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=000000000": sruResponse(`pica.ppn="000000000"`),
		},
	}
	err := newOrchestrator(client).Traverse(context.Background(), "000000000", func(Batch) error {
		t.Fatal("no batch should be emitted for an empty seed")
		return nil
	})
	if !errors.Is(err, ErrEmptySeed) {
		t.Errorf("err = %v, want ErrEmptySeed", err)
	}
}

func TestSeedFetchFailure(t *testing.T) {
	client := &fakeClient{
		errs: map[string]error{
			"ppn=858793210": errors.New("connection refused"),
		},
	}
	err := newOrchestrator(client).Traverse(context.Background(), "858793210", func(Batch) error {
		return nil
	})
	if err == nil {
		t.Fatal("seed fetch failure must abort the traversal")
	}
}

// --- shape of the expansion ---

func TestSeedWithoutClassificationsOrSubjects(t *testing.T) {
	bare := `<mods xmlns="http://www.loc.gov/mods/v3">
  <recordInfo><recordIdentifier source="DE-627">111111111</recordIdentifier></recordInfo>
  <titleInfo><title>Bare record</title></titleInfo>
  <name type="personal"><namePart type="family">Nobody</namePart></name>
</mods>`
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=111111111": sruResponse(`pica.ppn="111111111"`, bare),
		},
	}
	batches := collect(t, newOrchestrator(client), "111111111")

	if len(batches) != 2 {
		t.Fatalf("got %d batches, want seed + one author only", len(batches))
	}
	if batches[0].Phase != PhaseSeed || batches[1].Phase != PhaseAuthor {
		t.Errorf("phases = %s, %s", batches[0].Phase, batches[1].Phase)
	}
}

func TestDuplicateTargetsIssuedOnce(t *testing.T) {
	dup := `<mods xmlns="http://www.loc.gov/mods/v3">
  <recordInfo><recordIdentifier source="DE-627">222222222</recordIdentifier></recordInfo>
  <subject authority="gnd"><topic>Handeln</topic></subject>
  <subject authority="lcsh"><topic>Handeln</topic></subject>
</mods>`
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=222222222": sruResponse(`pica.ppn="222222222"`, dup),
		},
	}
	collect(t, newOrchestrator(client), "222222222")

	count := 0
	for _, call := range client.calls {
		if call == "slw=Handeln" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("slw=Handeln issued %d times, want 1", count)
	}
}

func TestEmitErrorAbortsTraversal(t *testing.T) {
	client := &fakeClient{
		responses: map[string][]byte{
			"ppn=858793210": sruResponse(`pica.ppn="858793210"`, seedRecord),
		},
	}
	stop := errors.New("consumer stopped")
	err := newOrchestrator(client).Traverse(context.Background(), "858793210", func(Batch) error {
		return stop
	})
	if !errors.Is(err, stop) {
		t.Errorf("err = %v, want emit error", err)
	}
	if len(client.calls) != 1 {
		t.Errorf("calls after abort = %v, want seed fetch only", client.calls)
	}
}
