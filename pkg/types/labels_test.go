// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"reflect"
	"testing"

	"go.yaml.in/yaml/v3"
)

func TestLabelMapInsertionOrder(t *testing.T) {
	var m LabelMap
	m.Add("ssgn", "24,1")
	m.Add("ddc", "004")
	m.Add("ssgn", "25")
	m.Add("sdnb", "510")

	wantCodes := []string{"ssgn", "ddc", "sdnb"}
	if got := m.Codes(); !reflect.DeepEqual(got, wantCodes) {
		t.Errorf("Codes() = %v, want first-seen order %v", got, wantCodes)
	}
	if got := m.Labels("ssgn"); !reflect.DeepEqual(got, []string{"24,1", "25"}) {
		t.Errorf("Labels(ssgn) = %v, want document order", got)
	}
	if m.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.Len())
	}
}

func TestLabelMapZeroValue(t *testing.T) {
	var m LabelMap
	if m.Len() != 0 {
		t.Errorf("zero value Len() = %d, want 0", m.Len())
	}
	if labels := m.Labels("ddc"); labels != nil {
		t.Errorf("Labels on empty map = %v, want nil", labels)
	}
}

func TestLabelMapJSONRoundTrip(t *testing.T) {
	var m LabelMap
	m.Add("ddc", "004")
	m.Add("rvk", "ST 300")
	m.Add("ddc", "510")

	data, err := json.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}

	// Serialized form is an ordered pair list, not an object.
	want := `[{"code":"ddc","labels":["004","510"]},{"code":"rvk","labels":["ST 300"]}]`
	if string(data) != want {
		t.Errorf("MarshalJSON = %s, want %s", data, want)
	}

	var back LabelMap
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Codes(), m.Codes()) {
		t.Errorf("round-trip codes = %v, want %v", back.Codes(), m.Codes())
	}
	if !reflect.DeepEqual(back.Labels("ddc"), m.Labels("ddc")) {
		t.Errorf("round-trip labels = %v, want %v", back.Labels("ddc"), m.Labels("ddc"))
	}
}

func TestLabelMapYAMLRoundTrip(t *testing.T) {
	var m LabelMap
	m.Add("gnd", "Informatik")
	m.Add("lcsh", "Computer science")

	data, err := yaml.Marshal(m)
	if err != nil {
		t.Fatal(err)
	}
	var back LabelMap
	if err := yaml.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(back.Codes(), []string{"gnd", "lcsh"}) {
		t.Errorf("round-trip codes = %v", back.Codes())
	}
}

func TestPersonDisplayName(t *testing.T) {
	p := Person{Family: "Lovelace", Given: "Ada"}
	if got := p.DisplayName(); got != "Lovelace, Ada" {
		t.Errorf("DisplayName() = %q", got)
	}
	// Placeholder authors render the bare separator; callers decide display.
	if got := (Person{}).DisplayName(); got != ", " {
		t.Errorf("zero DisplayName() = %q", got)
	}
}

func TestKindOfField(t *testing.T) {
	tests := []struct {
		code string
		want QueryKind
	}{
		{"ppn", KindIdentifier},
		{"nid", KindAuthority},
		{"per", KindPerson},
		{"slw", KindSubject},
		{"sgd", KindClassification},
		{"rvk", KindClassification},
	}
	for _, tt := range tests {
		if got := KindOfField(tt.code); got != tt.want {
			t.Errorf("KindOfField(%q) = %q, want %q", tt.code, got, tt.want)
		}
	}
}
