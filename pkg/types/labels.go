// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "encoding/json"

// LabelMap is an insertion-order-preserving mapping from an authority code to
// the labels seen under it. Iteration follows first-seen order of codes, and
// labels keep document order within a code.
//
// The zero value is ready to use.
type LabelMap struct {
	codes  []string
	labels map[string][]string
}

// Add appends label under code, recording the code on first sight.
func (m *LabelMap) Add(code, label string) {
	if m.labels == nil {
		m.labels = make(map[string][]string)
	}
	if _, ok := m.labels[code]; !ok {
		m.codes = append(m.codes, code)
	}
	m.labels[code] = append(m.labels[code], label)
}

// Codes returns the authority codes in first-seen order.
func (m *LabelMap) Codes() []string {
	return m.codes
}

// Labels returns the labels recorded under code, in insertion order.
func (m *LabelMap) Labels(code string) []string {
	return m.labels[code]
}

// Len returns the number of distinct codes.
func (m *LabelMap) Len() int {
	return len(m.codes)
}

// codeLabels is the serialized form of one LabelMap entry. A plain map would
// lose the code order, so the map round-trips as an ordered list of pairs.
type codeLabels struct {
	Code   string   `json:"code" yaml:"code"`
	Labels []string `json:"labels" yaml:"labels"`
}

func (m *LabelMap) pairs() []codeLabels {
	out := make([]codeLabels, 0, len(m.codes))
	for _, code := range m.codes {
		out = append(out, codeLabels{Code: code, Labels: m.labels[code]})
	}
	return out
}

func (m *LabelMap) fromPairs(pairs []codeLabels) {
	m.codes = nil
	m.labels = nil
	for _, p := range pairs {
		for _, l := range p.Labels {
			m.Add(p.Code, l)
		}
	}
}

// MarshalJSON encodes the map as an ordered list of {code, labels} pairs.
func (m LabelMap) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.pairs())
}

// UnmarshalJSON decodes the ordered pair list produced by MarshalJSON.
func (m *LabelMap) UnmarshalJSON(data []byte) error {
	var pairs []codeLabels
	if err := json.Unmarshal(data, &pairs); err != nil {
		return err
	}
	m.fromPairs(pairs)
	return nil
}

// MarshalYAML encodes the map as an ordered list of {code, labels} pairs.
func (m LabelMap) MarshalYAML() (any, error) {
	return m.pairs(), nil
}

// UnmarshalYAML decodes the ordered pair list produced by MarshalYAML.
func (m *LabelMap) UnmarshalYAML(unmarshal func(any) error) error {
	var pairs []codeLabels
	if err := unmarshal(&pairs); err != nil {
		return err
	}
	m.fromPairs(pairs)
	return nil
}
