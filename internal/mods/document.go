// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mods

// SRU searchRetrieve response XML structures. Tags match local element names,
// so the zs: and mods: namespace prefixes of the wire form decode without a
// namespace-aware resolver.

type searchRetrieveResponse struct {
	NumberOfRecords string     `xml:"numberOfRecords"`
	EchoedQuery     string     `xml:"echoedSearchRetrieveRequest>query"`
	Records         []sruRecord `xml:"records>record"`
}

type sruRecord struct {
	Mods modsRecord `xml:"recordData>mods"`
}

type modsRecord struct {
	RecordInfo struct {
		Identifiers []sourcedValue `xml:"recordIdentifier"`
	} `xml:"recordInfo"`

	TitleInfos []struct {
		Title    string `xml:"title"`
		SubTitle string `xml:"subTitle"`
	} `xml:"titleInfo"`

	OriginInfos []struct {
		Issuance    string   `xml:"issuance"`
		DatesIssued []string `xml:"dateIssued"`
		Edition     string   `xml:"edition"`
	} `xml:"originInfo"`

	Locations []struct {
		URLs []labeledValue `xml:"url"`
	} `xml:"location"`

	Names []struct {
		Type        string      `xml:"type,attr"`
		Parts       []typedValue `xml:"namePart"`
		Identifiers []string    `xml:"nameIdentifier"`
	} `xml:"name"`

	Classifications []authorityValue `xml:"classification"`

	Subjects []struct {
		Authority string   `xml:"authority,attr"`
		Topics    []string `xml:"topic"`
	} `xml:"subject"`
}

type sourcedValue struct {
	Source string `xml:"source,attr"`
	Value  string `xml:",chardata"`
}

type labeledValue struct {
	DisplayLabel string `xml:"displayLabel,attr"`
	Value        string `xml:",chardata"`
}

type typedValue struct {
	Type  string `xml:"type,attr"`
	Value string `xml:",chardata"`
}

type authorityValue struct {
	Authority string `xml:"authority,attr"`
	Value     string `xml:",chardata"`
}
