// File: xml.go
// Role: the raw encoding/xml document shapes for spec.md §6.2's instance
// format, grounded on original_source's fms::problem::xml_parser.hpp
// (SingleFlowShopParser/FORPFSSPSDXmlParser) — same element names
// (flowVector/processingTimes/sizes/setupTimes/relativeDueDates/
// jobPlexity/maintPolicy), re-expressed as Go struct tags instead of
// rapidxml DOM walks.
package instance

import "encoding/xml"

type spInstanceXML struct {
	XMLName xml.Name `xml:"SPInstance"`
	Type    string   `xml:"type,attr"`

	Jobs struct {
		Count int `xml:"count,attr"`
	} `xml:"jobs"`

	FlowVector struct {
		Components []componentXML `xml:"component"`
	} `xml:"flowVector"`

	ProcessingTimes struct {
		Default int64       `xml:"default,attr"`
		Entries []pEntryXML `xml:"p"`
	} `xml:"processingTimes"`

	Sizes struct {
		Default uint        `xml:"default,attr"`
		Maximum int64       `xml:"maximum,attr"`
		Entries []zEntryXML `xml:"z"`
	} `xml:"sizes"`

	SetupTimes *struct {
		Default int64          `xml:"default,attr"`
		Entries []pairEntryXML `xml:"s"`
	} `xml:"setupTimes"`

	SetupTimesIndep *struct {
		Entries []pairEntryXML `xml:"s"`
	} `xml:"setupTimesIndep"`

	RelativeDueDates *struct {
		Entries []pairEntryXML `xml:"d"`
	} `xml:"relativeDueDates"`

	RelativeDueDatesIndep *struct {
		Entries []pairEntryXML `xml:"d"`
	} `xml:"relativeDueDatesIndep"`

	JobPlexity *struct {
		Entries []plexityEntryXML `xml:"t"`
	} `xml:"jobPlexity"`
}

// componentXML is one <component index=i value=machineId job=j/> entry of
// the flow vector: the i'th operation machine-assigned job j visits is
// machineId.
type componentXML struct {
	Index int64 `xml:"index,attr"`
	Value int64 `xml:"value,attr"`
	Job   int64 `xml:"job,attr"`
}

type pEntryXML struct {
	Job   int64 `xml:"j,attr"`
	Op    int64 `xml:"op,attr"`
	Value int64 `xml:"value,attr"`
}

type zEntryXML struct {
	Job   int64 `xml:"j,attr"`
	Op    int64 `xml:"op,attr"`
	Value uint  `xml:"value,attr"`
}

// pairEntryXML is one <s j1= op1= j2= op2= value=/> or <d .../> entry: a
// value keyed on an ordered pair of operations.
type pairEntryXML struct {
	Job1  int64 `xml:"j1,attr"`
	Op1   int64 `xml:"op1,attr"`
	Job2  int64 `xml:"j2,attr"`
	Op2   int64 `xml:"op2,attr"`
	Value int64 `xml:"value,attr"`
}

// plexityEntryXML is one <t j= Type= id=/> job-plexity assertion. Only
// used for validation: problem.Instance always derives plexity itself from
// the flow vector (see DESIGN.md's internal/instance entry).
type plexityEntryXML struct {
	Job  int64  `xml:"j,attr"`
	Type string `xml:"Type,attr"`
	ID   int64  `xml:"id,attr"`
}

// modularXML is the <modular> container for a production line: one
// <SPInstance> per module plus the boundaries between consecutive ones.
type modularXML struct {
	XMLName xml.Name `xml:"modular"`

	Modules struct {
		Modules []moduleXML `xml:"module"`
	} `xml:"modules"`

	TransferPoints struct {
		Transfers []transferXML `xml:"transferPoint"`
	} `xml:"transferPoints"`
}

type moduleXML struct {
	ID       int64         `xml:"id,attr"`
	Instance spInstanceXML `xml:"SPInstance"`
}

type transferXML struct {
	Upstream   int64 `xml:"upstream,attr"`
	Downstream int64 `xml:"downstream,attr"`
	Setups     []struct {
		Job   int64 `xml:"j,attr"`
		Value int64 `xml:"value,attr"`
	} `xml:"setup"`
	DueDates []struct {
		Job   int64 `xml:"j,attr"`
		Value int64 `xml:"value,attr"`
	} `xml:"dueDate"`
}

// maintPolicyXML is the optional maintenance policy file.
type maintPolicyXML struct {
	XMLName xml.Name `xml:"maintPolicy"`

	NumberOfTypes struct {
		Value uint `xml:"value,attr"`
	} `xml:"numberOfTypes"`

	MinimumIdle struct {
		Value int64 `xml:"value,attr"`
	} `xml:"minimumIdle"`

	MaintProcTimes struct {
		Default int64 `xml:"default,attr"`
		Entries []struct {
			ID    int64 `xml:"id,attr"`
			Value int64 `xml:"value,attr"`
		} `xml:"t"`
	} `xml:"maintProcTimes"`

	Thresholds struct {
		DefaultMin int64 `xml:"defaultMin,attr"`
		DefaultMax int64 `xml:"defaultMax,attr"`
		Entries    []struct {
			ID  int64 `xml:"id,attr"`
			Min int64 `xml:"min,attr"`
			Max int64 `xml:"max,attr"`
		} `xml:"t"`
	} `xml:"thresholds"`
}
