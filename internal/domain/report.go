package domain

import (
	"fmt"
	"time"
)

const (
	// SummaryElement is the long-form prose summary, excluded from the tables.
	SummaryElement = "天氣預報綜合描述"

	// ReportAuthor credits the data provider on the title page.
	ReportAuthor = "中央氣象局API"

	reportTitlePrefix = "未來1週逐12小時天氣預報 - "

	headerStart = "Start Time"
	headerEnd   = "End Time"
)

// ReportDocument is the renderer-independent form of a forecast report.
type ReportDocument struct {
	Title       string
	Author      string
	Region      string
	GeneratedAt time.Time
	Sections    []Section
}

// Section is one forecast element rendered as a table.
type Section struct {
	Title string
	Table Table
}

// Table holds a header row and data rows of equal width.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Artifact names the files a renderer produced for one report.
type Artifact struct {
	SourcePath string
	PDFPath    string
}

// BuildReport turns a forecast response into a report with one section per
// forecast element, in service order, skipping [SummaryElement].
//
// Columns are "Start Time", "End Time", then the measure labels of the
// element's first time slot. Every other slot must repeat those labels in the
// same order; otherwise the whole build fails with [ErrMalformedData] rather
// than emitting misaligned columns. The input is not modified.
func BuildReport(resp ForecastResponse) (ReportDocument, error) {
	loc, ok := resp.PrimaryLocation()
	if !ok {
		return ReportDocument{}, fmt.Errorf("%w: response has no location", ErrMalformedData)
	}
	if loc.LocationName == "" {
		return ReportDocument{}, fmt.Errorf("%w: location has no name", ErrMalformedData)
	}

	doc := ReportDocument{
		Title:       reportTitlePrefix + loc.LocationName,
		Author:      ReportAuthor,
		Region:      loc.LocationName,
		GeneratedAt: generatedAt(),
		Sections:    make([]Section, 0, len(loc.WeatherElement)),
	}

	for _, el := range loc.WeatherElement {
		if el.Description == SummaryElement {
			continue
		}
		table, err := buildTable(el)
		if err != nil {
			return ReportDocument{}, err
		}
		doc.Sections = append(doc.Sections, Section{Title: el.Description, Table: table})
	}

	return doc, nil
}

func buildTable(el ForecastElement) (Table, error) {
	if len(el.Time) == 0 {
		return Table{}, fmt.Errorf("%w: element %q has no time slots", ErrMalformedData, el.Description)
	}

	first := el.Time[0].ElementValue
	headers := make([]string, 0, len(first)+2)
	headers = append(headers, headerStart, headerEnd)
	for _, mv := range first {
		headers = append(headers, mv.Measures)
	}

	rows := make([][]string, 0, len(el.Time))
	for i, slot := range el.Time {
		if msg := labelMismatch(first, slot.ElementValue); msg != "" {
			return Table{}, fmt.Errorf("%w: element %q slot %d (%s): %s",
				ErrMalformedData, el.Description, i, slot.StartTime, msg)
		}
		row := make([]string, 0, len(headers))
		row = append(row, slot.StartTime, slot.EndTime)
		for _, mv := range slot.ElementValue {
			row = append(row, mv.Value)
		}
		rows = append(rows, row)
	}

	return Table{Headers: headers, Rows: rows}, nil
}

// labelMismatch describes how got's measure labels differ from want's, or
// returns "" when they match in count and order.
func labelMismatch(want, got []MeasureValue) string {
	if len(got) != len(want) {
		return fmt.Sprintf("%d measures, want %d", len(got), len(want))
	}
	for j := range want {
		if got[j].Measures != want[j].Measures {
			return fmt.Sprintf("measure %d is %q, want %q", j, got[j].Measures, want[j].Measures)
		}
	}
	return ""
}
