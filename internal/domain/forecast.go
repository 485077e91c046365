package domain

// ForecastResponse is the JSON document returned by dataset F-D0047-091.
type ForecastResponse struct {
	Success string  `json:"success"`
	Records Records `json:"records"`
}

// Records wraps the location groups of a response.
type Records struct {
	Locations []LocationGroup `json:"locations"`
}

// LocationGroup is one dataset slice; F-D0047-091 always returns a single group.
type LocationGroup struct {
	DatasetDescription string     `json:"datasetDescription,omitempty"`
	LocationsName      string     `json:"locationsName,omitempty"`
	Dataid             string     `json:"dataid,omitempty"`
	Location           []Location `json:"location"`
}

// Location holds the forecast elements for one county.
type Location struct {
	LocationName   string            `json:"locationName"`
	Geocode        string            `json:"geocode,omitempty"`
	Lat            string            `json:"lat,omitempty"`
	Lon            string            `json:"lon,omitempty"`
	WeatherElement []ForecastElement `json:"weatherElement"`
}

// ForecastElement is one forecast dimension, such as 12-hour probability of precipitation.
type ForecastElement struct {
	ElementName string     `json:"elementName"`
	Description string     `json:"description"`
	Time        []TimeSlot `json:"time"`
}

// TimeSlot is one forecast interval. Timestamps are passed through as the
// service formats them.
type TimeSlot struct {
	StartTime    string         `json:"startTime"`
	EndTime      string         `json:"endTime"`
	ElementValue []MeasureValue `json:"elementValue"`
}

// MeasureValue pairs a measurement label with its reading.
type MeasureValue struct {
	Value    string `json:"value"`
	Measures string `json:"measures"`
}

// PrimaryLocation returns the first location of the first group, which is
// the county a single-county request asked for.
func (r ForecastResponse) PrimaryLocation() (Location, bool) {
	if len(r.Records.Locations) == 0 || len(r.Records.Locations[0].Location) == 0 {
		return Location{}, false
	}
	return r.Records.Locations[0].Location[0], true
}
