// Package domain models the Central Weather Bureau (CWB) county forecast and
// the report built from it.
//
// # Data Source
//
// Forecasts come from the CWB open-data REST API, dataset F-D0047-091: a
// one-week forecast for each county or city, in 12-hour steps. A request
// carries two query parameters, the API key ("Authorization") and the county
// name ("locationName"):
//
//	GET https://opendata.cwb.gov.tw/api/v1/rest/datastore/F-D0047-091?Authorization=...&locationName=臺北市
//
// # Response Shape
//
//	records.locations[0].location[0]
//	  locationName          "臺北市"
//	  weatherElement[]
//	    elementName         "T"
//	    description         "平均溫度"
//	    time[]
//	      startTime         "2024-01-01 06:00:00"
//	      endTime           "2024-01-01 18:00:00"
//	      elementValue[]    {"value": "18", "measures": "攝氏度"}
//
// Every time slot of an element lists the same measures in the same order;
// the first slot therefore defines the table columns. Values are strings and
// may be numbers, categories, or "NA". [BuildReport] rejects responses that
// break this shape with [ErrMalformedData].
//
// The "天氣預報綜合描述" element (the long-form forecast summary) carries
// prose rather than measurements and is left out of the report.
//
// # Counties
//
// The dataset covers 22 counties and cities, listed by their official names
// in traditional script ([Regions]). Alternative spellings such as 台北市 are
// not accepted by the service and are rejected by [IsLegal].
package domain
