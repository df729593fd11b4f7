package columns

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/komsit37/roi/pkg/roi/format"
	"github.com/komsit37/roi/pkg/roi/types"
)

// Def describes a column.
type Def struct {
	Header  string
	Numeric bool
	Render  func(r types.Row) string
}

// Registry maps column keys to their definitions.
var Registry = map[string]Def{
	"name": {Header: "SCENARIO", Render: func(r types.Row) string { return r.Scenario.Name }},
	"appointments": {Header: "APPTS/MO", Numeric: true, Render: func(r types.Row) string {
		return strconv.Itoa(r.Inputs.Appointments)
	}},
	"closing_rate": {Header: "CLOSE RATE", Numeric: true, Render: func(r types.Row) string {
		return format.Rate(r.Inputs.ClosingRate)
	}},
	"job_value": {Header: "AVG JOB", Numeric: true, Render: func(r types.Row) string {
		return format.JobValue(r.Inputs.JobValue, r.MaxJobValue)
	}},
	"slider": {Header: "SLIDER", Numeric: true, Render: func(r types.Row) string {
		return strconv.Itoa(int(r.Slider))
	}},
	"closed_deals": {Header: "JOBS/MO", Numeric: true, Render: func(r types.Row) string {
		return format.Deals(r.Projection.ClosedDeals)
	}},
	"revenue": {Header: "REVENUE", Numeric: true, Render: func(r types.Row) string {
		return format.Currency(r.Projection.Revenue)
	}},
	"cpa": {Header: "CPA", Numeric: true, Render: func(r types.Row) string {
		return format.Currency(r.CPA)
	}},
	"investment": {Header: "ACQ COST", Numeric: true, Render: func(r types.Row) string {
		return format.Currency(r.Projection.Investment)
	}},
	"profit": {Header: "NET PROFIT", Numeric: true, Render: func(r types.Row) string {
		return format.Currency(r.Projection.Profit)
	}},
	"roi": {Header: "ROI", Numeric: true, Render: func(r types.Row) string {
		return format.Percent(r.Projection.ROIPercent)
	}},
	"multiplier": {Header: "MULTIPLE", Numeric: true, Render: func(r types.Row) string {
		return format.Multiplier(r.Projection.Multiplier)
	}},
}

// Default is the column order when nothing is asked for.
var Default = []string{
	"name", "appointments", "closing_rate", "job_value",
	"closed_deals", "revenue", "investment", "profit", "roi",
}

// Compute honors explicit columns in order, de-duplicated; otherwise Default.
func Compute(explicit []string) []string {
	if len(explicit) == 0 {
		return append([]string(nil), Default...)
	}
	seen := map[string]struct{}{}
	out := make([]string, 0, len(explicit))
	for _, k := range explicit {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

// Header returns the display header for key; unknown keys are upper-cased.
func Header(key string) string {
	if d, ok := Registry[key]; ok {
		return d.Header
	}
	return strings.ToUpper(key)
}

// IsNumeric reports whether the column should be right-aligned.
func IsNumeric(key string) bool {
	return Registry[key].Numeric
}

// RenderValue renders key for r. Unknown keys fall back to the scenario's
// extra YAML fields.
func RenderValue(key string, r types.Row) string {
	if d, ok := Registry[key]; ok {
		return d.Render(r)
	}
	if v, ok := r.Scenario.Fields[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// Raw returns the unformatted value for machine output.
func Raw(key string, r types.Row) any {
	switch key {
	case "name":
		return r.Scenario.Name
	case "appointments":
		return r.Inputs.Appointments
	case "closing_rate":
		return r.Inputs.ClosingRate
	case "job_value":
		return r.Inputs.JobValue
	case "slider":
		return r.Slider
	case "closed_deals":
		return r.Projection.ClosedDeals
	case "revenue":
		return r.Projection.Revenue
	case "cpa":
		return r.CPA
	case "investment":
		return r.Projection.Investment
	case "profit":
		return r.Projection.Profit
	case "roi":
		return r.Projection.ROIPercent
	case "multiplier":
		return r.Projection.Multiplier
	}
	return r.Scenario.Fields[key]
}
