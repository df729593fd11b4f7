package format

// Disclaimer is shown under every projection.
const Disclaimer = "*ROI calculations and appointment costs are estimates based on historical " +
	"system performance. Individual results vary by territory and are not guaranteed."

// ROILabel is the badge text: "4,900% Projected ROI".
func ROILabel(roi float64) string {
	return Percent(roi) + " Projected ROI"
}

// DealsLabel reads "7.0 Jobs/Month".
func DealsLabel(d float64) string {
	return Deals(d) + " Jobs/Month"
}

// CPALabel reads "$70 per Appointment".
func CPALabel(cpa float64) string {
	return Currency(cpa) + " per Appointment"
}
