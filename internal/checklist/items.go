package checklist

// ISO9001Items is the quality-management checklist.
var ISO9001Items = []string{
	"Customer requirements are clearly defined and documented.",
	"Quality objectives are established and tracked.",
	"Non-conformities are identified and addressed promptly.",
	"Regular internal audits are conducted.",
	"Customer feedback is regularly reviewed and acted upon.",
}

// CMMIItems is the process-maturity checklist.
var CMMIItems = []string{
	"Project planning includes risk management strategies.",
	"Requirements are clearly documented and validated.",
	"Processes are standardized and documented.",
	"Quality assurance activities are integrated into the project lifecycle.",
	"Process improvements are tracked and implemented.",
}

// Definition pairs a checklist with the tier table that scores it.
type Definition struct {
	Title string
	Items []string
	Bands Bands
}

// ComplianceChecklist is the default ISO 9001 definition.
func ComplianceChecklist() Definition {
	return Definition{
		Title: "ISO 9001 Checklist",
		Items: append([]string(nil), ISO9001Items...),
		Bands: append(Bands(nil), ComplianceBands...),
	}
}

// MaturityChecklist is the default CMMI definition.
func MaturityChecklist() Definition {
	return Definition{
		Title: "CMMI Checklist",
		Items: append([]string(nil), CMMIItems...),
		Bands: append(Bands(nil), MaturityBands...),
	}
}
