package domain

// ResidentStatus is the lifecycle state of a resident within the facility.
type ResidentStatus string

const (
	ResidentActive       ResidentStatus = "ACTIVE"
	ResidentHospitalized ResidentStatus = "HOSPITALIZED"
	ResidentDischarged   ResidentStatus = "DISCHARGED"
	ResidentDeceased     ResidentStatus = "DECEASED"
)

// Resident is the roster entry consumed by the KPI deriver and the
// readjustment engine. Resident CRUD itself lives outside this core.
type Resident struct {
	ResidentID string         `json:"residentID"`
	Name       string         `json:"name"`
	Status     ResidentStatus `json:"status"`
	AuditFields
}

// OccupiesBed reports whether the resident currently holds a bed. Hospitalized
// residents keep their bed reserved.
func (r Resident) OccupiesBed() bool {
	return r.Status == ResidentActive || r.Status == ResidentHospitalized
}
