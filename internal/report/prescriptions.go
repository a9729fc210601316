package report

import (
	"sort"

	"hospital-management-api/internal/models"
)

type PrescriptionEntry struct {
	DrugName string `json:"drug_name"`
	Quantity int    `json:"quantity"`
	Notes    string `json:"notes"`
}

// PrescriptionGroup merges every prescription issued under one patient name.
type PrescriptionGroup struct {
	PrescriptionID uint                `json:"prescription_id"`
	PatientName    string              `json:"patient_name"`
	Entries        []PrescriptionEntry `json:"entries"`
	Dates          []string            `json:"dates"`
}

// GroupPrescriptions groups by patient name, not patient id, so two patients
// sharing a name end up in one group. Groups keep first-seen order; each
// group's prescription_id is that of the last prescription merged into it.
func GroupPrescriptions(prescriptions []models.Prescription) []PrescriptionGroup {
	groups := []*PrescriptionGroup{}
	byName := map[string]*PrescriptionGroup{}
	seenDates := map[string]map[string]struct{}{}

	for _, p := range prescriptions {
		name := ""
		if p.Patient != nil {
			name = p.Patient.PatientName
		}

		g, ok := byName[name]
		if !ok {
			g = &PrescriptionGroup{PatientName: name, Entries: []PrescriptionEntry{}, Dates: []string{}}
			byName[name] = g
			seenDates[name] = map[string]struct{}{}
			groups = append(groups, g)
		}
		g.PrescriptionID = p.ID

		for _, item := range p.Items {
			entry := PrescriptionEntry{Quantity: item.DrugQty, Notes: item.Notes}
			if item.Drug != nil {
				entry.DrugName = item.Drug.DrugName
			}
			g.Entries = append(g.Entries, entry)
		}

		day := models.NewDate(p.DateAdded).String()
		if _, dup := seenDates[name][day]; !dup {
			seenDates[name][day] = struct{}{}
			g.Dates = append(g.Dates, day)
		}
	}

	out := make([]PrescriptionGroup, 0, len(groups))
	for _, g := range groups {
		sort.Strings(g.Dates)
		out = append(out, *g)
	}
	return out
}
