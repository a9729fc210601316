// Package report filters tenant records for export and renders them as
// PDF, CSV or XLSX documents.
package report

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"hospital-management-api/internal/models"
)

var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidRange  = errors.New("invalid date range")
	ErrRangeTooLarge = errors.New("date range too large")
	ErrInvalidFormat = errors.New("invalid format")
	ErrEmptyReport   = errors.New("no records match the filter")
)

const (
	// MaxRangeDays is the widest start..end span a date-range export accepts.
	MaxRangeDays = 90
	// NewWithinDays is the look-back window of the "new" filters.
	NewWithinDays = 30
	AdultAge      = 18
)

// Filter keeps the rows for which keep returns true, in input order.
func Filter[T any](rows []T, keep func(T) bool) []T {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

type DrugFilter string

const (
	DrugsTotal     DrugFilter = "total"
	DrugsNew       DrugFilter = "new"
	DrugsExpired   DrugFilter = "expired"
	DrugsSafe      DrugFilter = "safe"
	DrugsAvailable DrugFilter = "available"
	DrugsDepleted  DrugFilter = "depleted"
	DrugsSellable  DrugFilter = "sellable"
)

var drugFilters = []DrugFilter{DrugsTotal, DrugsNew, DrugsExpired, DrugsSafe, DrugsAvailable, DrugsDepleted, DrugsSellable}

func ParseDrugFilter(s string) (DrugFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range drugFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q for drugs", ErrInvalidFilter, s)
}

func isNew(added time.Time, today models.Date) bool {
	return !models.NewDate(added).Before(today.AddDays(-NewWithinDays))
}

func drugExpired(d models.Drug, today models.Date) bool {
	return !d.DrugExpiry.IsZero() && d.DrugExpiry.Before(today)
}

// FilterDrugs applies one drug filter relative to today.
func FilterDrugs(drugs []models.Drug, f DrugFilter, today models.Date) ([]models.Drug, error) {
	switch f {
	case DrugsTotal:
		return Filter(drugs, func(models.Drug) bool { return true }), nil
	case DrugsNew:
		return Filter(drugs, func(d models.Drug) bool { return isNew(d.DateAdded, today) }), nil
	case DrugsExpired:
		return Filter(drugs, func(d models.Drug) bool { return drugExpired(d, today) }), nil
	case DrugsSafe:
		return Filter(drugs, func(d models.Drug) bool { return !drugExpired(d, today) }), nil
	case DrugsAvailable:
		return Filter(drugs, func(d models.Drug) bool { return d.DrugQuantity > 0 }), nil
	case DrugsDepleted:
		return Filter(drugs, func(d models.Drug) bool { return d.DrugQuantity <= 0 }), nil
	case DrugsSellable:
		available, _ := FilterDrugs(drugs, DrugsAvailable, today)
		expired, _ := FilterDrugs(drugs, DrugsExpired, today)
		excluded := make(map[uint]struct{}, len(expired))
		for _, d := range expired {
			excluded[d.ID] = struct{}{}
		}
		return Filter(available, func(d models.Drug) bool {
			_, gone := excluded[d.ID]
			return !gone
		}), nil
	default:
		return nil, fmt.Errorf("%w %q for drugs", ErrInvalidFilter, f)
	}
}

type PatientFilter string

const (
	PatientsAll      PatientFilter = "all"
	PatientsNew      PatientFilter = "new"
	PatientsAdults   PatientFilter = "adults"
	PatientsChildren PatientFilter = "children"
	PatientsMale     PatientFilter = "male"
	PatientsFemale   PatientFilter = "female"
)

var patientFilters = []PatientFilter{PatientsAll, PatientsNew, PatientsAdults, PatientsChildren, PatientsMale, PatientsFemale}

func ParsePatientFilter(s string) (PatientFilter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, f := range patientFilters {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w %q for patients", ErrInvalidFilter, s)
}

// AgeOn returns completed years between dob and today.
func AgeOn(dob, today models.Date) int {
	years := today.Year() - dob.Year()
	if today.Month() < dob.Month() || (today.Month() == dob.Month() && today.Day() < dob.Day()) {
		years--
	}
	return years
}

// isAdult treats an unknown date of birth as adult so adults and children
// partition every patient set.
func isAdult(p models.Patient, today models.Date) bool {
	return p.PatientDOB.IsZero() || AgeOn(p.PatientDOB, today) >= AdultAge
}

// FilterPatients applies one patient filter relative to today.
func FilterPatients(patients []models.Patient, f PatientFilter, today models.Date) ([]models.Patient, error) {
	switch f {
	case PatientsAll:
		return Filter(patients, func(models.Patient) bool { return true }), nil
	case PatientsNew:
		return Filter(patients, func(p models.Patient) bool { return isNew(p.DateAdded, today) }), nil
	case PatientsAdults:
		return Filter(patients, func(p models.Patient) bool { return isAdult(p, today) }), nil
	case PatientsChildren:
		return Filter(patients, func(p models.Patient) bool { return !isAdult(p, today) }), nil
	case PatientsMale:
		return Filter(patients, func(p models.Patient) bool { return p.Gender() == "male" }), nil
	case PatientsFemale:
		return Filter(patients, func(p models.Patient) bool { return p.Gender() == "female" }), nil
	default:
		return nil, fmt.Errorf("%w %q for patients", ErrInvalidFilter, f)
	}
}

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	Start models.Date
	End   models.Date
}

// ParseDateRange validates start_date/end_date query values.
func ParseDateRange(start, end string) (DateRange, error) {
	if start == "" || end == "" {
		return DateRange{}, fmt.Errorf("%w: start_date and end_date are required", ErrInvalidRange)
	}
	s, err := models.ParseDate(start)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	e, err := models.ParseDate(end)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %v", ErrInvalidRange, err)
	}
	return NewDateRange(s, e)
}

func NewDateRange(start, end models.Date) (DateRange, error) {
	if end.Before(start) {
		return DateRange{}, fmt.Errorf("%w: end_date %s is before start_date %s", ErrInvalidRange, end, start)
	}
	if start.AddDays(MaxRangeDays).Before(end) {
		return DateRange{}, fmt.Errorf("%w: at most %d days may be exported at once", ErrRangeTooLarge, MaxRangeDays)
	}
	return DateRange{Start: start, End: end}, nil
}

func (r DateRange) Contains(t time.Time) bool {
	d := models.NewDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) Label() string {
	return r.Start.String() + "_to_" + r.End.String()
}

// FilterByDate keeps the rows whose date falls inside the range, in input order.
func FilterByDate[T any](rows []T, r DateRange, date func(T) time.Time) []T {
	return Filter(rows, func(row T) bool { return r.Contains(date(row)) })
}
