package repository

import (
	"fmt"
	"slices"
	"strings"

	"gorm.io/gorm/clause"
)

const defaultSortColumn = "date_added"

// Sort is a validated ORDER BY over a whitelisted column.
type Sort struct {
	Column string
	Desc   bool
}

// ParseSort validates a client sort_term/sort_dir pair against the columns
// an entity allows. An empty term or "all" sorts by date_added; an empty
// direction sorts newest first.
func ParseSort(term, dir string, allowed []string) (Sort, error) {
	sort := Sort{Column: defaultSortColumn, Desc: true}

	term = strings.ToLower(strings.TrimSpace(term))
	if term != "" && term != "all" {
		if !slices.Contains(allowed, term) && term != defaultSortColumn {
			return Sort{}, fmt.Errorf("%w: unknown sort_term %q", ErrInvalidSort, term)
		}
		sort.Column = term
	}

	switch strings.ToLower(strings.TrimSpace(dir)) {
	case "", "desc":
		sort.Desc = true
	case "asc":
		sort.Desc = false
	default:
		return Sort{}, fmt.Errorf("%w: sort_dir must be asc or desc", ErrInvalidSort)
	}
	return sort, nil
}

func (s Sort) clause() clause.OrderByColumn {
	column := s.Column
	if column == "" {
		column = defaultSortColumn
	}
	return clause.OrderByColumn{Column: clause.Column{Name: column}, Desc: s.Desc}
}

// SearchColumn validates a client search_by against the columns an entity allows.
func SearchColumn(by string, allowed []string) (string, error) {
	by = strings.ToLower(strings.TrimSpace(by))
	if !slices.Contains(allowed, by) {
		return "", fmt.Errorf("%w: %q", ErrInvalidSearch, by)
	}
	return by, nil
}

func likePattern(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(term) + "%"
}
