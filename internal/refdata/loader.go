package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Categories are the reference-sheet columns the portal exposes as
// dropdown options.
var Categories = []string{
	"Item Sr. No.",
	"SRO",
	"Document Type",
	"UOM",
	"Province",
	"Buyer Type",
	"Sale Types",
	"Rate",
	"Description",
	"Reason",
}

// Set is a read-only collection of per-category option lists. Each list
// is deduplicated and sorted; a category absent from the sheet yields an
// empty list, not an error.
type Set struct {
	options map[string][]string
}

// Load reads the references CSV and builds the option lists.
func Load(path string) (*Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open reference data: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are common in the exported sheet
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read reference data: %w", err)
	}

	s := &Set{options: map[string][]string{}}
	if len(records) == 0 {
		return s, nil
	}

	colIndex := map[string]int{}
	for i, name := range records[0] {
		colIndex[strings.TrimSpace(name)] = i
	}

	for _, category := range Categories {
		idx, ok := colIndex[category]
		if !ok {
			s.options[category] = []string{}
			continue
		}
		var values []string
		for _, row := range records[1:] {
			if idx >= len(row) {
				continue
			}
			if v := strings.TrimSpace(row[idx]); v != "" {
				values = append(values, v)
			}
		}
		values = lo.Uniq(values)
		sort.Strings(values)
		s.options[category] = values
	}

	return s, nil
}

// Options returns the option list for a category. Unknown categories
// return an empty list.
func (s *Set) Options(category string) []string {
	return s.options[category]
}

// First returns the first option for a category, or fallback when the
// category is empty.
func (s *Set) First(category, fallback string) string {
	opts := s.options[category]
	if len(opts) == 0 {
		return fallback
	}
	return opts[0]
}
