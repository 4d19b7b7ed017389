package repository

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/okian/courserec/internal/domain/model"
)

// Column order of a catalog CSV file. A header row is required and
// columns are resolved by name, so extra columns are tolerated.
var requiredColumns = []string{
	"id", "title", "description", "platform", "duration",
	"skill_level", "type", "category", "url",
}

// LoadCatalogFile reads a catalog CSV from disk.
func LoadCatalogFile(path string) ([]model.Course, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// LoadCatalog parses catalog rows from a reader. Rows with an unknown
// skill level or pricing value are rejected rather than skipped, so a
// corrupted file never silently shrinks the catalog.
func LoadCatalog(r io.Reader) ([]model.Course, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: missing header", ErrMalformedRow)
	}

	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.ToLower(strings.TrimSpace(name))] = i
	}
	for _, name := range requiredColumns {
		if _, ok := col[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrMalformedRow, name)
		}
	}

	var courses []model.Course
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrMalformedRow, line, err)
		}

		field := func(name string) string {
			return strings.TrimSpace(row[col[name]])
		}

		skill, ok := model.ParseSkillLevel(field("skill_level"))
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown skill level %q", ErrMalformedRow, line, field("skill_level"))
		}
		pricing, ok := model.ParsePricing(field("type"))
		if !ok {
			return nil, fmt.Errorf("%w: line %d: unknown pricing %q", ErrMalformedRow, line, field("type"))
		}

		courses = append(courses, model.Course{
			ID:          field("id"),
			Title:       field("title"),
			Description: field("description"),
			Platform:    field("platform"),
			Duration:    field("duration"),
			SkillLevel:  skill,
			Pricing:     pricing,
			Category:    field("category"),
			URL:         field("url"),
		})
	}

	if len(courses) == 0 {
		return nil, ErrEmptyCatalog
	}
	return courses, nil
}
