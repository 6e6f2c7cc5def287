package query

import "strings"

// SortField names a view field and its direction.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// ParseSortFields parses a comma-separated sort expression such as "name,-created_at".
// A leading "-" sorts descending. Field names are converted from snake_case to the
// PascalCase view names used by projections.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	fields := make([]SortField, 0)
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		desc := strings.HasPrefix(part, "-")
		part = strings.TrimPrefix(part, "-")
		if part == "" {
			continue
		}

		fields = append(fields, SortField{
			Field:      viewName(part),
			Descending: desc,
		})
	}
	return fields
}

func viewName(field string) string {
	var b strings.Builder
	for _, seg := range strings.Split(field, "_") {
		if seg == "" {
			continue
		}
		if strings.EqualFold(seg, "id") {
			b.WriteString("ID")
			continue
		}
		b.WriteString(strings.ToUpper(seg[:1]))
		b.WriteString(seg[1:])
	}
	return b.String()
}
