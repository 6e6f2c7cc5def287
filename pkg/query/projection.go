package query

import "strings"

// ProjectionMap maps view field names onto qualified table columns.
type ProjectionMap struct {
	schema  string
	table   string
	alias   string
	columns []string
	fields  map[string]string
}

// NewProjectionMap creates a projection for schema.table with the given alias.
func NewProjectionMap(schema, table, alias string) *ProjectionMap {
	return &ProjectionMap{
		schema:  schema,
		table:   table,
		alias:   alias,
		columns: make([]string, 0),
		fields:  make(map[string]string),
	}
}

// Project maps column to the view name. Columns are selected in projection order.
func (p *ProjectionMap) Project(column, viewName string) *ProjectionMap {
	qualified := p.alias + "." + column
	p.columns = append(p.columns, qualified)
	p.fields[viewName] = qualified
	return p
}

// Alias returns the table alias.
func (p *ProjectionMap) Alias() string {
	return p.alias
}

// Table returns the aliased table reference for a FROM clause.
func (p *ProjectionMap) Table() string {
	return p.schema + "." + p.table + " " + p.alias
}

// Column resolves a view name to its qualified column. Unknown names are returned unchanged.
func (p *ProjectionMap) Column(viewName string) string {
	if col, ok := p.fields[viewName]; ok {
		return col
	}
	return viewName
}

// Has reports whether viewName is projected.
func (p *ProjectionMap) Has(viewName string) bool {
	_, ok := p.fields[viewName]
	return ok
}

// Columns returns the comma-separated select list.
func (p *ProjectionMap) Columns() string {
	return strings.Join(p.columns, ", ")
}

// ColumnList returns the qualified columns in projection order.
func (p *ProjectionMap) ColumnList() []string {
	list := make([]string, len(p.columns))
	copy(list, p.columns)
	return list
}
