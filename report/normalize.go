package report

import (
	"fmt"

	"github.com/soderasen-au/go-common/util"
)

// Record is a raw domain record as handed over by the data-access layer:
// source field name => value. Joined fields of a deleted related entity are
// simply absent (or nil).
type Record map[string]interface{}

// FieldRule maps one source field onto one report column. Placeholder is
// substituted when the source field is missing or nil (e.g. "Unknown
// Product" for a sale whose product was deleted); a rule with a nil
// Placeholder marks the field as required.
type FieldRule struct {
	Column      string      `json:"column" yaml:"column"`
	Field       string      `json:"field" yaml:"field"`
	Placeholder interface{} `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
}

// FieldMap is the caller-supplied description of how a domain record becomes
// a uniform Row. All per-category knowledge (sales vs. damages vs. bottles)
// lives in these maps; the printers stay domain-agnostic.
type FieldMap []FieldRule

// Normalize converts one domain record into a Row. Missing joined data
// resolves to the rule's placeholder, never an error; only a nil record or a
// required field with no value and no placeholder fails.
func (m FieldMap) Normalize(rec Record) (Row, *util.Result) {
	if rec == nil {
		return nil, util.MsgError("InvalidRecord", "nil record")
	}

	row := make(Row, len(m))
	for _, rule := range m {
		v, ok := rec[rule.Field]
		if !ok || v == nil {
			if rule.Placeholder == nil {
				return nil, util.MsgError("InvalidRecord", fmt.Sprintf("required field `%s` has no value", rule.Field))
			}
			v = rule.Placeholder
		}
		row[rule.Column] = v
	}
	return row, nil
}

// NormalizeAll converts a record slice, aborting on the first invalid record.
func (m FieldMap) NormalizeAll(recs []Record) ([]Row, *util.Result) {
	rows := make([]Row, 0, len(recs))
	for i, rec := range recs {
		row, res := m.Normalize(rec)
		if res != nil {
			return nil, res.With(fmt.Sprintf("record[%d]", i))
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// Columns derives the column key order declared by the map.
func (m FieldMap) Columns() []string {
	keys := make([]string, len(m))
	for i, rule := range m {
		keys[i] = rule.Column
	}
	return keys
}
