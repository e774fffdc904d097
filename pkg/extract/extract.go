// Package extract maps raw SDE documents into ordered row tuples. Each
// entity kind declares a small rule table (column name -> extraction rule);
// columns without a rule fall back to a direct same-named field lookup.
// Every produced tuple matches its column list position for position, and
// no rule ever fails on a missing field: absence degrades to NULL or the
// rule's documented default.
package extract

import (
	"github.com/zenevan/sde2sql/pkg/sde"
	"github.com/zenevan/sde2sql/pkg/sqlgen"
	stringpool "github.com/zenevan/sde2sql/pkg/strings"
)

// Func turns one raw document into row tuples for the given column list.
type Func func(doc sde.Document, columns []string) []sqlgen.Row

// Rule resolves one column value from a document entry.
type Rule func(key interface{}, fields sde.Fields) interface{}

// RuleSet maps column names to their extraction rules.
type RuleSet map[string]Rule

// Field looks a differently-named source field up directly; absent fields
// yield NULL.
func Field(name string) Rule {
	return func(_ interface{}, f sde.Fields) interface{} {
		return f.Value(name)
	}
}

// Or looks a source field up with an explicit default for absent values.
func Or(name string, fallback interface{}) Rule {
	return func(_ interface{}, f sde.Fields) interface{} {
		if v, ok := f.Get(name); ok {
			return v
		}
		return fallback
	}
}

// Const always yields the same value, for columns the source cannot fill.
func Const(value interface{}) Rule {
	return func(interface{}, sde.Fields) interface{} {
		return value
	}
}

// Flag reads a boolean-like field; absence defaults to false, which the
// sanitizer renders as 0.
func Flag(name string) Rule {
	return func(_ interface{}, f sde.Fields) interface{} {
		return f.Bool(name)
	}
}

// Localized unwraps a localized-text field using the given language key.
// When the field or the translation is absent the fallback label is used;
// pass nil to degrade to NULL.
func Localized(name, lang string, fallback interface{}) Rule {
	return func(_ interface{}, f sde.Fields) interface{} {
		if s, ok := f.Localized(name, lang); ok {
			return s
		}
		return fallback
	}
}

// Nested walks a path of nested mappings; any absent level yields NULL.
func Nested(path ...string) Rule {
	return func(_ interface{}, f sde.Fields) interface{} {
		for i, name := range path {
			if i == len(path)-1 {
				return f.Value(name)
			}
			if f = f.Map(name); f == nil {
				return nil
			}
		}
		return nil
	}
}

// Keyed builds an extraction function for keyed documents. The first
// requested column is the identifier column and takes the entry key with
// its source type preserved; other columns resolve through the rule set,
// falling back to a direct same-named field lookup with localized-text
// unwrapping for the given language.
func Keyed(lang string, rules RuleSet) Func {
	return func(doc sde.Document, columns []string) []sqlgen.Row {
		rows := make([]sqlgen.Row, 0, doc.Len())
		for _, entry := range doc.Entries {
			row := make(sqlgen.Row, 0, len(columns))
			for i, column := range columns {
				switch {
				case i == 0:
					row = append(row, entry.Key)
				default:
					row = append(row, resolve(rules, column, lang, entry.Key, entry.Fields))
				}
			}
			rows = append(rows, row)
		}
		return rows
	}
}

// Children builds an extraction function emitting one row per element of a
// nested list field. The identifier column takes the parent entry key;
// other columns resolve against the child element.
func Children(lang string, rules RuleSet, path ...string) Func {
	listField := path[len(path)-1]
	parents := path[:len(path)-1]

	return func(doc sde.Document, columns []string) []sqlgen.Row {
		var rows []sqlgen.Row
		for _, entry := range doc.Entries {
			fields := entry.Fields
			for _, name := range parents {
				if fields = fields.Map(name); fields == nil {
					break
				}
			}
			if fields == nil {
				continue
			}

			for _, element := range fields.List(listField) {
				child, ok := element.(map[string]interface{})
				if !ok {
					continue
				}

				row := make(sqlgen.Row, 0, len(columns))
				for i, column := range columns {
					if i == 0 {
						row = append(row, entry.Key)
						continue
					}
					row = append(row, resolve(rules, column, lang, entry.Key, sde.Fields(child)))
				}
				rows = append(rows, row)
			}
		}
		return rows
	}
}

// Listed builds an extraction function for key-less record lists. Columns
// resolve through the rule set, then by exact field name, then by the
// lower-camel translation of the column name.
func Listed(lang string, rules RuleSet) Func {
	return func(doc sde.Document, columns []string) []sqlgen.Row {
		rows := make([]sqlgen.Row, 0, doc.Len())
		for _, entry := range doc.Entries {
			row := make(sqlgen.Row, 0, len(columns))
			for _, column := range columns {
				if rule, ok := rules[column]; ok {
					row = append(row, rule(entry.Key, entry.Fields))
					continue
				}
				if v, ok := entry.Fields.Get(column); ok {
					row = append(row, v)
					continue
				}
				row = append(row, entry.Fields.Value(camelField(column)))
			}
			rows = append(rows, row)
		}
		return rows
	}
}

// resolve applies a rule when one exists, else falls back to a direct
// same-named lookup, unwrapping localized-text mappings for lang.
func resolve(rules RuleSet, column, lang string, key interface{}, fields sde.Fields) interface{} {
	if rule, ok := rules[column]; ok {
		return rule(key, fields)
	}

	v, ok := fields.Get(column)
	if !ok {
		return nil
	}
	if _, isMap := v.(map[string]interface{}); isMap {
		if s, ok := fields.Localized(column, lang); ok {
			return s
		}
		return nil
	}
	return v
}

// camelField translates a snake_case column name into the lower-camel
// field naming the BSD documents use: station_type_id -> stationTypeID.
func camelField(column string) string {
	b := stringpool.GetBuilder(stringpool.Small)
	defer stringpool.PutBuilder(b, stringpool.Small)

	first := true
	start := 0
	for i := 0; i <= len(column); i++ {
		if i < len(column) && column[i] != '_' {
			continue
		}
		token := column[start:i]
		start = i + 1
		if token == "" {
			continue
		}

		switch {
		case first:
			b.WriteString(token)
			first = false
		case token == "id":
			b.WriteString("ID")
		default:
			b.WriteByte(token[0] &^ 0x20)
			b.WriteString(token[1:])
		}
	}
	return stringpool.Clone(b.String())
}
