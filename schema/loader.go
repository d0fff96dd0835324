package schema

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"sync"
)

var (
	columns     []Column
	columnsErr  error
	columnsOnce sync.Once
)

// Columns returns the positional layout of the input table, read from the
// col tags on MatchRecord.
func Columns() ([]Column, error) {
	columnsOnce.Do(func() {
		columns, columnsErr = loadColumns(reflect.TypeOf(MatchRecord{}))
	})
	return columns, columnsErr
}

// ColumnNames returns the input column names in position order.
func ColumnNames() []string {
	cols, err := Columns()
	if err != nil {
		return nil
	}
	names := make([]string, len(cols))
	for i, c := range cols {
		names[i] = c.Name
	}
	return names
}

// ColumnCount is the number of positional columns every input row must have.
func ColumnCount() int {
	cols, _ := Columns()
	return len(cols)
}

// Values returns the fields of r as strings, in column order.
func Values(r MatchRecord) []string {
	cols, err := Columns()
	if err != nil {
		return nil
	}
	v := reflect.ValueOf(r)
	out := make([]string, len(cols))
	for i, c := range cols {
		f := v.Field(c.Field)
		if c.Type == IntColumn {
			out[i] = strconv.FormatInt(f.Int(), 10)
		} else {
			out[i] = f.String()
		}
	}
	return out
}

func loadColumns(t reflect.Type) ([]Column, error) {
	var result []Column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("col")
		if tag == "" {
			continue
		}
		col, err := parseColTag(field.Name, tag)
		if err != nil {
			return nil, fmt.Errorf("error parsing tag on %s.%s: %w", t.Name(), field.Name, err)
		}
		if col.Type == IntColumn && field.Type.Kind() != reflect.Int {
			return nil, fmt.Errorf("field %s.%s is tagged int but has kind %s", t.Name(), field.Name, field.Type.Kind())
		}
		if col.Type == TextColumn && field.Type.Kind() != reflect.String {
			return nil, fmt.Errorf("field %s.%s is tagged text but has kind %s", t.Name(), field.Name, field.Type.Kind())
		}
		col.Position = len(result)
		col.Field = i
		result = append(result, col)
	}
	return result, nil
}

func parseColTag(fieldName, tag string) (Column, error) {
	parts := strings.Split(tag, ",")
	col := Column{
		Name: strings.ToLower(fieldName),
		Type: TextColumn,
	}
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if strings.HasPrefix(part, "type:") {
			switch ColumnType(strings.TrimPrefix(part, "type:")) {
			case IntColumn:
				col.Type = IntColumn
			case TextColumn:
				col.Type = TextColumn
			default:
				return col, fmt.Errorf("unknown column type %q", part)
			}
		} else {
			col.Name = part
		}
	}
	return col, nil
}
