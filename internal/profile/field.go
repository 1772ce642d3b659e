package profile

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

type fieldKind int

const (
	fieldUnset fieldKind = iota
	fieldColumn
	fieldLiteral
)

// Field is one mapped value of a profile: either a zero-based column index
// into the row, or a literal string used verbatim for every row.
type Field struct {
	kind  fieldKind
	index int
	value string
}

// Column returns a Field that reads column i.
func Column(i int) Field {
	return Field{kind: fieldColumn, index: i}
}

// Literal returns a Field that always yields s.
func Literal(s string) Field {
	return Field{kind: fieldLiteral, value: s}
}

// IsSet reports whether the field is a column or a literal.
func (f Field) IsSet() bool { return f.kind != fieldUnset }

// IsColumn reports whether the field reads a column.
func (f Field) IsColumn() bool { return f.kind == fieldColumn }

// IsLiteral reports whether the field is a literal.
func (f Field) IsLiteral() bool { return f.kind == fieldLiteral }

// Index returns the column index. Only meaningful for column fields.
func (f Field) Index() int { return f.index }

// Value returns the literal. Only meaningful for literal fields.
func (f Field) Value() string { return f.value }

// Resolve returns the field's value for a tokenized row. It reports false
// when the field is unset or its column is outside the row.
func (f Field) Resolve(fields []string) (string, bool) {
	switch f.kind {
	case fieldLiteral:
		return f.value, true
	case fieldColumn:
		if f.index < 0 || f.index >= len(fields) {
			return "", false
		}
		return fields[f.index], true
	default:
		return "", false
	}
}

func (f Field) String() string {
	switch f.kind {
	case fieldColumn:
		return "column " + strconv.Itoa(f.index)
	case fieldLiteral:
		return strconv.Quote(f.value)
	default:
		return "unset"
	}
}

// UnmarshalYAML decodes an integer as a column and anything else as a literal.
func (f *Field) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: mapping field must be a column number or a string", node.Line)
	}
	switch node.ShortTag() {
	case "!!null":
		*f = Field{}
		return nil
	case "!!int":
		i, err := strconv.Atoi(node.Value)
		if err != nil {
			return fmt.Errorf("line %d: parsing column %q: %w", node.Line, node.Value, err)
		}
		*f = Column(i)
		return nil
	}
	*f = Literal(node.Value)
	return nil
}

// MarshalYAML encodes a column as an integer and a literal as a string.
func (f Field) MarshalYAML() (any, error) {
	switch f.kind {
	case fieldColumn:
		return f.index, nil
	case fieldLiteral:
		return f.value, nil
	default:
		return nil, nil
	}
}
