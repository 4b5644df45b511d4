package schema

import (
	"strings"
	"unicode"
)

// Kind is the semantic type of a field.
type Kind int

const (
	KindAutoID Kind = iota
	KindText
	KindLongText
	KindInteger
	KindPositiveInteger
	KindBoolean
	KindDate
	KindDateTime
	KindDuration
	KindForeignKey
	KindOneToOne
)

var kindNames = map[Kind]string{
	KindAutoID:          "auto_id",
	KindText:            "text",
	KindLongText:        "long_text",
	KindInteger:         "integer",
	KindPositiveInteger: "positive_integer",
	KindBoolean:         "boolean",
	KindDate:            "date",
	KindDateTime:        "datetime",
	KindDuration:        "duration",
	KindForeignKey:      "foreign_key",
	KindOneToOne:        "one_to_one",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// OnDelete is the referential action applied when the referenced row goes away.
type OnDelete string

const (
	Cascade OnDelete = "CASCADE"
	SetNull OnDelete = "SET NULL"
)

// Reference points a relation field at another entity's primary key.
type Reference struct {
	Entity   string
	OnDelete OnDelete
}

// Field describes one attribute of an entity.
type Field struct {
	Name      string
	Kind      Kind
	MaxLength int
	Null      bool
	Primary   bool
	Default   any
	Choices   ChoiceSet
	Ref       *Reference
}

// IsRelation reports whether the field stores a reference to another entity.
func (f Field) IsRelation() bool {
	return f.Kind == KindForeignKey || f.Kind == KindOneToOne
}

// Column is the storage column name. Relations are stored as <name>_id.
func (f Field) Column() string {
	if f.IsRelation() {
		return f.Name + "_id"
	}
	return f.Name
}

// Field constructors used by migration history.

func AutoID() Field {
	return Field{Name: "id", Kind: KindAutoID, Primary: true}
}

func Text(name string, maxLength int) Field {
	return Field{Name: name, Kind: KindText, MaxLength: maxLength}
}

func LongText(name string) Field {
	return Field{Name: name, Kind: KindLongText}
}

func Integer(name string) Field {
	return Field{Name: name, Kind: KindInteger}
}

func PositiveInteger(name string) Field {
	return Field{Name: name, Kind: KindPositiveInteger}
}

func Boolean(name string, def bool) Field {
	return Field{Name: name, Kind: KindBoolean, Default: def}
}

func Date(name string) Field {
	return Field{Name: name, Kind: KindDate, Null: true}
}

func DateTime(name string) Field {
	return Field{Name: name, Kind: KindDateTime}
}

func Duration(name string) Field {
	return Field{Name: name, Kind: KindDuration}
}

func ForeignKey(name, entity string, onDelete OnDelete) Field {
	return Field{Name: name, Kind: KindForeignKey, Null: onDelete == SetNull, Ref: &Reference{Entity: entity, OnDelete: onDelete}}
}

func OneToOne(name, entity string) Field {
	return Field{Name: name, Kind: KindOneToOne, Ref: &Reference{Entity: entity, OnDelete: Cascade}}
}

// WithChoices returns a copy of f restricted to cs.
func (f Field) WithChoices(cs ChoiceSet) Field {
	f.Choices = cs
	return f
}

// WithDefault returns a copy of f with a default value.
func (f Field) WithDefault(v any) Field {
	f.Default = v
	return f
}

// Nullable returns a copy of f that accepts NULL.
func (f Field) Nullable() Field {
	f.Null = true
	return f
}

// WithMaxLength returns a copy of f with a new length bound.
func (f Field) WithMaxLength(n int) Field {
	f.MaxLength = n
	return f
}

// Snake converts an entity name such as MaidEmploymentHistory to
// maid_employment_history.
func Snake(name string) string {
	var b strings.Builder
	runes := []rune(name)
	for i, r := range runes {
		if unicode.IsUpper(r) {
			if i > 0 && (unicode.IsLower(runes[i-1]) || (i+1 < len(runes) && unicode.IsLower(runes[i+1]))) {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
