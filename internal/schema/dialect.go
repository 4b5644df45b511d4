package schema

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

// ErrUnsupportedAlter is returned when a dialect cannot express a field change.
var ErrUnsupportedAlter = errors.New("unsupported field alteration")

// Dialect renders schema changes as DDL for one database engine. Enumerated
// domains are not part of the DDL; they are enforced by the application.
type Dialect interface {
	Name() string
	CreateTable(s *State, e Entity) ([]string, error)
	AddColumn(s *State, e *Entity, f Field) ([]string, error)
	AlterColumn(s *State, e *Entity, old, updated Field) ([]string, error)
	Insert(e *Entity, column string, values []string) []string
}

// DialectFor maps a gorm dialector name to a Dialect.
func DialectFor(name string) (Dialect, error) {
	switch name {
	case "postgres":
		return Postgres, nil
	case "sqlite":
		return SQLite, nil
	}
	return nil, errors.Newf("no schema dialect for %q", name)
}

var (
	Postgres Dialect = postgresDialect{}
	SQLite   Dialect = sqliteDialect{}
)

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

func literal(v any, boolean func(bool) string) string {
	switch x := v.(type) {
	case string:
		return "'" + strings.ReplaceAll(x, "'", "''") + "'"
	case bool:
		return boolean(x)
	case int:
		return fmt.Sprintf("%d", x)
	case int64:
		return fmt.Sprintf("%d", x)
	}
	return fmt.Sprintf("'%v'", v)
}

// columnSpec holds the per-engine pieces of a column definition.
type columnSpec struct {
	typeOf  func(Field) string
	autoID  string
	boolean func(bool) string
}

func (c columnSpec) definition(s *State, f Field) (string, error) {
	if f.Kind == KindAutoID {
		return quote(f.Column()) + " " + c.autoID, nil
	}
	parts := []string{quote(f.Column()), c.typeOf(f)}
	if f.Primary {
		parts = append(parts, "PRIMARY KEY")
	} else if !f.Null {
		parts = append(parts, "NOT NULL")
	}
	if f.Default != nil {
		parts = append(parts, "DEFAULT "+literal(f.Default, c.boolean))
	}
	if f.Kind == KindPositiveInteger {
		parts = append(parts, fmt.Sprintf("CHECK (%s >= 0)", quote(f.Column())))
	}
	if f.Kind == KindOneToOne {
		parts = append(parts, "UNIQUE")
	}
	if f.Ref != nil {
		target, err := s.Entity(f.Ref.Entity)
		if err != nil {
			return "", err
		}
		parts = append(parts, fmt.Sprintf("REFERENCES %s (%s) ON DELETE %s", quote(target.Table), quote("id"), f.Ref.OnDelete))
	}
	return strings.Join(parts, " "), nil
}

func (c columnSpec) createTable(s *State, e Entity) ([]string, error) {
	defs := make([]string, 0, len(e.Fields)+len(e.Unique))
	for _, f := range e.Fields {
		def, err := c.definition(s, f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s.%s", e.Name, f.Name)
		}
		defs = append(defs, def)
	}
	for _, u := range e.Unique {
		cols := lo.Map(u, func(name string, _ int) string {
			if f, ok := e.Field(name); ok {
				return quote(f.Column())
			}
			return quote(name)
		})
		defs = append(defs, "UNIQUE ("+strings.Join(cols, ", ")+")")
	}
	return []string{fmt.Sprintf("CREATE TABLE %s (%s)", quote(e.Table), strings.Join(defs, ", "))}, nil
}

func (c columnSpec) addColumn(s *State, e *Entity, f Field) ([]string, error) {
	def, err := c.definition(s, f)
	if err != nil {
		return nil, err
	}
	return []string{fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s", quote(e.Table), def)}, nil
}

func (c columnSpec) insert(e *Entity, column string, values []string) []string {
	return lo.Map(values, func(v string, _ int) string {
		return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", quote(e.Table), quote(column), literal(v, c.boolean))
	})
}

type postgresDialect struct{}

var postgresColumns = columnSpec{
	autoID: "bigserial PRIMARY KEY",
	typeOf: func(f Field) string {
		switch f.Kind {
		case KindText:
			return fmt.Sprintf("varchar(%d)", f.MaxLength)
		case KindLongText:
			return "text"
		case KindInteger, KindPositiveInteger:
			return "integer"
		case KindBoolean:
			return "boolean"
		case KindDate:
			return "date"
		case KindDateTime:
			return "timestamptz"
		case KindDuration, KindForeignKey, KindOneToOne:
			return "bigint"
		}
		return "text"
	},
	boolean: func(b bool) string {
		if b {
			return "true"
		}
		return "false"
	},
}

func (postgresDialect) Name() string { return "postgres" }

func (postgresDialect) CreateTable(s *State, e Entity) ([]string, error) {
	return postgresColumns.createTable(s, e)
}

func (postgresDialect) AddColumn(s *State, e *Entity, f Field) ([]string, error) {
	return postgresColumns.addColumn(s, e, f)
}

func (postgresDialect) AlterColumn(s *State, e *Entity, old, updated Field) ([]string, error) {
	if old.IsRelation() != updated.IsRelation() || old.Kind == KindAutoID || updated.Kind == KindAutoID {
		return nil, errors.Wrapf(ErrUnsupportedAlter, "%s.%s: %s to %s", e.Name, old.Name, old.Kind, updated.Kind)
	}
	prefix := fmt.Sprintf("ALTER TABLE %s ALTER COLUMN %s ", quote(e.Table), quote(updated.Column()))
	var stmts []string
	if oldType, newType := postgresColumns.typeOf(old), postgresColumns.typeOf(updated); oldType != newType {
		stmts = append(stmts, prefix+"TYPE "+newType)
	}
	if old.Default != updated.Default {
		if updated.Default == nil {
			stmts = append(stmts, prefix+"DROP DEFAULT")
		} else {
			stmts = append(stmts, prefix+"SET DEFAULT "+literal(updated.Default, postgresColumns.boolean))
		}
	}
	if old.Null != updated.Null {
		if updated.Null {
			stmts = append(stmts, prefix+"DROP NOT NULL")
		} else {
			stmts = append(stmts, prefix+"SET NOT NULL")
		}
	}
	constraints, err := postgresConstraintChanges(s, e, old, updated)
	if err != nil {
		return nil, err
	}
	return append(stmts, constraints...), nil
}

// postgresConstraintName is the name postgres gives an inline column
// constraint, so upgraded and freshly created tables can be altered alike.
func postgresConstraintName(table, column, suffix string) string {
	return quote(table + "_" + column + "_" + suffix)
}

// postgresConstraintChanges brings the column constraints that the field
// kind and reference imply in line with updated.
func postgresConstraintChanges(s *State, e *Entity, old, updated Field) ([]string, error) {
	table, column := quote(e.Table), quote(updated.Column())
	prefix := "ALTER TABLE " + table + " "
	var stmts []string

	toggle := func(was, is bool, suffix, def string) {
		name := postgresConstraintName(e.Table, updated.Column(), suffix)
		switch {
		case !was && is:
			stmts = append(stmts, prefix+"ADD CONSTRAINT "+name+" "+def)
		case was && !is:
			stmts = append(stmts, prefix+"DROP CONSTRAINT IF EXISTS "+name)
		}
	}
	toggle(old.Kind == KindPositiveInteger, updated.Kind == KindPositiveInteger,
		"check", fmt.Sprintf("CHECK (%s >= 0)", column))
	toggle(old.Kind == KindOneToOne, updated.Kind == KindOneToOne,
		"key", fmt.Sprintf("UNIQUE (%s)", column))

	if updated.Ref != nil && old.Ref != nil && *old.Ref != *updated.Ref {
		if s == nil {
			return nil, errors.Wrapf(ErrUnsupportedAlter, "%s.%s: reference change needs the schema state", e.Name, old.Name)
		}
		target, err := s.Entity(updated.Ref.Entity)
		if err != nil {
			return nil, err
		}
		name := postgresConstraintName(e.Table, updated.Column(), "fkey")
		stmts = append(stmts,
			prefix+"DROP CONSTRAINT IF EXISTS "+name,
			fmt.Sprintf("%sADD CONSTRAINT %s FOREIGN KEY (%s) REFERENCES %s (%s) ON DELETE %s",
				prefix, name, column, quote(target.Table), quote("id"), updated.Ref.OnDelete),
		)
	}
	return stmts, nil
}

func (postgresDialect) Insert(e *Entity, column string, values []string) []string {
	return postgresColumns.insert(e, column, values)
}

type sqliteDialect struct{}

var sqliteColumns = columnSpec{
	autoID: "integer PRIMARY KEY AUTOINCREMENT",
	typeOf: func(f Field) string {
		switch f.Kind {
		case KindText:
			return fmt.Sprintf("varchar(%d)", f.MaxLength)
		case KindLongText:
			return "text"
		case KindBoolean:
			return "boolean"
		case KindDate:
			return "date"
		case KindDateTime:
			return "datetime"
		}
		return "integer"
	},
	boolean: func(b bool) string {
		if b {
			return "1"
		}
		return "0"
	},
}

func (sqliteDialect) Name() string { return "sqlite" }

func (sqliteDialect) CreateTable(s *State, e Entity) ([]string, error) {
	return sqliteColumns.createTable(s, e)
}

func (sqliteDialect) AddColumn(s *State, e *Entity, f Field) ([]string, error) {
	if !f.Null && f.Default == nil {
		return nil, errors.Newf("sqlite cannot add NOT NULL column %s.%s without a default", e.Name, f.Name)
	}
	return sqliteColumns.addColumn(s, e, f)
}

// AlterColumn emits nothing for changes sqlite ignores anyway (varchar
// length, enumerated domain) and refuses the ones that would need a table
// rebuild.
func (sqliteDialect) AlterColumn(s *State, e *Entity, old, updated Field) ([]string, error) {
	if old.Null != updated.Null || old.Default != updated.Default || old.Kind != updated.Kind {
		return nil, errors.Wrapf(ErrUnsupportedAlter, "%s.%s on sqlite", e.Name, old.Name)
	}
	return nil, nil
}

func (sqliteDialect) Insert(e *Entity, column string, values []string) []string {
	return sqliteColumns.insert(e, column, values)
}
