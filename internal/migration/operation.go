package migration

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"onlinemaid-backend/internal/schema"
)

// Operation is one schema change inside a step. Mutate applies it to an
// in-memory schema; Statements renders the DDL for the schema as it was
// before the operation.
type Operation interface {
	Describe() string
	Mutate(s *schema.State) error
	Statements(d schema.Dialect, s *schema.State) ([]string, error)
}

// CreateEntity introduces a new entity with its initial fields.
type CreateEntity struct {
	Entity string
	Table  string
	Fields []schema.Field
	// Unique lists field-name groups that must be unique together.
	Unique [][]string
}

func (op CreateEntity) Describe() string { return "Create entity " + op.Entity }

func (op CreateEntity) entity() schema.Entity {
	return schema.Entity{Name: op.Entity, Table: op.Table, Fields: op.Fields, Unique: op.Unique}
}

func (op CreateEntity) Mutate(s *schema.State) error {
	return s.AddEntity(op.entity())
}

func (op CreateEntity) Statements(d schema.Dialect, s *schema.State) ([]string, error) {
	return d.CreateTable(s, op.entity())
}

// AddField adds a column to an existing entity.
type AddField struct {
	Entity string
	Field  schema.Field
}

func (op AddField) Describe() string { return fmt.Sprintf("Add field %s to %s", op.Field.Name, op.Entity) }

func (op AddField) Mutate(s *schema.State) error {
	return s.AddField(op.Entity, op.Field)
}

func (op AddField) Statements(d schema.Dialect, s *schema.State) ([]string, error) {
	e, err := s.Entity(op.Entity)
	if err != nil {
		return nil, err
	}
	return d.AddColumn(s, e, op.Field)
}

// AlterField replaces the full definition of an existing field.
type AlterField struct {
	Entity string
	Field  schema.Field
}

func (op AlterField) Describe() string { return fmt.Sprintf("Alter field %s on %s", op.Field.Name, op.Entity) }

func (op AlterField) Mutate(s *schema.State) error {
	return s.AlterField(op.Entity, op.Field)
}

func (op AlterField) Statements(d schema.Dialect, s *schema.State) ([]string, error) {
	e, err := s.Entity(op.Entity)
	if err != nil {
		return nil, err
	}
	old, ok := e.Field(op.Field.Name)
	if !ok {
		return nil, errors.Wrapf(schema.ErrUnknownField, "%s.%s", op.Entity, op.Field.Name)
	}
	return d.AlterColumn(s, e, old, op.Field)
}

// AddRelation links an entity to another. A ManyToMany relation creates a
// join table; otherwise Field is added as a foreign key column.
type AddRelation struct {
	Entity     string
	Field      schema.Field
	ManyToMany *ManyToMany
}

// ManyToMany describes a join between Entity and Target stored in Table.
type ManyToMany struct {
	Name   string
	Target string
	Table  string
}

func (op AddRelation) Describe() string {
	if op.ManyToMany != nil {
		return fmt.Sprintf("Add many-to-many %s on %s", op.ManyToMany.Name, op.Entity)
	}
	return fmt.Sprintf("Add relation %s to %s", op.Field.Name, op.Entity)
}

func (op AddRelation) joinEntity() schema.Entity {
	m := op.ManyToMany
	from := schema.Snake(op.Entity)
	to := schema.Snake(m.Target)
	return schema.Entity{
		Name:  op.Entity + "." + m.Name,
		Table: m.Table,
		Fields: []schema.Field{
			schema.AutoID(),
			schema.ForeignKey(from, op.Entity, schema.Cascade),
			schema.ForeignKey(to, m.Target, schema.Cascade),
		},
		Unique: [][]string{{from, to}},
	}
}

func (op AddRelation) Mutate(s *schema.State) error {
	if op.ManyToMany != nil {
		if _, err := s.Entity(op.Entity); err != nil {
			return err
		}
		return s.AddEntity(op.joinEntity())
	}
	if !op.Field.IsRelation() {
		return errors.Newf("relation %s.%s is not a reference field", op.Entity, op.Field.Name)
	}
	return s.AddField(op.Entity, op.Field)
}

func (op AddRelation) Statements(d schema.Dialect, s *schema.State) ([]string, error) {
	if op.ManyToMany != nil {
		return d.CreateTable(s, op.joinEntity())
	}
	e, err := s.Entity(op.Entity)
	if err != nil {
		return nil, err
	}
	return d.AddColumn(s, e, op.Field)
}

// SeedChoices inserts one row per choice of a catalog entity, e.g. the
// work duty catalog. It leaves the schema untouched.
type SeedChoices struct {
	Entity string
	Field  string
}

func (op SeedChoices) Describe() string { return fmt.Sprintf("Seed %s.%s", op.Entity, op.Field) }

func (op SeedChoices) Mutate(s *schema.State) error {
	_, err := op.field(s)
	return err
}

func (op SeedChoices) field(s *schema.State) (schema.Field, error) {
	e, err := s.Entity(op.Entity)
	if err != nil {
		return schema.Field{}, err
	}
	f, ok := e.Field(op.Field)
	if !ok {
		return schema.Field{}, errors.Wrapf(schema.ErrUnknownField, "%s.%s", op.Entity, op.Field)
	}
	if f.Choices.IsZero() {
		return schema.Field{}, errors.Newf("%s.%s has no choices to seed", op.Entity, op.Field)
	}
	return f, nil
}

func (op SeedChoices) Statements(d schema.Dialect, s *schema.State) ([]string, error) {
	f, err := op.field(s)
	if err != nil {
		return nil, err
	}
	e, _ := s.Entity(op.Entity)
	return d.Insert(e, f.Column(), f.Choices.Codes()), nil
}
