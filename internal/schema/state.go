package schema

import (
	"reflect"
	"sort"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"
)

var (
	ErrUnknownEntity   = errors.New("unknown entity")
	ErrDuplicateEntity = errors.New("entity already exists")
	ErrUnknownField    = errors.New("unknown field")
	ErrDuplicateField  = errors.New("field already exists")
)

// Entity is the shape of one table.
type Entity struct {
	Name   string
	Table  string
	Fields []Field
	// Unique lists composite uniqueness constraints by field name.
	Unique [][]string
}

// Field looks up a field by name.
func (e *Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Column looks up a field by its storage column name.
func (e *Entity) Column(column string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Column() == column {
			return f, true
		}
	}
	return Field{}, false
}

func (e *Entity) clone() *Entity {
	c := &Entity{Name: e.Name, Table: e.Table}
	c.Fields = append([]Field(nil), e.Fields...)
	for _, u := range e.Unique {
		c.Unique = append(c.Unique, append([]string(nil), u...))
	}
	return c
}

// State is an in-memory schema: the set of entities known at some point of
// migration history.
type State struct {
	entities map[string]*Entity
}

// NewState returns an empty schema.
func NewState() *State {
	return &State{entities: make(map[string]*Entity)}
}

// Entity returns the named entity.
func (s *State) Entity(name string) (*Entity, error) {
	e, ok := s.entities[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownEntity, "%q", name)
	}
	return e, nil
}

// EntityByTable returns the entity stored in table.
func (s *State) EntityByTable(table string) (*Entity, error) {
	for _, e := range s.entities {
		if e.Table == table {
			return e, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownEntity, "table %q", table)
}

// Entities returns all entities sorted by name.
func (s *State) Entities() []*Entity {
	out := lo.Values(s.entities)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// AddEntity registers a new entity. Relation fields must point at entities
// that already exist.
func (s *State) AddEntity(e Entity) error {
	if _, ok := s.entities[e.Name]; ok {
		return errors.Wrapf(ErrDuplicateEntity, "%q", e.Name)
	}
	seen := make(map[string]struct{}, len(e.Fields))
	for _, f := range e.Fields {
		if _, dup := seen[f.Name]; dup {
			return errors.Wrapf(ErrDuplicateField, "%s.%s", e.Name, f.Name)
		}
		seen[f.Name] = struct{}{}
		if err := s.checkRef(f); err != nil {
			return errors.Wrapf(err, "%s.%s", e.Name, f.Name)
		}
	}
	s.entities[e.Name] = e.clone()
	return nil
}

// AddField appends a field to an existing entity.
func (s *State) AddField(entity string, f Field) error {
	e, err := s.Entity(entity)
	if err != nil {
		return err
	}
	if _, ok := e.Field(f.Name); ok {
		return errors.Wrapf(ErrDuplicateField, "%s.%s", entity, f.Name)
	}
	if err := s.checkRef(f); err != nil {
		return errors.Wrapf(err, "%s.%s", entity, f.Name)
	}
	e.Fields = append(e.Fields, f)
	return nil
}

// AlterField replaces the definition of an existing field.
func (s *State) AlterField(entity string, f Field) error {
	e, err := s.Entity(entity)
	if err != nil {
		return err
	}
	for i := range e.Fields {
		if e.Fields[i].Name == f.Name {
			if err := s.checkRef(f); err != nil {
				return errors.Wrapf(err, "%s.%s", entity, f.Name)
			}
			e.Fields[i] = f
			return nil
		}
	}
	return errors.Wrapf(ErrUnknownField, "%s.%s", entity, f.Name)
}

func (s *State) checkRef(f Field) error {
	if f.Ref == nil {
		return nil
	}
	if _, ok := s.entities[f.Ref.Entity]; !ok {
		return errors.Wrapf(ErrUnknownEntity, "referenced entity %q", f.Ref.Entity)
	}
	return nil
}

// Clone returns a deep copy.
func (s *State) Clone() *State {
	c := NewState()
	for name, e := range s.entities {
		c.entities[name] = e.clone()
	}
	return c
}

// Equal compares two schemas. Field order inside an entity is not
// significant: independent AddField steps may land in either order.
func (s *State) Equal(o *State) bool {
	if len(s.entities) != len(o.entities) {
		return false
	}
	for name, e := range s.entities {
		oe, ok := o.entities[name]
		if !ok || e.Table != oe.Table || len(e.Fields) != len(oe.Fields) {
			return false
		}
		for _, f := range e.Fields {
			of, ok := oe.Field(f.Name)
			if !ok || !reflect.DeepEqual(f, of) {
				return false
			}
		}
		if !reflect.DeepEqual(e.Unique, oe.Unique) {
			return false
		}
	}
	return true
}
