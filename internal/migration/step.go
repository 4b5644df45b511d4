// Package migration applies an ordered, dependency-linked history of schema
// changes to a database and records which steps have been applied.
package migration

import (
	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"onlinemaid-backend/internal/schema"
)

var (
	// ErrOrdering is returned when a step would run before one of its
	// dependencies. Nothing is applied when it is returned.
	ErrOrdering      = errors.New("migration ordering error")
	ErrUnknownStep   = errors.New("unknown migration step")
	ErrDuplicateStep = errors.New("duplicate migration step")
)

// Key identifies a step within its group.
type Key struct {
	Group string
	Name  string
}

func (k Key) String() string { return k.Group + "." + k.Name }

// Step is one immutable, named entry of migration history.
type Step struct {
	Group        string
	Name         string
	Dependencies []Key
	Operations   []Operation
}

// Key returns the step's identity.
func (s Step) Key() Key { return Key{Group: s.Group, Name: s.Name} }

// mutate applies every operation to a copy of state. The original is left
// untouched when an operation fails.
func (s Step) mutate(state *schema.State) (*schema.State, error) {
	next := state.Clone()
	for _, op := range s.Operations {
		if err := op.Mutate(next); err != nil {
			return nil, errors.Wrapf(err, "%s: %s", s.Key(), op.Describe())
		}
	}
	return next, nil
}

// render produces the DDL for the step against state, and the state after it.
func (s Step) render(d schema.Dialect, state *schema.State) ([]string, *schema.State, error) {
	next := state.Clone()
	var stmts []string
	for _, op := range s.Operations {
		out, err := op.Statements(d, next)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "%s: %s", s.Key(), op.Describe())
		}
		if err := op.Mutate(next); err != nil {
			return nil, nil, errors.Wrapf(err, "%s: %s", s.Key(), op.Describe())
		}
		stmts = append(stmts, out...)
	}
	return stmts, next, nil
}

// Plan checks that steps can be applied in the given order on top of the
// applied set and returns the ones still pending. steps is the full history:
// every dependency must be listed in it (ErrUnknownStep otherwise), and must be
// applied already or come earlier in steps (ErrOrdering otherwise). Both are
// reported before anything runs.
func Plan(steps []Step, applied map[Key]bool) ([]Step, error) {
	known := make(map[Key]struct{}, len(steps))
	for _, s := range steps {
		if _, dup := known[s.Key()]; dup {
			return nil, errors.Wrapf(ErrDuplicateStep, "%s", s.Key())
		}
		known[s.Key()] = struct{}{}
	}

	done := make(map[Key]bool, len(steps))
	var pending []Step
	for _, s := range steps {
		for _, dep := range s.Dependencies {
			if _, ok := known[dep]; !ok {
				return nil, errors.Wrapf(ErrUnknownStep, "%s depends on %s", s.Key(), dep)
			}
			if !done[dep] && !applied[dep] {
				return nil, errors.Wrapf(ErrOrdering, "%s depends on %s, which has not been applied", s.Key(), dep)
			}
			if applied[s.Key()] && !applied[dep] {
				return nil, errors.Wrapf(ErrOrdering, "%s is recorded as applied but its dependency %s is not", s.Key(), dep)
			}
		}
		done[s.Key()] = true
		if !applied[s.Key()] {
			pending = append(pending, s)
		}
	}
	return pending, nil
}

// Replay applies steps to an empty schema without touching a database.
func Replay(steps []Step) (*schema.State, error) {
	if _, err := Plan(steps, nil); err != nil {
		return nil, err
	}
	state := schema.NewState()
	for _, s := range steps {
		next, err := s.mutate(state)
		if err != nil {
			return nil, err
		}
		state = next
	}
	return state, nil
}

// TopoSort orders steps so that every dependency precedes its dependents.
// Ties keep the declared order, so the result is deterministic.
func TopoSort(steps []Step) ([]Step, error) {
	index := make(map[Key]int, len(steps))
	for i, s := range steps {
		if _, dup := index[s.Key()]; dup {
			return nil, errors.Wrapf(ErrDuplicateStep, "%s", s.Key())
		}
		index[s.Key()] = i
	}

	indegree := make([]int, len(steps))
	dependents := make([][]int, len(steps))
	for i, s := range steps {
		for _, dep := range lo.Uniq(s.Dependencies) {
			j, ok := index[dep]
			if !ok {
				return nil, errors.Wrapf(ErrUnknownStep, "%s depends on %s", s.Key(), dep)
			}
			indegree[i]++
			dependents[j] = append(dependents[j], i)
		}
	}

	var ready []int
	for i := range steps {
		if indegree[i] == 0 {
			ready = append(ready, i)
		}
	}

	out := make([]Step, 0, len(steps))
	for len(ready) > 0 {
		// smallest declared index first
		first := 0
		for k := range ready {
			if ready[k] < ready[first] {
				first = k
			}
		}
		i := ready[first]
		ready = append(ready[:first], ready[first+1:]...)
		out = append(out, steps[i])
		for _, d := range dependents[i] {
			indegree[d]--
			if indegree[d] == 0 {
				ready = append(ready, d)
			}
		}
	}
	if len(out) != len(steps) {
		return nil, errors.Wrap(ErrOrdering, "dependency cycle in migration history")
	}
	return out, nil
}
