package migration

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onlinemaid-backend/internal/schema"
)

var (
	stepAgency = Step{
		Group: "agency", Name: "0001_initial",
		Operations: []Operation{CreateEntity{Entity: "Agency", Table: "agencies", Fields: []schema.Field{
			schema.AutoID(), schema.Text("name", 100),
		}}},
	}
	stepMaid = Step{
		Group: "maid", Name: "0001_initial",
		Dependencies: []Key{stepAgency.Key()},
		Operations: []Operation{CreateEntity{Entity: "Maid", Table: "maids", Fields: []schema.Field{
			schema.AutoID(), schema.ForeignKey("agency", "Agency", schema.Cascade),
		}}},
	}
	stepAgencyActive = Step{
		Group: "agency", Name: "0002_active",
		Dependencies: []Key{stepAgency.Key()},
		Operations:   []Operation{AddField{Entity: "Agency", Field: schema.Boolean("active", true)}},
	}
	stepMaidSalary = Step{
		Group: "maid", Name: "0002_salary",
		Dependencies: []Key{stepMaid.Key()},
		Operations:   []Operation{AddField{Entity: "Maid", Field: schema.PositiveInteger("salary").WithDefault(0)}},
	}
)

func keys(steps []Step) []string {
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = s.Key().String()
	}
	return out
}

func TestPlan(t *testing.T) {
	testCases := []struct {
		name        string
		steps       []Step
		applied     map[Key]bool
		wantPending []string
		wantErr     error
	}{
		{
			name:        "fresh database",
			steps:       []Step{stepAgency, stepMaid, stepAgencyActive},
			wantPending: []string{"agency.0001_initial", "maid.0001_initial", "agency.0002_active"},
		},
		{
			name:        "partially applied",
			steps:       []Step{stepAgency, stepMaid, stepAgencyActive},
			applied:     map[Key]bool{stepAgency.Key(): true},
			wantPending: []string{"maid.0001_initial", "agency.0002_active"},
		},
		{
			name:    "fully applied",
			steps:   []Step{stepAgency, stepMaid},
			applied: map[Key]bool{stepAgency.Key(): true, stepMaid.Key(): true},
		},
		{
			name:    "dependency listed after its dependent",
			steps:   []Step{stepMaid, stepAgency},
			wantErr: ErrOrdering,
		},
		{
			name:    "applied dependency must still be listed",
			steps:   []Step{stepMaid},
			applied: map[Key]bool{stepAgency.Key(): true},
			wantErr: ErrUnknownStep,
		},
		{
			name:    "dependency nowhere to be found",
			steps:   []Step{stepMaid},
			wantErr: ErrUnknownStep,
		},
		{
			name:    "applied step with unapplied dependency",
			steps:   []Step{stepAgency, stepMaid},
			applied: map[Key]bool{stepMaid.Key(): true},
			wantErr: ErrOrdering,
		},
		{
			name:    "duplicate step",
			steps:   []Step{stepAgency, stepAgency},
			wantErr: ErrDuplicateStep,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			pending, err := Plan(tc.steps, tc.applied)
			if tc.wantErr != nil {
				assert.True(t, errors.Is(err, tc.wantErr), "got %v", err)
				assert.Nil(t, pending)
				return
			}
			require.NoError(t, err)
			if tc.wantPending == nil {
				assert.Empty(t, pending)
				return
			}
			assert.Equal(t, tc.wantPending, keys(pending))
		})
	}
}

func TestReplay(t *testing.T) {
	state, err := Replay([]Step{stepAgency, stepMaid, stepAgencyActive, stepMaidSalary})
	require.NoError(t, err)

	agency, err := state.Entity("Agency")
	require.NoError(t, err)
	_, ok := agency.Field("active")
	assert.True(t, ok)

	maid, err := state.Entity("Maid")
	require.NoError(t, err)
	assert.Len(t, maid.Fields, 3)

	_, err = Replay([]Step{stepMaid, stepAgency})
	assert.True(t, errors.Is(err, ErrOrdering))
}

func TestReplayIsOrderIndependent(t *testing.T) {
	a, err := Replay([]Step{stepAgency, stepAgencyActive, stepMaid, stepMaidSalary})
	require.NoError(t, err)
	b, err := Replay([]Step{stepAgency, stepMaid, stepMaidSalary, stepAgencyActive})
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

func TestTopoSort(t *testing.T) {
	sorted, err := TopoSort([]Step{stepMaidSalary, stepMaid, stepAgencyActive, stepAgency})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"agency.0001_initial", "maid.0001_initial", "maid.0002_salary", "agency.0002_active",
	}, keys(sorted))

	_, err = Plan(sorted, nil)
	assert.NoError(t, err)

	a := Step{Group: "x", Name: "a", Dependencies: []Key{{"x", "b"}}}
	b := Step{Group: "x", Name: "b", Dependencies: []Key{{"x", "a"}}}
	_, err = TopoSort([]Step{a, b})
	assert.True(t, errors.Is(err, ErrOrdering))

	_, err = TopoSort([]Step{stepMaid})
	assert.True(t, errors.Is(err, ErrUnknownStep))
}

func TestRenderUsesStateBeforeEachOperation(t *testing.T) {
	base, err := Replay([]Step{stepAgency})
	require.NoError(t, err)

	s := Step{
		Group: "maid", Name: "0001_initial",
		Operations: []Operation{
			CreateEntity{Entity: "Maid", Table: "maids", Fields: []schema.Field{schema.AutoID()}},
			AddRelation{Entity: "Maid", Field: schema.ForeignKey("agency", "Agency", schema.SetNull)},
		},
	}
	stmts, next, err := s.render(schema.Postgres, base)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`CREATE TABLE "maids" ("id" bigserial PRIMARY KEY)`,
		`ALTER TABLE "maids" ADD COLUMN "agency_id" bigint REFERENCES "agencies" ("id") ON DELETE SET NULL`,
	}, stmts)

	_, err = next.Entity("Maid")
	assert.NoError(t, err)
	_, err = base.Entity("Maid")
	assert.Error(t, err, "render must not touch its input")
}

func TestManyToManyAndSeed(t *testing.T) {
	base, err := Replay([]Step{stepAgency, stepMaid})
	require.NoError(t, err)

	s := Step{
		Group: "maid", Name: "0002_duties",
		Operations: []Operation{
			CreateEntity{Entity: "MaidWorkDuty", Table: "maid_work_duties", Fields: []schema.Field{
				schema.AutoID(), schema.Text("name", 5).WithChoices(schema.FoodRestriction),
			}},
			AddRelation{Entity: "Maid", ManyToMany: &ManyToMany{Name: "duties", Target: "MaidWorkDuty", Table: "maid_duties"}},
			SeedChoices{Entity: "MaidWorkDuty", Field: "name"},
		},
	}
	stmts, next, err := s.render(schema.SQLite, base)
	require.NoError(t, err)
	require.Len(t, stmts, 2+len(schema.FoodRestriction.Choices))
	assert.Contains(t, stmts[1], `CREATE TABLE "maid_duties"`)
	assert.Contains(t, stmts[1], `UNIQUE ("maid_id", "maid_work_duty_id")`)
	assert.Equal(t, `INSERT INTO "maid_work_duties" ("name") VALUES ('P')`, stmts[2])

	join, err := next.EntityByTable("maid_duties")
	require.NoError(t, err)
	assert.Equal(t, "Maid.duties", join.Name)

	_, err = Step{Operations: []Operation{SeedChoices{Entity: "Maid", Field: "id"}}}.mutate(next)
	assert.Error(t, err, "seeding a field without choices")
}

func TestAddRelationRejectsPlainField(t *testing.T) {
	base, err := Replay([]Step{stepAgency})
	require.NoError(t, err)
	op := AddRelation{Entity: "Agency", Field: schema.Text("code", 3)}
	assert.Error(t, op.Mutate(base))
}
