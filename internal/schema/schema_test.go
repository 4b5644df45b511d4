package schema

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChoiceSet(t *testing.T) {
	assert.True(t, MaidType.Contains("TRF"))
	assert.False(t, MaidType.Contains("trf"))
	assert.Equal(t, "Transfer", MaidType.Label("TRF"))
	assert.Equal(t, "XYZ", MaidType.Label("XYZ"))
	assert.Equal(t, []string{"NEW", "TRF", "SGE", "OVE"}, MaidType.Codes())
	assert.True(t, ChoiceSet{}.IsZero())
	assert.False(t, MaidType.IsZero())

	ages := IntRange("age", 23, 50)
	assert.Len(t, ages.Choices, 28)
	assert.True(t, ages.ContainsInt(23))
	assert.True(t, ages.ContainsInt(50))
	assert.False(t, ages.ContainsInt(22))
	assert.False(t, ages.ContainsInt(51))
}

func TestChoiceSetNamesAreUnique(t *testing.T) {
	sets := []ChoiceSet{
		MaidType, PassportStatus, CarePreference, Willingness, Experience, WorkDuty,
		FoodRestriction, MaritalStatus, EmploymentCountry, CountryOfOrigin, Religion,
		InfantChildCareRemarks, ElderlyCareRemarks, DisabledCareRemarks,
		GeneralHouseworkRemarks, CookingRemarks, EmployeeRoleInitial, EmployeeRole,
		EnquiryNationality, EnquiryResponsibility, EnquiryMaidType, MaidAge,
	}
	seen := map[string]bool{}
	for _, cs := range sets {
		require.NotEmpty(t, cs.Name)
		if cs.Name != EmployeeRole.Name {
			// the role domain was widened in place
			assert.False(t, seen[cs.Name], "duplicate choice set %q", cs.Name)
		}
		seen[cs.Name] = true
		codes := map[string]bool{}
		for _, c := range cs.Codes() {
			assert.False(t, codes[c], "%s: duplicate code %q", cs.Name, c)
			codes[c] = true
		}
	}
}

func TestSnake(t *testing.T) {
	testCases := map[string]string{
		"Maid":                  "maid",
		"MaidEmploymentHistory": "maid_employment_history",
		"AgencyEmployee":        "agency_employee",
		"MaidWorkDuty":          "maid_work_duty",
	}
	for in, want := range testCases {
		assert.Equal(t, want, Snake(in), in)
	}
}

func agencyEntity() Entity {
	return Entity{Name: "Agency", Table: "agencies", Fields: []Field{AutoID(), Text("name", 100)}}
}

func TestState(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddEntity(agencyEntity()))

	err := s.AddEntity(agencyEntity())
	assert.True(t, errors.Is(err, ErrDuplicateEntity))

	err = s.AddEntity(Entity{Name: "Maid", Table: "maids", Fields: []Field{
		AutoID(), ForeignKey("employer", "Employer", Cascade),
	}})
	assert.True(t, errors.Is(err, ErrUnknownEntity), "relation to a missing entity")

	err = s.AddEntity(Entity{Name: "Maid", Table: "maids", Fields: []Field{AutoID(), AutoID()}})
	assert.True(t, errors.Is(err, ErrDuplicateField))

	require.NoError(t, s.AddEntity(Entity{Name: "Maid", Table: "maids", Fields: []Field{
		AutoID(), ForeignKey("agency", "Agency", Cascade),
	}}))

	require.NoError(t, s.AddField("Agency", Boolean("active", true)))
	assert.True(t, errors.Is(s.AddField("Agency", Boolean("active", true)), ErrDuplicateField))
	assert.True(t, errors.Is(s.AddField("Nope", Boolean("active", true)), ErrUnknownEntity))

	require.NoError(t, s.AlterField("Agency", Text("name", 200)))
	a, err := s.Entity("Agency")
	require.NoError(t, err)
	f, ok := a.Field("name")
	require.True(t, ok)
	assert.Equal(t, 200, f.MaxLength)
	assert.True(t, errors.Is(s.AlterField("Agency", Text("missing", 1)), ErrUnknownField))

	m, err := s.EntityByTable("maids")
	require.NoError(t, err)
	col, ok := m.Column("agency_id")
	require.True(t, ok)
	assert.Equal(t, "agency", col.Name)

	names := []string{}
	for _, e := range s.Entities() {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{"Agency", "Maid"}, names)
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddEntity(agencyEntity()))
	c := s.Clone()
	require.True(t, s.Equal(c))

	require.NoError(t, c.AddField("Agency", Boolean("active", true)))
	assert.False(t, s.Equal(c))
	a, _ := s.Entity("Agency")
	assert.Len(t, a.Fields, 2)
}

func TestStateEqualIgnoresFieldOrder(t *testing.T) {
	a, b := NewState(), NewState()
	require.NoError(t, a.AddEntity(agencyEntity()))
	require.NoError(t, b.AddEntity(agencyEntity()))

	require.NoError(t, a.AddField("Agency", Boolean("active", true)))
	require.NoError(t, a.AddField("Agency", LongText("profile")))
	require.NoError(t, b.AddField("Agency", LongText("profile")))
	require.NoError(t, b.AddField("Agency", Boolean("active", true)))
	assert.True(t, a.Equal(b))

	require.NoError(t, b.AlterField("Agency", LongText("profile").WithDefault("")))
	assert.False(t, a.Equal(b))
}

func TestDialectFor(t *testing.T) {
	d, err := DialectFor("postgres")
	require.NoError(t, err)
	assert.Equal(t, "postgres", d.Name())
	d, err = DialectFor("sqlite")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", d.Name())
	_, err = DialectFor("mysql")
	assert.Error(t, err)
}

func TestCreateTable(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddEntity(agencyEntity()))
	maid := Entity{Name: "Maid", Table: "maids", Fields: []Field{
		AutoID(),
		Text("maid_type", 3).WithChoices(MaidType).WithDefault("NEW"),
		PositiveInteger("salary"),
		Boolean("published", false),
		Date("bond_date"),
		ForeignKey("agency", "Agency", Cascade),
	}}

	stmts, err := Postgres.CreateTable(s, maid)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`CREATE TABLE "maids" (` +
			`"id" bigserial PRIMARY KEY, ` +
			`"maid_type" varchar(3) NOT NULL DEFAULT 'NEW', ` +
			`"salary" integer NOT NULL CHECK ("salary" >= 0), ` +
			`"published" boolean NOT NULL DEFAULT false, ` +
			`"bond_date" date, ` +
			`"agency_id" bigint NOT NULL REFERENCES "agencies" ("id") ON DELETE CASCADE)`,
	}, stmts)

	stmts, err = SQLite.CreateTable(s, maid)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`CREATE TABLE "maids" (` +
			`"id" integer PRIMARY KEY AUTOINCREMENT, ` +
			`"maid_type" varchar(3) NOT NULL DEFAULT 'NEW', ` +
			`"salary" integer NOT NULL CHECK ("salary" >= 0), ` +
			`"published" boolean NOT NULL DEFAULT 0, ` +
			`"bond_date" date, ` +
			`"agency_id" integer NOT NULL REFERENCES "agencies" ("id") ON DELETE CASCADE)`,
	}, stmts)
}

func TestCreateTableUniqueAndSetNull(t *testing.T) {
	s := NewState()
	require.NoError(t, s.AddEntity(agencyEntity()))
	invoice := Entity{
		Name:   "Invoice",
		Table:  "invoices",
		Fields: []Field{AutoID(), ForeignKey("agency", "Agency", SetNull), OneToOne("owner", "Agency")},
		Unique: [][]string{{"agency", "owner"}},
	}
	stmts, err := Postgres.CreateTable(s, invoice)
	require.NoError(t, err)
	require.Len(t, stmts, 1)
	assert.Contains(t, stmts[0], `"agency_id" bigint REFERENCES "agencies" ("id") ON DELETE SET NULL`)
	assert.Contains(t, stmts[0], `"owner_id" bigint NOT NULL UNIQUE REFERENCES "agencies" ("id") ON DELETE CASCADE`)
	assert.Contains(t, stmts[0], `UNIQUE ("agency_id", "owner_id")`)
}

func TestAlterColumn(t *testing.T) {
	e := &Entity{Name: "AgencyEmployee", Table: "agency_employees"}
	old := Text("role", 1).WithChoices(EmployeeRoleInitial).WithDefault("S")

	t.Run("postgres length change", func(t *testing.T) {
		stmts, err := Postgres.AlterColumn(nil, e, old, old.WithMaxLength(2))
		require.NoError(t, err)
		assert.Equal(t, []string{`ALTER TABLE "agency_employees" ALTER COLUMN "role" TYPE varchar(2)`}, stmts)
	})

	t.Run("postgres choices only", func(t *testing.T) {
		stmts, err := Postgres.AlterColumn(nil, e, old, old.WithChoices(EmployeeRole))
		require.NoError(t, err)
		assert.Empty(t, stmts)
	})

	t.Run("postgres null and default", func(t *testing.T) {
		updated := old.Nullable()
		updated.Default = nil
		stmts, err := Postgres.AlterColumn(nil, e, old, updated)
		require.NoError(t, err)
		assert.Equal(t, []string{
			`ALTER TABLE "agency_employees" ALTER COLUMN "role" DROP DEFAULT`,
			`ALTER TABLE "agency_employees" ALTER COLUMN "role" DROP NOT NULL`,
		}, stmts)
	})

	t.Run("postgres relation change", func(t *testing.T) {
		_, err := Postgres.AlterColumn(nil, e, old, ForeignKey("role", "Agency", Cascade))
		assert.True(t, errors.Is(err, ErrUnsupportedAlter))
	})

	t.Run("postgres positive integer adds check", func(t *testing.T) {
		maids := &Entity{Name: "Maid", Table: "maids"}
		stmts, err := Postgres.AlterColumn(nil, maids, Integer("salary"), PositiveInteger("salary"))
		require.NoError(t, err)
		assert.Equal(t, []string{`ALTER TABLE "maids" ADD CONSTRAINT "maids_salary_check" CHECK ("salary" >= 0)`}, stmts)

		stmts, err = Postgres.AlterColumn(nil, maids, PositiveInteger("salary"), Integer("salary"))
		require.NoError(t, err)
		assert.Equal(t, []string{`ALTER TABLE "maids" DROP CONSTRAINT IF EXISTS "maids_salary_check"`}, stmts)
	})

	t.Run("postgres one to one adds unique", func(t *testing.T) {
		statuses := &Entity{Name: "MaidStatus", Table: "maid_statuses"}
		stmts, err := Postgres.AlterColumn(nil, statuses, ForeignKey("maid", "Maid", Cascade), OneToOne("maid", "Maid"))
		require.NoError(t, err)
		assert.Equal(t, []string{`ALTER TABLE "maid_statuses" ADD CONSTRAINT "maid_statuses_maid_id_key" UNIQUE ("maid_id")`}, stmts)
	})

	t.Run("postgres on delete change recreates foreign key", func(t *testing.T) {
		s := NewState()
		require.NoError(t, s.AddEntity(Entity{Name: "Agency", Table: "agencies", Fields: []Field{AutoID()}}))
		invoices := &Entity{Name: "Invoice", Table: "invoices"}

		stmts, err := Postgres.AlterColumn(s, invoices, ForeignKey("agency", "Agency", Cascade), ForeignKey("agency", "Agency", SetNull))
		require.NoError(t, err)
		assert.Equal(t, []string{
			`ALTER TABLE "invoices" ALTER COLUMN "agency_id" DROP NOT NULL`,
			`ALTER TABLE "invoices" DROP CONSTRAINT IF EXISTS "invoices_agency_id_fkey"`,
			`ALTER TABLE "invoices" ADD CONSTRAINT "invoices_agency_id_fkey" FOREIGN KEY ("agency_id") REFERENCES "agencies" ("id") ON DELETE SET NULL`,
		}, stmts)

		_, err = Postgres.AlterColumn(nil, invoices, ForeignKey("agency", "Agency", Cascade), ForeignKey("agency", "Agency", SetNull))
		assert.True(t, errors.Is(err, ErrUnsupportedAlter))
	})

	t.Run("fresh and altered columns carry the same constraints", func(t *testing.T) {
		created, err := Postgres.CreateTable(NewState(), Entity{Name: "Maid", Table: "maids", Fields: []Field{PositiveInteger("salary")}})
		require.NoError(t, err)
		assert.Contains(t, created[0], `CHECK ("salary" >= 0)`)

		altered, err := Postgres.AlterColumn(nil, &Entity{Name: "Maid", Table: "maids"}, Integer("salary"), PositiveInteger("salary"))
		require.NoError(t, err)
		require.Len(t, altered, 1)
		assert.Contains(t, altered[0], `CHECK ("salary" >= 0)`)
	})

	t.Run("sqlite length change", func(t *testing.T) {
		stmts, err := SQLite.AlterColumn(nil, e, old, old.WithMaxLength(2))
		require.NoError(t, err)
		assert.Empty(t, stmts)
	})

	t.Run("sqlite null change", func(t *testing.T) {
		_, err := SQLite.AlterColumn(nil, e, old, old.Nullable())
		assert.True(t, errors.Is(err, ErrUnsupportedAlter))
	})
}

func TestAddColumn(t *testing.T) {
	s := NewState()
	e := &Entity{Name: "MaidStatus", Table: "maid_statuses"}

	stmts, err := SQLite.AddColumn(s, e, Date("fdw_work_commencement_date"))
	require.NoError(t, err)
	assert.Equal(t, []string{`ALTER TABLE "maid_statuses" ADD COLUMN "fdw_work_commencement_date" date`}, stmts)

	_, err = SQLite.AddColumn(s, e, Text("code", 3))
	assert.Error(t, err, "NOT NULL without default")

	stmts, err = Postgres.AddColumn(s, e, Text("code", 3))
	require.NoError(t, err)
	assert.Equal(t, []string{`ALTER TABLE "maid_statuses" ADD COLUMN "code" varchar(3) NOT NULL`}, stmts)
}

func TestInsertQuotesLiterals(t *testing.T) {
	e := &Entity{Name: "MaidWorkDuty", Table: "maid_work_duties"}
	stmts := Postgres.Insert(e, "name", []string{"H", "O'B"})
	assert.Equal(t, []string{
		`INSERT INTO "maid_work_duties" ("name") VALUES ('H')`,
		`INSERT INTO "maid_work_duties" ("name") VALUES ('O''B')`,
	}, stmts)
}
