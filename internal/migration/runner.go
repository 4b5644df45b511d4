package migration

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"onlinemaid-backend/internal/schema"
)

// AppliedStep is the persisted marker of one applied step.
type AppliedStep struct {
	GroupName string    `gorm:"primaryKey;size:64"`
	Name      string    `gorm:"primaryKey;size:128"`
	AppliedAt time.Time `gorm:"not null"`
}

// TableName pins the marker table name.
func (AppliedStep) TableName() string { return "schema_migrations" }

const insertMarker = `INSERT INTO "schema_migrations" ("group_name", "name", "applied_at") VALUES (?, ?, ?)`

// Status reports whether a step of history has been applied.
type Status struct {
	Group     string     `json:"group"`
	Name      string     `json:"name"`
	Applied   bool       `json:"applied"`
	AppliedAt *time.Time `json:"applied_at,omitempty"`
}

// Runner applies migration history to a database. It must not be run by
// two processes against the same database at once; callers that deploy
// concurrently need an external lock.
type Runner struct {
	db      *gorm.DB
	dialect schema.Dialect
	logger  *zap.Logger
	now     func() time.Time
}

// NewRunner creates a runner for db, picking the DDL dialect from the
// gorm dialector.
func NewRunner(db *gorm.DB, logger *zap.Logger) (*Runner, error) {
	d, err := schema.DialectFor(db.Dialector.Name())
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Runner{db: db, dialect: d, logger: logger, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (r *Runner) ensureTable(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&AppliedStep{}); err != nil {
		return errors.Wrap(err, "create schema_migrations table")
	}
	return nil
}

func (r *Runner) appliedMarkers(ctx context.Context) ([]AppliedStep, error) {
	if err := r.ensureTable(ctx); err != nil {
		return nil, err
	}
	var rows []AppliedStep
	if err := r.db.WithContext(ctx).Order("applied_at").Find(&rows).Error; err != nil {
		return nil, errors.Wrap(err, "load applied migrations")
	}
	return rows, nil
}

// Applied returns the set of steps recorded as applied.
func (r *Runner) Applied(ctx context.Context) (map[Key]bool, error) {
	rows, err := r.appliedMarkers(ctx)
	if err != nil {
		return nil, err
	}
	applied := make(map[Key]bool, len(rows))
	for _, row := range rows {
		applied[Key{Group: row.GroupName, Name: row.Name}] = true
	}
	return applied, nil
}

// Status lists every step of steps with its applied marker.
func (r *Runner) Status(ctx context.Context, steps []Step) ([]Status, error) {
	rows, err := r.appliedMarkers(ctx)
	if err != nil {
		return nil, err
	}
	at := make(map[Key]time.Time, len(rows))
	for _, row := range rows {
		at[Key{Group: row.GroupName, Name: row.Name}] = row.AppliedAt
	}
	out := make([]Status, 0, len(steps))
	for _, s := range steps {
		st := Status{Group: s.Group, Name: s.Name}
		if t, ok := at[s.Key()]; ok {
			t := t
			st.Applied = true
			st.AppliedAt = &t
		}
		out = append(out, st)
	}
	return out, nil
}

// Run applies every pending step of steps, in order. Each step's DDL and its
// marker are committed in one transaction, so a step is never recorded
// without its schema change. A failing step aborts the run; steps committed
// before it stay applied. Replaying fully applied history is a no-op.
func (r *Runner) Run(ctx context.Context, steps []Step) ([]Key, error) {
	applied, err := r.Applied(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := Plan(steps, applied)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		r.logger.Info("no migrations to apply")
		return nil, nil
	}

	var done []Key
	state := schema.NewState()
	for _, s := range steps {
		if applied[s.Key()] {
			next, err := s.mutate(state)
			if err != nil {
				return done, err
			}
			state = next
			continue
		}

		stmts, next, err := s.render(r.dialect, state)
		if err != nil {
			return done, err
		}
		start := time.Now()
		if err := r.applyStep(ctx, s, stmts); err != nil {
			r.logger.Error("migration failed", zap.String("step", s.Key().String()), zap.Error(err))
			return done, err
		}
		r.logger.Info("applied migration",
			zap.String("step", s.Key().String()),
			zap.Int("statements", len(stmts)),
			zap.Duration("took", time.Since(start)),
		)
		state = next
		done = append(done, s.Key())
	}
	return done, nil
}

func (r *Runner) applyStep(ctx context.Context, s Step, stmts []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, stmt := range stmts {
			if err := tx.Exec(stmt).Error; err != nil {
				return errors.Wrapf(err, "%s: %s", s.Key(), stmt)
			}
		}
		if err := tx.Exec(insertMarker, s.Group, s.Name, r.now()).Error; err != nil {
			return errors.Wrapf(err, "%s: record applied marker", s.Key())
		}
		return nil
	})
}
