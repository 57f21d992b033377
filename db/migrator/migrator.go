package migrator

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"regexp"
	"slices"
	"time"

	"go.hackfix.me/kangyang/db/types"
)

// Direction is the direction a migration is run in.
type Direction string

// Migration directions.
const (
	Up   Direction = "up"
	Down Direction = "down"
)

// All can be passed to Run to target every known migration.
const All = "all"

var fnameRx = regexp.MustCompile(`^(?P<name>\d+-[a-z0-9-_]+)\.(?P<dir>up|down)\.sql$`)

// Migration is a schema migration with its SQL for both directions.
type Migration struct {
	Name    string
	Applied bool
	Up      string
	Down    string
}

// Load reads *.{up,down}.sql files from the root of dir, and returns the
// migrations sorted by name. Files not matching the naming scheme are skipped.
func Load(dir fs.FS) ([]*Migration, error) {
	entries, err := fs.ReadDir(dir, ".")
	if err != nil {
		return nil, fmt.Errorf("failed reading migrations directory: %w", err)
	}

	byName := map[string]*Migration{}
	for _, e := range entries {
		if !e.Type().IsRegular() || path.Ext(e.Name()) != ".sql" {
			continue
		}
		match := fnameRx.FindStringSubmatch(e.Name())
		if match == nil {
			continue
		}

		data, err := fs.ReadFile(dir, e.Name())
		if err != nil {
			return nil, fmt.Errorf("failed reading migration '%s': %w", e.Name(), err)
		}

		name := match[fnameRx.SubexpIndex("name")]
		m, ok := byName[name]
		if !ok {
			m = &Migration{Name: name}
			byName[name] = m
		}
		if Direction(match[fnameRx.SubexpIndex("dir")]) == Up {
			m.Up = string(data)
		} else {
			m.Down = string(data)
		}
	}

	migrations := make([]*Migration, 0, len(byName))
	for _, m := range byName {
		migrations = append(migrations, m)
	}
	slices.SortFunc(migrations, func(a, b *Migration) int {
		if a.Name < b.Name {
			return -1
		} else if a.Name > b.Name {
			return 1
		}
		return 0
	})

	return migrations, nil
}

// Run applies or rolls back migrations up to and including the migration named
// to, which can also be All.
func Run(
	ctx context.Context, d types.Querier, migrations []*Migration,
	dir Direction, to string, logger *slog.Logger,
) error {
	if err := createHistorySchema(ctx, d); err != nil {
		return fmt.Errorf("failed creating migration history schema: %w", err)
	}

	if err := loadHistory(ctx, d, migrations); err != nil {
		return err
	}

	plan, err := createPlan(migrations, dir, to)
	if err != nil {
		return err
	}

	for _, step := range plan {
		if _, err := d.ExecContext(ctx, step.sql); err != nil {
			return fmt.Errorf("failed running %s migration '%s': %w", step.dir, step.name, err)
		}
		_, err = d.ExecContext(ctx,
			`INSERT INTO _migration_history (name, type, time) VALUES (?, ?, ?)`,
			step.name, string(step.dir), time.Now().UTC())
		if err != nil {
			return fmt.Errorf("failed recording migration '%s': %w", step.name, err)
		}

		msg := "applied"
		if step.dir == Down {
			msg = "rolled back"
		}
		logger.Debug(fmt.Sprintf("%s store migration", msg), "name", step.name)
	}

	return nil
}

func loadHistory(ctx context.Context, d types.Querier, migrations []*Migration) error {
	byName := make(map[string]*Migration, len(migrations))
	for _, m := range migrations {
		byName[m.Name] = m
	}

	rows, err := d.QueryContext(ctx,
		`SELECT name, type FROM _migration_history ORDER BY time, rowid`)
	if err != nil {
		return fmt.Errorf("failed retrieving migration history: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var name, typ string
		if err := rows.Scan(&name, &typ); err != nil {
			return fmt.Errorf("failed reading migration history: %w", err)
		}

		m, ok := byName[name]
		if !ok {
			return fmt.Errorf("found unknown migration in history: '%s'", name)
		}
		// The last event wins.
		m.Applied = Direction(typ) == Up
	}

	return rows.Err()
}

type planStep struct {
	name string
	dir  Direction
	sql  string
}

func createPlan(migrations []*Migration, dir Direction, to string) ([]planStep, error) {
	toIdx := slices.IndexFunc(migrations, func(m *Migration) bool {
		return m.Name == to
	})
	if toIdx < 0 && to != All {
		return nil, fmt.Errorf("migration '%s' doesn't exist", to)
	}

	plan := []planStep{}
	for idx, m := range migrations {
		switch {
		case dir == Up && !m.Applied && (to == All || idx <= toIdx):
			plan = append(plan, planStep{name: m.Name, dir: Up, sql: m.Up})
		case dir == Down && m.Applied && (to == All || idx > toIdx):
			// Roll back in reverse order.
			plan = append([]planStep{{name: m.Name, dir: Down, sql: m.Down}}, plan...)
		}
	}

	return plan, nil
}

func createHistorySchema(ctx context.Context, d types.Querier) error {
	_, err := d.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS _migration_history (
			name VARCHAR(128) NOT NULL,
			type VARCHAR(8) CHECK( type IN ('up','down') ) NOT NULL,
			time TIMESTAMP NOT NULL
		)`)
	return err
}
