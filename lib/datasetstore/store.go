// Package datasetstore persists built yearly datasets to sqlite so the
// portal doesn't have to be refetched to look at a year again.
package datasetstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"ridership-backend/lib/tabular"

	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

type Store struct {
	db *sql.DB
}

func NewStore(database *sql.DB) Store {
	return Store{db: database}
}

// Push replaces the stored snapshot for a year with the given table.
func (s Store) Push(ctx context.Context, year int, builtAt time.Time, t tabular.Table) error {
	columns, err := json.Marshal(t.Columns)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `DELETE FROM dataset_row WHERE year = ?`, year)
	if err != nil {
		return err
	}
	_, err = tx.ExecContext(ctx, `DELETE FROM dataset WHERE year = ?`, year)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO dataset (year, built_at, columns) VALUES (?, ?, ?)`,
		year, builtAt.Unix(), string(columns),
	)
	if err != nil {
		return err
	}

	for idx, row := range t.Rows {
		cells, err := json.Marshal(row)
		if err != nil {
			return err
		}
		_, err = tx.ExecContext(
			ctx,
			`INSERT INTO dataset_row (year, idx, cells) VALUES (?, ?, ?)`,
			year, idx, string(cells),
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// Pull loads the stored snapshot for a year. A year that was never
// pushed is an error, unlike an empty build result which round-trips as
// an empty table.
func (s Store) Pull(ctx context.Context, year int) (tabular.Table, time.Time, error) {
	var builtAtUnix int64
	var columnsJson string
	err := s.db.QueryRowContext(
		ctx,
		`SELECT built_at, columns FROM dataset WHERE year = ?`,
		year,
	).Scan(&builtAtUnix, &columnsJson)
	if err == sql.ErrNoRows {
		return tabular.Table{}, time.Time{}, fmt.Errorf("no snapshot stored for year %d", year)
	}
	if err != nil {
		return tabular.Table{}, time.Time{}, err
	}

	var t tabular.Table
	err = json.Unmarshal([]byte(columnsJson), &t.Columns)
	if err != nil {
		return tabular.Table{}, time.Time{}, err
	}

	rows, err := s.db.QueryContext(
		ctx,
		`SELECT cells FROM dataset_row WHERE year = ? ORDER BY idx`,
		year,
	)
	if err != nil {
		return tabular.Table{}, time.Time{}, err
	}
	defer rows.Close()

	for rows.Next() {
		var cellsJson string
		err = rows.Scan(&cellsJson)
		if err != nil {
			return tabular.Table{}, time.Time{}, err
		}
		var row []string
		err = json.Unmarshal([]byte(cellsJson), &row)
		if err != nil {
			return tabular.Table{}, time.Time{}, err
		}
		t.Rows = append(t.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return tabular.Table{}, time.Time{}, err
	}

	return t, time.Unix(builtAtUnix, 0), nil
}

// Years lists the years with a stored snapshot, ascending.
func (s Store) Years(ctx context.Context) ([]int, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT year FROM dataset ORDER BY year`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var years []int
	for rows.Next() {
		var year int
		err = rows.Scan(&year)
		if err != nil {
			return nil, err
		}
		years = append(years, year)
	}
	return years, rows.Err()
}
