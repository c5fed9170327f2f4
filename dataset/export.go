package dataset

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	_ "modernc.org/sqlite"

	"github.com/spektr-org/fomezero/engine"
	"github.com/spektr-org/fomezero/helpers"
	"github.com/spektr-org/fomezero/schema"
)

// DownloadFilename is the file name offered for the filtered table.
const DownloadFilename = "dados_tratados.csv"

// SQLiteTable is the table written by ExportSQLite.
const SQLiteTable = "restaurants"

// WriteCSV writes every row of view with its normalized headers.
func WriteCSV(w io.Writer, view engine.RecordView) error {
	keys := view.DimensionKeys()
	rows := make([][]string, view.Len())
	for i := range rows {
		row := make([]string, len(keys))
		for j, k := range keys {
			row[j] = view.Dimension(i, k)
		}
		rows[i] = row
	}
	return helpers.WriteCSV(w, keys, rows)
}

// ExportSQLite writes view into a fresh SQLite database at path, replacing
// any existing file. Numeric fields get REAL or INTEGER affinity, everything
// else TEXT. The table, rows and indexes are written in one transaction.
func ExportSQLite(ctx context.Context, path string, view engine.RecordView) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open sqlite: %w", err)
	}
	defer db.Close()

	cfg := schema.RestaurantConfig()
	integer := make(map[string]bool)
	for _, m := range cfg.Measures {
		if m.Integer {
			integer[string(m.Key)] = true
		}
	}

	keys := view.DimensionKeys()
	defs := make([]string, 0, len(keys))
	cols := make([]string, 0, len(keys))
	for _, k := range keys {
		t := "TEXT"
		switch {
		case integer[k]:
			t = "INTEGER"
		case cfg.IsMeasure(k):
			t = "REAL"
		}
		defs = append(defs, fmt.Sprintf("%q %s", k, t))
		cols = append(cols, fmt.Sprintf("%q", k))
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, fmt.Sprintf(`CREATE TABLE %q (%s)`, SQLiteTable, strings.Join(defs, ","))); err != nil {
		return fmt.Errorf("create table: %w", err)
	}

	ph := strings.TrimRight(strings.Repeat("?,", len(keys)), ",")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(`INSERT INTO %q (%s) VALUES (%s)`, SQLiteTable, strings.Join(cols, ","), ph))
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for i := 0; i < view.Len(); i++ {
		args := make([]any, 0, len(keys))
		for _, k := range keys {
			switch {
			case integer[k]:
				args = append(args, int64(view.Measure(i, k)))
			case cfg.IsMeasure(k):
				args = append(args, view.Measure(i, k))
			default:
				args = append(args, view.Dimension(i, k))
			}
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	for _, f := range []schema.Field{schema.FieldCountryName, schema.FieldCity, schema.FieldCuisines} {
		q := fmt.Sprintf(`CREATE INDEX IF NOT EXISTS "idx_%s_%s" ON %q(%q)`, SQLiteTable, f, SQLiteTable, f.String())
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("create index: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
