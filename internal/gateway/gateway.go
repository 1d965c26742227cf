// Package gateway provides schema-agnostic CRUD against one SQLite table.
// A Table holds the table name and its ordered column schema; it carries no
// domain knowledge. Engine errors are caught here, logged with the failing
// statement, and returned wrapped — the caller decides whether they are
// fatal.
package gateway

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// ErrNotFound is returned when a lookup by ID matches no row.
var ErrNotFound = errors.New("row not found")

// Column declares one schema column. The primary key is implicit: every
// table gets an auto-incrementing integer named ID.
type Column struct {
	Name    string
	SQLType string
}

// Record is one row keyed by column name. INTEGER columns scan as int64,
// TEXT columns as string.
type Record map[string]any

type Table struct {
	database *sql.DB
	name     string
	columns  []Column
}

func New(database *sql.DB, name string, columns []Column) *Table {
	return &Table{database: database, name: name, columns: columns}
}

// Create issues an idempotent CREATE TABLE IF NOT EXISTS with every
// declared column NOT NULL.
func (table *Table) Create(ctx context.Context) error {
	definitions := make([]string, 0, len(table.columns)+1)
	definitions = append(definitions, "ID INTEGER PRIMARY KEY AUTOINCREMENT")
	for _, column := range table.columns {
		definitions = append(definitions, fmt.Sprintf("%s %s NOT NULL", column.Name, column.SQLType))
	}
	statement := fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", table.name, strings.Join(definitions, ", "))
	if _, err := table.database.ExecContext(ctx, statement); err != nil {
		slog.Warn("create table failed", "statement", statement, "error", err)
		return fmt.Errorf("creating table %s: %w", table.name, err)
	}
	return nil
}

// Drop is idempotent.
func (table *Table) Drop(ctx context.Context) error {
	statement := fmt.Sprintf("DROP TABLE IF EXISTS %s", table.name)
	if _, err := table.database.ExecContext(ctx, statement); err != nil {
		slog.Warn("drop table failed", "statement", statement, "error", err)
		return fmt.Errorf("dropping table %s: %w", table.name, err)
	}
	return nil
}

// Insert adds one row following declared column order and returns the
// engine-assigned ID. Booleans are stored as 1/0. A record missing a
// declared column is malformed and never reaches the engine.
func (table *Table) Insert(ctx context.Context, record Record) (int64, error) {
	values, err := table.orderedValues(record)
	if err != nil {
		slog.Warn("insert rejected", "table", table.name, "error", err)
		return 0, err
	}
	statement := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table.name, table.columnNames(), placeholders(len(table.columns)))
	result, err := table.database.ExecContext(ctx, statement, values...)
	if err != nil {
		slog.Warn("insert failed", "statement", statement, "error", err)
		return 0, fmt.Errorf("inserting into %s: %w", table.name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading inserted ID for %s: %w", table.name, err)
	}
	return id, nil
}

// InsertMany adds all records in one multi-row statement, in input order.
func (table *Table) InsertMany(ctx context.Context, records []Record) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]string, 0, len(records))
	values := make([]any, 0, len(records)*len(table.columns))
	for _, record := range records {
		ordered, err := table.orderedValues(record)
		if err != nil {
			slog.Warn("bulk insert rejected", "table", table.name, "error", err)
			return err
		}
		rows = append(rows, "("+placeholders(len(table.columns))+")")
		values = append(values, ordered...)
	}
	statement := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s",
		table.name, table.columnNames(), strings.Join(rows, ", "))
	if _, err := table.database.ExecContext(ctx, statement, values...); err != nil {
		slog.Warn("bulk insert failed", "statement", statement, "error", err)
		return fmt.Errorf("bulk inserting into %s: %w", table.name, err)
	}
	return nil
}

// UpdateByID applies a partial update of only the supplied fields. An empty
// field map or a field outside the schema is rejected before any storage
// call.
func (table *Table) UpdateByID(ctx context.Context, id int64, fields Record) error {
	if len(fields) == 0 {
		return fmt.Errorf("updating %s: empty field map", table.name)
	}
	if len(fields) > len(table.columns) {
		return fmt.Errorf("updating %s: %d fields exceed schema", table.name, len(fields))
	}
	assignments := make([]string, 0, len(fields))
	values := make([]any, 0, len(fields)+1)
	for _, column := range table.columns {
		value, ok := fields[column.Name]
		if !ok {
			continue
		}
		assignments = append(assignments, column.Name+" = ?")
		values = append(values, coerce(value))
	}
	if len(assignments) != len(fields) {
		return fmt.Errorf("updating %s: field map contains unknown columns", table.name)
	}
	values = append(values, id)
	statement := fmt.Sprintf("UPDATE %s SET %s WHERE ID = ?", table.name, strings.Join(assignments, ", "))
	if _, err := table.database.ExecContext(ctx, statement, values...); err != nil {
		slog.Warn("update failed", "statement", statement, "error", err)
		return fmt.Errorf("updating %s: %w", table.name, err)
	}
	return nil
}

func (table *Table) FindByID(ctx context.Context, id int64) (Record, error) {
	records, err := table.query(ctx,
		fmt.Sprintf("SELECT * FROM %s WHERE ID = ?", table.name), id)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s ID %d: %w", table.name, id, ErrNotFound)
	}
	return records[0], nil
}

// Find returns every row matching the filter as an equality conjunction,
// or the whole table when the filter is empty.
func (table *Table) Find(ctx context.Context, filter Record) ([]Record, error) {
	where, values := table.whereClause(filter)
	return table.query(ctx, fmt.Sprintf("SELECT * FROM %s%s", table.name, where), values...)
}

func (table *Table) DeleteByID(ctx context.Context, id int64) error {
	statement := fmt.Sprintf("DELETE FROM %s WHERE ID = ?", table.name)
	if _, err := table.database.ExecContext(ctx, statement, id); err != nil {
		slog.Warn("delete failed", "statement", statement, "error", err)
		return fmt.Errorf("deleting from %s: %w", table.name, err)
	}
	return nil
}

// Delete removes rows by filter and requires at least one row affected.
func (table *Table) Delete(ctx context.Context, filter Record) error {
	where, values := table.whereClause(filter)
	statement := fmt.Sprintf("DELETE FROM %s%s", table.name, where)
	result, err := table.database.ExecContext(ctx, statement, values...)
	if err != nil {
		slog.Warn("delete failed", "statement", statement, "error", err)
		return fmt.Errorf("deleting from %s: %w", table.name, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting from %s: %w", table.name, err)
	}
	if affected == 0 {
		return fmt.Errorf("deleting from %s: %w", table.name, ErrNotFound)
	}
	return nil
}

// FindRandom returns up to n rows in engine-native random order.
func (table *Table) FindRandom(ctx context.Context, n int) ([]Record, error) {
	return table.query(ctx,
		fmt.Sprintf("SELECT * FROM %s ORDER BY RANDOM() LIMIT ?", table.name), n)
}

func (table *Table) query(ctx context.Context, statement string, values ...any) ([]Record, error) {
	rows, err := table.database.QueryContext(ctx, statement, values...)
	if err != nil {
		slog.Warn("query failed", "statement", statement, "error", err)
		return nil, fmt.Errorf("querying %s: %w", table.name, err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("reading columns of %s: %w", table.name, err)
	}

	var records []Record
	for rows.Next() {
		holders := make([]any, len(columns))
		for i := range holders {
			holders[i] = new(any)
		}
		if err := rows.Scan(holders...); err != nil {
			return nil, fmt.Errorf("scanning %s row: %w", table.name, err)
		}
		record := make(Record, len(columns))
		for i, column := range columns {
			record[column] = *holders[i].(*any)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func (table *Table) whereClause(filter Record) (string, []any) {
	if len(filter) == 0 {
		return "", nil
	}
	conditions := make([]string, 0, len(filter))
	values := make([]any, 0, len(filter))
	for _, column := range table.columns {
		value, ok := filter[column.Name]
		if !ok {
			continue
		}
		conditions = append(conditions, column.Name+" = ?")
		values = append(values, coerce(value))
	}
	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), values
}

func (table *Table) orderedValues(record Record) ([]any, error) {
	values := make([]any, 0, len(table.columns))
	for _, column := range table.columns {
		value, ok := record[column.Name]
		if !ok {
			return nil, fmt.Errorf("record for %s is missing column %s", table.name, column.Name)
		}
		values = append(values, coerce(value))
	}
	return values, nil
}

func (table *Table) columnNames() string {
	names := make([]string, 0, len(table.columns))
	for _, column := range table.columns {
		names = append(names, column.Name)
	}
	return strings.Join(names, ", ")
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}

func coerce(value any) any {
	if boolean, ok := value.(bool); ok {
		if boolean {
			return 1
		}
		return 0
	}
	return value
}
