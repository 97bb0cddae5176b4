package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const (
	// SQLite3 is the name of the driver for SQLite3 databases
	SQLite3 = "sqlite3"
	// PostgreSQL is the name of the driver for PostgreSQL databases
	PostgreSQL = "postgres"

	// MaxExampleInsertionsPerStatement is the maximum number
	// of examples that are added with a single insert command
	// by Write. Writing more will result in making more insertion
	// commands
	MaxExampleInsertionsPerStatement = 10
)

/*
DB is a database connection that knows the dialect of the database it is
connected to.
*/
type DB struct {
	*sql.DB
	driver string
}

/*
Open takes the name of a driver (SQLite3 or PostgreSQL) and a data source
name (a file path for SQLite3 databases or a connection URL for PostgreSQL
ones) and returns a DB connected to it or an error.
*/
func Open(driver, dsn string) (*DB, error) {
	if driver != SQLite3 && driver != PostgreSQL {
		return nil, fmt.Errorf("unsupported SQL driver %q", driver)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	if driver == SQLite3 {
		// every connection to an in-memory database sees a different one
		db.SetMaxOpenConns(1)
	}
	return &DB{db, driver}, nil
}

/*
OpenURL takes a database location and opens it with Open, using the
PostgreSQL driver for postgres:// and postgresql:// URLs and the SQLite3
driver for anything else.
*/
func OpenURL(location string) (*DB, error) {
	if strings.HasPrefix(location, "postgres://") || strings.HasPrefix(location, "postgresql://") {
		return Open(PostgreSQL, location)
	}
	return Open(SQLite3, location)
}

/*
Driver returns the name of the driver of the database.
*/
func (db *DB) Driver() string {
	return db.driver
}

/*
Load takes a context, a DB, the name of a table, a slice of features and the
name of the target feature, and returns a dataset.Dataset with an example for
every row of the table or an error. Attributes follow the order of the given
features and the table must have a column for each of them. NULL values or
values outside the domain of their feature make Load fail.
*/
func Load(ctx context.Context, db *DB, table string, features []*feature.DiscreteFeature, target string) (*dataset.Dataset, error) {
	targetIndex := -1
	columns := make([]string, 0, len(features))
	for i, f := range features {
		c, err := columnName(f.Name())
		if err != nil {
			return nil, err
		}
		columns = append(columns, c)
		if f.Name() == target {
			targetIndex = i
		}
	}
	if targetIndex < 0 {
		return nil, fmt.Errorf("target feature %q is not among the features", target)
	}
	tableName, err := columnName(table)
	if err != nil {
		return nil, err
	}
	var queryBuf bytes.Buffer
	queryBuf.WriteString(`SELECT "`)
	queryBuf.WriteString(strings.Join(columns, `", "`))
	queryBuf.WriteString(fmt.Sprintf(`" FROM "%s"`, tableName))
	rows, err := db.QueryContext(ctx, queryBuf.String())
	if err != nil {
		return nil, fmt.Errorf("querying examples from table %s: %v", table, err)
	}
	defer rows.Close()
	var examples []dataset.Example
	values := make([]sql.NullString, len(features))
	dest := make([]interface{}, len(features))
	for i := range values {
		dest[i] = &values[i]
	}
	for n := 0; rows.Next(); n++ {
		err = rows.Scan(dest...)
		if err != nil {
			return nil, fmt.Errorf("scanning row #%d from table %s: %v", n, table, err)
		}
		e := make(dataset.Example, len(features))
		for i, f := range features {
			if !values[i].Valid {
				return nil, fmt.Errorf("row #%d from table %s: NULL value for feature %s", n, table, f.Name())
			}
			v, ok := f.Lookup(values[i].String)
			if !ok {
				return nil, fmt.Errorf("row #%d from table %s: invalid value %q for feature %s", n, table, values[i].String, f.Name())
			}
			e[i] = v
		}
		examples = append(examples, e)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("reading examples from table %s: %v", table, err)
	}
	return dataset.New(examples, dataset.WithFeatures(features...), dataset.WithTarget(targetIndex), dataset.WithName(table))
}

/*
Write takes a context, a DB, the name of a table and a dataset, ensures the
table exists with a column for every feature of the dataset and inserts the
examples of the dataset on it inside a transaction. It returns the number of
inserted examples or an error.
*/
func Write(ctx context.Context, db *DB, table string, ds *dataset.Dataset) (int, error) {
	tableName, err := columnName(table)
	if err != nil {
		return 0, err
	}
	columns := make([]string, 0, len(ds.Features))
	for _, f := range ds.Features {
		c, err := columnName(f.Name())
		if err != nil {
			return 0, err
		}
		columns = append(columns, c)
	}
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("starting transaction: %v", err)
	}
	n, err := db.writeTx(ctx, tx, tableName, columns, ds.Examples)
	if err != nil {
		tx.Rollback()
		return 0, err
	}
	err = tx.Commit()
	if err != nil {
		return 0, fmt.Errorf("committing examples into table %s: %v", table, err)
	}
	return n, nil
}

func (db *DB) writeTx(ctx context.Context, tx *sql.Tx, table string, columns []string, examples []dataset.Example) (int, error) {
	var createStmtBuf bytes.Buffer
	createStmtBuf.WriteString(fmt.Sprintf(`CREATE TABLE IF NOT EXISTS "%s" (`, table))
	for i, c := range columns {
		if i > 0 {
			createStmtBuf.WriteString(", ")
		}
		createStmtBuf.WriteString(fmt.Sprintf(`"%s" TEXT NOT NULL`, c))
	}
	createStmtBuf.WriteString(")")
	_, err := tx.ExecContext(ctx, createStmtBuf.String())
	if err != nil {
		return 0, fmt.Errorf("ensuring table %s exists: %v", table, err)
	}
	var written int
	for start := 0; start < len(examples); start += MaxExampleInsertionsPerStatement {
		end := start + MaxExampleInsertionsPerStatement
		if end > len(examples) {
			end = len(examples)
		}
		chunk := examples[start:end]
		args := make([]interface{}, 0, len(chunk)*len(columns))
		for _, e := range chunk {
			if len(e) != len(columns) {
				return written, fmt.Errorf("example #%d has %d attributes, expected %d", written, len(e), len(columns))
			}
			for _, v := range e {
				args = append(args, fmt.Sprintf("%v", v))
			}
		}
		_, err = tx.ExecContext(ctx, db.insertStatement(table, columns, len(chunk)), args...)
		if err != nil {
			return written, fmt.Errorf("inserting examples %d to %d: %v", start, end, err)
		}
		written += len(chunk)
	}
	return written, nil
}

func (db *DB) insertStatement(table string, columns []string, rows int) string {
	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf(`INSERT INTO "%s" ("%s") VALUES `, table, strings.Join(columns, `", "`)))
	p := 0
	for r := 0; r < rows; r++ {
		if r > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString("(")
		for c := range columns {
			if c > 0 {
				buf.WriteString(", ")
			}
			p++
			buf.WriteString(db.placeholder(p))
		}
		buf.WriteString(")")
	}
	return buf.String()
}

func (db *DB) placeholder(n int) string {
	if db.driver == PostgreSQL {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

func columnName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("empty names cannot be used as column or table names")
	}
	if strings.ContainsAny(name, `"`) {
		return "", fmt.Errorf(`name '%s' contains invalid character '"'`, name)
	}
	return name, nil
}
