// Package datarecording persists simulation data into SQLite databases.
package datarecording

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/fatih/structs"

	// Need to use SQLite connections.
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/xid"
	"github.com/tebeka/atexit"
)

// DataRecorder is a backend that can record and store data
type DataRecorder interface {
	// CreateTable creates a new table whose columns follow the fields of
	// sampleEntry.
	CreateTable(tableName string, sampleEntry any)

	// InsertData buffers an entry for a table that already exists.
	InsertData(tableName string, entry any)

	// ListTables returns the names of all tables created so far.
	ListTables() []string

	// Flush writes all the buffered entries into the database.
	Flush()

	// Close flushes and closes the database.
	Close() error
}

// New creates a recorder that writes into <path>.sqlite3. If path is empty,
// a unique name is generated. It panics if the file already exists.
func New(path string) *SQLiteWriter {
	w := NewSQLiteWriter(path)
	w.Init()

	atexit.Register(func() { w.Flush() })

	return w
}

// NewWithDB creates a recorder on an already opened database.
func NewWithDB(db *sql.DB) *SQLiteWriter {
	w := &SQLiteWriter{
		DB:        db,
		batchSize: defaultBatchSize,
		tables:    make(map[string]*table),
	}

	atexit.Register(func() { w.Flush() })

	return w
}

const defaultBatchSize = 100000

type table struct {
	entries []any
}

// SQLiteWriter is the writer that writes data into SQLite database
type SQLiteWriter struct {
	*sql.DB

	dbName     string
	tables     map[string]*table
	tableOrder []string
	batchSize  int
	entryCount int
}

// NewSQLiteWriter creates a writer without opening the database.
func NewSQLiteWriter(path string) *SQLiteWriter {
	return &SQLiteWriter{
		dbName:    path,
		batchSize: defaultBatchSize,
		tables:    make(map[string]*table),
	}
}

// WithBatchSize sets how many buffered entries trigger an automatic flush.
func (t *SQLiteWriter) WithBatchSize(n int) *SQLiteWriter {
	t.batchSize = n
	return t
}

// Init establishes a connection to the database.
func (t *SQLiteWriter) Init() {
	if t.dbName == "" {
		t.dbName = "rrsched_recording_" + xid.New().String()
	}

	filename := t.Filename()

	_, err := os.Stat(filename)
	if err == nil {
		panic(fmt.Errorf("file %s already exists", filename))
	}

	db, err := sql.Open("sqlite3", filename)
	if err != nil {
		panic(err)
	}

	t.DB = db
}

// Filename returns the database file name.
func (t *SQLiteWriter) Filename() string {
	return t.dbName + ".sqlite3"
}

func isAllowedKind(kind reflect.Kind) bool {
	switch kind {
	case
		reflect.Bool,
		reflect.Int,
		reflect.Int8,
		reflect.Int16,
		reflect.Int32,
		reflect.Int64,
		reflect.Uint,
		reflect.Uint8,
		reflect.Uint16,
		reflect.Uint32,
		reflect.Uint64,
		reflect.Float32,
		reflect.Float64,
		reflect.String:
		return true
	default:
		return false
	}
}

func checkStructFields(entry any) error {
	types := reflect.TypeOf(entry)
	if types == nil || types.Kind() != reflect.Struct {
		return errors.New("entry must be a struct")
	}

	for i := 0; i < types.NumField(); i++ {
		field := types.Field(i)
		if !isAllowedKind(field.Type.Kind()) {
			return fmt.Errorf("field %s has unsupported kind %s",
				field.Name, field.Type.Kind())
		}
	}

	return nil
}

// CreateTable creates a table. It panics if the sample entry contains
// unsupported field types or the statement fails.
func (t *SQLiteWriter) CreateTable(tableName string, sampleEntry any) {
	err := checkStructFields(sampleEntry)
	if err != nil {
		panic(err)
	}

	n := structs.Names(sampleEntry)
	fields := strings.Join(n, ", \n\t")

	createTableSQL := `CREATE TABLE ` + tableName +
		` (` + "\n\t" + fields + "\n" + `);`
	t.mustExecute(createTableSQL)

	t.tables[tableName] = &table{entries: []any{}}
	t.tableOrder = append(t.tableOrder, tableName)
}

// InsertData buffers an entry.
func (t *SQLiteWriter) InsertData(tableName string, entry any) {
	table, exists := t.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	table.entries = append(table.entries, entry)

	t.entryCount++
	if t.entryCount >= t.batchSize {
		t.Flush()
	}
}

// ListTables returns the created tables in creation order.
func (t *SQLiteWriter) ListTables() []string {
	tables := make([]string, len(t.tableOrder))
	copy(tables, t.tableOrder)

	return tables
}

// Flush writes all buffered entries in a single transaction.
func (t *SQLiteWriter) Flush() {
	if t.entryCount == 0 {
		return
	}

	t.mustExecute("BEGIN TRANSACTION")
	defer t.mustExecute("COMMIT TRANSACTION")

	for _, tableName := range t.tableOrder {
		table := t.tables[tableName]
		if len(table.entries) == 0 {
			continue
		}

		stmt := t.prepareStatement(tableName, table.entries[0])

		for _, entry := range table.entries {
			v := []any{}

			values := reflect.ValueOf(entry)
			for i := 0; i < values.NumField(); i++ {
				v = append(v, values.Field(i).Interface())
			}

			_, err := stmt.Exec(v...)
			if err != nil {
				panic(err)
			}
		}

		table.entries = nil

		stmt.Close()
	}

	t.entryCount = 0
}

// Close flushes the pending entries and closes the database.
func (t *SQLiteWriter) Close() error {
	t.Flush()

	return t.DB.Close()
}

func (t *SQLiteWriter) mustExecute(query string) sql.Result {
	res, err := t.Exec(query)
	if err != nil {
		panic(fmt.Errorf("failed to execute %q: %w", query, err))
	}

	return res
}

func (t *SQLiteWriter) prepareStatement(table string, entry any) *sql.Stmt {
	n := structs.Names(entry)
	for i := 0; i < len(n); i++ {
		n[i] = "?"
	}

	entryToFill := "(" + strings.Join(n, ", ") + ")"
	sqlStr := "INSERT INTO " + table + " VALUES " + entryToFill

	stmt, err := t.Prepare(sqlStr)
	if err != nil {
		panic(err)
	}

	return stmt
}

var _ DataRecorder = (*SQLiteWriter)(nil)
