package datarecording

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/fatih/structs"
	"github.com/tebeka/atexit"
)

type csvTable struct {
	structType reflect.Type
	file       *os.File
	writer     *csv.Writer
}

// CSVRecorder is a DataRecorder that writes every table into
// <dir>/<table>.csv. The header holds the lower-cased field names of the
// sample entry. Existing files are overwritten.
type CSVRecorder struct {
	dir        string
	tables     map[string]*csvTable
	tableNames []string
	closed     bool
}

// NewCSVRecorder creates a CSVRecorder that writes into the directory,
// creating it if needed.
func NewCSVRecorder(dir string) (*CSVRecorder, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", dir, err)
	}

	r := &CSVRecorder{
		dir:    dir,
		tables: make(map[string]*csvTable),
	}

	atexit.Register(func() { r.Flush() })

	return r, nil
}

// Path returns the file that a table is written into.
func (r *CSVRecorder) Path(tableName string) string {
	return filepath.Join(r.dir, tableName+".csv")
}

// CreateTable creates the file of the table and writes the header.
func (r *CSVRecorder) CreateTable(tableName string, sampleEntry any) {
	err := checkStructFields(sampleEntry)
	if err != nil {
		panic(err)
	}

	if _, exists := r.tables[tableName]; exists {
		panic(fmt.Sprintf("table %s already exists", tableName))
	}

	file, err := os.Create(r.Path(tableName))
	if err != nil {
		panic(err)
	}

	header := structs.Names(sampleEntry)
	for i := range header {
		header[i] = strings.ToLower(header[i])
	}

	w := csv.NewWriter(file)
	if err := w.Write(header); err != nil {
		panic(err)
	}

	r.tables[tableName] = &csvTable{
		structType: reflect.TypeOf(sampleEntry),
		file:       file,
		writer:     w,
	}
	r.tableNames = append(r.tableNames, tableName)
}

// InsertData appends a row to the table.
func (r *CSVRecorder) InsertData(tableName string, entry any) {
	table, exists := r.tables[tableName]
	if !exists {
		panic(fmt.Sprintf("table %s does not exist", tableName))
	}

	if reflect.TypeOf(entry) != table.structType {
		panic(fmt.Sprintf("entry of type %T does not fit table %s",
			entry, tableName))
	}

	values := reflect.ValueOf(entry)
	row := make([]string, values.NumField())

	for i := range row {
		row[i] = formatValue(values.Field(i))
	}

	if err := table.writer.Write(row); err != nil {
		panic(err)
	}
}

func formatValue(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Float32:
		return strconv.FormatFloat(v.Float(), 'g', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, 64)
	default:
		return fmt.Sprint(v.Interface())
	}
}

// ListTables returns the tables in creation order.
func (r *CSVRecorder) ListTables() []string {
	tables := make([]string, len(r.tableNames))
	copy(tables, r.tableNames)

	return tables
}

// Flush writes the buffered rows to the files.
func (r *CSVRecorder) Flush() {
	if r.closed {
		return
	}

	for _, name := range r.tableNames {
		w := r.tables[name].writer

		w.Flush()
		if err := w.Error(); err != nil {
			panic(err)
		}
	}
}

// Close flushes and closes all the files.
func (r *CSVRecorder) Close() error {
	if r.closed {
		return nil
	}

	r.Flush()
	r.closed = true

	for _, name := range r.tableNames {
		if err := r.tables[name].file.Close(); err != nil {
			return err
		}
	}

	return nil
}
