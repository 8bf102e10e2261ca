package loader

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"

	"tripstats/utils"
)

const stageName = "loader"

// Config parameters used to read the monthly exports
// + RequiredColumns: columns every file must carry
// + Delimiter: CSV field delimiter
type Config struct {
	RequiredColumns []string
	Delimiter       rune
}

// FileRows number of data rows read from a file
type FileRows struct {
	Path string
	Rows int
}

// Result of a load: the concatenated table and the rows contributed by each file, in file order
type Result struct {
	Table dataframe.DataFrame
	Files []FileRows
}

// Rows returns the number of rows of the concatenated table
func (r *Result) Rows() int {
	return r.Table.Nrow()
}

// Dims returns the (rows, columns) of the concatenated table
func (r *Result) Dims() (int, int) {
	return r.Table.Dims()
}

type Loader struct {
	config Config
}

func NewLoader(config Config) *Loader {
	if config.Delimiter == 0 {
		config.Delimiter = ','
	}
	return &Loader{
		config: config,
	}
}

func (l *Loader) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[stage: %s][method: %s][status: ERROR] %s: %s", stageName, method, message, err.Error())
	}
	return fmt.Sprintf("[stage: %s][method: %s][status: OK] %s", stageName, method, message)
}

// Load reads every file fully and concatenates them in the given order. Any missing file,
// unreadable file or schema difference aborts the whole load.
func (l *Loader) Load(paths []string) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoInputFiles
	}

	var combined dataframe.DataFrame
	var header []string
	files := make([]FileRows, 0, len(paths))

	for idx, path := range paths {
		table, err := l.readFile(path)
		if err != nil {
			log.Error(l.getLogMessage("Load", fmt.Sprintf("cannot load %s", path), err))
			return nil, err
		}

		if idx == 0 {
			header = table.Names()
			combined = table
		} else {
			if !utils.SameStrings(header, table.Names()) {
				err = fmt.Errorf("%w: %s has columns %v, expected %v", ErrSchemaMismatch, filepath.Base(path), table.Names(), header)
				log.Error(l.getLogMessage("Load", "schema check failed", err))
				return nil, err
			}
			combined = combined.RBind(table)
			if combined.Err != nil {
				return nil, fmt.Errorf("%w: %s", ErrConcatenating, combined.Err)
			}
		}

		files = append(files, FileRows{Path: path, Rows: table.Nrow()})
		log.Debug(l.getLogMessage("Load", fmt.Sprintf("%s loaded with %d rows", path, table.Nrow()), nil))
	}

	rows, cols := combined.Dims()
	log.Info(l.getLogMessage("Load", fmt.Sprintf("%d files concatenated into %d rows x %d columns", len(files), rows, cols), nil))

	return &Result{
		Table: combined,
		Files: files,
	}, nil
}

// readFile parses a CSV file keeping every column as a string. The file is closed before returning.
func (l *Loader) readFile(path string) (dataframe.DataFrame, error) {
	dataFile, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s", ErrOpeningFile, err)
	}

	defer func(dataFile *os.File) {
		err := dataFile.Close()
		if err != nil {
			log.Errorf("error closing %s: %s", path, err.Error())
		}
	}(dataFile)

	content, err := io.ReadAll(dataFile)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %s", ErrReadingFile, path, err)
	}

	table := dataframe.ReadCSV(
		bytes.NewReader(content),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithDelimiter(l.config.Delimiter),
	)
	if table.Err != nil {
		// gota refuses a header without rows, which is a valid month with no trips
		header, ok := l.headerOnly(content)
		if !ok {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s: %s", ErrReadingFile, path, table.Err)
		}
		table = emptyTable(header)
		log.Warn(l.getLogMessage("readFile", fmt.Sprintf("%s has a header and no rows", path), nil))
	}

	names := table.Names()
	for _, column := range l.config.RequiredColumns {
		if !utils.ContainsString(column, names) {
			return dataframe.DataFrame{}, fmt.Errorf("%w: %s is missing column %q", ErrSchemaMismatch, filepath.Base(path), column)
		}
	}

	return table, nil
}

// headerOnly returns the header of content when it is the only record
func (l *Loader) headerOnly(content []byte) ([]string, bool) {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.Comma = l.config.Delimiter

	records, err := reader.ReadAll()
	if err != nil || len(records) != 1 {
		return nil, false
	}
	return records[0], true
}

// emptyTable builds a zero-row string table with the given columns
func emptyTable(header []string) dataframe.DataFrame {
	columns := make([]series.Series, 0, len(header))
	for _, name := range header {
		columns = append(columns, series.New([]string{}, series.String, name))
	}
	return dataframe.New(columns...)
}
