package loader

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var requiredColumns = []string{"Date/Time", "Lat", "Lon", "Base"}

func writeCSV(t *testing.T, dir string, name string, lines ...string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0644))
	return path
}

func TestLoad_RowCountIsSumOfFiles(t *testing.T) {
	dir := t.TempDir()
	header := `"Date/Time","Lat","Lon","Base"`
	apr := writeCSV(t, dir, "uber-raw-data-apr14.csv", header,
		`"4/1/2014 0:11:00",40.769,-73.9549,"B02512"`,
		`"4/1/2014 0:17:00",40.7267,-74.0345,"B02512"`,
	)
	may := writeCSV(t, dir, "uber-raw-data-may14.csv", header,
		`"5/1/2014 0:02:00",40.7521,-73.9914,"B02512"`,
		`"5/1/2014 0:06:00",40.6965,-73.9715,"B02512"`,
		`"5/1/2014 0:15:00",40.7464,-73.9838,"B02512"`,
	)

	result, err := NewLoader(Config{RequiredColumns: requiredColumns}).Load([]string{apr, may})
	require.NoError(t, err)

	sum := 0
	for _, file := range result.Files {
		sum += file.Rows
	}
	assert.Equal(t, 5, result.Rows())
	assert.Equal(t, sum, result.Rows())

	rows, cols := result.Dims()
	assert.Equal(t, 5, rows)
	assert.Equal(t, 4, cols)
}

func TestLoad_PreservesFileThenRowOrder(t *testing.T) {
	dir := t.TempDir()
	header := "Date/Time,Lat,Lon,Base"
	first := writeCSV(t, dir, "a.csv", header, "4/2/2014 1:00:00,40.1,-73.1,B1", "4/1/2014 1:00:00,40.2,-73.2,B2")
	second := writeCSV(t, dir, "b.csv", header, "5/1/2014 1:00:00,40.3,-73.3,B3")

	result, err := NewLoader(Config{RequiredColumns: requiredColumns}).Load([]string{first, second})
	require.NoError(t, err)

	assert.Equal(t, []string{"B1", "B2", "B3"}, result.Table.Col("Base").Records())
}

func TestLoad_MissingFileIsFatal(t *testing.T) {
	dir := t.TempDir()
	present := writeCSV(t, dir, "apr.csv", "Date/Time,Lat,Lon,Base", "4/1/2014 0:11:00,40.7,-73.9,B02512")

	_, err := NewLoader(Config{RequiredColumns: requiredColumns}).Load([]string{present, filepath.Join(dir, "may.csv")})
	assert.ErrorIs(t, err, ErrOpeningFile)
}

func TestLoad_SchemaMismatch(t *testing.T) {
	dir := t.TempDir()
	loader := NewLoader(Config{RequiredColumns: requiredColumns})

	t.Run("missing required column", func(t *testing.T) {
		path := writeCSV(t, dir, "no-base.csv", "Date/Time,Lat,Lon", "4/1/2014 0:11:00,40.7,-73.9")
		_, err := loader.Load([]string{path})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("different columns between files", func(t *testing.T) {
		first := writeCSV(t, dir, "first.csv", "Date/Time,Lat,Lon,Base", "4/1/2014 0:11:00,40.7,-73.9,B1")
		second := writeCSV(t, dir, "second.csv", "Date/Time,Lat,Lon,Base,Extra", "5/1/2014 0:11:00,40.7,-73.9,B1,x")
		_, err := loader.Load([]string{first, second})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})
}

func TestLoad_NoFiles(t *testing.T) {
	_, err := NewLoader(Config{}).Load(nil)
	assert.ErrorIs(t, err, ErrNoInputFiles)
}

func TestLoad_CustomDelimiter(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "semicolon.csv", "Date/Time;Lat;Lon;Base", "4/1/2014 0:11:00;40.7;-73.9;B02512")

	result, err := NewLoader(Config{RequiredColumns: requiredColumns, Delimiter: ';'}).Load([]string{path})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Rows())
}

func TestLoad_HeaderOnlyFile(t *testing.T) {
	dir := t.TempDir()
	header := "Date/Time,Lat,Lon,Base"
	empty := writeCSV(t, dir, "jun.csv", header)
	apr := writeCSV(t, dir, "apr.csv", header, "4/1/2014 0:11:00,40.7,-73.9,B1", "4/1/2014 0:12:00,40.7,-73.9,B2")
	may := writeCSV(t, dir, "may.csv", header, "5/1/2014 0:11:00,40.7,-73.9,B3")
	loader := NewLoader(Config{RequiredColumns: requiredColumns})

	t.Run("between files", func(t *testing.T) {
		result, err := loader.Load([]string{apr, empty, may})
		require.NoError(t, err)
		assert.Equal(t, 3, result.Rows())
		assert.Equal(t, 0, result.Files[1].Rows)
		assert.Equal(t, []string{"B1", "B2", "B3"}, result.Table.Col("Base").Records())
	})

	t.Run("first file", func(t *testing.T) {
		result, err := loader.Load([]string{empty, may})
		require.NoError(t, err)
		rows, cols := result.Dims()
		assert.Equal(t, 1, rows)
		assert.Equal(t, 4, cols)
	})

	t.Run("only file", func(t *testing.T) {
		result, err := loader.Load([]string{empty})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Rows())
		assert.Equal(t, requiredColumns, result.Table.Names())
	})

	t.Run("header missing a required column", func(t *testing.T) {
		path := writeCSV(t, dir, "short.csv", "Date/Time,Lat,Lon")
		_, err := loader.Load([]string{path})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})

	t.Run("header differs from first file", func(t *testing.T) {
		path := writeCSV(t, dir, "extra.csv", header+",Extra")
		_, err := loader.Load([]string{apr, path})
		assert.ErrorIs(t, err, ErrSchemaMismatch)
	})
}

func TestLoad_EmptyFileIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.csv")
	require.NoError(t, os.WriteFile(path, nil, 0644))

	_, err := NewLoader(Config{RequiredColumns: requiredColumns}).Load([]string{path})
	assert.ErrorIs(t, err, ErrReadingFile)
}
