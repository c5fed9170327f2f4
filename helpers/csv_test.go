package helpers

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCSV(t *testing.T) {
	t.Parallel()

	src := "Restaurant ID,City,Cuisines\n" +
		"1,Brasília,\"Italian, Pizza\"\n" +
		"2,Goiânia\n"

	headers, rows, err := ReadCSV(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, []string{"Restaurant ID", "City", "Cuisines"}, headers)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"1", "Brasília", "Italian, Pizza"}, rows[0])
	assert.Equal(t, []string{"2", "Goiânia"}, rows[1], "short rows are kept")
}

func TestReadCSV_HeaderOnly(t *testing.T) {
	t.Parallel()

	headers, rows, err := ReadCSV(strings.NewReader("a,b\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, headers)
	assert.Empty(t, rows)
}

func TestReadCSV_Errors(t *testing.T) {
	t.Parallel()

	t.Run("empty source", func(t *testing.T) {
		t.Parallel()
		_, _, err := ReadCSV(strings.NewReader(""))
		assert.ErrorIs(t, err, ErrNoHeader)
	})

	t.Run("row longer than header", func(t *testing.T) {
		t.Parallel()
		_, _, err := ReadCSV(strings.NewReader("a,b\n1,2\n1,2,3\n"))
		var rowErr *RowError
		require.True(t, errors.As(err, &rowErr))
		assert.Equal(t, 3, rowErr.Line)
		assert.Equal(t, 3, rowErr.Cells)
		assert.Equal(t, 2, rowErr.Want)
	})

	t.Run("bad quoting", func(t *testing.T) {
		t.Parallel()
		_, _, err := ReadCSV(strings.NewReader("a,b\n\"unterminated,2\n"))
		assert.Error(t, err)
	})
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteCSV(&buf, []string{"city", "cuisines"}, [][]string{
		{"São Paulo", "Italian"},
		{"Rio, RJ", "Brazilian"},
	})
	require.NoError(t, err)
	assert.Equal(t, "city,cuisines\nSão Paulo,Italian\n\"Rio, RJ\",Brazilian\n", buf.String())

	headers, rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"city", "cuisines"}, headers)
	assert.Equal(t, "Rio, RJ", rows[1][0])
}
