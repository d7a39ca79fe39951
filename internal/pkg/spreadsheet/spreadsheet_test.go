package spreadsheet

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteTemplateThenReadRows(t *testing.T) {
	var buf bytes.Buffer
	err := WriteTemplate(&buf, "Employees",
		[]string{"Username", "Employee Name", "Gender"},
		[][]string{
			{"jdoe", "John Doe", "L"},
			{"", "", ""},
			{"asmith", "Alice Smith", "P"},
		})
	require.NoError(t, err)

	rows, err := ReadRows(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 2, "blank rows are skipped")

	assert.Equal(t, "jdoe", rows[0].Get("Username"))
	assert.Equal(t, "John Doe", rows[0].Get("employee  name"))
	assert.Equal(t, "P", rows[1].Get("GENDER"))
	assert.Equal(t, "", rows[1].Get("Missing Column"))
}

func TestReadRows_DateCellsAreRawSerials(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetCellValue(sheet, "A1", "Date of Birth"))
	require.NoError(t, f.SetCellValue(sheet, "A2", 45292))
	style, err := f.NewStyle(&excelize.Style{NumFmt: 14})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle(sheet, "A2", "A2", style))

	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	rows, err := ReadRows(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "45292", rows[0].Get("Date of Birth"))
}

func TestReadRows_EmptySheet(t *testing.T) {
	f := excelize.NewFile()
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))

	_, err := ReadRows(&buf)
	assert.ErrorIs(t, err, ErrEmptyWorksheet)
}

func TestReadRows_NotAWorkbook(t *testing.T) {
	_, err := ReadRows(strings.NewReader("plain text"))
	assert.Error(t, err)
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "employee name", NormalizeHeader("  Employee   Name "))
}
