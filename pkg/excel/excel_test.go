package excel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/pkg/excel"
)

func TestEncodeDecode_RoundTrip(t *testing.T) {
	data, err := excel.Encode([]excel.SheetData{
		{
			Name:    "Members",
			Headers: []string{"member_number", "first_name", "last_name"},
			Rows: [][]string{
				{"1", "Carmen", "García López"},
				{"2", "Lucía", "Fernández"},
			},
		},
		{
			Name:    "Places",
			Headers: []string{"name", "address"},
			Rows: [][]string{
				{"Centro Cívico", "Calle Mayor 1"},
			},
		},
	})
	require.NoError(t, err)

	wb, err := excel.Decode(data)
	require.NoError(t, err)
	require.Len(t, wb.Sheets(), 2)

	members, ok := wb.Sheet("Members")
	require.True(t, ok)
	assert.Equal(t, []string{"member_number", "first_name", "last_name"}, members.Columns)
	require.Len(t, members.Rows, 2)

	v, ok := members.Rows[0].Get("first_name")
	require.True(t, ok)
	assert.Equal(t, "Carmen", v)
	assert.Equal(t, 1, members.Rows[0].Index)

	places, ok := wb.Sheet("places")
	require.True(t, ok, "sheet lookup should be case-insensitive")
	require.Len(t, places.Rows, 1)
}

func TestDecode_NormalizesHeadersAndDropsBlankRows(t *testing.T) {
	data, err := excel.Encode([]excel.SheetData{
		{
			Name:    "Members",
			Headers: []string{"  Member_Number ", "FIRST_NAME"},
			Rows: [][]string{
				{"1", "Carmen"},
				{"", ""},
				{"2", "Lucía"},
			},
		},
	})
	require.NoError(t, err)

	wb, err := excel.Decode(data)
	require.NoError(t, err)

	sheet, ok := wb.Sheet("Members")
	require.True(t, ok)
	assert.Equal(t, []string{"member_number", "first_name"}, sheet.Columns)
	require.Len(t, sheet.Rows, 2, "fully blank rows must be dropped")

	_, found := sheet.Rows[0].Get("missing_column")
	assert.False(t, found)
}

func TestDecode_ShortRowsPadWithEmptyCells(t *testing.T) {
	data, err := excel.Encode([]excel.SheetData{
		{
			Name:    "Places",
			Headers: []string{"name", "address", "city"},
			Rows: [][]string{
				{"Plaza Mayor"},
			},
		},
	})
	require.NoError(t, err)

	wb, err := excel.Decode(data)
	require.NoError(t, err)

	sheet, ok := wb.Sheet("Places")
	require.True(t, ok)
	require.Len(t, sheet.Rows, 1)

	city, ok := sheet.Rows[0].Get("city")
	require.True(t, ok)
	assert.Equal(t, "", city)
}

func TestDecode_Garbage(t *testing.T) {
	_, err := excel.Decode([]byte("not a workbook"))
	require.Error(t, err)
}
