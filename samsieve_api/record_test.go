package samsieve_api

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Build a SAM line with fixed placeholder columns
func samLine(name string, flag int, mapq int, tags ...string) string {
	fields := []string{
		name, strconv.Itoa(flag), "chr1", "100", strconv.Itoa(mapq),
		"10M", "=", "200", "110", "ACGTACGTAC", "IIIIIIIIII",
	}
	return strings.Join(append(fields, tags...), "\t")
}

func TestParseRecord(t *testing.T) {
	text := samLine("read1", 99, 37, "NM:i:2")
	record, err := parseRecord(Line{Kind: RecordLine, Text: text, Number: 3})
	require.NoError(t, err)
	assert.Equal(t, "read1", record.Name)
	assert.Equal(t, 37, record.MapQ)
	assert.Equal(t, text, record.Text)
	assert.Equal(t, 3, record.Number)
}

func TestParseRecordMalformed(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"too few fields", "read1\t99\tchr1\t100"},
		{"empty identifier", samLine("", 99, 20)},
		{"mapq not a number", strings.Replace(samLine("read1", 99, 20), "\t20\t", "\tx\t", 1)},
		{"mapq out of range", strings.Replace(samLine("read1", 99, 20), "\t20\t", "\t256\t", 1)},
		{"negative mapq", strings.Replace(samLine("read1", 99, 20), "\t20\t", "\t-1\t", 1)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := parseRecord(Line{Kind: RecordLine, Text: test.text, Number: 1})
			assert.ErrorIs(t, err, ErrMalformedField)
		})
	}
}

func TestEditDistance(t *testing.T) {
	tests := []struct {
		name    string
		tags    []string
		nm      int
		present bool
		err     bool
	}{
		{"absent", []string{"AS:i:10"}, 0, false, false},
		{"present", []string{"AS:i:10", "NM:i:4"}, 4, true, false},
		{"first occurrence wins", []string{"NM:i:1", "XX:Z:NM:i:9"}, 1, true, false},
		{"digits only", []string{"NM:i:12abc"}, 12, true, false},
		{"no digits", []string{"NM:i:"}, 0, false, true},
		{"overflow", []string{"NM:i:99999999999"}, 0, false, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			record, err := parseRecord(Line{Kind: RecordLine, Text: samLine("r", 99, 30, test.tags...), Number: 1})
			require.NoError(t, err)
			nm, present, err := record.EditDistance()
			if test.err {
				assert.ErrorIs(t, err, ErrMalformedField)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.nm, nm)
			assert.Equal(t, test.present, present)
		})
	}
}

func TestParseFlag(t *testing.T) {
	flag, err := parseFlag(Line{Text: samLine("r", 1107, 30)})
	require.NoError(t, err)
	assert.Equal(t, uint64(1107), flag)

	_, err = parseFlag(Line{Text: "r\tdup\tchr1"})
	assert.ErrorIs(t, err, ErrMalformedField)

	_, err = parseFlag(Line{Text: "r"})
	assert.ErrorIs(t, err, ErrMalformedField)
}
