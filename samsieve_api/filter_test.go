package samsieve_api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPair(t *testing.T, mapq1, mapq2 int, tags1, tags2 []string) Pair {
	first, err := parseRecord(Line{Kind: RecordLine, Text: samLine("r", 99, mapq1, tags1...), Number: 1})
	require.NoError(t, err)
	second, err := parseRecord(Line{Kind: RecordLine, Text: samLine("r", 147, mapq2, tags2...), Number: 2})
	require.NoError(t, err)
	return Pair{First: first, Second: second}
}

func TestMapQualityFilter(t *testing.T) {
	tests := []struct {
		mapq1, mapq2 int
		singleEnd    bool
		keep         bool
	}{
		{30, 10, false, false},
		{30, 10, true, true},
		{30, 20, false, true},
		{10, 19, true, false},
		{20, 20, false, true},
		{0, 0, true, false},
	}
	for _, test := range tests {
		filter := mapQualityFilter{cutoff: 20, singleEnd: test.singleEnd}
		keep, err := filter.Keep(testPair(t, test.mapq1, test.mapq2, nil, nil))
		require.NoError(t, err)
		assert.Equal(t, test.keep, keep, "mapq %d/%d single-end %v", test.mapq1, test.mapq2, test.singleEnd)
	}
}

func TestSingleEndKeepsSupersetOfPaired(t *testing.T) {
	for mapq1 := 0; mapq1 <= 60; mapq1 += 5 {
		for mapq2 := 0; mapq2 <= 60; mapq2 += 5 {
			pair := testPair(t, mapq1, mapq2, nil, nil)
			paired, err := mapQualityFilter{cutoff: 30}.Keep(pair)
			require.NoError(t, err)
			single, err := mapQualityFilter{cutoff: 30, singleEnd: true}.Keep(pair)
			require.NoError(t, err)
			if paired {
				assert.True(t, single, "mapq %d/%d", mapq1, mapq2)
			}
		}
	}
}

func TestEditDistanceFilter(t *testing.T) {
	tests := []struct {
		name         string
		tags1, tags2 []string
		keep         bool
	}{
		{"both below", []string{"NM:i:1"}, []string{"NM:i:2"}, true},
		{"first at cutoff", []string{"NM:i:3"}, []string{"NM:i:0"}, false},
		{"second above", []string{"NM:i:0"}, []string{"NM:i:7"}, false},
		{"first tag missing", nil, []string{"NM:i:7"}, true},
		{"both tags missing", nil, nil, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			keep, err := editDistanceFilter{cutoff: 3}.Keep(testPair(t, 30, 30, test.tags1, test.tags2))
			require.NoError(t, err)
			assert.Equal(t, test.keep, keep)
		})
	}
}

func TestEditDistanceFilterMalformedTag(t *testing.T) {
	_, err := editDistanceFilter{cutoff: 3}.Keep(testPair(t, 30, 30, []string{"NM:i:x"}, []string{"NM:i:1"}))
	assert.ErrorIs(t, err, ErrMalformedField)
}

func TestFilterPipelinePrecedence(t *testing.T) {
	config := &FilterConfig{MapQ: 20, HasEditDistance: true, EditDistance: 2}
	pipeline := NewFilterPipeline(config)
	require.Len(t, pipeline, 2)
	assert.Equal(t, "edit-distance", pipeline[0].Name())
	assert.Equal(t, "mapq", pipeline[1].Name())

	// Failing both filters is reported against the first one
	rejectedBy, err := pipeline.Evaluate(testPair(t, 5, 5, []string{"NM:i:4"}, []string{"NM:i:0"}))
	require.NoError(t, err)
	assert.Equal(t, "edit-distance", rejectedBy)

	rejectedBy, err = pipeline.Evaluate(testPair(t, 5, 30, []string{"NM:i:0"}, []string{"NM:i:0"}))
	require.NoError(t, err)
	assert.Equal(t, "mapq", rejectedBy)

	rejectedBy, err = pipeline.Evaluate(testPair(t, 25, 30, []string{"NM:i:1"}, []string{"NM:i:1"}))
	require.NoError(t, err)
	assert.Empty(t, rejectedBy)
}

func TestFilterPipelineWithoutEditDistance(t *testing.T) {
	pipeline := NewFilterPipeline(&FilterConfig{MapQ: 0})
	require.Len(t, pipeline, 1)

	// A malformed NM tag is never looked at when no cutoff is configured
	rejectedBy, err := pipeline.Evaluate(testPair(t, 0, 0, []string{"NM:i:"}, nil))
	require.NoError(t, err)
	assert.Empty(t, rejectedBy)
}
