package samsieve_api

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFasta = `>scaffold1 assembled
ACGTNNN
ACGT

>scaffold2
acgtac
>empty
>scaffold3
ACRT
`

func TestReadFastaStats(t *testing.T) {
	result, err := ReadFastaStats(strings.NewReader(testFasta))
	require.NoError(t, err)

	assert.Equal(t, Bases{A: 5, T: 4, C: 5, G: 3, N: 3}, result.Bases)
	assert.Equal(t, []int{11, 6, 4}, result.Populations.Scaffold)
	assert.Equal(t, []int{8, 6, 4}, result.Populations.GaplessScaffold)
	assert.Equal(t, []int{4, 4, 6, 4}, result.Populations.Contig)
	assert.Equal(t, []string{
		"Seq empty is empty and was skipped",
		"Seq scaffold3 has base(s) not in A, T, C, G, N",
	}, result.Warnings)
}

func TestFastaStatsFromGzipPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assembly.fa.gz")
	file, err := os.Create(path)
	require.NoError(t, err)
	writer := gzip.NewWriter(file)
	_, err = writer.Write([]byte(testFasta))
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	require.NoError(t, file.Close())

	result, err := FastaStatsFromPath(path, false)
	require.NoError(t, err)
	assert.Equal(t, []int{11, 6, 4}, result.Populations.Scaffold)
}

func TestFastaStatsFromPlainPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assembly.fa")
	require.NoError(t, os.WriteFile(path, []byte(">only\nNNNN\n"), 0o644))

	result, err := FastaStatsFromPath(path, false)
	require.NoError(t, err)
	assert.Equal(t, Bases{N: 4}, result.Bases)
	assert.Empty(t, result.Populations.Contig)
	assert.Equal(t, []int{0}, result.Populations.GaplessScaffold)
}
