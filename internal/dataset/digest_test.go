package dataset

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowDigest(t *testing.T) {
	a := RowDigest([]string{"ab", "c"})
	b := RowDigest([]string{"a", "bc"})

	// The unit-separator delimiter keeps shifted cell boundaries apart.
	assert.NotEqual(t, a, b)
	assert.Equal(t, a, RowDigest([]string{"ab", "c"}))
	assert.Len(t, a, 64)
}

func TestWithDigests(t *testing.T) {
	table, err := Read(strings.NewReader("a,b\n1,2\n1,2\n3,4\n"))
	require.NoError(t, err)

	out, err := table.WithDigests("", nil, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", DefaultDigestColumn}, out.Columns)
	require.Len(t, out.Rows, 3)
	assert.Equal(t, out.Rows[0][2], out.Rows[1][2])
	assert.NotEqual(t, out.Rows[0][2], out.Rows[2][2])

	// The input table is untouched.
	assert.Len(t, table.Columns, 2)
}

func TestDigests_SubsetAndExclude(t *testing.T) {
	table, err := Read(strings.NewReader("id,email,amount\n1,a@b.c,10\n2,a@b.c,10\n"))
	require.NoError(t, err)

	full, err := table.Digests(nil, nil)
	require.NoError(t, err)
	assert.NotEqual(t, full[0], full[1])

	noID, err := table.Digests(nil, []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, noID[0], noID[1])

	emailOnly, err := table.Digests([]string{"email"}, nil)
	require.NoError(t, err)
	assert.Equal(t, emailOnly[0], emailOnly[1])
}

func TestDigests_ShortRowsPadWithEmpty(t *testing.T) {
	table, err := Read(strings.NewReader("a,b,c\n1,2\n1,2,\n"))
	require.NoError(t, err)

	digests, err := table.Digests(nil, nil)
	require.NoError(t, err)
	assert.Equal(t, digests[0], digests[1])
}
