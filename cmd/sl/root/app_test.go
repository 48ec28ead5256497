package root

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchPrefix(t *testing.T) {
	ids := []string{"3f2a9c10-aaaa", "3f2b0000-bbbb", "9d00e1aa-cccc"}

	id, err := matchPrefix("quest", "9d", ids)
	require.NoError(t, err)
	assert.Equal(t, "9d00e1aa-cccc", id)

	id, err = matchPrefix("quest", " 3f2a ", ids)
	require.NoError(t, err)
	assert.Equal(t, "3f2a9c10-aaaa", id)

	id, err = matchPrefix("quest", "3f2b0000-bbbb", ids)
	require.NoError(t, err)
	assert.Equal(t, "3f2b0000-bbbb", id)

	id, err = matchPrefix("quest", "zz", ids)
	require.NoError(t, err)
	assert.Equal(t, "zz", id)

	_, err = matchPrefix("template", "3f", ids)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}
