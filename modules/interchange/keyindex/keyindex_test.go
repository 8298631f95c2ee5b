package keyindex_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/civicore-hq/civicore/modules/interchange/keyindex"
)

func TestIndex_CaseInsensitiveLookup(t *testing.T) {
	idx := keyindex.New()
	id := uuid.New()
	idx.Put(keyindex.Places, "Plaza Mayor", id)

	got, ok := idx.Lookup(keyindex.Places, "  plaza mayor ")
	require.True(t, ok)
	assert.Equal(t, id, got)

	_, ok = idx.Lookup(keyindex.Members, "plaza mayor")
	assert.False(t, ok, "kinds must not share keys")
}

func TestIndex_BlankKeysIgnored(t *testing.T) {
	idx := keyindex.New()
	idx.Put(keyindex.Members, "   ", uuid.New())

	_, ok := idx.Lookup(keyindex.Members, "")
	assert.False(t, ok)
}

func TestIndex_Replace(t *testing.T) {
	idx := keyindex.New()
	idx.Put(keyindex.Projects, "Old", uuid.New())

	fresh := uuid.New()
	idx.Replace(keyindex.Projects, map[string]uuid.UUID{"Garden": fresh})

	_, ok := idx.Lookup(keyindex.Projects, "Old")
	assert.False(t, ok)
	got, ok := idx.Lookup(keyindex.Projects, "garden")
	require.True(t, ok)
	assert.Equal(t, fresh, got)
}
