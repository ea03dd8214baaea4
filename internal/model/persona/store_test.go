package persona

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMemoryStoreFindByID(t *testing.T) {
	store := NewMemoryStore(Seed())

	p, ok := store.FindByID("boes-bot")
	assert.True(t, ok)
	assert.Equal(t, "Boes Bot", p.Name)

	_, ok = store.FindByID("missing")
	assert.False(t, ok)
}

func TestMemoryStoreListIsACopy(t *testing.T) {
	store := NewMemoryStore(Seed())

	items := store.List()
	items[0].Name = "changed"

	assert.Equal(t, "Boes Bot", store.List()[0].Name)
}
