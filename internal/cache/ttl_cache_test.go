package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
)

func TestTTLCache_SetGet(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, time.Minute)
	got, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, got)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestTTLCache_Expiry(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, 10*time.Millisecond)
	time.Sleep(25 * time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTLCache_NonPositiveTTLIsNoop(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, 0)
	_, ok := c.Get("a")
	assert.False(t, ok)
}

func TestTTLCache_DeleteAndPurge(t *testing.T) {
	c := NewTTLCache[string, int]()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Delete("a")
	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Purge()
	_, ok = c.Get("b")
	assert.False(t, ok)
}

func TestMenuCache_InvalidateDropsMenuAndRecipe(t *testing.T) {
	c := NewMenuCache()

	detail := &recipedomain.RecipeDetail{
		Recipe: recipedomain.Recipe{Name: "Negroni", PriceCents: 900},
	}
	c.SetRecipe("Negroni", detail)
	c.SetMenu([]recipedomain.RecipeDetail{*detail})

	// Lookups are case and whitespace insensitive.
	got, ok := c.GetRecipe("  negroni ")
	assert.True(t, ok)
	assert.Equal(t, detail, got)

	c.Invalidate("NEGRONI")
	_, ok = c.GetRecipe("Negroni")
	assert.False(t, ok)
	_, ok = c.GetMenu()
	assert.False(t, ok)
}
