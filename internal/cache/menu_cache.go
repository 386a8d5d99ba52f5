package cache

import (
	"strings"
	"time"

	recipedomain "github.com/pourhouse/pourhouse/internal/recipe/domain"
)

const (
	defaultMenuTTL   = 30 * time.Second
	defaultRecipeTTL = 5 * time.Minute

	menuKey = "menu"
)

// MenuCache stores hot-path recipe lookups for the dispensing menu.
// Writes to a recipe must invalidate it so machines never pour from a
// stale composition for longer than the menu TTL.
type MenuCache interface {
	GetMenu() ([]recipedomain.RecipeDetail, bool)
	SetMenu(menu []recipedomain.RecipeDetail)
	GetRecipe(name string) (*recipedomain.RecipeDetail, bool)
	SetRecipe(name string, detail *recipedomain.RecipeDetail)
	Invalidate(name string)
}

type menuCache struct {
	menus     Cache[string, []recipedomain.RecipeDetail]
	recipes   Cache[string, *recipedomain.RecipeDetail]
	menuTTL   time.Duration
	recipeTTL time.Duration
}

// NewMenuCache returns an in-memory cache tuned for menu reads.
func NewMenuCache() MenuCache {
	return &menuCache{
		menus:     NewTTLCache[string, []recipedomain.RecipeDetail](),
		recipes:   NewTTLCache[string, *recipedomain.RecipeDetail](),
		menuTTL:   defaultMenuTTL,
		recipeTTL: defaultRecipeTTL,
	}
}

func (c *menuCache) GetMenu() ([]recipedomain.RecipeDetail, bool) {
	return c.menus.Get(menuKey)
}

func (c *menuCache) SetMenu(menu []recipedomain.RecipeDetail) {
	if menu == nil {
		return
	}
	c.menus.Set(menuKey, menu, c.menuTTL)
}

func (c *menuCache) GetRecipe(name string) (*recipedomain.RecipeDetail, bool) {
	return c.recipes.Get(recipeKey(name))
}

func (c *menuCache) SetRecipe(name string, detail *recipedomain.RecipeDetail) {
	if detail == nil {
		return
	}
	c.recipes.Set(recipeKey(name), detail, c.recipeTTL)
}

func (c *menuCache) Invalidate(name string) {
	c.recipes.Delete(recipeKey(name))
	c.menus.Delete(menuKey)
}

func recipeKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
