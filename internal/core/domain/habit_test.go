package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rowdraraz100/RazNotes/internal/core/domain"
)

func TestNewCatalog(t *testing.T) {
	t.Run("Success: Keeps order and fills default icon", func(t *testing.T) {
		c, err := domain.NewCatalog(
			domain.Habit{ID: "b", Name: " Second "},
			domain.Habit{ID: "a", Name: "First", Icon: "code", Completed: true},
		)
		require.NoError(t, err)

		defaults := c.Defaults()
		require.Len(t, defaults, 2)
		assert.Equal(t, "b", defaults[0].ID)
		assert.Equal(t, "Second", defaults[0].Name)
		assert.Equal(t, domain.DefaultIcon, defaults[0].Icon)
		assert.False(t, defaults[1].Completed, "catalog entries never start completed")
	})

	t.Run("Error: Duplicate id", func(t *testing.T) {
		_, err := domain.NewCatalog(domain.Habit{ID: "a"}, domain.Habit{ID: "a"})
		assert.Equal(t, domain.ErrCatalogDuplicateID, err)
	})

	t.Run("Error: Empty id", func(t *testing.T) {
		_, err := domain.NewCatalog(domain.Habit{ID: "  "})
		assert.Equal(t, domain.ErrCatalogEmptyID, err)
	})

	t.Run("Error: No habits", func(t *testing.T) {
		_, err := domain.NewCatalog()
		assert.Equal(t, domain.ErrCatalogEmpty, err)
	})
}

func TestCatalog_DefaultsAreFreshCopies(t *testing.T) {
	c := domain.DefaultCatalog()

	first := c.Defaults()
	first[0].Completed = true
	first[0].Name = "mutated"

	second := c.Defaults()
	assert.False(t, second[0].Completed)
	assert.Equal(t, "Coding (DSA/Dev)", second[0].Name)
	assert.Equal(t, 6, c.Len())
	assert.True(t, c.Has("health"))
	assert.False(t, c.Has("gaming"))
}
