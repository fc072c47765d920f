package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModule_Select(t *testing.T) {
	t.Run("prefers export named after the component", func(t *testing.T) {
		m := NewModule(
			Export{Name: "default", Impl: "default-impl"},
			Export{Name: "card", Impl: "card-impl"},
		)
		impl, err := m.Select("card")
		require.NoError(t, err)
		assert.Equal(t, "card-impl", impl)
	})

	t.Run("falls back to default export", func(t *testing.T) {
		m := NewModule(
			Export{Name: "other", Impl: "other-impl"},
			Export{Name: "default", Impl: "default-impl"},
		)
		impl, err := m.Select("card")
		require.NoError(t, err)
		assert.Equal(t, "default-impl", impl)
	})

	t.Run("falls back to first declared export", func(t *testing.T) {
		m := NewModule(
			Export{Name: "alpha", Impl: "alpha-impl"},
			Export{Name: "beta", Impl: "beta-impl"},
		)
		impl, err := m.Select("card")
		require.NoError(t, err)
		assert.Equal(t, "alpha-impl", impl)
	})

	t.Run("empty module is an error", func(t *testing.T) {
		m := NewModule()
		_, err := m.Select("card")
		assert.ErrorIs(t, err, ErrNoExport)
	})
}
