package registry_test

import (
	"errors"
	"testing"

	"github.com/aretw0/arbor/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type widget struct {
	name string
}

func TestRegisterAndBuild(t *testing.T) {
	r := registry.New[*widget]("widget")

	require.NoError(t, r.Register("basic", func() (*widget, error) {
		return &widget{name: "basic"}, nil
	}))

	w, err := r.Build("basic")
	require.NoError(t, err)
	assert.Equal(t, "basic", w.name)
}

func TestBuildReturnsFreshInstances(t *testing.T) {
	r := registry.New[*widget]("widget")
	require.NoError(t, r.Register("basic", func() (*widget, error) {
		return &widget{}, nil
	}))

	first, err := r.Build("basic")
	require.NoError(t, err)
	second, err := r.Build("basic")
	require.NoError(t, err)

	assert.NotSame(t, first, second)
}

func TestBuildUnknownName(t *testing.T) {
	r := registry.New[*widget]("widget")
	require.NoError(t, r.Register("basic", func() (*widget, error) { return &widget{}, nil }))
	require.NoError(t, r.Register("fancy", func() (*widget, error) { return &widget{}, nil }))

	_, err := r.Build("ghost")

	var notFound *registry.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "widget", notFound.Kind)
	assert.Equal(t, "ghost", notFound.Name)
	assert.Equal(t, []string{"basic", "fancy"}, notFound.Known)
	assert.Contains(t, err.Error(), `"ghost"`)
}

func TestBuildOnEmptyRegistry(t *testing.T) {
	r := registry.New[*widget]("widget")

	_, err := r.Build("anything")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry is empty")
}

func TestRegisterValidation(t *testing.T) {
	r := registry.New[*widget]("widget")

	assert.Error(t, r.Register("", func() (*widget, error) { return nil, nil }))
	assert.Error(t, r.Register("basic", nil))
	assert.False(t, r.Has("basic"))
}

func TestRegisterOverwrites(t *testing.T) {
	r := registry.New[*widget]("widget")
	require.NoError(t, r.Register("basic", func() (*widget, error) {
		return &widget{name: "old"}, nil
	}))
	require.NoError(t, r.Register("basic", func() (*widget, error) {
		return &widget{name: "new"}, nil
	}))

	w, err := r.Build("basic")
	require.NoError(t, err)
	assert.Equal(t, "new", w.name)
}

func TestConstructorErrorPropagates(t *testing.T) {
	r := registry.New[*widget]("widget")
	boom := errors.New("boom")
	require.NoError(t, r.Register("broken", func() (*widget, error) { return nil, boom }))

	_, err := r.Build("broken")
	assert.ErrorIs(t, err, boom)
}

func TestNames(t *testing.T) {
	r := registry.New[*widget]("widget")
	require.NoError(t, r.Register("zeta", func() (*widget, error) { return &widget{}, nil }))
	require.NoError(t, r.Register("alpha", func() (*widget, error) { return &widget{}, nil }))

	assert.Equal(t, []string{"alpha", "zeta"}, r.Names())
	assert.True(t, r.Has("alpha"))
	assert.False(t, r.Has("omega"))
}
