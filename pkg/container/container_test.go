package container_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/aretw0/arbor/pkg/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndResolveInstance(t *testing.T) {
	c := container.New()

	err := c.Register(container.Definition{Key: "greeting", Instance: "hello"})
	require.NoError(t, err)

	v, err := c.Resolve("greeting")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)
	assert.True(t, c.Has("greeting"))
}

func TestResolveUnknownKey(t *testing.T) {
	c := container.New()

	_, err := c.Resolve("nope")
	require.Error(t, err)

	var notReg *container.NotRegisteredError
	require.ErrorAs(t, err, &notReg)
	assert.Equal(t, "nope", notReg.Key)
}

func TestDuplicateKeyRejected(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.Definition{Key: "svc", Instance: 1}))
	err := c.Register(container.Definition{Key: "svc", Instance: 2})

	var dup *container.DuplicateKeyError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "svc", dup.Key)
}

func TestInvalidDefinitions(t *testing.T) {
	c := container.New()

	cases := []struct {
		name string
		def  container.Definition
	}{
		{"empty key", container.Definition{Instance: 1}},
		{"neither instance nor build", container.Definition{Key: "x"}},
		{"both instance and build", container.Definition{
			Key:      "x",
			Instance: 1,
			Build:    func(container.BuildContext) (any, error) { return 2, nil },
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.Register(tc.def)
			var invalid *container.InvalidDefinitionError
			assert.ErrorAs(t, err, &invalid)
		})
	}
}

func TestSingletonBuiltOnce(t *testing.T) {
	c := container.New()
	var builds atomic.Int32

	err := c.Register(container.Definition{
		Key: "counter",
		Build: func(container.BuildContext) (any, error) {
			builds.Add(1)
			return builds.Load(), nil
		},
	})
	require.NoError(t, err)

	first, err := c.Resolve("counter")
	require.NoError(t, err)
	second, err := c.Resolve("counter")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), builds.Load())
}

func TestTransientBuiltEveryTime(t *testing.T) {
	c := container.New()
	var builds atomic.Int32

	err := c.Register(container.Definition{
		Key:       "fresh",
		Lifecycle: container.Transient,
		Build: func(container.BuildContext) (any, error) {
			return builds.Add(1), nil
		},
	})
	require.NoError(t, err)

	v1, _ := c.Resolve("fresh")
	v2, _ := c.Resolve("fresh")
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, int32(2), builds.Load())
}

func TestInstanceIgnoresLifecycle(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.Definition{
		Key:       "pinned",
		Instance:  42,
		Lifecycle: container.Transient,
	}))

	v, err := c.Resolve("pinned")
	require.NoError(t, err)
	assert.Equal(t, 42, v)

	again, err := c.Resolve("pinned")
	require.NoError(t, err)
	assert.Equal(t, v, again)
}

func TestPropsReachBuildFunc(t *testing.T) {
	c := container.New()

	err := c.Register(container.Definition{
		Key:   "configured",
		Props: map[string]any{"size": 42},
		Build: func(bc container.BuildContext) (any, error) {
			return bc.Props["size"], nil
		},
	})
	require.NoError(t, err)

	v, err := c.Resolve("configured")
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}

func TestBuildErrorWrapped(t *testing.T) {
	c := container.New()
	boom := errors.New("boom")

	require.NoError(t, c.Register(container.Definition{
		Key:   "broken",
		Build: func(container.BuildContext) (any, error) { return nil, boom },
	}))

	_, err := c.Resolve("broken")
	require.Error(t, err)

	var buildErr *container.BuildError
	require.ErrorAs(t, err, &buildErr)
	assert.ErrorIs(t, err, boom)
}

func TestCircularDependencyDetected(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.Definition{
		Key: "a",
		Build: func(bc container.BuildContext) (any, error) {
			return bc.Resolve("b")
		},
	}))
	require.NoError(t, c.Register(container.Definition{
		Key: "b",
		Build: func(bc container.BuildContext) (any, error) {
			return bc.Resolve("a")
		},
	}))

	_, err := c.Resolve("a")
	require.Error(t, err)

	var circular *container.CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, "a", circular.Key)
	assert.Equal(t, []string{"a", "b", "a"}, circular.Chain)
}

func TestCircularChainFollowsResolutionOrder(t *testing.T) {
	c := container.New()

	require.NoError(t, c.Register(container.Definition{
		Key: "zeta",
		Build: func(bc container.BuildContext) (any, error) {
			return bc.Resolve("alpha")
		},
	}))
	require.NoError(t, c.Register(container.Definition{
		Key: "alpha",
		Build: func(bc container.BuildContext) (any, error) {
			return bc.Resolve("zeta")
		},
	}))

	_, err := c.Resolve("zeta")
	require.Error(t, err)

	var circular *container.CircularDependencyError
	require.ErrorAs(t, err, &circular)
	assert.Equal(t, []string{"zeta", "alpha", "zeta"}, circular.Chain)
	assert.Contains(t, circular.Error(), "zeta -> alpha -> zeta")
}

func TestKeysSorted(t *testing.T) {
	c := container.New()
	for _, k := range []string{"zeta", "alpha", "mid"} {
		require.NoError(t, c.Register(container.Definition{Key: k, Instance: k}))
	}

	assert.Equal(t, []string{"alpha", "mid", "zeta"}, c.Keys())
}

func TestAs(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Register(container.Definition{Key: "text", Instance: "value"}))

	s, err := container.As[string](c, "text")
	require.NoError(t, err)
	assert.Equal(t, "value", s)

	_, err = container.As[int](c, "text")
	var mismatch *container.TypeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "int", mismatch.Expected)
	assert.Equal(t, "string", mismatch.Got)
}

func TestConcurrentResolveBuildsOnce(t *testing.T) {
	c := container.New()
	var builds atomic.Int32

	require.NoError(t, c.Register(container.Definition{
		Key: "shared",
		Build: func(container.BuildContext) (any, error) {
			builds.Add(1)
			return struct{}{}, nil
		},
	}))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Resolve("shared")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), builds.Load())
}

func TestMustResolvePanics(t *testing.T) {
	c := container.New()
	assert.Panics(t, func() { c.MustResolve("ghost") })
}

func TestDefinitionLookup(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Register(container.Definition{
		Key:      "svc",
		Instance: 7,
		Props:    map[string]any{"note": "kept"},
	}))

	def, ok := c.Definition("svc")
	require.True(t, ok)
	assert.Equal(t, "kept", def.Props["note"])

	_, ok = c.Definition("absent")
	assert.False(t, ok)
}
