package tests

import (
	"context"
	"testing"

	"github.com/aretw0/arbor/internal/testutils"
	"github.com/aretw0/arbor/pkg/orm"
	"github.com/aretw0/arbor/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// SessionStoreContractTest is a reusable suite verifying that a store
// complies with ports.SessionStore. Adapter-specific behavior (request
// seeding, cleanup) is tested in the adapter's own package.
func SessionStoreContractTest(t *testing.T, store ports.SessionStore) {
	t.Helper()

	factory, err := orm.NewFactory(testutils.SQLiteConfig(t, "contract"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = factory.Close() })

	open := func(t *testing.T) *orm.Session {
		t.Helper()
		s, err := factory.OpenSession(context.Background())
		require.NoError(t, err)
		t.Cleanup(func() { _ = s.Close(context.Background()) })
		return s
	}

	t.Run("OutsideScope", func(t *testing.T) {
		ctx := context.Background()

		_, err := store.Current(ctx, "default")
		assert.ErrorIs(t, err, ports.ErrNoScope)

		assert.ErrorIs(t, store.Bind(ctx, "default", open(t)), ports.ErrNoScope)

		_, err = store.Unbind(ctx, "default")
		assert.ErrorIs(t, err, ports.ErrNoScope)

		_, err = store.Drain(ctx)
		assert.ErrorIs(t, err, ports.ErrNoScope)
	})

	t.Run("BindAndCurrent", func(t *testing.T) {
		ctx := store.Scope(context.Background())
		sess := open(t)

		_, err := store.Current(ctx, "default")
		assert.ErrorIs(t, err, ports.ErrNotBound)

		require.NoError(t, store.Bind(ctx, "default", sess))

		got, err := store.Current(ctx, "default")
		require.NoError(t, err)
		assert.Same(t, sess, got)
	})

	t.Run("BindReplaces", func(t *testing.T) {
		ctx := store.Scope(context.Background())
		first, second := open(t), open(t)

		require.NoError(t, store.Bind(ctx, "default", first))
		require.NoError(t, store.Bind(ctx, "default", second))

		got, err := store.Current(ctx, "default")
		require.NoError(t, err)
		assert.Same(t, second, got)
	})

	t.Run("Unbind", func(t *testing.T) {
		ctx := store.Scope(context.Background())
		sess := open(t)

		require.NoError(t, store.Bind(ctx, "default", sess))

		got, err := store.Unbind(ctx, "default")
		require.NoError(t, err)
		assert.Same(t, sess, got)

		_, err = store.Current(ctx, "default")
		assert.ErrorIs(t, err, ports.ErrNotBound)

		_, err = store.Unbind(ctx, "default")
		assert.ErrorIs(t, err, ports.ErrNotBound)
	})

	t.Run("AliasesAreIndependent", func(t *testing.T) {
		ctx := store.Scope(context.Background())
		a, b := open(t), open(t)

		require.NoError(t, store.Bind(ctx, "default", a))
		require.NoError(t, store.Bind(ctx, "billing", b))

		gotA, err := store.Current(ctx, "default")
		require.NoError(t, err)
		gotB, err := store.Current(ctx, "billing")
		require.NoError(t, err)

		assert.Same(t, a, gotA)
		assert.Same(t, b, gotB)
	})

	t.Run("Drain", func(t *testing.T) {
		ctx := store.Scope(context.Background())
		a, b := open(t), open(t)

		require.NoError(t, store.Bind(ctx, "default", a))
		require.NoError(t, store.Bind(ctx, "billing", b))

		drained, err := store.Drain(ctx)
		require.NoError(t, err)
		assert.Len(t, drained, 2)

		_, err = store.Current(ctx, "default")
		assert.ErrorIs(t, err, ports.ErrNotBound)
	})

	t.Run("NestedScopesShadow", func(t *testing.T) {
		outer := store.Scope(context.Background())
		sess := open(t)
		require.NoError(t, store.Bind(outer, "default", sess))

		inner := store.Scope(outer)
		_, err := store.Current(inner, "default")
		assert.ErrorIs(t, err, ports.ErrNotBound)

		// The outer binding survives the inner scope.
		got, err := store.Current(outer, "default")
		require.NoError(t, err)
		assert.Same(t, sess, got)
	})
}
