package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildTracker_NewerBuildCancelsOlder(t *testing.T) {
	tr := newBuildTracker()

	ctx1, gen1 := tr.start(context.Background(), "series:a")
	ctx2, gen2 := tr.start(context.Background(), "series:a")

	require.Error(t, ctx1.Err())
	assert.NoError(t, ctx2.Err())
	assert.False(t, tr.isCurrent("series:a", gen1))
	assert.True(t, tr.isCurrent("series:a", gen2))
	assert.Equal(t, 1, tr.active())
}

func TestBuildTracker_KeysAreIndependent(t *testing.T) {
	tr := newBuildTracker()

	ctxA, genA := tr.start(context.Background(), "series:a")
	_, genB := tr.start(context.Background(), "series:b")
	_, genGrid := tr.start(context.Background(), "grid:a")

	assert.NoError(t, ctxA.Err())
	assert.True(t, tr.isCurrent("series:a", genA))
	assert.True(t, tr.isCurrent("series:b", genB))
	assert.True(t, tr.isCurrent("grid:a", genGrid))
	assert.Equal(t, 3, tr.active())
}

func TestBuildTracker_FinishOnlyReleasesOwnGeneration(t *testing.T) {
	tr := newBuildTracker()

	_, gen1 := tr.start(context.Background(), "grid:a")
	ctx2, gen2 := tr.start(context.Background(), "grid:a")

	tr.finish("grid:a", gen1)
	assert.True(t, tr.isCurrent("grid:a", gen2))
	assert.NoError(t, ctx2.Err())

	tr.finish("grid:a", gen2)
	assert.False(t, tr.isCurrent("grid:a", gen2))
	assert.Error(t, ctx2.Err())
	assert.Zero(t, tr.active())
}
