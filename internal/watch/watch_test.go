package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitCall(t *testing.T, calls <-chan struct{}, within time.Duration) bool {
	t.Helper()
	select {
	case <-calls:
		return true
	case <-time.After(within):
		return false
	}
}

func TestWatchRerunsOnChange(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(scene, []byte("a"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 16)
	errc := make(chan error, 1)
	go func() {
		errc <- Watch(ctx, 20*time.Millisecond, nil, func() []string {
			calls <- struct{}{}
			return []string{scene}
		})
	}()

	require.True(t, waitCall(t, calls, 5*time.Second), "initial run")

	require.NoError(t, os.WriteFile(other, []byte("x"), 0644))
	assert.False(t, waitCall(t, calls, 300*time.Millisecond), "unrelated file triggered a run")

	require.NoError(t, os.WriteFile(scene, []byte("b"), 0644))
	assert.True(t, waitCall(t, calls, 5*time.Second), "change not seen")

	cancel()
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchDirectoryTree(t *testing.T) {
	dir := t.TempDir()
	models := filepath.Join(dir, "models")
	require.NoError(t, os.Mkdir(models, 0755))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := make(chan struct{}, 16)
	go func() {
		_ = Watch(ctx, 20*time.Millisecond, nil, func() []string {
			calls <- struct{}{}
			return []string{models}
		})
	}()

	require.True(t, waitCall(t, calls, 5*time.Second))
	require.NoError(t, os.WriteFile(filepath.Join(models, "ship.obj"), []byte("v 0 0 0\n"), 0644))
	assert.True(t, waitCall(t, calls, 5*time.Second), "new model file not seen")
}

func TestStateMatches(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "a.grs")
	require.NoError(t, os.WriteFile(file, nil, 0644))

	s := &state{dirs: map[string]bool{}}
	s.files = map[string]bool{file: true}
	s.trees = map[string]bool{filepath.Join(dir, "tree"): true}

	assert.True(t, s.matches(file))
	assert.False(t, s.matches(filepath.Join(dir, "b.grs")))
	assert.True(t, s.matches(filepath.Join(dir, "tree", "b.grs")))
	assert.False(t, s.matches(filepath.Join(dir, "tree", "sub", "b.grs")))
}
