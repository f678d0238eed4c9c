package worker

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ppiankov/moneyblueprint/internal/model"
	"github.com/ppiankov/moneyblueprint/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockBuilder struct {
	fail map[string]bool
}

func (m *mockBuilder) BuildFile(ctx context.Context, path string, opts pipeline.BuildOptions) (*pipeline.BuildResult, error) {
	time.Sleep(5 * time.Millisecond)
	if m.fail[path] {
		return nil, errors.New("build error")
	}
	id := opts.ReportID
	return &pipeline.BuildResult{
		Source:  path,
		Payload: &model.Payload{ReportID: &id, Fingerprint: "fp-" + path},
	}, nil
}

func writeWizard(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestBatchProcessor_PreservesInputOrder(t *testing.T) {
	paths := []string{"a.json", "b.json", "c.json", "d.json", "e.json"}
	proc := NewBatchProcessor(&mockBuilder{fail: map[string]bool{"c.json": true}}, 3, pipeline.BuildOptions{ReportID: "MB-1"}, true, nil)

	outcomes := proc.ProcessFiles(context.Background(), paths)
	require.Len(t, outcomes, len(paths))

	for i, o := range outcomes {
		assert.Equal(t, paths[i], o.Path)
		assert.Equal(t, i, o.Index())
		if o.Path == "c.json" {
			assert.Error(t, o.Err())
			continue
		}
		require.NoError(t, o.Err())
		assert.Equal(t, "MB-1", *o.Result.Payload.ReportID)
	}
}

func TestBatchProcessor_Empty(t *testing.T) {
	proc := NewBatchProcessor(&mockBuilder{}, 2, pipeline.BuildOptions{}, true, nil)
	assert.Empty(t, proc.ProcessFiles(context.Background(), nil))
}

func TestBatchProcessor_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	proc := NewBatchProcessor(&mockBuilder{}, 2, pipeline.BuildOptions{}, true, nil)
	outcomes := proc.ProcessFiles(ctx, []string{"a.json", "b.json"})
	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		assert.NotNil(t, o)
	}
}

func TestBatchProcessor_DuplicatesFollowInputOrder(t *testing.T) {
	dir := t.TempDir()
	wizard := `{"basics":{"netIncome":"1800","incomeFrequency":"monthly","region":"wales"}}`
	paths := []string{
		writeWizard(t, dir, "first.json", wizard),
		writeWizard(t, dir, "other.json", `{"basics":{"region":"london"}}`),
		writeWizard(t, dir, "second.yaml", "basics:\n  netIncome: 1800\n  incomeFrequency: monthly\n  region: wales\n"),
		writeWizard(t, dir, "third.json", wizard),
	}

	cfg := model.DefaultConfig()
	p := pipeline.NewPipeline(cfg, nil)
	outcomes := NewBatchProcessor(p, 4, pipeline.BuildOptions{}, true, nil).ProcessFiles(context.Background(), paths)

	for _, o := range outcomes {
		require.NoError(t, o.Err())
	}
	assert.False(t, outcomes[0].Result.Duplicate)
	assert.False(t, outcomes[1].Result.Duplicate)
	assert.True(t, outcomes[2].Result.Duplicate)
	assert.Equal(t, paths[0], outcomes[2].Result.DuplicateOf)
	assert.True(t, outcomes[3].Result.Duplicate)
	assert.Equal(t, paths[0], outcomes[3].Result.DuplicateOf)
}

func TestBatchProcessor_NewIDDefeatsDuplicates(t *testing.T) {
	dir := t.TempDir()
	a := writeWizard(t, dir, "a.json", `{}`)
	b := writeWizard(t, dir, "b.json", `{}`)

	p := pipeline.NewPipeline(model.DefaultConfig(), nil)
	outcomes := NewBatchProcessor(p, 2, pipeline.BuildOptions{NewID: true}, true, nil).ProcessFiles(context.Background(), []string{a, b})

	assert.False(t, outcomes[0].Result.Duplicate)
	assert.False(t, outcomes[1].Result.Duplicate)
	assert.NotEqual(t, *outcomes[0].Result.Payload.ReportID, *outcomes[1].Result.Payload.ReportID)
}

func TestBatchProcessor_DedupDisabled(t *testing.T) {
	dir := t.TempDir()
	a := writeWizard(t, dir, "a.json", `{}`)
	b := writeWizard(t, dir, "b.json", `{}`)

	cfg := model.DefaultConfig()
	cfg.Cache.Enabled = false
	p := pipeline.NewPipeline(cfg, nil)
	outcomes := NewBatchProcessor(p, 2, pipeline.BuildOptions{}, cfg.Cache.Enabled, nil).ProcessFiles(context.Background(), []string{a, b})

	require.Len(t, outcomes, 2)
	for _, o := range outcomes {
		require.NoError(t, o.Err())
		assert.False(t, o.Result.Duplicate, o.Path)
		assert.Empty(t, o.Result.DuplicateOf, o.Path)
	}
	assert.Equal(t, outcomes[0].Result.Payload.Fingerprint, outcomes[1].Result.Payload.Fingerprint)
}

func TestReadPathsFromFile(t *testing.T) {
	content := `
# wizard exports
one.json

two.yaml
one.json
  three.yml  
`
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	paths, err := ReadPathsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"one.json", "two.yaml", "three.yml"}, paths)
}

func TestReadPathsFromFile_Missing(t *testing.T) {
	_, err := ReadPathsFromFile(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "open file"))
}
