package commands

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvloznov/lda-connector/internal/jobs"
	"github.com/dvloznov/lda-connector/internal/jobs/objstore"
	"github.com/dvloznov/lda-connector/internal/storage"
)

func TestYears(t *testing.T) {
	assert.Equal(t, "-", years(nil))
	assert.Equal(t, "2024,2023", years([]int{2024, 2023}))
}

func TestStatusCommand(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()

	objects, err := storage.NewLocalStore(filepath.Join(root, "data"))
	require.NoError(t, err)
	require.NoError(t, objstore.NewStore(objects).Save(ctx, "filings", jobs.State{CompletedYears: []int{2024, 2023}}))

	cfgFile := filepath.Join(root, "config.yaml")
	cfgYAML := "storage:\n  root: " + filepath.Join(root, "data") + "\n" +
		"filings:\n  first_year: 2022\n  last_year: 2024\n" +
		"contributions:\n  first_year: 2024\n  last_year: 2024\n"
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfgYAML), 0o644))
	t.Setenv("LDA_STORAGE_ROOT", "")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"status", "--config", cfgFile})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
		configPath = ""
	})

	require.NoError(t, rootCmd.ExecuteContext(ctx))
	assert.Contains(t, out.String(), "filings")
	assert.Contains(t, out.String(), "2024,2023")
	assert.Contains(t, out.String(), "2022")
	assert.Contains(t, out.String(), "contributions")
}
