package sync

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta"
	"github.com/agentstation/zonemeta/cmd/application"
	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/catalog/memory"
	"github.com/agentstation/zonemeta/pkg/constants"
	"github.com/agentstation/zonemeta/pkg/errors"
	"github.com/agentstation/zonemeta/pkg/forms"
)

const domainID = "dzd_sync"

func newService() *memory.Service {
	svc := memory.New()
	svc.PutFormType(domainID, constants.TableFormType, "8")
	svc.PutFormType(domainID, constants.MetadataFormType, "2")
	for _, id := range []string{"orders", "customers"} {
		svc.PutAsset(domainID, catalog.Asset{ID: id, Forms: []catalog.Form{
			{Name: constants.TableFormName, Content: `{"columns":[{"columnName":"cust_id","dataType":"string"}]}`},
			{Name: constants.MetadataFormName, Content: `{"columnsBusinessMetadata":[]}`},
		}})
	}
	return svc
}

func newApp(svc *memory.Service) *application.Mock {
	return &application.Mock{
		ManagerFunc: func(ctx context.Context) (*zonemeta.Manager, error) {
			return zonemeta.New(ctx, svc, zonemeta.WithDomain(domainID))
		},
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestSyncSingleAssetPublishes(t *testing.T) {
	svc := newService()
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), newApp(svc), &buf, &Flags{}, []string{"orders"}))

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, "orders", result["asset_id"])
	assert.Equal(t, true, result["published"])

	revs := svc.Revisions()
	require.Len(t, revs, 1)
	metadata, err := forms.DecodeMetadataDocument(revs[0].Forms[1].Content)
	require.NoError(t, err)
	require.Len(t, metadata.Entries, 1)
	assert.Equal(t, "cust_id", metadata.Entries[0].Name)
	assert.Equal(t, "", metadata.Entries[0].Description)
}

func TestSyncDryRunWithEdits(t *testing.T) {
	svc := newService()
	flags := &Flags{
		DryRun: true,
		Edits:  writeFile(t, "edits.yaml", "columns:\n  cust_id:\n    businessName: Customer ID\n"),
	}

	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), newApp(svc), &buf, flags, []string{"orders"}))
	assert.Empty(t, svc.Revisions())

	var result map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &result))
	assert.Equal(t, true, result["dry_run"])
	assert.Equal(t, float64(1), result["edited"])
}

func TestSyncUnknownEditColumn(t *testing.T) {
	svc := newService()
	flags := &Flags{Edits: writeFile(t, "edits.json", `{"columns":{"ghost":{"description":"x"}}}`)}

	err := Run(context.Background(), newApp(svc), &bytes.Buffer{}, flags, []string{"orders"})
	assert.True(t, errors.IsValidationError(err))
	assert.Empty(t, svc.Revisions())
}

func TestSyncMultipleAssets(t *testing.T) {
	svc := newService()
	var buf bytes.Buffer
	err := Run(context.Background(), newApp(svc), &buf, &Flags{}, []string{"orders", "missing", "customers"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 assets failed")
	assert.Len(t, svc.Revisions(), 2)

	var batch map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &batch))
	assert.Len(t, batch["results"], 2)
}

func TestFlagsOptions(t *testing.T) {
	t.Run("context file", func(t *testing.T) {
		flags := &Flags{ContextFile: writeFile(t, "context.txt", "  Orders table\n")}
		opts, err := flags.Options()
		require.NoError(t, err)
		assert.Len(t, opts, 4)
	})

	t.Run("missing context file", func(t *testing.T) {
		flags := &Flags{ContextFile: filepath.Join(t.TempDir(), "absent.txt")}
		_, err := flags.Options()
		assert.Error(t, err)
	})

	t.Run("edits add an option", func(t *testing.T) {
		flags := &Flags{Edits: writeFile(t, "edits.yaml", "columns: {}\n")}
		opts, err := flags.Options()
		require.NoError(t, err)
		assert.Len(t, opts, 5)
	})
}

func TestNewCommandFlags(t *testing.T) {
	cmd := NewCommand(newApp(newService()))
	for _, name := range []string{"dry-run", "no-generate", "context", "context-file", "edits", "timeout"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}

	cmd.SetArgs([]string{"orders", "--context", "a", "--context-file", "b"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
