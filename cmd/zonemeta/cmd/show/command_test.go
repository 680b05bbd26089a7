package show

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta"
	"github.com/agentstation/zonemeta/cmd/application"
	"github.com/agentstation/zonemeta/pkg/catalog"
	"github.com/agentstation/zonemeta/pkg/catalog/memory"
	"github.com/agentstation/zonemeta/pkg/constants"
	"github.com/agentstation/zonemeta/pkg/errors"
)

const domainID = "dzd_show"

func newApp(format string) *application.Mock {
	svc := memory.New()
	svc.PutAsset(domainID, catalog.Asset{ID: "orders", Forms: []catalog.Form{
		{Name: constants.TableFormName, Content: `{"columns":[{"columnName":"cust_id","dataType":"string"},{"columnName":"amt","dataType":"decimal"}]}`},
		{Name: constants.MetadataFormName, Content: `{"columnsBusinessMetadata":[{"columnIdentifier":"cust_id","name":"Customer ID","description":"Unique customer key"}]}`},
	}})
	return &application.Mock{
		ManagerFunc: func(ctx context.Context) (*zonemeta.Manager, error) {
			return zonemeta.New(ctx, svc, zonemeta.WithDomain(domainID))
		},
		OutputFormatFunc: func() string { return format },
	}
}

func TestShowJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), newApp("json"), &buf, "orders"))

	var columns []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &columns))
	require.Len(t, columns, 2)
	assert.Equal(t, "cust_id", columns[0]["columnName"])
	assert.Equal(t, "Customer ID", columns[0]["businessName"])
	assert.Equal(t, "amt", columns[1]["columnName"])
	assert.NotContains(t, columns[1], "businessName")
}

func TestShowTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), newApp("table"), &buf, "orders"))
	assert.Contains(t, buf.String(), "Customer ID")
	assert.Contains(t, buf.String(), "decimal")
}

func TestShowMissingAsset(t *testing.T) {
	err := Run(context.Background(), newApp("json"), &bytes.Buffer{}, "nope")
	assert.True(t, errors.IsNotFound(err))
}

func TestShowInvalidFormat(t *testing.T) {
	err := Run(context.Background(), newApp("csv"), &bytes.Buffer{}, "orders")
	assert.Error(t, err)
}

func TestNewCommand(t *testing.T) {
	cmd := NewCommand(newApp("json"))
	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"orders"})
	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, buf.String(), "Unique customer key")

	cmd = NewCommand(newApp("json"))
	cmd.SetArgs([]string{})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
