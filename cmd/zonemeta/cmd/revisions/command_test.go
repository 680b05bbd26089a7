package revisions

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta"
	"github.com/agentstation/zonemeta/cmd/application"
	"github.com/agentstation/zonemeta/pkg/catalog/memory"
	"github.com/agentstation/zonemeta/pkg/constants"
)

const domainID = "dzd_revisions"

func newApp(format string) *application.Mock {
	svc := memory.New()
	svc.PutFormType(domainID, constants.TableFormType, "8")
	return &application.Mock{
		ManagerFunc: func(ctx context.Context) (*zonemeta.Manager, error) {
			return zonemeta.New(ctx, svc, zonemeta.WithDomain(domainID))
		},
		OutputFormatFunc: func() string { return format },
	}
}

func TestRevisionsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), newApp("json"), &buf))

	var got map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, map[string]string{constants.TableFormName: "8"}, got)
}

func TestRevisionsTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(context.Background(), newApp("table"), &buf))

	out := buf.String()
	assert.Contains(t, out, constants.TableFormName)
	assert.Contains(t, out, constants.MetadataFormName)
	assert.Contains(t, out, "8")
}

func TestRevisionsRejectsArgs(t *testing.T) {
	cmd := NewCommand(newApp("json"))
	cmd.SetArgs([]string{"extra"})
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	assert.Error(t, cmd.Execute())
}
