package output

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/zonemeta/internal/cmd/table"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", "", false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"wide", FormatWide, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectFormatExplicit(t *testing.T) {
	assert.Equal(t, FormatYAML, DetectFormat("YAML"))
}

func TestTableFormatter(t *testing.T) {
	var buf bytes.Buffer
	data := table.Data{
		Headers: []string{"Column", "Type"},
		Rows:    [][]string{{"order_id", "bigint"}},
	}
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, data))

	out := buf.String()
	assert.Contains(t, out, "order_id")
	assert.Contains(t, out, "bigint")
}

func TestTableFormatterFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewFormatter(FormatTable).Format(&buf, map[string]string{"a": "b"}))
	assert.JSONEq(t, `{"a":"b"}`, buf.String())
}

func TestWrite(t *testing.T) {
	value := map[string]int{"columns": 2}
	rows := func(wide bool) table.Data {
		if wide {
			return table.Data{Headers: []string{"Wide"}, Rows: [][]string{{"w"}}}
		}
		return table.Data{Headers: []string{"Narrow"}, Rows: [][]string{{"n"}}}
	}

	t.Run("json encodes the value", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatJSON, value, rows))
		assert.JSONEq(t, `{"columns":2}`, buf.String())
	})

	t.Run("yaml encodes the value", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatYAML, value, rows))
		assert.Contains(t, buf.String(), "columns: 2")
	})

	t.Run("wide renders wide rows", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatWide, value, rows))
		assert.Contains(t, buf.String(), "w")
		assert.NotContains(t, buf.String(), "NARROW")
	})

	t.Run("table without rows falls back to json", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, FormatTable, value, nil))
		assert.JSONEq(t, `{"columns":2}`, buf.String())
	})
}

func TestResolve(t *testing.T) {
	format, err := Resolve("wide")
	require.NoError(t, err)
	assert.Equal(t, FormatWide, format)

	_, err = Resolve("csv")
	assert.Error(t, err)
}
