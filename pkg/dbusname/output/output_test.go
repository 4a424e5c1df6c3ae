package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "", want: FormatTable},
		{in: "table", want: FormatTable},
		{in: "JSON", want: FormatJSON},
		{in: " yaml ", want: FormatYAML},
		{in: "template", want: FormatTemplate},
		{in: "wide", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWriteObject_JSON(t *testing.T) {
	buf := &bytes.Buffer{}
	results := []NameResult{{Name: "org.example.App", Kind: "bus", Valid: true}}
	require.NoError(t, WriteObject(buf, FormatJSON, results))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "org.example.App", decoded[0]["name"])
	assert.Equal(t, true, decoded[0]["valid"])
	assert.NotContains(t, decoded[0], "reason")
}

func TestWriteObject_YAML(t *testing.T) {
	buf := &bytes.Buffer{}
	offset := 3
	results := []NameResult{{Name: "a-b", Kind: "member", Reason: "invalid-character", Offset: &offset, Message: "x"}}
	require.NoError(t, WriteObject(buf, FormatYAML, results))

	var decoded []NameResult
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "invalid-character", decoded[0].Reason)
	require.NotNil(t, decoded[0].Offset)
	assert.Equal(t, 3, *decoded[0].Offset)
}

func TestWriteObject_Unsupported(t *testing.T) {
	buf := &bytes.Buffer{}
	assert.Error(t, WriteObject(buf, FormatTable, nil))
	assert.Error(t, WriteObject(buf, FormatTemplate, nil))
	assert.Error(t, WriteObject(buf, Format("xml"), nil))
	assert.Empty(t, buf.String())
}

func TestWriteTemplate(t *testing.T) {
	results := []NameResult{
		{Name: "org.example.App", Kind: "bus", Valid: true},
		{Name: "org..x", Kind: "bus", Reason: "double-separator"},
	}

	buf := &bytes.Buffer{}
	err := WriteTemplate(buf, `{{range .}}{{if not .Valid}}{{.Name | upper}} {{.Reason | default "none"}}{{"\n"}}{{end}}{{end}}`, results)
	require.NoError(t, err)
	assert.Equal(t, "ORG..X double-separator\n", buf.String())
}

func TestWriteTemplate_Errors(t *testing.T) {
	buf := &bytes.Buffer{}

	err := WriteTemplate(buf, "", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--template")

	err = WriteTemplate(buf, "{{range .}", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse template")

	err = WriteTemplate(buf, "{{.Missing}}", NameResult{})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "failed to render template"))
}
