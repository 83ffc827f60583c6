package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOutputFormat_Set(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    OutputFormat
		wantErr bool
	}{
		{name: "text", value: "text", want: OutputText},
		{name: "json", value: "json", want: OutputJSON},
		{name: "yaml", value: "yaml", want: OutputYAML},
		{name: "invalid", value: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var format OutputFormat
			err := format.Set(tt.value)
			if tt.wantErr {
				assert.ErrorContains(t, err, `invalid value "xml"`)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, format)
		})
	}
}

func TestOutputFormat_StringAndType(t *testing.T) {
	format := OutputJSON
	assert.Equal(t, "json", format.String())
	assert.Equal(t, "OutputFormat", format.Type())

	var nilFormat *OutputFormat
	assert.Equal(t, "", nilFormat.String())
}

func TestPrintRecord(t *testing.T) {
	record := struct {
		Word     string `json:"word" yaml:"word"`
		Gematria int    `json:"gematria" yaml:"gematria"`
	}{Word: "luz", Gematria: 1130}

	tests := []struct {
		name   string
		format OutputFormat
		want   string
	}{
		{
			name:   "json",
			format: OutputJSON,
			want:   "{\n  \"word\": \"luz\",\n  \"gematria\": 1130\n}\n",
		},
		{
			name:   "yaml",
			format: OutputYAML,
			want:   "word: luz\ngematria: 1130\n",
		},
		{
			name:   "text",
			format: OutputText,
			want:   "luz = 1130\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := printRecord(&buf, tt.format, record, func() error {
				_, err := buf.WriteString("luz = 1130\n")
				return err
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, buf.String())
		})
	}
}
