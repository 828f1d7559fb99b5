package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTruthy(t *testing.T) {
	tests := []struct {
		raw      string
		expected bool
	}{
		{"", false},
		{"null", false},
		{"false", false},
		{"true", true},
		{"0", false},
		{"0.0", false},
		{"1", true},
		{"-3.5", true},
		{`""`, false},
		{`"no"`, true},
		{"[]", false},
		{"[0]", true},
		{"{}", false},
		{`{"a":1}`, true},
		{"not json", false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.expected, Truthy(json.RawMessage(tt.raw)))
		})
	}
}

func TestParseID(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected int64
		wantErr  bool
	}{
		{name: "absent", raw: "", expected: 0},
		{name: "null", raw: "null", expected: 0},
		{name: "false", raw: "false", expected: 0},
		{name: "zero", raw: "0", expected: 0},
		{name: "empty string", raw: `""`, expected: 0},
		{name: "number", raw: "77", expected: 77},
		{name: "integral float", raw: "77.0", expected: 77},
		{name: "numeric string", raw: `" 42 "`, expected: 42},
		{name: "fractional", raw: "1.5", wantErr: true},
		{name: "word", raw: `"abc"`, wantErr: true},
		{name: "object", raw: `{"id":1}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := ParseID(json.RawMessage(tt.raw))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, id)
		})
	}
}

func TestUpstreamResponse_Fields(t *testing.T) {
	ok := &UpstreamResponse{StatusCode: 200, Body: json.RawMessage(`{"status":true,"id":901}`)}
	assert.True(t, ok.OK())
	assert.Equal(t, int64(901), ok.ID())
	assert.Empty(t, ok.ErrorText())

	failed := &UpstreamResponse{StatusCode: 200, Body: json.RawMessage(`{"status":false,"error":"no_route"}`)}
	assert.False(t, failed.OK())
	assert.Equal(t, int64(0), failed.ID())
	assert.Equal(t, "no_route", failed.ErrorText())

	structured := &UpstreamResponse{Body: json.RawMessage(`{"status":0,"error":{"code":12}}`)}
	assert.False(t, structured.OK())
	assert.Equal(t, `{"code":12}`, structured.ErrorText())

	notObject := &UpstreamResponse{Body: json.RawMessage(`[1,2]`)}
	assert.Nil(t, notObject.Field("status"))
	assert.False(t, notObject.OK())
}
