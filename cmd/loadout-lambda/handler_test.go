package main

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func TestHandler(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		base64     bool
		wantStatus int
		wantError  string
	}{
		{name: "empty body uses defaults", body: "", wantStatus: http.StatusOK},
		{name: "targets and slots", body: `{"targets":{"weapon":100,"health":60},"slots":{"large":2},"limit":5}`, wantStatus: http.StatusOK},
		{name: "base64 body", body: `{"targets":{"melee":80}}`, base64: true, wantStatus: http.StatusOK},
		{name: "not json", body: "weapon=100", wantStatus: http.StatusBadRequest, wantError: "JSON object"},
		{name: "array body", body: "[1,2]", wantStatus: http.StatusBadRequest, wantError: "JSON object"},
		{name: "bad fixed spec", body: `{"fixed":["titan"]}`, wantStatus: http.StatusBadRequest, wantError: "unknown archetype"},
		{name: "bad custom tier", body: `{"customTier":"thirty"}`, wantStatus: http.StatusBadRequest, wantError: "custom-tier"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			event := events.LambdaFunctionURLRequest{Body: tt.body}
			if tt.base64 {
				event.Body = base64.StdEncoding.EncodeToString([]byte(tt.body))
				event.IsBase64Encoded = true
			}

			resp, err := handler(context.Background(), event)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode, resp.Body)
			assert.Equal(t, "application/json", resp.Headers["Content-Type"])
			if tt.wantError != "" {
				assert.Contains(t, gjson.Get(resp.Body, "error").String(), tt.wantError)
				return
			}
			assert.NotEmpty(t, gjson.Get(resp.Body, "results").Array())
		})
	}
}

func TestHandler_AppliesOverrides(t *testing.T) {
	body := `{"targets":{"weapon":100,"luck":9},"tier":3,"fixed":["gunner:health"],"limit":2,"factorize":true}`
	resp, err := handler(context.Background(), events.LambdaFunctionURLRequest{Body: body})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode, resp.Body)

	assert.Equal(t, int64(100), gjson.Get(resp.Body, "targets.weapon").Int())
	results := gjson.Get(resp.Body, "results").Array()
	require.NotEmpty(t, results)
	assert.LessOrEqual(t, len(results), 2)
	assert.Equal(t, int64(3), results[0].Get("combination.0.tier").Int())
	assert.Equal(t, "Gunner", results[0].Get("combination.4.pattern.name").String())
}
