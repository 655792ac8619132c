package detect

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smartbrain/smartbrain-api/pkg/config"
)

func TestClarifaiClient_DetectFaces(t *testing.T) {
	ctx := context.Background()

	t.Run("SendsExpectedRequest", func(t *testing.T) {
		var gotPath, gotAuth string
		var gotBody clarifaiRequest

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotAuth = r.Header.Get("Authorization")
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"outputs":[]}`))
		}))
		defer server.Close()

		client := NewClarifaiClient(config.ClarifaiConfig{
			PAT:            "test-pat",
			UserID:         "test-user",
			AppID:          "test-app",
			ModelID:        "face-detection",
			ModelVersionID: "v1",
			BaseURL:        server.URL,
		}, server.Client())

		resp, err := client.DetectFaces(ctx, "https://example.com/face.jpg")
		require.NoError(t, err)
		assert.JSONEq(t, `{"outputs":[]}`, string(resp))

		assert.Equal(t, "/v2/models/face-detection/versions/v1/outputs", gotPath)
		assert.Equal(t, "Key test-pat", gotAuth)
		assert.Equal(t, "test-user", gotBody.UserAppID.UserID)
		assert.Equal(t, "test-app", gotBody.UserAppID.AppID)
		require.Len(t, gotBody.Inputs, 1)
		assert.Equal(t, "https://example.com/face.jpg", gotBody.Inputs[0].Data.Image.URL)
	})

	t.Run("NonOKStatus", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := NewClarifaiClient(config.ClarifaiConfig{BaseURL: server.URL}, server.Client())

		_, err := client.DetectFaces(ctx, "https://example.com/face.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "status 401")
	})
}
