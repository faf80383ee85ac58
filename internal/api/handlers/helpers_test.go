package handlers_test

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/utils/response"
	"github.com/stretchr/testify/require"
)

// decodeResponse unpacks the envelope and, when dest is set, its data field.
func decodeResponse(t *testing.T, w *httptest.ResponseRecorder, dest any) response.APIResponse {
	t.Helper()

	var body response.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	if dest != nil && body.Data != nil {
		raw, err := json.Marshal(body.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, dest))
	}

	return body
}
