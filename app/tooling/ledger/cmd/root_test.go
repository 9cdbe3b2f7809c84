package cmd

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/ok":
			w.Write([]byte(`{"status":"transaction added to pending pool","pending":2}`))
		case "/invalid":
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"error":"data validation error","fields":{"to":"to is a required field"}}`))
		default:
			w.WriteHeader(http.StatusInternalServerError)
			w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ok")
	require.NoError(t, err)

	var status struct {
		Pending int `json:"pending"`
	}
	require.NoError(t, decodeResponse(resp, &status))
	assert.Equal(t, 2, status.Pending)

	resp, err = http.Get(srv.URL + "/invalid")
	require.NoError(t, err)
	err = decodeResponse(resp, &status)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "data validation error")

	resp, err = http.Get(srv.URL + "/broken")
	require.NoError(t, err)
	err = decodeResponse(resp, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestGenerateAndAccount(t *testing.T) {
	accountPath = t.TempDir()
	accountName = "alice"

	require.NoError(t, generateRun(generateCmd, nil))
	assert.FileExists(t, filepath.Join(accountPath, "alice.ecdsa"))

	accountID, err := loadAccountID()
	require.NoError(t, err)
	assert.Len(t, string(accountID), 42)

	// A second generate must not overwrite the key.
	assert.Error(t, generateRun(generateCmd, nil))
}
