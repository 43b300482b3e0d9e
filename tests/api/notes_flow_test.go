package api

// Notes over real storage: create, complete, overdue filtering, ordering by
// deadline from the store.

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tandemledger/tandem/tests/common"
)

func postNote(t *testing.T, env *common.Env, body map[string]interface{}) map[string]interface{} {
	t.Helper()
	resp, err := env.HTTPRequest(http.MethodPost, "/api/notes", body, nil)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	require.Equal(t, http.StatusCreated, resp.StatusCode, "body: %s", raw)

	var created map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &created))
	return created
}

func TestNotesFlow(t *testing.T) {
	env := common.NewEnv(t)

	past := time.Now().Add(-48 * time.Hour).UTC().Format(time.RFC3339)
	future := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	overdue := postNote(t, env, map[string]interface{}{
		"title": "Ship the amp", "owner": "alex", "deadline": past, "priority": "high",
	})
	postNote(t, env, map[string]interface{}{
		"title": "Quarterly taxes", "owner": "sam", "deadline": future,
	})

	// Deadline ascending from the store.
	resp, err := env.HTTPRequest(http.MethodGet, "/api/notes", nil, nil)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var all []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&all))
	require.Len(t, all, 2)
	assert.Equal(t, "Ship the amp", all[0]["title"])

	// Only the past-deadline note is overdue.
	resp2, err := env.HTTPRequest(http.MethodGet, "/api/notes?overdue=true", nil, nil)
	require.NoError(t, err)
	defer resp2.Body.Close()

	var late []map[string]interface{}
	require.NoError(t, json.NewDecoder(resp2.Body).Decode(&late))
	require.Len(t, late, 1)
	assert.Equal(t, overdue["id"], late[0]["id"])

	// Completing it clears the overdue list.
	id, _ := overdue["id"].(string)
	resp3, err := env.HTTPRequest(http.MethodPost, "/api/notes/"+id+"/complete", nil, nil)
	require.NoError(t, err)
	resp3.Body.Close()
	require.Equal(t, http.StatusOK, resp3.StatusCode)

	resp4, err := env.HTTPRequest(http.MethodGet, "/api/notes?overdue=true", nil, nil)
	require.NoError(t, err)
	defer resp4.Body.Close()

	late = nil
	require.NoError(t, json.NewDecoder(resp4.Body).Decode(&late))
	assert.Empty(t, late)
}
