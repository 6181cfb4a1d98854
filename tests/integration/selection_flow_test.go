package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectionState(t *testing.T, client *http.Client, authToken, session, scope string) []string {
	t.Helper()
	req, _ := http.NewRequest("GET", fmt.Sprintf("%s/v1/selection/%s", baseURL, scope), nil)
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("X-Session-ID", session)

	resp, err := client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Selected []string `json:"selected"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body.Selected
}

func toggleSelection(t *testing.T, client *http.Client, authToken, session, scope, id string) {
	t.Helper()
	payload, _ := json.Marshal(map[string]string{"id": id})
	req, _ := http.NewRequest("POST", fmt.Sprintf("%s/v1/selection/%s/toggle", baseURL, scope), bytes.NewBuffer(payload))
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("X-Session-ID", session)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSelectionSurvivesOnlyItsScope(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	authToken := SetupAdminSession(t, client)

	session := fmt.Sprintf("it-%d", time.Now().UnixNano())

	// 1. Выбрать два номера
	toggleSelection(t, client, authToken, session, "rooms", "101")
	toggleSelection(t, client, authToken, session, "rooms", "102")
	assert.ElementsMatch(t, []string{"101", "102"}, selectionState(t, client, authToken, session, "rooms"))

	// 2. Переключение на другую коллекцию сбрасывает выбор
	assert.Empty(t, selectionState(t, client, authToken, session, "events"))

	// 3. Возврат к rooms: выбор уже пуст, перенос между scope невозможен
	assert.Empty(t, selectionState(t, client, authToken, session, "rooms"))
}

func TestSelectionDeletionClearsOnlyConfirmed(t *testing.T) {
	client := &http.Client{Timeout: 10 * time.Second}
	authToken := SetupAdminSession(t, client)

	session := fmt.Sprintf("it-%d", time.Now().UnixNano())
	stamp := time.Now().UnixNano()

	ids, err := UploadMediaBatch(client, authToken, "gallery", nil,
		fmt.Sprintf("sel-%d-a.png", stamp), fmt.Sprintf("sel-%d-b.png", stamp))
	require.NoError(t, err)
	require.Len(t, ids, 2)
	t.Cleanup(func() { CleanupMedia(client, authToken, "gallery", ids) })

	// Выбрать оба актива
	for _, id := range ids {
		toggleSelection(t, client, authToken, session, "gallery", id)
	}

	// Удалить только первый
	deleteBody, _ := json.Marshal(map[string][]string{"ids": ids[:1]})
	req, _ := http.NewRequest("DELETE", baseURL+"/v1/delete-media/gallery", bytes.NewBuffer(deleteBody))
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Второй остаётся выбранным
	remaining := selectionState(t, client, authToken, session, "gallery")
	assert.ElementsMatch(t, ids[1:], remaining)
}
