package e2e

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseURL = func() string {
	if url := os.Getenv("STAYHUB_API_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}()

func tinyPNG() []byte {
	return []byte{
		0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a,
		0x00, 0x00, 0x00, 0x0d, 0x49, 0x48, 0x44, 0x52,
		0x00, 0x00, 0x00, 0x01, 0x00, 0x00, 0x00, 0x01,
		0x08, 0x06, 0x00, 0x00, 0x00, 0x1f, 0x15, 0xc4,
		0x89, 0x00, 0x00, 0x00, 0x0a, 0x49, 0x44, 0x41,
		0x54, 0x78, 0x9c, 0x63, 0x00, 0x01, 0x00, 0x00,
		0x05, 0x00, 0x01, 0x0d, 0x0a, 0x2d, 0xb4, 0x00,
		0x00, 0x00, 0x00, 0x49, 0x45, 0x4e, 0x44, 0xae,
		0x42, 0x60, 0x82,
	}
}

func TestRoomFullWorkflow(t *testing.T) {
	client := &http.Client{Timeout: 30 * time.Second}

	// 0. Стек должен быть поднят
	resp, err := client.Get(baseURL + "/health/ready")
	if err != nil {
		t.Skipf("stayhub API is not reachable at %s: %v", baseURL, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("stayhub stack is not ready: %d", resp.StatusCode)
	}

	// 1. Логин администратора
	loginPayload := map[string]string{
		"email":    envOr("STAYHUB_TEST_ADMIN_EMAIL", "admin@stayhub.local"),
		"password": envOr("STAYHUB_TEST_ADMIN_PASSWORD", "admin-password-1"),
	}

	loginBody, _ := json.Marshal(loginPayload)
	req, _ := http.NewRequest("POST", baseURL+"/v1/auth/login", bytes.NewBuffer(loginBody))
	req.Header.Set("Content-Type", "application/json")

	resp, err = client.Do(req)
	require.NoError(t, err)
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		t.Skipf("no seeded admin account available: %d", resp.StatusCode)
	}

	var loginResp struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	body, _ := io.ReadAll(resp.Body)
	json.Unmarshal(body, &loginResp)
	resp.Body.Close()

	authToken := loginResp.Tokens.AccessToken
	require.NotEmpty(t, authToken)

	// 2. Создание номера с обложкой и галереей
	roomNumber := fmt.Sprintf("e2e-%d", time.Now().UnixNano())

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range []string{"cover.png", "bath.png", "view.png"} {
		part, _ := writer.CreateFormFile("files", name)
		part.Write(tinyPNG())
	}
	writer.WriteField("room_no", roomNumber)
	writer.WriteField("room_type", "deluxe")
	writer.WriteField("price", "25000")
	writer.WriteField("occupancy", "2")
	writer.WriteField("description", "corner room with a park view")
	writer.Close()

	req, _ = http.NewRequest("POST", baseURL+"/v1/room/create", &buf)
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var createResp struct {
		Room struct {
			RoomNumber  string   `json:"room_number"`
			ImageURL    string   `json:"image_url"`
			GalleryURLs []string `json:"gallery_urls"`
		} `json:"room"`
		FailedFiles []struct {
			Name string `json:"name"`
		} `json:"failedFiles"`
	}
	body, _ = io.ReadAll(resp.Body)
	json.Unmarshal(body, &createResp)
	resp.Body.Close()

	assert.Equal(t, roomNumber, createResp.Room.RoomNumber)
	assert.NotEmpty(t, createResp.Room.ImageURL)
	assert.Len(t, createResp.Room.GalleryURLs, 2)
	assert.Empty(t, createResp.FailedFiles)

	// 3. Номер виден в списке
	req, _ = http.NewRequest("GET", baseURL+"/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var listResp struct {
		Rooms []struct {
			RoomNumber string `json:"room_number"`
		} `json:"rooms"`
	}
	body, _ = io.ReadAll(resp.Body)
	json.Unmarshal(body, &listResp)
	resp.Body.Close()

	found := false
	for _, room := range listResp.Rooms {
		if room.RoomNumber == roomNumber {
			found = true
		}
	}
	assert.True(t, found, "created room must appear in the listing")

	// 4. Номер виден и в классификации hotel-rooms
	req, _ = http.NewRequest("GET", baseURL+"/v1/get-media/hotel-rooms", nil)
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// 5. Выбрать номер и удалить его
	togglePayload, _ := json.Marshal(map[string]string{"id": roomNumber})
	req, _ = http.NewRequest("POST", baseURL+"/v1/selection/rooms/toggle", bytes.NewBuffer(togglePayload))
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	deletePayload, _ := json.Marshal(map[string][]string{"room_numbers": {roomNumber}})
	req, _ = http.NewRequest("POST", baseURL+"/v1/room/delete", bytes.NewBuffer(deletePayload))
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var report struct {
		Deleted []string `json:"deleted"`
	}
	body, _ = io.ReadAll(resp.Body)
	json.Unmarshal(body, &report)
	resp.Body.Close()

	assert.Contains(t, report.Deleted, roomNumber)

	// 6. Выбор очищен после подтверждённого удаления
	req, _ = http.NewRequest("GET", baseURL+"/v1/selection/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+authToken)

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var selResp struct {
		Selected []string `json:"selected"`
	}
	body, _ = io.ReadAll(resp.Body)
	json.Unmarshal(body, &selResp)
	resp.Body.Close()

	assert.NotContains(t, selResp.Selected, roomNumber)

	// 7. Повторное удаление: номера больше нет
	req, _ = http.NewRequest("POST", baseURL+"/v1/room/delete", bytes.NewBuffer(deletePayload))
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err = client.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
