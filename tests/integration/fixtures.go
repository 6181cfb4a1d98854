package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"os"
	"testing"
)

var baseURL = func() string {
	if url := os.Getenv("STAYHUB_API_URL"); url != "" {
		return url
	}
	return "http://localhost:8080"
}()

// RequireStack пропускает тест, если API недоступен
func RequireStack(t *testing.T, client *http.Client) {
	t.Helper()
	resp, err := client.Get(baseURL + "/health/ready")
	if err != nil {
		t.Skipf("stayhub API is not reachable at %s: %v", baseURL, err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Skipf("stayhub stack is not ready: %d", resp.StatusCode)
	}
}

// LoginAdmin логинится под seed-админом и возвращает access token
func LoginAdmin(client *http.Client) (string, error) {
	payload := map[string]string{
		"email":    envOr("STAYHUB_TEST_ADMIN_EMAIL", "admin@stayhub.local"),
		"password": envOr("STAYHUB_TEST_ADMIN_PASSWORD", "admin-password-1"),
	}

	body, _ := json.Marshal(payload)
	req, _ := http.NewRequest("POST", baseURL+"/v1/auth/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to log in admin: %d", resp.StatusCode)
	}

	var loginResp struct {
		Tokens struct {
			AccessToken string `json:"access_token"`
		} `json:"tokens"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&loginResp); err != nil {
		return "", err
	}

	return loginResp.Tokens.AccessToken, nil
}

// UploadMediaBatch загружает пачку файлов в папку и возвращает id активов
func UploadMediaBatch(client *http.Client, authToken, folder string, fields map[string]string, names ...string) ([]string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for _, name := range names {
		part, err := writer.CreateFormFile("files", name)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(tinyPNG()); err != nil {
			return nil, err
		}
	}
	for key, value := range fields {
		writer.WriteField(key, value)
	}
	writer.Close()

	req, _ := http.NewRequest("POST", fmt.Sprintf("%s/v1/upload-media/%s", baseURL, folder), &buf)
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("failed to upload batch: %d", resp.StatusCode)
	}

	var uploadResp struct {
		Uploaded []struct {
			ID string `json:"id"`
		} `json:"uploaded"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&uploadResp); err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(uploadResp.Uploaded))
	for _, a := range uploadResp.Uploaded {
		ids = append(ids, a.ID)
	}
	return ids, nil
}

// CleanupMedia удаляет загруженные тестом активы
func CleanupMedia(client *http.Client, authToken, folder string, ids []string) {
	if len(ids) == 0 {
		return
	}
	body, _ := json.Marshal(map[string][]string{"ids": ids})
	req, _ := http.NewRequest("DELETE", fmt.Sprintf("%s/v1/delete-media/%s", baseURL, folder), bytes.NewBuffer(body))
	req.Header.Set("Authorization", "Bearer "+authToken)
	req.Header.Set("Content-Type", "application/json")
	if resp, err := client.Do(req); err == nil {
		resp.Body.Close()
	}
}

// SetupAdminSession логинится и регистрирует cleanup для загруженных активов
func SetupAdminSession(t *testing.T, client *http.Client) string {
	t.Helper()
	RequireStack(t, client)

	authToken, err := LoginAdmin(client)
	if err != nil {
		t.Skipf("no seeded admin account available: %v", err)
	}
	return authToken
}

func envOr(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

// tinyPNG возвращает минимальный валидный PNG (1x1 пиксель)
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
