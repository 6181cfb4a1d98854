package room

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aslanbek/stayhub/internal/media"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

func newTestRouter(service *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	RegisterRoutes(router.Group("/v1"), service)
	return router
}

func postJSON(t *testing.T, router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func newDeleteService(repo *fakeRepo, objects *fakeObjects) *Service {
	deleter := media.NewDeleter(media.DeleterOptions{
		Scope:   Scope,
		Folder:  "hotel-rooms",
		Rows:    fakeRows{repo: repo},
		Objects: objects,
	})
	return NewService(repo, &fakeIngest{}, nil, deleter)
}

func TestDeleteRoomsNotFoundWhenNothingMatches(t *testing.T) {
	router := newTestRouter(newDeleteService(newFakeRepo(), &fakeObjects{}))

	rec := postJSON(t, router, "/v1/room/delete", `{"room_numbers":["404"]}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 when no room was removed, got %d", rec.Code)
	}
}

func TestDeleteRoomsOrphanedCleanupIsNotNotFound(t *testing.T) {
	repo := newFakeRepo()
	repo.rooms["101"] = Room{ID: uuid.New(), RoomNumber: "101", ImageKey: "hotel-rooms/a"}
	router := newTestRouter(newDeleteService(repo, &fakeObjects{failAll: true}))

	rec := postJSON(t, router, "/v1/room/delete", `{"room_numbers":["101"]}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("row deletion is authoritative, expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"orphaned":["101"]`) {
		t.Fatalf("orphaned cleanup must be reported, got %s", rec.Body.String())
	}
}

func TestDeleteRoomsEmptyBodyIsBadRequest(t *testing.T) {
	router := newTestRouter(newDeleteService(newFakeRepo(), &fakeObjects{}))

	rec := postJSON(t, router, "/v1/room/delete", `{"room_numbers":[]}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty identifier set, got %d", rec.Code)
	}
}
