package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/erazemk/garderoba/internal/db"
	"github.com/erazemk/garderoba/internal/model"
	"github.com/erazemk/garderoba/internal/store"
	"github.com/erazemk/garderoba/internal/wardrobe"
)

const testJWTSecret = "test-secret"

func setupTestServer(t *testing.T) (*httptest.Server, string) {
	t.Helper()
	database := db.NewTestDB(t)
	router := NewRouter(database, testJWTSecret, wardrobe.DefaultPolicy)
	server := httptest.NewServer(router)
	t.Cleanup(server.Close)

	// Create admin user.
	ctx := context.Background()
	hash, _ := bcrypt.GenerateFromPassword([]byte("password"), bcrypt.DefaultCost)
	store.CreateUser(ctx, database, "admin", string(hash), model.RoleAdmin)

	// Get token.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "password"})
	resp, err := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login failed: %d", resp.StatusCode)
	}

	var loginResp map[string]string
	json.NewDecoder(resp.Body).Decode(&loginResp)
	token := loginResp["token"]
	if token == "" {
		t.Fatal("empty token from login")
	}

	return server, token
}

func authRequest(method, url, token string, body any) (*http.Request, error) {
	var bodyReader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		bodyReader = bytes.NewReader(data)
	} else {
		bodyReader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

func createItemViaAPI(t *testing.T, server *httptest.Server, token, name, category string) model.WardrobeItem {
	t.Helper()
	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name":     name,
		"category": category,
		"colors":   []string{"Blue"},
	})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("create item: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create item: expected 201, got %d", resp.StatusCode)
	}
	var item model.WardrobeItem
	json.NewDecoder(resp.Body).Decode(&item)
	return item
}

func TestLoginEndpoint(t *testing.T) {
	server, _ := setupTestServer(t)

	// Test invalid credentials.
	body, _ := json.Marshal(map[string]string{"username": "admin", "password": "wrong"})
	resp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 for bad password, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemsRequireAuth(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, _ := http.Get(server.URL + "/api/items")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestItemCRUDFlow(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItemViaAPI(t, server, token, "Blue Shirt", "Tops")
	if item.Status != model.StatusAvailable {
		t.Errorf("expected new item available, got %q", item.Status)
	}

	// Partial update.
	req, _ := authRequest("PUT", server.URL+"/api/items/"+item.ID, token, map[string]any{
		"style": "Casual",
	})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", resp.StatusCode)
	}
	var updated model.WardrobeItem
	json.NewDecoder(resp.Body).Decode(&updated)
	resp.Body.Close()
	if updated.Style != "Casual" || updated.Name != "Blue Shirt" {
		t.Errorf("unexpected updated item: %+v", updated)
	}

	// Delete.
	req, _ = authRequest("DELETE", server.URL+"/api/items/"+item.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete: expected 200, got %d", resp.StatusCode)
	}

	// Gone from the listing.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var items []model.WardrobeItem
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 0 {
		t.Errorf("expected no items after delete, got %d", len(items))
	}

	// And gone by id, including its history.
	req, _ = authRequest("GET", server.URL+"/api/items/"+item.ID, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("get after delete: expected 404, got %d", resp.StatusCode)
	}

	req, _ = authRequest("GET", server.URL+"/api/items/"+item.ID+"/actions", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("history after delete: expected 404, got %d", resp.StatusCode)
	}
}

func TestCreateItemValidation(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/items", token, map[string]any{
		"name": "No Category Or Colors",
	})
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for missing fields, got %d", resp.StatusCode)
	}
}

func TestItemNotFound(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("GET", server.URL+"/api/items/no-such-id", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}
}

func TestActionFlow(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItemViaAPI(t, server, token, "Blue Shirt", "Tops")

	// Wear it.
	req, _ := authRequest("POST", server.URL+"/api/items/"+item.ID+"/actions", token,
		map[string]string{"action": "use"})
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("apply action: expected 200, got %d", resp.StatusCode)
	}
	var worn model.WardrobeItem
	json.NewDecoder(resp.Body).Decode(&worn)
	resp.Body.Close()

	if worn.Status != model.StatusUnavailable {
		t.Errorf("expected unavailable after use, got %q", worn.Status)
	}
	if worn.LastAction != model.ActionUse || worn.LastUsedAt == nil {
		t.Errorf("expected use recorded, got %+v", worn)
	}

	// Unknown action is rejected.
	req, _ = authRequest("POST", server.URL+"/api/items/"+item.ID+"/actions", token,
		map[string]string{"action": "donate"})
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown action, got %d", resp.StatusCode)
	}

	// History lists the single applied action.
	req, _ = authRequest("GET", server.URL+"/api/items/"+item.ID+"/actions", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	var history []model.ActionRecord
	json.NewDecoder(resp.Body).Decode(&history)
	resp.Body.Close()
	if len(history) != 1 || history[0].Action != model.ActionUse {
		t.Errorf("unexpected history: %+v", history)
	}
	if history[0].PerformedBy == nil {
		t.Error("expected action attributed to the logged-in user")
	}
}

func TestDashboardFilter(t *testing.T) {
	server, token := setupTestServer(t)

	shirt := createItemViaAPI(t, server, token, "Blue Shirt", "Tops")
	jeans := createItemViaAPI(t, server, token, "Black Jeans", "Bottoms")

	// Send the jeans to the laundry so only the shirt stays available.
	req, _ := authRequest("POST", server.URL+"/api/items/"+jeans.ID+"/actions", token,
		map[string]string{"action": "laundry"})
	resp0, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp0.Body.Close()

	// Case-insensitive search.
	req, _ = authRequest("GET", server.URL+"/api/items?search=BLUE", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	var items []model.WardrobeItem
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 || items[0].Name != "Blue Shirt" {
		t.Fatalf("expected only Blue Shirt, got %+v", items)
	}

	// Search plus status facet.
	req, _ = authRequest("GET", server.URL+"/api/items?search=shirt&status=available", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	json.NewDecoder(resp.Body).Decode(&items)
	resp.Body.Close()
	if len(items) != 1 || items[0].ID != shirt.ID {
		t.Fatalf("expected available shirt, got %+v", items)
	}

	// Unknown facet is rejected.
	req, _ = authRequest("GET", server.URL+"/api/items?status=broken", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown facet, got %d", resp.StatusCode)
	}
}

func TestRemindersEndpoint(t *testing.T) {
	server, token := setupTestServer(t)

	// A fresh, never-acted item triggers both rules.
	createItemViaAPI(t, server, token, "Blue Shirt", "Tops")

	req, _ := authRequest("GET", server.URL+"/api/reminders", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	var reminders []wardrobe.Reminder
	json.NewDecoder(resp.Body).Decode(&reminders)
	resp.Body.Close()

	if len(reminders) != 2 {
		t.Fatalf("expected 2 reminders, got %d: %+v", len(reminders), reminders)
	}
	for _, rem := range reminders {
		if rem.Count != 1 {
			t.Errorf("expected count 1 in %s reminder, got %d", rem.Kind, rem.Count)
		}
	}
}

func TestImageUploadAndFetch(t *testing.T) {
	server, token := setupTestServer(t)

	item := createItemViaAPI(t, server, token, "Photo Shirt", "Tops")

	// Build a multipart body with a real JPEG.
	img := image.NewRGBA(image.Rect(0, 0, 64, 64))
	for x := 0; x < 64; x++ {
		for y := 0; y < 64; y++ {
			img.Set(x, y, color.RGBA{0, 128, 0, 255})
		}
	}
	var jpegBuf bytes.Buffer
	jpeg.Encode(&jpegBuf, img, nil)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, _ := writer.CreateFormFile("image", "shirt.jpg")
	part.Write(jpegBuf.Bytes())
	writer.Close()

	req, _ := http.NewRequest("POST", server.URL+"/api/items/"+item.ID+"/images", &body)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("upload: %v", err)
	}
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("upload: expected 201, got %d", resp.StatusCode)
	}
	var uploaded model.ItemImage
	json.NewDecoder(resp.Body).Decode(&uploaded)
	resp.Body.Close()

	// Fetch it back.
	url := fmt.Sprintf("%s/api/items/%s/images/%d", server.URL, item.ID, uploaded.ID)
	req, _ = authRequest("GET", url, token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("fetch image: expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "image/jpeg" {
		t.Errorf("expected image/jpeg, got %s", ct)
	}
	resp.Body.Close()

	// Thumbnail variant.
	req, _ = authRequest("GET", url+"?thumb=1", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	if resp.StatusCode != http.StatusOK {
		t.Errorf("fetch thumbnail: expected 200, got %d", resp.StatusCode)
	}
	resp.Body.Close()
}

func TestLogoutRevokesToken(t *testing.T) {
	server, token := setupTestServer(t)

	req, _ := authRequest("POST", server.URL+"/api/auth/logout", token, nil)
	resp, _ := http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", resp.StatusCode)
	}

	// The revoked token no longer works.
	req, _ = authRequest("GET", server.URL+"/api/items", token, nil)
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected 401 with revoked token, got %d", resp.StatusCode)
	}
}

func TestCreateUserRequiresAdmin(t *testing.T) {
	server, adminToken := setupTestServer(t)

	// Admin can create a regular user.
	req, _ := authRequest("POST", server.URL+"/api/users", adminToken, map[string]string{
		"username": "alice",
		"password": "secret",
	})
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: expected 201, got %d", resp.StatusCode)
	}

	// Duplicate username is rejected.
	req, _ = authRequest("POST", server.URL+"/api/users", adminToken, map[string]string{
		"username": "alice",
		"password": "secret",
	})
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("expected 409 for duplicate username, got %d", resp.StatusCode)
	}

	// The new regular user cannot create users.
	body, _ := json.Marshal(map[string]string{"username": "alice", "password": "secret"})
	loginResp, _ := http.Post(server.URL+"/api/auth/login", "application/json", bytes.NewReader(body))
	var login map[string]string
	json.NewDecoder(loginResp.Body).Decode(&login)
	loginResp.Body.Close()

	req, _ = authRequest("POST", server.URL+"/api/users", login["token"], map[string]string{
		"username": "bob",
		"password": "secret",
	})
	resp, _ = http.DefaultClient.Do(req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusForbidden {
		t.Errorf("expected 403 for non-admin, got %d", resp.StatusCode)
	}
}

func TestHealthz(t *testing.T) {
	server, _ := setupTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}
}
