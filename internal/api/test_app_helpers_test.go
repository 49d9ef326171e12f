package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/healthtrack/internal/memstore"
	"github.com/terraincognita07/healthtrack/internal/services"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const testSecretKey = "0123456789abcdef0123456789abcdef"

type testSession struct {
	UserID uint   `json:"userId"`
	Token  string `json:"token"`
}

func newTestHandler(t *testing.T, repositories services.Repositories) *Handler {
	t.Helper()

	handler, err := NewHandler(repositories, Options{
		SecretKey:  []byte(testSecretKey),
		TokenTTL:   time.Hour,
		Logger:     zap.NewNop(),
		BcryptCost: bcrypt.MinCost,
	})
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return handler
}

func newTestApp(t *testing.T) (*fiber.App, *Handler) {
	t.Helper()

	store := memstore.New()
	handler := newTestHandler(t, services.Repositories{
		Users:      store.Users(),
		Records:    store.Records(),
		Categories: store.Categories(),
	})
	return newTestAppWithHandler(handler), handler
}

func newTestAppWithHandler(handler *Handler) *fiber.App {
	app := fiber.New()
	app.Use(RequestID())
	app.Use(RequestLogger(handler.logger))
	RegisterRoutes(app, handler)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method string, path string, token string, payload any) *http.Response {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode payload: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	t.Cleanup(func() { _ = response.Body.Close() })
	return response
}

func expectStatus(t *testing.T, response *http.Response, status int) {
	t.Helper()

	if response.StatusCode != status {
		body, _ := io.ReadAll(response.Body)
		t.Fatalf("expected status %d, got %d: %s", status, response.StatusCode, string(body))
	}
}

func decodeJSON(t *testing.T, response *http.Response, target any) {
	t.Helper()

	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func readAPIError(t *testing.T, response *http.Response) (string, string) {
	t.Helper()

	payload := map[string]string{}
	decodeJSON(t, response, &payload)
	return payload["error"], payload["code"]
}

func registerAndLogin(t *testing.T, app *fiber.App, handle string, secret string) testSession {
	t.Helper()

	response := doJSON(t, app, http.MethodPost, "/api/auth/register", "", fiber.Map{"handle": handle, "secret": secret})
	expectStatus(t, response, http.StatusCreated)

	response = doJSON(t, app, http.MethodPost, "/api/auth/login", "", fiber.Map{"handle": handle, "secret": secret})
	expectStatus(t, response, http.StatusOK)

	var session testSession
	decodeJSON(t, response, &session)
	if session.UserID == 0 || session.Token == "" {
		t.Fatalf("expected user id and token in login response, got %+v", session)
	}
	return session
}

func userPath(session testSession, suffix string) string {
	return "/api/users/" + strconv.FormatUint(uint64(session.UserID), 10) + suffix
}

func responseCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}
