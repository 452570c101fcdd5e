package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/records-service/internal/api/http"
	"github.com/spec-kit/records-service/internal/api/http/handlers"
	"github.com/spec-kit/records-service/internal/auth"
	"github.com/spec-kit/records-service/internal/config"
	"github.com/spec-kit/records-service/internal/domain"
	"github.com/spec-kit/records-service/internal/observability"
	"github.com/spec-kit/records-service/internal/repository"
	"github.com/spec-kit/records-service/internal/service"
)

const testSecret = "test-secret"

type memUserRepo struct {
	mu    sync.Mutex
	users map[string]domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Username]; exists {
		return repository.ErrUsernameTaken
	}
	user.ID = user.Username
	r.users[user.Username] = *user
	return nil
}

func (r *memUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *memUserRepo) UpdateRole(_ context.Context, username string, role domain.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[username]
	if !ok {
		return pgx.ErrNoRows
	}
	user.Role = role
	r.users[username] = user
	return nil
}

func (r *memUserRepo) Delete(_ context.Context, username string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[username]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, username)
	return nil
}

type memInvoiceRepo struct {
	mu       sync.Mutex
	seq      int64
	invoices map[int64]domain.Invoice
}

func newMemInvoiceRepo() *memInvoiceRepo {
	return &memInvoiceRepo{invoices: make(map[int64]domain.Invoice)}
}

func (r *memInvoiceRepo) SaveWithItems(_ context.Context, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	invoice.ID = r.seq
	for i := range invoice.LineItems {
		invoice.LineItems[i].InvoiceID = invoice.ID
		invoice.LineItems[i].ID = int64(i + 1)
	}
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *memInvoiceRepo) GetByID(_ context.Context, id int64) (*domain.Invoice, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	invoice, ok := r.invoices[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &invoice, nil
}

func (r *memInvoiceRepo) ListPage(_ context.Context, req repository.PageRequest) (repository.Page[domain.Invoice], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	content := make([]domain.Invoice, 0, len(r.invoices))
	for _, invoice := range r.invoices {
		content = append(content, invoice)
	}
	return repository.NewPage(content, req, int64(len(content))), nil
}

func (r *memInvoiceRepo) Update(_ context.Context, invoice *domain.Invoice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[invoice.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.invoices[invoice.ID] = *invoice
	return nil
}

func (r *memInvoiceRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.invoices[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.invoices, id)
	return nil
}

type memListItemRepo struct {
	mu       sync.Mutex
	seq      int64
	items    map[int64]domain.LineItem
	invoices *memInvoiceRepo
}

func newMemListItemRepo(invoices *memInvoiceRepo) *memListItemRepo {
	return &memListItemRepo{items: make(map[int64]domain.LineItem), invoices: invoices}
}

func (r *memListItemRepo) invoiceExists(id int64) bool {
	r.invoices.mu.Lock()
	defer r.invoices.mu.Unlock()
	_, ok := r.invoices.invoices[id]
	return ok
}

func (r *memListItemRepo) Save(_ context.Context, item *domain.LineItem) error {
	if !r.invoiceExists(item.InvoiceID) {
		return repository.ErrInvoiceMissing
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	item.ID = r.seq
	r.items[item.ID] = *item
	return nil
}

func (r *memListItemRepo) GetByID(_ context.Context, id int64) (*domain.LineItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	item, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (r *memListItemRepo) ListPage(_ context.Context, req repository.PageRequest) (repository.Page[domain.LineItem], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	content := make([]domain.LineItem, 0, len(r.items))
	for _, item := range r.items {
		content = append(content, item)
	}
	return repository.NewPage(content, req, int64(len(content))), nil
}

func (r *memListItemRepo) Update(_ context.Context, item *domain.LineItem) error {
	if !r.invoiceExists(item.InvoiceID) {
		return repository.ErrInvoiceMissing
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[item.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.items[item.ID] = *item
	return nil
}

func (r *memListItemRepo) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.items, id)
	return nil
}

type testEnv struct {
	app      *fiber.App
	users    *memUserRepo
	invoices *memInvoiceRepo
	svc      *service.AuthService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zap.NewNop()
	metrics := observability.NewMetrics()

	users := newMemUserRepo()
	invoices := newMemInvoiceRepo()
	listItems := newMemListItemRepo(invoices)

	svc := service.NewAuthService(config.AuthConfig{
		JWTSecret:     testSecret,
		TokenTTLHours: 24,
		BcryptCost:    4,
	}, users)

	policy := auth.DefaultPolicy()
	middleware := auth.NewMiddleware(svc.TokenManager(), users, policy, logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, 0)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("records-service", "test", nil, nil),
		Auth:           handlers.NewAuthHandler(svc),
		Invoices:       handlers.NewInvoicesHandler(invoices),
		ListItems:      handlers.NewListItemsHandler(listItems),
		Sales:          handlers.NewSalesHandler(nil),
		Purchases:      handlers.NewPurchasesHandler(nil),
		Stocks:         handlers.NewStocksHandler(nil),
		Orders:         handlers.NewOrdersHandler(nil),
		Items:          handlers.NewItemsHandler(nil),
		Refunds:        handlers.NewRefundsHandler(nil),
		AuthMiddleware: middleware,
	})

	return &testEnv{app: app, users: users, invoices: invoices, svc: svc}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *nethttp.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *nethttp.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func (e *testEnv) registerAndLogin(t *testing.T, username, password string, role domain.Role) string {
	t.Helper()

	resp := e.request(t, "POST", "/auth/register", "", fiber.Map{
		"username": username,
		"password": password,
		"role":     string(role),
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = e.request(t, "POST", "/auth/login", "", fiber.Map{
		"username": username,
		"password": password,
	})
	require.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestPublicRoutes(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/auth/health", "", nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "Auth service is running", string(raw))
}

func TestRegisterDuplicateReturnsConflict(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/auth/register", "", fiber.Map{
		"username": "alice", "password": "pw123", "role": "OPERATOR",
	})
	assert.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, "POST", "/auth/register", "", fiber.Map{
		"username": "alice", "password": "pw123", "role": "OPERATOR",
	})
	assert.Equal(t, nethttp.StatusConflict, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Username already exists", body["message"])
}

func TestRegisterUnknownRole(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "POST", "/auth/register", "", fiber.Map{
		"username": "alice", "password": "pw123", "role": "SUPERUSER",
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "alice", "pw123", domain.RoleOperator)

	resp := env.request(t, "POST", "/auth/login", "", fiber.Map{
		"username": "alice", "password": "wrong",
	})
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Invalid username or password", body["message"])
}

func TestMissingTokenReturns401(t *testing.T) {
	env := newTestEnv(t)

	for _, header := range []string{"", "Token abc", "Bearer ", "Bearer"} {
		req := httptest.NewRequest("GET", "/api/v1/invoices", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		resp, err := env.app.Test(req, -1)
		require.NoError(t, err)

		assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode, "header %q", header)
		body := decodeBody(t, resp)
		assert.Equal(t, false, body["success"], "header %q", header)
		assert.Equal(t, "Authentication required", body["message"], "header %q", header)
	}
}

func TestInvalidTokenReturns401(t *testing.T) {
	env := newTestEnv(t)

	resp := env.request(t, "GET", "/api/v1/invoices", "not-a-token", nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestExpiredTokenReturns401(t *testing.T) {
	env := newTestEnv(t)
	env.registerAndLogin(t, "alice", "pw123", domain.RoleOperator)

	// Mint a token that expired an hour ago, signed with the same secret.
	past := time.Now().Add(-25 * time.Hour)
	stale := auth.NewTokenManager(testSecret, 24).WithClock(func() time.Time { return past })
	token, _, err := stale.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)

	resp := env.request(t, "GET", "/api/v1/invoices", token, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestDeletedUserTokenRejected(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "bob", "pw123", domain.RoleAdmin)

	require.NoError(t, env.users.Delete(context.Background(), "bob"))

	resp := env.request(t, "GET", "/api/v1/invoices", token, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Invalid or expired token", body["message"])
}

func TestPartnerIsReadOnly(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "partner", "pw123", domain.RolePartner)

	resp := env.request(t, "GET", "/api/v1/invoices", token, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Contains(t, body, "content")

	resp = env.request(t, "DELETE", "/api/v1/invoices/5", token, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Access denied: Insufficient permissions", body["message"])
}

func TestOperatorCannotDelete(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "op", "pw123", domain.RoleOperator)

	resp := env.request(t, "DELETE", "/api/v1/invoices/1", token, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
}

func TestAdminFullLifecycle(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "root", "pw123", domain.RoleAdmin)

	resp := env.request(t, "POST", "/api/v1/invoices", token, fiber.Map{
		"numClient": "C-100",
		"date":      "2025-06-01",
		"total":     440.0,
		"employee":  "jdoe",
		"listItems": []fiber.Map{
			{"productId": 7, "quantity": 2, "price": 220.0},
		},
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	id := int64(created["id"].(float64))
	require.NotZero(t, id)

	resp = env.request(t, "GET", fmt.Sprintf("/api/v1/invoices/%d", id), token, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	fetched := decodeBody(t, resp)
	assert.Equal(t, "C-100", fetched["numClient"])

	resp = env.request(t, "DELETE", fmt.Sprintf("/api/v1/invoices/%d", id), token, nil)
	assert.Equal(t, nethttp.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, "GET", fmt.Sprintf("/api/v1/invoices/%d", id), token, nil)
	assert.Equal(t, nethttp.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestListItemsLifecycle(t *testing.T) {
	env := newTestEnv(t)
	admin := env.registerAndLogin(t, "root", "pw123", domain.RoleAdmin)
	partner := env.registerAndLogin(t, "bank", "pw123", domain.RolePartner)

	resp := env.request(t, "POST", "/api/v1/invoices", admin, fiber.Map{
		"numClient": "C-1", "date": "2025-06-01", "total": 10.0, "employee": "jdoe",
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	invoiceID := int64(decodeBody(t, resp)["id"].(float64))

	// Items for a nonexistent invoice are rejected before storage.
	resp = env.request(t, "POST", "/api/v1/list-items", admin, fiber.Map{
		"invoiceId": invoiceID + 100, "productId": 7, "quantity": 1, "price": 10.0,
	})
	assert.Equal(t, nethttp.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "invoice does not exist", body["message"])

	resp = env.request(t, "POST", "/api/v1/list-items", admin, fiber.Map{
		"invoiceId": invoiceID, "productId": 7, "quantity": 2, "price": 5.0,
	})
	require.Equal(t, nethttp.StatusCreated, resp.StatusCode)
	created := decodeBody(t, resp)
	itemID := int64(created["id"].(float64))
	require.NotZero(t, itemID)

	resp = env.request(t, "GET", fmt.Sprintf("/api/v1/list-items/%d", itemID), partner, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	fetched := decodeBody(t, resp)
	assert.Equal(t, float64(invoiceID), fetched["invoiceId"])

	resp = env.request(t, "DELETE", fmt.Sprintf("/api/v1/list-items/%d", itemID), partner, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, "DELETE", fmt.Sprintf("/api/v1/list-items/%d", itemID), admin, nil)
	assert.Equal(t, nethttp.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestRoleChangeAppliesImmediately(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "carol", "pw123", domain.RoleAdmin)

	// Demote after the token was issued; the embedded ADMIN role must not
	// be trusted on the next request.
	require.NoError(t, env.users.UpdateRole(context.Background(), "carol", domain.RolePartner))

	resp := env.request(t, "POST", "/api/v1/invoices", token, fiber.Map{
		"numClient": "C-1", "date": "2025-06-01", "total": 1.0, "employee": "jdoe",
	})
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "Access denied: Insufficient permissions", body["message"])
}

func TestOperatorScenario(t *testing.T) {
	env := newTestEnv(t)
	token := env.registerAndLogin(t, "alice", "pw123", domain.RoleOperator)

	resp := env.request(t, "GET", "/api/v1/invoices", token, nil)
	assert.Equal(t, nethttp.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.request(t, "DELETE", "/api/v1/invoices/1", token, nil)
	assert.Equal(t, nethttp.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	past := time.Now().Add(-25 * time.Hour)
	stale := auth.NewTokenManager(testSecret, 24).WithClock(func() time.Time { return past })
	expired, _, err := stale.Generate("alice", domain.RoleOperator)
	require.NoError(t, err)

	resp = env.request(t, "GET", "/api/v1/invoices", expired, nil)
	assert.Equal(t, nethttp.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}
