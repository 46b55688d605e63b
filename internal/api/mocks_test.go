package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/api"
	"github.com/mriley/stash-api/internal/domain"
	"github.com/mriley/stash-api/internal/store"
	"github.com/stretchr/testify/require"
)

// Function-field fakes let each test case configure exactly the
// behavior it needs without a separate mock type per scenario.

type mockAccountService struct {
	registerFn     func(ctx context.Context, username, password string) (*domain.Account, error)
	authenticateFn func(ctx context.Context, username, password string) (*domain.Account, error)
}

func (m *mockAccountService) Register(ctx context.Context, username, password string) (*domain.Account, error) {
	return m.registerFn(ctx, username, password)
}

func (m *mockAccountService) Authenticate(ctx context.Context, username, password string) (*domain.Account, error) {
	return m.authenticateFn(ctx, username, password)
}

type mockTokenService struct {
	issueFn   func(ctx context.Context, accountID uuid.UUID) (string, error)
	resolveFn func(ctx context.Context, token string) (uuid.UUID, error)
}

func (m *mockTokenService) IssueToken(ctx context.Context, accountID uuid.UUID) (string, error) {
	if m.issueFn != nil {
		return m.issueFn(ctx, accountID)
	}
	return accountID.String(), nil
}

func (m *mockTokenService) ResolveToken(ctx context.Context, token string) (uuid.UUID, error) {
	if m.resolveFn != nil {
		return m.resolveFn(ctx, token)
	}
	return uuid.Parse(token)
}

type mockItemService struct {
	createFn func(ctx context.Context, name, description string) (*domain.Item, error)
	getFn    func(ctx context.Context, id uuid.UUID) (*domain.Item, error)
	listFn   func(ctx context.Context, filter store.ItemFilter) ([]*domain.Item, error)
	updateFn func(ctx context.Context, id uuid.UUID, name, description string) (*domain.Item, error)
	deleteFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockItemService) CreateItem(ctx context.Context, name, description string) (*domain.Item, error) {
	return m.createFn(ctx, name, description)
}

func (m *mockItemService) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	return m.getFn(ctx, id)
}

func (m *mockItemService) ListItems(ctx context.Context, filter store.ItemFilter) ([]*domain.Item, error) {
	return m.listFn(ctx, filter)
}

func (m *mockItemService) UpdateItem(ctx context.Context, id uuid.UUID, name, description string) (*domain.Item, error) {
	return m.updateFn(ctx, id, name, description)
}

func (m *mockItemService) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return m.deleteFn(ctx, id)
}

func newHandlerLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// newAuthRouter mounts an AuthHandler on the same routes the server uses.
func newAuthRouter(accounts *mockAccountService, tokens *mockTokenService) http.Handler {
	handler := api.NewAuthHandler(accounts, tokens, newHandlerLogger())
	r := chi.NewRouter()
	r.Post("/signup", handler.Signup)
	r.Post("/signin", handler.Signin)
	r.Post("/logout", handler.Logout)
	return r
}

// newItemRouter mounts an ItemHandler on the same routes the server uses.
func newItemRouter(items *mockItemService) http.Handler {
	handler := api.NewItemHandler(items, newHandlerLogger())
	r := chi.NewRouter()
	r.Route("/items", func(r chi.Router) {
		r.Post("/", handler.CreateItem)
		r.Get("/", handler.ListItems)
		r.Get("/{id}", handler.GetItem)
		r.Put("/{id}", handler.UpdateItem)
		r.Delete("/{id}", handler.DeleteItem)
	})
	return r
}

// doRequest executes the request against the handler and returns the
// recorded response.
func doRequest(handler http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals the recorded JSON body into out.
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}
