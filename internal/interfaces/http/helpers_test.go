package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/export"
	"github.com/jhoicas/almacen-api/internal/application/history"
	"github.com/jhoicas/almacen-api/internal/application/ledger"
	"github.com/jhoicas/almacen-api/internal/application/live"
	"github.com/jhoicas/almacen-api/internal/application/reporting"
	"github.com/jhoicas/almacen-api/internal/application/usecase"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/inventory"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "almacen-api-test"
	testPassword  = "secreto123"
)

// testEnv API completa sobre memstore.
type testEnv struct {
	app      *fiber.App
	store    *memstore.Store
	identity *memstore.Identity
	users    *memstore.UserRepo
	products *memstore.ProductRepo
}

func newTestEnv(t *testing.T, opts ...memstore.Option) *testEnv {
	t.Helper()
	log := zerolog.Nop()
	store := memstore.NewStore(opts...)
	identity := memstore.NewIdentity(4)
	productRepo := memstore.NewProductRepository(store)
	movementRepo := memstore.NewMovementRepository(store)
	userRepo := memstore.NewUserRepository(store)

	authUC := auth.NewAuthUseCase(identity, userRepo, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}, log)
	deps := apphttp.RouterDeps{
		AuthUC:    authUC,
		ProductUC: usecase.NewProductUseCase(productRepo, inventory.NewCategorySet(), log),
		WorkerUC:  usecase.NewWorkerUseCase(memstore.NewWorkerRepository(store)),
		UserUC:    usecase.NewUserUseCase(userRepo, identity, log),
		Ledger:    ledger.NewRecordMovementUseCase(productRepo, movementRepo, log),
		History:   history.NewHistoryUseCase(movementRepo, 4, log),
		Export:    export.NewExportUseCase(movementRepo),
		DashboardUC: reporting.NewDashboardUseCase(
			live.NewFeed[entity.Product](), live.NewFeed[entity.Movement](),
			productRepo, movementRepo, pdf.NewMarotoReportGenerator(""),
		),
	}
	app := fiber.New()
	apphttp.Router(app, deps)
	return &testEnv{app: app, store: store, identity: identity, users: userRepo, products: productRepo}
}

// tokenFor crea (si hace falta) un usuario activo con el rol indicado y devuelve "Bearer <token>".
func (e *testEnv) tokenFor(t *testing.T, email, role string) string {
	t.Helper()
	ctx := context.Background()
	existing, err := e.users.GetByEmail(ctx, email)
	require.NoError(t, err)
	if existing == nil {
		id, err := e.identity.CreateAccount(ctx, email, testPassword)
		require.NoError(t, err)
		require.NoError(t, e.users.Create(ctx, &entity.AppUser{
			ID: id.SubjectID, Name: email, Email: email, Role: role,
			Status: entity.StatusActive, CreatedAt: time.Now(),
		}))
	}
	resp := e.do(t, http.MethodPost, "/api/auth/login", "", dto.LoginRequest{Email: email, Password: testPassword})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.LoginResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return "Bearer " + out.Token
}

func (e *testEnv) do(t *testing.T, method, path, authHeader string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
