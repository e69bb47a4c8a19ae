package http_test

import (
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
)

func createProduct(t *testing.T, env *testEnv, token string, stock, minimo int64) dto.ProductResponse {
	t.Helper()
	resp := env.do(t, http.MethodPost, "/api/products", token, dto.CreateProductRequest{
		SKU: "EPP-001", Name: "Casco", StockActual: stock, StockMinimo: minimo,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func TestMovimientos_EntradaYSalida(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)
	p := createProduct(t, env, admin, 0, 5)
	assert.Equal(t, "Out of Stock", p.Status)

	resp := env.do(t, http.MethodPost, "/api/movements", admin, dto.RecordMovementRequest{
		Type: "IN", ProductID: p.ID, Quantity: 10, Date: "2024-05-01",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	in := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, "admin@obra.mx", in.Worker)
	assert.Equal(t, "Casco", in.ProductName)

	resp = env.do(t, http.MethodPost, "/api/movements", admin, dto.RecordMovementRequest{
		Type: "OUT", ProductID: p.ID, Quantity: 11, Date: "2024-05-02", Worker: "Juan",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body.Code)

	resp = env.do(t, http.MethodPost, "/api/movements", admin, dto.RecordMovementRequest{
		Type: "OUT", ProductID: p.ID, Quantity: 4, Worker: "Juan",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, admin, nil)
	got := decode[dto.ProductResponse](t, resp)
	assert.EqualValues(t, 6, got.StockActual)
	assert.Equal(t, "In Stock", got.Status)
}

func TestMovimientos_SalidaSinTrabajador_Retorna400(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)
	p := createProduct(t, env, admin, 10, 1)

	resp := env.do(t, http.MethodPost, "/api/movements", admin, dto.RecordMovementRequest{
		Type: "OUT", ProductID: p.ID, Quantity: 1,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)
}

func TestHistorial_SinIndice_Retorna412ConRemediacion(t *testing.T) {
	env := newTestEnv(t, memstore.WithoutIndexes())
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)

	resp := env.do(t, http.MethodGet, "/api/movements?start_date=2024-01-01&end_date=2024-12-31&product_id=p1", admin, nil)
	assert.Equal(t, http.StatusPreconditionFailed, resp.StatusCode)
	body := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INDEX_REQUIRED", body.Code)
	assert.Contains(t, body.Remediation, "product_id")

	// Sin producto la consulta no necesita índice compuesto.
	resp = env.do(t, http.MethodGet, "/api/movements?start_date=2024-01-01&end_date=2024-12-31", admin, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestHistorial_Paginacion(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)
	p := createProduct(t, env, admin, 0, 0)
	for i := 1; i <= 25; i++ {
		resp := env.do(t, http.MethodPost, "/api/movements", admin, dto.RecordMovementRequest{
			Type: "IN", ProductID: p.ID, Quantity: 1, Date: fmt.Sprintf("2024-04-%02d", i),
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	base := "/api/movements?start_date=2024-04-01&end_date=2024-04-30"
	first := decode[dto.HistoryPageResponse](t, env.do(t, http.MethodGet, base, admin, nil))
	require.Len(t, first.Items, 20)
	assert.True(t, first.HasMore)
	assert.Equal(t, "2024-04-25", first.Items[0].Date)

	second := decode[dto.HistoryPageResponse](t, env.do(t, http.MethodGet, base+"&cursor="+first.NextCursor, admin, nil))
	require.Len(t, second.Items, 5)
	assert.False(t, second.HasMore)
	assert.Equal(t, "2024-04-01", second.Items[4].Date)

	// El cursor no sirve con otro rango.
	resp := env.do(t, http.MethodGet, "/api/movements?start_date=2024-04-02&end_date=2024-04-30&cursor="+first.NextCursor, admin, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "CURSOR_MISMATCH", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLimpiarHistorial_EmpleadoNoPuede(t *testing.T) {
	env := newTestEnv(t)
	empleado := env.tokenFor(t, "emp@obra.mx", entity.RoleEmpleado)

	resp := env.do(t, http.MethodDelete, "/api/movements/clear/IN", empleado, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()
}

func TestLimpiarHistorial_SoloTipoIndicado(t *testing.T) {
	env := newTestEnv(t)
	editor := env.tokenFor(t, "editor@obra.mx", entity.RoleEditor)
	p := createProduct(t, env, editor, 10, 0)
	for _, typ := range []string{"IN", "IN", "OUT"} {
		resp := env.do(t, http.MethodPost, "/api/movements", editor, dto.RecordMovementRequest{
			Type: typ, ProductID: p.ID, Quantity: 1, Worker: "Juan",
		})
		require.Equal(t, http.StatusCreated, resp.StatusCode)
		resp.Body.Close()
	}

	resp := env.do(t, http.MethodDelete, "/api/movements/clear/IN", editor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, decode[dto.DeletedResponse](t, resp).Deleted)

	resp = env.do(t, http.MethodGet, "/api/products/"+p.ID, editor, nil)
	assert.EqualValues(t, 11, decode[dto.ProductResponse](t, resp).StockActual, "limpiar historial no toca el stock")
}

func TestExportarCSV(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)
	p := createProduct(t, env, admin, 0, 0)
	resp := env.do(t, http.MethodPost, "/api/movements", admin, dto.RecordMovementRequest{
		Type: "IN", ProductID: p.ID, Quantity: 3, Date: "2024-05-01", Reason: `Compra "urgente"`,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/movements/export/in?start_date=2024-05-01&end_date=2024-05-31", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "reporte_in_")
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	resp.Body.Close()

	lines := strings.Split(string(raw), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Fecha,Tipo,Producto,Cantidad,Motivo", lines[0])
	assert.Equal(t, `"2024-05-01","ENTRADA","Casco","3","Compra ""urgente"""`, lines[1])
}

func TestUsuarios_VistaYPermisos(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)
	editor := env.tokenFor(t, "editor@obra.mx", entity.RoleEditor)
	empleado := env.tokenFor(t, "emp@obra.mx", entity.RoleEmpleado)

	resp := env.do(t, http.MethodGet, "/api/users", empleado, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/users", editor, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.UserResponse](t, resp), 3)

	resp = env.do(t, http.MethodPost, "/api/users", editor, dto.CreateUserRequest{Email: "x@obra.mx", Password: "secreto1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{Email: "emp@obra.mx", Password: "secreto1"})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", decode[dto.ErrorResponse](t, resp).Code)

	resp = env.do(t, http.MethodPost, "/api/users", admin, dto.CreateUserRequest{Email: "nuevo@obra.mx", Password: "secreto1", Role: entity.RoleEditor})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.UserResponse](t, resp)
	assert.Equal(t, entity.RoleEditor, created.Role)

	resp = env.do(t, http.MethodDelete, "/api/users/"+created.ID, admin, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()
}

func TestUsuarios_AdminNoSeEliminaASiMismo(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)
	me, err := env.users.GetByEmail(t.Context(), "admin@obra.mx")
	require.NoError(t, err)

	resp := env.do(t, http.MethodDelete, "/api/users/"+me.ID, admin, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "SELF_DELETE", decode[dto.ErrorResponse](t, resp).Code)
}

func TestLogout_InvalidaToken(t *testing.T) {
	env := newTestEnv(t)
	token := env.tokenFor(t, "emp@obra.mx", entity.RoleEmpleado)

	resp := env.do(t, http.MethodGet, "/api/units", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodPost, "/api/auth/logout", token, nil)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/units", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestRegistro_CreaEmpleado(t *testing.T) {
	env := newTestEnv(t)
	resp := env.do(t, http.MethodPost, "/api/auth/register", "", dto.RegisterRequest{Email: "Nuevo@Obra.mx", Password: "secreto1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.LoginResponse](t, resp)
	assert.NotEmpty(t, out.Token)
	assert.Equal(t, entity.RoleEmpleado, out.User.Role)
	assert.Equal(t, "nuevo@obra.mx", out.User.Email)
}

func TestDashboard_ResumenYPDF(t *testing.T) {
	env := newTestEnv(t)
	admin := env.tokenFor(t, "admin@obra.mx", entity.RoleAdmin)
	createProduct(t, env, admin, 2, 5)

	resp := env.do(t, http.MethodGet, "/api/dashboard/summary", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	summary := decode[dto.DashboardSummaryDTO](t, resp)
	assert.EqualValues(t, 2, summary.TotalStock)
	assert.Equal(t, 1, summary.LowStockCount)
	assert.Len(t, summary.Daily30, 30)

	resp = env.do(t, http.MethodGet, "/api/dashboard/report.pdf", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	resp.Body.Close()

	resp = env.do(t, http.MethodGet, "/api/dashboard/replenishment", admin, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[[]dto.ReplenishmentSuggestionDTO](t, resp)
	require.Len(t, list, 1)
	assert.EqualValues(t, 8, list[0].IdealStock)
	assert.EqualValues(t, 6, list[0].SuggestedOrderQty)
	assert.Equal(t, 1, list[0].Priority)
}
