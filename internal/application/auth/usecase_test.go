package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/memstore"
)

var jwtCfg = auth.JWTConfig{Secret: "test-secret", ExpMinutes: 30, Issuer: "almacen-api"}

func newAuth(t *testing.T, users repository.UserRepository) (*auth.AuthUseCase, *memstore.Identity) {
	t.Helper()
	identity := memstore.NewIdentity(4)
	return auth.NewAuthUseCase(identity, users, jwtCfg, zerolog.Nop()), identity
}

func TestRegisterLoginLogout(t *testing.T) {
	users := memstore.NewUserRepository(memstore.NewStore())
	uc, _ := newAuth(t, users)
	ctx := context.Background()

	reg, err := uc.Register(ctx, dto.RegisterRequest{Email: "  Ana@Obra.MX ", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, "ana@obra.mx", reg.User.Email)
	assert.Equal(t, "ana@obra.mx", reg.User.Name)
	assert.Equal(t, entity.RoleEmpleado, reg.User.Role)
	assert.Equal(t, entity.StatusActive, reg.User.Status)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@obra.mx", Password: "secreto1"})
	require.NoError(t, err)
	require.NotNil(t, login.User.LastActive)

	sess, err := uc.ValidateToken(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.UserID)
	assert.Equal(t, entity.RoleEmpleado, sess.Role)

	require.NoError(t, uc.Logout(ctx, *sess))
	_, err = uc.ValidateToken(ctx, login.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.ValidateToken(ctx, reg.Token)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	again, err := uc.Login(ctx, dto.LoginRequest{Email: "ana@obra.mx", Password: "secreto1"})
	require.NoError(t, err)
	_, err = uc.ValidateToken(ctx, again.Token)
	assert.NoError(t, err)
}

func TestRegister_Validaciones(t *testing.T) {
	uc, _ := newAuth(t, memstore.NewUserRepository(memstore.NewStore()))
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.mx", Password: "123"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: " ", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "a@b.mx", Password: "123456"})
	require.NoError(t, err)
	_, err = uc.Register(ctx, dto.RegisterRequest{Email: "A@B.mx", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// failingUsers rechaza el alta de perfiles.
type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) Create(context.Context, *entity.AppUser) error {
	return errors.New("store no disponible")
}

func TestRegister_FalloDePerfilBorraLaCuenta(t *testing.T) {
	uc, identity := newAuth(t, failingUsers{memstore.NewUserRepository(memstore.NewStore())})
	ctx := context.Background()

	_, err := uc.Register(ctx, dto.RegisterRequest{Email: "a@b.mx", Password: "123456"})
	require.Error(t, err)

	_, err = identity.Authenticate(ctx, "a@b.mx", "123456")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_Rechazos(t *testing.T) {
	users := memstore.NewUserRepository(memstore.NewStore())
	uc, identity := newAuth(t, users)
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "nadie@obra.mx", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	// Cuenta sin perfil.
	_, err = identity.CreateAccount(ctx, "huerfano@obra.mx", "123456")
	require.NoError(t, err)
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "huerfano@obra.mx", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	// Perfil inactivo.
	id, err := identity.CreateAccount(ctx, "baja@obra.mx", "123456")
	require.NoError(t, err)
	require.NoError(t, users.Create(ctx, &entity.AppUser{ID: id.SubjectID, Email: "baja@obra.mx", Role: entity.RoleEditor, Status: entity.StatusInactive}))
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "baja@obra.mx", Password: "123456"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.ValidateToken(ctx, "basura")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
