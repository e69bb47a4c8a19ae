package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/pkg/jwt"
	"github.com/rs/zerolog"
)

// MinPasswordLength longitud mínima aceptada al crear cuentas.
const MinPasswordLength = 6

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login, auto-registro, logout y validación de tokens.
type AuthUseCase struct {
	identity IdentityProvider
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
	log      zerolog.Logger
	now      func() time.Time
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(identity IdentityProvider, userRepo repository.UserRepository, jwtCfg JWTConfig, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{identity: identity, userRepo: userRepo, jwtCfg: jwtCfg, log: log, now: time.Now}
}

// Login verifica credenciales, exige perfil Active y emite el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	id, err := uc.identity.Authenticate(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByID(ctx, id.SubjectID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if user.Status != entity.StatusActive {
		return nil, domain.ErrForbidden
	}

	now := uc.now()
	user.LastActive = &now
	if err := uc.userRepo.Update(ctx, user); err != nil {
		uc.log.Warn().Err(err).Str("user_id", user.ID).Msg("no se pudo actualizar last_active")
	}
	return uc.issue(user, id.SessionVersion)
}

// Register auto-registro: crea la cuenta y un perfil Empleado activo, y deja la sesión iniciada.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.LoginResponse, error) {
	email := NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	id, err := uc.identity.CreateAccount(ctx, email, in.Password)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email
	}
	now := uc.now()
	user := &entity.AppUser{
		ID:         id.SubjectID,
		Name:       name,
		Email:      email,
		Role:       entity.RoleEmpleado,
		Status:     entity.StatusActive,
		LastActive: &now,
		CreatedAt:  now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		if derr := uc.identity.DeleteAccount(ctx, id.SubjectID); derr != nil {
			uc.log.Error().Err(derr).Str("user_id", user.ID).Msg("cuenta sin perfil tras fallo de registro")
		}
		return nil, fmt.Errorf("crear perfil %s: %w", user.ID, err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("usuario registrado")
	return uc.issue(user, id.SessionVersion)
}

// Logout invalida los tokens vigentes del usuario.
func (uc *AuthUseCase) Logout(ctx context.Context, sess entity.Session) error {
	if sess.UserID == "" {
		return domain.ErrUnauthorized
	}
	return uc.identity.EndSession(ctx, sess.UserID)
}

// ValidateToken verifica firma, expiración y versión de sesión, y devuelve la sesión.
func (uc *AuthUseCase) ValidateToken(ctx context.Context, token string) (*entity.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	version, err := uc.identity.SessionVersion(ctx, claims.UserID)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	if version != claims.SessionVersion {
		return nil, domain.ErrUnauthorized
	}
	return &entity.Session{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}, nil
}

func (uc *AuthUseCase) issue(user *entity.AppUser, sessionVersion int) (*dto.LoginResponse, error) {
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.TokenInput{
		UserID:         user.ID,
		Email:          user.Email,
		Role:           user.Role,
		SessionVersion: sessionVersion,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: ToUserResponse(user)}, nil
}

// NormalizeEmail recorta y pasa a minúsculas.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ToUserResponse mapea el perfil a su salida HTTP.
func ToUserResponse(u *entity.AppUser) dto.UserResponse {
	return dto.UserResponse{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Status:     u.Status,
		Phone:      u.Phone,
		EmployeeID: u.EmployeeID,
		LastActive: u.LastActive,
		CreatedAt:  u.CreatedAt,
	}
}
