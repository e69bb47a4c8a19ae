package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/access"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/rs/zerolog"
)

// UserUseCase administración de usuarios del sistema (AppUser).
type UserUseCase struct {
	repo     repository.UserRepository
	identity auth.IdentityProvider
	log      zerolog.Logger
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository, identity auth.IdentityProvider, log zerolog.Logger) *UserUseCase {
	return &UserUseCase{repo: repo, identity: identity, log: log}
}

// List devuelve todos los usuarios. Visible para Admin y Editor.
func (uc *UserUseCase) List(ctx context.Context, sess entity.Session) ([]dto.UserResponse, error) {
	if !access.CanView(sess.Role, access.ViewUsers) {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, auth.ToUserResponse(u))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return out, nil
}

// Create crea la cuenta en el proveedor de identidad y el perfil con el mismo ID. Solo Admin.
// La sesión del Admin no cambia.
func (uc *UserUseCase) Create(ctx context.Context, sess entity.Session, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	if !access.CanManageUsers(sess.Role) {
		return nil, domain.ErrForbidden
	}
	email := auth.NormalizeEmail(in.Email)
	if email == "" || len(in.Password) < auth.MinPasswordLength {
		return nil, domain.ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = entity.RoleEmpleado
	}
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if !entity.ValidRole(in.Role) || !entity.ValidStatus(in.Status) {
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
	user := &entity.AppUser{
		ID:         id.SubjectID,
		Name:       name,
		Email:      email,
		Role:       in.Role,
		Status:     in.Status,
		Phone:      in.Phone,
		EmployeeID: in.EmployeeID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		if derr := uc.identity.DeleteAccount(ctx, id.SubjectID); derr != nil {
			uc.log.Error().Err(derr).Str("user_id", user.ID).Msg("cuenta sin perfil tras fallo de alta")
		}
		return nil, fmt.Errorf("crear perfil %s: %w", user.ID, err)
	}
	uc.log.Info().Str("user_id", user.ID).Str("role", user.Role).Str("by", sess.Email).Msg("usuario creado")
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// Update modifica nombre, rol, estado y datos de contacto. Solo Admin.
func (uc *UserUseCase) Update(ctx context.Context, sess entity.Session, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	if !access.CanManageUsers(sess.Role) {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		user.Name = strings.TrimSpace(*in.Name)
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *in.Role
	}
	if in.Status != nil {
		if !entity.ValidStatus(*in.Status) {
			return nil, domain.ErrInvalidInput
		}
		user.Status = *in.Status
	}
	if in.Phone != nil {
		user.Phone = *in.Phone
	}
	if in.EmployeeID != nil {
		user.EmployeeID = *in.EmployeeID
	}
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := auth.ToUserResponse(user)
	return &resp, nil
}

// Delete elimina perfil y cuenta. Solo Admin y nunca sobre sí mismo.
func (uc *UserUseCase) Delete(ctx context.Context, sess entity.Session, id string) error {
	if !access.CanDelete(sess.Role, access.TargetAppUser) {
		return domain.ErrForbidden
	}
	if id == sess.UserID {
		return domain.ErrSelfDelete
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	if err := uc.identity.DeleteAccount(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("user_id", id).Msg("perfil eliminado, cuenta de identidad pendiente")
	}
	uc.log.Info().Str("user_id", id).Str("by", sess.Email).Msg("usuario eliminado")
	return nil
}

// EnsureAdmin crea la cuenta Admin inicial si no existe un perfil con ese email.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, email, password string) (bool, error) {
	email = auth.NormalizeEmail(email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	system := entity.Session{Email: "system", Role: entity.RoleAdmin}
	if _, err := uc.Create(ctx, system, dto.CreateUserRequest{
		Name:     "Administrador",
		Email:    email,
		Password: password,
		Role:     entity.RoleAdmin,
	}); err != nil {
		return false, err
	}
	return true, nil
}
