package auth

import "context"

// Identity resultado de autenticar o crear una cuenta.
type Identity struct {
	SubjectID      string
	SessionVersion int
}

// IdentityProvider gestiona credenciales. Es independiente del perfil AppUser: el subject id
// se usa como ID del perfil.
type IdentityProvider interface {
	// Authenticate devuelve domain.ErrUnauthorized si email o password no coinciden.
	Authenticate(ctx context.Context, email, password string) (*Identity, error)
	// CreateAccount devuelve domain.ErrEmailAlreadyExists si el email ya tiene cuenta.
	// No inicia sesión ni afecta la sesión de quien la invoca.
	CreateAccount(ctx context.Context, email, password string) (*Identity, error)
	// EndSession incrementa la versión de sesión; los tokens anteriores dejan de ser válidos.
	EndSession(ctx context.Context, subjectID string) error
	SessionVersion(ctx context.Context, subjectID string) (int, error)
	DeleteAccount(ctx context.Context, subjectID string) error
}
