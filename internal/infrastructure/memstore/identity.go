package memstore

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/almacen-api/internal/application/auth"
	"github.com/jhoicas/almacen-api/internal/domain"
)

var _ auth.IdentityProvider = (*Identity)(nil)

type account struct {
	id      string
	email   string
	hash    []byte
	version int
}

// Identity proveedor de credenciales en memoria con hashes bcrypt.
type Identity struct {
	mu      sync.RWMutex
	byEmail map[string]*account
	byID    map[string]*account
	cost    int
}

// NewIdentity crea el proveedor. cost <= 0 usa bcrypt.DefaultCost.
func NewIdentity(cost int) *Identity {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	return &Identity{byEmail: map[string]*account{}, byID: map[string]*account{}, cost: cost}
}

func (p *Identity) Authenticate(ctx context.Context, email, password string) (*auth.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p.mu.RLock()
	acc, ok := p.byEmail[strings.ToLower(email)]
	var id string
	var hash []byte
	var version int
	if ok {
		id, hash, version = acc.id, acc.hash, acc.version
	}
	p.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(hash, []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &auth.Identity{SubjectID: id, SessionVersion: version}, nil
}

func (p *Identity) CreateAccount(ctx context.Context, email, password string) (*auth.Identity, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), p.cost)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(email)
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.byEmail[email]; ok {
		return nil, domain.ErrEmailAlreadyExists
	}
	acc := &account{id: uuid.New().String(), email: email, hash: hash}
	p.byEmail[email] = acc
	p.byID[acc.id] = acc
	return &auth.Identity{SubjectID: acc.id}, nil
}

func (p *Identity) EndSession(ctx context.Context, subjectID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.byID[subjectID]
	if !ok {
		return domain.ErrUserNotFound
	}
	acc.version++
	return nil
}

func (p *Identity) SessionVersion(ctx context.Context, subjectID string) (int, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	acc, ok := p.byID[subjectID]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	return acc.version, nil
}

func (p *Identity) DeleteAccount(ctx context.Context, subjectID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	acc, ok := p.byID[subjectID]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(p.byID, subjectID)
	delete(p.byEmail, acc.email)
	return nil
}
