package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/access"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// WorkerUseCase CRUD de trabajadores (personas que retiran material).
type WorkerUseCase struct {
	repo repository.WorkerRepository
}

// NewWorkerUseCase construye el caso de uso.
func NewWorkerUseCase(repo repository.WorkerRepository) *WorkerUseCase {
	return &WorkerUseCase{repo: repo}
}

func normalizeWorker(in *dto.WorkerRequest) error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	if in.Role == "" {
		in.Role = entity.WorkerRoleOperario
	}
	if in.Status == "" {
		in.Status = entity.StatusActive
	}
	if !entity.ValidStatus(in.Status) {
		return domain.ErrInvalidInput
	}
	return nil
}

// Create da de alta un trabajador.
func (uc *WorkerUseCase) Create(ctx context.Context, in dto.WorkerRequest) (*dto.WorkerResponse, error) {
	if err := normalizeWorker(&in); err != nil {
		return nil, err
	}
	w := &entity.Worker{
		ID:         uuid.New().String(),
		Name:       in.Name,
		Role:       in.Role,
		Status:     in.Status,
		EmployeeID: in.EmployeeID,
		CreatedAt:  time.Now(),
	}
	if err := uc.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	resp := toWorkerResponse(w)
	return &resp, nil
}

// Update reemplaza los datos del trabajador.
func (uc *WorkerUseCase) Update(ctx context.Context, id string, in dto.WorkerRequest) (*dto.WorkerResponse, error) {
	if err := normalizeWorker(&in); err != nil {
		return nil, err
	}
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, domain.ErrNotFound
	}
	w.Name, w.Role, w.Status, w.EmployeeID = in.Name, in.Role, in.Status, in.EmployeeID
	if err := uc.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	resp := toWorkerResponse(w)
	return &resp, nil
}

// List filtra por texto (nombre o número de empleado), rol y estado.
func (uc *WorkerUseCase) List(ctx context.Context, f dto.WorkerFilter) ([]dto.WorkerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]dto.WorkerResponse, 0, len(list))
	for _, w := range list {
		if search != "" && !strings.Contains(strings.ToLower(w.Name), search) && !strings.Contains(strings.ToLower(w.EmployeeID), search) {
			continue
		}
		if f.Role != "" && w.Role != f.Role {
			continue
		}
		if f.Status != "" && w.Status != f.Status {
			continue
		}
		out = append(out, toWorkerResponse(w))
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete elimina un trabajador. Admin o Editor.
func (uc *WorkerUseCase) Delete(ctx context.Context, sess entity.Session, id string) error {
	if !access.CanDelete(sess.Role, access.TargetWorker) {
		return domain.ErrForbidden
	}
	w, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if w == nil {
		return domain.ErrNotFound
	}
	return uc.repo.Delete(ctx, id)
}

func toWorkerResponse(w *entity.Worker) dto.WorkerResponse {
	return dto.WorkerResponse{
		ID:         w.ID,
		Name:       w.Name,
		Role:       w.Role,
		Status:     w.Status,
		EmployeeID: w.EmployeeID,
		LastActive: w.LastActive,
		CreatedAt:  w.CreatedAt,
	}
}
