package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stock-ledger-api/internal/application/dto"
	"github.com/jhoicas/stock-ledger-api/internal/domain"
	"github.com/jhoicas/stock-ledger-api/internal/domain/entity"
	"github.com/jhoicas/stock-ledger-api/internal/domain/repository"
	pkgjwt "github.com/jhoicas/stock-ledger-api/pkg/jwt"
)

// UserUseCase casos de uso del directorio de usuarios. No emite tokens ni guarda credenciales.
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

// Create agrega un usuario activo. Rol vacío = Staff; email repetido = ErrDuplicate.
func (uc *UserUseCase) Create(ctx context.Context, in dto.UserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	existing, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	role := in.Role
	if role == "" {
		role = pkgjwt.RoleStaff
	}
	now := uc.now()
	user := &entity.User{
		ID:        uuid.New().String(),
		FullName:  strings.TrimSpace(in.FullName),
		Email:     email,
		Phone:     strings.TrimSpace(in.Phone),
		Role:      role,
		Status:    entity.UserActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// Update reemplaza nombre, email, teléfono y rol. Rol vacío conserva el actual.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UserRequest) (*dto.UserResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, err
	}
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	email := normalizeEmail(in.Email)
	other, err := uc.repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if other != nil && other.ID != user.ID {
		return nil, domain.ErrDuplicate
	}
	user.FullName = strings.TrimSpace(in.FullName)
	user.Email = email
	user.Phone = strings.TrimSpace(in.Phone)
	if in.Role != "" {
		user.Role = in.Role
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// ToggleStatus alterna Active <-> Disabled.
func (uc *UserUseCase) ToggleStatus(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Status == entity.UserActive {
		user.Status = entity.UserDisabled
	} else {
		user.Status = entity.UserActive
	}
	user.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// List aplica los filtros a los items; las estadísticas cubren el directorio completo.
func (uc *UserUseCase) List(ctx context.Context, q dto.UserQuery) (*dto.UserListResponse, error) {
	if err := dto.Validate(q); err != nil {
		return nil, err
	}
	all, err := uc.repo.List(ctx, repository.UserFilter{})
	if err != nil {
		return nil, err
	}
	var stats dto.UserStats
	for _, u := range all {
		stats.Total++
		if u.Status == entity.UserActive {
			stats.Active++
		} else {
			stats.Disabled++
		}
		if u.Role == pkgjwt.RoleAdmin {
			stats.Admins++
		}
	}
	filtered := all
	if q.Search != "" || q.Role != "" || q.Status != "" {
		filtered, err = uc.repo.List(ctx, repository.UserFilter{
			Search: strings.TrimSpace(q.Search), Role: q.Role, Status: q.Status,
		})
		if err != nil {
			return nil, err
		}
	}
	items := make([]dto.UserResponse, 0, len(filtered))
	for _, u := range filtered {
		items = append(items, *toUserResponse(u))
	}
	return &dto.UserListResponse{Items: items, Stats: stats}, nil
}

func (uc *UserUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}

func (uc *UserUseCase) get(ctx context.Context, id string) (*entity.User, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
