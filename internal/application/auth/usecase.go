package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/resto-api/internal/domain"
	"github.com/jhoicas/resto-api/internal/domain/entity"
	"github.com/jhoicas/resto-api/internal/domain/repository"
	"github.com/jhoicas/resto-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner transacción para registro (usuario + perfil co-propiedad).
type TxRunner interface {
	RunAccess(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		profileRepo repository.UserProfileRepository,
		roleRepo repository.RoleRepository,
		permRepo repository.PermissionRepository,
	) error) error
}

// UseCase casos de uso de autenticación: registro y login.
type UseCase struct {
	txRunner       TxRunner
	userRepo       repository.UserRepository
	restaurantRepo repository.RestaurantRepository
	roleRepo       repository.RoleRepository
	jwtCfg         JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	txRunner TxRunner,
	userRepo repository.UserRepository,
	restaurantRepo repository.RestaurantRepository,
	roleRepo repository.RoleRepository,
	jwtCfg JWTConfig,
) *UseCase {
	return &UseCase{
		txRunner:       txRunner,
		userRepo:       userRepo,
		restaurantRepo: restaurantRepo,
		roleRepo:       roleRepo,
		jwtCfg:         jwtCfg,
	}
}

// RegisterInput datos de registro.
type RegisterInput struct {
	RestaurantID string
	RoleID       string
	Name         string
	Email        string
	Password     string
	Phone        string
	Address      string
}

// Register crea el usuario con su perfil en una transacción. El email es
// único global contando eliminados: un duplicado tombstoned sugiere restaurar.
func (uc *UseCase) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	if in.Email == "" || in.Password == "" || in.RestaurantID == "" || in.RoleID == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.IsDeleted() {
			return nil, domain.ErrDuplicateDeleted
		}
		return nil, domain.ErrDuplicate
	}
	restaurant, err := uc.restaurantRepo.GetByID(ctx, in.RestaurantID)
	if err != nil {
		return nil, err
	}
	if restaurant == nil {
		return nil, domain.ErrNotFound
	}
	role, err := uc.roleRepo.GetByID(ctx, in.RoleID)
	if err != nil {
		return nil, err
	}
	if role == nil {
		return nil, domain.ErrNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.Name
	if name == "" {
		name = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		RestaurantID: in.RestaurantID,
		RoleID:       in.RoleID,
		Name:         name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	err = uc.txRunner.RunAccess(ctx, func(
		userRepo repository.UserRepository,
		profileRepo repository.UserProfileRepository,
		_ repository.RoleRepository,
		_ repository.PermissionRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		profile := &entity.UserProfile{
			ID:        uuid.New().String(),
			UserID:    user.ID,
			Phone:     in.Phone,
			Address:   in.Address,
			CreatedAt: now,
			UpdatedAt: now,
		}
		return profileRepo.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// LoginResult token emitido y usuario autenticado.
type LoginResult struct {
	Token string
	User  *entity.User
	Role  *entity.Role
}

// Login verifica email/password, exige usuario activo y no eliminado, y emite
// el JWT con el tenant y el rol.
func (uc *UseCase) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil || user.IsDeleted() {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Active {
		return nil, domain.ErrForbidden
	}
	role, err := uc.roleRepo.GetByID(ctx, user.RoleID)
	if err != nil {
		return nil, err
	}
	roleName := ""
	if role != nil {
		roleName = role.Name
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.RestaurantID, roleName, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Token: token, User: user, Role: role}, nil
}
