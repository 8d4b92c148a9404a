package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/sitebuilder-api/internal/application/dto"
	"github.com/jhoicas/sitebuilder-api/internal/domain"
	"github.com/jhoicas/sitebuilder-api/internal/domain/entity"
	"github.com/jhoicas/sitebuilder-api/internal/domain/repository"
	"github.com/jhoicas/sitebuilder-api/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

// JWTConfig parámetros de emisión de tokens del dominio user.
type JWTConfig struct {
	Secret  string
	ExpDays int
	Issuer  string
}

// dummyHash hash bcrypt de relleno: cuando el email no existe se compara igual,
// para que el tiempo de respuesta no distinga "email desconocido" de "password malo".
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("sitebuilder-dummy"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de autenticación pública: signup, login y perfil propio.
type AuthUseCase struct {
	userRepo repository.UserRepository
	siteRepo repository.SiteRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, siteRepo repository.SiteRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, siteRepo: siteRepo, jwtCfg: jwtCfg}
}

// Signup crea una cuenta: hashea el password con bcrypt, persiste con status=active y
// emite un token del dominio user. Devuelve ErrEmailAlreadyExists si el email ya está
// registrado (match exacto case-sensitive; el UNIQUE del store cubre la carrera).
func (uc *AuthUseCase) Signup(ctx context.Context, in dto.SignupRequest) (*dto.AuthResponse, error) {
	existing, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		Name:         in.Name,
		Status:       entity.UserStatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: *toUserResponse(user), Token: token}, nil
}

// Login verifica email/password y emite un token del dominio user.
// Email desconocido y password incorrecto devuelven el MISMO error (anti-enumeración);
// una cuenta suspendida se rechaza solo DESPUÉS de verificar el password.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		// Comparación de relleno para igualar el tiempo con el caso "password malo".
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.IsActive() {
		return nil, domain.ErrAccountSuspended
	}
	token, err := uc.issueToken(user)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: *toUserResponse(user), Token: token}, nil
}

// Me devuelve el perfil del usuario autenticado con su conteo de sitios poseídos.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	count, err := uc.siteRepo.CountByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &dto.MeResponse{User: dto.MeUser{
		UserResponse: *toUserResponse(user),
		SitesCount:   count,
	}}, nil
}

func (uc *AuthUseCase) issueToken(u *entity.User) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, jwt.Identity{
		UserID: u.ID,
		Email:  u.Email,
		Name:   u.Name,
	}, uc.jwtCfg.Issuer, uc.jwtCfg.ExpDays)
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
