package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/repository"
	"github.com/AimaKoraki/Inventory-management-system/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase caso de uso de autenticación: login con bcrypt + emisión de JWT.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Login verifica username/password, actualiza la fecha de último acceso y
// genera el JWT. Usuario inexistente, contraseña incorrecta y cuenta inactiva
// devuelven el mismo ErrUnauthorized: no se distingue hacia afuera.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(in.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	now := time.Now().UTC()
	// Transacción propia y menor: si falla no invalida el login.
	if err := uc.userRepo.UpdateLastLogin(user.ID, now); err == nil {
		user.LastLoginDate = &now
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User: dto.UserResponse{
			ID:            user.ID,
			Username:      user.Username,
			FullName:      user.FullName,
			Email:         user.Email,
			Role:          user.Role,
			IsActive:      user.IsActive,
			LastLoginDate: user.LastLoginDate,
			CreatedAt:     user.CreatedAt,
			UpdatedAt:     user.UpdatedAt,
		},
	}, nil
}
