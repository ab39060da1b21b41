package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/AimaKoraki/Inventory-management-system/internal/application/dto"
	"github.com/AimaKoraki/Inventory-management-system/internal/application/usecase"
	"github.com/AimaKoraki/Inventory-management-system/internal/apptest"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain"
	"github.com/AimaKoraki/Inventory-management-system/internal/domain/entity"
)

func newUserUC(t *testing.T) (*usecase.UserUseCase, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	return usecase.NewUserUseCase(apptest.NewUserRepo(store)), store
}

func TestUserCreate_HasheaLaContrasena(t *testing.T) {
	uc, store := newUserUC(t)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{
		Username: "ana",
		Password: "secreto-123",
		FullName: "Ana Pérez",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleUser, out.Role, "sin rol explícito se asigna user")
	assert.True(t, out.IsActive)

	stored := store.User(out.ID)
	require.NotNil(t, stored)
	assert.NotEqual(t, "secreto-123", stored.PasswordHash, "la contraseña nunca se guarda en claro")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("secreto-123")))
}

func TestUserCreate_UsernameDuplicado(t *testing.T) {
	uc, _ := newUserUC(t)

	_, err := uc.Create(context.Background(), dto.CreateUserRequest{Username: "ana", Password: "secreto-123", FullName: "Ana"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateUserRequest{Username: "ana", Password: "otra-clave-9", FullName: "Otra Ana"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestUserUpdate_RolYEstado(t *testing.T) {
	uc, _ := newUserUC(t)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{Username: "ana", Password: "secreto-123", FullName: "Ana"})
	require.NoError(t, err)

	inactive := false
	updated, err := uc.Update(context.Background(), out.ID, dto.UpdateUserRequest{
		Role:     strPtr(entity.RoleManager),
		IsActive: &inactive,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, updated.Role)
	assert.False(t, updated.IsActive)
}

func TestUserChangePassword_VerificaLaAnterior(t *testing.T) {
	uc, store := newUserUC(t)

	out, err := uc.Create(context.Background(), dto.CreateUserRequest{Username: "ana", Password: "secreto-123", FullName: "Ana"})
	require.NoError(t, err)

	ctx := context.Background()
	err = uc.ChangePassword(ctx, out.ID, dto.ChangePasswordRequest{OldPassword: "equivocada", NewPassword: "clave-nueva-1"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	require.NoError(t, uc.ChangePassword(ctx, out.ID, dto.ChangePasswordRequest{OldPassword: "secreto-123", NewPassword: "clave-nueva-1"}))
	stored := store.User(out.ID)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("clave-nueva-1")))
}

func TestUserGetByID_Inexistente(t *testing.T) {
	uc, _ := newUserUC(t)

	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
