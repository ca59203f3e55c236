// internal/services/access_code_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lweber/gameshop-backend/internal/apperrors"
	"github.com/lweber/gameshop-backend/internal/config"
	"github.com/lweber/gameshop-backend/internal/models"
	"github.com/lweber/gameshop-backend/internal/repository"
)

func newAccessCodeService(t *testing.T) *AccessCodeService {
	t.Helper()

	db := newTestDB(t)
	service := NewAccessCodeService(db, config.JWTConfig{SecretKey: "test-secret", TokenTTL: 1})

	require.NoError(t, db.Create(&models.AccessCode{Code: "DEMO", Discount: 10, AssignedTo: "retail"}).Error)
	return service
}

func TestLoginWithValidCode(t *testing.T) {
	service := newAccessCodeService(t)
	ctx := context.Background()

	token, code, err := service.Login(ctx, &LoginRequest{Code: "DEMO"})
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.Equal(t, "DEMO", code.Code)
	assert.Equal(t, "retail", code.AssignedTo)

	verified, err := service.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, code.ID, verified.ID)
}

func TestLoginWithUnknownCode(t *testing.T) {
	service := newAccessCodeService(t)

	_, _, err := service.Login(context.Background(), &LoginRequest{Code: "NOPE"})
	require.Error(t, err)
	assert.Equal(t, "Invalid access code", err.Error())
	assert.Equal(t, 401, apperrors.StatusOf(err))
}

func TestVerifyGarbageToken(t *testing.T) {
	service := newAccessCodeService(t)

	_, err := service.VerifyToken(context.Background(), "not-a-token")
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.StatusOf(err))
}

func TestVerifyTokenForDeletedCode(t *testing.T) {
	service := newAccessCodeService(t)
	ctx := context.Background()

	token, code, err := service.Login(ctx, &LoginRequest{Code: "DEMO"})
	require.NoError(t, err)

	require.NoError(t, service.DeleteAccessCode(ctx, code.ID))

	_, err = service.VerifyToken(ctx, token)
	require.Error(t, err)
	assert.Equal(t, 401, apperrors.StatusOf(err))
}

func TestCreateDuplicateAccessCode(t *testing.T) {
	service := newAccessCodeService(t)

	_, err := service.CreateAccessCode(context.Background(), &CreateAccessCodeRequest{
		Code:       "DEMO",
		Discount:   5,
		AssignedTo: "wholesale",
	})
	require.Error(t, err)
	assert.Equal(t, 409, apperrors.StatusOf(err))
}

func TestUpdateAndSearchAccessCodes(t *testing.T) {
	service := newAccessCodeService(t)
	ctx := context.Background()

	created, err := service.CreateAccessCode(ctx, &CreateAccessCodeRequest{
		Code:       "SUMMER",
		Discount:   15,
		AssignedTo: "campaign",
	})
	require.NoError(t, err)

	discount := 20.0
	updated, err := service.UpdateAccessCode(ctx, created.ID, &UpdateAccessCodeRequest{Discount: &discount})
	require.NoError(t, err)
	assert.Equal(t, 20.0, updated.Discount)

	result, err := service.SearchAccessCodes(ctx, repository.AccessCodeFilter{Code: "sum"}, repository.PageQuery{Page: 1, Take: 10})
	require.NoError(t, err)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "SUMMER", result.Records[0].Code)
	assert.Equal(t, int64(2), result.TotalCount)
}
