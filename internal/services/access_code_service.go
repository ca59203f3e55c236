// internal/services/access_code_service.go
package services

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lweber/gameshop-backend/internal/apperrors"
	"github.com/lweber/gameshop-backend/internal/config"
	"github.com/lweber/gameshop-backend/internal/export"
	"github.com/lweber/gameshop-backend/internal/models"
	"github.com/lweber/gameshop-backend/internal/repository"
	"github.com/lweber/gameshop-backend/internal/utils"
)

// AccessCodeService owns the auth principal: codes log in, get a JWT
// and every order they create carries their assignment label.
type AccessCodeService struct {
	codes *repository.Repository[models.AccessCode]
	jwt   config.JWTConfig
}

type AccessCodeClaims struct {
	Code string `json:"code"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Code string `json:"code" validate:"required"`
}

type CreateAccessCodeRequest struct {
	Code       string  `json:"code" validate:"required,min=3,max=100"`
	Discount   float64 `json:"discount" validate:"gte=0,lte=100"`
	AssignedTo string  `json:"assigned_to" validate:"required"`
}

type UpdateAccessCodeRequest struct {
	Discount   *float64 `json:"discount,omitempty" validate:"omitempty,gte=0,lte=100"`
	AssignedTo string   `json:"assigned_to,omitempty"`
}

func NewAccessCodeService(db *gorm.DB, jwtConfig config.JWTConfig) *AccessCodeService {
	return &AccessCodeService{
		codes: repository.New[models.AccessCode](db),
		jwt:   jwtConfig,
	}
}

// Login exchanges a valid access code for a signed session token.
func (s *AccessCodeService) Login(ctx context.Context, req *LoginRequest) (string, *models.AccessCode, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return "", nil, apperrors.Validation(err.Error())
	}

	code, err := s.codes.Find(ctx, repository.AccessCodeFilter{Code: req.Code})
	if err != nil {
		return "", nil, err
	}
	if code == nil {
		return "", nil, apperrors.Auth("Invalid access code")
	}

	claims := AccessCodeClaims{
		Code: code.Code,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   code.ID.String(),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(s.jwt.TokenTTL) * time.Hour)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwt.SecretKey))
	if err != nil {
		return "", nil, apperrors.Internal("failed to sign token", err)
	}

	return token, code, nil
}

// VerifyToken parses the session token and re-reads the code so revoked
// codes lose access immediately.
func (s *AccessCodeService) VerifyToken(ctx context.Context, tokenString string) (*models.AccessCode, error) {
	claims := &AccessCodeClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwt.SecretKey), nil
	})
	if err != nil || !token.Valid {
		return nil, apperrors.Auth("Invalid or expired token")
	}

	code, err := s.codes.Find(ctx, repository.AccessCodeFilter{Code: claims.Code})
	if err != nil {
		return nil, err
	}
	if code == nil {
		return nil, apperrors.Auth("Invalid access code")
	}

	return code, nil
}

func (s *AccessCodeService) CreateAccessCode(ctx context.Context, req *CreateAccessCodeRequest) (*models.AccessCode, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	code := &models.AccessCode{
		Code:       req.Code,
		Discount:   req.Discount,
		AssignedTo: req.AssignedTo,
	}
	if err := s.codes.Create(ctx, code); err != nil {
		return nil, err
	}

	return code, nil
}

func (s *AccessCodeService) GetAccessCode(ctx context.Context, id uuid.UUID) (*models.AccessCode, error) {
	return s.codes.GetByID(ctx, id)
}

func (s *AccessCodeService) UpdateAccessCode(ctx context.Context, id uuid.UUID, req *UpdateAccessCodeRequest) (*models.AccessCode, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, apperrors.Validation(err.Error())
	}

	updates := make(map[string]interface{})
	if req.Discount != nil {
		updates["discount"] = *req.Discount
	}
	if req.AssignedTo != "" {
		updates["assigned_to"] = req.AssignedTo
	}

	if len(updates) > 0 {
		if err := s.codes.Update(ctx, id, updates); err != nil {
			return nil, err
		}
	}

	return s.codes.GetByID(ctx, id)
}

func (s *AccessCodeService) DeleteAccessCode(ctx context.Context, id uuid.UUID) error {
	return s.codes.Delete(ctx, id)
}

func (s *AccessCodeService) SearchAccessCodes(ctx context.Context, filter repository.AccessCodeFilter, q repository.PageQuery) (*repository.PageResult[models.AccessCode], error) {
	return s.codes.PaginatedSearch(ctx, filter, q)
}

func (s *AccessCodeService) ExportAccessCodes(ctx context.Context, format export.Format, filter repository.AccessCodeFilter, sink export.Sink) error {
	codes, err := s.codes.Search(ctx, filter, repository.ListQuery{OrderBy: "created_at asc"})
	if err != nil {
		return err
	}

	return export.Export(format, codes, export.Options{EntityName: "access_codes"}, sink)
}
