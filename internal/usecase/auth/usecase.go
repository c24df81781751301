package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	domain "consignado-backend/internal/domain/admin"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const SessionTTL = 7 * 24 * time.Hour

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrWeakSecret         = errors.New("session secret must be at least 16 bytes")
)

type Usecase struct {
	repo   domain.Repository
	secret []byte
	cost   int
	now    func() time.Time
	log    *zap.Logger
}

func NewUsecase(r domain.Repository, secret string, log *zap.Logger) (*Usecase, error) {
	if len(secret) < 16 {
		return nil, ErrWeakSecret
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Usecase{
		repo:   r,
		secret: []byte(secret),
		cost:   bcrypt.DefaultCost,
		now:    time.Now,
		log:    log.Named("auth"),
	}, nil
}

// Login checks the password and issues a signed session token. Unknown
// emails, wrong passwords and inactive accounts look the same to the caller.
func (u *Usecase) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := u.repo.GetByEmail(ctx, email)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)) != nil || !user.IsActive {
		u.log.Info("admin login rejected", zap.String("email", email))
		return nil, ErrInvalidCredentials
	}

	now := u.now().UTC()
	if err := u.repo.TouchLastSignedIn(ctx, user.ID, now); err != nil {
		u.log.Warn("touch last_signed_in", zap.Uint64("admin_id", user.ID), zap.Error(err))
	} else {
		user.LastSignedIn = &now
	}

	exp := now.Add(SessionTTL)
	token, err := u.sign(user, now, exp)
	if err != nil {
		return nil, err
	}
	u.log.Info("admin signed in", zap.Uint64("admin_id", user.ID))
	return &LoginResult{Token: token, ExpiresAt: exp, Admin: toDTO(user)}, nil
}

// Verify parses the session token and returns the admin it belongs to, who
// must still exist and be active.
func (u *Usecase) Verify(ctx context.Context, token string) (*AdminDTO, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(*jwt.Token) (any, error) { return u.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(u.now),
	)
	if err != nil || claims.AdminID == 0 {
		return nil, ErrInvalidSession
	}

	user, err := u.repo.GetByID(ctx, claims.AdminID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidSession
	}
	if err != nil {
		return nil, err
	}
	if !user.IsActive || !strings.EqualFold(user.Email, claims.Email) {
		return nil, ErrInvalidSession
	}
	dto := toDTO(user)
	return &dto, nil
}

// EnsureAdmin creates the configured master admin when it does not exist yet.
// An existing account is left untouched, password included.
func (u *Usecase) EnsureAdmin(ctx context.Context, email, password, name string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		u.log.Warn("master admin not configured; skipping seed")
		return nil
	}
	_, err := u.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	hash, err := u.HashPassword(password)
	if err != nil {
		return err
	}
	if err := u.repo.Create(ctx, &domain.User{Email: email, PasswordHash: hash, Name: name, IsActive: true}); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	u.log.Info("master admin created", zap.String("email", email))
	return nil
}

func (u *Usecase) HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), u.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (u *Usecase) sign(user *domain.User, now, exp time.Time) (string, error) {
	claims := Claims{
		AdminID: user.ID,
		Email:   user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(u.secret)
}

func toDTO(user *domain.User) AdminDTO {
	return AdminDTO{ID: user.ID, Email: user.Email, Name: user.Name, LastSignedIn: user.LastSignedIn}
}
