package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Morymirco/admin.zalama/db/models"
	"github.com/Morymirco/admin.zalama/lengo"
	"github.com/Morymirco/admin.zalama/lib/security"
	"github.com/Morymirco/admin.zalama/lib/tokens"
	"github.com/Morymirco/admin.zalama/notify"
	"github.com/Morymirco/admin.zalama/rabbitmq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/ziflex/lecho/v3"
)

type ZalamaService struct {
	Config              *Config
	DB                  *bun.DB
	Logger              *lecho.Logger
	RemboursementPubSub *Pubsub
	RabbitMQClient      rabbitmq.Client
	LengoClient         lengo.Gateway
	Notifier            notify.Notifier
}

// now returns the current UTC time at second precision so stored timestamps compare
// identically on every dialect.
func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

func (svc *ZalamaService) GenerateToken(ctx context.Context, email, password string) (string, error) {
	var admin models.AdminUser
	if email == "" || password == "" {
		return "", ErrBadAuth
	}
	err := svc.DB.NewSelect().Model(&admin).Where("email = ?", strings.ToLower(email)).Where("actif = ?", true).Limit(1).Scan(ctx)
	if err != nil {
		return "", ErrBadAuth
	}
	if !security.CheckPassword(admin.Password, password) {
		return "", ErrBadAuth
	}
	return tokens.GenerateAccessToken(svc.Config.JWTSecret, svc.Config.JWTAccessTokenExpiry, &admin)
}

func (svc *ZalamaService) CreateAdminUser(ctx context.Context, email, nom, password, role string) (*models.AdminUser, error) {
	hash, err := security.HashPassword(password)
	if err != nil {
		return nil, err
	}
	admin := &models.AdminUser{
		Email:    strings.ToLower(email),
		Nom:      nom,
		Password: hash,
		Role:     role,
		Actif:    true,
	}
	if _, err := svc.DB.NewInsert().Model(admin).Exec(ctx); err != nil {
		return nil, err
	}
	return admin, nil
}

func isUniqueViolation(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isPermissionDenied(err error) bool {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C') == "42501"
	}
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "permission denied")
}

// wrapDBError tags permission failures so callers can tell them apart from other storage errors.
func wrapDBError(err error) error {
	if isPermissionDenied(err) {
		return fmt.Errorf("%w: %v", ErrPermissionDenied, err)
	}
	return err
}
