package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/moviplay/user-service/internal/config"
	"github.com/moviplay/user-service/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserService resolves identities: given a set of identifiers it decides
// whether a request refers to an existing user, multiple conflicting
// users, or a new one, and merges accordingly.
type UserService struct {
	db  *gorm.DB
	cfg *config.Config
}

func NewUserService(db *gorm.DB, cfg *config.Config) *UserService {
	return &UserService{db: db, cfg: cfg}
}

// ResolveAndMerge matches the supplied identifiers disjunctively against
// all users inside one transaction. Zero matches creates a user, exactly
// one merges the supplied fields into it, two or more fail with
// IdentityCollisionError and leave everything untouched.
//
// A duplicate-key failure means a concurrent resolve claimed one of the
// identifiers between our read and our write; the resolution is retried
// once in a fresh transaction, where the new row will be found and merged.
func (s *UserService) ResolveAndMerge(ctx context.Context, ids Identifiers) (*models.User, error) {
	supplied := ids.Supplied()
	if len(supplied) == 0 {
		return nil, ErrNoIdentifiers
	}

	user, err := s.resolveOnce(ctx, supplied)
	if isUniqueViolation(err) {
		user, err = s.resolveOnce(ctx, supplied)
	}
	if err != nil {
		return nil, classifyStorage(err)
	}
	return user, nil
}

func (s *UserService) resolveOnce(ctx context.Context, supplied Identifiers) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conds := make([]string, 0, len(supplied))
		args := make([]interface{}, 0, len(supplied))
		for _, id := range supplied {
			conds = append(conds, string(id.Field)+" = ?")
			args = append(args, id.Value)
		}

		var matchIDs []int64
		if err := tx.Model(&models.User{}).
			Distinct("id").
			Where(strings.Join(conds, " OR "), args...).
			Order("id").
			Pluck("id", &matchIDs).Error; err != nil {
			return err
		}

		switch {
		case len(matchIDs) > 1:
			return &IdentityCollisionError{UserIDs: matchIDs}

		case len(matchIDs) == 1:
			updates := make(map[string]interface{}, len(supplied))
			for _, id := range supplied {
				updates[string(id.Field)] = id.Value
			}
			if err := tx.Model(&models.User{}).
				Where("id = ?", matchIDs[0]).
				Updates(updates).Error; err != nil {
				return err
			}
			return tx.First(&user, matchIDs[0]).Error

		default:
			for _, id := range supplied {
				id.applyTo(&user)
			}
			return tx.Create(&user).Error
		}
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Get fetches a user by id.
func (s *UserService) Get(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, classifyStorage(err)
	}
	return &user, nil
}

// Delete removes a user and all of its profiles in one transaction.
func (s *UserService) Delete(ctx context.Context, id int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.Select("id").First(&user, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&models.Profile{}).Error; err != nil {
			return err
		}
		return tx.Delete(&user).Error
	})
	return classifyStorage(err)
}

// SetPassword stores a bcrypt hash for the user. This is the only way a
// password hash is ever written.
func (s *UserService) SetPassword(ctx context.Context, id int64, password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	res := s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("password_hash", string(hash))
	if res.Error != nil {
		return classifyStorage(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// AccessToken issues a short-lived HS256 token for the resolved user.
func (s *UserService) AccessToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"sub":      strconv.FormatInt(user.ID, 10),
		"is_admin": user.IsAdmin,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
