package services

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/moviplay/user-service/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func TestResolveAndMergeCreatesNewUser(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	user, err := s.ResolveAndMerge(context.Background(), Identifiers{
		{Field: FieldEmail, Value: "ali@example.com"},
		{Field: FieldPhoneNumber, Value: "+998901112233"},
	})
	require.NoError(t, err)

	assert.NotZero(t, user.ID)
	require.NotNil(t, user.Email)
	assert.Equal(t, "ali@example.com", *user.Email)
	require.NotNil(t, user.PhoneNumber)
	assert.Equal(t, "+998901112233", *user.PhoneNumber)
	assert.Nil(t, user.Username)
	assert.Nil(t, user.GoogleID)
	assert.Nil(t, user.AppleID)
	assert.False(t, user.IsAdmin)
}

func TestResolveAndMergeIdempotentConvergence(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())
	ids := Identifiers{{Field: FieldGoogleID, Value: "google-123"}}

	first, err := s.ResolveAndMerge(context.Background(), ids)
	require.NoError(t, err)
	second, err := s.ResolveAndMerge(context.Background(), ids)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestResolveAndMergeMergesSuppliedFieldsOnly(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	existing := models.User{
		Username: strptr("ali"),
		Email:    strptr("ali@example.com"),
	}
	require.NoError(t, db.Create(&existing).Error)

	user, err := s.ResolveAndMerge(context.Background(), Identifiers{
		{Field: FieldEmail, Value: "ali@example.com"},
		{Field: FieldPhoneNumber, Value: "+998901112233"},
	})
	require.NoError(t, err)

	assert.Equal(t, existing.ID, user.ID)
	require.NotNil(t, user.PhoneNumber)
	assert.Equal(t, "+998901112233", *user.PhoneNumber)
	// Omitted field keeps its prior value.
	require.NotNil(t, user.Username)
	assert.Equal(t, "ali", *user.Username)
}

func TestResolveAndMergePreservesAdminFlag(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	existing := models.User{Email: strptr("root@example.com"), IsAdmin: true}
	require.NoError(t, db.Create(&existing).Error)

	user, err := s.ResolveAndMerge(context.Background(), Identifiers{
		{Field: FieldEmail, Value: "root@example.com"},
	})
	require.NoError(t, err)
	assert.True(t, user.IsAdmin)
}

func TestResolveAndMergeCollision(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	a := models.User{Email: strptr("a@example.com")}
	b := models.User{PhoneNumber: strptr("+998900000001")}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	_, err := s.ResolveAndMerge(context.Background(), Identifiers{
		{Field: FieldEmail, Value: "a@example.com"},
		{Field: FieldPhoneNumber, Value: "+998900000001"},
	})

	var collision *IdentityCollisionError
	require.ErrorAs(t, err, &collision)
	assert.ElementsMatch(t, []int64{a.ID, b.ID}, collision.UserIDs)

	// No mutation occurred on either user.
	var aAfter, bAfter models.User
	require.NoError(t, db.First(&aAfter, a.ID).Error)
	require.NoError(t, db.First(&bAfter, b.ID).Error)
	assert.Nil(t, aAfter.PhoneNumber)
	assert.Nil(t, bAfter.Email)
}

func TestResolveAndMergeEmptyStoredFieldNeverMatches(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	existing := models.User{Email: strptr("a@example.com")}
	require.NoError(t, db.Create(&existing).Error)

	// The existing user has no username; supplying one must not match it.
	user, err := s.ResolveAndMerge(context.Background(), Identifiers{
		{Field: FieldUsername, Value: "newcomer"},
	})
	require.NoError(t, err)
	assert.NotEqual(t, existing.ID, user.ID)
}

func TestResolveAndMergeRequiresAnIdentifier(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	_, err := s.ResolveAndMerge(context.Background(), Identifiers{
		{Field: FieldEmail, Value: ""},
	})
	assert.ErrorIs(t, err, ErrNoIdentifiers)
}

// A duplicate-key failure on the insert means a concurrent resolve
// claimed one of the identifiers between our read and our write. A
// single fresh attempt must recover instead of surfacing the conflict.
// The concurrent writer is simulated with a one-shot create hook that
// claims the email right before the service's own insert runs.
func TestResolveAndMergeRetriesOnInsertRace(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	claimed := false
	require.NoError(t, db.Callback().Create().Before("gorm:create").Register("claim_identifier", func(tx *gorm.DB) {
		if claimed {
			return
		}
		if _, ok := tx.Statement.Dest.(*models.User); !ok {
			return
		}
		claimed = true
		now := time.Now()
		if err := tx.Session(&gorm.Session{NewDB: true}).Exec(
			"INSERT INTO users (email, is_admin, created_at, updated_at) VALUES (?, ?, ?, ?)",
			"race@example.com", false, now, now,
		).Error; err != nil {
			tx.AddError(err)
		}
	}))

	user, err := s.ResolveAndMerge(context.Background(), Identifiers{
		{Field: FieldEmail, Value: "race@example.com"},
	})
	require.NoError(t, err)
	require.True(t, claimed)
	require.NotNil(t, user.Email)
	assert.Equal(t, "race@example.com", *user.Email)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", "race@example.com").Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestGetUser(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	existing := models.User{Email: strptr("a@example.com")}
	require.NoError(t, db.Create(&existing).Error)

	user, err := s.Get(context.Background(), existing.ID)
	require.NoError(t, err)
	assert.Equal(t, existing.ID, user.ID)

	_, err = s.Get(context.Background(), existing.ID+1000)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestSetPassword(t *testing.T) {
	db := newTestDB(t)
	s := NewUserService(db, newTestConfig())

	existing := models.User{Email: strptr("a@example.com")}
	require.NoError(t, db.Create(&existing).Error)

	require.NoError(t, s.SetPassword(context.Background(), existing.ID, "correct horse"))

	var after models.User
	require.NoError(t, db.First(&after, existing.ID).Error)
	require.NotNil(t, after.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(*after.PasswordHash), []byte("correct horse")))

	err := s.SetPassword(context.Background(), existing.ID+1000, "whatever!")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestDeleteUserCascadesProfiles(t *testing.T) {
	db := newTestDB(t)
	users := NewUserService(db, newTestConfig())
	profiles := NewProfileService(db)

	owner := models.User{Email: strptr("a@example.com")}
	require.NoError(t, db.Create(&owner).Error)
	_, err := profiles.Create(context.Background(), owner.ID, CreateProfileInput{Name: "Main"})
	require.NoError(t, err)
	_, err = profiles.Create(context.Background(), owner.ID, CreateProfileInput{Name: "Kids", IsKids: true})
	require.NoError(t, err)

	require.NoError(t, users.Delete(context.Background(), owner.ID))

	_, err = users.Get(context.Background(), owner.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	remaining, err := profiles.List(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	// Deleting again reports not found.
	assert.ErrorIs(t, users.Delete(context.Background(), owner.ID), ErrUserNotFound)
}

func TestAccessTokenClaims(t *testing.T) {
	db := newTestDB(t)
	cfg := newTestConfig()
	s := NewUserService(db, cfg)

	user := models.User{Email: strptr("a@example.com"), IsAdmin: true}
	require.NoError(t, db.Create(&user).Error)

	signed, err := s.AccessToken(&user)
	require.NoError(t, err)

	token, err := jwt.Parse(signed, func(t *jwt.Token) (interface{}, error) {
		return []byte(cfg.JWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, strconv.FormatInt(user.ID, 10), claims["sub"])
	assert.Equal(t, true, claims["is_admin"])
}

func TestClassifyStorageContextErrors(t *testing.T) {
	err := classifyStorage(context.DeadlineExceeded)
	assert.ErrorIs(t, err, ErrStorageTimeout)

	plain := errors.New("boom")
	assert.Equal(t, plain, classifyStorage(plain))
	assert.NoError(t, classifyStorage(nil))
}
