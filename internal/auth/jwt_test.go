package auth

import (
	"testing"
	"time"

	"github.com/skydesk/reservations/internal/domain"
	"github.com/stretchr/testify/assert"
)

func testUser() *domain.User {
	return &domain.User{ID: 42, Username: "traveler", Role: domain.RoleClient}
}

func TestManager_IssueAndVerify(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, exp, err := manager.Issue(testUser())
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, exp.After(time.Now()))

	identity, err := manager.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
	assert.Equal(t, "traveler", identity.Username)
	assert.Equal(t, domain.RoleClient, identity.Role)
}

func TestManager_Verify_BearerPrefix(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	token, _, err := manager.Issue(testUser())
	assert.NoError(t, err)

	identity, err := manager.Verify("Bearer " + token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), identity.UserID)
}

func TestManager_Verify_EmptyToken(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	identity, err := manager.Verify("")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_Verify_WrongSecret(t *testing.T) {
	issuer := NewManager("secret-one", time.Hour)
	verifier := NewManager("secret-two", time.Hour)

	token, _, err := issuer.Issue(testUser())
	assert.NoError(t, err)

	identity, err := verifier.Verify(token)

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_Verify_ExpiredToken(t *testing.T) {
	manager := NewManager("test-secret", -time.Minute)

	token, _, err := manager.Issue(testUser())
	assert.NoError(t, err)

	identity, err := manager.Verify(token)

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestManager_Verify_Garbage(t *testing.T) {
	manager := NewManager("test-secret", time.Hour)

	identity, err := manager.Verify("not.a.token")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	assert.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}
