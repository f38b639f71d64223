package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGeneratePairRoundtrip(t *testing.T) {
	m := NewManager("secret", 15*time.Minute, 24*time.Hour)

	access, refresh, err := m.GeneratePair("user-123")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)

	claims, err := m.Parse(access)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)

	claims, err = m.Parse(refresh)
	assert.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	issuer := NewManager("secret-a", time.Minute, time.Hour)
	verifier := NewManager("secret-b", time.Minute, time.Hour)

	access, _, err := issuer.GeneratePair("user-123")
	assert.NoError(t, err)

	_, err = verifier.Parse(access)
	assert.Error(t, err)
}

func TestParseRejectsExpiredToken(t *testing.T) {
	m := NewManager("secret", -time.Minute, -time.Minute)

	access, _, err := m.GeneratePair("user-123")
	assert.NoError(t, err)

	_, err = m.Parse(access)
	assert.Error(t, err)
}

func TestParseRejectsGarbage(t *testing.T) {
	m := NewManager("secret", time.Minute, time.Hour)

	_, err := m.Parse("definitely.not.a.jwt")
	assert.Error(t, err)
}
