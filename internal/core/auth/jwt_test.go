package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueParseRoundtrip(t *testing.T) {
	j := &JWTer{Secret: []byte("s3cret"), Issuer: "dogmatch", TTL: time.Hour}

	tok, err := j.Issue(42, "admin")
	require.NoError(t, err)

	c, err := j.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "admin", c.Role)

	uid, err := c.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(42), uid)
}

func TestParseRejectsWrongSecret(t *testing.T) {
	a := &JWTer{Secret: []byte("a"), Issuer: "dogmatch", TTL: time.Hour}
	b := &JWTer{Secret: []byte("b"), Issuer: "dogmatch", TTL: time.Hour}

	tok, err := a.Issue(1, "user")
	require.NoError(t, err)
	_, err = b.Parse(tok)
	assert.Error(t, err)
}

func TestParseRejectsWrongIssuer(t *testing.T) {
	a := &JWTer{Secret: []byte("s"), Issuer: "other", TTL: time.Hour}
	b := &JWTer{Secret: []byte("s"), Issuer: "dogmatch", TTL: time.Hour}

	tok, err := a.Issue(1, "user")
	require.NoError(t, err)
	_, err = b.Parse(tok)
	assert.Error(t, err)
}

func TestUserIDBadClaim(t *testing.T) {
	c := &Claims{UID: "not-a-number"}
	_, err := c.UserID()
	assert.Error(t, err)
}
