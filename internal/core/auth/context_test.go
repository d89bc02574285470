package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromContext_Empty(t *testing.T) {
	ac := FromContext(context.Background())

	assert.False(t, ac.Authenticated)
	assert.Empty(t, ac.AdminID)
}

func TestWithContext_RoundTrip(t *testing.T) {
	ctx := WithContext(context.Background(), Context{
		AdminID:       "adm_1a2b3c4d",
		Email:         "admin@challenge.fr",
		Authenticated: true,
	})

	ac := FromContext(ctx)

	assert.True(t, ac.Authenticated)
	assert.Equal(t, "adm_1a2b3c4d", ac.AdminID)
	assert.Equal(t, "admin@challenge.fr", ac.Email)
}
