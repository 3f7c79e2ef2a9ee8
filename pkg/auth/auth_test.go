package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taxiservice/pkg/models"
)

func TestDriverContextRoundTrip(t *testing.T) {
	_, ok := DriverFromContext(context.Background())
	assert.False(t, ok)

	d := &models.Driver{ID: 7, Username: "test"}
	got, ok := DriverFromContext(ContextWithDriver(context.Background(), d))
	require.True(t, ok)
	assert.Same(t, d, got)

	_, ok = DriverFromContext(ContextWithDriver(context.Background(), nil))
	assert.False(t, ok)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("test123")
	require.NoError(t, err)
	assert.NotEqual(t, "test123", hash)

	assert.True(t, CheckPassword(hash, "test123"))
	assert.False(t, CheckPassword(hash, "wrong"))
	assert.False(t, CheckPassword("", ""))
}
