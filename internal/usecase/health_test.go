package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rise-and-shine/filedrop/internal/usecase"
)

func TestHealthCheck_Execute(t *testing.T) {
	store := newTestStore(t)
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	uc := usecase.NewHealthCheck(store.Root(), usecase.WithClock(fixedClock(now)))

	out, err := uc.Execute(context.Background(), &usecase.HealthCheckInput{})
	require.NoError(t, err)

	assert.Equal(t, "healthy", out.Status)
	assert.Equal(t, store.Root(), out.UploadFolder)
	assert.Equal(t, "2024-03-01T10:00:00Z", out.Timestamp)
}
