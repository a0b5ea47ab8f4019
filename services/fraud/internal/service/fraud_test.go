package service

import (
	"context"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/musicclouds/platform/services/fraud/internal/models"
	"github.com/musicclouds/platform/services/fraud/internal/repo"
)

func newTestService(t *testing.T) *FraudService {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.FraudCheckHistory{}))

	return &FraudService{Repo: repo.GormRepo{DB: db}}
}

func TestIsFraudulentUser_RecordsHistory(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	fraudster, err := svc.IsFraudulentUser(ctx, 42)
	require.NoError(t, err)
	assert.False(t, fraudster)

	checks, err := svc.Repo.ChecksForUser(ctx, 42)
	require.NoError(t, err)
	require.Len(t, checks, 1)
	assert.EqualValues(t, 42, checks[0].UserID)
	assert.False(t, checks[0].IsFraudster)
	assert.WithinDuration(t, time.Now().UTC(), checks[0].CreatedAt, time.Minute)
}

func TestIsFraudulentUser_RepeatedChecksAppend(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.IsFraudulentUser(ctx, 7)
		require.NoError(t, err)
	}
	_, err := svc.IsFraudulentUser(ctx, 8)
	require.NoError(t, err)

	checks, err := svc.Repo.ChecksForUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, checks, 3)
}
