package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/db"
)

// fakeTxRunner runs the transaction body directly; the fake stores below
// ignore the tx handle.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeProcessorDeletionStore struct {
	pending   []*models.DeletionRequest
	processed map[int64]string
}

func (f *fakeProcessorDeletionStore) ListApprovedUnprocessed(_ context.Context, _ int) ([]*models.DeletionRequest, error) {
	return f.pending, nil
}

func (f *fakeProcessorDeletionStore) MarkProcessed(_ context.Context, _ pgx.Tx, id int64, processErr string) error {
	f.processed[id] = processErr
	return nil
}

type fakeAnonymizer struct {
	anonymized []int64
	err        error
}

func (f *fakeAnonymizer) Anonymize(_ context.Context, _ pgx.Tx, userID int64) error {
	if f.err != nil {
		return f.err
	}
	f.anonymized = append(f.anonymized, userID)
	return nil
}

type fakeProfileAnonymizer struct {
	anonymized []int64
	failFor    int64
	err        error
}

func (f *fakeProfileAnonymizer) AnonymizeTx(_ context.Context, _ pgx.Tx, userID int64) error {
	if f.err != nil && userID == f.failFor {
		return f.err
	}
	f.anonymized = append(f.anonymized, userID)
	return nil
}

type fakeSweepTokenStore struct {
	revoked  []int64
	swept    int64
	sweepErr error
}

func (f *fakeSweepTokenStore) RevokeAllUserTokensTx(_ context.Context, _ pgx.Tx, userID int64) error {
	f.revoked = append(f.revoked, userID)
	return nil
}

func (f *fakeSweepTokenStore) CleanupExpiredTokens(_ context.Context) (int64, error) {
	if f.sweepErr != nil {
		return 0, f.sweepErr
	}
	return f.swept, nil
}

type processorFixture struct {
	proc      *DeletionProcessor
	deletions *fakeProcessorDeletionStore
	users     *fakeAnonymizer
	profiles  *fakeProfileAnonymizer
	tokens    *fakeSweepTokenStore
}

func newProcessorFixture(pending ...*models.DeletionRequest) *processorFixture {
	f := &processorFixture{
		deletions: &fakeProcessorDeletionStore{pending: pending, processed: make(map[int64]string)},
		users:     &fakeAnonymizer{},
		profiles:  &fakeProfileAnonymizer{},
		tokens:    &fakeSweepTokenStore{},
	}
	f.proc = &DeletionProcessor{
		database:        fakeTxRunner{},
		deletionRepo:    f.deletions,
		userRepo:        f.users,
		profileRepo:     f.profiles,
		tokenRepo:       f.tokens,
		activityService: &activitySink{},
		logger:          zerolog.Nop(),
	}
	return f
}

func TestDeletionProcessor_ProcessesApprovedRequests(t *testing.T) {
	f := newProcessorFixture(
		&models.DeletionRequest{ID: 1, UserID: 10},
		&models.DeletionRequest{ID: 2, UserID: 20},
	)

	resp, err := f.proc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Processed)
	assert.Equal(t, 0, resp.Failed)
	assert.ElementsMatch(t, []int64{10, 20}, f.users.anonymized)
	assert.ElementsMatch(t, []int64{10, 20}, f.tokens.revoked)
	assert.Equal(t, "", f.deletions.processed[1])
	assert.Equal(t, "", f.deletions.processed[2])
}

func TestDeletionProcessor_FailureDoesNotStopBatch(t *testing.T) {
	f := newProcessorFixture(
		&models.DeletionRequest{ID: 1, UserID: 10},
		&models.DeletionRequest{ID: 2, UserID: 20},
	)
	f.profiles.failFor = 10
	f.profiles.err = assert.AnError

	resp, err := f.proc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Processed)
	assert.Equal(t, 1, resp.Failed)
	// The failed row keeps its error for the next run to retry
	assert.NotEmpty(t, f.deletions.processed[1])
	assert.Equal(t, "", f.deletions.processed[2])
	assert.Equal(t, []int64{20}, f.users.anonymized)
}

func TestDeletionProcessor_SweepsExpiredTokens(t *testing.T) {
	f := newProcessorFixture()
	f.tokens.swept = 42

	resp, err := f.proc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(42), resp.ExpiredTokensRemoved)
}

func TestDeletionProcessor_SweepFailureDoesNotAbortRun(t *testing.T) {
	f := newProcessorFixture(&models.DeletionRequest{ID: 1, UserID: 10})
	f.tokens.sweepErr = assert.AnError

	resp, err := f.proc.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(0), resp.ExpiredTokensRemoved)
	assert.Equal(t, 1, resp.Processed)
}
