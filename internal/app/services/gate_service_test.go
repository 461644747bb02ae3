package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/rmendoza/alumnitrack/internal/app/models"
	"github.com/rmendoza/alumnitrack/internal/app/models/dto"
	"github.com/rmendoza/alumnitrack/internal/pkg/apperrors"
	"github.com/rmendoza/alumnitrack/internal/pkg/flagledger"
)

type fakeUserStore struct {
	user  *models.User
	err   error
	calls int
}

func (f *fakeUserStore) GetByID(_ context.Context, id int64) (*models.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if f.user == nil || f.user.ID != id {
		return nil, apperrors.ErrUserNotFound
	}
	return f.user, nil
}

type fakeProfileStore struct {
	profiles  map[int64]*models.Profile
	createErr error
	getErr    error
	updates   int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{profiles: make(map[int64]*models.Profile)}
}

func (f *fakeProfileStore) GetByUserID(_ context.Context, userID int64) (*models.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	p, ok := f.profiles[userID]
	if !ok {
		return nil, apperrors.ErrProfileNotFound
	}
	copied := *p
	return &copied, nil
}

func (f *fakeProfileStore) Create(_ context.Context, p *models.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	if _, ok := f.profiles[p.UserID]; ok {
		return apperrors.ErrResourceAlreadyExists
	}
	copied := *p
	f.profiles[p.UserID] = &copied
	return nil
}

func (f *fakeProfileStore) Update(_ context.Context, p *models.Profile) error {
	f.updates++
	copied := *p
	f.profiles[p.UserID] = &copied
	return nil
}

func (f *fakeProfileStore) SetQuestionnaireCompleted(_ context.Context, userID int64, completed bool) error {
	if p, ok := f.profiles[userID]; ok {
		p.QuestionnaireCompleted = completed
	}
	return nil
}

type fakeQuestionnaireStore struct {
	answers map[int64]*models.QuestionnaireAnswers
}

func (f *fakeQuestionnaireStore) GetByUserID(_ context.Context, userID int64) (*models.QuestionnaireAnswers, error) {
	q, ok := f.answers[userID]
	if !ok {
		return nil, apperrors.ErrQuestionnaireNotFound
	}
	return q, nil
}

type fakeTokenStore struct {
	active     bool
	activeErr  error
	revokedFor []int64
}

func (f *fakeTokenStore) IsActive(_ context.Context, _ uuid.UUID) (bool, error) {
	if f.activeErr != nil {
		return false, f.activeErr
	}
	return f.active, nil
}

func (f *fakeTokenStore) RevokeAllUserTokens(_ context.Context, userID int64) error {
	f.revokedFor = append(f.revokedFor, userID)
	return nil
}

type fakeDeletionStore struct {
	approved bool
	err      error
}

func (f *fakeDeletionStore) HasApproved(_ context.Context, _ int64) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.approved, nil
}

type gateFixture struct {
	gate           *GateService
	users          *fakeUserStore
	profiles       *fakeProfileStore
	tokens         *fakeTokenStore
	deletions      *fakeDeletionStore
	questionnaires *fakeQuestionnaireStore
	ledger         *flagledger.Ledger
}

func newGateFixture(user *models.User) *gateFixture {
	f := &gateFixture{
		users:          &fakeUserStore{user: user},
		profiles:       newFakeProfileStore(),
		tokens:         &fakeTokenStore{active: true},
		deletions:      &fakeDeletionStore{},
		questionnaires: &fakeQuestionnaireStore{answers: make(map[int64]*models.QuestionnaireAnswers)},
		ledger:         flagledger.New(flagledger.NewMemoryStore()),
	}
	f.gate = &GateService{
		userRepo:          f.users,
		profileRepo:       f.profiles,
		tokenRepo:         f.tokens,
		deletionRepo:      f.deletions,
		questionnaireRepo: f.questionnaires,
		ledger:            f.ledger,
		sessionTTL:        time.Hour,
		logger:            zerolog.Nop(),
	}
	return f
}

func alumniUser() *models.User {
	year := 2024
	return &models.User{
		ID:             7,
		Email:          "jon@gmail.com",
		Role:           models.RoleAlumni,
		IsActive:       true,
		FirstName:      "Jon",
		LastName:       "Reyes",
		Course:         "BS Information Technology",
		GraduationYear: &year,
		CurrentJob:     "Software Engineer",
		Company:        "Acme Corp",
		Location:       "Cebu City",
		PhoneNumber:    "+639171234567",
	}
}

func TestReconcile_SynthesizesProfileFromSignupMetadata(t *testing.T) {
	f := newGateFixture(alumniUser())
	sessionID := uuid.New()

	result, err := f.gate.Reconcile(context.Background(), 7, sessionID, CauseSignIn)
	require.NoError(t, err)

	assert.Equal(t, dto.GateAuthenticated, result.Status)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "Jon", result.Profile.FirstName)
	assert.Equal(t, "jon@gmail.com", result.Profile.Email)

	stored := f.profiles.profiles[7]
	require.NotNil(t, stored)
	assert.Equal(t, "BS Information Technology", stored.Course)
	require.NotNil(t, stored.GraduationYear)
	assert.Equal(t, 2024, *stored.GraduationYear)
	assert.Equal(t, "Software Engineer", stored.CurrentJob)
	assert.Equal(t, "Acme Corp", stored.Company)
	assert.Equal(t, "Cebu City", stored.Location)
}

func TestReconcile_DefaultsMissingGraduationYear(t *testing.T) {
	user := alumniUser()
	user.GraduationYear = nil
	f := newGateFixture(user)

	_, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)

	stored := f.profiles.profiles[7]
	require.NotNil(t, stored)
	require.NotNil(t, stored.GraduationYear)
	assert.Equal(t, time.Now().Year(), *stored.GraduationYear)
}

func TestReconcile_BackfillNeverOverwritesExistingValues(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.profiles.profiles[7] = &models.Profile{
		UserID:    7,
		FirstName: "Jonathan",
		Course:    "",
	}

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseProbe)
	require.NoError(t, err)

	require.NotNil(t, result.Profile)
	assert.Equal(t, "Jonathan", result.Profile.FirstName)
	assert.Equal(t, "BS Information Technology", result.Profile.Course)
	assert.Equal(t, 1, f.profiles.updates)
}

func TestReconcile_BackfillSkipsWriteWhenNothingIsEmpty(t *testing.T) {
	f := newGateFixture(alumniUser())
	year := 2020
	f.profiles.profiles[7] = &models.Profile{
		UserID:         7,
		FirstName:      "Jonathan",
		LastName:       "Reyes-Cruz",
		Course:         "BS Computer Science",
		GraduationYear: &year,
		CurrentJob:     "Team Lead",
		Company:        "Globe Telecom",
		Location:       "Makati",
		PhoneNumber:    "+639998887777",
	}

	_, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseProbe)
	require.NoError(t, err)
	assert.Equal(t, 0, f.profiles.updates)
}

func TestReconcile_BackfillsJobFieldsFromMetadata(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.profiles.profiles[7] = &models.Profile{
		UserID:      7,
		FirstName:   "Jon",
		LastName:    "Reyes",
		Course:      "BS Information Technology",
		CurrentJob:  "",
		Company:     "",
		Location:    "",
		PhoneNumber: "+639171234567",
	}

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)

	stored := f.profiles.profiles[7]
	require.NotNil(t, stored)
	assert.Equal(t, "Software Engineer", stored.CurrentJob)
	assert.Equal(t, "Acme Corp", stored.Company)
	assert.Equal(t, "Cebu City", stored.Location)
	require.NotNil(t, result.Profile)
	assert.Equal(t, "Software Engineer", result.Profile.CurrentJob)
}

func TestReconcile_PasswordRecoveryShortCircuits(t *testing.T) {
	f := newGateFixture(alumniUser())

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CausePasswordRecovery)
	require.NoError(t, err)

	assert.Equal(t, dto.GatePasswordRecovery, result.Status)
	assert.Nil(t, result.Profile)
	assert.False(t, result.NeedsQuestionnaire)
	assert.Equal(t, 0, f.users.calls)
	assert.Empty(t, f.profiles.profiles)
}

func TestReconcile_WelcomeBannerFiresOnceOnSignIn(t *testing.T) {
	f := newGateFixture(alumniUser())
	require.NoError(t, f.ledger.SetJustRegistered(context.Background(), 7))

	// A probe never consumes the banner
	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseProbe)
	require.NoError(t, err)
	assert.False(t, result.JustRegistered)

	result, err = f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)
	assert.True(t, result.JustRegistered)

	result, err = f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)
	assert.False(t, result.JustRegistered)
}

func TestReconcile_ApprovedDeletionBlocksAndRevokes(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.deletions.approved = true
	require.NoError(t, f.ledger.SetBlockedNotice(context.Background(), 7, "account deleted"))

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)

	assert.Equal(t, dto.GateBlocked, result.Status)
	assert.True(t, result.BlockedNotice)
	assert.Contains(t, f.tokens.revokedFor, int64(7))

	// The notice is one-shot; a second pass stays blocked without it
	result, err = f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseProbe)
	require.NoError(t, err)
	assert.Equal(t, dto.GateBlocked, result.Status)
	assert.False(t, result.BlockedNotice)
}

func TestReconcile_PromptFiresOncePerSession(t *testing.T) {
	f := newGateFixture(alumniUser())
	sessionID := uuid.New()

	result, err := f.gate.Reconcile(context.Background(), 7, sessionID, CauseSignIn)
	require.NoError(t, err)
	assert.True(t, result.NeedsQuestionnaire)

	result, err = f.gate.Reconcile(context.Background(), 7, sessionID, CauseSignIn)
	require.NoError(t, err)
	assert.False(t, result.NeedsQuestionnaire)

	// A new session gets its own prompt
	result, err = f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)
	assert.True(t, result.NeedsQuestionnaire)
}

func TestReconcile_OnlySignInPrompts(t *testing.T) {
	for _, cause := range []GateCause{CauseProbe, CauseRefresh} {
		f := newGateFixture(alumniUser())

		result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), cause)
		require.NoError(t, err)
		assert.False(t, result.NeedsQuestionnaire, "cause %s must not prompt", cause)
	}
}

func TestReconcile_CompletedQuestionnaireNeverPrompts(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.profiles.profiles[7] = &models.Profile{
		UserID:                 7,
		FirstName:              "Jon",
		QuestionnaireCompleted: true,
	}

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)
	assert.False(t, result.NeedsQuestionnaire)
}

func TestReconcile_LegacyAnswersBackfillFlagAndSuppressPrompt(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.profiles.profiles[7] = &models.Profile{UserID: 7, FirstName: "Jon", LastName: "Reyes",
		Course: "BS Information Technology", PhoneNumber: "+639171234567"}
	f.questionnaires.answers[7] = &models.QuestionnaireAnswers{UserID: 7, Country: "Philippines"}

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)

	assert.False(t, result.NeedsQuestionnaire)
	assert.True(t, f.profiles.profiles[7].QuestionnaireCompleted)
}

func TestReconcile_SignOutRaceWins(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.tokens.active = false

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseProbe)
	require.NoError(t, err)
	assert.Equal(t, dto.GateUnauthenticated, result.Status)
}

func TestReconcile_FailsOpenOnDeletionCheckError(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.deletions.err = assert.AnError

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseProbe)
	require.NoError(t, err)
	assert.Equal(t, dto.GateAuthenticated, result.Status)
}

func TestReconcile_FailsOpenOnProfileFetchError(t *testing.T) {
	f := newGateFixture(alumniUser())
	f.profiles.getErr = assert.AnError

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseSignIn)
	require.NoError(t, err)
	assert.Equal(t, dto.GateAuthenticated, result.Status)
	assert.Nil(t, result.Profile)
	assert.False(t, result.NeedsQuestionnaire)
}

func TestReconcile_InactiveUserIsUnauthenticated(t *testing.T) {
	user := alumniUser()
	user.IsActive = false
	f := newGateFixture(user)

	result, err := f.gate.Reconcile(context.Background(), 7, uuid.New(), CauseProbe)
	require.NoError(t, err)
	assert.Equal(t, dto.GateUnauthenticated, result.Status)
}

func TestReconcile_UnknownUserIsUnauthenticated(t *testing.T) {
	f := newGateFixture(nil)

	result, err := f.gate.Reconcile(context.Background(), 99, uuid.New(), CauseProbe)
	require.NoError(t, err)
	assert.Equal(t, dto.GateUnauthenticated, result.Status)
}
