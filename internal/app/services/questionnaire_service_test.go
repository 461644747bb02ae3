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
	"github.com/rmendoza/alumnitrack/internal/pkg/flagledger"
)

func (f *fakeQuestionnaireStore) Upsert(_ context.Context, answers *models.QuestionnaireAnswers) error {
	copied := *answers
	f.answers[answers.UserID] = &copied
	return nil
}

type activitySink struct {
	entries []string
}

func (s *activitySink) Log(_ int64, _ models.ActivityCategory, description string, _ map[string]any, _ string) {
	s.entries = append(s.entries, description)
}

type questionnaireFixture struct {
	svc      *QuestionnaireService
	answers  *fakeQuestionnaireStore
	profiles *fakeProfileStore
	activity *activitySink
	ledger   *flagledger.Ledger
}

func newQuestionnaireFixture() *questionnaireFixture {
	f := &questionnaireFixture{
		answers:  &fakeQuestionnaireStore{answers: make(map[int64]*models.QuestionnaireAnswers)},
		profiles: newFakeProfileStore(),
		activity: &activitySink{},
		ledger:   flagledger.New(flagledger.NewMemoryStore()),
	}
	f.profiles.profiles[7] = &models.Profile{UserID: 7, FirstName: "Jon"}
	f.svc = &QuestionnaireService{
		questionnaireRepo: f.answers,
		profileRepo:       f.profiles,
		activityService:   f.activity,
		ledger:            f.ledger,
		logger:            zerolog.Nop(),
	}
	return f
}

func strPtr(s string) *string { return &s }

func TestSubmit_RequiresRegionForPhilippines(t *testing.T) {
	f := newQuestionnaireFixture()

	_, err := f.svc.Submit(context.Background(), 7, "", &dto.QuestionnaireRequest{
		Country:          "Philippines",
		Skills:           "Go, SQL",
		EmploymentStatus: string(models.StatusEmployed),
	}, "")
	require.Error(t, err)
	assert.Empty(t, f.answers.answers)
}

func TestSubmit_RequiresSkills(t *testing.T) {
	f := newQuestionnaireFixture()

	_, err := f.svc.Submit(context.Background(), 7, "", &dto.QuestionnaireRequest{
		Country:          "Singapore",
		Skills:           "   ",
		EmploymentStatus: string(models.StatusEmployed),
	}, "")
	require.Error(t, err)
	assert.Empty(t, f.answers.answers)
}

func TestSubmit_MarksProfileCompleteAndClearsPromptGuard(t *testing.T) {
	f := newQuestionnaireFixture()
	sessionID := uuid.New().String()
	require.NoError(t, f.ledger.MarkPromptFired(context.Background(), 7, sessionID, time.Hour))

	answers, err := f.svc.Submit(context.Background(), 7, sessionID, &dto.QuestionnaireRequest{
		Country:          "Philippines",
		Region:           strPtr("Region VII"),
		Province:         strPtr("Cebu"),
		Skills:           "Go, SQL",
		EmploymentStatus: string(models.StatusEmployed),
	}, "test-agent")
	require.NoError(t, err)

	assert.Equal(t, "Philippines", answers.Country)
	assert.True(t, f.profiles.profiles[7].QuestionnaireCompleted)

	fired, err := f.ledger.PromptFired(context.Background(), 7, sessionID)
	require.NoError(t, err)
	assert.False(t, fired)
}

func TestSubmit_DropsRegionOutsidePhilippines(t *testing.T) {
	f := newQuestionnaireFixture()

	_, err := f.svc.Submit(context.Background(), 7, "", &dto.QuestionnaireRequest{
		Country:          "Singapore",
		Region:           strPtr("Region VII"),
		Province:         strPtr("Cebu"),
		Skills:           "Go",
		EmploymentStatus: string(models.StatusUnemployed),
	}, "")
	require.NoError(t, err)

	stored := f.answers.answers[7]
	require.NotNil(t, stored)
	assert.Nil(t, stored.Region)
	assert.Nil(t, stored.Province)
}

func TestSubmit_ResubmitReplacesAnswers(t *testing.T) {
	f := newQuestionnaireFixture()

	_, err := f.svc.Submit(context.Background(), 7, "", &dto.QuestionnaireRequest{
		Country:          "Singapore",
		Skills:           "Go",
		EmploymentStatus: string(models.StatusUnemployed),
	}, "")
	require.NoError(t, err)

	_, err = f.svc.Submit(context.Background(), 7, "", &dto.QuestionnaireRequest{
		Country:          "Japan",
		Skills:           "Go, Kubernetes",
		EmploymentStatus: string(models.StatusEmployed),
	}, "")
	require.NoError(t, err)

	stored := f.answers.answers[7]
	require.NotNil(t, stored)
	assert.Equal(t, "Japan", stored.Country)
	assert.Equal(t, models.StatusEmployed, stored.EmploymentStatus)
}
