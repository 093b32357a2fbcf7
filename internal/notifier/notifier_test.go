package notifier

import (
	"net/smtp"
	"testing"
	"time"

	"github.com/aleister1102/careerwatch/internal/config"
	"github.com/aleister1102/careerwatch/internal/errorwrapper"
	"github.com/aleister1102/careerwatch/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func sampleRecord() models.ChangeRecord {
	return models.ChangeRecord{
		SourceID:      "google-careers",
		SourceName:    "Google Careers",
		SourceURL:     "https://careers.example.com/results",
		PreviousCount: intPtr(10),
		CurrentCount:  13,
		CountChange:   models.CountChange{Outcome: models.CountIncreased, Delta: 3},
		TitleDeltas: []models.TitleDelta{
			models.NewAddedDelta("Data Engineer", 1),
			models.NewMovedDelta("Data Analyst", 1, 2),
		},
		ObservedAt: time.Now(),
	}
}

func notifierConfig() config.NotificationConfig {
	cfg := config.NewDefaultNotificationConfig()
	cfg.SenderEmail = "robot@example.com"
	cfg.SenderPassword = "secret"
	cfg.RecipientEmails = "me@example.com,you@example.com"
	return cfg
}

func TestEmailNotifier_SendsDigest(t *testing.T) {
	en := NewEmailNotifier(notifierConfig(), zerolog.Nop())

	var gotAddr, gotFrom string
	var gotTo []string
	var gotMsg []byte
	en.sendMail = func(addr string, _ smtp.Auth, from string, to []string, msg []byte) error {
		gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
		return nil
	}

	require.NoError(t, en.Notify([]models.ChangeRecord{sampleRecord()}))

	assert.Equal(t, "smtp.gmail.com:587", gotAddr)
	assert.Equal(t, "robot@example.com", gotFrom)
	assert.Equal(t, []string{"me@example.com", "you@example.com"}, gotTo)
	assert.Contains(t, string(gotMsg), "Subject: Careers Alert: Google Careers changed (+3)")
	assert.Contains(t, string(gotMsg), "View jobs: https://careers.example.com/results")
}

func TestEmailNotifier_NoRecords_NoSend(t *testing.T) {
	en := NewEmailNotifier(notifierConfig(), zerolog.Nop())
	en.sendMail = func(string, smtp.Auth, string, []string, []byte) error {
		t.Fatal("sendMail should not be called")
		return nil
	}

	assert.NoError(t, en.Notify(nil))
}

func TestEmailNotifier_IncompleteCredentials(t *testing.T) {
	cfg := notifierConfig()
	cfg.SenderPassword = ""
	en := NewEmailNotifier(cfg, zerolog.Nop())

	err := en.Notify([]models.ChangeRecord{sampleRecord()})

	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrIncompleteCredentials)
}

func TestEmailNotifier_NoRecipients(t *testing.T) {
	cfg := notifierConfig()
	cfg.RecipientEmails = " , "
	en := NewEmailNotifier(cfg, zerolog.Nop())

	err := en.Notify([]models.ChangeRecord{sampleRecord()})

	require.Error(t, err)
	assert.ErrorIs(t, err, errorwrapper.ErrNoRecipients)
}

func TestBuildDigestSubject_MultipleSources(t *testing.T) {
	second := sampleRecord()
	second.SourceName = "Acme Jobs"
	second.CountChange = models.CountChange{Outcome: models.CountDecreased, Delta: 1}

	subject := BuildDigestSubject([]models.ChangeRecord{sampleRecord(), second})

	assert.Equal(t, "Careers Alert: 2 sources changed (+2)", subject)
}

func TestBuildDigestBody_Sections(t *testing.T) {
	now := time.Date(2026, 8, 28, 9, 30, 0, 0, time.UTC)

	body := BuildDigestBody([]models.ChangeRecord{sampleRecord()}, now)

	assert.Contains(t, body, "== Google Careers ==")
	assert.Contains(t, body, "Previous count: 10")
	assert.Contains(t, body, "Current count: 13")
	assert.Contains(t, body, "Change: +3 jobs")
	assert.Contains(t, body, "new at #1: Data Engineer")
	assert.Contains(t, body, "moved #1 -> #2: Data Analyst")
	assert.Contains(t, body, "Time: 2026-08-28 09:30:00")
}

func TestBuildDigestBody_TitleOnlyChange(t *testing.T) {
	record := sampleRecord()
	record.CountChange = models.CountChange{Outcome: models.CountUnchanged}
	record.CurrentCount = 10

	body := BuildDigestBody([]models.ChangeRecord{record}, time.Now())

	assert.Contains(t, body, "Change: none")
	assert.Contains(t, body, "Top listings:")
}
