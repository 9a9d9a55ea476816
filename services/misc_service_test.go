package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Dosada05/chessmate-central/config"
	"github.com/Dosada05/chessmate-central/models"
)

func TestUploadService_Upload(t *testing.T) {
	up := &fakeUploader{}
	svc := NewUploadService(up, nil)

	url, err := svc.Upload(context.Background(), "Banner.PNG", "", 3, strings.NewReader("png"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(up.key, "uploads/"))
	assert.True(t, strings.HasSuffix(up.key, ".png"))
	assert.Equal(t, "image/png", up.contentType)
	assert.Equal(t, "png", up.body)
	assert.Equal(t, "https://cdn.example.com/"+up.key, url)
}

func TestUploadService_Errors(t *testing.T) {
	svc := NewUploadService(&fakeUploader{}, nil)
	ctx := context.Background()

	_, err := svc.Upload(ctx, "a.png", "image/png", 0, strings.NewReader(""))
	assert.ErrorIs(t, err, ErrFileRequired)
	_, err = svc.Upload(ctx, "a.png", "image/png", MaxUploadSize+1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrFileTooLarge)

	failing := NewUploadService(&fakeUploader{err: errors.New("403 Forbidden")}, nil)
	_, err = failing.Upload(ctx, "a.png", "image/png", 1, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestDescriptionService_Describe(t *testing.T) {
	gen := &fakeGenerator{text: "  A thrilling weekend of chess.  "}
	svc := NewDescriptionService(gen)

	text, err := svc.Describe(context.Background(), DescribeTournamentInput{
		TournamentName:     "Spring Open",
		TournamentType:     "Swiss",
		TournamentLocation: "Pune",
		EntryFee:           500,
		TimeControl:        "90+30",
	})
	require.NoError(t, err)
	assert.Equal(t, "A thrilling weekend of chess.", text)
	assert.Contains(t, gen.prompt, "Tournament Name: Spring Open")
	assert.Contains(t, gen.prompt, "Time Control: 90+30")
}

func TestDescriptionService_Errors(t *testing.T) {
	ctx := context.Background()
	in := DescribeTournamentInput{TournamentName: "Open", TournamentType: "Swiss"}

	_, err := NewDescriptionService(nil).Describe(ctx, in)
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)

	_, err = NewDescriptionService(&fakeGenerator{}).Describe(ctx, DescribeTournamentInput{TournamentName: "Open"})
	assert.ErrorIs(t, err, ErrDescriptionIncomplete)

	_, err = NewDescriptionService(&fakeGenerator{err: errors.New("quota")}).Describe(ctx, in)
	assert.ErrorIs(t, err, ErrGeneratorUnavailable)
}

func TestAuthService_Login(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("kasparov85"), bcrypt.MinCost)
	require.NoError(t, err)
	svc := NewAuthService(string(hash))
	ctx := context.Background()

	assert.True(t, svc.Enabled())
	assert.NoError(t, svc.Login(ctx, LoginInput{Password: "kasparov85"}))
	assert.ErrorIs(t, svc.Login(ctx, LoginInput{Password: "karpov84"}), ErrInvalidCredentials)
	assert.ErrorIs(t, svc.Login(ctx, LoginInput{}), ErrInvalidCredentials)

	disabled := NewAuthService("")
	assert.False(t, disabled.Enabled())
	assert.ErrorIs(t, disabled.Login(ctx, LoginInput{Password: "x"}), ErrAuthDisabled)
}

func TestEmailService_SendRegistrationConfirmation(t *testing.T) {
	svc, err := NewEmailService(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587, SMTPFrom: "noreply@example.com"})
	require.NoError(t, err)

	var to []string
	var subject, body string
	svc.send = func(rcpt []string, subj, html string) error {
		to, subject, body = rcpt, subj, html
		return nil
	}

	tournament := &models.Tournament{
		ID: "t1", Name: "Spring <Open>", Location: "Pune",
		StartDate: may1, EndDate: may3, EntryFee: 500,
	}
	reg := &models.PlayerRegistration{ID: "r1", PlayerName: "Vidit", PlayerEmail: ptr("vidit@example.com"), FeePaid: true}

	require.NoError(t, svc.SendRegistrationConfirmation(context.Background(), reg, tournament))
	assert.Equal(t, []string{"vidit@example.com"}, to)
	assert.Equal(t, "Registration received: Spring <Open>", subject)
	assert.Contains(t, body, "Hello Vidit")
	assert.Contains(t, body, "Spring &lt;Open&gt;")
	assert.Contains(t, body, "2024-05-01")
	assert.Contains(t, body, "500.00 (paid)")
	assert.Contains(t, body, "r1")

	to = nil
	reg.PlayerEmail = nil
	require.NoError(t, svc.SendRegistrationConfirmation(context.Background(), reg, tournament))
	assert.Nil(t, to)
}

func TestStatusScheduler(t *testing.T) {
	s, err := NewStatusScheduler(nil, 0, nil)
	require.NoError(t, err)
	assert.Nil(t, s, "zero interval disables the scheduler")

	repo := newFakeTournamentRepo(models.Tournament{
		ID: "t1", Status: models.StatusUpcoming, StartDate: may1, EndDate: may3,
	})
	svc := NewTournamentService(nil, repo, &fakeRegistrationRepo{}, newFakeResultRepo(), nil, nil, nil)

	s, err = NewStatusScheduler(svc, time.Hour, nil)
	require.NoError(t, err)
	s.now = func() time.Time { return may1.Add(time.Hour) }

	s.RunOnce(context.Background())
	got, err := repo.GetByID(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusActive, got.Status)

	s.Start()
	assert.NoError(t, s.Shutdown())
}
