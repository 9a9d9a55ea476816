package handlers

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/services"
	"github.com/Dosada05/chessmate-central/standings"
)

// withURLParams кладёт chi-параметры в запрос без роутера.
func withURLParams(r *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

type fakeResultService struct {
	result   *models.TournamentResult
	rows     []models.Standing
	err      error
	tieBreak standings.TieBreak
	score    *float64
	round    int
	playerID string
	saved    *models.TournamentResult
}

func (f *fakeResultService) Get(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	return f.result, f.err
}

func (f *fakeResultService) Save(ctx context.Context, tournamentID string, input *models.TournamentResult) (*models.TournamentResult, error) {
	f.saved = input
	return f.result, f.err
}

func (f *fakeResultService) Reconcile(ctx context.Context, tournamentID string, players []models.PlayerRegistration, totalRounds int) (*models.TournamentResult, error) {
	return f.result, f.err
}

func (f *fakeResultService) SyncWithRoster(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	return f.result, f.err
}

func (f *fakeResultService) SetRoundScore(ctx context.Context, tournamentID, playerID string, roundIndex int, score *float64) (*models.TournamentResult, error) {
	f.playerID, f.round, f.score = playerID, roundIndex, score
	return f.result, f.err
}

func (f *fakeResultService) Standings(ctx context.Context, tournamentID string, tieBreak standings.TieBreak) ([]models.Standing, error) {
	f.tieBreak = tieBreak
	return f.rows, f.err
}

type fakeTournamentService struct {
	tournament *models.Tournament
	list       []models.Tournament
	status     *models.TournamentStatus
	err        error
	deleted    string
}

func (f *fakeTournamentService) Create(ctx context.Context, input services.CreateTournamentInput) (*models.Tournament, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.Tournament{ID: "t-new", Name: input.Name, Type: input.Type, Status: models.StatusUpcoming}, nil
}

func (f *fakeTournamentService) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	return f.tournament, f.err
}

func (f *fakeTournamentService) List(ctx context.Context, status *models.TournamentStatus) ([]models.Tournament, error) {
	f.status = status
	return f.list, f.err
}

func (f *fakeTournamentService) Update(ctx context.Context, id string, input services.UpdateTournamentInput) (*models.Tournament, error) {
	return f.tournament, f.err
}

func (f *fakeTournamentService) Delete(ctx context.Context, id string) error {
	f.deleted = id
	return f.err
}

func (f *fakeTournamentService) PromoteDueStatuses(ctx context.Context, now time.Time) (int, error) {
	return 0, f.err
}

type fakeDescriptionService struct {
	text string
	err  error
}

func (f *fakeDescriptionService) Describe(ctx context.Context, input services.DescribeTournamentInput) (string, error) {
	return f.text, f.err
}

type fakeRegistrationService struct {
	input services.CreateRegistrationInput
	list  []models.PlayerRegistration
	err   error
}

func (f *fakeRegistrationService) Register(ctx context.Context, input services.CreateRegistrationInput) (*models.PlayerRegistration, error) {
	f.input = input
	if f.err != nil {
		return nil, f.err
	}
	return &models.PlayerRegistration{ID: "r-1", TournamentID: input.TournamentID, PlayerName: input.PlayerName, FideID: models.DefaultFideID}, nil
}

func (f *fakeRegistrationService) ListByTournament(ctx context.Context, tournamentID string) ([]models.PlayerRegistration, error) {
	return f.list, f.err
}

func (f *fakeRegistrationService) Update(ctx context.Context, id string, input services.UpdateRegistrationInput) (*models.PlayerRegistration, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PlayerRegistration{ID: id}, nil
}

func (f *fakeRegistrationService) Delete(ctx context.Context, id string) error {
	return f.err
}

type fakeBlogService struct {
	posts []models.BlogPost
	err   error
}

func (f *fakeBlogService) Create(ctx context.Context, input services.CreateBlogPostInput) (*models.BlogPost, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.BlogPost{ID: "b-1", Title: input.Title, Slug: "spring-open"}, nil
}

func (f *fakeBlogService) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	for i := range f.posts {
		if f.posts[i].Slug == slug {
			return &f.posts[i], nil
		}
	}
	return nil, services.ErrBlogPostNotFound
}

func (f *fakeBlogService) List(ctx context.Context) ([]models.BlogPost, error) {
	return f.posts, f.err
}

type fakeUploadService struct {
	filename string
	body     string
	url      string
	err      error
}

func (f *fakeUploadService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	b, _ := io.ReadAll(r)
	f.filename, f.body = filename, string(b)
	return f.url, f.err
}

type fakeAuthService struct {
	err error
}

func (f *fakeAuthService) Enabled() bool { return f.err != services.ErrAuthDisabled }

func (f *fakeAuthService) Login(ctx context.Context, input services.LoginInput) error {
	return f.err
}

func score(v float64) *float64 { return &v }
