package services

import (
	"context"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/Dosada05/chessmate-central/models"
	"github.com/Dosada05/chessmate-central/repositories"
	"github.com/Dosada05/chessmate-central/storage"
)

// fakeResultRepo keeps tables in memory and enforces versions like the
// postgres repository does.
type fakeResultRepo struct {
	mu        sync.Mutex
	rows      map[string]*models.TournamentResult
	conflicts int // next N conditional writes lose to a simulated concurrent writer
	// racer применяется к сохранённой таблице, когда запись проигрывает гонку
	racer     func(cur *models.TournamentResult)
	getErr    error
	writeErr  error
	writes    int
}

func newFakeResultRepo() *fakeResultRepo {
	return &fakeResultRepo{rows: map[string]*models.TournamentResult{}}
}

func (f *fakeResultRepo) put(res *models.TournamentResult) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows[res.TournamentID] = res.Clone()
}

func (f *fakeResultRepo) stored(id string) *models.TournamentResult {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[id].Clone()
}

func (f *fakeResultRepo) Get(ctx context.Context, id string) (*models.TournamentResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	res, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrResultNotFound
	}
	return res.Clone(), nil
}

func (f *fakeResultRepo) loseRace(id string) bool {
	if f.conflicts == 0 {
		return false
	}
	f.conflicts--
	if cur, ok := f.rows[id]; ok {
		if f.racer != nil {
			f.racer(cur)
		}
		cur.Version++
	} else {
		f.rows[id] = &models.TournamentResult{TournamentID: id, PlayerScores: models.PlayerScores{}, Version: 1}
	}
	return true
}

func (f *fakeResultRepo) Create(ctx context.Context, res *models.TournamentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.loseRace(res.TournamentID) {
		return repositories.ErrResultVersionConflict
	}
	if _, ok := f.rows[res.TournamentID]; ok {
		return repositories.ErrResultVersionConflict
	}
	res.Version = 1
	f.rows[res.TournamentID] = res.Clone()
	f.writes++
	return nil
}

func (f *fakeResultRepo) Update(ctx context.Context, res *models.TournamentResult, expected int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	if f.loseRace(res.TournamentID) {
		return repositories.ErrResultVersionConflict
	}
	cur, ok := f.rows[res.TournamentID]
	if !ok || cur.Version != expected {
		return repositories.ErrResultVersionConflict
	}
	res.Version = expected + 1
	f.rows[res.TournamentID] = res.Clone()
	f.writes++
	return nil
}

func (f *fakeResultRepo) Upsert(ctx context.Context, res *models.TournamentResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	res.Version = 1
	if cur, ok := f.rows[res.TournamentID]; ok {
		res.Version = cur.Version + 1
	}
	f.rows[res.TournamentID] = res.Clone()
	f.writes++
	return nil
}

func (f *fakeResultRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.rows, id)
	return nil
}

type fakeTournamentRepo struct {
	mu       sync.Mutex
	rows     map[string]*models.Tournament
	err      error
	statuses map[string]models.TournamentStatus
}

func newFakeTournamentRepo(ts ...models.Tournament) *fakeTournamentRepo {
	f := &fakeTournamentRepo{rows: map[string]*models.Tournament{}, statuses: map[string]models.TournamentStatus{}}
	for i := range ts {
		t := ts[i]
		f.rows[t.ID] = &t
	}
	return f
}

func (f *fakeTournamentRepo) Create(ctx context.Context, t *models.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	t.CreatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTournamentRepo) GetByID(ctx context.Context, id string) (*models.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	t, ok := f.rows[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTournamentRepo) List(ctx context.Context, filter repositories.ListTournamentsFilter) ([]models.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return nil, f.err
	}
	out := []models.Tournament{}
	for _, t := range f.rows {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeTournamentRepo) Update(ctx context.Context, t *models.Tournament) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	cp := *t
	f.rows[t.ID] = &cp
	return nil
}

func (f *fakeTournamentRepo) UpdateStatus(ctx context.Context, exec repositories.SQLExecutor, id string, status models.TournamentStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.rows[id]
	if !ok {
		return repositories.ErrTournamentNotFound
	}
	t.Status = status
	f.statuses[id] = status
	return nil
}

func (f *fakeTournamentRepo) Delete(ctx context.Context, exec repositories.SQLExecutor, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(f.rows, id)
	return nil
}

func (f *fakeTournamentRepo) ListDueForStatusUpdate(ctx context.Context, now time.Time) ([]models.Tournament, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Tournament
	for _, t := range f.rows {
		switch {
		case t.Status == models.StatusUpcoming && !t.StartDate.After(now),
			t.Status == models.StatusActive && !t.EndDate.After(now):
			out = append(out, *t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeRegistrationRepo struct {
	mu      sync.Mutex
	rows    []models.PlayerRegistration
	listErr error
}

func (f *fakeRegistrationRepo) Create(ctx context.Context, reg *models.PlayerRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.rows = append(f.rows, *reg)
	return nil
}

func (f *fakeRegistrationRepo) GetByID(ctx context.Context, id string) (*models.PlayerRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.rows {
		if r.ID == id {
			cp := r
			return &cp, nil
		}
	}
	return nil, repositories.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) ListByTournament(ctx context.Context, tournamentID string) ([]models.PlayerRegistration, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []models.PlayerRegistration{}
	for _, r := range f.rows {
		if r.TournamentID == tournamentID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRegistrationRepo) Update(ctx context.Context, reg *models.PlayerRegistration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == reg.ID {
			f.rows[i] = *reg
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.rows {
		if f.rows[i].ID == id {
			f.rows = append(f.rows[:i], f.rows[i+1:]...)
			return nil
		}
	}
	return repositories.ErrRegistrationNotFound
}

func (f *fakeRegistrationRepo) DeleteByTournament(ctx context.Context, exec repositories.SQLExecutor, tournamentID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	kept := f.rows[:0]
	for _, r := range f.rows {
		if r.TournamentID != tournamentID {
			kept = append(kept, r)
		}
	}
	f.rows = kept
	return nil
}

type fakeBlogRepo struct {
	posts     []models.BlogPost
	createErr error
}

func (f *fakeBlogRepo) Create(ctx context.Context, post *models.BlogPost) error {
	if f.createErr != nil {
		return f.createErr
	}
	for _, p := range f.posts {
		if p.Slug == post.Slug {
			return repositories.ErrBlogSlugConflict
		}
	}
	post.CreatedAt = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	post.UpdatedAt = post.CreatedAt
	f.posts = append(f.posts, *post)
	return nil
}

func (f *fakeBlogRepo) GetBySlug(ctx context.Context, slug string) (*models.BlogPost, error) {
	for _, p := range f.posts {
		if p.Slug == slug {
			cp := p
			return &cp, nil
		}
	}
	return nil, repositories.ErrBlogPostNotFound
}

func (f *fakeBlogRepo) List(ctx context.Context) ([]models.BlogPost, error) {
	return append([]models.BlogPost{}, f.posts...), nil
}

type published struct {
	tournamentID string
	rows         []models.Standing
}

type fakePublisher struct {
	mu   sync.Mutex
	sent []published
}

func (p *fakePublisher) PublishStandings(tournamentID string, rows interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sent = append(p.sent, published{tournamentID: tournamentID, rows: rows.([]models.Standing)})
}

type fakeSyncer struct {
	mu    sync.Mutex
	calls []string
	err   error
}

func (s *fakeSyncer) SyncWithRoster(ctx context.Context, tournamentID string) (*models.TournamentResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, tournamentID)
	return nil, s.err
}

type fakeNotifier struct {
	sent []string
	err  error
}

func (n *fakeNotifier) SendRegistrationConfirmation(ctx context.Context, reg *models.PlayerRegistration, t *models.Tournament) error {
	n.sent = append(n.sent, *reg.PlayerEmail)
	return n.err
}

type fakeGenerator struct {
	prompt string
	text   string
	err    error
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.prompt = prompt
	return g.text, g.err
}

type fakeUploader struct {
	key         string
	contentType string
	body        string
	err         error
}

func (u *fakeUploader) Upload(ctx context.Context, key, contentType string, r io.Reader) (*storage.UploadResult, error) {
	if u.err != nil {
		return nil, u.err
	}
	b, _ := io.ReadAll(r)
	u.key, u.contentType, u.body = key, contentType, string(b)
	return &storage.UploadResult{Location: "https://cdn.example.com/" + key}, nil
}

func (u *fakeUploader) Delete(ctx context.Context, key string) error { return nil }

func (u *fakeUploader) GetPublicURL(key string) string { return "https://cdn.example.com/" + key }

func score(v float64) *float64 { return &v }

func ptr[T any](v T) *T { return &v }
