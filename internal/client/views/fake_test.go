package views

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

// fakeAPI implements every view API and records what was called.
type fakeAPI struct {
	mu    sync.Mutex
	calls []string

	docs    []models.Document
	listErr error

	uploadErr  error
	uploaded   []string
	uploadGate chan struct{}

	deleteErr error
	deleted   []models.ID

	askRes  *models.QuestionResult
	askErr  error
	lastAsk models.QuestionRequest

	profile       *models.Profile
	getErr        error
	updateErr     error
	lastUpdate    models.ProfileUpdate
	avatarRes     *models.AvatarUploadResponse
	avatarErr     error
	avatarType    string
	avatarPayload []byte

	stats    *models.DashboardStats
	statsErr error
}

func (f *fakeAPI) record(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
}

func (f *fakeAPI) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) ListDocuments(ctx context.Context) ([]models.Document, error) {
	f.record("list")
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]models.Document(nil), f.docs...), nil
}

func (f *fakeAPI) UploadDocument(ctx context.Context, name string, r io.Reader) (*models.Document, error) {
	f.record("upload")
	if f.uploadGate != nil {
		<-f.uploadGate
	}
	if f.uploadErr != nil {
		return nil, f.uploadErr
	}
	f.uploaded = append(f.uploaded, name)
	doc := models.Document{ID: models.ID("u-" + name), Title: name, Filename: name, Keywords: models.Keywords{}}
	f.docs = append(f.docs, doc)
	return &doc, nil
}

func (f *fakeAPI) DeleteDocument(ctx context.Context, id models.ID) error {
	f.record("delete")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	kept := f.docs[:0]
	for _, d := range f.docs {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	f.docs = kept
	return nil
}

func (f *fakeAPI) AskQuestion(ctx context.Context, req models.QuestionRequest) (*models.QuestionResult, error) {
	f.record("ask")
	f.lastAsk = req
	if f.askErr != nil {
		return nil, f.askErr
	}
	res := *f.askRes
	return &res, nil
}

func (f *fakeAPI) GetProfile(ctx context.Context, id models.ID) (*models.Profile, error) {
	f.record("get-profile")
	if f.getErr != nil {
		return nil, f.getErr
	}
	p := *f.profile
	return &p, nil
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, id models.ID, upd models.ProfileUpdate) (*models.Profile, error) {
	f.record("update-profile")
	f.lastUpdate = upd
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	f.profile.FullName = upd.FullName
	f.profile.Email = upd.Email
	p := *f.profile
	return &p, nil
}

func (f *fakeAPI) UploadAvatar(ctx context.Context, id models.ID, name, contentType string, r io.Reader) (*models.AvatarUploadResponse, error) {
	f.record("upload-avatar")
	if f.avatarErr != nil {
		return nil, f.avatarErr
	}
	f.avatarType = contentType
	f.avatarPayload, _ = io.ReadAll(r)
	f.profile.ProfilePictureURL = "/uploads/" + id.String() + ".jpg"
	res := *f.avatarRes
	return &res, nil
}

func (f *fakeAPI) ResolveURL(ref string) string {
	if ref == "" || ref[0] != '/' {
		return ref
	}
	return "http://api.test" + ref
}

func (f *fakeAPI) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	f.record("stats")
	if f.statsErr != nil {
		return nil, f.statsErr
	}
	s := *f.stats
	return &s, nil
}

var errNoUser = errors.New("not signed in")

// fakeSession implements UserSession and Authenticator.
type fakeSession struct {
	user    *models.User
	patches []models.UserPatch

	loginErr    error
	registerErr error
	lastLogin   [2]string
	lastReg     models.RegisterRequest
}

func (s *fakeSession) Require() (models.User, error) {
	if s.user == nil {
		return models.User{}, errNoUser
	}
	return *s.user, nil
}

func (s *fakeSession) UpdateUser(p models.UserPatch) {
	s.patches = append(s.patches, p)
	if s.user != nil {
		u := p.Apply(*s.user)
		s.user = &u
	}
}

func (s *fakeSession) Login(ctx context.Context, email, password string) error {
	s.lastLogin = [2]string{email, password}
	return s.loginErr
}

func (s *fakeSession) Register(ctx context.Context, req models.RegisterRequest) error {
	s.lastReg = req
	return s.registerErr
}
