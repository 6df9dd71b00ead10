package cli

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/common"
)

const (
	testEmail    = "ann@example.com"
	testPassword = "secret1"
	testToken    = "tok-1"
)

// fakeServer is a small in-memory rendition of the document API.
type fakeServer struct {
	*httptest.Server

	mu         sync.Mutex
	revoked    bool
	accounts   map[string]string
	registered []models.RegisterRequest
	nextID     int
	docs       []models.Document
	profile    models.Profile
	uploads    map[string]string
	updates    []models.ProfileUpdate
	asked      []models.QuestionRequest
	deleted    []string
	requests   int
}

// testSummary is longer than the list preview.
const testSummary = "Revenue grew on the back of strong subscription renewals, while hardware sales stayed flat. " +
	"Operating costs fell slightly. Outlook remains cautious for the fourth quarter."

func newFakeServer(t *testing.T) *fakeServer {
	t.Helper()
	f := &fakeServer{
		nextID:   3,
		accounts: map[string]string{testEmail: testPassword},
		uploads:  map[string]string{},
		docs: []models.Document{
			{ID: "1", Title: "Quarterly report", Filename: "q3.pdf", FileType: ".pdf", FileSize: 2048, Keywords: models.Keywords{"finance", "q3"}, Summary: testSummary},
			{ID: "2", Title: "Handbook", Filename: "handbook.docx", FileType: ".docx", FileSize: 1536, Keywords: models.Keywords{}},
		},
		profile: models.Profile{User: models.User{
			ID: "7", Username: "ann", Email: testEmail, FullName: "Ann Lee", Role: models.RoleUser, IsActive: true,
		}},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("POST /api/v1/auth/login", f.login)
	mux.HandleFunc("POST /api/v1/auth/register", f.register)
	mux.HandleFunc("GET /api/v1/auth/me", f.authed(f.me))
	mux.HandleFunc("GET /api/v1/documents/", f.authed(f.listDocuments))
	mux.HandleFunc("POST /api/v1/documents/upload", f.authed(f.upload))
	mux.HandleFunc("DELETE /api/v1/documents/{id}", f.authed(f.deleteDocument))
	mux.HandleFunc("POST /api/v1/search/question", f.authed(f.ask))
	mux.HandleFunc("GET /api/v1/users/get/{id}", f.authed(f.getProfile))
	mux.HandleFunc("PUT /api/v1/users/{id}", f.authed(f.updateProfile))
	mux.HandleFunc("GET /api/v1/dashboard/stats", f.authed(f.stats))

	f.Server = httptest.NewServer(mux)
	t.Cleanup(f.Close)
	return f
}

func (f *fakeServer) revoke() {
	f.mu.Lock()
	f.revoked = true
	f.mu.Unlock()
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func detail(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"detail": msg})
}

func (f *fakeServer) authed(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.requests++
		ok := !f.revoked && r.Header.Get(common.AuthorizationHeader) == common.BearerPrefix+testToken
		f.mu.Unlock()
		if !ok {
			detail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		h(w, r)
	}
}

func (f *fakeServer) login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusBadRequest, "bad body")
		return
	}
	f.mu.Lock()
	pw, known := f.accounts[req.Email]
	f.mu.Unlock()
	if !known || pw != req.Password {
		detail(w, http.StatusUnauthorized, "Incorrect email or password")
		return
	}
	writeJSON(w, http.StatusOK, models.TokenResponse{AccessToken: testToken, TokenType: "bearer"})
}

func (f *fakeServer) register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusBadRequest, "bad body")
		return
	}
	f.mu.Lock()
	_, taken := f.accounts[req.Email]
	if !taken {
		f.accounts[req.Email] = req.Password
		f.registered = append(f.registered, req)
	}
	f.mu.Unlock()
	if taken {
		detail(w, http.StatusBadRequest, "Email already registered")
		return
	}
	writeJSON(w, http.StatusCreated, models.User{ID: "9", Username: req.Username, Email: req.Email, FullName: req.FullName, Role: models.RoleUser, IsActive: true})
}

func (f *fakeServer) me(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	u := f.profile.User
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, u)
}

func (f *fakeServer) listDocuments(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	docs := append([]models.Document(nil), f.docs...)
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, docs)
}

func (f *fakeServer) upload(w http.ResponseWriter, r *http.Request) {
	file, hdr, err := r.FormFile("file")
	if err != nil {
		detail(w, http.StatusBadRequest, "no file")
		return
	}
	defer file.Close()
	body, _ := io.ReadAll(file)

	f.mu.Lock()
	id := strconv.Itoa(f.nextID)
	f.nextID++
	doc := models.Document{ID: models.ID(id), Title: hdr.Filename, Filename: hdr.Filename, FileType: ".txt", FileSize: int64(len(body)), Keywords: models.Keywords{}}
	f.docs = append(f.docs, doc)
	f.uploads[hdr.Filename] = string(body)
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, doc)
}

func (f *fakeServer) deleteDocument(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, d := range f.docs {
		if string(d.ID) == id {
			f.docs = append(f.docs[:i], f.docs[i+1:]...)
			f.deleted = append(f.deleted, id)
			writeJSON(w, http.StatusOK, map[string]string{"message": "Document deleted"})
			return
		}
	}
	detail(w, http.StatusNotFound, "Document not found")
}

func (f *fakeServer) ask(w http.ResponseWriter, r *http.Request) {
	var req models.QuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		detail(w, http.StatusBadRequest, "bad body")
		return
	}
	f.mu.Lock()
	f.asked = append(f.asked, req)
	f.mu.Unlock()

	writeJSON(w, http.StatusOK, models.QuestionResult{
		Question:      req.Question,
		Answer:        "Revenue grew by 12%.",
		DocumentID:    req.DocumentID,
		DocumentTitle: "Quarterly report",
		Sources:       []models.Source{{ChunkIndex: 0, Similarity: 0.8766, ChunkText: "Revenue grew by 12% year over year."}},
	})
}

func (f *fakeServer) getProfile(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	p := f.profile
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (f *fakeServer) updateProfile(w http.ResponseWriter, r *http.Request) {
	var upd models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		detail(w, http.StatusBadRequest, "bad body")
		return
	}
	f.mu.Lock()
	f.updates = append(f.updates, upd)
	f.profile.FullName = upd.FullName
	f.profile.Email = upd.Email
	p := f.profile
	f.mu.Unlock()
	writeJSON(w, http.StatusOK, p)
}

func (f *fakeServer) stats(w http.ResponseWriter, r *http.Request) {
	title := "Quarterly report"
	writeJSON(w, http.StatusOK, models.DashboardStats{
		TotalDocuments:         2,
		RecentDocuments:        1,
		SearchAndQuestionCount: 4,
		StorageUsed:            3 << 20,
		RecentActivities: []models.Activity{
			{Type: models.ActivityUpload, Description: "Uploaded a document", TimeAgo: "2 hours ago", DocumentTitle: &title},
		},
	})
}

func (f *fakeServer) Registered() []models.RegisterRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.RegisterRequest(nil), f.registered...)
}

func (f *fakeServer) Upload(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.uploads[name]
}

func (f *fakeServer) Updates() []models.ProfileUpdate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.ProfileUpdate(nil), f.updates...)
}

func (f *fakeServer) Asked() []models.QuestionRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.QuestionRequest(nil), f.asked...)
}

func (f *fakeServer) Deleted() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deleted...)
}
