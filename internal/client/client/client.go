package client

import (
	"context"
	"io"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

type Client interface {
	SetToken(token string)
	ClearToken()
	HasToken() bool

	Login(ctx context.Context, email, password string) (string, error)
	Me(ctx context.Context) (*models.User, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)

	ListDocuments(ctx context.Context) ([]models.Document, error)
	UploadDocument(ctx context.Context, name string, r io.Reader) (*models.Document, error)
	DeleteDocument(ctx context.Context, id models.ID) error

	AskQuestion(ctx context.Context, req models.QuestionRequest) (*models.QuestionResult, error)

	GetProfile(ctx context.Context, id models.ID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id models.ID, upd models.ProfileUpdate) (*models.Profile, error)
	UploadAvatar(ctx context.Context, id models.ID, name, contentType string, r io.Reader) (*models.AvatarUploadResponse, error)

	DashboardStats(ctx context.Context) (*models.DashboardStats, error)

	Ping(ctx context.Context) error
	ResolveURL(ref string) string
	Metrics() prometheus.Gatherer
}

var _ Client = (*HTTPClient)(nil)
