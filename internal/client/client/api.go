package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
)

var errEmptyToken = errors.New("login response carries no access token")

// Login exchanges credentials for an access token. The token is returned,
// not installed; the session decides when to use it.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (string, error) {
	var out models.TokenResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("auth", "login"), req, &out); err != nil {
		return "", err
	}
	if out.AccessToken == "" {
		return "", errEmptyToken
	}
	return out.AccessToken, nil
}

func (c *HTTPClient) Me(ctx context.Context) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("auth", "me"), nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

func (c *HTTPClient) Register(ctx context.Context, req models.RegisterRequest) (*models.User, error) {
	var u models.User
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("auth", "register"), req, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListDocuments returns the caller's documents. The trailing slash is part
// of the route.
func (c *HTTPClient) ListDocuments(ctx context.Context) ([]models.Document, error) {
	var docs []models.Document
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("documents")+"/", nil, &docs); err != nil {
		return nil, err
	}
	if docs == nil {
		docs = []models.Document{}
	}
	return docs, nil
}

func (c *HTTPClient) UploadDocument(ctx context.Context, name string, r io.Reader) (*models.Document, error) {
	var doc models.Document
	if err := c.doMultipart(ctx, c.endpoint("documents", "upload"), name, "", r, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *HTTPClient) DeleteDocument(ctx context.Context, id models.ID) error {
	return c.doJSON(ctx, http.MethodDelete, c.endpoint("documents", url.PathEscape(id.String())), nil, nil)
}

func (c *HTTPClient) AskQuestion(ctx context.Context, req models.QuestionRequest) (*models.QuestionResult, error) {
	var res models.QuestionResult
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint("search", "question"), req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context, id models.ID) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("users", "get", url.PathEscape(id.String())), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, id models.ID, upd models.ProfileUpdate) (*models.Profile, error) {
	var p models.Profile
	if err := c.doJSON(ctx, http.MethodPut, c.endpoint("users", url.PathEscape(id.String())), upd, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *HTTPClient) UploadAvatar(ctx context.Context, id models.ID, name, contentType string, r io.Reader) (*models.AvatarUploadResponse, error) {
	var out models.AvatarUploadResponse
	target := c.endpoint("users", url.PathEscape(id.String()), "upload-profile-picture")
	if err := c.doMultipart(ctx, target, name, contentType, r, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DashboardStats(ctx context.Context) (*models.DashboardStats, error) {
	var s models.DashboardStats
	if err := c.doJSON(ctx, http.MethodGet, c.endpoint("dashboard", "stats"), nil, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// Ping probes the server's health endpoint, which lives outside the API
// prefix.
func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodGet, c.serverURL.String()+"/health", nil, nil)
}
