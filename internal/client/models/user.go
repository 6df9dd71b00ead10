// Package models holds the records the docdesk client exchanges with the
// document-management API.
package models

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the authenticated identity held by the session store.
type User struct {
	ID                ID     `json:"id"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	FullName          string `json:"full_name,omitempty"`
	Role              Role   `json:"role"`
	IsActive          bool   `json:"is_active"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// DisplayName is the full name when set, otherwise the username.
func (u User) DisplayName() string {
	if u.FullName != "" {
		return u.FullName
	}
	return u.Username
}

// UserPatch lists the fields a view may change on the current user.
// Nil fields are left untouched by Apply.
type UserPatch struct {
	Username          *string
	Email             *string
	FullName          *string
	Role              *Role
	IsActive          *bool
	ProfilePictureURL *string
}

// Apply returns u with the non-nil fields of p copied over it.
func (p UserPatch) Apply(u User) User {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
	if p.ProfilePictureURL != nil {
		u.ProfilePictureURL = *p.ProfilePictureURL
	}
	return u
}

// PatchFromProfile builds the patch that copies every user-visible field of
// a freshly saved profile.
func PatchFromProfile(p Profile) UserPatch {
	return UserPatch{
		Username:          &p.Username,
		Email:             &p.Email,
		FullName:          &p.FullName,
		Role:              &p.Role,
		IsActive:          &p.IsActive,
		ProfilePictureURL: &p.ProfilePictureURL,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name,omitempty"`
}
