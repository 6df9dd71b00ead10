package models

// Profile is the full user record served by the users endpoints.
type Profile struct {
	User
	CreatedAt Timestamp  `json:"created_at"`
	LastLogin *Timestamp `json:"last_login,omitempty"`
}

// ProfileUpdate is the body of PUT /users/{id}. The password pair is only
// sent when the user asked to change it.
type ProfileUpdate struct {
	FullName    string `json:"full_name"`
	Email       string `json:"email"`
	OldPassword string `json:"old_password,omitempty"`
	Password    string `json:"password,omitempty"`
}

type AvatarUploadResponse struct {
	Message           string `json:"message,omitempty"`
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}
