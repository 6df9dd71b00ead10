package views

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"path/filepath"
	"sync"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

const (
	MinPasswordLength = 6
	MaxAvatarSize     = 5 << 20

	// previewScheme marks a preview that points at a staged, unsaved image.
	previewScheme = "blob:"
)

var avatarTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

type ProfileAPI interface {
	GetProfile(ctx context.Context, id models.ID) (*models.Profile, error)
	UpdateProfile(ctx context.Context, id models.ID, upd models.ProfileUpdate) (*models.Profile, error)
	UploadAvatar(ctx context.Context, id models.ID, name, contentType string, r io.Reader) (*models.AvatarUploadResponse, error)
	ResolveURL(ref string) string
}

// UserSession is what the profile needs from the session store.
type UserSession interface {
	Require() (models.User, error)
	UpdateUser(patch models.UserPatch)
}

// ProfileForm is the staged, unsaved state of the profile editor.
type ProfileForm struct {
	FullName string
	Email    string

	ShowPasswordFields bool
	OldPassword        string
	NewPassword        string
	ConfirmPassword    string
}

// PasswordChange validates the password sub-form. change is false when the
// sub-form is hidden or left empty.
func (f ProfileForm) PasswordChange() (change bool, err error) {
	if !f.ShowPasswordFields {
		return false, nil
	}
	if f.OldPassword == "" && f.NewPassword == "" && f.ConfirmPassword == "" {
		return false, nil
	}
	switch {
	case f.OldPassword == "" || f.NewPassword == "" || f.ConfirmPassword == "":
		return false, ErrPasswordFieldsRequired
	case f.NewPassword != f.ConfirmPassword:
		return false, ErrPasswordMismatch
	case f.NewPassword == f.OldPassword:
		return false, ErrPasswordUnchanged
	case utf8.RuneCountInString(f.NewPassword) < MinPasswordLength:
		return false, ErrPasswordTooShort
	}
	return true, nil
}

func (f ProfileForm) update() (models.ProfileUpdate, error) {
	upd := models.ProfileUpdate{FullName: f.FullName, Email: f.Email}
	change, err := f.PasswordChange()
	if err != nil {
		return upd, err
	}
	if change {
		upd.OldPassword = f.OldPassword
		upd.Password = f.NewPassword
	}
	return upd, nil
}

type stagedAvatar struct {
	name        string
	contentType string
	data        []byte
}

// Profile is the profile editor of the signed-in user.
type Profile struct {
	api  ProfileAPI
	sess UserSession
	log  logging.Logger

	mu      sync.RWMutex
	profile *models.Profile
	form    ProfileForm
	avatar  *stagedAvatar
	preview string

	loading busy
	saving  busy
}

func NewProfile(api ProfileAPI, sess UserSession, log logging.Logger) *Profile {
	if log == nil {
		log = logging.Discard()
	}
	return &Profile{api: api, sess: sess, log: log.With("view", "profile")}
}

// Load fetches the full profile of the session user and resets the form.
func (v *Profile) Load(ctx context.Context) error {
	u, err := v.sess.Require()
	if err != nil {
		return err
	}
	if err := v.loading.enter(); err != nil {
		return err
	}
	defer v.loading.leave()

	p, err := v.api.GetProfile(ctx, u.ID)
	if err != nil {
		return fail(err, "failed to load profile")
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.profile = p
	v.form = ProfileForm{FullName: p.FullName, Email: p.Email}
	v.avatar = nil
	v.preview = p.ProfilePictureURL
	return nil
}

func (v *Profile) Profile() (models.Profile, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.profile == nil {
		return models.Profile{}, false
	}
	return *v.profile, true
}

func (v *Profile) Form() ProfileForm {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.form
}

// Edit changes the staged form. Nothing is sent until Save.
func (v *Profile) Edit(fn func(f *ProfileForm)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.form)
}

// Preview is the avatar to show: a "blob:" reference while a new image is
// staged, otherwise the saved picture as an absolute URL, or "".
func (v *Profile) Preview() string {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.avatar != nil {
		return v.preview
	}
	return v.api.ResolveURL(v.preview)
}

// HasStagedAvatar reports whether Save will upload a new picture.
func (v *Profile) HasStagedAvatar() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.avatar != nil
}

// StageAvatar validates an image for upload. Rejected files leave the
// previously saved picture in place and never reach the network.
func (v *Profile) StageAvatar(name string, r io.Reader) error {
	data, err := io.ReadAll(io.LimitReader(r, MaxAvatarSize+1))
	if err != nil {
		v.DiscardAvatar()
		return err
	}
	if len(data) > MaxAvatarSize {
		v.DiscardAvatar()
		return ErrAvatarTooLarge
	}
	// The sniffed content decides the type; the file extension is ignored.
	ct := http.DetectContentType(data)
	if !avatarTypes[ct] {
		v.DiscardAvatar()
		return ErrAvatarType
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.avatar = &stagedAvatar{name: filepath.Base(name), contentType: ct, data: data}
	v.preview = previewScheme + uuid.NewString()
	return nil
}

// DiscardAvatar drops a staged image and restores the saved picture.
func (v *Profile) DiscardAvatar() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.discardAvatarLocked()
}

func (v *Profile) discardAvatarLocked() {
	v.avatar = nil
	v.preview = ""
	if v.profile != nil {
		v.preview = v.profile.ProfilePictureURL
	}
}

// Save sends the profile fields, then the staged picture if there is one,
// and pushes the result into the session.
func (v *Profile) Save(ctx context.Context) error {
	u, err := v.sess.Require()
	if err != nil {
		return err
	}

	v.mu.RLock()
	form := v.form
	avatar := v.avatar
	v.mu.RUnlock()

	upd, err := form.update()
	if err != nil {
		return err
	}

	if err := v.saving.enter(); err != nil {
		return err
	}
	defer v.saving.leave()

	p, err := v.api.UpdateProfile(ctx, u.ID, upd)
	if err != nil {
		v.DiscardAvatar()
		return fail(err, "failed to update profile")
	}
	v.commit(p, avatar != nil)

	if avatar == nil {
		v.log.Info(ctx, "profile saved", "user", u.ID)
		return nil
	}

	res, err := v.api.UploadAvatar(ctx, u.ID, avatar.name, avatar.contentType, bytes.NewReader(avatar.data))
	if err != nil {
		v.DiscardAvatar()
		return fail(err, "failed to upload profile picture")
	}

	if res.ProfilePictureURL != "" {
		p.ProfilePictureURL = res.ProfilePictureURL
	} else {
		// The upload response does not say where the picture went; ask.
		fresh, err := v.api.GetProfile(ctx, u.ID)
		if err != nil {
			v.DiscardAvatar()
			return fail(err, "failed to reload profile")
		}
		p = fresh
	}
	v.commit(p, false)

	v.log.Info(ctx, "profile saved", "user", u.ID, "avatar", true)
	return nil
}

// commit makes p the saved profile, resets the form to it and
// updates the session. keepAvatar leaves a staged image in place.
func (v *Profile) commit(p *models.Profile, keepAvatar bool) {
	v.mu.Lock()
	v.profile = p
	v.form = ProfileForm{FullName: p.FullName, Email: p.Email}
	if !keepAvatar {
		v.discardAvatarLocked()
	}
	v.mu.Unlock()

	v.sess.UpdateUser(models.PatchFromProfile(*p))
}

func (v *Profile) Busy() bool {
	return v.loading.active() || v.saving.active()
}
