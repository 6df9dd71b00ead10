package views

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/docdesk/internal/client/client"
	"github.com/dmitrijs2005/docdesk/internal/client/models"
	"github.com/dmitrijs2005/docdesk/internal/logging"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func pngOfSize(n int) []byte {
	b := make([]byte, n)
	copy(b, pngHeader)
	return b
}

func newProfileFixture(t *testing.T, picture string) (*Profile, *fakeAPI, *fakeSession) {
	t.Helper()
	api := &fakeAPI{
		profile: &models.Profile{User: models.User{
			ID: "4", Username: "ann", Email: "ann@example.com", FullName: "Ann", Role: models.RoleUser,
			IsActive: true, ProfilePictureURL: picture,
		}},
		avatarRes: &models.AvatarUploadResponse{Message: "ok"},
	}
	sess := &fakeSession{user: &models.User{ID: "4", Username: "ann", Email: "ann@example.com"}}
	v := NewProfile(api, sess, logging.Discard())
	require.NoError(t, v.Load(context.Background()))
	return v, api, sess
}

func TestPasswordChange(t *testing.T) {
	cases := []struct {
		name       string
		form       ProfileForm
		wantChange bool
		wantErr    error
	}{
		{"hidden sub-form ignored", ProfileForm{OldPassword: "x"}, false, nil},
		{"all empty", ProfileForm{ShowPasswordFields: true}, false, nil},
		{"only old", ProfileForm{ShowPasswordFields: true, OldPassword: "oldpass"}, false, ErrPasswordFieldsRequired},
		{"only new", ProfileForm{ShowPasswordFields: true, NewPassword: "newpass"}, false, ErrPasswordFieldsRequired},
		{"missing confirm", ProfileForm{ShowPasswordFields: true, OldPassword: "oldpass", NewPassword: "newpass"}, false, ErrPasswordFieldsRequired},
		{"mismatch", ProfileForm{ShowPasswordFields: true, OldPassword: "oldpass", NewPassword: "newpass", ConfirmPassword: "newpasz"}, false, ErrPasswordMismatch},
		{"unchanged", ProfileForm{ShowPasswordFields: true, OldPassword: "samepass", NewPassword: "samepass", ConfirmPassword: "samepass"}, false, ErrPasswordUnchanged},
		{"length 5", ProfileForm{ShowPasswordFields: true, OldPassword: "oldpass", NewPassword: "abcde", ConfirmPassword: "abcde"}, false, ErrPasswordTooShort},
		{"length 6", ProfileForm{ShowPasswordFields: true, OldPassword: "oldpass", NewPassword: "abcdef", ConfirmPassword: "abcdef"}, true, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			change, err := tc.form.PasswordChange()
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tc.wantChange, change)
		})
	}
}

func TestProfile_Load(t *testing.T) {
	v, _, _ := newProfileFixture(t, "/uploads/4.jpg")

	p, ok := v.Profile()
	require.True(t, ok)
	require.Equal(t, "Ann", p.FullName)
	require.Equal(t, ProfileForm{FullName: "Ann", Email: "ann@example.com"}, v.Form())
	require.Equal(t, "http://api.test/uploads/4.jpg", v.Preview())
}

func TestProfile_LoadRequiresSession(t *testing.T) {
	v := NewProfile(&fakeAPI{}, &fakeSession{}, logging.Discard())
	require.ErrorIs(t, v.Load(context.Background()), errNoUser)
}

func TestProfile_AvatarTooLarge(t *testing.T) {
	v, api, _ := newProfileFixture(t, "/uploads/4.jpg")
	before := v.Preview()

	err := v.StageAvatar("big.png", bytes.NewReader(pngOfSize(6<<20)))
	require.ErrorIs(t, err, ErrAvatarTooLarge)
	require.Equal(t, before, v.Preview())
	require.False(t, v.HasStagedAvatar())
	require.Equal(t, []string{"get-profile"}, api.Calls())
}

func TestProfile_AvatarWrongType(t *testing.T) {
	v, _, _ := newProfileFixture(t, "")

	err := v.StageAvatar("anim.gif", strings.NewReader("GIF89a\x01\x00\x01\x00\x00\x00\x00"))
	require.ErrorIs(t, err, ErrAvatarType)
	require.Equal(t, "", v.Preview())
	require.False(t, v.HasStagedAvatar())
}

func TestProfile_AvatarRejectedAfterValidOneRestoresSaved(t *testing.T) {
	v, _, _ := newProfileFixture(t, "/uploads/4.jpg")

	require.NoError(t, v.StageAvatar("ok.png", bytes.NewReader(pngOfSize(1<<20))))
	require.True(t, strings.HasPrefix(v.Preview(), "blob:"))

	require.ErrorIs(t, v.StageAvatar("bad.gif", strings.NewReader("GIF89a")), ErrAvatarType)
	require.Equal(t, "http://api.test/uploads/4.jpg", v.Preview())
	require.False(t, v.HasStagedAvatar())
}

func TestProfile_AvatarAccepted(t *testing.T) {
	v, _, _ := newProfileFixture(t, "")

	require.NoError(t, v.StageAvatar("/home/ann/me.png", bytes.NewReader(pngOfSize(1<<20))))
	require.True(t, v.HasStagedAvatar())
	require.True(t, strings.HasPrefix(v.Preview(), "blob:"))
}

func TestProfile_AvatarTypeFollowsContentNotExtension(t *testing.T) {
	v, _, _ := newProfileFixture(t, "")

	require.NoError(t, v.StageAvatar("x.gif", bytes.NewReader(pngOfSize(2048))))
	require.True(t, v.HasStagedAvatar())
	require.Equal(t, "image/png", v.avatar.contentType)

	require.ErrorIs(t, v.StageAvatar("photo.jpg", strings.NewReader("plain text, not a picture")), ErrAvatarType)
	require.False(t, v.HasStagedAvatar())
}

func TestProfile_SaveFieldsOnly(t *testing.T) {
	v, api, sess := newProfileFixture(t, "")
	v.Edit(func(f *ProfileForm) { f.FullName = "Ann Lee" })

	require.NoError(t, v.Save(context.Background()))
	require.Equal(t, []string{"get-profile", "update-profile"}, api.Calls())
	require.Equal(t, models.ProfileUpdate{FullName: "Ann Lee", Email: "ann@example.com"}, api.lastUpdate)
	require.Equal(t, "Ann Lee", sess.user.FullName)
}

func TestProfile_SaveInvalidPasswordSkipsNetwork(t *testing.T) {
	v, api, _ := newProfileFixture(t, "")
	v.Edit(func(f *ProfileForm) {
		f.ShowPasswordFields = true
		f.OldPassword = "oldpass"
		f.NewPassword = "abcde"
		f.ConfirmPassword = "abcde"
	})

	require.ErrorIs(t, v.Save(context.Background()), ErrPasswordTooShort)
	require.Equal(t, []string{"get-profile"}, api.Calls())
}

func TestProfile_SaveWithPassword(t *testing.T) {
	v, api, _ := newProfileFixture(t, "")
	v.Edit(func(f *ProfileForm) {
		f.ShowPasswordFields = true
		f.OldPassword = "oldpass"
		f.NewPassword = "abcdef"
		f.ConfirmPassword = "abcdef"
	})

	require.NoError(t, v.Save(context.Background()))
	assert.Equal(t, "oldpass", api.lastUpdate.OldPassword)
	assert.Equal(t, "abcdef", api.lastUpdate.Password)

	form := v.Form()
	assert.False(t, form.ShowPasswordFields)
	assert.Empty(t, form.OldPassword+form.NewPassword+form.ConfirmPassword)
}

func TestProfile_SaveAvatarUsesReturnedURL(t *testing.T) {
	v, api, sess := newProfileFixture(t, "")
	api.avatarRes = &models.AvatarUploadResponse{ProfilePictureURL: "/uploads/custom.png"}
	require.NoError(t, v.StageAvatar("me.png", bytes.NewReader(pngOfSize(2048))))

	require.NoError(t, v.Save(context.Background()))
	require.Equal(t, []string{"get-profile", "update-profile", "upload-avatar"}, api.Calls())
	require.Equal(t, "image/png", api.avatarType)
	require.Len(t, api.avatarPayload, 2048)
	require.Equal(t, "/uploads/custom.png", sess.user.ProfilePictureURL)
	require.Equal(t, "http://api.test/uploads/custom.png", v.Preview())
	require.False(t, v.HasStagedAvatar())
}

func TestProfile_SaveAvatarRereadsProfileWhenURLMissing(t *testing.T) {
	v, api, sess := newProfileFixture(t, "")
	require.NoError(t, v.StageAvatar("me.png", bytes.NewReader(pngOfSize(2048))))

	require.NoError(t, v.Save(context.Background()))
	require.Equal(t, []string{"get-profile", "update-profile", "upload-avatar", "get-profile"}, api.Calls())
	require.Equal(t, "/uploads/4.jpg", sess.user.ProfilePictureURL)
	require.Equal(t, "http://api.test/uploads/4.jpg", v.Preview())
}

func TestProfile_SaveFailureRestoresPreview(t *testing.T) {
	v, api, sess := newProfileFixture(t, "/uploads/4.jpg")
	api.updateErr = &client.APIError{StatusCode: http.StatusBadRequest, Detail: "Email already registered"}
	require.NoError(t, v.StageAvatar("me.png", bytes.NewReader(pngOfSize(2048))))

	err := v.Save(context.Background())
	require.EqualError(t, err, "Email already registered")
	require.False(t, v.HasStagedAvatar())
	require.Equal(t, "http://api.test/uploads/4.jpg", v.Preview())
	require.Empty(t, sess.patches)
}

func TestProfile_AvatarUploadFailureKeepsSavedFields(t *testing.T) {
	v, api, sess := newProfileFixture(t, "")
	api.avatarErr = &client.APIError{StatusCode: http.StatusForbidden}
	v.Edit(func(f *ProfileForm) { f.FullName = "Ann Lee" })
	require.NoError(t, v.StageAvatar("me.png", bytes.NewReader(pngOfSize(2048))))

	err := v.Save(context.Background())
	require.EqualError(t, err, "failed to upload profile picture")
	require.ErrorIs(t, err, client.ErrForbidden)
	require.Equal(t, "Ann Lee", sess.user.FullName)
	require.False(t, v.HasStagedAvatar())
	require.Equal(t, "", v.Preview())
}
