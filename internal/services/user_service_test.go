package services

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baharkarakas/ppob-wallet/internal/auth"
	"github.com/baharkarakas/ppob-wallet/internal/money"
	"github.com/baharkarakas/ppob-wallet/internal/repository/memory"
)

type fakeImages struct {
	saved   map[string]string
	deleted []string
	err     error
}

func (f *fakeImages) Save(_ context.Context, name string, r io.Reader, _ int64, _ string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	b, _ := io.ReadAll(r)
	if f.saved == nil {
		f.saved = map[string]string{}
	}
	f.saved[name] = string(b)
	return "http://localhost:3000/uploads/profile/" + name, nil
}

func (f *fakeImages) Delete(_ context.Context, name string) error {
	delete(f.saved, name)
	f.deleted = append(f.deleted, name)
	return nil
}

func newUsers(t *testing.T) (*UserService, *memory.Store, *auth.TokenCodec, *fakeImages) {
	t.Helper()
	c, err := auth.NewPayloadCipher("enc-key")
	require.NoError(t, err)
	codec := auth.NewTokenCodec("sign-secret", c, 0)
	store := memory.New()
	imgs := &fakeImages{}
	return NewUserService(store, codec, imgs, 1<<20), store, codec, imgs
}

func TestRegisterAndLogin(t *testing.T) {
	svc, store, codec, _ := newUsers(t)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, " User@Nutech.test ", "User", "Nutech", "abcdef1234"))
	u, err := store.GetByEmail(ctx, email)
	require.NoError(t, err)
	assert.NotEqual(t, "abcdef1234", u.PasswordHash)

	tok, err := svc.Login(ctx, email, "abcdef1234")
	require.NoError(t, err)
	claims, err := codec.Verify("Bearer " + tok)
	require.NoError(t, err)
	assert.Equal(t, email, claims.Email)
	assert.Equal(t, "User", claims.FirstName)
	assert.True(t, claims.Balance.Equal(money.Zero))
}

func TestRegisterDuplicate(t *testing.T) {
	svc, _, _, _ := newUsers(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, email, "User", "Nutech", "abcdef1234"))

	err := svc.Register(ctx, email, "Other", "Person", "abcdef1234")
	require.ErrorIs(t, err, ErrEmailTaken)
	assert.Equal(t, "Email sudah terdaftar", err.Error())

	p, err := svc.Profile(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, "User", p.FirstName)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	svc, _, _, _ := newUsers(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, email, "User", "Nutech", "abcdef1234"))

	_, err := svc.Login(ctx, email, "wrong-password")
	assert.ErrorIs(t, err, ErrBadCredentials)
	_, err = svc.Login(ctx, "ghost@nutech.test", "abcdef1234")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestUpdateProfile(t *testing.T) {
	svc, _, _, _ := newUsers(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, email, "User", "Nutech", "abcdef1234"))

	p, err := svc.UpdateProfile(ctx, email, "New", "Name")
	require.NoError(t, err)
	assert.Equal(t, "New", p.FirstName)
	assert.Equal(t, "Name", p.LastName)

	_, err = svc.UpdateProfile(ctx, "ghost@nutech.test", "a", "b")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUpdateProfileImage(t *testing.T) {
	svc, _, _, imgs := newUsers(t)
	ctx := context.Background()
	require.NoError(t, svc.Register(ctx, email, "User", "Nutech", "abcdef1234"))

	p, err := svc.UpdateProfileImage(ctx, email, ImageUpload{ContentType: "image/png", Size: 3, Body: strings.NewReader("png")})
	require.NoError(t, err)
	require.NotNil(t, p.ProfileImage)
	assert.True(t, strings.HasPrefix(*p.ProfileImage, "http://localhost:3000/uploads/profile/"))
	assert.True(t, strings.HasSuffix(*p.ProfileImage, ".png"))
	assert.Len(t, imgs.saved, 1)

	again, err := svc.Profile(ctx, email)
	require.NoError(t, err)
	assert.Equal(t, *p.ProfileImage, *again.ProfileImage)
}

func TestUpdateProfileImageRejects(t *testing.T) {
	svc, _, _, imgs := newUsers(t)
	ctx := context.Background()

	_, err := svc.UpdateProfileImage(ctx, email, ImageUpload{ContentType: "image/gif", Size: 3, Body: strings.NewReader("gif")})
	assert.ErrorIs(t, err, ErrImageFormat)
	_, err = svc.UpdateProfileImage(ctx, email, ImageUpload{ContentType: "image/jpeg", Size: 2 << 20, Body: strings.NewReader("")})
	assert.ErrorIs(t, err, ErrImageTooLarge)
	assert.Empty(t, imgs.saved)

	imgs.err = errors.New("disk full")
	_, err = svc.UpdateProfileImage(ctx, email, ImageUpload{ContentType: "image/jpeg", Size: 1, Body: strings.NewReader("j")})
	assert.Error(t, err)
}

func TestUpdateProfileImageUnknownUserRemovesUpload(t *testing.T) {
	svc, _, _, imgs := newUsers(t)

	_, err := svc.UpdateProfileImage(context.Background(), "ghost@nutech.test",
		ImageUpload{ContentType: "image/png", Size: 3, Body: strings.NewReader("png")})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.Empty(t, imgs.saved)
	require.Len(t, imgs.deleted, 1)
	assert.True(t, strings.HasSuffix(imgs.deleted[0], ".png"))
}
