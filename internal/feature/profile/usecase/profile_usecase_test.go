package usecase

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authentity "orderup_backend/internal/feature/auth/domain/entity"
	"orderup_backend/internal/feature/profile/domain/entity"
	"orderup_backend/internal/platform/storage"
	"orderup_backend/internal/shared/apperr"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

type mockProfileRepository struct {
	user      authentity.User
	updates   []map[string]any
	UpdateErr error
	activity  entity.Activity
}

func (m *mockProfileRepository) FindByID(_ context.Context, userID uint) (*authentity.User, error) {
	if userID != m.user.ID {
		return nil, ErrProfileNotFound
	}
	u := m.user
	return &u, nil
}

func (m *mockProfileRepository) Update(_ context.Context, userID uint, fields map[string]any) (*authentity.User, error) {
	m.updates = append(m.updates, fields)
	if m.UpdateErr != nil {
		return nil, m.UpdateErr
	}
	if v, ok := fields["full_name"]; ok {
		m.user.FullName = v.(string)
	}
	if v, ok := fields["phone_number"]; ok {
		m.user.PhoneNumber = v.(string)
	}
	if v, ok := fields["profile_image"]; ok {
		m.user.ProfileImage = v.(string)
	}
	u := m.user
	return &u, nil
}

func (m *mockProfileRepository) Activity(context.Context, uint) (*entity.Activity, error) {
	a := m.activity
	return &a, nil
}

type fakeImageStore struct {
	saved   map[string][]byte
	deleted []string
	SaveErr error
}

func (f *fakeImageStore) Save(_ context.Context, relPath string, r io.Reader) (string, error) {
	if f.SaveErr != nil {
		return "", f.SaveErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	if f.saved == nil {
		f.saved = map[string][]byte{}
	}
	public := "/uploads/" + relPath
	f.saved[public] = b
	return public, nil
}

func (f *fakeImageStore) Delete(_ context.Context, publicPath string) error {
	f.deleted = append(f.deleted, publicPath)
	return nil
}

func newTestUsecase(repo *mockProfileRepository, images ImageStore) *ProfileUsecase {
	uc := NewProfileUsecase(repo, images)
	uc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return uc
}

func ptr[T any](v T) *T { return &v }

func TestProfileUsecase_UpdateProfile(t *testing.T) {
	tests := []struct {
		name        string
		in          UpdateInput
		wantErr     error
		wantUpdates int
		wantName    string
	}{
		{"name only", UpdateInput{FullName: ptr("  Abebe Kebede ")}, nil, 1, "Abebe Kebede"},
		{"nothing to change", UpdateInput{}, nil, 0, "Abebe"},
		{"blank name", UpdateInput{FullName: ptr(" ")}, apperr.ErrInvalidArgument, 0, ""},
		{"blank phone", UpdateInput{PhoneNumber: ptr("")}, apperr.ErrInvalidArgument, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProfileRepository{user: authentity.User{ID: 7, FullName: "Abebe"}}
			uc := newTestUsecase(repo, &fakeImageStore{})

			got, err := uc.UpdateProfile(context.Background(), 7, tt.in)
			assert.Len(t, repo.updates, tt.wantUpdates)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, got.FullName)
		})
	}
}

func TestProfileUsecase_UpdateProfile_PhoneTaken(t *testing.T) {
	repo := &mockProfileRepository{user: authentity.User{ID: 7}, UpdateErr: ErrPhoneTaken}
	uc := newTestUsecase(repo, &fakeImageStore{})

	_, err := uc.UpdateProfile(context.Background(), 7, UpdateInput{PhoneNumber: ptr("+251900000002")})
	assert.ErrorIs(t, err, apperr.ErrConflict)
}

func TestProfileUsecase_UploadImage(t *testing.T) {
	repo := &mockProfileRepository{user: authentity.User{ID: 7, ProfileImage: "/uploads/profiles/old.png"}}
	images := &fakeImageStore{}
	uc := newTestUsecase(repo, images)

	got, err := uc.UploadImage(context.Background(), 7, Upload{
		Filename:    "me.PNG",
		ContentType: "image/png",
		Size:        int64(len(pngHeader)),
		Body:        bytes.NewReader(pngHeader),
	})
	require.NoError(t, err)

	want := "/uploads/profiles/profile-7-1700000000000.png"
	assert.Equal(t, want, got.ProfileImage)
	assert.Equal(t, pngHeader, images.saved[want])
	assert.Equal(t, []string{"/uploads/profiles/old.png"}, images.deleted)
}

func TestProfileUsecase_UploadImage_Rejections(t *testing.T) {
	tests := []struct {
		name    string
		up      Upload
		wantErr error
	}{
		{"declared non-image", Upload{Filename: "a.txt", ContentType: "text/plain", Body: strings.NewReader("hello")}, ErrNotAnImage},
		{"too large", Upload{Filename: "a.png", ContentType: "image/png", Size: MaxImageSize + 1, Body: bytes.NewReader(pngHeader)}, ErrImageTooLarge},
		{"content is not an image", Upload{Filename: "a.png", ContentType: "image/png", Size: 5, Body: strings.NewReader("<?php")}, ErrNotAnImage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockProfileRepository{user: authentity.User{ID: 7}}
			images := &fakeImageStore{}
			uc := newTestUsecase(repo, images)

			_, err := uc.UploadImage(context.Background(), 7, tt.up)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.ErrorIs(t, err, apperr.ErrInvalidArgument)
			assert.Empty(t, images.saved)
			assert.Empty(t, repo.updates)
		})
	}
}

func TestProfileUsecase_UploadImage_UpdateFailureRemovesNewFile(t *testing.T) {
	repo := &mockProfileRepository{user: authentity.User{ID: 7, ProfileImage: "/uploads/profiles/old.png"}, UpdateErr: errors.New("db down")}
	images := &fakeImageStore{}
	uc := newTestUsecase(repo, images)

	_, err := uc.UploadImage(context.Background(), 7, Upload{Filename: "me.png", ContentType: "image/png", Body: bytes.NewReader(pngHeader)})
	require.Error(t, err)
	assert.Equal(t, []string{"/uploads/profiles/profile-7-1700000000000.png"}, images.deleted)
}

func TestProfileUsecase_UploadImage_LocalStorage(t *testing.T) {
	dir := t.TempDir()
	repo := &mockProfileRepository{user: authentity.User{ID: 7}}
	uc := newTestUsecase(repo, storage.NewLocalStorage(storage.Config{Dir: dir, PublicPrefix: "/uploads"}))

	got, err := uc.UploadImage(context.Background(), 7, Upload{Filename: "", ContentType: "image/png", Body: bytes.NewReader(pngHeader)})
	require.NoError(t, err)
	assert.Equal(t, "/uploads/profiles/profile-7-1700000000000.png", got.ProfileImage)

	data, err := os.ReadFile(filepath.Join(dir, "profiles", "profile-7-1700000000000.png"))
	require.NoError(t, err)
	assert.Equal(t, pngHeader, data)
}

func TestProfileUsecase_Stats(t *testing.T) {
	repo := &mockProfileRepository{
		user:     authentity.User{ID: 7, CreatedAt: time.Date(2021, 5, 1, 0, 0, 0, 0, time.UTC)},
		activity: entity.Activity{Orders: 3, Reviews: 2, Addresses: 1, AverageRating: 4.5},
	}
	uc := newTestUsecase(repo, &fakeImageStore{})

	got, err := uc.Stats(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Orders)
	assert.InDelta(t, 4.5, got.AverageRating, 1e-9)
	// now is November 2023
	assert.Equal(t, 2, got.Years)

	_, err = uc.Stats(context.Background(), 8)
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestExtensionFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".jpg", extensionFor("photo.JPEG", "image/jpeg"))
	assert.Equal(t, ".png", extensionFor("shell.php", "image/png"))
	assert.Equal(t, ".webp", extensionFor("x.webp", "image/webp"))
	assert.Equal(t, ".jpg", extensionFor("noext", "image/x-icon"))
}
