// Package usecase implements profile reads, edits, avatar upload and activity stats.
package usecase

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	authentity "orderup_backend/internal/feature/auth/domain/entity"
	"orderup_backend/internal/feature/profile/domain/entity"
)

// MaxImageSize is the largest accepted avatar upload.
const MaxImageSize = 5 << 20

const sniffLen = 512

var imageExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// ProfileRepository reads and edits the user row behind a profile.
type ProfileRepository interface {
	FindByID(ctx context.Context, userID uint) (*authentity.User, error)
	Update(ctx context.Context, userID uint, fields map[string]any) (*authentity.User, error)
	Activity(ctx context.Context, userID uint) (*entity.Activity, error)
}

// ImageStore persists uploaded files and returns their public path.
type ImageStore interface {
	Save(ctx context.Context, relPath string, r io.Reader) (string, error)
	Delete(ctx context.Context, publicPath string) error
}

// UpdateInput is a partial profile edit; nil fields are left unchanged.
type UpdateInput struct {
	FullName    *string
	PhoneNumber *string
}

// Upload is an image received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

// ProfileUsecase manages the signed-in user's own profile.
type ProfileUsecase struct {
	repo   ProfileRepository
	images ImageStore
	now    func() time.Time
}

// NewProfileUsecase creates a ProfileUsecase.
func NewProfileUsecase(repo ProfileRepository, images ImageStore) *ProfileUsecase {
	return &ProfileUsecase{repo: repo, images: images, now: time.Now}
}

// GetProfile returns the user's profile.
func (u *ProfileUsecase) GetProfile(ctx context.Context, userID uint) (*authentity.User, error) {
	return u.repo.FindByID(ctx, userID)
}

// UpdateProfile changes the name and/or phone number.
func (u *ProfileUsecase) UpdateProfile(ctx context.Context, userID uint, in UpdateInput) (*authentity.User, error) {
	fields := map[string]any{}
	if in.FullName != nil {
		name := strings.TrimSpace(*in.FullName)
		if name == "" {
			return nil, ErrBlankField
		}
		fields["full_name"] = name
	}
	if in.PhoneNumber != nil {
		phone := strings.TrimSpace(*in.PhoneNumber)
		if phone == "" {
			return nil, ErrBlankField
		}
		fields["phone_number"] = phone
	}
	if len(fields) == 0 {
		return u.repo.FindByID(ctx, userID)
	}
	return u.repo.Update(ctx, userID, fields)
}

// UploadImage stores a new avatar and removes the previous file best effort.
func (u *ProfileUsecase) UploadImage(ctx context.Context, userID uint, up Upload) (*authentity.User, error) {
	if !strings.HasPrefix(up.ContentType, "image/") {
		return nil, ErrNotAnImage
	}
	if up.Size > MaxImageSize {
		return nil, ErrImageTooLarge
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(up.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}
	head = head[:n]
	sniffed := http.DetectContentType(head)
	if !strings.HasPrefix(sniffed, "image/") {
		return nil, ErrNotAnImage
	}

	current, err := u.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	relPath := fmt.Sprintf("profiles/profile-%d-%d%s", userID, u.now().UnixMilli(), extensionFor(up.Filename, sniffed))
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), up.Body), MaxImageSize)
	publicPath, err := u.images.Save(ctx, relPath, body)
	if err != nil {
		return nil, err
	}

	updated, err := u.repo.Update(ctx, userID, map[string]any{"profile_image": publicPath})
	if err != nil {
		if derr := u.images.Delete(ctx, publicPath); derr != nil {
			slog.Warn("failed to remove orphaned upload", "path", publicPath, "error", derr)
		}
		return nil, err
	}

	if current.ProfileImage != "" && current.ProfileImage != publicPath {
		if err := u.images.Delete(ctx, current.ProfileImage); err != nil {
			slog.Warn("failed to delete old profile image", "user_id", userID, "path", current.ProfileImage, "error", err)
		}
	}
	return updated, nil
}

// Stats summarises the user's activity.
func (u *ProfileUsecase) Stats(ctx context.Context, userID uint) (*entity.Stats, error) {
	user, err := u.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	activity, err := u.repo.Activity(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &entity.Stats{
		Activity: *activity,
		Years:    entity.MembershipYears(user.CreatedAt, u.now()),
	}, nil
}

// extensionFor keeps a known image extension from the client filename, else derives one from the sniffed type.
func extensionFor(filename, sniffed string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	for _, known := range imageExtensions {
		if ext == known {
			return ext
		}
	}
	if derived, ok := imageExtensions[sniffed]; ok {
		return derived
	}
	return ".jpg"
}
