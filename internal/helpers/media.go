package helpers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const (
	RoomFolder  = "rooms"
	VenueFolder = "venues"
	TourFolder  = "virtual-tours"
)

var ErrUnsupportedMedia = errors.New("media must be an http(s) URL or a data URI")

// MediaUploader stores an image or video and returns its public URL.
type MediaUploader interface {
	Upload(ctx context.Context, source, folder string) (string, error)
}

type cloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewMediaUploader returns a Cloudinary-backed uploader, or a pass-through one when cld is nil.
func NewMediaUploader(cld *cloudinary.Cloudinary) MediaUploader {
	if cld == nil {
		return linkUploader{}
	}
	return &cloudinaryUploader{cld: cld}
}

func (u *cloudinaryUploader) Upload(ctx context.Context, source, folder string) (string, error) {
	source = strings.TrimSpace(source)
	if !IsMediaSource(source) {
		return "", ErrUnsupportedMedia
	}

	res, err := u.cld.Upload.Upload(ctx, source, uploader.UploadParams{
		Folder: folder,
		Tags:   []string{"resort-app"},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload media to %s: %w", folder, err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("failed to upload media to %s: %s", folder, res.Error.Message)
	}
	return res.SecureURL, nil
}

// linkUploader keeps remote URLs as they are; used when no media host is configured.
type linkUploader struct{}

func (linkUploader) Upload(_ context.Context, source, _ string) (string, error) {
	source = strings.TrimSpace(source)
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		return "", ErrUnsupportedMedia
	}
	return source, nil
}

func IsMediaSource(s string) bool {
	return strings.HasPrefix(s, "http://") ||
		strings.HasPrefix(s, "https://") ||
		strings.HasPrefix(s, "data:image/") ||
		strings.HasPrefix(s, "data:video/")
}
