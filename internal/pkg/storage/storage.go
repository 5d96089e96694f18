// Package storage uploads user images to object storage and returns their
// public URL.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

var ErrDisabled = errors.New("object storage is not configured")

type Uploader interface {
	Upload(ctx context.Context, bucket, objectPath string, file io.Reader) (publicURL string, err error)
}

// Cloudinary maps a bucket to a folder under the configured root folder.
type Cloudinary struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinary(url, rootFolder string) (*Cloudinary, error) {
	cld, err := cloudinary.NewFromURL(url)
	if err != nil {
		return nil, fmt.Errorf("cloudinary init: %w", err)
	}
	return &Cloudinary{cld: cld, folder: strings.Trim(rootFolder, "/")}, nil
}

func (c *Cloudinary) Upload(ctx context.Context, bucket, objectPath string, file io.Reader) (string, error) {
	overwrite := true
	res, err := c.cld.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:       path.Join(c.folder, bucket),
		PublicID:     strings.TrimSuffix(objectPath, path.Ext(objectPath)),
		Overwrite:    &overwrite,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", res.Error.Message)
	}
	return res.SecureURL, nil
}

// Disabled is used when no storage credentials are configured.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrDisabled
}
