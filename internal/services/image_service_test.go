package services

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"io"
	"strings"
	"testing"

	"foodshare/internal/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStorage struct {
	keys        []string
	contentType string
	size        int64
	putErr      error
}

func (f *fakeStorage) PutObject(ctx context.Context, objectPath, contentType string, reader io.Reader, size int64) (string, error) {
	if f.putErr != nil {
		return "", f.putErr
	}
	_, _ = io.Copy(io.Discard, reader)
	f.keys = append(f.keys, objectPath)
	f.contentType = contentType
	f.size = size
	return f.PublicURL(objectPath), nil
}

func (f *fakeStorage) RemoveObject(ctx context.Context, objectPath string) error { return nil }

func (f *fakeStorage) HealthCheck(ctx context.Context) error { return nil }

func (f *fakeStorage) PublicURL(objectPath string) string { return "http://assets/" + objectPath }

func samplePNG(t *testing.T, w, h int) *bytes.Buffer {
	t.Helper()
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf
}

func TestUploadDonationImage(t *testing.T) {
	store := &fakeStorage{}
	svc := NewImageService(store, 64)

	resp, err := svc.UploadDonationImage(context.Background(), 1, samplePNG(t, 256, 128))
	require.NoError(t, err)

	require.Len(t, store.keys, 1)
	assert.True(t, strings.HasPrefix(resp.ObjectKey, "donations/"))
	assert.True(t, strings.HasSuffix(resp.ObjectKey, ".jpg"))
	assert.Equal(t, "http://assets/"+resp.ObjectKey, resp.ImageURL)
	assert.Equal(t, "image/jpeg", store.contentType)
	assert.Equal(t, 64, resp.Width)
	assert.Equal(t, 32, resp.Height)
}

func TestUploadDonationImage_StorageDisabled(t *testing.T) {
	svc := NewImageService(nil, 64)
	assert.False(t, svc.Enabled())

	_, err := svc.UploadDonationImage(context.Background(), 1, samplePNG(t, 8, 8))
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
}

func TestUploadDonationImage_NotAnImage(t *testing.T) {
	svc := NewImageService(&fakeStorage{}, 64)
	_, err := svc.UploadDonationImage(context.Background(), 1, strings.NewReader("plain text"))
	assert.ErrorIs(t, err, utils.ErrUnsupportedMediaType)
}

func TestUploadDonationImage_PutFails(t *testing.T) {
	svc := NewImageService(&fakeStorage{putErr: errors.New("bucket gone")}, 64)
	_, err := svc.UploadDonationImage(context.Background(), 1, samplePNG(t, 8, 8))
	assert.ErrorIs(t, err, utils.ErrStorageUnavailable)
}
