package domain

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func TestValidateImage(t *testing.T) {
	testCases := []struct {
		name    string
		upload  ImageUpload
		want    string
		wantErr bool
	}{
		{name: "png", upload: ImageUpload{Filename: "a.png", Data: pngHeader}, want: "image/png"},
		{name: "jpeg", upload: ImageUpload{Filename: "a.jpg", Data: []byte("\xff\xd8\xff\xe0\x00\x10JFIF")}, want: "image/jpeg"},
		{name: "text disguised as png", upload: ImageUpload{Filename: "a.png", Data: []byte("hello world")}, wantErr: true},
		{name: "empty", upload: ImageUpload{Filename: "a.png"}, wantErr: true},
		{name: "too large", upload: ImageUpload{Filename: "big.png", Data: append(bytes.Clone(pngHeader), make([]byte, MaxImageSize)...)}, wantErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ValidateImage(tc.upload)
			if tc.wantErr {
				var verr *ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Equal(t, []string{"images"}, verr.Fields)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestImageObjectKey(t *testing.T) {
	owner := uuid.New()
	key := ImageObjectKey(owner, "image/webp", time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC))

	assert.True(t, strings.HasPrefix(key, "properties/"+owner.String()+"/2025/03/09/"))
	assert.True(t, strings.HasSuffix(key, ".webp"))
}

func TestImageCaption(t *testing.T) {
	assert.Equal(t, "living-room", ImageCaption("living-room.jpg"))
	assert.Equal(t, "kitchen", ImageCaption(`C:\photos\kitchen.png`))
	assert.Equal(t, "", ImageCaption(""))
}
