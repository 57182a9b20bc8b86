package iqbackend

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"iq-admin/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUploadURL(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr string
	}{
		{name: "envelope", body: `{"success":true,"data":{"url":"https://cdn/a.png"}}`, want: "https://cdn/a.png"},
		{name: "files", body: `{"files":[{"url":"https://cdn/b.png"},{"url":"https://cdn/c.png"}]}`, want: "https://cdn/b.png"},
		{name: "url", body: `{"url":"https://cdn/d.png"}`, want: "https://cdn/d.png"},
		{name: "imageUrl", body: `{"imageUrl":"https://cdn/e.png"}`, want: "https://cdn/e.png"},
		{name: "fileUrl", body: `{"fileUrl":"https://cdn/f.png"}`, want: "https://cdn/f.png"},
		{name: "envelope wins over url", body: `{"data":{"url":"https://cdn/g.png"},"url":"https://cdn/other.png"}`, want: "https://cdn/g.png"},
		{name: "unknown shape", body: `{"location":"https://cdn/h.png"}`, wantErr: "unrecognized shape"},
		{name: "empty files", body: `{"files":[]}`, wantErr: "carries no URL"},
		{name: "wrong type", body: `{"url":42}`, wantErr: "malformed"},
		{name: "not an object", body: `["https://cdn/i.png"]`, wantErr: "not a JSON object"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeUploadURL([]byte(tt.body))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_UploadImage(t *testing.T) {
	t.Run("multipart image field", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/api/upload", r.URL.Path)
			file, header, err := r.FormFile("image")
			require.NoError(t, err)
			defer file.Close()
			content, _ := io.ReadAll(file)
			assert.Equal(t, "logo.png", header.Filename)
			assert.Equal(t, "PNGDATA", string(content))
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"url":"https://cdn/logo.png"}}`)
		})

		link, err := client.UploadImage(context.Background(), "/tmp/logo.png", strings.NewReader("PNGDATA"))
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/logo.png", link)
	})

	t.Run("refused upload", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"success":false,"message":"file too large"}`)
		})

		_, err := client.UploadImage(context.Background(), "logo.png", strings.NewReader("PNGDATA"))
		require.ErrorIs(t, err, domain.ErrBackend)
		assert.Contains(t, err.Error(), "file too large")
	})

	t.Run("server error", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusInternalServerError, `{"message":"storage offline"}`)
		})

		_, err := client.UploadImage(context.Background(), "logo.png", strings.NewReader("PNGDATA"))
		require.ErrorIs(t, err, domain.ErrBackend)
		assert.Contains(t, err.Error(), "storage offline")
	})

	t.Run("unknown response shape", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusOK, `{"stored":true}`)
		})

		_, err := client.UploadImage(context.Background(), "logo.png", strings.NewReader("PNGDATA"))
		require.ErrorIs(t, err, domain.ErrBackend)
	})

	t.Run("timeout", func(t *testing.T) {
		release := make(chan struct{})
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-release:
			case <-time.After(time.Second):
			}
			writeJSON(w, http.StatusOK, `{"success":true,"data":{"url":"https://cdn.example.com/logo.png"}}`)
		})
		defer close(release)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.UploadImage(ctx, "logo.png", strings.NewReader("PNGDATA"))
		require.ErrorIs(t, err, domain.ErrBackend)
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "image upload timed out", de.Message)
	})

	t.Run("expired deadline sends nothing", func(t *testing.T) {
		calls := 0
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls++
		})
		ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
		defer cancel()

		_, err := client.UploadImage(ctx, "logo.png", strings.NewReader("PNGDATA"))
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, "image upload timed out", de.Message)
		assert.Equal(t, 0, calls)
	})

	t.Run("empty image", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		_, err := client.UploadImage(context.Background(), "logo.png", strings.NewReader(""))
		var de *domain.DomainError
		require.ErrorAs(t, err, &de)
		assert.Equal(t, domain.CodeInvalidInput, de.Code)
	})
}
