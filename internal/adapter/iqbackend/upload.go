package iqbackend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"iq-admin/internal/domain"

	"github.com/gofiber/fiber/v2"
)

// uploadShape names one of the response layouts the storage endpoint is
// known to produce.
type uploadShape int

const (
	shapeUnknown uploadShape = iota
	shapeEnvelope            // {"success":true,"data":{"url":"..."}}
	shapeFiles               // {"files":[{"url":"..."}]}
	shapeURL                 // {"url":"..."}
	shapeImageURL            // {"imageUrl":"..."}
	shapeFileURL             // {"fileUrl":"..."}
)

func (s uploadShape) String() string {
	switch s {
	case shapeEnvelope:
		return "envelope"
	case shapeFiles:
		return "files"
	case shapeURL:
		return "url"
	case shapeImageURL:
		return "imageUrl"
	case shapeFileURL:
		return "fileUrl"
	}
	return "unknown"
}

// detectUploadShape inspects top-level keys only. The first matching key
// in declaration order wins.
func detectUploadShape(fields map[string]json.RawMessage) uploadShape {
	switch {
	case fields["data"] != nil:
		return shapeEnvelope
	case fields["files"] != nil:
		return shapeFiles
	case fields["url"] != nil:
		return shapeURL
	case fields["imageUrl"] != nil:
		return shapeImageURL
	case fields["fileUrl"] != nil:
		return shapeFileURL
	}
	return shapeUnknown
}

// decodeUploadURL extracts the stored file URL from an upload response.
func decodeUploadURL(body []byte) (string, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return "", fmt.Errorf("upload response is not a JSON object: %w", err)
	}

	shape := detectUploadShape(fields)
	var (
		link string
		err  error
	)
	switch shape {
	case shapeEnvelope:
		var data struct {
			URL string `json:"url"`
		}
		err = json.Unmarshal(fields["data"], &data)
		link = data.URL
	case shapeFiles:
		var files []struct {
			URL string `json:"url"`
		}
		err = json.Unmarshal(fields["files"], &files)
		if err == nil && len(files) > 0 {
			link = files[0].URL
		}
	case shapeURL, shapeImageURL, shapeFileURL:
		key := map[uploadShape]string{shapeURL: "url", shapeImageURL: "imageUrl", shapeFileURL: "fileUrl"}[shape]
		err = json.Unmarshal(fields[key], &link)
	default:
		return "", errors.New("upload response has an unrecognized shape")
	}
	if err != nil {
		return "", fmt.Errorf("upload response (%s) is malformed: %w", shape, err)
	}
	if strings.TrimSpace(link) == "" {
		return "", fmt.Errorf("upload response (%s) carries no URL", shape)
	}
	return link, nil
}

// UploadImage stores an image and returns its public URL.
func (c *Client) UploadImage(ctx context.Context, fileName string, r io.Reader) (string, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return "", domain.NewInvalidInputError("failed to read image").WithContext("file", fileName)
	}
	if len(content) == 0 {
		return "", domain.NewInvalidInputError("image is empty")
	}

	a := c.http.Post(c.endpoint("/upload")).
		FileData(&fiber.FormFile{Fieldname: "image", Name: filepath.Base(fileName), Content: content}).
		MultipartForm(nil)

	resp, err := c.send(ctx, a)
	if err != nil {
		var f *failure
		if errors.As(err, &f) && f.timeout {
			f.message = "image upload timed out"
		}
		return "", backendError("upload image", err)
	}

	// Failures still use the common envelope.
	if resp.status < fiber.StatusOK || resp.status >= fiber.StatusMultipleChoices {
		_, err := decode(resp, nil)
		return "", backendError("upload image", err)
	}
	var env envelope
	if json.Unmarshal(resp.body, &env) == nil && env.Success != nil && !*env.Success {
		return "", backendError("upload image", &failure{status: resp.status, message: errorText(resp, &env, nil)})
	}

	link, err := decodeUploadURL(resp.body)
	if err != nil {
		return "", backendError("upload image", &failure{status: resp.status, message: "image upload failed", cause: err})
	}
	return link, nil
}
