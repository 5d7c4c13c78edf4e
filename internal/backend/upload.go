package backend

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"sort"

	"github.com/cradoe/profilegate/internal/models"
)

// Upload is a file streamed through to the backend.
type Upload struct {
	Filename    string
	ContentType string
	Body        io.Reader
}

func multipartRequest(method, path, endpoint, token string, fields map[string]any, fileField string, file *Upload) (*request, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	keys := make([]string, 0, len(fields))
	for key := range fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if err := mw.WriteField(key, fmt.Sprint(fields[key])); err != nil {
			return nil, err
		}
	}

	if file != nil {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, fileField, file.Filename))
		contentType := file.ContentType
		if contentType == "" {
			contentType = "application/octet-stream"
		}
		header.Set("Content-Type", contentType)

		part, err := mw.CreatePart(header)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, file.Body); err != nil {
			return nil, err
		}
	}

	if err := mw.Close(); err != nil {
		return nil, err
	}

	return &request{
		method:      method,
		path:        path,
		endpoint:    endpoint,
		token:       token,
		body:        &buf,
		contentType: mw.FormDataContentType(),
	}, nil
}

// UploadDocument posts a single file for the given backend document type.
// The upload runs under its own deadline and is never retried.
func (c *Client) UploadDocument(ctx context.Context, token string, docType models.DocumentType, file Upload) (*models.Document, error) {
	if !docType.Valid() {
		return nil, ValidationError(fmt.Sprintf("unknown document type %q", docType))
	}
	if file.Body == nil {
		return nil, ValidationError("a file is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.uploadTimeout)
	defer cancel()

	req, err := multipartRequest(http.MethodPost, "/users/upload-document/"+string(docType), "upload-document", token, nil, "file", &file)
	if err != nil {
		return nil, err
	}

	body, err := c.do(ctx, req)
	if err != nil {
		return nil, err
	}

	doc, err := normalizeDocument(c.logger, body)
	if err != nil {
		return nil, err
	}
	if doc.Type == "" {
		doc.Type = docType
	}
	return doc, nil
}
