package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// TemporaryDownloadURL returns a short-lived URL for a file entity's content.
func (c *Client) TemporaryDownloadURL(ctx context.Context, entityID int64) (string, error) {
	var resp struct {
		TemporaryDownloadURL string `json:"temporary_download_url"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("/entities/%d/download/", entityID), &resp, false); err != nil {
		return "", err
	}
	return resp.TemporaryDownloadURL, nil
}

// FetchFile downloads file content from a presigned URL. No Authorization
// header: the URL carries its own credentials.
func (c *Client) FetchFile(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return nil, &APIError{Method: http.MethodGet, Path: url, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return io.ReadAll(resp.Body)
}

// UploadFile stores file content for a new file entity of the given type and
// returns the storage key to set as the entity's filename property. The
// platform hands out a presigned POST (url + form fields) to its object store.
func (c *Client) UploadFile(ctx context.Context, entityType int64, content []byte) (string, error) {
	var grant struct {
		URL    string            `json:"url"`
		Fields map[string]string `json:"fields"`
	}
	if err := c.postJSON(ctx, fmt.Sprintf("/entity_types/%d/upload/", entityType), map[string]any{}, &grant, false); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range grant.Fields {
		if err := mw.WriteField(k, v); err != nil {
			return "", err
		}
	}
	fw, err := mw.CreateFormFile("file", "file")
	if err != nil {
		return "", err
	}
	if _, err := fw.Write(content); err != nil {
		return "", err
	}
	if err := mw.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, grant.URL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(resp.Body)
		return "", &APIError{Method: http.MethodPost, Path: grant.URL, StatusCode: resp.StatusCode, Body: string(body)}
	}
	return grant.Fields["key"], nil
}
