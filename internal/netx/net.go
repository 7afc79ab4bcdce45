// Package netx holds small HTTP helpers shared by the client.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"time"
)

var uploadClient = &http.Client{Timeout: 60 * time.Second}

// UploadToPresignedURL PUTs body to a presigned object storage URL.
// An empty contentType is sent as application/octet-stream.
func UploadToPresignedURL(ctx context.Context, url string, body []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building upload request: %w", err)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(body))

	resp, err := uploadClient.Do(req)
	if err != nil {
		return fmt.Errorf("error uploading object: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("upload failed: %d", resp.StatusCode)
	}
	return nil
}
