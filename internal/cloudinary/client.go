package cloudinary

import (
	"bytes"
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"sort"
	"strconv"
	"time"
)

type Client struct {
	config     *Config
	httpClient *http.Client
}

func NewClient(config *Config) *Client {
	return &Client{
		config: config,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Upload streams data to the image host and returns the hosted asset.
// The asset is tagged with folder and keyed by a public id derived from
// filename, overwriting any existing asset under the same id. There is no
// retry; the first failure is the caller's problem.
func (c *Client) Upload(ctx context.Context, data []byte, folder, filename string) (*UploadResponse, error) {
	params := map[string]string{
		"folder":    folder,
		"public_id": PublicID(filename),
		"overwrite": "true",
		"timestamp": strconv.FormatInt(time.Now().Unix(), 10),
	}

	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for k, v := range params {
		if err := w.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := w.WriteField("api_key", c.config.APIKey); err != nil {
		return nil, fmt.Errorf("write field api_key: %w", err)
	}
	if err := w.WriteField("signature", c.sign(params)); err != nil {
		return nil, fmt.Errorf("write field signature: %w", err)
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close multipart: %w", err)
	}

	uploadURL := fmt.Sprintf("%s/%s/auto/upload", c.config.BaseURL, c.config.CloudName)
	log.Printf("cloudinary upload: folder=%s public_id=%s size=%d", folder, params["public_id"], len(data))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, body)
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("cloudinary request failed: %v", err)
		return nil, fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr errorResponse
		if json.Unmarshal(respBody, &apiErr) == nil && apiErr.Error.Message != "" {
			log.Printf("cloudinary error: status %d, message: %s", resp.StatusCode, apiErr.Error.Message)
		} else {
			log.Printf("cloudinary error: status %d, body: %s", resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("cloudinary upload: status %d", resp.StatusCode)
	}

	var result UploadResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		log.Printf("failed to unmarshal upload response: %v", err)
		return nil, fmt.Errorf("unmarshal: %w", err)
	}

	return &result, nil
}

// sign produces the request signature: SHA-1 over the sorted params joined
// as a query string, with the API secret appended.
func (c *Client) sign(params map[string]string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	buf := &bytes.Buffer{}
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte('&')
		}
		buf.WriteString(k)
		buf.WriteByte('=')
		buf.WriteString(params[k])
	}
	buf.WriteString(c.config.APISecret)

	sum := sha1.Sum(buf.Bytes())
	return hex.EncodeToString(sum[:])
}
