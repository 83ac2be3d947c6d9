package ingest

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"claimlens/internal/model"
	"claimlens/internal/util"
)

// Fetcher loads raw source bytes from a local path or an http(s) URL
type Fetcher struct {
	httpClient *http.Client
	userAgent  string
	maxBytes   int64
}

// Source is the raw content of a fetched data source
type Source struct {
	Ref  string // the path or URL as given
	Name string // display name (base of the path/URL)
	Data []byte
}

// NewFetcher creates a fetcher from the HTTP configuration
func NewFetcher(cfg model.HTTPConfig) *Fetcher {
	transport := &http.Transport{
		Proxy: util.NewProxyFunc(cfg.HTTPProxy, cfg.HTTPSProxy, cfg.NoProxy),
	}
	if cfg.InsecureTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} // #nosec G402 -- opt-in flag for self-signed internal servers
	}

	return &Fetcher{
		httpClient: &http.Client{
			Timeout:   cfg.Timeout,
			Transport: transport,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= 3 {
					return fmt.Errorf("stopped after 3 redirects")
				}
				return nil
			},
		},
		userAgent: cfg.UserAgent,
		maxBytes:  cfg.MaxBodyBytes,
	}
}

// Fetch loads the source bytes. A failed fetch is a terminal load error for
// the caller; there is no partial result.
func (f *Fetcher) Fetch(ctx context.Context, ref string) (*Source, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		return f.fetchURL(ctx, ref)
	}
	return f.readFile(ref)
}

func (f *Fetcher) fetchURL(ctx context.Context, rawURL string) (*Source, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status: %d %s", resp.StatusCode, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Source{
		Ref:  rawURL,
		Name: path.Base(resp.Request.URL.Path),
		Data: data,
	}, nil
}

func (f *Fetcher) readFile(filePath string) (*Source, error) {
	info, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if info.Size() > f.maxBytes {
		return nil, fmt.Errorf("source exceeds %d bytes", f.maxBytes)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	return &Source{
		Ref:  filePath,
		Name: path.Base(filePath),
		Data: data,
	}, nil
}

// ParseSource picks the reader by extension, then by content sniffing:
// xlsx containers start with a zip signature, HTML exports with markup.
func ParseSource(src *Source) ([]Sheet, error) {
	lower := strings.ToLower(src.Name)
	switch {
	case strings.HasSuffix(lower, ".html"), strings.HasSuffix(lower, ".htm"):
		return ParseHTMLTables(src.Data)
	case strings.HasSuffix(lower, ".xlsx"), strings.HasSuffix(lower, ".xlsm"):
		return ParseWorkbook(src.Data)
	}

	if len(src.Data) >= 2 && src.Data[0] == 'P' && src.Data[1] == 'K' {
		return ParseWorkbook(src.Data)
	}
	if idx := strings.IndexByte(strings.TrimSpace(string(firstBytes(src.Data, 64))), '<'); idx == 0 {
		return ParseHTMLTables(src.Data)
	}
	return ParseWorkbook(src.Data)
}

func firstBytes(data []byte, n int) []byte {
	if len(data) < n {
		return data
	}
	return data[:n]
}
