package client

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/powerpak/pph2-and-rank/internal/config"
	"go.uber.org/zap"
)

// GGI is the client interface for the PolyPhen-2 job submission and
// tracking web interface.
type GGI interface {
	// Submit posts a batch of mutations and returns the session token
	// identifying the new job.
	Submit(ctx context.Context, batch string, opts SubmitOptions) (string, error)
	// FetchStatus refreshes the status page for a job.
	FetchStatus(ctx context.Context, sid string) ([]byte, error)
	// FetchResult downloads the full result file for a finished job.
	// ErrResultNotReady is returned while the file is still empty.
	FetchResult(ctx context.Context, sid string) (string, error)
	// TrackURL returns the page where a human can follow the job.
	TrackURL(sid string) string
}

// UniProt is the client interface for the accession metadata service.
type UniProt interface {
	// FetchRecord downloads the flat-text record for an accession.
	FetchRecord(ctx context.Context, accession string) ([]byte, error)
}

// SubmitOptions carries the pipeline parameters of a submission.
type SubmitOptions struct {
	// Model is the classifier model name, HumVar or HumDiv.
	Model string
	// GenomeBuild is the UCSC genome build, hg18 or hg19.
	GenomeBuild string
}

// NewHTTPClientFromConfig returns the HTTP client shared by the GGI and
// UniProt facades. The timeout bounds a single attempt; retrying is the
// facade's job.
func NewHTTPClientFromConfig(cfg *config.Config) *http.Client {
	return &http.Client{
		Timeout: cfg.Service.RequestTimeout,
		Transport: &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			DialContext: (&net.Dialer{
				Timeout:   cfg.Service.RequestTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
		},
	}
}

// doWithRetry performs the request builder's request until a 2xx
// response arrives. Transport failures, timeouts and non-2xx statuses
// are all retried with no delay; the documented service contract is
// that only the caller imposes cadence. Context cancellation is the one
// way out.
func doWithRetry(ctx context.Context, httpClient *http.Client, log *zap.SugaredLogger, build func(ctx context.Context) (*http.Request, error)) ([]byte, error) {
	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := build(ctx)
		if err != nil {
			return nil, err
		}

		resp, err := httpClient.Do(req)
		if err != nil {
			log.Debugf("attempt %d against %s failed: %v", attempt, req.URL, err)
			continue
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			log.Debugf("attempt %d against %s: reading body: %v", attempt, req.URL, err)
			continue
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			log.Debugf("attempt %d against %s: status %d", attempt, req.URL, resp.StatusCode)
			continue
		}
		return body, nil
	}
}

func formRequest(ctx context.Context, endpoint string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}
