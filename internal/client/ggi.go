package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/powerpak/pph2-and-rank/internal/config"
	"github.com/powerpak/pph2-and-rank/internal/ggi"
	"go.uber.org/zap"
)

const ggiProject = "PPHWeb2"

var (
	// ErrResultNotReady is returned by FetchResult while the service has
	// not yet published a non-empty result file.
	ErrResultNotReady = fmt.Errorf("result file not ready")
)

type ggiClient struct {
	httpClient *http.Client
	log        *zap.SugaredLogger

	endpoint          string
	resultUrlTemplate string
	trackUrlTemplate  string
}

// NewGGI builds the facade over the GGI web interface.
func NewGGI(cfg *config.Config, log *zap.SugaredLogger) GGI {
	return &ggiClient{
		httpClient:        NewHTTPClientFromConfig(cfg),
		log:               log.Named("ggi"),
		endpoint:          cfg.Service.GGIUrl,
		resultUrlTemplate: cfg.Service.ResultUrlTemplate,
		trackUrlTemplate:  cfg.Service.TrackUrlTemplate,
	}
}

func (c *ggiClient) Submit(ctx context.Context, batch string, opts SubmitOptions) (string, error) {
	form := url.Values{
		"_ggi_project":         {ggiProject},
		"_ggi_origin":          {"query"},
		"_ggi_target_pipeline": {"1"},
		"MODELNAME":            {opts.Model},
		"UCSCDB":               {opts.GenomeBuild},
		"SNPFUNC":              {"m"},
		"NOTIFYME":             {""},
		"SNPFILTER":            {"0"},
		"_ggi_batch":           {batch},
	}

	doc, err := doWithRetry(ctx, c.httpClient, c.log, func(ctx context.Context) (*http.Request, error) {
		return formRequest(ctx, c.endpoint, form)
	})
	if err != nil {
		return "", err
	}
	return ggi.ParseSID(doc)
}

func (c *ggiClient) FetchStatus(ctx context.Context, sid string) ([]byte, error) {
	form := url.Values{
		"_ggi_project":       {ggiProject},
		"_ggi_origin":        {"manage"},
		"_ggi_target_manage": {"Refresh"},
		"sid":                {sid},
	}
	return doWithRetry(ctx, c.httpClient, c.log, func(ctx context.Context) (*http.Request, error) {
		return formRequest(ctx, c.endpoint, form)
	})
}

func (c *ggiClient) FetchResult(ctx context.Context, sid string) (string, error) {
	resultUrl := fmt.Sprintf(c.resultUrlTemplate, sid)
	body, err := doWithRetry(ctx, c.httpClient, c.log, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, resultUrl, nil)
	})
	if err != nil {
		return "", err
	}
	if len(body) == 0 {
		return "", ErrResultNotReady
	}
	return string(body), nil
}

func (c *ggiClient) TrackURL(sid string) string {
	return fmt.Sprintf(c.trackUrlTemplate, sid)
}
