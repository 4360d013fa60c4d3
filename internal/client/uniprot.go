package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/powerpak/pph2-and-rank/internal/config"
	"go.uber.org/zap"
)

type uniprotClient struct {
	httpClient  *http.Client
	log         *zap.SugaredLogger
	urlTemplate string
}

// NewUniProt builds the facade over the UniProtKB record service.
func NewUniProt(cfg *config.Config, log *zap.SugaredLogger) UniProt {
	return &uniprotClient{
		httpClient:  NewHTTPClientFromConfig(cfg),
		log:         log.Named("uniprot"),
		urlTemplate: cfg.Service.UniProtUrlTemplate,
	}
}

func (c *uniprotClient) FetchRecord(ctx context.Context, accession string) ([]byte, error) {
	recordUrl := fmt.Sprintf(c.urlTemplate, accession)
	return doWithRetry(ctx, c.httpClient, c.log, func(ctx context.Context) (*http.Request, error) {
		return http.NewRequestWithContext(ctx, http.MethodGet, recordUrl, nil)
	})
}
