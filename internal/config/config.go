package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Database *dbConfig
	Service  *svcConfig
}

type dbConfig struct {
	// DSN for the staging database. The default keeps interim rows in
	// memory; point it at a file if the mutation list outgrows RAM.
	DSN string `envconfig:"PPH2RANK_DB_DSN" default:":memory:"`
}

type svcConfig struct {
	GGIUrl             string        `envconfig:"PPH2RANK_GGI_URL" default:"http://genetics.bwh.harvard.edu/cgi-bin/ggi/ggi2.cgi"`
	ResultUrlTemplate  string        `envconfig:"PPH2RANK_RESULT_URL" default:"http://genetics.bwh.harvard.edu/ggi/pph2/%s/1/pph2-full.txt"`
	TrackUrlTemplate   string        `envconfig:"PPH2RANK_TRACK_URL" default:"http://genetics.bwh.harvard.edu/cgi-bin/ggi/ggi2.cgi?_ggi_project=PPHWeb2&sid=%s&_ggi_target_manage=Refresh&_ggi_origin=manage"`
	UniProtUrlTemplate string        `envconfig:"PPH2RANK_UNIPROT_URL" default:"http://www.uniprot.org/uniprot/%s.txt"`
	RequestTimeout     time.Duration `envconfig:"PPH2RANK_REQUEST_TIMEOUT" default:"10s"`
	PollInterval       time.Duration `envconfig:"PPH2RANK_POLL_INTERVAL" default:"15s"`
	TransientPollLimit int           `envconfig:"PPH2RANK_TRANSIENT_POLL_LIMIT" default:"10"`
	LogLevel           string        `envconfig:"PPH2RANK_LOG_LEVEL" default:"info"`
}

func New() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
