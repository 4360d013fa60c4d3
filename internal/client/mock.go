package client

import "context"

// GGIMock is a hand-rolled test double for the GGI interface.
type GGIMock struct {
	SubmitFunc      func(ctx context.Context, batch string, opts SubmitOptions) (string, error)
	FetchStatusFunc func(ctx context.Context, sid string) ([]byte, error)
	FetchResultFunc func(ctx context.Context, sid string) (string, error)
	TrackURLFunc    func(sid string) string

	SubmitCalls      int
	FetchStatusCalls int
	FetchResultCalls int
}

var _ GGI = (*GGIMock)(nil)

func (m *GGIMock) Submit(ctx context.Context, batch string, opts SubmitOptions) (string, error) {
	m.SubmitCalls++
	return m.SubmitFunc(ctx, batch, opts)
}

func (m *GGIMock) FetchStatus(ctx context.Context, sid string) ([]byte, error) {
	m.FetchStatusCalls++
	return m.FetchStatusFunc(ctx, sid)
}

func (m *GGIMock) FetchResult(ctx context.Context, sid string) (string, error) {
	m.FetchResultCalls++
	return m.FetchResultFunc(ctx, sid)
}

func (m *GGIMock) TrackURL(sid string) string {
	if m.TrackURLFunc == nil {
		return "http://tracker.invalid/" + sid
	}
	return m.TrackURLFunc(sid)
}

// UniProtMock is a hand-rolled test double for the UniProt interface.
type UniProtMock struct {
	FetchRecordFunc  func(ctx context.Context, accession string) ([]byte, error)
	FetchRecordCalls []string
}

var _ UniProt = (*UniProtMock)(nil)

func (m *UniProtMock) FetchRecord(ctx context.Context, accession string) ([]byte, error) {
	m.FetchRecordCalls = append(m.FetchRecordCalls, accession)
	return m.FetchRecordFunc(ctx, accession)
}
