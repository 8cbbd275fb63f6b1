package backend

import "context"

// Static answers every request with the same body, whatever the input.
type Static struct {
	body        []byte
	contentType string
}

// NewStatic returns a backend that always yields body with contentType.
func NewStatic(body, contentType string) *Static {
	return &Static{body: []byte(body), contentType: contentType}
}

// Score ignores req and returns a copy of the fixed answer.
func (s *Static) Score(_ context.Context, _ *Request) (*Prediction, error) {
	body := make([]byte, len(s.body))
	copy(body, s.body)
	return &Prediction{Body: body, ContentType: s.contentType}, nil
}
