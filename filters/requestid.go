package filters

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/webfold/dispatch/core/handler"
)

// RequestID assigns a unique identifier to each request for tracing and
// logging, echoed on the response.
//
// Init parameters:
//
//	header        response/request header name (default "X-Request-ID")
//	use_existing  "true" keeps an id already present on the request
type RequestID struct {
	header      string
	useExisting bool
	generate    func() string
}

// NewRequestID constructs the filter. Matches handler.FilterConstructor.
func NewRequestID() (handler.Filter, error) {
	return &RequestID{generate: func() string { return uuid.New().String() }}, nil
}

// Init implements handler.Filter.
func (f *RequestID) Init(config handler.Config) error {
	f.header = config["header"]
	if f.header == "" {
		f.header = "X-Request-ID"
	}
	f.useExisting = config["use_existing"] == "true"
	return nil
}

// Filter implements handler.Filter.
func (f *RequestID) Filter(w http.ResponseWriter, r *http.Request, chain handler.Chain) {
	id := ""
	if f.useExisting {
		id = r.Header.Get(f.header)
	}
	if id == "" {
		id = f.generate()
	}
	r.Header.Set(f.header, id)
	w.Header().Set(f.header, id)
	chain.Next(w, r)
}
