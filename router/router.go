package router

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
)

// Router is a method+path route registry. Patterns use the same colon
// syntax as CompilePath; dispatch is delegated to gorilla/mux, so a Router
// can be mounted directly as an http.Handler.
type Router struct {
	mux *mux.Router
}

// New returns an empty Router.
func New() *Router {
	return &Router{mux: mux.NewRouter()}
}

// Handle registers handler under the method and colon-parameter pattern.
// The method is case-insensitive. The pattern is validated with
// CompilePath before registration, so both syntaxes stay in lockstep.
func (r *Router) Handle(method, pattern string, handler http.Handler) error {
	if _, err := CompilePath(pattern); err != nil {
		return err
	}
	r.mux.Handle(colonToBraces(pattern), handler).Methods(strings.ToUpper(method))
	return nil
}

// HandleFunc is Handle for plain functions.
func (r *Router) HandleFunc(method, pattern string, handler func(http.ResponseWriter, *http.Request)) error {
	return r.Handle(method, pattern, http.HandlerFunc(handler))
}

// Lookup finds the handler registered for method and path and the
// parameter values the path supplies. ok is false when nothing matches.
func (r *Router) Lookup(method, path string) (handler http.Handler, params map[string]string, ok bool) {
	req := &http.Request{Method: strings.ToUpper(method), URL: &url.URL{Path: path}}
	var m mux.RouteMatch
	if !r.mux.Match(req, &m) || m.MatchErr != nil {
		return nil, nil, false
	}
	return m.Handler, m.Vars, true
}

// ServeHTTP dispatches to the registered handler, making Router usable
// anywhere an http.Handler is.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Params returns the path parameters extracted for req by ServeHTTP
// dispatch. Empty outside a routed handler.
func Params(req *http.Request) map[string]string {
	return mux.Vars(req)
}

// colonToBraces rewrites ":name" segments into the "{name}" form the
// underlying dispatcher expects.
func colonToBraces(pattern string) string {
	var out strings.Builder
	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		if c != ':' {
			out.WriteByte(c)
			continue
		}
		j := i + 1
		for j < len(pattern) && isParamChar(pattern[j]) {
			j++
		}
		out.WriteByte('{')
		out.WriteString(pattern[i+1 : j])
		out.WriteByte('}')
		i = j - 1
	}
	return out.String()
}
