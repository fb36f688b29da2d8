package builtin

import (
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/nbeerbower/hemlock/internal/langerrors"
	"github.com/nbeerbower/hemlock/internal/pacer"
	"github.com/nbeerbower/hemlock/internal/value"
)

func init() {
	Register(&Info{Name: "http_get", Call: biHTTPGet})
	Register(&Info{Name: "http_serve", Call: biHTTPServe})
}

var httpClient = &http.Client{Timeout: 30 * time.Second}

var httpPacer = pacer.NewDefault(pacer.MinSleep(100*time.Millisecond), pacer.MaxSleep(2*time.Second), pacer.MaxRetries(3))

// http_get is a thin wrapper over net/http, consistent with the rest of
// the host builtins being thin syscall/library wrappers. Network
// timeouts (net.Error with Timeout() true) are retried through
// httpPacer; any other transport error fails at once; a successful response of any status is returned as-is,
// even 4xx/5xx, since those aren't transport failures.
func biHTTPGet(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 1 {
		return value.Null(), fmt.Errorf("http_get: missing url")
	}
	url := args[0].String()
	var resp *http.Response
	err := httpPacer.Call(func() (bool, error) {
		r, err := httpClient.Get(url)
		if err != nil {
			if ne, ok := err.(net.Error); ok && ne.Timeout() {
				return true, langerrors.NewRetriable(err)
			}
			return false, err
		}
		resp = r
		return false, nil
	})
	if err != nil {
		return value.Null(), langerrors.Wrap(err, "http_get")
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return value.Null(), langerrors.Wrap(err, "http_get: reading body")
	}
	result := value.NewObject()
	result.Set("status", value.I32(int32(resp.StatusCode)))
	result.Set("body", value.Heap(value.NewString(string(body))))
	return value.Heap(result), nil
}

// http_serve(addr, fn) starts a blocking HTTP server that calls fn
// with (method, path, body) for every request and writes its string
// return as the response body. fn runs through the host context's
// Call so user closures drive the handler.
func biHTTPServe(args []value.Value, ctx interface{}) (value.Value, error) {
	if len(args) < 2 {
		return value.Null(), fmt.Errorf("http_serve: expected (addr, handler)")
	}
	addr := args[0].String()
	handler := args[1]
	caller, ok := ctx.(interface {
		Call(fn value.Value, args []value.Value) (value.Value, error)
	})
	if !ok {
		return value.Null(), fmt.Errorf("http_serve: host context cannot invoke callbacks")
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		result, err := caller.Call(handler, []value.Value{
			value.Heap(value.NewString(r.Method)),
			value.Heap(value.NewString(r.URL.Path)),
			value.Heap(value.NewString(string(body))),
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		io.WriteString(w, result.String())
	})
	return value.Null(), http.ListenAndServe(addr, mux)
}
