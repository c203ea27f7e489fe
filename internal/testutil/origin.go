// Package testutil provides a mock HTTP origin for integration testing
// of the fetch pipeline: redirect chains, cookie issuance, and echo
// endpoints that report what the server actually received.
package testutil

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
)

// NewOrigin starts a mock origin server. The caller owns the returned
// server and must Close it.
//
// Endpoints:
//
//	/redirect/{n}        302 chain of n hops ending at /redirect/0 (200 "done")
//	/set?name=X&value=Y  sets cookie X=Y, responds 200 "set"
//	/set-and-redirect    sets id=1 and 302-redirects to ?to= (default /cookie)
//	/cookie              responds with the received Cookie header as body
//	/method              responds with "<METHOD> <body>"
//	/see-other           303 to /method
//	/temporary           307 to /method
//	/loop                302 to itself, forever
//	/no-location         302 without a Location header
//	/health              200 "ok"
func NewOrigin() *httptest.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("/redirect/", func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(strings.TrimPrefix(r.URL.Path, "/redirect/"))
		if err != nil || n < 0 {
			http.Error(w, "bad hop count", http.StatusBadRequest)
			return
		}
		if n == 0 {
			fmt.Fprint(w, "done")
			return
		}
		http.Redirect(w, r, fmt.Sprintf("/redirect/%d", n-1), http.StatusFound)
	})

	mux.HandleFunc("/set", func(w http.ResponseWriter, r *http.Request) {
		name := r.URL.Query().Get("name")
		value := r.URL.Query().Get("value")
		if name == "" {
			http.Error(w, "missing name", http.StatusBadRequest)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: name, Value: value, Path: "/"})
		fmt.Fprint(w, "set")
	})

	mux.HandleFunc("/set-and-redirect", func(w http.ResponseWriter, r *http.Request) {
		to := r.URL.Query().Get("to")
		if to == "" {
			to = "/cookie"
		}
		http.SetCookie(w, &http.Cookie{Name: "id", Value: "1", Path: "/"})
		http.Redirect(w, r, to, http.StatusFound)
	})

	mux.HandleFunc("/cookie", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, r.Header.Get("Cookie"))
	})

	mux.HandleFunc("/method", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fmt.Fprintf(w, "%s %s", r.Method, body)
	})

	mux.HandleFunc("/see-other", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/method", http.StatusSeeOther)
	})

	mux.HandleFunc("/temporary", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/method", http.StatusTemporaryRedirect)
	})

	mux.HandleFunc("/loop", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/loop", http.StatusFound)
	})

	mux.HandleFunc("/no-location", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusFound)
	})

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "ok")
	})

	return httptest.NewServer(mux)
}
