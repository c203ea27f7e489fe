// Standalone HTTP origin for exercising fetchjar by hand and from the
// end-to-end tests. It serves redirect chains, cookie-setting endpoints,
// and method echoes on a fixed port.
package main

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
)

func main() {
	addr := os.Getenv("ORIGINAPP_ADDR")
	if addr == "" {
		addr = ":18080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/redirect/", redirectHandler)
	http.HandleFunc("/set", setCookieHandler)
	http.HandleFunc("/set-and-redirect", setAndRedirectHandler)
	http.HandleFunc("/cookie", cookieHandler)
	http.HandleFunc("/method", methodHandler)
	http.HandleFunc("/see-other", seeOtherHandler)
	http.HandleFunc("/temporary", temporaryHandler)
	http.HandleFunc("/loop", loopHandler)
	http.HandleFunc("/referrer-policy", referrerPolicyHandler)

	log.Printf("origin app listening on %s", addr)
	log.Fatal(http.ListenAndServe(addr, nil))
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, "ok")
}

// redirectHandler serves /redirect/{n}: n 302 hops counting down to a
// final 200 at /redirect/0.
func redirectHandler(w http.ResponseWriter, r *http.Request) {
	nStr := strings.TrimPrefix(r.URL.Path, "/redirect/")
	n, err := strconv.Atoi(nStr)
	if err != nil {
		http.Error(w, "bad count", http.StatusBadRequest)
		return
	}
	if n <= 0 {
		fmt.Fprintln(w, "arrived")
		return
	}
	http.Redirect(w, r, fmt.Sprintf("/redirect/%d", n-1), http.StatusFound)
}

func setCookieHandler(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	value := r.URL.Query().Get("value")
	if name == "" {
		http.Error(w, "name required", http.StatusBadRequest)
		return
	}
	http.SetCookie(w, &http.Cookie{Name: name, Value: value, Path: "/"})
	fmt.Fprintln(w, "cookie set")
}

func setAndRedirectHandler(w http.ResponseWriter, r *http.Request) {
	to := r.URL.Query().Get("to")
	if to == "" {
		to = "/cookie"
	}
	http.SetCookie(w, &http.Cookie{Name: "hop", Value: "seen", Path: "/"})
	http.Redirect(w, r, to, http.StatusFound)
}

func cookieHandler(w http.ResponseWriter, r *http.Request) {
	fmt.Fprintln(w, r.Header.Get("Cookie"))
}

func methodHandler(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	fmt.Fprintf(w, "%s %s", r.Method, body)
}

func seeOtherHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/method", http.StatusSeeOther)
}

func temporaryHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/method", http.StatusTemporaryRedirect)
}

func loopHandler(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/loop", http.StatusFound)
}

func referrerPolicyHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Referrer-Policy", "no-referrer, origin")
	http.Redirect(w, r, "/method", http.StatusFound)
}
