package response

import (
	"net/http"

	"github.com/dmitrymomot/portfolio/core/handler"
)

// Redirect creates a 302 Found response to the given URL.
func Redirect(url string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, http.StatusFound)
		return nil
	}
}

// RedirectPermanent creates a 301 Moved Permanently response to the
// given URL.
func RedirectPermanent(url string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, http.StatusMovedPermanently)
		return nil
	}
}

// RedirectSeeOther creates a 303 See Other response, the conventional
// answer to a successful form POST.
func RedirectSeeOther(url string) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		http.Redirect(w, r, url, http.StatusSeeOther)
		return nil
	}
}

// RedirectWithStatus creates a response with a Location header and the
// given status code. The code is written as provided: rejection flows
// pair a non-3xx status such as 429 with a Location back-link, so no
// 3xx clamping is applied. A zero status defaults to 302.
func RedirectWithStatus(url string, status int) handler.Response {
	return func(w http.ResponseWriter, r *http.Request) error {
		if status == 0 {
			status = http.StatusFound
		}
		http.Redirect(w, r, url, status)
		return nil
	}
}
