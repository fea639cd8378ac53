package api

import (
	"context"
	"errors"
	"net/http"
	"time"
)

// maxCookieBytes is the largest value browsers reliably keep for one cookie
const maxCookieBytes = 4096

// ErrCookieTooLarge is returned when the serialized list no longer fits in a cookie
var ErrCookieTooLarge = errors.New("quick rolls no longer fit in the browser cookie")

// cookieStorage is a request-scoped Storage over the caller's cookies.
// Writes are sent back as Set-Cookie headers and visible to later reads in
// the same request.
type cookieStorage struct {
	r       *http.Request
	w       http.ResponseWriter
	secure  bool
	now     func() time.Time
	pending map[string]string
}

func newCookieStorage(w http.ResponseWriter, r *http.Request, secure bool, now func() time.Time) *cookieStorage {
	return &cookieStorage{
		r:       r,
		w:       w,
		secure:  secure || r.TLS != nil,
		now:     now,
		pending: make(map[string]string),
	}
}

func (s *cookieStorage) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.pending[key]; ok {
		return v, true, nil
	}

	cookie, err := s.r.Cookie(key)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", false, nil
		}
		return "", false, err
	}

	return cookie.Value, true, nil
}

func (s *cookieStorage) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if len(key)+len(value) > maxCookieBytes {
		return ErrCookieTooLarge
	}

	s.pending[key] = value

	http.SetCookie(s.w, &http.Cookie{
		Name:     key,
		Value:    value,
		Path:     "/",
		Expires:  s.now().Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		Secure:   s.secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}
