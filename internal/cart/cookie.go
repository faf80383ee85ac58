package cart

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sajibul-islam-robin/halchash-frontend/internal/models"
)

const CookieName = "cart"

// CookieOptions controls the attributes of the cart cookie.
type CookieOptions struct {
	TTL    time.Duration
	Secure bool
	Domain string
}

// CookiePersister writes the cart cookie on the response. An empty cart deletes
// the cookie instead of storing an empty array.
type CookiePersister struct {
	w    http.ResponseWriter
	opts CookieOptions
	now  func() time.Time
}

func NewCookiePersister(w http.ResponseWriter, opts CookieOptions) *CookiePersister {
	return &CookiePersister{w: w, opts: opts, now: time.Now}
}

func (p *CookiePersister) Persist(items []models.CartItem) error {
	if len(items) == 0 {
		http.SetCookie(p.w, p.expired())
		return nil
	}

	value, err := Encode(items)
	if err != nil {
		return err
	}

	http.SetCookie(p.w, &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   p.opts.Domain,
		Expires:  p.now().Add(p.opts.TTL),
		MaxAge:   int(p.opts.TTL.Seconds()),
		Secure:   p.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

func (p *CookiePersister) expired() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		Domain:   p.opts.Domain,
		MaxAge:   -1,
		Secure:   p.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

// Encode serializes items into a cookie-safe value.
func Encode(items []models.CartItem) (string, error) {
	data, err := json.Marshal(items)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cart items: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(data), nil
}

// Decode is the inverse of Encode.
func Decode(value string) ([]models.CartItem, error) {
	data, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil {
		return nil, fmt.Errorf("failed to decode cart cookie: %w", err)
	}

	var items []models.CartItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart cookie: %w", err)
	}

	return items, nil
}

// FromRequest rehydrates the cart from the request cookie and wires the store to
// persist on w. A corrupt cookie is treated as an empty cart and deleted.
func FromRequest(r *http.Request, w http.ResponseWriter, opts CookieOptions) *Store {
	persister := NewCookiePersister(w, opts)

	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return NewStore(nil, persister)
	}

	items, err := Decode(cookie.Value)
	if err != nil {
		http.SetCookie(w, persister.expired())
		return NewStore(nil, persister)
	}

	return NewStore(items, persister)
}
