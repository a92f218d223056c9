package googleauth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/golang-jwt/jwt"

	"github.com/xavierca1/londonslush-leads/internal/entity"
	"github.com/xavierca1/londonslush-leads/internal/logger"
)

const (
	SpreadsheetsScope = "https://www.googleapis.com/auth/spreadsheets"
	JWTBearerGrant    = "urn:ietf:params:oauth:grant-type:jwt-bearer"

	TokenLifetime = 3600 * time.Second
	refreshSkew   = 60 * time.Second
)

type Token struct {
	AccessToken string    `json:"access_token"`
	IssuedAt    time.Time `json:"issued_at"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Fresh reports whether the token can still be handed out at now. Tokens are
// replaced refreshSkew before they actually expire.
func (t Token) Fresh(now time.Time) bool {
	return t.AccessToken != "" && now.Add(refreshSkew).Before(t.ExpiresAt)
}

type TokenProvider struct {
	HTTPClient *http.Client

	rawCredentials string
	cache          TokenCache
	log            logger.Logger
	now            func() time.Time

	mu sync.Mutex
}

type Option func(*TokenProvider)

func WithCache(cache TokenCache) Option {
	return func(p *TokenProvider) { p.cache = cache }
}

func WithHTTPClient(c *http.Client) Option {
	return func(p *TokenProvider) { p.HTTPClient = c }
}

func WithClock(now func() time.Time) Option {
	return func(p *TokenProvider) { p.now = now }
}

func NewTokenProvider(rawCredentials string, log logger.Logger, opts ...Option) *TokenProvider {
	p := &TokenProvider{
		HTTPClient:     &http.Client{Timeout: 10 * time.Second},
		rawCredentials: rawCredentials,
		log:            log,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Token returns a bearer token for the spreadsheets scope, from the cache when
// one is configured and still fresh.
func (p *TokenProvider) Token(ctx context.Context) (Token, error) {
	creds, err := ParseCredentials(p.rawCredentials)
	if err != nil {
		return Token{}, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cache != nil {
		if tok, ok := p.cache.Get(ctx, creds.ClientEmail); ok && tok.Fresh(p.now()) {
			return tok, nil
		}
	}

	tok, err := p.obtain(ctx, creds)
	if err != nil {
		return Token{}, err
	}

	if p.cache != nil {
		p.cache.Set(ctx, creds.ClientEmail, tok)
	}
	return tok, nil
}

func (p *TokenProvider) obtain(ctx context.Context, creds *Credentials) (Token, error) {
	issuedAt := p.now().Truncate(time.Second)

	assertion, err := SignAssertion(creds, issuedAt)
	if err != nil {
		return Token{}, err
	}

	form := url.Values{}
	form.Set("grant_type", JWTBearerGrant)
	form.Set("assertion", assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, creds.TokenURI, strings.NewReader(form.Encode()))
	if err != nil {
		return Token{}, &entity.AuthError{Kind: entity.TokenExchangeFailed, Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.HTTPClient.Do(req)
	if err != nil {
		return Token{}, &entity.AuthError{Kind: entity.TokenExchangeFailed, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		p.log.Warn("token exchange rejected", map[string]interface{}{
			"status": resp.StatusCode,
			"body":   string(body),
		})
		return Token{}, &entity.AuthError{Kind: entity.TokenExchangeFailed, Status: resp.StatusCode}
	}

	var data struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &data); err != nil {
		return Token{}, &entity.AuthError{Kind: entity.TokenExchangeFailed, Status: resp.StatusCode, Err: fmt.Errorf("decode token response: %w", err)}
	}
	if data.AccessToken == "" {
		return Token{}, &entity.AuthError{Kind: entity.TokenExchangeFailed, Status: resp.StatusCode, Err: fmt.Errorf("empty access_token")}
	}

	// Expiry follows the assertion's exp. expires_in only wins when the
	// server grants a token that ends before the refresh window would.
	lifetime := TokenLifetime
	if d := time.Duration(data.ExpiresIn) * time.Second; d > 0 && d+refreshSkew < TokenLifetime {
		lifetime = d
	}

	p.log.Debug("✅ google access token issued", map[string]interface{}{
		"client_email": creds.ClientEmail,
		"expires_in":   lifetime.Seconds(),
	})

	return Token{
		AccessToken: data.AccessToken,
		IssuedAt:    issuedAt,
		ExpiresAt:   issuedAt.Add(lifetime),
	}, nil
}

// SignAssertion builds the RS256 JWT exchanged for an access token.
func SignAssertion(creds *Credentials, issuedAt time.Time) (string, error) {
	key, err := creds.signingKey()
	if err != nil {
		return "", err
	}

	claims := jwt.MapClaims{
		"iss":   creds.ClientEmail,
		"scope": SpreadsheetsScope,
		"aud":   creds.TokenURI,
		"iat":   issuedAt.Unix(),
		"exp":   issuedAt.Add(TokenLifetime).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", &entity.AuthError{Kind: entity.MalformedCredentials, Err: fmt.Errorf("sign assertion: %w", err)}
	}
	return signed, nil
}
