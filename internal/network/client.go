package network

import (
	"errors"
	"math/rand"
	"net/url"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	fhttpcookiejar "github.com/bogdanfinn/fhttp/cookiejar"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"golang.org/x/time/rate"
)

var ErrRequestFailed = errors.New("request failed")

const (
	DefaultTimeout        = 15 * time.Second
	DefaultAcceptLanguage = "es-ES,es;q=0.9,en;q=0.8"
	DefaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) " +
		"Chrome/141.0.0.0 Safari/537.36"
)

// Options configures a Client. Zero values fall back to the defaults above;
// MaxRPS <= 0 disables the request ceiling.
type Options struct {
	Timeout        time.Duration
	UserAgents     []string
	AcceptLanguage string
	MaxRPS         float64
	Rotator        *Rotator
}

// Client is the single outbound HTTP client of a run. It keeps cookies
// between requests, sends the fixed header set and waits on a limiter before
// each request.
type Client struct {
	http           tls_client.HttpClient
	rotator        *Rotator
	limiter        *rate.Limiter
	userAgents     []string
	acceptLanguage string
	rand           *rand.Rand
}

func NewClient(opts Options) (*Client, error) {
	jar, _ := fhttpcookiejar.New(nil)

	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	client, err := tls_client.NewHttpClient(
		tls_client.NewNoopLogger(),
		tls_client.WithClientProfile(profiles.Chrome_120),
		tls_client.WithTimeoutSeconds(int(timeout.Seconds())),
		tls_client.WithCookieJar(jar),
	)
	if err != nil {
		return nil, err
	}

	userAgents := append([]string{}, opts.UserAgents...)
	if len(userAgents) == 0 {
		userAgents = []string{DefaultUserAgent}
	}
	acceptLanguage := opts.AcceptLanguage
	if acceptLanguage == "" {
		acceptLanguage = DefaultAcceptLanguage
	}

	return &Client{
		http:           client,
		rotator:        opts.Rotator,
		limiter:        newLimiter(opts.MaxRPS),
		userAgents:     userAgents,
		acceptLanguage: acceptLanguage,
		rand:           rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

func newLimiter(maxRPS float64) *rate.Limiter {
	if maxRPS <= 0 {
		return rate.NewLimiter(rate.Inf, 1)
	}
	// burst 1: requests are spread out, never bunched.
	return rate.NewLimiter(rate.Limit(maxRPS), 1)
}

func (c *Client) Do(req *fhttp.Request) (*fhttp.Response, error) {
	if err := c.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}

	proxy, _ := c.rotateProxy()
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", c.randomUA())
	}
	if req.Header.Get("Accept-Language") == "" {
		req.Header.Set("Accept-Language", c.acceptLanguage)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	if proxy != nil {
		c.rotator.Report(proxy, resp.StatusCode)
	}
	return resp, nil
}

func (c *Client) rotateProxy() (*url.URL, error) {
	if c.rotator == nil {
		return nil, nil
	}
	proxy, err := c.rotator.Next()
	if err != nil {
		return nil, err
	}

	if proxy != nil {
		_ = c.http.SetProxy(proxy.String())
	}
	return proxy, nil
}

func (c *Client) randomUA() string {
	if len(c.userAgents) == 1 {
		return c.userAgents[0]
	}
	return c.userAgents[c.rand.Intn(len(c.userAgents))]
}
