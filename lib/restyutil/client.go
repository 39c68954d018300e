package restyutil

import (
	"net/http"
	"net/http/cookiejar"
	"time"

	"tennisleagues/lib/telemetry"

	cloudflarebp "github.com/DaRealFreak/cloudflare-bp-go"
	"github.com/go-resty/resty/v2"
)

const defaultTimeout = time.Second * 30

type ClientOptions struct {
	BaseUrl   string
	UserAgent string
	Timeout   time.Duration
	// the otel tracer name used for request spans, defaults to "resty"
	TracerName string
	// if nil, transcripts are not recorded
	Output InstrumentOutput
	// when false, 3xx responses are returned as-is so their Location
	// header can be inspected
	FollowRedirects bool
	// wraps the transport with browser-like TLS settings and headers for
	// sites fronted by Cloudflare's bot check
	CloudflareBypass bool
}

// NoFollowPolicy stops at the first response, leaving redirects to the caller.
var NoFollowPolicy = resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
	return http.ErrUseLastResponse
})

// NewClient builds a resty client with a cookie jar, telemetry and optional
// transcript recording.
func NewClient(opts ClientOptions) *resty.Client {
	client := resty.New()
	if opts.BaseUrl != "" {
		client.SetBaseURL(opts.BaseUrl)
	}
	// cookiejar.New never returns an error with nil options
	jar, _ := cookiejar.New(nil)
	client.SetCookieJar(jar)
	if opts.CloudflareBypass {
		client.GetClient().Transport = cloudflarebp.AddCloudFlareByPass(client.GetClient().Transport)
	}

	if opts.UserAgent != "" {
		client.SetHeader("user-agent", opts.UserAgent)
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	client.SetTimeout(timeout)

	if opts.FollowRedirects {
		client.SetRedirectPolicy(resty.FlexibleRedirectPolicy(10))
	} else {
		client.SetRedirectPolicy(NoFollowPolicy)
	}

	tracerName := opts.TracerName
	if tracerName == "" {
		tracerName = "resty"
	}
	telemetry.InstrumentResty(client, tracerName)
	InstrumentClient(client, opts.Output)

	return client
}
