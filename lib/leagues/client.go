package leagues

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"tennisleagues/lib/restyutil"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("tennisleagues/lib/leagues")

// StatusError is returned when the league api answers with a non-2xx status.
type StatusError struct {
	Endpoint string
	Status   int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %d %s", e.Endpoint, e.Status, http.StatusText(e.Status))
}

type Client struct {
	http    *resty.Client
	baseUrl *url.URL
}

type ClientOptions struct {
	BaseUrl string
	// if nil, a client is created from BaseUrl
	Http *resty.Client
}

func NewClient(opts ClientOptions) (*Client, error) {
	baseUrl, err := url.Parse(opts.BaseUrl)
	if err != nil {
		return nil, err
	}
	client := opts.Http
	if client == nil {
		client = restyutil.NewClient(restyutil.ClientOptions{
			TracerName: "tennisleagues/leagues/http",
		})
	}
	return &Client{http: client, baseUrl: baseUrl}, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseUrl.ResolveReference(&url.URL{Path: path}).String()
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	ctx, span := tracer.Start(ctx, "client:getJSON")
	defer span.End()

	endpoint := c.endpoint(path)
	span.SetAttributes(attribute.String("leagues.endpoint", endpoint))

	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(endpoint)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to fetch")
		return err
	}
	if !res.IsSuccess() {
		err := &StatusError{Endpoint: path, Status: res.StatusCode()}
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	err = json.Unmarshal(res.Body(), out)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to decode json")
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// Leagues fetches every league, in the order the server lists them.
func (c *Client) Leagues(ctx context.Context) ([]League, error) {
	var out []League
	err := c.getJSON(ctx, "/api/leagues", &out)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Detail fetches the table and fixtures of a league.
func (c *Client) Detail(ctx context.Context, leagueID int64) (LeagueDetail, error) {
	var out LeagueDetail
	err := c.getJSON(ctx, "/api/leagueTable/"+strconv.FormatInt(leagueID, 10), &out)
	if err != nil {
		return LeagueDetail{}, err
	}
	return out, nil
}

// LogoURL is where the league's logo image is served from.
func (c *Client) LogoURL(league League) string {
	return c.endpoint(fmt.Sprintf("/img/%d.png", league.ID))
}
