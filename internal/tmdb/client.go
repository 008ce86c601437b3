package tmdb

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/kdimtricp/auteur/internal/metrics"
	"github.com/kdimtricp/auteur/internal/models"
)

const (
	DefaultBaseURL      = "https://api.themoviedb.org/3"
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	DefaultLanguage     = "en-US"
)

var (
	ErrNotFound      = errors.New("tmdb: resource not found")
	ErrUnauthorized  = errors.New("tmdb: invalid or missing credentials")
	ErrMissingAPIKey = errors.New("tmdb: no API key configured")
	ErrUnavailable   = errors.New("tmdb: temporarily unavailable")
)

// StatusError is returned for any other non-200 response.
type StatusError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("tmdb %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("tmdb %s returned status %d", e.Endpoint, e.StatusCode)
}

type Config struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Language     string
	Timeout      time.Duration

	RequestsPerSecond float64
	Burst             int

	CacheSize int
	CacheTTL  time.Duration

	BreakerMaxFailures uint32
	BreakerTimeout     time.Duration
}

type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	language     string
	httpClient   *http.Client
	limiter      *rate.Limiter
	breaker      *gobreaker.CircuitBreaker[[]byte]
	cache        *responseCache
}

func NewClient(cfg Config) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = DefaultImageBaseURL
	}
	if cfg.Language == "" {
		cfg.Language = DefaultLanguage
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 20
	}
	if cfg.Burst <= 0 {
		cfg.Burst = int(cfg.RequestsPerSecond)
	}

	return &Client{
		apiKey:       strings.TrimSpace(cfg.APIKey),
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		language:     cfg.Language,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		breaker: newBreaker(cfg.BreakerMaxFailures, cfg.BreakerTimeout),
		cache:   newResponseCache(cfg.CacheSize, cfg.CacheTTL),
	}
}

func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// BreakerState reports the circuit breaker state: closed, half-open or open.
func (c *Client) BreakerState() string {
	return c.breaker.State().String()
}

func (c *Client) CachedResponses() int {
	return c.cache.len()
}

func (c *Client) GetMovie(ctx context.Context, movieID int) (*models.Movie, error) {
	var movie models.Movie
	if err := c.get(ctx, "movie", "/movie/"+strconv.Itoa(movieID), nil, &movie); err != nil {
		return nil, fmt.Errorf("getting movie %d: %w", movieID, err)
	}
	return &movie, nil
}

func (c *Client) SearchMovies(ctx context.Context, query string) ([]models.Movie, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var page MoviePage
	if err := c.get(ctx, "search_movie", "/search/movie", params, &page); err != nil {
		return nil, fmt.Errorf("searching movies: %w", err)
	}
	return page.Results, nil
}

func (c *Client) SearchPeople(ctx context.Context, query string) ([]models.Director, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", "1")
	params.Set("include_adult", "false")

	var page personPage
	if err := c.get(ctx, "search_person", "/search/person", params, &page); err != nil {
		return nil, fmt.Errorf("searching people: %w", err)
	}
	return page.Results, nil
}

func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	if page <= 0 {
		page = 1
	}
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	var result MoviePage
	if err := c.get(ctx, "top_rated", "/movie/top_rated", params, &result); err != nil {
		return nil, fmt.Errorf("getting top rated page %d: %w", page, err)
	}
	return &result, nil
}

func (c *Client) Genres(ctx context.Context) ([]models.Genre, error) {
	var list genreList
	if err := c.get(ctx, "genres", "/genre/movie/list", nil, &list); err != nil {
		return nil, fmt.Errorf("getting genres: %w", err)
	}
	return list.Genres, nil
}

func (c *Client) GetPerson(ctx context.Context, personID int) (*models.Director, error) {
	var person models.Director
	if err := c.get(ctx, "person", "/person/"+strconv.Itoa(personID), nil, &person); err != nil {
		return nil, fmt.Errorf("getting person %d: %w", personID, err)
	}
	return &person, nil
}

func (c *Client) GetPersonMovieCredits(ctx context.Context, personID int) (*MovieCredits, error) {
	var credits MovieCredits
	path := "/person/" + strconv.Itoa(personID) + "/movie_credits"
	if err := c.get(ctx, "person_credits", path, nil, &credits); err != nil {
		return nil, fmt.Errorf("getting credits for person %d: %w", personID, err)
	}
	return &credits, nil
}

// ImageURL builds a poster or profile URL. It returns "" for a missing path.
func (c *Client) ImageURL(path *string, size string) string {
	if path == nil || *path == "" {
		return ""
	}
	if size == "" {
		size = "w500"
	}
	return fmt.Sprintf("%s/%s%s", c.imageBaseURL, size, *path)
}

// get resolves one API call through the response cache, the rate limiter
// and the circuit breaker, then decodes the body into out.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) error {
	if !c.Configured() {
		return ErrMissingAPIKey
	}

	if params == nil {
		params = url.Values{}
	}
	params.Set("language", c.language)
	cacheKey := path + "?" + params.Encode()

	body, ok := c.cache.get(cacheKey)
	if !ok {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}

		start := time.Now()
		var err error
		body, err = c.breaker.Execute(func() ([]byte, error) {
			return c.do(ctx, endpoint, path, params)
		})
		metrics.RecordTMDbRequest(endpoint, time.Since(start), err)
		if err != nil {
			return breakerError(err)
		}
		c.cache.put(cacheKey, body)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	query := url.Values{}
	for k, v := range params {
		query[k] = v
	}

	// v4 read access tokens are JWTs and go in the Authorization header.
	bearer := strings.HasPrefix(c.apiKey, "eyJ")
	if !bearer {
		query.Set("api_key", c.apiKey)
	}

	fullURL := fmt.Sprintf("%s%s?%s", c.baseURL, path, query.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if bearer {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		return body, nil
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusUnauthorized:
		return nil, ErrUnauthorized
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode, Endpoint: endpoint}
	var apiErr apiError
	if json.Unmarshal(body, &apiErr) == nil {
		statusErr.Message = apiErr.StatusMessage
	}
	return nil, statusErr
}
