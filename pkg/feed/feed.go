package feed

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gibzwein/RCE-reader/pkg/version"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServer = "https://www.pse.pl"
	csvPath       = "/getcsv/-/export/csv/PL_CENY_RYN_EN/data/"
)

type FetchError struct {
	Date     string
	Attempts int
	Err      error
}

// Attempts is zero when the failure is not tied to a number of requests.
func (e *FetchError) Error() string {
	if e.Attempts == 0 {
		return fmt.Sprintf("error fetching prices for %s: %s", e.Date, e.Err)
	}
	return fmt.Sprintf("error fetching prices for %s after %d attempt(s): %s", e.Date, e.Attempts, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

type Client struct {
	server   string
	attempts int
	http     *retryablehttp.Client
}

// New returns a client making at most attempts requests per Fetch, waiting step*n before
// retry n.
func New(server string, attempts int, step time.Duration) *Client {
	if attempts < 1 {
		attempts = 1
	}
	c := retryablehttp.NewClient()
	c.HTTPClient = &http.Client{
		Timeout: time.Second * 30,
	}
	c.RetryMax = attempts - 1
	c.CheckRetry = retryPolicy
	c.Backoff = LinearBackoff(step)
	c.Logger = leveledLogger{logrus.WithField("component", "feed")}
	c.ResponseLogHook = func(_ retryablehttp.Logger, resp *http.Response) {
		if resp.StatusCode != http.StatusOK {
			logrus.Warnf("error while retrieving data. Response code: %d", resp.StatusCode)
		}
	}

	return &Client{
		server:   strings.TrimSuffix(server, "/"),
		attempts: attempts,
		http:     c,
	}
}

func (c *Client) URL(date string) string {
	return c.server + csvPath + date
}

// Fetch returns the CSV body for date (YYYYMMDD). Every failure is returned as *FetchError.
func (c *Client) Fetch(ctx context.Context, date string) (string, error) {
	u := c.URL(date)
	logrus.WithField("url", u).Info("requesting prices")

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", &FetchError{Date: date, Err: err}
	}
	req.Header.Set("User-Agent", version.UserAgent())

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &FetchError{Date: date, Attempts: c.attempts, Err: err}
	}
	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &FetchError{Date: date, Err: fmt.Errorf("error reading body: %w", err)}
	}
	return string(b), nil
}

// LinearBackoff waits step, 2*step, 3*step... between attempts.
func LinearBackoff(step time.Duration) retryablehttp.Backoff {
	return func(_, _ time.Duration, attemptNum int, _ *http.Response) time.Duration {
		wait := step * time.Duration(attemptNum+1)
		logrus.Infof("retrying to fetch data in %s", wait)
		return wait
	}
}

// retryPolicy retries transport errors and any status other than 200.
func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if ctx.Err() != nil {
		return false, ctx.Err()
	}
	if err != nil {
		return true, nil
	}
	return resp.StatusCode != http.StatusOK, nil
}
