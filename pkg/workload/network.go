package workload

import (
	"context"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// NetBurst GETs url iterations times, waiting on limiter before each
// request. Failed requests are logged and skipped, the burst itself never
// fails. Returns the number of requests that got a response.
func NetBurst(client *http.Client, url string, iterations int, limiter *rate.Limiter) int {
	ctx := context.Background()
	ok := 0

	for i := 0; i < iterations; i++ {
		if err := limiter.Wait(ctx); err != nil {
			logrus.Warnf("request %d: rate limiter: %v", i+1, err)
			continue
		}

		if err := get(ctx, client, url); err != nil {
			logrus.Warnf("request %d failed: %v", i+1, err)
			continue
		}
		ok++
	}

	return ok
}

func get(ctx context.Context, client *http.Client, url string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	// Read the body so the full transfer happens.
	_, err = io.Copy(io.Discard, resp.Body)
	return err
}
