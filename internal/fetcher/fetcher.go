package fetcher

import (
	"context"

	"github.com/CrazyVinc/web-scraper/pkg/failure"
	"github.com/CrazyVinc/web-scraper/pkg/retry"
)

type Fetcher interface {
	Fetch(
		ctx context.Context,
		crawlDepth int,
		fetchParam FetchParam,
		retryParam retry.RetryParam,
	) (FetchResult, failure.ClassifiedError)
}
