package frontier

// WorkItem is a unit of crawl work: a URL and its hop distance from the seed.
// It is immutable once created and consumed exactly once when dispatched.
type WorkItem struct {
	url   string
	depth int
}

func NewWorkItem(url string, depth int) WorkItem {
	return WorkItem{
		url:   url,
		depth: depth,
	}
}

func (w WorkItem) URL() string {
	return w.url
}

func (w WorkItem) Depth() int {
	return w.depth
}
