// Package crawl: bounded BFS queue with deduplication.
package crawl

// Queue is a BFS queue that admits each URL once and stops admitting new
// URLs after Limit of them have been seen.
type Queue struct {
	Limit   int
	items   []string
	visited map[string]bool
	idx     int // current read position
}

// NewQueue creates an empty Queue holding at most limit URLs.
// A limit <= 0 means unbounded.
func NewQueue(limit int) *Queue {
	return &Queue{
		Limit:   limit,
		visited: make(map[string]bool),
	}
}

// Add enqueues a URL unless it was seen before or the queue is full.
// It reports whether the URL was enqueued.
func (q *Queue) Add(url string) bool {
	if q.visited[url] || q.Full() {
		return false
	}
	q.visited[url] = true
	q.items = append(q.items, url)
	return true
}

// Full reports whether the queue reached its limit.
func (q *Queue) Full() bool {
	return q.Limit > 0 && len(q.items) >= q.Limit
}

// HasNext returns true if there are unprocessed URLs.
func (q *Queue) HasNext() bool {
	return q.idx < len(q.items)
}

// Next returns the next unprocessed URL and advances the pointer.
func (q *Queue) Next() string {
	url := q.items[q.idx]
	q.idx++
	return url
}
