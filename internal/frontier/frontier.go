package frontier

/*
Ledger Responsibilities
- Deduplicate dispatched URLs (the visited set)
- Hold pending work in FIFO order
- Count fetches in flight
- Answer the termination question: is the crawl drained?
- Knows nothing about:
	- fetching
	- extraction
	- scope and forbidden patterns
	- depth limits

It is a data structure, not a pipeline executor. It is not safe for
concurrent use: the scheduler mutates it from a single goroutine only.
*/
type Ledger struct {
	visited Set[string]
	pending *FIFOQueue[WorkItem]
	active  int
}

func NewLedger() *Ledger {
	return &Ledger{
		visited: NewSet[string](),
		pending: NewFIFOQueue[WorkItem](),
	}
}

// TryAdmit records url as visited. It returns false when url was already
// visited, in which case the caller must drop the work item.
func (l *Ledger) TryAdmit(url string) bool {
	if l.visited.Contains(url) {
		return false
	}
	l.visited.Add(url)
	return true
}

// Seen reports whether url has already been admitted.
func (l *Ledger) Seen(url string) bool {
	return l.visited.Contains(url)
}

func (l *Ledger) Enqueue(item WorkItem) {
	l.pending.Enqueue(item)
}

// DequeueIfCapacity pops the oldest pending item only while fewer than
// maxConcurrent fetches are in flight.
func (l *Ledger) DequeueIfCapacity(maxConcurrent int) (WorkItem, bool) {
	if l.active >= maxConcurrent {
		return WorkItem{}, false
	}
	return l.pending.Dequeue()
}

// MarkActive records a dispatched fetch.
func (l *Ledger) MarkActive() {
	l.active++
}

// MarkDone records a finished fetch, successful or not.
func (l *Ledger) MarkDone() {
	if l.active > 0 {
		l.active--
	}
}

// DropPending discards all queued work and returns how many items were dropped.
func (l *Ledger) DropPending() int {
	return l.pending.Clear()
}

// IsDrained is the global termination predicate.
func (l *Ledger) IsDrained() bool {
	return l.pending.Size() == 0 && l.active == 0
}

func (l *Ledger) Active() int {
	return l.active
}

func (l *Ledger) Pending() int {
	return l.pending.Size()
}

func (l *Ledger) VisitedCount() int {
	return l.visited.Size()
}
