package terminal

import "sync"

// chunkQueue is an unbounded FIFO of output chunks with a single producer
// (the reader goroutine) and a single consumer (PollOutput).
type chunkQueue struct {
	mu     sync.Mutex
	chunks [][]byte
	bytes  int
}

func (q *chunkQueue) push(chunk []byte) {
	q.mu.Lock()
	q.chunks = append(q.chunks, chunk)
	q.bytes += len(chunk)
	q.mu.Unlock()
}

// drain removes and returns every queued chunk in arrival order.
func (q *chunkQueue) drain() [][]byte {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.chunks
	q.chunks = nil
	q.bytes = 0
	return out
}

// pending returns the number of queued bytes.
func (q *chunkQueue) pending() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.bytes
}
