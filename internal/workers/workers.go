// Package workers hosts the client's background jobs: the connectivity-driven
// outbox drain and the periodic safety-net sync. Workers implement a single
// Run method and are started together by the aggregate.
package workers

// Worker is implemented by any background job. Run is expected to return
// quickly, spawning goroutines internally for long-lived work.
type Worker interface {
	Run()
}

// Workers starts a fixed set of workers in registration order.
type Workers struct {
	workers []Worker
}

func NewWorkers(ws ...Worker) *Workers {
	return &Workers{workers: ws}
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}
