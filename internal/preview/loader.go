package preview

import (
	"context"
	"sync"

	"github.com/kk-code-lab/peek/internal/provider"
)

// Loader selects previews asynchronously.
type Loader interface {
	Start(req LoadRequest)
	Cancel(token int)
}

// LoadRequest describes the preview to select.
type LoadRequest struct {
	Token    int
	Provider provider.ContentProvider
	MIMEType string
	Callback func(LoadResult)
}

// LoadResult carries the selected preview. Preview is nil when no preview is
// available; MIMEType is the type the selection ran with.
type LoadResult struct {
	Token    int
	Preview  Preview
	MIMEType string
}

// NewAsyncLoader constructs the default goroutine-based loader.
func NewAsyncLoader(selector *Selector) Loader {
	return &asyncLoader{
		selector: selector,
		jobs:     make(map[int]*loadJob),
	}
}

type loadJob struct {
	cancel context.CancelFunc
}

type asyncLoader struct {
	selector *Selector
	mu       sync.Mutex
	jobs     map[int]*loadJob
}

func (l *asyncLoader) Start(req LoadRequest) {
	if req.Token == 0 || req.Provider == nil || req.Callback == nil {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	job := &loadJob{cancel: cancel}
	l.mu.Lock()
	if previous, ok := l.jobs[req.Token]; ok {
		previous.cancel()
	}
	l.jobs[req.Token] = job
	l.mu.Unlock()

	go func() {
		defer func() {
			l.mu.Lock()
			if l.jobs[req.Token] == job {
				delete(l.jobs, req.Token)
			}
			l.mu.Unlock()
			cancel()
		}()

		p := l.selector.Select(ctx, req.Provider, req.MIMEType)

		select {
		case <-ctx.Done():
			return
		default:
		}

		req.Callback(LoadResult{
			Token:    req.Token,
			Preview:  p,
			MIMEType: ResolveMIMEType(req.Provider, req.MIMEType),
		})
	}()
}

func (l *asyncLoader) Cancel(token int) {
	l.mu.Lock()
	if job, ok := l.jobs[token]; ok {
		job.cancel()
		delete(l.jobs, token)
	}
	l.mu.Unlock()
}
