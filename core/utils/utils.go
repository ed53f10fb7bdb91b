package utils

import (
	"bytes"
	"encoding/json"
	"expvar"
	"fmt"
	"net/http"
	"sync"
	"time"

	log "github.com/golang/glog"
)

// Iteration records one training sweep.  Metric is the perplexity of
// the flat model or the log-likelihood of the hierarchical one.
type Iteration struct {
	StartTime time.Time
	Duration  time.Duration
	Metric    float64
	Topics    int
}

// Iterations is the training progress.  It implements expvar.Var, so
// it can be served while training goes on.
type Iterations struct {
	mu    sync.Mutex
	iters []*Iteration
}

// String returns the iterations as JSON, as expvar requires.
func (is *Iterations) String() string {
	is.mu.Lock()
	defer is.mu.Unlock()
	b, e := json.Marshal(is.iters)
	if e != nil {
		return "[]"
	}
	return string(b)
}

// Text returns one line per iteration.
func (is *Iterations) Text() string {
	is.mu.Lock()
	defer is.mu.Unlock()
	var buf bytes.Buffer
	for i, iter := range is.iters {
		fmt.Fprintf(&buf, "%05d: %s\t%s\t%d\t%f\n",
			i, iter.StartTime.Format(time.RFC3339), iter.Duration, iter.Topics, iter.Metric)
	}
	return buf.String()
}

func (is *Iterations) Start() *Iteration {
	is.mu.Lock()
	defer is.mu.Unlock()
	i := &Iteration{StartTime: time.Now()}
	is.iters = append(is.iters, i)
	return i
}

func (is *Iterations) End(metric float64, topics int) *Iteration {
	is.mu.Lock()
	defer is.mu.Unlock()
	i := is.iters[len(is.iters)-1]
	i.Duration = time.Since(i.StartTime)
	i.Metric = metric
	i.Topics = topics
	return i
}

func (is *Iterations) Len() int {
	is.mu.Lock()
	defer is.mu.Unlock()
	return len(is.iters)
}

// EnableExpvar publishes progress as the expvar "Iterations" and, if
// addr is not empty, serves /debug/vars and a plain text page at
// /progress on addr.
func EnableExpvar(addr string) *Iterations {
	is := new(Iterations)
	expvar.Publish("Iterations", is)
	if len(addr) == 0 {
		return is
	}

	http.Handle("/progress", progressHandler(is))
	go func() {
		if e := http.ListenAndServe(addr, nil); e != nil {
			log.Fatalf("ListenAndServe on %s failed: %v", addr, e)
		}
	}()
	return is
}

func progressHandler(is *Iterations) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprint(w, is.Text())
	}
}
