// pkg/metrics/exporter.go
package metrics

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redpanda-data/benthos/v4/public/service"
)

// Exporter serves a Prometheus gatherer over HTTP at /metrics. Exporters are
// shared per listen address; every AcquireExporter must be paired with a
// Release.
type Exporter struct {
	addr     string
	listener net.Listener
	server   *http.Server
	logger   *service.Logger
	refs     int
	done     chan struct{}
}

var exporters = struct {
	mu     sync.Mutex
	byAddr map[string]*Exporter
}{byAddr: make(map[string]*Exporter)}

// AcquireExporter returns the exporter listening on addr, starting it if
// needed. An exporter already running on addr keeps serving its original
// gatherer.
func AcquireExporter(addr string, gatherer prometheus.Gatherer, logger *service.Logger) (*Exporter, error) {
	exporters.mu.Lock()
	defer exporters.mu.Unlock()

	if e, ok := exporters.byAddr[addr]; ok {
		e.refs++
		return e, nil
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to listen on %s: %w", addr, err)
	}

	router := mux.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	e := &Exporter{
		addr:     addr,
		listener: listener,
		server: &http.Server{
			Handler:      router,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
		refs:   1,
		done:   make(chan struct{}),
	}

	go e.serve()
	exporters.byAddr[addr] = e

	if logger != nil {
		logger.Infof("Serving elapsed time histograms on http://%s/metrics", listener.Addr())
	}
	return e, nil
}

func (e *Exporter) serve() {
	defer close(e.done)
	if err := e.server.Serve(e.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		if e.logger != nil {
			e.logger.Errorf("Metrics exporter on %s stopped: %v", e.addr, err)
		}
	}
}

// Addr returns the address the exporter actually listens on
func (e *Exporter) Addr() string {
	return e.listener.Addr().String()
}

// Release drops one reference and shuts the server down with the last one
func (e *Exporter) Release(ctx context.Context) error {
	exporters.mu.Lock()
	if e.refs == 0 {
		exporters.mu.Unlock()
		return nil
	}
	e.refs--
	if e.refs > 0 {
		exporters.mu.Unlock()
		return nil
	}
	if exporters.byAddr[e.addr] == e {
		delete(exporters.byAddr, e.addr)
	}
	exporters.mu.Unlock()

	if err := e.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shut down metrics exporter on %s: %w", e.addr, err)
	}
	<-e.done
	return nil
}
