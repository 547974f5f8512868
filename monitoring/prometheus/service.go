// Package prometheus defines a service which serves the prometheus metrics
// of the process along with a health endpoint and any additional handlers.
package prometheus

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"runtime/pprof"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prysmaticlabs/gasper/runtime"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "prometheus")

// Service provides Prometheus metrics via the /metrics route. This route will
// show all the metrics registered with the Prometheus DefaultRegisterer.
type Service struct {
	server      *http.Server
	svcRegistry *runtime.ServiceRegistry
	failStatus  error
}

// Handler represents a path and handler func to serve on the same port as /metrics, /healthz, /goroutinez, etc.
type Handler struct {
	Path    string
	Handler func(http.ResponseWriter, *http.Request)
}

// NewService sets up a new instance for a given address host:port.
// An empty host will match with any IP so an address like ":2121" is perfectly acceptable.
func NewService(addr string, svcRegistry *runtime.ServiceRegistry, additionalHandlers ...Handler) *Service {
	s := &Service{svcRegistry: svcRegistry}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", s.healthzHandler)
	mux.HandleFunc("/goroutinez", s.goroutinezHandler)

	// Register additional handlers.
	for _, h := range additionalHandlers {
		mux.HandleFunc(h.Path, h.Handler)
	}

	s.server = &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: time.Second}
	return s
}

// serviceStatus is the health of one registered service.
type serviceStatus struct {
	Name    string `json:"service"`
	Healthy bool   `json:"healthy"`
	Err     string `json:"error,omitempty"`
}

func (s *Service) healthzHandler(w http.ResponseWriter, r *http.Request) {
	statuses := make([]serviceStatus, 0)
	code := http.StatusOK
	for k, v := range s.svcRegistry.Statuses() {
		st := serviceStatus{Name: k.String(), Healthy: v == nil}
		if v != nil {
			st.Err = v.Error()
			code = http.StatusInternalServerError
		}
		statuses = append(statuses, st)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].Name < statuses[j].Name })

	var buf strings.Builder
	for _, st := range statuses {
		status := "OK"
		if !st.Healthy {
			status = "ERROR " + st.Err
		}
		fmt.Fprintf(&buf, "%s: %s\n", st.Name, status)
	}
	if err := writeResponse(w, r, code, buf.String(), statuses); err != nil {
		log.WithError(err).Error("Could not write healthz response")
	}
}

func (*Service) goroutinezHandler(w http.ResponseWriter, _ *http.Request) {
	stack := pprof.Lookup("goroutine")
	if err := stack.WriteTo(w, 2); err != nil {
		log.WithError(err).Error("Failed to write goroutines stack")
	}
}

// Start the prometheus service.
func (s *Service) Start() {
	go func() {
		// See if the port is already used.
		addrParts, err := net.ResolveTCPAddr("tcp", s.server.Addr)
		if err == nil {
			conn, err := net.DialTimeout("tcp", addrParts.String(), time.Second)
			if err == nil {
				if err := conn.Close(); err != nil {
					log.WithError(err).Error("Failed to close connection")
				}
				// Something on the port; we cannot use it.
				log.WithField("address", s.server.Addr).Warn("Port already in use; cannot start prometheus service")
			} else {
				// Nothing on that port; we can use it.
				log.WithField("address", s.server.Addr).Debug("Starting prometheus service")
				err := s.server.ListenAndServe()
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.WithError(err).Errorf("Could not listen to host:port :%s", s.server.Addr)
					s.failStatus = err
				}
			}
		}
	}()
}

// Stop the service gracefully.
func (s *Service) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Status checks for any service failure conditions.
func (s *Service) Status() error {
	if s.failStatus != nil {
		return s.failStatus
	}
	return nil
}
