// Package runtime manages the lifecycle of the long running services of the
// gasper tooling, such as the fork-head service driven by pcli simulate.
package runtime

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = logrus.WithField("prefix", "registry")

// Service is a long running component owned by a ServiceRegistry.
type Service interface {
	Start()
	// Stop blocks until every goroutine of the service has returned.
	Stop() error
	// Status is nil while the service is healthy.
	Status() error
}

// ServiceRegistry holds at most one service per concrete type and remembers
// the order they were registered in.
type ServiceRegistry struct {
	services     map[reflect.Type]Service
	serviceTypes []reflect.Type
}

// NewServiceRegistry returns an empty registry.
func NewServiceRegistry() *ServiceRegistry {
	return &ServiceRegistry{services: make(map[reflect.Type]Service)}
}

// RegisterService adds service, failing when one of the same type is present.
func (s *ServiceRegistry) RegisterService(service Service) error {
	kind := reflect.TypeOf(service)
	if _, ok := s.services[kind]; ok {
		return errors.Errorf("service already exists: %v", kind)
	}
	s.services[kind] = service
	s.serviceTypes = append(s.serviceTypes, kind)
	log.WithField("service", kind.String()).Debug("Registered service")
	return nil
}

// StopAll stops the services last registered first. Failures are logged and
// do not keep the remaining services running.
func (s *ServiceRegistry) StopAll() {
	for i := len(s.serviceTypes) - 1; i >= 0; i-- {
		kind := s.serviceTypes[i]
		if err := s.services[kind].Stop(); err != nil {
			log.WithError(err).WithField("service", kind.String()).Error("Could not stop service")
		}
	}
}

// Statuses maps every registered service type to its Status.
func (s *ServiceRegistry) Statuses() map[reflect.Type]error {
	m := make(map[reflect.Type]error, len(s.serviceTypes))
	for kind, svc := range s.services {
		m[kind] = svc.Status()
	}
	return m
}

// Healthy is nil when every service is healthy. Otherwise the error lists the
// failing ones in registration order.
func (s *ServiceRegistry) Healthy() error {
	var failing []string
	for _, kind := range s.serviceTypes {
		if err := s.services[kind].Status(); err != nil {
			failing = append(failing, fmt.Sprintf("%v: %v", kind, err))
		}
	}
	if len(failing) > 0 {
		return errors.Errorf("unhealthy services: %s", strings.Join(failing, "; "))
	}
	return nil
}
