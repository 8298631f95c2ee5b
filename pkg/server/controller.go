package server

import (
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// Controller registers its routes on the shared router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

type HTTPServer struct {
	router *mux.Router
	log    *logrus.Logger
}

func New(log *logrus.Logger, controllers ...Controller) *HTTPServer {
	router := mux.NewRouter()
	for _, c := range controllers {
		c.Register(router)
		log.Infof("registered controller %s", c.Key())
	}
	return &HTTPServer{router: router, log: log}
}

func (s *HTTPServer) Router() *mux.Router {
	return s.router
}

func (s *HTTPServer) Start(port int) error {
	addr := fmt.Sprintf(":%d", port)
	s.log.Infof("listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}
