// Package server implements the TCP listener that accepts robot
// connections and hands each one to its own supervisor goroutine. This is
// component C6 of the spec.
package server

import (
	"context"
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"

	"code.hybscloud.com/rovernet/supervisor"
)

// Server listens for robot connections on a single TCP address.
type Server struct {
	host string
	port int
	ln   net.Listener
}

// New returns a Server bound to host:port, not yet listening.
func New(host string, port int) *Server {
	return &Server{host: host, port: port}
}

// Run listens and accepts connections until ctx is cancelled. It never
// awaits in-flight sessions on shutdown: cancelling ctx closes the
// listening socket and Run returns, leaving already-accepted connections
// to finish on their own goroutines.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf("%s:%d", s.host, s.port))
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		<-ctx.Done()
		log.Info("context done, closing listener")
		ln.Close()
	}()

	log.Infof("listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				log.Info("listener closed cleanly")
				return nil
			default:
				log.Errorf("accept error: %v", err)
				return err
			}
		}

		go supervisor.Serve(conn, log.NewEntry(log.StandardLogger()))
	}
}
