package server

import (
	"net/http"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/mehranjafarii/heat-simulation-fdm/calculator"
	"github.com/mehranjafarii/heat-simulation-fdm/model"
)

type Server struct {
	addr     string
	upgrader websocket.Upgrader
	c        *calculator.Calculator
	defaults model.SimulationInput
}

func NewServer(addr string, upgrader websocket.Upgrader, c *calculator.Calculator, defaults model.SimulationInput) *Server {
	return &Server{
		addr:     addr,
		upgrader: upgrader,
		c:        c,
		defaults: defaults,
	}
}

// serveWs handles websocket requests from the peer.
func (s *Server) serveWs(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error("upgrade: ", err)
		return
	}
	defer conn.Close()

	hub := NewHub(s.c, s.defaults)
	hub.conn = conn
	done := make(chan struct{})
	go hub.handleRequest()
	go func() {
		hub.handleResponse()
		close(done)
	}()

	log.WithField("remote", r.RemoteAddr).Info("client connected")
	for {
		var msg model.Msg
		if err = conn.ReadJSON(&msg); err != nil {
			log.WithField("remote", r.RemoteAddr).Info("client gone: ", err)
			break
		}
		hub.msg <- msg
	}
	close(hub.msg)
	<-done
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.serveWs)
	return mux
}

func (s *Server) Serve() error {
	log.WithField("addr", s.addr).Info("listening")
	return http.ListenAndServe(s.addr, s.Handler())
}
