package server

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"github.com/mehranjafarii/heat-simulation-fdm/calculator"
	"github.com/mehranjafarii/heat-simulation-fdm/model"
)

// request types
const (
	TypeSimulate = "simulate"
	TypeProfile  = "profile"
	TypeExport   = "export"
)

// reply types
const (
	TypeSimulated = "simulated"
	TypeExported  = "exported"
	TypeError     = "error"
)

var ErrNoResult = errors.New("no simulation has been run yet")

// Hub serves one websocket connection. Requests are handled in order and
// the last result is kept for profile and export requests.
type Hub struct {
	c        *calculator.Calculator
	defaults model.SimulationInput
	conn     *websocket.Conn
	last     *calculator.Result
	// request
	msg chan model.Msg
	// response
	reply chan model.Msg
}

func NewHub(c *calculator.Calculator, defaults model.SimulationInput) *Hub {
	return &Hub{
		c:        c,
		defaults: defaults,
		msg:      make(chan model.Msg, 10),
		reply:    make(chan model.Msg, 10),
	}
}

func (h *Hub) handleRequest() {
	defer close(h.reply)
	for msg := range h.msg {
		h.reply <- h.handle(msg)
	}
}

func (h *Hub) handleResponse() {
	for reply := range h.reply {
		if err := h.conn.WriteJSON(&reply); err != nil {
			log.WithField("type", reply.Type).Error("write reply: ", err)
		}
	}
}

func (h *Hub) handle(msg model.Msg) model.Msg {
	var (
		reply model.Msg
		err   error
	)
	switch msg.Type {
	case TypeSimulate:
		reply, err = h.simulate(msg.Content)
	case TypeProfile:
		reply, err = h.profile(msg.Content)
	case TypeExport:
		reply, err = h.export()
	default:
		err = fmt.Errorf("no such type %q", msg.Type)
	}
	if err != nil {
		log.WithField("type", msg.Type).Warn(err)
		return model.Msg{Type: TypeError, Content: err.Error()}
	}
	return reply
}

func (h *Hub) simulate(content string) (model.Msg, error) {
	in := h.defaults
	if content != "" {
		if err := json.Unmarshal([]byte(content), &in); err != nil {
			return model.Msg{}, fmt.Errorf("bad simulation input: %w", err)
		}
	}
	res, err := h.c.Simulate(in)
	if err != nil {
		return model.Msg{}, err
	}
	h.last = res
	return encode(TypeSimulated, res.Payload())
}

func (h *Hub) profile(content string) (model.Msg, error) {
	if h.last == nil {
		return model.Msg{}, ErrNoResult
	}
	req := model.ProfileReq{X: model.Width / 2}
	if content != "" {
		if err := json.Unmarshal([]byte(content), &req); err != nil {
			return model.Msg{}, fmt.Errorf("bad profile request: %w", err)
		}
	}
	return encode(TypeProfile, h.last.Profile(req.X))
}

func (h *Hub) export() (model.Msg, error) {
	if h.last == nil {
		return model.Msg{}, ErrNoResult
	}
	return encode(TypeExported, h.last.Payload())
}

func encode(typ string, v interface{}) (model.Msg, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return model.Msg{}, err
	}
	return model.Msg{Type: typ, Content: string(data)}, nil
}
