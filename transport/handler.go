package transport

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"chatdice/contract"
	"chatdice/domain"
	"chatdice/domain/event"
	"chatdice/errors"
)

// frame is one inbound client command.
type frame struct {
	Type           string `json:"type" validate:"required,oneof=start-1on1 start-group cancel-match send-message report-user leave-chat"`
	Message        string `json:"message,omitempty"`
	ReportedUserID string `json:"reported_user_id,omitempty"`
	Reason         string `json:"reason,omitempty"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// SessionHandler owns the websocket endpoint. Each connection gets an
// anonymous participant identity valid for its lifetime only.
type SessionHandler struct {
	log      *slog.Logger
	core     contract.ISessionCore
	validate *validator.Validate
}

func NewSessionHandler(log *slog.Logger, core contract.ISessionCore) *SessionHandler {
	return &SessionHandler{log: log, core: core, validate: validator.New()}
}

// Handle upgrades the connection, registers the participant and pumps
// inbound frames until the connection drops.
func (h *SessionHandler) Handle(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Warn("Websocket upgrade failed", "error", err)
		return
	}

	participantID := uuid.NewString()
	sink := newConnSink(conn)
	h.core.Connect(participantID, sink)

	defer func() {
		h.core.Disconnect(participantID)
		_ = sink.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("Websocket read", "participant", participantID, "error", err)
			}
			return
		}
		h.dispatch(participantID, sink, payload)
	}
}

// dispatch validates one frame and routes it to the session core. A
// rejected operation comes back to the sender as an error event, never
// as a dropped connection.
func (h *SessionHandler) dispatch(participantID string, sink contract.EventSink, payload []byte) {
	var f frame
	if err := json.Unmarshal(payload, &f); err != nil {
		h.sendError(sink, "Malformed frame")
		return
	}
	if err := h.validate.Struct(f); err != nil {
		h.sendError(sink, fmt.Sprintf("Invalid frame: %s", f.Type))
		return
	}

	var err error
	switch f.Type {
	case "start-1on1":
		err = h.core.EnqueueForMatch(participantID, domain.ModePair)
	case "start-group":
		err = h.core.EnqueueForMatch(participantID, domain.ModeGroup)
	case "cancel-match":
		h.core.CancelMatch(participantID)
	case "send-message":
		err = h.core.SendMessage(participantID, f.Message)
	case "report-user":
		err = h.core.ReportParticipant(participantID, f.ReportedUserID, f.Reason)
	case "leave-chat":
		h.core.LeaveSession(participantID)
	}
	if err != nil {
		h.sendError(sink, messageFor(err))
	}
}

// messageFor translates engine rejections into the client-facing
// wording.
func messageFor(err error) string {
	switch {
	case stderrors.Is(err, errors.ErrRateExceeded):
		return "Sending messages too fast. Please slow down."
	case stderrors.Is(err, errors.ErrNotInSession), stderrors.Is(err, errors.ErrNoConversation):
		return "You are not in a chat room"
	case stderrors.Is(err, errors.ErrEmptyMessage):
		return "Message cannot be empty"
	case stderrors.Is(err, errors.ErrAlreadyQueued):
		return "You are already waiting for a match"
	case stderrors.Is(err, errors.ErrAlreadyInSession):
		return "You are already in a chat"
	default:
		return "Something went wrong"
	}
}

func (h *SessionHandler) sendError(sink contract.EventSink, message string) {
	if err := sink.Consume(event.Error{Message: message}); err != nil {
		h.log.Debug("Delivering error event", "error", err)
	}
}
