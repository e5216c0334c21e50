package chatbot

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"roombook/shared/constant"
	"roombook/transport/http/response"
)

// Reply is the canned answer of the chatbot routes.
type Reply struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type Handler struct{}

func New() Handler {
	return Handler{}
}

func (h *Handler) Router(router chi.Router) {
	router.Route("/chatbot", func(routerGroup chi.Router) {
		routerGroup.Post("/message", h.ProcessMessage)
		routerGroup.Get("/history/{sessionId}", h.GetHistory)
	})
}

// ProcessMessage accepts a chatbot message.
// @Summary Send a chatbot message
// @Tags Chatbot
// @Produce json
// @Success 200 {object} Reply
// @Router /v1/chatbot/message [post]
func (h *Handler) ProcessMessage(w http.ResponseWriter, _ *http.Request) {
	response.WithBody(w, http.StatusOK, Reply{Success: true, Message: "Process chatbot message route"})
}

// GetHistory returns the history of a chat session.
// @Summary Get chat history
// @Tags Chatbot
// @Produce json
// @Param sessionId path string true "Session ID"
// @Success 200 {object} Reply
// @Router /v1/chatbot/history/{sessionId} [get]
func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, constant.RequestParamSessionID)

	response.WithBody(w, http.StatusOK, Reply{Success: true, Message: "Get chat history for session " + sessionID})
}
