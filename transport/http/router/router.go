package router

import (
	"github.com/go-chi/chi/v5"

	"roombook/internal/handlers/booking"
	"roombook/internal/handlers/chatbot"
	"roombook/internal/handlers/room"
)

type DomainHandlers struct {
	Room    room.Handler
	Booking booking.Handler
	Chatbot chatbot.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Chatbot.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
