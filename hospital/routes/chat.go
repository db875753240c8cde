// hospital/routes/chat.go
package routes

import (
	"net/http"

	"hospital/hospital/config"
	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/realtime"
	"hospital/hospital/utils/types"

	"github.com/go-chi/chi/v5"
)

func ChatRoutes(r chi.Router, ctrl *controllers.ChatController, gateway *realtime.Gateway, cfg config.Config) {
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Post("/chats", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.CreateChatRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			chat, err := ctrl.GetOrCreateSession(r.Context(), principal(r), uint(req.ConsultationID), uint(req.DoctorID), uint(req.PatientID))
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"message": "Chat session ready", "chat": chat}, http.StatusOK, nil
		}))

		// HTTP fallback for clients without a socket; the message is still
		// pushed to everyone in the room.
		gr.Post("/messages", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.SendMessageRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			msg, err := ctrl.SendMessage(r.Context(), principal(r), req.TargetChat(), uint(req.SenderID), req.Message)
			if err != nil {
				return nil, 0, err
			}
			if gateway != nil {
				gateway.Publish(msg)
			}
			return map[string]any{"message": "Message sent successfully", "data": msg}, http.StatusCreated, nil
		}))

		gr.Get("/chats/consultation/{consultationId}", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := uintParam(r, "consultationId")
			if err != nil {
				return nil, 0, err
			}
			chat, err := ctrl.GetChatByConsultation(r.Context(), principal(r), id)
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"chat": chat}, http.StatusOK, nil
		}))

		gr.Get("/chats/{chatId}", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := uintParam(r, "chatId")
			if err != nil {
				return nil, 0, err
			}
			chat, err := ctrl.GetChat(r.Context(), principal(r), id)
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"chat": chat}, http.StatusOK, nil
		}))
	})
}
