// hospital/routes/consultation.go
package routes

import (
	"net/http"

	"hospital/hospital/config"
	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/utils/types"

	"github.com/go-chi/chi/v5"
)

func ConsultationRoutes(r chi.Router, ctrl *controllers.ConsultationController, doctors *controllers.DoctorController, cfg config.Config) {
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		gr.Use(middlewares.RequireRole(types.RoleDoctor))

		gr.Get("/consultations/{consultationId}", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := uintParam(r, "consultationId")
			if err != nil {
				return nil, 0, err
			}
			consultation, err := doctors.GetConsultation(r.Context(), principal(r).UserID, id)
			if err != nil {
				return nil, 0, err
			}
			return consultation, http.StatusOK, nil
		}))

		gr.Put("/consultations/{consultationId}/status", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := uintParam(r, "consultationId")
			if err != nil {
				return nil, 0, err
			}
			var req types.UpdateStatusRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			consultation, err := ctrl.UpdateStatus(r.Context(), principal(r), id, req.Status)
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{
				"message":      "Consultation status updated successfully",
				"consultation": consultation,
			}, http.StatusOK, nil
		}))
	})
}
