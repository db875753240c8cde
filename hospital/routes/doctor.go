// hospital/routes/doctor.go
package routes

import (
	"net/http"

	"hospital/hospital/config"
	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/utils/types"

	"github.com/go-chi/chi/v5"
)

func DoctorRoutes(r chi.Router, ctrl *controllers.DoctorController, cfg config.Config) {
	// public doctor detail, as the booking page links to it directly
	r.Get("/doctor/{doctorId}/slots", handleJSON(func(r *http.Request) (any, int, error) {
		id, err := uintParam(r, "doctorId")
		if err != nil {
			return nil, 0, err
		}
		doctor, err := ctrl.GetDoctor(r.Context(), id)
		if err != nil {
			return nil, 0, err
		}
		return doctor, http.StatusOK, nil
	}))

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))

		gr.Get("/doctors", handleJSON(func(r *http.Request) (any, int, error) {
			doctors, err := ctrl.ListDoctors(r.Context())
			if err != nil {
				return nil, 0, err
			}
			return doctors, http.StatusOK, nil
		}))
	})

	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		gr.Use(middlewares.RequireRole(types.RoleDoctor))

		gr.Get("/doctor/profile", handleJSON(func(r *http.Request) (any, int, error) {
			doctor, err := ctrl.GetDoctor(r.Context(), principal(r).UserID)
			if err != nil {
				return nil, 0, err
			}
			return doctor, http.StatusOK, nil
		}))

		gr.Put("/doctors/update-profile", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.UpdateProfileRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			doctor, err := ctrl.UpdateProfile(r.Context(), principal(r).UserID, req)
			if err != nil {
				return nil, 0, err
			}
			return map[string]any{"message": "Profile updated successfully", "doctor": doctor}, http.StatusOK, nil
		}))

		addSlots := handleJSON(func(r *http.Request) (any, int, error) {
			var req types.AddSlotsRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			slots, err := ctrl.AddSlots(r.Context(), principal(r).UserID, req.NewSlots)
			if err != nil {
				return nil, 0, err
			}
			return types.SlotsResponse{Message: "Available slots updated successfully", AvailableSlots: slots}, http.StatusOK, nil
		})
		gr.Put("/doctors/add-available-slots", addSlots)
		gr.Post("/doctors/add-available-slots", addSlots)

		gr.Delete("/doctors/remove-available-slots", handleJSON(func(r *http.Request) (any, int, error) {
			var req types.RemoveSlotsRequest
			if err := decodeJSON(r, &req); err != nil {
				return nil, 0, err
			}
			slots, err := ctrl.RemoveSlots(r.Context(), principal(r).UserID, req.RemovedSlots)
			if err != nil {
				return nil, 0, err
			}
			return types.SlotsResponse{Message: "Available slots updated successfully", AvailableSlots: slots}, http.StatusOK, nil
		}))

		gr.Get("/doctors/consultations", handleJSON(func(r *http.Request) (any, int, error) {
			list, err := ctrl.ListConsultations(r.Context(), principal(r).UserID)
			if err != nil {
				return nil, 0, err
			}
			return list, http.StatusOK, nil
		}))
	})
}
