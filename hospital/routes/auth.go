// hospital/routes/auth.go
package routes

import (
	"net/http"

	"hospital/hospital/controllers"
	"hospital/hospital/utils/types"

	"github.com/go-chi/chi/v5"
)

func AuthRoutes(r chi.Router, ctrl *controllers.AuthController) {
	r.Post("/register/doctor", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterDoctorRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, 0, err
		}
		doctor, err := ctrl.RegisterDoctor(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return map[string]any{"message": "Doctor registered", "id": doctor.ID}, http.StatusCreated, nil
	}))

	r.Post("/register/patient", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.RegisterPatientRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, 0, err
		}
		patient, err := ctrl.RegisterPatient(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return map[string]any{"message": "Patient registered", "id": patient.ID}, http.StatusCreated, nil
	}))

	r.Post("/login", handleJSON(func(r *http.Request) (any, int, error) {
		var req types.LoginRequest
		if err := decodeJSON(r, &req); err != nil {
			return nil, 0, err
		}
		res, err := ctrl.Login(r.Context(), req)
		if err != nil {
			return nil, 0, err
		}
		return res, http.StatusOK, nil
	}))
}
