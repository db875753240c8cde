// hospital/routes/patient.go
package routes

import (
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"hospital/hospital/config"
	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/utils/types"

	"github.com/go-chi/chi/v5"
)

const formOverhead = 1 << 20

// sniffContentType trusts the file bytes over the client's header.
func sniffContentType(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", err
	}
	defer f.Close()
	head := make([]byte, 512)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return "", err
	}
	return http.DetectContentType(head[:n]), nil
}

func parseBookingForm(w http.ResponseWriter, r *http.Request, cfg config.Config) (types.NewConsultation, []types.UploadedImage, error) {
	var req types.NewConsultation
	r.Body = http.MaxBytesReader(w, r.Body, cfg.ImageMaxBytes*int64(cfg.ImageMaxCount)+formOverhead)

	ct := r.Header.Get("Content-Type")
	var err error
	if strings.HasPrefix(ct, "multipart/form-data") {
		err = r.ParseMultipartForm(32 << 20)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return req, nil, badRequest("upload is too large")
		}
		return req, nil, badRequest("invalid form")
	}

	doctorID, err := strconv.ParseUint(strings.TrimSpace(r.FormValue("doctorId")), 10, 64)
	if err != nil {
		return req, nil, badRequest("invalid doctorId")
	}
	req = types.NewConsultation{
		DoctorID:    uint(doctorID),
		Slot:        r.FormValue("slot"),
		Reason:      r.FormValue("reason"),
		Description: r.FormValue("description"),
	}

	var images []types.UploadedImage
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["images"] {
			contentType, err := sniffContentType(fh)
			if err != nil {
				return req, nil, badRequest("unreadable upload " + fh.Filename)
			}
			images = append(images, types.UploadedImage{
				Filename:    fh.Filename,
				ContentType: contentType,
				Size:        fh.Size,
				Open:        func() (io.ReadCloser, error) { return fh.Open() },
			})
		}
	}
	return req, images, nil
}

func PatientRoutes(r chi.Router, ctrl *controllers.PatientController, cfg config.Config) {
	r.Group(func(gr chi.Router) {
		gr.Use(middlewares.AuthMiddleware(cfg))
		gr.Use(middlewares.RequireRole(types.RolePatient))

		gr.Post("/consultations", func(w http.ResponseWriter, r *http.Request) {
			req, images, err := parseBookingForm(w, r, cfg)
			if err != nil {
				writeError(w, r, err)
				return
			}
			if r.MultipartForm != nil {
				defer r.MultipartForm.RemoveAll()
			}
			consultation, err := ctrl.BookConsultation(r.Context(), principal(r).UserID, req, images)
			if err != nil {
				writeError(w, r, err)
				return
			}
			writeJSON(w, http.StatusCreated, map[string]any{
				"message":      "Consultation requested successfully",
				"consultation": consultation,
			})
		})

		gr.Get("/patients/consultations", handleJSON(func(r *http.Request) (any, int, error) {
			list, err := ctrl.ListConsultations(r.Context(), principal(r).UserID)
			if err != nil {
				return nil, 0, err
			}
			return list, http.StatusOK, nil
		}))

		gr.Get("/patient/consultation/{consultationId}", handleJSON(func(r *http.Request) (any, int, error) {
			id, err := uintParam(r, "consultationId")
			if err != nil {
				return nil, 0, err
			}
			consultation, err := ctrl.GetConsultation(r.Context(), principal(r).UserID, id)
			if err != nil {
				return nil, 0, err
			}
			return consultation, http.StatusOK, nil
		}))
	})
}
