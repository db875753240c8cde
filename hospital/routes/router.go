// hospital/routes/router.go
package routes

import (
	"net/http"

	"hospital/hospital/config"
	"hospital/hospital/controllers"
	"hospital/hospital/middlewares"
	"hospital/hospital/realtime"
	"hospital/hospital/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Deps struct {
	Config        config.Config
	Health        *controllers.HealthController
	Auth          *controllers.AuthController
	Doctors       *controllers.DoctorController
	Patients      *controllers.PatientController
	Consultations *controllers.ConsultationController
	Chats         *controllers.ChatController
	Gateway       *realtime.Gateway
	// SocketIO is mounted at /socket.io/ when set.
	SocketIO http.Handler
}

func NewRouter(d Deps) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestMiddleware)
	r.Use(middleware.Recoverer)
	r.Use(middlewares.CORS(d.Config.CORSOrigins))

	r.Mount("/health", HealthRoutes(d.Health))

	r.Route("/api", func(api chi.Router) {
		// sockets outlive the request timeout
		api.Method(http.MethodGet, "/chats/ws", d.Gateway.WebSocketHandler(d.Config.CORSOrigins))

		api.Group(func(gr chi.Router) {
			if d.Config.RequestTimeout > 0 {
				gr.Use(middleware.Timeout(d.Config.RequestTimeout))
			}
			AuthRoutes(gr, d.Auth)
			DoctorRoutes(gr, d.Doctors, d.Config)
			PatientRoutes(gr, d.Patients, d.Config)
			ConsultationRoutes(gr, d.Consultations, d.Doctors, d.Config)
			ChatRoutes(gr, d.Chats, d.Gateway, d.Config)
		})
	})

	if d.SocketIO != nil {
		r.Handle("/socket.io/*", d.SocketIO)
	}
	return r
}
