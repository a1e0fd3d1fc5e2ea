package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	chatHandler "github.com/symptexlab/symptex-api/internal/handler/chat"
	evalHandler "github.com/symptexlab/symptex-api/internal/handler/eval"
	patientHandler "github.com/symptexlab/symptex-api/internal/handler/patient"
	wsHandler "github.com/symptexlab/symptex-api/internal/handler/ws"
	middlewarePkg "github.com/symptexlab/symptex-api/internal/middleware"
	patientModel "github.com/symptexlab/symptex-api/internal/model/patient"
	"github.com/symptexlab/symptex-api/internal/service/sim"
	"github.com/symptexlab/symptex-api/pkg/utils"
)

// NewRouter wires HTTP routes to the simulation core.
func NewRouter(patients patientModel.Store, simSvc *sim.Service, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		chatHandler.New(simSvc, log).RegisterRoutes(api)
		evalHandler.New(simSvc, log).RegisterRoutes(api)
		patientHandler.New(patients).RegisterRoutes(api)
		wsHandler.New(simSvc, log).RegisterRoutes(api)

		api.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})
	})

	return r
}
