package app

import (
	"net/http"

	"github.com/lucidbank/lcbridge/internal/handler"
	"github.com/lucidbank/lcbridge/internal/middleware"
)

func (app *Application) routes() http.Handler {
	mux := http.NewServeMux()

	middlewareRepo := middleware.New(app.ErrorHandler, app.Logger, app.DB.Officer(), &app.Config)

	routeHandler := handler.NewRouteHandler(&handler.RouteHandler{
		DB:           app.DB,
		ErrHandler:   app.ErrorHandler,
		Helper:       app.Helper,
		Mailer:       app.Mailer,
		Kafka:        app.Kafka,
		Cache:        app.Cache,
		FileUploader: app.FileUploader,
		Config:       &app.Config,
	})

	mux.HandleFunc("GET /status", routeHandler.HandleHealthCheck)

	mux.HandleFunc("POST /auth/register", routeHandler.HandleAuthRegister)
	mux.HandleFunc("POST /auth/login", routeHandler.HandleAuthLogin)

	protected := http.NewServeMux()
	protected.HandleFunc("POST /applications", routeHandler.HandleApplicationCreate)
	protected.HandleFunc("GET /applications", routeHandler.HandleApplicationList)
	protected.HandleFunc("GET /applications/{reference}", routeHandler.HandleApplicationGet)
	protected.HandleFunc("GET /applications/{reference}/validate", routeHandler.HandleApplicationValidate)
	protected.HandleFunc("POST /applications/{reference}/screen", routeHandler.HandleApplicationScreen)
	protected.HandleFunc("POST /applications/{reference}/decision", routeHandler.HandleApplicationDecision)
	protected.HandleFunc("POST /applications/{reference}/draft", routeHandler.HandleDraftGenerate)
	protected.HandleFunc("GET /applications/{reference}/draft/pdf", routeHandler.HandleDraftPDF)
	protected.HandleFunc("POST /applications/{reference}/presentations", routeHandler.HandlePresentationCreate)
	protected.HandleFunc("GET /applications/{reference}/presentations", routeHandler.HandlePresentationList)
	protected.HandleFunc("POST /applications/{reference}/presentations/{id}/examine", routeHandler.HandlePresentationExamine)
	protected.HandleFunc("POST /applications/{reference}/amendments", routeHandler.HandleAmendmentCreate)
	protected.HandleFunc("GET /applications/{reference}/amendments", routeHandler.HandleAmendmentList)
	protected.HandleFunc("POST /applications/{reference}/amendments/{sequence}/approve", routeHandler.HandleAmendmentApprove)

	mux.Handle("/", middlewareRepo.RequireAuthenticatedOfficer(protected))

	return middlewareRepo.LogAccess(middlewareRepo.RecoverPanic(middlewareRepo.Authenticate(mux)))
}
