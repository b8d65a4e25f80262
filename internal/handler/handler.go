package handler

import (
	"github.com/lucidbank/lcbridge/internal/cache"
	"github.com/lucidbank/lcbridge/internal/config"
	"github.com/lucidbank/lcbridge/internal/errHandler"
	"github.com/lucidbank/lcbridge/internal/file"
	"github.com/lucidbank/lcbridge/internal/helper"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/smtp"
	"github.com/lucidbank/lcbridge/internal/stream"
)

type RouteHandler struct {
	DB           repository.Database
	ErrHandler   *errHandler.ErrorHandler
	Helper       *helper.HelperRepository
	Mailer       *smtp.Mailer
	Kafka        *stream.KafkaStream
	Cache        *cache.Cache
	FileUploader *file.FileUploader
	Config       *config.Config
}

func NewRouteHandler(handler *RouteHandler) *RouteHandler {
	return &RouteHandler{
		DB:           handler.DB,
		ErrHandler:   handler.ErrHandler,
		Helper:       handler.Helper,
		Mailer:       handler.Mailer,
		Kafka:        handler.Kafka,
		Cache:        handler.Cache,
		FileUploader: handler.FileUploader,
		Config:       handler.Config,
	}
}

// Activity log descriptions, kept as constants so the audit trail stays greppable.
const (
	ActivityLogRegistrationDescription   = "Officer account created"
	ActivityLogFailedLoginDescription    = "Failed login attempt"
	ActivityLogLockedAccountDescription  = "Account locked after repeated failed logins"
	ActivityLogApplicationCreated        = "Application received"
	ActivityLogApplicationScreened       = "Compliance screening recorded"
	ActivityLogDecisionRecorded          = "Collateral decision recorded"
	ActivityLogDraftGenerated            = "Pre-draft generated"
	ActivityLogPresentationReceived      = "Document presentation received"
	ActivityLogPresentationExamined      = "Document presentation examined"
	ActivityLogAmendmentRequested        = "Amendment requested"
	ActivityLogAmendmentApproved         = "Amendment approved"
)
