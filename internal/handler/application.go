package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/lucidbank/lcbridge/internal/compliance"
	"github.com/lucidbank/lcbridge/internal/context"
	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/request"
	"github.com/lucidbank/lcbridge/internal/response"
	"github.com/lucidbank/lcbridge/internal/validator"
)

// HandleApplicationCreate receives a new LC application. Intake is
// deliberately permissive: only the reference and the parties needed to
// store the record are enforced here. The full mandatory-field rule runs
// at validation/draft time so officers can save partial applications.
func (h *RouteHandler) HandleApplicationCreate(w http.ResponseWriter, r *http.Request) {
	var input struct {
		models.LCApplication
		Validator validator.Validator `json:"-"`
	}

	err := request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Reference), "Reference is required")
	input.Validator.Check(validator.NotBlank(input.ApplicantName), "Applicant name is required")
	input.Validator.Check(validator.NotBlank(input.BeneficiaryName), "Beneficiary name is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	_, found, err := h.DB.Application().GetByReference(input.Reference)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if found {
		h.ErrHandler.Conflict(w, r, "An application with this reference already exists")
		return
	}

	app := &input.LCApplication

	// normalize the credit type at the boundary; unknown spellings fall
	// back to the generic form rather than being rejected
	app.LCType = engine.ParseLCType(app.LCType).String()

	if strings.TrimSpace(app.IssuingBank) == "" {
		app.IssuingBank = h.Config.Bank.Name
	}
	if strings.TrimSpace(app.IssuingBankBIC) == "" {
		app.IssuingBankBIC = h.Config.Bank.BIC
	}

	app.KYCStatus = models.ComplianceStatusPending
	app.SanctionsApplicant = models.ComplianceStatusPending
	app.SanctionsBeneficiary = models.ComplianceStatusPending
	app.CountryRiskStatus = models.ComplianceStatusPending
	app.AMLStatus = models.ComplianceStatusPending
	app.STPDecision = engine.DecisionPending
	app.Status = models.ApplicationStatusPendingReview

	appID, err := h.DB.Application().Insert(app)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	officer := context.ContextGetAuthenticatedOfficer(r)

	h.Helper.BackgroundTask(func() error {
		officerID := ""
		if officer != nil {
			officerID = officer.ID
		}

		_, err := h.DB.Activity().Insert(&repository.ActivityLog{
			OfficerID:   officerID,
			Entity:      repository.ActivityLogApplicationEntity,
			EntityId:    appID,
			Description: ActivityLogApplicationCreated,
		}, nil)

		if err != nil {
			log.Printf("Error logging application creation: %v", err)
			return err
		}

		return nil
	})

	data := map[string]any{
		"Id":        appID,
		"Reference": app.Reference,
		"Status":    app.Status,
	}

	err = response.JSONCreatedResponse(w, data, "Application received")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleApplicationGet(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")

	app, found, err := h.DB.Application().GetByReference(reference)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	err = response.JSONOkResponse(w, app, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleApplicationList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	apps, err := h.DB.Application().List(status)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, apps, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleApplicationValidate runs the mandatory-field and warning checks
// without changing any state. Officers use it to see what still blocks a
// draft.
func (h *RouteHandler) HandleApplicationValidate(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")

	app, found, err := h.DB.Application().GetByReference(reference)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	result := engine.Validate(app)

	err = response.JSONOkResponse(w, result, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleApplicationScreen runs the compliance stand-in checks and stores
// the resulting flags on the application.
func (h *RouteHandler) HandleApplicationScreen(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")

	app, found, err := h.DB.Application().GetByReference(reference)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	result := compliance.Screen(app)
	compliance.Apply(app, result)

	err = h.DB.Application().UpdateCompliance(app)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	officer := context.ContextGetAuthenticatedOfficer(r)

	h.Helper.BackgroundTask(func() error {
		officerID := ""
		if officer != nil {
			officerID = officer.ID
		}

		_, err := h.DB.Activity().Insert(&repository.ActivityLog{
			OfficerID:   officerID,
			Entity:      repository.ActivityLogApplicationEntity,
			EntityId:    app.ID,
			Description: ActivityLogApplicationScreened,
		}, nil)

		if err != nil {
			log.Printf("Error logging compliance screening: %v", err)
			return err
		}

		return nil
	})

	err = response.JSONOkResponse(w, result, "Screening complete", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
