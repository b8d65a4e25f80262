package handler

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/lucidbank/lcbridge/internal/context"
	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/request"
	"github.com/lucidbank/lcbridge/internal/response"
	"github.com/lucidbank/lcbridge/internal/swift"
	"github.com/lucidbank/lcbridge/internal/validator"
	"github.com/lucidbank/lcbridge/internal/worker"
)

// HandlePresentationCreate records a set of shipping documents presented
// under an LC. Examination is a separate, explicit step.
func (h *RouteHandler) HandlePresentationCreate(w http.ResponseWriter, r *http.Request) {
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

	var input struct {
		models.Presentation
		Validator validator.Validator `json:"-"`
	}

	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(input.InvoiceAmount > 0, "Invoice amount must be greater than zero")
	input.Validator.Check(validator.NotBlank(input.InvoiceCurrency), "Invoice currency is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	p := &input.Presentation
	p.ApplicationID = app.ID
	p.Status = models.PresentationStatusSubmitted

	presentationID, err := h.DB.Presentation().Insert(p)
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
			Entity:      repository.ActivityLogPresentationEntity,
			EntityId:    presentationID,
			Description: ActivityLogPresentationReceived,
		}, nil)

		if err != nil {
			log.Printf("Error logging presentation: %v", err)
			return err
		}

		return nil
	})

	data := map[string]any{
		"Id":        presentationID,
		"Reference": app.Reference,
		"Status":    p.Status,
	}

	err = response.JSONCreatedResponse(w, data, "Presentation received")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandlePresentationList(w http.ResponseWriter, r *http.Request) {
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

	presentations, err := h.DB.Presentation().GetAllByApplication(app.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, presentations, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandlePresentationExamine runs the examiner over a stored presentation.
// The verdict and the replaced discrepancy rows commit in one transaction,
// so a rerun can never leave stale findings behind. A FATAL finding also
// drafts the MT734 advice of refusal.
func (h *RouteHandler) HandlePresentationExamine(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")
	presentationID := r.PathValue("id")

	app, found, err := h.DB.Application().GetByReference(reference)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	p, found, err := h.DB.Presentation().GetOne(presentationID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found || p.ApplicationID != app.ID {
		h.ErrHandler.NotFound(w, r)
		return
	}

	// same per-reference serialization as the decision run: a rerun must
	// never interleave with another examiner replacing the same findings
	lockKey := "lc:examine:" + reference
	locked, err := h.Cache.AcquireLock(lockKey, decisionLockTTL)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !locked {
		h.ErrHandler.Conflict(w, r, "An examination is already in progress for this application")
		return
	}
	defer func() {
		if err := h.Cache.ReleaseLock(lockKey); err != nil {
			log.Printf("Error releasing examination lock for %s: %v", reference, err)
		}
	}()

	exam := engine.Examine(app, p)
	now := time.Now().UTC()

	status := models.PresentationStatusCompliant
	if exam.Summary.Overall != engine.VerdictCompliant {
		status = models.PresentationStatusDiscrepant
	}

	discrepancies := make([]models.Discrepancy, 0, len(exam.Findings))
	for _, finding := range exam.Findings {
		discrepancies = append(discrepancies, models.Discrepancy{
			ApplicationID:  app.ID,
			PresentationID: p.ID,
			Field:          finding.Field,
			LCValue:        finding.LCValue,
			DocValue:       finding.DocValue,
			Severity:       finding.Severity,
			Rule:           finding.Rule,
			Description:    finding.Description,
			Resolution:     models.DiscrepancyOpen,
		})
	}

	officer := context.ContextGetAuthenticatedOfficer(r)
	officerID := ""
	if officer != nil {
		officerID = officer.ID
	}

	tx, err := h.DB.BeginTx(r.Context(), nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	err = h.DB.Presentation().UpdateExamination(p.ID, status, now, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = h.DB.Discrepancy().ReplaceForPresentation(p.ID, discrepancies, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	_, err = h.DB.Activity().Insert(&repository.ActivityLog{
		OfficerID:   officerID,
		Entity:      repository.ActivityLogPresentationEntity,
		EntityId:    p.ID,
		Description: ActivityLogPresentationExamined + ": " + exam.Summary.Overall,
	}, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if err = tx.Commit(); err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	var mt734 string
	if exam.Summary.Fatal > 0 {
		mt734 = swift.GenerateMT734(app, p, exam.Findings, now)
	}

	if exam.Summary.Overall == engine.VerdictDiscrepant {
		event := worker.ExaminedPresentationEvent{
			ApplicationID:  app.ID,
			PresentationID: p.ID,
			Reference:      app.Reference,
			Verdict:        exam.Summary.Overall,
			Fatal:          exam.Summary.Fatal,
			Major:          exam.Summary.Major,
			Minor:          exam.Summary.Minor,
		}

		h.Helper.BackgroundTask(func() error {
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}

			err = h.Kafka.ProduceMessage(worker.LCDocsDiscrepantTopic, string(payload))
			if err != nil {
				log.Printf("Error producing discrepant-examination event for %s: %v", app.Reference, err)
				return err
			}

			return nil
		})
	}

	data := map[string]any{
		"Examination": exam,
		"Status":      status,
		"Mt734Draft":  mt734,
	}

	err = response.JSONOkResponse(w, data, "Examination complete", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
