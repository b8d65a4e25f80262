package handler

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/lucidbank/lcbridge/internal/context"
	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/response"
	"github.com/lucidbank/lcbridge/internal/worker"
)

const decisionLockTTL = 30 * time.Second

// HandleApplicationDecision runs the collateral decision engine for one
// application. A Redis lock keyed on the reference keeps concurrent runs
// from interleaving; the decision and its audit trail commit in a single
// transaction; auto-approved applications are announced on Kafka for the
// draft worker.
func (h *RouteHandler) HandleApplicationDecision(w http.ResponseWriter, r *http.Request) {
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

	lockKey := "lc:decision:" + reference
	locked, err := h.Cache.AcquireLock(lockKey, decisionLockTTL)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !locked {
		h.ErrHandler.Conflict(w, r, "A decision run is already in progress for this application")
		return
	}
	defer func() {
		if err := h.Cache.ReleaseLock(lockKey); err != nil {
			log.Printf("Error releasing decision lock for %s: %v", reference, err)
		}
	}()

	if !app.AllCleared() {
		h.ErrHandler.FailedValidation(w, r, []string{"Compliance screening must be cleared before a decision can be recorded"})
		return
	}

	collateralValue := engine.CollateralValue(app)
	decision := engine.Decide(app.CollateralType, collateralValue, app.Amount, engine.DefaultHaircuts())

	officer := context.ContextGetAuthenticatedOfficer(r)
	officerID := ""
	if officer != nil {
		officerID = officer.ID
	}

	now := time.Now().UTC()

	app.STPDecision = decision.Outcome
	app.STPReason = sql.NullString{String: decision.Reason, Valid: true}
	app.EligibleValue = sql.NullFloat64{Float64: decision.EligibleValue, Valid: true}
	app.STPRunAt = sql.NullTime{Time: now, Valid: true}
	app.STPRunBy = sql.NullString{String: officerID, Valid: officerID != ""}

	if decision.HaircutPct != nil {
		app.HaircutPct = sql.NullFloat64{Float64: *decision.HaircutPct, Valid: true}
	} else {
		app.HaircutPct = sql.NullFloat64{}
	}

	switch decision.Outcome {
	case engine.DecisionYes:
		app.Status = models.ApplicationStatusApproved
	case engine.DecisionNo:
		app.Status = models.ApplicationStatusRejected
	default:
		app.Status = models.ApplicationStatusUnderReview
	}

	// the decision and its audit entry land together or not at all
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

	err = h.DB.Application().UpdateDecision(app, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	_, err = h.DB.Activity().Insert(&repository.ActivityLog{
		OfficerID:   officerID,
		Entity:      repository.ActivityLogApplicationEntity,
		EntityId:    app.ID,
		Description: ActivityLogDecisionRecorded + ": " + decision.Outcome,
	}, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if err = tx.Commit(); err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if decision.Outcome == engine.DecisionYes {
		event := worker.ApprovedApplicationEvent{
			ApplicationID: app.ID,
			Reference:     app.Reference,
			Decision:      decision.Outcome,
			Reason:        decision.Reason,
		}

		h.Helper.BackgroundTask(func() error {
			payload, err := json.Marshal(event)
			if err != nil {
				return err
			}

			err = h.Kafka.ProduceMessage(worker.LCApprovedTopic, string(payload))
			if err != nil {
				log.Printf("Error producing approved-application event for %s: %v", app.Reference, err)
				return err
			}

			return nil
		})
	}

	data := map[string]any{
		"Reference":     app.Reference,
		"Decision":      decision.Outcome,
		"HaircutPct":    decision.HaircutPct,
		"EligibleValue": decision.EligibleValue,
		"Reason":        decision.Reason,
		"Status":        app.Status,
	}

	err = response.JSONOkResponse(w, data, "Decision recorded", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
