package handler

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/lucidbank/lcbridge/internal/context"
	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/models"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/request"
	"github.com/lucidbank/lcbridge/internal/response"
	"github.com/lucidbank/lcbridge/internal/swift"
	"github.com/lucidbank/lcbridge/internal/validator"
)

// currentFieldValue reads the present value of an amendable column off the
// aggregate, so the amendment records what it replaced.
func currentFieldValue(app *models.LCApplication, column string) string {
	switch column {
	case "amount":
		return strconv.FormatFloat(app.Amount, 'f', 2, 64)
	case "tolerance_pct":
		return strconv.FormatFloat(app.TolerancePct, 'f', 2, 64)
	case "expiry_date":
		return app.ExpiryDate
	case "latest_shipment_date":
		return app.LatestShipmentDate
	case "port_of_loading":
		return app.PortOfLoading
	case "port_of_discharge":
		return app.PortOfDischarge
	case "goods_description":
		return app.GoodsDescription
	case "quantity":
		return app.Quantity
	case "unit_price":
		return app.UnitPrice
	case "partial_shipment":
		return strconv.FormatBool(app.PartialShipment)
	case "transshipment":
		return strconv.FormatBool(app.Transshipment)
	case "additional_documents":
		return app.AdditionalDocuments
	case "special_instructions":
		return app.SpecialInstructions
	default:
		return ""
	}
}

// HandleAmendmentCreate registers a requested change to one field of an
// issued credit. Amendments are numbered per application and stay Pending
// until approved.
func (h *RouteHandler) HandleAmendmentCreate(w http.ResponseWriter, r *http.Request) {
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
		Field     string              `json:"field"`
		NewValue  string              `json:"new_value"`
		Reason    string              `json:"reason"`
		Validator validator.Validator `json:"-"`
	}

	err = request.DecodeJSON(w, r, &input)
	if err != nil {
		h.ErrHandler.BadRequest(w, r, err)
		return
	}

	input.Validator.Check(validator.NotBlank(input.Field), "Field is required")
	input.Validator.Check(validator.NotBlank(input.NewValue), "New value is required")

	if input.Validator.HasErrors() {
		h.ErrHandler.FailedValidation(w, r, input.Validator.Errors)
		return
	}

	sequence, err := h.DB.Amendment().NextSequence(app.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	amendment := &models.Amendment{
		ApplicationID: app.ID,
		Sequence:      sequence,
		Field:         input.Field,
		OldValue:      currentFieldValue(app, input.Field),
		NewValue:      input.NewValue,
		Reason:        input.Reason,
		Fee:           engine.DefaultFeeConfig().AmendmentFee,
		Status:        models.AmendmentStatusPending,
	}

	amendmentID, err := h.DB.Amendment().Insert(amendment)
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
			Entity:      repository.ActivityLogAmendmentEntity,
			EntityId:    amendmentID,
			Description: fmt.Sprintf("%s: no. %d on %s", ActivityLogAmendmentRequested, sequence, app.Reference),
		}, nil)

		if err != nil {
			log.Printf("Error logging amendment request: %v", err)
			return err
		}

		return nil
	})

	data := map[string]any{
		"Id":       amendmentID,
		"Sequence": sequence,
		"Fee":      amendment.Fee,
		"Status":   amendment.Status,
	}

	err = response.JSONCreatedResponse(w, data, "Amendment registered")
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

func (h *RouteHandler) HandleAmendmentList(w http.ResponseWriter, r *http.Request) {
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

	amendments, err := h.DB.Amendment().GetAllByApplication(app.ID)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = response.JSONOkResponse(w, amendments, "", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// HandleAmendmentApprove applies a pending amendment: the underlying
// application column is rewritten and the MT707 advice rendered, both in
// one transaction.
func (h *RouteHandler) HandleAmendmentApprove(w http.ResponseWriter, r *http.Request) {
	reference := r.PathValue("reference")

	sequence, err := strconv.Atoi(r.PathValue("sequence"))
	if err != nil {
		h.ErrHandler.BadRequest(w, r, errors.New("amendment number must be an integer"))
		return
	}

	app, found, err := h.DB.Application().GetByReference(reference)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	amendment, found, err := h.DB.Amendment().GetOne(app.ID, sequence)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}
	if !found {
		h.ErrHandler.NotFound(w, r)
		return
	}

	if amendment.Status != models.AmendmentStatusPending {
		h.ErrHandler.Conflict(w, r, "Amendment has already been processed")
		return
	}

	now := time.Now().UTC()
	mt707 := swift.GenerateMT707(app, amendment, now)

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

	err = h.DB.Application().AmendColumn(app.ID, amendment.Field, amendment.NewValue, tx)
	if err != nil {
		if errors.Is(err, repository.ErrColumnNotAmendable) {
			h.ErrHandler.BadRequest(w, r, err)
			return
		}
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	err = h.DB.Amendment().Approve(amendment.ID, mt707, now, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	_, err = h.DB.Activity().Insert(&repository.ActivityLog{
		OfficerID:   officerID,
		Entity:      repository.ActivityLogAmendmentEntity,
		EntityId:    amendment.ID,
		Description: fmt.Sprintf("%s: no. %d on %s", ActivityLogAmendmentApproved, sequence, app.Reference),
	}, tx)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if err = tx.Commit(); err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	data := map[string]any{
		"Sequence":   sequence,
		"Field":      amendment.Field,
		"NewValue":   amendment.NewValue,
		"Mt707Draft": mt707,
		"Status":     models.AmendmentStatusApproved,
	}

	err = response.JSONOkResponse(w, data, "Amendment approved", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}
