package handler

import (
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/lucidbank/lcbridge/internal/context"
	"github.com/lucidbank/lcbridge/internal/draft"
	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/response"
	"github.com/lucidbank/lcbridge/internal/swift"
)

const draftCacheTTL = time.Hour

// HandleDraftGenerate produces the pre-draft and MT700 for an application
// and stores both. The rendered text is cached in Redis so repeated reads
// don't re-render, and the PDF is uploaded off the request path.
func (h *RouteHandler) HandleDraftGenerate(w http.ResponseWriter, r *http.Request) {
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

	now := time.Now().UTC()

	result := draft.Generate(app, engine.DefaultFeeConfig(), now)
	if result.Status != draft.StatusSuccess {
		h.ErrHandler.FailedValidation(w, r, result)
		return
	}

	err = h.DB.Application().UpdateDraft(app.ID, result.LCNumber, result.Text, now)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	mt700 := swift.GenerateMT700(app, now)
	err = h.DB.Application().UpdateMT700(app.ID, mt700, now)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
		return
	}

	if err := h.Cache.Set("lc:draft:"+reference, result.Text, draftCacheTTL); err != nil {
		log.Printf("Error caching draft for %s: %v", reference, err)
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
			Description: ActivityLogDraftGenerated + ": " + result.LCNumber,
		}, nil)

		if err != nil {
			log.Printf("Error logging draft generation: %v", err)
			return err
		}

		return nil
	})

	h.Helper.BackgroundTask(func() error {
		return h.uploadDraftPDF(app.ID, result)
	})

	err = response.JSONOkResponse(w, result, "Draft generated", nil)
	if err != nil {
		h.ErrHandler.ServerError(w, r, err)
	}
}

// uploadDraftPDF renders the PDF, stages it on disk and pushes it to the
// document store, recording the returned URL on the application.
func (h *RouteHandler) uploadDraftPDF(applicationID string, result draft.Result) error {
	pdfBytes, err := draft.RenderPDF(result)
	if err != nil {
		return err
	}

	fileName := filepath.Join(os.TempDir(), draft.PDFFileName(result.LCNumber, result.IssueDate))
	if err := os.WriteFile(fileName, pdfBytes, 0o600); err != nil {
		return err
	}
	defer os.Remove(fileName)

	url, err := h.FileUploader.UploadFile(fileName)
	if err != nil {
		log.Printf("Error uploading draft PDF for %s: %v", result.LCNumber, err)
		return err
	}

	return h.DB.Application().UpdateDraftPDFPath(applicationID, url)
}

// HandleDraftPDF streams the pre-draft as a PDF document.
func (h *RouteHandler) HandleDraftPDF(w http.ResponseWriter, r *http.Request) {
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

	result := draft.Generate(app, engine.DefaultFeeConfig(), time.Now().UTC())

	pdfBytes, err := draft.RenderPDF(result)
	if err != nil {
		h.ErrHandler.FailedValidation(w, r, result)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+draft.PDFFileName(result.LCNumber, result.IssueDate)+`"`)
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(pdfBytes); err != nil {
		log.Printf("Error streaming draft PDF for %s: %v", reference, err)
	}
}
