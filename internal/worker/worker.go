package worker

import (
	"context"

	"github.com/lucidbank/lcbridge/internal/config"
	"github.com/lucidbank/lcbridge/internal/helper"
	"github.com/lucidbank/lcbridge/internal/repository"
	"github.com/lucidbank/lcbridge/internal/smtp"
	"github.com/lucidbank/lcbridge/internal/stream"
)

type Worker struct {
	KafkaStream *stream.KafkaStream
	DB          repository.Database
	Ctx         context.Context
	Helper      *helper.HelperRepository
	Mailer      *smtp.Mailer
	Config      *config.Config
}

const (
	// stpApprovedGroupID is used by workers reacting to applications the decision engine auto-approved
	stpApprovedGroupID = "lc-stp-approved-group"

	// draftReadyGroupID is used by workers reacting to a finished draft and MT700
	draftReadyGroupID = "lc-draft-ready-group"

	// docsDiscrepantGroupID is used by workers reacting to a discrepant examination
	docsDiscrepantGroupID = "lc-docs-discrepant-group"

	// Topics
	// LCApprovedTopic carries applications the decision engine approved straight through.
	// The draft worker picks these up and renders the pre-draft and MT700 asynchronously.
	LCApprovedTopic = "lc.stp.approved"

	// LCDraftReadyTopic is produced once the draft artifacts are stored, so
	// downstream notifiers can tell the desk the credit is ready for release.
	LCDraftReadyTopic = "lc.draft.ready"

	// LCDocsDiscrepantTopic is produced when an examination ends DISCREPANT
	// and a refusal advice may need to go out.
	LCDocsDiscrepantTopic = "lc.docs.discrepant"
)

// ApprovedApplicationEvent is the payload on LCApprovedTopic and LCDraftReadyTopic.
type ApprovedApplicationEvent struct {
	ApplicationID string `json:"application_id"`
	Reference     string `json:"reference"`
	Decision      string `json:"decision"`
	Reason        string `json:"reason"`
}

// ExaminedPresentationEvent is the payload on LCDocsDiscrepantTopic.
type ExaminedPresentationEvent struct {
	ApplicationID  string `json:"application_id"`
	PresentationID string `json:"presentation_id"`
	Reference      string `json:"reference"`
	Verdict        string `json:"verdict"`
	Fatal          int    `json:"fatal"`
	Major          int    `json:"major"`
	Minor          int    `json:"minor"`
}

// Our workers typically need access to the database and the kafka event
// stream; worker-specific dependencies are carried on the struct.
func New(wk *Worker) *Worker {
	return &Worker{
		KafkaStream: wk.KafkaStream,
		DB:          wk.DB,
		Ctx:         wk.Ctx,
		Helper:      wk.Helper,
		Mailer:      wk.Mailer,
		Config:      wk.Config,
	}
}
