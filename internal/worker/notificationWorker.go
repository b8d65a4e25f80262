package worker

import (
	"encoding/json"
	"log"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/lucidbank/lcbridge/internal/stream"
)

// DraftReadyWorker tells the desk an auto-approved credit has its draft
// and MT700 ready for release.
func (wk *Worker) DraftReadyWorker() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: draftReadyGroupID,
		Topic:   LCDraftReadyTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	for {
		event := consumer.Poll(100) // Poll every 100ms
		switch e := event.(type) {
		case *kafka.Message:
			log.Printf("Draft ready message received on %s: %s\n", e.TopicPartition, string(e.Value))

			var ready ApprovedApplicationEvent
			json.Unmarshal(e.Value, &ready)

			wk.notifyDecision(&ready)
		case kafka.Error:
			log.Printf("Error: %v\n", e)
		default:
			// Handle other events if needed
		}
	}
}

func (wk *Worker) notifyDecision(ready *ApprovedApplicationEvent) {
	if wk.Config.Notifications.Email == "" {
		return
	}

	app, found, err := wk.DB.Application().GetOne(ready.ApplicationID)
	if err != nil || !found {
		log.Printf("Error loading application %s: %v", ready.ApplicationID, err)
		return
	}

	data := wk.Helper.NewEmailData()
	data["Reference"] = app.Reference
	data["ApplicantName"] = app.ApplicantName
	data["Currency"] = app.Currency
	data["Amount"] = app.Amount
	data["Decision"] = app.STPDecision
	data["Reason"] = app.STPReason.String

	err = wk.Mailer.Send(wk.Config.Notifications.Email, data, "decision-notification.tmpl")
	if err != nil {
		log.Printf("Error sending decision notification for %s: %v", app.Reference, err)
	}
}

// DiscrepancyWorker alerts the desk whenever an examination comes back
// DISCREPANT so the refusal advice can be reviewed and released in time.
func (wk *Worker) DiscrepancyWorker() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: docsDiscrepantGroupID,
		Topic:   LCDocsDiscrepantTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	for {
		event := consumer.Poll(100) // Poll every 100ms
		switch e := event.(type) {
		case *kafka.Message:
			log.Printf("Discrepant examination received on %s: %s\n", e.TopicPartition, string(e.Value))

			var examined ExaminedPresentationEvent
			json.Unmarshal(e.Value, &examined)

			wk.notifyDiscrepancies(&examined)
		case kafka.Error:
			log.Printf("Error: %v\n", e)
		default:
			// Handle other events if needed
		}
	}
}

func (wk *Worker) notifyDiscrepancies(examined *ExaminedPresentationEvent) {
	if wk.Config.Notifications.Email == "" {
		return
	}

	discrepancies, err := wk.DB.Discrepancy().GetAllByPresentation(examined.PresentationID)
	if err != nil {
		log.Printf("Error loading discrepancies for %s: %v", examined.PresentationID, err)
		return
	}

	findings := make([]map[string]string, 0, len(discrepancies))
	for _, d := range discrepancies {
		findings = append(findings, map[string]string{
			"Severity":    d.Severity,
			"Description": d.Description,
		})
	}

	data := wk.Helper.NewEmailData()
	data["Reference"] = examined.Reference
	data["Verdict"] = examined.Verdict
	data["Fatal"] = examined.Fatal
	data["Major"] = examined.Major
	data["Minor"] = examined.Minor
	data["Findings"] = findings
	data["RefusalDrafted"] = examined.Fatal > 0

	err = wk.Mailer.Send(wk.Config.Notifications.Email, data, "discrepancy-notification.tmpl")
	if err != nil {
		log.Printf("Error sending discrepancy notification for %s: %v", examined.Reference, err)
	}
}
