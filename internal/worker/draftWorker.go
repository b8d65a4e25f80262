package worker

import (
	"encoding/json"
	"log"
	"time"

	"github.com/confluentinc/confluent-kafka-go/v2/kafka"
	"github.com/lucidbank/lcbridge/internal/draft"
	"github.com/lucidbank/lcbridge/internal/engine"
	"github.com/lucidbank/lcbridge/internal/stream"
	"github.com/lucidbank/lcbridge/internal/swift"
)

// DraftWorker renders the pre-draft and MT700 for every application the
// decision engine approves straight through, then announces the artifacts
// on LCDraftReadyTopic.
func (wk *Worker) DraftWorker() {
	consumer, err := wk.KafkaStream.CreateConsumer(&stream.StreamConsumer{
		GroupId: stpApprovedGroupID,
		Topic:   LCApprovedTopic,
	})

	if err != nil {
		log.Fatalf("Error creating consumer: %v", err)
	}
	for {
		event := consumer.Poll(100) // Poll every 100ms
		switch e := event.(type) {
		case *kafka.Message:
			log.Printf("Approved application received on %s: %s\n", e.TopicPartition, string(e.Value))

			var approved ApprovedApplicationEvent
			json.Unmarshal(e.Value, &approved)

			if wk.generateArtifacts(&approved) {
				payload, _ := json.Marshal(approved)
				wk.KafkaStream.ProduceMessage(LCDraftReadyTopic, string(payload))
			}
		case kafka.Error:
			log.Printf("Error: %v\n", e)
		default:
			// Handle other events if needed
		}
	}
}

func (wk *Worker) generateArtifacts(approved *ApprovedApplicationEvent) bool {
	app, found, err := wk.DB.Application().GetOne(approved.ApplicationID)
	if err != nil || !found {
		log.Printf("Error loading application %s: %v", approved.ApplicationID, err)
		return false
	}

	now := time.Now().UTC()

	result := draft.Generate(app, engine.DefaultFeeConfig(), now)
	if result.Status != draft.StatusSuccess {
		log.Printf("Draft generation blocked for %s, missing: %v", app.Reference, result.Missing)
		return false
	}

	err = wk.DB.Application().UpdateDraft(app.ID, result.LCNumber, result.Text, now)
	if err != nil {
		log.Printf("Error storing draft for %s: %v", app.Reference, err)
		return false
	}

	mt700 := swift.GenerateMT700(app, now)
	err = wk.DB.Application().UpdateMT700(app.ID, mt700, now)
	if err != nil {
		log.Printf("Error storing MT700 for %s: %v", app.Reference, err)
		return false
	}

	log.Printf("Draft artifacts ready for %s (%s)", app.Reference, swift.DraftFileName("MT700", app.Reference, now))
	return true
}
