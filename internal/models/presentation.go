package models

import (
	"database/sql"
	"time"
)

// Presentation is one snapshot of shipping documents submitted under an LC.
// The per-document columns hold whatever the presenting bank wrote on the
// covering schedule; "", "No" or "0" all count as not presented.
type Presentation struct {
	ID            string `db:"id" json:"id"`
	ApplicationID string `db:"application_id" json:"application_id"`

	InvoiceAmount   float64 `db:"invoice_amount" json:"invoice_amount"`
	InvoiceCurrency string  `db:"invoice_currency" json:"invoice_currency"`
	InvoiceDate     string  `db:"invoice_date" json:"invoice_date"`

	BLNumber string `db:"bl_number" json:"bl_number"`
	BLDate   string `db:"bl_date" json:"bl_date"`
	Vessel   string `db:"vessel" json:"vessel"`

	ShipmentDate    string `db:"shipment_date" json:"shipment_date"`
	PortOfLoading   string `db:"port_of_loading" json:"port_of_loading"`
	PortOfDischarge string `db:"port_of_discharge" json:"port_of_discharge"`

	CommercialInvoice     string `db:"commercial_invoice" json:"commercial_invoice"`
	BillOfLading          string `db:"bill_of_lading" json:"bill_of_lading"`
	PackingList           string `db:"packing_list" json:"packing_list"`
	CertificateOfOrigin   string `db:"certificate_of_origin" json:"certificate_of_origin"`
	InsuranceCertificate  string `db:"insurance_certificate" json:"insurance_certificate"`
	InspectionCertificate string `db:"inspection_certificate" json:"inspection_certificate"`
	WeightCertificate     string `db:"weight_certificate" json:"weight_certificate"`

	AdditionalDocuments string `db:"additional_documents" json:"additional_documents"`

	Status      string       `db:"status" json:"status"`
	SubmittedAt time.Time    `db:"submitted_at" json:"submitted_at"`
	ExaminedAt  sql.NullTime `db:"examined_at" json:"examined_at"`
}

const (
	PresentationStatusSubmitted  = "Submitted"
	PresentationStatusCompliant  = "Compliant"
	PresentationStatusDiscrepant = "Discrepant"
)

// Discrepancy rows are produced only by the examiner and replaced in full
// on every run.
type Discrepancy struct {
	ID             string    `db:"id" json:"id"`
	ApplicationID  string    `db:"application_id" json:"application_id"`
	PresentationID string    `db:"presentation_id" json:"presentation_id"`
	Field          string    `db:"field" json:"field"`
	LCValue        string    `db:"lc_value" json:"lc_value"`
	DocValue       string    `db:"doc_value" json:"doc_value"`
	Severity       string    `db:"severity" json:"severity"`
	Rule           string    `db:"rule" json:"rule"`
	Description    string    `db:"description" json:"description"`
	Resolution     string    `db:"resolution" json:"resolution"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
}

const (
	DiscrepancyOpen     = "Open"
	DiscrepancyResolved = "Resolved"
)
