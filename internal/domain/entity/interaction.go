package entity

import "time"

// Canales de interacción con el cliente.
const (
	ChannelManualCall     = "Manual Call"
	ChannelEmailReminder  = "Automated Email Reminder"
	ChannelEmail          = "Email"
	ChannelSMS            = "SMS"
	InteractionPurposeAR  = "AR/Collections Activity"
	InitiatedBySystem     = "System"
	InitiatedByAgent      = "Agent"
	ReminderEngineAgentID = "System - Reminder Engine"
	UnknownCustomerName   = "Unknown Customer"
)

// Estados de cumplimiento de la política de llamadas.
const (
	ComplianceNA        = "N/A"
	ComplianceCompliant = "Compliant"
	ComplianceBlocked   = "Blocked - Timing"
)

// Interaction registro del log de comunicaciones (customer_interactions.csv).
// Una vez creado nunca se modifica ni se borra.
type Interaction struct {
	ID             string
	CustomerID     string
	CustomerName   string     // copia desnormalizada resuelta al escribir
	Date           *time.Time // nil si el CSV trae una fecha ilegible
	Type           string     // canal
	Purpose        string
	Summary        string // primeros 100 caracteres de Notes
	InitiatedBy    string // System | Agent
	HandledBy      string // agente que actuó
	RepID          string
	RelatedInvoice string
	Outcome        string
	Notes          string
}

// InteractionColumns esquema fijo del CSV de interacciones (orden de columnas).
var InteractionColumns = []string{
	"interaction_id", "customer_id", "customer_name", "interaction_date",
	"interaction_type", "purpose", "summary", "initiated_by", "handled_by",
	"rep_id", "related_invoice", "outcome", "notes",
}
