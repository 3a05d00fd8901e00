package entity

// Customer representa un cliente del maestro de clientes (customer_master.csv).
// Es inmutable dentro del núcleo de cobranza; solo se refresca con una recarga completa.
type Customer struct {
	ID    string
	Name  string
	Email string
	Extra map[string]string // columnas adicionales del CSV, sin interpretar
}
