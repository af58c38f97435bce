package models

import "time"

// Factura is one invoice row. Text fields mirror what the processor
// extracts; numeric euro columns stay nullable because conversions are
// undefined for unknown exchange rates.
type Factura struct {
	ID                string
	IDExt             string
	Fecha             string
	FechaDt           *time.Time
	Proveedor         string
	SupplierVATNumber string
	Categoria         string
	Descripcion       string
	Moneda            string
	TarifaCambio      *float64
	PaisOrigen        string
	Notas             string
	UbicacionFactura  string

	IvaLocal           float64
	ImporteSinIvaLocal float64
	ImporteSinIvaEuro  *float64
	ImporteTotalEuro   *float64
	TotalMonedaLocal   *float64

	CreatedAt time.Time
}
