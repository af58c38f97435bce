package api

// Error is the body every non-2xx response carries.
type Error struct {
	Detail string `json:"detail"`
}

// Token is the response of POST /auth/token.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// User is the response of GET /auth/me.
type User struct {
	Username string `json:"username"`
	FullName string `json:"full_name,omitempty"`
	Disabled bool   `json:"disabled,omitempty"`
}

// UploadResult is the response of POST /api/upload/.
type UploadResult struct {
	OK       bool         `json:"ok"`
	Path     string       `json:"path"`
	Filename string       `json:"filename"`
	Tipo     DocumentKind `json:"tipo"`
	Usuario  string       `json:"usuario"`
	Record   UploadItem   `json:"record"`
}

// RetryRequest is the body of POST /api/upload/{id}/retry.
type RetryRequest struct {
	Tipo DocumentKind `json:"tipo"`
}

// RetryResult is the response of a retry call. ProcessorStatus carries the
// HTTP status the downstream processor answered with, 599 standing in for
// a network-level failure reaching it.
type RetryResult struct {
	OK              bool         `json:"ok"`
	UploadID        string       `json:"upload_id"`
	Tipo            DocumentKind `json:"tipo"`
	ProcessorStatus int          `json:"processor_status"`
	ProcessorDetail string       `json:"processor_detail,omitempty"`
}

// UploadItem is one row of the upload history. Fecha is pre-formatted by
// the server in its display time zone.
type UploadItem struct {
	ID               string       `json:"id"`
	Fecha            string       `json:"fecha"`
	Tipo             DocumentKind `json:"tipo"`
	Descripcion      string       `json:"descripcion"`
	TamBytes         int64        `json:"tam_bytes"`
	StoragePath      string       `json:"storage_path,omitempty"`
	Status           UploadStatus `json:"status"`
	OriginalFilename string       `json:"original_filename"`
}

// History is the response of GET /api/uploads/historico.
type History struct {
	Items []UploadItem `json:"items"`
}

// Factura is one invoice row as stored by the accounting backend, returned
// by GET /api/facturas and created by the processor callback or manual entry.
type Factura struct {
	ID                 string   `json:"id"`
	IDExt              string   `json:"id_ext,omitempty"`
	Fecha              string   `json:"fecha"`
	FechaDt            string   `json:"fecha_dt,omitempty"`
	Proveedor          string   `json:"proveedor"`
	SupplierVATNumber  string   `json:"supplier_vat_number,omitempty"`
	Categoria          string   `json:"categoria,omitempty"`
	Descripcion        string   `json:"descripcion,omitempty"`
	Moneda             string   `json:"moneda,omitempty"`
	TarifaCambio       *float64 `json:"tarifa_cambio,omitempty"`
	PaisOrigen         string   `json:"pais_origen,omitempty"`
	Notas              string   `json:"notas,omitempty"`
	UbicacionFactura   string   `json:"ubicacion_factura,omitempty"`
	IvaLocal           float64  `json:"iva_local"`
	ImporteSinIvaLocal float64  `json:"importe_sin_iva_local"`
	ImporteSinIvaEuro  *float64 `json:"importe_sin_iva_euro,omitempty"`
	ImporteTotalEuro   *float64 `json:"importe_total_euro,omitempty"`
	TotalMonedaLocal   *float64 `json:"total_moneda_local,omitempty"`
}

// Facturas is the response of GET /api/facturas.
type Facturas struct {
	Items []Factura `json:"items"`
}

// ManualFacturaResult is the response of POST /api/facturas/manual.
type ManualFacturaResult struct {
	OK        bool    `json:"ok"`
	FacturaID string  `json:"factura_id"`
	UploadID  string  `json:"upload_id,omitempty"`
	Factura   Factura `json:"factura"`
}

// CallbackResult is the response of the processor callback endpoint.
type CallbackResult struct {
	OK         bool   `json:"ok"`
	Duplicated bool   `json:"duplicated,omitempty"`
	Tipo       string `json:"tipo"`
	IDExt      string `json:"id_ext"`
	FacturaID  string `json:"factura_id,omitempty"`
}
