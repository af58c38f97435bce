package services

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"gestoria/internal/api"
	"gestoria/internal/dbx"
	"gestoria/internal/filex"
	"gestoria/internal/logging"
	"gestoria/internal/server/filestore"
	"gestoria/internal/server/models"
	"gestoria/internal/server/repositories/repomanager"
)

var (
	// ErrMissingField flags a manual entry missing one of its required
	// fields; the field name is appended to the error text.
	ErrMissingField = errors.New("campo obligatorio")

	// ErrBadDate flags an unparseable fecha_dt on a manual entry.
	ErrBadDate = errors.New("fecha_dt debe ser YYYY-MM-DD")

	// ErrDuplicateFactura flags a manual entry whose external id is
	// already stored.
	ErrDuplicateFactura = errors.New("factura ya registrada")

	// Callback decoding errors; texts are the Spanish details the
	// processor integration expects.
	ErrCallbackJSON   = errors.New("JSON inválido en callback")
	ErrCallbackFormat = errors.New("Formato de callback no reconocido")
	ErrCallbackNoID   = errors.New("Falta 'ID Factura' en callback")
)

// FacturaService persists invoices: date-bounded listing, manual operator
// entry, and the extraction results posted back by the processor.
type FacturaService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	store       filestore.Store
	log         logging.Logger
}

func NewFacturaService(db *sql.DB, m repomanager.RepositoryManager, store filestore.Store, log logging.Logger) *FacturaService {
	return &FacturaService{
		db:          db,
		repomanager: m,
		store:       store,
		log:         log.With("module", "facturas"),
	}
}

// List returns invoices newest first, optionally bounded by inclusive ISO
// dates on fecha_dt.
func (s *FacturaService) List(ctx context.Context, desde, hasta string) ([]models.Factura, error) {
	facturas, err := s.repomanager.Facturas(s.db).List(ctx, desde, hasta)
	if err != nil {
		return nil, fmt.Errorf("error listing facturas: %v", err)
	}
	return facturas, nil
}

// ManualFacturaInput carries one manually entered invoice. Amount fields
// stay strings: operators type Spanish decimal notation and the same
// parsers used for processor callbacks apply.
type ManualFacturaInput struct {
	Fecha              string
	FechaDt            string
	Proveedor          string
	ImporteSinIvaLocal string
	IvaLocal           string

	SupplierVATNumber string
	TotalMonedaLocal  string
	Moneda            string
	TarifaCambio      string
	ImporteSinIvaEuro string
	ImporteTotalEuro  string
	PaisOrigen        string
	IDExt             string
	Notas             string
	Descripcion       string
	Categoria         string

	Filename    string
	ContentType string
	FileContent []byte
}

func optDecimalES(s string) *float64 {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	v := ParseDecimalES(s)
	return &v
}

// ManualEntry records an invoice typed in by the operator. An attached
// supporting document is stored first and linked through ubicacion_factura
// plus an upload row created alongside the invoice; the two inserts share a
// transaction. Returns the stored invoice and the attachment's upload id,
// "" when no file was attached.
func (s *FacturaService) ManualEntry(ctx context.Context, user *models.User, in *ManualFacturaInput) (*models.Factura, string, error) {
	required := []struct{ name, value string }{
		{"fecha", in.Fecha},
		{"fecha_dt", in.FechaDt},
		{"proveedor", in.Proveedor},
		{"importe_sin_iva_local", in.ImporteSinIvaLocal},
		{"iva_local", in.IvaLocal},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return nil, "", fmt.Errorf("%w: %s", ErrMissingField, f.name)
		}
	}

	fechaDt, err := time.Parse("2006-01-02", strings.TrimSpace(in.FechaDt))
	if err != nil {
		return nil, "", ErrBadDate
	}

	factura := &models.Factura{
		IDExt:              strings.TrimSpace(in.IDExt),
		Fecha:              strings.TrimSpace(in.Fecha),
		FechaDt:            &fechaDt,
		Proveedor:          strings.TrimSpace(in.Proveedor),
		SupplierVATNumber:  strings.TrimSpace(in.SupplierVATNumber),
		Categoria:          strings.TrimSpace(in.Categoria),
		Descripcion:        strings.TrimSpace(in.Descripcion),
		Moneda:             strings.TrimSpace(in.Moneda),
		PaisOrigen:         strings.TrimSpace(in.PaisOrigen),
		Notas:              strings.TrimSpace(in.Notas),
		IvaLocal:           ParseDecimalES(in.IvaLocal),
		ImporteSinIvaLocal: ParseDecimalES(in.ImporteSinIvaLocal),
		TotalMonedaLocal:   optDecimalES(in.TotalMonedaLocal),
	}
	if tc := strings.TrimSpace(in.TarifaCambio); tc != "" {
		factura.TarifaCambio = ParseTipoCambio(tc)
	}

	// euro amounts: taken as typed, otherwise derived from the rate
	factura.ImporteSinIvaEuro = optDecimalES(in.ImporteSinIvaEuro)
	if factura.ImporteSinIvaEuro == nil {
		factura.ImporteSinIvaEuro = ImporteToEUR(factura.ImporteSinIvaLocal, in.TarifaCambio)
	}
	factura.ImporteTotalEuro = optDecimalES(in.ImporteTotalEuro)
	if factura.ImporteTotalEuro == nil && factura.TotalMonedaLocal != nil {
		factura.ImporteTotalEuro = ImporteToEUR(*factura.TotalMonedaLocal, in.TarifaCambio)
	}

	var attachment *models.Upload
	if in.Filename != "" {
		if !allowedUpload(in.Filename) {
			return nil, "", ErrUnsupportedFile
		}
		safeName := filex.SanitizeFilename(in.Filename)

		path, err := s.store.Save(ctx, user.Username, api.KindFactura, safeName, in.FileContent)
		if err != nil {
			return nil, "", fmt.Errorf("error guardando archivo: %v", err)
		}
		factura.UbicacionFactura = path

		sum := sha256.Sum256(in.FileContent)
		attachment = &models.Upload{
			UserID:           user.ID,
			Tipo:             api.KindFactura,
			OriginalFilename: safeName,
			StoragePath:      path,
			MimeType:         guessMime(safeName, in.ContentType),
			SizeBytes:        int64(len(in.FileContent)),
			SHA256:           hex.EncodeToString(sum[:]),
			Status:           api.StatusProcessed,
			Detail:           "entrada manual",
		}
	}

	var uploadID string
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		frepo := s.repomanager.Facturas(tx)

		if factura.IDExt != "" {
			f, inserted, err := frepo.InsertIgnoreDuplicate(ctx, factura)
			if err != nil {
				return fmt.Errorf("error insertando factura: %v", err)
			}
			if !inserted {
				return ErrDuplicateFactura
			}
			factura = f
		} else {
			f, err := frepo.Insert(ctx, factura)
			if err != nil {
				return fmt.Errorf("error insertando factura: %v", err)
			}
			factura = f
		}

		if attachment != nil {
			attachment.FacturaID = &factura.ID
			created, err := s.repomanager.Uploads(tx).Create(ctx, attachment)
			if err != nil {
				return fmt.Errorf("error insertando metadatos: %v", err)
			}
			uploadID = created.ID
		}
		return nil
	})
	if err != nil {
		return nil, "", err
	}

	s.log.Info(ctx, "manual factura stored", "factura_id", factura.ID, "proveedor", factura.Proveedor, "attachment", uploadID != "")

	return factura, uploadID, nil
}

// CallbackPayload is the extraction result the processor posts back. Keys
// are the Spanish column headers of the extraction workflow; the *Alt
// fields take the unaccented spellings some workflow versions send.
type CallbackPayload struct {
	IDFactura      string `json:"ID Factura"`
	FechaFactura   string `json:"Fecha de la Factura"`
	Categoria      string `json:"Categoría"`
	CategoriaAlt   string `json:"Categoria"`
	Emisor         string `json:"Emisor"`
	Proveedor      string `json:"Proveedor"`
	Descripcion    string `json:"Descripción"`
	DescripcionAlt string `json:"Descripcion"`
	ImporteSinIVA  string `json:"Importe (sin IVA)"`
	IVAPct         string `json:"IVA %"`
	Total          string `json:"Total"`
	Moneda         string `json:"Moneda"`
	TipoCambio     string `json:"Tipo Cambio"`
	PaisOrigen     string `json:"País origen"`
	PaisOrigenAlt  string `json:"Pais origen"`
	Notas          string `json:"Notas"`
	ProviderVAT    string `json:"provider_VAT"`
	Ubicacion      string `json:"ubicacion_factura"`
}

// DecodeCallback normalizes the two body shapes the processor sends: a
// plain JSON object, or a one-element list wrapping {"JsonString": [obj]}.
func DecodeCallback(body []byte) (*CallbackPayload, error) {
	if !json.Valid(body) {
		return nil, ErrCallbackJSON
	}

	var direct CallbackPayload
	if err := json.Unmarshal(body, &direct); err == nil {
		return &direct, nil
	}

	var wrapped []struct {
		JsonString []CallbackPayload `json:"JsonString"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil && len(wrapped) > 0 && len(wrapped[0].JsonString) > 0 {
		return &wrapped[0].JsonString[0], nil
	}

	return nil, ErrCallbackFormat
}

func first(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// CallbackOutcome reports what one processor callback did.
type CallbackOutcome struct {
	Duplicated bool
	IDExt      string
	Factura    *models.Factura // nil when the invoice was already stored
}

// ProcessCallback records one extraction result. The invoice is inserted
// unless its external id is already stored; the matching upload rows are
// then flipped to PROCESSED (linked to the new invoice) or DUPLICATED.
// Uploads are located by the processor's filename convention
// "<id_ext>.pdf", and that update is best effort: a callback for a
// document this instance never stored still records the invoice.
func (s *FacturaService) ProcessCallback(ctx context.Context, p *CallbackPayload) (*CallbackOutcome, error) {
	idExt := strings.TrimSpace(p.IDFactura)
	if idExt == "" {
		return nil, ErrCallbackNoID
	}

	fecha := strings.TrimSpace(p.FechaFactura)
	importeSinIVA := ParseDecimalES(p.ImporteSinIVA)
	importeTotal := ParseDecimalES(p.Total)
	tipoCambio := strings.TrimSpace(p.TipoCambio)

	descripcion := first(p.Descripcion, p.DescripcionAlt)
	if descripcion == "" {
		descripcion = "Pending Process"
	}

	factura := &models.Factura{
		IDExt:              idExt,
		Fecha:              fecha,
		FechaDt:            ParseDateDDMMYYYY(fecha),
		Proveedor:          first(p.Emisor, p.Proveedor),
		SupplierVATNumber:  strings.TrimSpace(p.ProviderVAT),
		Categoria:          first(p.Categoria, p.CategoriaAlt),
		Descripcion:        descripcion,
		Moneda:             strings.TrimSpace(p.Moneda),
		TarifaCambio:       ParseTipoCambio(tipoCambio),
		PaisOrigen:         first(p.PaisOrigen, p.PaisOrigenAlt),
		Notas:              strings.TrimSpace(p.Notas),
		UbicacionFactura:   strings.TrimSpace(p.Ubicacion),
		IvaLocal:           ParseDecimalES(p.IVAPct),
		ImporteSinIvaLocal: importeSinIVA,
		ImporteSinIvaEuro:  ImporteToEUR(importeSinIVA, tipoCambio),
		ImporteTotalEuro:   ImporteToEUR(importeTotal, tipoCambio),
	}
	if importeTotal != 0 {
		factura.TotalMonedaLocal = &importeTotal
	}

	frepo := s.repomanager.Facturas(s.db)
	urepo := s.repomanager.Uploads(s.db)

	inserted, ok, err := frepo.InsertIgnoreDuplicate(ctx, factura)
	if err != nil {
		return nil, fmt.Errorf("error insertando factura: %v", err)
	}

	guessFilename := idExt + ".pdf"

	if !ok {
		touched, err := urepo.LinkByFilename(ctx, guessFilename, api.StatusDuplicated, nil)
		if err != nil {
			s.log.Warn(ctx, "could not mark uploads duplicated", "filename", guessFilename, "error", err)
		} else {
			s.log.Info(ctx, "duplicate callback", "id_ext", idExt, "uploads_touched", touched)
		}
		return &CallbackOutcome{Duplicated: true, IDExt: idExt}, nil
	}

	touched, err := urepo.LinkByFilename(ctx, guessFilename, api.StatusProcessed, &inserted.ID)
	if err != nil {
		s.log.Warn(ctx, "could not mark uploads processed", "filename", guessFilename, "error", err)
	} else {
		s.log.Info(ctx, "callback stored", "id_ext", idExt, "factura_id", inserted.ID, "uploads_touched", touched)
	}

	return &CallbackOutcome{IDExt: idExt, Factura: inserted}, nil
}
