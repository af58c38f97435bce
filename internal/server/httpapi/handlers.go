package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"gestoria/internal/api"
	"gestoria/internal/server/repositories/uploads"
	"gestoria/internal/server/services"
)

// writeServiceError maps service sentinels onto HTTP statuses. Anything not
// recognized is an internal error; its text still goes out as the detail,
// the way the original backend reported storage failures.
func (s *HTTPServer) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, api.ErrUnknownKind),
		errors.Is(err, services.ErrUnsupportedFile),
		errors.Is(err, services.ErrNoFilename),
		errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrBadDate),
		errors.Is(err, services.ErrCallbackJSON),
		errors.Is(err, services.ErrCallbackFormat),
		errors.Is(err, services.ErrCallbackNoID):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, uploads.ErrNotFound):
		writeError(w, http.StatusNotFound, "upload no encontrado")
	case errors.Is(err, services.ErrDuplicateFactura):
		writeError(w, http.StatusConflict, err.Error())
	default:
		s.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {

	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "formulario inválido")
		return
	}

	token, err := s.auth.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Incorrect username or password")
			return
		}
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, api.Token{AccessToken: token, TokenType: "bearer"})
}

func (s *HTTPServer) handleMe(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	writeJSON(w, http.StatusOK, api.User{
		Username: user.Username,
		FullName: user.FullName,
		Disabled: user.Disabled,
	})
}

// parseMultipart caps the body at the configured size before reading the
// form, so oversized uploads fail with 413 instead of filling memory.
func (s *HTTPServer) parseMultipart(w http.ResponseWriter, r *http.Request) bool {
	if r.ContentLength > s.maxUploadBytes {
		writeError(w, http.StatusRequestEntityTooLarge, "El archivo supera el tamaño máximo permitido")
		return false
	}
	// chunked bodies declare no length; the reader enforces the same cap
	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)

	if err := r.ParseMultipartForm(s.maxUploadBytes); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "El archivo supera el tamaño máximo permitido")
			return false
		}
		writeError(w, http.StatusBadRequest, "cuerpo multipart inválido")
		return false
	}
	return true
}

func (s *HTTPServer) handleUpload(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	if !s.parseMultipart(w, r) {
		return
	}

	kind, err := api.ParseDocumentKind(r.FormValue("tipo"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Falta el archivo")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error leyendo archivo")
		return
	}

	upload, err := s.uploads.Store(r.Context(), user, kind, header.Filename, header.Header.Get("Content-Type"), data)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.UploadResult{
		OK:       true,
		Path:     upload.StoragePath,
		Filename: upload.OriginalFilename,
		Tipo:     upload.Tipo,
		Usuario:  user.Username,
		Record:   s.uploadItem(*upload),
	})
}

func (s *HTTPServer) handleRetry(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())
	id := mux.Vars(r)["id"]

	// the body is optional; an absent tipo retries as factura
	var req api.RetryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "JSON inválido")
		return
	}

	kind := api.KindFactura
	if req.Tipo != "" {
		var err error
		if kind, err = api.ParseDocumentKind(string(req.Tipo)); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	out, err := s.uploads.Retry(r.Context(), user, id, kind)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusAccepted, api.RetryResult{
		OK:              out.ProcessorStatus < 300,
		UploadID:        out.Upload.ID,
		Tipo:            kind,
		ProcessorStatus: out.ProcessorStatus,
		ProcessorDetail: out.ProcessorDetail,
	})
}

func (s *HTTPServer) handleHistorico(w http.ResponseWriter, r *http.Request) {

	limit := 0
	if q := r.URL.Query().Get("limit"); q != "" {
		n, err := strconv.Atoi(q)
		if err != nil {
			writeError(w, http.StatusBadRequest, "limit inválido")
			return
		}
		limit = n
	}

	records, err := s.uploads.ListRecent(r.Context(), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	items := make([]api.UploadItem, 0, len(records))
	for _, u := range records {
		items = append(items, s.uploadItem(u))
	}

	writeJSON(w, http.StatusOK, api.History{Items: items})
}

func (s *HTTPServer) handleFacturas(w http.ResponseWriter, r *http.Request) {

	desde := r.URL.Query().Get("desde")
	hasta := r.URL.Query().Get("hasta")
	for _, bound := range []struct{ name, value string }{{"desde", desde}, {"hasta", hasta}} {
		if bound.value == "" {
			continue
		}
		if _, err := time.Parse("2006-01-02", bound.value); err != nil {
			writeError(w, http.StatusBadRequest, bound.name+" debe ser YYYY-MM-DD")
			return
		}
	}

	facturas, err := s.facturas.List(r.Context(), desde, hasta)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	items := make([]api.Factura, 0, len(facturas))
	for _, f := range facturas {
		items = append(items, facturaDTO(f))
	}

	writeJSON(w, http.StatusOK, api.Facturas{Items: items})
}

func (s *HTTPServer) handleManualFactura(w http.ResponseWriter, r *http.Request) {
	user := userFrom(r.Context())

	if !s.parseMultipart(w, r) {
		return
	}

	in := &services.ManualFacturaInput{
		Fecha:              r.FormValue("fecha"),
		FechaDt:            r.FormValue("fecha_dt"),
		Proveedor:          r.FormValue("proveedor"),
		ImporteSinIvaLocal: r.FormValue("importe_sin_iva_local"),
		IvaLocal:           r.FormValue("iva_local"),
		SupplierVATNumber:  r.FormValue("supplier_vat_number"),
		TotalMonedaLocal:   r.FormValue("total_moneda_local"),
		Moneda:             r.FormValue("moneda"),
		TarifaCambio:       r.FormValue("tarifa_cambio"),
		ImporteSinIvaEuro:  r.FormValue("importe_sin_iva_euro"),
		ImporteTotalEuro:   r.FormValue("importe_total_euro"),
		PaisOrigen:         r.FormValue("pais_origen"),
		IDExt:              r.FormValue("id_ext"),
		Notas:              r.FormValue("notas"),
		Descripcion:        r.FormValue("descripcion"),
		Categoria:          r.FormValue("categoria"),
	}

	if file, header, err := r.FormFile("file"); err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "error leyendo archivo")
			return
		}
		in.Filename = header.Filename
		in.ContentType = header.Header.Get("Content-Type")
		in.FileContent = data
	} else if !errors.Is(err, http.ErrMissingFile) {
		writeError(w, http.StatusBadRequest, "archivo adjunto inválido")
		return
	}

	factura, uploadID, err := s.facturas.ManualEntry(r.Context(), user, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, api.ManualFacturaResult{
		OK:        true,
		FacturaID: factura.ID,
		UploadID:  uploadID,
		Factura:   facturaDTO(*factura),
	})
}

func (s *HTTPServer) handleCallback(w http.ResponseWriter, r *http.Request) {

	if s.webhookSecret != "" && r.Header.Get("X-Webhook-Secret") != s.webhookSecret {
		writeError(w, http.StatusUnauthorized, "Secreto de webhook inválido")
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "error leyendo callback")
		return
	}

	payload, err := services.DecodeCallback(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	out, err := s.facturas.ProcessCallback(r.Context(), payload)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}

	result := api.CallbackResult{
		OK:         true,
		Duplicated: out.Duplicated,
		Tipo:       string(api.KindFactura),
		IDExt:      out.IDExt,
	}
	if out.Factura != nil {
		result.FacturaID = out.Factura.ID
	}

	writeJSON(w, http.StatusCreated, result)
}
