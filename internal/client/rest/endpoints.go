package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"gestoria/internal/api"
)

// Login exchanges operator credentials for a bearer token and stores it on
// the Client. A 401 here simply means wrong credentials; the session-expiry
// hook no-ops because no credential was stored yet.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/token", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decodeError(resp)
	}

	var tok api.Token
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return err
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("login response carried no access token")
	}

	c.SetAccessToken(tok.AccessToken)
	return nil
}

// Me probes session validity. It returns ErrUnauthorized (after the expiry
// hook has run) when the credential is missing, invalid or expired.
func (c *Client) Me(ctx context.Context) (*api.User, error) {
	var u api.User
	if err := c.get(ctx, "/auth/me", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Upload submits one file to the intake endpoint as a multipart form with
// the document kind tag.
func (c *Client) Upload(ctx context.Context, filename string, content []byte, kind api.DocumentKind) (*api.UploadResult, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	if err := w.WriteField("tipo", string(kind)); err != nil {
		return nil, err
	}
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		return nil, err
	}
	if _, err := part.Write(content); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload/", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var res api.UploadResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Retry asks the backend to rerun the processing trigger for one stored
// upload. The record's status is owned by the backend; callers refresh the
// history afterwards to observe the result.
func (c *Client) Retry(ctx context.Context, id string, kind api.DocumentKind) (*api.RetryResult, error) {
	payload, err := json.Marshal(api.RetryRequest{Tipo: kind})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload/"+url.PathEscape(id)+"/retry", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		return nil, decodeError(resp)
	}

	var res api.RetryResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Historico fetches the most recent upload records, newest first, capped
// at limit.
func (c *Client) Historico(ctx context.Context, limit int) ([]api.UploadItem, error) {
	var h api.History
	if err := c.get(ctx, "/api/uploads/historico?limit="+strconv.Itoa(limit), &h); err != nil {
		return nil, err
	}
	return h.Items, nil
}

// Facturas lists stored invoices, optionally bounded by ISO dates.
func (c *Client) Facturas(ctx context.Context, desde, hasta string) ([]api.Factura, error) {
	q := url.Values{}
	if desde != "" {
		q.Set("desde", desde)
	}
	if hasta != "" {
		q.Set("hasta", hasta)
	}
	path := "/api/facturas"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var f api.Facturas
	if err := c.get(ctx, path, &f); err != nil {
		return nil, err
	}
	return f.Items, nil
}

// ManualFacturaForm carries the manual invoice entry form. Amount fields
// stay strings on the wire: the backend parses Spanish decimal notation
// ("1.234,56") itself.
type ManualFacturaForm struct {
	Fecha              string // DD/MM/YYYY, required
	FechaDt            string // YYYY-MM-DD, required
	Proveedor          string // required
	ImporteSinIvaLocal string // required
	IvaLocal           string // required

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
	FileContent []byte
}

// ManualFactura registers an invoice typed in by the operator, with an
// optional supporting document attached.
func (c *Client) ManualFactura(ctx context.Context, f ManualFacturaForm) (*api.ManualFacturaResult, error) {
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)

	fields := []struct{ name, value string }{
		{"fecha", f.Fecha},
		{"fecha_dt", f.FechaDt},
		{"proveedor", f.Proveedor},
		{"importe_sin_iva_local", f.ImporteSinIvaLocal},
		{"iva_local", f.IvaLocal},
		{"supplier_vat_number", f.SupplierVATNumber},
		{"total_moneda_local", f.TotalMonedaLocal},
		{"moneda", f.Moneda},
		{"tarifa_cambio", f.TarifaCambio},
		{"importe_sin_iva_euro", f.ImporteSinIvaEuro},
		{"importe_total_euro", f.ImporteTotalEuro},
		{"pais_origen", f.PaisOrigen},
		{"id_ext", f.IDExt},
		{"notas", f.Notas},
		{"descripcion", f.Descripcion},
		{"categoria", f.Categoria},
	}
	for _, fld := range fields {
		if fld.value == "" {
			continue
		}
		if err := w.WriteField(fld.name, fld.value); err != nil {
			return nil, err
		}
	}

	if f.Filename != "" {
		part, err := w.CreateFormFile("file", f.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := part.Write(f.FileContent); err != nil {
			return nil, err
		}
	}
	if err := w.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/facturas/manual", body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, decodeError(resp)
	}

	var res api.ManualFacturaResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return nil, err
	}
	return &res, nil
}
