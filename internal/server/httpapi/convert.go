package httpapi

import (
	"gestoria/internal/api"
	"gestoria/internal/server/models"
)

// fechaLayout is how history timestamps are rendered for operators, in the
// configured display time zone.
const fechaLayout = "02/01/2006 15:04"

// pendingDescripcion fills the history description while the processor has
// not reported anything for a record yet.
const pendingDescripcion = "Pending Processing"

func (s *HTTPServer) uploadItem(u models.Upload) api.UploadItem {
	descripcion := u.Detail
	if descripcion == "" {
		descripcion = pendingDescripcion
	}

	return api.UploadItem{
		ID:               u.ID,
		Fecha:            u.CreatedAt.In(s.loc).Format(fechaLayout),
		Tipo:             u.Tipo,
		Descripcion:      descripcion,
		TamBytes:         u.SizeBytes,
		StoragePath:      u.StoragePath,
		Status:           u.Status,
		OriginalFilename: u.OriginalFilename,
	}
}

func facturaDTO(f models.Factura) api.Factura {
	out := api.Factura{
		ID:                 f.ID,
		IDExt:              f.IDExt,
		Fecha:              f.Fecha,
		Proveedor:          f.Proveedor,
		SupplierVATNumber:  f.SupplierVATNumber,
		Categoria:          f.Categoria,
		Descripcion:        f.Descripcion,
		Moneda:             f.Moneda,
		TarifaCambio:       f.TarifaCambio,
		PaisOrigen:         f.PaisOrigen,
		Notas:              f.Notas,
		UbicacionFactura:   f.UbicacionFactura,
		IvaLocal:           f.IvaLocal,
		ImporteSinIvaLocal: f.ImporteSinIvaLocal,
		ImporteSinIvaEuro:  f.ImporteSinIvaEuro,
		ImporteTotalEuro:   f.ImporteTotalEuro,
		TotalMonedaLocal:   f.TotalMonedaLocal,
	}
	if f.FechaDt != nil {
		out.FechaDt = f.FechaDt.Format("2006-01-02")
	}
	return out
}
