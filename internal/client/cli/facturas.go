package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"gestoria/internal/api"
	"gestoria/internal/client/rest"
)

// Facturas lists stored invoices, optionally bounded by ISO dates
// (facturas 2025-01-01 2025-01-31).
func (a *App) Facturas(ctx context.Context, desde, hasta string) error {
	if !a.enterView(ctx, ViewFacturas) {
		return nil
	}

	items, err := a.gateway.Facturas(ctx, desde, hasta)
	if err != nil {
		a.notifier.Notify(fmt.Sprintf("No se pudieron cargar las facturas: %v", err))
		return err
	}
	a.printFacturas(items)
	return nil
}

func (a *App) printFacturas(items []api.Factura) {
	if len(items) == 0 {
		fmt.Fprintln(a.out, "Sin facturas en el periodo.")
		return
	}
	fmt.Fprintf(a.out, "%-12s %-24s %12s %8s %12s  %s\n", "FECHA", "PROVEEDOR", "BASE", "IVA", "TOTAL €", "CATEGORIA")
	for _, f := range items {
		total := "-"
		if f.ImporteTotalEuro != nil {
			total = fmt.Sprintf("%.2f", *f.ImporteTotalEuro)
		}
		fmt.Fprintf(a.out, "%-12s %-24s %12.2f %8.2f %12s  %s\n",
			f.Fecha, f.Proveedor, f.ImporteSinIvaLocal, f.IvaLocal, total, f.Categoria)
	}
}

// manualSetters maps "campo=valor" names onto the optional fields of the
// manual entry form. Field names follow the wire contract.
var manualSetters = map[string]func(*rest.ManualFacturaForm, string){
	"supplier_vat_number":  func(f *rest.ManualFacturaForm, v string) { f.SupplierVATNumber = v },
	"total_moneda_local":   func(f *rest.ManualFacturaForm, v string) { f.TotalMonedaLocal = v },
	"moneda":               func(f *rest.ManualFacturaForm, v string) { f.Moneda = v },
	"tarifa_cambio":        func(f *rest.ManualFacturaForm, v string) { f.TarifaCambio = v },
	"importe_sin_iva_euro": func(f *rest.ManualFacturaForm, v string) { f.ImporteSinIvaEuro = v },
	"importe_total_euro":   func(f *rest.ManualFacturaForm, v string) { f.ImporteTotalEuro = v },
	"pais_origen":          func(f *rest.ManualFacturaForm, v string) { f.PaisOrigen = v },
	"id_ext":               func(f *rest.ManualFacturaForm, v string) { f.IDExt = v },
	"descripcion":          func(f *rest.ManualFacturaForm, v string) { f.Descripcion = v },
	"categoria":            func(f *rest.ManualFacturaForm, v string) { f.Categoria = v },
}

// ManualFactura walks the operator through registering an invoice by hand:
// the five required fields, optional fields as campo=valor lines, free-form
// notes, and an optional supporting document.
func (a *App) ManualFactura(ctx context.Context) error {
	if !a.enterView(ctx, ViewManual) {
		return nil
	}

	var f rest.ManualFacturaForm
	required := []struct {
		label string
		dst   *string
	}{
		{"Fecha (DD/MM/YYYY)", &f.Fecha},
		{"Fecha ISO (YYYY-MM-DD)", &f.FechaDt},
		{"Proveedor", &f.Proveedor},
		{"Importe sin IVA", &f.ImporteSinIvaLocal},
		{"IVA", &f.IvaLocal},
	}
	for _, field := range required {
		v, err := getSimpleText(a.reader, field.label, a.out)
		if err != nil {
			return err
		}
		if v == "" {
			a.notifier.Notify("Campo obligatorio: " + field.label)
			return nil
		}
		*field.dst = v
	}

	extras, err := GetFormFields(a.reader, a.out)
	if err != nil {
		return err
	}
	for _, line := range extras {
		name, value, found := strings.Cut(line, "=")
		set, known := manualSetters[strings.TrimSpace(name)]
		if !found || !known {
			a.notifier.Notify("Campo desconocido: " + line)
			continue
		}
		set(&f, strings.TrimSpace(value))
	}

	notas, err := GetMultiline(a.reader, "Notas", a.out)
	if err != nil {
		return err
	}
	f.Notas = notas

	path, err := getSimpleText(a.reader, "Ruta del justificante (opcional)", a.out)
	if err != nil {
		return err
	}
	if path != "" {
		data, err := readFile(path)
		if err != nil {
			a.notifier.Notify(fmt.Sprintf("No se pudo leer %s: %v", path, err))
			return err
		}
		f.Filename = filepath.Base(path)
		f.FileContent = data
	}

	res, err := a.gateway.ManualFactura(ctx, f)
	if err != nil {
		a.notifier.Notify(fmt.Sprintf("No se pudo registrar la factura: %v", err))
		return err
	}
	a.notifier.Notify(fmt.Sprintf("Factura %s registrada.", res.FacturaID))
	return nil
}
