package infra

// pdf.go — "comprobante de cierre": an A5 summary sheet of a closed cierre
// (counts, deposit, carry forward, verification lines) generated on demand
// with go-pdf/fpdf. The output file is saved to storagePath/cierre_{id}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mherrera31/app-cierres-caja-sub000/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateCierrePDF renders the closing summary for a cierre.
// storagePath is the directory where the PDF is written (created if needed).
// Returns the absolute path to the generated file.
func GenerateCierrePDF(cierre *model.Cierre, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	filePath := filepath.Join(storagePath, fmt.Sprintf("cierre_%s.pdf", cierre.ID))

	pdf := fpdf.New("P", "mm", "A5", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, "Comprobante de Cierre de Caja", "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha operativa: "+cierre.Fecha, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, "Cierre "+cierre.ID.String(), "", 1, "C", false, 0, "")
	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	col1 := contentW * 0.55
	col2 := contentW * 0.15
	col3 := contentW * 0.30

	conteo := func(titulo string, c *model.Conteo) {
		if c == nil {
			return
		}
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, titulo, "", 1, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 8)
		for _, linea := range c.Detalle {
			pdf.CellFormat(col1, 5, linea.Denominacion, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", linea.Cantidad), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 5, "$"+linea.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
		}
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(col1+col2, 5, "Total:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 5, "$"+c.Total.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.Ln(2)
	}

	conteo("Conteo inicial", &cierre.ConteoInicial)
	conteo("Conteo final", cierre.ConteoFinal)
	conteo("Saldo para el día siguiente", cierre.SaldoSiguiente)

	if cierre.MontoADepositar != nil {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(col1+col2, 6, "A DEPOSITAR:", "", 0, "L", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+cierre.MontoADepositar.StringFixed(2), "", 1, "R", false, 0, "")
		pdf.Ln(2)
	}

	// ── Verification ─────────────────────────────────────────────────────────
	if v := cierre.Verificacion; v != nil {
		pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(contentW, 6, "Verificación de vouchers", "", 1, "L", false, 0, "")

		pdf.SetFont("Helvetica", "", 8)
		estado := func(ok bool) string {
			if ok {
				return "OK"
			}
			return "DESCUADRE"
		}
		pdf.CellFormat(contentW, 5, fmt.Sprintf("Efectivo: teórico $%s / contado $%s — %s",
			v.SaldoTeorico.StringFixed(2), v.TotalContado.StringFixed(2), estado(v.EfectivoOK)),
			"", 1, "L", false, 0, "")

		for _, linea := range v.Lineas {
			pdf.CellFormat(col1, 5, linea.Metodo, "", 0, "L", false, 0, "")
			pdf.CellFormat(col2, 5, estado(linea.Coincide), "", 0, "C", false, 0, "")
			pdf.CellFormat(col3, 5,
				fmt.Sprintf("$%s / $%s", linea.TotalSistema.StringFixed(2), linea.TotalReportado.StringFixed(2)),
				"", 1, "R", false, 0, "")
		}
	}

	if cierre.DescuadreForzado {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(contentW, 5, "CERRADO CON DESCUADRE (autorizado por administrador)", "", 1, "C", false, 0, "")
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}
	return filePath, nil
}
