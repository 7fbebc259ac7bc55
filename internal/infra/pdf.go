package infra

// pdf.go — receipt and report generation using go-pdf/fpdf.
// Receipts are A5 landscape, one per settled payment, written to
// storagePath/recibo_{id}.pdf. Reports are A4 portrait tables streamed to an
// io.Writer so the handler can send them without touching disk.

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"parcelas/internal/format"
	"parcelas/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateReciboPDF renders a payment receipt and saves it under storagePath.
// Returns the absolute path to the generated file.
func GenerateReciboPDF(recibo *model.Recibo, nomeEmpresa, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("recibo_%s.pdf", recibo.ID)
	filePath := filepath.Join(storagePath, fileName)

	// A5 landscape: 210mm × 148mm
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "L",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 148, Ht: 210},
	})
	pdf.SetMargins(12, 12, 12)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 24

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(contentW, 9, nomeEmpresa, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, "Recibo de Pagamento", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(5)

	// ── Body ─────────────────────────────────────────────────────────────────
	labelW := contentW * 0.35
	valueW := contentW * 0.65

	row := func(label, value string) {
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(labelW, 7, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(valueW, 7, value, "", 1, "L", false, 0, "")
	}

	row("Recibo:", recibo.ID.String())
	row("Cliente:", recibo.ClienteNome)
	row("Documento:", recibo.Documento)
	row("Data do pagamento:", format.FormatarData(recibo.DataPagamento))
	if recibo.Desconto > 0 {
		row("Desconto concedido:", format.FormatarValor(recibo.Desconto))
	}

	pdf.Ln(3)
	pdf.SetFont("Helvetica", "B", 13)
	pdf.CellFormat(labelW, 9, "Valor pago:", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueW, 9, format.FormatarValor(recibo.ValorPago), "", 1, "L", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(8)
	pdf.Line(12, pdf.GetY(), pageW-12, pdf.GetY())
	pdf.Ln(2)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.CellFormat(contentW, 5, "Documento gerado eletronicamente, dispensa assinatura.", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}

// WriteRelatorioPDF renders a report of installments for a period and streams
// it to w. titulo already carries the report type and date range.
func WriteRelatorioPDF(w io.Writer, titulo, nomeEmpresa string, parcelas []model.Parcela) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 12, 10)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, nomeEmpresa, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 6, titulo, "", 1, "C", false, 0, "")
	pdf.Ln(4)

	colCliente := contentW * 0.26
	colDoc := contentW * 0.20
	colNum := contentW * 0.10
	colVenc := contentW * 0.14
	colValor := contentW * 0.16
	colStatus := contentW * 0.14

	header := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.CellFormat(colCliente, 6, "Cliente", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colDoc, 6, "Documento", "B", 0, "L", false, 0, "")
		pdf.CellFormat(colNum, 6, "Parcela", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colVenc, 6, "Vencimento", "B", 0, "C", false, 0, "")
		pdf.CellFormat(colValor, 6, "Valor", "B", 0, "R", false, 0, "")
		pdf.CellFormat(colStatus, 6, "Status", "B", 1, "C", false, 0, "")
	}
	header()

	var totalValor, totalPago int64
	pdf.SetFont("Helvetica", "", 8)
	for _, p := range parcelas {
		if pdf.GetY() > 270 {
			pdf.AddPage()
			header()
			pdf.SetFont("Helvetica", "", 8)
		}

		nome := ""
		if p.Cliente != nil {
			nome = p.Cliente.Nome
		}
		if len(nome) > 30 {
			nome = nome[:29] + "…"
		}

		status := "Pendente"
		if p.Paga {
			status = "Paga"
		}

		pdf.CellFormat(colCliente, 5, nome, "", 0, "L", false, 0, "")
		pdf.CellFormat(colDoc, 5, p.Documento, "", 0, "L", false, 0, "")
		pdf.CellFormat(colNum, 5, fmt.Sprintf("%d/%d", p.NumeroParcela, p.NumeroParcelas), "", 0, "C", false, 0, "")
		pdf.CellFormat(colVenc, 5, format.FormatarData(p.DataVencimento), "", 0, "C", false, 0, "")
		pdf.CellFormat(colValor, 5, format.FormatarValor(p.ValorParcela), "", 0, "R", false, 0, "")
		pdf.CellFormat(colStatus, 5, status, "", 1, "C", false, 0, "")

		totalValor += p.ValorParcela
		totalPago += p.ValorPago
	}

	pdf.Ln(2)
	pdf.Line(10, pdf.GetY(), pageW-10, pdf.GetY())
	pdf.Ln(2)

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentW*0.70, 6, fmt.Sprintf("Total de parcelas: %d", len(parcelas)), "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.30, 6, "Valor total: "+format.FormatarValor(totalValor), "", 1, "R", false, 0, "")
	pdf.CellFormat(contentW*0.70, 6, "", "", 0, "L", false, 0, "")
	pdf.CellFormat(contentW*0.30, 6, "Total recebido: "+format.FormatarValor(totalPago), "", 1, "R", false, 0, "")

	return pdf.Output(w)
}
