// Package report renders XLSX exports of the data visible under the
// caller's company scope.
package report

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	billingdomain "backoffice-client/internal/domain/billing"
	creditdomain "backoffice-client/internal/domain/credit"
	xerrors "backoffice-client/internal/pkg/errors"
)

type PaymentLister interface {
	ListPayments(ctx context.Context, tenantID string) ([]billingdomain.Payment, error)
}

type CreditLister interface {
	List(ctx context.Context) ([]creditdomain.Credit, error)
}

type Service struct {
	payments PaymentLister
	credits  CreditLister
	logger   *zap.Logger
}

func NewService(payments PaymentLister, credits CreditLister, logger *zap.Logger) *Service {
	return &Service{payments: payments, credits: credits, logger: logger}
}

var paymentHeaders = []string{
	"ID", "Empresa", "Monto", "Moneda", "Período inicio", "Período fin", "Método", "Referencia externa", "Fecha",
}

var creditHeaders = []string{
	"ID", "Cliente", "Tipo de crédito", "Monto", "Plazo (meses)", "Estado", "Fecha creación", "Observaciones",
}

// ExportPayments writes the scope's payments as a spreadsheet.
func (s *Service) ExportPayments(ctx context.Context, tenantID string, w io.Writer) error {
	payments, err := s.payments.ListPayments(ctx, tenantID)
	if err != nil {
		return xerrors.Wrap(err, "no se pudieron cargar los pagos para exportar")
	}

	rows := make([][]interface{}, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []interface{}{
			p.ID,
			p.TenantID,
			float64(p.AmountCents) / 100,
			p.Currency,
			p.PeriodStart,
			p.PeriodEnd,
			p.Method,
			p.ExternalID,
			p.CreatedAt,
		})
	}

	s.logger.Info("exporting payments", zap.Int("rows", len(rows)), zap.String("tenant_id", tenantID))
	return writeSheet(w, "Pagos", paymentHeaders, rows)
}

// ExportCredits writes the scope's credits as a spreadsheet.
func (s *Service) ExportCredits(ctx context.Context, w io.Writer) error {
	credits, err := s.credits.List(ctx)
	if err != nil {
		return xerrors.Wrap(err, "no se pudieron cargar los créditos para exportar")
	}

	rows := make([][]interface{}, 0, len(credits))
	for _, c := range credits {
		rows = append(rows, []interface{}{
			c.ID.String(),
			c.ClienteID.String(),
			c.TipoCreditoID.String(),
			c.Monto,
			c.PlazoMeses,
			c.Estado,
			c.FechaCreacion,
			c.Observaciones,
		})
	}

	s.logger.Info("exporting credits", zap.Int("rows", len(rows)))
	return writeSheet(w, "Créditos", creditHeaders, rows)
}

// FileName builds the conventional export name for a report kind.
func FileName(kind string) string {
	return fmt.Sprintf("%s_%s.xlsx", kind, time.Now().Format("2006-01-02"))
}

func writeSheet(w io.Writer, sheet string, headers []string, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &headers)
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		last, _ := excelize.CoordinatesToCellName(len(headers), 1)
		f.SetCellStyle(sheet, "A1", last, style)
	}

	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		f.SetSheetRow(sheet, cell, &rows[i])
	}
	f.SetColWidth(sheet, "A", "C", 24)
	f.SetColWidth(sheet, "D", "I", 18)

	if err := f.Write(w); err != nil {
		return xerrors.Wrap(err, "no se pudo escribir el archivo de exportación")
	}
	return nil
}
