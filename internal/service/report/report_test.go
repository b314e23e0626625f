package report

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	billingdomain "backoffice-client/internal/domain/billing"
	creditdomain "backoffice-client/internal/domain/credit"
)

type fakePayments struct {
	payments []billingdomain.Payment
	err      error
}

func (f fakePayments) ListPayments(context.Context, string) ([]billingdomain.Payment, error) {
	return f.payments, f.err
}

type fakeCredits struct {
	credits []creditdomain.Credit
	err     error
}

func (f fakeCredits) List(context.Context) ([]creditdomain.Credit, error) {
	return f.credits, f.err
}

func TestExportPayments(t *testing.T) {
	svc := NewService(fakePayments{payments: []billingdomain.Payment{
		{ID: "p1", TenantID: "7", AmountCents: 8000, Currency: "USD", Method: billingdomain.MethodManual, CreatedAt: "2026-01-15T00:00:00Z"},
	}}, fakeCredits{}, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportPayments(context.Background(), "7", &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Pagos")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "ID", rows[0][0])
	assert.Equal(t, "Monto", rows[0][2])
	assert.Equal(t, "p1", rows[1][0])
	assert.Equal(t, "80", rows[1][2]) // cents converted to whole currency
}

func TestExportCredits(t *testing.T) {
	svc := NewService(fakePayments{}, fakeCredits{credits: []creditdomain.Credit{
		{ID: "c1", ClienteID: "1", TipoCreditoID: "2", Monto: 5000, PlazoMeses: 12, Estado: creditdomain.EstadoPendiente, FechaCreacion: "2026-02-01"},
	}}, zap.NewNop())

	var buf bytes.Buffer
	require.NoError(t, svc.ExportCredits(context.Background(), &buf))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Créditos")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "PENDIENTE", rows[1][5])
	assert.Equal(t, "12", rows[1][4])
}

func TestExportPropagatesListFailures(t *testing.T) {
	svc := NewService(fakePayments{err: errors.New("down")}, fakeCredits{err: errors.New("down")}, zap.NewNop())

	var buf bytes.Buffer
	assert.Error(t, svc.ExportPayments(context.Background(), "7", &buf))
	assert.Error(t, svc.ExportCredits(context.Background(), &buf))
}

func TestFileName(t *testing.T) {
	want := "pagos_" + time.Now().Format("2006-01-02") + ".xlsx"
	assert.Equal(t, want, FileName("pagos"))
}
