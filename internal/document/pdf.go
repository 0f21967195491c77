// Package document renders invoices into printable PDFs with an embedded
// payment QR code. Amount computation happens upstream; this package only
// formats what it is handed.
package document

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/ryplify/ryptrack/internal/domain"
	"github.com/ryplify/ryptrack/internal/invoice"
)

// Party identifies one side of the invoice.
type Party struct {
	Name     string
	Address  string
	RegID    string
	Register string
}

// Invoice carries everything the document needs. Amounts are expected to be
// rounded to the currency's minor unit already.
type Invoice struct {
	Number      string
	IssuedAt    time.Time
	Supplier    Party
	Customer    Party
	ProjectName string
	Currency    string
	HourlyRate  float64
	TimeSeconds float64
	TimeCost    float64
	Items       []invoice.FixedItem
	GrandTotal  float64
	Entries     []domain.TimeEntry

	BankAccount    string
	VariableSymbol string
	PaymentCode    string // SPAYD string; empty omits the QR block
}

var tableBackground = color.Color{Red: 240, Green: 240, Blue: 240}

// RenderPDF lays out the invoice and returns the document bytes.
func RenderPDF(inv Invoice) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(15, 10, 15)

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Invoice %s", inv.Number), props.Text{
				Top:   3,
				Style: consts.Bold,
				Size:  18,
			})
		})
	})
	m.Row(8, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Issued %s", inv.IssuedAt.Format("2 January 2006")), props.Text{
				Size: 10,
			})
		})
	})

	m.Row(30, func() {
		m.Col(6, func() {
			writeParty(m, "Supplier", inv.Supplier)
		})
		m.Col(6, func() {
			writeParty(m, "Customer", inv.Customer)
		})
	})

	m.Row(10, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Project: %s", inv.ProjectName), props.Text{
				Top:   3,
				Style: consts.Bold,
				Size:  12,
			})
		})
	})

	summaryRows := [][]string{{
		"Tracked time",
		formatDuration(inv.TimeSeconds),
		money(inv.HourlyRate, inv.Currency) + "/h",
		money(inv.TimeCost, inv.Currency),
	}}
	for _, item := range inv.Items {
		summaryRows = append(summaryRows, []string{
			item.Description,
			"1",
			money(item.Price, inv.Currency),
			money(item.Price, inv.Currency),
		})
	}
	m.TableList([]string{"Item", "Quantity", "Rate", "Amount"}, summaryRows, props.TableList{
		HeaderProp: props.TableListContent{
			Size:      10,
			GridSizes: []uint{5, 2, 2, 3},
		},
		ContentProp: props.TableListContent{
			Size:      9,
			GridSizes: []uint{5, 2, 2, 3},
		},
		Align:                consts.Left,
		AlternatedBackground: &tableBackground,
		HeaderContentSpace:   1,
		Line:                 false,
	})

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Total: %s", money(inv.GrandTotal, inv.Currency)), props.Text{
				Top:   4,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  13,
			})
		})
	})

	if len(inv.Entries) > 0 {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Tracked sessions", props.Text{
					Top:   4,
					Style: consts.Bold,
					Size:  12,
				})
			})
		})
		entryRows := make([][]string, 0, len(inv.Entries))
		for _, e := range inv.Entries {
			entryRows = append(entryRows, []string{
				time.UnixMilli(e.Start).Format("2006-01-02 15:04"),
				time.UnixMilli(e.End).Format("2006-01-02 15:04"),
				formatDuration(e.Seconds()),
				e.Note,
			})
		}
		m.TableList([]string{"Start", "End", "Duration", "Note"}, entryRows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      10,
				GridSizes: []uint{3, 3, 2, 4},
			},
			ContentProp: props.TableListContent{
				Size:      8,
				GridSizes: []uint{3, 3, 2, 4},
			},
			Align:                consts.Left,
			AlternatedBackground: &tableBackground,
			HeaderContentSpace:   1,
			Line:                 false,
		})
	}

	m.Row(50, func() {
		m.Col(7, func() {
			m.Text("Payment details", props.Text{
				Top:   6,
				Style: consts.Bold,
				Size:  12,
			})
			m.Text(fmt.Sprintf("Bank account: %s", inv.BankAccount), props.Text{
				Top:  14,
				Size: 10,
			})
			m.Text(fmt.Sprintf("Variable symbol: %s", inv.VariableSymbol), props.Text{
				Top:  20,
				Size: 10,
			})
			m.Text(fmt.Sprintf("Amount due: %s", money(inv.GrandTotal, inv.Currency)), props.Text{
				Top:  26,
				Size: 10,
			})
		})
		m.Col(5, func() {
			if inv.PaymentCode != "" {
				m.QrCode(inv.PaymentCode, props.Rect{
					Center:  true,
					Percent: 90,
				})
			}
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("document: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func writeParty(m pdf.Maroto, role string, p Party) {
	m.Text(role, props.Text{Style: consts.Bold, Size: 10})
	m.Text(p.Name, props.Text{Top: 6, Size: 10})
	m.Text(p.Address, props.Text{Top: 12, Size: 9})
	if p.RegID != "" {
		m.Text(fmt.Sprintf("Reg. no.: %s", p.RegID), props.Text{Top: 18, Size: 9})
	}
	if p.Register != "" {
		m.Text(p.Register, props.Text{Top: 24, Size: 8})
	}
}

func formatDuration(totalSeconds float64) string {
	hours := int(totalSeconds) / 3600
	minutes := (int(totalSeconds) % 3600) / 60
	return fmt.Sprintf("%dh %02dm", hours, minutes)
}

func money(v float64, currency string) string {
	return fmt.Sprintf("%.2f %s", v, currency)
}
