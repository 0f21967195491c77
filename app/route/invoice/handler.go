package invoice

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/ryplify/ryptrack/internal/document"
	"github.com/ryplify/ryptrack/internal/domain"
	billing "github.com/ryplify/ryptrack/internal/invoice"
	"github.com/ryplify/ryptrack/internal/report"
	"github.com/ryplify/ryptrack/internal/store"
	"github.com/ryplify/ryptrack/internal/tracker"
	"github.com/ryplify/ryptrack/pkg/spayd"
)

type HandlerGroup struct {
	tracker *tracker.Service
	store   *store.File
	slog    *slog.Logger
}

func NewHandlerGroup(tracker *tracker.Service, store *store.File, slog *slog.Logger) *HandlerGroup {
	return &HandlerGroup{tracker: tracker, store: store, slog: slog}
}

func (hg *HandlerGroup) Mount(r chi.Router) {
	r.Post("/api/projects/{id}/invoice", hg.handleCreate)
}

type itemRequest struct {
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

type createInvoiceRequest struct {
	CustomerName    string        `json:"customerName"`
	CustomerAddress string        `json:"customerAddress"`
	CustomerRegID   string        `json:"customerRegID"`
	Number          string        `json:"number"`
	VariableSymbol  string        `json:"variableSymbol"`
	Items           []itemRequest `json:"items"`
}

func (hg *HandlerGroup) handleCreate(w http.ResponseWriter, r *http.Request) {
	req := createInvoiceRequest{}
	if err := render.DecodeJSON(r.Body, &req); err != nil && !errors.Is(err, io.EOF) {
		apiError(w, r, http.StatusBadRequest, err)
		return
	}

	p, err := hg.tracker.Get(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, tracker.ErrNotFound) {
			apiError(w, r, http.StatusNotFound, err)
		} else {
			apiError(w, r, http.StatusInternalServerError, err)
		}
		return
	}

	var set domain.Settings
	if err := hg.store.View(func(st *store.State) error {
		set = st.Settings
		return nil
	}); err != nil {
		apiError(w, r, http.StatusInternalServerError, err)
		return
	}

	now := time.Now()
	number := req.Number
	if number == "" {
		number = "F" + now.Format("200601")
	}
	variableSymbol := req.VariableSymbol
	if variableSymbol == "" {
		variableSymbol = defaultVariableSymbol(now)
	}
	if req.CustomerName == "" {
		req.CustomerName = p.Name
	}

	builder := billing.NewBuilder(p, set.HourlyRate)
	rejected := 0
	for _, item := range req.Items {
		if !builder.AddItem(item.Description, item.Price) {
			rejected++
		}
	}
	if rejected > 0 {
		hg.slog.Warn("rejected invalid fixed items",
			slog.String("project_id", p.ID),
			slog.Int("count", rejected))
	}

	grandTotal := report.Round2(builder.GrandTotal())

	// The QR payload carries the amount already rounded to the minor unit.
	var paymentCode string
	if set.IBAN != "" {
		paymentCode, err = spayd.Payment{
			Account:        set.IBAN,
			Amount:         grandTotal,
			Currency:       set.Currency,
			Message:        "Invoice " + number,
			VariableSymbol: variableSymbol,
		}.Encode()
		if err != nil {
			apiError(w, r, http.StatusInternalServerError, err)
			return
		}
	}

	doc := document.Invoice{
		Number:   number,
		IssuedAt: now,
		Supplier: document.Party{
			Name:     set.SupplierName,
			Address:  set.SupplierAddress,
			RegID:    set.SupplierRegID,
			Register: set.SupplierRegister,
		},
		Customer: document.Party{
			Name:    req.CustomerName,
			Address: req.CustomerAddress,
			RegID:   req.CustomerRegID,
		},
		ProjectName: p.Name,
		Currency:    set.Currency,
		HourlyRate:  set.HourlyRate,
		TimeSeconds: p.TotalSeconds,
		TimeCost:    report.Round2(builder.TimeCost()),
		Items:       builder.Items(),
		GrandTotal:  grandTotal,
		Entries:     p.TimeEntries,

		BankAccount:    set.BankAccount,
		VariableSymbol: variableSymbol,
		PaymentCode:    paymentCode,
	}

	pdfBytes, err := document.RenderPDF(doc)
	if err != nil {
		// The computed amounts survive a rendering failure so the caller can
		// simply retry.
		hg.slog.Error("invoice rendering failed",
			slog.String("project_id", p.ID),
			slog.String("error", err.Error()))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, map[string]any{
			"error":           err.Error(),
			"timeCost":        report.Round2(builder.TimeCost()),
			"fixedItemsTotal": report.Round2(builder.FixedTotal()),
			"grandTotal":      grandTotal,
		})
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", "invoice-"+number+".pdf"))
	_, _ = w.Write(pdfBytes)
}

// defaultVariableSymbol derives a numeric payment reference from the current
// time, capped at the 10 digits Czech banks accept.
func defaultVariableSymbol(now time.Time) string {
	s := strconv.FormatInt(now.UnixMilli(), 10)
	if len(s) > 10 {
		s = s[len(s)-10:]
	}
	return s
}

func apiError(w http.ResponseWriter, r *http.Request, code int, err error) {
	render.Status(r, code)
	render.JSON(w, r, map[string]string{"error": err.Error()})
}
