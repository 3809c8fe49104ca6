package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vibeburger/pos-api/internal/domain/entity"
	"github.com/vibeburger/pos-api/internal/domain/repository"
	"github.com/vibeburger/pos-api/pkg/apperror"
	"github.com/vibeburger/pos-api/pkg/printer"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer      printer.Printer
	saleRepo     repository.SaleRepository
	settingsRepo repository.SettingsRepository
	printerType  string
	paperWidth   int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(
	p printer.Printer,
	saleRepo repository.SaleRepository,
	settingsRepo repository.SettingsRepository,
	printerType string,
	paperWidth int,
) *PrinterService {
	return &PrinterService{
		printer:      p,
		saleRepo:     saleRepo,
		settingsRepo: settingsRepo,
		printerType:  printerType,
		paperWidth:   paperWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Type       string `json:"type"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus() *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printerType != "none" && s.printerType != "",
		Connected:  s.printer.IsConnected(),
		Type:       s.printerType,
	}
}

// PrintSaleReceipt fetches a sale and sends its receipt to the printer.
func (s *PrinterService) PrintSaleReceipt(ctx context.Context, saleID uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}

	settings, err := s.settingsRepo.Get(ctx)
	if err != nil {
		return err
	}
	if settings == nil {
		settings = entity.DefaultStoreSettings()
	}

	data := s.formatReceipt(sale, settings)
	if err := s.printer.Print(data); err != nil {
		return fmt.Errorf("receipt print failed: %w", err)
	}
	return nil
}

// formatReceipt renders a sale into an ESC/POS byte stream.
func (s *PrinterService) formatReceipt(sale *entity.Sale, settings *entity.StoreSettings) []byte {
	doc := printer.NewDocument(s.paperWidth)

	doc.SetAlign(printer.AlignCenter).
		SetBold(true).
		SetFontSize(printer.FontDouble).
		Text(settings.StoreName).
		SetFontSize(printer.FontNormal).
		SetBold(false).
		FeedLines(1)

	doc.SetAlign(printer.AlignLeft).
		KeyValue("Invoice", sale.InvoiceNo).
		KeyValue("Date", sale.SaleDate.Format("2006-01-02 15:04")).
		Separator('-')

	for _, line := range sale.Lines {
		doc.ItemLine(line.Quantity, line.ProductName, line.LineTotal.StringFixed(2))
	}

	doc.Separator('-').
		KeyValue("Subtotal", sale.Subtotal.StringFixed(2))
	if settings.EnableTax {
		doc.KeyValue("VATable Sales", sale.VatableSales.StringFixed(2)).
			KeyValue(fmt.Sprintf("VAT (%s%%)", settings.VatRate.Mul(hundred).StringFixed(0)), sale.VatAmount.StringFixed(2))
	}
	doc.KeyValue("Service Charge", sale.ServiceCharge.StringFixed(2)).
		Separator('=').
		SetBold(true).
		KeyValue("TOTAL "+settings.Currency, sale.GrandTotal.StringFixed(2)).
		SetBold(false)

	doc.FeedLines(1).
		SetAlign(printer.AlignCenter).
		Text("Thank you!").
		FeedLines(3).
		Cut()

	return doc.Bytes()
}
