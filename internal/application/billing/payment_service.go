package billing

import (
	"context"

	"github.com/ebilling/backend/internal/domain/billing"
	"github.com/ebilling/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// PaymentService settles bills and serves payment history
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	billRepo    billing.BillRepository
	logger      *zap.Logger
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	paymentRepo billing.PaymentRepository,
	billRepo billing.BillRepository,
	logger *zap.Logger,
) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		billRepo:    billRepo,
		logger:      logger,
	}
}

// PayBill settles one of the caller's bills in full. The bill must
// belong to the caller (a foreign bill is reported as not found, never
// as forbidden) and must not already be paid. The payment and its
// invoice are written in one transaction; the unique constraint on
// payments.bill_id catches the race two concurrent requests can win
// past the existence check.
func (s *PaymentService) PayBill(ctx context.Context, principal shared.Principal, input PayBillInput) (*PaymentResult, error) {
	bill, err := s.billRepo.FindOwned(ctx, input.BillID, principal.ID)
	if err != nil {
		return nil, err
	}

	paid, err := s.paymentRepo.ExistsByBillID(ctx, bill.ID)
	if err != nil {
		return nil, err
	}
	if paid {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "This bill has already been paid")
	}

	payment := billing.NewPayment(bill)
	invoice := billing.NewInvoice(payment)
	if err := s.paymentRepo.CreateWithInvoice(ctx, payment, invoice); err != nil {
		s.logger.Warn("Payment rejected",
			zap.String("bill_id", bill.ID.String()), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Bill paid",
		zap.String("bill_id", bill.ID.String()),
		zap.String("payment_id", payment.ID.String()),
		zap.String("amount", payment.Amount.String()))

	return &PaymentResult{
		ID:        payment.ID,
		BillID:    payment.BillID,
		Amount:    payment.Amount,
		Status:    string(payment.Status),
		CreatedAt: payment.CreatedAt,
		DueDate:   bill.DueDate,
		InvoiceNo: invoice.InvoiceNo,
	}, nil
}

// ListOwned returns the caller's payments, newest first, with due date,
// meter number and invoice number
func (s *PaymentService) ListOwned(ctx context.Context, principal shared.Principal) ([]PaymentResult, error) {
	details, err := s.paymentRepo.FindDetailedByAccount(ctx, principal.ID)
	if err != nil {
		return nil, err
	}

	results := make([]PaymentResult, len(details))
	for i, detail := range details {
		results[i] = PaymentResult{
			ID:        detail.Payment.ID,
			BillID:    detail.Payment.BillID,
			Amount:    detail.Payment.Amount,
			Status:    string(detail.Payment.Status),
			CreatedAt: detail.Payment.CreatedAt,
			DueDate:   detail.DueDate,
			MeterNo:   detail.MeterNo,
			InvoiceNo: detail.InvoiceNo,
		}
	}
	return results, nil
}
