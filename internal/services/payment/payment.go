// Package payment содержит бизнес-логику платежей через внешнего
// провайдера: создание заказов на оплату и проверку подписи.
package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/service-marketplace/internal/models"
	"github.com/magabrotheeeer/service-marketplace/internal/paymentprovider"
)

// PaymentRepository определяет методы работы с платежами в хранилище.
type PaymentRepository interface {
	// SavePayment сохраняет запись о платеже и возвращает её ID.
	SavePayment(ctx context.Context, payment models.Payment) (int, error)
	// UpdatePaymentStatus обновляет статус платежа по order_id.
	UpdatePaymentStatus(ctx context.Context, orderID, paymentID, status string) (int, error)
	// GetPaymentByOrderID возвращает платёж по order_id.
	GetPaymentByOrderID(ctx context.Context, orderID string) (*models.Payment, error)
}

// Provider описывает клиент внешней платёжной системы.
type Provider interface {
	// CreateOrder создаёт заказ на оплату.
	CreateOrder(reqParams paymentprovider.CreateOrderRequest) (*paymentprovider.CreateOrderResponse, error)
	// VerifyPaymentSignature проверяет подпись завершённого платежа.
	VerifyPaymentSignature(orderID, paymentID, signature string) bool
}

// PaymentService реализует бизнес-логику платежей.
type PaymentService struct {
	repo     PaymentRepository
	provider Provider
	log      *slog.Logger
}

// New создает новый экземпляр PaymentService.
func New(repo PaymentRepository, provider Provider, log *slog.Logger) *PaymentService {
	return &PaymentService{
		repo:     repo,
		provider: provider,
		log:      log,
	}
}

// CreateOrder создаёт заказ на оплату у провайдера и сохраняет запись
// о платеже в статусе created.
func (s *PaymentService) CreateOrder(ctx context.Context, userUID string,
	req models.DummyPaymentOrder) (*paymentprovider.CreateOrderResponse, error) {
	// Провайдер ограничивает receipt 40 символами, назначение платежа
	// хранится в нашей записи, а не в квитанции.
	order, err := s.provider.CreateOrder(paymentprovider.CreateOrderRequest{
		Amount:   req.Amount,
		Currency: req.Currency,
		Receipt:  uuid.New().String(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	payment := models.Payment{
		UserUID:     userUID,
		OrderID:     order.ID,
		Amount:      req.Amount,
		Currency:    req.Currency,
		Status:      models.PaymentCreated,
		Purpose:     req.Purpose,
		ReferenceID: req.ReferenceID,
	}
	if _, err := s.repo.SavePayment(ctx, payment); err != nil {
		return nil, err
	}

	s.log.Info("created payment order",
		slog.String("order_id", order.ID),
		slog.String("user_uid", userUID))
	return order, nil
}

// Verify проверяет подпись завершённого платежа. Заказ должен принадлежать
// инициатору. Результат проверки сохраняется всегда: неуспешная проверка
// переводит платёж в статус failed и возвращает ошибку.
func (s *PaymentService) Verify(ctx context.Context, userUID string,
	req models.DummyPaymentVerify) (*models.Payment, error) {
	payment, err := s.repo.GetPaymentByOrderID(ctx, req.OrderID)
	if err != nil {
		return nil, err
	}
	if payment.UserUID != userUID {
		return nil, models.ErrForbidden
	}

	if !s.provider.VerifyPaymentSignature(req.OrderID, req.PaymentID, req.Signature) {
		if _, err := s.repo.UpdatePaymentStatus(ctx, req.OrderID, req.PaymentID,
			models.PaymentFailed); err != nil {
			return nil, err
		}
		s.log.Warn("payment signature verification failed",
			slog.String("order_id", req.OrderID),
			slog.String("user_uid", userUID))
		return nil, models.ErrPaymentVerification
	}

	if _, err := s.repo.UpdatePaymentStatus(ctx, req.OrderID, req.PaymentID,
		models.PaymentSuccess); err != nil {
		return nil, err
	}
	payment.PaymentID = req.PaymentID
	payment.Status = models.PaymentSuccess

	s.log.Info("verified payment",
		slog.String("order_id", req.OrderID),
		slog.String("payment_id", req.PaymentID))
	return payment, nil
}
