package paymentprovider

// CreateOrderRequest представляет запрос на создание заказа в Razorpay.
type CreateOrderRequest struct {
	Amount   int64  `json:"amount"`   // сумма в минимальных единицах валюты (пайсы)
	Currency string `json:"currency"` // валюта, например "INR"
	Receipt  string `json:"receipt"`  // внутренний идентификатор заказа
}

// CreateOrderResponse представляет ответ Razorpay на создание заказа.
type CreateOrderResponse struct {
	ID        string `json:"id"`     // ID заказа в Razorpay
	Amount    int64  `json:"amount"` // сумма
	Currency  string `json:"currency"`
	Receipt   string `json:"receipt"`
	Status    string `json:"status"`     // статус заказа, например "created"
	CreatedAt int64  `json:"created_at"` // unix-время создания
}
