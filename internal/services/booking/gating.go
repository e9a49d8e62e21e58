package booking

// Решения гейтинга бронирования.
const (
	// DecisionSubscription активная подписка, кредиты не списываются.
	DecisionSubscription = "subscription"
	// DecisionCredit подписки нет, списывается один кредит.
	DecisionCredit = "credit"
)

// Decide выбирает способ оплаты бронирования: активная подписка
// освобождает от списания, иначе требуется кредит. Баланс здесь
// не проверяется, атомарное списание выполняет хранилище.
func Decide(hasActiveSubscription bool) string {
	if hasActiveSubscription {
		return DecisionSubscription
	}
	return DecisionCredit
}
