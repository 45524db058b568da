// Package classify decides whether a transaction counts toward budget
// totals and which spending pool it belongs to. All decisions are pure
// functions over a Transaction and an injected Rules value, so tests can
// substitute fixtures without touching global state.
package classify

// Rules is the classification configuration surface. Every list is
// treated as opaque, swappable data; an empty list simply never matches.
type Rules struct {
	// Description substrings that exclude an income row (case-insensitive).
	ExcludedIncomeDescriptions []string `yaml:"excluded_income_descriptions,omitempty"`
	// Description substrings that exclude an expense row.
	ExcludedExpenseDescriptions []string `yaml:"excluded_expense_descriptions,omitempty"`
	// Person names whose transfers are excluded (case-sensitive).
	ExcludedPersons []string `yaml:"excluded_persons,omitempty"`
	// Keywords marking a credited row as a refund (case-insensitive).
	RefundKeywords []string `yaml:"refund_keywords,omitempty"`
	// Expense category names, used to detect refunds posted as income.
	ExpenseCategories []string `yaml:"expense_categories,omitempty"`
	// Categories whose expenses count against the daily pool.
	DailyCategories []string `yaml:"daily_categories,omitempty"`
	// Categories whose expenses count against the monthly pool.
	MonthlyCategories []string `yaml:"monthly_categories,omitempty"`
	// The literal category name used for transfers.
	TransfersCategory string `yaml:"transfers_category,omitempty"`
	// Counterparty tokens that allow a transfers-category expense through
	// and mark an expense as a mandatory payment (case-insensitive).
	BankTokens []string `yaml:"bank_tokens,omitempty"`
}

// DefaultRules returns the rule set shipped with the application. It is
// tuned for the bank export this tool was written for; users override it
// through rules.yaml.
func DefaultRules() Rules {
	return Rules{
		ExcludedIncomeDescriptions: []string{
			"Проценты на остаток",
			"Выплата процентов",
			"Кэшбэк",
			"Вывод с Инвесткопилки",
		},
		ExcludedExpenseDescriptions: []string{
			"Перевод между счетами",
			"Пополнение Инвесткопилки",
			"Инвестиции",
		},
		ExcludedPersons: []string{
			"Мария К.",
			"Александр Р.",
		},
		RefundKeywords: []string{
			"возврат",
			"компенсация",
			"отмена операции",
		},
		ExpenseCategories: []string{
			"Супермаркеты",
			"Рестораны",
			"Фастфуд",
			"Такси",
			"Транспорт",
			"Аптеки",
			"Одежда и обувь",
			"Маркетплейсы",
			"Развлечения",
			"ЖКХ",
			"Связь",
			"Подписки",
		},
		DailyCategories: []string{
			"Супермаркеты",
			"Рестораны",
			"Фастфуд",
		},
		MonthlyCategories: []string{
			"ЖКХ",
			"Связь",
			"Подписки",
			"Аптеки",
			"Транспорт",
		},
		TransfersCategory: "Переводы",
		BankTokens: []string{
			"Тинькофф",
			"Т-Банк",
		},
	}
}
