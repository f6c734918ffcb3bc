package booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking.repository: booking not found")

	// ErrVoteNotFound возвращается, когда у участника нет строки голоса
	// (участник не числится в бронировании)
	ErrVoteNotFound = errors.New("booking.repository: participant vote not found")

	// ErrTransactionRequired возвращается, когда мульти-табличная запись
	// вызвана вне транзакции. Primary и зеркала обязаны меняться атомарно.
	ErrTransactionRequired = errors.New("booking.repository: operation requires an active transaction")

	// ErrEmptyDelta возвращается при попытке применить пустой переход
	ErrEmptyDelta = errors.New("booking.repository: empty transition delta")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("booking.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("booking.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("booking.repository: failed to scan row")
)
