package booking

import (
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
)

// Переиспользуем интерфейс исполнителя запросов из dbmetrics.
// Транзакции начинает менеджер транзакций и передает их через context.
type DBExecutor = dbmetrics.DBExecutor
