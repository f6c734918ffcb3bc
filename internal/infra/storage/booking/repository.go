package booking

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-CoachingService/internal/domain"
	"github.com/m04kA/SMC-CoachingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CoachingService/pkg/psqlbuilder"
)

// Repository репозиторий бронирований.
//
// Одно логическое бронирование хранится в трех таблицах:
//   - bookings        - primary запись (источник истины);
//   - booking_mirrors - денормализованная копия на каждого участника,
//     по ней строятся выборки "мои бронирования";
//   - booking_votes   - строка голоса (принятие/подтверждение) на участника.
//
// Все записи, затрагивающие более одной таблицы (Create, Transition,
// Merge*Vote в связке с Transition), обязаны выполняться внутри транзакции,
// переданной через context - иначе зеркала могут разойтись с primary.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает primary запись, зеркала всех участников и строки голосов
// как единое целое. Вызывается только внутри транзакции: зеркало не должно
// существовать без primary.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !dbmetrics.IsInTransaction(ctx) {
		return nil, ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"id",
			"status",
			"payment_status",
			"start_at",
			"end_at",
			"location",
			"notes",
			"coach_note",
			"rate_usd",
		).
		Values(
			booking.ID,
			booking.Status,
			booking.PaymentStatus,
			booking.StartAt,
			booking.EndAt,
			booking.Location,
			booking.Notes,
			booking.CoachNote,
			booking.RateUSD,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %w", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %w", ErrExecQuery, err)
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.insertMirrors(ctx, executor, booking); err != nil {
		return nil, err
	}
	if err := r.insertVotes(ctx, executor, booking); err != nil {
		return nil, err
	}

	return booking, nil
}

// insertMirrors создает зеркало бронирования для каждого участника
func (r *Repository) insertMirrors(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	builder := psqlbuilder.Insert("booking_mirrors").
		Columns(
			"booking_id",
			"participant_id",
			"role",
			"position",
			"status",
			"payment_status",
			"start_at",
			"end_at",
			"location",
			"notes",
			"coach_note",
			"rate_usd",
		)

	addRow := func(participantID int64, role domain.Role, position int) {
		builder = builder.Values(
			booking.ID,
			participantID,
			role,
			position,
			booking.Status,
			booking.PaymentStatus,
			booking.StartAt,
			booking.EndAt,
			booking.Location,
			booking.Notes,
			booking.CoachNote,
			booking.RateUSD,
		)
	}
	for i, id := range booking.ClientIDs {
		addRow(id, domain.RoleClient, i)
	}
	for i, id := range booking.CoachIDs {
		addRow(id, domain.RoleCoach, i)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertMirrors - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertMirrors - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// insertVotes создает пустые строки голосов для всех участников
func (r *Repository) insertVotes(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	builder := psqlbuilder.Insert("booking_votes").
		Columns("booking_id", "participant_id", "role", "accepted")

	for _, id := range booking.ClientIDs {
		builder = builder.Values(booking.ID, id, domain.RoleClient, false)
	}
	for _, id := range booking.CoachIDs {
		builder = builder.Values(booking.ID, id, domain.RoleCoach, false)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: insertVotes - build insert query: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: insertVotes - execute insert: %w", ErrExecQuery, err)
	}
	return nil
}

// GetByID получает бронирование по ID вместе с участниками и голосами
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"status",
		"payment_status",
		"start_at",
		"end_at",
		"location",
		"notes",
		"coach_note",
		"rate_usd",
		"client_decline_reason",
		"cancellation_reason",
		"pending_at",
		"confirmed_at",
		"declined_at",
		"cancelled_at",
		"created_at",
		"updated_at",
	).
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %w", ErrBuildQuery, err)
	}

	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&booking.Status,
		&booking.PaymentStatus,
		&booking.StartAt,
		&booking.EndAt,
		&booking.Location,
		&booking.Notes,
		&booking.CoachNote,
		&booking.RateUSD,
		&booking.ClientDeclineReason,
		&booking.CancellationReason,
		&booking.PendingAt,
		&booking.ConfirmedAt,
		&booking.DeclinedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %w", ErrScanRow, err)
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	if err := r.loadParticipants(ctx, executor, &booking); err != nil {
		return nil, err
	}
	if err := r.loadVotes(ctx, executor, &booking); err != nil {
		return nil, err
	}

	return &booking, nil
}

// loadParticipants загружает упорядоченные списки участников из зеркал
func (r *Repository) loadParticipants(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Select("participant_id", "role").
		From("booking_mirrors").
		Where(squirrel.Eq{"booking_id": booking.ID}).
		OrderBy("role ASC", "position ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadParticipants - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadParticipants - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var participantID int64
		var role domain.Role
		if err := rows.Scan(&participantID, &role); err != nil {
			return fmt.Errorf("%w: loadParticipants - scan row: %w", ErrScanRow, err)
		}
		switch role {
		case domain.RoleClient:
			booking.ClientIDs = append(booking.ClientIDs, participantID)
		case domain.RoleCoach:
			booking.CoachIDs = append(booking.CoachIDs, participantID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadParticipants - rows error: %w", ErrScanRow, err)
	}
	return nil
}

// loadVotes загружает голоса участников
func (r *Repository) loadVotes(ctx context.Context, executor DBExecutor, booking *domain.Booking) error {
	query, args, err := psqlbuilder.Select("participant_id", "role", "accepted", "rate_usd", "voted_at").
		From("booking_votes").
		Where(squirrel.Eq{"booking_id": booking.ID}).
		OrderBy("role ASC", "participant_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: loadVotes - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: loadVotes - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var vote domain.ParticipantVote
		var role domain.Role
		if err := rows.Scan(&vote.ParticipantID, &role, &vote.Accepted, &vote.RateUSD, &vote.VotedAt); err != nil {
			return fmt.Errorf("%w: loadVotes - scan row: %w", ErrScanRow, err)
		}
		switch role {
		case domain.RoleClient:
			booking.ClientVotes = append(booking.ClientVotes, vote)
		case domain.RoleCoach:
			booking.CoachVotes = append(booking.CoachVotes, vote)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: loadVotes - rows error: %w", ErrScanRow, err)
	}
	return nil
}

// GetByParticipant читает коллекцию зеркал участника.
// Возвращает list-view записи: поля бронирования заполнены из зеркала,
// списки участников и голоса не загружаются.
// Порядок не гарантируется схемой - сортируем по start_at по убыванию.
func (r *Repository) GetByParticipant(ctx context.Context, participantID int64, role domain.Role, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(
		"booking_id",
		"status",
		"payment_status",
		"start_at",
		"end_at",
		"location",
		"notes",
		"coach_note",
		"rate_usd",
		"updated_at",
	).
		From("booking_mirrors").
		Where(squirrel.Eq{"participant_id": participantID, "role": role}).
		OrderBy("start_at DESC")

	// Фильтрация по статусу, если указан
	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - build select query: %w", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - execute query: %w", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		var booking domain.Booking
		var updatedAt sql.NullTime
		err := rows.Scan(
			&booking.ID,
			&booking.Status,
			&booking.PaymentStatus,
			&booking.StartAt,
			&booking.EndAt,
			&booking.Location,
			&booking.Notes,
			&booking.CoachNote,
			&booking.RateUSD,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: GetByParticipant - scan row: %w", ErrScanRow, err)
		}
		booking.UpdatedAt = updatedAt.Time
		bookings = append(bookings, &booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByParticipant - rows error: %w", ErrScanRow, err)
	}

	return bookings, nil
}

// Transition применяет один и тот же delta к primary записи и ко всем
// зеркалам бронирования. Центральный контракт консистентности: два участника
// никогда не должны увидеть разные статусы одного бронирования, поэтому
// метод работает только внутри транзакции.
func (r *Repository) Transition(ctx context.Context, id uuid.UUID, delta domain.TransitionDelta) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	if delta.IsEmpty() {
		return ErrEmptyDelta
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	// Primary запись
	primary := psqlbuilder.Update("bookings").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})
	primary = applyDelta(primary, delta, false)

	query, args, err := primary.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build primary update: %w", ErrBuildQuery, err)
	}
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Transition - execute primary update: %w", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Transition - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	// Зеркала участников: только поля, присутствующие в зеркале
	mirrors := psqlbuilder.Update("booking_mirrors").
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"booking_id": id})
	mirrors = applyDelta(mirrors, delta, true)

	query, args, err = mirrors.ToSql()
	if err != nil {
		return fmt.Errorf("%w: Transition - build mirrors update: %w", ErrBuildQuery, err)
	}
	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Transition - execute mirrors update: %w", ErrExecQuery, err)
	}

	return nil
}

// applyDelta добавляет в UPDATE только заданные поля delta.
// mirrorOnly ограничивает набор полями, которые денормализованы в зеркала.
func applyDelta(builder squirrel.UpdateBuilder, delta domain.TransitionDelta, mirrorOnly bool) squirrel.UpdateBuilder {
	if delta.Status != nil {
		builder = builder.Set("status", *delta.Status)
	}
	if delta.PaymentStatus != nil {
		builder = builder.Set("payment_status", *delta.PaymentStatus)
	}
	if delta.RateUSD != nil {
		builder = builder.Set("rate_usd", *delta.RateUSD)
	}
	if delta.CoachNote != nil {
		builder = builder.Set("coach_note", *delta.CoachNote)
	}
	if mirrorOnly {
		return builder
	}
	if delta.ClientDeclineReason != nil {
		builder = builder.Set("client_decline_reason", *delta.ClientDeclineReason)
	}
	if delta.CancellationReason != nil {
		builder = builder.Set("cancellation_reason", *delta.CancellationReason)
	}
	if delta.PendingAt != nil {
		builder = builder.Set("pending_at", *delta.PendingAt)
	}
	if delta.ConfirmedAt != nil {
		builder = builder.Set("confirmed_at", *delta.ConfirmedAt)
	}
	if delta.DeclinedAt != nil {
		builder = builder.Set("declined_at", *delta.DeclinedAt)
	}
	if delta.CancelledAt != nil {
		builder = builder.Set("cancelled_at", *delta.CancelledAt)
	}
	return builder
}

// MergeCoachVote отмечает принятие бронирования тренером.
// Field-level merge: обновляется ровно одна строка (booking_id, coach_id),
// полная карта голосов никогда не перечитывается и не перезаписывается -
// два тренера, принимающие одновременно, не затирают голоса друг друга.
func (r *Repository) MergeCoachVote(ctx context.Context, bookingID uuid.UUID, coachID int64, rateUSD *float64, votedAt time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update("booking_votes").
		Set("accepted", true).
		Set("voted_at", votedAt).
		Where(squirrel.Eq{
			"booking_id":     bookingID,
			"participant_id": coachID,
			"role":           domain.RoleCoach,
		})
	// Ставка не затирается при повторном принятии без ставки
	if rateUSD != nil {
		builder = builder.Set("rate_usd", *rateUSD)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: MergeCoachVote - build update query: %w", ErrBuildQuery, err)
	}
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MergeCoachVote - execute update: %w", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MergeCoachVote - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}

// MergeClientVote отмечает подтверждение бронирования клиентом.
// Та же семантика field-level merge, что и у MergeCoachVote.
func (r *Repository) MergeClientVote(ctx context.Context, bookingID uuid.UUID, clientID int64, votedAt time.Time) error {
	if !dbmetrics.IsInTransaction(ctx) {
		return ErrTransactionRequired
	}
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("booking_votes").
		Set("accepted", true).
		Set("voted_at", votedAt).
		Where(squirrel.Eq{
			"booking_id":     bookingID,
			"participant_id": clientID,
			"role":           domain.RoleClient,
		}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: MergeClientVote - build update query: %w", ErrBuildQuery, err)
	}
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: MergeClientVote - execute update: %w", ErrExecQuery, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: MergeClientVote - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrVoteNotFound
	}
	return nil
}
