// Package decisionengine содержит правила проверки и согласования заявок.
// Пакет не обращается к базе, все решения принимаются по переданным данным.
package decisionengine

import (
	"math"
	"time"

	"hr-requests-backend/models"
	dbmodels "hr-requests-backend/models/db"
)

// ValidateSubmission проверяет даты и сроки подачи заявки на отсутствие.
// Для плановых отпусков действуют требования к заблаговременности подачи,
// зависящие от длительности. Длительность считается включительно по дням.
func ValidateSubmission(reqType models.RequestType, dateFrom, dateTo time.Time, substituteID *string, now time.Time) error {
	if dateTo.Before(dateFrom) {
		return models.NewValidationError("дата окончания раньше даты начала")
	}
	if reqType != models.RequestTypePlanned {
		return nil
	}

	duration := DurationDays(dateFrom, dateTo)
	lead := dateFrom.Sub(now)

	switch {
	case duration == 1:
		if lead < 24*time.Hour {
			return models.NewValidationError("отпуск на 1 день подается минимум за 1 день")
		}
	case duration <= 5:
		if lead < 7*24*time.Hour {
			return models.NewValidationError("отпуск до 5 дней подается минимум за 7 дней")
		}
	default:
		if lead < 14*24*time.Hour {
			return models.NewValidationError("отпуск более 5 дней подается минимум за 14 дней")
		}
	}

	if duration > 3 && (substituteID == nil || *substituteID == "") {
		return models.NewValidationError("для отпуска более 3 дней требуется замещающий сотрудник")
	}
	return nil
}

// DurationDays возвращает длительность отсутствия в днях, включая обе границы.
func DurationDays(dateFrom, dateTo time.Time) int {
	return int(math.Ceil(dateTo.Sub(dateFrom).Hours()/24)) + 1
}

// CanDecide проверяет, может ли пользователь принять решение по заявке.
// Решение доступно назначенному руководителю либо любому пользователю с ролью
// руководителя, и только пока по заявке не принято решение.
func CanDecide(req *dbmodels.Request, actor *dbmodels.User) error {
	if req.Status.IsFinal() {
		return models.ErrAlreadyDecided
	}
	if actor.ID != req.ManagerID && !actor.IsManager() {
		return models.ErrNotAuthorized
	}
	return nil
}

// NextStatus возвращает статус заявки после действия руководителя.
// Передача заявки другому руководителю статус не меняет.
func NextStatus(current models.RequestStatus, action models.DecisionAction) (models.RequestStatus, error) {
	if current.IsFinal() {
		return current, models.ErrAlreadyDecided
	}
	switch action {
	case models.DecisionActionApproved:
		return models.RequestStatusApproved, nil
	case models.DecisionActionDeclined:
		return models.RequestStatusDeclined, nil
	case models.DecisionActionForwarded:
		return models.RequestStatusPending, nil
	}
	return current, models.NewValidationError("неизвестное действие: %v", action)
}
