package requestapimodels

import (
	"time"

	"hr-requests-backend/models"
	usersapimodels "hr-requests-backend/models/api/users"
	dbmodels "hr-requests-backend/models/db"
)

type AbsenceCreateData struct {
	Type         models.RequestType `json:"type"`          // SICK_LEAVE или PLANNED
	DateFrom     string             `json:"date_from"`     // начало (ГГГГ-ММ-ДД)
	DateTo       string             `json:"date_to"`       // окончание (ГГГГ-ММ-ДД)
	ManagerID    string             `json:"manager_id"`    // ид руководителя
	SubstituteID string             `json:"substitute_id"` // ид замещающего
	Paid         *bool              `json:"paid"`          // оплачиваемое (только PLANNED)
	Comment      string             `json:"comment"`       // комментарий (только SICK_LEAVE)
}

func (r AbsenceCreateData) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Type.Kind() != models.RequestKindAbsence {
		return models.NewValidationError("тип %v оформляется как задача", r.Type)
	}
	if r.ManagerID == "" {
		return models.NewValidationError("не указан руководитель")
	}
	if _, err := r.Dates(); err != nil {
		return err
	}
	return nil
}

type AbsenceDates struct {
	From time.Time
	To   time.Time
}

func (r AbsenceCreateData) Dates() (AbsenceDates, error) {
	return parseDates(r.DateFrom, r.DateTo)
}

func parseDates(dateFrom, dateTo string) (AbsenceDates, error) {
	if dateFrom == "" || dateTo == "" {
		return AbsenceDates{}, models.NewValidationError("не указан период отсутствия")
	}
	from, err := time.Parse(DateFormat, dateFrom)
	if err != nil {
		return AbsenceDates{}, models.NewValidationError("неверный формат даты начала: %v", dateFrom)
	}
	to, err := time.Parse(DateFormat, dateTo)
	if err != nil {
		return AbsenceDates{}, models.NewValidationError("неверный формат даты окончания: %v", dateTo)
	}
	return AbsenceDates{From: from, To: to}, nil
}

// AbsenceEditData - уточнение отсутствия через старый интерфейс, nil поля не меняются.
type AbsenceEditData struct {
	DateFrom     *string `json:"date_from"`
	DateTo       *string `json:"date_to"`
	Paid         *bool   `json:"paid"`
	SubstituteID *string `json:"substitute_id"`
	Comment      *string `json:"comment"`
}

func (r AbsenceEditData) ToEdit() RequestEditData {
	return RequestEditData{
		DateFrom:     r.DateFrom,
		DateTo:       r.DateTo,
		Paid:         r.Paid,
		SubstituteID: r.SubstituteID,
		Comment:      r.Comment,
	}
}

// AbsenceValidateData - предварительная проверка сроков подачи.
type AbsenceValidateData struct {
	Type         models.RequestType `json:"type"`
	DateFrom     string             `json:"date_from"`
	DateTo       string             `json:"date_to"`
	SubstituteID string             `json:"substitute_id"`
}

func (r AbsenceValidateData) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	_, err := parseDates(r.DateFrom, r.DateTo)
	return err
}

func (r AbsenceValidateData) Dates() (AbsenceDates, error) {
	return parseDates(r.DateFrom, r.DateTo)
}

// AbsenceView - представление для старого интерфейса отсутствий:
// тристатусная модель сворачивается в булев признак confirmed
// (nil пока заявка на рассмотрении).
type AbsenceView struct {
	ID         string                   `json:"id"`
	Type       models.RequestType       `json:"type"`
	DateFrom   string                   `json:"date_from"`
	DateTo     string                   `json:"date_to"`
	Confirmed  *bool                    `json:"confirmed"`
	Paid       *bool                    `json:"paid,omitempty"`
	Comment    string                   `json:"comment,omitempty"`
	Employee   *usersapimodels.UserView `json:"user,omitempty"`
	Manager    *usersapimodels.UserView `json:"manager,omitempty"`
	Substitute *usersapimodels.UserView `json:"substitute,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
}

func AbsenceConvert(rec dbmodels.Request) AbsenceView {
	result := AbsenceView{
		ID:         rec.ID,
		Type:       rec.Type,
		DateFrom:   formatDate(rec.DateFrom),
		DateTo:     formatDate(rec.DateTo),
		Paid:       rec.Paid,
		Comment:    rec.Comment,
		Employee:   usersapimodels.UserConvertPtr(rec.Employee),
		Manager:    usersapimodels.UserConvertPtr(rec.Manager),
		Substitute: usersapimodels.UserConvertPtr(rec.Substitute),
		CreatedAt:  rec.CreatedAt,
	}
	switch rec.Status {
	case models.RequestStatusApproved:
		confirmed := true
		result.Confirmed = &confirmed
	case models.RequestStatusDeclined:
		confirmed := false
		result.Confirmed = &confirmed
	}
	return result
}
