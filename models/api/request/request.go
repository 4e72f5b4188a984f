package requestapimodels

import (
	"time"

	"hr-requests-backend/models"
	apimodels "hr-requests-backend/models/api"
	usersapimodels "hr-requests-backend/models/api/users"
	dbmodels "hr-requests-backend/models/db"
)

const DateFormat = "2006-01-02"

type RequestCreateData struct {
	Type        models.RequestType     `json:"type"`        // тип заявки
	Title       string                 `json:"title"`       // заголовок
	Description string                 `json:"description"` // описание
	Priority    models.RequestPriority `json:"priority"`    // приоритет
	DueDate     string                 `json:"due_date"`    // срок исполнения (ГГГГ-ММ-ДД)
	ManagerID   string                 `json:"manager_id"`  // ид руководителя
}

func (r RequestCreateData) Validate() error {
	if err := r.Type.Validate(); err != nil {
		return err
	}
	if r.Type.Kind() != models.RequestKindTask {
		return models.NewValidationError("тип %v оформляется как отсутствие", r.Type)
	}
	if r.Title == "" {
		return models.NewValidationError("не указан заголовок заявки")
	}
	if err := r.Priority.Validate(); err != nil {
		return err
	}
	if r.ManagerID == "" {
		return models.NewValidationError("не указан руководитель")
	}
	if r.DueDate != "" {
		if _, err := time.Parse(DateFormat, r.DueDate); err != nil {
			return models.NewValidationError("неверный формат срока исполнения: %v", r.DueDate)
		}
	}
	return nil
}

// RequestEditData - частичное обновление, nil поля не меняются.
type RequestEditData struct {
	Title        *string                 `json:"title"`
	Description  *string                 `json:"description"`
	Priority     *models.RequestPriority `json:"priority"`
	DueDate      *string                 `json:"due_date"`
	DateFrom     *string                 `json:"date_from"`
	DateTo       *string                 `json:"date_to"`
	Paid         *bool                   `json:"paid"`
	SubstituteID *string                 `json:"substitute_id"`
	Comment      *string                 `json:"comment"`
}

func (r RequestEditData) Validate() error {
	if r.Priority != nil {
		if err := r.Priority.Validate(); err != nil {
			return err
		}
	}
	for _, value := range []*string{r.DueDate, r.DateFrom, r.DateTo} {
		if value == nil || *value == "" {
			continue
		}
		if _, err := time.Parse(DateFormat, *value); err != nil {
			return models.NewValidationError("неверный формат даты: %v", *value)
		}
	}
	return nil
}

type DecideData struct {
	Comment string `json:"comment"` // комментарий к решению
}

func (r DecideData) Validate() error {
	return nil
}

type ForwardData struct {
	ForwardToID string `json:"forward_to_id"` // ид нового руководителя
	Comment     string `json:"comment"`       // комментарий
}

func (r ForwardData) Validate() error {
	if r.ForwardToID == "" {
		return models.NewValidationError("не указан получатель заявки")
	}
	return nil
}

type PendingFilter struct {
	ManagerID string                 `json:"manager_id"` // по руководителю
	Kind      models.RequestKind     `json:"kind"`       // по виду (TASK/ABSENCE)
	Type      models.RequestType     `json:"type"`       // по типу
	Priority  models.RequestPriority `json:"priority"`   // по приоритету
	Search    string                 `json:"search"`     // подстрока в заголовке/описании
}

func (r PendingFilter) Validate() error {
	if r.Kind != "" {
		if err := r.Kind.Validate(); err != nil {
			return err
		}
	}
	if r.Type != "" {
		if err := r.Type.Validate(); err != nil {
			return err
		}
	}
	if r.Priority != "" {
		if err := r.Priority.Validate(); err != nil {
			return err
		}
	}
	return nil
}

type UserListFilter struct {
	Status models.RequestStatus `json:"status"` // фильтр по статусу
	Kind   models.RequestKind   `json:"kind"`   // фильтр по виду
	apimodels.Pagination
}

func (r UserListFilter) Validate() error {
	if r.Status != "" {
		if err := r.Status.Validate(); err != nil {
			return err
		}
	}
	if r.Kind != "" {
		return r.Kind.Validate()
	}
	return nil
}

type DecisionView struct {
	ID        string                   `json:"id"`
	Action    models.DecisionAction    `json:"action"`
	Comment   string                   `json:"comment,omitempty"`
	Actor     *usersapimodels.UserView `json:"actor,omitempty"`
	CreatedAt time.Time                `json:"created_at"`
}

func DecisionConvert(rec dbmodels.Decision) DecisionView {
	return DecisionView{
		ID:        rec.ID,
		Action:    rec.Action,
		Comment:   rec.Comment,
		Actor:     usersapimodels.UserConvertPtr(rec.Actor),
		CreatedAt: rec.CreatedAt,
	}
}

type AttachmentView struct {
	ID       string `json:"id"`
	FileName string `json:"file_name"`
	Size     int64  `json:"size"`
}

type RequestView struct {
	ID            string                   `json:"id"`
	Kind          models.RequestKind       `json:"kind"`
	Type          models.RequestType       `json:"type"`
	Title         string                   `json:"title,omitempty"`
	Description   string                   `json:"description,omitempty"`
	Priority      models.RequestPriority   `json:"priority,omitempty"`
	Status        models.RequestStatus     `json:"status"`
	DateFrom      string                   `json:"date_from,omitempty"`
	DateTo        string                   `json:"date_to,omitempty"`
	DueDate       string                   `json:"due_date,omitempty"`
	Paid          *bool                    `json:"paid,omitempty"`
	Comment       string                   `json:"comment,omitempty"`
	Employee      *usersapimodels.UserView `json:"employee,omitempty"`
	Manager       *usersapimodels.UserView `json:"manager,omitempty"`
	Substitute    *usersapimodels.UserView `json:"substitute,omitempty"`
	Decisions     []DecisionView           `json:"decisions,omitempty"`
	DecisionCount int                      `json:"decision_count"`
	Attachments   []AttachmentView         `json:"attachments,omitempty"`
	CreatedAt     time.Time                `json:"created_at"`
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format(DateFormat)
}

func RequestConvert(rec dbmodels.Request) RequestView {
	result := RequestView{
		ID:            rec.ID,
		Kind:          rec.Kind,
		Type:          rec.Type,
		Title:         rec.Title,
		Description:   rec.Description,
		Priority:      rec.Priority,
		Status:        rec.Status,
		DateFrom:      formatDate(rec.DateFrom),
		DateTo:        formatDate(rec.DateTo),
		DueDate:       formatDate(rec.DueDate),
		Paid:          rec.Paid,
		Comment:       rec.Comment,
		Employee:      usersapimodels.UserConvertPtr(rec.Employee),
		Manager:       usersapimodels.UserConvertPtr(rec.Manager),
		Substitute:    usersapimodels.UserConvertPtr(rec.Substitute),
		DecisionCount: len(rec.Decisions),
		CreatedAt:     rec.CreatedAt,
	}
	for _, decision := range rec.Decisions {
		result.Decisions = append(result.Decisions, DecisionConvert(decision))
	}
	for _, attachment := range rec.Attachments {
		result.Attachments = append(result.Attachments, AttachmentView{
			ID:       attachment.ID,
			FileName: attachment.FileName,
			Size:     attachment.Size,
		})
	}
	return result
}
