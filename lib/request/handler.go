package requesthandler

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"hr-requests-backend/db"
	activityloghandler "hr-requests-backend/lib/activity-log"
	decisionengine "hr-requests-backend/lib/decision"
	decisionstore "hr-requests-backend/lib/decision/store"
	notifyhandler "hr-requests-backend/lib/notify"
	requeststore "hr-requests-backend/lib/request/store"
	usersstore "hr-requests-backend/lib/users/store"
	"hr-requests-backend/models"
	requestapimodels "hr-requests-backend/models/api/request"
	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	Create(employeeID string, data requestapimodels.RequestCreateData) (id string, err error)
	CreateAbsence(employeeID string, data requestapimodels.AbsenceCreateData) (id string, err error)
	ValidateAbsence(data requestapimodels.AbsenceValidateData) error
	GetByID(id, actorID string) (view requestapimodels.RequestView, err error)
	ListDecisions(id, actorID string) (list []requestapimodels.DecisionView, err error)
	Decide(id, actorID string, action models.DecisionAction, comment string) (view requestapimodels.RequestView, err error)
	Forward(id, actorID string, data requestapimodels.ForwardData) (view requestapimodels.RequestView, err error)
	Update(id, actorID string, data requestapimodels.RequestEditData) error
	Delete(id, actorID string) error
	ListPending(filter requestapimodels.PendingFilter) (list []requestapimodels.RequestView, err error)
	ListForUser(userID string, filter requestapimodels.UserListFilter) (list []requestapimodels.RequestView, rowCount int64, err error)
	ListAbsences() (list []requestapimodels.AbsenceView, err error)
}

var Instance Provider

func NewHandler() {
	Instance = impl{
		store:     requeststore.NewInstance(db.DB),
		userStore: usersstore.NewInstance(db.DB),
	}
}

type impl struct {
	store     requeststore.Provider
	userStore usersstore.Provider
}

func (i impl) Create(employeeID string, data requestapimodels.RequestCreateData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	employee, manager, err := i.resolveUsers(employeeID, data.ManagerID)
	if err != nil {
		return "", err
	}
	rec := dbmodels.Request{
		Kind:        models.RequestKindTask,
		Type:        data.Type,
		Title:       data.Title,
		Description: data.Description,
		Priority:    data.Priority,
		Status:      models.RequestStatusPending,
		EmployeeID:  employee.ID,
		ManagerID:   manager.ID,
	}
	if data.DueDate != "" {
		dueDate, _ := time.Parse(requestapimodels.DateFormat, data.DueDate)
		rec.DueDate = &dueDate
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		activityloghandler.NewHandlerWithTx(tx).
			Append(employeeID, models.ActivityCreateRequest, id, fmt.Sprintf("Заявка: %v", data.Title))
		return nil
	})
	if err != nil {
		return "", err
	}
	rec.ID = id
	notifyhandler.Instance.RequestCreated(rec)
	return id, nil
}

func (i impl) CreateAbsence(employeeID string, data requestapimodels.AbsenceCreateData) (id string, err error) {
	if err = data.Validate(); err != nil {
		return "", err
	}
	dates, err := data.Dates()
	if err != nil {
		return "", err
	}
	var substituteID *string
	if data.SubstituteID != "" {
		substituteID = &data.SubstituteID
	}
	err = decisionengine.ValidateSubmission(data.Type, dates.From, dates.To, substituteID, time.Now())
	if err != nil {
		return "", err
	}
	employee, manager, err := i.resolveUsers(employeeID, data.ManagerID)
	if err != nil {
		return "", err
	}
	if substituteID != nil {
		substitute, sErr := i.userStore.GetByID(*substituteID)
		if sErr != nil {
			return "", sErr
		}
		if substitute == nil {
			return "", models.ErrNotFound
		}
	}
	rec := dbmodels.Request{
		Kind:         models.RequestKindAbsence,
		Type:         data.Type,
		Status:       models.RequestStatusPending,
		DateFrom:     &dates.From,
		DateTo:       &dates.To,
		Paid:         data.Paid,
		Comment:      data.Comment,
		EmployeeID:   employee.ID,
		ManagerID:    manager.ID,
		SubstituteID: substituteID,
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		id, err = store.Create(rec)
		if err != nil {
			return err
		}
		details := fmt.Sprintf("%v: %v - %v", data.Type.ToHuman(), data.DateFrom, data.DateTo)
		activityloghandler.NewHandlerWithTx(tx).
			Append(employeeID, models.ActivityCreateRequest, id, details)
		return nil
	})
	if err != nil {
		return "", err
	}
	rec.ID = id
	notifyhandler.Instance.RequestCreated(rec)
	return id, nil
}

func (i impl) ValidateAbsence(data requestapimodels.AbsenceValidateData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	dates, err := data.Dates()
	if err != nil {
		return err
	}
	var substituteID *string
	if data.SubstituteID != "" {
		substituteID = &data.SubstituteID
	}
	return decisionengine.ValidateSubmission(data.Type, dates.From, dates.To, substituteID, time.Now())
}

func (i impl) GetByID(id, actorID string) (requestapimodels.RequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	if rec == nil {
		return requestapimodels.RequestView{}, models.ErrNotFound
	}
	actor, err := i.getActor(actorID)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	if !canView(rec, actor) {
		return requestapimodels.RequestView{}, models.ErrNotAuthorized
	}
	return requestapimodels.RequestConvert(*rec), nil
}

func (i impl) ListDecisions(id, actorID string) ([]requestapimodels.DecisionView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, models.ErrNotFound
	}
	actor, err := i.getActor(actorID)
	if err != nil {
		return nil, err
	}
	if !canView(rec, actor) {
		return nil, models.ErrNotAuthorized
	}
	decisions, err := decisionstore.NewInstance(db.DB).ListByRequest(id)
	if err != nil {
		return nil, err
	}
	list := make([]requestapimodels.DecisionView, 0, len(decisions))
	for _, decision := range decisions {
		list = append(list, requestapimodels.DecisionConvert(decision))
	}
	return list, nil
}

func (i impl) Decide(id, actorID string, action models.DecisionAction, comment string) (requestapimodels.RequestView, error) {
	if err := action.Validate(); err != nil {
		return requestapimodels.RequestView{}, err
	}
	if action == models.DecisionActionForwarded {
		return requestapimodels.RequestView{}, models.NewValidationError("передача заявки выполняется отдельной операцией")
	}
	actor, err := i.getActor(actorID)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	var rec *dbmodels.Request
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err = store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.ErrNotFound
		}
		if err = decisionengine.CanDecide(rec, actor); err != nil {
			return err
		}
		newStatus, err := decisionengine.NextStatus(rec.Status, action)
		if err != nil {
			return err
		}
		_, err = decisionstore.NewInstance(tx).Create(dbmodels.Decision{
			RequestID: rec.ID,
			ActorID:   actor.ID,
			Action:    action,
			Comment:   comment,
		})
		if err != nil {
			return err
		}
		err = store.Update(rec.ID, map[string]interface{}{"status": newStatus})
		if err != nil {
			return err
		}
		rec.Status = newStatus
		activityloghandler.NewHandlerWithTx(tx).
			Append(actorID, activityByAction(action), rec.ID, comment)
		return nil
	})
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	notifyhandler.Instance.RequestDecided(*rec, actor.Name)
	return i.updatedView(id)
}

// updatedView перечитывает заявку с историей решений после фиксации транзакции.
func (i impl) updatedView(id string) (requestapimodels.RequestView, error) {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	if rec == nil {
		return requestapimodels.RequestView{}, models.ErrNotFound
	}
	return requestapimodels.RequestConvert(*rec), nil
}

func (i impl) Forward(id, actorID string, data requestapimodels.ForwardData) (requestapimodels.RequestView, error) {
	if err := data.Validate(); err != nil {
		return requestapimodels.RequestView{}, err
	}
	actor, err := i.getActor(actorID)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	target, err := i.userStore.GetByID(data.ForwardToID)
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	if target == nil {
		return requestapimodels.RequestView{}, models.ErrNotFound
	}
	if !target.IsManager() {
		return requestapimodels.RequestView{}, models.NewValidationError("получатель заявки не является руководителем")
	}
	var rec *dbmodels.Request
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		store := requeststore.NewInstance(tx)
		rec, err = store.GetByIDForUpdate(id)
		if err != nil {
			return err
		}
		if rec == nil {
			return models.ErrNotFound
		}
		if err = decisionengine.CanDecide(rec, actor); err != nil {
			return err
		}
		if rec.ManagerID == target.ID {
			return models.NewValidationError("заявка уже назначена этому руководителю")
		}
		_, err = decisionstore.NewInstance(tx).Create(dbmodels.Decision{
			RequestID: rec.ID,
			ActorID:   actor.ID,
			Action:    models.DecisionActionForwarded,
			Comment:   data.Comment,
		})
		if err != nil {
			return err
		}
		err = store.Update(rec.ID, map[string]interface{}{"manager_id": target.ID})
		if err != nil {
			return err
		}
		rec.ManagerID = target.ID
		details := fmt.Sprintf("Передана руководителю %v", target.Name)
		activityloghandler.NewHandlerWithTx(tx).
			Append(actorID, models.ActivityForwardRequest, rec.ID, details)
		return nil
	})
	if err != nil {
		return requestapimodels.RequestView{}, err
	}
	notifyhandler.Instance.RequestForwarded(*rec, target.ID, actor.Name)
	return i.updatedView(id)
}

func (i impl) Update(id, actorID string, data requestapimodels.RequestEditData) error {
	if err := data.Validate(); err != nil {
		return err
	}
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	actor, err := i.getActor(actorID)
	if err != nil {
		return err
	}
	if !canEdit(rec, actor) {
		return models.ErrNotAuthorized
	}
	// задачи правятся только до решения, периоды отсутствий можно уточнять и после
	if rec.Kind == models.RequestKindTask && rec.Status.IsFinal() {
		return models.ErrAlreadyDecided
	}
	updMap, err := buildUpdMap(rec, data)
	if err != nil {
		return err
	}
	if len(updMap) == 0 {
		return nil
	}
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		err := requeststore.NewInstance(tx).Update(rec.ID, updMap)
		if err != nil {
			return err
		}
		activityloghandler.NewHandlerWithTx(tx).
			Append(actorID, models.ActivityUpdateRequest, rec.ID, "")
		return nil
	})
	return err
}

func (i impl) Delete(id, actorID string) error {
	rec, err := i.store.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return models.ErrNotFound
	}
	actor, err := i.getActor(actorID)
	if err != nil {
		return err
	}
	if !canEdit(rec, actor) {
		return models.ErrNotAuthorized
	}
	return db.DB.Transaction(func(tx *gorm.DB) error {
		// запись об отмене делается до удаления, журнал переживает заявку
		activityloghandler.NewHandlerWithTx(tx).
			Append(actorID, models.ActivityCancelRequest, rec.ID, fmt.Sprintf("Заявка: %v", requestTitle(*rec)))
		return requeststore.NewInstance(tx).Delete(rec.ID)
	})
}

func (i impl) ListPending(filter requestapimodels.PendingFilter) ([]requestapimodels.RequestView, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	recs, err := i.store.ListPending(filter)
	if err != nil {
		return nil, err
	}
	list := make([]requestapimodels.RequestView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, requestapimodels.RequestConvert(rec))
	}
	return list, nil
}

func (i impl) ListForUser(userID string, filter requestapimodels.UserListFilter) ([]requestapimodels.RequestView, int64, error) {
	if err := filter.Validate(); err != nil {
		return nil, 0, err
	}
	rowCount, err := i.store.CountByUser(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	recs, err := i.store.ListByUser(userID, filter)
	if err != nil {
		return nil, 0, err
	}
	list := make([]requestapimodels.RequestView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, requestapimodels.RequestConvert(rec))
	}
	return list, rowCount, nil
}

func (i impl) ListAbsences() ([]requestapimodels.AbsenceView, error) {
	recs, err := i.store.ListByKind(models.RequestKindAbsence)
	if err != nil {
		return nil, err
	}
	list := make([]requestapimodels.AbsenceView, 0, len(recs))
	for _, rec := range recs {
		list = append(list, requestapimodels.AbsenceConvert(rec))
	}
	return list, nil
}

func (i impl) resolveUsers(employeeID, managerID string) (employee, manager *dbmodels.User, err error) {
	employee, err = i.userStore.GetByID(employeeID)
	if err != nil {
		return nil, nil, err
	}
	if employee == nil {
		return nil, nil, models.ErrNotFound
	}
	manager, err = i.userStore.GetByID(managerID)
	if err != nil {
		return nil, nil, err
	}
	if manager == nil {
		return nil, nil, models.ErrNotFound
	}
	return employee, manager, nil
}

func (i impl) getActor(actorID string) (*dbmodels.User, error) {
	actor, err := i.userStore.GetByID(actorID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, models.ErrNotFound
	}
	return actor, nil
}

func canView(rec *dbmodels.Request, actor *dbmodels.User) bool {
	if actor.IsManager() {
		return true
	}
	if rec.EmployeeID == actor.ID || rec.ManagerID == actor.ID {
		return true
	}
	if rec.SubstituteID != nil && *rec.SubstituteID == actor.ID {
		return true
	}
	return false
}

func canEdit(rec *dbmodels.Request, actor *dbmodels.User) bool {
	return rec.EmployeeID == actor.ID || rec.ManagerID == actor.ID || actor.IsManager()
}

func buildUpdMap(rec *dbmodels.Request, data requestapimodels.RequestEditData) (map[string]interface{}, error) {
	updMap := map[string]interface{}{}
	if data.Title != nil {
		updMap["title"] = *data.Title
	}
	if data.Description != nil {
		updMap["description"] = *data.Description
	}
	if data.Priority != nil {
		updMap["priority"] = *data.Priority
	}
	if data.Comment != nil {
		updMap["comment"] = *data.Comment
	}
	if data.Paid != nil {
		updMap["paid"] = *data.Paid
	}
	if data.SubstituteID != nil {
		updMap["substitute_id"] = *data.SubstituteID
	}
	if data.DueDate != nil && *data.DueDate != "" {
		dueDate, _ := time.Parse(requestapimodels.DateFormat, *data.DueDate)
		updMap["due_date"] = dueDate
	}
	dateFrom := rec.DateFrom
	dateTo := rec.DateTo
	if data.DateFrom != nil && *data.DateFrom != "" {
		parsed, _ := time.Parse(requestapimodels.DateFormat, *data.DateFrom)
		dateFrom = &parsed
		updMap["date_from"] = parsed
	}
	if data.DateTo != nil && *data.DateTo != "" {
		parsed, _ := time.Parse(requestapimodels.DateFormat, *data.DateTo)
		dateTo = &parsed
		updMap["date_to"] = parsed
	}
	if dateFrom != nil && dateTo != nil && dateTo.Before(*dateFrom) {
		return nil, models.NewValidationError("дата окончания раньше даты начала")
	}
	return updMap, nil
}

func activityByAction(action models.DecisionAction) models.ActivityAction {
	if action == models.DecisionActionApproved {
		return models.ActivityApproveRequest
	}
	return models.ActivityRejectRequest
}

func requestTitle(rec dbmodels.Request) string {
	if rec.Title != "" {
		return rec.Title
	}
	return rec.Type.ToHuman()
}
