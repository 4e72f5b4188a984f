package models

type RequestKind string

const (
	RequestKindTask    RequestKind = "TASK"
	RequestKindAbsence RequestKind = "ABSENCE"
)

var kindHumanName = map[RequestKind]string{
	RequestKindTask:    "Задача",
	RequestKindAbsence: "Отсутствие",
}

func (k RequestKind) ToHuman() string {
	if name, ok := kindHumanName[k]; ok {
		return name
	}
	return string(k)
}

func (k RequestKind) Validate() error {
	switch k {
	case RequestKindTask, RequestKindAbsence:
		return nil
	}
	return NewValidationError("неизвестный вид заявки: %v", k)
}

type RequestType string

const (
	// виды задач
	RequestTypeVacation  RequestType = "VACATION"
	RequestTypeEquipment RequestType = "EQUIPMENT"
	RequestTypeTravel    RequestType = "TRAVEL"
	// виды отсутствий
	RequestTypeSickLeave RequestType = "SICK_LEAVE"
	RequestTypePlanned   RequestType = "PLANNED"
)

var typeHumanName = map[RequestType]string{
	RequestTypeVacation:  "Отпуск",
	RequestTypeEquipment: "Оборудование",
	RequestTypeTravel:    "Командировка",
	RequestTypeSickLeave: "Больничный",
	RequestTypePlanned:   "Плановое отсутствие",
}

func (t RequestType) ToHuman() string {
	if human, exist := typeHumanName[t]; exist {
		return human
	}
	return string(t)
}

func (t RequestType) Kind() RequestKind {
	switch t {
	case RequestTypeSickLeave, RequestTypePlanned:
		return RequestKindAbsence
	}
	return RequestKindTask
}

func (t RequestType) Validate() error {
	if _, exist := typeHumanName[t]; !exist {
		return NewValidationError("неизвестный тип заявки: %v", t)
	}
	return nil
}

type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "PENDING"
	RequestStatusApproved RequestStatus = "APPROVED"
	RequestStatusDeclined RequestStatus = "DECLINED"
)

var statusHumanName = map[RequestStatus]string{
	RequestStatusPending:  "На рассмотрении",
	RequestStatusApproved: "Согласована",
	RequestStatusDeclined: "Отклонена",
}

func (s RequestStatus) ToHuman() string {
	if human, exist := statusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// IsFinal - решение по заявке уже принято
func (s RequestStatus) IsFinal() bool {
	return s == RequestStatusApproved || s == RequestStatusDeclined
}

func (s RequestStatus) Validate() error {
	if _, exist := statusHumanName[s]; !exist {
		return NewValidationError("неизвестный статус заявки: %v", s)
	}
	return nil
}

type RequestPriority string

const (
	RequestPriorityLow    RequestPriority = "LOW"
	RequestPriorityMedium RequestPriority = "MEDIUM"
	RequestPriorityHigh   RequestPriority = "HIGH"
)

var priorityHumanName = map[RequestPriority]string{
	RequestPriorityLow:    "Низкий",
	RequestPriorityMedium: "Средний",
	RequestPriorityHigh:   "Высокий",
}

func (p RequestPriority) ToHuman() string {
	if human, exist := priorityHumanName[p]; exist {
		return human
	}
	return string(p)
}

func (p RequestPriority) Validate() error {
	if _, exist := priorityHumanName[p]; !exist {
		return NewValidationError("неизвестный приоритет: %v", p)
	}
	return nil
}

type DecisionAction string

const (
	DecisionActionApproved  DecisionAction = "APPROVED"
	DecisionActionDeclined  DecisionAction = "DECLINED"
	DecisionActionForwarded DecisionAction = "FORWARDED"
)

var actionHumanName = map[DecisionAction]string{
	DecisionActionApproved:  "Согласовано",
	DecisionActionDeclined:  "Отклонено",
	DecisionActionForwarded: "Передано другому руководителю",
}

func (a DecisionAction) ToHuman() string {
	if human, exist := actionHumanName[a]; exist {
		return human
	}
	return string(a)
}

func (a DecisionAction) Validate() error {
	if _, exist := actionHumanName[a]; !exist {
		return NewValidationError("неизвестное действие: %v", a)
	}
	return nil
}

type ActivityAction string

const (
	ActivityCreateRequest  ActivityAction = "CREATE_REQUEST"
	ActivityUpdateRequest  ActivityAction = "UPDATE_REQUEST"
	ActivityCancelRequest  ActivityAction = "CANCEL_REQUEST"
	ActivityApproveRequest ActivityAction = "APPROVE_REQUEST"
	ActivityRejectRequest  ActivityAction = "REJECT_REQUEST"
	ActivityForwardRequest ActivityAction = "FORWARD_REQUEST"
)
