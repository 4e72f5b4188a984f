package requesthandler

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"hr-requests-backend/db"
	activityloghandler "hr-requests-backend/lib/activity-log"
	notifyhandler "hr-requests-backend/lib/notify"
	usersstore "hr-requests-backend/lib/users/store"
	"hr-requests-backend/models"
	requestapimodels "hr-requests-backend/models/api/request"
	dbmodels "hr-requests-backend/models/db"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	testDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := testDB.DB()
	require.NoError(t, err)
	// in-memory база существует в рамках одного соединения
	sqlDB.SetMaxOpenConns(1)
	err = testDB.AutoMigrate(
		&dbmodels.User{},
		&dbmodels.Request{},
		&dbmodels.Decision{},
		&dbmodels.ActivityLog{},
		&dbmodels.Subscription{},
		&dbmodels.RequestAttachment{},
	)
	require.NoError(t, err)
	db.DB = testDB

	activityloghandler.NewHandler()
	notifyhandler.NewHandler()
	NewHandler()
}

func createUser(t *testing.T, name string, role models.UserRole) *dbmodels.User {
	t.Helper()
	store := usersstore.NewInstance(db.DB)
	id, err := store.Create(dbmodels.User{
		Email:    fmt.Sprintf("%s@example.com", name),
		Name:     name,
		Password: "x",
		Role:     role,
	})
	require.NoError(t, err)
	user, err := store.GetByID(id)
	require.NoError(t, err)
	require.NotNil(t, user)
	return user
}

func createTask(t *testing.T, employeeID, managerID string) string {
	t.Helper()
	id, err := Instance.Create(employeeID, requestapimodels.RequestCreateData{
		Type:      models.RequestTypeEquipment,
		Title:     "Ноутбук для нового сотрудника",
		Priority:  models.RequestPriorityMedium,
		ManagerID: managerID,
	})
	require.NoError(t, err)
	return id
}

func TestDecideApproveAndRepeat(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)

	id := createTask(t, employee.ID, manager.ID)

	view, err := Instance.Decide(id, manager.ID, models.DecisionActionApproved, "ок")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, view.Status)
	require.Len(t, view.Decisions, 1)
	assert.Equal(t, models.DecisionActionApproved, view.Decisions[0].Action)

	view, err = Instance.GetByID(id, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, view.Status)
	require.Len(t, view.Decisions, 1)
	assert.Equal(t, models.DecisionActionApproved, view.Decisions[0].Action)

	// повторное решение по завершенной заявке
	_, err = Instance.Decide(id, manager.ID, models.DecisionActionDeclined, "")
	assert.ErrorIs(t, err, models.ErrAlreadyDecided)

	view, err = Instance.GetByID(id, manager.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, view.Status)
	assert.Len(t, view.Decisions, 1)

	decisions, err := Instance.ListDecisions(id, employee.ID)
	require.NoError(t, err)
	require.Len(t, decisions, 1)
	assert.Equal(t, models.DecisionActionApproved, decisions[0].Action)

	outsider := createUser(t, "outsider", models.UserRoleEmployee)
	_, err = Instance.ListDecisions(id, outsider.ID)
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
}

func TestDecideRequiresManager(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	other := createUser(t, "other", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)

	id := createTask(t, employee.ID, manager.ID)

	_, err := Instance.Decide(id, other.ID, models.DecisionActionApproved, "")
	assert.ErrorIs(t, err, models.ErrNotAuthorized)
}

func TestForwardKeepsPending(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)
	secondManager := createUser(t, "second-manager", models.UserRoleManager)

	id := createTask(t, employee.ID, manager.ID)

	view, err := Instance.Forward(id, manager.ID, requestapimodels.ForwardData{
		ForwardToID: secondManager.ID,
		Comment:     "не моя зона",
	})
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, view.Status)
	require.NotNil(t, view.Manager)
	assert.Equal(t, secondManager.ID, view.Manager.ID)
	require.Len(t, view.Decisions, 1)
	assert.Equal(t, models.DecisionActionForwarded, view.Decisions[0].Action)

	view, err = Instance.GetByID(id, secondManager.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, view.Status)
	require.Len(t, view.Decisions, 1)

	// новый руководитель может принять решение
	view, err = Instance.Decide(id, secondManager.ID, models.DecisionActionDeclined, "")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusDeclined, view.Status)
	assert.Len(t, view.Decisions, 2)
}

func TestDeleteKeepsActivityLog(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)

	id := createTask(t, employee.ID, manager.ID)

	err := Instance.Delete(id, employee.ID)
	require.NoError(t, err)

	_, err = Instance.GetByID(id, manager.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	list, err := activityloghandler.Instance.ListForRequest(id)
	require.NoError(t, err)
	require.NotEmpty(t, list)
	actions := make([]models.ActivityAction, 0, len(list))
	for _, item := range list {
		actions = append(actions, item.Action)
	}
	assert.Contains(t, actions, models.ActivityCancelRequest)
	assert.Contains(t, actions, models.ActivityCreateRequest)
}

func TestCreateAbsenceLeadTime(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)

	format := func(offset int) string {
		return time.Now().Add(time.Duration(offset) * 24 * time.Hour).Format(requestapimodels.DateFormat)
	}

	// плановый отпуск на завтра двухдневный - срок подачи нарушен
	_, err := Instance.CreateAbsence(employee.ID, requestapimodels.AbsenceCreateData{
		Type:      models.RequestTypePlanned,
		DateFrom:  format(1),
		DateTo:    format(2),
		ManagerID: manager.ID,
	})
	require.Error(t, err)
	assert.True(t, models.IsValidationError(err))

	// больничный задним числом допустим
	id, err := Instance.CreateAbsence(employee.ID, requestapimodels.AbsenceCreateData{
		Type:      models.RequestTypeSickLeave,
		DateFrom:  format(-3),
		DateTo:    format(-1),
		ManagerID: manager.ID,
		Comment:   "ОРВИ",
	})
	require.NoError(t, err)

	view, err := Instance.GetByID(id, employee.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestKindAbsence, view.Kind)
	assert.Equal(t, models.RequestStatusPending, view.Status)
}

func TestListForUserPagination(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)

	for i := 0; i < 25; i++ {
		createTask(t, employee.ID, manager.ID)
	}

	filter := requestapimodels.UserListFilter{}
	filter.Page = 2
	filter.Limit = 20
	list, rowCount, err := Instance.ListForUser(employee.ID, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(25), rowCount)
	assert.Len(t, list, 5)

	// чужие заявки в список не попадают
	list, rowCount, err = Instance.ListForUser(manager.ID, requestapimodels.UserListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(0), rowCount)
	assert.Empty(t, list)
}

func TestListPendingFilter(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)
	secondManager := createUser(t, "second-manager", models.UserRoleManager)

	first := createTask(t, employee.ID, manager.ID)
	second := createTask(t, employee.ID, secondManager.ID)

	_, err := Instance.Decide(second, secondManager.ID, models.DecisionActionApproved, "")
	require.NoError(t, err)

	list, err := Instance.ListPending(requestapimodels.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, first, list[0].ID)

	list, err = Instance.ListPending(requestapimodels.PendingFilter{ManagerID: secondManager.ID})
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListPendingDecisionCount(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)
	secondManager := createUser(t, "second-manager", models.UserRoleManager)

	id := createTask(t, employee.ID, manager.ID)

	list, err := Instance.ListPending(requestapimodels.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 0, list[0].DecisionCount)

	_, err = Instance.Forward(id, manager.ID, requestapimodels.ForwardData{ForwardToID: secondManager.ID})
	require.NoError(t, err)

	list, err = Instance.ListPending(requestapimodels.PendingFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 1, list[0].DecisionCount)
}

func TestDecideSurvivesAuditFailure(t *testing.T) {
	setupTestDB(t)
	employee := createUser(t, "employee", models.UserRoleEmployee)
	manager := createUser(t, "manager", models.UserRoleManager)

	id := createTask(t, employee.ID, manager.ID)

	// журнал недоступен, заявка все равно должна согласоваться
	require.NoError(t, db.DB.Migrator().DropTable(&dbmodels.ActivityLog{}))
	droppedBefore := activityloghandler.DroppedCount.Load()

	view, err := Instance.Decide(id, manager.ID, models.DecisionActionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, view.Status)
	assert.Equal(t, droppedBefore+1, activityloghandler.DroppedCount.Load())
}
