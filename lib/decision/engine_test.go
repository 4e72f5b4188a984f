package decisionengine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hr-requests-backend/models"
	dbmodels "hr-requests-backend/models/db"
)

func day(now time.Time, offset int) time.Time {
	return now.Add(time.Duration(offset) * 24 * time.Hour)
}

func TestValidateSubmission_LeadTime(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	substitute := "sub-1"

	cases := []struct {
		name       string
		from, to   time.Time
		substitute *string
		wantErr    bool
	}{
		{"однодневный за сутки", day(now, 1), day(now, 1), nil, false},
		{"однодневный сегодня", now.Add(2 * time.Hour), now.Add(2 * time.Hour), nil, true},
		{"три дня за неделю", day(now, 7), day(now, 9), nil, false},
		{"три дня за шесть дней", day(now, 6), day(now, 8), nil, true},
		{"пять дней за неделю", day(now, 7), day(now, 11), &substitute, false},
		{"шесть дней за две недели", day(now, 14), day(now, 19), &substitute, false},
		{"шесть дней за тринадцать дней", day(now, 13), day(now, 18), &substitute, true},
		{"четыре дня без замещающего", day(now, 7), day(now, 10), nil, true},
		{"четыре дня с замещающим", day(now, 7), day(now, 10), &substitute, false},
		{"окончание раньше начала", day(now, 10), day(now, 7), nil, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateSubmission(models.RequestTypePlanned, tc.from, tc.to, tc.substitute, now)
			if tc.wantErr {
				require.Error(t, err)
				assert.True(t, models.IsValidationError(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateSubmission_SickLeaveSkipsLeadTime(t *testing.T) {
	now := time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)
	// больничный задним числом допустим
	err := ValidateSubmission(models.RequestTypeSickLeave, day(now, -3), day(now, -1), nil, now)
	require.NoError(t, err)
}

func TestDurationDays(t *testing.T) {
	now := time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, DurationDays(now, now))
	assert.Equal(t, 2, DurationDays(now, day(now, 1)))
	assert.Equal(t, 6, DurationDays(now, day(now, 5)))
}

func TestCanDecide(t *testing.T) {
	manager := &dbmodels.User{Role: models.UserRoleManager}
	manager.ID = "m-1"
	otherManager := &dbmodels.User{Role: models.UserRoleManager}
	otherManager.ID = "m-2"
	employee := &dbmodels.User{Role: models.UserRoleEmployee}
	employee.ID = "e-1"

	req := &dbmodels.Request{Status: models.RequestStatusPending, ManagerID: "m-1"}

	require.NoError(t, CanDecide(req, manager))
	require.NoError(t, CanDecide(req, otherManager))
	assert.ErrorIs(t, CanDecide(req, employee), models.ErrNotAuthorized)

	req.Status = models.RequestStatusApproved
	assert.ErrorIs(t, CanDecide(req, manager), models.ErrAlreadyDecided)
}

func TestNextStatus(t *testing.T) {
	next, err := NextStatus(models.RequestStatusPending, models.DecisionActionApproved)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusApproved, next)

	next, err = NextStatus(models.RequestStatusPending, models.DecisionActionDeclined)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusDeclined, next)

	next, err = NextStatus(models.RequestStatusPending, models.DecisionActionForwarded)
	require.NoError(t, err)
	assert.Equal(t, models.RequestStatusPending, next)

	_, err = NextStatus(models.RequestStatusApproved, models.DecisionActionDeclined)
	assert.ErrorIs(t, err, models.ErrAlreadyDecided)
}
