package requeststore

import (
	"strings"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"hr-requests-backend/models"
	requestapimodels "hr-requests-backend/models/api/request"
	dbmodels "hr-requests-backend/models/db"
)

type Provider interface {
	Create(rec dbmodels.Request) (id string, err error)
	GetByID(id string) (rec *dbmodels.Request, err error)
	GetByIDForUpdate(id string) (rec *dbmodels.Request, err error)
	Update(id string, updMap map[string]interface{}) error
	Delete(id string) error
	ListPending(filter requestapimodels.PendingFilter) (list []dbmodels.Request, err error)
	ListByUser(userID string, filter requestapimodels.UserListFilter) (list []dbmodels.Request, err error)
	CountByUser(userID string, filter requestapimodels.UserListFilter) (count int64, err error)
	ListByKind(kind models.RequestKind) (list []dbmodels.Request, err error)
}

func NewInstance(DB *gorm.DB) Provider {
	return &impl{
		db: DB,
	}
}

type impl struct {
	db *gorm.DB
}

func (i impl) Create(rec dbmodels.Request) (id string, err error) {
	err = i.db.Omit(clause.Associations).
		Save(&rec).
		Error
	if err != nil {
		return "", err
	}
	return rec.ID, nil
}

func (i impl) GetByID(id string) (*dbmodels.Request, error) {
	rec := dbmodels.Request{}
	err := i.db.
		Model(&dbmodels.Request{}).
		Where("id = ?", id).
		Preload(clause.Associations).
		Preload("Decisions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("decisions.created_at desc")
		}).
		Preload("Decisions.Actor").
		First(&rec).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

// GetByIDForUpdate читает заявку с блокировкой строки до конца транзакции.
// Блокировка поддерживается только в postgres.
func (i impl) GetByIDForUpdate(id string) (*dbmodels.Request, error) {
	rec := dbmodels.Request{}
	tx := i.db.
		Model(&dbmodels.Request{}).
		Where("id = ?", id)
	if i.db.Dialector.Name() == "postgres" {
		tx = tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	err := tx.First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rec, nil
}

func (i impl) Update(id string, updMap map[string]interface{}) error {
	if len(updMap) == 0 {
		return nil
	}
	tx := i.db.
		Model(&dbmodels.Request{}).
		Where("id = ?", id).
		Updates(updMap)
	if tx.RowsAffected == 0 {
		return errors.New("запись не найдена")
	}
	err := tx.Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) Delete(id string) error {
	rec := dbmodels.Request{
		BaseModel: dbmodels.BaseModel{ID: id},
	}
	err := i.db.
		Delete(&rec).
		Error
	if err != nil {
		return err
	}
	return nil
}

func (i impl) ListPending(filter requestapimodels.PendingFilter) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	tx := i.db.
		Model(&dbmodels.Request{}).
		Where("status = ?", models.RequestStatusPending)
	i.addFilter(tx, filter)
	err = tx.
		Order("created_at desc").
		Preload("Employee").
		Preload("Manager").
		Preload("Substitute").
		Preload("Decisions").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) ListByUser(userID string, filter requestapimodels.UserListFilter) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	tx := i.db.
		Model(&dbmodels.Request{}).
		Where("employee_id = ?", userID)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Kind != "" {
		tx = tx.Where("kind = ?", filter.Kind)
	}
	page, limit := filter.GetPage()
	tx = tx.
		Order("created_at desc").
		Offset((page - 1) * limit).
		Limit(limit)
	err = tx.
		Preload("Manager").
		Preload("Substitute").
		Preload("Decisions", func(tx *gorm.DB) *gorm.DB {
			return tx.Order("decisions.created_at desc")
		}).
		Preload("Decisions.Actor").
		Find(&list).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) CountByUser(userID string, filter requestapimodels.UserListFilter) (count int64, err error) {
	var rowCount int64
	tx := i.db.
		Model(&dbmodels.Request{}).
		Where("employee_id = ?", userID)
	if filter.Status != "" {
		tx = tx.Where("status = ?", filter.Status)
	}
	if filter.Kind != "" {
		tx = tx.Where("kind = ?", filter.Kind)
	}
	err = tx.Count(&rowCount).Error
	if err != nil {
		return 0, errors.Wrap(err, "ошибка получения общего количества заявок")
	}
	return rowCount, nil
}

func (i impl) ListByKind(kind models.RequestKind) (list []dbmodels.Request, err error) {
	list = []dbmodels.Request{}
	tx := i.db.
		Model(&dbmodels.Request{}).
		Order("created_at desc").
		Preload("Employee").
		Preload("Manager").
		Preload("Substitute")
	if kind != "" {
		tx = tx.Where("kind = ?", kind)
	}
	err = tx.Find(&list).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return list, nil
}

func (i impl) addFilter(tx *gorm.DB, filter requestapimodels.PendingFilter) {
	if filter.ManagerID != "" {
		tx = tx.Where("manager_id = ?", filter.ManagerID)
	}
	if filter.Kind != "" {
		tx = tx.Where("kind = ?", filter.Kind)
	}
	if filter.Type != "" {
		tx = tx.Where("type = ?", filter.Type)
	}
	if filter.Priority != "" {
		tx = tx.Where("priority = ?", filter.Priority)
	}
	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		tx.Where("LOWER(title) like ? or LOWER(description) like ?", search, search)
	}
}
