package dbmodels

// Subscription - направленная связь "наблюдатель - наблюдаемый".
type Subscription struct {
	BaseModel
	WatcherID string `gorm:"type:varchar(36);uniqueIndex:idx_watcher_watched"`
	WatchedID string `gorm:"type:varchar(36);uniqueIndex:idx_watcher_watched"`
	Watched   *User  `gorm:"foreignKey:WatchedID"`
}
