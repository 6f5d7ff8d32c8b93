package models

// ModelRegistry lists every model handled by gorm AutoMigrate (--auto-migrate).
// Keep it in sync with the SQL migrations under db/migrations.
var ModelRegistry = []interface{}{
	&WaitlistEntry{},
	&AmbassadorApplication{},
}
