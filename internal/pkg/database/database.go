package database

import (
	"github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/brokerdesk/backend/internal/model"
)

func InitDB(dbType, dsn string) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch dbType {
	case "mysql":
		dialector = mysql.Open(dsn)
	case "postgres":
		dialector = postgres.Open(dsn)
	default:
		// 使用 github.com/glebarez/sqlite 驱动
		dialector = sqlite.Open(dsn)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(
		&model.Tenant{}, &model.Profile{},
		&model.InsurancePlan{}, &model.Case{}, &model.Inquiry{}, &model.AssessmentQuestion{},
		&model.Testimonial{}, &model.KnowledgeItem{},
	); err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(
		&model.Customer{}, &model.CustomerInteraction{}, &model.CustomerRelationship{}, &model.Contract{},
	); err != nil {
		return nil, err
	}
	return db, nil
}
