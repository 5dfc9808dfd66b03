package database

import (
	"fmt"
	"log"
	"sdet_prep_backend/internal/config"
	"sdet_prep_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.EntitlementState{},
		&model.InterviewQuestion{},
		&model.Recording{},
		&model.PracticeSession{},
		&model.TopicProgress{},
		&model.AnswerTemplate{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedQuestionBank(db)
	seedAnswerTemplates(db)

	return db, nil
}

// seedQuestionBank inserts a starter set of interview questions when the
// table is empty, one row per (topic, question).
func seedQuestionBank(db *gorm.DB) {
	var count int64
	db.Model(&model.InterviewQuestion{}).Count(&count)
	if count > 0 {
		return
	}

	defaults := map[string][]string{
		"Java": {
			"What is inheritance?",
			"What is polymorphism?",
			"Explain the difference between an interface and an abstract class.",
			"How does garbage collection work in Java?",
		},
		"Selenium": {
			"What is an explicit wait and when would you use one?",
			"How do you handle a stale element reference exception?",
			"Explain the Page Object Model.",
		},
		"SQL": {
			"What is the difference between an INNER JOIN and a LEFT JOIN?",
			"How would you find duplicate rows in a table?",
		},
		"Git": {
			"What is the difference between merge and rebase?",
			"How do you undo a commit that has already been pushed?",
		},
		"API": {
			"What makes an API RESTful?",
			"How do you test an API endpoint that requires authentication?",
		},
		"CI/CD": {
			"What stages would you include in a test automation pipeline?",
			"How do you deal with flaky tests in CI?",
		},
	}

	for topic, questions := range defaults {
		for _, q := range questions {
			db.Create(&model.InterviewQuestion{Topic: topic, Text: q})
		}
	}
}

// seedAnswerTemplates inserts the curated model-answer templates when the
// table is empty.
func seedAnswerTemplates(db *gorm.DB) {
	var count int64
	db.Model(&model.AnswerTemplate{}).Count(&count)
	if count > 0 {
		return
	}

	templates := []model.AnswerTemplate{
		{
			Topic:    "Java",
			Question: "What is inheritance?",
			Template: "Inheritance is a fundamental OOP concept that allows a class to inherit properties and methods from another class. Cover the extends keyword, the types of inheritance, method overriding and the super keyword, and close with a short code example.",
			KeyPoints: []string{
				"Mention 'extends' keyword",
				"Explain types of inheritance",
				"Discuss method overriding",
				"Include practical example",
			},
			CommonMistakes: []string{
				"Confusing inheritance with interfaces",
				"Not mentioning access modifiers",
				"Forgetting to discuss 'super' keyword",
			},
			Tips: []string{
				"Start with a clear definition",
				"Use real-world examples",
				"Mention practical applications",
			},
		},
		{
			Topic:    "Selenium",
			Question: "Explain the Page Object Model.",
			Template: "The Page Object Model is a design pattern that wraps each page of the application under test in its own class, exposing the page's actions as methods and keeping locators out of the test code.",
			KeyPoints: []string{
				"Separation of locators and test logic",
				"One class per page or component",
				"Methods return page objects for chaining",
			},
			CommonMistakes: []string{
				"Putting assertions inside page objects",
				"Duplicating locators across classes",
			},
			Tips: []string{
				"Mention maintainability as the main benefit",
				"Give an example of a login page object",
			},
		},
	}

	for _, t := range templates {
		db.Create(&t)
	}
}
