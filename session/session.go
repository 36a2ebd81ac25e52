// Package session persists calculator state between runs: the variables of
// the symbol table and the results history backing result(n), stored in a
// SQLite database.
package session

import (
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/soft_delete"

	"github.com/glebarez/sqlite"
)

// Variable is one persisted symbol-table entry. Values are stored as the
// operand's kind name and display text and reconstructed with
// eecalc.ParseLiteral.
type Variable struct {
	ID        uint   `gorm:"primarykey"`
	Name      string `gorm:"index:idx_var_name,unique"`
	Kind      string
	Value     string
	UpdatedAt int64                 `gorm:"autoUpdateTime"`
	Deleted   soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (Variable) TableName() string { return "variables" }

// Result is one persisted entry of the results history. Seq is the 1-based
// index used by result(n).
type Result struct {
	ID        uint `gorm:"primarykey"`
	Seq       int  `gorm:"index:idx_result_seq,unique"`
	Expr      string
	Kind      string
	Value     string
	CreatedAt int64                 `gorm:"autoCreateTime"`
	Deleted   soft_delete.DeletedAt `gorm:"softDelete:flag;default:0"`
}

func (Result) TableName() string { return "results" }

// Store is an open session database.
type Store struct {
	db *gorm.DB
}

// Open opens or creates the session database at path and migrates its
// schema.
func Open(path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Variable{}, &Result{}); err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

// SaveVariable inserts or updates the persisted value of one variable.
func (s *Store) SaveVariable(name, kind, value string) error {
	v := Variable{Name: name, Kind: kind, Value: value}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"kind", "value", "updated_at"}),
	}).Create(&v).Error
}

// Variables returns all persisted variables ordered by name.
func (s *Store) Variables() ([]Variable, error) {
	var vs []Variable
	err := s.db.Order("name").Find(&vs).Error
	return vs, err
}

// AppendResult records the result of the seq-th evaluated expression.
func (s *Store) AppendResult(seq int, expr, kind, value string) error {
	return s.db.Create(&Result{Seq: seq, Expr: expr, Kind: kind, Value: value}).Error
}

// Results returns the persisted results history in evaluation order.
func (s *Store) Results() ([]Result, error) {
	var rs []Result
	err := s.db.Order("seq").Find(&rs).Error
	return rs, err
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}
