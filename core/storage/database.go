package storage

import (
	"errors"
	"time"

	"github.com/vwid-io/vwid/util"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrNotOpen indicates that the database has not been opened
var ErrNotOpen = errors.New("database not open")

// Record is a charging session
type Record struct {
	ID        uint64    `gorm:"primarykey" json:"id"`
	VIN       string    `gorm:"index" json:"vin"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	StartSoc  float64   `json:"startSoc"`
	EndSoc    float64   `json:"endSoc"`
}

// Setting is a persisted key/value pair
type Setting struct {
	Key   string `gorm:"primarykey"`
	Value string
}

var db *gorm.DB

// Open opens the sqlite database at the given path
func Open(file string) error {
	instance, err := gorm.Open(sqlite.Open(file), &gorm.Config{
		Logger: &adapter{log: util.NewLogger("db")},
	})
	if err != nil {
		return err
	}

	if err := instance.AutoMigrate(new(Record), new(Setting)); err != nil {
		return err
	}

	db = instance

	return nil
}

// Transaction records a single charging session
type Transaction interface {
	Start(soc float64) error
	Update(update *Record) error
	Stop(soc float64) error
}

type storer struct {
	vin string
	ref *Record
}

var _ Transaction = (*storer)(nil)

// NewTransactor creates a session recorder for the vehicle
func NewTransactor(vin string) Transaction {
	return &storer{
		vin: vin,
	}
}

func (s *storer) Start(soc float64) error {
	if db == nil {
		return ErrNotOpen
	}

	s.ref = &Record{
		VIN:       s.vin,
		StartTime: time.Now(),
		StartSoc:  soc,
	}

	tx := db.Create(s.ref)
	return tx.Error
}

func (s *storer) Update(update *Record) error {
	if db == nil || s.ref == nil {
		return ErrNotOpen
	}

	tx := db.Model(s.ref).Updates(update) // non-zero fields
	return tx.Error
}

func (s *storer) Stop(soc float64) error {
	return s.Update(&Record{
		EndTime: time.Now(),
		EndSoc:  soc,
	})
}

// Sessions returns the charging sessions of a vehicle, most recent first.
// An empty VIN returns the sessions of all vehicles.
func Sessions(vin string) ([]Record, error) {
	if db == nil {
		return nil, ErrNotOpen
	}

	var res []Record

	tx := db.Order("start_time desc")
	if vin != "" {
		tx = tx.Where(&Record{VIN: vin})
	}

	err := tx.Find(&res).Error
	return res, err
}

// SetSetting persists a setting
func SetSetting(key, value string) error {
	if db == nil {
		return ErrNotOpen
	}

	return db.Save(&Setting{Key: key, Value: value}).Error
}

// GetSetting returns a persisted setting
func GetSetting(key string) (string, error) {
	if db == nil {
		return "", ErrNotOpen
	}

	var res Setting
	err := db.Where(&Setting{Key: key}).First(&res).Error
	return res.Value, err
}
