package store

import (
	"time"

	"gorm.io/gorm"
)

// SessionRecord is the operational history of one connected peer: what the
// negotiation engine actually observed on the wire, independent of
// whether anyone is watching the live monitor right now.
type SessionRecord struct {
	gorm.Model
	RemoteAddr     string
	TerminalType   string
	Columns        int
	Rows           int
	ConnectedAt    time.Time
	DisconnectedAt *time.Time
}

func (s *Store) OpenSessionRecord(remoteAddr string) (*SessionRecord, error) {
	rec := SessionRecord{
		RemoteAddr:  remoteAddr,
		ConnectedAt: time.Now(),
	}
	if err := s.DB.Create(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *Store) UpdateSessionRecord(rec *SessionRecord) error {
	return s.DB.Save(rec).Error
}

func (s *Store) CloseSessionRecord(rec *SessionRecord) error {
	now := time.Now()
	rec.DisconnectedAt = &now
	return s.DB.Save(rec).Error
}

func (s *Store) RecentSessionRecords(limit int) ([]SessionRecord, error) {
	var records []SessionRecord
	result := s.DB.Order("id desc").Limit(limit).Find(&records)
	return records, result.Error
}

// UpdateSessionRecordState sets the negotiated terminal fields for the
// record with the given ID, used once NAWS/TERMINAL-TYPE settle.
func (s *Store) UpdateSessionRecordState(id uint, terminalType string, columns, rows int) error {
	return s.DB.Model(&SessionRecord{}).Where("id = ?", id).Updates(map[string]any{
		"terminal_type": terminalType,
		"columns":       columns,
		"rows":          rows,
	}).Error
}

// CloseSessionRecordByID stamps DisconnectedAt for the record with the
// given ID without requiring the caller to hold the full row.
func (s *Store) CloseSessionRecordByID(id uint) error {
	return s.DB.Model(&SessionRecord{}).Where("id = ?", id).Update("disconnected_at", time.Now()).Error
}
