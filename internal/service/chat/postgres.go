package chat

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/symptexlab/symptex-api/internal/model/chat"
	"github.com/symptexlab/symptex-api/internal/model/patient"
)

type sessionRecord struct {
	ID        string `gorm:"primaryKey;size:191"`
	PatientID string `gorm:"size:191"`
	CreatedAt time.Time
}

func (sessionRecord) TableName() string { return "chat_sessions" }

type messageRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	SessionID string `gorm:"size:191;index:idx_chat_messages_session_created,priority:1"`
	Role      string `gorm:"size:16"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time `gorm:"index:idx_chat_messages_session_created,priority:2"`
}

func (messageRecord) TableName() string { return "chat_messages" }

type patientRecord struct {
	ID             string `gorm:"primaryKey;size:191"`
	FirstName      string
	LastName       string
	BirthDate      *time.Time
	HeightCM       *int
	WeightKG       *float64
	GenderIdentity string
	GenderMedical  string
	EthnicOrigin   string
	Anamneses      []anamnesisRecord `gorm:"foreignKey:PatientID"`
}

func (patientRecord) TableName() string { return "patient_files" }

type anamnesisRecord struct {
	ID        uint   `gorm:"primaryKey;autoIncrement"`
	PatientID string `gorm:"size:191;index"`
	Category  string
	Answer    string `gorm:"type:text"`
}

func (anamnesisRecord) TableName() string { return "anamneses" }

// PostgresStore implements Store on a Postgres database via gorm. Message
// order is (created_at, id); the auto-increment id breaks timestamp ties.
type PostgresStore struct {
	db *gorm.DB
}

// NewPostgresStore connects to the database and migrates the schema.
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	if err := db.AutoMigrate(&patientRecord{}, &anamnesisRecord{}, &sessionRecord{}, &messageRecord{}); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

// ResolveOrCreate inserts with ON CONFLICT DO NOTHING and reads the winner
// back, so concurrent first-time creation yields exactly one row.
func (s *PostgresStore) ResolveOrCreate(ctx context.Context, sessionID, patientID string) (chat.Session, error) {
	record := sessionRecord{
		ID:        sessionID,
		PatientID: patientID,
		CreatedAt: time.Now().UTC(),
	}

	result := s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&record)
	if result.Error != nil {
		return chat.Session{}, fmt.Errorf("create session: %w", result.Error)
	}

	var stored sessionRecord
	if err := s.db.WithContext(ctx).First(&stored, "id = ?", sessionID).Error; err != nil {
		return chat.Session{}, fmt.Errorf("load session: %w", err)
	}

	return chat.Session{ID: stored.ID, PatientID: stored.PatientID, CreatedAt: stored.CreatedAt}, nil
}

// Append persists one message for an existing session.
func (s *PostgresStore) Append(ctx context.Context, sessionID string, role chat.Role, content string) (chat.Message, error) {
	if !role.Valid() {
		return chat.Message{}, ErrInvalidRole
	}

	var session sessionRecord
	if err := s.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return chat.Message{}, ErrSessionNotFound
		}
		return chat.Message{}, fmt.Errorf("load session: %w", err)
	}

	record := messageRecord{
		SessionID: sessionID,
		Role:      string(role),
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.db.WithContext(ctx).Create(&record).Error; err != nil {
		return chat.Message{}, fmt.Errorf("insert message: %w", err)
	}

	return messageToModel(record), nil
}

// History returns all messages of the session, oldest first.
func (s *PostgresStore) History(ctx context.Context, sessionID string) ([]chat.Message, error) {
	var session sessionRecord
	if err := s.db.WithContext(ctx).First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("load session: %w", err)
	}

	var records []messageRecord
	if err := s.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		Order("created_at asc, id asc").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load history: %w", err)
	}

	messages := make([]chat.Message, 0, len(records))
	for _, record := range records {
		messages = append(messages, messageToModel(record))
	}
	return messages, nil
}

// Reset deletes the session row and its messages; both deletes tolerate
// already-absent rows.
func (s *PostgresStore) Reset(ctx context.Context, sessionID string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("session_id = ?", sessionID).Delete(&messageRecord{}).Error; err != nil {
			return fmt.Errorf("delete messages: %w", err)
		}
		if err := tx.Where("id = ?", sessionID).Delete(&sessionRecord{}).Error; err != nil {
			return fmt.Errorf("delete session: %w", err)
		}
		return nil
	})
}

func messageToModel(record messageRecord) chat.Message {
	return chat.Message{
		ID:        strconv.FormatUint(uint64(record.ID), 10),
		SessionID: record.SessionID,
		Role:      chat.Role(record.Role),
		Content:   record.Content,
		CreatedAt: record.CreatedAt,
	}
}

// Patients exposes the patient files stored alongside the sessions.
func (s *PostgresStore) Patients() *PostgresPatientStore {
	return &PostgresPatientStore{db: s.db}
}

// SeedPatients inserts the supplied profiles unless the table already has
// rows, so a fresh database starts with the teaching scenarios.
func (s *PostgresStore) SeedPatients(profiles []patient.Profile) error {
	var count int64
	if err := s.db.Model(&patientRecord{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count patients: %w", err)
	}
	if count > 0 {
		return nil
	}

	for _, profile := range profiles {
		record := patientRecordFromProfile(profile)
		if err := s.db.Create(&record).Error; err != nil {
			return fmt.Errorf("seed patient %s: %w", profile.ID, err)
		}
	}
	return nil
}

// PostgresPatientStore implements patient.Store on the shared database.
type PostgresPatientStore struct {
	db *gorm.DB
}

// List returns all patient files with their anamnesis entries.
func (s *PostgresPatientStore) List() []patient.Profile {
	var records []patientRecord
	if err := s.db.Preload("Anamneses").Find(&records).Error; err != nil {
		return nil
	}

	profiles := make([]patient.Profile, 0, len(records))
	for _, record := range records {
		profiles = append(profiles, patientToModel(record))
	}
	return profiles
}

// FindByID looks up a single patient file.
func (s *PostgresPatientStore) FindByID(id string) (patient.Profile, bool) {
	var record patientRecord
	if err := s.db.Preload("Anamneses").First(&record, "id = ?", id).Error; err != nil {
		return patient.Profile{}, false
	}
	return patientToModel(record), true
}

func patientRecordFromProfile(profile patient.Profile) patientRecord {
	record := patientRecord{
		ID:             profile.ID,
		FirstName:      profile.FirstName,
		LastName:       profile.LastName,
		BirthDate:      profile.BirthDate,
		HeightCM:       profile.HeightCM,
		WeightKG:       profile.WeightKG,
		GenderIdentity: profile.GenderIdentity,
		GenderMedical:  profile.GenderMedical,
		EthnicOrigin:   profile.EthnicOrigin,
	}
	for _, entry := range profile.Anamneses {
		record.Anamneses = append(record.Anamneses, anamnesisRecord{
			PatientID: profile.ID,
			Category:  entry.Category,
			Answer:    entry.Answer,
		})
	}
	return record
}

func patientToModel(record patientRecord) patient.Profile {
	profile := patient.Profile{
		ID:             record.ID,
		FirstName:      record.FirstName,
		LastName:       record.LastName,
		BirthDate:      record.BirthDate,
		HeightCM:       record.HeightCM,
		WeightKG:       record.WeightKG,
		GenderIdentity: record.GenderIdentity,
		GenderMedical:  record.GenderMedical,
		EthnicOrigin:   record.EthnicOrigin,
	}
	for _, entry := range record.Anamneses {
		profile.Anamneses = append(profile.Anamneses, patient.Anamnesis{
			Category: entry.Category,
			Answer:   entry.Answer,
		})
	}
	return profile
}
