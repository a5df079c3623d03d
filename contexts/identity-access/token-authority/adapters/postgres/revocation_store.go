package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"aegis/contexts/identity-access/token-authority/domain/entities"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// RevocationStore is the gorm-backed Tier 2 of the revocation ledger —
// the durable source of truth shared by every service instance.
type RevocationStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRevocationStore(db *gorm.DB, logger *slog.Logger) *RevocationStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &RevocationStore{db: db, logger: logger}
}

// Migrate creates the backing table. Intended for bootstrap and tests.
func (s *RevocationStore) Migrate() error {
	return s.db.AutoMigrate(&revocationModel{})
}

// Put upserts by fingerprint so a retried revoke is idempotent and a
// repeated blanket marker keeps only the latest timestamp.
func (s *RevocationStore) Put(ctx context.Context, entry entities.RevocationEntry) error {
	row := revocationModel{
		Fingerprint: entry.Fingerprint,
		Kind:        string(entry.Kind),
		UserID:      entry.UserID,
		AccountID:   entry.AccountID,
		Reason:      entry.Reason,
		ClientInfo:  entry.ClientInfo,
		RevokedAt:   entry.RevokedAt.UTC(),
		ExpiresAt:   entry.ExpiresAt.UTC(),
	}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "fingerprint"}},
			UpdateAll: true,
		}).
		Create(&row).
		Error
}

func (s *RevocationStore) Get(ctx context.Context, fingerprint string) (entities.RevocationEntry, bool, error) {
	var row revocationModel
	err := s.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RevocationEntry{}, false, nil
		}
		return entities.RevocationEntry{}, false, err
	}
	return row.toEntity(), true, nil
}

func (s *RevocationStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&revocationModel{})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

func (s *RevocationStore) Count(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&revocationModel{}).Count(&count).Error
	return count, err
}

type revocationModel struct {
	Fingerprint string    `gorm:"column:fingerprint;primaryKey"`
	Kind        string    `gorm:"column:kind"`
	UserID      string    `gorm:"column:user_id;index"`
	AccountID   string    `gorm:"column:account_id"`
	Reason      string    `gorm:"column:reason"`
	ClientInfo  string    `gorm:"column:client_info"`
	RevokedAt   time.Time `gorm:"column:revoked_at"`
	ExpiresAt   time.Time `gorm:"column:expires_at;index"`
}

func (revocationModel) TableName() string { return "iam_token_revocations" }

func (m revocationModel) toEntity() entities.RevocationEntry {
	return entities.RevocationEntry{
		Fingerprint: m.Fingerprint,
		Kind:        entities.RevocationKind(m.Kind),
		UserID:      m.UserID,
		AccountID:   m.AccountID,
		Reason:      m.Reason,
		ClientInfo:  m.ClientInfo,
		RevokedAt:   m.RevokedAt.UTC(),
		ExpiresAt:   m.ExpiresAt.UTC(),
	}
}
