package postgresadapter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"aegis/contexts/identity-access/session-authority/domain/entities"
	domainerrors "aegis/contexts/identity-access/session-authority/domain/errors"
	"aegis/contexts/identity-access/session-authority/domain/policy"
	"aegis/contexts/identity-access/session-authority/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Repository is the gorm-backed durable store for roles, policies,
// attachments, and role sessions. Uniqueness (role name per account,
// attachment pair) is enforced by database indexes so concurrent service
// instances cannot race past each other.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{db: db, logger: logger}
}

// Migrate creates the backing tables. Intended for bootstrap and tests.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&roleModel{}, &policyModel{}, &attachmentModel{}, &sessionModel{})
}

func (r *Repository) CreateRole(ctx context.Context, role entities.Role) error {
	row, err := roleModelFromEntity(role)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: role %q already exists in account %s",
				domainerrors.ErrConflict, role.Name, role.AccountID)
		}
		return err
	}
	return nil
}

func (r *Repository) GetRole(ctx context.Context, roleID string) (entities.Role, error) {
	var row roleModel
	err := r.db.WithContext(ctx).
		Where("role_id = ?", roleID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Role{}, fmt.Errorf("%w: role %s", domainerrors.ErrNotFound, roleID)
		}
		return entities.Role{}, err
	}
	return row.toEntity()
}

func (r *Repository) ListRolesByAccount(ctx context.Context, accountID string) ([]entities.Role, error) {
	var rows []roleModel
	if err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}

	items := make([]entities.Role, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) UpdateRole(ctx context.Context, update ports.RoleUpdate) (entities.Role, error) {
	fields := map[string]any{"updated_at": update.UpdatedAt.UTC()}
	if update.Description != nil {
		fields["description"] = strings.TrimSpace(*update.Description)
	}
	if update.MaxSessionDuration != nil {
		fields["max_session_duration"] = *update.MaxSessionDuration
	}
	if update.TrustPolicy != nil {
		raw, err := json.Marshal(update.TrustPolicy)
		if err != nil {
			return entities.Role{}, err
		}
		fields["trust_policy"] = raw
	}

	result := r.db.WithContext(ctx).
		Model(&roleModel{}).
		Where("role_id = ?", update.RoleID).
		Updates(fields)
	if result.Error != nil {
		return entities.Role{}, result.Error
	}
	if result.RowsAffected == 0 {
		return entities.Role{}, fmt.Errorf("%w: role %s", domainerrors.ErrNotFound, update.RoleID)
	}
	return r.GetRole(ctx, update.RoleID)
}

func (r *Repository) DeleteRole(ctx context.Context, roleID string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("role_id = ?", roleID).Delete(&attachmentModel{}).Error; err != nil {
			return err
		}
		result := tx.Where("role_id = ?", roleID).Delete(&roleModel{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return fmt.Errorf("%w: role %s", domainerrors.ErrNotFound, roleID)
		}
		return nil
	})
}

func (r *Repository) CreatePolicy(ctx context.Context, item entities.Policy) error {
	row, err := policyModelFromEntity(item)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: policy %q already exists in account %s",
				domainerrors.ErrConflict, item.Name, item.AccountID)
		}
		return err
	}
	return nil
}

func (r *Repository) GetPolicyByID(ctx context.Context, accountID string, policyID string) (entities.Policy, error) {
	return r.getPolicy(ctx, accountID, "policy_id = ?", policyID)
}

func (r *Repository) GetPolicyByName(ctx context.Context, accountID string, name string) (entities.Policy, error) {
	return r.getPolicy(ctx, accountID, "name = ?", name)
}

func (r *Repository) getPolicy(ctx context.Context, accountID string, cond string, arg string) (entities.Policy, error) {
	var row policyModel
	err := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Where(cond, arg).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Policy{}, fmt.Errorf("%w: policy %s", domainerrors.ErrNotFound, arg)
		}
		return entities.Policy{}, err
	}
	return row.toEntity()
}

func (r *Repository) AttachPolicy(ctx context.Context, attachment entities.PolicyAttachment) error {
	row := attachmentModel{
		RoleID:     attachment.RoleID,
		PolicyID:   attachment.PolicyID,
		AccountID:  attachment.AccountID,
		AttachedAt: attachment.AttachedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: policy already attached", domainerrors.ErrConflict)
		}
		return err
	}
	return nil
}

func (r *Repository) DetachPolicy(ctx context.Context, roleID string, policyID string) error {
	result := r.db.WithContext(ctx).
		Where("role_id = ? AND policy_id = ?", roleID, policyID).
		Delete(&attachmentModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("%w: no attachment for role %s", domainerrors.ErrNotFound, roleID)
	}
	return nil
}

func (r *Repository) ListRolePolicies(ctx context.Context, roleID string) ([]entities.Policy, error) {
	var rows []policyModel
	err := r.db.WithContext(ctx).
		Joins("JOIN iam_policy_attachments ON iam_policy_attachments.policy_id = iam_policies.policy_id").
		Where("iam_policy_attachments.role_id = ?", roleID).
		Order("iam_policy_attachments.attached_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.Policy, 0, len(rows))
	for _, row := range rows {
		item, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *Repository) CreateSession(ctx context.Context, session entities.RoleSession) error {
	row := sessionModel{
		SessionID:        session.ID,
		RoleID:           session.RoleID,
		UserID:           session.UserID,
		SessionName:      session.SessionName,
		TokenFingerprint: session.TokenFingerprint,
		AssumedAt:        session.AssumedAt.UTC(),
		ExpiresAt:        session.ExpiresAt.UTC(),
		IsActive:         session.IsActive,
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: session %s already exists", domainerrors.ErrConflict, session.ID)
		}
		return err
	}
	return nil
}

func (r *Repository) GetSession(ctx context.Context, sessionID string) (entities.RoleSession, error) {
	var row sessionModel
	err := r.db.WithContext(ctx).
		Where("session_id = ?", sessionID).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.RoleSession{}, fmt.Errorf("%w: session %s", domainerrors.ErrNotFound, sessionID)
		}
		return entities.RoleSession{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) ListActiveSessions(ctx context.Context, accountID string, now time.Time) ([]entities.RoleSession, error) {
	var rows []sessionModel
	err := r.db.WithContext(ctx).
		Joins("JOIN iam_roles ON iam_roles.role_id = iam_role_sessions.role_id").
		Where("iam_roles.account_id = ?", accountID).
		Where("iam_role_sessions.is_active AND iam_role_sessions.expires_at > ?", now.UTC()).
		Order("iam_role_sessions.assumed_at ASC").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}

	items := make([]entities.RoleSession, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) DeactivateSession(ctx context.Context, sessionID string, now time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("session_id = ? AND is_active AND expires_at > ?", sessionID, now.UTC()).
		Update("is_active", false)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *Repository) DeactivateExpiredSessions(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&sessionModel{}).
		Where("is_active AND expires_at <= ?", now.UTC()).
		Update("is_active", false)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

type roleModel struct {
	RoleID             string    `gorm:"column:role_id;primaryKey"`
	AccountID          string    `gorm:"column:account_id;uniqueIndex:idx_iam_roles_account_name"`
	Name               string    `gorm:"column:name;uniqueIndex:idx_iam_roles_account_name"`
	Description        string    `gorm:"column:description"`
	TrustPolicy        []byte    `gorm:"column:trust_policy;type:jsonb"`
	MaxSessionDuration int       `gorm:"column:max_session_duration"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (roleModel) TableName() string { return "iam_roles" }

type policyModel struct {
	PolicyID  string    `gorm:"column:policy_id;primaryKey"`
	AccountID string    `gorm:"column:account_id;uniqueIndex:idx_iam_policies_account_name"`
	Name      string    `gorm:"column:name;uniqueIndex:idx_iam_policies_account_name"`
	Document  []byte    `gorm:"column:document;type:jsonb"`
	Type      string    `gorm:"column:type"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (policyModel) TableName() string { return "iam_policies" }

type attachmentModel struct {
	RoleID     string    `gorm:"column:role_id;primaryKey"`
	PolicyID   string    `gorm:"column:policy_id;primaryKey"`
	AccountID  string    `gorm:"column:account_id"`
	AttachedAt time.Time `gorm:"column:attached_at"`
}

func (attachmentModel) TableName() string { return "iam_policy_attachments" }

type sessionModel struct {
	SessionID        string    `gorm:"column:session_id;primaryKey"`
	RoleID           string    `gorm:"column:role_id;index"`
	UserID           string    `gorm:"column:user_id;index"`
	SessionName      string    `gorm:"column:session_name"`
	TokenFingerprint string    `gorm:"column:token_fingerprint"`
	AssumedAt        time.Time `gorm:"column:assumed_at"`
	ExpiresAt        time.Time `gorm:"column:expires_at;index"`
	IsActive         bool      `gorm:"column:is_active"`
}

func (sessionModel) TableName() string { return "iam_role_sessions" }

func roleModelFromEntity(role entities.Role) (roleModel, error) {
	raw, err := json.Marshal(role.TrustPolicy)
	if err != nil {
		return roleModel{}, err
	}
	return roleModel{
		RoleID:             role.ID,
		AccountID:          role.AccountID,
		Name:               role.Name,
		Description:        role.Description,
		TrustPolicy:        raw,
		MaxSessionDuration: role.MaxSessionDuration,
		CreatedAt:          role.CreatedAt.UTC(),
		UpdatedAt:          role.UpdatedAt.UTC(),
	}, nil
}

func (m roleModel) toEntity() (entities.Role, error) {
	doc, err := policy.Parse(m.TrustPolicy)
	if err != nil {
		return entities.Role{}, fmt.Errorf("decode trust policy for role %s: %w", m.RoleID, err)
	}
	return entities.Role{
		ID:                 m.RoleID,
		AccountID:          m.AccountID,
		Name:               m.Name,
		Description:        m.Description,
		TrustPolicy:        doc,
		MaxSessionDuration: m.MaxSessionDuration,
		CreatedAt:          m.CreatedAt.UTC(),
		UpdatedAt:          m.UpdatedAt.UTC(),
	}, nil
}

func policyModelFromEntity(item entities.Policy) (policyModel, error) {
	raw, err := json.Marshal(item.Document)
	if err != nil {
		return policyModel{}, err
	}
	return policyModel{
		PolicyID:  item.ID,
		AccountID: item.AccountID,
		Name:      item.Name,
		Document:  raw,
		Type:      string(item.Type),
		CreatedAt: item.CreatedAt.UTC(),
		UpdatedAt: item.UpdatedAt.UTC(),
	}, nil
}

func (m policyModel) toEntity() (entities.Policy, error) {
	doc, err := policy.Parse(m.Document)
	if err != nil {
		return entities.Policy{}, fmt.Errorf("decode document for policy %s: %w", m.PolicyID, err)
	}
	return entities.Policy{
		ID:        m.PolicyID,
		AccountID: m.AccountID,
		Name:      m.Name,
		Document:  doc,
		Type:      entities.PolicyType(m.Type),
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: m.UpdatedAt.UTC(),
	}, nil
}

func (m sessionModel) toEntity() entities.RoleSession {
	return entities.RoleSession{
		ID:               m.SessionID,
		RoleID:           m.RoleID,
		UserID:           m.UserID,
		SessionName:      m.SessionName,
		TokenFingerprint: m.TokenFingerprint,
		AssumedAt:        m.AssumedAt.UTC(),
		ExpiresAt:        m.ExpiresAt.UTC(),
		IsActive:         m.IsActive,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
