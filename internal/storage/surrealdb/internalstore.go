package surrealdb

import (
	"context"
	"fmt"
	"time"

	"github.com/surrealdb/surrealdb.go"
	surrealmodels "github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/tandemledger/tandem/internal/common"
	"github.com/tandemledger/tandem/internal/interfaces"
	"github.com/tandemledger/tandem/internal/models"
)

// InternalStore manages the co-investor accounts and system KV.
type InternalStore struct {
	db     *surrealdb.DB
	logger *common.Logger
}

func NewInternalStore(db *surrealdb.DB, logger *common.Logger) *InternalStore {
	return &InternalStore{
		db:     db,
		logger: logger,
	}
}

func (s *InternalStore) GetUser(ctx context.Context, username string) (*models.UserAccount, error) {
	user, err := surrealdb.Select[models.UserAccount](ctx, s.db, surrealmodels.NewRecordID("user", username))
	if err != nil {
		return nil, fmt.Errorf("select user: %w: %v", common.ErrStoreUnavailable, err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %q: %w", username, common.ErrNotFound)
	}
	return user, nil
}

func (s *InternalStore) SaveUser(ctx context.Context, user *models.UserAccount) error {
	user.ModifiedAt = time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = user.ModifiedAt
	}

	sql := "UPSERT $rid CONTENT $user"
	vars := map[string]any{
		"rid":  surrealmodels.NewRecordID("user", user.Username),
		"user": user,
	}
	if _, err := surrealdb.Query[[]models.UserAccount](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("save user: %w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *InternalStore) ListUsers(ctx context.Context) ([]string, error) {
	list, err := surrealdb.Select[[]models.UserAccount](ctx, s.db, surrealmodels.Table("user"))
	if err != nil {
		return nil, fmt.Errorf("list users: %w: %v", common.ErrStoreUnavailable, err)
	}

	var usernames []string
	if list != nil {
		for _, u := range *list {
			if u.Username != "" {
				usernames = append(usernames, u.Username)
			}
		}
	}
	return usernames, nil
}

// systemKV is the stored shape of a system key-value pair.
type systemKV struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *InternalStore) GetSystemKV(ctx context.Context, key string) (string, error) {
	kv, err := surrealdb.Select[systemKV](ctx, s.db, surrealmodels.NewRecordID("system_kv", key))
	if err != nil {
		return "", fmt.Errorf("select system KV: %w: %v", common.ErrStoreUnavailable, err)
	}
	if kv == nil {
		return "", fmt.Errorf("system KV %q: %w", key, common.ErrNotFound)
	}
	return kv.Value, nil
}

func (s *InternalStore) SetSystemKV(ctx context.Context, key, value string) error {
	sql := "UPSERT $rid CONTENT $kv"
	vars := map[string]any{
		"rid": surrealmodels.NewRecordID("system_kv", key),
		"kv":  systemKV{Key: key, Value: value},
	}
	if _, err := surrealdb.Query[[]systemKV](ctx, s.db, sql, vars); err != nil {
		return fmt.Errorf("set system KV: %w: %v", common.ErrStoreUnavailable, err)
	}
	return nil
}

func (s *InternalStore) Close() error {
	return nil
}

// Compile-time check
var _ interfaces.InternalStore = (*InternalStore)(nil)
