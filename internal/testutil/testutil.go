// Package testutil provides in-memory fakes for handler and service tests
package testutil

import (
	"context"
	"muniportal/internal/config"
	"muniportal/internal/models"
	"muniportal/internal/repository"
	"muniportal/internal/validation"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

var setupOnce sync.Once

// SetupGin puts gin in test mode and registers the custom validators once
func SetupGin(t *testing.T) {
	t.Helper()
	setupOnce.Do(func() {
		gin.SetMode(gin.TestMode)
		validation.Initialize()
	})
}

// TestConfig returns a configuration suitable for unit tests
func TestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Auth = config.AuthConfig{
		JWTSecret:       "test-secret",
		TokenDuration:   time.Hour,
		SessionDuration: 24 * time.Hour,
	}
	cfg.RateLimit.Requests = 1000
	cfg.RateLimit.Window = 60
	return cfg
}

// FakeUserRepo is an in-memory UserRepository
type FakeUserRepo struct {
	repository.BaseRepository
	mu    sync.Mutex
	Users map[uuid.UUID]*models.User
	Err   error
}

// NewFakeUserRepo creates an empty in-memory user repository
func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{Users: make(map[uuid.UUID]*models.User)}
}

// Add stores a user directly, bypassing uniqueness checks
func (r *FakeUserRepo) Add(user *models.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.Users[u.ID] = &u
}

func (r *FakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.DeletedAt != nil {
			continue
		}
		if strings.EqualFold(u.Email, user.Email) {
			return repository.ErrEmailExists
		}
		if u.DNI == user.DNI {
			return repository.ErrDNIExists
		}
	}
	stored := *user
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.Users[stored.ID] = &stored
	return nil
}

func (r *FakeUserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok || u.DeletedAt != nil {
		return nil, repository.ErrUserNotFound
	}
	out := *u
	return &out, nil
}

func (r *FakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.DeletedAt == nil && strings.EqualFold(u.Email, email) {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *FakeUserRepo) GetByDNI(ctx context.Context, dni string) (*models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.Users {
		if u.DeletedAt == nil && u.DNI == dni {
			out := *u
			return &out, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (r *FakeUserRepo) GetByEmailOrDNI(ctx context.Context, identifier string) (*models.User, error) {
	if u, err := r.GetByEmail(ctx, identifier); err == nil {
		return u, nil
	} else if err != repository.ErrUserNotFound {
		return nil, err
	}
	return r.GetByDNI(ctx, identifier)
}

func (r *FakeUserRepo) List(ctx context.Context, filter repository.UserFilter) ([]models.User, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.User
	for _, u := range r.Users {
		if u.DeletedAt != nil && !filter.IncludeDeleted {
			continue
		}
		if filter.Estado != nil && u.Estado != *filter.Estado {
			continue
		}
		if filter.RoleID != nil && u.RoleID != *filter.RoleID {
			continue
		}
		if filter.AreaID != nil && (u.AreaID == nil || *u.AreaID != *filter.AreaID) {
			continue
		}
		out = append(out, *u)
	}
	return out, nil
}

func (r *FakeUserRepo) Update(ctx context.Context, user *models.User) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.Users[user.ID]
	if !ok || existing.DeletedAt != nil {
		return repository.ErrUserNotFound
	}
	for _, u := range r.Users {
		if u.ID != user.ID && u.DeletedAt == nil && strings.EqualFold(u.Email, user.Email) {
			return repository.ErrEmailExists
		}
	}
	stored := *user
	stored.UpdatedAt = time.Now()
	r.Users[stored.ID] = &stored
	return nil
}

func (r *FakeUserRepo) SetEstado(ctx context.Context, id uuid.UUID, estado string) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrUserNotFound
	}
	u.Estado = estado
	u.UpdatedAt = time.Now()
	return nil
}

func (r *FakeUserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.Users[id]
	if !ok || u.DeletedAt != nil {
		return repository.ErrUserNotFound
	}
	now := time.Now()
	u.DeletedAt = &now
	return nil
}

// FakeRoleRepo is an in-memory RoleRepository
type FakeRoleRepo struct {
	repository.BaseRepository
	mu    sync.Mutex
	Roles map[uuid.UUID]*models.Role
}

// NewFakeRoleRepo creates an in-memory role repository
func NewFakeRoleRepo() *FakeRoleRepo {
	return &FakeRoleRepo{Roles: make(map[uuid.UUID]*models.Role)}
}

// Add stores a role directly
func (r *FakeRoleRepo) Add(role *models.Role) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *role
	r.Roles[stored.ID] = &stored
}

func (r *FakeRoleRepo) Create(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.Roles {
		if existing.Name == role.Name {
			return repository.ErrRoleExists
		}
	}
	stored := *role
	r.Roles[stored.ID] = &stored
	return nil
}

func (r *FakeRoleRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.Roles[id]
	if !ok {
		return nil, repository.ErrRoleNotFound
	}
	out := *role
	return &out, nil
}

func (r *FakeRoleRepo) GetByName(ctx context.Context, name string) (*models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, role := range r.Roles {
		if role.Name == name {
			out := *role
			return &out, nil
		}
	}
	return nil, repository.ErrRoleNotFound
}

func (r *FakeRoleRepo) List(ctx context.Context) ([]models.Role, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Role, 0, len(r.Roles))
	for _, role := range r.Roles {
		out = append(out, *role)
	}
	return out, nil
}

func (r *FakeRoleRepo) Update(ctx context.Context, role *models.Role) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.Roles[role.ID]
	if !ok {
		return repository.ErrRoleNotFound
	}
	if existing.IsProtected {
		return repository.ErrRoleProtected
	}
	stored := *role
	r.Roles[stored.ID] = &stored
	return nil
}

func (r *FakeRoleRepo) Delete(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	role, ok := r.Roles[id]
	if !ok {
		return repository.ErrRoleNotFound
	}
	if role.IsProtected {
		return repository.ErrRoleProtected
	}
	delete(r.Roles, id)
	return nil
}

// FakeSessionRepo is an in-memory SessionRepository
type FakeSessionRepo struct {
	repository.BaseRepository
	mu       sync.Mutex
	Sessions map[string]*models.Session
}

// NewFakeSessionRepo creates an in-memory session repository
func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{Sessions: make(map[string]*models.Session)}
}

func (r *FakeSessionRepo) Create(ctx context.Context, userID uuid.UUID, token string, expiresAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sessions[token] = &models.Session{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	return nil
}

func (r *FakeSessionRepo) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.Sessions[token]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if time.Now().After(s.ExpiresAt) {
		return nil, repository.ErrSessionExpired
	}
	out := *s
	return &out, nil
}

func (r *FakeSessionRepo) DeleteByToken(ctx context.Context, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Sessions, token)
	return nil
}

func (r *FakeSessionRepo) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for token, s := range r.Sessions {
		if s.UserID == userID {
			delete(r.Sessions, token)
		}
	}
	return nil
}

// FakeAuditRepo is an in-memory AuditLogRepository. Set Err to make every
// write fail, which is how tests exercise the best-effort audit path.
type FakeAuditRepo struct {
	repository.BaseRepository
	mu   sync.Mutex
	Logs []models.AuditLog
	Err  error
}

// NewFakeAuditRepo creates an in-memory audit log repository
func NewFakeAuditRepo() *FakeAuditRepo {
	return &FakeAuditRepo{}
}

func (r *FakeAuditRepo) Create(ctx context.Context, log *models.AuditLog) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *log
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.Logs = append(r.Logs, stored)
	return nil
}

func (r *FakeAuditRepo) List(ctx context.Context, filter repository.AuditLogFilter) ([]models.AuditLog, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditLog
	for i := len(r.Logs) - 1; i >= 0; i-- {
		log := r.Logs[i]
		if filter.Actor != nil && log.Actor != *filter.Actor {
			continue
		}
		if len(filter.Actions) > 0 && !contains(filter.Actions, log.Action) {
			continue
		}
		if filter.Outcome != nil && log.Outcome != *filter.Outcome {
			continue
		}
		out = append(out, log)
	}
	return out, nil
}

func (r *FakeAuditRepo) DeleteAll(ctx context.Context) (int64, error) {
	if r.Err != nil {
		return 0, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	n := int64(len(r.Logs))
	r.Logs = nil
	return n, nil
}

func (r *FakeAuditRepo) CleanupOld(ctx context.Context, olderThan time.Duration) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	cutoff := time.Now().Add(-olderThan)
	kept := r.Logs[:0]
	for _, log := range r.Logs {
		if log.CreatedAt.After(cutoff) {
			kept = append(kept, log)
		}
	}
	r.Logs = kept
	return nil
}

// ByAction returns the stored audit records with the given action
func (r *FakeAuditRepo) ByAction(action string) []models.AuditLog {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.AuditLog
	for _, log := range r.Logs {
		if log.Action == action {
			out = append(out, log)
		}
	}
	return out
}

// FakeQueryRepo is an in-memory QueryLogRepository
type FakeQueryRepo struct {
	repository.BaseRepository
	mu   sync.Mutex
	Logs []models.UserQueryLog
	Err  error
}

// NewFakeQueryRepo creates an in-memory query log repository
func NewFakeQueryRepo() *FakeQueryRepo {
	return &FakeQueryRepo{}
}

func (r *FakeQueryRepo) Create(ctx context.Context, log *models.UserQueryLog) error {
	if r.Err != nil {
		return r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *log
	if stored.ID == uuid.Nil {
		stored.ID = uuid.New()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now()
	}
	r.Logs = append(r.Logs, stored)
	return nil
}

func (r *FakeQueryRepo) GetRecentByUserID(ctx context.Context, userID uuid.UUID, limit int) ([]models.UserQueryLog, error) {
	if r.Err != nil {
		return nil, r.Err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.UserQueryLog
	for i := len(r.Logs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.Logs[i].UserID == userID {
			out = append(out, r.Logs[i])
		}
	}
	return out, nil
}

// FakeEmailSender records notification calls without sending anything
type FakeEmailSender struct {
	mu        sync.Mutex
	Created   []string
	Suspended []string
	Deleted   []string
}

// NewFakeEmailSender creates a no-op email sender
func NewFakeEmailSender() *FakeEmailSender {
	return &FakeEmailSender{}
}

func (f *FakeEmailSender) SendAccountCreated(to, fullName, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Created = append(f.Created, to)
	return nil
}

func (f *FakeEmailSender) SendAccountSuspended(to, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Suspended = append(f.Suspended, to)
	return nil
}

func (f *FakeEmailSender) SendAccountDeleted(to, fullName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Deleted = append(f.Deleted, to)
	return nil
}

// FakeResolver returns canned lookup results
type FakeResolver struct {
	Person   *models.Person
	Taxpayer *models.Taxpayer
	Err      error
}

func (f *FakeResolver) LookupDNI(ctx context.Context, dni string) (*models.Person, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Person, nil
}

func (f *FakeResolver) LookupRUC(ctx context.Context, ruc string) (*models.Taxpayer, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Taxpayer, nil
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
