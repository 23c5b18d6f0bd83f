package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	accountdomain "demo-bank/backend/internal/account/domain"
	accountservice "demo-bank/backend/internal/account/service"
	"demo-bank/backend/internal/audit"
	auditdomain "demo-bank/backend/internal/audit/domain"
	"demo-bank/backend/internal/security"
	sessiondomain "demo-bank/backend/internal/session/domain"
	userdomain "demo-bank/backend/internal/user/domain"
	"demo-bank/backend/internal/validation"
)

// Sentinel errors for the auth service; the handler maps them to HTTP
// status codes.
var (
	ErrEmailAlreadyRegistered = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrInvalidSession         = errors.New("invalid or expired session")
	ErrInternal               = errors.New("internal error")
)

// UserRepo is the minimal user repository needed by the auth service.
type UserRepo interface {
	GetByID(ctx context.Context, id string) (*userdomain.User, error)
	GetByEmail(ctx context.Context, email string) (*userdomain.User, error)
	CreateWithAccount(ctx context.Context, u *userdomain.User, a *accountdomain.Account) error
}

// SessionRepo is the minimal session repository needed by the auth service.
type SessionRepo interface {
	Replace(ctx context.Context, s *sessiondomain.Session) error
	GetByToken(ctx context.Context, token string) (*sessiondomain.Session, error)
	DeleteAllForUser(ctx context.Context, userID string) (int64, error)
	CountForUser(ctx context.Context, userID string) (int64, error)
}

// SignupRequest carries the registration input. Field names mirror the
// JSON request body.
type SignupRequest struct {
	Email       string
	Password    string
	FirstName   string
	LastName    string
	PhoneNumber string
	DateOfBirth string
	SSN         string
	Address     string
	City        string
	State       string
	ZipCode     string
}

// AuthResult holds the outcome of a successful signup or login.
type AuthResult struct {
	User      *userdomain.SafeUser
	Token     string
	ExpiresAt time.Time
}

// LogoutResult reports whether a logout removed a session.
type LogoutResult struct {
	Success bool
	Message string
}

// AuthService implements signup, login, logout, and session authentication.
type AuthService struct {
	userRepo    UserRepo
	sessionRepo SessionRepo
	hasher      *security.Hasher
	tokens      *security.TokenProvider
	cipher      *security.Cipher
	auditor     audit.AuditLogger
	now         func() time.Time
}

// NewAuthService returns an AuthService with the given dependencies.
// auditor may be nil to disable audit logging.
func NewAuthService(
	userRepo UserRepo,
	sessionRepo SessionRepo,
	hasher *security.Hasher,
	tokens *security.TokenProvider,
	cipher *security.Cipher,
	auditor audit.AuditLogger,
) *AuthService {
	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		hasher:      hasher,
		tokens:      tokens,
		cipher:      cipher,
		auditor:     auditor,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// Signup validates the registration input, creates the user with an
// encrypted SSN and a default checking account, and starts their session.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	if err := validateSignup(&req, s.now()); err != nil {
		return nil, err
	}
	email := validation.NormalizeEmail(req.Email)

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup email: %v", ErrInternal, err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyRegistered
	}

	hashed, err := s.hasher.Hash([]byte(req.Password))
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}
	encryptedSSN, err := s.cipher.Encrypt(req.SSN)
	if err != nil {
		return nil, fmt.Errorf("%w: encrypt ssn: %v", ErrInternal, err)
	}

	now := s.now()
	user := &userdomain.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hashed,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Phone:        strings.TrimSpace(req.PhoneNumber),
		DateOfBirth:  req.DateOfBirth,
		SSNEncrypted: encryptedSSN,
		SSNLast4:     security.SSNLast4(req.SSN),
		Address:      strings.TrimSpace(req.Address),
		City:         strings.TrimSpace(req.City),
		State:        strings.ToUpper(strings.TrimSpace(req.State)),
		ZipCode:      req.ZipCode,
		Status:       userdomain.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := user.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	account, err := accountservice.NewDefaultAccount(user.ID, now)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}
	if err := s.userRepo.CreateWithAccount(ctx, user, account); err != nil {
		// A concurrent signup can land between the GetByEmail check and the
		// insert; the unique constraint catches it.
		if isEmailUniqueViolation(err) {
			return nil, ErrEmailAlreadyRegistered
		}
		return nil, fmt.Errorf("%w: create user: %v", ErrInternal, err)
	}

	// Read the row back instead of trusting the in-memory copy. A missing
	// row here means the write did not land; fail loudly rather than hand
	// out a session for a user that does not exist.
	created, err := s.userRepo.GetByID(ctx, user.ID)
	if err != nil || created == nil {
		return nil, fmt.Errorf("%w: user not found after create", ErrInternal)
	}

	result, err := s.startSession(ctx, created)
	if err != nil {
		return nil, err
	}
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, created.ID, auditdomain.ActionSignup, "user", "")
	}
	return result, nil
}

// Login authenticates with email and password and replaces any existing
// session. Unknown emails, wrong passwords, and disabled users all return
// ErrInvalidCredentials; the response never reveals which check failed.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	email = validation.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup email: %v", ErrInternal, err)
	}
	if user == nil || user.Status != userdomain.StatusActive {
		s.auditFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}
	if err := s.hasher.Compare(user.PasswordHash, []byte(password)); err != nil {
		s.auditFailure(ctx, email)
		return nil, ErrInvalidCredentials
	}

	result, err := s.startSession(ctx, user)
	if err != nil {
		return nil, err
	}
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, user.ID, auditdomain.ActionLoginSuccess, "session", "")
	}
	return result, nil
}

// Logout removes all sessions for the user and verifies none remain.
// Success is reported only when the follow-up count reads zero; a deletion
// that leaves rows behind is a failure, never a false success.
func (s *AuthService) Logout(ctx context.Context, userID string) (*LogoutResult, error) {
	deleted, err := s.sessionRepo.DeleteAllForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: delete sessions: %v", ErrInternal, err)
	}
	if deleted == 0 {
		return &LogoutResult{Success: false, Message: "No active session to logout"}, nil
	}
	remaining, err := s.sessionRepo.CountForUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: count sessions: %v", ErrInternal, err)
	}
	if remaining != 0 {
		return &LogoutResult{Success: false, Message: "Failed to invalidate all sessions"}, nil
	}
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, userID, auditdomain.ActionLogout, "session", "")
	}
	return &LogoutResult{Success: true, Message: "Logged out successfully"}, nil
}

// Authenticate resolves a session token to its user. The token must parse,
// the session row must exist and sit outside the expiry buffer, and the
// user must still be active.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*userdomain.User, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	userID, err := s.tokens.Validate(token)
	if err != nil {
		return nil, ErrInvalidSession
	}
	sess, err := s.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup session: %v", ErrInternal, err)
	}
	if sess == nil || sess.UserID != userID {
		return nil, ErrInvalidSession
	}
	if v := sess.Check(s.now()); !v.Valid {
		return nil, ErrInvalidSession
	}
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: lookup user: %v", ErrInternal, err)
	}
	if user == nil || user.Status != userdomain.StatusActive {
		return nil, ErrInvalidSession
	}
	return user, nil
}

func (s *AuthService) startSession(ctx context.Context, user *userdomain.User) (*AuthResult, error) {
	token, expiresAt, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}
	sess := &sessiondomain.Session{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: expiresAt,
		CreatedAt: s.now(),
	}
	if err := s.sessionRepo.Replace(ctx, sess); err != nil {
		return nil, fmt.Errorf("%w: store session: %v", ErrInternal, err)
	}
	return &AuthResult{User: user.Sanitized(), Token: token, ExpiresAt: expiresAt}, nil
}

// isEmailUniqueViolation reports whether err is the users.email unique
// constraint firing (Postgres error 23505 on users_email_key).
func isEmailUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "email")
}

func (s *AuthService) auditFailure(ctx context.Context, email string) {
	if s.auditor != nil {
		s.auditor.LogEvent(ctx, "", auditdomain.ActionLoginFailure, "session",
			fmt.Sprintf(`{"email":%q}`, email))
	}
}

func validateSignup(req *SignupRequest, now time.Time) error {
	if err := validation.ValidateRequired("firstName", req.FirstName); err != nil {
		return err
	}
	if err := validation.ValidateRequired("lastName", req.LastName); err != nil {
		return err
	}
	if err := validation.ValidateEmail(validation.NormalizeEmail(req.Email)); err != nil {
		return err
	}
	if err := security.ValidatePassword(req.Password); err != nil {
		return err
	}
	if err := validation.ValidatePhone(req.PhoneNumber); err != nil {
		return err
	}
	if err := validation.ValidateDateOfBirth(req.DateOfBirth, now); err != nil {
		return err
	}
	if err := validation.ValidateSSN(req.SSN); err != nil {
		return err
	}
	if err := validation.ValidateRequired("address", req.Address); err != nil {
		return err
	}
	if err := validation.ValidateRequired("city", req.City); err != nil {
		return err
	}
	if err := validation.ValidateState(req.State); err != nil {
		return err
	}
	return validation.ValidateZip(req.ZipCode)
}
