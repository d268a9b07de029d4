package auth

import (
	"context"
	"crypto/subtle"
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"

	logrepo "github.com/seapgd/docket-core/internal/accesslog/repo"
	"github.com/seapgd/docket-core/internal/user"
	"github.com/seapgd/docket-core/internal/user/entity"
	userrepo "github.com/seapgd/docket-core/internal/user/repo"
)

// UnknownMatriculaError / WrongPasswordError carry the operator-facing 401
// messages; both record an audit row before surfacing.
type UnknownMatriculaError struct{ Matricula string }

func (e *UnknownMatriculaError) Error() string {
	return fmt.Sprintf("ACESSO NEGADO: A matrícula %s não está cadastrada no sistema. Apenas usuários pré-cadastrados pelos administradores podem fazer login. Contate o administrador para solicitar cadastro.", e.Matricula)
}

type WrongPasswordError struct{ Matricula string }

func (e *WrongPasswordError) Error() string {
	return fmt.Sprintf("Senha incorreta para a matrícula %s. Use a senha fornecida pelo administrador.", e.Matricula)
}

var ErrLegacyPassword = errors.New("Senha incorreta. Use a senha administrativa ou a senha de usuário fornecida.")

// LegacyConfig holds the two shared secrets of the legacy login mode.
type LegacyConfig struct {
	AdminPassword string
	UserPassword  string
}

// LegacyConfigFromEnv reads the shared secrets, falling back to the
// historical defaults the dashboard shipped with.
func LegacyConfigFromEnv() LegacyConfig {
	admin := os.Getenv("SEAP_ADMIN_PASSWORD")
	if admin == "" {
		admin = "Guardiao"
	}
	usr := os.Getenv("SEAP_USER_PASSWORD")
	if usr == "" {
		usr = "Usuario123"
	}
	return LegacyConfig{AdminPassword: admin, UserPassword: usr}
}

// Service performs the two login schemes and logout, recording every
// per-matricula attempt in the access log.
type Service struct {
	users    *userrepo.UserRepo
	logs     *logrepo.AccessLogRepo
	hasher   user.PasswordHasher
	sessions *Sessions
	legacy   LegacyConfig
}

func NewService(db *sqlx.DB, sessions *Sessions, legacy LegacyConfig) *Service {
	return &Service{
		users:    userrepo.NewUserRepo(db),
		logs:     logrepo.NewAccessLogRepo(db),
		hasher:   user.BcryptHasher{Cost: 12},
		sessions: sessions,
		legacy:   legacy,
	}
}

// Login authenticates a pre-registered user by matricula and password.
// Every attempt, failed or not, lands in access_logs with the client address.
func (s *Service) Login(ctx context.Context, matricula, password, ip, userAgent string) (*entity.User, string, error) {
	u, err := s.users.GetActiveByMatricula(ctx, matricula)
	if errors.Is(err, sql.ErrNoRows) {
		if logErr := s.logs.RecordAttempt(ctx, nil, matricula, ip, userAgent, false); logErr != nil {
			return nil, "", logErr
		}
		return nil, "", &UnknownMatriculaError{Matricula: matricula}
	}
	if err != nil {
		return nil, "", err
	}

	if !s.hasher.Verify(u.PasswordHash, password) {
		if logErr := s.logs.RecordAttempt(ctx, &u.ID, matricula, ip, userAgent, false); logErr != nil {
			return nil, "", logErr
		}
		return nil, "", &WrongPasswordError{Matricula: matricula}
	}

	if err := s.logs.RecordAttempt(ctx, &u.ID, matricula, ip, userAgent, true); err != nil {
		return nil, "", err
	}
	token, err := s.sessions.Issue(u.ID, u.Name, u.Role, u.Matricula)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// LoginLegacy checks the shared secrets and returns the coarse user type.
func (s *Service) LoginLegacy(password string) (string, string, error) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.legacy.AdminPassword)) == 1 {
		token, err := s.sessions.Issue(0, "legacy-admin", entity.RoleAdmin, "")
		return "admin", token, err
	}
	if subtle.ConstantTimeCompare([]byte(password), []byte(s.legacy.UserPassword)) == 1 {
		token, err := s.sessions.Issue(0, "legacy-user", entity.RoleUser, "")
		return "user", token, err
	}
	return "", "", ErrLegacyPassword
}

// Logout closes any open access-log sessions for the matricula. A missing
// matricula (legacy sessions) is a no-op success.
func (s *Service) Logout(ctx context.Context, matricula string) error {
	if matricula == "" {
		return nil
	}
	_, err := s.logs.CloseSessions(ctx, matricula)
	return err
}
