package auth

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/racunko-api/internal/application/dto"
	"github.com/jhoicas/racunko-api/internal/domain"
	"github.com/jhoicas/racunko-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// Credentials usuario único de la aplicación. PasswordHash (bcrypt) tiene prioridad;
// si falta se hashea Password al construir el caso de uso.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// AuthUseCase login y verificación de tokens.
type AuthUseCase struct {
	username string
	hash     []byte
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(creds Credentials, jwtCfg JWTConfig) (*AuthUseCase, error) {
	if strings.TrimSpace(creds.Username) == "" {
		return nil, errors.New("auth: falta el usuario")
	}
	if jwtCfg.Secret == "" {
		return nil, errors.New("auth: falta el secreto JWT")
	}
	hash := []byte(creds.PasswordHash)
	if len(hash) == 0 {
		if creds.Password == "" {
			return nil, errors.New("auth: falta AUTH_PASSWORD o AUTH_PASSWORD_HASH")
		}
		h, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("auth: hash de contraseña: %w", err)
		}
		hash = h
	} else if _, err := bcrypt.Cost(hash); err != nil {
		return nil, fmt.Errorf("auth: AUTH_PASSWORD_HASH no es bcrypt: %w", err)
	}
	return &AuthUseCase{username: creds.Username, hash: hash, jwtCfg: jwtCfg}, nil
}

// Login verifica usuario/password y emite un JWT.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Username != uc.username {
		// comparar igual para no filtrar por tiempo si el usuario existe
		_ = bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword(uc.hash, []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, exp, err := jwt.Generate(uc.jwtCfg.Secret, uc.username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, Username: uc.username, ExpiresAt: exp}, nil
}

// Verify valida el token y devuelve la sesión. ErrUnauthorized si es inválido o expiró.
func (uc *AuthUseCase) Verify(token string) (*dto.VerifyResponse, error) {
	token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	if token == "" {
		return nil, domain.ErrUnauthorized
	}
	s, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	return &dto.VerifyResponse{Valid: true, Username: s.Username, IssuedAt: s.IssuedAt, ExpiresAt: s.ExpiresAt}, nil
}

// Secret secreto usado por el middleware para validar tokens.
func (uc *AuthUseCase) Secret() string { return uc.jwtCfg.Secret }
