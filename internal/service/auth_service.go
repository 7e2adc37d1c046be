package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"github.com/venezolean/POSPLIPSHOP/internal/config"
	"github.com/venezolean/POSPLIPSHOP/internal/dto"
	"github.com/venezolean/POSPLIPSHOP/internal/gateway"
	"github.com/venezolean/POSPLIPSHOP/internal/model"
)

type AuthService interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error)
}

type authService struct {
	operadores gateway.OperadorGateway
	cfg        *config.Config
}

func NewAuthService(operadores gateway.OperadorGateway, cfg *config.Config) AuthService {
	return &authService{operadores: operadores, cfg: cfg}
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	operador, err := s.operadores.BuscarPorUsername(ctx, req.Username)
	if err != nil || operador == nil || !operador.Activo {
		return nil, errors.New("credenciales invalidas")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operador.PasswordHash), []byte(req.Password)); err != nil {
		return nil, errors.New("credenciales invalidas")
	}

	return s.respuesta(operador)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*dto.LoginResponse, error) {
	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("refresh token invalido o expirado")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, errors.New("claims invalidos")
	}
	username, ok := claims["username"].(string)
	if !ok {
		return nil, errors.New("token mal formado")
	}

	operador, err := s.operadores.BuscarPorUsername(ctx, username)
	if err != nil || operador == nil || !operador.Activo {
		return nil, errors.New("operador no encontrado o inactivo")
	}

	return s.respuesta(operador)
}

func (s *authService) respuesta(operador *model.Operador) (*dto.LoginResponse, error) {
	accessToken, err := s.generarToken(operador, time.Duration(s.cfg.JWTExpirationHours)*time.Hour)
	if err != nil {
		return nil, err
	}
	refreshToken, err := s.generarToken(operador, time.Duration(s.cfg.JWTRefreshHours)*time.Hour)
	if err != nil {
		return nil, err
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "bearer",
		ExpiresIn:    s.cfg.JWTExpirationHours * 3600,
		Operador: dto.OperadorResponse{
			ID:       operador.ID,
			Username: operador.Username,
			Nombre:   operador.Nombre,
			Rol:      operador.Rol,
			Activo:   operador.Activo,
		},
	}, nil
}

func (s *authService) generarToken(operador *model.Operador, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"operador_id": operador.ID,
		"username":    operador.Username,
		"rol":         operador.Rol,
		"exp":         time.Now().Add(ttl).Unix(),
		"iat":         time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
