package service

import (
	"strings"
	"time"

	"github.com/tienda-next/internal/config"
	"github.com/tienda-next/internal/constants"
	"github.com/tienda-next/internal/models"
	"github.com/tienda-next/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// CustomerClaims is the JWT payload of a storefront token.
type CustomerClaims struct {
	CustomerID uint   `json:"customer_id"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	jwt.RegisteredClaims
}

// AuthResult is the login/registration response payload.
type AuthResult struct {
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expires_at"`
	Customer  *models.Customer `json:"customer"`
}

// CustomerAuthService handles registration, login and token issuing
// for storefront accounts.
type CustomerAuthService struct {
	cfg          *config.Config
	customerRepo repository.CustomerRepository
}

// NewCustomerAuthService creates an auth service.
func NewCustomerAuthService(cfg *config.Config, customerRepo repository.CustomerRepository) *CustomerAuthService {
	return &CustomerAuthService{
		cfg:          cfg,
		customerRepo: customerRepo,
	}
}

// Register creates an account and returns a fresh token.
func (s *CustomerAuthService) Register(email, password, name string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") || len(password) < 6 {
		return nil, ErrInvalidCredentials
	}
	existing, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	customer := &models.Customer{
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(name),
		Role:         constants.RoleCustomer,
	}
	if err := s.customerRepo.Create(customer); err != nil {
		return nil, err
	}
	return s.issueToken(customer, false)
}

// Login verifies credentials and returns a token.
func (s *CustomerAuthService) Login(email, password string, rememberMe bool) (*AuthResult, error) {
	customer, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(customer, rememberMe)
}

// AdminLogin verifies console credentials. Only accounts with the
// admin role get a console token, signed with the admin secret.
func (s *CustomerAuthService) AdminLogin(email, password string, rememberMe bool) (*AuthResult, error) {
	customer, err := s.customerRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if customer == nil || customer.Role != constants.RoleAdmin {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(customer.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueTokenWith(customer, s.cfg.JWT, rememberMe)
}

func (s *CustomerAuthService) issueToken(customer *models.Customer, rememberMe bool) (*AuthResult, error) {
	return s.issueTokenWith(customer, s.cfg.UserJWT, rememberMe)
}

func (s *CustomerAuthService) issueTokenWith(customer *models.Customer, jwtCfg config.JWTConfig, rememberMe bool) (*AuthResult, error) {
	expireHours := jwtCfg.ExpireHours
	if rememberMe && jwtCfg.RememberMeExpireHours > 0 {
		expireHours = jwtCfg.RememberMeExpireHours
	}
	if expireHours <= 0 {
		expireHours = 24
	}
	now := time.Now()
	expiresAt := now.Add(time.Duration(expireHours) * time.Hour)

	claims := CustomerClaims{
		CustomerID: customer.ID,
		Email:      customer.Email,
		Role:       customer.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(jwtCfg.SecretKey))
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token:     tokenString,
		ExpiresAt: expiresAt,
		Customer:  customer,
	}, nil
}
