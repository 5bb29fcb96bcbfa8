package mockapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/deprtest/e2e/internal/models"
)

const subjectKey = "mockapi.subject"

// IssueToken signs a token for username.
func (s *Server) IssueToken(username string) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return token, nil
}

func (s *Server) verify(raw string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			apiError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			apiError(c, http.StatusUnauthorized, "Not authenticated")
			return
		}
		subject, err := s.verify(raw)
		if err != nil {
			apiError(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		c.Set(subjectKey, subject)
		c.Next()
	}
}

func (s *Server) HandleLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		apiError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.RLock()
	account, ok := s.accounts[req.Username]
	s.mu.RUnlock()
	if !ok || account.Password != req.Password {
		apiError(c, http.StatusUnauthorized, InvalidCredentials)
		return
	}

	token, err := s.IssueToken(account.Username)
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: token, User: account.User})
}

func (s *Server) HandleRefresh(c *gin.Context) {
	token, err := s.IssueToken(c.GetString(subjectKey))
	if err != nil {
		apiError(c, http.StatusInternalServerError, err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// HandleRegister creates a user and a matching login.
func (s *Server) HandleRegister(c *gin.Context) {
	u := models.NewUser()
	if err := c.ShouldBindJSON(&u); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := u.Validate(); err != nil {
		apiError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.accounts[u.Username]; exists {
		apiError(c, http.StatusConflict, "Username already registered")
		return
	}
	s.nextID++
	u.ID = s.nextID
	password := u.Password
	u.Password = ""
	s.users[u.ID] = u
	s.accounts[u.Username] = Account{Username: u.Username, Password: password, User: u}
	c.JSON(http.StatusCreated, u)
}
