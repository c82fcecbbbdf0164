// Package hrtest runs an in-memory stand-in for the external HR
// service so client and console tests can exercise the real HTTP
// paths, including token issuance, refresh and bearer enforcement.
package hrtest

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type claims struct {
	Username  string `json:"username"`
	TokenType string `json:"token_type"`
	jwt.RegisteredClaims
}

// Server is one fake HR backend instance. Counters are exposed so
// tests can assert on exactly-once refresh semantics.
type Server struct {
	ts     *httptest.Server
	secret []byte

	mu           sync.Mutex
	users        map[string][]byte
	employees    map[int64]map[string]interface{}
	nextID       int64
	fieldDefs    map[int64]map[string]interface{}
	nextDefID    int64
	form         map[string]interface{}
	accessTTL    time.Duration
	RefreshCalls int
	PathCalls    map[string]int
}

// NewServer seeds one account and starts the backend.
func NewServer(username, password string) *Server {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)

	s := &Server{
		secret:    []byte("hrtest-secret"),
		users:     map[string][]byte{username: hash},
		employees: map[int64]map[string]interface{}{},
		nextID:    1,
		fieldDefs: map[int64]map[string]interface{}{},
		nextDefID: 1,
		form: map[string]interface{}{
			"form_name":        "Employee Form",
			"form_description": "",
			"fields":           []interface{}{},
			"is_active":        true,
		},
		accessTTL: time.Hour,
		PathCalls: map[string]int{},
	}

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(s.count)

	r.POST("/token/", s.token)
	r.POST("/token/refresh/", s.refresh)
	r.POST("/register/", s.register)

	auth := r.Group("/", s.requireBearer)
	{
		auth.POST("/change-password/", s.changePassword)
		auth.GET("/employees/", s.listEmployees)
		auth.POST("/employees/", s.createEmployee)
		auth.GET("/employees/:id/", s.getEmployee)
		auth.PUT("/employees/:id/", s.updateEmployee)
		auth.DELETE("/employees/:id/", s.deleteEmployee)
		auth.GET("/employee-field-definitions/", s.listFieldDefs)
		auth.POST("/employee-field-definitions/", s.createFieldDef)
		auth.PUT("/employee-field-definitions/:id/", s.updateFieldDef)
		auth.DELETE("/employee-field-definitions/:id/", s.deleteFieldDef)
		auth.GET("/forms/:id/", s.getForm)
		auth.PUT("/forms/:id/", s.putForm)
	}

	s.ts = httptest.NewServer(r)
	return s
}

func (s *Server) URL() string { return s.ts.URL }
func (s *Server) Close()      { s.ts.Close() }

// SetAccessTTL controls the lifetime of subsequently issued access
// tokens; a negative value issues already-expired ones.
func (s *Server) SetAccessTTL(ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accessTTL = ttl
}

func (s *Server) Calls(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.PathCalls[path]
}

func (s *Server) count(c *gin.Context) {
	s.mu.Lock()
	s.PathCalls[c.Request.URL.Path]++
	s.mu.Unlock()
	c.Next()
}

func (s *Server) sign(username, tokenType string, ttl time.Duration) string {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims{
		Username:  username,
		TokenType: tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			Issuer:    "hrtest",
		},
	})
	signed, _ := token.SignedString(s.secret)
	return signed
}

func (s *Server) parse(tokenStr string) (*claims, error) {
	parsed := &claims{}
	token, err := jwt.ParseWithClaims(tokenStr, parsed, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, err
	}
	return parsed, nil
}

func (s *Server) requireBearer(c *gin.Context) {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Authorization required"})
		return
	}
	parsed, err := s.parse(parts[1])
	if err != nil || parsed.TokenType != "access" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}
	c.Set("username", parsed.Username)
	c.Next()
}

func (s *Server) token(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	s.mu.Lock()
	hash, ok := s.users[req.Username]
	ttl := s.accessTTL
	s.mu.Unlock()

	if !ok || bcrypt.CompareHashAndPassword(hash, []byte(req.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "No active account found with the given credentials"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"access":  s.sign(req.Username, "access", ttl),
		"refresh": s.sign(req.Username, "refresh", 24*time.Hour),
	})
}

func (s *Server) refresh(c *gin.Context) {
	s.mu.Lock()
	s.RefreshCalls++
	ttl := s.accessTTL
	s.mu.Unlock()

	var req struct {
		Refresh string `json:"refresh"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	parsed, err := s.parse(req.Refresh)
	if err != nil || parsed.TokenType != "refresh" {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Token is invalid or expired"})
		return
	}

	// Refreshed access tokens get a sane lifetime even if the server
	// was told to issue expired ones, so the retried request succeeds.
	if ttl <= 0 {
		ttl = time.Hour
	}
	c.JSON(http.StatusOK, gin.H{"access": s.sign(parsed.Username, "access", ttl)})
}

func (s *Server) register(c *gin.Context) {
	var req struct {
		Username  string `json:"username"`
		Email     string `json:"email"`
		Password  string `json:"password"`
		Password2 string `json:"password2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Username == "" {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	if req.Password != req.Password2 {
		c.JSON(http.StatusBadRequest, gin.H{"password": []string{"Passwords do not match"}})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.users[req.Username]; taken {
		c.JSON(http.StatusBadRequest, gin.H{"username": []string{"A user with that username already exists."}})
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.MinCost)
	s.users[req.Username] = hash
	c.JSON(http.StatusCreated, gin.H{"username": req.Username})
}

func (s *Server) changePassword(c *gin.Context) {
	var req struct {
		OldPassword  string `json:"old_password"`
		NewPassword  string `json:"new_password"`
		NewPassword2 string `json:"new_password2"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	username := c.GetString("username")

	s.mu.Lock()
	defer s.mu.Unlock()
	if bcrypt.CompareHashAndPassword(s.users[username], []byte(req.OldPassword)) != nil {
		c.JSON(http.StatusBadRequest, gin.H{"old_password": []string{"Old password is incorrect"}})
		return
	}
	if req.NewPassword != req.NewPassword2 {
		c.JSON(http.StatusBadRequest, gin.H{"new_password": []string{"Passwords do not match"}})
		return
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.MinCost)
	s.users[username] = hash
	c.JSON(http.StatusOK, gin.H{"detail": "Password changed"})
}

func (s *Server) listEmployees(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]map[string]interface{}, 0, len(s.employees))
	for id := int64(1); id < s.nextID; id++ {
		if e, ok := s.employees[id]; ok {
			list = append(list, e)
		}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createEmployee(c *gin.Context) {
	var record map[string]interface{}
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	record["id"] = s.nextID
	s.employees[s.nextID] = record
	s.nextID++
	c.JSON(http.StatusCreated, record)
}

func (s *Server) employeeID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}

func (s *Server) getEmployee(c *gin.Context) {
	id, ok := s.employeeID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	e, exists := s.employees[id]
	if !exists {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	c.JSON(http.StatusOK, e)
}

func (s *Server) updateEmployee(c *gin.Context) {
	id, ok := s.employeeID(c)
	if !ok {
		return
	}
	var record map[string]interface{}
	if err := c.ShouldBindJSON(&record); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.employees[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	record["id"] = id
	s.employees[id] = record
	c.JSON(http.StatusOK, record)
}

func (s *Server) deleteEmployee(c *gin.Context) {
	id, ok := s.employeeID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.employees[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	delete(s.employees, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) listFieldDefs(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	list := make([]map[string]interface{}, 0, len(s.fieldDefs))
	for id := int64(1); id < s.nextDefID; id++ {
		if d, ok := s.fieldDefs[id]; ok {
			list = append(list, d)
		}
	}
	c.JSON(http.StatusOK, list)
}

func (s *Server) createFieldDef(c *gin.Context) {
	var def map[string]interface{}
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	def["id"] = s.nextDefID
	s.fieldDefs[s.nextDefID] = def
	s.nextDefID++
	c.JSON(http.StatusCreated, def)
}

func (s *Server) updateFieldDef(c *gin.Context) {
	id, ok := s.employeeID(c)
	if !ok {
		return
	}
	var def map[string]interface{}
	if err := c.ShouldBindJSON(&def); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.fieldDefs[id]; !exists {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not found."})
		return
	}
	def["id"] = id
	s.fieldDefs[id] = def
	c.JSON(http.StatusOK, def)
}

func (s *Server) deleteFieldDef(c *gin.Context) {
	id, ok := s.employeeID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.fieldDefs, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) getForm(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.form)
}

func (s *Server) putForm(c *gin.Context) {
	var form map[string]interface{}
	if err := c.ShouldBindJSON(&form); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request"})
		return
	}

	// Duplicate custom field names are the backend's domain conflict.
	seen := map[string]bool{}
	if fields, ok := form["fields"].([]interface{}); ok {
		for _, raw := range fields {
			f, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			name, _ := f["name"].(string)
			if seen[name] {
				c.JSON(http.StatusBadRequest, gin.H{"error": "duplicate field name: " + name})
				return
			}
			seen[name] = true
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.form = form
	c.JSON(http.StatusOK, form)
}
