package mockapi

import (
	"encoding/json"
	"math"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/deprtest/e2e/internal/models"
)

const defaultPageSize = 50

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		apiError(c, http.StatusNotFound, "Not found")
		return 0, false
	}
	return id, true
}

// paginate slices items by the page/size query parameters.
func paginate[T any](c *gin.Context, items []T) models.Page[T] {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", strconv.Itoa(defaultPageSize)))
	if err != nil || size < 1 {
		size = defaultPageSize
	}

	total := len(items)
	start := (page - 1) * size
	if start > total {
		start = total
	}
	end := start + size
	if end > total {
		end = total
	}
	return models.Page[T]{
		Items: items[start:end],
		Total: total,
		Page:  page,
		Size:  size,
		Pages: int(math.Ceil(float64(total) / float64(size))),
	}
}

// merge applies the JSON object in body onto dst, leaving absent fields alone.
func merge(c *gin.Context, dst any) bool {
	body, err := c.GetRawData()
	if err != nil || len(body) == 0 {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func (s *Server) stamp() string {
	return s.now().UTC().Format(time.RFC3339)
}

func (s *Server) HandleListUsers(c *gin.Context) {
	s.mu.RLock()
	users := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u)
	}
	s.mu.RUnlock()

	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	c.JSON(http.StatusOK, paginate(c, users))
}

func (s *Server) HandleGetUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.RLock()
	u, found := s.users[id]
	s.mu.RUnlock()
	if !found {
		apiError(c, http.StatusNotFound, "User not found")
		return
	}
	c.JSON(http.StatusOK, u)
}

func (s *Server) HandleCreateUser(c *gin.Context) {
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
	s.nextID++
	u.ID = s.nextID
	u.Password = ""
	if u.CreatedAt == "" {
		u.CreatedAt = s.stamp()
	}
	s.users[u.ID] = u
	s.mu.Unlock()

	c.JSON(http.StatusCreated, u)
}

func (s *Server) HandleUpdateUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	u, found := s.users[id]
	if !found {
		apiError(c, http.StatusNotFound, "User not found")
		return
	}
	if !merge(c, &u) {
		return
	}
	u.ID = id
	u.Password = ""
	if err := u.Validate(); err != nil {
		apiError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.users[id] = u
	c.JSON(http.StatusOK, u)
}

func (s *Server) HandleDeleteUser(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.users[id]; !found {
		apiError(c, http.StatusNotFound, "User not found")
		return
	}
	delete(s.users, id)
	c.Status(http.StatusNoContent)
}

func (s *Server) HandleListContacts(c *gin.Context) {
	var owner int64
	if raw := c.Query("user_id"); raw != "" {
		v, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			apiError(c, http.StatusUnprocessableEntity, "user_id must be an integer")
			return
		}
		owner = v
	}

	s.mu.RLock()
	contacts := make([]models.Contact, 0, len(s.contacts))
	for _, ct := range s.contacts {
		if owner != 0 && ct.UserID != owner {
			continue
		}
		contacts = append(contacts, ct)
	}
	s.mu.RUnlock()

	sort.Slice(contacts, func(i, j int) bool { return contacts[i].ID < contacts[j].ID })
	c.JSON(http.StatusOK, paginate(c, contacts))
}

func (s *Server) HandleGetContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.RLock()
	ct, found := s.contacts[id]
	s.mu.RUnlock()
	if !found {
		apiError(c, http.StatusNotFound, "Contact not found")
		return
	}
	c.JSON(http.StatusOK, ct)
}

func (s *Server) HandleCreateContact(c *gin.Context) {
	var ct models.Contact
	if err := c.ShouldBindJSON(&ct); err != nil {
		apiError(c, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := ct.Validate(); err != nil {
		apiError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}

	s.mu.Lock()
	s.nextID++
	ct.ID = s.nextID
	if ct.CreatedAt == "" {
		ct.CreatedAt = s.stamp()
	}
	s.contacts[ct.ID] = ct
	s.mu.Unlock()

	c.JSON(http.StatusCreated, ct)
}

func (s *Server) HandleUpdateContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	ct, found := s.contacts[id]
	if !found {
		apiError(c, http.StatusNotFound, "Contact not found")
		return
	}
	if !merge(c, &ct) {
		return
	}
	ct.ID = id
	if err := ct.Validate(); err != nil {
		apiError(c, http.StatusUnprocessableEntity, err.Error())
		return
	}
	s.contacts[id] = ct
	c.JSON(http.StatusOK, ct)
}

func (s *Server) HandleDeleteContact(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, found := s.contacts[id]; !found {
		apiError(c, http.StatusNotFound, "Contact not found")
		return
	}
	delete(s.contacts, id)
	c.Status(http.StatusNoContent)
}
