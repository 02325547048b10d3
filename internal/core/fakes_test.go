package core

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"pawmart-backend/internal/db"
	"pawmart-backend/internal/models"
	"pawmart-backend/pkg/cache"
)

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[string]*models.User
	lookups int
	getErr  error
}

func newFakeUserRepo(users ...*models.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[string]*models.User)}
	for _, u := range users {
		r.users[u.UID] = u
	}
	return r
}

func (r *fakeUserRepo) GetByID(_ context.Context, uid string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lookups++
	if r.getErr != nil {
		return nil, r.getErr
	}
	u, ok := r.users[uid]
	if !ok {
		return nil, fmt.Errorf("get user '%s': %w", uid, db.ErrNotFound)
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.UID]; ok {
		return db.ErrAlreadyExists
	}
	cp := *user
	r.users[user.UID] = &cp
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, uid string, fields map[string]interface{}) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[uid]
	if !ok {
		return db.ErrNotFound
	}
	for k, v := range fields {
		switch k {
		case "email":
			u.Email = v.(string)
		case "displayName":
			u.DisplayName = v.(string)
		case "photoURL":
			u.PhotoURL = v.(string)
		case "role":
			u.Role = v.(string)
		case "updatedAt":
			t := v.(time.Time)
			u.UpdatedAt = &t
		}
	}
	return nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) setRole(uid, role string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[uid].Role = role
}

type fakeDocStore struct {
	mu      sync.Mutex
	docs    map[string]db.Document
	nextID  int
	prefix  string
	updates int
	getErr  error
}

func newFakeDocStore(prefix string) *fakeDocStore {
	return &fakeDocStore{docs: make(map[string]db.Document), prefix: prefix}
}

func (s *fakeDocStore) put(id string, doc db.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := db.Document{}
	for k, v := range doc {
		cp[k] = v
	}
	s.docs[id] = cp
}

func (s *fakeDocStore) add(doc db.Document) string {
	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("%s-%d", s.prefix, s.nextID)
	s.mu.Unlock()
	s.put(id, doc)
	return id
}

func (s *fakeDocStore) get(id string) (db.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.getErr != nil {
		return nil, s.getErr
	}
	doc, ok := s.docs[id]
	if !ok {
		return nil, fmt.Errorf("get '%s': %w", id, db.ErrNotFound)
	}
	cp := db.Document{"_id": id}
	for k, v := range doc {
		cp[k] = v
	}
	return cp, nil
}

func (s *fakeDocStore) filter(match func(db.Document) bool) []db.Document {
	s.mu.Lock()
	ids := make([]string, 0, len(s.docs))
	for id, doc := range s.docs {
		if match(doc) {
			ids = append(ids, id)
		}
	}
	s.mu.Unlock()

	out := make([]db.Document, 0, len(ids))
	for _, id := range ids {
		doc, _ := s.get(id)
		out = append(out, doc)
	}
	return out
}

func (s *fakeDocStore) update(id string, fields map[string]interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok {
		return db.ErrNotFound
	}
	for k, v := range fields {
		doc[k] = v
	}
	s.updates++
	return nil
}

func (s *fakeDocStore) remove(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[id]; !ok {
		return db.ErrNotFound
	}
	delete(s.docs, id)
	return nil
}

type fakeListingRepo struct {
	*fakeDocStore
	listCalls int
	// afterList, when set, runs once after ListByStatus has read its
	// snapshot and before it returns.
	afterList func()
}

func newFakeListingRepo() *fakeListingRepo {
	return &fakeListingRepo{fakeDocStore: newFakeDocStore("listing")}
}

func (r *fakeListingRepo) Create(_ context.Context, l *models.Listing) (string, error) {
	doc := db.Document{
		"name":        l.Name,
		"category":    l.Category,
		"price":       l.Price,
		"location":    l.Location,
		"description": l.Description,
		"imageUrl":    l.ImageURL,
		"email":       l.Email,
		"pickupDate":  l.PickupDate,
		"status":      l.Status,
		"createdAt":   l.CreatedAt,
	}
	if l.UserID != nil {
		doc["userId"] = *l.UserID
	}
	if l.UserName != nil {
		doc["userName"] = *l.UserName
	}
	id := r.add(doc)
	l.ID = id
	return id, nil
}

func (r *fakeListingRepo) GetByID(_ context.Context, id string) (db.Document, error) {
	return r.get(id)
}

func (r *fakeListingRepo) ListByStatus(_ context.Context, status string) ([]db.Document, error) {
	r.listCalls++
	docs := r.filter(func(d db.Document) bool { return status == "" || d["status"] == status })
	if hook := r.afterList; hook != nil {
		r.afterList = nil
		hook()
	}
	return docs, nil
}

func (r *fakeListingRepo) ListByOwner(_ context.Context, owner models.Owner) ([]db.Document, error) {
	return r.filter(func(d db.Document) bool {
		return (owner.UserID != "" && d["userId"] == owner.UserID) || (owner.Email != "" && d["email"] == owner.Email)
	}), nil
}

func (r *fakeListingRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	return r.update(id, fields)
}

func (r *fakeListingRepo) Delete(_ context.Context, id string) error {
	return r.remove(id)
}

type fakeOrderRepo struct {
	*fakeDocStore
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{fakeDocStore: newFakeDocStore("order")}
}

func (r *fakeOrderRepo) Create(_ context.Context, o *models.Order) (string, error) {
	id := r.add(db.Document{
		"buyerName":   o.BuyerName,
		"email":       o.Email,
		"listingId":   o.ListingID,
		"listingName": o.ListingName,
		"quantity":    o.Quantity,
		"price":       o.Price,
		"status":      o.Status,
		"createdAt":   o.CreatedAt,
	})
	o.ID = id
	return id, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id string) (db.Document, error) {
	return r.get(id)
}

func (r *fakeOrderRepo) ListByEmail(_ context.Context, email string) ([]db.Document, error) {
	return r.filter(func(d db.Document) bool { return email == "" || d["email"] == email }), nil
}

func (r *fakeOrderRepo) Update(_ context.Context, id string, fields map[string]interface{}) error {
	return r.update(id, fields)
}

func (r *fakeOrderRepo) Delete(_ context.Context, id string) error {
	return r.remove(id)
}

type fakeAuditRepo struct {
	mu      sync.Mutex
	entries []models.AuditLog
}

func (r *fakeAuditRepo) Create(_ context.Context, entry models.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
	return nil
}

type publishedEvent struct {
	Type string
	Data interface{}
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

func (p *fakePublisher) Publish(_ context.Context, eventType string, data interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{Type: eventType, Data: data})
}

func (p *fakePublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deletes int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.entries[key]
	if !ok {
		return nil, cache.ErrMiss
	}
	return v, nil
}

func (c *memoryCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *memoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range keys {
		delete(c.entries, k)
	}
	c.deletes++
	return nil
}

func (c *memoryCache) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	var n int64
	if v, ok := c.entries[key]; ok {
		parsed, err := strconv.ParseInt(string(v), 10, 64)
		if err != nil {
			return 0, err
		}
		n = parsed
	}
	n++
	c.entries[key] = []byte(strconv.FormatInt(n, 10))
	return n, nil
}

func (c *memoryCache) Close() error { return nil }

var (
	alice = &models.Principal{SubjectID: "uid-alice", Email: "alice@pawmart.test", Name: "Alice"}
	bob   = &models.Principal{SubjectID: "uid-bob", Email: "bob@pawmart.test", Name: "Bob"}
	admin = &models.Principal{SubjectID: "uid-admin", Email: "admin@pawmart.test", Name: "Admin"}
)

func defaultUsers() *fakeUserRepo {
	return newFakeUserRepo(
		&models.User{UID: alice.SubjectID, Email: alice.Email, Role: models.RoleUser},
		&models.User{UID: admin.SubjectID, Email: admin.Email, Role: models.RoleAdmin},
	)
}
