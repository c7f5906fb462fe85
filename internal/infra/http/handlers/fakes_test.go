package handlers

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/xavierca1/capacita-crm/internal/entity"
)

// In-memory repositories that honour the same contracts as the Postgres ones.

type memActivities struct {
	mu   sync.Mutex
	rows []*entity.Activity
}

func (m *memActivities) Record(_ context.Context, a *entity.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rows = append(m.rows, a)
	return nil
}

func (m *memActivities) ListByEntity(_ context.Context, id string) ([]*entity.Activity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Activity{}
	for i := len(m.rows) - 1; i >= 0; i-- {
		if m.rows[i].EntityID == id {
			out = append(out, m.rows[i])
		}
	}
	return out, nil
}

type memLeads struct {
	mu         sync.Mutex
	rows       map[string]*entity.Lead
	activities *memActivities
}

func newMemLeads(a *memActivities) *memLeads {
	return &memLeads{rows: map[string]*entity.Lead{}, activities: a}
}

func (m *memLeads) Create(_ context.Context, l *entity.Lead) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if r.Email == l.Email && r.Source == l.Source {
			return entity.ErrLeadAlreadyExists
		}
	}
	cp := *l
	m.rows[l.ID] = &cp
	return nil
}

func (m *memLeads) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	cp := *l
	return &cp, nil
}

func (m *memLeads) List(_ context.Context, f entity.LeadFilter) ([]*entity.Lead, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Lead{}
	for _, l := range m.rows {
		if f.Status != "" && l.Status != f.Status {
			continue
		}
		cp := *l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, len(out), nil
}

func (m *memLeads) Update(ctx context.Context, id string, p entity.LeadPatch, a *entity.Activity) (*entity.Lead, error) {
	m.mu.Lock()
	l, ok := m.rows[id]
	if !ok {
		m.mu.Unlock()
		return nil, entity.ErrLeadNotFound
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&l.Name, p.Name)
	set(&l.Lastname, p.Lastname)
	set(&l.Email, p.Email)
	set(&l.Company, p.Company)
	set(&l.Phone, p.Phone)
	set(&l.Interest, p.Interest)
	set(&l.Message, p.Message)
	set(&l.Source, p.Source)
	set(&l.Status, p.Status)
	set(&l.Notes, p.Notes)
	l.UpdatedAt = time.Now()
	cp := *l
	m.mu.Unlock()

	if a != nil {
		m.activities.Record(ctx, a)
	}
	return &cp, nil
}

func (m *memLeads) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return entity.ErrLeadNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memLeads) LinkContact(ctx context.Context, leadID, contactID, status string, a *entity.Activity) error {
	m.mu.Lock()
	l, ok := m.rows[leadID]
	if !ok {
		m.mu.Unlock()
		return entity.ErrLeadNotFound
	}
	if l.IsConverted() {
		m.mu.Unlock()
		return entity.ErrLeadAlreadyConverted
	}
	l.ConvertedToContactID = &contactID
	l.Status = status
	m.mu.Unlock()

	if a != nil {
		m.activities.Record(ctx, a)
	}
	return nil
}

func (m *memLeads) CountByStage(context.Context) (map[string]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := map[string]int{}
	for _, l := range m.rows {
		out[l.Status]++
	}
	return out, nil
}

func (m *memLeads) CountSince(_ context.Context, since time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.rows {
		if l.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

type memContacts struct {
	mu   sync.Mutex
	rows map[string]*entity.Contact
}

func newMemContacts() *memContacts {
	return &memContacts{rows: map[string]*entity.Contact{}}
}

func (m *memContacts) Create(_ context.Context, c *entity.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.rows {
		if strings.EqualFold(r.Email, c.Email) {
			return entity.ErrContactEmailExists
		}
	}
	cp := *c
	m.rows[c.ID] = &cp
	return nil
}

func (m *memContacts) FindByID(_ context.Context, id string) (*entity.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrContactNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *memContacts) FindByEmail(_ context.Context, email string) (*entity.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.rows {
		if strings.EqualFold(c.Email, email) {
			cp := *c
			return &cp, nil
		}
	}
	return nil, entity.ErrContactNotFound
}

func (m *memContacts) List(context.Context, entity.ContactFilter) ([]*entity.Contact, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Contact{}
	for _, c := range m.rows {
		cp := *c
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memContacts) Update(_ context.Context, id string, p entity.ContactPatch) (*entity.Contact, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrContactNotFound
	}
	if p.Email != nil {
		for otherID, r := range m.rows {
			if otherID != id && strings.EqualFold(r.Email, *p.Email) {
				return nil, entity.ErrContactEmailExists
			}
		}
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = *v
		}
	}
	set(&c.Name, p.Name)
	set(&c.Lastname, p.Lastname)
	set(&c.Email, p.Email)
	set(&c.Company, p.Company)
	set(&c.Phone, p.Phone)
	set(&c.Position, p.Position)
	set(&c.Notes, p.Notes)
	cp := *c
	return &cp, nil
}

func (m *memContacts) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return entity.ErrContactNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memContacts) Count(context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.rows), nil
}

type memDeals struct {
	mu         sync.Mutex
	rows       map[string]*entity.Deal
	activities *memActivities
}

func newMemDeals(a *memActivities) *memDeals {
	return &memDeals{rows: map[string]*entity.Deal{}, activities: a}
}

func (m *memDeals) Create(ctx context.Context, d *entity.Deal, a *entity.Activity) error {
	m.mu.Lock()
	cp := *d
	m.rows[d.ID] = &cp
	m.mu.Unlock()
	if a != nil {
		m.activities.Record(ctx, a)
	}
	return nil
}

func (m *memDeals) FindByID(_ context.Context, id string) (*entity.Deal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	d, ok := m.rows[id]
	if !ok {
		return nil, entity.ErrDealNotFound
	}
	cp := *d
	return &cp, nil
}

func (m *memDeals) List(context.Context, entity.DealFilter) ([]*entity.Deal, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []*entity.Deal{}
	for _, d := range m.rows {
		cp := *d
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (m *memDeals) Update(ctx context.Context, id string, p entity.DealPatch, a *entity.Activity) (*entity.Deal, error) {
	m.mu.Lock()
	d, ok := m.rows[id]
	if !ok {
		m.mu.Unlock()
		return nil, entity.ErrDealNotFound
	}
	if p.Stage != nil {
		d.Stage = *p.Stage
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Amount != nil {
		d.Amount = *p.Amount
	}
	if p.Currency != nil {
		d.Currency = *p.Currency
	}
	if p.Notes != nil {
		d.Notes = *p.Notes
	}
	switch {
	case p.ClearContact:
		d.ContactID = nil
	case p.ContactID != nil:
		contactID := *p.ContactID
		d.ContactID = &contactID
	}
	switch {
	case p.ClearCloseDate:
		d.ExpectedCloseDate = nil
	case p.ExpectedCloseDate != nil:
		date := *p.ExpectedCloseDate
		d.ExpectedCloseDate = &date
	}
	cp := *d
	m.mu.Unlock()

	if a != nil {
		m.activities.Record(ctx, a)
	}
	return &cp, nil
}

func (m *memDeals) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.rows[id]; !ok {
		return entity.ErrDealNotFound
	}
	delete(m.rows, id)
	return nil
}

func (m *memDeals) TotalsByStage(context.Context) ([]entity.StageTotal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	byStage := map[string]*entity.StageTotal{}
	for _, d := range m.rows {
		t, ok := byStage[d.Stage]
		if !ok {
			t = &entity.StageTotal{Stage: d.Stage}
			byStage[d.Stage] = t
		}
		t.Count++
		t.Amount += d.Amount
	}
	out := []entity.StageTotal{}
	for _, t := range byStage {
		out = append(out, *t)
	}
	return out, nil
}

type memAdmins struct {
	users map[string]*entity.AdminUser
}

func (m *memAdmins) Create(_ context.Context, u *entity.AdminUser) error {
	m.users[u.Email] = u
	return nil
}

func (m *memAdmins) FindByEmail(_ context.Context, email string) (*entity.AdminUser, error) {
	u, ok := m.users[email]
	if !ok {
		return nil, entity.ErrAdminNotFound
	}
	return u, nil
}

type memCourses struct {
	rows []*entity.Course
}

func (m *memCourses) Create(_ context.Context, c *entity.Course) error {
	for _, r := range m.rows {
		if r.Slug == c.Slug {
			return entity.ErrSlugAlreadyExists
		}
	}
	m.rows = append(m.rows, c)
	return nil
}

func (m *memCourses) FindByID(_ context.Context, id string) (*entity.Course, error) {
	for _, c := range m.rows {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, entity.ErrCourseNotFound
}

func (m *memCourses) FindActiveBySlug(_ context.Context, slug string) (*entity.Course, error) {
	for _, c := range m.rows {
		if c.Slug == slug && c.Active {
			return c, nil
		}
	}
	return nil, entity.ErrCourseNotFound
}

func (m *memCourses) List(_ context.Context, f entity.CourseFilter) ([]*entity.Course, int, error) {
	out := []*entity.Course{}
	for _, c := range m.rows {
		if f.ActiveOnly && !c.Active {
			continue
		}
		if f.Category != "" && c.CategorySlug != f.Category {
			continue
		}
		out = append(out, c)
	}
	return out, len(out), nil
}

func (m *memCourses) Update(_ context.Context, id string, p entity.CoursePatch) (*entity.Course, error) {
	for _, c := range m.rows {
		if c.ID == id {
			if p.Active != nil {
				c.Active = *p.Active
			}
			if p.Title != nil {
				c.Title = *p.Title
			}
			return c, nil
		}
	}
	return nil, entity.ErrCourseNotFound
}

func (m *memCourses) Delete(_ context.Context, id string) error {
	for i, c := range m.rows {
		if c.ID == id {
			m.rows = append(m.rows[:i], m.rows[i+1:]...)
			return nil
		}
	}
	return entity.ErrCourseNotFound
}
