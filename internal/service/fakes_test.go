package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/qwego/maintenance-service/internal/domain"
	"github.com/qwego/maintenance-service/internal/events"
	"github.com/qwego/maintenance-service/internal/storage"
)

// In-memory repository doubles shared by the service tests.

type fakeUserRepo struct {
	users  map[string]*domain.User
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) add(user domain.User) *domain.User {
	if user.ID == "" {
		f.nextID++
		user.ID = fmt.Sprintf("user-%d", f.nextID)
	}
	stored := user
	f.users[stored.ID] = &stored
	return &stored
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.nextID++
	user.ID = fmt.Sprintf("user-%d", f.nextID)
	user.CreatedAt = time.Now()
	stored := *user
	f.users[user.ID] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) Approve(_ context.Context, id string) error {
	user, ok := f.users[id]
	if !ok {
		return pgx.ErrNoRows
	}
	user.IsApproved = true
	return nil
}

func (f *fakeUserRepo) ListPendingApproval(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		if !user.IsApproved {
			result = append(result, *user)
		}
	}
	return result, nil
}

func (f *fakeUserRepo) ListApprovedTechnicians(_ context.Context) ([]domain.User, error) {
	var result []domain.User
	for _, user := range f.users {
		if user.Role == domain.RoleTechnician && user.IsApproved {
			result = append(result, *user)
		}
	}
	return result, nil
}

type fakeTicketRepo struct {
	tickets map[string]*domain.Ticket
	nextID  int
}

func newFakeTicketRepo() *fakeTicketRepo {
	return &fakeTicketRepo{tickets: map[string]*domain.Ticket{}}
}

func (f *fakeTicketRepo) add(ticket domain.Ticket) *domain.Ticket {
	if ticket.ID == "" {
		f.nextID++
		ticket.ID = fmt.Sprintf("ticket-%d", f.nextID)
	}
	stored := ticket
	f.tickets[stored.ID] = &stored
	return &stored
}

func (f *fakeTicketRepo) Create(_ context.Context, ticket *domain.Ticket) error {
	f.nextID++
	ticket.ID = fmt.Sprintf("ticket-%d", f.nextID)
	ticket.CreatedAt = time.Now()
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) Update(_ context.Context, ticket *domain.Ticket) error {
	if _, ok := f.tickets[ticket.ID]; !ok {
		return pgx.ErrNoRows
	}
	stored := *ticket
	f.tickets[ticket.ID] = &stored
	return nil
}

func (f *fakeTicketRepo) GetByID(_ context.Context, id string) (*domain.Ticket, error) {
	ticket, ok := f.tickets[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *ticket
	return &copied, nil
}

func (f *fakeTicketRepo) ListAll(_ context.Context) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		result = append(result, *ticket)
	}
	return result, nil
}

func (f *fakeTicketRepo) ListByTenant(_ context.Context, tenantID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if ticket.TenantID == tenantID {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

func (f *fakeTicketRepo) ListByTechnician(_ context.Context, technicianID string) ([]domain.Ticket, error) {
	var result []domain.Ticket
	for _, ticket := range f.tickets {
		if ticket.TechnicianID != nil && *ticket.TechnicianID == technicianID {
			result = append(result, *ticket)
		}
	}
	return result, nil
}

type fakeActivityLogRepo struct {
	entries   []domain.ActivityLogEntry
	appendErr error
	nextID    int
}

func newFakeActivityLogRepo() *fakeActivityLogRepo {
	return &fakeActivityLogRepo{}
}

func (f *fakeActivityLogRepo) Append(_ context.Context, entry *domain.ActivityLogEntry) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.nextID++
	entry.ID = fmt.Sprintf("log-%d", f.nextID)
	entry.Timestamp = time.Now()
	f.entries = append(f.entries, *entry)
	return nil
}

func (f *fakeActivityLogRepo) ListByTicket(_ context.Context, ticketID string) ([]domain.ActivityLogEntry, error) {
	var result []domain.ActivityLogEntry
	for _, entry := range f.entries {
		if entry.TicketID == ticketID {
			result = append(result, entry)
		}
	}
	return result, nil
}

func (f *fakeActivityLogRepo) forTicket(ticketID string) []domain.ActivityLogEntry {
	entries, _ := f.ListByTicket(context.Background(), ticketID)
	return entries
}

type fakeAnnouncementRepo struct {
	announcements []domain.Announcement
	nextID        int
}

func newFakeAnnouncementRepo() *fakeAnnouncementRepo {
	return &fakeAnnouncementRepo{}
}

func (f *fakeAnnouncementRepo) Create(_ context.Context, announcement *domain.Announcement) error {
	f.nextID++
	announcement.ID = fmt.Sprintf("ann-%d", f.nextID)
	announcement.CreatedAt = time.Now()
	f.announcements = append(f.announcements, *announcement)
	return nil
}

func (f *fakeAnnouncementRepo) ListForRole(_ context.Context, role domain.Role) ([]domain.Announcement, error) {
	var result []domain.Announcement
	for _, announcement := range f.announcements {
		if announcement.TargetRole.Matches(role) {
			result = append(result, announcement)
		}
	}
	return result, nil
}

// fakeImageStore records stored filenames in memory.
type fakeImageStore struct {
	saved   []string
	saveErr error
}

func (f *fakeImageStore) Save(_ context.Context, filename string, _ io.Reader) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	name := storage.SanitizeFilename(filename)
	if name == "" {
		return "", storage.ErrEmptyFilename
	}
	f.saved = append(f.saved, name)
	return name, nil
}

// fakeTransactor runs the closure directly; the fakes have no transactions
// to coordinate.
type fakeTransactor struct{}

func (fakeTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeDispatcher struct {
	published []events.Event
}

func (f *fakeDispatcher) Publish(_ context.Context, event events.Event) error {
	f.published = append(f.published, event)
	return nil
}

func (f *fakeDispatcher) Subscribe(events.EventType, events.EventHandler) {}

type fakeRevoker struct {
	revoked map[string]time.Time
}

func newFakeRevoker() *fakeRevoker {
	return &fakeRevoker{revoked: map[string]time.Time{}}
}

func (f *fakeRevoker) Revoke(_ context.Context, jti string, until time.Time) error {
	f.revoked[jti] = until
	return nil
}

func (f *fakeRevoker) IsRevoked(_ context.Context, jti string) (bool, error) {
	_, ok := f.revoked[jti]
	return ok, nil
}
