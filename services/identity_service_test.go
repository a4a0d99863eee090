package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"attendee.link/models"
	"attendee.link/repositories"
)

// fakeUserRepo is an in-memory IUserRepository keyed by login email.
type fakeUserRepo struct {
	nextID  uint
	byEmail map[string]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{nextID: 1, byEmail: map[string]*models.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	user.ID = r.nextID
	r.nextID++
	r.byEmail[user.Email] = user
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uint) (*models.User, error) {
	for _, u := range r.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if u, ok := r.byEmail[email]; ok {
		return u, nil
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := r.byEmail[email]
	return ok, nil
}

func (r *fakeUserRepo) UpdatePassword(_ context.Context, userID uint, hashed string) error {
	for _, u := range r.byEmail {
		if u.ID == userID {
			u.Password = hashed
			return nil
		}
	}
	return repositories.ErrNotFound
}

var _ repositories.IUserRepository = (*fakeUserRepo)(nil)

type fakeSeasonService struct {
	season models.Season
}

func (s *fakeSeasonService) GetCurrentSeason(context.Context) (*models.Season, error) {
	return &s.season, nil
}

func newTestIdentityService(repo repositories.IUserRepository) *IdentityService {
	season := models.Season{Name: "2025-2026", StartDate: time.Now().AddDate(0, -1, 0), EndDate: time.Now().AddDate(0, 11, 0)}
	season.ID = 1
	return &IdentityService{
		userRepo:      repo,
		seasonService: &fakeSeasonService{season: season},
	}
}

func TestResolveOrCreateAuthenticatedShortCircuits(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestIdentityService(repo)

	authenticated := &models.User{Name: "Member"}
	authenticated.ID = 42

	user, err := svc.ResolveOrCreate(context.Background(), "Other Name", "other@x.com", authenticated)
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	if user.ID != 42 {
		t.Errorf("resolved id = %d, want the authenticated user's 42", user.ID)
	}
	if len(repo.byEmail) != 0 {
		t.Errorf("no user may be created for an authenticated request")
	}
}

func TestResolveOrCreateFindsExistingByLoginEmail(t *testing.T) {
	repo := newFakeUserRepo()
	existing := &models.User{Name: "Ann", Email: "a@x.com"}
	_ = repo.Create(context.Background(), existing)
	svc := newTestIdentityService(repo)

	user, err := svc.ResolveOrCreate(context.Background(), "Ann", "a@x.com", nil)
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	if user.ID != existing.ID {
		t.Errorf("resolved id = %d, want existing %d", user.ID, existing.ID)
	}
}

func TestResolveOrCreateGeneratesAttendee(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestIdentityService(repo)

	user, err := svc.ResolveOrCreate(context.Background(), "Ann Example", "a@x.com", nil)
	if err != nil {
		t.Fatalf("ResolveOrCreate: %v", err)
	}
	if !strings.HasPrefix(user.Email, "ann-example-") || !strings.HasSuffix(user.Email, "@"+AttendeeEmailDomain) {
		t.Errorf("synthetic email = %q, want ann-example-*@%s", user.Email, AttendeeEmailDomain)
	}
	if user.PersonalEmail != "a@x.com" {
		t.Errorf("personalEmail = %q, want the provided address", user.PersonalEmail)
	}
	if user.Phone != "N/A" {
		t.Errorf("phone = %q, want the N/A placeholder", user.Phone)
	}
	if user.Password == "" || strings.Contains(user.Password, " ") {
		t.Errorf("password must be a bcrypt hash, got %q", user.Password)
	}
	if len(user.SeasonMemberships) != 1 || user.SeasonMemberships[0].Role != models.SeasonalRoleAttendee {
		t.Errorf("expected one ATTENDEE season membership, got %+v", user.SeasonMemberships)
	}
}

// P6: repeated creation from the same name always yields distinct handles.
func TestGeneratedEmailsAreDistinct(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestIdentityService(repo)

	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		user, err := svc.createGeneratedUser(context.Background(), "Ann", "a@x.com")
		if err != nil {
			t.Fatalf("createGeneratedUser #%d: %v", i, err)
		}
		if seen[user.Email] {
			t.Fatalf("duplicate synthetic email %q", user.Email)
		}
		seen[user.Email] = true
	}
}

// Known discrepancy: the lookup key is the personal email, but generated
// accounts log in under a synthetic handle. A returning generated attendee
// therefore gets a second account. This test pins the behaviour so a change
// is a conscious decision, not an accident.
func TestReturningGeneratedAttendeeGetsNewAccount(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestIdentityService(repo)

	first, err := svc.ResolveOrCreate(context.Background(), "Ann", "a@x.com", nil)
	if err != nil {
		t.Fatalf("first ResolveOrCreate: %v", err)
	}
	second, err := svc.ResolveOrCreate(context.Background(), "Ann", "a@x.com", nil)
	if err != nil {
		t.Fatalf("second ResolveOrCreate: %v", err)
	}
	if first.ID == second.ID {
		t.Fatalf("expected a second generated account; lookup-by-personal-email unexpectedly matched")
	}
}

func TestGenerateHandleFallsBackForEmptyName(t *testing.T) {
	repo := newFakeUserRepo()
	svc := newTestIdentityService(repo)

	handle, err := svc.generateHandle(context.Background(), "!!!")
	if err != nil {
		t.Fatalf("generateHandle: %v", err)
	}
	if !strings.HasPrefix(handle, "attendee-") {
		t.Errorf("handle = %q, want attendee-* fallback", handle)
	}
}
