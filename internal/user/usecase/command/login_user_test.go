package command

import (
	"fmt"
	"testing"

	"github.com/fleetops/depot-backend/internal/user/domain"
	"github.com/fleetops/depot-backend/pkg/auth"
)

// fakeUserRepo keeps accounts in a map; enough for command tests
type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	user.ID = r.nextID
	r.nextID++
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	if user, ok := r.users[id]; ok {
		copied := *user
		return &copied, nil
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Username == username {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) List(filter domain.UserFilter) ([]domain.User, int64, error) {
	var users []domain.User
	for _, user := range r.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Active != nil && user.IsActive != *filter.Active {
			continue
		}
		users = append(users, *user)
	}
	return users, int64(len(users)), nil
}

func (r *fakeUserRepo) Update(user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return fmt.Errorf("user not found")
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *fakeUserRepo) Delete(id uint) error {
	if _, ok := r.users[id]; !ok {
		return fmt.Errorf("user not found")
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) CountActive() (int64, error) {
	var count int64
	for _, user := range r.users {
		if user.IsActive {
			count++
		}
	}
	return count, nil
}

func (r *fakeUserRepo) RoleCounts() (map[string]int64, error) {
	counts := map[string]int64{}
	for _, user := range r.users {
		counts[user.Role]++
	}
	return counts, nil
}

func seedAccount(t *testing.T, repo *fakeUserRepo, username, password, role string, active bool) *domain.User {
	t.Helper()
	hashed, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	user := &domain.User{
		Username: username,
		Email:    username + "@depot.example",
		Password: hashed,
		FullName: "Jean Dupont",
		Role:     role,
		IsActive: active,
	}
	if err := repo.Create(user); err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	return user
}

func TestLoginUserHandler_RecordsLastLogin(t *testing.T) {
	repo := newFakeUserRepo()
	seedAccount(t, repo, "jdupont", "secret123", domain.RoleTechnician, true)

	handler := NewLoginUserHandler(repo)

	response, err := handler.Handle(LoginUserCommand{Username: "jdupont", Password: "secret123"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if response.Token == "" {
		t.Error("Expected a token")
	}
	if response.User.LastLoginAt == nil {
		t.Error("Expected last login to be recorded")
	}

	stored, err := repo.FindByUsername("jdupont")
	if err != nil {
		t.Fatalf("FindByUsername failed: %v", err)
	}
	if stored.LastLoginAt == nil {
		t.Error("Expected last login persisted")
	}
}

func TestLoginUserHandler_UnknownUserAndWrongPasswordAnswerAlike(t *testing.T) {
	repo := newFakeUserRepo()
	seedAccount(t, repo, "jdupont", "secret123", domain.RoleTechnician, true)

	handler := NewLoginUserHandler(repo)

	_, unknownErr := handler.Handle(LoginUserCommand{Username: "ghost", Password: "secret123"})
	if unknownErr == nil {
		t.Fatal("Expected error for unknown username")
	}
	_, wrongErr := handler.Handle(LoginUserCommand{Username: "jdupont", Password: "wrong"})
	if wrongErr == nil {
		t.Fatal("Expected error for wrong password")
	}

	// The login form must not reveal which accounts exist
	if unknownErr.Error() != wrongErr.Error() {
		t.Errorf("Expected identical errors, got %q and %q", unknownErr, wrongErr)
	}
}

func TestLoginUserHandler_DeactivatedAccountRejected(t *testing.T) {
	repo := newFakeUserRepo()
	user := seedAccount(t, repo, "jdupont", "secret123", domain.RoleTechnician, false)

	handler := NewLoginUserHandler(repo)

	_, err := handler.Handle(LoginUserCommand{Username: "jdupont", Password: "secret123"})
	if err == nil {
		t.Fatal("Expected error for deactivated account")
	}

	stored, _ := repo.FindByID(user.ID)
	if stored.LastLoginAt != nil {
		t.Error("A rejected login must not record a last login time")
	}
}
