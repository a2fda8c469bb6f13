package query

import (
	"fmt"
	"strings"
	"testing"

	"github.com/fleetops/depot-backend/internal/user/domain"
)

// fakeUserRepo keeps accounts in a slice; enough for query tests
type fakeUserRepo struct {
	users []domain.User
}

func (r *fakeUserRepo) Create(user *domain.User) error {
	user.ID = uint(len(r.users) + 1)
	r.users = append(r.users, *user)
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].ID == id {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Username == username {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for i := range r.users {
		if r.users[i].Email == email {
			copied := r.users[i]
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("user not found")
}

func (r *fakeUserRepo) List(filter domain.UserFilter) ([]domain.User, int64, error) {
	var matched []domain.User
	for _, user := range r.users {
		if filter.Role != "" && user.Role != filter.Role {
			continue
		}
		if filter.Active != nil && user.IsActive != *filter.Active {
			continue
		}
		if filter.Search != "" &&
			!strings.Contains(user.Username, filter.Search) &&
			!strings.Contains(user.FullName, filter.Search) {
			continue
		}
		matched = append(matched, user)
	}

	total := int64(len(matched))
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, total, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(matched) {
		matched = matched[:filter.Limit]
	}
	return matched, total, nil
}

func (r *fakeUserRepo) Update(user *domain.User) error { return nil }

func (r *fakeUserRepo) Delete(id uint) error { return nil }

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

func seedAccounts(repo *fakeUserRepo) {
	accounts := []domain.User{
		{Username: "jdupont", FullName: "Jean Dupont", Role: domain.RoleTechnician, IsActive: true},
		{Username: "mmartin", FullName: "Marie Martin", Role: domain.RoleTechnician, IsActive: false},
		{Username: "pbernard", FullName: "Paul Bernard", Role: domain.RoleManager, IsActive: true},
		{Username: "root", FullName: "Depot Admin", Role: domain.RoleAdmin, IsActive: true},
	}
	for i := range accounts {
		repo.Create(&accounts[i])
	}
}

func TestListUsersHandler_Filters(t *testing.T) {
	repo := &fakeUserRepo{}
	seedAccounts(repo)

	handler := NewListUsersHandler(repo)

	result, err := handler.Handle(ListUsersQuery{Role: domain.RoleTechnician})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Total != 2 || len(result.Users) != 2 {
		t.Errorf("Expected 2 technicians, got total=%d len=%d", result.Total, len(result.Users))
	}

	active := true
	result, err = handler.Handle(ListUsersQuery{Role: domain.RoleTechnician, Active: &active})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Total != 1 || result.Users[0].Username != "jdupont" {
		t.Errorf("Expected only the active technician, got %+v", result.Users)
	}

	result, err = handler.Handle(ListUsersQuery{Search: "Martin"})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Total != 1 || result.Users[0].Username != "mmartin" {
		t.Errorf("Expected search to match by full name, got %+v", result.Users)
	}
}

func TestListUsersHandler_TotalSurvivesPaging(t *testing.T) {
	repo := &fakeUserRepo{}
	seedAccounts(repo)

	handler := NewListUsersHandler(repo)

	result, err := handler.Handle(ListUsersQuery{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}
	if result.Total != 4 {
		t.Errorf("Expected total 4 regardless of page, got %d", result.Total)
	}
	if len(result.Users) != 2 {
		t.Errorf("Expected 2 users on page, got %d", len(result.Users))
	}
}

func TestGetStatsHandler_CountsByRoleAndActivity(t *testing.T) {
	repo := &fakeUserRepo{}
	seedAccounts(repo)

	handler := NewGetStatsHandler(repo)

	stats, err := handler.Handle(GetStatsQuery{})
	if err != nil {
		t.Fatalf("Handle returned error: %v", err)
	}

	if stats.TotalUsers != 4 {
		t.Errorf("Expected 4 users, got %d", stats.TotalUsers)
	}
	if stats.ActiveUsers != 3 {
		t.Errorf("Expected 3 active users, got %d", stats.ActiveUsers)
	}
	if stats.Technicians != 2 || stats.Managers != 1 || stats.Admins != 1 {
		t.Errorf("Unexpected role counts: %+v", stats)
	}
}
