package service

import (
	"context"
	"errors"
	"testing"

	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/ports"
)

func newUserFixture() (*stubUserRepo, *stubClientRepo, *stubProjectRepo, *UserService) {
	users := &stubUserRepo{}
	clients := &stubClientRepo{}
	projects := &stubProjectRepo{}
	return users, clients, projects, NewUserService(users, clients, projects, discardLogger)
}

func TestUserService_Me(t *testing.T) {
	users, _, _, svc := newUserFixture()
	alice := users.add(domain.User{Email: "alice@example.com", Role: domain.RoleUser})

	got, err := svc.Me(context.Background(), alice.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Email != "alice@example.com" {
		t.Errorf("wrong profile: %+v", got)
	}

	if _, err := svc.Me(context.Background(), "ghost"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Errorf("expected ErrUserNotFound, got %v", err)
	}
}

func TestUserService_ListUsers_Pagination(t *testing.T) {
	users, _, _, svc := newUserFixture()
	for i := 0; i < 12; i++ {
		users.add(domain.User{Role: domain.RoleUser})
	}

	page, err := svc.ListUsers(context.Background(), 2, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if page.Meta.Total != 12 || page.Meta.TotalPages != 3 || len(page.Data) != 5 {
		t.Errorf("pagination wrong: meta=%+v data=%d", page.Meta, len(page.Data))
	}
}

func TestUserService_UsersWithProjects(t *testing.T) {
	users, _, projects, svc := newUserFixture()
	alice := users.add(domain.User{ID: "alice", Role: domain.RoleUser})
	users.add(domain.User{ID: "bob", Role: domain.RoleUser})
	projects.add(domain.Project{Name: "Forest Watch", Code: "FW-20260101", MemberIDs: []string{alice.ID}})

	page, err := svc.UsersWithProjects(context.Background(), 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data) != 2 {
		t.Fatalf("expected 2 users, got %d", len(page.Data))
	}
	byID := make(map[string]ports.UserProjectsView)
	for _, v := range page.Data {
		byID[v.User.ID] = v
	}
	if got := byID["alice"].Projects; len(got) != 1 || got[0].Code != "FW-20260101" {
		t.Errorf("alice's projects wrong: %+v", got)
	}
	if got := byID["bob"].Projects; len(got) != 0 {
		t.Errorf("bob must have an empty project list, got %+v", got)
	}
}

func TestUserService_CreateClient(t *testing.T) {
	_, clients, _, svc := newUserFixture()

	created, err := svc.CreateClient(context.Background(), ports.CreateClientInput{
		Name:  "Acme",
		Email: "hello@acme.test",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.ID == "" || created.Name != "Acme" {
		t.Errorf("client not persisted: %+v", created)
	}
	if len(clients.clients) != 1 {
		t.Error("client must be stored")
	}
}

func TestUserService_CreateClient_DuplicateName(t *testing.T) {
	_, clients, _, svc := newUserFixture()
	clients.add(domain.Client{Name: "Acme"})

	_, err := svc.CreateClient(context.Background(), ports.CreateClientInput{Name: "Acme"})
	if !errors.Is(err, domain.ErrClientExists) {
		t.Fatalf("expected ErrClientExists, got %v", err)
	}
}

func TestUserService_SearchClients(t *testing.T) {
	_, clients, _, svc := newUserFixture()
	clients.add(domain.Client{Name: "EcoWood Partnership"})
	clients.add(domain.Client{Name: "Forest Alliance"})

	page, err := svc.SearchClients(context.Background(), "WOOD", 1, 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Data) != 1 || page.Data[0].Name != "EcoWood Partnership" {
		t.Fatalf("search must be a case-insensitive substring match, got %+v", page.Data)
	}
	if page.Meta.Total != 1 {
		t.Errorf("total must count matches, got %d", page.Meta.Total)
	}
}
