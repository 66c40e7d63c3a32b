package repository

import (
	"context"
	"testing"
	"time"

	"roomi/internal/entity"
)

func seedUser(t *testing.T, repo UserRepository, username, email string) *entity.User {
	t.Helper()
	user := &entity.User{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		UserType:     entity.UserTypeSimple,
		IsActive:     true,
		MaxHostels:   2,
	}
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}

func TestUserRepositoryExistsByEmailOrUsername(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	seedUser(t, repo, "ali", "ali@x.com")

	cases := []struct {
		email    string
		username string
		want     bool
	}{
		{"ali@x.com", "someoneelse", true},
		{"other@x.com", "ali", true},
		{"ali@x.com", "ali", true},
		{"other@x.com", "someoneelse", false},
	}
	for _, tc := range cases {
		got, err := repo.ExistsByEmailOrUsername(ctx, tc.email, tc.username)
		if err != nil {
			t.Fatalf("exists(%s,%s): %v", tc.email, tc.username, err)
		}
		if got != tc.want {
			t.Fatalf("exists(%s,%s) = %v, want %v", tc.email, tc.username, got, tc.want)
		}
	}
}

func TestUserRepositoryMarkVerifiedAndSetEmail(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ali", "ali@x.com")

	if err := repo.MarkVerified(ctx, "ali@x.com"); err != nil {
		t.Fatalf("mark verified: %v", err)
	}
	if err := repo.SetEmail(ctx, user.ID, "new@x.com"); err != nil {
		t.Fatalf("set email: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if reloaded == nil {
		t.Fatal("user missing")
	}
	if !reloaded.IsVerified {
		t.Fatal("user not marked verified")
	}
	if reloaded.Email != "new@x.com" {
		t.Fatalf("email not updated, got %q", reloaded.Email)
	}
}

func TestUserRepositoryUpgradeToOwner(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ali", "ali@x.com")

	profile := OwnerProfile{FullName: "Ali Khan", Age: 25, Gender: "male", Phone: "03001234567"}
	if err := repo.UpgradeToOwner(ctx, user.ID, profile); err != nil {
		t.Fatalf("upgrade to owner: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if reloaded.UserType != entity.UserTypeHostelOwner {
		t.Fatalf("user type = %s, want hostel_owner", reloaded.UserType)
	}
	if reloaded.FullName != "Ali Khan" || reloaded.Age == nil || *reloaded.Age != 25 {
		t.Fatalf("profile not applied: %+v", reloaded)
	}
}

func TestUserRepositoryRecordLogin(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ali", "ali@x.com")
	at := time.Now().UTC().Truncate(time.Second)

	if err := repo.RecordLogin(ctx, user.ID, at); err != nil {
		t.Fatalf("record login: %v", err)
	}
	if err := repo.RecordLogin(ctx, user.ID, at.Add(time.Hour)); err != nil {
		t.Fatalf("record second login: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if reloaded.LoginCount != 2 {
		t.Fatalf("login count = %d, want 2", reloaded.LoginCount)
	}
	if reloaded.LastLoginAt == nil {
		t.Fatal("last login not recorded")
	}
}

func TestUserRepositoryDeactivate(t *testing.T) {
	db := newRepositoryDBForTest(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	user := seedUser(t, repo, "ali", "ali@x.com")
	if err := repo.Deactivate(ctx, user.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}

	reloaded, err := repo.FindByID(ctx, user.ID)
	if err != nil {
		t.Fatalf("find by id: %v", err)
	}
	if reloaded.IsActive {
		t.Fatal("user still active after deactivation")
	}
}
