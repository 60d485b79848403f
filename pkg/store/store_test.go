package store

import (
	"fmt"
	"sync"
	"testing"

	"minihttpd/pkg/models"
)

func testStoreBehavior(t *testing.T, s Store) {
	t.Helper()

	if _, ok := s.FindByAccount("nobody"); ok {
		t.Fatalf("found user in empty store")
	}

	u := models.User{Account: "admin", Password: "password", Email: "admin@example.com"}
	if err := s.Save(u); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, ok := s.FindByAccount("admin")
	if !ok {
		t.Fatalf("saved user not findable")
	}
	if got != u {
		t.Fatalf("got %+v, want %+v", got, u)
	}
	if !got.CheckPassword("password") || got.CheckPassword("wrong") {
		t.Fatalf("CheckPassword misbehaves for %+v", got)
	}

	// save replaces
	u.Email = "new@example.com"
	if err := s.Save(u); err != nil {
		t.Fatalf("Save replace: %v", err)
	}
	if got, _ := s.FindByAccount("admin"); got.Email != "new@example.com" {
		t.Fatalf("replace: got %+v", got)
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	testStoreBehavior(t, s)
}

func TestPebbleStore(t *testing.T) {
	s, err := OpenPebble(t.TempDir())
	if err != nil {
		t.Fatalf("OpenPebble: %v", err)
	}
	defer s.Close()
	testStoreBehavior(t, s)
}

func TestPebbleStoreSurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	s, err := OpenPebble(dir)
	if err != nil {
		t.Fatalf("OpenPebble: %v", err)
	}
	if err := s.Save(models.User{Account: "foo", Password: "bar"}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	s2, err := OpenPebble(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer s2.Close()
	if _, ok := s2.FindByAccount("foo"); !ok {
		t.Fatalf("user lost across reopen")
	}
}

// registration writes and login reads race across connection workers
func TestMemoryStoreConcurrentAccess(t *testing.T) {
	s := NewMemory()
	defer s.Close()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(2)
		go func(i int) {
			defer wg.Done()
			_ = s.Save(models.User{Account: fmt.Sprintf("u%d", i), Password: "p"})
		}(i)
		go func(i int) {
			defer wg.Done()
			s.FindByAccount(fmt.Sprintf("u%d", i))
		}(i)
	}
	wg.Wait()

	for i := 0; i < 32; i++ {
		if _, ok := s.FindByAccount(fmt.Sprintf("u%d", i)); !ok {
			t.Fatalf("u%d missing after concurrent writes", i)
		}
	}
}

func TestBootstrapSeedsOnlyMissingUsers(t *testing.T) {
	s := NewMemory()
	defer s.Close()
	if err := s.Save(models.User{Account: "admin", Password: "custom"}); err != nil {
		t.Fatalf("Save: %v", err)
	}

	err := Bootstrap(s,
		models.User{Account: "admin", Password: "password"},
		models.User{Account: "guest", Password: "guest"},
	)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}

	if got, _ := s.FindByAccount("admin"); got.Password != "custom" {
		t.Fatalf("Bootstrap overwrote existing user: %+v", got)
	}
	if _, ok := s.FindByAccount("guest"); !ok {
		t.Fatalf("Bootstrap did not seed missing user")
	}
}
