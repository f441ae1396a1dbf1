package services

import (
	"errors"
	"testing"

	"okpups/models"
)

func newAdminServiceForTest() (AdminService, *fakeAdminRepo, *fakeSessionRepo) {
	ar := newFakeAdminRepo()
	sr := newFakeSessionRepo()
	return NewAdminService(ar, sr), ar, sr
}

func TestLoginAndMe(t *testing.T) {
	ads, _, sr := newAdminServiceForTest()
	if err := ads.Seed("admin@okpups.test", "secret", "Admin"); err != nil {
		t.Fatalf("seed: %v", err)
	}

	admin, sessionId, err := ads.Login("admin@okpups.test", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if admin.Email != "admin@okpups.test" || sessionId == "" {
		t.Fatalf("unexpected login result %+v %q", admin, sessionId)
	}

	me, err := ads.Me(sessionId)
	if err != nil {
		t.Fatalf("me: %v", err)
	}
	if me.Id != admin.Id {
		t.Errorf("me returned a different admin: %+v vs %+v", me, admin)
	}
	if len(sr.refreshed) != 1 {
		t.Errorf("me must slide the session expiry, refreshed %v", sr.refreshed)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ads, _, _ := newAdminServiceForTest()
	ads.Seed("admin@okpups.test", "secret", "Admin")

	if _, _, err := ads.Login("admin@okpups.test", "wrong"); !errors.Is(err, models.ErrUnautorized) {
		t.Errorf("wrong password: expected unauthorized, got %v", err)
	}
	if _, _, err := ads.Login("nobody@okpups.test", "secret"); !errors.Is(err, models.ErrUnautorized) {
		t.Errorf("unknown email: expected unauthorized, got %v", err)
	}
}

func TestLogoutEndsSession(t *testing.T) {
	ads, _, _ := newAdminServiceForTest()
	ads.Seed("admin@okpups.test", "secret", "Admin")
	_, sessionId, _ := ads.Login("admin@okpups.test", "secret")

	ok, _ := ads.CheckAuth(sessionId)
	if !ok {
		t.Fatal("session must be valid after login")
	}
	if err := ads.Logout(sessionId); err != nil {
		t.Fatalf("logout: %v", err)
	}
	ok, _ = ads.CheckAuth(sessionId)
	if ok {
		t.Error("session must be gone after logout")
	}
	if _, err := ads.Me(sessionId); !errors.Is(err, models.ErrUnautorized) {
		t.Errorf("me on a dead session: expected unauthorized, got %v", err)
	}
}

func TestSeedIsIdempotent(t *testing.T) {
	ads, ar, _ := newAdminServiceForTest()
	ads.Seed("admin@okpups.test", "secret", "Admin")
	first, _, _ := ar.GetAdminByEmail("admin@okpups.test")

	ads.Seed("admin@okpups.test", "other", "Other")
	second, _, _ := ar.GetAdminByEmail("admin@okpups.test")
	if first.Id != second.Id || first.Password != second.Password {
		t.Error("a second seed must not replace the existing admin")
	}
}
